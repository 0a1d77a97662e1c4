package types

import "fmt"

// Alert severities.
const (
	AlertTypeCritical = "Critical"
	AlertTypeWarning  = "Warning"
	AlertTypeInfo     = "Info"
)

// Alert states.
const (
	AlertStatusActive     = "Active"
	AlertStatusInProgress = "In Progress"
	AlertStatusResolved   = "Resolved"
)

var (
	// AlertTypes is the closed set of alert type values.
	AlertTypes = []string{AlertTypeCritical, AlertTypeWarning, AlertTypeInfo}
	// AlertStatuses is the closed set of alert status values.
	AlertStatuses = []string{AlertStatusActive, AlertStatusInProgress, AlertStatusResolved}
)

// Alert is a system alert raised against the fleet or a VOC zone.
type Alert struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Status  string `json:"status"`
}

// TableName returns TableAlerts.
func (a *Alert) TableName() string { return TableAlerts }

// EntityID returns the display ID.
func (a *Alert) EntityID() string { return a.ID }

// SetEntityID sets the display ID. Backends call it when adding.
func (a *Alert) SetEntityID(id string) { a.ID = id }

// SearchText lists the fields free-text search matches against.
func (a *Alert) SearchText() []string { return []string{a.Message} }

// EnumValue returns the named enum field for equality filters.
func (a *Alert) EnumValue(field string) (string, bool) {
	switch field {
	case "type":
		return a.Type, true
	case "status":
		return a.Status, true
	}
	return "", false
}

// Validate requires a message and known type and status values.
func (a *Alert) Validate() error {
	if a.Message == "" {
		return fmt.Errorf("alert message: %w", ErrMissingField)
	}
	if err := checkEnum("alert type", a.Type, AlertTypes); err != nil {
		return err
	}
	if !oneOf(a.Status, AlertStatuses) {
		return fmt.Errorf("alert status %q: %w", a.Status, ErrInvalidStatus)
	}
	return nil
}

// Acknowledge moves the alert to In Progress.
func (a *Alert) Acknowledge() { a.Status = AlertStatusInProgress }

// Resolve closes the alert.
func (a *Alert) Resolve() { a.Status = AlertStatusResolved }
