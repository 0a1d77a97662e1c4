package types

import "strconv"

// Header notification kinds.
const (
	NotificationAlert   = "alert"
	NotificationSuccess = "success"
	NotificationInfo    = "info"
)

// NotificationTypes is the closed set of notification type values.
var NotificationTypes = []string{NotificationAlert, NotificationSuccess, NotificationInfo}

// Notification is an item in the header bell menu.
type Notification struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Read    bool   `json:"read"`
}

// TableName returns TableNotifications.
func (n *Notification) TableName() string { return TableNotifications }

// EntityID returns the display ID.
func (n *Notification) EntityID() string { return n.ID }

// SetEntityID sets the display ID. Backends call it when adding.
func (n *Notification) SetEntityID(id string) { n.ID = id }

// SearchText lists the fields free-text search matches against.
func (n *Notification) SearchText() []string { return []string{n.Title, n.Message} }

// EnumValue exposes type and read; read is "true" or "false".
func (n *Notification) EnumValue(field string) (string, bool) {
	switch field {
	case "type":
		return n.Type, true
	case "read":
		return strconv.FormatBool(n.Read), true
	}
	return "", false
}

func (n *Notification) Validate() error {
	if n.Title == "" {
		return ErrInvalidName
	}
	return checkEnum("notification type", n.Type, NotificationTypes)
}

// MarkRead flags the notification as seen.
func (n *Notification) MarkRead() { n.Read = true }
