package types

import "fmt"

// Inspection finding types.
const (
	IssueCorrosion   = "Corrosion"
	IssueCrack       = "Crack"
	IssueLeak        = "Leak"
	IssueOverheating = "Overheating"
	IssueOther       = "Other"
)

// Severity and priority levels shared by reports and maintenance tasks.
const (
	LevelCritical = "Critical"
	LevelHigh     = "High"
	LevelMedium   = "Medium"
	LevelLow      = "Low"
)

// Report states.
const (
	ReportStatusPending        = "Pending"
	ReportStatusInProgress     = "In Progress"
	ReportStatusReviewed       = "Reviewed"
	ReportStatusActionRequired = "Action Required"
	ReportStatusResolved       = "Resolved"
)

var (
	// IssueTypes is the closed set of report type values.
	IssueTypes = []string{IssueCorrosion, IssueCrack, IssueLeak, IssueOverheating, IssueOther}
	// Levels is the closed set of severity and priority values.
	Levels = []string{LevelCritical, LevelHigh, LevelMedium, LevelLow}
	// ReportStatuses is the closed set of report status values.
	ReportStatuses = []string{
		ReportStatusPending,
		ReportStatusInProgress,
		ReportStatusReviewed,
		ReportStatusActionRequired,
		ReportStatusResolved,
	}
)

// Report is an inspection finding documented from drone imagery.
// Drone is free text and is not checked against the drone table.
type Report struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Drone       string `json:"drone"`
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	Inspector   string `json:"inspector"`
	Description string `json:"description"`
	Images      int    `json:"images"`
	Priority    string `json:"priority"`
}

// NewReport returns a report with the create-form defaults.
func NewReport() *Report {
	return &Report{
		Type:     IssueCorrosion,
		Severity: LevelMedium,
		Priority: LevelMedium,
		Status:   ReportStatusPending,
	}
}

// TableName returns TableReports.
func (r *Report) TableName() string { return TableReports }

// EntityID returns the display ID.
func (r *Report) EntityID() string { return r.ID }

// SetEntityID sets the display ID. Backends call it when adding.
func (r *Report) SetEntityID(id string) { r.ID = id }

// SearchText lists the fields free-text search matches against.
func (r *Report) SearchText() []string { return []string{r.ID, r.Location, r.Type} }

// EnumValue returns the named enum field for equality filters.
func (r *Report) EnumValue(field string) (string, bool) {
	switch field {
	case "type":
		return r.Type, true
	case "severity":
		return r.Severity, true
	case "priority":
		return r.Priority, true
	case "status":
		return r.Status, true
	}
	return "", false
}

// Validate checks the enum fields against their closed sets.
func (r *Report) Validate() error {
	if err := checkEnum("issue type", r.Type, IssueTypes); err != nil {
		return err
	}
	if err := checkEnum("severity", r.Severity, Levels); err != nil {
		return err
	}
	if err := checkEnum("priority", r.Priority, Levels); err != nil {
		return err
	}
	return r.checkStatus(r.Status)
}

// SetStatus moves the report to the given status.
// Returns ErrInvalidStatus if the status is not recognized.
func (r *Report) SetStatus(status string) error {
	if err := r.checkStatus(status); err != nil {
		return err
	}
	r.Status = status
	return nil
}

func (r *Report) checkStatus(status string) error {
	if !oneOf(status, ReportStatuses) {
		return fmt.Errorf("report status %q: %w", status, ErrInvalidStatus)
	}
	return nil
}
