package types

import "fmt"

// Maintenance task states.
const (
	MaintenanceScheduled  = "Scheduled"
	MaintenanceInProgress = "In Progress"
	MaintenanceOverdue    = "Overdue"
	MaintenanceCompleted  = "Completed"
)

// MaintenanceStatuses is the closed set of maintenance status values.
var MaintenanceStatuses = []string{
	MaintenanceScheduled,
	MaintenanceInProgress,
	MaintenanceOverdue,
	MaintenanceCompleted,
}

// MaintenanceTask is a scheduled service job for one drone.
type MaintenanceTask struct {
	ID             string `json:"id"`
	Drone          string `json:"drone"`
	Type           string `json:"type"`
	DueDate        string `json:"dueDate"`
	Priority       string `json:"priority"`
	Status         string `json:"status"`
	Progress       int    `json:"progress"`
	AssignedTo     string `json:"assignedTo"`
	EstimatedHours int    `json:"estimatedHours"`
	Description    string `json:"description"`
}

// NewMaintenanceTask returns a task with the schedule-form defaults.
func NewMaintenanceTask() *MaintenanceTask {
	return &MaintenanceTask{
		Priority:       LevelMedium,
		Status:         MaintenanceScheduled,
		EstimatedHours: 1,
	}
}

// TableName returns TableMaintenance.
func (m *MaintenanceTask) TableName() string { return TableMaintenance }

// EntityID returns the display ID.
func (m *MaintenanceTask) EntityID() string { return m.ID }

// SetEntityID sets the display ID. Backends call it when adding.
func (m *MaintenanceTask) SetEntityID(id string) { m.ID = id }

// SearchText lists the fields free-text search matches against.
func (m *MaintenanceTask) SearchText() []string {
	return []string{m.ID, m.Drone, m.Type, m.AssignedTo}
}

// EnumValue returns the named enum field for equality filters.
func (m *MaintenanceTask) EnumValue(field string) (string, bool) {
	switch field {
	case "priority":
		return m.Priority, true
	case "status":
		return m.Status, true
	}
	return "", false
}

// Validate requires drone, type and due date, and checks priority, status
// and progress.
func (m *MaintenanceTask) Validate() error {
	switch {
	case m.Drone == "":
		return fmt.Errorf("maintenance drone: %w", ErrMissingField)
	case m.Type == "":
		return fmt.Errorf("maintenance type: %w", ErrMissingField)
	case m.DueDate == "":
		return fmt.Errorf("maintenance due date: %w", ErrMissingField)
	}
	if err := checkEnum("priority", m.Priority, Levels); err != nil {
		return err
	}
	if !oneOf(m.Status, MaintenanceStatuses) {
		return fmt.Errorf("maintenance status %q: %w", m.Status, ErrInvalidStatus)
	}
	if m.Progress < 0 || m.Progress > 100 {
		return fmt.Errorf("progress %d out of range: %w", m.Progress, ErrInvalidData)
	}
	return nil
}

// SetStatus moves the task to status. Completing a task sets progress to 100.
// Returns ErrInvalidStatus if the status is not recognized.
func (m *MaintenanceTask) SetStatus(status string) error {
	if !oneOf(status, MaintenanceStatuses) {
		return fmt.Errorf("maintenance status %q: %w", status, ErrInvalidStatus)
	}
	m.Status = status
	if status == MaintenanceCompleted {
		m.Progress = 100
	}
	return nil
}
