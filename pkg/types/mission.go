package types

import "fmt"

// Mission task types.
const (
	MissionInspection = "Inspection"
	MissionMonitoring = "Monitoring"
	MissionSecurity   = "Security"
	MissionDelivery   = "Delivery"
)

// Mission task states.
const (
	MissionScheduled  = "Scheduled"
	MissionInProgress = "In Progress"
	MissionCompleted  = "Completed"
	MissionCancelled  = "Cancelled"
)

var (
	// MissionTypes is the closed set of mission type values.
	MissionTypes = []string{MissionInspection, MissionMonitoring, MissionSecurity, MissionDelivery}
	// MissionStatuses is the closed set of mission status values.
	MissionStatuses = []string{MissionScheduled, MissionInProgress, MissionCompleted, MissionCancelled}
	// MissionPriorities excludes Critical; missions only go up to High.
	MissionPriorities = []string{LevelHigh, LevelMedium, LevelLow}
)

// MissionTask is a flight scheduled for one drone.
type MissionTask struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Drone     string `json:"drone"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	StartTime string `json:"startTime"`
	Duration  string `json:"duration"`
	Location  string `json:"location"`
	Priority  string `json:"priority"`
}

// NewMissionTask returns a task with the schedule-form defaults.
func NewMissionTask() *MissionTask {
	return &MissionTask{
		Type:     MissionInspection,
		Status:   MissionScheduled,
		Priority: LevelMedium,
	}
}

// TableName returns TableMissions.
func (t *MissionTask) TableName() string { return TableMissions }

// EntityID returns the display ID.
func (t *MissionTask) EntityID() string { return t.ID }

// SetEntityID sets the display ID. Backends call it when adding.
func (t *MissionTask) SetEntityID(id string) { t.ID = id }

// SearchText lists the fields free-text search matches against.
func (t *MissionTask) SearchText() []string { return []string{t.Name, t.Drone, t.Location} }

// EnumValue returns the named enum field for equality filters.
func (t *MissionTask) EnumValue(field string) (string, bool) {
	switch field {
	case "type":
		return t.Type, true
	case "status":
		return t.Status, true
	case "priority":
		return t.Priority, true
	}
	return "", false
}

// Validate requires a name and a drone and checks the enum fields.
func (t *MissionTask) Validate() error {
	if t.Name == "" {
		return ErrInvalidName
	}
	if t.Drone == "" {
		return fmt.Errorf("mission drone: %w", ErrMissingField)
	}
	if err := checkEnum("mission type", t.Type, MissionTypes); err != nil {
		return err
	}
	if err := checkEnum("priority", t.Priority, MissionPriorities); err != nil {
		return err
	}
	if !oneOf(t.Status, MissionStatuses) {
		return fmt.Errorf("mission status %q: %w", t.Status, ErrInvalidStatus)
	}
	return nil
}

// Start begins execution.
func (t *MissionTask) Start() { t.Status = MissionInProgress }

// Complete marks the task done.
func (t *MissionTask) Complete() { t.Status = MissionCompleted }
