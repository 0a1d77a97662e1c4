package types

import "fmt"

// Drone states shown in the fleet table.
const (
	DroneStatusActive           = "Active"
	DroneStatusCharging         = "Charging"
	DroneStatusLowBattery       = "Low Battery"
	DroneStatusMaintenance      = "Maintenance"
	DroneStatusReturning        = "Returning"
	DroneStatusEmergencyLanding = "Emergency Landing"
)

// DroneStatuses is the closed set of drone status values.
var DroneStatuses = []string{
	DroneStatusActive,
	DroneStatusCharging,
	DroneStatusLowBattery,
	DroneStatusMaintenance,
	DroneStatusReturning,
	DroneStatusEmergencyLanding,
}

// Drone is one aircraft in the fleet table.
type Drone struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Battery    int    `json:"battery"` // Percent, 0-100.
	Status     string `json:"status"`
	LastSeen   string `json:"lastSeen"`
	Altitude   string `json:"altitude"`
	Speed      string `json:"speed"`
	Mission    string `json:"mission"`
	FlightTime string `json:"flightTime"`
}

// NewDrone returns a drone with the add-form defaults.
func NewDrone() *Drone {
	return &Drone{
		Battery:    100,
		Status:     DroneStatusActive,
		Altitude:   "0ft",
		Speed:      "0 mph",
		FlightTime: "0h 0m",
	}
}

// TableName returns TableDrones.
func (d *Drone) TableName() string { return TableDrones }

// EntityID returns the display ID.
func (d *Drone) EntityID() string { return d.ID }

// SetEntityID sets the display ID. Backends call it when adding.
func (d *Drone) SetEntityID(id string) { d.ID = id }

// SearchText lists the fields free-text search matches against.
func (d *Drone) SearchText() []string { return []string{d.Name, d.ID} }

// EnumValue returns the named enum field for equality filters.
func (d *Drone) EnumValue(field string) (string, bool) {
	if field == "status" {
		return d.Status, true
	}
	return "", false
}

// Validate requires a name, a known status, and a battery level in 0-100.
func (d *Drone) Validate() error {
	if d.Name == "" {
		return ErrInvalidName
	}
	if !oneOf(d.Status, DroneStatuses) {
		return fmt.Errorf("drone status %q: %w", d.Status, ErrInvalidStatus)
	}
	if d.Battery < 0 || d.Battery > 100 {
		return fmt.Errorf("battery %d out of range: %w", d.Battery, ErrInvalidData)
	}
	return nil
}

// ReturnToBase sends the drone home.
func (d *Drone) ReturnToBase() {
	d.Status = DroneStatusReturning
	d.Mission = "Return to Base"
	d.LastSeen = "Just now"
}

// EmergencyLand puts the drone down where it is.
func (d *Drone) EmergencyLand() {
	d.Status = DroneStatusEmergencyLanding
	d.Mission = "Emergency Landing"
	d.Speed = "0 mph"
	d.LastSeen = "Just now"
}

// StartMission marks the drone active on a new mission.
func (d *Drone) StartMission() {
	d.Status = DroneStatusActive
	d.Mission = "New Mission"
	d.LastSeen = "Just now"
}
