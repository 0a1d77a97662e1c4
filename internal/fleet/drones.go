package fleet

import (
	"fmt"

	"github.com/mesh-intelligence/fleetops/internal/notify"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// ListDrones returns the drones matching filter in fleet order.
func (s *Service) ListDrones(filter map[string]any) ([]*types.Drone, error) {
	return fetchAll[*types.Drone](s, types.TableDrones, filter)
}

// GetDrone returns one drone. Returns ErrNotFound for unknown IDs.
func (s *Service) GetDrone(id string) (*types.Drone, error) {
	return getOne[*types.Drone](s, types.TableDrones, id)
}

// AddDrone appends d under the next DR- ID.
func (s *Service) AddDrone(d *types.Drone) (Outcome[*types.Drone], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.LastSeen = "Just added"
	if err := s.create(d); err != nil {
		return Outcome[*types.Drone]{}, err
	}
	n := s.done(types.TableDrones, "add",
		notify.New("Drone Added", fmt.Sprintf("%s has been added to the fleet.", d.Name)))
	return Outcome[*types.Drone]{Item: d, Notice: n}, nil
}

// UpdateDrone replaces the drone with the given ID.
func (s *Service) UpdateDrone(id string, d *types.Drone) (Outcome[*types.Drone], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.LastSeen = "Just updated"
	if err := s.replace(id, d); err != nil {
		return Outcome[*types.Drone]{}, err
	}
	n := s.done(types.TableDrones, "update",
		notify.New("Drone Updated", fmt.Sprintf("%s has been updated.", d.Name)))
	return Outcome[*types.Drone]{Item: d, Notice: n}, nil
}

// DeleteDrone removes a drone. Reports and tasks naming it are untouched.
func (s *Service) DeleteDrone(id string) (notify.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.GetDrone(id)
	if err != nil {
		return notify.Notice{}, err
	}
	if err := s.remove(types.TableDrones, id); err != nil {
		return notify.Notice{}, err
	}
	return s.done(types.TableDrones, "delete",
		notify.Destructive("Drone Removed", fmt.Sprintf("%s has been removed from the fleet.", d.Name))), nil
}

// ReturnDrone orders the drone back to base.
func (s *Service) ReturnDrone(id string) (Outcome[*types.Drone], error) {
	return s.droneAction(id, "return", (*types.Drone).ReturnToBase,
		notify.New("Return Command Sent", id+" is returning to base"))
}

// EmergencyLand orders the drone down immediately.
func (s *Service) EmergencyLand(id string) (Outcome[*types.Drone], error) {
	return s.droneAction(id, "emergency_land", (*types.Drone).EmergencyLand,
		notify.Destructive("Emergency Landing", id+" executing emergency landing protocol"))
}

// StartDroneMission puts the drone on a new mission.
func (s *Service) StartDroneMission(id string) (Outcome[*types.Drone], error) {
	return s.droneAction(id, "start_mission", (*types.Drone).StartMission,
		notify.New("Mission Started", id+" mission initiated"))
}

func (s *Service) droneAction(id, action string, apply func(*types.Drone), n notify.Notice) (Outcome[*types.Drone], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := modify(s, types.TableDrones, id, func(d *types.Drone) error {
		apply(d)
		return nil
	})
	if err != nil {
		return Outcome[*types.Drone]{}, err
	}
	return Outcome[*types.Drone]{Item: d, Notice: s.done(types.TableDrones, action, n)}, nil
}
