package fleet

import (
	"fmt"

	"github.com/mesh-intelligence/fleetops/internal/notify"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// ListMissions returns the mission tasks matching filter.
func (s *Service) ListMissions(filter map[string]any) ([]*types.MissionTask, error) {
	return fetchAll[*types.MissionTask](s, types.TableMissions, filter)
}

// GetMission returns one mission task.
func (s *Service) GetMission(id string) (*types.MissionTask, error) {
	return getOne[*types.MissionTask](s, types.TableMissions, id)
}

// ScheduleMission appends a mission task with status Scheduled.
func (s *Service) ScheduleMission(t *types.MissionTask) (Outcome[*types.MissionTask], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.Status = types.MissionScheduled
	if err := s.create(t); err != nil {
		return Outcome[*types.MissionTask]{}, err
	}
	n := s.done(types.TableMissions, "schedule",
		notify.New("Task Scheduled", fmt.Sprintf("%s has been scheduled for %s", t.Name, t.Drone)))
	return Outcome[*types.MissionTask]{Item: t, Notice: n}, nil
}

// UpdateMission replaces the mission task with the given ID.
func (s *Service) UpdateMission(id string, t *types.MissionTask) (Outcome[*types.MissionTask], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.replace(id, t); err != nil {
		return Outcome[*types.MissionTask]{}, err
	}
	n := s.done(types.TableMissions, "update",
		notify.New("Task Updated", fmt.Sprintf("%s has been updated", t.Name)))
	return Outcome[*types.MissionTask]{Item: t, Notice: n}, nil
}

// DeleteMission removes a mission task.
func (s *Service) DeleteMission(id string) (notify.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.GetMission(id)
	if err != nil {
		return notify.Notice{}, err
	}
	if err := s.remove(types.TableMissions, id); err != nil {
		return notify.Notice{}, err
	}
	return s.done(types.TableMissions, "delete",
		notify.Destructive("Task Cancelled", fmt.Sprintf("%s has been removed from the schedule", t.Name))), nil
}

// StartMissionTask begins execution of a scheduled task.
func (s *Service) StartMissionTask(id string) (Outcome[*types.MissionTask], error) {
	return s.missionAction(id, "start", (*types.MissionTask).Start,
		notify.New("Task Started", "Task execution has begun"))
}

// CompleteMissionTask marks a task completed.
func (s *Service) CompleteMissionTask(id string) (Outcome[*types.MissionTask], error) {
	return s.missionAction(id, "complete", (*types.MissionTask).Complete,
		notify.New("Task Completed", "Task has been marked as completed"))
}

func (s *Service) missionAction(id, action string, apply func(*types.MissionTask), n notify.Notice) (Outcome[*types.MissionTask], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := modify(s, types.TableMissions, id, func(t *types.MissionTask) error {
		apply(t)
		return nil
	})
	if err != nil {
		return Outcome[*types.MissionTask]{}, err
	}
	return Outcome[*types.MissionTask]{Item: t, Notice: s.done(types.TableMissions, action, n)}, nil
}
