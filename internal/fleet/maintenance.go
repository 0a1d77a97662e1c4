package fleet

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/fleetops/internal/notify"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// MaintenanceCounts holds the per-status tiles above the schedule.
type MaintenanceCounts struct {
	Scheduled  int `json:"scheduled"`
	InProgress int `json:"inProgress"`
	Overdue    int `json:"overdue"`
	Completed  int `json:"completed"`
}

// ListMaintenance returns the maintenance tasks matching filter.
func (s *Service) ListMaintenance(filter map[string]any) ([]*types.MaintenanceTask, error) {
	return fetchAll[*types.MaintenanceTask](s, types.TableMaintenance, filter)
}

// GetMaintenance returns one maintenance task.
func (s *Service) GetMaintenance(id string) (*types.MaintenanceTask, error) {
	return getOne[*types.MaintenanceTask](s, types.TableMaintenance, id)
}

// ScheduleMaintenance appends a task with status Scheduled and progress 0.
// Drone, type and due date are required; when one is missing a destructive
// notice is sent and ErrMissingField returned.
func (s *Service) ScheduleMaintenance(m *types.MaintenanceTask) (Outcome[*types.MaintenanceTask], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.Status = types.MaintenanceScheduled
	m.Progress = 0
	if err := s.create(m); err != nil {
		if errors.Is(err, types.ErrMissingField) {
			n := s.notifier.Notify(notify.Destructive("Missing Information", "Please fill in all required fields."))
			return Outcome[*types.MaintenanceTask]{Notice: n}, err
		}
		return Outcome[*types.MaintenanceTask]{}, err
	}
	n := s.done(types.TableMaintenance, "schedule",
		notify.New("Task Scheduled", fmt.Sprintf("Maintenance task %s has been scheduled successfully", m.ID)))
	return Outcome[*types.MaintenanceTask]{Item: m, Notice: n}, nil
}

// UpdateMaintenance replaces the task with the given ID.
func (s *Service) UpdateMaintenance(id string, m *types.MaintenanceTask) (Outcome[*types.MaintenanceTask], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.Status == types.MaintenanceCompleted {
		m.Progress = 100
	}
	if err := s.replace(id, m); err != nil {
		return Outcome[*types.MaintenanceTask]{}, err
	}
	n := s.done(types.TableMaintenance, "update",
		notify.New("Task Updated", fmt.Sprintf("Maintenance task %s has been updated", id)))
	return Outcome[*types.MaintenanceTask]{Item: m, Notice: n}, nil
}

// DeleteMaintenance removes a task.
func (s *Service) DeleteMaintenance(id string) (notify.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.remove(types.TableMaintenance, id); err != nil {
		return notify.Notice{}, err
	}
	return s.done(types.TableMaintenance, "delete",
		notify.Destructive("Task Removed", fmt.Sprintf("Maintenance task %s has been removed", id))), nil
}

// UpdateMaintenanceStatus moves a task to status; Completed sets progress to 100.
func (s *Service) UpdateMaintenanceStatus(id, status string) (Outcome[*types.MaintenanceTask], error) {
	return s.maintenanceAction(id, "status", func(m *types.MaintenanceTask) error {
		return m.SetStatus(status)
	}, notify.New("Task Updated", fmt.Sprintf("Maintenance task %s status updated to %s", id, status)))
}

// RescheduleMaintenance moves the due date.
func (s *Service) RescheduleMaintenance(id, dueDate string) (Outcome[*types.MaintenanceTask], error) {
	if dueDate == "" {
		return Outcome[*types.MaintenanceTask]{}, fmt.Errorf("due date: %w", types.ErrMissingField)
	}
	return s.maintenanceAction(id, "reschedule", func(m *types.MaintenanceTask) error {
		m.DueDate = dueDate
		return nil
	}, notify.New("Task Rescheduled", fmt.Sprintf("Task %s has been rescheduled to %s", id, dueDate)))
}

// AssignMaintenance hands the task to a technician or team.
func (s *Service) AssignMaintenance(id, assignee string) (Outcome[*types.MaintenanceTask], error) {
	if assignee == "" {
		return Outcome[*types.MaintenanceTask]{}, fmt.Errorf("assignee: %w", types.ErrMissingField)
	}
	return s.maintenanceAction(id, "assign", func(m *types.MaintenanceTask) error {
		m.AssignedTo = assignee
		return nil
	}, notify.New("Task Assigned", fmt.Sprintf("Task %s has been assigned to %s", id, assignee)))
}

// CountMaintenance tallies tasks by status.
func (s *Service) CountMaintenance() (MaintenanceCounts, error) {
	tasks, err := s.ListMaintenance(nil)
	if err != nil {
		return MaintenanceCounts{}, err
	}
	var c MaintenanceCounts
	for _, m := range tasks {
		switch m.Status {
		case types.MaintenanceScheduled:
			c.Scheduled++
		case types.MaintenanceInProgress:
			c.InProgress++
		case types.MaintenanceOverdue:
			c.Overdue++
		case types.MaintenanceCompleted:
			c.Completed++
		}
	}
	return c, nil
}

func (s *Service) maintenanceAction(id, action string, fn func(*types.MaintenanceTask) error, n notify.Notice) (Outcome[*types.MaintenanceTask], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := modify(s, types.TableMaintenance, id, fn)
	if err != nil {
		return Outcome[*types.MaintenanceTask]{}, err
	}
	return Outcome[*types.MaintenanceTask]{Item: m, Notice: s.done(types.TableMaintenance, action, n)}, nil
}
