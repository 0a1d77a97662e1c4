package fleet

import (
	"fmt"

	"github.com/mesh-intelligence/fleetops/internal/notify"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// dateLayout is how report dates are written.
const dateLayout = "2006-01-02"

// ListReports returns the inspection reports matching filter.
func (s *Service) ListReports(filter map[string]any) ([]*types.Report, error) {
	return fetchAll[*types.Report](s, types.TableReports, filter)
}

// GetReport returns one report.
func (s *Service) GetReport(id string) (*types.Report, error) {
	return getOne[*types.Report](s, types.TableReports, id)
}

// CreateReport files a new report dated today with status Pending and a
// simulated image count between 1 and 5.
func (s *Service) CreateReport(r *types.Report) (Outcome[*types.Report], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.Date = s.now().Format(dateLayout)
	r.Status = types.ReportStatusPending
	r.Images = s.rand.IntN(5) + 1
	if err := s.create(r); err != nil {
		return Outcome[*types.Report]{}, err
	}
	n := s.done(types.TableReports, "create",
		notify.New("Report Created", fmt.Sprintf("Inspection report %s has been created.", r.ID)))
	return Outcome[*types.Report]{Item: r, Notice: n}, nil
}

// UpdateReport replaces the report with the given ID.
func (s *Service) UpdateReport(id string, r *types.Report) (Outcome[*types.Report], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.replace(id, r); err != nil {
		return Outcome[*types.Report]{}, err
	}
	n := s.done(types.TableReports, "update",
		notify.New("Report Updated", fmt.Sprintf("Inspection report %s has been updated.", id)))
	return Outcome[*types.Report]{Item: r, Notice: n}, nil
}

// DeleteReport removes a report.
func (s *Service) DeleteReport(id string) (notify.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.remove(types.TableReports, id); err != nil {
		return notify.Notice{}, err
	}
	return s.done(types.TableReports, "delete",
		notify.Destructive("Report Deleted", fmt.Sprintf("Inspection report %s has been deleted.", id))), nil
}

// UpdateReportStatus moves a report to status.
// Returns ErrInvalidStatus for unknown statuses.
func (s *Service) UpdateReportStatus(id, status string) (Outcome[*types.Report], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := modify(s, types.TableReports, id, func(r *types.Report) error {
		return r.SetStatus(status)
	})
	if err != nil {
		return Outcome[*types.Report]{}, err
	}
	n := s.done(types.TableReports, "status",
		notify.New("Status Updated", fmt.Sprintf("Report %s status changed to %s", id, status)))
	return Outcome[*types.Report]{Item: r, Notice: n}, nil
}

// ScheduleFollowUp acknowledges a follow-up inspection. Nothing is stored.
func (s *Service) ScheduleFollowUp(id string) (notify.Notice, error) {
	if _, err := s.GetReport(id); err != nil {
		return notify.Notice{}, err
	}
	return s.notifier.Notify(notify.New("Follow-up Scheduled",
		fmt.Sprintf("Follow-up inspection scheduled for %s", id))), nil
}
