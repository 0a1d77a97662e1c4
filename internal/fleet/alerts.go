package fleet

import (
	"github.com/mesh-intelligence/fleetops/internal/notify"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// AlertSummary holds the counters above the alert list.
type AlertSummary struct {
	CriticalActive int `json:"criticalActive"`
	WarningActive  int `json:"warningActive"`
	Resolved       int `json:"resolved"`
}

// ListAlerts returns the alerts matching filter.
func (s *Service) ListAlerts(filter map[string]any) ([]*types.Alert, error) {
	return fetchAll[*types.Alert](s, types.TableAlerts, filter)
}

// GetAlert returns one alert.
func (s *Service) GetAlert(id string) (*types.Alert, error) {
	return getOne[*types.Alert](s, types.TableAlerts, id)
}

// RaiseAlert appends a new alert with the next numeric ID.
func (s *Service) RaiseAlert(a *types.Alert) (Outcome[*types.Alert], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.Status == "" {
		a.Status = types.AlertStatusActive
	}
	if a.Time == "" {
		a.Time = "Just now"
	}
	if err := s.create(a); err != nil {
		return Outcome[*types.Alert]{}, err
	}
	n := s.done(types.TableAlerts, "raise", notify.New("Alert Raised", a.Message))
	return Outcome[*types.Alert]{Item: a, Notice: n}, nil
}

// AcknowledgeAlert marks the alert In Progress.
func (s *Service) AcknowledgeAlert(id string) (Outcome[*types.Alert], error) {
	return s.alertAction(id, "acknowledge", (*types.Alert).Acknowledge,
		notify.New("Alert Acknowledged", "Alert has been acknowledged and marked as in progress."))
}

// ResolveAlert marks the alert Resolved.
func (s *Service) ResolveAlert(id string) (Outcome[*types.Alert], error) {
	return s.alertAction(id, "resolve", (*types.Alert).Resolve,
		notify.New("Alert Resolved", "Alert has been marked as resolved."))
}

// DismissAlert removes the alert from the list.
func (s *Service) DismissAlert(id string) (notify.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.remove(types.TableAlerts, id); err != nil {
		return notify.Notice{}, err
	}
	return s.done(types.TableAlerts, "dismiss",
		notify.New("Alert Dismissed", "Alert has been removed from the list.")), nil
}

// ClearAlerts removes every alert that is not Active and returns how many
// went.
func (s *Service) ClearAlerts() (int, notify.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alerts, err := s.ListAlerts(nil)
	if err != nil {
		return 0, notify.Notice{}, err
	}
	removed := 0
	for _, a := range alerts {
		if a.Status == types.AlertStatusActive {
			continue
		}
		if err := s.remove(types.TableAlerts, a.ID); err != nil {
			return removed, notify.Notice{}, err
		}
		removed++
	}
	n := s.done(types.TableAlerts, "clear",
		notify.New("Alerts Cleared", "All resolved and in-progress alerts have been cleared."))
	return removed, n, nil
}

// ToggleAlertNotifications flips alert notifications on or off and returns
// the new setting.
func (s *Service) ToggleAlertNotifications() (bool, notify.Notice) {
	s.mu.Lock()
	s.alertNotifications = !s.alertNotifications
	on := s.alertNotifications
	s.mu.Unlock()

	if on {
		return on, s.notifier.Notify(notify.New("Notifications Enabled", "Alert notifications have been enabled."))
	}
	return on, s.notifier.Notify(notify.New("Notifications Disabled", "Alert notifications have been disabled."))
}

// AlertNotificationsEnabled reports the current toggle state.
func (s *Service) AlertNotificationsEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alertNotifications
}

// SummarizeAlerts counts active critical, active warning and resolved alerts.
func (s *Service) SummarizeAlerts() (AlertSummary, error) {
	alerts, err := s.ListAlerts(nil)
	if err != nil {
		return AlertSummary{}, err
	}
	var sum AlertSummary
	for _, a := range alerts {
		switch {
		case a.Status == types.AlertStatusResolved:
			sum.Resolved++
		case a.Status == types.AlertStatusActive && a.Type == types.AlertTypeCritical:
			sum.CriticalActive++
		case a.Status == types.AlertStatusActive && a.Type == types.AlertTypeWarning:
			sum.WarningActive++
		}
	}
	return sum, nil
}

func (s *Service) alertAction(id, action string, apply func(*types.Alert), n notify.Notice) (Outcome[*types.Alert], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := modify(s, types.TableAlerts, id, func(a *types.Alert) error {
		apply(a)
		return nil
	})
	if err != nil {
		return Outcome[*types.Alert]{}, err
	}
	return Outcome[*types.Alert]{Item: a, Notice: s.done(types.TableAlerts, action, n)}, nil
}
