package server

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/fleetops/internal/notify"
)

// act adapts an ID-only action to a handler.
func act[T any](s *Server, fn func(id string) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := fn(chi.URLParam(r, "id"))
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// actWith adapts an action taking one string from the JSON body field.
// A missing field is passed as "" and left to the service to reject.
func actWith[T any](s *Server, field string, fn func(id, value string) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := decode(w, r, &body); err != nil {
			s.fail(w, err)
			return
		}
		out, err := fn(chi.URLParam(r, "id"), body[field])
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type clearResponse struct {
	Removed int           `json:"removed"`
	Notice  notify.Notice `json:"notice"`
}

type toggleResponse struct {
	Enabled bool           `json:"enabled"`
	Notice  *notify.Notice `json:"notice,omitempty"`
}

func (s *Server) actionRoutes(r chi.Router) {
	svc := s.svc

	r.Post("/drones/{id}/return", act(s, svc.ReturnDrone))
	r.Post("/drones/{id}/emergency-land", act(s, svc.EmergencyLand))
	r.Post("/drones/{id}/start-mission", act(s, svc.StartDroneMission))

	r.Get("/alerts/summary", func(w http.ResponseWriter, req *http.Request) {
		sum, err := svc.SummarizeAlerts()
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	})
	r.Post("/alerts/clear", func(w http.ResponseWriter, req *http.Request) {
		removed, n, err := svc.ClearAlerts()
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, clearResponse{Removed: removed, Notice: n})
	})
	r.Get("/alerts/notifications", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, toggleResponse{Enabled: svc.AlertNotificationsEnabled()})
	})
	r.Post("/alerts/notifications/toggle", func(w http.ResponseWriter, req *http.Request) {
		on, n := svc.ToggleAlertNotifications()
		writeJSON(w, http.StatusOK, toggleResponse{Enabled: on, Notice: &n})
	})
	r.Post("/alerts/{id}/acknowledge", act(s, svc.AcknowledgeAlert))
	r.Post("/alerts/{id}/resolve", act(s, svc.ResolveAlert))

	r.Post("/reports/{id}/status", actWith(s, "status", svc.UpdateReportStatus))
	r.Post("/reports/{id}/follow-up", act(s, svc.ScheduleFollowUp))

	r.Get("/maintenance/counts", func(w http.ResponseWriter, req *http.Request) {
		c, err := svc.CountMaintenance()
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	})
	r.Post("/maintenance/{id}/status", actWith(s, "status", svc.UpdateMaintenanceStatus))
	r.Post("/maintenance/{id}/reschedule", actWith(s, "dueDate", svc.RescheduleMaintenance))
	r.Post("/maintenance/{id}/assign", actWith(s, "assignedTo", svc.AssignMaintenance))

	r.Post("/missions/{id}/start", act(s, svc.StartMissionTask))
	r.Post("/missions/{id}/complete", act(s, svc.CompleteMissionTask))

	r.Post("/users/{id}/reset-password", act(s, svc.ResetPassword))

	r.Get("/notifications/unread", func(w http.ResponseWriter, req *http.Request) {
		n, err := svc.UnreadCount()
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"unread": n})
	})
	r.Post("/notifications/read-all", func(w http.ResponseWriter, req *http.Request) {
		n, err := svc.MarkAllNotificationsRead()
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, n)
	})
	r.Post("/notifications/{id}/read", act(s, svc.MarkNotificationRead))
}
