package server

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/fleetops/internal/fleet"
	"github.com/mesh-intelligence/fleetops/internal/notify"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// noResults is the message attached to an empty filtered list.
const noResults = "no results"

type listResponse struct {
	Items   any    `json:"items"`
	Count   int    `json:"count"`
	Total   int    `json:"total"`
	Message string `json:"message,omitempty"`
}

type deleteResponse struct {
	ID     string        `json:"id"`
	Notice notify.Notice `json:"notice"`
}

// crud holds the service calls behind one collection. Nil calls leave the
// matching route unregistered.
type crud[T types.Entity] struct {
	list   func(map[string]any) ([]T, error)
	get    func(string) (T, error)
	blank  func() T
	create func(T) (fleet.Outcome[T], error)
	update func(string, T) (fleet.Outcome[T], error)
	remove func(string) (notify.Notice, error)
}

func (c crud[T]) mount(r chi.Router, s *Server, name string) {
	base := "/" + name
	item := base + "/{id}"

	r.Get(base, func(w http.ResponseWriter, req *http.Request) {
		items, err := c.list(queryFilter(req))
		if err != nil {
			s.fail(w, err)
			return
		}
		all, err := c.list(nil)
		if err != nil {
			s.fail(w, err)
			return
		}
		resp := listResponse{Items: items, Count: len(items), Total: len(all)}
		if len(items) == 0 {
			resp.Message = noResults
		}
		writeJSON(w, http.StatusOK, resp)
	})

	if c.get != nil {
		r.Get(item, func(w http.ResponseWriter, req *http.Request) {
			v, err := c.get(chi.URLParam(req, "id"))
			if err != nil {
				s.fail(w, err)
				return
			}
			writeJSON(w, http.StatusOK, v)
		})
	}

	if c.create != nil {
		r.Post(base, func(w http.ResponseWriter, req *http.Request) {
			v := c.blank()
			if err := decode(w, req, v); err != nil {
				s.fail(w, err)
				return
			}
			out, err := c.create(v)
			if err != nil {
				s.fail(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, out)
		})
	}

	// Updates merge the body over the stored record, so clients may send
	// only the fields that changed.
	if c.update != nil && c.get != nil {
		r.Put(item, func(w http.ResponseWriter, req *http.Request) {
			id := chi.URLParam(req, "id")
			v, err := c.get(id)
			if err != nil {
				s.fail(w, err)
				return
			}
			if err := decode(w, req, v); err != nil {
				s.fail(w, err)
				return
			}
			out, err := c.update(id, v)
			if err != nil {
				s.fail(w, err)
				return
			}
			writeJSON(w, http.StatusOK, out)
		})
	}

	if c.remove != nil {
		r.Delete(item, func(w http.ResponseWriter, req *http.Request) {
			id := chi.URLParam(req, "id")
			n, err := c.remove(id)
			if err != nil {
				s.fail(w, err)
				return
			}
			writeJSON(w, http.StatusOK, deleteResponse{ID: id, Notice: n})
		})
	}
}

func (s *Server) resourceRoutes(r chi.Router) {
	svc := s.svc

	crud[*types.Drone]{
		list: svc.ListDrones, get: svc.GetDrone, blank: types.NewDrone,
		create: svc.AddDrone, update: svc.UpdateDrone, remove: svc.DeleteDrone,
	}.mount(r, s, types.TableDrones)

	crud[*types.Alert]{
		list: svc.ListAlerts, get: svc.GetAlert, blank: func() *types.Alert { return &types.Alert{} },
		create: svc.RaiseAlert, remove: svc.DismissAlert,
	}.mount(r, s, types.TableAlerts)

	crud[*types.Report]{
		list: svc.ListReports, get: svc.GetReport, blank: types.NewReport,
		create: svc.CreateReport, update: svc.UpdateReport, remove: svc.DeleteReport,
	}.mount(r, s, types.TableReports)

	crud[*types.MaintenanceTask]{
		list: svc.ListMaintenance, get: svc.GetMaintenance, blank: types.NewMaintenanceTask,
		create: svc.ScheduleMaintenance, update: svc.UpdateMaintenance, remove: svc.DeleteMaintenance,
	}.mount(r, s, types.TableMaintenance)

	crud[*types.MissionTask]{
		list: svc.ListMissions, get: svc.GetMission, blank: types.NewMissionTask,
		create: svc.ScheduleMission, update: svc.UpdateMission, remove: svc.DeleteMission,
	}.mount(r, s, types.TableMissions)

	crud[*types.User]{
		list: svc.ListUsers, get: svc.GetUser, blank: types.NewUser,
		create: svc.AddUser, update: svc.UpdateUser, remove: svc.DeleteUser,
	}.mount(r, s, types.TableUsers)

	crud[*types.Notification]{list: svc.ListNotifications}.mount(r, s, types.TableNotifications)
}
