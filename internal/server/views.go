package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	chi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/fleetops/internal/charts"
	"github.com/mesh-intelligence/fleetops/internal/export"
	"github.com/mesh-intelligence/fleetops/internal/fleetmap"
	"github.com/mesh-intelligence/fleetops/internal/notify"
)

// defaultNoticeLimit is how many notices /notices returns without ?limit.
const defaultNoticeLimit = 10

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	view := strings.TrimSuffix(chi.URLParam(r, "file"), ".csv")
	rng := charts.ParseRange(r.URL.Query().Get("range"))

	sheet, err := export.Build(s.svc, view, queryFilter(r, "range"), rng)
	if err != nil {
		s.fail(w, err)
		return
	}
	data, err := sheet.Bytes()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.metrics.Export(view)
	s.svc.Notify(export.Notice(view))
	s.logger.Info("api: export", zap.String("view", view), zap.Int("lines", sheet.Len()))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sheet.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleChartPage(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(chi.URLParam(r, "page"), ".html")
	var buf bytes.Buffer
	if err := charts.Render(&buf, name, charts.ParseRange(r.URL.Query().Get("range"))); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.DashboardStats()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	hits, err := s.svc.Search(r.URL.Query().Get("q"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hits": hits, "count": len(hits)})
}

func (s *Server) handleNotices(w http.ResponseWriter, r *http.Request) {
	limit := defaultNoticeLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("limit %q: must be a non-negative integer", v))
			return
		}
		limit = n
	}
	notices := []notify.Notice{}
	if s.notices != nil {
		notices = append(notices, s.notices.Recent(limit)...)
	}
	writeJSON(w, http.StatusOK, map[string]any{"notices": notices})
}

// view resolves the map widget for a mode name; "" is the drone map.
func (s *Server) view(mode string) (*fleetmap.View, error) {
	m, err := fleetmap.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return s.maps[m], nil
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	v, err := s.view(r.URL.Query().Get("mode"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v.Snapshot())
}

type mapRequest struct {
	Mode  string `json:"mode"`
	Style string `json:"style"`
	ID    string `json:"id"`
}

// handleMapStyle sets the tile style, or toggles it when none is given.
// Only the tile URL changes; the layer stays as it was.
func (s *Server) handleMapStyle(w http.ResponseWriter, r *http.Request) {
	var req mapRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	v, err := s.view(req.Mode)
	if err != nil {
		s.fail(w, err)
		return
	}
	if req.Style == "" {
		v.ToggleStyle()
	} else {
		st, err := fleetmap.ParseStyle(req.Style)
		if err != nil {
			s.fail(w, err)
			return
		}
		v.SetStyle(st)
	}
	writeJSON(w, http.StatusOK, v.Snapshot())
}

// handleMapSelect selects one marker; an empty id clears the selection.
func (s *Server) handleMapSelect(w http.ResponseWriter, r *http.Request) {
	var req mapRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	v, err := s.view(req.Mode)
	if err != nil {
		s.fail(w, err)
		return
	}
	if req.ID == "" {
		v.ClearSelection()
	} else if err := v.Select(req.ID); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v.Snapshot())
}

type vocResponse struct {
	Range     charts.Range   `json:"range"`
	Threshold float64        `json:"threshold"`
	Points    []charts.Point `json:"points"`
	Trend     charts.Trend   `json:"trend"`
}

func (s *Server) handleVOC(w http.ResponseWriter, r *http.Request) {
	rng := charts.ParseRange(r.URL.Query().Get("range"))
	writeJSON(w, http.StatusOK, vocResponse{
		Range:     rng,
		Threshold: charts.VOCThreshold,
		Points:    charts.VOCSeries(rng),
		Trend:     charts.VOCTrend(rng),
	})
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"days":     charts.Efficiency(),
		"missions": charts.MissionOutcomes(),
	})
}

func (s *Server) handleRealTime(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.monitor.Snapshot())
}

func (s *Server) handleRealTimeRefresh(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.monitor.Refresh())
}
