// Package server exposes the fleet dashboard over HTTP with chi.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"slices"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/fleetops/internal/charts"
	"github.com/mesh-intelligence/fleetops/internal/export"
	"github.com/mesh-intelligence/fleetops/internal/fleet"
	"github.com/mesh-intelligence/fleetops/internal/fleetmap"
	"github.com/mesh-intelligence/fleetops/internal/metrics"
	"github.com/mesh-intelligence/fleetops/internal/notify"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// ErrNoService is returned by New without a fleet service.
var ErrNoService = errors.New("server: fleet service required")

// shutdownTimeout bounds graceful shutdown once the context is cancelled.
const shutdownTimeout = 5 * time.Second

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// NoticeSource lists the most recent notices. *notify.Feed implements it.
type NoticeSource interface {
	Recent(n int) []notify.Notice
}

// Options wires a Server. Only Service is required.
type Options struct {
	Service *fleet.Service
	Notices NoticeSource
	Maps    []*fleetmap.View
	Monitor *charts.Monitor
	Metrics *metrics.Recorder
	Logger  *zap.Logger
}

// Server routes dashboard requests to the fleet service.
type Server struct {
	router  chi.Router
	svc     *fleet.Service
	notices NoticeSource
	maps    map[fleetmap.Mode]*fleetmap.View
	monitor *charts.Monitor
	metrics *metrics.Recorder
	logger  *zap.Logger
}

// New builds the router. Missing optional parts get defaults: no notices,
// one street-tile view per map mode, a freshly seeded monitor, a private
// metrics registry and a no-op logger.
func New(o Options) (*Server, error) {
	if o.Service == nil {
		return nil, ErrNoService
	}
	s := &Server{
		router:  chi.NewRouter(),
		svc:     o.Service,
		notices: o.Notices,
		maps:    make(map[fleetmap.Mode]*fleetmap.View),
		monitor: o.Monitor,
		metrics: o.Metrics,
		logger:  o.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.monitor == nil {
		seed := uint64(time.Now().UnixNano())
		s.monitor = charts.NewMonitor(rand.New(rand.NewPCG(seed, seed>>1)))
	}
	for _, v := range o.Maps {
		s.maps[v.Mode()] = v
	}
	tiles := fleetmap.Tiles{StreetURL: fleetmap.DefaultStreetURL, SatelliteURL: fleetmap.DefaultSatelliteURL}
	for _, m := range []fleetmap.Mode{fleetmap.ModeDrones, fleetmap.ModeHeatmap} {
		if _, ok := s.maps[m]; !ok {
			s.maps[m] = fleetmap.NewView(m, tiles, nil)
		}
	}
	s.routes()
	s.logger.Info("api: server ready", zap.Int("maps", len(s.maps)))
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.metrics.Middleware)
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			s.logger.Debug("api: request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("dur", time.Since(start)))
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	s.router.Get("/export/{file}", s.handleExport)
	s.router.Get("/charts/{page}", s.handleChartPage)

	s.router.Route("/api/v1", func(r chi.Router) {
		s.resourceRoutes(r)
		s.actionRoutes(r)

		r.Get("/stats", s.handleStats)
		r.Get("/search", s.handleSearch)
		r.Get("/notices", s.handleNotices)

		r.Get("/map", s.handleMap)
		r.Post("/map/style", s.handleMapStyle)
		r.Post("/map/select", s.handleMapSelect)

		r.Get("/charts/voc", s.handleVOC)
		r.Get("/charts/performance", s.handlePerformance)
		r.Get("/charts/realtime", s.handleRealTime)
		r.Post("/charts/realtime/refresh", s.handleRealTimeRefresh)
	})
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. Returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("api: listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errCh
	s.logger.Info("api: stopped")
	return nil
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrTableNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidFilter),
		errors.Is(err, types.ErrInvalidStatus),
		errors.Is(err, types.ErrInvalidValue),
		errors.Is(err, types.ErrInvalidName),
		errors.Is(err, types.ErrMissingField),
		errors.Is(err, export.ErrUnknownView),
		errors.Is(err, charts.ErrUnknownChart),
		errors.Is(err, fleetmap.ErrUnknownMode),
		errors.Is(err, fleetmap.ErrUnknownStyle),
		errors.Is(err, fleetmap.ErrUnknownTarget):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("api: request failed", zap.Int("status", status), zap.Error(err))
	} else {
		s.logger.Warn("api: request failed", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// fail writes err with the status statusFor picks.
func (s *Server) fail(w http.ResponseWriter, err error) {
	s.writeError(w, statusFor(err), err)
}

// decode reads a JSON body into dst. Malformed bodies are ErrInvalidData.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	return nil
}

// queryFilter turns query parameters into a filter map, dropping skip keys.
func queryFilter(r *http.Request, skip ...string) map[string]any {
	q := r.URL.Query()
	out := make(map[string]any, len(q))
	for k, vs := range q {
		if len(vs) == 0 || slices.Contains(skip, k) {
			continue
		}
		out[k] = vs[0]
	}
	return out
}
