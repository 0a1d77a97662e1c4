package fleetmap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is the tile source load state.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
)

// DefaultProbeTimeout bounds the tile probe when none is configured.
const DefaultProbeTimeout = 5 * time.Second

// Loader probes the tile source once in the background. Until the probe
// succeeds the state is loading; a failed probe is logged and never retried,
// so the state stays loading.
type Loader struct {
	url     string
	client  *http.Client
	timeout time.Duration
	logger  *zap.Logger

	once  sync.Once
	done  chan struct{}
	mu    sync.Mutex
	state State
}

// NewLoader creates a loader for the tile template url. {z}/{x}/{y} are
// filled with the world tile 0/0/0 when probing.
func NewLoader(url string, timeout time.Duration, client *http.Client, logger *zap.Logger) *Loader {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		url:     probeURL(url),
		client:  client,
		timeout: timeout,
		logger:  logger,
		done:    make(chan struct{}),
		state:   StateLoading,
	}
}

func probeURL(tmpl string) string {
	return strings.NewReplacer("{z}", "0", "{x}", "0", "{y}", "0").Replace(tmpl)
}

// Start launches the probe. Later calls do nothing.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		go l.probe(ctx)
	})
}

// Done is closed when the probe has finished, whatever its outcome.
func (l *Loader) Done() <-chan struct{} { return l.done }

// State returns the current load state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Loader) probe(ctx context.Context) {
	defer close(l.done)

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if err := l.fetch(ctx); err != nil {
		l.logger.Error("map: tile source failed to load", zap.String("url", redact(l.url)), zap.Error(err))
		return
	}
	l.mu.Lock()
	l.state = StateReady
	l.mu.Unlock()
	l.logger.Debug("map: tile source ready")
}

func (l *Loader) fetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("tile probe: status %d", resp.StatusCode)
	}
	return nil
}

// redact drops the query string so API keys stay out of logs.
func redact(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		return u[:i]
	}
	return u
}
