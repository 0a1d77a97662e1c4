// Package fleet implements the dashboard operations on top of a
// types.Fleet: list views, add/edit/delete, domain actions and the notice
// that acknowledges each mutation.
package fleet

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/fleetops/internal/notify"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// Observer is told about every successful mutation.
type Observer interface {
	Mutation(table, action string)
}

// Outcome is the result of a mutation: the stored item and the notice
// that acknowledged it.
type Outcome[T any] struct {
	Item   T             `json:"item"`
	Notice notify.Notice `json:"notice"`
}

// Service runs the dashboard operations. It is safe for concurrent use;
// mutations are serialized so read-modify-write actions do not interleave.
type Service struct {
	fleet    types.Fleet
	notifier notify.Notifier
	observer Observer
	logger   *zap.Logger
	now      func() time.Time
	rand     *rand.Rand

	mu                 sync.Mutex
	alertNotifications bool
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sets where notices go. Defaults to notify.Discard.
func WithNotifier(n notify.Notifier) Option { return func(s *Service) { s.notifier = n } }

// WithObserver sets the mutation observer.
func WithObserver(o Observer) Option { return func(s *Service) { s.observer = o } }

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.logger = l } }

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithRand sets the random source used for report image counts.
func WithRand(r *rand.Rand) Option { return func(s *Service) { s.rand = r } }

// New creates a Service over an attached fleet.
func New(f types.Fleet, opts ...Option) *Service {
	s := &Service{
		fleet:              f,
		notifier:           notify.Discard{},
		logger:             zap.NewNop(),
		now:                time.Now,
		rand:               rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		alertNotifications: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify sends a notice that is not tied to a table mutation, such as an
// export.
func (s *Service) Notify(n notify.Notice) notify.Notice {
	return s.notifier.Notify(n)
}

// done records a successful mutation and sends its notice.
func (s *Service) done(table, action string, n notify.Notice) notify.Notice {
	s.logger.Debug("mutation",
		zap.String("table", table),
		zap.String("action", action),
	)
	if s.observer != nil {
		s.observer.Mutation(table, action)
	}
	return s.notifier.Notify(n)
}

func (s *Service) table(name string) (types.Table, error) {
	t, err := s.fleet.GetTable(name)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", name, err)
	}
	return t, nil
}

func fetchAll[T types.Entity](s *Service, table string, filter map[string]any) ([]T, error) {
	t, err := s.table(table)
	if err != nil {
		return nil, err
	}
	items, err := t.Fetch(filter)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		v, ok := it.(T)
		if !ok {
			return nil, fmt.Errorf("%s holds %T: %w", table, it, types.ErrInvalidData)
		}
		out = append(out, v)
	}
	return out, nil
}

func getOne[T types.Entity](s *Service, table, id string) (T, error) {
	var zero T
	t, err := s.table(table)
	if err != nil {
		return zero, err
	}
	it, err := t.Get(id)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", table, id, err)
	}
	v, ok := it.(T)
	if !ok {
		return zero, fmt.Errorf("%s holds %T: %w", table, it, types.ErrInvalidData)
	}
	return v, nil
}

func (s *Service) put(e types.Entity) error {
	t, err := s.table(e.TableName())
	if err != nil {
		return err
	}
	_, err = t.Set(e.EntityID(), e)
	return err
}

func (s *Service) remove(table, id string) error {
	t, err := s.table(table)
	if err != nil {
		return err
	}
	if err := t.Delete(id); err != nil {
		return fmt.Errorf("%s %s: %w", table, id, err)
	}
	return nil
}

// create stores e under a freshly generated ID.
func (s *Service) create(e types.Entity) error {
	e.SetEntityID("")
	return s.put(e)
}

// replace stores e under id, which must already exist.
func (s *Service) replace(id string, e types.Entity) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t, err := s.table(e.TableName())
	if err != nil {
		return err
	}
	if _, err := t.Get(id); err != nil {
		return fmt.Errorf("%s %s: %w", e.TableName(), id, err)
	}
	e.SetEntityID(id)
	return s.put(e)
}

// modify loads one entity, applies fn and stores it back.
func modify[T types.Entity](s *Service, table, id string, fn func(T) error) (T, error) {
	v, err := getOne[T](s, table, id)
	if err != nil {
		return v, err
	}
	if err := fn(v); err != nil {
		return v, err
	}
	if err := s.put(v); err != nil {
		return v, err
	}
	return v, nil
}

// IsNotFound reports whether err means a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, types.ErrNotFound)
}
