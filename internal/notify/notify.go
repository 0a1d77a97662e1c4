// Package notify carries the transient acknowledgements (toasts) that
// follow every mutation. Notices are kept in a bounded feed and logged.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Variant selects how a notice is presented.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notice is one acknowledgement shown to the operator.
type Notice struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     Variant   `json:"variant"`
	CreatedAt   time.Time `json:"createdAt"`
}

// New returns a default-variant notice.
func New(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: VariantDefault}
}

// Destructive returns a destructive-variant notice.
func Destructive(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: VariantDestructive}
}

// Notifier receives notices.
type Notifier interface {
	Notify(n Notice) Notice
}

// DefaultHistory is the feed size used when NewFeed is given zero.
const DefaultHistory = 50

// Feed keeps the most recent notices in a ring buffer.
type Feed struct {
	mu     sync.Mutex
	buf    []Notice
	next   int
	full   bool
	now    func() time.Time
	logger *zap.Logger
}

// NewFeed creates a feed holding up to limit notices. A nil logger is
// replaced with a no-op logger.
func NewFeed(limit int, logger *zap.Logger) *Feed {
	if limit <= 0 {
		limit = DefaultHistory
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{buf: make([]Notice, limit), now: time.Now, logger: logger}
}

// Notify stamps n with an ID and time, stores it, and returns the stored
// notice. The oldest notice is dropped when the feed is full.
func (f *Feed) Notify(n Notice) Notice {
	if n.Variant == "" {
		n.Variant = VariantDefault
	}
	if n.ID == "" {
		n.ID = uuid.Must(uuid.NewV7()).String()
	}

	f.mu.Lock()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = f.now()
	}
	f.buf[f.next] = n
	f.next = (f.next + 1) % len(f.buf)
	if f.next == 0 {
		f.full = true
	}
	f.mu.Unlock()

	f.logger.Info("notice",
		zap.String("title", n.Title),
		zap.String("description", n.Description),
		zap.String("variant", string(n.Variant)),
	)
	return n
}

// Len returns the number of notices held.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.full {
		return len(f.buf)
	}
	return f.next
}

// Recent returns up to n notices, newest first. n <= 0 returns all held.
func (f *Feed) Recent(n int) []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()

	held := f.next
	if f.full {
		held = len(f.buf)
	}
	if n <= 0 || n > held {
		n = held
	}
	out := make([]Notice, 0, n)
	for i := 1; i <= n; i++ {
		idx := (f.next - i + len(f.buf)) % len(f.buf)
		out = append(out, f.buf[idx])
	}
	return out
}

// Discard is a Notifier that keeps nothing.
type Discard struct{}

func (Discard) Notify(n Notice) Notice {
	if n.Variant == "" {
		n.Variant = VariantDefault
	}
	return n
}
