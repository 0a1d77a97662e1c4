package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFeedRecent(t *testing.T) {
	f := NewFeed(3, nil)
	assert.Empty(t, f.Recent(0))

	for i := 1; i <= 5; i++ {
		f.Notify(New(fmt.Sprintf("n%d", i), ""))
	}

	assert.Equal(t, 3, f.Len())
	got := f.Recent(0)
	require.Len(t, got, 3)
	assert.Equal(t, "n5", got[0].Title)
	assert.Equal(t, "n3", got[2].Title)

	got = f.Recent(2)
	require.Len(t, got, 2)
	assert.Equal(t, "n4", got[1].Title)
}

func TestFeedNotifyStamps(t *testing.T) {
	fixed := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	f := NewFeed(0, nil)
	f.now = func() time.Time { return fixed }

	n := f.Notify(Notice{Title: "Drone Removed"})
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, VariantDefault, n.Variant)
	assert.Equal(t, fixed, n.CreatedAt)

	d := f.Notify(Destructive("Emergency Landing", "DR-001 executing emergency landing protocol"))
	assert.Equal(t, VariantDestructive, d.Variant)
	assert.NotEqual(t, n.ID, d.ID)
}

func TestFeedLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	f := NewFeed(4, zap.New(core))

	f.Notify(New("Alert Resolved", "Alert has been marked as resolved."))

	entries := logs.FilterMessage("notice").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Alert Resolved", entries[0].ContextMap()["title"])
}
