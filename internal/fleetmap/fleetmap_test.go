package fleetmap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"active", ColorActive},
		{"charging", ColorCharging},
		{"returning", ColorReturning},
		{"maintenance", ColorOther},
		{"Active", ColorOther},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusColor(tt.status))
		})
	}
}

func TestClassifyVOC(t *testing.T) {
	tests := []struct {
		voc     float64
		level   string
		color   string
		opacity float64
	}{
		{8, "Safe", "#10b981", 0.4},
		{10, "Safe", "#10b981", 0.4},
		{15, "Safe", "#10b981", 0.4},
		{16, "Moderate", "#f59e0b", 0.6},
		{30, "Moderate", "#f59e0b", 0.6},
		{31, "High Risk", "#ef4444", 0.8},
		{35, "High Risk", "#ef4444", 0.8},
		{42, "High Risk", "#ef4444", 0.8},
	}
	for _, tt := range tests {
		r := ClassifyVOC(tt.voc)
		assert.Equal(t, tt.level, r.Level, "voc %v", tt.voc)
		assert.Equal(t, tt.color, r.Color, "voc %v", tt.voc)
		assert.Equal(t, tt.opacity, r.Opacity, "voc %v", tt.voc)
	}
}

func TestLayers(t *testing.T) {
	drones := DroneLayer(Positions())
	require.Len(t, drones, 6)
	for _, c := range drones {
		assert.Equal(t, float64(MarkerRadius), c.Radius)
	}
	assert.Equal(t, ColorReturning, drones[5].Color)

	heat := HeatmapLayer(Zones())
	require.Len(t, heat, 6)
	assert.Equal(t, 1500.0, heat[2].Radius)
	assert.Equal(t, "High Risk", heat[2].Detail)
	assert.Equal(t, "Safe", heat[0].Detail, "15 PPM is not above the moderate line")
}

func TestViewToggleKeepsLayer(t *testing.T) {
	tiles := Tiles{StreetURL: DefaultStreetURL, SatelliteURL: DefaultSatelliteURL, APIKey: "k"}
	v := NewView(ModeHeatmap, tiles, nil)

	before := v.Layer()
	assert.Equal(t, "https://api.maptiler.com/maps/streets-v2/{z}/{x}/{y}.png?key=k", v.TileURL())

	assert.Equal(t, StyleSatellite, v.ToggleStyle())
	assert.Equal(t, "https://api.maptiler.com/maps/satellite/{z}/{x}/{y}.jpg?key=k", v.TileURL())
	assert.Equal(t, before, v.Layer())

	assert.Equal(t, StyleStreet, v.ToggleStyle())
	assert.Equal(t, ModeHeatmap, v.Mode())
}

func TestViewSelect(t *testing.T) {
	v := NewView(ModeDrones, Tiles{}, nil)
	assert.Empty(t, v.Selected())

	require.NoError(t, v.Select("D002"))
	require.NoError(t, v.Select("D004"))
	assert.Equal(t, "D004", v.Selected(), "selection replaces")

	assert.ErrorIs(t, v.Select("B"), ErrUnknownTarget, "zones are not in drone mode")
	assert.Equal(t, "D004", v.Selected())

	v.ClearSelection()
	assert.Empty(t, v.Selected())

	snap := v.Snapshot()
	assert.Equal(t, StateLoading, snap.State)
	assert.Equal(t, [2]float64{40.7128, -74.006}, snap.Center)
	assert.Equal(t, 11, snap.Zoom)
	assert.Equal(t, 18, snap.MaxZoom)
}

func TestParseModeAndStyle(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeDrones, m)
	_, err = ParseMode("3d")
	assert.ErrorIs(t, err, ErrUnknownMode)

	s, err := ParseStyle("satellite")
	require.NoError(t, err)
	assert.Equal(t, StyleSatellite, s)
	_, err = ParseStyle("terrain")
	assert.ErrorIs(t, err, ErrUnknownStyle)
}

func TestLoaderReady(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/0/0/0.png", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	l := NewLoader(srv.URL+"/{z}/{x}/{y}.png?key=secret", time.Second, srv.Client(), nil)
	assert.Equal(t, StateLoading, l.State())

	l.Start(context.Background())
	l.Start(context.Background())
	<-l.Done()

	assert.Equal(t, StateReady, l.State())
	assert.Equal(t, int32(1), hits.Load(), "probe runs once")
}

func TestLoaderFailureStaysLoading(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	core, logs := observer.New(zap.ErrorLevel)
	l := NewLoader(srv.URL+"/{z}/{x}/{y}.png?key=secret", time.Second, srv.Client(), zap.New(core))
	l.Start(context.Background())
	<-l.Done()

	assert.Equal(t, StateLoading, l.State())
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].ContextMap()["url"], "secret")

	v := NewView(ModeDrones, Tiles{}, l)
	assert.Equal(t, StateLoading, v.Snapshot().State)
}

func TestLoaderTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	l := NewLoader(srv.URL+"/{z}/{x}/{y}.png", 20*time.Millisecond, srv.Client(), nil)
	l.Start(context.Background())
	select {
	case <-l.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("probe did not honour its timeout")
	}
	assert.Equal(t, StateLoading, l.State())
}
