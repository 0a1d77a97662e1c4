package fleetmap

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Mode is fixed when a view is created.
type Mode string

const (
	ModeDrones  Mode = "drones"
	ModeHeatmap Mode = "heatmap"
)

// Style is the tile layer shown under the markers.
type Style string

const (
	StyleStreet    Style = "street"
	StyleSatellite Style = "satellite"
)

var (
	// ErrUnknownMode is returned for modes other than drones and heatmap.
	ErrUnknownMode = errors.New("unknown map mode")
	// ErrUnknownStyle is returned for styles other than street and satellite.
	ErrUnknownStyle = errors.New("unknown tile style")
	// ErrUnknownTarget is returned when selecting an ID that has no marker.
	ErrUnknownTarget = errors.New("no marker with that id")
)

// Tiles holds the tile URL templates. Templates contain {z}/{x}/{y} and a
// {key} placeholder that is replaced with APIKey.
type Tiles struct {
	StreetURL    string
	SatelliteURL string
	APIKey       string
}

// Default templates; the API key comes from configuration.
const (
	DefaultStreetURL    = "https://api.maptiler.com/maps/streets-v2/{z}/{x}/{y}.png?key={key}"
	DefaultSatelliteURL = "https://api.maptiler.com/maps/satellite/{z}/{x}/{y}.jpg?key={key}"
)

// URL returns the expanded template for style.
func (t Tiles) URL(style Style) string {
	tmpl := t.StreetURL
	if style == StyleSatellite {
		tmpl = t.SatelliteURL
	}
	return strings.ReplaceAll(tmpl, "{key}", t.APIKey)
}

// ParseMode validates a mode name. Empty means drones.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeDrones:
		return ModeDrones, nil
	case ModeHeatmap:
		return ModeHeatmap, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownMode)
	}
}

// ParseStyle validates a style name. Empty means street.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case "", StyleStreet:
		return StyleStreet, nil
	case StyleSatellite:
		return StyleSatellite, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownStyle)
	}
}

// View is one map widget. Changing the style swaps only the tile URL;
// the layer is derived from the mode and never changes.
type View struct {
	mode   Mode
	tiles  Tiles
	loader *Loader

	mu       sync.Mutex
	style    Style
	selected string
}

// NewView creates a view in the given mode with street tiles. loader may
// be nil, in which case the view reports StateLoading forever.
func NewView(mode Mode, tiles Tiles, loader *Loader) *View {
	return &View{mode: mode, tiles: tiles, loader: loader, style: StyleStreet}
}

// Mode returns the fixed mode.
func (v *View) Mode() Mode { return v.mode }

// Style returns the current tile style.
func (v *View) Style() Style {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.style
}

// ToggleStyle flips between street and satellite and returns the new style.
func (v *View) ToggleStyle() Style {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.style == StyleStreet {
		v.style = StyleSatellite
	} else {
		v.style = StyleStreet
	}
	return v.style
}

// SetStyle selects a tile style directly.
func (v *View) SetStyle(s Style) {
	v.mu.Lock()
	v.style = s
	v.mu.Unlock()
}

// TileURL is the expanded template for the current style.
func (v *View) TileURL() string {
	return v.tiles.URL(v.Style())
}

// Layer returns the circles for the view's mode.
func (v *View) Layer() []Circle {
	if v.mode == ModeHeatmap {
		return HeatmapLayer(zones)
	}
	return DroneLayer(positions)
}

// Select records id as the single selected marker, replacing any previous
// selection. Returns ErrUnknownTarget when no marker in the layer has id.
func (v *View) Select(id string) error {
	for _, c := range v.Layer() {
		if c.ID == id {
			v.mu.Lock()
			v.selected = id
			v.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("%q: %w", id, ErrUnknownTarget)
}

// ClearSelection drops the selection.
func (v *View) ClearSelection() {
	v.mu.Lock()
	v.selected = ""
	v.mu.Unlock()
}

// Selected returns the selected marker ID, or "" for none.
func (v *View) Selected() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

// Snapshot is everything a client needs to draw the view.
type Snapshot struct {
	Mode     Mode       `json:"mode"`
	Style    Style      `json:"style"`
	State    State      `json:"state"`
	TileURL  string     `json:"tileUrl"`
	Center   [2]float64 `json:"center"`
	Zoom     int        `json:"zoom"`
	MaxZoom  int        `json:"maxZoom"`
	Selected string     `json:"selected,omitempty"`
	Layer    []Circle   `json:"layer"`
}

// Snapshot captures the view's current state.
func (v *View) Snapshot() Snapshot {
	state := StateLoading
	if v.loader != nil {
		state = v.loader.State()
	}
	v.mu.Lock()
	style, selected := v.style, v.selected
	v.mu.Unlock()
	return Snapshot{
		Mode:     v.mode,
		Style:    style,
		State:    state,
		TileURL:  v.tiles.URL(style),
		Center:   [2]float64{CenterLat, CenterLng},
		Zoom:     Zoom,
		MaxZoom:  MaxZoom,
		Selected: selected,
		Layer:    v.Layer(),
	}
}
