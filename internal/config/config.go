// Package config loads fleetops settings from config.yaml with viper.
// A default file is written on first run; FLEETOPS_ environment variables
// override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/fleetops/internal/fleetmap"
	"github.com/mesh-intelligence/fleetops/internal/logging"
	"github.com/mesh-intelligence/fleetops/internal/notify"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "FLEETOPS"
)

// Config keys.
const (
	KeyBackend         = "backend"
	KeyListen          = "listen"
	KeyLogLevel        = "log_level"
	KeySeed            = "seed"
	KeyExportDir       = "export_dir"
	KeyNoticesHistory  = "notices.history"
	KeyMapTileKey      = "map.tile_key"
	KeyMapStreetURL    = "map.street_url"
	KeyMapSatelliteURL = "map.satellite_url"
	KeyMapProbeTimeout = "map.probe_timeout"
)

// DefaultListen is the serve address when none is configured.
const DefaultListen = "127.0.0.1:8080"

const (
	fileMode = 0o644
	dirMode  = 0o755
)

// Settings is the resolved configuration.
type Settings struct {
	Backend        string
	Listen         string
	LogLevel       string
	Seed           bool
	ExportDir      string
	NoticesHistory int
	Tiles          fleetmap.Tiles
	ProbeTimeout   time.Duration
}

// Fleet returns the backend configuration for Attach.
func (s Settings) Fleet() types.Config {
	return types.Config{Backend: s.Backend, Seed: s.Seed}
}

// file mirrors config.yaml for WriteDefault.
type file struct {
	Backend   string      `yaml:"backend"`
	Listen    string      `yaml:"listen"`
	LogLevel  string      `yaml:"log_level"`
	Seed      bool        `yaml:"seed"`
	ExportDir string      `yaml:"export_dir,omitempty"`
	Notices   noticesFile `yaml:"notices"`
	Map       mapFile     `yaml:"map"`
}

type noticesFile struct {
	History int `yaml:"history"`
}

type mapFile struct {
	TileKey      string `yaml:"tile_key"`
	StreetURL    string `yaml:"street_url"`
	SatelliteURL string `yaml:"satellite_url"`
	ProbeTimeout string `yaml:"probe_timeout"`
}

func defaults() file {
	return file{
		Backend:  types.BackendMemDB,
		Listen:   DefaultListen,
		LogLevel: logging.DefaultLevel,
		Seed:     true,
		Notices:  noticesFile{History: notify.DefaultHistory},
		Map: mapFile{
			StreetURL:    fleetmap.DefaultStreetURL,
			SatelliteURL: fleetmap.DefaultSatelliteURL,
			ProbeTimeout: fleetmap.DefaultProbeTimeout.String(),
		},
	}
}

// Path returns the config.yaml path inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, configFileExt)
}

// Load reads config.yaml from configDir, creating the directory and a
// default file when missing. Returns ErrBackendUnknown (wrapped) when the
// configured backend is not recognized.
func Load(configDir string) (Settings, error) {
	if _, err := WriteDefault(configDir, false); err != nil {
		return Settings{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	d := defaults()
	v.SetDefault(KeyBackend, d.Backend)
	v.SetDefault(KeyListen, d.Listen)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeySeed, d.Seed)
	v.SetDefault(KeyExportDir, "")
	v.SetDefault(KeyNoticesHistory, d.Notices.History)
	v.SetDefault(KeyMapTileKey, "")
	v.SetDefault(KeyMapStreetURL, d.Map.StreetURL)
	v.SetDefault(KeyMapSatelliteURL, d.Map.SatelliteURL)
	v.SetDefault(KeyMapProbeTimeout, d.Map.ProbeTimeout)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	s := Settings{
		Backend:        v.GetString(KeyBackend),
		Listen:         v.GetString(KeyListen),
		LogLevel:       v.GetString(KeyLogLevel),
		Seed:           v.GetBool(KeySeed),
		ExportDir:      v.GetString(KeyExportDir),
		NoticesHistory: v.GetInt(KeyNoticesHistory),
		Tiles: fleetmap.Tiles{
			StreetURL:    v.GetString(KeyMapStreetURL),
			SatelliteURL: v.GetString(KeyMapSatelliteURL),
			APIKey:       v.GetString(KeyMapTileKey),
		},
		ProbeTimeout: v.GetDuration(KeyMapProbeTimeout),
	}
	if err := s.Fleet().Validate(); err != nil {
		return Settings{}, fmt.Errorf("config %s: %w", KeyBackend, err)
	}
	return s, nil
}

// WriteDefault writes a default config.yaml into configDir. An existing
// file is left alone unless overwrite is set. Reports whether a file was
// written.
func WriteDefault(configDir string, overwrite bool) (bool, error) {
	if err := os.MkdirAll(configDir, dirMode); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}

	path := Path(configDir)
	if !overwrite {
		_, err := os.Stat(path)
		if err == nil {
			return false, nil
		}
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("stat config file: %w", err)
		}
	}

	d := defaults()
	data, err := yaml.Marshal(&d)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# fleetops configuration\n# Environment variables FLEETOPS_<KEY> override these values.\n")
	if err := os.WriteFile(path, append(header, data...), fileMode); err != nil {
		return false, err
	}
	return true, nil
}
