// Package config loads, validates and saves the editor settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where the configuration lives unless --config says otherwise.
const DefaultPath = "./data/config.toml"

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid configuration")

// Storage backends.
const (
	BackendMemory  = "memory"
	BackendSQLite  = "sqlite"
	BackendAccount = "account"
)

// Config holds every section of the configuration file.
type Config struct {
	Storage     StorageConfig     `toml:"storage"`
	Log         LogConfig         `toml:"log"`
	Layout      LayoutConfig      `toml:"layout"`
	Interaction InteractionConfig `toml:"interaction"`
	Palette     PaletteConfig     `toml:"palette"`
	History     HistoryConfig     `toml:"history"`
	Places      PlacesConfig      `toml:"places"`
}

// StorageConfig selects where the forest is persisted.
type StorageConfig struct {
	Backend      string `toml:"backend"` // "memory", "sqlite", "account"
	DatabaseDir  string `toml:"database_dir"`
	DatabaseFile string `toml:"database_file"`
	Key          string `toml:"key"`
}

// LogConfig controls the log files.
type LogConfig struct {
	Folder      string `toml:"folder"`
	CommandLog  string `toml:"command_log"`
	ErrorLog    string `toml:"error_log"`
	InfoLog     string `toml:"info_log"`
	HistoryFile string `toml:"history_file"` // REPL line history
	Level       string `toml:"level"`        // "debug", "info", "warn", "error"
}

// LayoutConfig holds the force simulation constants.
type LayoutConfig struct {
	Width           float64 `toml:"width"`
	Height          float64 `toml:"height"`
	ChargeStrength  float64 `toml:"charge_strength"`
	LinkDistance    float64 `toml:"link_distance"`
	CenterStrength  float64 `toml:"center_strength"`
	CollideDistance float64 `toml:"collide_distance"`
	AlphaDecay      float64 `toml:"alpha_decay"`
	AlphaMin        float64 `toml:"alpha_min"`
	VelocityDecay   float64 `toml:"velocity_decay"`
	Margin          float64 `toml:"margin"`
	DragAlphaTarget float64 `toml:"drag_alpha_target"`
}

// TrashConfig is the trash zone rectangle in canvas units.
type TrashConfig struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// InteractionConfig holds drag and drop geometry.
type InteractionConfig struct {
	Trash            TrashConfig `toml:"trash"`
	NodeRadius       float64     `toml:"node_radius"`
	ReparentRadius   float64     `toml:"reparent_radius"`
	ClickThresholdMS int         `toml:"click_threshold_ms"`
}

// ClickThreshold returns the drag versus click cutoff.
func (c InteractionConfig) ClickThreshold() time.Duration {
	return time.Duration(c.ClickThresholdMS) * time.Millisecond
}

// PaletteConfig lists the subtree colors.
type PaletteConfig struct {
	DefaultColor string   `toml:"default_color"`
	Colors       []string `toml:"colors"`
}

// HistoryConfig bounds the undo stack.
type HistoryConfig struct {
	Depth int `toml:"depth"`
}

// PlacesConfig controls the station name lookup. Without coordinates the
// fixed fallback labels are used.
type PlacesConfig struct {
	Latitude  *float64 `toml:"latitude"`
	Longitude *float64 `toml:"longitude"`
	Endpoint  string   `toml:"endpoint"`
	RadiusM   int      `toml:"radius_m"`
	TimeoutMS int      `toml:"timeout_ms"`
	MaxWords  int      `toml:"max_words"`
}

// Timeout returns the lookup timeout.
func (c PlacesConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:      BackendSQLite,
			DatabaseDir:  "./data",
			DatabaseFile: "metromap.db",
			Key:          "graphData",
		},
		Log: LogConfig{
			Folder:      "./log",
			CommandLog:  "commands.log",
			ErrorLog:    "errors.log",
			InfoLog:     "info.log",
			HistoryFile: "history.txt",
			Level:       "info",
		},
		Layout: LayoutConfig{
			Width:           10000,
			Height:          10000,
			ChargeStrength:  -400,
			LinkDistance:    100,
			CenterStrength:  0.1,
			CollideDistance: 30,
			AlphaDecay:      0.05,
			AlphaMin:        0.001,
			VelocityDecay:   0.4,
			Margin:          30,
			DragAlphaTarget: 0.3,
		},
		Interaction: InteractionConfig{
			Trash:            TrashConfig{X: 20, Y: 20, Width: 60, Height: 60},
			NodeRadius:       10,
			ReparentRadius:   60,
			ClickThresholdMS: 100,
		},
		Palette: PaletteConfig{
			DefaultColor: "#e0e0e0",
			Colors:       []string{"#455EED", "#F7AFE7", "#FFCF25", "#2BB3A3", "#FF8A3D", "#E5484D"},
		},
		History: HistoryConfig{Depth: 10},
		Places: PlacesConfig{
			Endpoint:  "https://overpass-api.de/api/interpreter",
			RadiusM:   10000,
			TimeoutMS: 5000,
			MaxWords:  3,
		},
	}
}

// Load reads the configuration at path on top of the defaults. A missing
// file is created with the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating its directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks the settings the editor cannot run without.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendSQLite, BackendAccount:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalid, c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("%w: storage key is empty", ErrInvalid)
	}
	l := c.Layout
	if l.Width <= 2*l.Margin || l.Height <= 2*l.Margin {
		return fmt.Errorf("%w: canvas %gx%g is smaller than its margins", ErrInvalid, l.Width, l.Height)
	}
	if l.AlphaDecay <= 0 || l.AlphaDecay >= 1 {
		return fmt.Errorf("%w: alpha_decay must be in (0, 1)", ErrInvalid)
	}
	if l.VelocityDecay < 0 || l.VelocityDecay > 1 {
		return fmt.Errorf("%w: velocity_decay must be in [0, 1]", ErrInvalid)
	}
	if c.History.Depth < 2 {
		return fmt.Errorf("%w: history depth must be at least 2", ErrInvalid)
	}
	if len(c.Palette.Colors) == 0 {
		return fmt.Errorf("%w: palette is empty", ErrInvalid)
	}
	if (c.Places.Latitude == nil) != (c.Places.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalid)
	}
	return nil
}
