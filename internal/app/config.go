package app

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration constants
const (
	DefaultDedupWindow    = 500 * time.Millisecond // spec §4.5 dedup window
	DefaultStateMaxAge    = 5 * time.Minute         // aircraft expiry (spec §4.6)
	DefaultHistoryMaxAge  = time.Hour               // history pruning age
	DefaultHistoryLength  = 100                     // per-aircraft history cap
	DefaultExpireInterval = 10 * time.Second
)

// Config holds application configuration (spec §1/§6: sensor feeds in,
// decoded state and optional streaming/persistence sinks out).
type Config struct {
	// BeastAddrs are Beast-format TCP feed endpoints ("host:port"),
	// one SensorReceiver per entry.
	BeastAddrs []string `yaml:"beast_addrs"`

	DedupWindow    time.Duration `yaml:"dedup_window"`
	StateMaxAge    time.Duration `yaml:"state_max_age"`
	HistoryMaxAge  time.Duration `yaml:"history_max_age"`
	HistoryLength  int           `yaml:"history_length"`
	ExpireInterval time.Duration `yaml:"expire_interval"`

	// AircraftDBPath is an optional CSV registration/typecode database
	// (spec §6.2). Empty disables the lookup.
	AircraftDBPath string `yaml:"aircraft_db"`

	LogDir       string `yaml:"log_dir"`
	LogRotateUTC bool   `yaml:"log_rotate_utc"`

	// BaseStationEnabled writes dump1090-style SBS CSV lines alongside
	// the .jsonl sink.
	BaseStationEnabled bool `yaml:"basestation"`

	// JSONLEnabled writes one decoded-event JSON line per message
	// (spec §6.5), reusing the same rotating log directory.
	JSONLEnabled bool `yaml:"jsonl"`

	// WebsocketAddr, when non-empty, serves the §6.4 streaming output
	// over a websocket at WebsocketPath.
	WebsocketAddr string `yaml:"websocket_addr"`
	WebsocketPath string `yaml:"websocket_path"`

	Verbose     bool `yaml:"verbose"`
	ShowVersion bool `yaml:"-"`
}

// WithDefaults returns a copy of c with zero-valued durations/counts
// filled in from the package defaults.
func (c Config) WithDefaults() Config {
	if c.DedupWindow == 0 {
		c.DedupWindow = DefaultDedupWindow
	}
	if c.StateMaxAge == 0 {
		c.StateMaxAge = DefaultStateMaxAge
	}
	if c.HistoryMaxAge == 0 {
		c.HistoryMaxAge = DefaultHistoryMaxAge
	}
	if c.HistoryLength == 0 {
		c.HistoryLength = DefaultHistoryLength
	}
	if c.ExpireInterval == 0 {
		c.ExpireInterval = DefaultExpireInterval
	}
	if c.WebsocketPath == "" {
		c.WebsocketPath = "/ws"
	}
	return c
}

// LoadConfigFile reads a YAML file into Config. The caller is expected
// to do this before registering its flags, so file values become each
// flag's default and an explicit command-line flag still overrides it
// via the normal flag-parsing precedence. Only fields present in the
// file are overwritten; a missing or empty file leaves Config
// unchanged.
func LoadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
