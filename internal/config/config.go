package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/reconcile/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "reconcile.json"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "reconcile"

	// DefaultTracerName is the default OpenTelemetry instrumentation name.
	DefaultTracerName = "github.com/vango-dev/reconcile"
)

// Scheduler flush orders.
const (
	OrderFIFO  = "fifo"
	OrderDepth = "depth"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the complete reconcile.json configuration.
type Config struct {
	// Debug enables debug logging regardless of Log.Level.
	Debug bool `json:"debug,omitempty"`

	// Log contains logger configuration.
	Log LogConfig `json:"log,omitempty"`

	// Scheduler contains job queue configuration.
	Scheduler SchedulerConfig `json:"scheduler,omitempty"`

	// Cache contains keep-alive defaults.
	Cache CacheConfig `json:"cache,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// SchedulerConfig contains job queue settings.
type SchedulerConfig struct {
	// Order is "fifo" (insertion order) or "depth" (parents before children).
	Order string `json:"order,omitempty"`
}

// CacheConfig contains keep-alive settings.
type CacheConfig struct {
	// Max is the default entry limit for keep-alive nodes that do not set
	// one. Zero means unbounded.
	Max int `json:"max,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty"`
	TracerName string `json:"tracerName,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: FormatText,
		},
		Scheduler: SchedulerConfig{
			Order: OrderFIFO,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for reconcile.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads and validates configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C002").
				WithDetail("No " + ConfigFileName + " found at " + path)
		}
		return nil, errors.New("C003").Wrap(err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// Parse decodes configuration from JSON, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("C003").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for fields the file set to "".
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = FormatText
	}
	if c.Scheduler.Order == "" {
		c.Scheduler.Order = OrderFIFO
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("C001").
			WithDetail("log.level must be one of debug, info, warn, error; got " + c.Log.Level)
	}
	switch c.Log.Format {
	case FormatText, FormatJSON:
	default:
		return errors.New("C001").
			WithDetail("log.format must be text or json; got " + c.Log.Format)
	}
	switch c.Scheduler.Order {
	case OrderFIFO, OrderDepth:
	default:
		return errors.New("C001").
			WithDetail("scheduler.order must be fifo or depth; got " + c.Scheduler.Order)
	}
	if c.Cache.Max < 0 {
		return errors.New("C001").
			WithDetailf("cache.max must not be negative; got %d", c.Cache.Max)
	}
	return nil
}

// DepthOrder reports whether the scheduler should flush parents first.
func (c *Config) DepthOrder() bool {
	return c.Scheduler.Order == OrderDepth
}

// Level returns the configured slog level. Debug overrides Log.Level.
func (c *Config) Level() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	level, _ := parseLevel(c.Log.Level)
	return level
}

// Handler builds the slog handler described by Log, writing to w.
func (c *Config) Handler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.Log.Format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
