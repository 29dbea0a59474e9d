// Package config provides unified configuration loading for sefirot.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ymarkus/sefirot/internal/metrics"
	"github.com/ymarkus/sefirot/internal/network"
	"github.com/ymarkus/sefirot/internal/stream"
	"github.com/ymarkus/sefirot/internal/tracker"
	"gopkg.in/yaml.v3"
)

// SefirotConfig contains all sefirot configuration settings.
type SefirotConfig struct {
	// Engine contains the oscillator dynamics constants.
	Engine EngineConfig `json:"engine" yaml:"engine"`

	// Tracker contains the path activation thresholds.
	Tracker TrackerConfig `json:"tracker" yaml:"tracker"`

	// Metrics contains the aggregate-reading thresholds.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Stream contains the symbol stream buffer bounds.
	Stream StreamConfig `json:"stream" yaml:"stream"`

	// Driver contains the fixed-rate scheduler settings.
	Driver DriverConfig `json:"driver" yaml:"driver"`

	// Logging contains settings for operational and event logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// TopologyFile optionally replaces the built-in Tree-of-Life table.
	TopologyFile string `json:"topology_file,omitempty" yaml:"topology_file,omitempty"`

	// LexiconFile optionally replaces the built-in word dictionary.
	LexiconFile string `json:"lexicon_file,omitempty" yaml:"lexicon_file,omitempty"`
}

// EngineConfig mirrors network.Config for file/env configuration.
type EngineConfig struct {
	TransferRate        float64 `json:"transfer_rate" yaml:"transfer_rate"`
	DecayFactor         float64 `json:"decay_factor" yaml:"decay_factor"`
	Leak                float64 `json:"leak" yaml:"leak"`
	VisibilityThreshold float64 `json:"visibility_threshold" yaml:"visibility_threshold"`
}

// TrackerConfig mirrors tracker.Config.
type TrackerConfig struct {
	EnterThreshold float64 `json:"enter_threshold" yaml:"enter_threshold"`
}

// MetricsConfig mirrors metrics.Config.
type MetricsConfig struct {
	ActivityThreshold float64 `json:"activity_threshold" yaml:"activity_threshold"`
	MinDominantEnergy float64 `json:"min_dominant_energy" yaml:"min_dominant_energy"`
}

// StreamConfig mirrors stream.Config.
type StreamConfig struct {
	MaxLength   int           `json:"max_length" yaml:"max_length"`
	DecayWindow time.Duration `json:"decay_window" yaml:"decay_window"`
}

// DriverConfig configures the fixed-rate tick scheduler.
type DriverConfig struct {
	// TickRate is the tick frequency in Hz. The reference cadence is 20.
	TickRate float64 `json:"tick_rate" yaml:"tick_rate"`
}

// LoggingConfig configures sefirot's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables event logging to .sefirot/events.jsonl.
	// "trace" additionally includes per-tick flow detail.
	Level string `json:"level" yaml:"level"`
}

// Default returns a SefirotConfig with the package defaults of every layer.
func Default() *SefirotConfig {
	eng := network.DefaultConfig()
	trk := tracker.DefaultConfig()
	met := metrics.DefaultConfig()
	str := stream.DefaultConfig()
	return &SefirotConfig{
		Engine: EngineConfig{
			TransferRate:        eng.TransferRate,
			DecayFactor:         eng.DecayFactor,
			Leak:                eng.Leak,
			VisibilityThreshold: eng.VisibilityThreshold,
		},
		Tracker: TrackerConfig{EnterThreshold: trk.EnterThreshold},
		Metrics: MetricsConfig{
			ActivityThreshold: met.ActivityThreshold,
			MinDominantEnergy: met.MinDominantEnergy,
		},
		Stream: StreamConfig{
			MaxLength:   str.MaxLength,
			DecayWindow: str.DecayWindow,
		},
		Driver:  DriverConfig{TickRate: 20},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.sefirot/config.yaml -> environment variables
func Load() (*SefirotConfig, error) {
	config := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".sefirot", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*SefirotConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *SefirotConfig) Validate() error {
	if c.Engine.TransferRate <= 0 || c.Engine.TransferRate > 1 {
		return fmt.Errorf("transfer_rate must be in (0,1], got %g", c.Engine.TransferRate)
	}
	if c.Engine.DecayFactor <= 0 || c.Engine.DecayFactor > 1 {
		return fmt.Errorf("decay_factor must be in (0,1], got %g", c.Engine.DecayFactor)
	}
	if c.Engine.Leak < 0 || c.Engine.Leak > 1 {
		return fmt.Errorf("leak must be in [0,1], got %g", c.Engine.Leak)
	}
	if c.Engine.VisibilityThreshold < 0 || c.Engine.VisibilityThreshold > 1 {
		return fmt.Errorf("visibility_threshold must be in [0,1], got %g", c.Engine.VisibilityThreshold)
	}
	if c.Tracker.EnterThreshold <= 0 || c.Tracker.EnterThreshold > 1 {
		return fmt.Errorf("enter_threshold must be in (0,1], got %g", c.Tracker.EnterThreshold)
	}
	if c.Metrics.ActivityThreshold < 0 || c.Metrics.ActivityThreshold > 1 {
		return fmt.Errorf("activity_threshold must be in [0,1], got %g", c.Metrics.ActivityThreshold)
	}
	if c.Metrics.MinDominantEnergy < 0 {
		return fmt.Errorf("min_dominant_energy must be non-negative, got %g", c.Metrics.MinDominantEnergy)
	}
	if c.Stream.MaxLength <= 0 {
		return fmt.Errorf("max_length must be positive, got %d", c.Stream.MaxLength)
	}
	if c.Stream.DecayWindow <= 0 {
		return fmt.Errorf("decay_window must be positive, got %v", c.Stream.DecayWindow)
	}
	if c.Driver.TickRate <= 0 || c.Driver.TickRate > 1000 {
		return fmt.Errorf("tick_rate must be in (0,1000], got %g", c.Driver.TickRate)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// EngineConfig converts to the network package's config type.
func (c *SefirotConfig) EngineConfig() network.Config {
	return network.Config{
		TransferRate:        c.Engine.TransferRate,
		DecayFactor:         c.Engine.DecayFactor,
		Leak:                c.Engine.Leak,
		VisibilityThreshold: c.Engine.VisibilityThreshold,
	}
}

// TrackerConfig converts to the tracker package's config type.
func (c *SefirotConfig) TrackerConfig() tracker.Config {
	return tracker.Config{EnterThreshold: c.Tracker.EnterThreshold}
}

// MetricsConfig converts to the metrics package's config type.
func (c *SefirotConfig) MetricsConfig() metrics.Config {
	return metrics.Config{
		ActivityThreshold: c.Metrics.ActivityThreshold,
		MinDominantEnergy: c.Metrics.MinDominantEnergy,
	}
}

// StreamConfig converts to the stream package's config type.
func (c *SefirotConfig) StreamConfig() stream.Config {
	return stream.Config{
		MaxLength:   c.Stream.MaxLength,
		DecayWindow: c.Stream.DecayWindow,
	}
}

// TickInterval returns the scheduler period implied by the tick rate.
func (c *SefirotConfig) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.Driver.TickRate)
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *SefirotConfig) {
	if v := os.Getenv("SEFIROT_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("SEFIROT_TICK_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Driver.TickRate = f
		}
	}

	if v := os.Getenv("SEFIROT_TOPOLOGY_FILE"); v != "" {
		config.TopologyFile = v
	}

	if v := os.Getenv("SEFIROT_LEXICON_FILE"); v != "" {
		config.LexiconFile = v
	}

	if v := os.Getenv("SEFIROT_TRANSFER_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Engine.TransferRate = f
		}
	}

	if v := os.Getenv("SEFIROT_ENTER_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Tracker.EnterThreshold = f
		}
	}

	if v := os.Getenv("SEFIROT_STREAM_MAX_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Stream.MaxLength = n
		}
	}

	if v := os.Getenv("SEFIROT_STREAM_DECAY_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Stream.DecayWindow = d
		}
	}
}
