package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.Engine.TransferRate != 0.10 {
		t.Errorf("transfer rate: want 0.10, got %g", cfg.Engine.TransferRate)
	}
	if cfg.Stream.MaxLength != 22 {
		t.Errorf("stream max length: want 22, got %d", cfg.Stream.MaxLength)
	}
	if cfg.Driver.TickRate != 20 {
		t.Errorf("tick rate: want 20, got %g", cfg.Driver.TickRate)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level: want info, got %s", cfg.Logging.Level)
	}
}

func TestTickInterval(t *testing.T) {
	cfg := Default()
	if got := cfg.TickInterval(); got != 50*time.Millisecond {
		t.Errorf("20 Hz interval: want 50ms, got %v", got)
	}

	cfg.Driver.TickRate = 100
	if got := cfg.TickInterval(); got != 10*time.Millisecond {
		t.Errorf("100 Hz interval: want 10ms, got %v", got)
	}
}

func TestLoadFromFile_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `engine:
  transfer_rate: 0.2
  decay_factor: 0.99
  leak: 0.001
  visibility_threshold: 0.1
stream:
  max_length: 10
  decay_window: 15s
driver:
  tick_rate: 40
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("loaded config invalid: %v", err)
	}

	if cfg.Engine.TransferRate != 0.2 {
		t.Errorf("transfer rate not overridden: %g", cfg.Engine.TransferRate)
	}
	if cfg.Stream.MaxLength != 10 {
		t.Errorf("max length not overridden: %d", cfg.Stream.MaxLength)
	}
	if cfg.Stream.DecayWindow != 15*time.Second {
		t.Errorf("decay window not overridden: %v", cfg.Stream.DecayWindow)
	}
	if cfg.Driver.TickRate != 40 {
		t.Errorf("tick rate not overridden: %g", cfg.Driver.TickRate)
	}

	// Sections absent from the file keep their defaults.
	if cfg.Tracker.EnterThreshold != 0.008 {
		t.Errorf("untouched section lost its default: %g", cfg.Tracker.EnterThreshold)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFromFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("engine: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // keep any real ~/.sefirot out of the test
	t.Setenv("SEFIROT_LOG_LEVEL", "trace")
	t.Setenv("SEFIROT_TICK_RATE", "10")
	t.Setenv("SEFIROT_TRANSFER_RATE", "0.25")
	t.Setenv("SEFIROT_STREAM_MAX_LENGTH", "7")
	t.Setenv("SEFIROT_STREAM_DECAY_WINDOW", "45s")
	t.Setenv("SEFIROT_TOPOLOGY_FILE", "/tmp/tree.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Logging.Level != "trace" {
		t.Errorf("log level override: got %s", cfg.Logging.Level)
	}
	if cfg.Driver.TickRate != 10 {
		t.Errorf("tick rate override: got %g", cfg.Driver.TickRate)
	}
	if cfg.Engine.TransferRate != 0.25 {
		t.Errorf("transfer rate override: got %g", cfg.Engine.TransferRate)
	}
	if cfg.Stream.MaxLength != 7 {
		t.Errorf("max length override: got %d", cfg.Stream.MaxLength)
	}
	if cfg.Stream.DecayWindow != 45*time.Second {
		t.Errorf("decay window override: got %v", cfg.Stream.DecayWindow)
	}
	if cfg.TopologyFile != "/tmp/tree.yaml" {
		t.Errorf("topology file override: got %s", cfg.TopologyFile)
	}
}

func TestLoad_IgnoresUnparsableEnvValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SEFIROT_TICK_RATE", "fast")
	t.Setenv("SEFIROT_STREAM_MAX_LENGTH", "many")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Driver.TickRate != 20 || cfg.Stream.MaxLength != 22 {
		t.Errorf("unparsable env values changed the config: %+v", cfg)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SefirotConfig)
		want   string
	}{
		{"zero transfer rate", func(c *SefirotConfig) { c.Engine.TransferRate = 0 }, "transfer_rate"},
		{"transfer rate above one", func(c *SefirotConfig) { c.Engine.TransferRate = 1.5 }, "transfer_rate"},
		{"zero decay factor", func(c *SefirotConfig) { c.Engine.DecayFactor = 0 }, "decay_factor"},
		{"negative leak", func(c *SefirotConfig) { c.Engine.Leak = -0.1 }, "leak"},
		{"visibility above one", func(c *SefirotConfig) { c.Engine.VisibilityThreshold = 2 }, "visibility_threshold"},
		{"zero enter threshold", func(c *SefirotConfig) { c.Tracker.EnterThreshold = 0 }, "enter_threshold"},
		{"negative activity threshold", func(c *SefirotConfig) { c.Metrics.ActivityThreshold = -1 }, "activity_threshold"},
		{"zero max length", func(c *SefirotConfig) { c.Stream.MaxLength = 0 }, "max_length"},
		{"zero decay window", func(c *SefirotConfig) { c.Stream.DecayWindow = 0 }, "decay_window"},
		{"zero tick rate", func(c *SefirotConfig) { c.Driver.TickRate = 0 }, "tick_rate"},
		{"absurd tick rate", func(c *SefirotConfig) { c.Driver.TickRate = 5000 }, "tick_rate"},
		{"unknown log level", func(c *SefirotConfig) { c.Logging.Level = "verbose" }, "log level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestConfigConversions(t *testing.T) {
	cfg := Default()
	cfg.Engine.TransferRate = 0.3
	cfg.Tracker.EnterThreshold = 0.01
	cfg.Metrics.ActivityThreshold = 0.2
	cfg.Stream.MaxLength = 5

	if got := cfg.EngineConfig(); got.TransferRate != 0.3 {
		t.Errorf("EngineConfig conversion lost a value: %+v", got)
	}
	if got := cfg.TrackerConfig(); got.EnterThreshold != 0.01 {
		t.Errorf("TrackerConfig conversion lost a value: %+v", got)
	}
	if got := cfg.MetricsConfig(); got.ActivityThreshold != 0.2 {
		t.Errorf("MetricsConfig conversion lost a value: %+v", got)
	}
	if got := cfg.StreamConfig(); got.MaxLength != 5 {
		t.Errorf("StreamConfig conversion lost a value: %+v", got)
	}
}
