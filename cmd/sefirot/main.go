package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ymarkus/sefirot/internal/config"
	"github.com/ymarkus/sefirot/internal/lexicon"
	"github.com/ymarkus/sefirot/internal/logging"
	"github.com/ymarkus/sefirot/internal/sim"
	"github.com/ymarkus/sefirot/internal/topology"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "sefirot",
		Short: "Tree-of-Life oscillator network and emergent symbol stream",
		Long: `sefirot simulates a coupled-oscillator network over the Tree of Life.

Energy injected into a sephirah propagates along the lettered paths; when a
sounding path fades, its letter drops into the symbol stream, and known words
are recognized in the stream by longest-match scanning.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: ~/.sefirot/config.yaml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newTopologyCmd(),
		newWordsCmd(),
		newValidateCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{"version": version})
			} else {
				fmt.Printf("sefirot version %s\n", version)
			}
		},
	}
}

// loadConfig resolves the effective configuration for a command: the --config
// file when given, otherwise defaults -> home config -> environment.
func loadConfig(cmd *cobra.Command) (*config.SefirotConfig, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.SefirotConfig
	var err error
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadTree returns the configured topology: a YAML override when set, the
// builtin Tree of Life otherwise.
func loadTree(cfg *config.SefirotConfig) (*topology.Tree, error) {
	if cfg.TopologyFile != "" {
		return topology.Load(cfg.TopologyFile)
	}
	return topology.Default(), nil
}

// loadDictionary returns the configured lexicon, builtin by default.
func loadDictionary(cfg *config.SefirotConfig) (*lexicon.Dictionary, error) {
	if cfg.LexiconFile != "" {
		return lexicon.Load(cfg.LexiconFile)
	}
	return lexicon.Default(), nil
}

// buildSimulation assembles a Simulation from the configuration.
func buildSimulation(cfg *config.SefirotConfig) (*sim.Simulation, error) {
	tree, err := loadTree(cfg)
	if err != nil {
		return nil, err
	}
	dict, err := loadDictionary(cfg)
	if err != nil {
		return nil, err
	}

	opts := sim.Options{
		Engine:  cfg.EngineConfig(),
		Tracker: cfg.TrackerConfig(),
		Metrics: cfg.MetricsConfig(),
		Stream:  cfg.StreamConfig(),
		Logger:  logging.NewLogger(cfg.Logging.Level, os.Stderr),
		Events:  logging.NewEventLogger(".sefirot", cfg.Logging.Level),
	}
	return sim.New(tree, dict, opts), nil
}
