package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ymarkus/sefirot/internal/mcp"
	"github.com/ymarkus/sefirot/internal/sim"
)

func newMCPServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Serve the simulation over the Model Context Protocol (stdio)",
		Long: `Serve the simulation over the Model Context Protocol (stdio).

The driver ticks the network in the background while MCP tools let a client
energize sephirot, step or inspect the state, read the symbol stream and the
recognized words, and reset the run. With --paused the driver stays off and
time advances only through the sefirot_step tool, which gives the client full
deterministic control.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paused, _ := cmd.Flags().GetBool("paused")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			simulation, err := buildSimulation(cfg)
			if err != nil {
				return err
			}

			driver := sim.NewDriver(simulation, cfg.TickInterval())

			server, err := mcp.NewServer(&mcp.Config{
				Name:       "sefirot",
				Version:    version,
				Background: !paused,
			}, simulation, driver)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			return server.Run(context.Background())
		},
	}

	cmd.Flags().Bool("paused", false, "Do not tick in the background; advance only via sefirot_step")

	return cmd
}
