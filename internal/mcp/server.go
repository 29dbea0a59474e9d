// Package mcp provides an MCP (Model Context Protocol) server for sefirot.
// It exposes a running simulation to agent collaborators: tools to energize
// nodes, step and inspect the network, and a live resource rendering the
// symbol stream.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ymarkus/sefirot/internal/sim"
)

// Server wraps the MCP SDK server around one simulation and its driver.
type Server struct {
	server *sdk.Server
	sim    *sim.Simulation
	driver *sim.Driver

	// background controls whether Run ticks the driver on its own. When
	// false, time advances only through the sefirot_step tool.
	background bool
}

// Config holds server configuration.
type Config struct {
	Name       string // Server name (e.g., "sefirot")
	Version    string // Server version
	Background bool   // Tick the driver while serving
}

// NewServer creates an MCP server over the given simulation and driver.
func NewServer(cfg *Config, simulation *sim.Simulation, driver *sim.Driver) (*Server, error) {
	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			// Client initialized, ready to serve
		},
	})

	s := &Server{
		server:     mcpServer,
		sim:        simulation,
		driver:     driver,
		background: cfg.Background,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	if err := s.registerResources(); err != nil {
		return nil, fmt.Errorf("failed to register resources: %w", err)
	}

	return s, nil
}

// Run starts the driver in the background and serves MCP over stdio. It
// blocks until the client disconnects or the context is cancelled; the driver
// stops with it.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	if s.background {
		go func() { _ = s.driver.Run(ctx) }()
	}

	return s.server.Run(ctx, &sdk.StdioTransport{})
}
