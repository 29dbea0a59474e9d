package mcp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ymarkus/sefirot/internal/sim"
)

// maxStepTicks bounds a single sefirot_step call so a bad argument cannot
// stall the server.
const maxStepTicks = 10000

// registerTools registers all sefirot MCP tools with the server.
func (s *Server) registerTools() error {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "sefirot_energize",
		Description: "Inject energy into a sephirah; the burst propagates over the paths on subsequent ticks",
	}, s.handleEnergize)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "sefirot_step",
		Description: "Advance the simulation by a number of ticks synchronously and return the resulting state",
	}, s.handleStep)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "sefirot_state",
		Description: "Get the current network state: coherence, total energy, dominant pillar, per-node energies",
	}, s.handleState)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "sefirot_stream",
		Description: "Read the emergent symbol stream (letters emitted by fading paths), oldest first with age weights",
	}, s.handleStream)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "sefirot_words",
		Description: "Recognize dictionary words in the current symbol stream (greedy longest match, non-overlapping)",
	}, s.handleWords)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "sefirot_reset",
		Description: "Reset the simulation: fresh random phases, zero energy, empty stream, new run ID",
	}, s.handleReset)

	return nil
}

// registerResources registers MCP resources for auto-loading into context.
func (s *Server) registerResources() error {
	s.server.AddResource(&sdk.Resource{
		URI:         "sefirot://stream/live",
		Name:        "sefirot-live-stream",
		Description: "The current symbol stream and the words recognized in it.",
		MIMEType:    "text/markdown",
	}, s.handleStreamResource)

	return nil
}

func (s *Server) handleEnergize(ctx context.Context, req *sdk.CallToolRequest, args EnergizeInput) (*sdk.CallToolResult, EnergizeOutput, error) {
	amount := args.Amount
	if amount == 0 {
		amount = 1.0
	}
	if amount < 0 || amount > 1 {
		return nil, EnergizeOutput{}, fmt.Errorf("amount must be in (0.0, 1.0], got %g", amount)
	}

	if !s.sim.EnergizeByName(args.Node, amount) {
		// Unknown node is a no-op for the simulation; report it to the
		// caller without failing the tool.
		return nil, EnergizeOutput{
			Accepted: false,
			Message:  fmt.Sprintf("unknown sephirah %q", args.Node),
		}, nil
	}

	return nil, EnergizeOutput{
		Accepted: true,
		Message:  fmt.Sprintf("energized %s with %.2f", args.Node, amount),
	}, nil
}

func (s *Server) handleStep(ctx context.Context, req *sdk.CallToolRequest, args StepInput) (*sdk.CallToolResult, StateOutput, error) {
	ticks := args.Ticks
	if ticks <= 0 {
		ticks = 1
	}
	if ticks > maxStepTicks {
		return nil, StateOutput{}, fmt.Errorf("ticks must be at most %d, got %d", maxStepTicks, ticks)
	}

	result := s.driver.Step(ticks)
	return nil, s.stateOutput(result), nil
}

func (s *Server) handleState(ctx context.Context, req *sdk.CallToolRequest, args StreamInput) (*sdk.CallToolResult, StateOutput, error) {
	// A zero-dt tick returns the current view without advancing anything.
	result := s.sim.Tick(0)
	return nil, s.stateOutput(result), nil
}

func (s *Server) handleStream(ctx context.Context, req *sdk.CallToolRequest, args StreamInput) (*sdk.CallToolResult, StreamOutput, error) {
	weighted := s.sim.SymbolStream()
	out := StreamOutput{Count: len(weighted)}
	for _, ws := range weighted {
		out.Symbols = append(out.Symbols, StreamSymbol{
			Symbol:    ws.Symbol,
			AgeWeight: ws.AgeWeight,
		})
	}
	return nil, out, nil
}

func (s *Server) handleWords(ctx context.Context, req *sdk.CallToolRequest, args WordsInput) (*sdk.CallToolResult, WordsOutput, error) {
	matches := s.sim.FoundWords()
	out := WordsOutput{Count: len(matches)}
	for _, m := range matches {
		out.Words = append(out.Words, WordView{
			Name:     m.Word.Name,
			Spelling: m.Word.Spelling(),
			Meaning:  m.Word.Meaning,
			Category: m.Word.Category,
			Start:    m.StartIndex,
			End:      m.EndIndex,
		})
	}
	return nil, out, nil
}

func (s *Server) handleReset(ctx context.Context, req *sdk.CallToolRequest, args ResetInput) (*sdk.CallToolResult, ResetOutput, error) {
	s.sim.Reset()
	return nil, ResetOutput{
		RunID:   s.sim.RunID(),
		Message: "simulation reset",
	}, nil
}

// stateOutput converts a tick result into the tool-facing state view.
func (s *Server) stateOutput(result sim.TickResult) StateOutput {
	active := make(map[int]bool, len(result.Metrics.ActiveNodes))
	for _, id := range result.Metrics.ActiveNodes {
		active[int(id)] = true
	}

	out := StateOutput{
		RunID:          s.sim.RunID(),
		SimTime:        s.sim.Clock().Seconds(),
		Coherence:      result.Metrics.Coherence,
		TotalEnergy:    result.Metrics.TotalEnergy,
		DominantPillar: result.Metrics.DominantPillar,
	}
	for _, node := range result.Nodes {
		out.Nodes = append(out.Nodes, NodeView{
			Name:   node.Name,
			Pillar: node.Pillar.String(),
			Energy: node.Energy,
			Phase:  node.Phase,
			Active: active[int(node.ID)],
		})
	}
	return out
}

// handleStreamResource renders the live stream and recognized words as
// markdown for context injection.
func (s *Server) handleStreamResource(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	weighted := s.sim.SymbolStream()
	matches := s.sim.FoundWords()

	var sb strings.Builder
	sb.WriteString("# Symbol Stream\n\n")

	if len(weighted) == 0 {
		sb.WriteString("The stream is silent.\n")
	} else {
		glyphs := make([]string, len(weighted))
		for i, ws := range weighted {
			glyphs[i] = ws.Symbol
		}
		sb.WriteString(strings.Join(glyphs, " "))
		sb.WriteString("\n")
	}

	if len(matches) > 0 {
		sb.WriteString("\n## Recognized Words\n\n")
		for _, m := range matches {
			sb.WriteString(fmt.Sprintf("- **%s** (%s): %s\n", m.Word.Spelling(), m.Word.Name, m.Word.Meaning))
		}
	}

	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{
			{
				URI:      "sefirot://stream/live",
				MIMEType: "text/markdown",
				Text:     sb.String(),
			},
		},
	}, nil
}
