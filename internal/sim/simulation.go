// Package sim wires the oscillator network, path tracker, symbol stream and
// lexicon into one Simulation value with an explicit lifecycle. All mutable
// state lives here; every operation goes through the Simulation, and a
// fixed-rate Driver advances it. The core contract is single-threaded: one
// tick at a time, energize between ticks. The internal mutex exists only so
// surfaces like the MCP server can call in from their own goroutine without
// weakening that contract.
package sim

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/ymarkus/sefirot/internal/lexicon"
	"github.com/ymarkus/sefirot/internal/logging"
	"github.com/ymarkus/sefirot/internal/metrics"
	"github.com/ymarkus/sefirot/internal/network"
	"github.com/ymarkus/sefirot/internal/stream"
	"github.com/ymarkus/sefirot/internal/topology"
	"github.com/ymarkus/sefirot/internal/tracker"
)

// Options collects the per-layer configuration of a Simulation.
type Options struct {
	Engine  network.Config
	Tracker tracker.Config
	Metrics metrics.Config
	Stream  stream.Config

	// Rand seeds initial phases. When nil, a time-seeded source is used.
	// Tests inject a fixed-seed source for reproducible runs.
	Rand *rand.Rand

	// Logger receives operational output. When nil, logging is discarded.
	Logger *slog.Logger

	// Events receives the JSONL activation trace. Nil disables tracing.
	Events *logging.EventLogger
}

// DefaultOptions returns Options with every layer at its package defaults.
func DefaultOptions() Options {
	return Options{
		Engine:  network.DefaultConfig(),
		Tracker: tracker.DefaultConfig(),
		Metrics: metrics.DefaultConfig(),
		Stream:  stream.DefaultConfig(),
	}
}

// TickResult is the atomic outcome of one tick: a value snapshot of node
// state, this tick's visible flows, and the derived metrics. Nothing in it
// aliases engine state.
type TickResult struct {
	Nodes   []network.NodeState `json:"nodes"`
	Flows   []network.Flow      `json:"flows"`
	Metrics metrics.Summary     `json:"metrics"`
}

// Simulation owns the full simulation state for one topology tree.
type Simulation struct {
	mu sync.Mutex

	tree       *topology.Tree
	net        *network.Network
	trk        *tracker.Tracker
	buf        *stream.Buffer
	dict       *lexicon.Dictionary
	metricsCfg metrics.Config

	// clock is simulation time: the sum of all tick dts since the last reset.
	clock time.Duration

	runID  string
	rng    *rand.Rand
	logger *slog.Logger
	events *logging.EventLogger
}

// New creates a Simulation over the given tree and dictionary. Node phases
// are drawn from opts.Rand; energies start at zero.
func New(tree *topology.Tree, dict *lexicon.Dictionary, opts Options) *Simulation {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Simulation{
		tree:       tree,
		net:        network.New(tree, opts.Engine, rng),
		trk:        tracker.New(tree, opts.Tracker),
		buf:        stream.New(opts.Stream),
		dict:       dict,
		metricsCfg: opts.Metrics,
		runID:      uuid.NewString(),
		rng:        rng,
		logger:     logger,
		events:     opts.Events,
	}
	s.logger.Debug("simulation created",
		"run_id", s.runID,
		"nodes", tree.NodeCount(),
		"paths", tree.PathCount(),
		"words", dict.Len())
	return s
}

// Energize injects energy into a node. Unknown IDs and non-positive amounts
// are silent no-ops; amounts above 1 are clamped. Takes effect on the next
// tick.
func (s *Simulation) Energize(id topology.NodeID, amount float64) {
	if amount <= 0 {
		return
	}
	if amount > 1 {
		amount = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.net.Energize(id, amount)
}

// EnergizeByName resolves a sephirah name and injects energy. Unknown names
// return false and change nothing.
func (s *Simulation) EnergizeByName(name string, amount float64) bool {
	id, ok := s.tree.NodeByName(name)
	if !ok {
		return false
	}
	s.Energize(id, amount)
	return true
}

// Tick advances the simulation by dt seconds: oscillator update, episode
// tracking, record emission, buffer maintenance, metrics. A non-positive dt
// leaves all state unchanged and returns the current view.
func (s *Simulation) Tick(dt float64) TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dt <= 0 {
		return TickResult{
			Nodes:   s.net.Snapshot(),
			Metrics: metrics.Compute(s.net.Snapshot(), s.metricsCfg),
		}
	}

	flows := s.net.Tick(dt)
	s.clock += time.Duration(dt * float64(time.Second))

	records := s.trk.Observe(flows, s.clock)
	if len(records) > 0 {
		s.buf.Append(records)
		for _, r := range records {
			s.logger.Debug("path faded",
				"symbol", r.SymbolName,
				"peak", r.Energy,
				"sequence", r.Sequence)
			s.events.Log(map[string]any{
				"event":    "activation",
				"run_id":   s.runID,
				"path":     r.SymbolName,
				"symbol":   r.Symbol,
				"peak":     r.Energy,
				"sequence": r.Sequence,
				"sim_time": s.clock.Seconds(),
			})
		}
	}
	s.buf.Maintain(s.clock)

	nodes := s.net.Snapshot()
	result := TickResult{
		Nodes:   nodes,
		Flows:   flows,
		Metrics: metrics.Compute(nodes, s.metricsCfg),
	}

	s.logger.Log(context.Background(), logging.LevelTrace, "tick",
		"sim_time", s.clock.Seconds(),
		"flows", len(flows),
		"coherence", result.Metrics.Coherence,
		"total_energy", result.Metrics.TotalEnergy)

	return result
}

// SymbolStream returns the display projection of the symbol stream: glyphs
// oldest-first with their age weights. Expired entries are evicted before the
// read so the projection never shows them.
func (s *Simulation) SymbolStream() []stream.WeightedSymbol {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Maintain(s.clock)
	return s.buf.Weighted(s.clock)
}

// FoundWords recomputes the recognized words from the current buffer.
func (s *Simulation) FoundWords() []lexicon.Match {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Maintain(s.clock)
	matches := s.dict.FindWords(s.buf.Symbols())
	for _, m := range matches {
		s.events.Log(map[string]any{
			"event":    "word",
			"run_id":   s.runID,
			"name":     m.Word.Name,
			"meaning":  m.Word.Meaning,
			"start":    m.StartIndex,
			"end":      m.EndIndex,
			"sim_time": s.clock.Seconds(),
		})
	}
	return matches
}

// Records returns a copy of the raw buffered activation records.
func (s *Simulation) Records() []tracker.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Maintain(s.clock)
	return s.buf.Records()
}

// Reset reinitializes all node phases to fresh uniform-random values, zeroes
// energy, clears the buffer and episode state, restarts the sequence counter
// and the simulation clock, and assigns a new run ID.
func (s *Simulation) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.net.Reset(s.rng)
	s.trk.Reset()
	s.buf.Clear()
	s.clock = 0
	s.runID = uuid.NewString()

	s.logger.Info("simulation reset", "run_id", s.runID)
	s.events.Log(map[string]any{"event": "reset", "run_id": s.runID})
}

// RunID returns the identity of the current run, regenerated on Reset.
func (s *Simulation) RunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

// Clock returns the current simulation time.
func (s *Simulation) Clock() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

// Tree returns the topology the simulation runs over.
func (s *Simulation) Tree() *topology.Tree { return s.tree }

// Dictionary returns the word dictionary in use.
func (s *Simulation) Dictionary() *lexicon.Dictionary { return s.dict }
