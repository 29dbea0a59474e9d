// Package network implements the coupled-oscillator engine over a topology
// tree. Each node carries phase, amplitude and energy; every tick advances the
// phases with Kuramoto-style neighbor coupling and diffuses energy from
// higher- to lower-energy neighbors, reporting the visible transfers as Flows.
// Ticks are deterministic: randomness enters only at initialization and Reset.
package network

import (
	"math"
	"math/rand"

	"github.com/ymarkus/sefirot/internal/topology"
)

// Config holds the tunable constants of the oscillator dynamics.
type Config struct {
	// TransferRate is the fraction of the energy difference that moves across
	// a path each tick. Default: 0.10.
	TransferRate float64

	// DecayFactor is the per-tick energy retention multiplier. Default: 0.985.
	DecayFactor float64

	// Leak is the constant per-tick energy loss applied after decay and gains.
	// Default: 0.0008.
	Leak float64

	// VisibilityThreshold is the minimum source-node energy for a transfer to
	// be reported as a Flow. Transfers from dimmer sources still move energy
	// but stay silent. Default: 0.05.
	VisibilityThreshold float64
}

// DefaultConfig returns the default oscillator dynamics configuration.
func DefaultConfig() Config {
	return Config{
		TransferRate:        0.10,
		DecayFactor:         0.985,
		Leak:                0.0008,
		VisibilityThreshold: 0.05,
	}
}

// NodeState is the mutable per-node state, snapshotted by value in TickResult
// so callers can never reach back into the engine.
type NodeState struct {
	ID        topology.NodeID `json:"id"`
	Name      string          `json:"name"`
	Pillar    topology.Pillar `json:"-"`
	Phase     float64         `json:"phase"`     // [0, 2π)
	Amplitude float64         `json:"amplitude"` // [0, 1]
	Energy    float64         `json:"energy"`    // [0, 1]
}

// Flow is one visible energy transfer within a single tick. Flows are
// transient: the engine rebuilds the list every tick and never retains it.
type Flow struct {
	From     topology.NodeID `json:"from"`
	To       topology.NodeID `json:"to"`
	Strength float64         `json:"strength"`
}

// Network owns the mutable oscillator state for one topology tree.
// It is not safe for concurrent use; the owning simulation serializes access.
type Network struct {
	tree   *topology.Tree
	config Config
	nodes  []NodeState
}

// New creates a network over the given tree with all energies at zero and
// phases drawn independently from rng, uniform in [0, 2π).
func New(tree *topology.Tree, config Config, rng *rand.Rand) *Network {
	n := &Network{
		tree:   tree,
		config: config,
		nodes:  make([]NodeState, tree.NodeCount()),
	}
	n.Reset(rng)
	return n
}

// Reset reinitializes every node: a fresh uniform-random phase, zero energy,
// and the floor amplitude. It is the only operation besides New that consumes
// randomness.
func (n *Network) Reset(rng *rand.Rand) {
	for i := range n.nodes {
		spec := n.tree.Node(topology.NodeID(i))
		n.nodes[i] = NodeState{
			ID:        spec.ID,
			Name:      spec.Name,
			Pillar:    spec.Pillar,
			Phase:     rng.Float64() * 2 * math.Pi,
			Amplitude: amplitudeFor(0),
			Energy:    0,
		}
	}
}

// Energize injects energy into a node: amount is added to energy and half of
// it to amplitude, both clamped to [0,1]. Unknown IDs are a silent no-op so a
// stray input event can never halt the simulation.
func (n *Network) Energize(id topology.NodeID, amount float64) {
	if int(id) < 0 || int(id) >= len(n.nodes) {
		return
	}
	node := &n.nodes[id]
	node.Energy = clamp01(node.Energy + amount)
	node.Amplitude = clamp01(node.Amplitude + 0.5*amount)
}

// Tick advances the network by dt seconds and returns the visible flows of
// this tick. The update is synchronous: all phase influences and energy gains
// are computed against a snapshot of the pre-tick state, then applied at once,
// so iteration order never leaks into the result.
func (n *Network) Tick(dt float64) []Flow {
	if dt <= 0 {
		return nil
	}

	prev := make([]NodeState, len(n.nodes))
	copy(prev, n.nodes)

	gains := make([]float64, len(n.nodes))
	phaseDelta := make([]float64, len(n.nodes))
	var flows []Flow

	for i := range prev {
		id := topology.NodeID(i)
		coupling := n.tree.Node(id).BaseCoupling

		for _, pid := range n.tree.Touching(id) {
			path := n.tree.Path(pid)
			j := path.Other(id)

			// Phase pull toward the neighbor.
			phaseDelta[i] += coupling * math.Sin(prev[j].Phase-prev[i].Phase)

			// Energy runs downhill only.
			if prev[j].Energy > prev[i].Energy {
				strength := (prev[j].Energy - prev[i].Energy) * n.config.TransferRate
				gains[i] += strength
				if prev[j].Energy > n.config.VisibilityThreshold {
					flows = append(flows, Flow{From: j, To: id, Strength: strength})
				}
			}
		}
	}

	for i := range n.nodes {
		spec := n.tree.Node(topology.NodeID(i))
		node := &n.nodes[i]

		node.Phase = wrapPhase(prev[i].Phase + spec.NaturalFrequency*dt + phaseDelta[i]*dt)
		node.Energy = clamp01(prev[i].Energy*n.config.DecayFactor + gains[i] - n.config.Leak)
		node.Amplitude = amplitudeFor(node.Energy)
	}

	return flows
}

// Snapshot returns a value copy of the current node states.
func (n *Network) Snapshot() []NodeState {
	out := make([]NodeState, len(n.nodes))
	copy(out, n.nodes)
	return out
}

// Tree returns the topology the network runs over.
func (n *Network) Tree() *topology.Tree { return n.tree }

// amplitudeFor derives amplitude from energy. Amplitude is never set
// independently outside Energize's transient bump.
func amplitudeFor(energy float64) float64 {
	return clamp01(0.1 + 0.9*energy)
}

// wrapPhase maps any phase into [0, 2π).
func wrapPhase(p float64) float64 {
	p = math.Mod(p, 2*math.Pi)
	if p < 0 {
		p += 2 * math.Pi
	}
	return p
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
