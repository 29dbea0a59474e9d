// Package tracker turns continuous per-tick energy flows into discrete path
// activation records. Each path runs a two-state episode machine
// (Idle, Sounding, Idle): an episode opens when the path's aggregated flow
// strength reaches the enter threshold, tracks its peak while the path keeps
// flowing, and emits exactly one record carrying the peak at the moment the
// path falls silent. A sustained tone therefore never double-emits, and the
// recorded intensity is the episode's true peak rather than an early partial
// value.
package tracker

import (
	"fmt"
	"sort"
	"time"

	"github.com/ymarkus/sefirot/internal/network"
	"github.com/ymarkus/sefirot/internal/topology"
)

// Config holds the tracker thresholds.
type Config struct {
	// EnterThreshold is the minimum aggregated path strength that opens an
	// episode. Default: 0.008.
	EnterThreshold float64
}

// DefaultConfig returns the default tracker configuration.
func DefaultConfig() Config {
	return Config{EnterThreshold: 0.008}
}

// Record is one discrete symbol emission: the closing of a path's activation
// episode. Timestamp is the simulation clock at the fade (elapsed since run
// start, not wall time), which keeps replays of the same tick sequence
// bit-identical and makes sequence order imply timestamp order.
type Record struct {
	PathID     topology.PathID `json:"path_id"`
	Symbol     string          `json:"symbol"`
	SymbolName string          `json:"symbol_name"`
	Timestamp  time.Duration   `json:"timestamp"`
	Energy     float64         `json:"energy"` // episode peak strength
	From       topology.NodeID `json:"from"`
	To         topology.NodeID `json:"to"`
	Sequence   uint64          `json:"sequence"`
}

// episode is the open interval during which a path keeps sounding.
type episode struct {
	firstSeenAt  time.Duration
	peakStrength float64
}

// Tracker owns the per-path episode state for one topology tree.
// It is not safe for concurrent use; the owning simulation serializes access.
type Tracker struct {
	tree   *topology.Tree
	config Config

	// open holds the current episode per path, nil when idle. At most one
	// episode per path can be open; Observe enforces this structurally.
	open []*episode

	sequence uint64
}

// New creates a tracker over the given tree with every path idle.
func New(tree *topology.Tree, config Config) *Tracker {
	return &Tracker{
		tree:   tree,
		config: config,
		open:   make([]*episode, tree.PathCount()),
	}
}

// Observe feeds one tick's flows into the episode machines and returns the
// records of every episode that closed this tick, ordered oldest episode
// first. now is the simulation clock after the tick.
func (t *Tracker) Observe(flows []network.Flow, now time.Duration) []Record {
	strengths := t.aggregate(flows)

	type closure struct {
		firstSeenAt time.Duration
		record      Record
	}
	var closed []closure

	for i := range t.open {
		pid := topology.PathID(i)
		strength, flowing := strengths[pid]
		ep := t.open[i]

		switch {
		case ep == nil && flowing && strength >= t.config.EnterThreshold:
			t.open[i] = &episode{firstSeenAt: now, peakStrength: strength}

		case ep != nil && flowing:
			if strength > ep.peakStrength {
				ep.peakStrength = strength
			}

		case ep != nil && !flowing:
			closed = append(closed, closure{
				firstSeenAt: ep.firstSeenAt,
				record:      t.close(pid, ep, now),
			})
			t.open[i] = nil
		}
	}

	// Same-tick closures share a timestamp; emission order follows the age of
	// the episodes so the buffer stays temporally causal within the tick.
	sort.Slice(closed, func(a, b int) bool {
		if closed[a].firstSeenAt != closed[b].firstSeenAt {
			return closed[a].firstSeenAt < closed[b].firstSeenAt
		}
		return closed[a].record.PathID < closed[b].record.PathID
	})

	records := make([]Record, 0, len(closed))
	for _, c := range closed {
		t.sequence++
		c.record.Sequence = t.sequence
		records = append(records, c.record)
	}
	return records
}

// aggregate sums flow strengths per path, matching each flow's unordered
// endpoint pair against the path table.
func (t *Tracker) aggregate(flows []network.Flow) map[topology.PathID]float64 {
	strengths := make(map[topology.PathID]float64)
	for _, f := range flows {
		for _, pid := range t.tree.Touching(f.From) {
			if t.tree.Path(pid).Connects(f.From, f.To) {
				strengths[pid] += f.Strength
			}
		}
	}
	return strengths
}

// close converts an open episode into its record. The sequence number is
// assigned later by Observe, after same-tick ordering.
func (t *Tracker) close(pid topology.PathID, ep *episode, now time.Duration) Record {
	path := t.tree.Path(pid)
	return Record{
		PathID:     pid,
		Symbol:     path.Symbol,
		SymbolName: path.SymbolName,
		Timestamp:  now,
		Energy:     ep.peakStrength,
		From:       path.From,
		To:         path.To,
	}
}

// OpenEpisodes returns the number of currently sounding paths.
func (t *Tracker) OpenEpisodes() int {
	n := 0
	for _, ep := range t.open {
		if ep != nil {
			n++
		}
	}
	return n
}

// Reset discards all open episodes and restarts the sequence counter.
func (t *Tracker) Reset() {
	for i := range t.open {
		t.open[i] = nil
	}
	t.sequence = 0
}

// CheckInvariants verifies internal consistency and returns an error
// describing the first violation. It exists for debug assertions in tests;
// production ticks never call it.
func (t *Tracker) CheckInvariants() error {
	for i, ep := range t.open {
		if ep != nil && ep.peakStrength < t.config.EnterThreshold {
			return fmt.Errorf("path %d: open episode with peak %g below enter threshold %g",
				i, ep.peakStrength, t.config.EnterThreshold)
		}
	}
	return nil
}
