// Package stream holds the bounded, decaying log of activation records that
// forms the emergent symbol stream. Entries are kept oldest-first (natural reading
// order), evicted when they outlive the decay window, and truncated to a
// maximum count. Eviction is silent: overflow is normal operation, not an
// error.
package stream

import (
	"time"

	"github.com/ymarkus/sefirot/internal/tracker"
)

// Config bounds the buffer.
type Config struct {
	// MaxLength is the maximum number of retained records. Default: 22.
	MaxLength int

	// DecayWindow is the maximum record age before mandatory eviction.
	// Default: 30s of simulation time.
	DecayWindow time.Duration
}

// DefaultConfig returns the default buffer bounds.
func DefaultConfig() Config {
	return Config{
		MaxLength:   22,
		DecayWindow: 30 * time.Second,
	}
}

// WeightedSymbol is the read-only display projection of one record: its glyph
// and a presentation weight derived from age (1.0 fresh, fading toward 0.3 at
// the decay window). The weight is computed on read and never stored.
type WeightedSymbol struct {
	Symbol    string  `json:"symbol"`
	AgeWeight float64 `json:"age_weight"`
}

// Buffer is the ordered symbol stream. It is not safe for concurrent use; the
// owning simulation serializes access.
type Buffer struct {
	config  Config
	records []tracker.Record
}

// New creates an empty buffer.
func New(config Config) *Buffer {
	return &Buffer{config: config}
}

// Append adds records to the end of the buffer. Callers pass records in the
// order the tracker emitted them, which keeps the buffer sequence-ordered.
func (b *Buffer) Append(records []tracker.Record) {
	b.records = append(b.records, records...)
}

// Maintain drops records older than the decay window, then truncates to the
// most recent MaxLength entries if still over capacity. now is the simulation
// clock.
func (b *Buffer) Maintain(now time.Duration) {
	cutoff := 0
	for cutoff < len(b.records) && now-b.records[cutoff].Timestamp > b.config.DecayWindow {
		cutoff++
	}
	if cutoff > 0 {
		b.records = append(b.records[:0], b.records[cutoff:]...)
	}
	if over := len(b.records) - b.config.MaxLength; over > 0 {
		b.records = append(b.records[:0], b.records[over:]...)
	}
}

// Symbols returns the glyph projection of the buffer, oldest first.
func (b *Buffer) Symbols() []string {
	out := make([]string, len(b.records))
	for i, r := range b.records {
		out[i] = r.Symbol
	}
	return out
}

// Weighted returns the display projection of the buffer at the given clock:
// each glyph with its age weight 0.3 + 0.7*(1 - age/decayWindow), clamped so
// a not-yet-evicted but overdue record never goes below the floor.
func (b *Buffer) Weighted(now time.Duration) []WeightedSymbol {
	out := make([]WeightedSymbol, len(b.records))
	for i, r := range b.records {
		frac := float64(now-r.Timestamp) / float64(b.config.DecayWindow)
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		out[i] = WeightedSymbol{
			Symbol:    r.Symbol,
			AgeWeight: 0.3 + 0.7*(1-frac),
		}
	}
	return out
}

// Records returns a copy of the buffered records, oldest first.
func (b *Buffer) Records() []tracker.Record {
	out := make([]tracker.Record, len(b.records))
	copy(out, b.records)
	return out
}

// Len returns the number of buffered records.
func (b *Buffer) Len() int { return len(b.records) }

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.records = b.records[:0]
}
