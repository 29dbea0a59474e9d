package stream

import (
	"math"
	"testing"
	"time"

	"github.com/ymarkus/sefirot/internal/topology"
	"github.com/ymarkus/sefirot/internal/tracker"
)

// record builds a minimal record at the given simulation time.
func record(seq uint64, symbol string, at time.Duration) tracker.Record {
	return tracker.Record{
		PathID:    topology.PathID(seq % 22),
		Symbol:    symbol,
		Timestamp: at,
		Sequence:  seq,
	}
}

func TestMaintain_EvictsExpiredRecords(t *testing.T) {
	cfg := Config{MaxLength: 22, DecayWindow: 10 * time.Second}
	b := New(cfg)

	b.Append([]tracker.Record{
		record(1, "א", 1*time.Second),
		record(2, "ב", 5*time.Second),
		record(3, "ג", 9*time.Second),
	})

	// At t=12s the first record is 11s old and must go; the second is exactly
	// at the window edge (age 7s) and stays.
	b.Maintain(12 * time.Second)
	got := b.Symbols()
	if len(got) != 2 || got[0] != "ב" || got[1] != "ג" {
		t.Fatalf("unexpected survivors: %v", got)
	}

	// Well past the window everything is evicted.
	b.Maintain(60 * time.Second)
	if b.Len() != 0 {
		t.Errorf("expected empty buffer, got %d records", b.Len())
	}
}

func TestMaintain_TruncatesToCapacity(t *testing.T) {
	cfg := Config{MaxLength: 3, DecayWindow: time.Hour}
	b := New(cfg)

	symbols := []string{"א", "ב", "ג", "ד", "ה"}
	for i, s := range symbols {
		b.Append([]tracker.Record{record(uint64(i+1), s, time.Duration(i) * time.Second)})
	}
	b.Maintain(10 * time.Second)

	got := b.Symbols()
	want := []string{"ג", "ד", "ה"}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d: want %s, got %s", i, want[i], got[i])
		}
	}
}

func TestMaintain_AgeBeforeCapacity(t *testing.T) {
	// Age eviction can bring the buffer under capacity so that truncation
	// never fires; the newest record survives either way.
	cfg := Config{MaxLength: 2, DecayWindow: 3 * time.Second}
	b := New(cfg)
	b.Append([]tracker.Record{
		record(1, "א", 0),
		record(2, "ב", 1*time.Second),
		record(3, "ג", 5*time.Second),
	})
	b.Maintain(5 * time.Second)

	got := b.Symbols()
	if len(got) != 2 || got[0] != "ב" || got[1] != "ג" {
		t.Fatalf("unexpected survivors: %v", got)
	}
}

func TestWeighted_AgeWeightRange(t *testing.T) {
	cfg := Config{MaxLength: 22, DecayWindow: 10 * time.Second}
	b := New(cfg)
	b.Append([]tracker.Record{
		record(1, "א", 0),
		record(2, "ב", 5*time.Second),
		record(3, "ג", 10*time.Second),
	})

	weighted := b.Weighted(10 * time.Second)
	if len(weighted) != 3 {
		t.Fatalf("expected 3 weighted symbols, got %d", len(weighted))
	}

	// Oldest sits at the window edge (floor weight), newest is fresh.
	if math.Abs(weighted[0].AgeWeight-0.3) > 1e-9 {
		t.Errorf("edge-of-window weight: want 0.3, got %g", weighted[0].AgeWeight)
	}
	if math.Abs(weighted[1].AgeWeight-0.65) > 1e-9 {
		t.Errorf("half-window weight: want 0.65, got %g", weighted[1].AgeWeight)
	}
	if math.Abs(weighted[2].AgeWeight-1.0) > 1e-9 {
		t.Errorf("fresh weight: want 1.0, got %g", weighted[2].AgeWeight)
	}

	for _, w := range weighted {
		if w.AgeWeight < 0.3 || w.AgeWeight > 1.0 {
			t.Errorf("weight out of range: %+v", w)
		}
	}
}

func TestRecords_ReturnsCopy(t *testing.T) {
	b := New(DefaultConfig())
	b.Append([]tracker.Record{record(1, "א", 0)})

	out := b.Records()
	out[0].Symbol = "mutated"
	if b.Symbols()[0] != "א" {
		t.Error("Records exposed internal storage")
	}
}

func TestClear(t *testing.T) {
	b := New(DefaultConfig())
	b.Append([]tracker.Record{record(1, "א", 0), record(2, "ב", 0)})
	b.Clear()
	if b.Len() != 0 {
		t.Errorf("expected empty buffer after Clear, got %d", b.Len())
	}
	if len(b.Symbols()) != 0 || len(b.Weighted(0)) != 0 {
		t.Error("projections not empty after Clear")
	}
}
