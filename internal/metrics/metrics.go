// Package metrics derives aggregate readings from oscillator node state. All
// functions are pure: they take a snapshot and return a summary, persisting
// nothing.
package metrics

import (
	"math"

	"github.com/ymarkus/sefirot/internal/network"
	"github.com/ymarkus/sefirot/internal/topology"
)

// Config holds the thresholds the metrics layer applies.
type Config struct {
	// ActivityThreshold is the minimum energy for a node to count as active.
	// Default: 0.15.
	ActivityThreshold float64

	// MinDominantEnergy is the minimum summed pillar energy required before a
	// dominant pillar is reported at all. Default: 0.1.
	MinDominantEnergy float64
}

// DefaultConfig returns the default metrics thresholds.
func DefaultConfig() Config {
	return Config{
		ActivityThreshold: 0.15,
		MinDominantEnergy: 0.1,
	}
}

// Summary is one tick's derived aggregate view of the network.
type Summary struct {
	// Coherence is the amplitude-weighted Kuramoto order parameter over the
	// active nodes, in [0,1]. 1.0 means perfect phase alignment.
	Coherence float64 `json:"coherence"`

	// TotalEnergy is the sum of energy over all nodes, active or not.
	TotalEnergy float64 `json:"total_energy"`

	// DominantPillar names the pillar whose summed member energy is strictly
	// maximal, or "none" on a tie or when every pillar is below the minimum.
	DominantPillar string `json:"dominant_pillar"`

	// ActiveNodes lists the IDs of nodes at or above the activity threshold,
	// in node-table order.
	ActiveNodes []topology.NodeID `json:"active_nodes"`
}

// Compute derives a Summary from a node snapshot.
func Compute(nodes []network.NodeState, cfg Config) Summary {
	s := Summary{DominantPillar: "none"}

	var sumX, sumY float64
	var pillarEnergy [topology.PillarCount]float64

	for _, node := range nodes {
		s.TotalEnergy += node.Energy
		pillarEnergy[node.Pillar] += node.Energy

		if node.Energy >= cfg.ActivityThreshold {
			s.ActiveNodes = append(s.ActiveNodes, node.ID)
			sumX += node.Amplitude * math.Cos(node.Phase)
			sumY += node.Amplitude * math.Sin(node.Phase)
		}
	}

	if n := len(s.ActiveNodes); n > 0 {
		s.Coherence = clamp01(math.Hypot(sumX, sumY) / float64(n))
	}

	// Dominant pillar requires a strict maximum above the floor.
	best, tie := -1, false
	for p := 0; p < int(topology.PillarCount); p++ {
		if pillarEnergy[p] < cfg.MinDominantEnergy {
			continue
		}
		switch {
		case best < 0 || pillarEnergy[p] > pillarEnergy[best]:
			best, tie = p, false
		case pillarEnergy[p] == pillarEnergy[best]:
			tie = true
		}
	}
	if best >= 0 && !tie {
		s.DominantPillar = topology.Pillar(best).String()
	}

	return s
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
