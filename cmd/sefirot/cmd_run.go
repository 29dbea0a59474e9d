package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ymarkus/sefirot/internal/sim"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive the simulation at the configured tick rate",
		Long: `Drive the simulation at the configured tick rate.

Seeds optional energy bursts, then ticks until the duration elapses or the
process is interrupted. A board with metrics, the symbol stream and any
recognized words is printed at the report interval.

Examples:
  sefirot run --energize keter=1.0 --duration 30s
  sefirot run --energize keter=1.0 --energize malkhut=0.4 --json
  sefirot run --ticks 400                # bounded, wall-clock-free run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			duration, _ := cmd.Flags().GetDuration("duration")
			ticks, _ := cmd.Flags().GetInt("ticks")
			every, _ := cmd.Flags().GetDuration("report-every")
			bursts, _ := cmd.Flags().GetStringArray("energize")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			simulation, err := buildSimulation(cfg)
			if err != nil {
				return err
			}

			for _, b := range bursts {
				name, amount, err := parseBurst(b)
				if err != nil {
					return err
				}
				if !simulation.EnergizeByName(name, amount) {
					return fmt.Errorf("unknown sephirah %q", name)
				}
			}

			driver := sim.NewDriver(simulation, cfg.TickInterval())

			// Bounded tick-count runs advance synchronously, which keeps
			// them reproducible and fast regardless of the wall clock.
			if ticks > 0 {
				last := driver.Step(ticks)
				return printBoard(simulation, last, jsonOut)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			if duration > 0 {
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			var last sim.TickResult
			lastReport := time.Now()
			driver.OnTick = func(r sim.TickResult) {
				last = r
				if time.Since(lastReport) >= every {
					lastReport = time.Now()
					_ = printBoard(simulation, r, jsonOut)
				}
			}

			if err := driver.Run(ctx); err != nil {
				return err
			}
			return printBoard(simulation, last, jsonOut)
		},
	}

	cmd.Flags().Duration("duration", 0, "How long to run (0 = until interrupted)")
	cmd.Flags().Int("ticks", 0, "Advance this many ticks synchronously instead of running on the clock")
	cmd.Flags().Duration("report-every", 2*time.Second, "Board reporting interval")
	cmd.Flags().StringArray("energize", nil, "Initial energy burst as name=amount (repeatable)")

	return cmd
}

// parseBurst splits an --energize argument of the form name=amount.
func parseBurst(s string) (string, float64, error) {
	name, value, found := strings.Cut(s, "=")
	if !found {
		return "", 0, fmt.Errorf("invalid --energize %q (expected name=amount)", s)
	}
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid --energize amount %q: %w", value, err)
	}
	if amount <= 0 || amount > 1 {
		return "", 0, fmt.Errorf("--energize amount must be in (0,1], got %g", amount)
	}
	return name, amount, nil
}

// boardSnapshot is the JSON shape of one board report.
type boardSnapshot struct {
	SimTime float64        `json:"sim_time"`
	Result  sim.TickResult `json:"result"`
	Stream  []streamEntry  `json:"stream"`
	Words   []wordEntry    `json:"words,omitempty"`
}

type streamEntry struct {
	Symbol    string  `json:"symbol"`
	AgeWeight float64 `json:"age_weight"`
}

type wordEntry struct {
	Name     string `json:"name"`
	Spelling string `json:"spelling"`
	Meaning  string `json:"meaning"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// printBoard renders the current state of the simulation to stdout.
func printBoard(simulation *sim.Simulation, last sim.TickResult, jsonOut bool) error {
	weighted := simulation.SymbolStream()
	matches := simulation.FoundWords()

	if jsonOut {
		snap := boardSnapshot{
			SimTime: simulation.Clock().Seconds(),
			Result:  last,
		}
		for _, ws := range weighted {
			snap.Stream = append(snap.Stream, streamEntry{Symbol: ws.Symbol, AgeWeight: ws.AgeWeight})
		}
		for _, m := range matches {
			snap.Words = append(snap.Words, wordEntry{
				Name:     m.Word.Name,
				Spelling: m.Word.Spelling(),
				Meaning:  m.Word.Meaning,
				Start:    m.StartIndex,
				End:      m.EndIndex,
			})
		}
		return json.NewEncoder(os.Stdout).Encode(snap)
	}

	fmt.Printf("t=%.2fs  coherence=%.3f  energy=%.3f  pillar=%s  active=%d\n",
		simulation.Clock().Seconds(),
		last.Metrics.Coherence,
		last.Metrics.TotalEnergy,
		last.Metrics.DominantPillar,
		len(last.Metrics.ActiveNodes))

	if len(weighted) > 0 {
		glyphs := make([]string, len(weighted))
		for i, ws := range weighted {
			glyphs[i] = ws.Symbol
		}
		fmt.Printf("stream: %s\n", strings.Join(glyphs, " "))
	}
	for _, m := range matches {
		fmt.Printf("word: %s (%s) %q [%d:%d]\n",
			m.Word.Spelling(), m.Word.Name, m.Word.Meaning, m.StartIndex, m.EndIndex)
	}
	return nil
}
