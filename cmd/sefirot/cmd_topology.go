package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ymarkus/sefirot/internal/topology"
)

func newTopologyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topology",
		Short: "Print the loaded node and path tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			tree, err := loadTree(cfg)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"nodes": nodeViews(tree),
					"paths": pathViews(tree),
				})
			}

			fmt.Printf("Nodes (%d):\n", tree.NodeCount())
			for _, n := range tree.Nodes() {
				fmt.Printf("  %-8s  pillar=%-8s  freq=%.2f  coupling=%.2f\n",
					n.Name, n.Pillar, n.NaturalFrequency, n.BaseCoupling)
			}

			fmt.Printf("\nPaths (%d):\n", tree.PathCount())
			for _, p := range tree.Paths() {
				fmt.Printf("  %s %-7s  %-8s - %-8s  class=%-6s  impedance=%.2f\n",
					p.Symbol, p.SymbolName,
					tree.Node(p.From).Name, tree.Node(p.To).Name,
					p.Class, p.Impedance)
			}
			return nil
		},
	}
}

type topologyNodeView struct {
	Name      string  `json:"name"`
	Pillar    string  `json:"pillar"`
	Frequency float64 `json:"frequency"`
	Coupling  float64 `json:"coupling"`
}

type topologyPathView struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Class     string  `json:"class"`
	Impedance float64 `json:"impedance"`
}

func nodeViews(tree *topology.Tree) []topologyNodeView {
	out := make([]topologyNodeView, 0, tree.NodeCount())
	for _, n := range tree.Nodes() {
		out = append(out, topologyNodeView{
			Name:      n.Name,
			Pillar:    n.Pillar.String(),
			Frequency: n.NaturalFrequency,
			Coupling:  n.BaseCoupling,
		})
	}
	return out
}

func pathViews(tree *topology.Tree) []topologyPathView {
	out := make([]topologyPathView, 0, tree.PathCount())
	for _, p := range tree.Paths() {
		out = append(out, topologyPathView{
			Symbol:    p.Symbol,
			Name:      p.SymbolName,
			From:      tree.Node(p.From).Name,
			To:        tree.Node(p.To).Name,
			Class:     p.Class.String(),
			Impedance: p.Impedance,
		})
	}
	return out
}
