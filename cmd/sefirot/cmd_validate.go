package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ymarkus/sefirot/internal/topology"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate topology and lexicon files",
		Long: `Validate topology and lexicon files.

Checks the structural invariants enforced at load time: unique node names,
single-glyph unique path symbols, no self-loops or dangling endpoints,
in-range impedances and frequencies, and non-empty unique dictionary words.

Examples:
  sefirot validate                          # validate the configured files
  sefirot validate --topology my-tree.yaml  # validate a specific table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			topoFile, _ := cmd.Flags().GetString("topology")
			lexFile, _ := cmd.Flags().GetString("lexicon")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if topoFile != "" {
				cfg.TopologyFile = topoFile
			}
			if lexFile != "" {
				cfg.LexiconFile = lexFile
			}

			type report struct {
				Topology string `json:"topology"`
				Lexicon  string `json:"lexicon"`
			}
			rep := report{Topology: "ok", Lexicon: "ok"}

			tree, topoErr := loadTree(cfg)
			if topoErr != nil {
				rep.Topology = topoErr.Error()
			} else if issues := topology.Validate(tree.Nodes(), tree.Paths()); len(issues) > 0 {
				// Load already validates; a hit here means the builtin
				// table itself regressed.
				rep.Topology = issues[0].String()
			}

			_, lexErr := loadDictionary(cfg)
			if lexErr != nil {
				rep.Lexicon = lexErr.Error()
			}

			if jsonOut {
				if err := json.NewEncoder(os.Stdout).Encode(rep); err != nil {
					return err
				}
			} else {
				fmt.Printf("topology: %s\n", rep.Topology)
				fmt.Printf("lexicon:  %s\n", rep.Lexicon)
			}

			if rep.Topology != "ok" || rep.Lexicon != "ok" {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}

	cmd.Flags().String("topology", "", "Topology file to validate (overrides config)")
	cmd.Flags().String("lexicon", "", "Lexicon file to validate (overrides config)")

	return cmd
}
