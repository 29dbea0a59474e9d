package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "List the dictionary, or match a glyph sequence against it",
		Long: `List the dictionary, or match a glyph sequence against it.

Examples:
  sefirot words                # list all dictionary words
  sefirot words --match אורחי  # run the matcher over an explicit sequence`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			match, _ := cmd.Flags().GetString("match")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dict, err := loadDictionary(cfg)
			if err != nil {
				return err
			}

			if match != "" {
				var symbols []string
				for _, r := range match {
					symbols = append(symbols, string(r))
				}
				matches := dict.FindWords(symbols)

				if jsonOut {
					return json.NewEncoder(os.Stdout).Encode(matches)
				}
				if len(matches) == 0 {
					fmt.Println("no words found")
					return nil
				}
				for _, m := range matches {
					fmt.Printf("%s (%s) %q [%d:%d]\n",
						m.Word.Spelling(), m.Word.Name, m.Word.Meaning, m.StartIndex, m.EndIndex)
				}
				return nil
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(dict.Words())
			}
			for _, w := range dict.Words() {
				fmt.Printf("%-6s %-8s %-10s %q\n", w.Spelling(), w.Name, w.Category, w.Meaning)
			}
			return nil
		},
	}

	cmd.Flags().String("match", "", "Glyph sequence to match instead of listing")

	return cmd
}
