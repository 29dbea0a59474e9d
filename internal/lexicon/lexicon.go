// Package lexicon holds the word dictionary and the longest-match scanner
// that recognizes known letter sequences in the symbol stream. The dictionary
// is immutable after construction; matching is a pure function of its input.
package lexicon

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Word is one dictionary entry: an ordered glyph sequence with its
// transliterated name, meaning, and a loose thematic category.
type Word struct {
	Symbols  []string `json:"symbols"`
	Name     string   `json:"name"`
	Meaning  string   `json:"meaning"`
	Category string   `json:"category"`
}

// Spelling returns the word's glyphs joined into a single string.
func (w Word) Spelling() string { return strings.Join(w.Symbols, "") }

// Match is one recognized occurrence of a word in a symbol sequence. Indices
// are half-open over the input: [StartIndex, EndIndex).
type Match struct {
	Word       Word `json:"word"`
	StartIndex int  `json:"start_index"`
	EndIndex   int  `json:"end_index"`
}

// Dictionary is an immutable word list that preserves insertion order, which
// breaks length ties deterministically during matching.
type Dictionary struct {
	words []Word

	// scanOrder indexes words by descending symbol count, ties in insertion
	// order. Precomputed once since the dictionary never changes.
	scanOrder []int
}

// New builds a dictionary from the given words after validating them:
// empty names, empty or multi-glyph symbol entries, and duplicate names are
// rejected.
func New(words []Word) (*Dictionary, error) {
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if w.Name == "" {
			return nil, fmt.Errorf("dictionary word %q has no name", w.Spelling())
		}
		if seen[w.Name] {
			return nil, fmt.Errorf("dictionary word %q is duplicated", w.Name)
		}
		seen[w.Name] = true
		if len(w.Symbols) == 0 {
			return nil, fmt.Errorf("dictionary word %q has an empty symbol sequence", w.Name)
		}
		for _, s := range w.Symbols {
			if s == "" {
				return nil, fmt.Errorf("dictionary word %q contains an empty symbol", w.Name)
			}
		}
	}

	d := &Dictionary{
		words:     make([]Word, len(words)),
		scanOrder: make([]int, len(words)),
	}
	copy(d.words, words)
	for i := range d.scanOrder {
		d.scanOrder[i] = i
	}
	sort.SliceStable(d.scanOrder, func(a, b int) bool {
		return len(d.words[d.scanOrder[a]].Symbols) > len(d.words[d.scanOrder[b]].Symbols)
	})
	return d, nil
}

// Words returns a copy of the dictionary in insertion order.
func (d *Dictionary) Words() []Word {
	out := make([]Word, len(d.words))
	copy(out, d.words)
	return out
}

// Len returns the number of words.
func (d *Dictionary) Len() int { return len(d.words) }

// FindWords scans the symbol sequence for dictionary words and returns all
// accepted matches sorted by start index. Longer words are tried first
// (insertion order breaks ties); a candidate occurrence is accepted only when
// its span does not overlap an already-accepted one, so the result never
// contains overlapping matches.
func (d *Dictionary) FindWords(symbols []string) []Match {
	if len(symbols) == 0 || len(d.words) == 0 {
		return nil
	}

	taken := make([]bool, len(symbols))
	var matches []Match

	for _, wi := range d.scanOrder {
		word := d.words[wi]
		n := len(word.Symbols)
		if n > len(symbols) {
			continue
		}

	scan:
		for start := 0; start+n <= len(symbols); start++ {
			for k := 0; k < n; k++ {
				if taken[start+k] || symbols[start+k] != word.Symbols[k] {
					continue scan
				}
			}
			for k := 0; k < n; k++ {
				taken[start+k] = true
			}
			matches = append(matches, Match{Word: word, StartIndex: start, EndIndex: start + n})
		}
	}

	sort.Slice(matches, func(a, b int) bool {
		return matches[a].StartIndex < matches[b].StartIndex
	})
	return matches
}

// wordSpec is the YAML shape of one dictionary entry. Symbols may be given as
// a glyph list or as a single string that is split into runes.
type wordSpec struct {
	Symbols  []string `yaml:"symbols"`
	Spelling string   `yaml:"spelling"`
	Name     string   `yaml:"name"`
	Meaning  string   `yaml:"meaning"`
	Category string   `yaml:"category"`
}

type lexiconSpec struct {
	Words []wordSpec `yaml:"words"`
}

// Load reads and validates a dictionary from a YAML file.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon file: %w", err)
	}

	var spec lexiconSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing lexicon file: %w", err)
	}

	words := make([]Word, 0, len(spec.Words))
	for _, ws := range spec.Words {
		symbols := ws.Symbols
		if len(symbols) == 0 && ws.Spelling != "" {
			for _, r := range ws.Spelling {
				symbols = append(symbols, string(r))
			}
		}
		words = append(words, Word{
			Symbols:  symbols,
			Name:     ws.Name,
			Meaning:  ws.Meaning,
			Category: ws.Category,
		})
	}

	d, err := New(words)
	if err != nil {
		return nil, fmt.Errorf("lexicon file %s: %w", path, err)
	}
	return d, nil
}
