package topology

import (
	"fmt"
	"unicode/utf8"
)

// ValidationError describes one structural issue in a topology table.
type ValidationError struct {
	Kind  string `json:"kind"`  // "node" or "path"
	Name  string `json:"name"`  // node name or path symbol name
	Field string `json:"field"` // offending field
	Issue string `json:"issue"` // human-readable description
}

// String returns a human-readable description of the validation error.
func (e ValidationError) String() string {
	return fmt.Sprintf("%s %q: %s %s", e.Kind, e.Name, e.Field, e.Issue)
}

// Validate checks the node and path tables for structural invariants:
// non-empty unique node names, positive frequencies, couplings and impedances
// in [0,1], single-glyph symbols, no self-referencing paths, no dangling
// endpoints, and no duplicate path symbols. It returns every issue found, not
// just the first, so a malformed file can be fixed in one pass. Path From/To
// fields are interpreted as indices into the node slice.
func Validate(nodes []Node, paths []Path) []ValidationError {
	var issues []ValidationError

	seenNames := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.Name == "" {
			issues = append(issues, ValidationError{Kind: "node", Name: n.Name, Field: "name", Issue: "is empty"})
			continue
		}
		if seenNames[n.Name] {
			issues = append(issues, ValidationError{Kind: "node", Name: n.Name, Field: "name", Issue: "is duplicated"})
		}
		seenNames[n.Name] = true

		if n.NaturalFrequency <= 0 {
			issues = append(issues, ValidationError{Kind: "node", Name: n.Name, Field: "frequency", Issue: fmt.Sprintf("must be positive, got %g", n.NaturalFrequency)})
		}
		if n.BaseCoupling < 0 || n.BaseCoupling > 1 {
			issues = append(issues, ValidationError{Kind: "node", Name: n.Name, Field: "coupling", Issue: fmt.Sprintf("must be in [0,1], got %g", n.BaseCoupling)})
		}
	}

	seenSymbols := make(map[string]bool, len(paths))
	for _, p := range paths {
		name := p.SymbolName
		if name == "" {
			name = p.Symbol
		}

		if p.Symbol == "" {
			issues = append(issues, ValidationError{Kind: "path", Name: name, Field: "symbol", Issue: "is empty"})
		} else if utf8.RuneCountInString(p.Symbol) != 1 {
			issues = append(issues, ValidationError{Kind: "path", Name: name, Field: "symbol", Issue: fmt.Sprintf("must be a single glyph, got %q", p.Symbol)})
		} else if seenSymbols[p.Symbol] {
			issues = append(issues, ValidationError{Kind: "path", Name: name, Field: "symbol", Issue: fmt.Sprintf("%q is duplicated", p.Symbol)})
		}
		seenSymbols[p.Symbol] = true

		if p.From == p.To {
			issues = append(issues, ValidationError{Kind: "path", Name: name, Field: "endpoints", Issue: "path references a single node (self-loop)"})
		}
		if int(p.From) < 0 || int(p.From) >= len(nodes) {
			issues = append(issues, ValidationError{Kind: "path", Name: name, Field: "from", Issue: fmt.Sprintf("references unknown node %d", p.From)})
		}
		if int(p.To) < 0 || int(p.To) >= len(nodes) {
			issues = append(issues, ValidationError{Kind: "path", Name: name, Field: "to", Issue: fmt.Sprintf("references unknown node %d", p.To)})
		}
		if p.Impedance < 0 || p.Impedance > 1 {
			issues = append(issues, ValidationError{Kind: "path", Name: name, Field: "impedance", Issue: fmt.Sprintf("must be in [0,1], got %g", p.Impedance)})
		}
		if p.ResonantFrequency <= 0 {
			issues = append(issues, ValidationError{Kind: "path", Name: name, Field: "resonant_frequency", Issue: fmt.Sprintf("must be positive, got %g", p.ResonantFrequency)})
		}
		if p.Bandwidth <= 0 {
			issues = append(issues, ValidationError{Kind: "path", Name: name, Field: "bandwidth", Issue: fmt.Sprintf("must be positive, got %g", p.Bandwidth)})
		}
	}

	return issues
}
