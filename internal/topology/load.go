package topology

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// nodeSpec is the YAML shape of one node entry.
type nodeSpec struct {
	Name      string  `yaml:"name"`
	Pillar    string  `yaml:"pillar"`
	Frequency float64 `yaml:"frequency"`
	Coupling  float64 `yaml:"coupling"`
}

// pathSpec is the YAML shape of one path entry. From/To reference nodes by
// name, resolved against the file's own node list.
type pathSpec struct {
	Symbol            string  `yaml:"symbol"`
	Name              string  `yaml:"name"`
	From              string  `yaml:"from"`
	To                string  `yaml:"to"`
	Class             string  `yaml:"class"`
	Impedance         float64 `yaml:"impedance"`
	ResonantFrequency float64 `yaml:"resonant_frequency"`
	Bandwidth         float64 `yaml:"bandwidth"`
}

type treeSpec struct {
	Nodes []nodeSpec `yaml:"nodes"`
	Paths []pathSpec `yaml:"paths"`
}

// Load reads and validates a topology table from a YAML file. Name resolution
// errors (unknown pillar, unknown endpoint name, unknown letter class) and
// structural validation failures are reported with the offending entry.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topology file: %w", err)
	}

	var spec treeSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing topology file: %w", err)
	}
	if len(spec.Nodes) == 0 {
		return nil, fmt.Errorf("topology file %s contains no nodes", path)
	}

	nodes := make([]Node, 0, len(spec.Nodes))
	index := make(map[string]NodeID, len(spec.Nodes))
	for i, ns := range spec.Nodes {
		pillar, err := ParsePillar(ns.Pillar)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", ns.Name, err)
		}
		nodes = append(nodes, Node{
			Name:             ns.Name,
			Pillar:           pillar,
			NaturalFrequency: ns.Frequency,
			BaseCoupling:     ns.Coupling,
		})
		if _, dup := index[ns.Name]; !dup {
			index[ns.Name] = NodeID(i)
		}
	}

	paths := make([]Path, 0, len(spec.Paths))
	for _, ps := range spec.Paths {
		from, ok := index[ps.From]
		if !ok {
			return nil, fmt.Errorf("path %q: from references unknown node %q", ps.Name, ps.From)
		}
		to, ok := index[ps.To]
		if !ok {
			return nil, fmt.Errorf("path %q: to references unknown node %q", ps.Name, ps.To)
		}
		class, err := ParseLetterClass(ps.Class)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", ps.Name, err)
		}
		paths = append(paths, Path{
			Symbol:            ps.Symbol,
			SymbolName:        ps.Name,
			From:              from,
			To:                to,
			Class:             class,
			Impedance:         ps.Impedance,
			ResonantFrequency: ps.ResonantFrequency,
			Bandwidth:         ps.Bandwidth,
		})
	}

	tree, err := New(nodes, paths)
	if err != nil {
		return nil, fmt.Errorf("topology file %s: %w", path, err)
	}
	return tree, nil
}
