// Package topology defines the immutable node and path tables the oscillator
// network runs over. The canonical Tree-of-Life table (ten sephirot, twenty-two
// lettered paths) ships built in; alternate tables can be loaded from YAML and
// are validated structurally before use. After construction a Tree never
// mutates.
package topology

import "fmt"

// Pillar identifies the vertical column a sephirah belongs to. It is the
// category the metrics layer aggregates energy by.
type Pillar int

const (
	PillarBalance Pillar = iota
	PillarMercy
	PillarSeverity

	// PillarCount is the number of pillars, for fixed-size accumulator arrays.
	PillarCount
)

// String returns the lowercase pillar name.
func (p Pillar) String() string {
	switch p {
	case PillarBalance:
		return "balance"
	case PillarMercy:
		return "mercy"
	case PillarSeverity:
		return "severity"
	default:
		return fmt.Sprintf("pillar(%d)", int(p))
	}
}

// ParsePillar maps a pillar name to its enum value.
func ParsePillar(s string) (Pillar, error) {
	switch s {
	case "balance":
		return PillarBalance, nil
	case "mercy":
		return PillarMercy, nil
	case "severity":
		return PillarSeverity, nil
	default:
		return 0, fmt.Errorf("unknown pillar: %q (valid: balance, mercy, severity)", s)
	}
}

// LetterClass is the traditional grouping of a path's letter. It tags emitted
// activation records but plays no role in the dynamics.
type LetterClass int

const (
	ClassMother LetterClass = iota
	ClassDouble
	ClassSimple
)

// String returns the lowercase class name.
func (c LetterClass) String() string {
	switch c {
	case ClassMother:
		return "mother"
	case ClassDouble:
		return "double"
	case ClassSimple:
		return "simple"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// ParseLetterClass maps a class name to its enum value.
func ParseLetterClass(s string) (LetterClass, error) {
	switch s {
	case "mother":
		return ClassMother, nil
	case "double":
		return ClassDouble, nil
	case "simple":
		return ClassSimple, nil
	default:
		return 0, fmt.Errorf("unknown letter class: %q (valid: mother, double, simple)", s)
	}
}

// NodeID is a dense index into a Tree's node table. IDs are assigned in table
// order at load time, so engine state can live in plain slices instead of maps.
type NodeID int

// Builtin sephirah indices, in the order of the default table.
const (
	Keter NodeID = iota
	Chokmah
	Binah
	Chesed
	Gevurah
	Tiferet
	Netzach
	Hod
	Yesod
	Malkhut
)

// PathID is a dense index into a Tree's path table.
type PathID int

// Node is one sephirah: an oscillator site with a natural frequency and a
// coupling constant. Mutable phase/energy state lives in the network engine,
// not here.
type Node struct {
	ID               NodeID
	Name             string
	Pillar           Pillar
	NaturalFrequency float64 // radians per second
	BaseCoupling     float64
}

// Path is one lettered connection between two sephirot. Propagation treats it
// as undirected: a flow between its endpoints matches in either orientation.
// Impedance, resonant frequency and bandwidth are carried for the display and
// sound layers and do not enter the core dynamics.
type Path struct {
	ID                PathID
	Symbol            string // single Hebrew glyph
	SymbolName        string // transliterated letter name, e.g. "aleph"
	From              NodeID
	To                NodeID
	Class             LetterClass
	Impedance         float64
	ResonantFrequency float64
	Bandwidth         float64
}

// Connects reports whether the path joins the two nodes, in either order.
func (p Path) Connects(a, b NodeID) bool {
	return (p.From == a && p.To == b) || (p.From == b && p.To == a)
}

// Other returns the endpoint opposite to the given node. It returns the From
// endpoint when the node is on neither end; callers are expected to check
// membership first via Connects or the Tree adjacency.
func (p Path) Other(n NodeID) NodeID {
	if p.From == n {
		return p.To
	}
	return p.From
}

// Tree is an immutable topology: the node table, the path table, and derived
// lookup structures. Construct one via Default, New, or Load.
type Tree struct {
	nodes  []Node
	paths  []Path
	byName map[string]NodeID

	// neighbors[i] lists the paths touching node i, in path-table order.
	neighbors [][]PathID
}

// New builds a Tree from the given tables after validating them. The slices
// are copied; IDs are reassigned to table order.
func New(nodes []Node, paths []Path) (*Tree, error) {
	if issues := Validate(nodes, paths); len(issues) > 0 {
		return nil, fmt.Errorf("invalid topology: %s (%d issues total)", issues[0], len(issues))
	}

	t := &Tree{
		nodes:     make([]Node, len(nodes)),
		paths:     make([]Path, len(paths)),
		byName:    make(map[string]NodeID, len(nodes)),
		neighbors: make([][]PathID, len(nodes)),
	}
	for i, n := range nodes {
		n.ID = NodeID(i)
		t.nodes[i] = n
		t.byName[n.Name] = n.ID
	}
	for i, p := range paths {
		p.ID = PathID(i)
		t.paths[i] = p
		t.neighbors[p.From] = append(t.neighbors[p.From], p.ID)
		t.neighbors[p.To] = append(t.neighbors[p.To], p.ID)
	}
	return t, nil
}

// NodeCount returns the number of nodes.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// PathCount returns the number of paths.
func (t *Tree) PathCount() int { return len(t.paths) }

// Node returns the node at the given index. Panics on out-of-range IDs, which
// are programmer errors: IDs only come from this Tree.
func (t *Tree) Node(id NodeID) Node { return t.nodes[id] }

// Path returns the path at the given index.
func (t *Tree) Path(id PathID) Path { return t.paths[id] }

// Nodes returns a copy of the node table.
func (t *Tree) Nodes() []Node {
	out := make([]Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Paths returns a copy of the path table.
func (t *Tree) Paths() []Path {
	out := make([]Path, len(t.paths))
	copy(out, t.paths)
	return out
}

// NodeByName resolves a sephirah name to its ID.
func (t *Tree) NodeByName(name string) (NodeID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// Touching returns the IDs of paths incident to the given node, in path-table
// order. The returned slice is shared and must not be mutated.
func (t *Tree) Touching(id NodeID) []PathID { return t.neighbors[id] }
