package mcp

// EnergizeInput defines the input for the sefirot_energize tool.
type EnergizeInput struct {
	Node   string  `json:"node" jsonschema:"Sephirah name to energize (e.g. 'keter')"`
	Amount float64 `json:"amount,omitempty" jsonschema:"Energy to inject in (0.0-1.0]; defaults to 1.0"`
}

// EnergizeOutput defines the output for the sefirot_energize tool.
type EnergizeOutput struct {
	Accepted bool   `json:"accepted" jsonschema:"Whether the node was found and energized"`
	Message  string `json:"message" jsonschema:"Human-readable result message"`
}

// StepInput defines the input for the sefirot_step tool.
type StepInput struct {
	Ticks int `json:"ticks,omitempty" jsonschema:"Number of ticks to advance synchronously (default: 1, max: 10000)"`
}

// StateOutput is the shared output of sefirot_step and sefirot_state: the
// current aggregate view of the network.
type StateOutput struct {
	RunID          string     `json:"run_id" jsonschema:"Identity of the current run"`
	SimTime        float64    `json:"sim_time" jsonschema:"Simulation clock in seconds"`
	Coherence      float64    `json:"coherence" jsonschema:"Kuramoto order parameter over active nodes (0.0-1.0)"`
	TotalEnergy    float64    `json:"total_energy" jsonschema:"Summed energy over all nodes"`
	DominantPillar string     `json:"dominant_pillar" jsonschema:"Pillar with strictly maximal energy, or 'none'"`
	Nodes          []NodeView `json:"nodes" jsonschema:"Per-node state snapshot"`
}

// NodeView is one node's state in a StateOutput.
type NodeView struct {
	Name   string  `json:"name"`
	Pillar string  `json:"pillar"`
	Energy float64 `json:"energy"`
	Phase  float64 `json:"phase"`
	Active bool    `json:"active"`
}

// StreamInput defines the (empty) input for the sefirot_stream tool.
type StreamInput struct{}

// StreamOutput defines the output for the sefirot_stream tool.
type StreamOutput struct {
	Symbols []StreamSymbol `json:"symbols" jsonschema:"Symbol stream oldest-first with age weights"`
	Count   int            `json:"count" jsonschema:"Number of symbols in the stream"`
}

// StreamSymbol is one glyph of the stream projection.
type StreamSymbol struct {
	Symbol    string  `json:"symbol"`
	AgeWeight float64 `json:"age_weight"`
}

// WordsInput defines the (empty) input for the sefirot_words tool.
type WordsInput struct{}

// WordsOutput defines the output for the sefirot_words tool.
type WordsOutput struct {
	Words []WordView `json:"words,omitempty" jsonschema:"Words recognized in the current stream"`
	Count int        `json:"count" jsonschema:"Number of recognized words"`
}

// WordView is one recognized word.
type WordView struct {
	Name     string `json:"name"`
	Spelling string `json:"spelling"`
	Meaning  string `json:"meaning"`
	Category string `json:"category"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// ResetInput defines the (empty) input for the sefirot_reset tool.
type ResetInput struct{}

// ResetOutput defines the output for the sefirot_reset tool.
type ResetOutput struct {
	RunID   string `json:"run_id" jsonschema:"Identity of the fresh run"`
	Message string `json:"message" jsonschema:"Human-readable result message"`
}
