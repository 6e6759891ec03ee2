package domain

// Node is a single graph vertex as reported by the traversal backend.
type Node struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Edge connects two declared nodes.
type Edge struct {
	ID    string `json:"id" yaml:"id"`
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Type  string `json:"type" yaml:"type"`
}

// Dataset is the immutable input to a playback session: the full graph plus
// the order in which the traversal visited it. Edge reveals are interpreted
// as occurring strictly after all node reveals.
//
// The dataset is not required to be internally consistent. An order entry
// referencing an unknown id produces a no-op reveal step, never an error.
type Dataset struct {
	Nodes     []Node   `json:"nodes" yaml:"nodes"`
	Edges     []Edge   `json:"edges" yaml:"edges"`
	NodeOrder []string `json:"node_order" yaml:"node_order"`
	EdgeOrder []string `json:"edge_order" yaml:"edge_order"`
}

// Empty reports whether the dataset carries nothing to render.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Nodes) == 0
}
