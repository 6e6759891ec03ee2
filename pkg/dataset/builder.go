package dataset

import "github.com/stagewalk/stagewalk/pkg/domain"

// Builder constructs traversal datasets programmatically with a fluent API.
// It is mainly a convenience for tests, demos, and tooling that produces
// datasets from live traversals.
type Builder struct {
	nodes   []*NodeBuilder
	edges   []*EdgeBuilder
	byNode  map[string]*NodeBuilder
	byEdge  map[string]*EdgeBuilder
	visits  []string
	crossed []string
}

// NewBuilder creates an empty dataset builder.
func NewBuilder() *Builder {
	return &Builder{
		byNode: make(map[string]*NodeBuilder),
		byEdge: make(map[string]*EdgeBuilder),
	}
}

// Node declares a node (or returns the existing builder for the id).
func (b *Builder) Node(id string) *NodeBuilder {
	if nb, ok := b.byNode[id]; ok {
		return nb
	}
	nb := &NodeBuilder{node: domain.Node{ID: id}, builder: b}
	b.nodes = append(b.nodes, nb)
	b.byNode[id] = nb
	return nb
}

// Edge declares an edge (or returns the existing builder for the id).
func (b *Builder) Edge(id, from, to string) *EdgeBuilder {
	if eb, ok := b.byEdge[id]; ok {
		return eb
	}
	eb := &EdgeBuilder{edge: domain.Edge{ID: id, From: from, To: to}, builder: b}
	b.edges = append(b.edges, eb)
	b.byEdge[id] = eb
	return eb
}

// Build compiles the dataset. Elements appear in declaration order; the
// reveal orders reflect Visit/Traverse calls.
func (b *Builder) Build() *domain.Dataset {
	d := &domain.Dataset{
		NodeOrder: append([]string(nil), b.visits...),
		EdgeOrder: append([]string(nil), b.crossed...),
	}
	for _, nb := range b.nodes {
		d.Nodes = append(d.Nodes, nb.node)
	}
	for _, eb := range b.edges {
		d.Edges = append(d.Edges, eb.edge)
	}
	return d
}

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// Label sets the display label.
func (n *NodeBuilder) Label(label string) *NodeBuilder {
	n.node.Label = label
	return n
}

// Type sets the semantic node type (e.g. "service", "queue", "database").
func (n *NodeBuilder) Type(kind string) *NodeBuilder {
	n.node.Type = kind
	return n
}

// Describe attaches a markdown description.
func (n *NodeBuilder) Describe(markdown string) *NodeBuilder {
	n.node.Description = markdown
	return n
}

// Visit appends this node to the reveal order. A node may be visited more
// than once; playback re-styles it each time.
func (n *NodeBuilder) Visit() *NodeBuilder {
	n.builder.visits = append(n.builder.visits, n.node.ID)
	return n
}

// EdgeBuilder provides a fluent API for configuring an edge.
type EdgeBuilder struct {
	edge    domain.Edge
	builder *Builder
}

// Label sets the display label.
func (e *EdgeBuilder) Label(label string) *EdgeBuilder {
	e.edge.Label = label
	return e
}

// Type sets the semantic edge type.
func (e *EdgeBuilder) Type(kind string) *EdgeBuilder {
	e.edge.Type = kind
	return e
}

// Traverse appends this edge to the reveal order.
func (e *EdgeBuilder) Traverse() *EdgeBuilder {
	e.builder.crossed = append(e.builder.crossed, e.edge.ID)
	return e
}
