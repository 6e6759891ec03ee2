// Package dataset normalizes traversal datasets for playback.
//
// Preparation is a pure function: it never mutates the input and has no side
// effects. Referential integrity violations are tolerated (a missing id
// produces a no-op reveal step during playback, never an error);
// Lint exists for callers that want them reported.
package dataset

import (
	"fmt"

	"github.com/stagewalk/stagewalk/pkg/domain"
)

// Step is one reveal in the concatenated playback order.
type Step struct {
	Kind domain.StepKind
	ID   string
}

// Prepared is a normalized dataset ready for playback.
type Prepared struct {
	Nodes []domain.Node
	Edges []domain.Edge
	Steps []Step

	nodeIDs map[string]struct{}
	edgeIDs map[string]struct{}
}

// TotalSteps is the length of the concatenated node-then-edge reveal order.
func (p *Prepared) TotalSteps() int { return len(p.Steps) }

// HasNode reports whether the dataset declares a node with the given id.
func (p *Prepared) HasNode(id string) bool {
	_, ok := p.nodeIDs[id]
	return ok
}

// HasEdge reports whether the dataset declares an edge with the given id.
func (p *Prepared) HasEdge(id string) bool {
	_, ok := p.edgeIDs[id]
	return ok
}

// Prepare normalizes a traversal dataset for playback.
//
// It returns ok == false when there is nothing to render (nil dataset or no
// nodes); callers must render nothing and must not start a session. Missing
// order sequences default to empty. Each order entry is classified once: an
// id present in the node order is a node step even if it also appears in the
// edge order, since node reveals are defined to precede edge reveals.
func Prepare(d *domain.Dataset) (*Prepared, bool) {
	if d.Empty() {
		return nil, false
	}

	p := &Prepared{
		Nodes:   d.Nodes,
		Edges:   d.Edges,
		nodeIDs: make(map[string]struct{}, len(d.Nodes)),
		edgeIDs: make(map[string]struct{}, len(d.Edges)),
	}
	for _, n := range d.Nodes {
		p.nodeIDs[n.ID] = struct{}{}
	}
	for _, e := range d.Edges {
		p.edgeIDs[e.ID] = struct{}{}
	}

	inNodeOrder := make(map[string]struct{}, len(d.NodeOrder))
	for _, id := range d.NodeOrder {
		inNodeOrder[id] = struct{}{}
	}

	p.Steps = make([]Step, 0, len(d.NodeOrder)+len(d.EdgeOrder))
	for _, id := range d.NodeOrder {
		p.Steps = append(p.Steps, Step{Kind: domain.StepNode, ID: id})
	}
	for _, id := range d.EdgeOrder {
		kind := domain.StepEdge
		if _, dup := inNodeOrder[id]; dup {
			// Node classification wins: node reveals precede edge reveals.
			kind = domain.StepNode
		}
		p.Steps = append(p.Steps, Step{Kind: kind, ID: id})
	}

	return p, true
}

// Lint reports referential integrity problems as human-readable findings.
// An empty result means the dataset is internally consistent. Playback does
// not require a clean lint; the engine skips over dangling references.
func Lint(d *domain.Dataset) []string {
	if d == nil {
		return []string{"dataset is nil"}
	}

	var findings []string
	nodes := make(map[string]struct{}, len(d.Nodes))
	for _, n := range d.Nodes {
		if _, dup := nodes[n.ID]; dup {
			findings = append(findings, fmt.Sprintf("duplicate node id %q", n.ID))
		}
		nodes[n.ID] = struct{}{}
	}

	edges := make(map[string]struct{}, len(d.Edges))
	for _, e := range d.Edges {
		if _, dup := edges[e.ID]; dup {
			findings = append(findings, fmt.Sprintf("duplicate edge id %q", e.ID))
		}
		edges[e.ID] = struct{}{}
		if _, ok := nodes[e.From]; !ok {
			findings = append(findings, fmt.Sprintf("edge %q references unknown source node %q", e.ID, e.From))
		}
		if _, ok := nodes[e.To]; !ok {
			findings = append(findings, fmt.Sprintf("edge %q references unknown target node %q", e.ID, e.To))
		}
	}
	for _, id := range d.NodeOrder {
		if _, ok := nodes[id]; !ok {
			findings = append(findings, fmt.Sprintf("node order references unknown node %q", id))
		}
	}
	for _, id := range d.EdgeOrder {
		if _, ok := edges[id]; !ok {
			findings = append(findings, fmt.Sprintf("edge order references unknown edge %q", id))
		}
	}
	return findings
}
