// Package memory provides in-process adapter implementations: a recording
// render surface and a snapshot store. Both back the test suites and serve
// as the headless defaults when no external backend is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/ports"
)

// Reveal is one recorded visibility change.
type Reveal struct {
	Kind  domain.StepKind
	ID    string
	Style domain.Style
}

// Surface is a ports.SurfaceProvider whose drivers record every call instead
// of rendering pixels.
type Surface struct {
	mu      sync.Mutex
	openErr error
	blocked bool
	drivers []*Driver
}

// NewSurface creates an empty recording surface provider.
func NewSurface() *Surface {
	return &Surface{}
}

// FailOpen makes every subsequent Open return err, simulating a rendering
// capability that never becomes available.
func (s *Surface) FailOpen(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openErr = err
}

// Block makes Open hang until the caller's context expires, simulating a
// capability stuck initializing.
func (s *Surface) Block() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked = true
}

// Open binds a fresh recording driver to the container.
func (s *Surface) Open(ctx context.Context, container string) (ports.SurfaceDriver, error) {
	s.mu.Lock()
	openErr, blocked := s.openErr, s.blocked
	s.mu.Unlock()

	if blocked {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if openErr != nil {
		return nil, openErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d := &Driver{
		container: container,
		nodes:     make(map[string]domain.Style),
		edges:     make(map[string]domain.Style),
	}
	s.mu.Lock()
	s.drivers = append(s.drivers, d)
	s.mu.Unlock()
	return d, nil
}

// OpenCount reports how many drivers were opened.
func (s *Surface) OpenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drivers)
}

// Drivers returns every driver opened so far, oldest first.
func (s *Surface) Drivers() []*Driver {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Driver(nil), s.drivers...)
}

// Last returns the most recently opened driver, or nil.
func (s *Surface) Last() *Driver {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.drivers) == 0 {
		return nil
	}
	return s.drivers[len(s.drivers)-1]
}

// Driver records visibility state and the ordered reveal log for one surface
// instance.
type Driver struct {
	mu        sync.Mutex
	container string
	nodes     map[string]domain.Style
	edges     map[string]domain.Style
	reveals   []Reveal
	loads     int
	fits      int
	destroyed bool
	callErr   error
}

// FailCalls makes every subsequent driver call return err.
func (d *Driver) FailCalls(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.callErr = err
}

// Load replaces the element set; everything starts hidden.
func (d *Driver) Load(nodes []domain.Node, edges []domain.Edge) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.callErr != nil {
		return d.callErr
	}
	d.loads++
	d.nodes = make(map[string]domain.Style, len(nodes))
	d.edges = make(map[string]domain.Style, len(edges))
	for _, n := range nodes {
		d.nodes[n.ID] = domain.StyleHidden
	}
	for _, e := range edges {
		d.edges[e.ID] = domain.StyleHidden
	}
	return nil
}

// ShowNode re-styles one node. Unknown ids are ignored, per the surface
// contract.
func (d *Driver) ShowNode(id string, style domain.Style) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.callErr != nil {
		return d.callErr
	}
	if _, known := d.nodes[id]; !known {
		return nil
	}
	d.nodes[id] = style
	d.reveals = append(d.reveals, Reveal{Kind: domain.StepNode, ID: id, Style: style})
	return nil
}

// ShowEdge re-styles one edge. Unknown ids are ignored.
func (d *Driver) ShowEdge(id string, style domain.Style) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.callErr != nil {
		return d.callErr
	}
	if _, known := d.edges[id]; !known {
		return nil
	}
	d.edges[id] = style
	d.reveals = append(d.reveals, Reveal{Kind: domain.StepEdge, ID: id, Style: style})
	return nil
}

// Fit records a re-frame request.
func (d *Driver) Fit(time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.callErr != nil {
		return d.callErr
	}
	d.fits++
	return nil
}

// Destroy marks the driver released.
func (d *Driver) Destroy() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyed = true
	return nil
}

// NodeStyle returns the recorded style for a node (StyleHidden until shown).
func (d *Driver) NodeStyle(id string) domain.Style {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nodes[id]
}

// EdgeStyle returns the recorded style for an edge.
func (d *Driver) EdgeStyle(id string) domain.Style {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.edges[id]
}

// Reveals returns the ordered reveal log.
func (d *Driver) Reveals() []Reveal {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Reveal(nil), d.reveals...)
}

// Fits reports how many re-frames were requested.
func (d *Driver) Fits() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fits
}

// Loads reports how many full loads happened.
func (d *Driver) Loads() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loads
}

// Destroyed reports whether the driver was released.
func (d *Driver) Destroyed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.destroyed
}
