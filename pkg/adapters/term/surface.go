// Package term renders playback as styled lines on a terminal. Each element
// prints once when it first becomes visible; re-styles (the node pulse) only
// update internal state, keeping the transcript one line per reveal.
package term

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/stagewalk/stagewalk/internal/logging"
	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/ports"
	"golang.org/x/term"
)

// Surface implements ports.SurfaceProvider for terminals.
type Surface struct {
	out          io.Writer
	output       *termenv.Output
	logger       *slog.Logger
	descriptions bool
}

// Option configures the Surface.
type Option func(*Surface)

// WithOutput redirects rendering (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(s *Surface) {
		s.out = w
	}
}

// WithDescriptions renders node descriptions as markdown under each reveal.
func WithDescriptions(enabled bool) Option {
	return func(s *Surface) {
		s.descriptions = enabled
	}
}

// WithLogger configures a logger for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Surface) {
		s.logger = logger
	}
}

// New creates a terminal surface provider.
func New(opts ...Option) *Surface {
	s := &Surface{
		out:    os.Stdout,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.output = termenv.NewOutput(s.out)
	return s
}

// Open binds a fresh driver to the terminal.
func (s *Surface) Open(ctx context.Context, container string) (ports.SurfaceDriver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var markdown *glamour.TermRenderer
	if s.descriptions {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(s.width()),
		)
		if err != nil {
			// Descriptions are decoration; reveal lines still print.
			s.logger.Warn("markdown renderer unavailable, descriptions disabled", "err", err)
		} else {
			markdown = r
		}
	}

	return &driver{
		surf:     s,
		markdown: markdown,
		nodes:    make(map[string]elementState),
		edges:    make(map[string]elementState),
	}, nil
}

// width returns the terminal width, or a sane default when output is not a tty.
func (s *Surface) width() int {
	if f, ok := s.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return 80
}

type elementState struct {
	node  domain.Node
	edge  domain.Edge
	style domain.Style
}

type driver struct {
	surf     *Surface
	markdown *glamour.TermRenderer

	mu    sync.Mutex
	nodes map[string]elementState
	edges map[string]elementState
}

func (d *driver) Load(nodes []domain.Node, edges []domain.Edge) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nodes = make(map[string]elementState, len(nodes))
	d.edges = make(map[string]elementState, len(edges))
	for _, n := range nodes {
		d.nodes[n.ID] = elementState{node: n, style: domain.StyleHidden}
	}
	for _, e := range edges {
		d.edges[e.ID] = elementState{edge: e, style: domain.StyleHidden}
	}

	out := d.surf.output
	fmt.Fprintln(d.surf.out, out.String(
		fmt.Sprintf("· loaded %d nodes, %d edges", len(nodes), len(edges)),
	).Faint())
	return nil
}

func (d *driver) ShowNode(id string, style domain.Style) error {
	d.mu.Lock()
	st, known := d.nodes[id]
	if !known {
		d.mu.Unlock()
		return nil
	}
	first := st.style == domain.StyleHidden
	st.style = style
	d.nodes[id] = st
	d.mu.Unlock()

	if !first {
		return nil
	}

	out := d.surf.output
	label := st.node.Label
	if label == "" {
		label = st.node.ID
	}
	line := out.String("● " + label).Foreground(out.Color("11")).Bold()
	kind := out.String(" " + st.node.Type).Faint()
	fmt.Fprintf(d.surf.out, "%s%s\n", line, kind)

	if d.markdown != nil && st.node.Description != "" {
		if rendered, err := d.markdown.Render(st.node.Description); err == nil {
			fmt.Fprint(d.surf.out, indent(rendered))
		}
	}
	return nil
}

func (d *driver) ShowEdge(id string, style domain.Style) error {
	d.mu.Lock()
	st, known := d.edges[id]
	if !known {
		d.mu.Unlock()
		return nil
	}
	first := st.style == domain.StyleHidden
	st.style = style
	d.edges[id] = st
	d.mu.Unlock()

	if !first {
		return nil
	}

	out := d.surf.output
	desc := fmt.Sprintf("%s → %s", st.edge.From, st.edge.To)
	if st.edge.Label != "" {
		desc += " (" + st.edge.Label + ")"
	}
	fmt.Fprintln(d.surf.out, out.String("─ "+desc).Foreground(out.Color("14")))
	return nil
}

func (d *driver) Fit(time.Duration) error {
	fmt.Fprintln(d.surf.out, d.surf.output.String("· re-framing view").Faint())
	return nil
}

func (d *driver) Destroy() error {
	// The transcript stays on screen; nothing to tear down.
	return nil
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n") + "\n"
}
