// Package graph renders traversal datasets as Mermaid diagrams.
package graph

import (
	"fmt"
	"strings"

	"github.com/stagewalk/stagewalk/pkg/domain"
)

// Overlay contains reveal state to visualize on the graph.
type Overlay struct {
	Revealed []string
	Active   string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a dataset.
// It applies semantic shapes:
// - database: [(Cylinder)]
// - queue: [[Subroutine]]
// - Default: [Rectangle]
// It also applies overlay styles (Revealed/Active) if provided.
func GenerateMermaid(d *domain.Dataset, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range d.Nodes {
		// Sanitize ID for Mermaid
		safeID := sanitizeMermaidID(node.ID)

		label := node.Label
		if label == "" {
			label = node.ID
		}

		// Node shape based on Type
		opener, closer := "[", "]"
		switch node.Type {
		case "database":
			opener, closer = "[(", ")]" // Cylinder
		case "queue":
			opener, closer = "[[", "]]" // Subroutine
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))
	}

	for _, edge := range d.Edges {
		safeFrom := sanitizeMermaidID(edge.From)
		safeTo := sanitizeMermaidID(edge.To)

		arrow := "-->"
		if edge.Label != "" {
			// Escape double quotes in the label for Mermaid
			safeLabel := strings.ReplaceAll(edge.Label, "\"", "'")
			arrow = fmt.Sprintf("-- \"%s\" -->", safeLabel)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeFrom, arrow, safeTo))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef revealed fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef active fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		// Deduplicate revealed nodes (using safeIDs)
		revealedSet := make(map[string]bool)
		for _, id := range overlay.Revealed {
			safeID := sanitizeMermaidID(id)
			if !revealedSet[safeID] && safeID != "" {
				revealedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s revealed;\n", safeID))
			}
		}

		if overlay.Active != "" {
			safeActive := sanitizeMermaidID(overlay.Active)
			sb.WriteString(fmt.Sprintf("    class %s active;\n", safeActive))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
