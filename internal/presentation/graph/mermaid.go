package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/chainspec/internal/runtime"
	"github.com/aretw0/chainspec/pkg/domain"
)

// Overlay contains run results to visualize on the graph.
// Cases are matched by their full name (group labels followed by the case label).
type Overlay struct {
	Passed []string
	Failed []string
}

// GenerateMermaid produces a Mermaid flowchart of the action tree under root.
// It applies semantic styling:
// - Group: [Rectangle]
// - Case: ([Stadium])
// - Step: [[Subroutine]]
// Arrows into a case are thick because realization defers nothing below it.
// It also applies overlay styles (passed/failed) if provided.
func GenerateMermaid(root *domain.Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[*domain.Node]string)
	var cases []*domain.Node

	var walk func(n *domain.Node)
	walk = func(n *domain.Node) {
		id := fmt.Sprintf("n%d", len(ids))
		ids[n] = id

		opener, closer := "[", "]"
		switch n.Kind() {
		case domain.KindCase:
			opener, closer = "([", "])"
			cases = append(cases, n)
		case domain.KindStep:
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escapeLabel(n.Label()), closer))

		if parent, ok := ids[n.Parent()]; ok {
			arrow := "-->"
			if n.Kind() == domain.KindCase {
				arrow = "==>"
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", parent, arrow, id))
		}

		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef passed fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffebee,stroke:#c62828,stroke-width:4px,color:#000;\n")

		passed := toSet(overlay.Passed)
		failed := toSet(overlay.Failed)
		for _, c := range cases {
			name := FullName(c)
			switch {
			case failed[name]:
				sb.WriteString(fmt.Sprintf("    class %s failed;\n", ids[c]))
			case passed[name]:
				sb.WriteString(fmt.Sprintf("    class %s passed;\n", ids[c]))
			}
		}
	}

	return sb.String()
}

// FullName renders the name a spec runner reports for the case n.
func FullName(n *domain.Node) string {
	var parts []string
	for _, a := range n.Ancestors()[1:] {
		if a.Kind() == domain.KindGroup {
			parts = append([]string{runtime.GroupPrefix + a.Label()}, parts...)
		}
	}
	return strings.Join(append(parts, runtime.CaseLabel(n)), " ")
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
