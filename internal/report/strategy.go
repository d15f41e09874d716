package report

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/graphstat/internal/rank"
)

// TextStrategy renders a human-readable report with styled headings and
// one line per ranked node.
type TextStrategy struct{}

// Render produces the terminal report.
func (s TextStrategy) Render(r *Report) (string, error) {
	var b strings.Builder

	if r.Source != "" {
		fmt.Fprintf(&b, "%s %s\n", styleLabel.Render("Graph:"), r.Source)
	}
	if sum := r.Summary; sum != nil {
		fmt.Fprintf(&b, "Loaded graph with %s nodes and %s edges.\n",
			styleValue.Render(fmt.Sprint(sum.Nodes)), styleValue.Render(fmt.Sprint(sum.Edges)))
		fmt.Fprintf(&b, "Number of isolated nodes: %d\n", sum.Isolated)
		if sum.Nodes > 0 {
			fmt.Fprintf(&b, "Most connected node: %d with degree %d\n", sum.MostConnected, sum.MostConnectedDegree)
		}
		fmt.Fprintf(&b, "Average degree of graph: %.2f\n", sum.AverageDegree)
		fmt.Fprintf(&b, "Connected components: %d (largest: %d nodes)\n", sum.Components, sum.LargestComponent)
	}
	if p := r.Paths; p != nil {
		fmt.Fprintf(&b, "Average shortest path over %d samples: %.3f (%d reachable)\n", p.Samples, p.Mean, p.Reachable)
	}

	top := r.Top
	writeRanking(&b, "Degree", top, r.Degree)
	writeRanking(&b, "Closeness", top, r.Closeness)
	writeRanking(&b, "Betweenness", top, r.Betweenness)

	if b.Len() == 0 {
		return "Nothing to report.\n", nil
	}
	return b.String(), nil
}

// writeRanking appends one top-N section. Empty rankings are skipped.
func writeRanking[T cmp.Ordered](b *strings.Builder, metric string, top int, entries []rank.Entry[T]) {
	if len(entries) == 0 {
		return
	}
	if top <= 0 {
		top = len(entries)
	}
	fmt.Fprintf(b, "\n%s\n", styleHeading.Render(fmt.Sprintf("Top %d %s Centrality:", top, metric)))
	for i, e := range entries {
		fmt.Fprintf(b, "%2d. Node %4d → %s\n", i+1, e.Node, formatScore(e.Score))
	}
}

func formatScore(v any) string {
	switch s := v.(type) {
	case float64:
		return fmt.Sprintf("%.6f", s)
	default:
		return fmt.Sprint(s)
	}
}

// JSONStrategy renders the report as a JSON document.
type JSONStrategy struct {
	Indent string
}

// Render encodes the report as JSON.
func (s JSONStrategy) Render(r *Report) (string, error) {
	data, err := json.MarshalIndent(r, "", s.Indent)
	if err != nil {
		return "", fmt.Errorf("encoding json report: %w", err)
	}
	return string(data) + "\n", nil
}

// TOMLStrategy renders the report as a TOML document.
type TOMLStrategy struct{}

// Render encodes the report as TOML.
func (s TOMLStrategy) Render(r *Report) (string, error) {
	data, err := toml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encoding toml report: %w", err)
	}
	return string(data), nil
}
