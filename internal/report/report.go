// Package report holds the results of a graph analysis and renders them
// through interchangeable output strategies.
package report

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/graphstat/internal/rank"
)

// ErrUnknownFormat is returned by ForFormat for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown report format")

// Summary holds whole-graph aggregates.
type Summary struct {
	Nodes               int     `json:"nodes" toml:"nodes"`
	Edges               int     `json:"edges" toml:"edges"`
	Isolated            int     `json:"isolated" toml:"isolated"`
	MostConnected       int     `json:"most_connected" toml:"most_connected"`
	MostConnectedDegree int     `json:"most_connected_degree" toml:"most_connected_degree"`
	AverageDegree       float64 `json:"average_degree" toml:"average_degree"`
	Components          int     `json:"components" toml:"components"`
	LargestComponent    int     `json:"largest_component" toml:"largest_component"`
}

// PathEstimate is the outcome of sampling shortest-path lengths.
type PathEstimate struct {
	Samples   int     `json:"samples" toml:"samples"`
	Reachable int     `json:"reachable" toml:"reachable"`
	Seed      int64   `json:"seed" toml:"seed"`
	Mean      float64 `json:"mean" toml:"mean"`
}

// Report collects whichever analysis passes were run. Nil or empty
// sections were not computed and are left out of every rendering.
type Report struct {
	Source      string                `json:"source,omitempty" toml:"source,omitempty"`
	Top         int                   `json:"top,omitempty" toml:"top,omitempty"`
	Summary     *Summary              `json:"summary,omitempty" toml:"summary,omitempty"`
	Paths       *PathEstimate         `json:"paths,omitempty" toml:"paths,omitempty"`
	Degree      []rank.Entry[int]     `json:"degree,omitempty" toml:"degree,omitempty"`
	Closeness   []rank.Entry[float64] `json:"closeness,omitempty" toml:"closeness,omitempty"`
	Betweenness []rank.Entry[float64] `json:"betweenness,omitempty" toml:"betweenness,omitempty"`
}

// Strategy defines how to present a Report. Each implementation produces
// a distinct encoding of the same results.
type Strategy interface {
	Render(r *Report) (string, error)
}

// Formats returns the names accepted by ForFormat.
func Formats() []string {
	return []string{"text", "json", "toml"}
}

// ForFormat returns the Strategy registered under name.
func ForFormat(name string) (Strategy, error) {
	switch name {
	case "text", "":
		return TextStrategy{}, nil
	case "json":
		return JSONStrategy{Indent: "  "}, nil
	case "toml":
		return TOMLStrategy{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}
