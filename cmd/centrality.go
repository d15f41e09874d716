package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/graphstat/internal/analysis"
)

var errUnknownMetric = errors.New("unknown centrality metric")

var centralityCmd = &cobra.Command{
	Use:   "centrality <edge-list>",
	Short: "Rank nodes by one centrality metric",
	Args:  cobra.ExactArgs(1),
	RunE:  runCentrality,
}

func init() {
	centralityCmd.Flags().StringP("metric", "m", analysis.PassDegree, "metric: degree, closeness, or betweenness")
	rootCmd.AddCommand(centralityCmd)
}

func runCentrality(cmd *cobra.Command, args []string) error {
	metric, _ := cmd.Flags().GetString("metric")
	switch metric {
	case analysis.PassDegree, analysis.PassCloseness, analysis.PassBetweenness:
	default:
		return fmt.Errorf("%w: %q", errUnknownMetric, metric)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := setupSignalContext(cmd.Context())
	defer cancel()

	g, err := s.loadGraph(args[0])
	if err != nil {
		return err
	}
	a := s.analyzer(g, args[0])
	r := a.Report()
	switch metric {
	case analysis.PassDegree:
		r.Degree = a.DegreeTop()
	case analysis.PassCloseness:
		r.Closeness = a.ClosenessTop()
	case analysis.PassBetweenness:
		if r.Betweenness, err = a.BetweennessTop(ctx); err != nil {
			return err
		}
	}
	return s.render(r)
}
