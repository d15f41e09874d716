package cmd

import (
	"github.com/spf13/cobra"
)

var pathsCmd = &cobra.Command{
	Use:   "paths <edge-list>",
	Short: "Estimate the average shortest-path length from sampled node pairs",
	Long: "Draws --samples random pairs of distinct nodes and averages the BFS distance\n" +
		"over the reachable ones. The same --seed reproduces the same estimate.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		g, err := s.loadGraph(args[0])
		if err != nil {
			return err
		}
		a := s.analyzer(g, args[0])
		r := a.Report()
		r.Paths = a.AveragePath()
		return s.render(r)
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
