package cmd

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <edge-list>",
	Short: "Print node, edge, degree, and component aggregates",
	Args:  cobra.ExactArgs(1),
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
		r.Summary = a.Summary()
		return s.render(r)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
