package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var distanceCmd = &cobra.Command{
	Use:   "distance <edge-list> <from> <to>",
	Short: "Print the shortest-path distance between two nodes",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseNodeArg(args[1])
		if err != nil {
			return err
		}
		to, err := parseNodeArg(args[2])
		if err != nil {
			return err
		}

		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		g, err := s.loadGraph(args[0])
		if err != nil {
			return err
		}
		d, ok := s.analyzer(g, args[0]).Distance(from, to)
		if !ok {
			_, err = fmt.Fprintf(s.out, "%d → %d: unreachable\n", from, to)
			return err
		}
		_, err = fmt.Fprintf(s.out, "%d → %d: %d\n", from, to, d)
		return err
	},
}

func init() {
	rootCmd.AddCommand(distanceCmd)
}
