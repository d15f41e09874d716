package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <edge-list>",
	Short: "Check that an edge-list file parses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		g, err := s.loadGraph(args[0])
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s\n", args[0])
			return err
		}
		_, err = fmt.Fprintf(s.out, "✓ %s: %d nodes, %d edges\n", args[0], g.NodeCount(), g.EdgeCount())
		return err
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
