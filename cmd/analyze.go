package cmd

import (
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <edge-list>",
	Short: "Run every analysis pass and print the full report",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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
	r, err := s.analyzer(g, args[0]).Run(ctx)
	if err != nil {
		return err
	}
	return s.render(r)
}
