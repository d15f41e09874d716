package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/graphstat/internal/telemetry"
	"github.com/papapumpkin/graphstat/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <edge-list>",
	Short: "Re-run the full analysis whenever the edge-list file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", 0, "coalesce file events closer together than this (default from config)")
	_ = viper.BindPFlag("watch_debounce", watchCmd.Flags().Lookup("debounce"))
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := setupSignalContext(cmd.Context())
	defer cancel()

	path := args[0]
	w, err := watch.NewWatcher(path, s.cfg.WatchDebounce)
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	defer w.Stop()

	// The first analysis must succeed; later reloads only log failures so
	// a half-written file does not end the session.
	if err := s.analyzeOnce(ctx, path); err != nil {
		return err
	}
	s.logger.Info("watching for changes", "file", w.File, "debounce", s.cfg.WatchDebounce)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("watch stopped")
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			s.emitReload(path, change)
			if change.Kind == watch.ChangeRemoved {
				s.logger.Warn("edge list removed, waiting for it to reappear", "file", change.File)
				continue
			}
			if err := s.analyzeOnce(ctx, path); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				s.logger.Error("reload failed", "file", change.File, "error", err)
			}
		}
	}
}

// analyzeOnce loads path, runs every pass, and renders the report.
func (s *session) analyzeOnce(ctx context.Context, path string) error {
	g, err := s.loadGraph(path)
	if err != nil {
		return err
	}
	r, err := s.analyzer(g, path).Run(ctx)
	if err != nil {
		return err
	}
	return s.render(r)
}

func (s *session) emitReload(path string, change watch.Change) {
	s.logger.Info("edge list changed", "file", change.File, "change", change.Kind.String())
	if err := s.telemetry.Emit(telemetry.Event{
		Kind:   telemetry.KindReload,
		Source: path,
		Data:   map[string]any{"change": change.Kind.String()},
	}); err != nil {
		s.logger.Warn("telemetry emit failed", "error", err)
	}
}
