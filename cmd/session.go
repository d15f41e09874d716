package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/graphstat/internal/analysis"
	"github.com/papapumpkin/graphstat/internal/config"
	"github.com/papapumpkin/graphstat/internal/graph"
	"github.com/papapumpkin/graphstat/internal/metrics"
	"github.com/papapumpkin/graphstat/internal/report"
	"github.com/papapumpkin/graphstat/internal/telemetry"
)

// session bundles the per-invocation collaborators shared by every
// subcommand: configuration, logger, metrics, and telemetry.
type session struct {
	cfg       config.Config
	logger    *slog.Logger
	metrics   *metrics.Recorder
	telemetry *telemetry.Emitter
	out       io.Writer
}

// newSession loads configuration and wires the ambient collaborators.
// Call close when the command finishes.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	s := &session{
		cfg:    cfg,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()),
		out:    cmd.OutOrStdout(),
	}
	if cfg.MetricsFile != "" {
		s.metrics = metrics.New()
	}
	if cfg.TelemetryFile != "" {
		em, err := telemetry.NewEmitter(cfg.TelemetryFile)
		if err != nil {
			return nil, err
		}
		s.telemetry = em
	}
	return s, nil
}

// close flushes metrics and telemetry. Errors are logged, not returned,
// so they never mask the command's own result.
func (s *session) close() {
	if err := s.metrics.WriteTextfile(s.cfg.MetricsFile); err != nil {
		s.logger.Error("metrics export failed", "error", err)
	}
	if err := s.telemetry.Close(); err != nil {
		s.logger.Error("telemetry close failed", "error", err)
	}
}

// loadGraph reads the edge-list file at path.
func (s *session) loadGraph(path string) (*graph.Graph, error) {
	start := time.Now()
	g, err := graph.LoadFile(path)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	s.logger.Info("graph loaded", "source", path, "nodes", g.NodeCount(), "edges", g.EdgeCount(), "duration", elapsed)
	if err := s.telemetry.Emit(telemetry.Event{
		Kind:   telemetry.KindLoadDone,
		Source: path,
		Data:   map[string]any{"nodes": g.NodeCount(), "edges": g.EdgeCount(), "duration_ms": elapsed.Milliseconds()},
	}); err != nil {
		s.logger.Warn("telemetry emit failed", "error", err)
	}
	return g, nil
}

// analyzer builds an Analyzer over g using the session's configuration.
func (s *session) analyzer(g *graph.Graph, source string) *analysis.Analyzer {
	opts := analysis.Options{
		Samples: s.cfg.Samples,
		Seed:    s.cfg.Seed,
		Top:     s.cfg.Top,
		Workers: s.cfg.Workers,
	}
	return analysis.New(g, opts,
		analysis.WithSource(source),
		analysis.WithLogger(s.logger),
		analysis.WithMetrics(s.metrics),
		analysis.WithTelemetry(s.telemetry),
	)
}

// render writes r to the command output in the configured format.
func (s *session) render(r *report.Report) error {
	strategy, err := report.ForFormat(s.cfg.Format)
	if err != nil {
		return err
	}
	text, err := strategy.Render(r)
	if err != nil {
		return err
	}
	_, err = io.WriteString(s.out, text)
	return err
}

// setupSignalContext returns a context cancelled on SIGINT or SIGTERM.
func setupSignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// errInvalidNodeArg is returned when a node argument is not a
// non-negative integer.
var errInvalidNodeArg = errors.New("node must be a non-negative integer")

func parseNodeArg(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidNodeArg, arg)
	}
	return id, nil
}
