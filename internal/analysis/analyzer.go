// Package analysis runs the graph analytics passes over a loaded graph
// and assembles their results into a report.
package analysis

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/papapumpkin/graphstat/internal/centrality"
	"github.com/papapumpkin/graphstat/internal/graph"
	"github.com/papapumpkin/graphstat/internal/metrics"
	"github.com/papapumpkin/graphstat/internal/paths"
	"github.com/papapumpkin/graphstat/internal/rank"
	"github.com/papapumpkin/graphstat/internal/report"
	"github.com/papapumpkin/graphstat/internal/telemetry"
)

// Pass names used in logs, metrics, and telemetry.
const (
	PassSummary     = "summary"
	PassPaths       = "paths"
	PassDegree      = "degree"
	PassCloseness   = "closeness"
	PassBetweenness = "betweenness"
)

// Options configures the analysis passes.
type Options struct {
	Samples int   // pairs drawn for the average path estimate
	Seed    int64 // seed for pair sampling
	Top     int   // entries kept per centrality ranking
	Workers int   // goroutines for betweenness; <= 1 runs sequentially
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{Samples: 1000, Seed: 42, Top: 5, Workers: 1}
}

// Analyzer is the entry point for graph analysis. It wraps a loaded graph
// and runs each pass on demand, timing it and reporting progress through
// the optional logger, metrics recorder, and telemetry emitter.
type Analyzer struct {
	graph     *graph.Graph
	source    string
	opts      Options
	logger    *slog.Logger
	metrics   *metrics.Recorder
	telemetry *telemetry.Emitter
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the structured logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m *metrics.Recorder) Option {
	return func(a *Analyzer) { a.metrics = m }
}

// WithTelemetry attaches a telemetry emitter.
func WithTelemetry(e *telemetry.Emitter) Option {
	return func(a *Analyzer) { a.telemetry = e }
}

// WithSource records where the graph was loaded from.
func WithSource(source string) Option {
	return func(a *Analyzer) { a.source = source }
}

// New creates an Analyzer over g.
func New(g *graph.Graph, opts Options, options ...Option) *Analyzer {
	a := &Analyzer{
		graph:  g,
		opts:   opts,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, o := range options {
		o(a)
	}
	a.metrics.SetGraphSize(g.NodeCount(), g.EdgeCount())
	return a
}

// Graph returns the analyzed graph.
func (a *Analyzer) Graph() *graph.Graph {
	return a.graph
}

// Run executes every pass and returns the complete report.
func (a *Analyzer) Run(ctx context.Context) (*report.Report, error) {
	start := time.Now()
	r := a.Report()
	r.Summary = a.Summary()
	r.Paths = a.AveragePath()
	r.Degree = a.DegreeTop()
	r.Closeness = a.ClosenessTop()

	bc, err := a.BetweennessTop(ctx)
	if err != nil {
		return nil, err
	}
	r.Betweenness = bc

	elapsed := time.Since(start)
	a.logger.Info("analysis complete", "source", a.source, "duration", elapsed)
	a.emit(telemetry.Event{Kind: telemetry.KindAnalysisDone, Data: map[string]any{"duration_ms": elapsed.Milliseconds()}})
	return r, nil
}

// Report returns an empty report stamped with the source and ranking size,
// ready for individual passes to fill in.
func (a *Analyzer) Report() *report.Report {
	return &report.Report{Source: a.source, Top: a.opts.Top}
}

// Summary computes whole-graph aggregates.
func (a *Analyzer) Summary() *report.Summary {
	done := a.begin(PassSummary)
	g := a.graph
	s := &report.Summary{
		Nodes:         g.NodeCount(),
		Edges:         g.EdgeCount(),
		Isolated:      len(g.IsolatedNodes()),
		AverageDegree: g.AverageDegree(),
	}
	if node, degree, ok := g.MostConnected(); ok {
		s.MostConnected = node
		s.MostConnectedDegree = degree
	}
	comps := g.Components()
	s.Components = len(comps)
	if len(comps) > 0 {
		s.LargestComponent = len(comps[0])
	}
	done(s.Nodes)
	return s
}

// AveragePath estimates the average shortest-path length from randomly
// sampled node pairs, seeded from the options.
func (a *Analyzer) AveragePath() *report.PathEstimate {
	done := a.begin(PassPaths)
	seed := uint64(a.opts.Seed)
	sample := paths.SamplePaths(a.graph, a.opts.Samples, rand.New(rand.NewPCG(seed, seed)))
	a.metrics.AddSampledPairs(sample.Reachable, sample.Unreachable())
	if sample.Reachable == 0 && sample.Drawn > 0 {
		a.logger.Warn("no sampled pair was reachable", "samples", sample.Drawn)
	}
	done(sample.Drawn)
	return &report.PathEstimate{
		Samples:   a.opts.Samples,
		Reachable: sample.Reachable,
		Seed:      a.opts.Seed,
		Mean:      sample.Mean(),
	}
}

// Distance returns the BFS distance between u and v.
func (a *Analyzer) Distance(u, v int) (int, bool) {
	return paths.Distance(a.graph, u, v)
}

// DegreeTop ranks nodes by degree centrality.
func (a *Analyzer) DegreeTop() []rank.Entry[int] {
	done := a.begin(PassDegree)
	scores := centrality.Degree(a.graph)
	done(len(scores))
	return rank.Top(scores, a.opts.Top)
}

// ClosenessTop ranks nodes by closeness centrality.
func (a *Analyzer) ClosenessTop() []rank.Entry[float64] {
	done := a.begin(PassCloseness)
	scores := centrality.Closeness(a.graph)
	done(len(scores))
	return rank.Top(scores, a.opts.Top)
}

// BetweennessTop ranks nodes by betweenness centrality, spreading the
// source loop across the configured number of workers.
func (a *Analyzer) BetweennessTop(ctx context.Context) ([]rank.Entry[float64], error) {
	done := a.begin(PassBetweenness)
	scores, err := centrality.BetweennessParallel(ctx, a.graph, a.opts.Workers)
	if err != nil {
		a.logger.Error("betweenness aborted", "error", err)
		return nil, err
	}
	done(len(scores))
	return rank.Top(scores, a.opts.Top), nil
}

// begin logs and emits the start of a pass and returns a function that
// records its completion along with the number of items it produced.
func (a *Analyzer) begin(pass string) func(items int) {
	start := time.Now()
	a.logger.Debug("pass started", "pass", pass, "nodes", a.graph.NodeCount(), "edges", a.graph.EdgeCount())
	a.emit(telemetry.Event{Kind: telemetry.KindPassStart, Pass: pass})
	return func(items int) {
		elapsed := time.Since(start)
		a.metrics.ObservePass(pass, elapsed)
		a.logger.Info("pass finished", "pass", pass, "items", items, "duration", elapsed)
		a.emit(telemetry.Event{
			Kind: telemetry.KindPassDone,
			Pass: pass,
			Data: map[string]any{"items": items, "duration_ms": elapsed.Milliseconds()},
		})
	}
}

func (a *Analyzer) emit(evt telemetry.Event) {
	evt.Source = a.source
	if err := a.telemetry.Emit(evt); err != nil {
		a.logger.Warn("telemetry emit failed", "error", err)
	}
}
