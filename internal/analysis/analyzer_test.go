package analysis

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papapumpkin/graphstat/internal/graph"
	"github.com/papapumpkin/graphstat/internal/metrics"
	"github.com/papapumpkin/graphstat/internal/rank"
	"github.com/papapumpkin/graphstat/internal/telemetry"
)

// buildChain creates 0-1-2-3 plus an isolated node 9.
func buildChain(t *testing.T) *graph.Graph {
	t.Helper()
	return graph.New([]graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}, {U: 9, V: 9}})
}

func TestRun_FullReport(t *testing.T) {
	t.Parallel()
	g := buildChain(t)
	opts := Options{Samples: 200, Seed: 1, Top: 2, Workers: 2}

	r, err := New(g, opts, WithSource("chain.txt")).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "chain.txt", r.Source)
	assert.Equal(t, 2, r.Top)

	require.NotNil(t, r.Summary)
	assert.Equal(t, 5, r.Summary.Nodes)
	assert.Equal(t, 3, r.Summary.Edges)
	assert.Equal(t, 1, r.Summary.Isolated)
	assert.Equal(t, 1, r.Summary.MostConnected)
	assert.Equal(t, 2, r.Summary.MostConnectedDegree)
	assert.Equal(t, 2, r.Summary.Components)
	assert.Equal(t, 4, r.Summary.LargestComponent)
	assert.InDelta(t, 1.2, r.Summary.AverageDegree, 1e-9)

	require.NotNil(t, r.Paths)
	assert.Equal(t, 200, r.Paths.Samples)
	assert.Greater(t, r.Paths.Reachable, 0)
	assert.Less(t, r.Paths.Reachable, 200)
	assert.Greater(t, r.Paths.Mean, 0.0)
	assert.LessOrEqual(t, r.Paths.Mean, 3.0)

	assert.Equal(t, []rank.Entry[int]{{Node: 1, Score: 2}, {Node: 2, Score: 2}}, r.Degree)
	require.Len(t, r.Betweenness, 2)
	assert.Equal(t, 1, r.Betweenness[0].Node)
	assert.InDelta(t, 2.0, r.Betweenness[0].Score, 1e-9)
	assert.Equal(t, 2, r.Betweenness[1].Node)
	require.Len(t, r.Closeness, 2)
	assert.Equal(t, 1, r.Closeness[0].Node)
}

func TestAveragePath_Reproducible(t *testing.T) {
	t.Parallel()
	g := buildChain(t)
	opts := Options{Samples: 100, Seed: 99, Top: 5, Workers: 1}

	a := New(g, opts).AveragePath()
	b := New(g, opts).AveragePath()
	assert.Equal(t, a, b)
	assert.Equal(t, int64(99), a.Seed)
}

func TestAveragePath_ZeroSamples(t *testing.T) {
	t.Parallel()
	g := buildChain(t)

	p := New(g, Options{Samples: 0, Top: 1}).AveragePath()
	assert.Zero(t, p.Mean)
	assert.Zero(t, p.Reachable)
}

func TestDistance(t *testing.T) {
	t.Parallel()
	a := New(buildChain(t), DefaultOptions())

	d, ok := a.Distance(0, 3)
	require.True(t, ok)
	assert.Equal(t, 3, d)

	_, ok = a.Distance(0, 9)
	assert.False(t, ok)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(buildChain(t), Options{Samples: 1, Top: 1, Workers: 4}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_RecordsMetrics(t *testing.T) {
	t.Parallel()
	rec := metrics.New()
	a := New(buildChain(t), Options{Samples: 10, Seed: 3, Top: 3, Workers: 1}, WithMetrics(rec))

	_, err := a.Run(context.Background())
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(rec.Registry(), "graphstat_pass_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	nodes, err := testutil.GatherAndCount(rec.Registry(), "graphstat_graph_nodes")
	require.NoError(t, err)
	assert.Equal(t, 1, nodes)
}

func TestRun_EmitsTelemetry(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	em, err := telemetry.NewEmitter(path)
	require.NoError(t, err)

	a := New(buildChain(t), DefaultOptions(), WithTelemetry(em), WithSource("chain.txt"))
	_, err = a.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, em.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	kinds := make(map[string]int)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var evt telemetry.Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &evt))
		assert.Equal(t, "chain.txt", evt.Source)
		kinds[evt.Kind]++
	}
	assert.Equal(t, 5, kinds[telemetry.KindPassStart])
	assert.Equal(t, 5, kinds[telemetry.KindPassDone])
	assert.Equal(t, 1, kinds[telemetry.KindAnalysisDone])
}

func TestRun_Logs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New(buildChain(t), DefaultOptions(), WithLogger(logger)).Run(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"pass started"`)
	assert.Contains(t, out, `"pass":"betweenness"`)
	assert.Contains(t, out, `"msg":"analysis complete"`)
}
