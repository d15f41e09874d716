package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papapumpkin/graphstat/internal/report"
)

// execute runs the root command with args and returns stdout. Flag state
// is restored afterwards because cobra commands are package globals.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writeEdgeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edges.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// chain 0-1-2-3 with isolated node 9.
const chainEdges = "0 1\n1 2\n2 3\n9 9\n"

func TestValidate(t *testing.T) {
	path := writeEdgeList(t, chainEdges)

	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "5 nodes, 3 edges")
}

func TestValidate_Malformed(t *testing.T) {
	path := writeEdgeList(t, "0 1\nnot-an-edge\n")

	_, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestDistance(t *testing.T) {
	path := writeEdgeList(t, chainEdges)

	out, err := execute(t, "distance", path, "0", "3")
	require.NoError(t, err)
	assert.Equal(t, "0 → 3: 3\n", out)

	out, err = execute(t, "distance", path, "0", "9")
	require.NoError(t, err)
	assert.Equal(t, "0 → 9: unreachable\n", out)
}

func TestDistance_InvalidNode(t *testing.T) {
	path := writeEdgeList(t, chainEdges)

	_, err := execute(t, "distance", path, "0", "-1")
	require.ErrorIs(t, err, errInvalidNodeArg)
}

func TestStats(t *testing.T) {
	path := writeEdgeList(t, chainEdges)

	out, err := execute(t, "stats", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded graph with 5 nodes and 3 edges.")
	assert.Contains(t, out, "Number of isolated nodes: 1")
	assert.Contains(t, out, "Most connected node: 1 with degree 2")
	assert.NotContains(t, out, "Centrality")
}

func TestCentrality_JSON(t *testing.T) {
	path := writeEdgeList(t, chainEdges)

	out, err := execute(t, "centrality", path, "--metric", "betweenness", "--format", "json", "--top", "2", "--workers", "2")
	require.NoError(t, err)

	var r report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.Len(t, r.Betweenness, 2)
	assert.Equal(t, 1, r.Betweenness[0].Node)
	assert.InDelta(t, 2.0, r.Betweenness[0].Score, 1e-9)
	assert.Equal(t, 2, r.Betweenness[1].Node)
	assert.Empty(t, r.Degree)
	assert.Nil(t, r.Summary)
}

func TestCentrality_UnknownMetric(t *testing.T) {
	path := writeEdgeList(t, chainEdges)

	_, err := execute(t, "centrality", path, "--metric", "pagerank")
	require.ErrorIs(t, err, errUnknownMetric)
}

func TestPaths_Reproducible(t *testing.T) {
	path := writeEdgeList(t, chainEdges)

	first, err := execute(t, "paths", path, "--samples", "200", "--seed", "7")
	require.NoError(t, err)
	second, err := execute(t, "paths", path, "--samples", "200", "--seed", "7")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "Average shortest path over 200 samples")
}

func TestAnalyze_WritesMetricsAndTelemetry(t *testing.T) {
	path := writeEdgeList(t, chainEdges)
	dir := t.TempDir()
	metricsPath := filepath.Join(dir, "graphstat.prom")
	telemetryPath := filepath.Join(dir, "events.jsonl")

	out, err := execute(t, "analyze", path,
		"--format", "toml",
		"--metrics-file", metricsPath,
		"--telemetry-file", telemetryPath,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "[summary]")

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "graphstat_graph_nodes 5")

	events, err := os.ReadFile(telemetryPath)
	require.NoError(t, err)
	assert.Contains(t, string(events), `"kind":"load_done"`)
	assert.Contains(t, string(events), `"kind":"analysis_done"`)
}

func TestInvalidFormat(t *testing.T) {
	path := writeEdgeList(t, chainEdges)

	_, err := execute(t, "stats", path, "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
}

func TestTelemetry_PrintsRecordedEvents(t *testing.T) {
	path := writeEdgeList(t, chainEdges)
	telemetryPath := filepath.Join(t.TempDir(), "events.jsonl")

	_, err := execute(t, "analyze", path, "--telemetry-file", telemetryPath)
	require.NoError(t, err)

	out, err := execute(t, "telemetry", telemetryPath)
	require.NoError(t, err)
	assert.Contains(t, out, "load_done source="+path)
	assert.Contains(t, out, "pass_done source="+path+" pass=betweenness")
	assert.Contains(t, out, "analysis_done")
}

func TestTelemetry_NoFile(t *testing.T) {
	_, err := execute(t, "telemetry")
	require.ErrorIs(t, err, errNoTelemetryFile)
}

func TestPrintEvent(t *testing.T) {
	var buf bytes.Buffer
	printEvent(&buf, `{"ts":"2026-03-01T10:04:05Z","kind":"reload","source":"g.txt","data":{"change":"modified"}}`)
	printEvent(&buf, `not json`)

	assert.Equal(t, "[10:04:05] reload source=g.txt change=modified\n??? not json\n", buf.String())
}
