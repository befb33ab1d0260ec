package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/jengzang/ghostquant-backend-go/internal/config"
	"github.com/jengzang/ghostquant-backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestHeatmapAggregate(t *testing.T) {
	path := writeFile(t, "heatmap.json", `{"chains":{"eth":0.2,"sol":0.6},"tokens":{"PEPE":1.0}}`)

	out, err := run(t, "", "heatmap", "aggregate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "global risk 0.600 MODERATE")
	assert.Contains(t, out, "networks")
}

func TestHeatmapAggregateJSONFromStdin(t *testing.T) {
	out, err := run(t, `{"entities":{"otc":0.95}}`, "heatmap", "aggregate", "--json", "-")
	require.NoError(t, err)

	var body struct {
		Heatmap     models.AggregatedHeatmap `json:"heatmap"`
		GlobalLevel models.RiskClass         `json:"global_level"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, 0.95, body.Heatmap.GlobalRisk)
	assert.Equal(t, models.RiskCritical, body.GlobalLevel.Level)
}

func TestHeatmapTop(t *testing.T) {
	path := writeFile(t, "heatmap.json", `{"tokens":{"a":0.5,"b":0.9,"c":0.5}}`)

	out, err := run(t, "", "heatmap", "top", path, "--layer", "tokens", "-n", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], " b ")
	assert.Contains(t, lines[1], " a ")

	_, err = run(t, "", "heatmap", "top", path, "--layer", "planets")
	assert.Error(t, err)
}

func TestHeatmapSpikes(t *testing.T) {
	current := writeFile(t, "current.json", `{"chains":{"sol":0.9,"eth":0.3}}`)
	previous := writeFile(t, "previous.json", `{"chains":{"sol":0.4,"eth":0.25}}`)

	out, err := run(t, "", "heatmap", "spikes", current, previous)
	require.NoError(t, err)
	assert.Contains(t, out, "sol")
	assert.Contains(t, out, "+0.500")
	assert.NotContains(t, out, "eth")

	out, err = run(t, "", "heatmap", "spikes", previous, previous)
	require.NoError(t, err)
	assert.Contains(t, out, "No spikes")
}

func TestHeatmapMissingFile(t *testing.T) {
	_, err := run(t, "", "heatmap", "aggregate", filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	out, err := run(t, "", "classify", "0.95", "0.1")
	require.NoError(t, err)
	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "#ff1744")
	assert.Contains(t, out, "MINIMAL")

	_, err = run(t, "", "classify", "high")
	assert.Error(t, err)
}

const triangleGraph = `{
  "nodes": [
    {"id":"a","type":"whale","risk_level":0.9,"lat":40.7,"lng":-74.0},
    {"id":"b","type":"exchange","risk_level":0.3,"lat":51.5,"lng":-0.1},
    {"id":"c","type":"wallet","risk_level":0.1}
  ],
  "edges": [
    {"source_id":"a","target_id":"b","strength":0.9},
    {"source_id":"b","target_id":"c","strength":0.6},
    {"source_id":"c","target_id":"a","strength":0.6}
  ]
}`

func TestConstellationBuild(t *testing.T) {
	path := writeFile(t, "graph.json", triangleGraph)

	out, err := run(t, "", "constellation", "build", path, "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "supernova a")
	assert.Contains(t, out, "galaxy 0: 3 members")

	out, err = run(t, "", "const", "build", path, "--json", "--width", "300", "--height", "200", "--seed", "3")
	require.NoError(t, err)
	var visual models.ConstellationVisual
	require.NoError(t, json.Unmarshal([]byte(out), &visual))
	assert.Equal(t, 300.0, visual.Width)
	for _, n := range visual.Nodes {
		assert.GreaterOrEqual(t, n.NormalizedX, 0.0)
		assert.LessOrEqual(t, n.NormalizedX, 300.0)
	}
}

func TestConstellationGlobe(t *testing.T) {
	path := writeFile(t, "graph.json", triangleGraph)

	out, err := run(t, "", "constellation", "globe", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 points, 1 arcs")
	assert.Contains(t, out, "a -> b")
}

func TestSynthIsSeeded(t *testing.T) {
	first, err := run(t, "", "synth", "heatmap", "--seed", "11")
	require.NoError(t, err)
	second, err := run(t, "", "synth", "heatmap", "--seed", "11")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	raw, err := models.ParseHeatmapRaw([]byte(first))
	require.NoError(t, err)
	assert.Len(t, raw, len(models.LayerNames))

	out, err := run(t, "", "synth", "graph", "--seed", "11", "--clusters", "2", "--per-cluster", "3")
	require.NoError(t, err)
	graph, err := models.ParseGraph([]byte(out))
	require.NoError(t, err)
	assert.Len(t, graph.Nodes, 6)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(config.PathEnv, path)
	t.Setenv("GHOSTQUANT_UPSTREAM_URL", "http://intel.local")

	out, err := run(t, "", "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	out, err = run(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "upstream_url: http://intel.local")
	assert.Contains(t, out, "poll_interval: 30s")
}
