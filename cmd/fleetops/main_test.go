package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI runs fleetops against a fresh config directory.
func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--config-dir", t.TempDir()}, args...)
	code = run(context.Background(), full, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "fleetops v"+version)
	assert.Contains(t, out, modulePath)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	code := run(context.Background(), []string{"--config-dir", dir, "init"}, &out, &out)
	require.Equal(t, exitSuccess, code, out.String())
	assert.Contains(t, out.String(), "fleetops initialized")
	_, err := os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	out.Reset()
	code = run(context.Background(), []string{"--config-dir", dir, "init"}, &out, &out)
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out.String(), "already initialized")
}

func TestList(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  []string
	}{
		{name: "table output", args: []string{"list", "drones"}, wantCode: exitSuccess, wantOut: []string{"ID", "Falcon Alpha", "Owl Epsilon", "85%"}},
		{name: "filter", args: []string{"list", "drones", "status=Charging"}, wantCode: exitSuccess, wantOut: []string{"Eagle Beta"}},
		{name: "search flag", args: []string{"list", "reports", "--search", "pipeline", "--backend", "sqlite"}, wantCode: exitSuccess, wantOut: []string{"RPT-"}},
		{name: "empty result", args: []string{"list", "users", "--search", "nobody-here"}, wantCode: exitSuccess, wantOut: []string{"no results"}},
		{name: "unknown table", args: []string{"list", "hangars"}, wantCode: exitUserError},
		{name: "bad filter arg", args: []string{"list", "drones", "status"}, wantCode: exitUserError},
		{name: "unknown filter field", args: []string{"list", "drones", "colour=red"}, wantCode: exitUserError},
		{name: "unknown backend", args: []string{"list", "drones", "--backend", "postgres"}, wantCode: exitUserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, tt.args...)
			require.Equal(t, tt.wantCode, code, errOut)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestListJSON(t *testing.T) {
	code, out, errOut := runCLI(t, "--json", "list", "drones", "status=Active")
	require.Equal(t, exitSuccess, code, errOut)

	var drones []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &drones))
	require.Len(t, drones, 2)
	assert.Equal(t, "DR-001", drones[0]["id"])
}

func TestGet(t *testing.T) {
	code, out, _ := runCLI(t, "get", "maintenance", "M001")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, `"assignedTo": "Tech Team A"`)

	code, _, errOut := runCLI(t, "get", "maintenance", "M999")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, errOut, "not found")
}

func TestExport(t *testing.T) {
	dir := t.TempDir()

	code, out, errOut := runCLI(t, "export", "drones", "status=Active", "--dir", dir)
	require.Equal(t, exitSuccess, code, errOut)
	assert.Contains(t, out, "Drone data has been exported to CSV.")

	data, err := os.ReadFile(filepath.Join(dir, "drone_fleet_data.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)

	code, out, _ = runCLI(t, "export", "voc", "--range", "daily", "-o", "-")
	require.Equal(t, exitSuccess, code)
	assert.True(t, strings.HasPrefix(out, "Time,"), out)

	code, _, _ = runCLI(t, "export", "missions")
	assert.Equal(t, exitUserError, code)

	code, _, _ = runCLI(t, "export", "users", "-o", filepath.Join(dir, "missing", "users.csv"))
	assert.Equal(t, exitSysError, code)
}

func TestTrend(t *testing.T) {
	code, out, _ := runCLI(t, "trend")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "VOC hourly: 10.0 ppm, down 28.6% from 14.0 ppm\n", out)

	code, out, _ = runCLI(t, "--json", "trend", "--range", "weekly")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, `"range": "weekly"`)
}

func TestStats(t *testing.T) {
	code, out, _ := runCLI(t, "--json", "stats")
	require.Equal(t, exitSuccess, code)
	var st map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.EqualValues(t, 5, st["totalDrones"])
}

func TestBrokenConfigIsSystemError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("backend: [\n"), 0o644))

	var out bytes.Buffer
	code := run(context.Background(), []string{"--config-dir", dir, "list", "drones"}, &out, &out)
	assert.Equal(t, exitSysError, code)
}

func TestServeStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	code := run(ctx, []string{"--config-dir", t.TempDir(), "serve", "--listen", "127.0.0.1:0"}, &out, &out)
	assert.Equal(t, exitSuccess, code, out.String())
}
