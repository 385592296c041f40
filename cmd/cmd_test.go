package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/grovetools/plantview/errors"
	"github.com/grovetools/plantview/logging"
	"github.com/grovetools/plantview/pkg/plantapi"
	"github.com/grovetools/plantview/pkg/plantapi/plantapitest"
	"github.com/grovetools/plantview/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command tree with args and returns stdout.
func run(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	if ctx == nil {
		ctx = context.Background()
	}
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestStatusTable(t *testing.T) {
	testutil.IsolateHome(t)
	srv := testutil.NewPlantServer(t, plantapitest.SampleDataset())

	out, err := run(t, nil, "status", "--server", srv.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "reactor_1")
	assert.Contains(t, out, "Waste Treatment Plant")
	assert.Contains(t, out, "operational")
	assert.Contains(t, out, "STATUS")
}

func TestStatusJSONWithMatch(t *testing.T) {
	testutil.IsolateHome(t)
	srv := testutil.NewPlantServer(t, plantapitest.SampleDataset())

	out, err := run(t, nil, "status", "--server", srv.URL, "--json", "--match", "Reactor*")
	require.NoError(t, err)

	var rows []struct {
		ID     string                 `json:"id"`
		Status string                 `json:"status"`
		Record map[string]interface{} `json:"record"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "reactor_1", rows[0].ID)
	assert.Equal(t, "online", rows[0].Status)
	assert.Equal(t, "reactor_3", rows[1].ID)
	assert.Equal(t, "standby", rows[1].Status)
	assert.Equal(t, 45.0, rows[1].Record["temp_c"])
}

func TestStatusServerDown(t *testing.T) {
	testutil.IsolateHome(t)
	srv := testutil.NewPlantServer(t, plantapitest.SampleDataset())
	url := srv.URL
	srv.Close()

	_, err := run(t, nil, "status", "--server", url)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRequestFailed, errors.GetCode(err))
}

func TestActionDispatches(t *testing.T) {
	testutil.IsolateHome(t)
	srv := testutil.NewPlantServer(t, plantapitest.SampleDataset())

	out, err := run(t, nil, "action", "reactor_1", "stop", "--server", srv.URL)
	require.NoError(t, err)

	assert.Equal(t, []plantapi.ActionRequest{{ModuleID: "reactor_1", Action: "stop"}}, srv.Actions())
	assert.Contains(t, out, "Action 'stop' performed on 'reactor_1'.")
	assert.Contains(t, out, "offline")
}

func TestActionJSON(t *testing.T) {
	testutil.IsolateHome(t)
	srv := testutil.NewPlantServer(t, plantapitest.SampleDataset())

	out, err := run(t, nil, "action", "reactor_3", "start", "--server", srv.URL, "--json")
	require.NoError(t, err)

	var res actionResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "succeeded", res.Outcome)
	assert.Equal(t, "online", res.Status)
}

func TestActionUnknownModule(t *testing.T) {
	testutil.IsolateHome(t)
	srv := testutil.NewPlantServer(t, plantapitest.SampleDataset())

	_, err := run(t, nil, "action", "reactor_9", "stop", "--server", srv.URL)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeModuleNotFound, errors.GetCode(err))
	assert.Empty(t, srv.Actions())
}

func TestActionNotOfferedByCategory(t *testing.T) {
	testutil.IsolateHome(t)
	srv := testutil.NewPlantServer(t, plantapitest.SampleDataset())

	_, err := run(t, nil, "action", "waste_treatment_plant", "stop", "--server", srv.URL)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))

	_, err = run(t, nil, "action", "safety_gen_1", "low_power_mode", "--server", srv.URL)
	require.Error(t, err)
	assert.Empty(t, srv.Actions())

	_, err = run(t, nil, "action", "waste_treatment_plant", "stop", "--server", srv.URL, "--force")
	require.NoError(t, err)
	assert.Len(t, srv.Actions(), 1)
}

func TestActionServerError(t *testing.T) {
	testutil.IsolateHome(t)
	srv := testutil.NewPlantServer(t, plantapitest.SampleDataset())
	srv.FailActions()

	_, err := run(t, nil, "action", "turbine_1", "stop", "--server", srv.URL)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnexpectedStatus, errors.GetCode(err))
}

func TestWatchPrintsInitialStatuses(t *testing.T) {
	testutil.IsolateHome(t)
	srv := testutil.NewPlantServer(t, plantapitest.SampleDataset())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	out, err := run(t, ctx, "watch", "--server", srv.URL, "--interval", "50ms", "--match", "Turbine*")
	require.NoError(t, err)

	assert.Contains(t, out, "Turbine 1")
	assert.NotContains(t, out, "Reactor 1")
}

func TestDashboardFallsBackToWatch(t *testing.T) {
	testutil.IsolateHome(t)
	srv := testutil.NewPlantServer(t, plantapitest.SampleDataset())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	out, err := run(t, ctx, "--server", srv.URL, "--no-tui")
	require.NoError(t, err)

	assert.Contains(t, out, "Watching "+srv.URL+"/api/plant_data")
	assert.Contains(t, out, "Safety Gen 1")
}

func TestConfigShowDefaults(t *testing.T) {
	testutil.IsolateHome(t)

	out, err := run(t, nil, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# No configuration files found")
	assert.Contains(t, out, "base_url: http://localhost:5000")
	assert.Contains(t, out, "interval: 5s")
}

func TestConfigShowProjectFile(t *testing.T) {
	dir := testutil.IsolateHome(t)
	path := testutil.WriteConfig(t, dir, "plantview.yml", "server:\n  base_url: http://plant.lan:5000\n")

	out, err := run(t, nil, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# Source: "+path)
	assert.Contains(t, out, "base_url: http://plant.lan:5000")

	out, err = run(t, nil, "config", "show", "--server", "http://other:8080")
	require.NoError(t, err)
	assert.Contains(t, out, "base_url: http://other:8080")
}

func TestConfigValidate(t *testing.T) {
	dir := testutil.IsolateHome(t)
	testutil.WriteConfig(t, dir, "plantview.yml", "poll:\n  interval: 2s\n")

	out, err := run(t, nil, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	testutil.WriteConfig(t, dir, "plantview.yml", "tui:\n  theme: neon\n")
	_, err = run(t, nil, "config", "validate")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigValidation, errors.GetCode(err))
}

func TestConfigMissingExplicitFile(t *testing.T) {
	dir := testutil.IsolateHome(t)

	_, err := run(t, nil, "config", "show", "--config", filepath.Join(dir, "nope.yml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
}

func TestConfigSchema(t *testing.T) {
	testutil.IsolateHome(t)

	out, err := run(t, nil, "config", "schema")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	props, ok := doc["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "server")
	assert.Contains(t, props, "logging")
}

func TestLogsTail(t *testing.T) {
	testutil.IsolateHome(t)
	path := logging.LogFilePath(component, logging.Config{})
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	lines := []string{
		"2026-01-01 10:00:00 [INFO] [plantview] one",
		"2026-01-01 10:00:01 [INFO] [plantview] two",
		"2026-01-01 10:00:02 [ERROR] [plantview] three",
	}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	out, err := run(t, nil, "logs", "--tail", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "] one")
	assert.Contains(t, out, "two")
	assert.Contains(t, out, "three")

	out, err = run(t, nil, "logs", "--path")
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))
}

func TestFindLogFilePicksNewest(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"plantview-2026-01-01.log", "plantview-2026-02-01.log", "other-2026-03-01.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	got := findLogFile(filepath.Join(dir, "plantview-2026-03-15.log"))
	assert.Equal(t, filepath.Join(dir, "plantview-2026-02-01.log"), got)
}

func TestVersionJSON(t *testing.T) {
	testutil.IsolateHome(t)

	out, err := run(t, nil, "version", "--json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info["version"])
	assert.NotEmpty(t, info["goVersion"])
}

func TestTimingSummary(t *testing.T) {
	testutil.IsolateHome(t)
	srv := testutil.NewPlantServer(t, plantapitest.SampleDataset())

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"status", "--server", srv.URL, "--timing"})
	require.NoError(t, root.Execute())

	assert.Contains(t, errOut.String(), "timing:")
	assert.Contains(t, errOut.String(), "- load config")
	assert.Contains(t, errOut.String(), "- fetch plant data")
}
