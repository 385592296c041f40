// Package testutil holds helpers shared by plantview's command and
// integration tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/grovetools/plantview/pkg/plant"
	"github.com/grovetools/plantview/pkg/plantapi"
	"github.com/stretchr/testify/require"
)

// IsolateHome points PLANTVIEW_HOME and the working directory at a fresh
// temp dir so no user configuration leaks into the test. It returns the dir.
func IsolateHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PLANTVIEW_HOME", dir)
	t.Chdir(dir)
	return dir
}

// WriteConfig writes content to dir/name and returns the path.
func WriteConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}


// PlantServer is an httptest plant server serving a fixed dataset and
// recording the actions it receives.
type PlantServer struct {
	*httptest.Server

	mu         sync.Mutex
	data       *plant.Dataset
	actions    []plantapi.ActionRequest
	failAction bool
}

// NewPlantServer starts a server for data. It is closed with the test.
func NewPlantServer(t *testing.T, data *plant.Dataset) *PlantServer {
	t.Helper()
	ps := &PlantServer{data: data}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/plant_data", func(w http.ResponseWriter, r *http.Request) {
		ps.mu.Lock()
		defer ps.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ps.data)
	})
	mux.HandleFunc("POST /module_action", func(w http.ResponseWriter, r *http.Request) {
		var req plantapi.ActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ps.mu.Lock()
		ps.actions = append(ps.actions, req)
		fail := ps.failAction
		ps.mu.Unlock()
		if fail {
			http.Error(w, "action failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(plantapi.ActionResponse{
			Message: "Action '" + req.Action + "' performed on '" + req.ModuleID + "'.",
		})
	})

	ps.Server = httptest.NewServer(mux)
	t.Cleanup(ps.Close)
	return ps
}

// FailActions makes every subsequent POST answer 500.
func (ps *PlantServer) FailActions() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.failAction = true
}

// Actions returns the actions received so far.
func (ps *PlantServer) Actions() []plantapi.ActionRequest {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return append([]plantapi.ActionRequest(nil), ps.actions...)
}
