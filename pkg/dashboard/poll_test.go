package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/grovetools/plantview/pkg/plant"
	"github.com/grovetools/plantview/pkg/plantapi/plantapitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollUpdatesBlockStatus(t *testing.T) {
	var data plant.Dataset
	require.NoError(t, json.Unmarshal([]byte(`{"A":{"Pump1":{"status":"Online"}}}`), &data))

	fake := plantapitest.NewFake(&data)
	ctrl := New(fake, &data)

	var next plant.Dataset
	require.NoError(t, json.Unmarshal([]byte(`{"A":{"Pump1":{"status":"Offline"}}}`), &next))
	fake.SetData(&next)

	changes, started := ctrl.Poll(context.Background())
	require.True(t, started)

	blk, ok := ctrl.Block("pump1")
	require.True(t, ok)
	assert.Equal(t, "offline", blk.Status)
	assert.Equal(t, []Transition{{BlockID: "pump1", Name: "Pump1", From: "online", To: "offline"}}, changes)
	assert.False(t, ctrl.Polling())
}

func TestPollReplacesDataset(t *testing.T) {
	ctrl, fake, _ := newTestController(t)

	next := plant.NewDataset().Set(plant.CategoryOperation, "Reactor 1", plant.NewRecord("Offline"))
	fake.SetData(next)
	ctrl.Poll(context.Background())

	assert.Same(t, next, ctrl.Dataset())
	_, ok := ctrl.Dataset().Lookup(plant.CategoryOperation, "Turbine 1")
	assert.False(t, ok, "modules absent from the new payload must not survive")

	// Blocks missing from the payload keep their status.
	blk, _ := ctrl.Block("turbine_1")
	assert.Equal(t, "online", blk.Status)
}

func TestPollFailureKeepsState(t *testing.T) {
	ctrl, fake, notices := newTestController(t)
	before := ctrl.Dataset()
	fake.FailFetch(errors.New("connection refused"))

	changes, started := ctrl.Poll(context.Background())
	require.True(t, started)
	assert.Nil(t, changes)
	assert.Same(t, before, ctrl.Dataset())

	blk, _ := ctrl.Block("reactor_3")
	assert.Equal(t, "standby", blk.Status)
	assert.False(t, ctrl.Polling())
	assert.Empty(t, notices.Notices(), "poll failures are logged, not announced")

	_, lastErr := ctrl.LastPoll()
	assert.Error(t, lastErr)
}

func TestPollAddsNewModules(t *testing.T) {
	ctrl := New(plantapitest.NewFake(plantapitest.SampleDataset()), nil)
	require.Empty(t, ctrl.Blocks())

	changes, _ := ctrl.Poll(context.Background())
	assert.Len(t, ctrl.Blocks(), 5)
	assert.Len(t, changes, 5)
	assert.Equal(t, "", changes[0].From)
}

func TestBeginPollGuard(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	require.True(t, ctrl.BeginPoll())
	assert.False(t, ctrl.BeginPoll(), "second poll while one is in flight")

	_, started := ctrl.Poll(context.Background())
	assert.False(t, started)

	ctrl.ApplyPoll(PollResult{Err: errors.New("boom")})
	assert.True(t, ctrl.BeginPoll())
}

func TestConcurrentPollSkipped(t *testing.T) {
	fake := plantapitest.NewFake(plantapitest.SampleDataset())
	fake.Gate = make(chan struct{})
	ctrl := New(fake, plantapitest.SampleDataset())

	done := make(chan struct{})
	go func() {
		defer close(done)
		ctrl.Poll(context.Background())
	}()

	require.Eventually(t, ctrl.Polling, time.Second, 5*time.Millisecond)
	_, started := ctrl.Poll(context.Background())
	assert.False(t, started)

	close(fake.Gate)
	<-done
	assert.Equal(t, 1, fake.Fetches())
	assert.False(t, ctrl.Polling())
}

func TestLastPollTime(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	at := time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)

	ctrl.ApplyPoll(PollResult{Data: plant.NewDataset(), At: at})
	last, err := ctrl.LastPoll()
	assert.Equal(t, at, last)
	assert.NoError(t, err)
}

func TestEmptyPollResultIsAFailure(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	at := time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)
	ctrl.ApplyPoll(PollResult{Data: plant.NewDataset(), At: at})
	before := ctrl.Dataset()

	require.True(t, ctrl.BeginPoll())
	changes := ctrl.ApplyPoll(PollResult{At: at.Add(5 * time.Second)})
	assert.Empty(t, changes)
	assert.False(t, ctrl.Polling())
	assert.Same(t, before, ctrl.Dataset())

	last, err := ctrl.LastPoll()
	assert.Equal(t, at, last)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no plant data")
}
