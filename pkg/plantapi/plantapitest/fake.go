// Package plantapitest provides an in-memory plantapi.Client for tests.
package plantapitest

import (
	"context"
	"fmt"
	"sync"

	"github.com/grovetools/plantview/pkg/plant"
	"github.com/grovetools/plantview/pkg/plantapi"
)

// Fake is a scriptable plantapi.Client. The zero value serves an empty
// dataset and acknowledges every action.
type Fake struct {
	mu sync.Mutex

	data      *plant.Dataset
	fetchErr  error
	actionErr error
	message   string

	// Gate, when non-nil, blocks FetchPlantData until a value is received
	// or the context is done.
	Gate chan struct{}

	fetches int
	actions []plantapi.ActionRequest
	closed  bool
}

var _ plantapi.Client = (*Fake)(nil)

// NewFake returns a Fake serving data.
func NewFake(data *plant.Dataset) *Fake {
	return &Fake{data: data}
}

// SetData replaces the dataset served by the next fetch.
func (f *Fake) SetData(data *plant.Dataset) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = data
}

// FailFetch makes fetches fail with err (nil to recover).
func (f *Fake) FailFetch(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchErr = err
}

// FailActions makes actions fail with err (nil to recover).
func (f *Fake) FailActions(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actionErr = err
}

// SetMessage sets the message returned for successful actions. By default
// it is derived from the request.
func (f *Fake) SetMessage(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = msg
}

// FetchPlantData implements plantapi.Client.
func (f *Fake) FetchPlantData(ctx context.Context) (*plant.Dataset, error) {
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if f.data == nil {
		return plant.NewDataset(), nil
	}
	return f.data, nil
}

// PerformAction implements plantapi.Client.
func (f *Fake) PerformAction(ctx context.Context, moduleID, action string) (*plantapi.ActionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, plantapi.ActionRequest{ModuleID: moduleID, Action: action})
	if f.actionErr != nil {
		return nil, f.actionErr
	}
	msg := f.message
	if msg == "" {
		msg = fmt.Sprintf("Action '%s' performed on '%s'.", action, moduleID)
	}
	return &plantapi.ActionResponse{Status: "success", Message: msg}, nil
}

// Close implements plantapi.Client.
func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Fetches returns how many fetches completed.
func (f *Fake) Fetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

// Actions returns the action requests received so far.
func (f *Fake) Actions() []plantapi.ActionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]plantapi.ActionRequest(nil), f.actions...)
}

// Closed reports whether Close was called.
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
