// Package plantapi is the HTTP client for the plant server: it fetches the
// module dataset and sends module actions.
package plantapi

import (
	"context"

	"github.com/grovetools/plantview/pkg/plant"
)

// Client defines the interface for talking to the plant server.
type Client interface {
	// FetchPlantData returns the full module dataset.
	FetchPlantData(ctx context.Context) (*plant.Dataset, error)

	// PerformAction asks the server to apply action to the module.
	PerformAction(ctx context.Context, moduleID, action string) (*ActionResponse, error)

	// Close cleans up any resources used by the client.
	Close() error
}

// ActionRequest is the body of a module action request.
type ActionRequest struct {
	ModuleID string `json:"module_id"`
	Action   string `json:"action"`
}

// ActionResponse is the server's reply to a module action.
type ActionResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message"`
}

// Well-known action names.
const (
	ActionStart        = "start"
	ActionStop         = "stop"
	ActionLowPowerMode = "low_power_mode"
)
