package dashboard

import (
	"context"
	"fmt"

	"github.com/grovetools/plantview/pkg/plantapi"
)

// Outcome is how a dispatch ended.
type Outcome int

const (
	// Skipped means no module was selected, so nothing was sent.
	Skipped Outcome = iota
	Succeeded
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "skipped"
	}
}

// DispatchRequest is a resolved action target.
type DispatchRequest struct {
	ModuleID string
	Category string
	Action   string
	// Skip is set when there was no selection.
	Skip bool
}

// DispatchResult is the completion of a dispatch.
type DispatchResult struct {
	Outcome  Outcome
	ModuleID string
	Action   string
	Message  string
	Err      error
}

// optimisticStatus maps an action to the status shown until the next poll.
var optimisticStatus = map[string]string{
	plantapi.ActionStart:        "online",
	plantapi.ActionStop:         "offline",
	plantapi.ActionLowPowerMode: "standby",
}

// OptimisticStatus returns the status an action implies, if any.
func OptimisticStatus(action string) (string, bool) {
	s, ok := optimisticStatus[action]
	return s, ok
}

// BeginDispatch resolves the target of action from the selection and hides
// the menu.
func (c *Controller) BeginDispatch(action string) DispatchRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.menu.Visible = false
	if c.selection.Empty() {
		return DispatchRequest{Action: action, Skip: true}
	}
	return DispatchRequest{
		ModuleID: c.selection.ModuleID,
		Category: c.selection.Category,
		Action:   action,
	}
}

// SelectMenuItem is a click on the menu item at index: it begins the
// dispatch of that item's action. ok is false when there is no such item.
func (c *Controller) SelectMenuItem(index int) (DispatchRequest, bool) {
	item, ok := c.MenuItemAt(index)
	if !ok {
		return DispatchRequest{}, false
	}
	return c.BeginDispatch(item.Action), true
}

// PerformAction sends req to the server. It touches no controller state.
func (c *Controller) PerformAction(ctx context.Context, req DispatchRequest) DispatchResult {
	if req.Skip || req.ModuleID == "" {
		return DispatchResult{Outcome: Skipped, Action: req.Action}
	}

	resp, err := c.client.PerformAction(ctx, req.ModuleID, req.Action)
	if err != nil {
		return DispatchResult{Outcome: Failed, ModuleID: req.ModuleID, Action: req.Action, Err: err}
	}
	return DispatchResult{Outcome: Succeeded, ModuleID: req.ModuleID, Action: req.Action, Message: resp.Message}
}

// ApplyDispatch reports the result and, on success, sets the optimistic
// status of the target block.
func (c *Controller) ApplyDispatch(res DispatchResult) {
	switch res.Outcome {
	case Skipped:
		return

	case Succeeded:
		c.mu.Lock()
		if status, ok := optimisticStatus[res.Action]; ok {
			if blk, found := c.board.get(res.ModuleID); found {
				blk.Status = status
			}
		}
		c.mu.Unlock()

		c.logger.WithField("module", res.ModuleID).
			WithField("action", res.Action).
			Info("Module action succeeded")
		c.notifier.Notify(Notice{Level: NoticeSuccess, Text: fmt.Sprintf("Success: %s", res.Message)})

	case Failed:
		c.logger.WithError(res.Err).
			WithField("module", res.ModuleID).
			WithField("action", res.Action).
			Error("Error performing action")
		c.notifier.Notify(Notice{Level: NoticeError, Text: fmt.Sprintf("Failed to perform action on %s.", res.ModuleID)})
	}
}

// Dispatch runs a whole dispatch synchronously.
func (c *Controller) Dispatch(ctx context.Context, action string) DispatchResult {
	res := c.PerformAction(ctx, c.BeginDispatch(action))
	c.ApplyDispatch(res)
	return res
}

// DispatchTo selects moduleID and dispatches action to it, as a right-click
// followed by a menu click would. Used by the one-shot CLI.
func (c *Controller) DispatchTo(ctx context.Context, moduleID, action string) DispatchResult {
	c.mu.Lock()
	category := ""
	if blk, ok := c.board.get(moduleID); ok {
		category = blk.Category
	}
	c.selection = Selection{ModuleID: moduleID, Category: category}
	c.mu.Unlock()

	return c.Dispatch(ctx, action)
}
