package dashboard

import (
	"context"
	"time"

	"github.com/grovetools/plantview/errors"
	"github.com/grovetools/plantview/pkg/plant"
)

// PollResult is the completion of a dataset fetch.
type PollResult struct {
	Data *plant.Dataset
	Err  error
	At   time.Time
}

// Transition records a block status change applied by a poll.
type Transition struct {
	BlockID string
	Name    string
	From    string
	To      string
}

// BeginPoll marks a poll in flight. It returns false, and the caller must
// skip this tick, when one is already outstanding.
func (c *Controller) BeginPoll() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.polling {
		return false
	}
	c.polling = true
	return true
}

// Polling reports whether a poll is in flight.
func (c *Controller) Polling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.polling
}

// FetchPlantData performs the GET. It touches no controller state.
func (c *Controller) FetchPlantData(ctx context.Context) PollResult {
	data, err := c.client.FetchPlantData(ctx)
	return PollResult{Data: data, Err: err, At: time.Now()}
}

// ApplyPoll installs a fetched dataset. On success the dataset is replaced
// wholesale and every block whose record exists takes its lower-cased
// status; modules new to the board get blocks. On failure only a log line
// is written. Either way the in-flight flag is cleared.
func (c *Controller) ApplyPoll(res PollResult) []Transition {
	c.mu.Lock()
	c.polling = false

	if res.Err == nil && res.Data == nil {
		res.Err = errors.New(errors.ErrCodeDecodeFailed, "server returned no plant data")
	}
	if res.Err != nil {
		c.lastErr = res.Err
		c.mu.Unlock()
		c.logger.WithError(res.Err).Error("Failed to fetch live data")
		return nil
	}

	c.data = res.Data
	c.lastPoll = res.At
	c.lastErr = nil

	var changes []Transition
	for _, blk := range c.board.blocks {
		rec, ok := c.data.Lookup(blk.Category, blk.Name)
		if !ok {
			continue
		}
		status := plant.NormalizeStatus(rec.Status)
		if status != blk.Status {
			changes = append(changes, Transition{BlockID: blk.ID, Name: blk.Name, From: blk.Status, To: status})
			blk.Status = status
		}
	}
	before := len(c.board.blocks)
	c.board.sync(c.data)
	for _, blk := range c.board.blocks[before:] {
		changes = append(changes, Transition{BlockID: blk.ID, Name: blk.Name, To: blk.Status})
	}
	c.mu.Unlock()

	c.logger.WithField("modules", res.Data.Len()).
		Debugf("Dashboard updated with live data at: %s", res.At.Format("15:04:05"))
	return changes
}

// Poll runs a whole poll synchronously. started is false when another poll
// was already in flight.
func (c *Controller) Poll(ctx context.Context) (changes []Transition, started bool) {
	if !c.BeginPoll() {
		return nil, false
	}
	return c.ApplyPoll(c.FetchPlantData(ctx)), true
}
