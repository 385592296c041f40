// Package dashboard holds the interaction logic of the plant dashboard:
// hover tooltips, per-category context menus, module action dispatch with
// optimistic status updates, and the polling refresher.
//
// A Controller owns all mutable state. Network calls are split from state
// changes (BeginX / network / ApplyX) so a UI event loop can run the
// network step in the background and apply the result on its own thread.
package dashboard

import (
	"io"
	"sync"
	"time"

	"github.com/grovetools/plantview/pkg/plant"
	"github.com/grovetools/plantview/pkg/plantapi"
	"github.com/sirupsen/logrus"
)

// Selection identifies the module targeted by the last context-menu open.
type Selection struct {
	ModuleID string
	Category string
}

// Empty reports whether no module is selected.
func (s Selection) Empty() bool {
	return s.ModuleID == ""
}

// Controller is the dashboard state machine. It is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	client   plantapi.Client
	notifier Notifier
	logger   *logrus.Entry

	data  *plant.Dataset
	board *board

	selection Selection
	tooltip   Tooltip
	menu      Menu

	polling  bool
	lastPoll time.Time
	lastErr  error
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets where user-facing notices go.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithLogger sets the structured logger.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Controller) { c.logger = l }
}

// New creates a controller whose board is built from initial, the dataset
// the dashboard was first rendered with. initial may be nil.
func New(client plantapi.Client, initial *plant.Dataset, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		data:   initial,
		board:  newBoard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = NotifierFunc(func(Notice) {})
	}
	if c.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.logger = logrus.NewEntry(l)
	}
	c.board.sync(initial)
	return c
}

// Dataset returns the current dataset. Callers must not modify it.
func (c *Controller) Dataset() *plant.Dataset {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// Blocks returns a snapshot of the board in display order.
func (c *Controller) Blocks() []Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board.snapshot()
}

// Block returns a snapshot of one block.
func (c *Controller) Block(id string) (Block, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.board.get(id)
	if !ok {
		return Block{}, false
	}
	return *b, true
}

// Selection returns the current selection.
func (c *Controller) Selection() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

// LastPoll returns when the last successful poll was applied and the error
// of the last failed one since.
func (c *Controller) LastPoll() (time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPoll, c.lastErr
}

// Client returns the transport the controller uses.
func (c *Controller) Client() plantapi.Client {
	return c.client
}
