package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultInterval is the time between polls.
const DefaultInterval = 5 * time.Second

// PollFunc observes the outcome of each poll the Poller runs.
type PollFunc func(changes []Transition, err error)

// Poller drives Controller.Poll from a ticker. It is the refresher for
// headless runs; the TUI schedules polls with tea.Tick instead.
type Poller struct {
	ctrl   *Controller
	logger *logrus.Entry
	onPoll PollFunc

	mu       sync.Mutex
	interval time.Duration
	running  bool
	cancel   context.CancelFunc
	resetCh  chan time.Duration
	wg       sync.WaitGroup
}

// NewPoller creates a poller for ctrl. A non-positive interval means
// DefaultInterval.
func NewPoller(ctrl *Controller, interval time.Duration, onPoll PollFunc) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		ctrl:     ctrl,
		logger:   ctrl.logger,
		onPoll:   onPoll,
		interval: interval,
		resetCh:  make(chan time.Duration, 1),
	}
}

// Start begins polling in the background. Calling Start on a running
// poller does nothing.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.running = true
	interval := p.interval
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(ctx, interval)

	p.logger.WithField("interval", interval).Info("Poller started")
}

// Stop halts polling and waits for an in-progress poll to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.cancel()
	p.running = false
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info("Poller stopped")
}

// Running reports whether the poller is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Interval returns the current polling interval.
func (p *Poller) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// SetInterval changes the interval, taking effect from the next tick.
func (p *Poller) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.interval = d

	// Keep only the newest pending value.
	select {
	case <-p.resetCh:
	default:
	}
	p.resetCh <- d
}

func (p *Poller) run(ctx context.Context, interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case d := <-p.resetCh:
			ticker.Reset(d)
			p.logger.WithField("interval", d).Info("Poll interval changed")
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	changes, started := p.ctrl.Poll(ctx)
	if !started {
		p.logger.Debug("Previous poll still in flight, skipping tick")
		return
	}
	if p.onPoll != nil {
		_, err := p.ctrl.LastPoll()
		p.onPoll(changes, err)
	}
}
