package dashboard

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/grovetools/plantview/pkg/plant"
	"github.com/grovetools/plantview/pkg/plantapi/plantapitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerTicks(t *testing.T) {
	fake := plantapitest.NewFake(plantapitest.SampleDataset())
	ctrl := New(fake, plantapitest.SampleDataset())

	var polls atomic.Int32
	p := NewPoller(ctrl, 10*time.Millisecond, func(changes []Transition, err error) {
		assert.NoError(t, err)
		polls.Add(1)
	})

	p.Start(context.Background())
	p.Start(context.Background()) // no-op
	assert.True(t, p.Running())

	require.Eventually(t, func() bool { return polls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)

	p.Stop()
	assert.False(t, p.Running())
	n := fake.Fetches()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, fake.Fetches(), "no polls after Stop")
}

func TestPollerReportsTransitions(t *testing.T) {
	fake := plantapitest.NewFake(plantapitest.SampleDataset())
	ctrl := New(fake, plantapitest.SampleDataset())
	fake.SetData(plant.NewDataset().Set(plant.CategoryOperation, "Reactor 1", plant.NewRecord("Offline")))

	got := make(chan []Transition, 8)
	p := NewPoller(ctrl, 10*time.Millisecond, func(changes []Transition, err error) {
		got <- changes
	})
	p.Start(context.Background())
	defer p.Stop()

	select {
	case changes := <-got:
		require.Len(t, changes, 1)
		assert.Equal(t, "offline", changes[0].To)
	case <-time.After(2 * time.Second):
		t.Fatal("poller never polled")
	}
}

func TestPollerSetInterval(t *testing.T) {
	ctrl := New(plantapitest.NewFake(nil), nil)
	p := NewPoller(ctrl, 0, nil)
	assert.Equal(t, DefaultInterval, p.Interval())

	p.Start(context.Background())
	defer p.Stop()

	p.SetInterval(time.Second)
	p.SetInterval(2 * time.Second)
	p.SetInterval(-1)
	assert.Equal(t, 2*time.Second, p.Interval())
}

func TestPollerStopsWithContext(t *testing.T) {
	fake := plantapitest.NewFake(nil)
	ctrl := New(fake, nil)
	p := NewPoller(ctrl, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	require.Eventually(t, func() bool { return fake.Fetches() > 0 }, time.Second, 5*time.Millisecond)
	cancel()

	time.Sleep(20 * time.Millisecond)
	n := fake.Fetches()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, fake.Fetches())
	p.Stop()
}

func TestNoticeLog(t *testing.T) {
	var log NoticeLog
	_, ok := log.Last()
	assert.False(t, ok)

	var n Notifier = &log
	n.Notify(Notice{Level: NoticeInfo, Text: "a"})
	n.Notify(Notice{Level: NoticeError, Text: "b"})

	last, ok := log.Last()
	assert.True(t, ok)
	assert.Equal(t, "b", last.Text)
	assert.Len(t, log.Notices(), 2)
	assert.Equal(t, "error", NoticeError.String())
	assert.Equal(t, "skipped", Skipped.String())
}
