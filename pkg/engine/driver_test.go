package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todotimer/pkg/model"
)

func TestDriverRunsExpiryFirstThenTicks(t *testing.T) {
	p := &memPersister{tasks: []model.Task{
		{ID: 1, Title: "late", Date: "2026-10-18", EndTime: "08:00"},
	}}
	s, clock := newTestStore(t, p, at(9, 0))

	var mu sync.Mutex
	var events []Event
	enough := make(chan struct{})

	d := NewDriver(s, func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
		clock.Advance(time.Second)
		if len(events) == 6 {
			close(enough)
		}
	})
	d.TickInterval = 5 * time.Millisecond
	d.ExpiryInterval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	select {
	case <-enough:
	case <-time.After(5 * time.Second):
		t.Fatal("driver did not emit events")
	}
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("driver did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(events), 6)
	assert.Equal(t, ExpiryEvent, events[0].Kind)
	assert.True(t, events[0].Changed)
	assert.Equal(t, TickEvent, events[1].Kind)
	assert.False(t, events[1].Changed, "no running timers means heartbeat only")

	tasks := s.Tasks()
	assert.True(t, tasks[0].IsExpired)
}

func TestDriverTicksRunningTimers(t *testing.T) {
	p := &memPersister{}
	s, clock := newTestStore(t, p, at(9, 0))
	task, err := s.Add(TaskInput{Title: "focus", TimerMinutes: 1})
	require.NoError(t, err)
	_, err = s.ToggleTimer(task.ID)
	require.NoError(t, err)

	changed := make(chan struct{}, 16)
	d := NewDriver(s, func(e Event) {
		if e.Kind == TickEvent && e.Changed {
			select {
			case changed <- struct{}{}:
			default:
			}
		}
	})
	d.TickInterval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	clock.Advance(3 * time.Second)

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a changed tick")
	}

	got, err := s.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, 57, got.Timer.Remaining)
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "tick", TickEvent.String())
	assert.Equal(t, "expiry", ExpiryEvent.String())
}
