package engine

import (
	"sync"
	"time"

	"todotimer/pkg/model"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type memPersister struct {
	mu      sync.Mutex
	tasks   []model.Task
	loadErr error
	saveErr error
	saves   int
}

func (p *memPersister) Load() ([]model.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	return model.CloneAll(p.tasks), nil
}

func (p *memPersister) Save(tasks []model.Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves++
	if p.saveErr != nil {
		return p.saveErr
	}
	p.tasks = model.CloneAll(tasks)
	return nil
}

func (p *memPersister) saveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 18, hour, minute, 0, 0, time.Local)
}

func runningTask(remaining int, since time.Time) model.Task {
	s := since
	return model.Task{
		ID:    1,
		Title: "focus",
		Date:  model.FormatDate(since),
		Timer: &model.Timer{Duration: 15, Remaining: remaining, RunningSince: &s},
	}
}
