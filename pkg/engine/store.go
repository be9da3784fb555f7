package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"todotimer/pkg/model"
	"todotimer/pkg/utils"
)

var (
	// ErrTaskNotFound is returned when no task has the requested id
	ErrTaskNotFound = errors.New("task not found")
	// ErrEmptyTitle is returned when a task is saved without a title
	ErrEmptyTitle = errors.New("task title is required")
	// ErrNoData is returned by a Persister that holds nothing yet
	ErrNoData = errors.New("no stored tasks")
)

// Defaults applied to new tasks
const (
	DefaultDescription = "No description provided."
	DefaultStartTime   = "10:30"
	DefaultEndTime     = "12:00"
)

// Persister reads and writes the whole task collection
type Persister interface {
	Load() ([]model.Task, error)
	Save(tasks []model.Task) error
}

// TaskInput carries the user-editable fields of a task. TimerMinutes <= 0
// means the task has no timer.
type TaskInput struct {
	Title        string
	Description  string
	Category     string
	Priority     model.Priority
	Date         string
	StartTime    string
	EndTime      string
	TimerMinutes int
}

// Store owns the task collection. Every method is safe for concurrent use;
// mutations are persisted synchronously and save errors are only logged.
type Store struct {
	mu     sync.Mutex
	tasks  []model.Task
	nextID int64

	persister Persister
	clock     Clock
	log       logrus.FieldLogger
}

// NewStore creates an empty store. Call Load to populate it.
func NewStore(p Persister, clock Clock) *Store {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Store{
		persister: p,
		clock:     clock,
		nextID:    1,
		log:       utils.Logger().WithField("component", "store"),
	}
}

// Now returns the store's clock reading
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// Load reads the collection from the persister. An empty store is seeded with
// the sample dataset and saved; unreadable content falls back to the sample
// dataset without overwriting what is stored.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	var tasks []model.Task
	var err error
	if s.persister != nil {
		tasks, err = s.persister.Load()
	} else {
		err = ErrNoData
	}

	switch {
	case errors.Is(err, ErrNoData):
		s.log.Info("no stored tasks, seeding sample data")
		s.setTasks(model.SampleTasks(now))
		s.persist()
	case err != nil:
		s.log.WithError(err).Warn("failed to load tasks, using sample data")
		s.setTasks(model.SampleTasks(now))
	default:
		s.log.WithField("count", len(tasks)).Debug("loaded tasks")
		s.setTasks(tasks)
	}
}

func (s *Store) setTasks(tasks []model.Task) {
	s.tasks = tasks
	s.nextID = 1
	for _, t := range tasks {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
}

// persist writes the collection; callers hold s.mu
func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(model.CloneAll(s.tasks)); err != nil {
		s.log.WithError(err).Warn("failed to save tasks")
	}
}

func (s *Store) indexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Tasks returns a copy of the collection in insertion order
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneAll(s.tasks)
}

// Task returns a copy of one task
func (s *Store) Task(id int64) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("task %d: %w", id, ErrTaskNotFound)
	}
	return s.tasks[i].Clone(), nil
}

func normalizeInput(in TaskInput, now time.Time) (TaskInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, ErrEmptyTitle
	}
	in.Description = strings.TrimSpace(in.Description)
	if in.Category = strings.TrimSpace(in.Category); in.Category == "" {
		in.Category = model.DefaultCategory
	}
	if in.Date = strings.TrimSpace(in.Date); in.Date == "" {
		in.Date = model.FormatDate(now)
	}
	if in.StartTime = strings.TrimSpace(in.StartTime); in.StartTime == "" {
		in.StartTime = DefaultStartTime
	}
	if in.EndTime = strings.TrimSpace(in.EndTime); in.EndTime == "" {
		in.EndTime = DefaultEndTime
	}
	return in, nil
}

// Add creates a new task
func (s *Store) Add(in TaskInput) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	in, err := normalizeInput(in, now)
	if err != nil {
		return model.Task{}, err
	}
	if in.Description == "" {
		in.Description = DefaultDescription
	}

	task := model.Task{
		ID:          s.nextID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
	}
	if in.TimerMinutes > 0 {
		task.Timer = model.NewTimer(in.TimerMinutes)
	}
	s.nextID++

	s.tasks = append(s.tasks, task)
	s.persist()
	s.log.WithField("id", task.ID).Debug("added task")
	return task.Clone(), nil
}

// Update replaces the editable fields of a task. A running timer keeps its
// remaining time; otherwise the remaining time is refilled from the new
// duration. The expiration flag is recomputed.
func (s *Store) Update(id int64, in TaskInput) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("task %d: %w", id, ErrTaskNotFound)
	}

	now := s.clock.Now()
	in, err := normalizeInput(in, now)
	if err != nil {
		return model.Task{}, err
	}

	t := &s.tasks[i]
	t.Title = in.Title
	t.Description = in.Description
	t.Category = in.Category
	t.Priority = in.Priority
	t.Date = in.Date
	t.StartTime = in.StartTime
	t.EndTime = in.EndTime

	switch {
	case in.TimerMinutes <= 0:
		t.Timer = nil
	case t.Timer == nil:
		t.Timer = model.NewTimer(in.TimerMinutes)
	default:
		t.Timer.Duration = model.ClampDuration(in.TimerMinutes)
		if t.Timer.RunningSince == nil {
			t.Timer.Remaining = t.Timer.FullSeconds()
		}
	}
	if t.Completed {
		CompleteTimer(t)
	}
	t.IsExpired = IsExpired(*t, now)

	s.persist()
	return t.Clone(), nil
}

// Delete removes a task
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("task %d: %w", id, ErrTaskNotFound)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.persist()
	return nil
}

// DeleteWhere removes every task matching pred and returns how many were
// removed
func (s *Store) DeleteWhere(pred func(model.Task) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if pred(t) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	if removed > 0 {
		s.persist()
	}
	return removed
}

// Import appends tasks, assigning fresh ids, and returns the number added
func (s *Store) Import(tasks []model.Task) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for _, t := range tasks {
		t = t.Clone()
		t.ID = s.nextID
		s.nextID++
		clampTimer(&t)
		if t.Completed {
			CompleteTimer(&t)
		}
		t.IsExpired = IsExpired(t, now)
		s.tasks = append(s.tasks, t)
	}
	if len(tasks) > 0 {
		s.persist()
	}
	return len(tasks)
}

// clampTimer keeps an imported timer inside the duration and remaining bounds
func clampTimer(t *model.Task) {
	tm := t.Timer
	if tm == nil {
		return
	}
	tm.Duration = model.ClampDuration(tm.Duration)
	tm.Remaining = min(max(tm.Remaining, 0), tm.FullSeconds())
}

// SetCompleted marks a task done or not done. Completing force-stops its
// timer.
func (s *Store) SetCompleted(id int64, completed bool) (model.Task, error) {
	return s.mutate(id, func(t *model.Task, now time.Time) bool {
		if t.Completed == completed {
			return false
		}
		t.Completed = completed
		if completed {
			CompleteTimer(t)
		}
		t.IsExpired = IsExpired(*t, now)
		return true
	})
}

// ToggleCompleted flips the completion flag of a task
func (s *Store) ToggleCompleted(id int64) (model.Task, error) {
	t, err := s.Task(id)
	if err != nil {
		return t, err
	}
	return s.SetCompleted(id, !t.Completed)
}

// ToggleTimer starts or pauses the task's timer. Completed tasks keep their
// timer stopped.
func (s *Store) ToggleTimer(id int64) (model.Task, error) {
	return s.mutate(id, unlessCompleted(ToggleTimer))
}

// ResetTimer stops the task's timer and refills it
func (s *Store) ResetTimer(id int64) (model.Task, error) {
	return s.mutate(id, unlessCompleted(func(t *model.Task, _ time.Time) bool { return ResetTimer(t) }))
}

// AddMinute adds sixty seconds to the task's timer
func (s *Store) AddMinute(id int64) (model.Task, error) {
	return s.mutate(id, unlessCompleted(func(t *model.Task, _ time.Time) bool { return AddMinute(t) }))
}

// unlessCompleted turns a timer intent into a no-op on completed tasks
func unlessCompleted(fn func(*model.Task, time.Time) bool) func(*model.Task, time.Time) bool {
	return func(t *model.Task, now time.Time) bool {
		if t.Completed {
			return false
		}
		return fn(t, now)
	}
}

// CancelTimer removes the task's timer
func (s *Store) CancelTimer(id int64) (model.Task, error) {
	return s.mutate(id, func(t *model.Task, _ time.Time) bool { return CancelTimer(t) })
}

func (s *Store) mutate(id int64, fn func(*model.Task, time.Time) bool) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("task %d: %w", id, ErrTaskNotFound)
	}
	if fn(&s.tasks[i], s.clock.Now()) {
		s.persist()
	}
	return s.tasks[i].Clone(), nil
}

// Tick advances every running timer and reports whether any changed
func (s *Store) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !tickAll(s.tasks, s.clock.Now()) {
		return false
	}
	s.persist()
	return true
}

// RefreshExpired recomputes the expiration flag of every task and reports
// whether any changed
func (s *Store) RefreshExpired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !refreshExpired(s.tasks, s.clock.Now()) {
		return false
	}
	s.persist()
	return true
}
