package engine

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todotimer/pkg/model"
)

func newTestStore(t *testing.T, p *memPersister, now time.Time) (*Store, *fakeClock) {
	t.Helper()
	clock := newFakeClock(now)
	s := NewStore(p, clock)
	s.Load()
	return s, clock
}

func TestLoadSeedsSampleDataWhenEmpty(t *testing.T) {
	p := &memPersister{loadErr: ErrNoData}
	s, _ := newTestStore(t, p, at(9, 0))

	assert.Len(t, s.Tasks(), 5)
	assert.Equal(t, 1, p.saveCount(), "sample data is persisted")
}

func TestLoadFallsBackOnCorruptData(t *testing.T) {
	p := &memPersister{loadErr: errors.New("invalid character 'x'")}
	s, _ := newTestStore(t, p, at(9, 0))

	assert.Len(t, s.Tasks(), 5)
	assert.Zero(t, p.saveCount(), "stored content is not overwritten")
}

func TestLoadUsesStoredTasks(t *testing.T) {
	p := &memPersister{tasks: []model.Task{{ID: 41, Title: "stored"}}}
	s, _ := newTestStore(t, p, at(9, 0))

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "stored", tasks[0].Title)

	added, err := s.Add(TaskInput{Title: "next"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), added.ID)
}

func TestAddAppliesDefaults(t *testing.T) {
	p := &memPersister{}
	s, _ := newTestStore(t, p, at(9, 0))

	task, err := s.Add(TaskInput{Title: "  Write report ", TimerMinutes: 90})
	require.NoError(t, err)

	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, DefaultDescription, task.Description)
	assert.Equal(t, model.DefaultCategory, task.Category)
	assert.Equal(t, "2026-10-18", task.Date)
	assert.Equal(t, DefaultStartTime, task.StartTime)
	assert.Equal(t, DefaultEndTime, task.EndTime)
	assert.False(t, task.IsExpired)
	require.NotNil(t, task.Timer)
	assert.Equal(t, 60, task.Timer.Duration)
	assert.Equal(t, 3600, task.Timer.Remaining)

	require.Len(t, p.tasks, 1)
	assert.Equal(t, task.ID, p.tasks[0].ID)
}

func TestAddRequiresTitle(t *testing.T) {
	s, _ := newTestStore(t, &memPersister{}, at(9, 0))

	_, err := s.Add(TaskInput{Title: "   "})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestUpdateTimerRules(t *testing.T) {
	s, clock := newTestStore(t, &memPersister{}, at(9, 0))

	task, err := s.Add(TaskInput{Title: "a", TimerMinutes: 10})
	require.NoError(t, err)

	t.Run("paused timer is refilled from the new duration", func(t *testing.T) {
		updated, err := s.Update(task.ID, TaskInput{Title: "a", TimerMinutes: 20})
		require.NoError(t, err)
		assert.Equal(t, 20, updated.Timer.Duration)
		assert.Equal(t, 1200, updated.Timer.Remaining)
	})

	t.Run("running timer keeps its remaining time", func(t *testing.T) {
		_, err := s.ToggleTimer(task.ID)
		require.NoError(t, err)
		clock.Advance(5 * time.Second)
		s.Tick()

		updated, err := s.Update(task.ID, TaskInput{Title: "a", TimerMinutes: 30})
		require.NoError(t, err)
		assert.Equal(t, 30, updated.Timer.Duration)
		assert.Equal(t, 1195, updated.Timer.Remaining)
		assert.NotNil(t, updated.Timer.RunningSince)
	})

	t.Run("dropping the timer removes it", func(t *testing.T) {
		updated, err := s.Update(task.ID, TaskInput{Title: "a"})
		require.NoError(t, err)
		assert.Nil(t, updated.Timer)
	})
}

func TestUpdateRecomputesExpiration(t *testing.T) {
	s, _ := newTestStore(t, &memPersister{}, at(14, 0))

	task, err := s.Add(TaskInput{Title: "a", EndTime: "18:00"})
	require.NoError(t, err)
	assert.False(t, task.IsExpired)

	task, err = s.Update(task.ID, TaskInput{Title: "a", EndTime: "13:00"})
	require.NoError(t, err)
	assert.True(t, task.IsExpired)
}

func TestUnknownTask(t *testing.T) {
	s, _ := newTestStore(t, &memPersister{}, at(9, 0))

	_, err := s.ToggleTimer(999)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, s.Delete(999), ErrTaskNotFound)
	_, err = s.Update(999, TaskInput{Title: "x"})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCompletingStopsTimer(t *testing.T) {
	s, clock := newTestStore(t, &memPersister{}, at(9, 0))

	task, err := s.Add(TaskInput{Title: "a", TimerMinutes: 5, EndTime: "08:00"})
	require.NoError(t, err)
	_, err = s.ToggleTimer(task.ID)
	require.NoError(t, err)
	clock.Advance(10 * time.Second)

	done, err := s.ToggleCompleted(task.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.False(t, done.IsExpired)
	assert.Nil(t, done.Timer.RunningSince)
	assert.Equal(t, 0, done.Timer.Remaining)
	assert.Equal(t, 5, done.Timer.Duration)

	undone, err := s.ToggleCompleted(task.ID)
	require.NoError(t, err)
	assert.False(t, undone.Completed)
	assert.True(t, undone.IsExpired)
}

func TestCancelTimerThroughStore(t *testing.T) {
	s, _ := newTestStore(t, &memPersister{}, at(9, 0))

	task, err := s.Add(TaskInput{Title: "a", TimerMinutes: 5})
	require.NoError(t, err)

	task, err = s.CancelTimer(task.ID)
	require.NoError(t, err)
	assert.False(t, task.HasTimer())

	data, err := json.Marshal(task)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "timer")
}

func TestAddMinuteAndResetThroughStore(t *testing.T) {
	s, _ := newTestStore(t, &memPersister{}, at(9, 0))

	task, err := s.Add(TaskInput{Title: "a", TimerMinutes: 5})
	require.NoError(t, err)

	task, err = s.AddMinute(task.ID)
	require.NoError(t, err)
	assert.Equal(t, 360, task.Timer.Remaining)

	task, err = s.ResetTimer(task.ID)
	require.NoError(t, err)
	assert.Equal(t, 300, task.Timer.Remaining)
}

func TestSaveFailureKeepsMutationInMemory(t *testing.T) {
	p := &memPersister{}
	s, _ := newTestStore(t, p, at(9, 0))
	p.saveErr = errors.New("disk full")

	task, err := s.Add(TaskInput{Title: "volatile"})
	require.NoError(t, err)

	got, err := s.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "volatile", got.Title)
	assert.Len(t, p.tasks, 0)
}

func TestTickPersistsOnlyOnChange(t *testing.T) {
	p := &memPersister{}
	s, clock := newTestStore(t, p, at(9, 0))

	task, err := s.Add(TaskInput{Title: "a", TimerMinutes: 1})
	require.NoError(t, err)
	_, err = s.ToggleTimer(task.ID)
	require.NoError(t, err)
	saves := p.saveCount()

	assert.False(t, s.Tick())
	assert.Equal(t, saves, p.saveCount())

	clock.Advance(2 * time.Second)
	assert.True(t, s.Tick())
	assert.Equal(t, saves+1, p.saveCount())

	got, err := s.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, 58, got.Timer.Remaining)
}

func TestRefreshExpiredThroughStore(t *testing.T) {
	p := &memPersister{tasks: []model.Task{
		{ID: 1, Title: "past", Date: "2026-10-18", EndTime: "10:00"},
		{ID: 2, Title: "done", Date: "2026-10-17", EndTime: "10:00", Completed: true},
	}}
	s, clock := newTestStore(t, p, at(9, 0))

	assert.False(t, s.RefreshExpired())

	clock.Advance(2 * time.Hour)
	assert.True(t, s.RefreshExpired())

	tasks := s.Tasks()
	assert.True(t, tasks[0].IsExpired)
	assert.False(t, tasks[1].IsExpired)
}

func TestDeleteWhereAndImport(t *testing.T) {
	s, _ := newTestStore(t, &memPersister{tasks: []model.Task{
		{ID: 1, Title: "a", Completed: true},
		{ID: 2, Title: "b"},
	}}, at(9, 0))

	removed := s.DeleteWhere(func(t model.Task) bool { return t.Completed })
	assert.Equal(t, 1, removed)

	n := s.Import([]model.Task{
		{ID: 2, Title: "dup id", Date: "2026-10-19", EndTime: "10:00"},
		{Title: "done", Completed: true, Timer: model.NewTimer(3)},
	})
	assert.Equal(t, 2, n)

	tasks := s.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, int64(3), tasks[1].ID)
	assert.Equal(t, int64(4), tasks[2].ID)
	assert.Equal(t, 0, tasks[2].Timer.Remaining)
}

func TestCollectionRoundTrip(t *testing.T) {
	p := &memPersister{loadErr: ErrNoData}
	s, _ := newTestStore(t, p, at(9, 0))
	_, err := s.ToggleTimer(5)
	require.NoError(t, err)

	data, err := json.Marshal(s.Tasks())
	require.NoError(t, err)

	var decoded []model.Task
	require.NoError(t, json.Unmarshal(data, &decoded))

	want := s.Tasks()
	require.Len(t, decoded, len(want))
	for i := range want {
		if want[i].Timer != nil && want[i].Timer.RunningSince != nil {
			assert.True(t, want[i].Timer.RunningSince.Equal(*decoded[i].Timer.RunningSince))
			want[i].Timer.RunningSince = nil
			decoded[i].Timer.RunningSince = nil
		}
		assert.Equal(t, want[i], decoded[i])
	}
}

func TestTimerIntentsIgnoreCompletedTask(t *testing.T) {
	p := &memPersister{}
	s, clock := newTestStore(t, p, at(9, 0))

	task, err := s.Add(TaskInput{Title: "a", TimerMinutes: 15})
	require.NoError(t, err)
	_, err = s.SetCompleted(task.ID, true)
	require.NoError(t, err)
	saves := p.saveCount()

	intents := map[string]func(int64) (model.Task, error){
		"toggle":     s.ToggleTimer,
		"add minute": s.AddMinute,
		"reset":      s.ResetTimer,
	}
	for name, intent := range intents {
		t.Run(name, func(t *testing.T) {
			got, err := intent(task.ID)
			require.NoError(t, err)
			assert.Nil(t, got.Timer.RunningSince)
			assert.Equal(t, 0, got.Timer.Remaining)
		})
	}
	assert.Equal(t, saves, p.saveCount(), "no-op intents are not persisted")

	clock.Advance(5 * time.Second)
	assert.False(t, s.Tick())

	edited, err := s.Update(task.ID, TaskInput{Title: "a", TimerMinutes: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, edited.Timer.Duration)
	assert.Nil(t, edited.Timer.RunningSince)
	assert.Equal(t, 0, edited.Timer.Remaining)
}

func TestImportClampsTimer(t *testing.T) {
	s, _ := newTestStore(t, &memPersister{}, at(9, 0))

	s.Import([]model.Task{
		{Title: "too long", Timer: &model.Timer{Duration: 500, Remaining: 99999}},
		{Title: "negative", Timer: &model.Timer{Duration: 0, Remaining: -30}},
	})

	tasks := s.Tasks()
	require.Len(t, tasks, 2)
	long, negative := tasks[0].Timer, tasks[1].Timer
	assert.Equal(t, model.MaxTimerMinutes, long.Duration)
	assert.Equal(t, 3600, long.Remaining)
	assert.Equal(t, model.MinTimerMinutes, negative.Duration)
	assert.Equal(t, 0, negative.Remaining)
}
