package engine

import (
	"time"

	"todotimer/pkg/model"
)

// TickTask advances a running timer to now. The start stamp is moved to now
// after every change so each tick only measures time since the previous one.
// It reports whether the timer changed.
func TickTask(task *model.Task, now time.Time) bool {
	tm := task.Timer
	if tm == nil || tm.RunningSince == nil {
		return false
	}

	remaining := max(0, tm.Remaining-elapsedSeconds(*tm.RunningSince, now))
	if remaining == tm.Remaining {
		return false
	}

	if remaining == 0 {
		tm.Remaining = 0
		tm.RunningSince = nil
		return true
	}

	tm.Remaining = remaining
	stamp := now
	tm.RunningSince = &stamp
	return true
}

func tickAll(tasks []model.Task, now time.Time) bool {
	changed := false
	for i := range tasks {
		if TickTask(&tasks[i], now) {
			changed = true
		}
	}
	return changed
}
