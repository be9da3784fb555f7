package engine

import (
	"time"

	"todotimer/pkg/model"
)

// elapsedSeconds is the number of whole seconds between since and now,
// never negative
func elapsedSeconds(since, now time.Time) int {
	d := now.Sub(since)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// ToggleTimer pauses a running timer or starts a paused/stopped/expired one.
// Starting an exhausted timer refills it to the full duration.
func ToggleTimer(task *model.Task, now time.Time) bool {
	tm := task.Timer
	if tm == nil {
		return false
	}

	if tm.RunningSince != nil {
		elapsed := elapsedSeconds(*tm.RunningSince, now)
		tm.Remaining = max(0, tm.Remaining-elapsed)
		tm.RunningSince = nil
		return true
	}

	if tm.Remaining <= 0 {
		tm.Remaining = tm.FullSeconds()
	}
	started := now
	tm.RunningSince = &started
	return true
}

// ResetTimer stops the timer and refills it to the full duration
func ResetTimer(task *model.Task) bool {
	tm := task.Timer
	if tm == nil {
		return false
	}
	tm.RunningSince = nil
	tm.Remaining = tm.FullSeconds()
	return true
}

// AddMinute extends the remaining time by sixty seconds in any state.
// A running timer keeps its start stamp.
func AddMinute(task *model.Task) bool {
	if task.Timer == nil {
		return false
	}
	task.Timer.Remaining += 60
	return true
}

// CancelTimer removes the timer from the task
func CancelTimer(task *model.Task) bool {
	if task.Timer == nil {
		return false
	}
	task.Timer = nil
	return true
}

// CompleteTimer force-stops the timer of a completed task, keeping its
// duration
func CompleteTimer(task *model.Task) bool {
	tm := task.Timer
	if tm == nil {
		return false
	}
	tm.RunningSince = nil
	tm.Remaining = 0
	return true
}

// RemainingAt projects the remaining seconds at now without mutating the task
func RemainingAt(task model.Task, now time.Time) int {
	tm := task.Timer
	if tm == nil {
		return 0
	}
	if tm.RunningSince == nil {
		return tm.Remaining
	}
	return max(0, tm.Remaining-elapsedSeconds(*tm.RunningSince, now))
}
