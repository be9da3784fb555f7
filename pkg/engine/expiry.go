package engine

import (
	"time"

	"todotimer/pkg/model"
)

// IsExpired reports whether the task's scheduled window lies in the past.
// Completed tasks never expire. Date and end time are read in now's location.
func IsExpired(task model.Task, now time.Time) bool {
	if task.Completed {
		return false
	}

	day, err := model.ParseDate(task.Date, now.Location())
	if err != nil {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case day.Before(today):
		return true
	case day.After(today):
		return false
	}

	hour, minute, err := model.ParseClock(task.EndTime)
	if err != nil {
		return false
	}
	end := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
	return end.Before(now)
}

// refreshExpired recomputes IsExpired for every task and reports whether any
// flag changed
func refreshExpired(tasks []model.Task, now time.Time) bool {
	changed := false
	for i := range tasks {
		expired := IsExpired(tasks[i], now)
		if tasks[i].IsExpired != expired {
			tasks[i].IsExpired = expired
			changed = true
		}
	}
	return changed
}
