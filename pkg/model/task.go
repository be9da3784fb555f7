package model

import (
	"strconv"
	"strings"
	"time"
)

// Date and time-of-day layouts used for Task.Date, Task.StartTime and Task.EndTime
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Timer duration bounds in minutes
const (
	MinTimerMinutes = 1
	MaxTimerMinutes = 60
)

// Task represents a single todo item
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Category    string   `json:"category"`
	Priority    Priority `json:"priority,omitempty"`
	Date        string   `json:"date"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	IsExpired   bool     `json:"isExpired"`
	Timer       *Timer   `json:"timer,omitempty"`
}

// Timer is the optional countdown attached to a Task
type Timer struct {
	Duration     int        `json:"duration"`  // minutes
	Remaining    int        `json:"remaining"` // seconds
	RunningSince *time.Time `json:"runningSince,omitempty"`
}

// TimerState is the derived state of a Timer
type TimerState int

const (
	TimerStopped TimerState = iota // no timer configured
	TimerPaused
	TimerRunning
	TimerExpired
)

func (s TimerState) String() string {
	switch s {
	case TimerPaused:
		return "paused"
	case TimerRunning:
		return "running"
	case TimerExpired:
		return "expired"
	default:
		return "stopped"
	}
}

// HasTimer reports whether the task carries a timer
func (t Task) HasTimer() bool {
	return t.Timer != nil
}

// TimerState derives the state of the task's timer
func (t Task) TimerState() TimerState {
	if t.Timer == nil || t.Timer.Duration <= 0 {
		return TimerStopped
	}
	if t.Timer.RunningSince != nil {
		return TimerRunning
	}
	if t.Timer.Remaining <= 0 {
		return TimerExpired
	}
	return TimerPaused
}

// FullSeconds is the configured duration in seconds
func (tm Timer) FullSeconds() int {
	return tm.Duration * 60
}

// Clone returns a deep copy of the task
func (t Task) Clone() Task {
	c := t
	if t.Timer != nil {
		tm := *t.Timer
		if t.Timer.RunningSince != nil {
			since := *t.Timer.RunningSince
			tm.RunningSince = &since
		}
		c.Timer = &tm
	}
	return c
}

// CloneAll deep-copies a task slice
func CloneAll(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// ClampDuration keeps a timer duration inside [MinTimerMinutes, MaxTimerMinutes]
func ClampDuration(minutes int) int {
	if minutes < MinTimerMinutes {
		return MinTimerMinutes
	}
	if minutes > MaxTimerMinutes {
		return MaxTimerMinutes
	}
	return minutes
}

// ParseDuration converts user input into a clamped duration. Non-numeric
// input is treated as the minimum.
func ParseDuration(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n == 0 {
		return MinTimerMinutes
	}
	return ClampDuration(n)
}

// NewTimer creates a stopped timer with full remaining time
func NewTimer(minutes int) *Timer {
	d := ClampDuration(minutes)
	return &Timer{Duration: d, Remaining: d * 60}
}

// ParseDate parses a Task.Date value in the given location
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

// ParseClock parses an HH:MM value and returns hours and minutes
func ParseClock(s string) (int, int, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

// FormatDate formats a time as a Task.Date value
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
