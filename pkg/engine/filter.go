package engine

import (
	"strings"

	"todotimer/pkg/model"
)

// Filter selects tasks for a view
type Filter struct {
	Date      string // YYYY-MM-DD, empty for every date
	Completed bool   // completed tab when true, active tab otherwise
	Query     string // case-insensitive match on title or description
}

// Matches reports whether a task passes the filter
func (f Filter) Matches(t model.Task) bool {
	if t.Completed != f.Completed {
		return false
	}
	if f.Date != "" && t.Date != f.Date {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		return strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q)
	}
	return true
}

// Apply returns the tasks that pass the filter, keeping their order
func (f Filter) Apply(tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
