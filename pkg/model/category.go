package model

import "strings"

// Priority of a task
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities from none (0) to high (3)
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

// ParsePriority maps free text to a known priority, PriorityNone otherwise
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow
	case PriorityMedium:
		return PriorityMedium
	case PriorityHigh:
		return PriorityHigh
	default:
		return PriorityNone
	}
}

// DefaultCategory is used when a task is created without a category
const DefaultCategory = "meeting"

// Categories lists the known category ids in display order
var Categories = []string{
	"meeting", "branding", "client", "planer", "treatment",
	"work", "personal", "shopping", "health",
}

var categoryLabels = map[string]string{
	"meeting":   "Meeting",
	"branding":  "Branding",
	"client":    "Client",
	"planer":    "Planer",
	"treatment": "Treatment",
	"work":      "Work",
	"personal":  "Personal",
	"shopping":  "Shopping",
	"health":    "Health",
}

// CategoryLabel returns the display label for a category id. Unknown ids are
// returned unchanged.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}
