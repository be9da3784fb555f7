package commands

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"todotimer/pkg/engine"
	"todotimer/pkg/model"
)

var (
	categoryTagRe     = regexp.MustCompile(`\+(\w+)`)
	categoryStripRe   = regexp.MustCompile(`\s*\+\w+\s*`)
	timeRangePrefixRe = regexp.MustCompile(`^(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})\s+`)
)

// AddOptions holds the optional --add flags
type AddOptions struct {
	Date         string
	StartTime    string
	EndTime      string
	Category     string
	TimerMinutes int
}

// AddTask adds a task from command line text. A +category tag in the text
// selects the category when --category is not given.
func AddTask(store *engine.Store, taskText string, opts AddOptions) (model.Task, error) {
	if opts.Date != "" {
		if _, err := model.ParseDate(opts.Date, time.Local); err != nil {
			return model.Task{}, fmt.Errorf("parsing date: %w", err)
		}
	}
	for _, clock := range []string{opts.StartTime, opts.EndTime} {
		if clock == "" {
			continue
		}
		if _, _, err := model.ParseClock(clock); err != nil {
			return model.Task{}, fmt.Errorf("parsing time %q: %w", clock, err)
		}
	}

	category := strings.ToLower(strings.TrimSpace(opts.Category))
	if category == "" {
		category = extractCategory(taskText)
	}
	if category != "" && !slices.Contains(model.Categories, category) {
		return model.Task{}, fmt.Errorf("unknown category %q", category)
	}

	return store.Add(engine.TaskInput{
		Title:        removeCategoryTags(taskText),
		Category:     category,
		Date:         opts.Date,
		StartTime:    opts.StartTime,
		EndTime:      opts.EndTime,
		TimerMinutes: opts.TimerMinutes,
	})
}

// HandleAddTask processes the --add command
func HandleAddTask(store *engine.Store, taskText string, opts AddOptions) {
	task, err := AddTask(store, taskText, opts)
	if err != nil {
		fmt.Printf("Error adding task: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Task added: %s (%s %s-%s)\n", task.Title, task.Date, task.StartTime, task.EndTime)
}

// extractCategory returns the first known +category tag in text
func extractCategory(text string) string {
	for _, match := range categoryTagRe.FindAllStringSubmatch(text, -1) {
		tag := strings.ToLower(match[1])
		if slices.Contains(model.Categories, tag) {
			return tag
		}
	}
	return ""
}

// removeCategoryTags removes +category tags from text for a clean title
func removeCategoryTags(text string) string {
	return strings.TrimSpace(categoryStripRe.ReplaceAllString(text, " "))
}
