package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"todotimer/pkg/engine"
	"todotimer/pkg/model"
	"todotimer/pkg/utils"
)

// filter returns the engine filter for the current view
func (m Model) filter() engine.Filter {
	return engine.Filter{
		Date:      model.FormatDate(m.viewDate),
		Completed: m.showCompleted,
		Query:     m.searchTerm,
	}
}

// refresh rebuilds the table rows from the store
func (m *Model) refresh() {
	now := m.store.Now()
	tasks := m.filter().Apply(m.store.Tasks())
	groupedTasks := GroupTasks(tasks, m.groupBy, m.sortBy, m.sortOrder)

	rows := []table.Row{}
	ids := []int64{}
	for _, group := range groupedTasks {
		if m.groupBy != GroupByNone {
			rows = append(rows, table.Row{"", "", fmt.Sprintf("== %s ==", group.GroupName), "", ""})
			ids = append(ids, 0)
		}

		for _, t := range group.Tasks {
			rows = append(rows, taskRow(t, now))
			ids = append(ids, t.ID)
		}
	}

	m.rowIDs = ids
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
	if m.table.Cursor() < 0 {
		m.table.SetCursor(0)
	}
}

func taskRow(t model.Task, now time.Time) table.Row {
	status := "[ ]"
	switch {
	case t.Completed:
		status = "[x]"
	case t.IsExpired:
		status = "[!]"
	}

	return table.Row{
		status,
		fmt.Sprintf("%s-%s", t.StartTime, t.EndTime),
		t.Title,
		model.CategoryLabel(t.Category),
		timerCell(t, now),
	}
}

// timerCell renders the remaining time and the next timer action
func timerCell(t model.Task, now time.Time) string {
	if !t.HasTimer() || t.Completed {
		return ""
	}
	return fmt.Sprintf("%s %s", formatRemaining(engine.RemainingAt(t, now)), timerLabel(t))
}

// formatRemaining renders seconds as MM:SS
func formatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// timerLabel is the action offered for the task's timer
func timerLabel(t model.Task) string {
	switch t.TimerState() {
	case model.TimerRunning:
		return "Pause"
	case model.TimerPaused:
		if t.Timer.Remaining < t.Timer.FullSeconds() {
			return "Continue"
		}
	}
	return "Start"
}

// formatDateForDisplay labels the viewed day
func formatDateForDisplay(day, now time.Time) string {
	if model.FormatDate(day) == model.FormatDate(now) {
		return "Today"
	}
	return day.Format("Jan 2, 2006")
}

// selectedTask returns the task under the table cursor
func (m Model) selectedTask() (model.Task, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rowIDs) || m.rowIDs[idx] == 0 {
		return model.Task{}, false
	}
	t, err := m.store.Task(m.rowIDs[idx])
	if err != nil {
		return model.Task{}, false
	}
	return t, true
}

// applyToSelected runs a store mutation against the selected task
func (m *Model) applyToSelected(action string, fn func(id int64) (model.Task, error)) {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	if _, err := fn(t.ID); err != nil {
		utils.Log("Error on %s for task %d: %v", action, t.ID, err)
		m.err = err
	} else {
		m.err = nil
	}
	m.refresh()
}

// focusInput focuses one form field and blurs the others
func (m *Model) focusInput(idx int) {
	m.activeInput = idx
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// focusNextInput cycles through the form inputs
func (m *Model) focusNextInput() {
	m.focusInput((m.activeInput + 1) % fieldCount)
}

// focusPreviousInput cycles through the form inputs
func (m *Model) focusPreviousInput() {
	m.focusInput((m.activeInput - 1 + fieldCount) % fieldCount)
}

// formInput validates the form fields
func (m Model) formInput() (engine.TaskInput, error) {
	value := func(i int) string { return strings.TrimSpace(m.inputs[i].Value()) }

	in := engine.TaskInput{
		Title:       value(fieldTitle),
		Description: value(fieldDescription),
		Category:    strings.ToLower(value(fieldCategory)),
		Date:        value(fieldDate),
		StartTime:   value(fieldStart),
		EndTime:     value(fieldEnd),
	}
	if in.Title == "" {
		return in, engine.ErrEmptyTitle
	}
	if in.Category != "" && !slices.Contains(model.Categories, in.Category) {
		return in, fmt.Errorf("unknown category %q", in.Category)
	}
	if p := value(fieldPriority); p != "" {
		if in.Priority = model.ParsePriority(p); in.Priority == model.PriorityNone {
			return in, fmt.Errorf("invalid priority %q: use low, medium or high", p)
		}
	}
	if in.Date != "" {
		if _, err := model.ParseDate(in.Date, time.Local); err != nil {
			return in, fmt.Errorf("invalid date format: use YYYY-MM-DD")
		}
	}
	for _, clock := range []string{in.StartTime, in.EndTime} {
		if clock == "" {
			continue
		}
		if _, _, err := model.ParseClock(clock); err != nil {
			return in, fmt.Errorf("invalid time %q: use HH:MM", clock)
		}
	}
	if timer := value(fieldTimer); timer != "" {
		in.TimerMinutes = model.ParseDuration(timer)
	}
	return in, nil
}

// submitForm processes the form data based on the current mode
func (m *Model) submitForm() {
	in, err := m.formInput()
	if err != nil {
		m.err = err
		return
	}

	switch m.mode {
	case AddMode:
		var t model.Task
		t, err = m.store.Add(in)
		if err == nil {
			m.status = fmt.Sprintf("Added %q", t.Title)
			if d, perr := model.ParseDate(t.Date, time.Local); perr == nil {
				m.viewDate = d
			}
		}
	case EditMode:
		var t model.Task
		t, err = m.store.Update(m.selectedID, in)
		if err == nil {
			m.status = fmt.Sprintf("Updated %q", t.Title)
		}
	}
	if err != nil {
		utils.Log("Error saving task: %v", err)
		m.err = err
		return
	}

	// Reset state
	m.err = nil
	m.mode = NormalMode
	m.selectedID = 0
	m.refresh()
}
