package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"todotimer/pkg/engine"
	"todotimer/pkg/model"
)

var formLabels = [fieldCount]string{
	fieldTitle:       "Title:",
	fieldDescription: "Description:",
	fieldCategory:    "Category:",
	fieldPriority:    "Priority:",
	fieldDate:        "Date (YYYY-MM-DD):",
	fieldStart:       "Start (HH:MM):",
	fieldEnd:         "End (HH:MM):",
	fieldTimer:       "Timer (minutes):",
}

func (m Model) header(text, bg string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(bg)).
		Padding(0, 1).
		Render(text)
}

// View renders the UI based on the current mode
func (m Model) View() string {
	var sb strings.Builder

	switch m.mode {
	case NormalMode:
		sb.WriteString(m.header(" Todo Timer ", m.styles.AccentColor))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderDayBar())
		sb.WriteString("\n\n")
		sb.WriteString(m.table.View())
		sb.WriteString("\n")
		sb.WriteString(m.renderViewInfo())
		sb.WriteString("\n")

	case AddMode:
		sb.WriteString(m.header(" Add New Task ", m.styles.AccentColor))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm())

	case EditMode:
		sb.WriteString(m.header(" Edit Task ", m.styles.AccentColor))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm())

	case DeleteConfirmMode:
		sb.WriteString(m.header(" Delete Task ", m.styles.ErrorColor))
		sb.WriteString("\n\n")

		if t, err := m.store.Task(m.selectedID); err == nil {
			sb.WriteString("Are you sure you want to delete this task?\n\n")
			sb.WriteString(fmt.Sprintf("Title: %s\n", t.Title))
			sb.WriteString(fmt.Sprintf("Description: %s\n", t.Description))
			sb.WriteString("\n")
			sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Press Y to confirm, N to cancel"))
		}

	case SearchMode:
		sb.WriteString(m.header(" Search Tasks ", m.styles.AccentColor))
		sb.WriteString("\n\n")
		sb.WriteString("Enter search term to find tasks:")
		sb.WriteString("\n\n")
		sb.WriteString(m.searchInput.View())

	case PreviewMode:
		sb.WriteString(m.header(" Task Details ", m.styles.AccentColor))
		sb.WriteString("\n\n")
		if t, err := m.store.Task(m.selectedID); err == nil {
			sb.WriteString(m.renderPreview(t))
		}

	case HelpViewMode:
		sb.WriteString(m.renderHelp())
	}

	if m.err != nil {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.ErrorColor)).
			Render(fmt.Sprintf("Error: %v", m.err)))
	} else if m.status != "" && m.mode == NormalMode {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.BorderColor)).
			Render(m.status))
	}

	sb.WriteString("\n")
	sb.WriteString(m.helpBar())

	return sb.String()
}

// renderDayBar shows the viewed date and the Active/Completed tabs
func (m Model) renderDayBar() string {
	dateStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.styles.NormalTextColor))
	activeTab := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(m.styles.SelectedBgColor)).
		Padding(0, 1)
	idleTab := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.BorderColor)).
		Padding(0, 1)

	var active, completed int
	day := model.FormatDate(m.viewDate)
	for _, t := range m.store.Tasks() {
		if t.Date != day {
			continue
		}
		if t.Completed {
			completed++
		} else {
			active++
		}
	}

	activeLabel := fmt.Sprintf("Active (%d)", active)
	completedLabel := fmt.Sprintf("Completed (%d)", completed)
	if m.showCompleted {
		activeLabel, completedLabel = idleTab.Render(activeLabel), activeTab.Render(completedLabel)
	} else {
		activeLabel, completedLabel = activeTab.Render(activeLabel), idleTab.Render(completedLabel)
	}

	date := dateStyle.Render(fmt.Sprintf("< %s >", formatDateForDisplay(m.viewDate, m.store.Now())))
	return lipgloss.JoinHorizontal(lipgloss.Top, date, "  ", activeLabel, completedLabel)
}

func (m Model) renderViewInfo() string {
	var parts []string
	if m.searchTerm != "" {
		parts = append(parts, fmt.Sprintf("search filter: %s", m.searchTerm))
	}
	if m.sortBy != SortByStartTime || m.sortOrder != SortAsc || m.groupBy != GroupByNone {
		info := fmt.Sprintf("sorted by %s (%s)", m.sortBy, m.sortOrder)
		if m.groupBy == GroupByCategory {
			info += ", grouped by category"
		}
		parts = append(parts, info)
	}
	if t, ok := m.selectedTask(); ok && t.IsExpired && !t.Completed {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.ExpiredColor)).
			Render("selected task has expired"))
	}
	if len(parts) == 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor)).
		Render(strings.Join(parts, " | "))
}

// timerBadge renders the timer state in its color
func (m Model) timerBadge(t model.Task) string {
	color := m.styles.PausedColor
	switch {
	case t.Completed:
		color = m.styles.DoneColor
	case t.TimerState() == model.TimerRunning:
		color = m.styles.RunningColor
	case t.TimerState() == model.TimerExpired:
		color = m.styles.ExpiredColor
	}
	text := fmt.Sprintf("%s  [%s]", formatRemaining(engine.RemainingAt(t, m.store.Now())), timerLabel(t))
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(text)
}

func (m Model) renderPreview(t model.Task) string {
	var sb strings.Builder
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.AccentColor)).Bold(true)
	row := func(label, value string) {
		sb.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(label), value))
	}

	row("Title:", t.Title)
	row("Description:", t.Description)
	row("Category:", lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.CategoryColor)).
		Render(model.CategoryLabel(t.Category)))
	if t.Priority != model.PriorityNone {
		row("Priority:", string(t.Priority))
	}
	row("Date:", t.Date)
	row("Time:", fmt.Sprintf("%s - %s", t.StartTime, t.EndTime))

	status := "active"
	switch {
	case t.Completed:
		status = "completed"
	case t.IsExpired:
		status = lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.ExpiredColor)).Render("expired")
	}
	row("Status:", status)

	if t.HasTimer() {
		row("Timer:", fmt.Sprintf("%d min, %s", t.Timer.Duration, t.TimerState()))
		row("Remaining:", m.timerBadge(t))
	}
	return sb.String()
}

func (m Model) renderHelp() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Available Commands"))
	sb.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor))

	addCommand := func(binding key.Binding) {
		sb.WriteString(fmt.Sprintf("%s: %s\n",
			descStyle.Render(binding.Help().Desc),
			keyStyle.Render(binding.Help().Key)))
	}
	section := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
		sb.WriteString("\n\n")
	}

	addCommand(m.keyMap.QuitApp)
	addCommand(m.keyMap.ShowHelp)
	addCommand(m.keyMap.ToggleComplete)
	addCommand(m.keyMap.AddTask)
	addCommand(m.keyMap.EditTask)
	addCommand(m.keyMap.DeleteTask)
	addCommand(m.keyMap.ShowTaskPreview)
	addCommand(m.keyMap.ToggleTab)
	addCommand(m.keyMap.SearchTasks)
	addCommand(m.keyMap.ToggleSortBy)
	addCommand(m.keyMap.ToggleGroupBy)
	addCommand(m.keyMap.ToggleSortOrder)

	section("Timer Commands")
	addCommand(m.keyMap.ToggleTimer)
	addCommand(m.keyMap.ResetTimer)
	addCommand(m.keyMap.AddMinute)
	addCommand(m.keyMap.CancelTimer)

	section("Navigation Commands")
	addCommand(m.keyMap.PrevDay)
	addCommand(m.keyMap.NextDay)
	addCommand(m.keyMap.JumpToToday)

	return sb.String()
}

// helpBar renders a sleek status bar with available actions
func (m Model) helpBar() string {
	var actions []string

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor))
	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.BorderColor))

	separator := separatorStyle.Render(" • ")

	addAction := func(k, desc string) {
		actions = append(actions, fmt.Sprintf("%s %s", keyStyle.Render(k), descStyle.Render(desc)))
	}
	addBinding := func(b key.Binding, desc string) {
		addAction(b.Help().Key, desc)
	}

	switch m.mode {
	case NormalMode:
		addBinding(m.keyMap.AddTask, "add")
		addBinding(m.keyMap.EditTask, "edit")
		addBinding(m.keyMap.DeleteTask, "del")
		addBinding(m.keyMap.ToggleComplete, "done")
		addBinding(m.keyMap.ToggleTimer, "timer")
		addBinding(m.keyMap.ToggleTab, "tab")
		addAction("←/→", "day")
		addBinding(m.keyMap.ShowHelp, "help")
		addBinding(m.keyMap.QuitApp, "quit")

	case AddMode, EditMode:
		addAction("tab", "next field")
		addAction("enter", "save")
		addAction("esc", "cancel")

	case DeleteConfirmMode:
		addAction("y", "confirm")
		addAction("n", "cancel")

	case SearchMode:
		addAction("enter", "search")
		addAction("esc", "cancel")

	case PreviewMode:
		addBinding(m.keyMap.ToggleTimer, "timer")
		addBinding(m.keyMap.ResetTimer, "reset")
		addBinding(m.keyMap.AddMinute, "+1 min")
		addBinding(m.keyMap.CancelTimer, "remove timer")
		addAction("esc", "back")

	case HelpViewMode:
		addAction(m.keyMap.ShowHelp.Help().Key+"/esc", "back")
		addBinding(m.keyMap.QuitApp, "quit")
	}

	return strings.Join(actions, separator)
}

// renderForm renders the input form for adding/editing tasks
func (m Model) renderForm() string {
	var sb strings.Builder
	for i, in := range m.inputs {
		sb.WriteString(formLabels[i])
		sb.WriteString("\n")
		sb.WriteString(in.View())
		if i < len(m.inputs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
