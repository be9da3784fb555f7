package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"todotimer/pkg/engine"
	"todotimer/pkg/utils"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case DriverMsg:
		// The store already holds the ticked state; redraw so running
		// timers and expiration marks stay current.
		if engine.Event(msg).Changed {
			utils.Log("Driver %s pass changed tasks", engine.Event(msg).Kind)
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case NormalMode:
			if handled, cmd := m.handleNormalKey(msg); handled {
				return m, cmd
			}

		case AddMode, EditMode:
			switch msg.String() {
			case "esc":
				m.mode = NormalMode
				m.selectedID = 0
				m.err = nil
				return m, nil

			case "tab", "down":
				m.focusNextInput()
				return m, nil

			case "shift+tab", "up":
				m.focusPreviousInput()
				return m, nil

			case "enter":
				if m.activeInput == fieldCount-1 { // Submit on enter from the last field
					m.submitForm()
				} else {
					m.focusNextInput()
				}
				return m, nil
			}

			m.inputs[m.activeInput], cmd = m.inputs[m.activeInput].Update(msg)
			return m, cmd

		case SearchMode:
			switch msg.String() {
			case "esc":
				m.mode = NormalMode
				m.searchTerm = ""
				m.searchInput.Blur()
				m.refresh()
				return m, nil

			case "enter":
				m.searchTerm = m.searchInput.Value()
				utils.Log("Searching for: %s", m.searchTerm)
				m.mode = NormalMode
				m.searchInput.Blur()
				m.refresh()
				return m, nil
			}

			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd

		case DeleteConfirmMode:
			switch msg.String() {
			case "y", "Y":
				utils.Log("Deleting task ID: %d", m.selectedID)
				if err := m.store.Delete(m.selectedID); err != nil {
					utils.Log("Error deleting task: %v", err)
					m.err = err
				} else {
					m.status = "Task deleted"
				}
				m.mode = NormalMode
				m.selectedID = 0
				m.refresh()

			case "n", "N", "esc":
				m.mode = NormalMode
				m.selectedID = 0
			}
			return m, nil

		case HelpViewMode:
			if msg.String() == "esc" || key.Matches(msg, m.keyMap.ShowHelp) {
				m.mode = NormalMode
			} else if key.Matches(msg, m.keyMap.QuitApp) {
				return m, tea.Quit
			}
			return m, nil

		case PreviewMode:
			switch {
			case msg.String() == "esc" || key.Matches(msg, m.keyMap.ShowTaskPreview):
				m.mode = NormalMode
				m.selectedID = 0
			case key.Matches(msg, m.keyMap.ToggleTimer):
				_, m.err = m.store.ToggleTimer(m.selectedID)
				m.refresh()
			case key.Matches(msg, m.keyMap.ResetTimer):
				_, m.err = m.store.ResetTimer(m.selectedID)
				m.refresh()
			case key.Matches(msg, m.keyMap.AddMinute):
				_, m.err = m.store.AddMinute(m.selectedID)
				m.refresh()
			case key.Matches(msg, m.keyMap.CancelTimer):
				_, m.err = m.store.CancelTimer(m.selectedID)
				m.refresh()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - 4)
		m.table.SetHeight(max(3, msg.Height-10))
	}

	// Only update table in normal mode
	if m.mode == NormalMode {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleNormalKey runs the action bound to msg. Keys without an action fall
// through to the table for cursor movement.
func (m *Model) handleNormalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.QuitApp):
		return true, tea.Quit

	case key.Matches(msg, m.keyMap.ShowHelp):
		m.mode = HelpViewMode

	case key.Matches(msg, m.keyMap.JumpToToday):
		m.viewDate = m.store.Now()
		m.refresh()

	case key.Matches(msg, m.keyMap.PrevDay):
		m.viewDate = m.viewDate.AddDate(0, 0, -1)
		m.refresh()

	case key.Matches(msg, m.keyMap.NextDay):
		m.viewDate = m.viewDate.AddDate(0, 0, 1)
		m.refresh()

	case key.Matches(msg, m.keyMap.ToggleTab):
		m.showCompleted = !m.showCompleted
		m.refresh()

	case key.Matches(msg, m.keyMap.ToggleComplete):
		m.applyToSelected("toggle complete", m.store.ToggleCompleted)

	case key.Matches(msg, m.keyMap.ToggleTimer):
		m.applyToSelected("toggle timer", m.store.ToggleTimer)

	case key.Matches(msg, m.keyMap.ResetTimer):
		m.applyToSelected("reset timer", m.store.ResetTimer)

	case key.Matches(msg, m.keyMap.AddMinute):
		m.applyToSelected("add minute", m.store.AddMinute)

	case key.Matches(msg, m.keyMap.CancelTimer):
		m.applyToSelected("cancel timer", m.store.CancelTimer)

	case key.Matches(msg, m.keyMap.AddTask):
		m.mode = AddMode
		m.err = nil
		m.resetInputs()

	case key.Matches(msg, m.keyMap.EditTask):
		t, ok := m.selectedTask()
		if !ok {
			return true, nil
		}
		m.mode = EditMode
		m.err = nil
		m.selectedID = t.ID
		m.fillInputs(t)

	case key.Matches(msg, m.keyMap.DeleteTask):
		t, ok := m.selectedTask()
		if !ok {
			return true, nil
		}
		m.mode = DeleteConfirmMode
		m.selectedID = t.ID

	case key.Matches(msg, m.keyMap.ShowTaskPreview):
		t, ok := m.selectedTask()
		if !ok {
			return true, nil
		}
		m.mode = PreviewMode
		m.selectedID = t.ID

	case key.Matches(msg, m.keyMap.SearchTasks):
		m.mode = SearchMode
		m.searchInput.SetValue(m.searchTerm)
		m.searchInput.Focus()

	case key.Matches(msg, m.keyMap.ToggleSortBy):
		m.sortBy = (m.sortBy + 1) % sortByCount
		m.status = fmt.Sprintf("Sorted by %s", m.sortBy)
		m.refresh()

	case key.Matches(msg, m.keyMap.ToggleGroupBy):
		m.groupBy = (m.groupBy + 1) % groupByCount
		m.refresh()

	case key.Matches(msg, m.keyMap.ToggleSortOrder):
		if m.sortOrder == SortAsc {
			m.sortOrder = SortDesc
		} else {
			m.sortOrder = SortAsc
		}
		m.refresh()

	default:
		return false, nil
	}
	return true, nil
}
