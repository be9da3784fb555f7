package ui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todotimer/pkg/config"
	"todotimer/pkg/engine"
	"todotimer/pkg/keymaps"
	"todotimer/pkg/model"
)

// InputMode represents the current input mode
type InputMode int

const (
	NormalMode InputMode = iota
	AddMode
	EditMode
	DeleteConfirmMode
	SearchMode   // Mode for searching tasks
	HelpViewMode // Mode for displaying help
	PreviewMode  // Mode for showing a single task
)

// Form fields in tab order
const (
	fieldTitle = iota
	fieldDescription
	fieldCategory
	fieldPriority
	fieldDate
	fieldStart
	fieldEnd
	fieldTimer
	fieldCount
)

// DriverMsg carries an engine driver event into the program loop
type DriverMsg engine.Event

// Model represents the application state
type Model struct {
	table         table.Model
	rowIDs        []int64 // task id per table row, 0 for group headers
	store         *engine.Store
	width, height int
	err           error
	status        string

	// Configuration
	config config.Config
	styles config.Styles
	keyMap keymaps.KeyMap

	// View state
	viewDate      time.Time
	showCompleted bool
	searchTerm    string

	// Form state
	mode        InputMode
	inputs      []textinput.Model
	searchInput textinput.Model
	activeInput int

	// Edit/delete/preview target
	selectedID int64

	// Sorting and grouping state
	sortBy    SortBy
	groupBy   GroupBy
	sortOrder SortOrder
}

// NewModel creates a new UI model over the task store
func NewModel(store *engine.Store, cfg config.Config, styles config.Styles) Model {
	columns := []table.Column{
		{Title: "", Width: 3},
		{Title: "Time", Width: 11},
		{Title: "Task", Width: 32},
		{Title: "Category", Width: 10},
		{Title: "Timer", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.BorderColor)).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(styles.SelectedTextColor)).
		Background(lipgloss.Color(styles.SelectedBgColor)).
		Bold(true)
	t.SetStyles(s)

	searchInput := textinput.New()
	searchInput.Placeholder = "Search title or description"
	searchInput.Width = 40

	m := Model{
		table:       t,
		store:       store,
		config:      cfg,
		styles:      styles,
		keyMap:      keymaps.BuildKeyMap(cfg.KeyMap),
		mode:        NormalMode,
		inputs:      newFormInputs(),
		searchInput: searchInput,
		viewDate:    store.Now(),
	}

	m.refresh()
	return m
}

func newFormInputs() []textinput.Model {
	placeholders := [fieldCount]string{
		fieldTitle:       "Title",
		fieldDescription: "Description",
		fieldCategory:    "Category (meeting, work, personal, ...)",
		fieldPriority:    "Priority (low, medium, high, optional)",
		fieldDate:        "Date (YYYY-MM-DD)",
		fieldStart:       "Start (HH:MM)",
		fieldEnd:         "End (HH:MM)",
		fieldTimer:       "Timer minutes (1-60, empty for none)",
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Width = 40
		inputs[i] = in
	}
	return inputs
}

// Init initializes the model (required by Bubble Tea Model interface)
func (m Model) Init() tea.Cmd {
	return nil
}

// resetInputs fills the form with the defaults for a new task on the viewed day
func (m *Model) resetInputs() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.inputs[fieldCategory].SetValue(model.DefaultCategory)
	m.inputs[fieldDate].SetValue(model.FormatDate(m.viewDate))
	m.inputs[fieldStart].SetValue(engine.DefaultStartTime)
	m.inputs[fieldEnd].SetValue(engine.DefaultEndTime)
	if m.config.DefaultTimerMinutes > 0 {
		m.inputs[fieldTimer].SetValue(strconv.Itoa(model.ClampDuration(m.config.DefaultTimerMinutes)))
	}
	m.focusInput(fieldTitle)
}

// fillInputs loads an existing task into the form
func (m *Model) fillInputs(t model.Task) {
	m.resetInputs()
	m.inputs[fieldTitle].SetValue(t.Title)
	m.inputs[fieldDescription].SetValue(t.Description)
	m.inputs[fieldCategory].SetValue(t.Category)
	m.inputs[fieldPriority].SetValue(string(t.Priority))
	m.inputs[fieldDate].SetValue(t.Date)
	m.inputs[fieldStart].SetValue(t.StartTime)
	m.inputs[fieldEnd].SetValue(t.EndTime)
	m.inputs[fieldTimer].SetValue("")
	if t.Timer != nil {
		m.inputs[fieldTimer].SetValue(strconv.Itoa(t.Timer.Duration))
	}
}
