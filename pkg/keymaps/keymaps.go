package keymaps

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type KeyDefinition struct {
	DefaultKey string
	Help       string
}

var KeyDefinitions = map[string]KeyDefinition{
	"ShowHelp":        {"ctrl+b", "show/hide commands"},
	"QuitApp":         {"q", "quit"},
	"ToggleComplete":  {"space", "mark task done/undone"},
	"AddTask":         {"a", "add task"},
	"EditTask":        {"e", "edit task"},
	"DeleteTask":      {"d", "delete task"},
	"ToggleTab":       {"tab", "switch between active and completed tasks"},
	"SearchTasks":     {"/,ctrl+f", "search tasks"},
	"PrevDay":         {"left,ctrl+left", "previous day"},
	"NextDay":         {"right,ctrl+right", "next day"},
	"JumpToToday":     {"h", "jump to today"},
	"ToggleTimer":     {"t", "start/pause timer"},
	"ResetTimer":      {"r", "reset timer"},
	"AddMinute":       {"+,=", "add one minute to timer"},
	"CancelTimer":     {"x", "remove timer"},
	"ToggleSortBy":    {"s", "cycle sort by"},
	"ToggleGroupBy":   {"g", "toggle group by category"},
	"ToggleSortOrder": {"o", "toggle sort order"},
	"ShowTaskPreview": {"enter", "show task details"},
}

type KeyMap struct {
	ShowHelp        key.Binding
	QuitApp         key.Binding
	ToggleComplete  key.Binding
	AddTask         key.Binding
	EditTask        key.Binding
	DeleteTask      key.Binding
	ToggleTab       key.Binding
	SearchTasks     key.Binding
	PrevDay         key.Binding
	NextDay         key.Binding
	JumpToToday     key.Binding
	ToggleTimer     key.Binding
	ResetTimer      key.Binding
	AddMinute       key.Binding
	CancelTimer     key.Binding
	ToggleSortBy    key.Binding
	ToggleGroupBy   key.Binding
	ToggleSortOrder key.Binding
	ShowTaskPreview key.Binding
}

// BuildKeyMap builds the bindings, applying overrides keyed by action name.
// Action names are matched case-insensitively since viper lowercases map keys.
func BuildKeyMap(configOverrides map[string]string) KeyMap {
	overrides := make(map[string]string, len(configOverrides))
	for action, keys := range configOverrides {
		overrides[strings.ToLower(action)] = keys
	}

	km := KeyMap{}
	for action, def := range KeyDefinitions {
		keyStr := def.DefaultKey
		if override, exists := overrides[strings.ToLower(action)]; exists && override != "" {
			keyStr = override
		}
		binding := parseKeyBinding(keyStr, def.DefaultKey, def.Help)

		switch action {
		case "ShowHelp":
			km.ShowHelp = binding
		case "QuitApp":
			km.QuitApp = binding
		case "ToggleComplete":
			km.ToggleComplete = binding
		case "AddTask":
			km.AddTask = binding
		case "EditTask":
			km.EditTask = binding
		case "DeleteTask":
			km.DeleteTask = binding
		case "ToggleTab":
			km.ToggleTab = binding
		case "SearchTasks":
			km.SearchTasks = binding
		case "PrevDay":
			km.PrevDay = binding
		case "NextDay":
			km.NextDay = binding
		case "JumpToToday":
			km.JumpToToday = binding
		case "ToggleTimer":
			km.ToggleTimer = binding
		case "ResetTimer":
			km.ResetTimer = binding
		case "AddMinute":
			km.AddMinute = binding
		case "CancelTimer":
			km.CancelTimer = binding
		case "ToggleSortBy":
			km.ToggleSortBy = binding
		case "ToggleGroupBy":
			km.ToggleGroupBy = binding
		case "ToggleSortOrder":
			km.ToggleSortOrder = binding
		case "ShowTaskPreview":
			km.ShowTaskPreview = binding
		}
	}
	return km
}

func parseKeyBinding(keyStr, defaultKey, helpText string) key.Binding {
	if keyStr == "" {
		keyStr = defaultKey
	}

	// Handle multiple keys separated by commas
	var keys []string
	for _, k := range strings.Split(keyStr, ",") {
		keys = append(keys, strings.TrimSpace(k))
	}
	// bubbletea reports the space bar as " "
	for _, k := range keys {
		if k == "space" {
			keys = append(keys, " ")
			break
		}
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], helpText),
	)
}

// GetDefaultKeyMappings returns the default key mappings for configuration
func GetDefaultKeyMappings() map[string]string {
	keyMappings := make(map[string]string)
	for action, def := range KeyDefinitions {
		keyMappings[action] = def.DefaultKey
	}
	return keyMappings
}
