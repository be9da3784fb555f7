package keymaps

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestBuildKeyMapDefaults(t *testing.T) {
	km := BuildKeyMap(nil)

	assert.Equal(t, []string{"t"}, km.ToggleTimer.Keys())
	assert.Equal(t, []string{"+", "="}, km.AddMinute.Keys())
	assert.Equal(t, "+", km.AddMinute.Help().Key)
	assert.Equal(t, "reset timer", km.ResetTimer.Help().Desc)
}

func TestBuildKeyMapOverridesAreCaseInsensitive(t *testing.T) {
	km := BuildKeyMap(map[string]string{
		"togglecomplete": "c, space",
		"QuitApp":        "ctrl+q",
		"CancelTimer":    "",
	})

	assert.Equal(t, []string{"c", "space", " "}, km.ToggleComplete.Keys())
	assert.Equal(t, []string{"ctrl+q"}, km.QuitApp.Keys())
	assert.Equal(t, []string{"x"}, km.CancelTimer.Keys(), "empty override keeps the default")

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}
	assert.True(t, key.Matches(msg, km.ToggleComplete))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, km.ToggleComplete))
}

func TestDefaultMappingsCoverEveryAction(t *testing.T) {
	mappings := GetDefaultKeyMappings()
	assert.Len(t, mappings, len(KeyDefinitions))
	assert.Equal(t, "ctrl+b", mappings["ShowHelp"])
}
