package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func keyMsg(t tea.KeyType) tea.Msg {
	return tea.KeyMsg{Type: t}
}

func runeMsg(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmModel(t *testing.T) {
	t.Run("y selects yes", func(t *testing.T) {
		m := confirmModel{prompt: "Merge?"}

		updated, _ := m.Update(runeMsg("y"))
		final := updated.(confirmModel)

		require.True(t, final.done)
		require.True(t, final.choice)
	})

	t.Run("n selects no", func(t *testing.T) {
		m := confirmModel{prompt: "Merge?", choice: true}

		updated, _ := m.Update(runeMsg("n"))
		final := updated.(confirmModel)

		require.True(t, final.done)
		require.False(t, final.choice)
	})

	t.Run("enter keeps the default", func(t *testing.T) {
		m := confirmModel{prompt: "Merge?", choice: true}

		updated, _ := m.Update(keyMsg(tea.KeyEnter))
		final := updated.(confirmModel)

		require.True(t, final.done)
		require.True(t, final.choice)
	})

	t.Run("escape cancels", func(t *testing.T) {
		m := confirmModel{prompt: "Merge?"}

		updated, _ := m.Update(keyMsg(tea.KeyEsc))
		final := updated.(confirmModel)

		require.True(t, final.done)
		require.Error(t, final.err)
	})
}

func TestFilterSelectModel(t *testing.T) {
	choices := []SelectOption{
		{Label: "#1 open Login broken", Value: "1"},
		{Label: "#2 open Signup broken", Value: "2"},
		{Label: "#3 open Slow dashboard", Value: "3"},
	}

	t.Run("typing narrows the choices", func(t *testing.T) {
		m := FilterSelectModel{Choices: choices}
		m.updateFiltered()

		updated, _ := m.Update(runeMsg("broken"))
		final := updated.(FilterSelectModel)

		require.Len(t, final.Filtered, 2)
	})

	t.Run("backspace widens the filter again", func(t *testing.T) {
		m := FilterSelectModel{Choices: choices, Filter: "x"}
		m.updateFiltered()
		require.Empty(t, m.Filtered)

		updated, _ := m.Update(keyMsg(tea.KeyBackspace))
		final := updated.(FilterSelectModel)

		require.Len(t, final.Filtered, 3)
	})

	t.Run("enter selects from the filtered view", func(t *testing.T) {
		m := FilterSelectModel{Choices: choices}
		m.updateFiltered()

		updated, _ := m.Update(runeMsg("dashboard"))
		updated, _ = updated.(FilterSelectModel).Update(keyMsg(tea.KeyEnter))
		final := updated.(FilterSelectModel)

		require.True(t, final.Done)
		require.Equal(t, "3", final.Selected)
	})

	t.Run("enter does nothing while nothing matches", func(t *testing.T) {
		m := FilterSelectModel{Choices: choices, Filter: "zzz"}
		m.updateFiltered()

		updated, _ := m.Update(keyMsg(tea.KeyEnter))
		final := updated.(FilterSelectModel)

		require.False(t, final.Done)
		require.Empty(t, final.Selected)
	})

	t.Run("cursor wraps at both ends", func(t *testing.T) {
		m := FilterSelectModel{Choices: choices}
		m.updateFiltered()

		updated, _ := m.Update(keyMsg(tea.KeyUp))
		require.Equal(t, 2, updated.(FilterSelectModel).Cursor)

		updated, _ = updated.(FilterSelectModel).Update(keyMsg(tea.KeyDown))
		require.Equal(t, 0, updated.(FilterSelectModel).Cursor)
	})
}

func TestPromptsRespectInteractiveEscapeHatch(t *testing.T) {
	t.Setenv("SHIPIT_TEST_NO_INTERACTIVE", "1")

	_, err := PromptConfirm("Merge?", false)
	require.ErrorIs(t, err, ErrInteractiveDisabled)

	_, err = PromptTextInput("Title", "")
	require.ErrorIs(t, err, ErrInteractiveDisabled)

	_, err = PromptFilterSelect("Pick", []SelectOption{{Label: "a", Value: "a"}})
	require.ErrorIs(t, err, ErrInteractiveDisabled)
}
