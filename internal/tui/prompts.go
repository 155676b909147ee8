package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NoInteractiveEnv disables every interactive prompt when set. Tests use it
// to keep command runs deterministic.
const NoInteractiveEnv = "SHIPIT_TEST_NO_INTERACTIVE"

// ErrInteractiveDisabled is returned when a prompt would be shown while
// NoInteractiveEnv is set.
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (%s is set)", NoInteractiveEnv)

var errCanceled = errors.New("canceled")

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	frameStyle  = lipgloss.NewStyle().Margin(1, 0)
)

func guardInteractive() error {
	if os.Getenv(NoInteractiveEnv) != "" {
		return ErrInteractiveDisabled
	}
	return nil
}

func runModel(m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	return p.Run()
}

// textInputModel asks for a single line of text.
type textInputModel struct {
	textInput textinput.Model
	prompt    string
	done      bool
	err       error
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = errCanceled
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.prompt))
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("enter to submit, esc to cancel"))
	return frameStyle.Render(b.String())
}

// PromptTextInput asks the user for a line of text, pre-filled with
// defaultValue.
func PromptTextInput(prompt, defaultValue string) (string, error) {
	if err := guardInteractive(); err != nil {
		return "", err
	}

	ti := textinput.New()
	ti.SetValue(defaultValue)
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 72

	model, err := runModel(textInputModel{textInput: ti, prompt: prompt})
	if err != nil {
		return "", err
	}
	final, ok := model.(textInputModel)
	if !ok {
		return "", fmt.Errorf("prompt returned unexpected model %T", model)
	}
	if final.err != nil {
		return "", final.err
	}
	return final.textInput.Value(), nil
}

// confirmModel asks a yes/no question. Enter keeps the default answer.
type confirmModel struct {
	prompt string
	choice bool
	done   bool
	err    error
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit
	case tea.KeyCtrlC, tea.KeyEsc:
		m.err = errCanceled
		m.done = true
		return m, tea.Quit
	case tea.KeyRunes:
		switch strings.ToLower(string(key.Runes)) {
		case "y", "yes":
			m.choice = true
			m.done = true
			return m, tea.Quit
		case "n", "no":
			m.choice = false
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	answers := "[y/N]"
	if m.choice {
		answers = "[Y/n]"
	}
	body := fmt.Sprintf("%s %s\n\n%s",
		titleStyle.Render(m.prompt),
		answers,
		hintStyle.Render("y or n, enter keeps the default, esc cancels"))
	return frameStyle.Render(body)
}

// PromptConfirm asks a yes/no question and returns the answer.
func PromptConfirm(prompt string, defaultValue bool) (bool, error) {
	if err := guardInteractive(); err != nil {
		return false, err
	}

	model, err := runModel(confirmModel{prompt: prompt, choice: defaultValue})
	if err != nil {
		return false, err
	}
	final, ok := model.(confirmModel)
	if !ok {
		return false, fmt.Errorf("prompt returned unexpected model %T", model)
	}
	if final.err != nil {
		return false, final.err
	}
	return final.choice, nil
}

// SelectOption is one entry in a selection prompt.
type SelectOption struct {
	Label string
	Value string
}

// FilterSelectModel picks one option from a list that narrows as the user
// types.
type FilterSelectModel struct {
	Choices  []SelectOption
	Filtered []SelectOption
	Filter   string
	Cursor   int
	Selected string
	Done     bool
	Err      error
	Message  string
}

// Init implements tea.Model.
func (m FilterSelectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m FilterSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyEnter:
		if m.Cursor >= 0 && m.Cursor < len(m.Filtered) {
			m.Selected = m.Filtered[m.Cursor].Value
			m.Done = true
			return m, tea.Quit
		}
	case tea.KeyCtrlC, tea.KeyEsc:
		m.Err = errCanceled
		m.Done = true
		return m, tea.Quit
	case tea.KeyUp:
		if m.Cursor > 0 {
			m.Cursor--
		} else {
			m.Cursor = len(m.Filtered) - 1
		}
	case tea.KeyDown:
		if m.Cursor < len(m.Filtered)-1 {
			m.Cursor++
		} else {
			m.Cursor = 0
		}
	case tea.KeyBackspace:
		if runes := []rune(m.Filter); len(runes) > 0 {
			m.Filter = string(runes[:len(runes)-1])
			m.updateFiltered()
			m.clampCursor()
		}
	case tea.KeyRunes:
		m.Filter += string(key.Runes)
		m.updateFiltered()
		m.clampCursor()
	}
	return m, nil
}

func (m *FilterSelectModel) updateFiltered() {
	if m.Filter == "" {
		m.Filtered = m.Choices
		return
	}

	needle := strings.ToLower(m.Filter)
	filtered := make([]SelectOption, 0, len(m.Choices))
	for _, choice := range m.Choices {
		if strings.Contains(strings.ToLower(choice.Label), needle) ||
			strings.Contains(strings.ToLower(choice.Value), needle) {
			filtered = append(filtered, choice)
		}
	}
	m.Filtered = filtered
}

func (m *FilterSelectModel) clampCursor() {
	if m.Cursor >= len(m.Filtered) {
		m.Cursor = len(m.Filtered) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// View implements tea.Model.
func (m FilterSelectModel) View() string {
	if m.Done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.Message))
	b.WriteString("\n")
	if m.Filter != "" {
		b.WriteString("filter: ")
		b.WriteString(accentStyle.Render(m.Filter))
	}
	b.WriteString("\n\n")

	if len(m.Filtered) == 0 {
		b.WriteString(hintStyle.Render("no matches"))
		b.WriteString("\n")
	}
	for i, choice := range m.Filtered {
		if i == m.Cursor {
			b.WriteString(accentStyle.Render("> " + choice.Label))
		} else {
			b.WriteString("  " + choice.Label)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("type to filter, arrows to move, enter to pick, esc to cancel"))
	return frameStyle.Render(b.String())
}

// PromptFilterSelect shows a filterable list and returns the Value of the
// chosen option.
func PromptFilterSelect(message string, choices []SelectOption) (string, error) {
	if err := guardInteractive(); err != nil {
		return "", err
	}
	if len(choices) == 0 {
		return "", errors.New("nothing to choose from")
	}

	m := FilterSelectModel{Choices: choices, Message: message}
	m.updateFiltered()

	model, err := runModel(m)
	if err != nil {
		return "", err
	}
	final, ok := model.(FilterSelectModel)
	if !ok {
		return "", fmt.Errorf("prompt returned unexpected model %T", model)
	}
	if final.Err != nil {
		return "", final.Err
	}
	return final.Selected, nil
}
