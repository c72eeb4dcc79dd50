package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"audiomark/internal/ui/theme"
)

// PromptSubmitMsg is emitted when the user confirms the input.
type PromptSubmitMsg struct{ Input string }

// PromptCancelMsg is emitted when the user presses esc.
type PromptCancelMsg struct{}

var hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)

// Prompt is a single-line input overlay backed by bubbles/textinput.
type Prompt struct {
	input   textinput.Model
	title   string
	hint    string
	visible bool
	width   int
}

func NewPrompt() Prompt {
	ti := textinput.New()
	ti.Placeholder = "/path/to/recording.mp3"
	ti.CharLimit = 1024
	return Prompt{input: ti}
}

func (p Prompt) Visible() bool { return p.visible }

// Open shows the prompt with initial as the editable value.
func (p *Prompt) Open(title, hint, initial string) tea.Cmd {
	p.visible = true
	p.title = title
	p.hint = hint
	p.input.SetValue(initial)
	p.input.CursorEnd()
	return p.input.Focus()
}

func (p *Prompt) SetWidth(w int) {
	p.width = w
	p.input.Width = w - 8
}

func (p Prompt) Update(msg tea.Msg) (Prompt, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PromptCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PromptSubmitMsg{Input: val} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Prompt) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(p.title) + "\n")
	sb.WriteString("> " + p.input.View() + "\n")
	if p.hint != "" {
		sb.WriteString("\n" + hintStyle.Render(p.hint))
	}
	w := p.width
	if w < 20 {
		w = 64
	}
	return theme.Modal.Width(w - 2).Render(sb.String())
}
