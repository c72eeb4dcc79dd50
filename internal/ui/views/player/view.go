package player

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	playbackdto "audiomark/internal/modules/playback/dto"
	sessiondto "audiomark/internal/modules/session/dto"
	"audiomark/internal/platform/timecode"
	"audiomark/internal/ui/theme"
)

// Model renders the open document: transport line, progress bar and either
// the bookmark list or a rendered note preview in a scrollable viewport.
type Model struct {
	viewport    viewport.Model
	progress    progress.Model
	renderer    *glamour.TermRenderer
	session     sessiondto.StatusOutput
	playback    playbackdto.StatusOutput
	preview     string
	showPreview bool
	width       int
	height      int
}

func New() Model {
	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)
	return Model{
		viewport: viewport.New(0, 0),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		renderer: r,
	}
}

func (m *Model) SetSession(s sessiondto.StatusOutput) {
	m.session = s
	if !m.showPreview {
		m.viewport.SetContent(m.renderBookmarks())
	}
}

func (m *Model) SetPlayback(p playbackdto.StatusOutput) {
	m.playback = p
}

// ShowPreview switches the viewport to the rendered note.
func (m *Model) ShowPreview(note sessiondto.NoteOutput) {
	md := fmt.Sprintf("# %s\n\n```text\n%s```\n\n_%d bookmark(s), %s_\n", note.Subject, note.Body, note.Count, note.MIME)
	m.preview = md
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(md); err == nil {
			m.preview = rendered
		}
	}
	m.showPreview = true
	m.viewport.SetContent(m.preview)
	m.viewport.GotoTop()
}

func (m *Model) HidePreview() {
	m.showPreview = false
	m.viewport.SetContent(m.renderBookmarks())
}

func (m Model) PreviewVisible() bool { return m.showPreview }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if m.showPreview {
			m.viewport.SetContent(m.preview)
		} else {
			m.viewport.SetContent(m.renderBookmarks())
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := m.renderHeader()
	transport := m.renderTransport()
	return lipgloss.JoinVertical(lipgloss.Left, header, transport, "", theme.Pane.Width(max(m.width-2, 10)).Render(m.viewport.View()))
}

func (m *Model) resize() {
	m.progress.Width = max(m.width-30, 10)
	m.viewport.Width = max(m.width-6, 10)
	// header, transport, spacer and pane border
	m.viewport.Height = max(m.height-6, 1)
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.viewport.Width),
	); err == nil {
		m.renderer = r
	}
}

func (m Model) renderHeader() string {
	if m.session.DocumentRef == "" {
		return theme.Title.Render("No document") + theme.Muted.Render("  press o to open a recording")
	}
	parts := []string{theme.Title.Render(m.session.DisplayName)}
	if m.session.Unsaved {
		parts = append(parts, theme.Unsaved.Render("● unsaved"))
	} else if len(m.session.Bookmarks) > 0 {
		parts = append(parts, theme.Saved.Render("✓ exported"))
	}
	if !m.session.PlaybackAttached {
		parts = append(parts, theme.Critical.Render("file unavailable"))
	}
	parts = append(parts, theme.Muted.Render("→ "+m.session.ShareTarget))
	return strings.Join(parts, "  ")
}

func (m Model) renderTransport() string {
	p := m.playback
	icon := "▶"
	if p.Playing {
		icon = "⏸"
	}
	pct := 0.0
	if p.DurationMs > 0 {
		pct = float64(p.PositionMs) / float64(p.DurationMs)
	}
	total := "--:--:--"
	if p.DurationMs > 0 {
		total = timecode.Format(p.DurationMs)
	}
	rate := p.Rate
	if rate == 0 {
		rate = 1
	}
	return fmt.Sprintf("%s %s %s / %s  %.2fx", icon, m.progress.ViewAs(pct), timecode.Format(p.PositionMs), total, rate)
}

func (m Model) renderBookmarks() string {
	if len(m.session.Bookmarks) == 0 {
		return theme.Muted.Render("No bookmarks yet. Press b while listening.")
	}
	var sb strings.Builder
	for _, b := range m.session.Bookmarks {
		mark := theme.Unsaved.Render("•")
		if b.Exported {
			mark = theme.Saved.Render("✓")
		}
		fmt.Fprintf(&sb, "%3d. %s %s\n", b.Index+1, b.Time, mark)
	}
	return strings.TrimRight(sb.String(), "\n")
}
