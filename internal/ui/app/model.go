package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	playbackdto "audiomark/internal/modules/playback/dto"
	sessiondto "audiomark/internal/modules/session/dto"
	sharedto "audiomark/internal/modules/share/dto"
	apperrors "audiomark/internal/platform/errors"
	"audiomark/internal/platform/notify"
	"audiomark/internal/ui/components"
	"audiomark/internal/ui/theme"
	playerview "audiomark/internal/ui/views/player"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type sessionPort interface {
	Restore(ctx context.Context, mode string) (sessiondto.RestoreOutput, error)
	Open(ctx context.Context, ref string) (sessiondto.OpenOutput, error)
	Resolve(ctx context.Context, choice string) (sessiondto.ResolveOutput, error)
	Mark(ctx context.Context) (sessiondto.RecordOutput, error)
	Export(ctx context.Context) (sessiondto.ExportOutput, error)
	Preview(ctx context.Context) (sessiondto.NoteOutput, error)
	Discard(ctx context.Context) error
	Persist(ctx context.Context) error
	Status(ctx context.Context) (sessiondto.StatusOutput, error)
	CycleShareTarget(ctx context.Context, names []string) (string, error)
	Watch(ctx context.Context) (<-chan sessiondto.DocumentEvent, error)
}

type playbackPort interface {
	Toggle(ctx context.Context) (playbackdto.StatusOutput, error)
	Pause(ctx context.Context) (playbackdto.StatusOutput, error)
	SeekBy(ctx context.Context, deltaMs int) (playbackdto.StatusOutput, error)
	CycleSpeed(ctx context.Context) (playbackdto.StatusOutput, error)
	Status(ctx context.Context) (playbackdto.StatusOutput, error)
}

type targetPort interface {
	ListTargets(ctx context.Context) ([]sharedto.TargetInfo, error)
}

// Options carries the tunables read from config.
type Options struct {
	InitialRef   string
	PollInterval time.Duration
	SeekStepMs   int
	Notifier     notify.Notifier
}

// ─── messages ────────────────────────────────────────────────────────────────

type restoredMsg struct {
	mode string
	out  sessiondto.RestoreOutput
	err  error
}

type openedMsg struct {
	out sessiondto.OpenOutput
	err error
}

type resolvedMsg struct {
	out sessiondto.ResolveOutput
	err error
}

type markedMsg struct {
	out sessiondto.RecordOutput
	err error
}

type exportedMsg struct {
	out sessiondto.ExportOutput
	err error
}

type previewMsg struct {
	note sessiondto.NoteOutput
	err  error
}

type discardedMsg struct{ err error }

type targetMsg struct {
	name string
	err  error
}

type playbackMsg struct {
	status playbackdto.StatusOutput
	err    error
}

type refreshedMsg struct {
	session  sessiondto.StatusOutput
	playback playbackdto.StatusOutput
	err      error
}

// tickMsg belongs to one tick chain; a chain whose gen is stale stops.
type tickMsg struct{ gen int }

type polledMsg struct {
	gen    int
	status playbackdto.StatusOutput
	err    error
}

type watchStartedMsg struct {
	events <-chan sessiondto.DocumentEvent
	cancel context.CancelFunc
}

type documentEventMsg struct {
	event sessiondto.DocumentEvent
	ok    bool
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Play     key.Binding
	Mark     key.Binding
	Speed    key.Binding
	Back     key.Binding
	Forward  key.Binding
	Export   key.Binding
	Open     key.Binding
	Target   key.Binding
	Preview  key.Binding
	Discard  key.Binding
	Help     key.Binding
	Quit     key.Binding
	SaveNow  key.Binding
	DropNow  key.Binding
	KeepEdit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Play:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Mark:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bookmark")),
		Speed:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "speed")),
		Back:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "back")),
		Forward:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "forward")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Target:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "share target")),
		Preview:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Discard:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "discard")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		SaveNow:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "save first")),
		DropNow:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "discard")),
		KeepEdit: key.NewBinding(key.WithKeys("c", "esc"), key.WithHelp("c", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Mark, k.Export, k.Open, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Speed, k.Back, k.Forward},
		{k.Mark, k.Export, k.Preview, k.Discard},
		{k.Open, k.Target, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type modalKind int

const (
	restoreFull     = "full"
	restoreMetadata = "metadata"
)

const (
	modalNone modalKind = iota
	modalPending
	modalUnavailable
)

// Model is the root Bubble Tea model. All business logic is delegated to the
// ports; rendering of the document is delegated to the player view.
type Model struct {
	session  sessionPort
	playback playbackPort
	targets  targetPort
	notifier notify.Notifier
	opts     Options

	player   playerview.Model
	prompt   components.Prompt
	keys     keyMap
	help     help.Model
	showHelp bool
	modal    modalKind

	state  sessiondto.StatusOutput
	status string
	// detached is set while a metadata-only restore left the saved
	// document without playback.
	detached bool
	tickGen  int
	ticking  bool

	watchCancel context.CancelFunc
	watchEvents <-chan sessiondto.DocumentEvent
	width       int
	height      int
}

func NewModel(session sessionPort, playback playbackPort, targets targetPort, opts Options) Model {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 100 * time.Millisecond
	}
	if opts.SeekStepMs <= 0 {
		opts.SeekStepMs = 5000
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return Model{
		session:  session,
		playback: playback,
		targets:  targets,
		notifier: notifier,
		opts:     opts,
		player:   playerview.New(),
		prompt:   components.NewPrompt(),
		keys:     defaultKeys(),
		help:     help.New(),
		status:   "ready",
	}
}

// Init restores only the saved metadata when a document was handed in, so a
// saved document that is about to be replaced is never loaded.
func (m Model) Init() tea.Cmd {
	if m.opts.InitialRef != "" {
		return m.restoreCmd(restoreMetadata)
	}
	return m.restoreCmd(restoreFull)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The prompt owns the keyboard while open; async results still land.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.prompt.Visible() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.prompt.SetWidth(min(m.width-4, 80))
		m.player, _ = m.player.Update(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 3})
		return m, nil

	case restoredMsg:
		var cmds []tea.Cmd
		switch {
		case msg.err != nil:
			m.status = "restore failed: " + msg.err.Error()
		case msg.out.Restored && msg.mode == restoreMetadata:
			m.detached = true
			m.status = fmt.Sprintf("restored %s (%d bookmarks)", msg.out.DisplayName, msg.out.Count)
		case msg.out.Restored:
			m.detached = false
			m.status = fmt.Sprintf("restored %s (%d bookmarks)", msg.out.DisplayName, msg.out.Count)
			if msg.out.PlaybackUnavailable {
				m.modal = modalUnavailable
			} else {
				cmds = append(cmds, m.startWatch())
			}
		}
		if msg.mode == restoreMetadata && m.opts.InitialRef != "" {
			cmds = append(cmds, m.openCmd(m.opts.InitialRef))
		}
		cmds = append(cmds, m.refreshCmd())
		return m, tea.Batch(cmds...)

	case openedMsg:
		if msg.err != nil {
			m.status = "open failed: " + describe(msg.err)
			return m, nil
		}
		return m.afterOpen(msg.out)

	case resolvedMsg:
		m.modal = modalNone
		if msg.err != nil {
			m.status = "switch failed: " + describe(msg.err)
			return m, m.refreshCmd()
		}
		if msg.out.ExportErr != nil {
			m.notice("Export failed", "switched anyway: "+describe(msg.out.ExportErr))
		} else if msg.out.Export != nil {
			m.status = fmt.Sprintf("exported %d bookmarks via %s", msg.out.Export.Note.Count, msg.out.Export.Target)
		}
		if msg.out.Choice == "cancel" {
			m.status = "switch cancelled"
			if m.detached {
				return m, m.restoreCmd(restoreFull)
			}
			return m, m.refreshCmd()
		}
		return m.afterOpen(msg.out.Open)

	case markedMsg:
		if msg.err != nil {
			m.status = "bookmark failed: " + describe(msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("bookmark %d at %s", msg.out.Bookmark.Index+1, msg.out.Bookmark.Time)
		return m, m.refreshCmd()

	case exportedMsg:
		if msg.err != nil {
			m.notice("Export failed", describe(msg.err))
			return m, m.refreshCmd()
		}
		m.modal = modalNone
		m.status = fmt.Sprintf("exported %d bookmarks via %s (%s)", msg.out.Note.Count, msg.out.Target, msg.out.Route)
		return m, m.refreshCmd()

	case previewMsg:
		if msg.err != nil {
			m.status = "preview: " + describe(msg.err)
			return m, nil
		}
		m.player.ShowPreview(msg.note)
		m.status = "preview (p or esc to close)"
		return m, nil

	case discardedMsg:
		if msg.err != nil {
			m.status = "discard failed: " + describe(msg.err)
			return m, nil
		}
		m.modal = modalNone
		m.detached = false
		m.stopTicking()
		m.stopWatch()
		m.status = "session discarded"
		return m, m.refreshCmd()

	case targetMsg:
		if msg.err != nil {
			m.status = "share target: " + describe(msg.err)
			return m, nil
		}
		m.status = "share target: " + msg.name
		return m, m.refreshCmd()

	case playbackMsg:
		if msg.err != nil {
			m.status = "playback: " + describe(msg.err)
			return m, nil
		}
		m.player.SetPlayback(msg.status)
		return m, m.syncTicking(msg.status)

	case refreshedMsg:
		if msg.err != nil {
			m.status = "status: " + describe(msg.err)
			return m, nil
		}
		m.state = msg.session
		m.player.SetSession(msg.session)
		m.player.SetPlayback(msg.playback)
		if msg.session.Pending != nil {
			m.modal = modalPending
		}
		return m, nil

	case tickMsg:
		if msg.gen != m.tickGen || !m.ticking {
			return m, nil
		}
		return m, m.pollCmd(msg.gen)

	case polledMsg:
		if msg.gen != m.tickGen || !m.ticking {
			return m, nil
		}
		if msg.err != nil {
			m.stopTicking()
			m.status = "playback: " + describe(msg.err)
			return m, nil
		}
		m.player.SetPlayback(msg.status)
		if msg.status.Completed {
			m.stopTicking()
			m.status = "playback finished"
			_ = m.notifier.Notify("Playback finished", m.state.DisplayName)
			return m, nil
		}
		if !msg.status.Playing {
			m.stopTicking()
			return m, nil
		}
		return m, m.tickCmd(msg.gen)

	case watchStartedMsg:
		m.stopWatch()
		m.watchCancel = msg.cancel
		m.watchEvents = msg.events
		return m, waitEvent(msg.events)

	case documentEventMsg:
		if !msg.ok {
			return m, nil
		}
		if msg.event.Ref != m.state.DocumentRef {
			// left over from the previous document's watch
			return m, nil
		}
		m.notice("Document unavailable", fmt.Sprintf("%s was %s", m.state.DisplayName, msg.event.Kind))
		if m.watchEvents == nil {
			return m, nil
		}
		return m, waitEvent(m.watchEvents)

	case components.PromptSubmitMsg:
		if msg.Input == "" {
			m.status = "open cancelled"
			return m, nil
		}
		return m, m.openCmd(msg.Input)

	case components.PromptCancelMsg:
		m.status = "open cancelled"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	if m.prompt.Visible() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
		return m, m.quitCmd()
	}
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch m.modal {
	case modalPending:
		switch {
		case key.Matches(msg, m.keys.SaveNow):
			return m, m.resolveCmd("save-first")
		case key.Matches(msg, m.keys.DropNow):
			return m, m.resolveCmd("discard")
		case key.Matches(msg, m.keys.KeepEdit):
			return m, m.resolveCmd("cancel")
		}
		return m, nil
	case modalUnavailable:
		switch msg.String() {
		case "e":
			return m, m.exportCmd()
		case "x":
			return m, m.discardCmd()
		case "esc":
			m.modal = modalNone
		}
		return m, nil
	}

	if m.player.PreviewVisible() {
		switch msg.String() {
		case "p", "esc":
			m.player.HidePreview()
			m.status = "ready"
			return m, nil
		case "q":
		default:
			var cmd tea.Cmd
			m.player, cmd = m.player.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quitCmd()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Play):
		return m, m.playbackCmd(m.playback.Toggle)
	case key.Matches(msg, m.keys.Speed):
		return m, m.playbackCmd(m.playback.CycleSpeed)
	case key.Matches(msg, m.keys.Back):
		return m, m.seekCmd(-m.opts.SeekStepMs)
	case key.Matches(msg, m.keys.Forward):
		return m, m.seekCmd(m.opts.SeekStepMs)
	case key.Matches(msg, m.keys.Mark):
		return m, m.markCmd()
	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()
	case key.Matches(msg, m.keys.Preview):
		return m, m.previewCmd()
	case key.Matches(msg, m.keys.Discard):
		return m, m.discardCmd()
	case key.Matches(msg, m.keys.Target):
		return m, m.cycleTargetCmd()
	case key.Matches(msg, m.keys.Open):
		initial := m.state.LastFolder
		if initial != "" && !strings.HasSuffix(initial, string(filepath.Separator)) {
			initial += string(filepath.Separator)
		}
		return m, m.prompt.Open("Open recording", "path or URI, enter to open, esc to cancel", initial)
	default:
		var cmd tea.Cmd
		m.player, cmd = m.player.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) afterOpen(out sessiondto.OpenOutput) (tea.Model, tea.Cmd) {
	switch out.Outcome {
	case "pending":
		m.modal = modalPending
		m.status = "unsaved bookmarks: save, discard or cancel"
		return m, m.refreshCmd()
	case "unchanged":
		m.status = "already open: " + out.DisplayName
		if m.detached {
			return m, m.restoreCmd(restoreFull)
		}
		return m, m.refreshCmd()
	}
	m.modal = modalNone
	m.detached = false
	m.stopTicking()
	m.player.HidePreview()
	m.status = "opened " + out.DisplayName
	cmds := []tea.Cmd{m.refreshCmd()}
	if out.PlaybackUnavailable {
		m.stopWatch()
		m.notice("File unavailable", out.DisplayName+" cannot be played")
	} else {
		cmds = append(cmds, m.startWatch())
	}
	return m, tea.Batch(cmds...)
}

// syncTicking starts a fresh tick chain when playback runs and ends the
// current one otherwise.
func (m *Model) syncTicking(st playbackdto.StatusOutput) tea.Cmd {
	if !st.Playing {
		m.stopTicking()
		return nil
	}
	if m.ticking {
		return nil
	}
	m.tickGen++
	m.ticking = true
	return m.tickCmd(m.tickGen)
}

func (m *Model) stopTicking() {
	m.ticking = false
	m.tickGen++
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchEvents = nil
}

func (m *Model) notice(summary, body string) {
	m.status = summary + ": " + body
	_ = m.notifier.Notify(summary, body)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	title := theme.Bar.Width(m.width).Render(theme.Hot.Render(" audiomark ") + theme.Muted.Render(m.state.ShareTarget))
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(title) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.prompt.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.prompt.View())
	case m.modal == modalPending:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.pendingModal())
	case m.modal == modalUnavailable:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, components.RenderModal(
			"File unavailable",
			fmt.Sprintf("%s can no longer be played.\nIts %d bookmarks are kept until you export or discard them.", m.state.DisplayName, len(m.state.Bookmarks)),
			[]components.Option{{Key: "e", Label: "export"}, {Key: "x", Label: "discard"}, {Key: "esc", Label: "keep"}},
			min(m.width-4, 64),
		))
	default:
		content = lipgloss.NewStyle().Height(contentH).Render(m.player.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, content, statusBar)
}

func (m Model) pendingModal() string {
	next := ""
	if m.state.Pending != nil {
		next = m.state.Pending.Name
	}
	unsaved := 0
	for _, b := range m.state.Bookmarks {
		if !b.Exported {
			unsaved++
		}
	}
	return components.RenderModal(
		"Unsaved bookmarks",
		fmt.Sprintf("%s has %d unsaved bookmarks.\nOpen %s anyway?", m.state.DisplayName, unsaved, next),
		[]components.Option{{Key: "y", Label: "save first"}, {Key: "d", Label: "discard"}, {Key: "c", Label: "cancel"}},
		min(m.width-4, 64),
	)
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return theme.Bar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) restoreCmd(mode string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Restore(context.Background(), mode)
		return restoredMsg{mode: mode, out: out, err: err}
	}
}

func (m Model) openCmd(ref string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Open(context.Background(), ref)
		return openedMsg{out: out, err: err}
	}
}

func (m Model) resolveCmd(choice string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Resolve(context.Background(), choice)
		return resolvedMsg{out: out, err: err}
	}
}

func (m Model) markCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Mark(context.Background())
		return markedMsg{out: out, err: err}
	}
}

func (m Model) exportCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Export(context.Background())
		return exportedMsg{out: out, err: err}
	}
}

func (m Model) previewCmd() tea.Cmd {
	return func() tea.Msg {
		note, err := m.session.Preview(context.Background())
		return previewMsg{note: note, err: err}
	}
}

func (m Model) discardCmd() tea.Cmd {
	return func() tea.Msg {
		return discardedMsg{err: m.session.Discard(context.Background())}
	}
}

func (m Model) cycleTargetCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var names []string
		if m.targets != nil {
			infos, err := m.targets.ListTargets(ctx)
			if err != nil {
				return targetMsg{err: err}
			}
			for _, info := range infos {
				if info.Available {
					names = append(names, info.Name)
				}
			}
		}
		name, err := m.session.CycleShareTarget(ctx, names)
		return targetMsg{name: name, err: err}
	}
}

func (m Model) playbackCmd(op func(context.Context) (playbackdto.StatusOutput, error)) tea.Cmd {
	return func() tea.Msg {
		st, err := op(context.Background())
		return playbackMsg{status: st, err: err}
	}
}

func (m Model) seekCmd(deltaMs int) tea.Cmd {
	return func() tea.Msg {
		st, err := m.playback.SeekBy(context.Background(), deltaMs)
		return playbackMsg{status: st, err: err}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		st, err := m.session.Status(ctx)
		if err != nil {
			return refreshedMsg{err: err}
		}
		pb, err := m.playback.Status(ctx)
		if err != nil {
			return refreshedMsg{err: err}
		}
		return refreshedMsg{session: st, playback: pb}
	}
}

func (m Model) tickCmd(gen int) tea.Cmd {
	return tea.Tick(m.opts.PollInterval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m Model) pollCmd(gen int) tea.Cmd {
	return func() tea.Msg {
		st, err := m.playback.Status(context.Background())
		return polledMsg{gen: gen, status: st, err: err}
	}
}

func (m Model) startWatch() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		events, err := m.session.Watch(ctx)
		if err != nil {
			cancel()
			return nil
		}
		return watchStartedMsg{events: events, cancel: cancel}
	}
}

func waitEvent(events <-chan sessiondto.DocumentEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return documentEventMsg{event: ev, ok: ok}
	}
}

func (m Model) quitCmd() tea.Cmd {
	m.stopWatch()
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := m.playback.Pause(ctx); err != nil && !errors.Is(err, apperrors.ErrNoActiveDocument) {
			_ = m.notifier.Notify("Pause failed", err.Error())
		}
		_ = m.session.Persist(ctx)
		return tea.QuitMsg{}
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNothingToExport):
		return "no bookmarks to export"
	case errors.Is(err, apperrors.ErrAlreadyExported):
		return "already exported"
	case errors.Is(err, apperrors.ErrNoActiveDocument):
		return "no playable document open"
	case errors.Is(err, apperrors.ErrNoShareTargetAvailable):
		return "no share target accepted the note"
	}
	return err.Error()
}
