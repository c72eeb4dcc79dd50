package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"audiomark/internal/modules/session/domain"
	sessionout "audiomark/internal/modules/session/port/out"
	"audiomark/internal/platform/docref"
	apperrors "audiomark/internal/platform/errors"
)

type Options struct {
	Policy          domain.Policy
	Label           string
	FallbackSubject string
	DefaultTarget   string
	Logger          hclog.Logger
}

type OpenResult struct {
	Outcome             domain.Outcome
	Session             domain.Session
	Pending             *domain.Pending
	PlaybackUnavailable bool
}

type ResolveResult struct {
	Choice    domain.Choice
	Open      OpenResult
	Export    *ExportResult
	ExportErr error
}

type ExportResult struct {
	Note   domain.Note
	Route  string
	Target string
}

type RestoreResult struct {
	Restored            bool
	Session             domain.Session
	PlaybackUnavailable bool
}

// SessionService owns the single in-memory session. It is not safe for
// concurrent use; callers serialise access.
type SessionService struct {
	prefs    sessionout.Preferences
	resolver sessionout.DocumentResolver
	access   sessionout.AccessGranter
	player   sessionout.Player
	sink     sessionout.ShareSink
	watcher  sessionout.DocumentWatcher
	opts     Options
	logger   hclog.Logger

	current  domain.Session
	pending  *domain.Pending
	attached bool
}

func NewSessionService(
	prefs sessionout.Preferences,
	resolver sessionout.DocumentResolver,
	access sessionout.AccessGranter,
	player sessionout.Player,
	sink sessionout.ShareSink,
	watcher sessionout.DocumentWatcher,
	opts Options,
) *SessionService {
	if opts.Label == "" {
		opts.Label = domain.DefaultLabel
	}
	if opts.FallbackSubject == "" {
		opts.FallbackSubject = domain.FallbackSubject
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SessionService{
		prefs:    prefs,
		resolver: resolver,
		access:   access,
		player:   player,
		sink:     sink,
		watcher:  watcher,
		opts:     opts,
		logger:   logger.Named("session"),
	}
}

func (s *SessionService) Current() domain.Session {
	return s.current
}

func (s *SessionService) Pending() *domain.Pending {
	if s.pending == nil {
		return nil
	}
	p := *s.pending
	return &p
}

func (s *SessionService) Attached() bool {
	return s.attached
}

func (s *SessionService) Open(ctx context.Context, ref string) (OpenResult, error) {
	canonical, err := s.resolver.Canonical(ref)
	if err != nil {
		return OpenResult{}, err
	}
	if s.access != nil {
		if err := s.access.Grant(ctx, canonical); err != nil {
			s.logger.Warn("read access not granted", "ref", canonical, "error", err)
		}
	}
	name, err := s.resolver.DisplayName(ctx, canonical)
	if err != nil || strings.TrimSpace(name) == "" {
		s.logger.Warn("display name unresolved", "ref", canonical, "error", errors.Join(apperrors.ErrDocumentUnresolvable, err))
		name = domain.UnknownName
	}

	if s.current.DocumentRef == canonical {
		return OpenResult{Outcome: domain.OutcomeUnchanged, Session: s.current}, nil
	}
	if s.pending != nil {
		return OpenResult{}, apperrors.ErrSwitchPending
	}
	if s.current.HasUnsaved() {
		s.pending = &domain.Pending{Ref: canonical, Name: name}
		s.logger.Info("switch deferred", "from", s.current.DocumentRef, "to", canonical)
		return OpenResult{Outcome: domain.OutcomePending, Session: s.current, Pending: s.Pending()}, nil
	}
	return s.switchTo(ctx, canonical, name), nil
}

func (s *SessionService) switchTo(ctx context.Context, ref, name string) OpenResult {
	s.detach(ctx)
	s.current.Open(ref, name)
	result := OpenResult{Outcome: domain.OutcomeSwitched}
	if _, err := s.player.Attach(ctx, ref); err != nil {
		s.logger.Warn("playback unavailable", "ref", ref, "error", err)
		result.PlaybackUnavailable = true
	} else {
		s.attached = true
	}
	editor := s.prefs.Edit()
	if folder := docref.Folder(ref); folder != "" {
		editor.PutString(domain.KeyLastFolder, folder)
	}
	s.writeSession(ctx, editor)
	if err := editor.Commit(ctx); err != nil {
		s.logger.Error("persist after switch", "error", err)
	}
	s.logger.Info("document opened", "ref", ref, "name", name, "playback", s.attached)
	result.Session = s.current
	return result
}

func (s *SessionService) Resolve(ctx context.Context, choice domain.Choice) (ResolveResult, error) {
	if s.pending == nil {
		return ResolveResult{}, apperrors.ErrNoPendingSwitch
	}
	target := *s.pending
	switch choice {
	case domain.ChoiceCancel:
		s.pending = nil
		s.logger.Info("switch cancelled", "ref", target.Ref)
		return ResolveResult{Choice: choice, Open: OpenResult{Outcome: domain.OutcomeUnchanged, Session: s.current}}, nil
	case domain.ChoiceDiscard:
		s.pending = nil
		return ResolveResult{Choice: choice, Open: s.switchTo(ctx, target.Ref, target.Name)}, nil
	case domain.ChoiceSaveFirst:
		exported, exportErr := s.Export(ctx)
		s.pending = nil
		result := ResolveResult{Choice: choice, ExportErr: exportErr}
		if exportErr == nil {
			result.Export = &exported
		} else {
			s.logger.Warn("export before switch failed", "error", exportErr)
		}
		result.Open = s.switchTo(ctx, target.Ref, target.Name)
		return result, nil
	default:
		return ResolveResult{}, fmt.Errorf("%w: unknown choice %q", apperrors.ErrInvalidInput, choice)
	}
}

func (s *SessionService) Record(ctx context.Context, positionMs int) (int, error) {
	if !s.current.Active() || !s.attached {
		return 0, apperrors.ErrNoActiveDocument
	}
	if positionMs < 0 {
		return 0, fmt.Errorf("%w: position must be non-negative", apperrors.ErrInvalidInput)
	}
	idx := s.current.Record(positionMs, s.opts.Policy.SortOnInsert)
	s.logger.Debug("bookmark recorded", "position_ms", positionMs, "index", idx)
	s.persistQuietly(ctx)
	return idx, nil
}

func (s *SessionService) RecordCurrent(ctx context.Context) (int, error) {
	if !s.current.Active() || !s.attached {
		return 0, apperrors.ErrNoActiveDocument
	}
	pos, err := s.player.Position(ctx)
	if err != nil {
		return 0, err
	}
	return s.Record(ctx, pos)
}

func (s *SessionService) HasUnsaved() bool {
	return s.current.HasUnsaved()
}

// Note builds the export note without sharing it.
func (s *SessionService) Note() (domain.Note, error) {
	if !s.current.Active() {
		return domain.Note{}, apperrors.ErrNoActiveDocument
	}
	if len(s.current.Bookmarks) == 0 {
		return domain.Note{}, apperrors.ErrNothingToExport
	}
	return domain.BuildNote(s.current, s.opts.Label, s.opts.FallbackSubject), nil
}

func (s *SessionService) Export(ctx context.Context) (ExportResult, error) {
	note, err := s.Note()
	if err != nil {
		return ExportResult{}, err
	}
	if s.opts.Policy.BlockReexport && !s.current.HasUnsaved() {
		return ExportResult{}, apperrors.ErrAlreadyExported
	}
	preferred := s.ShareTarget(ctx)
	handoff, err := s.sink.Handoff(ctx, note, preferred)
	if err != nil {
		return ExportResult{}, err
	}
	s.current.MarkAllExported()
	s.persistQuietly(ctx)
	s.logger.Info("bookmarks exported", "count", note.Count, "route", handoff.Route, "target", handoff.Target)
	return ExportResult{Note: note, Route: handoff.Route, Target: handoff.Target}, nil
}

func (s *SessionService) Discard(ctx context.Context) error {
	if s.pending != nil {
		return apperrors.ErrSwitchPending
	}
	s.detach(ctx)
	ref := s.current.DocumentRef
	s.current.Clear()
	editor := s.prefs.Edit()
	for _, key := range domain.SessionKeys {
		editor.Remove(key)
	}
	if err := editor.Commit(ctx); err != nil {
		return fmt.Errorf("%w: clear session: %v", apperrors.ErrPersistenceUnavailable, err)
	}
	s.logger.Info("session discarded", "ref", ref)
	return nil
}

func (s *SessionService) Restore(ctx context.Context, mode domain.RestoreMode) (RestoreResult, error) {
	if mode != domain.RestoreFull && mode != domain.RestoreMetadata {
		return RestoreResult{}, fmt.Errorf("%w: unknown restore mode %q", apperrors.ErrInvalidInput, mode)
	}
	if s.pending != nil {
		return RestoreResult{}, apperrors.ErrSwitchPending
	}
	saved, ok := s.load(ctx)
	if !ok {
		return RestoreResult{}, nil
	}
	s.detach(ctx)
	s.current = saved
	result := RestoreResult{Restored: true, Session: s.current}
	if mode == domain.RestoreMetadata {
		return result, nil
	}
	duration, err := s.player.Attach(ctx, saved.DocumentRef)
	if err != nil {
		s.logger.Warn("saved document unavailable", "ref", saved.DocumentRef, "error", err)
		result.PlaybackUnavailable = true
		return result, nil
	}
	s.attached = true
	if offset := domain.ResumeOffset(saved.LastPositionMs, duration); offset > 0 {
		if err := s.player.Seek(ctx, offset); err != nil {
			s.logger.Warn("resume seek failed", "position_ms", offset, "error", err)
		}
	}
	return result, nil
}

func (s *SessionService) load(ctx context.Context) (domain.Session, bool) {
	ref, ok, err := s.prefs.GetString(ctx, domain.KeyDocumentRef)
	if err != nil {
		s.logger.Warn("saved session unreadable", "error", errors.Join(apperrors.ErrPersistenceUnavailable, err))
		return domain.Session{}, false
	}
	if !ok || ref == "" {
		return domain.Session{}, false
	}
	name, _, err := s.prefs.GetString(ctx, domain.KeyDisplayName)
	if err != nil {
		s.logger.Warn("saved session unreadable", "error", errors.Join(apperrors.ErrPersistenceUnavailable, err))
		return domain.Session{}, false
	}
	if name == "" {
		name = domain.UnknownName
	}
	position, _, err := s.prefs.GetInt(ctx, domain.KeyPositionMs)
	if err != nil {
		s.logger.Warn("saved position unreadable", "error", err)
		position = 0
	}
	bookmarks, err := s.loadInts(ctx, domain.KeyBookmarks)
	if err != nil {
		s.logger.Warn("saved session unreadable", "error", errors.Join(apperrors.ErrPersistenceUnavailable, err))
		return domain.Session{}, false
	}
	exported, err := s.loadInts(ctx, domain.KeyExportedIndices)
	if err != nil {
		s.logger.Warn("saved exported indices unreadable", "error", err)
		exported = nil
	}
	return domain.Restore(ref, name, bookmarks, exported, position), true
}

func (s *SessionService) loadInts(ctx context.Context, key string) ([]int, error) {
	raw, ok, err := s.prefs.GetString(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var out []int
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

func (s *SessionService) Persist(ctx context.Context) error {
	if !s.current.Active() {
		return nil
	}
	editor := s.prefs.Edit()
	s.writeSession(ctx, editor)
	if err := editor.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceUnavailable, err)
	}
	return nil
}

func (s *SessionService) persistQuietly(ctx context.Context) {
	if err := s.Persist(ctx); err != nil {
		s.logger.Error("persist session", "error", err)
	}
}

func (s *SessionService) writeSession(ctx context.Context, editor sessionout.Editor) {
	if s.attached {
		if pos, err := s.player.Position(ctx); err == nil {
			s.current.LastPositionMs = pos
		}
	}
	bookmarks, _ := json.Marshal(nonNil(s.current.Bookmarks))
	exported, _ := json.Marshal(s.current.ExportedIndices())
	editor.
		PutString(domain.KeyDocumentRef, s.current.DocumentRef).
		PutString(domain.KeyDisplayName, s.current.DisplayName).
		PutInt(domain.KeyPositionMs, s.current.LastPositionMs).
		PutString(domain.KeyBookmarks, string(bookmarks)).
		PutString(domain.KeyExportedIndices, string(exported))
}

func (s *SessionService) detach(ctx context.Context) {
	if !s.attached {
		return
	}
	if err := s.player.Detach(ctx); err != nil {
		s.logger.Warn("detach playback", "error", err)
	}
	s.attached = false
}

func (s *SessionService) ShareTarget(ctx context.Context) string {
	name, ok, err := s.prefs.GetString(ctx, domain.KeyShareTarget)
	if err != nil {
		s.logger.Warn("share target unreadable", "error", err)
	}
	if err != nil || !ok || name == "" {
		return s.opts.DefaultTarget
	}
	return name
}

func (s *SessionService) SetShareTarget(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: share target is required", apperrors.ErrInvalidInput)
	}
	if err := s.prefs.Edit().PutString(domain.KeyShareTarget, name).Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceUnavailable, err)
	}
	return nil
}

func (s *SessionService) LastFolder(ctx context.Context) string {
	folder, _, err := s.prefs.GetString(ctx, domain.KeyLastFolder)
	if err != nil {
		return ""
	}
	return folder
}

func (s *SessionService) Position(ctx context.Context) int {
	if !s.attached {
		return s.current.LastPositionMs
	}
	pos, err := s.player.Position(ctx)
	if err != nil {
		return s.current.LastPositionMs
	}
	return pos
}

func (s *SessionService) Watch(ctx context.Context) (<-chan domain.DocumentEvent, error) {
	if !s.current.Active() {
		return nil, apperrors.ErrNoActiveDocument
	}
	if s.watcher == nil {
		return nil, fmt.Errorf("%w: document watcher not configured", apperrors.ErrInvalidInput)
	}
	return s.watcher.Watch(ctx, s.current.DocumentRef)
}

func nonNil(values []int) []int {
	if values == nil {
		return []int{}
	}
	return values
}
