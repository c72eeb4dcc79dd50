package in

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	sessiondto "audiomark/internal/modules/session/dto"
	apperrors "audiomark/internal/platform/errors"
)

type stubUsecase struct {
	openOut   sessiondto.OpenOutput
	choices   []string
	recorded  []int
	current   int
	target    string
	statusOut sessiondto.StatusOutput
	exportErr error
	modes     []string
}

func (s *stubUsecase) OpenDocument(_ context.Context, in sessiondto.OpenInput) (sessiondto.OpenOutput, error) {
	out := s.openOut
	if out.DocumentRef == "" {
		out.DocumentRef = in.Ref
	}
	return out, nil
}

func (s *stubUsecase) ResolvePendingSwitch(_ context.Context, in sessiondto.ResolveInput) (sessiondto.ResolveOutput, error) {
	s.choices = append(s.choices, in.Choice)
	return sessiondto.ResolveOutput{Choice: in.Choice, Open: sessiondto.OpenOutput{Outcome: "switched", DocumentRef: s.openOut.Pending.Ref}}, nil
}

func (s *stubUsecase) RecordBookmark(_ context.Context, ms int) (sessiondto.RecordOutput, error) {
	s.recorded = append(s.recorded, ms)
	return sessiondto.RecordOutput{Bookmark: sessiondto.BookmarkOutput{Index: len(s.recorded) - 1, PositionMs: ms, Time: "00:01:05"}, Count: len(s.recorded)}, nil
}

func (s *stubUsecase) RecordCurrent(ctx context.Context) (sessiondto.RecordOutput, error) {
	return s.RecordBookmark(ctx, s.current)
}

func (s *stubUsecase) HasUnsaved(context.Context) bool { return len(s.recorded) > 0 }

func (s *stubUsecase) Export(context.Context) (sessiondto.ExportOutput, error) {
	if s.exportErr != nil {
		return sessiondto.ExportOutput{}, s.exportErr
	}
	return sessiondto.ExportOutput{Route: "preferred", Target: s.target}, nil
}

func (s *stubUsecase) Preview(context.Context) (sessiondto.NoteOutput, error) {
	return sessiondto.NoteOutput{Body: "#Edit-times\n\n00:01:05\n"}, nil
}

func (s *stubUsecase) DiscardSession(context.Context) error { return nil }

func (s *stubUsecase) Restore(_ context.Context, in sessiondto.RestoreInput) (sessiondto.RestoreOutput, error) {
	s.modes = append(s.modes, in.Mode)
	return sessiondto.RestoreOutput{}, nil
}

func (s *stubUsecase) Persist(context.Context) error { return nil }

func (s *stubUsecase) Status(context.Context) (sessiondto.StatusOutput, error) {
	return s.statusOut, nil
}

func (s *stubUsecase) SetShareTarget(_ context.Context, name string) error {
	s.target = name
	return nil
}

func (s *stubUsecase) ShareTarget(context.Context) (string, error) { return s.target, nil }

func (s *stubUsecase) WatchDocument(context.Context) (<-chan sessiondto.DocumentEvent, error) {
	return nil, apperrors.ErrNoActiveDocument
}

func TestCLIOpenResolvesPendingWithChoice(t *testing.T) {
	t.Parallel()
	uc := &stubUsecase{openOut: sessiondto.OpenOutput{Outcome: "pending", DocumentRef: "file:///a.mp3", Pending: &sessiondto.PendingOutput{Ref: "file:///b.mp3", Name: "b"}}}
	h := NewCLIHandler(uc)

	out, resolved, err := h.Open(context.Background(), "/b.mp3", "discard")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if resolved == nil || out.DocumentRef != "file:///b.mp3" || out.Outcome != "switched" {
		t.Fatalf("unexpected open result %+v %+v", out, resolved)
	}
	if len(uc.choices) != 1 || uc.choices[0] != "discard" {
		t.Fatalf("unexpected choices %v", uc.choices)
	}

	out, resolved, err = h.Open(context.Background(), "/b.mp3", "")
	if err != nil || resolved != nil || out.Outcome != "pending" {
		t.Fatalf("empty choice must leave switch pending: %+v %+v %v", out, resolved, err)
	}
}

func TestCLIMarkParsesTime(t *testing.T) {
	t.Parallel()
	uc := &stubUsecase{current: 4200}
	h := NewCLIHandler(uc)
	if _, err := h.Mark(context.Background(), "01:05"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if _, err := h.Mark(context.Background(), ""); err != nil {
		t.Fatalf("mark current: %v", err)
	}
	if _, err := h.Mark(context.Background(), "soon"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if len(uc.recorded) != 2 || uc.recorded[0] != 65000 || uc.recorded[1] != 4200 {
		t.Fatalf("unexpected recorded %v", uc.recorded)
	}
}

func TestTUIRestorePassesMode(t *testing.T) {
	t.Parallel()
	uc := &stubUsecase{}
	h := NewTUIHandler(uc)
	for _, mode := range []string{"metadata", "full"} {
		if _, err := h.Restore(context.Background(), mode); err != nil {
			t.Fatalf("restore %s: %v", mode, err)
		}
	}
	if len(uc.modes) != 2 || uc.modes[0] != "metadata" || uc.modes[1] != "full" {
		t.Fatalf("unexpected restore modes %v", uc.modes)
	}
}

func TestTUICycleShareTarget(t *testing.T) {
	t.Parallel()
	uc := &stubUsecase{target: "notes"}
	h := NewTUIHandler(uc)
	names := []string{"mail", "notes", "plugin:notefile"}
	next, err := h.CycleShareTarget(context.Background(), names)
	if err != nil || next != "plugin:notefile" {
		t.Fatalf("expected plugin:notefile, got %q %v", next, err)
	}
	next, _ = h.CycleShareTarget(context.Background(), names)
	if next != "mail" {
		t.Fatalf("expected wrap to mail, got %q", next)
	}
	uc.target = "gone"
	next, _ = h.CycleShareTarget(context.Background(), names)
	if next != "mail" {
		t.Fatalf("unknown target should restart at first, got %q", next)
	}
}

func TestMCPMarkAndExport(t *testing.T) {
	t.Parallel()
	uc := &stubUsecase{target: "notes"}
	h := NewMCPHandler(uc)

	req := mcp.CallToolRequest{}
	req.Params.Name = "mark"
	req.Params.Arguments = map[string]any{"position": "00:01:05"}
	res, err := h.Mark(context.Background(), req)
	if err != nil || res.IsError {
		t.Fatalf("mark failed: %+v %v", res, err)
	}
	if len(uc.recorded) != 1 || uc.recorded[0] != 65000 {
		t.Fatalf("unexpected recorded %v", uc.recorded)
	}

	missing := mcp.CallToolRequest{}
	missing.Params.Arguments = map[string]any{}
	res, err = h.Mark(context.Background(), missing)
	if err != nil || !res.IsError {
		t.Fatalf("missing position must be a tool error: %+v %v", res, err)
	}

	res, err = h.Export(context.Background(), mcp.CallToolRequest{})
	if err != nil || res.IsError {
		t.Fatalf("export failed: %+v %v", res, err)
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok || !strings.Contains(text.Text, `"target": "notes"`) {
		t.Fatalf("unexpected export content %+v", res.Content)
	}

	uc.exportErr = apperrors.ErrNothingToExport
	res, _ = h.Export(context.Background(), mcp.CallToolRequest{})
	if !res.IsError {
		t.Fatalf("expected export error result")
	}
}

func TestMCPServerRegistersTools(t *testing.T) {
	t.Parallel()
	s := NewMCPHandler(&stubUsecase{}).Server("test")
	if s == nil {
		t.Fatalf("expected server")
	}
}
