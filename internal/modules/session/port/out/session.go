package out

import (
	"context"

	"audiomark/internal/modules/session/domain"
)

// Preferences is a flat key-value store. Reads report whether the key exists.
type Preferences interface {
	GetString(ctx context.Context, key string) (string, bool, error)
	GetInt(ctx context.Context, key string) (int, bool, error)
	Edit() Editor
}

// Editor batches writes; nothing is visible until Commit.
type Editor interface {
	PutString(key, value string) Editor
	PutInt(key string, value int) Editor
	Remove(key string) Editor
	Commit(ctx context.Context) error
}

type DocumentResolver interface {
	Canonical(ref string) (string, error)
	DisplayName(ctx context.Context, ref string) (string, error)
}

type AccessGranter interface {
	Grant(ctx context.Context, ref string) error
}

type Player interface {
	// Attach loads ref at offset 0 and returns its duration, 0 when unknown.
	Attach(ctx context.Context, ref string) (int, error)
	Detach(ctx context.Context) error
	Seek(ctx context.Context, positionMs int) error
	Position(ctx context.Context) (int, error)
}

type Handoff struct {
	Route  string
	Target string
}

type ShareSink interface {
	Handoff(ctx context.Context, note domain.Note, preferred string) (Handoff, error)
}

type DocumentWatcher interface {
	Watch(ctx context.Context, ref string) (<-chan domain.DocumentEvent, error)
}
