package out

import (
	"context"

	"audiomark/internal/modules/share/domain"
)

// Target is a built-in share destination.
type Target interface {
	Name() string
	// Available returns nil when the target can accept a note right now.
	Available(ctx context.Context) error
	Share(ctx context.Context, note domain.Note) (domain.Receipt, error)
}

// Chooser is the generic fallback handler.
type Chooser interface {
	Choose(ctx context.Context, note domain.Note) (domain.Receipt, error)
}

type Launcher interface {
	Open(ctx context.Context, target string) error
}

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type PluginHost interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Share(ctx context.Context, manifest domain.Manifest, note domain.Note) (domain.Receipt, error)
}

type ExportLog interface {
	Append(ctx context.Context, record domain.Record) error
	Recent(ctx context.Context, limit int) ([]domain.Record, error)
}
