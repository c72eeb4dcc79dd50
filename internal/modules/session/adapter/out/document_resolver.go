package out

import (
	"context"
	"fmt"
	"strings"

	sessionout "audiomark/internal/modules/session/port/out"
	"audiomark/internal/platform/docref"
	apperrors "audiomark/internal/platform/errors"
)

type URIDocumentResolver struct{}

func NewURIDocumentResolver() sessionout.DocumentResolver {
	return URIDocumentResolver{}
}

func (URIDocumentResolver) Canonical(ref string) (string, error) {
	return docref.Canonical(ref)
}

// DisplayName is the last path segment with its extension removed, unless the
// only dot is the leading one.
func (URIDocumentResolver) DisplayName(_ context.Context, ref string) (string, error) {
	segment := docref.LastSegment(ref)
	if segment == "" || segment == "." || segment == "/" {
		return "", fmt.Errorf("%w: %s", apperrors.ErrDocumentUnresolvable, ref)
	}
	if dot := strings.LastIndex(segment, "."); dot > 0 {
		segment = segment[:dot]
	}
	return segment, nil
}
