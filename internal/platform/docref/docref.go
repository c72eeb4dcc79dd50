// Package docref normalises document references. A reference is either a URI
// or a plain filesystem path; plain paths become absolute file URIs so that
// two spellings of the same file compare equal.
package docref

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	apperrors "audiomark/internal/platform/errors"
)

func Canonical(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: document reference is required", apperrors.ErrInvalidInput)
	}
	if u, err := url.Parse(ref); err == nil && len(u.Scheme) > 1 {
		if u.Scheme == "file" {
			return FromPath(u.Path)
		}
		return ref, nil
	}
	return FromPath(ref)
}

func FromPath(p string) (string, error) {
	if strings.HasPrefix(p, "~/") {
		return "", fmt.Errorf("%w: home-relative path %q must be expanded", apperrors.ErrInvalidInput, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// FilePath returns the local path behind a file reference.
func FilePath(ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}

// LastSegment returns the final path element of any reference, or "".
func LastSegment(ref string) string {
	if p, ok := FilePath(ref); ok {
		return filepath.Base(p)
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}

// Folder returns the directory holding a file reference, or "".
func Folder(ref string) string {
	p, ok := FilePath(ref)
	if !ok {
		return ""
	}
	return filepath.Dir(p)
}
