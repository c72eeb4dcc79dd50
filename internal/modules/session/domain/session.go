package domain

import "sort"

const (
	DefaultLabel    = "#Edit-times"
	FallbackSubject = "Audio Bookmarks"
	UnknownName     = "Unknown"
	NoteMIME        = "text/plain"
)

// Policy carries the two behaviours that differ between deployments.
type Policy struct {
	SortOnInsert  bool
	BlockReexport bool
}

// Session is the bookmark state of one document. Exported is parallel to
// Bookmarks; index i has been shared iff Exported[i].
type Session struct {
	DocumentRef    string
	DisplayName    string
	Bookmarks      []int
	Exported       []bool
	LastPositionMs int
}

func (s Session) Active() bool {
	return s.DocumentRef != ""
}

// Open replaces the session with an empty one for ref.
func (s *Session) Open(ref, name string) {
	*s = Session{DocumentRef: ref, DisplayName: name}
}

func (s *Session) Clear() {
	*s = Session{}
}

// Record adds a bookmark and returns its index. With sorted, the value is
// placed after any equal values already present.
func (s *Session) Record(positionMs int, sorted bool) int {
	if !sorted {
		s.Bookmarks = append(s.Bookmarks, positionMs)
		s.Exported = append(s.Exported, false)
		return len(s.Bookmarks) - 1
	}
	idx := sort.Search(len(s.Bookmarks), func(i int) bool { return s.Bookmarks[i] > positionMs })
	s.Bookmarks = append(s.Bookmarks, 0)
	copy(s.Bookmarks[idx+1:], s.Bookmarks[idx:])
	s.Bookmarks[idx] = positionMs
	s.Exported = append(s.Exported, false)
	copy(s.Exported[idx+1:], s.Exported[idx:])
	s.Exported[idx] = false
	return idx
}

func (s Session) HasUnsaved() bool {
	for _, exported := range s.Exported {
		if !exported {
			return true
		}
	}
	return false
}

func (s *Session) MarkAllExported() {
	for i := range s.Exported {
		s.Exported[i] = true
	}
}

func (s Session) ExportedIndices() []int {
	out := make([]int, 0, len(s.Exported))
	for i, exported := range s.Exported {
		if exported {
			out = append(out, i)
		}
	}
	return out
}

// Restore rebuilds a session from persisted values. Indices outside the
// bookmark range are dropped.
func Restore(ref, name string, bookmarks, exportedIndices []int, positionMs int) Session {
	s := Session{
		DocumentRef:    ref,
		DisplayName:    name,
		Bookmarks:      append([]int(nil), bookmarks...),
		Exported:       make([]bool, len(bookmarks)),
		LastPositionMs: positionMs,
	}
	for _, idx := range exportedIndices {
		if idx >= 0 && idx < len(s.Exported) {
			s.Exported[idx] = true
		}
	}
	return s
}

// ResumeOffset returns where playback should start for a saved position. A
// zero duration means the length is unknown.
func ResumeOffset(positionMs, durationMs int) int {
	if positionMs <= 0 {
		return 0
	}
	if durationMs > 0 && positionMs >= durationMs {
		return 0
	}
	return positionMs
}

type Pending struct {
	Ref  string
	Name string
}

type Outcome string

const (
	OutcomeUnchanged Outcome = "unchanged"
	OutcomePending   Outcome = "pending"
	OutcomeSwitched  Outcome = "switched"
)

type RestoreMode string

const (
	RestoreFull     RestoreMode = "full"
	RestoreMetadata RestoreMode = "metadata"
)

type DocumentEvent struct {
	Ref  string
	Kind string
}

const (
	EventRemoved = "removed"
	EventRenamed = "renamed"
)
