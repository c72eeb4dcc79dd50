package dto

type OpenInput struct {
	Ref string
}

type PendingOutput struct {
	Ref  string `json:"ref"`
	Name string `json:"name"`
}

type OpenOutput struct {
	Outcome             string         `json:"outcome"`
	DocumentRef         string         `json:"document_ref"`
	DisplayName         string         `json:"display_name"`
	Pending             *PendingOutput `json:"pending,omitempty"`
	PlaybackUnavailable bool           `json:"playback_unavailable"`
}

type ResolveInput struct {
	Choice string
}

// ResolveOutput reports the switch and, for save-first, the export that ran
// before it. ExportErr is set when that export failed; the switch still
// happened.
type ResolveOutput struct {
	Choice    string        `json:"choice"`
	Open      OpenOutput    `json:"open"`
	Export    *ExportOutput `json:"export,omitempty"`
	ExportErr error         `json:"-"`
}

type BookmarkOutput struct {
	Index      int    `json:"index"`
	PositionMs int    `json:"position_ms"`
	Time       string `json:"time"`
	Exported   bool   `json:"exported"`
}

type RecordOutput struct {
	Bookmark BookmarkOutput `json:"bookmark"`
	Count    int            `json:"count"`
}

type NoteOutput struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	MIME    string `json:"mime"`
	Count   int    `json:"count"`
}

type ExportOutput struct {
	Note   NoteOutput `json:"note"`
	Route  string     `json:"route"`
	Target string     `json:"target"`
}

type RestoreInput struct {
	Mode string
}

type RestoreOutput struct {
	Restored            bool   `json:"restored"`
	DocumentRef         string `json:"document_ref"`
	DisplayName         string `json:"display_name"`
	Count               int    `json:"count"`
	PositionMs          int    `json:"position_ms"`
	PlaybackUnavailable bool   `json:"playback_unavailable"`
}

type StatusOutput struct {
	DocumentRef      string           `json:"document_ref"`
	DisplayName      string           `json:"display_name"`
	Bookmarks        []BookmarkOutput `json:"bookmarks"`
	Unsaved          bool             `json:"unsaved"`
	Pending          *PendingOutput   `json:"pending,omitempty"`
	PlaybackAttached bool             `json:"playback_attached"`
	PositionMs       int              `json:"position_ms"`
	ShareTarget      string           `json:"share_target"`
	LastFolder       string           `json:"last_folder,omitempty"`
}

type DocumentEvent struct {
	Ref  string `json:"ref"`
	Kind string `json:"kind"`
}
