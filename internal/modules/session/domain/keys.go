package domain

// Preference keys.
const (
	KeyShareTarget     = "selected_share_target"
	KeyDocumentRef     = "document_ref"
	KeyDisplayName     = "display_name"
	KeyPositionMs      = "playback_position_ms"
	KeyBookmarks       = "bookmarks_json"
	KeyExportedIndices = "exported_indices_json"
	KeyLastFolder      = "last_folder"
)

// SessionKeys are removed when the user discards a session.
var SessionKeys = []string{KeyDocumentRef, KeyDisplayName, KeyPositionMs, KeyBookmarks, KeyExportedIndices}
