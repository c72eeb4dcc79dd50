package apperrors

import "errors"

var (
	ErrInvalidInput              = errors.New("invalid input")
	ErrNotFound                  = errors.New("not found")
	ErrNoActiveDocument          = errors.New("no document loaded")
	ErrDocumentUnresolvable      = errors.New("document name could not be resolved")
	ErrNothingToExport           = errors.New("no bookmarks to share")
	ErrAlreadyExported           = errors.New("all bookmarks already shared")
	ErrNoShareTargetAvailable    = errors.New("no app found to share bookmarks")
	ErrTargetUnavailable         = errors.New("share target unavailable")
	ErrPersistenceUnavailable    = errors.New("persistence store unavailable")
	ErrPlaybackSourceUnavailable = errors.New("playback source unavailable")
	ErrSwitchPending             = errors.New("a document switch is awaiting a decision")
	ErrNoPendingSwitch           = errors.New("no document switch is pending")
)
