package domain

import (
	"fmt"
	"strings"

	apperrors "audiomark/internal/platform/errors"
)

// Choice answers a pending document switch.
type Choice string

const (
	ChoiceSaveFirst Choice = "save-first"
	ChoiceDiscard   Choice = "discard"
	ChoiceCancel    Choice = "cancel"
)

func ParseChoice(raw string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "save-first", "save", "y":
		return ChoiceSaveFirst, nil
	case "discard", "d":
		return ChoiceDiscard, nil
	case "cancel", "c", "":
		return ChoiceCancel, nil
	default:
		return "", fmt.Errorf("%w: unknown choice %q", apperrors.ErrInvalidInput, raw)
	}
}
