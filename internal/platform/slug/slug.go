package slug

import (
	"strings"

	gslug "github.com/gosimple/slug"
)

// Make turns a display name into a file-safe note name.
func Make(input string) string {
	s := gslug.Make(strings.TrimSpace(input))
	if s == "" {
		return "untitled"
	}
	return s
}
