package textutil

import (
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// DisplayName is the printable base name of path: NFC-composed so decomposed
// names from macOS volumes measure correctly, and sanitized for the terminal.
func DisplayName(path string) string {
	if path == "" {
		return ""
	}
	return SanitizeTerminalText(norm.NFC.String(filepath.Base(path)))
}

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces up to width columns, truncating with an
// ellipsis when it is wider.
func PadRight(text string, width int) string {
	if width <= 0 {
		return ""
	}
	w := DisplayWidth(text)
	if w > width {
		return runewidth.Truncate(text, width, "…")
	}
	return text + strings.Repeat(" ", width-w)
}
