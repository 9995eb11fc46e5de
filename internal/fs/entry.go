package fs

import (
	"path/filepath"
	"strings"
)

// IsHidden reports whether a base name is a dot file.
func IsHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// IsHiddenPath applies IsHidden to the base name of path.
func IsHiddenPath(path string) bool {
	return IsHidden(filepath.Base(path))
}

// Extension returns the lower-cased extension of path without the leading dot.
func Extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
