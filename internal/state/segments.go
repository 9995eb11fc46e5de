package state

import (
	"path/filepath"
	"slices"

	fsutil "github.com/kk-code-lab/filer/internal/fs"
)

// BuildPathSegments walks parents of path up to the root and returns the chain
// root first, ending at path. "/home/u/docs" yields
// ["/", "/home", "/home/u", "/home/u/docs"].
func BuildPathSegments(path string) []string {
	if path == "" {
		return nil
	}

	chain := []string{path}
	current := path
	for {
		parent, ok := fsutil.ParentOf(current)
		if !ok {
			break
		}
		chain = append(chain, parent)
		current = parent
	}

	slices.Reverse(chain)
	return chain
}

// SegmentLabel is the breadcrumb text for one segment.
func SegmentLabel(segment string) string {
	if _, ok := fsutil.ParentOf(segment); !ok {
		return segment
	}
	return filepath.Base(segment)
}
