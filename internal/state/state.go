package state

import (
	"image"
	"slices"
)

// UiState is one immutable snapshot of the browser. Values handed out by the
// Store are never mutated afterwards; transforms receive a private copy.
type UiState struct {
	DarkMode bool

	// Navigation & filesystem
	CurrentPath  string
	Files        []string // Direct children of CurrentPath, filtered and sorted
	ShowDotFiles bool
	PathSegments []string // Root first, CurrentPath last

	// Selection
	SelectedFiles map[string]struct{}

	IsSettingsExpanded bool

	// Preview
	ImageForPreview image.Image
	PreviewPath     string

	// Version increases by one on every published snapshot.
	Version uint64

	// LastError is the most recent background failure, for a status line.
	LastError error
}

// NewUiState returns the startup snapshot.
func NewUiState() UiState {
	return UiState{
		Files:         []string{},
		SelectedFiles: map[string]struct{}{},
	}
}

// Clone deep-copies the slices and the selection set. The preview image is
// shared; decoded images are never written to.
func (s UiState) Clone() UiState {
	out := s
	out.Files = slices.Clone(s.Files)
	out.PathSegments = slices.Clone(s.PathSegments)
	out.SelectedFiles = make(map[string]struct{}, len(s.SelectedFiles))
	for p := range s.SelectedFiles {
		out.SelectedFiles[p] = struct{}{}
	}
	return out
}

// IsSelected reports whether path is in the selection.
func (s UiState) IsSelected(path string) bool {
	_, ok := s.SelectedFiles[path]
	return ok
}

// SelectedList returns the selection sorted like Files.
func (s UiState) SelectedList() []string {
	out := make([]string, 0, len(s.SelectedFiles))
	for p := range s.SelectedFiles {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

func clearPreview(s UiState) UiState {
	s.ImageForPreview = nil
	s.PreviewPath = ""
	return s
}
