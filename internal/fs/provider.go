package fs

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
)

// Provider is the filesystem surface consumed by the state engine.
type Provider interface {
	// ListDirectory returns the absolute paths of the direct children of path.
	ListDirectory(path string) ([]string, error)
	DeleteEntry(path string) error
	OpenWithDefaultApplication(path string) error
	ReadImage(path string) (image.Image, error)
	IsDirectory(path string) bool
	Parent(path string) (string, bool)
}

// ErrNotDirectory is returned when a listing targets something other than a directory.
var ErrNotDirectory = errors.New("not a directory")

// OSProvider implements Provider on the local disk.
type OSProvider struct {
	// MaxImageDimension bounds decoded images; zero keeps the original size.
	MaxImageDimension int
}

// NewOSProvider constructs a provider that downscales previews to maxImageDimension.
func NewOSProvider(maxImageDimension int) *OSProvider {
	return &OSProvider{MaxImageDimension: maxImageDimension}
}

func (p *OSProvider) ListDirectory(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot read directory %s: %w", path, ErrNotDirectory)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", path, err)
	}

	children := make([]string, 0, len(entries))
	for _, e := range entries {
		children = append(children, filepath.Join(path, e.Name()))
	}
	return children, nil
}

// DeleteEntry removes a file or an empty directory.
func (p *OSProvider) DeleteEntry(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("could not delete %s: %w", path, err)
	}
	return nil
}

func (p *OSProvider) OpenWithDefaultApplication(path string) error {
	return openDefault(path)
}

func (p *OSProvider) ReadImage(path string) (image.Image, error) {
	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return FitImage(img, p.MaxImageDimension), nil
}

func (p *OSProvider) IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Parent returns the parent directory of path; false at the filesystem root.
func (p *OSProvider) Parent(path string) (string, bool) {
	return ParentOf(path)
}

// ParentOf mirrors a parent walk: the root (and the empty path) have no parent.
func ParentOf(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	cleaned := filepath.Clean(path)
	parent := filepath.Dir(cleaned)
	if parent == cleaned || parent == "." {
		return "", false
	}
	return parent, true
}
