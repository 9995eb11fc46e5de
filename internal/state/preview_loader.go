package state

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	fsutil "github.com/kk-code-lab/filer/internal/fs"
	"github.com/kk-code-lab/filer/internal/logging"
)

// PreviewLoader decodes hovered images in the background. Only the most recent
// hover may publish: every hover event bumps a generation and a decode whose
// generation is no longer current is dropped.
type PreviewLoader struct {
	provider fsutil.Provider
	store    *Store
	log      *logging.Logger
	tasks    *sync.WaitGroup

	mu         sync.Mutex
	target     string
	generation atomic.Uint64
}

// NewPreviewLoader wires a preview loader to its collaborators.
func NewPreviewLoader(provider fsutil.Provider, store *Store, log *logging.Logger, tasks *sync.WaitGroup) *PreviewLoader {
	return &PreviewLoader{
		provider: provider,
		store:    store,
		log:      log,
		tasks:    tasks,
	}
}

// OnHover reacts to the pointer entering (hovered) or leaving a file.
func (p *PreviewLoader) OnHover(path string, hovered bool) {
	if !hovered {
		p.hoverEnd(path)
		return
	}

	if !fsutil.IsSupportedImage(path) {
		p.Reset()
		p.store.Apply(func(s UiState) (UiState, bool) {
			if s.ImageForPreview == nil && s.PreviewPath == "" {
				return s, false
			}
			return clearPreview(s), true
		})
		return
	}

	p.mu.Lock()
	gen := p.generation.Add(1)
	p.target = path
	p.mu.Unlock()

	p.tasks.Go(func() {
		img, err := p.decode(path)
		_, applied := p.store.Apply(func(s UiState) (UiState, bool) {
			if p.generation.Load() != gen {
				return s, false
			}
			if err != nil {
				s = clearPreview(s)
				s.LastError = newFailure(DecodeFailure, "preview", path, err)
				return s, true
			}
			s.ImageForPreview = img
			s.PreviewPath = path
			return s, true
		})

		switch {
		case !applied:
			p.log.Debug().Str("path", path).Uint64("token", gen).Msg("discarded stale preview")
		case err != nil:
			p.log.Warn().Err(err).Str("path", path).Msg("preview decode failed")
		default:
			p.log.Debug().Str("path", path).Msg("preview published")
		}
	})
}

// Reset invalidates any decode in flight without touching the snapshot.
func (p *PreviewLoader) Reset() {
	p.mu.Lock()
	p.generation.Add(1)
	p.target = ""
	p.mu.Unlock()
}

func (p *PreviewLoader) hoverEnd(path string) {
	p.mu.Lock()
	wasTarget := p.target == path
	if wasTarget {
		p.generation.Add(1)
		p.target = ""
	}
	p.mu.Unlock()

	// Leaving an older file while a newer one is hovered must not clear the newer preview.
	p.store.Apply(func(s UiState) (UiState, bool) {
		if !wasTarget && s.PreviewPath != path {
			return s, false
		}
		if s.ImageForPreview == nil && s.PreviewPath == "" {
			return s, false
		}
		return clearPreview(s), true
	})
}

func (p *PreviewLoader) decode(path string) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = fmt.Errorf("decode %s: panic: %v", path, r)
		}
	}()
	return p.provider.ReadImage(path)
}
