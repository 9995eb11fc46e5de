package state

import (
	"errors"
	"slices"
	"sync"
	"sync/atomic"

	fsutil "github.com/kk-code-lab/filer/internal/fs"
	"github.com/kk-code-lab/filer/internal/logging"
)

// FilterAndSort drops dot files unless showDotFiles is set and orders the rest
// by raw byte-wise comparison of the full path.
func FilterAndSort(entries []string, showDotFiles bool) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !showDotFiles && fsutil.IsHiddenPath(e) {
			continue
		}
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// DirectoryLister performs directory reads asynchronously and publishes the
// result only while it still describes the current directory.
type DirectoryLister struct {
	provider fsutil.Provider
	store    *Store
	log      *logging.Logger
	tasks    *sync.WaitGroup

	counter atomic.Uint64

	// latest maps a path to the token of its most recent Refresh. A newer
	// request only supersedes older ones for the same path; other paths are
	// filtered out by the CurrentPath check.
	mu     sync.Mutex
	latest map[string]uint64
}

// NewDirectoryLister wires a lister to its collaborators.
func NewDirectoryLister(provider fsutil.Provider, store *Store, log *logging.Logger, tasks *sync.WaitGroup) *DirectoryLister {
	return &DirectoryLister{
		provider: provider,
		store:    store,
		log:      log,
		tasks:    tasks,
		latest:   map[string]uint64{},
	}
}

// Refresh lists path in the background. The result is applied only if, at
// publish time, path is still the current directory and no newer Refresh of
// the same path was issued. A failed listing publishes an empty list.
func (l *DirectoryLister) Refresh(path string, showDotFiles bool) {
	if path == "" {
		return
	}
	token := l.counter.Add(1)
	l.mu.Lock()
	l.latest[path] = token
	l.mu.Unlock()

	l.tasks.Go(func() {
		raw, err := l.provider.ListDirectory(path)
		if err != nil {
			l.log.Warn().Err(err).Str("path", path).Uint64("token", token).Msg("directory listing failed")
			raw = nil
		}
		files := FilterAndSort(raw, showDotFiles)

		_, applied := l.store.Apply(func(s UiState) (UiState, bool) {
			if s.CurrentPath != path || !l.isLatest(path, token) {
				return s, false
			}
			if s.ShowDotFiles != showDotFiles {
				files = FilterAndSort(raw, s.ShowDotFiles)
			}
			s.Files = files
			s.SelectedFiles = pruneSelection(s.SelectedFiles, files)
			if err != nil {
				s.LastError = newFailure(IOFailure, "list", path, err)
			} else if isListFailure(s.LastError) {
				s.LastError = nil
			}
			return s, true
		})
		l.forget(path, token)

		if !applied {
			l.log.Debug().Str("path", path).Uint64("token", token).Msg("discarded stale listing")
			return
		}
		l.log.Debug().Str("path", path).Int("count", len(files)).Msg("listing published")
	})
}

func (l *DirectoryLister) isLatest(path string, token uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.latest[path] == token
}

// forget drops the entry for path once its latest request has finished.
func (l *DirectoryLister) forget(path string, token uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.latest[path] == token {
		delete(l.latest, path)
	}
}

func isListFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == IOFailure && f.Op == "list"
}

func pruneSelection(selected map[string]struct{}, files []string) map[string]struct{} {
	if len(selected) == 0 {
		return selected
	}
	for p := range selected {
		if _, found := slices.BinarySearch(files, p); !found {
			delete(selected, p)
		}
	}
	return selected
}
