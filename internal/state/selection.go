package state

import (
	"slices"
	"sync"

	fsutil "github.com/kk-code-lab/filer/internal/fs"
	"github.com/kk-code-lab/filer/internal/logging"
	"golang.org/x/sync/errgroup"
)

// SelectionManager owns the selection set and deletions.
type SelectionManager struct {
	provider    fsutil.Provider
	store       *Store
	log         *logging.Logger
	tasks       *sync.WaitGroup
	concurrency int

	// refresh re-lists the current directory after a deletion.
	refresh func()
}

// NewSelectionManager wires a selection manager. concurrency bounds parallel
// deletes in DeleteSelected; values below one mean one.
func NewSelectionManager(provider fsutil.Provider, store *Store, log *logging.Logger, tasks *sync.WaitGroup, concurrency int, refresh func()) *SelectionManager {
	if concurrency < 1 {
		concurrency = 1
	}
	return &SelectionManager{
		provider:    provider,
		store:       store,
		log:         log,
		tasks:       tasks,
		concurrency: concurrency,
		refresh:     refresh,
	}
}

// Toggle adds path to the selection, or removes it when already selected.
// Paths that are not in the current listing cannot be selected.
func (m *SelectionManager) Toggle(path string) {
	m.store.Apply(func(s UiState) (UiState, bool) {
		if _, ok := s.SelectedFiles[path]; ok {
			delete(s.SelectedFiles, path)
			return s, true
		}
		if _, listed := slices.BinarySearch(s.Files, path); !listed {
			return s, false
		}
		s.SelectedFiles[path] = struct{}{}
		return s, true
	})
}

// DeleteSingle removes path in the background and refreshes the listing
// whether or not the removal succeeded. The returned channel yields the
// outcome once and is closed; callers may ignore it.
func (m *SelectionManager) DeleteSingle(path string) <-chan DeleteOutcome {
	done := make(chan DeleteOutcome, 1)
	m.tasks.Go(func() {
		defer close(done)

		result := m.deleteOne(path)
		outcome := DeleteOutcome{Results: []DeleteResult{result}}
		if result.Err != nil {
			m.recordFailure(result.Err)
		}
		m.refresh()
		done <- outcome
	})
	return done
}

// DeleteSelected removes every selected entry concurrently. A failure never
// stops the other deletions. Once all attempts finish the selection is cleared
// and the listing refreshed exactly once.
func (m *SelectionManager) DeleteSelected() <-chan DeleteOutcome {
	paths := m.store.Read().SelectedList()
	done := make(chan DeleteOutcome, 1)

	m.tasks.Go(func() {
		defer close(done)

		results := make([]DeleteResult, len(paths))
		var g errgroup.Group
		g.SetLimit(m.concurrency)
		for i, path := range paths {
			g.Go(func() error {
				results[i] = m.deleteOne(path)
				return nil
			})
		}
		_ = g.Wait()

		outcome := DeleteOutcome{Results: results}
		m.store.Update(func(s UiState) UiState {
			s.SelectedFiles = map[string]struct{}{}
			if err := outcome.Err(); err != nil {
				s.LastError = err
			}
			return s
		})
		m.log.Info().
			Int("count", len(outcome.Deleted())).
			Int("failed", len(outcome.Failed())).
			Msg("batch delete finished")
		m.refresh()
		done <- outcome
	})
	return done
}

func (m *SelectionManager) deleteOne(path string) DeleteResult {
	err := m.provider.DeleteEntry(path)
	if err != nil {
		m.log.Warn().Err(err).Str("path", path).Msg("delete failed")
		return DeleteResult{Path: path, Err: newFailure(IOFailure, "delete", path, err)}
	}
	m.log.Debug().Str("path", path).Msg("deleted")
	return DeleteResult{Path: path}
}

func (m *SelectionManager) recordFailure(err error) {
	m.store.Update(func(s UiState) UiState {
		s.LastError = err
		return s
	})
}
