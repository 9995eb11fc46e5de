package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/atotto/clipboard"
	fsutil "github.com/kk-code-lab/filer/internal/fs"
	"github.com/kk-code-lab/filer/internal/logging"
	"github.com/kk-code-lab/filer/internal/settings"
)

// Well-known folders below the home directory.
const (
	DownloadsFolder = "Downloads"
	MusicFolder     = "Music"
	VideosFolder    = "Videos"
	PicturesFolder  = "Pictures"
	DocumentsFolder = "Documents"
)

// Options configures a Controller.
type Options struct {
	Provider fsutil.Provider
	Settings settings.Gateway
	Logger   *logging.Logger

	// HomeDir anchors the Navigate* shortcuts; defaults to the user's home.
	HomeDir string
	// StartPath is the first directory shown; defaults to HomeDir.
	StartPath string

	DeleteConcurrency int

	// Clipboard writes text to the system clipboard; defaults to atotto/clipboard.
	Clipboard func(string) error
}

// Controller is the entry point for every user operation. Operations never
// block on I/O: they update the snapshot synchronously where required and
// hand the slow part to a tracked background goroutine.
type Controller struct {
	store     *Store
	provider  fsutil.Provider
	settings  settings.Gateway
	log       *logging.Logger
	homeDir   string
	startPath string
	clipboard func(string) error

	lister    *DirectoryLister
	selection *SelectionManager
	preview   *PreviewLoader

	ctx    context.Context
	cancel context.CancelFunc
	tasks  sync.WaitGroup

	// persistMu serialises settings saves.
	persistMu sync.Mutex
}

// NewController builds a controller around a fresh default snapshot.
func NewController(opts Options) (*Controller, error) {
	if opts.Provider == nil {
		return nil, errors.New("controller: provider is required")
	}
	if opts.Settings == nil {
		return nil, errors.New("controller: settings gateway is required")
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	home := opts.HomeDir
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("controller: resolve home directory: %w", err)
		}
		home = dir
	}
	start := opts.StartPath
	if start == "" {
		start = home
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		store:     NewStore(NewUiState()),
		provider:  opts.Provider,
		settings:  opts.Settings,
		log:       log.With("state"),
		homeDir:   filepath.Clean(home),
		startPath: filepath.Clean(start),
		clipboard: copyFn,
		ctx:       ctx,
		cancel:    cancel,
	}
	c.lister = NewDirectoryLister(c.provider, c.store, c.log, &c.tasks)
	c.selection = NewSelectionManager(c.provider, c.store, c.log, &c.tasks, opts.DeleteConcurrency, c.refreshCurrent)
	c.preview = NewPreviewLoader(c.provider, c.store, c.log, &c.tasks)
	return c, nil
}

// State returns a copy of the current snapshot.
func (c *Controller) State() UiState {
	return c.store.Read()
}

// Subscribe registers observer for the current and every later snapshot.
func (c *Controller) Subscribe(observer func(UiState)) *Subscription {
	return c.store.Subscribe(observer)
}

// Start loads the persisted settings in the background, merges them into the
// snapshot and opens the start directory.
func (c *Controller) Start() {
	c.tasks.Go(func() {
		loaded, err := c.settings.Get(c.ctx)
		if err != nil {
			c.log.Error().Err(err).Msg("loading settings failed, using defaults")
			loaded = settings.Settings{}
		}

		next := c.store.Update(func(s UiState) UiState {
			s.DarkMode = loaded.DarkMode
			s.ShowDotFiles = loaded.ShowDotFiles
			if s.CurrentPath == "" {
				s = withPath(s, c.startPath)
			}
			if err != nil {
				s.LastError = newFailure(PersistenceFailure, "load settings", "", err)
			}
			return s
		})
		c.lister.Refresh(next.CurrentPath, next.ShowDotFiles)
	})
}

// Wait blocks until every background task has finished.
func (c *Controller) Wait() {
	c.tasks.Wait()
}

// Close waits for background work and stops all subscriptions.
func (c *Controller) Close() {
	c.tasks.Wait()
	c.cancel()
	c.store.Close()
}

// SetPath makes path the current directory and lists it.
func (c *Controller) SetPath(path string) {
	if path == "" {
		return
	}
	path = filepath.Clean(path)

	c.preview.Reset()
	next := c.store.Update(func(s UiState) UiState {
		return withPath(s, path)
	})
	c.log.Debug().Str("path", path).Msg("navigate")
	c.lister.Refresh(next.CurrentPath, next.ShowDotFiles)
}

func withPath(s UiState, path string) UiState {
	if s.CurrentPath != path {
		s.Files = []string{}
	}
	s.CurrentPath = path
	s.PathSegments = BuildPathSegments(path)
	s.SelectedFiles = map[string]struct{}{}
	s.LastError = nil
	return clearPreview(s)
}

func (c *Controller) NavigateHome()      { c.SetPath(c.homeDir) }
func (c *Controller) NavigateDownloads() { c.SetPath(filepath.Join(c.homeDir, DownloadsFolder)) }
func (c *Controller) NavigateMusic()     { c.SetPath(filepath.Join(c.homeDir, MusicFolder)) }
func (c *Controller) NavigateVideos()    { c.SetPath(filepath.Join(c.homeDir, VideosFolder)) }
func (c *Controller) NavigatePictures()  { c.SetPath(filepath.Join(c.homeDir, PicturesFolder)) }
func (c *Controller) NavigateDocuments() { c.SetPath(filepath.Join(c.homeDir, DocumentsFolder)) }

// NavigateUp moves to the parent directory; no-op at the root.
func (c *Controller) NavigateUp() {
	parent, ok := c.provider.Parent(c.store.Read().CurrentPath)
	if !ok {
		return
	}
	c.SetPath(parent)
}

// Enter opens directories in place and hands files to the default application.
func (c *Controller) Enter(path string) {
	if c.provider.IsDirectory(path) {
		c.SetPath(path)
		return
	}
	c.OpenFile(path)
}

// HandleDotFilesVisibility flips dot-file visibility, saves it and re-lists.
// The save and the refresh run independently.
func (c *Controller) HandleDotFilesVisibility() {
	next := c.store.Update(func(s UiState) UiState {
		s.ShowDotFiles = !s.ShowDotFiles
		return s
	})
	c.persistSettings()
	c.lister.Refresh(next.CurrentPath, next.ShowDotFiles)
}

// ToggleDarkMode flips dark mode; the new value is visible when the call
// returns. A failed save is logged and not rolled back.
func (c *Controller) ToggleDarkMode() {
	c.store.Update(func(s UiState) UiState {
		s.DarkMode = !s.DarkMode
		return s
	})
	c.persistSettings()
}

func (c *Controller) ExpandSettings() {
	c.setSettingsExpanded(true)
}

func (c *Controller) CollapseSettings() {
	c.setSettingsExpanded(false)
}

func (c *Controller) setSettingsExpanded(expanded bool) {
	c.store.Apply(func(s UiState) (UiState, bool) {
		if s.IsSettingsExpanded == expanded {
			return s, false
		}
		s.IsSettingsExpanded = expanded
		return s, true
	})
}

// persistSettings saves the preferences of the snapshot current when the
// save runs, so the last save always writes the latest values.
func (c *Controller) persistSettings() {
	c.tasks.Go(func() {
		c.persistMu.Lock()
		defer c.persistMu.Unlock()

		snap := c.store.Read()
		current := settings.Settings{DarkMode: snap.DarkMode, ShowDotFiles: snap.ShowDotFiles}
		if err := c.settings.Save(c.ctx, current); err != nil {
			c.log.Error().Err(err).Msg("saving settings failed")
			c.store.Update(func(s UiState) UiState {
				s.LastError = newFailure(PersistenceFailure, "save settings", "", err)
				return s
			})
			return
		}
		c.log.Debug().Bool("dark_mode", current.DarkMode).Bool("show_dot_files", current.ShowDotFiles).Msg("settings saved")
	})
}

// ToggleSelection adds or removes path from the selection.
func (c *Controller) ToggleSelection(path string) {
	c.selection.Toggle(path)
}

// DeleteFile removes one entry in the background.
func (c *Controller) DeleteFile(path string) <-chan DeleteOutcome {
	return c.selection.DeleteSingle(path)
}

// DeleteSelected removes every selected entry in the background.
func (c *Controller) DeleteSelected() <-chan DeleteOutcome {
	return c.selection.DeleteSelected()
}

// Hover forwards pointer enter/leave events to the preview loader.
func (c *Controller) Hover(path string, hovered bool) {
	c.preview.OnHover(path, hovered)
}

// OpenFile launches the default application for path. Failures are logged.
func (c *Controller) OpenFile(path string) {
	c.tasks.Go(func() {
		if err := c.provider.OpenWithDefaultApplication(path); err != nil {
			c.log.Warn().Err(err).Str("path", path).Msg("open failed")
			c.store.Update(func(s UiState) UiState {
				s.LastError = newFailure(IOFailure, "open", path, err)
				return s
			})
		}
	})
}

// CopyPath puts path on the system clipboard.
func (c *Controller) CopyPath(path string) {
	c.tasks.Go(func() {
		if err := c.clipboard(path); err != nil {
			c.log.Warn().Err(err).Str("path", path).Msg("copy to clipboard failed")
			c.store.Update(func(s UiState) UiState {
				s.LastError = newFailure(IOFailure, "copy", path, err)
				return s
			})
		}
	})
}

// Describe reads metadata for path, including recursive folder size.
func (c *Controller) Describe(ctx context.Context, path string) (fsutil.Metadata, error) {
	return fsutil.Describe(ctx, path)
}

func (c *Controller) refreshCurrent() {
	snap := c.store.Read()
	c.lister.Refresh(snap.CurrentPath, snap.ShowDotFiles)
}
