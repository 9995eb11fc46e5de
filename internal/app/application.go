package app

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/filer/internal/fs"
	"github.com/kk-code-lab/filer/internal/logging"
	statepkg "github.com/kk-code-lab/filer/internal/state"
	renderui "github.com/kk-code-lab/filer/internal/ui/render"
)

// Application is the terminal front end: it renders controller snapshots and
// turns keys and mouse events into controller operations.
type Application struct {
	screen   tcell.Screen
	ctrl     *statepkg.Controller
	renderer *renderui.Renderer
	log      *logging.Logger

	places []string

	// Latest snapshot handed over by the subscription goroutine.
	pendingMu sync.Mutex
	pending   *statepkg.UiState

	// Everything below is owned by the event loop.
	snapshot      statepkg.UiState
	cursor        int
	scroll        int
	hovered       string
	info          *fsutil.Metadata
	infoCancel    context.CancelFunc
	showHelp      bool
	message       string
	shouldQuit    bool
	lastClickKey  string
	lastClickTime time.Time
}

// NewApplication wires a screen that is already initialised to ctrl.
// homeDir anchors the sidebar places and must match the controller's.
func NewApplication(screen tcell.Screen, ctrl *statepkg.Controller, homeDir string, log *logging.Logger) *Application {
	if log == nil {
		log = logging.Nop()
	}
	places := []string{filepath.Clean(homeDir)}
	for _, folder := range []string{
		statepkg.DownloadsFolder,
		statepkg.MusicFolder,
		statepkg.VideosFolder,
		statepkg.PicturesFolder,
		statepkg.DocumentsFolder,
	} {
		places = append(places, filepath.Join(homeDir, folder))
	}

	return &Application{
		screen:   screen,
		ctrl:     ctrl,
		renderer: renderui.NewRenderer(screen),
		log:      log.With("app"),
		places:   places,
		snapshot: ctrl.State(),
	}
}

// CurrentPath returns the directory shown when the application exited.
func (app *Application) CurrentPath() string {
	return app.snapshot.CurrentPath
}

// Close releases the screen.
func (app *Application) Close() error {
	if app.infoCancel != nil {
		app.infoCancel()
	}
	app.screen.Fini()
	return nil
}

func (app *Application) view() renderui.View {
	return renderui.View{
		State:       app.snapshot,
		Cursor:      app.cursor,
		Scroll:      app.scroll,
		ActivePlace: app.activePlace(),
		Info:        app.info,
		ShowHelp:    app.showHelp,
		Message:     app.message,
	}
}

func (app *Application) render() {
	app.renderer.Render(app.view())
}

func (app *Application) activePlace() int {
	for i, p := range app.places {
		if p == app.snapshot.CurrentPath {
			return i
		}
	}
	return -1
}

func (app *Application) currentFile() string {
	files := app.snapshot.Files
	if app.cursor < 0 || app.cursor >= len(files) {
		return ""
	}
	return files[app.cursor]
}
