package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/filer/internal/fs"
	statepkg "github.com/kk-code-lab/filer/internal/state"
	"github.com/kk-code-lab/filer/internal/ui/input"
	renderui "github.com/kk-code-lab/filer/internal/ui/render"
)

// Payloads carried by tcell interrupt events from background goroutines.
type (
	snapshotReady struct{}

	infoLoaded struct {
		path string
		meta fsutil.Metadata
		err  error
	}

	deleteFinished struct {
		outcome statepkg.DeleteOutcome
	}
)

// Run subscribes to the controller, starts it and processes events until quit.
func (app *Application) Run() {
	defer app.screen.Fini()

	sub := app.ctrl.Subscribe(app.onSnapshot)
	defer sub.Unsubscribe()
	app.ctrl.Start()

	app.render()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		renderPending := false
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return
			}
			renderPending = app.handleEvent(ev)
		case <-sigContCh:
			renderPending = app.resumeAfterStop()
		}

		if app.drainSnapshot() {
			renderPending = true
		}
		if renderPending && !app.shouldQuit {
			app.render()
		}
	}
}

// onSnapshot runs on the subscription goroutine. Only the newest snapshot is
// kept; the interrupt merely wakes the loop, so a dropped post loses nothing.
func (app *Application) onSnapshot(s statepkg.UiState) {
	app.pendingMu.Lock()
	app.pending = &s
	app.pendingMu.Unlock()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt(snapshotReady{}))
}

func (app *Application) drainSnapshot() bool {
	app.pendingMu.Lock()
	next := app.pending
	app.pending = nil
	app.pendingMu.Unlock()

	if next == nil {
		return false
	}
	app.applySnapshot(*next)
	return true
}

func (app *Application) applySnapshot(s statepkg.UiState) {
	if s.CurrentPath != app.snapshot.CurrentPath {
		app.cursor = 0
		app.scroll = 0
		app.closeInfo()
	}
	app.snapshot = s
	app.clampCursor()
	app.followCursor()
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		app.handleKey(input.Decode(ev, input.Mode{HelpVisible: app.showHelp}))
	case *tcell.EventResize:
		app.screen.Sync()
		app.clampCursor()
	case *tcell.EventMouse:
		app.handleMouse(ev)
	case *tcell.EventInterrupt:
		app.handleInterrupt(ev.Data())
	default:
		return false
	}
	return true
}

func (app *Application) handleInterrupt(data interface{}) {
	switch d := data.(type) {
	case infoLoaded:
		if d.path != app.currentFile() {
			return
		}
		if d.err != nil {
			app.message = d.err.Error()
			return
		}
		meta := d.meta
		app.info = &meta
	case deleteFinished:
		app.message = deleteMessage(d.outcome)
	}
}

func (app *Application) handleKey(key input.Key) {
	if key.Command != input.None {
		app.message = ""
	}
	file := app.currentFile()

	switch key.Command {
	case input.Quit:
		app.shouldQuit = true
	case input.CursorUp:
		app.moveCursor(-1)
	case input.CursorDown:
		app.moveCursor(1)
	case input.PageUp:
		app.moveCursor(-app.pageSize())
	case input.PageDown:
		app.moveCursor(app.pageSize())
	case input.CursorTop:
		app.moveCursor(-len(app.snapshot.Files))
	case input.CursorBottom:
		app.moveCursor(len(app.snapshot.Files))
	case input.Enter:
		if file != "" {
			app.ctrl.Enter(file)
		}
	case input.Parent:
		app.ctrl.NavigateUp()
	case input.ToggleSelect:
		if file != "" {
			app.ctrl.ToggleSelection(file)
		}
	case input.DeleteFile:
		if file != "" {
			app.watchDelete(app.ctrl.DeleteFile(file))
		}
	case input.DeleteSelected:
		if len(app.snapshot.SelectedFiles) > 0 {
			app.watchDelete(app.ctrl.DeleteSelected())
		}
	case input.ToggleDotFiles:
		app.ctrl.HandleDotFilesVisibility()
	case input.ToggleDarkMode:
		app.ctrl.ToggleDarkMode()
	case input.ToggleSettings:
		if app.snapshot.IsSettingsExpanded {
			app.ctrl.CollapseSettings()
		} else {
			app.ctrl.ExpandSettings()
		}
	case input.ToggleInfo:
		if app.info != nil {
			app.closeInfo()
		} else if file != "" {
			app.describe(file)
		}
	case input.CopyPath:
		if file != "" {
			app.ctrl.CopyPath(file)
			app.message = "copied " + file
		}
	case input.OpenExternal:
		if file != "" {
			app.ctrl.OpenFile(file)
		}
	case input.Refresh:
		app.ctrl.SetPath(app.snapshot.CurrentPath)
	case input.Home:
		app.ctrl.NavigateHome()
	case input.Place:
		app.goToPlace(key.Place)
	case input.ToggleHelp:
		app.showHelp = !app.showHelp
	case input.Dismiss:
		app.dismiss()
	case input.Suspend:
		app.suspendToShell()
		app.resumeAfterStop()
	}
}

func (app *Application) dismiss() {
	switch {
	case app.showHelp:
		app.showHelp = false
	case app.info != nil:
		app.closeInfo()
	case app.snapshot.IsSettingsExpanded:
		app.ctrl.CollapseSettings()
	}
}

func (app *Application) goToPlace(idx int) {
	nav := []func(){
		app.ctrl.NavigateHome,
		app.ctrl.NavigateDownloads,
		app.ctrl.NavigateMusic,
		app.ctrl.NavigateVideos,
		app.ctrl.NavigatePictures,
		app.ctrl.NavigateDocuments,
	}
	if idx >= 0 && idx < len(nav) {
		nav[idx]()
	}
}

func (app *Application) moveCursor(delta int) {
	app.cursor += delta
	app.clampCursor()
	app.closeInfo()
	app.followCursor()
}

func (app *Application) setCursor(idx int) {
	if idx == app.cursor {
		return
	}
	app.cursor = idx
	app.clampCursor()
	app.closeInfo()
	app.followCursor()
}

func (app *Application) clampCursor() {
	n := len(app.snapshot.Files)
	if app.cursor >= n {
		app.cursor = n - 1
	}
	if app.cursor < 0 {
		app.cursor = 0
	}

	rows := app.pageSize()
	if app.cursor < app.scroll {
		app.scroll = app.cursor
	}
	if app.cursor >= app.scroll+rows {
		app.scroll = app.cursor - rows + 1
	}
	if maxScroll := n - rows; app.scroll > maxScroll {
		app.scroll = maxScroll
	}
	if app.scroll < 0 {
		app.scroll = 0
	}
}

// followCursor moves the preview hover to the file under the cursor.
func (app *Application) followCursor() {
	current := app.currentFile()
	if current == app.hovered {
		return
	}
	if app.hovered != "" {
		app.ctrl.Hover(app.hovered, false)
	}
	if current != "" {
		app.ctrl.Hover(current, true)
	}
	app.hovered = current
}

func (app *Application) pageSize() int {
	w, h := app.screen.Size()
	rows := renderui.ComputeLayout(w, h).ListRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (app *Application) describe(path string) {
	if app.infoCancel != nil {
		app.infoCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	app.infoCancel = cancel

	go func() {
		meta, err := app.ctrl.Describe(ctx, path)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			app.log.Warn().Err(err).Str("path", path).Msg("describe failed")
		}
		_ = app.screen.PostEvent(tcell.NewEventInterrupt(infoLoaded{path: path, meta: meta, err: err}))
	}()
}

func (app *Application) closeInfo() {
	if app.infoCancel != nil {
		app.infoCancel()
		app.infoCancel = nil
	}
	app.info = nil
}

func (app *Application) watchDelete(done <-chan statepkg.DeleteOutcome) {
	go func() {
		outcome, ok := <-done
		if !ok {
			return
		}
		_ = app.screen.PostEvent(tcell.NewEventInterrupt(deleteFinished{outcome: outcome}))
	}()
}

func deleteMessage(outcome statepkg.DeleteOutcome) string {
	deleted := len(outcome.Deleted())
	failed := outcome.Failed()
	switch {
	case len(failed) == 0:
		return fmt.Sprintf("deleted %d", deleted)
	case len(failed) == 1 && deleted == 0:
		return failed[0].Err.Error()
	default:
		return fmt.Sprintf("deleted %d, %d failed", deleted, len(failed))
	}
}
