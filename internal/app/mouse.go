package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	renderui "github.com/kk-code-lab/filer/internal/ui/render"
)

const doubleClickThreshold = 300 * time.Millisecond

// handleMouse maps clicks to navigation and selection. Pointer motion over the
// list moves the cursor, which drives the image preview.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	if app.showHelp {
		return
	}

	x, y := ev.Position()
	buttons := ev.Buttons()
	layout, ok := app.renderer.LastLayout()
	if !ok {
		w, h := app.screen.Size()
		layout = renderui.ComputeLayout(w, h)
	}

	switch {
	case buttons&tcell.WheelUp != 0:
		app.moveCursor(-1)
		return
	case buttons&tcell.WheelDown != 0:
		app.moveCursor(1)
		return
	}

	if buttons&tcell.Button1 == 0 {
		if idx, ok := app.listIndexAt(layout, x, y); ok {
			app.setCursor(idx)
		}
		return
	}

	if y == 0 {
		if path, ok := app.renderer.BreadcrumbAt(x); ok {
			app.ctrl.SetPath(path)
		}
		return
	}

	if place, ok := renderui.PlaceAt(layout, x, y); ok {
		app.goToPlace(place)
		return
	}

	idx, ok := app.listIndexAt(layout, x, y)
	if !ok {
		return
	}

	clickKey := fmt.Sprintf("list-%d", idx)
	doubleClick := app.lastClickKey == clickKey && time.Since(app.lastClickTime) <= doubleClickThreshold
	app.lastClickKey = clickKey
	app.lastClickTime = time.Now()

	app.setCursor(idx)
	if doubleClick {
		app.lastClickKey = ""
		app.ctrl.Enter(app.currentFile())
	}
}

func (app *Application) listIndexAt(layout renderui.Layout, x, y int) (int, bool) {
	if x < layout.MainPanelStart || x >= layout.MainPanelStart+layout.MainPanelWidth {
		return 0, false
	}
	row := y - layout.ListStartY
	if row < 0 || row >= layout.ListRows {
		return 0, false
	}
	idx := app.scroll + row
	if idx >= len(app.snapshot.Files) {
		return 0, false
	}
	return idx, true
}
