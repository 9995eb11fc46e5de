package app

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/filer/internal/fs"
	"github.com/kk-code-lab/filer/internal/settings"
	statepkg "github.com/kk-code-lab/filer/internal/state"
	"github.com/kk-code-lab/filer/internal/ui/input"
)

type testApp struct {
	*Application
	dir string
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	dir := t.TempDir()

	f, err := os.Create(filepath.Join(dir, "a.png"))
	if err != nil {
		t.Fatalf("create png: %v", err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	f.Close()
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	ctrl, err := statepkg.NewController(statepkg.Options{
		Provider:  fsutil.NewOSProvider(64),
		Settings:  settings.NewMemoryStore(settings.Settings{}),
		HomeDir:   dir,
		Clipboard: func(string) error { return nil },
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	t.Cleanup(ctrl.Close)

	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(scr.Fini)
	scr.SetSize(120, 20)

	app := NewApplication(scr, ctrl, dir, nil)
	ctrl.Start()
	settle(app)
	return testApp{Application: app, dir: dir}
}

// settle waits for background work and hands the newest snapshot to the app,
// repeating while doing so triggers more work (hover follows the cursor).
func settle(app *Application) {
	for range 5 {
		app.ctrl.Wait()
		before := app.snapshot.Version
		app.applySnapshot(app.ctrl.State())
		app.ctrl.Wait()
		if app.ctrl.State().Version == before {
			break
		}
	}
	app.applySnapshot(app.ctrl.State())
}

func (a testApp) path(name string) string {
	return filepath.Join(a.dir, name)
}

func TestStartListsDirectoryAndPreviewsCursorImage(t *testing.T) {
	a := newTestApp(t)

	want := []string{a.path("a.png"), a.path("b.txt"), a.path("sub")}
	if !slices.Equal(a.snapshot.Files, want) {
		t.Fatalf("expected %v, got %v", want, a.snapshot.Files)
	}
	if a.snapshot.PreviewPath != a.path("a.png") {
		t.Fatalf("expected preview of a.png, got %q", a.snapshot.PreviewPath)
	}

	a.handleKey(input.Key{Command: input.CursorDown})
	settle(a.Application)
	if a.snapshot.ImageForPreview != nil {
		t.Fatalf("expected preview cleared on text file")
	}
	if a.currentFile() != a.path("b.txt") {
		t.Fatalf("expected cursor on b.txt, got %q", a.currentFile())
	}
}

func TestEnterOpensDirectoryAndParentReturns(t *testing.T) {
	a := newTestApp(t)

	a.handleKey(input.Key{Command: input.CursorBottom})
	a.handleKey(input.Key{Command: input.Enter})
	settle(a.Application)
	if a.snapshot.CurrentPath != a.path("sub") {
		t.Fatalf("expected to enter sub, got %q", a.snapshot.CurrentPath)
	}
	if a.cursor != 0 {
		t.Fatalf("expected cursor reset, got %d", a.cursor)
	}

	a.handleKey(input.Key{Command: input.Parent})
	settle(a.Application)
	if a.snapshot.CurrentPath != a.dir {
		t.Fatalf("expected to return to %q, got %q", a.dir, a.snapshot.CurrentPath)
	}
}

func TestSelectAndDeleteSelected(t *testing.T) {
	a := newTestApp(t)

	a.handleKey(input.Key{Command: input.CursorDown})
	a.handleKey(input.Key{Command: input.ToggleSelect})
	settle(a.Application)
	if !a.snapshot.IsSelected(a.path("b.txt")) {
		t.Fatalf("expected b.txt selected")
	}

	a.handleKey(input.Key{Command: input.DeleteSelected})
	settle(a.Application)

	if _, err := os.Stat(a.path("b.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected b.txt removed, stat err=%v", err)
	}
	if slices.Contains(a.snapshot.Files, a.path("b.txt")) {
		t.Fatalf("expected b.txt gone from listing, got %v", a.snapshot.Files)
	}
	if len(a.snapshot.SelectedFiles) != 0 {
		t.Fatalf("expected selection cleared")
	}
}

func TestToggleSettingsAndDarkMode(t *testing.T) {
	a := newTestApp(t)

	a.handleKey(input.Key{Command: input.ToggleSettings})
	a.handleKey(input.Key{Command: input.ToggleDarkMode})
	settle(a.Application)
	if !a.snapshot.IsSettingsExpanded || !a.snapshot.DarkMode {
		t.Fatalf("expected settings expanded and dark mode on")
	}

	a.handleKey(input.Key{Command: input.Dismiss})
	settle(a.Application)
	if a.snapshot.IsSettingsExpanded {
		t.Fatalf("expected Esc to collapse settings")
	}
}

func TestSidebarClickNavigatesToPlace(t *testing.T) {
	a := newTestApp(t)
	a.render()

	layout, _ := a.renderer.LastLayout()
	a.handleEvent(tcell.NewEventMouse(1, layout.ListStartY+1, tcell.Button1, tcell.ModNone))
	settle(a.Application)

	if want := a.path(statepkg.DownloadsFolder); a.snapshot.CurrentPath != want {
		t.Fatalf("expected %q, got %q", want, a.snapshot.CurrentPath)
	}
	if a.activePlace() != 1 {
		t.Fatalf("expected Downloads to be the active place, got %d", a.activePlace())
	}
}

func TestBreadcrumbClickNavigatesUp(t *testing.T) {
	a := newTestApp(t)
	a.render()

	parent := filepath.Dir(a.dir)
	w, _ := a.screen.Size()
	x := -1
	for col := 0; col < w; col++ {
		if p, ok := a.renderer.BreadcrumbAt(col); ok && p == parent {
			x = col
			break
		}
	}
	if x < 0 {
		t.Fatalf("expected a breadcrumb segment for %q", parent)
	}

	a.handleEvent(tcell.NewEventMouse(x, 0, tcell.Button1, tcell.ModNone))
	settle(a.Application)
	if a.snapshot.CurrentPath != parent {
		t.Fatalf("expected %q, got %q", parent, a.snapshot.CurrentPath)
	}
}

func TestListClickMovesCursor(t *testing.T) {
	a := newTestApp(t)
	a.render()

	layout, _ := a.renderer.LastLayout()
	a.handleEvent(tcell.NewEventMouse(layout.MainPanelStart+2, layout.ListStartY+2, tcell.Button1, tcell.ModNone))
	if a.currentFile() != a.path("sub") {
		t.Fatalf("expected cursor on sub, got %q", a.currentFile())
	}
}

func TestInfoLoadedForCursorFile(t *testing.T) {
	a := newTestApp(t)

	meta, err := fsutil.Describe(t.Context(), a.path("a.png"))
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	a.handleInterrupt(infoLoaded{path: a.path("a.png"), meta: meta})
	if a.info == nil || a.info.Name != "a.png" {
		t.Fatalf("expected info for a.png, got %+v", a.info)
	}

	a.render()
	layout, _ := a.renderer.LastLayout()
	if !layout.ShowPreview {
		t.Fatalf("expected preview panel at 120 columns")
	}

	a.handleInterrupt(infoLoaded{path: a.path("b.txt"), meta: meta})
	if a.info.Name != "a.png" {
		t.Fatalf("expected stale info for another file to be ignored")
	}

	a.handleKey(input.Key{Command: input.ToggleInfo})
	if a.info != nil {
		t.Fatalf("expected info closed")
	}
}

func TestDeleteMessage(t *testing.T) {
	ok := statepkg.DeleteResult{Path: "/d/a"}
	bad := statepkg.DeleteResult{Path: "/d/b", Err: os.ErrPermission}

	tests := []struct {
		name    string
		outcome statepkg.DeleteOutcome
		want    string
	}{
		{"all deleted", statepkg.DeleteOutcome{Results: []statepkg.DeleteResult{ok}}, "deleted 1"},
		{"single failure", statepkg.DeleteOutcome{Results: []statepkg.DeleteResult{bad}}, "permission denied"},
		{"partial", statepkg.DeleteOutcome{Results: []statepkg.DeleteResult{ok, bad}}, "deleted 1, 1 failed"},
	}
	for _, tt := range tests {
		if got := deleteMessage(tt.outcome); !strings.Contains(got, tt.want) {
			t.Fatalf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}
