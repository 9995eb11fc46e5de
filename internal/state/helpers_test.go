package state

import (
	"context"
	"errors"
	"image"
	"slices"
	"sync"
	"testing"
	"time"

	fsutil "github.com/kk-code-lab/filer/internal/fs"
	"github.com/kk-code-lab/filer/internal/settings"
)

// gate parks a fake call until released.
type gate struct {
	entered chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gate) wait(t *testing.T) {
	t.Helper()
	select {
	case <-g.entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected gated call to start")
	}
}

func (g *gate) open() {
	close(g.release)
}

type fakeProvider struct {
	mu         sync.Mutex
	dirs       map[string][]string
	listErr    map[string]error
	listGates  map[string]*gate
	deleteErr  map[string]error
	deleted    []string
	images     map[string]image.Image
	imageErr   map[string]error
	imageGates map[string]*gate
	opened     []string
	openErr    error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		dirs:       map[string][]string{},
		listErr:    map[string]error{},
		listGates:  map[string]*gate{},
		deleteErr:  map[string]error{},
		images:     map[string]image.Image{},
		imageErr:   map[string]error{},
		imageGates: map[string]*gate{},
	}
}

func (f *fakeProvider) setDir(path string, children ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirs[path] = slices.Clone(children)
}

// gateList blocks the next listing of path after it captured its result.
func (f *fakeProvider) gateList(path string) *gate {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := newGate()
	f.listGates[path] = g
	return g
}

func (f *fakeProvider) gateImage(path string) *gate {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := newGate()
	f.imageGates[path] = g
	return g
}

func (f *fakeProvider) ListDirectory(path string) ([]string, error) {
	f.mu.Lock()
	children, ok := f.dirs[path]
	children = slices.Clone(children)
	err := f.listErr[path]
	g := f.listGates[path]
	delete(f.listGates, path)
	f.mu.Unlock()

	if g != nil {
		close(g.entered)
		<-g.release
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fsutil.ErrNotDirectory
	}
	return children, nil
}

func (f *fakeProvider) DeleteEntry(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErr[path]; err != nil {
		return err
	}
	parent, _ := fsutil.ParentOf(path)
	f.dirs[parent] = slices.DeleteFunc(f.dirs[parent], func(p string) bool { return p == path })
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeProvider) OpenWithDefaultApplication(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, path)
	return f.openErr
}

func (f *fakeProvider) ReadImage(path string) (image.Image, error) {
	f.mu.Lock()
	img := f.images[path]
	err := f.imageErr[path]
	g := f.imageGates[path]
	delete(f.imageGates, path)
	f.mu.Unlock()

	if g != nil {
		close(g.entered)
		<-g.release
	}
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fsutil.ErrUnsupportedImage
	}
	return img, nil
}

func (f *fakeProvider) IsDirectory(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.dirs[path]
	return ok
}

func (f *fakeProvider) Parent(path string) (string, bool) {
	return fsutil.ParentOf(path)
}

func (f *fakeProvider) deletedPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := slices.Clone(f.deleted)
	slices.Sort(out)
	return out
}

// failingGateway fails every call with err.
type failingGateway struct {
	err error
}

func (g failingGateway) Get(context.Context) (settings.Settings, error) {
	return settings.Settings{}, g.err
}

func (g failingGateway) Save(context.Context, settings.Settings) error {
	return g.err
}

var errBoom = errors.New("boom")

func newTestController(t *testing.T, fp *fakeProvider, gw settings.Gateway, start string) *Controller {
	t.Helper()
	if gw == nil {
		gw = settings.NewMemoryStore(settings.Settings{})
	}
	c, err := NewController(Options{
		Provider:          fp,
		Settings:          gw,
		HomeDir:           "/home/u",
		StartPath:         start,
		DeleteConcurrency: 2,
		Clipboard:         func(string) error { return nil },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

// startController runs Start and waits for the initial listing.
func startController(t *testing.T, fp *fakeProvider, gw settings.Gateway, start string) *Controller {
	t.Helper()
	c := newTestController(t, fp, gw, start)
	c.Start()
	c.Wait()
	return c
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newTestImage(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}
