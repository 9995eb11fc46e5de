package settings

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
)

func TestSQLiteStoreDefaultsWhenEmpty(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "settings.db"))
	if err != nil {
		t.Fatalf("OpenSQLite returned error: %v", err)
	}
	defer func() {
		_ = store.Close()
	}()

	got, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != (Settings{}) {
		t.Fatalf("expected default settings, got %+v", got)
	}
}

func TestSQLiteStoreRoundTripAndOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite returned error: %v", err)
	}

	ctx := context.Background()
	if err := store.Save(ctx, Settings{DarkMode: true, ShowDotFiles: true}); err != nil {
		t.Fatalf("first Save returned error: %v", err)
	}
	if err := store.Save(ctx, Settings{DarkMode: true}); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer func() {
		_ = reopened.Close()
	}()

	got, err := reopened.Get(ctx)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	want := Settings{DarkMode: true}
	if got != want {
		t.Fatalf("expected %+v after overwrite, got %+v", want, got)
	}
}

func TestSQLiteStoreConcurrentSaves(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("OpenSQLite returned error: %v", err)
	}
	defer func() {
		_ = store.Close()
	}()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := store.Save(context.Background(), Settings{DarkMode: i%2 == 0}); err != nil {
				t.Errorf("Save %d returned error: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if _, err := store.Get(context.Background()); err != nil {
		t.Fatalf("Get after concurrent saves returned error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(Settings{ShowDotFiles: true})
	ctx := context.Background()

	got, err := store.Get(ctx)
	if err != nil || !got.ShowDotFiles {
		t.Fatalf("expected seeded settings, got %+v (err %v)", got, err)
	}
	if err := store.Save(ctx, Settings{DarkMode: true}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if store.Saves() != 1 {
		t.Fatalf("expected 1 save, got %d", store.Saves())
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := store.Save(cancelled, Settings{}); err == nil {
		t.Fatalf("expected cancelled context to fail Save")
	}
}
