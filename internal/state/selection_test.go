package state

import (
	"slices"
	"testing"
	"time"
)

func TestToggleIsSymmetric(t *testing.T) {
	fp := newFakeProvider()
	fp.setDir("/d", "/d/a")
	c := startController(t, fp, nil, "/d")

	c.ToggleSelection("/d/a")
	if !c.State().IsSelected("/d/a") {
		t.Fatalf("expected /d/a selected")
	}
	c.ToggleSelection("/d/a")
	if c.State().IsSelected("/d/a") {
		t.Fatalf("expected /d/a deselected")
	}
}

func TestToggleIgnoresUnlistedPath(t *testing.T) {
	fp := newFakeProvider()
	fp.setDir("/d", "/d/a")
	c := startController(t, fp, nil, "/d")

	before := c.State().Version
	c.ToggleSelection("/d/ghost")

	got := c.State()
	if len(got.SelectedFiles) != 0 {
		t.Fatalf("expected empty selection, got %v", got.SelectedList())
	}
	if got.Version != before {
		t.Fatalf("expected no publish, version went from %d to %d", before, got.Version)
	}
}

func TestSetPathClearsSelection(t *testing.T) {
	fp := newFakeProvider()
	fp.setDir("/d", "/d/a")
	fp.setDir("/e", "/e/b")
	c := startController(t, fp, nil, "/d")

	c.ToggleSelection("/d/a")
	c.SetPath("/e")
	if n := len(c.State().SelectedFiles); n != 0 {
		t.Fatalf("expected empty selection, got %d entries", n)
	}
}

func TestDeleteSelectedToleratesPartialFailure(t *testing.T) {
	fp := newFakeProvider()
	fp.setDir("/d", "/d/a", "/d/b", "/d/c")
	fp.deleteErr["/d/a"] = errBoom
	c := startController(t, fp, nil, "/d")

	c.ToggleSelection("/d/a")
	c.ToggleSelection("/d/b")

	outcome := receiveOutcome(t, c.DeleteSelected())
	c.Wait()

	if want := []string{"/d/b"}; !slices.Equal(outcome.Deleted(), want) {
		t.Fatalf("expected deleted %v, got %v", want, outcome.Deleted())
	}
	failed := outcome.Failed()
	if len(failed) != 1 || failed[0].Path != "/d/a" {
		t.Fatalf("expected /d/a to fail, got %+v", failed)
	}
	if !IsFailure(outcome.Err(), IOFailure) {
		t.Fatalf("expected io failure, got %v", outcome.Err())
	}

	got := c.State()
	if len(got.SelectedFiles) != 0 {
		t.Fatalf("expected empty selection, got %v", got.SelectedList())
	}
	if want := []string{"/d/a", "/d/c"}; !slices.Equal(got.Files, want) {
		t.Fatalf("expected %v, got %v", want, got.Files)
	}
	if got.LastError == nil {
		t.Fatalf("expected last error to be recorded")
	}
}

func TestDeleteSelectedUsesSelectionAtCallTime(t *testing.T) {
	fp := newFakeProvider()
	fp.setDir("/d", "/d/a", "/d/b")
	c := startController(t, fp, nil, "/d")

	c.ToggleSelection("/d/a")
	done := c.DeleteSelected()
	c.ToggleSelection("/d/b")
	receiveOutcome(t, done)
	c.Wait()

	if want := []string{"/d/a"}; !slices.Equal(fp.deletedPaths(), want) {
		t.Fatalf("expected deleted %v, got %v", want, fp.deletedPaths())
	}
}

func TestDeleteSelectedWithEmptySelection(t *testing.T) {
	fp := newFakeProvider()
	fp.setDir("/d", "/d/a")
	c := startController(t, fp, nil, "/d")

	outcome := receiveOutcome(t, c.DeleteSelected())
	if len(outcome.Results) != 0 || outcome.Err() != nil {
		t.Fatalf("expected empty outcome, got %+v", outcome)
	}
}

func TestDeleteSingleAlwaysRefreshes(t *testing.T) {
	fp := newFakeProvider()
	fp.setDir("/d", "/d/a", "/d/b")
	fp.deleteErr["/d/b"] = errBoom
	c := startController(t, fp, nil, "/d")

	outcome := receiveOutcome(t, c.DeleteFile("/d/a"))
	c.Wait()
	if outcome.Err() != nil {
		t.Fatalf("unexpected error: %v", outcome.Err())
	}
	if want := []string{"/d/b"}; !slices.Equal(c.State().Files, want) {
		t.Fatalf("expected %v, got %v", want, c.State().Files)
	}

	// An external change is picked up by the refresh that follows a failed delete.
	fp.setDir("/d", "/d/b", "/d/c")
	outcome = receiveOutcome(t, c.DeleteFile("/d/b"))
	c.Wait()
	if !IsFailure(outcome.Err(), IOFailure) {
		t.Fatalf("expected io failure, got %v", outcome.Err())
	}
	if want := []string{"/d/b", "/d/c"}; !slices.Equal(c.State().Files, want) {
		t.Fatalf("expected %v, got %v", want, c.State().Files)
	}
}

func receiveOutcome(t *testing.T, ch <-chan DeleteOutcome) DeleteOutcome {
	t.Helper()
	select {
	case outcome, ok := <-ch:
		if !ok {
			t.Fatalf("expected an outcome before close")
		}
		return outcome
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for delete outcome")
	}
	return DeleteOutcome{}
}
