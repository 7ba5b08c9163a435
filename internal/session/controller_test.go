package session

import (
	"errors"
	"testing"
)

func TestControllerNeedsFirstBuild(t *testing.T) {
	rec := newRecorder()
	c := NewController(testCatalog(), testOptions, rec.targets(), nil)

	if err := c.Dispatch(DragStart{X: 10}); !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
	if c.Session() != nil {
		t.Error("session should not exist before Resized")
	}
}

func TestResizeResetsWindowToDefault(t *testing.T) {
	rec := newRecorder()
	c := NewController(testCatalog(), testOptions, rec.targets(), nil)

	if err := c.Dispatch(Resized{TrackWidth: 600}); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if err := c.Dispatch(PointClicked{ID: 1}); err != nil {
		t.Fatalf("click: %v", err)
	}
	if got := c.Session().Window().StartYear; got != 1776 {
		t.Fatalf("start = %v, want 1776", got)
	}

	if err := c.Dispatch(Resized{TrackWidth: 800}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if got := c.Session().Window().StartYear; got != 2023 {
		t.Errorf("start after rebuild = %v, want 2023", got)
	}
	if c.Builds() != 2 {
		t.Errorf("builds = %d, want 2", c.Builds())
	}
	if rec.shown != nil {
		t.Error("rebuild should hide the panel")
	}
	if len(rec.layers[LayerHighlight]) != 0 {
		t.Error("rebuild should clear the highlight layer")
	}
}

func TestResizeSameWidthKeepsSession(t *testing.T) {
	rec := newRecorder()
	c := NewController(testCatalog(), testOptions, rec.targets(), nil)

	c.Dispatch(Resized{TrackWidth: 600})
	c.Dispatch(PointClicked{ID: 1})
	first := c.Session()

	c.Dispatch(Resized{TrackWidth: 600})
	if c.Session() != first {
		t.Error("same width should not rebuild")
	}
	if c.Session().Window().StartYear != 1776 {
		t.Errorf("start = %v, want 1776", c.Session().Window().StartYear)
	}
}

func TestResizeToZeroKeepsOldSession(t *testing.T) {
	rec := newRecorder()
	c := NewController(testCatalog(), testOptions, rec.targets(), nil)

	c.Dispatch(Resized{TrackWidth: 600})
	first := c.Session()
	if err := c.Dispatch(Resized{TrackWidth: 0}); err == nil {
		t.Error("expected error for zero track")
	}
	if c.Session() != first {
		t.Error("failed rebuild should keep the previous session")
	}
}
