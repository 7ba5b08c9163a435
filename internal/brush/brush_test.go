package brush

import (
	"math"
	"testing"

	"github.com/jwulff/eclipse/internal/eclipse"
)

func newTestBrush(t *testing.T, start, width float64) (*Brush, *eclipse.Window) {
	t.Helper()
	scale, err := NewScale(1600, 2200, 0, 600)
	if err != nil {
		t.Fatalf("NewScale: %v", err)
	}
	w := &eclipse.Window{StartYear: start, Width: width}
	return New(scale, w, 1600, 2200, 1850), w
}

func TestScaleRoundTrip(t *testing.T) {
	s, err := NewScale(1600, 2200, 0, 300)
	if err != nil {
		t.Fatalf("NewScale: %v", err)
	}
	if got := s.Map(1900); got != 150 {
		t.Errorf("Map(1900) = %v, want 150", got)
	}
	if got := s.Invert(150); got != 1900 {
		t.Errorf("Invert(150) = %v, want 1900", got)
	}
	if got := s.Invert(-30); got != 1540 {
		t.Errorf("Invert(-30) = %v, want 1540", got)
	}
}

func TestNewScaleDegenerate(t *testing.T) {
	if _, err := NewScale(1600, 1600, 0, 100); err != ErrDegenerateScale {
		t.Errorf("empty domain err = %v", err)
	}
	if _, err := NewScale(1600, 2200, 50, 50); err != ErrDegenerateScale {
		t.Errorf("empty range err = %v", err)
	}
}

func TestDragLifecycle(t *testing.T) {
	b, w := newTestBrush(t, 1850, 30)

	if b.State() != Idle {
		t.Fatalf("initial state = %v", b.State())
	}
	if b.Move(400) {
		t.Error("Move without Start should be ignored")
	}
	if w.StartYear != 1850 {
		t.Errorf("start changed to %v while idle", w.StartYear)
	}

	// Grab the window 10 years in from its left edge.
	b.Start(260)
	if b.State() != Dragging {
		t.Fatalf("state after Start = %v", b.State())
	}
	if !b.Move(300) {
		t.Fatal("Move during drag reported false")
	}
	if w.StartYear != 1890 {
		t.Errorf("start = %v, want 1890", w.StartYear)
	}

	b.End()
	if b.State() != Idle {
		t.Errorf("state after End = %v", b.State())
	}
	if w.StartYear != 1890 {
		t.Errorf("End moved the window to %v", w.StartYear)
	}
}

func TestDragClampsLow(t *testing.T) {
	b, w := newTestBrush(t, 2023, 50)

	b.Start(b.scale.Map(2023))
	// x⁻¹(pointer) − dragOffset = 1550
	b.Move(b.scale.Map(1550))
	if w.StartYear != 1600 {
		t.Errorf("start = %v, want 1600", w.StartYear)
	}
}

func TestDragClampsHigh(t *testing.T) {
	b, w := newTestBrush(t, 2100, 50)

	b.Start(b.scale.Map(2100))
	b.Move(10_000)
	if w.StartYear != 2150 {
		t.Errorf("start = %v, want 2150", w.StartYear)
	}
}

func TestDragTracksOutsideTrack(t *testing.T) {
	b, w := newTestBrush(t, 1850, 30)

	b.Start(250)
	b.Move(-500)
	if w.StartYear != 1600 {
		t.Errorf("start = %v, want 1600", w.StartYear)
	}
	b.Move(260)
	if w.StartYear != 1860 {
		t.Errorf("start after re-entering = %v, want 1860", w.StartYear)
	}
}

func TestJumpDoesNotClampOrDrag(t *testing.T) {
	b, w := newTestBrush(t, 1850, 30)

	b.Jump(2190)
	if w.StartYear != 2190 {
		t.Errorf("start = %v, want 2190", w.StartYear)
	}
	if b.State() != Idle {
		t.Errorf("Jump entered state %v", b.State())
	}
}

func TestReset(t *testing.T) {
	b, w := newTestBrush(t, 2000, 30)
	b.Reset()
	if w.StartYear != 1850 {
		t.Errorf("start after Reset = %v, want 1850", w.StartYear)
	}
}

func TestExtent(t *testing.T) {
	b, _ := newTestBrush(t, 1850, 30)
	x0, x1 := b.Extent()
	if math.Abs(x0-250) > 1e-9 || math.Abs(x1-280) > 1e-9 {
		t.Errorf("extent = %v..%v, want 250..280", x0, x1)
	}
}
