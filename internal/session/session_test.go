package session

import (
	"errors"
	"testing"
	"time"

	"github.com/jwulff/eclipse/internal/brush"
	"github.com/jwulff/eclipse/internal/eclipse"
	"github.com/paulmach/orb"
)

// recorder implements Surface, Chart and Panel and counts the commands it gets.
type recorder struct {
	replaces    map[Layer]int
	layers      map[Layer][]eclipse.Shape
	gotos       []eclipse.Camera
	selected    []eclipse.Record
	pointStyles map[int]eclipse.PointStyle
	resets      int
	enabled     bool
	brush       eclipse.Window
	shown       *eclipse.Detail
	panicOnGoTo bool
}

func newRecorder() *recorder {
	return &recorder{
		replaces:    map[Layer]int{},
		layers:      map[Layer][]eclipse.Shape{},
		pointStyles: map[int]eclipse.PointStyle{},
	}
}

func (r *recorder) targets() Targets { return Targets{Surface: r, Chart: r, Panel: r} }

func (r *recorder) ReplaceShapes(layer Layer, shapes []eclipse.Shape) {
	r.replaces[layer]++
	r.layers[layer] = shapes
}

func (r *recorder) GoTo(c eclipse.Camera) {
	if r.panicOnGoTo {
		panic("camera unavailable")
	}
	r.gotos = append(r.gotos, c)
}

func (r *recorder) SetSelected(subset []eclipse.Record) { r.selected = subset }
func (r *recorder) SetPointStyle(id int, s eclipse.PointStyle) {
	r.pointStyles[id] = s
}
func (r *recorder) ResetPointStyles() {
	r.resets++
	r.pointStyles = map[int]eclipse.PointStyle{}
}
func (r *recorder) SetPointsEnabled(enabled bool) { r.enabled = enabled }
func (r *recorder) MoveBrush(w eclipse.Window)    { r.brush = w }
func (r *recorder) Show(d eclipse.Detail)         { r.shown = &d }
func (r *recorder) Hide()                         { r.shown = nil }

func (r *recorder) clearCounts() {
	r.replaces = map[Layer]int{}
	r.gotos = nil
}

func testRecord(id, year int, c eclipse.Category, lon float64) eclipse.Record {
	return eclipse.Record{
		ID:       id,
		Category: c,
		Subtype:  "T",
		Date:     time.Date(year, time.March, 3, 0, 0, 0, 0, time.UTC),
		Geometry: orb.MultiPolygon{{{{lon - 1, 0}, {lon - 1, 2}, {lon + 1, 2}, {lon + 1, 0}, {lon - 1, 0}}}},
	}
}

func testCatalog() *eclipse.Catalog {
	return eclipse.NewCatalog([]eclipse.Record{
		testRecord(1, 1776, eclipse.Total, 40),
		testRecord(2, 1999, eclipse.Total, 10),
		testRecord(3, 2024, eclipse.Annular, -5),
		testRecord(4, 2030, eclipse.Hybrid, 100),
		testRecord(5, 2100, eclipse.Hybrid, 0.3),
	})
}

var testOptions = Options{DateMin: 1600, DateMax: 2200, DefaultStart: 2023, Width: 50}

func newTestSession(t *testing.T) (*Session, *recorder) {
	t.Helper()
	rec := newRecorder()
	s, err := New(testCatalog(), testOptions, 600, rec.targets(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, rec
}

func TestNewDrawsInitialFrame(t *testing.T) {
	s, rec := newTestSession(t)

	if s.Window().StartYear != 2023 || s.Window().Width != 50 {
		t.Errorf("window = %+v", s.Window())
	}
	if got := len(rec.layers[LayerPaths]); got != 2 {
		t.Errorf("paths = %d, want 2", got)
	}
	if len(rec.selected) != 2 {
		t.Errorf("selected = %d, want 2", len(rec.selected))
	}
	if rec.brush != s.Window() {
		t.Errorf("brush = %+v, want %+v", rec.brush, s.Window())
	}
	if !rec.enabled {
		t.Error("points should start enabled")
	}
}

func TestDragClampsToDateMin(t *testing.T) {
	s, rec := newTestSession(t)
	scale := s.Brush().Scale()

	if err := s.Dispatch(DragStart{X: scale.Map(2023)}); err != nil {
		t.Fatalf("DragStart: %v", err)
	}
	if rec.enabled {
		t.Error("points should be disabled while dragging")
	}
	if err := s.Dispatch(DragMove{X: scale.Map(1550)}); err != nil {
		t.Fatalf("DragMove: %v", err)
	}
	if s.Window().StartYear != 1600 {
		t.Errorf("start = %v, want 1600", s.Window().StartYear)
	}
	if rec.brush.StartYear != 1600 {
		t.Errorf("brush moved to %v, want 1600", rec.brush.StartYear)
	}
	if err := s.Dispatch(DragEnd{}); err != nil {
		t.Fatalf("DragEnd: %v", err)
	}
	if !rec.enabled {
		t.Error("points should be re-enabled after drag")
	}
	if s.Brush().State() != brush.Idle {
		t.Errorf("state = %v, want idle", s.Brush().State())
	}
}

func TestDragMoveRedrawsEveryTick(t *testing.T) {
	s, rec := newTestSession(t)
	scale := s.Brush().Scale()
	rec.clearCounts()

	s.Dispatch(DragStart{X: scale.Map(2023)})
	s.Dispatch(DragMove{X: scale.Map(1950)})
	s.Dispatch(DragMove{X: scale.Map(1960)})
	s.Dispatch(DragMove{X: scale.Map(1960)})

	if rec.replaces[LayerPaths] != 3 {
		t.Errorf("path replaces = %d, want 3", rec.replaces[LayerPaths])
	}
	if len(rec.selected) != 1 || rec.selected[0].ID != 2 {
		t.Errorf("selected = %+v, want record 2", rec.selected)
	}
}

func TestClickJumpsWindowAndRecenters(t *testing.T) {
	s, rec := newTestSession(t)
	rec.clearCounts()

	if err := s.Dispatch(PointClicked{ID: 1}); err != nil {
		t.Fatalf("PointClicked: %v", err)
	}

	if s.Window().StartYear != 1776 {
		t.Errorf("start = %v, want 1776", s.Window().StartYear)
	}
	if s.Window().Width != 50 {
		t.Errorf("width = %v, want 50", s.Window().Width)
	}
	if len(rec.gotos) != 1 {
		t.Fatalf("recenters = %d, want 1", len(rec.gotos))
	}
	if rec.gotos[0].Center.Lon() != 40 {
		t.Errorf("camera lon = %v, want 40", rec.gotos[0].Center.Lon())
	}
	if rec.replaces[LayerHighlight] != 1 {
		t.Errorf("highlight replaces = %d, want 1", rec.replaces[LayerHighlight])
	}
	if hl := rec.layers[LayerHighlight]; len(hl) != 1 || hl[0].Record.ID != 1 || hl[0].Style != eclipse.HighlightStyle {
		t.Errorf("highlight layer = %+v", hl)
	}
	if rec.brush.StartYear != 1776 {
		t.Errorf("brush = %v, want 1776", rec.brush.StartYear)
	}
	if s.Brush().State() != brush.Idle {
		t.Error("click must not enter the drag state")
	}
	if rec.pointStyles[1] != eclipse.HoverPointStyle {
		t.Errorf("clicked point style = %+v", rec.pointStyles[1])
	}
	if rec.shown == nil || rec.shown.ID != 1 {
		t.Errorf("panel = %+v, want record 1", rec.shown)
	}
}

func TestClickNearEndIsNotClamped(t *testing.T) {
	s, rec := newTestSession(t)

	s.Dispatch(PointClicked{ID: 5})
	if s.Window().StartYear != 2100 {
		t.Errorf("start = %v, want 2100", s.Window().StartYear)
	}
	if rec.gotos[0].Center.Lon() != 179.9 {
		t.Errorf("camera lon = %v, want 179.9", rec.gotos[0].Center.Lon())
	}
}

func TestClickUnknownRecord(t *testing.T) {
	s, _ := newTestSession(t)
	err := s.Dispatch(PointClicked{ID: 42})
	if !errors.Is(err, ErrUnknownRecord) {
		t.Errorf("err = %v, want ErrUnknownRecord", err)
	}
	if s.Window().StartYear != 2023 {
		t.Errorf("window moved to %v", s.Window().StartYear)
	}
}

func TestGlobeClickHitAndMiss(t *testing.T) {
	s, rec := newTestSession(t)
	cat := testCatalog()
	r, _ := cat.ByID(3)

	if err := s.Dispatch(GlobeClicked{Hit: &r}); err != nil {
		t.Fatalf("GlobeClicked: %v", err)
	}
	if s.Window().StartYear != 2024 {
		t.Errorf("start = %v, want 2024", s.Window().StartYear)
	}
	if rec.gotos[0].Center.Lon() != 354 {
		t.Errorf("camera lon = %v, want 354", rec.gotos[0].Center.Lon())
	}

	rec.clearCounts()
	if err := s.Dispatch(GlobeClicked{}); err != nil {
		t.Fatalf("GlobeClicked miss: %v", err)
	}
	if len(rec.layers[LayerHighlight]) != 0 {
		t.Error("miss should clear the highlight layer")
	}
	if rec.shown != nil {
		t.Error("miss should hide the panel")
	}
	if len(rec.pointStyles) != 0 {
		t.Error("miss should restore point styles")
	}
	if len(rec.gotos) != 0 {
		t.Error("miss should not move the camera")
	}
	if s.Window().StartYear != 2024 {
		t.Errorf("miss changed window to %v", s.Window().StartYear)
	}
}

func TestHoverDoesNotMoveWindow(t *testing.T) {
	s, rec := newTestSession(t)

	s.Dispatch(PointHovered{ID: 4})
	if rec.pointStyles[4] != eclipse.HoverPointStyle {
		t.Errorf("hover style = %+v", rec.pointStyles[4])
	}
	if hl := rec.layers[LayerHighlight]; len(hl) != 1 || hl[0].Record.ID != 4 {
		t.Errorf("highlight = %+v", hl)
	}
	if got, ok := s.Hovered(); !ok || got.ID != 4 {
		t.Errorf("Hovered = %v, %v", got.ID, ok)
	}

	s.Dispatch(PointUnhovered{ID: 4})
	if rec.pointStyles[4] != eclipse.DefaultPointStyle(eclipse.Hybrid) {
		t.Errorf("restored style = %+v", rec.pointStyles[4])
	}
	if len(rec.layers[LayerHighlight]) != 0 {
		t.Error("unhover should clear highlight")
	}
	if rec.shown != nil {
		t.Error("unhover should hide panel")
	}
	if s.Window().StartYear != 2023 {
		t.Errorf("hover moved window to %v", s.Window().StartYear)
	}
}

func TestHoverIgnoredWhileDragging(t *testing.T) {
	s, rec := newTestSession(t)
	s.Dispatch(DragStart{X: 100})

	s.Dispatch(PointHovered{ID: 4})
	if _, ok := rec.pointStyles[4]; ok {
		t.Error("hover during drag should be ignored")
	}
	if _, ok := s.Hovered(); ok {
		t.Error("no hover should be recorded during drag")
	}
}

func TestSelectionClearedResetsToDefault(t *testing.T) {
	s, _ := newTestSession(t)
	s.Dispatch(PointClicked{ID: 1})

	if err := s.Dispatch(SelectionCleared{}); err != nil {
		t.Fatalf("SelectionCleared: %v", err)
	}
	if s.Window().StartYear != 2023 {
		t.Errorf("start = %v, want 2023", s.Window().StartYear)
	}
}

func TestPanicRestoresWindow(t *testing.T) {
	s, rec := newTestSession(t)
	rec.panicOnGoTo = true

	err := s.Dispatch(PointClicked{ID: 1})
	if err == nil {
		t.Fatal("expected error from panicking handler")
	}
	if s.Window().StartYear != 2023 {
		t.Errorf("window = %v after panic, want 2023", s.Window().StartYear)
	}

	rec.panicOnGoTo = false
	if err := s.Dispatch(PointClicked{ID: 2}); err != nil {
		t.Errorf("session unusable after panic: %v", err)
	}
}

type bogusEvent struct{}

func (bogusEvent) event() {}

func TestUnknownEvent(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.Dispatch(bogusEvent{}); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("err = %v, want ErrUnknownEvent", err)
	}
}

func TestNewRejectsZeroTrack(t *testing.T) {
	rec := newRecorder()
	if _, err := New(testCatalog(), testOptions, 0, rec.targets(), nil); err == nil {
		t.Error("expected error for zero-width track")
	}
}
