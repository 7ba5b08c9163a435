// Package session keeps the chart and the globe in step. A Session owns the
// selection window for one chart build; every input reaches it through
// Dispatch.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jwulff/eclipse/internal/brush"
	"github.com/jwulff/eclipse/internal/eclipse"
)

var (
	// ErrUnknownRecord is returned for events naming a record not in the catalog.
	ErrUnknownRecord = errors.New("unknown record")
	// ErrUnknownEvent is returned for event types the session does not handle.
	ErrUnknownEvent = errors.New("unknown event")
)

// Options are the startup constants of a chart session.
type Options struct {
	DateMin      float64
	DateMax      float64
	DefaultStart float64
	Width        float64
}

// Session is one chart build: a window, the brush bound to it, and the
// targets it redraws.
type Session struct {
	opts    Options
	catalog *eclipse.Catalog
	targets Targets
	log     *slog.Logger

	window eclipse.Window
	brush  *brush.Brush
	hover  *eclipse.Record
}

// New builds a session over a track of trackWidth pixels, positions the brush
// at the default start and draws the initial frame.
func New(catalog *eclipse.Catalog, opts Options, trackWidth float64, targets Targets, log *slog.Logger) (*Session, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	scale, err := brush.NewScale(opts.DateMin, opts.DateMax, 0, trackWidth)
	if err != nil {
		return nil, fmt.Errorf("build chart scale: %w", err)
	}

	s := &Session{
		opts:    opts,
		catalog: catalog,
		targets: targets,
		log:     log,
		window:  eclipse.Window{StartYear: opts.DefaultStart, Width: opts.Width},
	}
	s.brush = brush.New(scale, &s.window, opts.DateMin, opts.DateMax, opts.DefaultStart)

	s.targets.Surface.ReplaceShapes(LayerHighlight, nil)
	s.targets.Chart.ResetPointStyles()
	s.targets.Chart.SetPointsEnabled(true)
	s.targets.Panel.Hide()
	s.redraw()
	return s, nil
}

// Window returns the current selection window.
func (s *Session) Window() eclipse.Window { return s.window }

// Brush exposes the selector for presentation code that needs its scale or
// pixel extent.
func (s *Session) Brush() *brush.Brush { return s.brush }

// Hovered returns the record under the pointer, if any.
func (s *Session) Hovered() (eclipse.Record, bool) {
	if s.hover == nil {
		return eclipse.Record{}, false
	}
	return *s.hover, true
}

// Dispatch applies one event. A panic inside a handler is contained: the
// window is restored to its value before the event and the panic comes back
// as an error.
func (s *Session) Dispatch(ev Event) (err error) {
	saved := s.window
	defer func() {
		if r := recover(); r != nil {
			s.window = saved
			err = fmt.Errorf("dispatch %T: %v", ev, r)
			s.log.Error("event handler panicked",
				slog.String("event", fmt.Sprintf("%T", ev)),
				slog.Any("panic", r),
			)
		}
	}()

	switch ev := ev.(type) {
	case DragStart:
		s.brush.Start(ev.X)
		s.targets.Chart.SetPointsEnabled(false)

	case DragMove:
		if s.brush.Move(ev.X) {
			s.redraw()
		}

	case DragEnd:
		if s.brush.State() == brush.Dragging {
			s.brush.End()
			s.targets.Chart.SetPointsEnabled(true)
		}

	case PointClicked:
		r, ok := s.catalog.ByID(ev.ID)
		if !ok {
			return fmt.Errorf("click point %d: %w", ev.ID, ErrUnknownRecord)
		}
		s.selectRecord(r)

	case GlobeClicked:
		if ev.Hit == nil {
			s.clearSelection()
			return nil
		}
		s.selectRecord(*ev.Hit)

	case PointHovered:
		if s.brush.State() == brush.Dragging {
			return nil
		}
		r, ok := s.catalog.ByID(ev.ID)
		if !ok {
			return fmt.Errorf("hover point %d: %w", ev.ID, ErrUnknownRecord)
		}
		s.hover = &r
		s.targets.Chart.SetPointStyle(r.ID, eclipse.HoverPointStyle)
		s.targets.Surface.ReplaceShapes(LayerHighlight, []eclipse.Shape{{Record: r, Style: eclipse.HighlightStyle}})
		s.targets.Panel.Show(eclipse.NewDetail(r))

	case PointUnhovered:
		if s.brush.State() == brush.Dragging {
			return nil
		}
		r, ok := s.catalog.ByID(ev.ID)
		if !ok {
			return fmt.Errorf("unhover point %d: %w", ev.ID, ErrUnknownRecord)
		}
		s.hover = nil
		s.targets.Chart.SetPointStyle(r.ID, eclipse.DefaultPointStyle(r.Category))
		s.targets.Surface.ReplaceShapes(LayerHighlight, nil)
		s.targets.Panel.Hide()

	case SelectionCleared:
		s.brush.Reset()
		s.redraw()

	default:
		return fmt.Errorf("dispatch %T: %w", ev, ErrUnknownEvent)
	}
	return nil
}

// redraw resolves the window and pushes the result to both views.
func (s *Session) redraw() {
	subset := eclipse.Resolve(s.catalog.Records(), s.window)
	shapes := eclipse.Aggregate(subset).Shapes()

	s.targets.Surface.ReplaceShapes(LayerPaths, shapes)
	s.targets.Chart.SetSelected(subset)
	s.targets.Chart.MoveBrush(s.window)

	s.log.Debug("window resolved",
		slog.String("window", s.window.Label()),
		slog.Int("selected", len(subset)),
		slog.Int("shapes", len(shapes)),
	)
}

// selectRecord is the click path shared by the chart and the globe: the
// window jumps to the record's year, the camera follows, and the record is
// highlighted in both views.
func (s *Session) selectRecord(r eclipse.Record) {
	s.brush.Jump(float64(r.Year()))
	s.targets.Surface.GoTo(eclipse.CameraFor(r))
	s.redraw()

	s.targets.Surface.ReplaceShapes(LayerHighlight, []eclipse.Shape{{Record: r, Style: eclipse.HighlightStyle}})
	s.targets.Chart.ResetPointStyles()
	s.targets.Chart.SetPointStyle(r.ID, eclipse.HoverPointStyle)
	s.targets.Panel.Show(eclipse.NewDetail(r))
}

func (s *Session) clearSelection() {
	s.hover = nil
	s.targets.Surface.ReplaceShapes(LayerHighlight, nil)
	s.targets.Chart.ResetPointStyles()
	s.targets.Panel.Hide()
}
