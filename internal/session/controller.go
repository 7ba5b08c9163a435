package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jwulff/eclipse/internal/eclipse"
)

// ErrNoSession is returned when an event arrives before the first chart build.
var ErrNoSession = errors.New("chart not built")

// Controller owns the current Session and rebuilds it on resize. A rebuild
// starts from the configured default window; the previous selection is
// dropped along with the old chart.
type Controller struct {
	catalog *eclipse.Catalog
	opts    Options
	targets Targets
	log     *slog.Logger

	session    *Session
	trackWidth float64
	builds     int
}

// NewController prepares a controller. No session exists until the first
// Resized event supplies a track width.
func NewController(catalog *eclipse.Catalog, opts Options, targets Targets, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{catalog: catalog, opts: opts, targets: targets, log: log}
}

// Session returns the live session, or nil before the first build.
func (c *Controller) Session() *Session { return c.session }

// Builds counts how many times the chart has been built.
func (c *Controller) Builds() int { return c.builds }

// Dispatch routes ev. Resized is handled here; everything else goes to the
// live session.
func (c *Controller) Dispatch(ev Event) error {
	if r, ok := ev.(Resized); ok {
		return c.rebuild(r.TrackWidth)
	}
	if c.session == nil {
		return fmt.Errorf("dispatch %T: %w", ev, ErrNoSession)
	}
	return c.session.Dispatch(ev)
}

func (c *Controller) rebuild(trackWidth float64) error {
	if c.session != nil && trackWidth == c.trackWidth {
		return nil
	}
	s, err := New(c.catalog, c.opts, trackWidth, c.targets, c.log)
	if err != nil {
		return fmt.Errorf("rebuild chart: %w", err)
	}
	c.session = s
	c.trackWidth = trackWidth
	c.builds++
	c.log.Info("chart built",
		slog.Float64("track_width", trackWidth),
		slog.Int("build", c.builds),
		slog.String("window", s.Window().Label()),
	)
	return nil
}
