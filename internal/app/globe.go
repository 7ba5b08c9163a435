package app

import (
	"math"
	"strings"

	"github.com/paulmach/orb"

	"github.com/jwulff/eclipse/internal/eclipse"
	"github.com/jwulff/eclipse/internal/session"
	"github.com/jwulff/eclipse/internal/ui"
)

// initialCamera frames the Americas and the Atlantic.
var initialCamera = eclipse.Camera{Center: orb.Point{-90, 12}}

// graticuleStep is the spacing of the basemap grid in degrees.
const graticuleStep = 30.0

type drawnShape struct {
	shape eclipse.Shape
	bound orb.Bound
}

func drawShapes(shapes []eclipse.Shape) []drawnShape {
	out := make([]drawnShape, 0, len(shapes))
	for _, s := range shapes {
		out = append(out, drawnShape{shape: s, bound: s.Record.Geometry.Bound()})
	}
	return out
}

// globePane is an equirectangular view of the earth centred on the camera
// longitude. It implements session.Surface.
type globePane struct {
	paths     []drawnShape
	highlight []drawnShape
	camera    eclipse.Camera
	graticule bool
	cols      int
	rows      int
}

func newGlobePane() *globePane {
	return &globePane{camera: initialCamera, graticule: true}
}

func (g *globePane) resize(cols, rows int) { g.cols, g.rows = cols, rows }

// ReplaceShapes clears layer and repopulates it with shapes.
func (g *globePane) ReplaceShapes(layer session.Layer, shapes []eclipse.Shape) {
	if layer == session.LayerHighlight {
		g.highlight = drawShapes(shapes)
		return
	}
	g.paths = drawShapes(shapes)
}

func (g *globePane) GoTo(c eclipse.Camera) { g.camera = c }

func (g *globePane) toggleBasemap() { g.graticule = !g.graticule }

// cellPoint returns the lon/lat at the centre of a globe cell.
func (g *globePane) cellPoint(col, row int) orb.Point {
	lon := g.camera.Center.Lon() - 180 + (float64(col)+0.5)*360/float64(g.cols)
	lat := 90 - (float64(row)+0.5)*180/float64(g.rows)
	return orb.Point{wrapLongitude(lon), lat}
}

// wrapLongitude folds lon into [-180, 180).
func wrapLongitude(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// topmost returns the last shape in layer containing p; later shapes draw on
// top.
func topmost(layer []drawnShape, p orb.Point) (eclipse.Shape, bool) {
	for i := len(layer) - 1; i >= 0; i-- {
		d := layer[i]
		if !d.bound.Contains(p) {
			continue
		}
		if d.shape.Record.Contains(p) {
			return d.shape, true
		}
	}
	return eclipse.Shape{}, false
}

// hitAt returns the drawn path under a globe cell, if any.
func (g *globePane) hitAt(col, row int) *eclipse.Record {
	if g.cols <= 0 || g.rows <= 0 {
		return nil
	}
	s, ok := topmost(g.paths, g.cellPoint(col, row))
	if !ok {
		return nil
	}
	r := s.Record
	return &r
}

func (g *globePane) onGraticule(col, row int) bool {
	p := g.cellPoint(col, row)
	halfLon := 180 / float64(g.cols)
	halfLat := 90 / float64(g.rows)
	nearLon := math.Abs(math.Remainder(p.Lon(), graticuleStep)) <= halfLon
	nearLat := math.Abs(math.Remainder(p.Lat(), graticuleStep)) <= halfLat
	return nearLon || nearLat
}

func (g *globePane) render() string {
	if g.cols <= 0 || g.rows <= 0 {
		return ""
	}
	centerCol := g.cols / 2
	centerRow := int((90 - g.camera.Center.Lat()) / 180 * float64(g.rows))

	lines := make([]string, 0, g.rows)
	for row := 0; row < g.rows; row++ {
		var sb strings.Builder
		for col := 0; col < g.cols; col++ {
			p := g.cellPoint(col, row)
			if s, ok := topmost(g.highlight, p); ok {
				sb.WriteString(ui.FillStyle(s.Style.Fill).Render("█"))
				continue
			}
			if s, ok := topmost(g.paths, p); ok {
				sb.WriteString(ui.FillStyle(s.Style.Fill).Render("▓"))
				continue
			}
			switch {
			case row == centerRow && col == centerCol:
				sb.WriteString(ui.DimStyle.Render("+"))
			case g.graticule && g.onGraticule(col, row):
				sb.WriteString(ui.GraticuleStyle.Render("·"))
			default:
				sb.WriteString(" ")
			}
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}
