package app

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"github.com/jwulff/eclipse/internal/eclipse"
	"github.com/jwulff/eclipse/internal/session"
)

func TestWrapLongitude(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{179, 179},
		{180, -180},
		{-180, -180},
		{270, -90},
		{-270, 90},
		{719, -1},
	}
	for _, tt := range tests {
		if got := wrapLongitude(tt.in); !near(got, tt.want) {
			t.Errorf("wrapLongitude(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGlobeCellPoint(t *testing.T) {
	g := newGlobePane()
	g.resize(36, 18)
	g.GoTo(eclipse.Camera{Center: orb.Point{0, 0}})

	// 10 degrees per cell both ways.
	p := g.cellPoint(18, 9)
	if !near(p.Lon(), 5) || !near(p.Lat(), -5) {
		t.Errorf("cellPoint(18, 9) = %v, want (5, -5)", p)
	}
	p = g.cellPoint(0, 0)
	if !near(p.Lon(), -175) || !near(p.Lat(), 85) {
		t.Errorf("cellPoint(0, 0) = %v, want (-175, 85)", p)
	}

	// The view follows the camera and wraps at the antimeridian.
	g.GoTo(eclipse.Camera{Center: orb.Point{170, 0}})
	p = g.cellPoint(35, 9)
	if !near(p.Lon(), -15) {
		t.Errorf("lon = %v, want -15", p.Lon())
	}
}

func TestGlobeReplaceShapesAndHit(t *testing.T) {
	g := newGlobePane()
	g.resize(36, 18)
	g.GoTo(eclipse.Camera{Center: orb.Point{0, 0}})

	a := testRecord(1, 1900, eclipse.Total, 100, 5)
	b := testRecord(2, 1910, eclipse.Annular, 100, 5)
	g.ReplaceShapes(session.LayerPaths, []eclipse.Shape{
		{Record: a, Style: eclipse.Style{Fill: "#ff0000"}},
		{Record: b, Style: eclipse.Style{Fill: "#ffff00"}},
	})

	hit := g.hitAt(18, 9)
	if hit == nil || hit.ID != 2 {
		t.Fatalf("hitAt = %v, want the later shape", hit)
	}
	if g.hitAt(0, 0) != nil {
		t.Error("empty cell should miss")
	}

	g.ReplaceShapes(session.LayerHighlight, []eclipse.Shape{{Record: a, Style: eclipse.HighlightStyle}})
	if len(g.highlight) != 1 || len(g.paths) != 2 {
		t.Errorf("layers = %d highlight, %d paths", len(g.highlight), len(g.paths))
	}
	if hit := g.hitAt(18, 9); hit == nil || hit.ID != 2 {
		t.Error("highlight layer should not affect hits")
	}

	g.ReplaceShapes(session.LayerPaths, nil)
	if g.hitAt(18, 9) != nil {
		t.Error("cleared layer should miss")
	}
	if len(g.highlight) != 1 {
		t.Error("replacing paths should leave the highlight alone")
	}
}

func TestGlobeUnsized(t *testing.T) {
	g := newGlobePane()
	if g.hitAt(0, 0) != nil {
		t.Error("unsized globe should never hit")
	}
	if g.render() != "" {
		t.Error("unsized globe should render nothing")
	}
}

func TestGlobeRender(t *testing.T) {
	g := newGlobePane()
	g.resize(36, 18)
	g.GoTo(eclipse.Camera{Center: orb.Point{0, 0}})
	g.ReplaceShapes(session.LayerPaths, []eclipse.Shape{{Record: testRecord(1, 1900, eclipse.Total, 100, 5)}})

	out := g.render()
	lines := strings.Split(out, "\n")
	if len(lines) != 18 {
		t.Fatalf("render has %d lines, want 18", len(lines))
	}
	if !strings.Contains(out, "▓") {
		t.Error("paths should be drawn")
	}
	if !strings.Contains(out, "·") {
		t.Error("graticule should be drawn")
	}

	g.toggleBasemap()
	if strings.Contains(g.render(), "·") {
		t.Error("graticule should be hidden after toggle")
	}
}
