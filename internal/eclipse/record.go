// Package eclipse holds the eclipse catalog and the pipeline that turns a year
// window into styled highlight shapes.
package eclipse

import (
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Category is the simplified eclipse classification.
type Category int

const (
	Unclassified Category = iota
	Total
	Hybrid
	Annular
)

// Categories lists the classified categories in render order.
var Categories = []Category{Total, Hybrid, Annular}

// ParseCategory maps a raw classification string onto a Category. Anything that
// is not one of the three known names becomes Unclassified.
func ParseCategory(s string) Category {
	switch strings.TrimSpace(s) {
	case "Total":
		return Total
	case "Hybrid":
		return Hybrid
	case "Annular":
		return Annular
	default:
		return Unclassified
	}
}

func (c Category) String() string {
	switch c {
	case Total:
		return "Total"
	case Hybrid:
		return "Hybrid"
	case Annular:
		return "Annular"
	default:
		return "Unclassified"
	}
}

// Classified reports whether c is one of the three rendered categories.
func (c Category) Classified() bool {
	return c == Total || c == Hybrid || c == Annular
}

// Record is one solar eclipse path. Records are immutable once loaded.
type Record struct {
	ID              int
	Category        Category
	Subtype         string
	Date            time.Time
	TimeOfMax       time.Time
	DurationSeconds float64
	PathWidthKm     float64
	Magnitude       float64
	SunAltitudeDeg  float64
	SunAzimuthDeg   float64
	Lunation        int
	Saros           int
	Gamma           float64
	DeltaTSeconds   float64
	Latitude        float64
	Longitude       float64
	Geometry        orb.MultiPolygon
}

// Year is the calendar year of maximum eclipse in UTC.
func (r Record) Year() int {
	return r.Date.UTC().Year()
}

// Center returns the center of the footprint's extent. Records without a
// footprint fall back to the point of greatest eclipse.
func (r Record) Center() orb.Point {
	if len(r.Geometry) == 0 {
		return orb.Point{r.Longitude, r.Latitude}
	}
	return r.Geometry.Bound().Center()
}

// Contains reports whether the footprint contains p (lon, lat).
func (r Record) Contains(p orb.Point) bool {
	if len(r.Geometry) == 0 {
		return false
	}
	return planar.MultiPolygonContains(r.Geometry, p)
}
