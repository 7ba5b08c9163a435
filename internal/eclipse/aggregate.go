package eclipse

// Category colours shared by the chart and the globe.
const (
	ColorTotal     = "#F5A61C"
	ColorHybrid    = "#FF4E00"
	ColorAnnular   = "#8F6FEB"
	ColorHighlight = "#00FFFF"
	ColorMuted     = "#666666"
)

// Style is the fill/outline symbol of a globe shape.
type Style struct {
	Fill         string
	FillAlpha    float64
	Outline      string
	OutlineWidth float64
}

// HighlightStyle marks a hovered or clicked path.
var HighlightStyle = Style{Fill: ColorHighlight, FillAlpha: 0.5, Outline: ColorHighlight}

// CategoryColor returns the colour of a category, or ok=false for Unclassified.
func CategoryColor(c Category) (string, bool) {
	switch c {
	case Total:
		return ColorTotal, true
	case Hybrid:
		return ColorHybrid, true
	case Annular:
		return ColorAnnular, true
	default:
		return "", false
	}
}

// CategoryStyle returns the globe symbol for a category.
func CategoryStyle(c Category) (Style, bool) {
	color, ok := CategoryColor(c)
	if !ok {
		return Style{}, false
	}
	return Style{Fill: color, FillAlpha: 0.5, Outline: color, OutlineWidth: 0}, true
}

// Shape is a record paired with the style it should be drawn with.
type Shape struct {
	Record Record
	Style  Style
}

// Groups is a resolved subset partitioned by category.
type Groups struct {
	Total   []Record
	Hybrid  []Record
	Annular []Record
}

// Aggregate partitions subset by category. Unclassified records are dropped.
func Aggregate(subset []Record) Groups {
	var g Groups
	for _, r := range subset {
		switch r.Category {
		case Total:
			g.Total = append(g.Total, r)
		case Hybrid:
			g.Hybrid = append(g.Hybrid, r)
		case Annular:
			g.Annular = append(g.Annular, r)
		}
	}
	return g
}

// Group returns the records of one category.
func (g Groups) Group(c Category) []Record {
	switch c {
	case Total:
		return g.Total
	case Hybrid:
		return g.Hybrid
	case Annular:
		return g.Annular
	default:
		return nil
	}
}

// Len returns the number of records across all groups.
func (g Groups) Len() int {
	return len(g.Total) + len(g.Hybrid) + len(g.Annular)
}

// Shapes flattens the groups into the replacement contents of the path layer:
// Total first, then Hybrid, then Annular, so annular paths draw on top where
// footprints overlap.
func (g Groups) Shapes() []Shape {
	shapes := make([]Shape, 0, g.Len())
	for _, c := range Categories {
		style, _ := CategoryStyle(c)
		for _, r := range g.Group(c) {
			shapes = append(shapes, Shape{Record: r, Style: style})
		}
	}
	return shapes
}

// PointStyle is the look of one chart dot.
type PointStyle struct {
	Radius float64
	Fill   string
}

// DefaultPointStyle is the resting chart dot for a category.
func DefaultPointStyle(c Category) PointStyle {
	color, ok := CategoryColor(c)
	if !ok {
		color = ColorMuted
	}
	return PointStyle{Radius: 3, Fill: color}
}

// HoverPointStyle is the enlarged cyan dot used for hover and click.
var HoverPointStyle = PointStyle{Radius: 5, Fill: ColorHighlight}
