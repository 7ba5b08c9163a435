package app

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jwulff/eclipse/internal/brush"
	"github.com/jwulff/eclipse/internal/eclipse"
	"github.com/jwulff/eclipse/internal/ui"
)

// chartPane is the duration/year scatterplot with the brush band. It
// implements session.Chart.
type chartPane struct {
	records   []eclipse.Record
	selected  map[int]bool
	overrides map[int]eclipse.PointStyle
	enabled   bool
	window    eclipse.Window

	scale          brush.Scale
	durMin, durMax float64
	cols, rows     int
}

func newChartPane(records []eclipse.Record, durMin, durMax float64) *chartPane {
	return &chartPane{
		records:   records,
		selected:  map[int]bool{},
		overrides: map[int]eclipse.PointStyle{},
		enabled:   true,
		durMin:    durMin,
		durMax:    durMax,
	}
}

func (c *chartPane) resize(cols, rows int, scale brush.Scale) {
	c.cols, c.rows, c.scale = cols, rows, scale
}

// SetSelected marks exactly subset as inside the window.
func (c *chartPane) SetSelected(subset []eclipse.Record) {
	c.selected = make(map[int]bool, len(subset))
	for _, r := range subset {
		c.selected[r.ID] = true
	}
}

func (c *chartPane) SetPointStyle(id int, style eclipse.PointStyle) {
	c.overrides[id] = style
}

func (c *chartPane) ResetPointStyles() {
	c.overrides = map[int]eclipse.PointStyle{}
}

func (c *chartPane) SetPointsEnabled(enabled bool) { c.enabled = enabled }

func (c *chartPane) MoveBrush(w eclipse.Window) { c.window = w }

// selectedRecords returns the records inside the window in date order.
func (c *chartPane) selectedRecords() []eclipse.Record {
	var out []eclipse.Record
	for _, r := range c.records {
		if c.selected[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

// decimalYear places t on a continuous year axis.
func decimalYear(t time.Time) float64 {
	t = t.UTC()
	start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	return float64(t.Year()) + float64(t.Sub(start))/float64(end.Sub(start))
}

// cellOf returns the plot cell of r.
func (c *chartPane) cellOf(r eclipse.Record) (col, row int) {
	col = int(math.Floor(c.scale.Map(decimalYear(r.Date))))
	col = min(max(col, 0), c.cols-1)

	span := c.durMax - c.durMin
	y := 0.0
	if span > 0 {
		y = (r.DurationSeconds - c.durMin) / span
	}
	y = min(max(y, 0), 1)
	row = c.rows - 1 - int(math.Round(y*float64(c.rows-1)))
	return col, row
}

// pointAt returns the record drawn at a plot cell. Selected records win over
// the rest.
func (c *chartPane) pointAt(col, row int) (int, bool) {
	if c.cols <= 0 || c.rows <= 0 {
		return 0, false
	}
	found, foundSelected := 0, false
	ok := false
	for _, r := range c.records {
		rc, rr := c.cellOf(r)
		if rc != col || rr != row {
			continue
		}
		sel := c.selected[r.ID]
		if !ok || (sel && !foundSelected) {
			found, foundSelected, ok = r.ID, sel, true
		}
	}
	return found, ok
}

// bandColumns returns the first and last plot column covered by the brush.
func (c *chartPane) bandColumns() (int, int) {
	x0 := int(math.Floor(c.scale.Map(c.window.StartYear)))
	x1 := int(math.Ceil(c.scale.Map(c.window.End()))) - 1
	x1 = max(x1, x0)
	return min(max(x0, 0), c.cols-1), min(max(x1, 0), c.cols-1)
}

type chartCell struct {
	glyph string
	style lipgloss.Style
	prio  int
}

func (c *chartPane) pointCell(r eclipse.Record) chartCell {
	if ps, ok := c.overrides[r.ID]; ok && ps != eclipse.DefaultPointStyle(r.Category) {
		glyph := "•"
		if ps.Radius >= eclipse.HoverPointStyle.Radius {
			glyph = "●"
		}
		return chartCell{glyph: glyph, style: ui.FillStyle(ps.Fill).Bold(true), prio: 3}
	}
	if c.selected[r.ID] {
		return chartCell{glyph: "•", style: ui.CategoryStyle(r.Category).Bold(true), prio: 2}
	}
	return chartCell{glyph: "·", style: ui.CategoryStyle(r.Category).Faint(true), prio: 1}
}

// render draws the pane: title row, plot rows with the duration gutter, and
// the year axis.
func (c *chartPane) render(width int) string {
	if c.cols <= 0 || c.rows <= 0 {
		return ""
	}

	grid := make([][]chartCell, c.rows)
	for i := range grid {
		grid[i] = make([]chartCell, c.cols)
	}
	for _, r := range c.records {
		col, row := c.cellOf(r)
		cell := c.pointCell(r)
		if cell.prio >= grid[row][col].prio {
			grid[row][col] = cell
		}
	}

	b0, b1 := c.bandColumns()
	var lines []string

	// Title: the window label over the brush.
	label := c.window.Label()
	pad := gutterWidth + b0
	if pad+lipgloss.Width(label) > width {
		pad = max(0, width-lipgloss.Width(label))
	}
	lines = append(lines, strings.Repeat(" ", pad)+ui.BrushLabelStyle.Render(label))

	for row := 0; row < c.rows; row++ {
		var sb strings.Builder
		sb.WriteString(ui.AxisStyle.Render(c.gutterLabel(row)))
		for col := 0; col < c.cols; col++ {
			cell := grid[row][col]
			inBand := col >= b0 && col <= b1
			switch {
			case cell.prio > 0 && inBand:
				sb.WriteString(ui.BandStyle(cell.style).Render(cell.glyph))
			case cell.prio > 0:
				sb.WriteString(cell.style.Render(cell.glyph))
			case inBand:
				sb.WriteString(ui.BandStyle(lipgloss.NewStyle()).Render(" "))
			default:
				sb.WriteString(" ")
			}
		}
		lines = append(lines, sb.String())
	}

	lines = append(lines, ui.AxisStyle.Render(c.yearAxis()))
	for i, l := range lines {
		lines[i] = padRight(l, width)
	}
	return strings.Join(lines, "\n")
}

func (c *chartPane) gutterLabel(row int) string {
	var v float64
	switch row {
	case 0:
		v = c.durMax
	case c.rows - 1:
		v = c.durMin
	case (c.rows - 1) / 2:
		v = c.durMin + (c.durMax-c.durMin)/2
	default:
		return strings.Repeat(" ", gutterWidth-1) + "│"
	}
	return fmt.Sprintf("%*.0f", gutterWidth-1, v) + "┤"
}

// yearAxis labels every century that fits.
func (c *chartPane) yearAxis() string {
	axis := []rune(strings.Repeat(" ", gutterWidth+c.cols))
	axis[gutterWidth-1] = '└'
	first := math.Ceil(c.scale.D0/100) * 100
	next := 0
	for y := first; y <= c.scale.D1; y += 100 {
		label := fmt.Sprintf("%.0f", y)
		col := gutterWidth + int(math.Floor(c.scale.Map(y)))
		if col < next || col+len(label) > len(axis) {
			continue
		}
		copy(axis[col:], []rune(label))
		next = col + len(label) + 1
	}
	return string(axis)
}
