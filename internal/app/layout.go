package app

// Fixed rows: header, status, three dividers, error bar, footer.
const reservedRows = 7

const (
	gutterWidth  = 5 // duration labels left of the plot
	minGlobeRows = 4
	minPlotRows  = 3
	minPlotCols  = 10
)

// layout places every pane on the terminal grid. All coordinates are zero
// based cells.
type layout struct {
	width, height int

	globeTop, globeRows int

	chartTop   int // chart title row
	chartWidth int
	plotTop    int
	plotRows   int
	plotLeft   int
	plotCols   int
	bottomRows int // title + plot + axis

	detailLeft  int
	detailWidth int
}

func computeLayout(width, height int) layout {
	l := layout{width: width, height: height}

	avail := max(0, height-reservedRows)
	l.globeRows = max(minGlobeRows, avail*55/100)
	l.bottomRows = max(minPlotRows+2, avail-l.globeRows)
	l.globeTop = 3
	l.chartTop = l.globeTop + l.globeRows + 1
	l.plotTop = l.chartTop + 1
	l.plotRows = l.bottomRows - 2

	l.chartWidth = max(gutterWidth+minPlotCols+1, width*60/100)
	l.plotLeft = gutterWidth
	l.plotCols = max(minPlotCols, l.chartWidth-gutterWidth-1)
	l.detailLeft = l.chartWidth + 1
	l.detailWidth = max(0, width-l.detailLeft)
	return l
}

// plotCell maps a terminal cell to a plot cell.
func (l layout) plotCell(x, y int) (col, row int, ok bool) {
	col, row = x-l.plotLeft, y-l.plotTop
	if col < 0 || col >= l.plotCols || row < 0 || row >= l.plotRows {
		return col, row, false
	}
	return col, row, true
}

// globeCell maps a terminal cell to a globe cell.
func (l layout) globeCell(x, y int) (col, row int, ok bool) {
	col, row = x, y-l.globeTop
	if col < 0 || col >= l.width || row < 0 || row >= l.globeRows {
		return col, row, false
	}
	return col, row, true
}
