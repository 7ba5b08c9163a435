package eclipse

import "fmt"

// Window is the contiguous year range currently highlighted.
type Window struct {
	StartYear float64
	Width     float64
}

// End returns the inclusive upper bound of the window.
func (w Window) End() float64 {
	return w.StartYear + w.Width
}

// Contains reports whether year lies inside the window, both ends inclusive.
func (w Window) Contains(year int) bool {
	y := float64(year)
	return y >= w.StartYear && y <= w.End()
}

// Label renders the window as "start–end" with whole years.
func (w Window) Label() string {
	return fmt.Sprintf("%.0f–%.0f", w.StartYear, w.End())
}

// Resolve returns the records whose year falls inside w, in input order.
// It never clamps: bounds outside the configured date range are ordinary
// numbers here.
func Resolve(records []Record, w Window) []Record {
	var subset []Record
	for _, r := range records {
		if w.Contains(r.Year()) {
			subset = append(subset, r)
		}
	}
	return subset
}
