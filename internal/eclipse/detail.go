package eclipse

import (
	"fmt"
	"math"
	"strconv"
)

// DefaultTitle is shown for subtype codes missing from the table.
const DefaultTitle = "Solar Eclipse"

var subtypeTitles = map[string]string{
	"A":  "Annular Solar Eclipse",
	"An": "Annular Solar Eclipse (no northern limit)",
	"As": "Annular Solar Eclipse (no southern limit)",
	"A+": "Annular Solar Eclipse (no northern limit and no central line)",
	"A-": "Annular Solar Eclipse (no southern limit and no central line)",
	"Am": "Annular Solar Eclipse (middle eclipse of Saros)",
	"H":  "Hybrid Solar Eclipse (annular-total-annular)",
	"H2": "Hybrid Solar Eclipse (begins total, ends annular)",
	"H3": "Hybrid Solar Eclipse (begins annular, ends total)",
	"Hm": "Hybrid Solar Eclipse (middle eclipse of Saros)",
	"T":  "Total Solar Eclipse",
	"Tn": "Total Solar Eclipse (no northern limit)",
	"Ts": "Total Solar Eclipse (no southern limit)",
	"T+": "Total Solar Eclipse (no northern limit and no central line)",
	"T-": "Total Solar Eclipse (no southern limit and no central line)",
	"Tm": "Total Solar Eclipse (middle eclipse of Saros)",
}

// Title returns the display title for a subtype code.
func Title(subtype string) string {
	if t, ok := subtypeTitles[subtype]; ok {
		return t
	}
	return DefaultTitle
}

// Field is one labeled line of the detail panel.
type Field struct {
	Label string
	Value string
}

// Detail is the formatted content of the detail panel for one record.
type Detail struct {
	ID     int
	Title  string
	Fields []Field
}

// NewDetail formats r for display. Dates and times are shown in UTC.
func NewDetail(r Record) Detail {
	return Detail{
		ID:    r.ID,
		Title: Title(r.Subtype),
		Fields: []Field{
			{"Date", r.Date.UTC().Format("1/2/2006")},
			{"Saros", strconv.Itoa(r.Saros)},
			{"Lunation", strconv.Itoa(r.Lunation)},
			{"Gamma", formatNumber(r.Gamma)},
			{"Delta T", formatNumber(r.DeltaTSeconds) + " seconds"},
			{"Latitude", formatNumber(r.Latitude) + "º"},
			{"Longitude", formatNumber(r.Longitude) + "º"},
			{"Time of Max", r.TimeOfMax.UTC().Format("3:04:05 PM")},
			{"Sun Altitude", formatNumber(r.SunAltitudeDeg) + "°"},
			{"Sun Azimuth", formatNumber(r.SunAzimuthDeg) + "°"},
			{"Duration", FormatDuration(r.DurationSeconds)},
			{"Path Width", formatNumber(r.PathWidthKm) + " km"},
			{"Magnitude", formatNumber(r.Magnitude)},
		},
	}
}

// FormatDuration renders seconds, rounded to the nearest second, as whole
// minutes plus the remaining seconds, e.g. 200 → "3m 20s", 119.6 → "2m 0s".
func FormatDuration(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := math.Round(seconds)
	minutes := math.Floor(total / 60)
	return fmt.Sprintf("%.0fm %.0fs", minutes, total-minutes*60)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
