package eclipse

import (
	"testing"
	"time"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		code, want string
	}{
		{"A", "Annular Solar Eclipse"},
		{"A-", "Annular Solar Eclipse (no southern limit and no central line)"},
		{"H2", "Hybrid Solar Eclipse (begins total, ends annular)"},
		{"H3", "Hybrid Solar Eclipse (begins annular, ends total)"},
		{"Tm", "Total Solar Eclipse (middle eclipse of Saros)"},
		{"T+", "Total Solar Eclipse (no northern limit and no central line)"},
		{"P", "Solar Eclipse"},
		{"", "Solar Eclipse"},
	}
	for _, tt := range tests {
		if got := Title(tt.code); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
	if len(subtypeTitles) != 16 {
		t.Errorf("title table has %d entries, want 16", len(subtypeTitles))
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0m 0s"},
		{59, "0m 59s"},
		{60, "1m 0s"},
		{200, "3m 20s"},
		{442, "7m 22s"},
		{-1, "0m 0s"},
		{185.1, "3m 5s"},
		{200.5, "3m 21s"},
		{119.6, "2m 0s"},
		{119.99, "2m 0s"},
		{59.4, "0m 59s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewDetail(t *testing.T) {
	r := Record{
		ID:              7,
		Subtype:         "T",
		Date:            time.Date(2024, time.April, 8, 0, 0, 0, 0, time.UTC),
		TimeOfMax:       time.Date(1970, 1, 1, 18, 17, 16, 0, time.UTC),
		DurationSeconds: 268,
		PathWidthKm:     198,
		Magnitude:       1.0566,
		SunAltitudeDeg:  70,
		SunAzimuthDeg:   149,
		Lunation:        293,
		Saros:           139,
		Gamma:           0.3431,
		DeltaTSeconds:   74,
		Latitude:        25.3,
		Longitude:       -104.1,
	}
	d := NewDetail(r)

	if d.Title != "Total Solar Eclipse" {
		t.Errorf("Title = %q", d.Title)
	}
	want := map[string]string{
		"Date":         "4/8/2024",
		"Saros":        "139",
		"Lunation":     "293",
		"Gamma":        "0.3431",
		"Delta T":      "74 seconds",
		"Latitude":     "25.3º",
		"Longitude":    "-104.1º",
		"Time of Max":  "6:17:16 PM",
		"Sun Altitude": "70°",
		"Sun Azimuth":  "149°",
		"Duration":     "4m 28s",
		"Path Width":   "198 km",
		"Magnitude":    "1.0566",
	}
	if len(d.Fields) != len(want) {
		t.Fatalf("fields = %d, want %d", len(d.Fields), len(want))
	}
	for _, f := range d.Fields {
		if want[f.Label] != f.Value {
			t.Errorf("%s = %q, want %q", f.Label, f.Value, want[f.Label])
		}
	}
}
