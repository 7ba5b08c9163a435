// Package featureservice queries the ArcGIS feature layer that publishes the
// eclipse path polygons and turns its JSON features into eclipse records.
package featureservice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/jwulff/eclipse/internal/eclipse"
)

// OutFields are the attributes requested for every feature.
var OutFields = []string{
	"OBJECTID",
	"EclType",
	"Date",
	"TimeGE",
	"DurationSeconds",
	"PathWid",
	"EclMagn",
	"SunAlt",
	"SunAzi",
	"Lunation",
	"Saro",
	"Gamma",
	"DT",
	"EclType_simple",
	"Latitude",
	"Longitud",
}

// Query is one page request against the layer's query endpoint.
type Query struct {
	Where              string
	OutFields          []string
	OrderBy            string
	OutSR              int
	GeometryPrecision  int
	MaxAllowableOffset float64
	Offset             int
	Count              int
}

// Values encodes q as query-string parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("f", "json")
	v.Set("where", q.Where)
	v.Set("outFields", strings.Join(q.OutFields, ","))
	v.Set("returnGeometry", "true")
	v.Set("orderByFields", q.OrderBy)
	v.Set("outSR", strconv.Itoa(q.OutSR))
	v.Set("geometryPrecision", strconv.Itoa(q.GeometryPrecision))
	v.Set("maxAllowableOffset", strconv.FormatFloat(q.MaxAllowableOffset, 'f', -1, 64))
	v.Set("resultOffset", strconv.Itoa(q.Offset))
	v.Set("resultRecordCount", strconv.Itoa(q.Count))
	return v
}

// Response is the body of a query reply. Exactly one of Features or Error is
// meaningful.
type Response struct {
	Features []Feature     `json:"features"`
	Error    *ServiceError `json:"error,omitempty"`
}

// ServiceError is the error object the service returns with HTTP 200.
type ServiceError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// Feature is one eclipse path as served.
type Feature struct {
	Attributes Attributes `json:"attributes"`
	Geometry   *Geometry  `json:"geometry,omitempty"`
}

// Geometry holds ArcGIS polygon rings in (lon, lat) order.
type Geometry struct {
	Rings [][][2]float64 `json:"rings"`
}

// Attributes are the requested fields of a feature.
type Attributes struct {
	ObjectID        Number `json:"OBJECTID"`
	EclType         string `json:"EclType"`
	Date            Number `json:"Date"`
	TimeGE          Number `json:"TimeGE"`
	DurationSeconds Number `json:"DurationSeconds"`
	PathWid         Number `json:"PathWid"`
	EclMagn         Number `json:"EclMagn"`
	SunAlt          Number `json:"SunAlt"`
	SunAzi          Number `json:"SunAzi"`
	Lunation        Number `json:"Lunation"`
	Saro            Number `json:"Saro"`
	Gamma           Number `json:"Gamma"`
	DT              Number `json:"DT"`
	EclTypeSimple   string `json:"EclType_simple"`
	Latitude        Number `json:"Latitude"`
	Longitud        Number `json:"Longitud"`
}

// Number accepts a JSON number, a numeric string, or null. Some layer fields
// are published as strings. Blank or non-numeric strings decode as an invalid
// Number so one bad cell does not fail the whole page.
type Number struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*n = Number{}
			return nil
		}
		*n = Number{Value: v, Valid: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Number{Value: v, Valid: true}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Time reads n as epoch milliseconds in UTC.
func (n Number) Time() time.Time {
	if !n.Valid {
		return time.Time{}
	}
	return time.UnixMilli(int64(n.Value)).UTC()
}

// Record converts the feature into an eclipse record. A feature without an
// object id or a date cannot be placed on the chart and is rejected.
func (f Feature) Record() (eclipse.Record, error) {
	a := f.Attributes
	if !a.ObjectID.Valid {
		return eclipse.Record{}, fmt.Errorf("feature has no OBJECTID")
	}
	if !a.Date.Valid {
		return eclipse.Record{}, fmt.Errorf("feature %d has no Date", int(a.ObjectID.Value))
	}
	r := eclipse.Record{
		ID:              int(a.ObjectID.Value),
		Category:        eclipse.ParseCategory(a.EclTypeSimple),
		Subtype:         strings.TrimSpace(a.EclType),
		Date:            a.Date.Time(),
		TimeOfMax:       a.TimeGE.Time(),
		DurationSeconds: a.DurationSeconds.Value,
		PathWidthKm:     a.PathWid.Value,
		Magnitude:       a.EclMagn.Value,
		SunAltitudeDeg:  a.SunAlt.Value,
		SunAzimuthDeg:   a.SunAzi.Value,
		Lunation:        int(a.Lunation.Value),
		Saros:           int(a.Saro.Value),
		Gamma:           a.Gamma.Value,
		DeltaTSeconds:   a.DT.Value,
		Latitude:        a.Latitude.Value,
		Longitude:       a.Longitud.Value,
	}
	if f.Geometry != nil {
		r.Geometry = RingsToMultiPolygon(f.Geometry.Rings)
	}
	return r, nil
}

// RingsToMultiPolygon groups ArcGIS rings into polygons. Clockwise rings open a
// new polygon; counter-clockwise rings are holes of the polygon before them.
// Rings with fewer than four points are skipped.
func RingsToMultiPolygon(rings [][][2]float64) orb.MultiPolygon {
	var mp orb.MultiPolygon
	for _, raw := range rings {
		if len(raw) < 4 {
			continue
		}
		ring := make(orb.Ring, len(raw))
		for i, p := range raw {
			ring[i] = orb.Point{p[0], p[1]}
		}
		if !ring.Closed() {
			ring = append(ring, ring[0])
		}
		if ring.Orientation() == orb.CW || len(mp) == 0 {
			mp = append(mp, orb.Polygon{ring})
			continue
		}
		last := len(mp) - 1
		mp[last] = append(mp[last], ring)
	}
	return mp
}
