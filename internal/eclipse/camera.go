package eclipse

import "github.com/paulmach/orb"

// Camera is a globe view target.
type Camera struct {
	Center  orb.Point
	Heading float64
}

// RecenterLongitude picks the camera longitude for a footprint centred at lon.
// Western paths are shifted by 359 so the globe turns the short way round,
// and the thin band at [0, 0.5] is treated as an anti-meridian crossing and
// parked at 179.9.
func RecenterLongitude(lon float64) float64 {
	switch {
	case lon > 0.5:
		return lon
	case lon < 0:
		return lon + 359
	default:
		return 179.9
	}
}

// CameraFor returns the camera that frames r with north up.
func CameraFor(r Record) Camera {
	c := r.Center()
	return Camera{
		Center:  orb.Point{RecenterLongitude(c.Lon()), c.Lat()},
		Heading: 0,
	}
}
