package types

import (
	"fmt"
	"math"
)

// GeoPoint is a WGS84 latitude/longitude pair used for map markers.
type GeoPoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Validate checks the coordinate ranges only; no geocoding is attempted.
func (g GeoPoint) Validate() error {
	if math.IsNaN(g.Lat) || g.Lat < -90 || g.Lat > 90 {
		return fmt.Errorf("latitude %v out of range", g.Lat)
	}
	if math.IsNaN(g.Lng) || g.Lng < -180 || g.Lng > 180 {
		return fmt.Errorf("longitude %v out of range", g.Lng)
	}
	return nil
}

func (g GeoPoint) String() string {
	return fmt.Sprintf("%.4f,%.4f", g.Lat, g.Lng)
}
