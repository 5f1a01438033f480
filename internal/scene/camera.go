package scene

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Camera is the position and orientation of a scene viewpoint. Altitude is
// in meters, angles in degrees.
type Camera struct {
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
	Altitude  float64 `toml:"altitude"`
	Heading   float64 `toml:"heading"`
	Pitch     float64 `toml:"pitch"`
	Roll      float64 `toml:"roll"`
}

// NewCamera mirrors the argument order of the usual camera constructors:
// latitude, longitude, altitude, heading, pitch, roll.
func NewCamera(lat, lon, alt, heading, pitch, roll float64) Camera {
	return Camera{
		Latitude:  lat,
		Longitude: lon,
		Altitude:  alt,
		Heading:   heading,
		Pitch:     pitch,
		Roll:      roll,
	}
}

// Location returns the camera position as a lon/lat point.
func (c Camera) Location() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// Validate reports an error if a value is not finite or the position lies
// outside of the valid latitude/longitude range.
func (c Camera) Validate() error {
	values := []struct {
		name string
		v    float64
	}{
		{"latitude", c.Latitude},
		{"longitude", c.Longitude},
		{"altitude", c.Altitude},
		{"heading", c.Heading},
		{"pitch", c.Pitch},
		{"roll", c.Roll},
	}
	for _, f := range values {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("camera %s must be a finite number, got %v", f.name, f.v)
		}
	}

	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("camera latitude %v out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("camera longitude %v out of range [-180, 180]", c.Longitude)
	}

	return nil
}

func (c Camera) String() string {
	return fmt.Sprintf("lat=%.5f lon=%.5f alt=%.1fm heading=%.1f pitch=%.1f roll=%.1f",
		c.Latitude, c.Longitude, c.Altitude, c.Heading, c.Pitch, c.Roll)
}
