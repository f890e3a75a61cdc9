// Package sun resolves the Sun's apparent position from orbital elements
// and models the zenith angle at which rise/set-type events happen.
package sun

import (
	"math"

	"github.com/thurmanmarka/ephemeris/internal/orbit"
	"github.com/thurmanmarka/ephemeris/internal/timeutil"
)

// Observer is a ground position with an integer UTC offset.
type Observer struct {
	Lat      float64 // degrees, north positive
	Lon      float64 // degrees, east positive
	TZOffset int     // hours
}

// Model chooses the orbital-element variants used for a position.
type Model struct {
	Algorithm orbit.Algorithm
	NodeForm  orbit.NodeForm
}

// AltitudeAt returns the Sun's geometric altitude in degrees for an observer
// at local clock time hourLocal on the given calendar date. Elements are
// evaluated at the instant itself rather than at the date's noon.
func AltitudeAt(obs Observer, model Model, year, month, day int, hourLocal float64) float64 {
	hourUT := hourLocal - float64(obs.TZOffset)
	t := timeutil.CenturiesAt(year, month, day, hourUT)

	el := orbit.Compute(t, model.Algorithm, model.NodeForm)
	dec := Declination(el)
	eot := EquationOfTimeFor(el)

	// Apparent solar time and the local hour angle, 0 at transit.
	solarTime := hourUT + obs.Lon/timeutil.DegreesPerHour + eot
	h := timeutil.Deg2Rad((solarTime - 12.0) * timeutil.DegreesPerHour)

	latRad := timeutil.Deg2Rad(obs.Lat)
	decRad := timeutil.Deg2Rad(dec)

	sinAlt := math.Sin(latRad)*math.Sin(decRad) + math.Cos(latRad)*math.Cos(decRad)*math.Cos(h)

	// Clamp to handle numerical noise at the poles.
	if sinAlt > 1 {
		sinAlt = 1
	} else if sinAlt < -1 {
		sinAlt = -1
	}

	return timeutil.Rad2Deg(math.Asin(sinAlt))
}
