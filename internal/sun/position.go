package sun

import (
	"math"

	"github.com/thurmanmarka/ephemeris/internal/orbit"
	"github.com/thurmanmarka/ephemeris/internal/timeutil"
)

// Coordinates holds the Sun's apparent geocentric position in degrees.
type Coordinates struct {
	ApparentLongitude float64 // ecliptic, degrees
	RA                float64 // right ascension, degrees [0, 360)
	Dec               float64 // declination, degrees
}

// Resolve converts orbital elements into apparent ecliptic longitude and
// equatorial coordinates:
//
//	λ = L + C + Δψ
//	δ = asin(sin ε · sin λ)
//	α = atan2(cos ε · sin λ, cos λ)
func Resolve(e orbit.Elements) Coordinates {
	lambda := e.MeanLongitude + e.EquationOfCenter + e.Nutation

	lamRad := timeutil.Deg2Rad(lambda)
	epsRad := timeutil.Deg2Rad(e.Obliquity)

	dec := math.Asin(math.Sin(epsRad) * math.Sin(lamRad))
	ra := math.Atan2(math.Cos(epsRad)*math.Sin(lamRad), math.Cos(lamRad))

	return Coordinates{
		ApparentLongitude: lambda,
		RA:                timeutil.Normalize360(timeutil.Rad2Deg(ra)),
		Dec:               timeutil.Rad2Deg(dec),
	}
}

// Declination is shorthand for Resolve(e).Dec.
func Declination(e orbit.Elements) float64 {
	return Resolve(e).Dec
}
