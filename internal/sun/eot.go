package sun

import (
	"math"

	"github.com/thurmanmarka/ephemeris/internal/orbit"
	"github.com/thurmanmarka/ephemeris/internal/timeutil"
)

// EquationOfTime returns apparent minus mean solar time in hours, using
// Smart (1956), Text-Book on Spherical Astronomy, p. 149:
//
//	y = tan²(ε/2)
//	E = y sin 2L − 2e sin M + 4ey sin M cos 2L − ½y² sin 4L − 5/4 e² sin 2M
//
// A positive value means the sundial is ahead of the clock, so local solar
// noon falls E hours before 12:00 mean time.
func EquationOfTime(eccentricity, obliquity, meanAnomaly, meanLongitude float64) float64 {
	y := math.Pow(math.Tan(timeutil.Deg2Rad(obliquity)/2.0), 2)

	l := timeutil.Deg2Rad(meanLongitude)
	m := timeutil.Deg2Rad(meanAnomaly)
	e := eccentricity

	rad := y*math.Sin(2*l) -
		2*e*math.Sin(m) +
		4*e*y*math.Sin(m)*math.Cos(2*l) -
		0.5*y*y*math.Sin(4*l) -
		1.25*e*e*math.Sin(2*m)

	return timeutil.Rad2Deg(rad) / timeutil.DegreesPerHour
}

// EquationOfTimeFor evaluates EquationOfTime from a set of elements.
func EquationOfTimeFor(e orbit.Elements) float64 {
	return EquationOfTime(e.Eccentricity, e.Obliquity, e.MeanAnomaly, e.MeanLongitude)
}

// SolarNoon returns the local clock time (hours in [0, 24)) of solar
// transit for a longitude (east positive), an integer UTC offset and the
// equation of time in hours.
func SolarNoon(longitude float64, tzOffset int, eot float64) float64 {
	noonUTC := 12.0 - longitude/timeutil.DegreesPerHour - eot
	return timeutil.Normalize24(noonUTC + float64(tzOffset))
}
