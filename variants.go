package ephemeris

import (
	"github.com/thurmanmarka/ephemeris/internal/orbit"
	"github.com/thurmanmarka/ephemeris/internal/timeutil"
)

// Time-scale and orbital element accessors. Every t is Julian centuries
// since J2000.0; angles are degrees unless stated otherwise.

// JulianDate returns the Julian Day Number of a Gregorian date (noon UT).
func JulianDate(year, month, day int) float64 { return timeutil.JulianDate(year, month, day) }

// J2000Offset returns jd - 2451545.0.
func J2000Offset(jd float64) float64 { return timeutil.J2000Offset(jd) }

// JulianCentury converts a J2000 day offset to Julian centuries.
func JulianCentury(j2000 float64) float64 { return timeutil.JulianCentury(j2000) }

// CenturiesFor is JulianCentury(J2000Offset(JulianDate(date))).
func CenturiesFor(date Date) float64 {
	return timeutil.CenturiesForDate(date.Year, date.Month, date.Day)
}

// MeanLongitude of the Sun, normalized to [0, 360).
func MeanLongitude(t float64, algo Algorithm) float64 { return orbit.MeanLongitude(t, algo) }

// MeanAnomaly of the Sun, normalized to [0, 360).
func MeanAnomaly(t float64, algo Algorithm) float64 { return orbit.MeanAnomaly(t, algo) }

// EquationOfCenter for a mean anomaly in degrees.
func EquationOfCenter(t, meanAnomaly float64, algo Algorithm) float64 {
	return orbit.EquationOfCenter(t, meanAnomaly, algo)
}

// Eccentricity of the Earth's orbit (single variant).
func Eccentricity(t float64) float64 { return orbit.Eccentricity(t) }

// ObliquityOfEcliptic is the mean obliquity.
func ObliquityOfEcliptic(t float64, algo Algorithm) float64 {
	return orbit.ObliquityOfEcliptic(t, algo)
}

// LongitudeAscendingNode of the Moon's mean orbit, in radians.
func LongitudeAscendingNode(t float64, form NodeForm) float64 {
	return orbit.LongitudeAscendingNode(t, form)
}

// NutationInLongitude for a node in radians and a solar mean longitude in
// degrees.
func NutationInLongitude(ascendingNode, t, meanLongitude float64) float64 {
	return orbit.NutationInLongitude(ascendingNode, t, meanLongitude)
}
