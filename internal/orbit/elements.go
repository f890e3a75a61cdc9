// Package orbit holds the closed-form fits for the Sun's apparent orbital
// elements. Every function takes t, Julian centuries since J2000.0.
//
// References:
//   - NOAA Solar Calculator: https://gml.noaa.gov/grad/solcalc/
//   - USNO: https://aa.usno.navy.mil/faq/sun_approx
//   - Meeus, Jean (1991). Astronomical Algorithms, ch. 22 and 25.
//   - Laskar, J. (1986). Secular terms of classical planetary theories.
//   - Reda, I. & Andreas, A. (2008). NREL/TP-560-34302.
package orbit

import (
	"math"

	"github.com/thurmanmarka/ephemeris/internal/timeutil"
)

// obliquityJ2000 is 23°26'21.448" expressed in arcseconds.
const obliquityJ2000 = (23.0*60.0+26.0)*60.0 + 21.448

// Elements bundles the orbital quantities for one instant. Angles are in
// degrees except AscendingNode, which is in radians.
type Elements struct {
	T                float64 // Julian centuries since J2000.0
	MeanLongitude    float64
	MeanAnomaly      float64
	EquationOfCenter float64
	Eccentricity     float64
	Obliquity        float64
	AscendingNode    float64 // radians
	Nutation         float64
}

// Compute evaluates every element at t with the given variants.
func Compute(t float64, algo Algorithm, form NodeForm) Elements {
	l := MeanLongitude(t, algo)
	m := MeanAnomaly(t, algo)
	omega := LongitudeAscendingNode(t, form)

	return Elements{
		T:                t,
		MeanLongitude:    l,
		MeanAnomaly:      m,
		EquationOfCenter: EquationOfCenter(t, m, algo),
		Eccentricity:     Eccentricity(t),
		Obliquity:        ObliquityOfEcliptic(t, algo),
		AscendingNode:    omega,
		Nutation:         NutationInLongitude(omega, t, l),
	}
}

// TrueLongitude is the geometric longitude L + C.
func (e Elements) TrueLongitude() float64 {
	return e.MeanLongitude + e.EquationOfCenter
}

// TrueAnomaly is M + C.
func (e Elements) TrueAnomaly() float64 {
	return e.MeanAnomaly + e.EquationOfCenter
}

// RadiusVector is the Earth-Sun distance in AU.
func (e Elements) RadiusVector() float64 {
	return RadiusVector(e.Eccentricity, e.TrueAnomaly())
}

// MeanLongitude returns the geometric mean longitude of the Sun, referred
// to the mean equinox of date, normalized into [0, 360).
func MeanLongitude(t float64, algo Algorithm) float64 {
	var l0 float64

	switch algo {
	case USNO:
		l0 = 280.460 + 36000.771*t
	case LASKAR:
		// Meeus Eq. 28.2 in centuries (the Laskar series is in millennia).
		t2 := t * t
		t3 := t2 * t
		l0 = 280.4664567 + 36000.76982779*t + 0.03032028*t2 +
			t3/49931 - t3*t/15300 - t3*t2/2e6
	default:
		l0 = 280.46646 + t*(36000.76983+t*0.0003032)
	}

	return timeutil.Normalize360(l0)
}

// MeanAnomaly returns the mean anomaly of the Sun normalized into [0, 360).
func MeanAnomaly(t float64, algo Algorithm) float64 {
	var m float64

	switch algo {
	case USNO:
		m = 357.528 + 35999.050*t
	case LASKAR:
		m = 357.52772 + 35999.050340*t - 0.0001603*t*t + t*t*t/300000
	default:
		m = 357.52911 + t*(35999.05029-t*0.0001536)
	}

	return timeutil.Normalize360(m)
}

// EquationOfCenter returns the correction from mean to true anomaly in
// degrees. meanAnomaly is in degrees.
func EquationOfCenter(t, meanAnomaly float64, algo Algorithm) float64 {
	m := timeutil.Deg2Rad(meanAnomaly)

	switch algo {
	case USNO:
		return 1.915*math.Sin(m) + 0.020*math.Sin(2*m)
	default:
		// NOAA and LASKAR share Meeus' time-dependent coefficients.
		return (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
			(0.019993-0.000101*t)*math.Sin(2*m) +
			0.000289*math.Sin(3*m)
	}
}

// Eccentricity of the Earth's orbit (Meeus Eq. 25.4).
func Eccentricity(t float64) float64 {
	return 0.016708634 - t*(0.000042037+t*0.0000001267)
}

// RadiusVector returns the Earth-Sun distance in AU for eccentricity e and
// true anomaly nu in degrees.
func RadiusVector(e, nu float64) float64 {
	return 1.000001018 * (1 - e*e) / (1 + e*timeutil.CosD(nu))
}

// ObliquityOfEcliptic returns the mean obliquity of the ecliptic in degrees.
// The polynomials are in U = t/100 (units of 10,000 Julian years).
func ObliquityOfEcliptic(t float64, algo Algorithm) float64 {
	u := t / 100.0

	var eps float64
	switch algo {
	case USNO:
		eps = obliquityJ2000 - 4680.93*u
	case LASKAR:
		// Meeus Eq. 22.3, evaluated with Horner's scheme.
		eps = obliquityJ2000 + u*(-4680.93+u*(-1.55+u*(1999.25+u*(-51.38+
			u*(-249.67+u*(-39.05+u*(7.12+u*(27.87+u*(5.79+u*2.45)))))))))
	default:
		eps = obliquityJ2000 - 4681.5*u - 5.9*u*u + 1813*u*u*u
	}

	return eps / 3600.0
}

// LongitudeAscendingNode returns the longitude of the ascending node of the
// Moon's mean orbit in radians.
func LongitudeAscendingNode(t float64, form NodeForm) float64 {
	switch form {
	case NodeLinear:
		return timeutil.Deg2Rad(125.04 - 1934.136*t)
	default:
		return timeutil.Deg2Rad(125.04452 - 1934.136261*t + 0.0020708*t*t + t*t*t/450000.0)
	}
}

// moonMeanLongitude is L' of Meeus ch. 22, in degrees.
func moonMeanLongitude(t float64) float64 {
	return 218.3165 + 481267.8813*t
}

// NutationInLongitude returns the low-accuracy nutation in longitude
// (Meeus ch. 22, ~0.5") in degrees. ascendingNode is in radians,
// meanLongitude in degrees.
func NutationInLongitude(ascendingNode, t, meanLongitude float64) float64 {
	l := timeutil.Deg2Rad(meanLongitude)
	lm := timeutil.Deg2Rad(moonMeanLongitude(t))

	arcsec := -17.20*math.Sin(ascendingNode) -
		1.32*math.Sin(2*l) -
		0.23*math.Sin(2*lm) +
		0.21*math.Sin(2*ascendingNode)

	return arcsec / 3600.0
}
