// Package solver turns a target solar zenith into a time offset from solar
// noon, either in closed form from the hour-angle equation or by bracketing
// and bisecting an altitude function.
package solver

import (
	"math"

	"github.com/thurmanmarka/ephemeris/internal/timeutil"
)

// Condition explains why an hour angle does or does not exist.
type Condition int

const (
	// Crosses means the Sun passes through the target zenith twice a day.
	Crosses Condition = iota

	// NeverReached means the Sun never gets as high as the target zenith
	// (cos H > 1): it stays below the threshold all day.
	NeverReached

	// NeverLeaves means the Sun never drops to the target zenith
	// (cos H < -1): it stays above the threshold all day.
	NeverLeaves
)

func (c Condition) String() string {
	switch c {
	case Crosses:
		return "crosses"
	case NeverReached:
		return "never-reached"
	case NeverLeaves:
		return "never-leaves"
	default:
		return "unknown"
	}
}

// HourAngle is the tagged result of SolveHourAngle. Degrees is only
// meaningful when OK is true, and then lies in [0, 180].
type HourAngle struct {
	Degrees   float64
	OK        bool
	Condition Condition
}

// Hours converts the hour angle to a clock offset from solar noon.
func (h HourAngle) Hours() float64 {
	return h.Degrees / timeutil.DegreesPerHour
}

// SolveHourAngle solves
//
//	cos H = (cos z − sin φ · sin δ) / (cos φ · cos δ)
//
// for the zenith z, latitude φ and declination δ, all in degrees. It never
// returns NaN: a cos H outside [-1, 1] (including the infinities produced
// at φ = ±90°) is reported through OK and Condition.
func SolveHourAngle(zenithDeg, latitudeDeg, declinationDeg float64) HourAngle {
	lat := timeutil.Deg2Rad(latitudeDeg)
	dec := timeutil.Deg2Rad(declinationDeg)
	z := timeutil.Deg2Rad(zenithDeg)

	num := math.Cos(z) - math.Sin(lat)*math.Sin(dec)
	den := math.Cos(lat) * math.Cos(dec)

	cosH := num / den
	switch {
	case math.IsNaN(cosH):
		// 0/0 only happens at a pole with the Sun exactly on the target
		// circle; treat it as a grazing contact at noon.
		return HourAngle{Degrees: 0, OK: true, Condition: Crosses}
	case cosH > 1:
		return HourAngle{Condition: NeverReached}
	case cosH < -1:
		return HourAngle{Condition: NeverLeaves}
	}

	return HourAngle{
		Degrees:   timeutil.Rad2Deg(math.Acos(cosH)),
		OK:        true,
		Condition: Crosses,
	}
}
