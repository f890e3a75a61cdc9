package sun

import (
	"fmt"
	"math"
	"strings"

	"github.com/thurmanmarka/ephemeris/internal/timeutil"
)

const (
	// AUMeters is the astronomical unit.
	AUMeters = 149597870700.0

	// SolarRadiusMeters is the measured solar radius from Mercury transits
	// (Emilio et al. 2012, 696,342 ± 65 km).
	SolarRadiusMeters = 696342e3

	// AtmosphericRefraction is the standard refraction at the horizon, degrees.
	AtmosphericRefraction = 0.5667
)

// RadiusModel selects how the solar angular radius is derived.
type RadiusModel int

const (
	// FixedDistance assumes the Sun is exactly 1 AU away (≈0.26667°).
	FixedDistance RadiusModel = iota

	// DistanceCorrected uses the radius vector for the date.
	DistanceCorrected
)

func (r RadiusModel) String() string {
	switch r {
	case FixedDistance:
		return "fixed"
	case DistanceCorrected:
		return "corrected"
	default:
		return fmt.Sprintf("RadiusModel(%d)", int(r))
	}
}

// Valid reports whether r is a declared model.
func (r RadiusModel) Valid() bool {
	return r == FixedDistance || r == DistanceCorrected
}

// ParseRadiusModel accepts "fixed" or "corrected".
func ParseRadiusModel(s string) (RadiusModel, error) {
	switch strings.ToLower(s) {
	case "fixed":
		return FixedDistance, nil
	case "corrected":
		return DistanceCorrected, nil
	default:
		return FixedDistance, fmt.Errorf("unknown radius model %q (use fixed or corrected)", s)
	}
}

// AngularRadius returns the apparent solar semi-diameter in degrees for an
// Earth-Sun distance in AU.
func AngularRadius(distanceAU float64) float64 {
	return timeutil.Rad2Deg(math.Atan(SolarRadiusMeters / (distanceAU * AUMeters)))
}

// HorizonElevation is the altitude of the Sun's center when its upper limb
// touches the horizon: -(angular radius + refraction), ≈ -0.8334° at 1 AU.
func HorizonElevation(distanceAU float64) float64 {
	return -(AngularRadius(distanceAU) + AtmosphericRefraction)
}

// StandardElevation is HorizonElevation at 1 AU.
var StandardElevation = HorizonElevation(1.0)

// HorizonDip returns the depression of the visible horizon in degrees for
// an observer altitudeMeters above sea level (2.076·√h arcminutes). Zero
// for altitudes at or below sea level.
func HorizonDip(altitudeMeters float64) float64 {
	if altitudeMeters <= 0 {
		return 0
	}
	return 2.076 * math.Sqrt(altitudeMeters) / 60.0
}

// SunAngleToZenith converts a sun angle (positive = below the horizon,
// negative = above) to a zenith angle.
func SunAngleToZenith(sunAngle float64) float64 {
	return 90.0 + sunAngle
}

// HorizonZenith returns the effective zenith for sunrise/sunset with the
// given solar distance and observer altitude.
func HorizonZenith(distanceAU, altitudeMeters float64) float64 {
	elevation := HorizonElevation(distanceAU) - HorizonDip(altitudeMeters)
	return 90.0 - elevation
}
