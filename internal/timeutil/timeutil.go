package timeutil

import (
	"math"
	"time"
)

const (
	// J2000 is the Julian Date of the J2000.0 epoch (2000-01-01 12:00 TT).
	J2000 = 2451545.0

	// DaysPerCentury is the length of a Julian century in days.
	DaysPerCentury = 36525.0

	// DegreesPerHour converts between hour angle and clock time.
	DegreesPerHour = 15.0
)

// -----------------------------
// Calendar date -> Julian time chain
// -----------------------------

// JulianDate returns the Julian Day Number for a Gregorian calendar date
// using the Fliegel–Van Flandern integer algorithm. The result is
// integer-valued and refers to noon UT of that date.
//
// No month-length checking is performed: February 30 maps to March 2.
func JulianDate(year, month, day int) float64 {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3

	jdn := day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
	return float64(jdn)
}

// J2000Offset returns the number of days since the J2000.0 epoch.
func J2000Offset(jd float64) float64 {
	return jd - J2000
}

// JulianCentury converts a J2000 day offset into Julian centuries.
func JulianCentury(j2000 float64) float64 {
	return j2000 / DaysPerCentury
}

// CenturiesForDate is shorthand for the full calendar -> century chain.
func CenturiesForDate(year, month, day int) float64 {
	return JulianCentury(J2000Offset(JulianDate(year, month, day)))
}

// CenturiesAt returns Julian centuries for a date at a given UT hour.
// hourUT is measured from midnight; 12 reproduces CenturiesForDate.
func CenturiesAt(year, month, day int, hourUT float64) float64 {
	jd := JulianDate(year, month, day) + (hourUT-12.0)/24.0
	return JulianCentury(J2000Offset(jd))
}

// -----------------------------
// Basic degree/radian helpers and trig with degree inputs.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func SinD(deg float64) float64 {
	return math.Sin(Deg2Rad(deg))
}

func CosD(deg float64) float64 {
	return math.Cos(Deg2Rad(deg))
}

func TanD(deg float64) float64 {
	return math.Tan(Deg2Rad(deg))
}

// Normalize360 reduces d into [0, 360).
func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	// A tiny negative input rounds up to exactly 360 above.
	if d >= 360.0 {
		d = 0
	}
	return d
}

// Normalize24 reduces h into [0, 24).
func Normalize24(h float64) float64 {
	h = math.Mod(h, 24.0)
	if h < 0 {
		h += 24.0
	}
	if h >= 24.0 {
		h = 0
	}
	return h
}

// -----------------------------
// Fractional hours <-> clock time
// -----------------------------

// HoursToHMS splits fractional hours into truncated hour, minute and
// second components. Negative input yields negative components.
func HoursToHMS(h float64) (hours, minutes, seconds int) {
	hours = int(h)
	rem := (h - float64(hours)) * 60.0
	minutes = int(rem)
	seconds = int((rem - float64(minutes)) * 60.0)
	return hours, minutes, seconds
}

// FractionalHoursToTime converts fractional hours since local midnight into
// a time on the given date in loc. h can be negative or >24; we let
// time.Add handle day rollover.
func FractionalHoursToTime(year int, month time.Month, day int, h float64, loc *time.Location) time.Time {
	base := time.Date(year, month, day, 0, 0, 0, 0, loc)

	// Round to nearest second to avoid crazy nanosecond noise.
	sec := int64(math.Round(h * 3600))

	return base.Add(time.Duration(sec) * time.Second)
}

// FixedZone returns a location for an integer UTC offset in hours.
func FixedZone(offsetHours int) *time.Location {
	if offsetHours == 0 {
		return time.UTC
	}
	return time.FixedZone("", offsetHours*3600)
}

// TimeToHours returns the clock time of t as fractional hours since
// midnight in t's own location.
func TimeToHours(t time.Time) float64 {
	return float64(t.Hour()) +
		float64(t.Minute())/60.0 +
		float64(t.Second())/3600.0 +
		float64(t.Nanosecond())/(3600.0*1e9)
}
