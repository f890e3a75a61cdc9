// Package ephemeris computes solar events such as sunrise, sunset, solar
// noon, twilight and golden hour for a calendar date and an observer
// location, using closed-form NOAA/Meeus-family approximations.
//
// Every operation is a pure function of its inputs and an explicit Config,
// so values can be computed concurrently without locking.
//
// Currently implemented:
//   - Sunrise and sunset via ComputeSunrise / ComputeSunset
//   - Arbitrary sun angles via ComputeGenericEvent and the Events catalog
//   - Solar noon and declination for table renderers
//   - Twilight, golden hour and blue hour windows
//   - NOAA, USNO and LASKAR orbital element variants
package ephemeris

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/thurmanmarka/ephemeris/internal/timeutil"
)

// Validation ranges.
const (
	MinYear     = 1900
	MaxYear     = 2100
	MinTZOffset = -12
	MaxTZOffset = 14
)

// Date is a Gregorian calendar date. Day is checked against 1..31 only;
// February 30 is accepted and rolls into March.
type Date struct {
	Year  int
	Month int
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// AddDays returns the date n days later (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, time.Month(d.Month), d.Day+n, 12, 0, 0, 0, time.UTC))
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Location is an observer on the ground. TZOffset is a whole number of
// hours east of UTC; fractional zones are not supported.
type Location struct {
	Latitude  float64 // degrees, north positive
	Longitude float64 // degrees, east positive (west negative, e.g. -90 for 90°W)
	TZOffset  int     // hours
	Altitude  float64 // meters above sea level
}

// Zone returns a fixed time.Location for l.TZOffset.
func (l Location) Zone() *time.Location {
	return timeutil.FixedZone(l.TZOffset)
}

var (
	// ErrInvalidInput is matched by every *ValidationError.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoRiseNoSet is returned by window helpers when neither the
	// morning nor the evening window exists on that date at that location.
	ErrNoRiseNoSet = errors.New("sun does not cross the requested altitudes on this date")
)

// ValidationError reports a single out-of-range input.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) succeed.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Validate checks a date and location against the supported ranges and
// returns the first violation as a *ValidationError.
func Validate(date Date, loc Location) error {
	switch {
	case date.Year < MinYear || date.Year > MaxYear:
		return &ValidationError{Field: "year", Value: date.Year, Reason: fmt.Sprintf("must be in [%d, %d]", MinYear, MaxYear)}
	case date.Month < 1 || date.Month > 12:
		return &ValidationError{Field: "month", Value: date.Month, Reason: "must be in [1, 12]"}
	case date.Day < 1 || date.Day > 31:
		return &ValidationError{Field: "day", Value: date.Day, Reason: "must be in [1, 31]"}
	case !finite(loc.Latitude) || loc.Latitude < -90 || loc.Latitude > 90:
		return &ValidationError{Field: "latitude", Value: loc.Latitude, Reason: "must be in [-90, 90]"}
	case !finite(loc.Longitude) || loc.Longitude < -180 || loc.Longitude > 180:
		return &ValidationError{Field: "longitude", Value: loc.Longitude, Reason: "must be in [-180, 180]"}
	case loc.TZOffset < MinTZOffset || loc.TZOffset > MaxTZOffset:
		return &ValidationError{Field: "timezone", Value: loc.TZOffset, Reason: fmt.Sprintf("must be in [%d, %d]", MinTZOffset, MaxTZOffset)}
	case !finite(loc.Altitude):
		return &ValidationError{Field: "altitude", Value: loc.Altitude, Reason: "must be finite"}
	}
	return nil
}

// Valid is the boolean form of Validate.
func Valid(date Date, loc Location) bool {
	return Validate(date, loc) == nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
