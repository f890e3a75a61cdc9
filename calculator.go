package ephemeris

import (
	"github.com/thurmanmarka/ephemeris/internal/orbit"
	"github.com/thurmanmarka/ephemeris/internal/solver"
	"github.com/thurmanmarka/ephemeris/internal/sun"
	"github.com/thurmanmarka/ephemeris/internal/timeutil"
)

// bisectionSteps samples half a day every ~15 minutes before bisecting.
const bisectionSteps = 49

// Solar holds the per-date quantities shared by every event of that day.
type Solar struct {
	Noon           float64 // local clock time of transit, hours in [0, 24)
	Declination    float64 // degrees
	RightAscension float64 // degrees
	EquationOfTime float64 // hours, apparent minus mean
	Distance       float64 // Earth-Sun distance, AU

	elements orbit.Elements
}

// Elements returns the orbital elements the values were derived from.
func (s Solar) Elements() orbit.Elements {
	return s.elements
}

// Calculator assembles event times for a fixed Config. The zero value is
// not usable; construct one with New.
type Calculator struct {
	cfg Config
}

// New returns a Calculator for cfg, or a *ValidationError if cfg names an
// unknown variant.
func New(cfg Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{cfg: cfg}, nil
}

// Config returns the calculator's configuration.
func (c *Calculator) Config() Config {
	return c.cfg
}

// Solar derives solar noon, declination and friends for a date and
// location. Elements are evaluated at noon UT of the date.
func (c *Calculator) Solar(date Date, loc Location) (Solar, error) {
	if err := Validate(date, loc); err != nil {
		return Solar{}, err
	}
	return c.solar(date, loc), nil
}

func (c *Calculator) solar(date Date, loc Location) Solar {
	t := timeutil.CenturiesForDate(date.Year, date.Month, date.Day)
	el := orbit.Compute(t, c.cfg.Algorithm, c.cfg.NodeForm)
	pos := sun.Resolve(el)
	eot := sun.EquationOfTimeFor(el)

	return Solar{
		Noon:           sun.SolarNoon(loc.Longitude, loc.TZOffset, eot),
		Declination:    pos.Dec,
		RightAscension: pos.RA,
		EquationOfTime: eot,
		Distance:       el.RadiusVector(),
		elements:       el,
	}
}

// Event computes the local time of spec on date at loc.
func (c *Calculator) Event(date Date, loc Location, spec EventSpec) (EventResult, error) {
	if err := Validate(date, loc); err != nil {
		return EventResult{}, err
	}
	return c.resolve(date, loc, c.solar(date, loc), spec), nil
}

func (c *Calculator) resolve(date Date, loc Location, s Solar, spec EventSpec) EventResult {
	if c.cfg.Method == Bisection {
		return c.bisect(date, loc, s, spec)
	}
	return c.EventFor(s, loc, spec)
}

// EventFor resolves spec in closed form from an already computed Solar,
// whatever the configured Method. Table renderers compute Solar once and
// call this for each row.
func (c *Calculator) EventFor(s Solar, loc Location, spec EventSpec) EventResult {
	if spec.Noon {
		return EventResult{Occurs: true, Hours: s.Noon, Condition: Crosses}
	}

	ha := solver.SolveHourAngle(c.zenith(s, loc, spec), loc.Latitude, s.Declination)
	if !ha.OK {
		return EventResult{Condition: ha.Condition}
	}

	h := s.Noon + ha.Hours()
	if spec.Morning {
		h = s.Noon - ha.Hours()
	}
	return resultAt(h)
}

func (c *Calculator) zenith(s Solar, loc Location, spec EventSpec) float64 {
	if !spec.Horizon {
		return spec.Zenith()
	}
	distance := 1.0
	if c.cfg.Radius == DistanceCorrected {
		distance = s.Distance
	}
	return sun.HorizonZenith(distance, loc.Altitude)
}

// bisect searches the half day before (morning) or after (evening) solar
// noon for the instant the instantaneous altitude crosses the event's.
func (c *Calculator) bisect(date Date, loc Location, s Solar, spec EventSpec) EventResult {
	if spec.Noon {
		return EventResult{Occurs: true, Hours: s.Noon, Condition: Crosses}
	}

	obs := sun.Observer{Lat: loc.Latitude, Lon: loc.Longitude, TZOffset: loc.TZOffset}
	model := c.cfg.model()
	target := 90.0 - c.zenith(s, loc, spec)

	f := func(hour float64) float64 {
		return sun.AltitudeAt(obs, model, date.Year, date.Month, date.Day, hour)
	}

	var res solver.Crossing
	if spec.Morning {
		res = solver.FindAltitudeEvent(f, s.Noon-12, s.Noon, target, solver.CrossingUp, bisectionSteps, solver.DefaultTolerance)
	} else {
		res = solver.FindAltitudeEvent(f, s.Noon, s.Noon+12, target, solver.CrossingDown, bisectionSteps, solver.DefaultTolerance)
	}

	if !res.OK {
		if f(s.Noon) < target {
			return EventResult{Condition: NeverReached}
		}
		return EventResult{Condition: NeverLeaves}
	}
	return resultAt(res.Hour)
}

// Sunrise is shorthand for Event(date, loc, Sunrise).
func (c *Calculator) Sunrise(date Date, loc Location) (EventResult, error) {
	return c.Event(date, loc, Sunrise)
}

// Sunset is shorthand for Event(date, loc, Sunset).
func (c *Calculator) Sunset(date Date, loc Location) (EventResult, error) {
	return c.Event(date, loc, Sunset)
}

// -----------------------------
// Package-level entry points
// -----------------------------

func calculatorFor(algo Algorithm) (*Calculator, error) {
	cfg := DefaultConfig()
	cfg.Algorithm = algo
	return New(cfg)
}

// ComputeSunset returns the local sunset time using DefaultConfig with the
// given element variant. Use NOAA for production.
func ComputeSunset(date Date, loc Location, algo Algorithm) (EventResult, error) {
	c, err := calculatorFor(algo)
	if err != nil {
		return EventResult{}, err
	}
	return c.Sunset(date, loc)
}

// ComputeSunrise is the morning counterpart of ComputeSunset.
func ComputeSunrise(date Date, loc Location, algo Algorithm) (EventResult, error) {
	c, err := calculatorFor(algo)
	if err != nil {
		return EventResult{}, err
	}
	return c.Sunrise(date, loc)
}

// ComputeGenericEvent returns the time the Sun's center reaches sunAngle
// degrees below the horizon (negative = above) in the morning or evening
// half of the day. No refraction or horizon dip is applied.
func ComputeGenericEvent(date Date, loc Location, sunAngle float64, morning bool) (EventResult, error) {
	return defaultCalculator().Event(date, loc, EventSpec{Name: "custom", SunAngle: sunAngle, Morning: morning})
}

// ComputeSolarNoonAndDeclination returns the local time of solar transit
// and the Sun's declination in degrees for the date.
func ComputeSolarNoonAndDeclination(date Date, loc Location) (noon, declination float64, err error) {
	s, err := defaultCalculator().Solar(date, loc)
	if err != nil {
		return 0, 0, err
	}
	return s.Noon, s.Declination, nil
}
