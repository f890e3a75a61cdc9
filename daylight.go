package ephemeris

import (
	"fmt"
	"time"
)

// TwilightKind identifies the type of twilight based on the Sun's altitude
// below the horizon.
type TwilightKind int

const (
	// TwilightCivil corresponds to the Sun's center at -6 degrees altitude.
	TwilightCivil TwilightKind = iota

	// TwilightNautical corresponds to the Sun's center at -12 degrees altitude.
	TwilightNautical

	// TwilightAstronomical corresponds to the Sun's center at -18 degrees altitude.
	TwilightAstronomical
)

func (k TwilightKind) String() string {
	switch k {
	case TwilightCivil:
		return "civil"
	case TwilightNautical:
		return "nautical"
	case TwilightAstronomical:
		return "astronomical"
	default:
		return fmt.Sprintf("TwilightKind(%d)", int(k))
	}
}

// events returns the dawn and dusk catalog entries for k.
func (k TwilightKind) events() (dawn, dusk EventSpec, err error) {
	switch k {
	case TwilightCivil:
		return CivilDawn, CivilDusk, nil
	case TwilightNautical:
		return NauticalDawn, NauticalDusk, nil
	case TwilightAstronomical:
		return AstronomicalDawn, AstronomicalDusk, nil
	default:
		return EventSpec{}, EventSpec{}, fmt.Errorf("unknown TwilightKind: %d", k)
	}
}

// RiseSet holds a morning and an evening time on one date. A zero time
// means that side did not occur.
type RiseSet struct {
	Rise time.Time
	Set  time.Time
}

// PhaseWindow represents a continuous time interval where the Sun's altitude
// stays within a particular range (e.g. golden hour or blue hour).
type PhaseWindow struct {
	Start time.Time
	End   time.Time
}

// Duration is End - Start.
func (w PhaseWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// DaylightPhases holds the morning and evening windows for a given phase
// (e.g. golden hour or blue hour).
type DaylightPhases struct {
	// Morning is the interval after dawn / sunrise.
	Morning PhaseWindow
	// Evening is the interval before dusk / sunset.
	Evening PhaseWindow

	// HasMorning / HasEvening indicate whether the corresponding window
	// exists on this date at this location (high latitudes can be weird).
	HasMorning bool
	HasEvening bool
}

// DaylightHours returns sunset minus sunrise in hours. If either event does
// not occur (polar day or night) it returns 0 and ErrNoRiseNoSet.
func (c *Calculator) DaylightHours(date Date, loc Location) (float64, error) {
	if err := Validate(date, loc); err != nil {
		return 0, err
	}
	s := c.solar(date, loc)

	rise := c.resolve(date, loc, s, Sunrise)
	set := c.resolve(date, loc, s, Sunset)
	if !rise.Occurs || !set.Occurs {
		return 0, ErrNoRiseNoSet
	}

	return set.Elapsed() - rise.Elapsed(), nil
}

// Twilight computes dawn (Rise) and dusk (Set) of the given kind. Only
// when neither occurs is ErrNoRiseNoSet returned; a missing side is left
// as the zero time.
func (c *Calculator) Twilight(date Date, loc Location, kind TwilightKind) (RiseSet, error) {
	dawnSpec, duskSpec, err := kind.events()
	if err != nil {
		return RiseSet{}, err
	}
	if err := Validate(date, loc); err != nil {
		return RiseSet{}, err
	}
	s := c.solar(date, loc)

	dawn, okDawn := c.resolve(date, loc, s, dawnSpec).Time(date, loc)
	dusk, okDusk := c.resolve(date, loc, s, duskSpec).Time(date, loc)
	if !okDawn && !okDusk {
		return RiseSet{}, ErrNoRiseNoSet
	}

	return RiseSet{Rise: dawn, Set: dusk}, nil
}

// GoldenHour computes the golden hour windows. Golden hour is the period
// when the Sun's center is between 4° below and 6° above the horizon:
// Morning climbs from -4° to +6°, Evening descends from +6° to -4°.
//
// If neither morning nor evening golden hour exists, ErrNoRiseNoSet is
// returned.
func (c *Calculator) GoldenHour(date Date, loc Location) (DaylightPhases, error) {
	return c.phases(date, loc, GoldenMorning, GoldenMorningEnd, GoldenEvening, GoldenEveningEnd)
}

// BlueHour computes the blue hour windows, when the Sun's center is
// between 6° and 4° below the horizon.
//
// If neither morning nor evening blue hour exists, ErrNoRiseNoSet is
// returned.
func (c *Calculator) BlueHour(date Date, loc Location) (DaylightPhases, error) {
	return c.phases(date, loc, CivilDawn, GoldenMorning, GoldenEveningEnd, CivilDusk)
}

func (c *Calculator) phases(date Date, loc Location, morningStart, morningEnd, eveningStart, eveningEnd EventSpec) (DaylightPhases, error) {
	if err := Validate(date, loc); err != nil {
		return DaylightPhases{}, err
	}
	s := c.solar(date, loc)

	var phases DaylightPhases
	phases.Morning, phases.HasMorning = c.window(date, loc, s, morningStart, morningEnd)
	phases.Evening, phases.HasEvening = c.window(date, loc, s, eveningStart, eveningEnd)

	if !phases.HasMorning && !phases.HasEvening {
		return DaylightPhases{}, ErrNoRiseNoSet
	}
	return phases, nil
}

// window exists only when both bounding events occur in order.
func (c *Calculator) window(date Date, loc Location, s Solar, from, to EventSpec) (PhaseWindow, bool) {
	start, okStart := c.resolve(date, loc, s, from).Time(date, loc)
	end, okEnd := c.resolve(date, loc, s, to).Time(date, loc)
	if !okStart || !okEnd || !end.After(start) {
		return PhaseWindow{}, false
	}
	return PhaseWindow{Start: start, End: end}, true
}

// -----------------------------
// DefaultConfig conveniences
// -----------------------------

func defaultCalculator() *Calculator {
	return &Calculator{cfg: DefaultConfig()}
}

// DaylightHours is Calculator.DaylightHours with DefaultConfig.
func DaylightHours(date Date, loc Location) (float64, error) {
	return defaultCalculator().DaylightHours(date, loc)
}

// TwilightFor is Calculator.Twilight with DefaultConfig.
//
// For example, TwilightCivil returns civil dawn (Rise) and civil dusk (Set)
// where the Sun's altitude crosses -6 degrees.
func TwilightFor(date Date, loc Location, kind TwilightKind) (RiseSet, error) {
	return defaultCalculator().Twilight(date, loc, kind)
}

// GoldenHourFor is Calculator.GoldenHour with DefaultConfig.
func GoldenHourFor(date Date, loc Location) (DaylightPhases, error) {
	return defaultCalculator().GoldenHour(date, loc)
}

// BlueHourFor is Calculator.BlueHour with DefaultConfig.
func BlueHourFor(date Date, loc Location) (DaylightPhases, error) {
	return defaultCalculator().BlueHour(date, loc)
}
