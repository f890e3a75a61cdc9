package ephemeris

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/thurmanmarka/ephemeris/internal/solver"
	"github.com/thurmanmarka/ephemeris/internal/timeutil"
)

// EventSpec describes a solar event as a sun angle and a half of the day.
//
// SunAngle is measured from the horizon with positive values BELOW it:
// civil twilight is +6, the end of morning golden hour is -6.
type EventSpec struct {
	Name     string  // machine name, e.g. "civil-dusk"
	Label    string  // human label, e.g. "Civil twilight ends"
	SunAngle float64 // degrees, positive below the horizon
	Morning  bool    // true = before solar noon

	// Horizon marks sunrise/sunset: the zenith then comes from the solar
	// semi-diameter, refraction and the observer's horizon dip instead of
	// SunAngle.
	Horizon bool

	// Noon marks solar transit; SunAngle and Morning are ignored.
	Noon bool
}

// Zenith returns the zenith angle for a non-horizon event.
func (s EventSpec) Zenith() float64 {
	return 90.0 + s.SunAngle
}

// -----------------------------
// Event catalog
// -----------------------------

var (
	AstronomicalDawn = EventSpec{Name: "astronomical-dawn", Label: "Astronomical twilight begins", SunAngle: 18, Morning: true}
	NauticalDawn     = EventSpec{Name: "nautical-dawn", Label: "Nautical twilight begins", SunAngle: 12, Morning: true}
	CivilDawn        = EventSpec{Name: "civil-dawn", Label: "Civil twilight begins", SunAngle: 6, Morning: true}
	GoldenMorning    = EventSpec{Name: "golden-morning", Label: "Golden hour starts", SunAngle: 4, Morning: true}
	Sunrise          = EventSpec{Name: "sunrise", Label: "Sunrise", Morning: true, Horizon: true}
	GoldenMorningEnd = EventSpec{Name: "golden-morning-end", Label: "Golden hour ends", SunAngle: -6, Morning: true}
	SolarNoon        = EventSpec{Name: "solar-noon", Label: "Solar noon", Noon: true}
	GoldenEvening    = EventSpec{Name: "golden-evening", Label: "Golden hour starts", SunAngle: -6}
	Sunset           = EventSpec{Name: "sunset", Label: "Sunset", Horizon: true}
	GoldenEveningEnd = EventSpec{Name: "golden-evening-end", Label: "Golden hour ends", SunAngle: 4}
	CivilDusk        = EventSpec{Name: "civil-dusk", Label: "Civil twilight ends", SunAngle: 6}
	NauticalDusk     = EventSpec{Name: "nautical-dusk", Label: "Nautical twilight ends", SunAngle: 12}
	AstronomicalDusk = EventSpec{Name: "astronomical-dusk", Label: "Astronomical twilight ends", SunAngle: 18}
)

// Events lists the catalog in chronological order for a mid-latitude day.
var Events = []EventSpec{
	AstronomicalDawn,
	NauticalDawn,
	CivilDawn,
	GoldenMorning,
	Sunrise,
	GoldenMorningEnd,
	SolarNoon,
	GoldenEvening,
	Sunset,
	GoldenEveningEnd,
	CivilDusk,
	NauticalDusk,
	AstronomicalDusk,
}

// LookupEvent finds a catalog entry by its Name, case-insensitively.
func LookupEvent(name string) (EventSpec, bool) {
	for _, e := range Events {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return EventSpec{}, false
}

// -----------------------------
// Results
// -----------------------------

// Condition explains a non-occurring event.
type Condition = solver.Condition

const (
	// Crosses means the event happens.
	Crosses = solver.Crosses
	// NeverReached means the Sun stays below the event's altitude all day.
	NeverReached = solver.NeverReached
	// NeverLeaves means the Sun stays above the event's altitude all day.
	NeverLeaves = solver.NeverLeaves
)

// EventResult is the outcome of one event query. Callers must check
// Occurs; Hours is zero when the event does not happen.
type EventResult struct {
	Occurs    bool
	Hours     float64   // local clock time, fractional hours in [0, 24)
	Condition Condition // why the event does not occur; Crosses when it does

	// DayOffset is the calendar day the clock time falls on relative to
	// the query date: +1 for a dusk after local midnight, -1 for a dawn
	// before it.
	DayOffset int
}

// resultAt builds an occurring result from unnormalized local hours.
func resultAt(h float64) EventResult {
	clock := timeutil.Normalize24(h)
	return EventResult{
		Occurs:    true,
		Hours:     clock,
		Condition: Crosses,
		DayOffset: int(math.Round((h - clock) / 24)),
	}
}

// Time converts the result to a wall-clock time in the location's fixed
// zone, on date shifted by DayOffset. ok is false when the event does not
// occur.
func (r EventResult) Time(date Date, loc Location) (t time.Time, ok bool) {
	if !r.Occurs {
		return time.Time{}, false
	}
	d := date.AddDays(r.DayOffset)
	return timeutil.FractionalHoursToTime(d.Year, time.Month(d.Month), d.Day, r.Hours, loc.Zone()), true
}

// Elapsed is the event time in hours from midnight of the query date,
// counting DayOffset. It can be negative or exceed 24.
func (r EventResult) Elapsed() float64 {
	return r.Hours + 24*float64(r.DayOffset)
}

// String formats the time as HH:MM:SS, or "--:--" when it does not occur.
func (r EventResult) String() string {
	if !r.Occurs {
		return "--:--"
	}
	h, m, s := timeutil.HoursToHMS(r.Hours)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
