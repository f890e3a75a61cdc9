// Package table builds and renders solar event tables and commute plans
// from a single day's solar noon and declination.
package table

import (
	"fmt"

	"github.com/thurmanmarka/ephemeris"
)

// Kind selects which events a table lists.
type Kind int

const (
	// Day lists every event from astronomical dawn to astronomical dusk
	// except the morning golden hour.
	Day Kind = iota
	// Morning lists dawn through the end of morning golden hour.
	Morning
	// Evening lists the start of evening golden hour through astronomical dusk.
	Evening
)

func (k Kind) String() string {
	switch k {
	case Day:
		return "day"
	case Morning:
		return "morning"
	case Evening:
		return "evening"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Events returns the catalog entries for k in display order.
func (k Kind) Events() []ephemeris.EventSpec {
	switch k {
	case Morning:
		return []ephemeris.EventSpec{
			ephemeris.AstronomicalDawn,
			ephemeris.NauticalDawn,
			ephemeris.CivilDawn,
			ephemeris.GoldenMorning,
			ephemeris.Sunrise,
			ephemeris.GoldenMorningEnd,
		}
	case Evening:
		return []ephemeris.EventSpec{
			ephemeris.GoldenEvening,
			ephemeris.Sunset,
			ephemeris.GoldenEveningEnd,
			ephemeris.CivilDusk,
			ephemeris.NauticalDusk,
			ephemeris.AstronomicalDusk,
		}
	default:
		return []ephemeris.EventSpec{
			ephemeris.AstronomicalDawn,
			ephemeris.NauticalDawn,
			ephemeris.CivilDawn,
			ephemeris.Sunrise,
			ephemeris.SolarNoon,
			ephemeris.GoldenEvening,
			ephemeris.Sunset,
			ephemeris.GoldenEveningEnd,
			ephemeris.CivilDusk,
			ephemeris.NauticalDusk,
			ephemeris.AstronomicalDusk,
		}
	}
}

// Row is one line of a table. Hour fields are meaningless when the
// event does not occur.
type Row struct {
	Event     ephemeris.EventSpec
	Result    ephemeris.EventResult
	Relative  float64 // event - now, hours
	Departure float64 // event - commute, local clock hours
	Leave     float64 // departure - now, hours
}

// Past reports whether the departure time has already gone by.
func (r Row) Past() bool {
	return r.Leave < 0
}

// Build evaluates events from one Solar. now is the current local clock
// time in hours; commuteMinutes may be zero.
func Build(calc *ephemeris.Calculator, s ephemeris.Solar, loc ephemeris.Location, events []ephemeris.EventSpec, now, commuteMinutes float64) []Row {
	commute := commuteMinutes / 60.0

	rows := make([]Row, 0, len(events))
	for _, spec := range events {
		res := calc.EventFor(s, loc, spec)
		row := Row{Event: spec, Result: res}
		if res.Occurs {
			row.Relative = res.Elapsed() - now
			row.Departure = res.Elapsed() - commute
			row.Leave = row.Departure - now
		}
		rows = append(rows, row)
	}
	return rows
}
