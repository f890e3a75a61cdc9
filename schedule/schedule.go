// Package schedule adapts solar events to robfig/cron so jobs can run at
// sunset, civil dusk or any other catalog event, with an optional offset.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/thurmanmarka/ephemeris"
)

// searchDays bounds how far ahead Next looks for an occurrence. A polar
// location waits at most half a year for its next sunset.
const searchDays = 366

// aliases maps short spec names onto catalog entries.
var aliases = map[string]string{
	"dawn": "civil-dawn",
	"dusk": "civil-dusk",
	"noon": "solar-noon",
}

// EventSchedule fires at a solar event plus Offset each day. Days on which
// the event does not occur are skipped.
//
// This implements robfig/cron.Schedule
type EventSchedule struct {
	Event    ephemeris.EventSpec
	Location ephemeris.Location
	Offset   time.Duration

	calc *ephemeris.Calculator
}

// NewEventSchedule binds an event to a location and calculator. A nil
// calc uses ephemeris.DefaultConfig.
func NewEventSchedule(calc *ephemeris.Calculator, event ephemeris.EventSpec, loc ephemeris.Location, offset time.Duration) EventSchedule {
	if calc == nil {
		calc, _ = ephemeris.New(ephemeris.DefaultConfig())
	}
	return EventSchedule{Event: event, Location: loc, Offset: offset, calc: calc}
}

// Next returns the first event time (plus Offset) strictly after now, or
// the zero time if none occurs within a year or the dates leave the
// supported range.
func (s EventSchedule) Next(now time.Time) time.Time {
	start := ephemeris.DateOf(now.In(s.Location.Zone()))

	// Begin a day early: a large positive offset can push yesterday's
	// event past now.
	for i := -1; i <= searchDays; i++ {
		date := start.AddDays(i)
		res, err := s.calc.Event(date, s.Location, s.Event)
		if err != nil {
			return time.Time{}
		}
		at, ok := res.Time(date, s.Location)
		if !ok {
			continue
		}
		at = at.Add(s.Offset)
		if at.After(now) {
			return at
		}
	}
	return time.Time{}
}

func (s EventSchedule) String() string {
	if s.Offset == 0 {
		return "@" + s.Event.Name
	}
	sign := "+"
	if s.Offset < 0 {
		sign = ""
	}
	return fmt.Sprintf("@%s %s%s", s.Event.Name, sign, s.Offset)
}

// ErrUnknownEvent is returned for an "@name" spec that is neither a solar
// event nor a cron descriptor.
var ErrUnknownEvent = errors.New("unknown solar event")

// Parse turns a spec into a cron.Schedule. Solar specs look like
// "@sunset", "@civil-dusk -30m" or "@golden-evening +1h"; anything else
// is handed to cron.ParseStandard ("0 7 * * *", "@daily", "@every 1h").
func Parse(spec string, calc *ephemeris.Calculator, loc ephemeris.Location) (cron.Schedule, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, errors.New("empty schedule")
	}

	if name, ok := strings.CutPrefix(fields[0], "@"); ok {
		if alias, found := aliases[strings.ToLower(name)]; found {
			name = alias
		}
		if event, found := ephemeris.LookupEvent(name); found {
			var offset time.Duration
			switch len(fields) {
			case 1:
			case 2:
				var err error
				offset, err = time.ParseDuration(fields[1])
				if err != nil {
					return nil, fmt.Errorf("parse %s offset: %w", event.Name, err)
				}
			default:
				return nil, fmt.Errorf("schedule %q: expected \"@event [offset]\"", spec)
			}
			return NewEventSchedule(calc, event, loc, offset), nil
		}
	}

	sched, err := cron.ParseStandard(spec)
	if err != nil {
		if strings.HasPrefix(spec, "@") {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, fields[0])
		}
		return nil, fmt.Errorf("parse schedule: %w", err)
	}
	return sched, nil
}
