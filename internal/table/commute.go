package table

import (
	"fmt"

	"github.com/thurmanmarka/ephemeris"
)

// Plan is the commute advice for one day: leave home to arrive by sunrise,
// and leave home late enough that a full workday plus both legs still ends
// by civil dusk.
type Plan struct {
	Now          float64
	Commute      float64 // one way, hours
	Workday      float64 // hours
	Sunrise      ephemeris.EventResult
	Sunset       ephemeris.EventResult
	CivilDusk    ephemeris.EventResult
	LeaveBy      float64 // sunrise - commute
	SunsetLeave  float64 // sunset - commute
	HomeLeaveBy  float64 // civil dusk - 2*commute - workday
	ArriveIfNow  float64 // now + 2*commute + workday
	HasMorning   bool
	HasEvening   bool
	HasSunsetRun bool
}

// PlanCommute derives a Plan from one day's Solar.
func PlanCommute(calc *ephemeris.Calculator, s ephemeris.Solar, loc ephemeris.Location, now, commuteMinutes, workdayHours float64) Plan {
	p := Plan{
		Now:       now,
		Commute:   commuteMinutes / 60.0,
		Workday:   workdayHours,
		Sunrise:   calc.EventFor(s, loc, ephemeris.Sunrise),
		Sunset:    calc.EventFor(s, loc, ephemeris.Sunset),
		CivilDusk: calc.EventFor(s, loc, ephemeris.CivilDusk),
	}

	if p.Sunrise.Occurs {
		p.LeaveBy = p.Sunrise.Elapsed() - p.Commute
		p.HasMorning = true
	}
	if p.Sunset.Occurs {
		p.SunsetLeave = p.Sunset.Elapsed() - p.Commute
		p.HasSunsetRun = true
	}
	if p.CivilDusk.Occurs {
		p.HomeLeaveBy = p.CivilDusk.Elapsed() - 2*p.Commute - p.Workday
		p.HasEvening = true
	}
	p.ArriveIfNow = now + 2*p.Commute + p.Workday
	return p
}

// Advice renders the plan as a few human sentences.
func (p Plan) Advice() []string {
	var out []string

	switch {
	case !p.HasMorning:
		out = append(out, "The sun does not rise today.")
	case p.LeaveBy-p.Now > 0:
		out = append(out, fmt.Sprintf("Leave by %s (in %s) to arrive by %s (sunrise).",
			FormatHHMM(p.LeaveBy), Humanize(p.LeaveBy-p.Now), FormatHHMM(p.Sunrise.Hours)))
	case p.HasEvening:
		late := p.Now - p.HomeLeaveBy
		if late > 0 {
			out = append(out, fmt.Sprintf("You should have left %s ago to get back home by %s (civil twilight end).",
				Humanize(late), FormatHHMM(p.CivilDusk.Hours)))
		} else {
			out = append(out, fmt.Sprintf("Leave by %s to get back home by %s (civil twilight end).",
				FormatHHMM(p.HomeLeaveBy), FormatHHMM(p.CivilDusk.Hours)))
		}
		if after := p.ArriveIfNow - p.CivilDusk.Elapsed(); after > 0 {
			out = append(out, fmt.Sprintf("If you leave now, you'll be back home at %s (%s after civil twilight ends).",
				FormatHHMM(p.ArriveIfNow), Humanize(after)))
		}
	}

	if p.HasSunsetRun {
		if d := p.SunsetLeave - p.Now; d > 0 {
			out = append(out, fmt.Sprintf("Leave by %s (in %s) to arrive by sunset at %s.",
				FormatHHMM(p.SunsetLeave), Humanize(d), FormatHHMM(p.Sunset.Hours)))
		} else {
			out = append(out, fmt.Sprintf("You should have left %s ago to arrive by sunset.", Humanize(d)))
		}
	}
	return out
}
