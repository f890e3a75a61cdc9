// Package compare cross-checks the closed-form element variants against
// each other and against independent implementations: Meeus' full series
// (github.com/soniakeys/meeus) and the go-sunrise rise/set calculator.
package compare

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/ephemeris"
	"github.com/thurmanmarka/ephemeris/internal/orbit"
	"github.com/thurmanmarka/ephemeris/internal/timeutil"
)

// Row is one quantity evaluated by every variant that defines it.
type Row struct {
	Name    string
	Columns []string // variant names, in evaluation order
	Values  []float64
	Spread  float64 // largest angular separation between any two values
}

// Table holds the variant comparison for one instant.
type Table struct {
	T    float64 // Julian centuries since J2000.0
	Rows []Row
}

// Variants evaluates the mean longitude, mean anomaly, equation of center
// and obliquity under each Algorithm, and the ascending node under each
// NodeForm, at t. All values are in degrees.
func Variants(t float64) Table {
	algos := orbit.Algorithms
	names := make([]string, len(algos))
	for i, a := range algos {
		names[i] = a.String()
	}

	per := func(name string, f func(orbit.Algorithm) float64) Row {
		vals := make([]float64, len(algos))
		for i, a := range algos {
			vals[i] = f(a)
		}
		return Row{Name: name, Columns: names, Values: vals, Spread: spread(vals)}
	}

	rows := []Row{
		per("mean longitude", func(a orbit.Algorithm) float64 {
			return orbit.MeanLongitude(t, a)
		}),
		per("mean anomaly", func(a orbit.Algorithm) float64 {
			return orbit.MeanAnomaly(t, a)
		}),
		per("equation of center", func(a orbit.Algorithm) float64 {
			return orbit.EquationOfCenter(t, orbit.MeanAnomaly(t, a), a)
		}),
		per("obliquity", func(a orbit.Algorithm) float64 {
			return orbit.ObliquityOfEcliptic(t, a)
		}),
	}

	forms := []orbit.NodeForm{orbit.NodeCubic, orbit.NodeLinear}
	node := Row{Name: "ascending node"}
	for _, f := range forms {
		node.Columns = append(node.Columns, f.String())
		node.Values = append(node.Values, timeutil.Normalize360(timeutil.Rad2Deg(orbit.LongitudeAscendingNode(t, f))))
	}
	node.Spread = spread(node.Values)

	return Table{T: t, Rows: append(rows, node)}
}

// Write prints the table as aligned text.
func (tbl Table) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "T = %.10f\n", tbl.T)
	for _, r := range tbl.Rows {
		fmt.Fprintf(tw, "%s", r.Name)
		for i, v := range r.Values {
			fmt.Fprintf(tw, "\t%s %.8f", r.Columns[i], v)
		}
		if len(r.Values) < len(orbit.Algorithms) {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprintf(tw, "\tspread %.3g\"\n", r.Spread*3600)
	}
	return tw.Flush()
}

// spread returns the widest pairwise separation of angles in degrees,
// taking the short way round the circle.
func spread(vals []float64) float64 {
	var out float64
	for i := range vals {
		for j := i + 1; j < len(vals); j++ {
			if d := separation(vals[i], vals[j]); d > out {
				out = d
			}
		}
	}
	return out
}

func separation(a, b float64) float64 {
	d := math.Abs(math.Mod(a-b, 360))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// signed reduces an angle difference into [-180, 180).
func signed(d float64) float64 {
	d = math.Mod(d, 360)
	if d >= 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return d
}

// Quantities are the reference values for one date, in degrees unless
// stated otherwise.
type Quantities struct {
	JD               float64 // noon UT
	T                float64
	MeanLongitude    float64
	MeanAnomaly      float64
	EquationOfCenter float64
	Obliquity        float64 // mean obliquity, Laskar series
	AscendingNode    float64
	Nutation         float64 // full IAU 1980 series
	RightAscension   float64 // apparent, [0, 360)
	Declination      float64 // apparent
	Distance         float64 // AU
}

// Reference evaluates date at noon UT with Meeus' algorithms.
func Reference(date ephemeris.Date) Quantities {
	jd := julian.CalendarGregorianToJD(date.Year, date.Month, float64(date.Day)+0.5)
	t := base.J2000Century(jd)

	l0 := base.Horner(t, 280.46646, 36000.76983, 0.0003032)
	trueLon, _ := solar.True(t)
	dpsi, _ := nutation.Nutation(jd)
	ra, dec := solar.ApparentEquatorial(jd)

	return Quantities{
		JD:               jd,
		T:                t,
		MeanLongitude:    timeutil.Normalize360(l0),
		MeanAnomaly:      timeutil.Normalize360(solar.MeanAnomaly(t).Deg()),
		EquationOfCenter: signed(trueLon.Deg() - l0),
		Obliquity:        nutation.MeanObliquityLaskar(jd).Deg(),
		AscendingNode:    unit.AngleFromDeg(base.Horner(t, 125.04452, -1934.136261, 0.0020708, 1.0/450000)).Mod1().Deg(),
		Nutation:         dpsi.Deg(),
		RightAscension:   timeutil.Normalize360(ra.Hour() * 15),
		Declination:      dec.Deg(),
		Distance:         solar.Radius(t),
	}
}

// Residual is computed minus reference for the per-date solar quantities,
// in degrees (Distance in AU).
type Residual struct {
	Date           ephemeris.Date
	Declination    float64
	RightAscension float64
	Obliquity      float64
	Nutation       float64
	Distance       float64
}

// Against compares the calculator's per-date quantities with Reference.
// loc only affects solar noon, which Reference does not cover.
func Against(calc *ephemeris.Calculator, date ephemeris.Date, loc ephemeris.Location) (Residual, error) {
	s, err := calc.Solar(date, loc)
	if err != nil {
		return Residual{}, err
	}
	ref := Reference(date)
	el := s.Elements()

	return Residual{
		Date:           date,
		Declination:    s.Declination - ref.Declination,
		RightAscension: signed(s.RightAscension - ref.RightAscension),
		Obliquity:      el.Obliquity - ref.Obliquity,
		Nutation:       el.Nutation - ref.Nutation,
		Distance:       s.Distance - ref.Distance,
	}, nil
}

// RoundTrip converts date to its Julian Day Number and back through
// Meeus' calendar conversion.
func RoundTrip(date ephemeris.Date) ephemeris.Date {
	jd := timeutil.JulianDate(date.Year, date.Month, date.Day)
	y, m, d := julian.JDToCalendar(jd)
	return ephemeris.Date{Year: y, Month: m, Day: int(math.Floor(d))}
}

// Times pairs sunrise and sunset from the calculator with go-sunrise's for
// the same date and location. Missing events are zero times.
type Times struct {
	Date    ephemeris.Date
	Rise    time.Time
	Set     time.Time
	RefRise time.Time
	RefSet  time.Time
}

// RiseDelta returns Rise - RefRise; ok is false unless both occurred.
func (t Times) RiseDelta() (d time.Duration, ok bool) {
	return delta(t.Rise, t.RefRise)
}

// SetDelta returns Set - RefSet; ok is false unless both occurred.
func (t Times) SetDelta() (d time.Duration, ok bool) {
	return delta(t.Set, t.RefSet)
}

func delta(a, b time.Time) (time.Duration, bool) {
	if a.IsZero() || b.IsZero() {
		return 0, false
	}
	return a.Sub(b), true
}

// SunTimes compares the default calculator with go-sunrise.
func SunTimes(date ephemeris.Date, loc ephemeris.Location) (Times, error) {
	calc, err := ephemeris.New(ephemeris.DefaultConfig())
	if err != nil {
		return Times{}, err
	}
	return SunTimesWith(calc, date, loc)
}

// SunTimesWith compares calc with go-sunrise. go-sunrise ignores
// altitude, so a small systematic offset is expected for elevated sites.
func SunTimesWith(calc *ephemeris.Calculator, date ephemeris.Date, loc ephemeris.Location) (Times, error) {
	rise, err := calc.Sunrise(date, loc)
	if err != nil {
		return Times{}, err
	}
	set, err := calc.Sunset(date, loc)
	if err != nil {
		return Times{}, err
	}

	out := Times{Date: date}
	if at, ok := rise.Time(date, loc); ok {
		out.Rise = at
	}
	if at, ok := set.Time(date, loc); ok {
		out.Set = at
	}

	refRise, refSet := sunrise.SunriseSunset(loc.Latitude, loc.Longitude, date.Year, time.Month(date.Month), date.Day)
	zone := loc.Zone()
	if !refRise.IsZero() {
		out.RefRise = refRise.In(zone)
	}
	if !refSet.IsZero() {
		out.RefSet = refSet.In(zone)
	}
	return out, nil
}
