package ephemeris_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/ephemeris"
)

// Hammond, Louisiana: the reference observer used throughout.
var (
	hammond = ephemeris.Location{
		Latitude:  30.4275784,
		Longitude: -90.0914955,
		TZOffset:  -6,
		Altitude:  1.8224,
	}
	regressionDate = ephemeris.Date{Year: 2026, Month: 1, Day: 10}
)

func TestValidate(t *testing.T) {
	okDate := ephemeris.Date{Year: 2026, Month: 6, Day: 15}
	okLoc := ephemeris.Location{Latitude: 30, Longitude: -90, TZOffset: -6}

	rejects := []struct {
		name  string
		date  ephemeris.Date
		loc   ephemeris.Location
		field string
	}{
		{"year 1899", ephemeris.Date{Year: 1899, Month: 6, Day: 15}, okLoc, "year"},
		{"year 2101", ephemeris.Date{Year: 2101, Month: 6, Day: 15}, okLoc, "year"},
		{"month 13", ephemeris.Date{Year: 2026, Month: 13, Day: 15}, okLoc, "month"},
		{"month 0", ephemeris.Date{Year: 2026, Month: 0, Day: 15}, okLoc, "month"},
		{"day 32", ephemeris.Date{Year: 2026, Month: 6, Day: 32}, okLoc, "day"},
		{"day 0", ephemeris.Date{Year: 2026, Month: 6, Day: 0}, okLoc, "day"},
		{"latitude 91", okDate, ephemeris.Location{Latitude: 91}, "latitude"},
		{"latitude -91", okDate, ephemeris.Location{Latitude: -91}, "latitude"},
		{"latitude NaN", okDate, ephemeris.Location{Latitude: math.NaN()}, "latitude"},
		{"longitude 181", okDate, ephemeris.Location{Longitude: 181}, "longitude"},
		{"longitude -181", okDate, ephemeris.Location{Longitude: -181}, "longitude"},
		{"timezone 15", okDate, ephemeris.Location{TZOffset: 15}, "timezone"},
		{"timezone -13", okDate, ephemeris.Location{TZOffset: -13}, "timezone"},
		{"altitude inf", okDate, ephemeris.Location{Altitude: math.Inf(1)}, "altitude"},
	}

	for _, tt := range rejects {
		t.Run("reject "+tt.name, func(t *testing.T) {
			err := ephemeris.Validate(tt.date, tt.loc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ephemeris.ErrInvalidInput))

			var ve *ephemeris.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.False(t, ephemeris.Valid(tt.date, tt.loc))
		})
	}

	accepts := []struct {
		name string
		date ephemeris.Date
		loc  ephemeris.Location
	}{
		{"year 1900", ephemeris.Date{Year: 1900, Month: 1, Day: 1}, okLoc},
		{"year 2100", ephemeris.Date{Year: 2100, Month: 12, Day: 31}, okLoc},
		{"february 30", ephemeris.Date{Year: 2026, Month: 2, Day: 30}, okLoc},
		{"latitude 90", okDate, ephemeris.Location{Latitude: 90}},
		{"latitude -90", okDate, ephemeris.Location{Latitude: -90}},
		{"longitude 180", okDate, ephemeris.Location{Longitude: 180}},
		{"longitude -180", okDate, ephemeris.Location{Longitude: -180}},
		{"timezone -12", okDate, ephemeris.Location{TZOffset: -12}},
		{"timezone 14", okDate, ephemeris.Location{TZOffset: 14}},
	}

	for _, tt := range accepts {
		t.Run("accept "+tt.name, func(t *testing.T) {
			assert.NoError(t, ephemeris.Validate(tt.date, tt.loc))
			assert.True(t, ephemeris.Valid(tt.date, tt.loc))
		})
	}
}

func TestComputeRejectsInvalidInput(t *testing.T) {
	bad := ephemeris.Date{Year: 1899, Month: 1, Day: 1}

	_, err := ephemeris.ComputeSunset(bad, hammond, ephemeris.NOAA)
	assert.ErrorIs(t, err, ephemeris.ErrInvalidInput)

	_, err = ephemeris.ComputeSunrise(bad, hammond, ephemeris.NOAA)
	assert.ErrorIs(t, err, ephemeris.ErrInvalidInput)

	_, err = ephemeris.ComputeGenericEvent(bad, hammond, 6, false)
	assert.ErrorIs(t, err, ephemeris.ErrInvalidInput)

	_, _, err = ephemeris.ComputeSolarNoonAndDeclination(bad, hammond)
	assert.ErrorIs(t, err, ephemeris.ErrInvalidInput)

	_, err = ephemeris.ComputeSunset(regressionDate, hammond, ephemeris.Algorithm(7))
	assert.ErrorIs(t, err, ephemeris.ErrInvalidInput)
}

// TestRegressionAnchor pins the Hammond sunset against the NOAA Solar
// Calculator (17:17:53 CST) and against the value captured from this
// implementation.
func TestRegressionAnchor(t *testing.T) {
	set, err := ephemeris.ComputeSunset(regressionDate, hammond, ephemeris.NOAA)
	require.NoError(t, err)
	require.True(t, set.Occurs)

	noaa := 17.0 + 17.0/60 + 53.0/3600
	assert.InDelta(t, noaa, set.Hours, 3.0/60, "sunset %s", set)
	assert.InDelta(t, 17.295826569261692, set.Hours, 1e-6)
	assert.Equal(t, "17:17:45", set.String())

	rise, err := ephemeris.ComputeSunrise(regressionDate, hammond, ephemeris.NOAA)
	require.NoError(t, err)
	require.True(t, rise.Occurs)

	// NOAA: 06:58:16.
	assert.InDelta(t, 6.0+58.0/60+16.0/3600, rise.Hours, 3.0/60)
	assert.InDelta(t, 6.9669437265194265, rise.Hours, 1e-6)

	noon, dec, err := ephemeris.ComputeSolarNoonAndDeclination(regressionDate, hammond)
	require.NoError(t, err)
	assert.InDelta(t, 12.131385147890558, noon, 1e-9)
	assert.InDelta(t, -21.908216829977224, dec, 1e-9)
}

func TestVariantsAgreeOnSunset(t *testing.T) {
	want := map[ephemeris.Algorithm]float64{
		ephemeris.NOAA:   17.295826569261692,
		ephemeris.USNO:   17.295754714271613,
		ephemeris.LASKAR: 17.295845743887874,
	}

	for algo, hours := range want {
		t.Run(algo.String(), func(t *testing.T) {
			got, err := ephemeris.ComputeSunset(regressionDate, hammond, algo)
			require.NoError(t, err)
			assert.InDelta(t, hours, got.Hours, 1e-6)
		})
	}
}

func TestSymmetryAroundNoon(t *testing.T) {
	loc := hammond
	loc.Altitude = 0

	dates := []ephemeris.Date{
		{Year: 2026, Month: 1, Day: 10},
		{Year: 2026, Month: 3, Day: 20},
		{Year: 2026, Month: 6, Day: 21},
		{Year: 2026, Month: 9, Day: 22},
	}

	for _, d := range dates {
		t.Run(d.String(), func(t *testing.T) {
			noon, _, err := ephemeris.ComputeSolarNoonAndDeclination(d, loc)
			require.NoError(t, err)
			rise, err := ephemeris.ComputeSunrise(d, loc, ephemeris.NOAA)
			require.NoError(t, err)
			set, err := ephemeris.ComputeSunset(d, loc, ephemeris.NOAA)
			require.NoError(t, err)

			assert.InDelta(t, set.Hours-noon, noon-rise.Hours, 1e-9)
		})
	}
}

func TestAltitudeMonotonicity(t *testing.T) {
	prevRise, prevSet := math.Inf(1), math.Inf(-1)

	for _, alt := range []float64{0, 1.8224, 10, 100, 1000, 3000} {
		loc := hammond
		loc.Altitude = alt

		rise, err := ephemeris.ComputeSunrise(regressionDate, loc, ephemeris.NOAA)
		require.NoError(t, err)
		set, err := ephemeris.ComputeSunset(regressionDate, loc, ephemeris.NOAA)
		require.NoError(t, err)

		assert.Less(t, rise.Hours, prevRise, "sunrise at %vm", alt)
		assert.Greater(t, set.Hours, prevSet, "sunset at %vm", alt)
		prevRise, prevSet = rise.Hours, set.Hours
	}
}

func TestPolarNonOccurrence(t *testing.T) {
	tromso := ephemeris.Location{Latitude: 70, Longitude: 20, TZOffset: 1}
	summer := ephemeris.Date{Year: 2026, Month: 6, Day: 21}
	winter := ephemeris.Date{Year: 2026, Month: 12, Day: 21}

	civilDusk, err := ephemeris.ComputeGenericEvent(summer, tromso, 6, false)
	require.NoError(t, err)
	assert.False(t, civilDusk.Occurs)
	assert.Equal(t, ephemeris.NeverLeaves, civilDusk.Condition)
	assert.Equal(t, "--:--", civilDusk.String())

	_, ok := civilDusk.Time(summer, tromso)
	assert.False(t, ok)

	set, err := ephemeris.ComputeSunset(summer, tromso, ephemeris.NOAA)
	require.NoError(t, err)
	assert.False(t, set.Occurs)
	assert.Equal(t, ephemeris.NeverLeaves, set.Condition)

	rise, err := ephemeris.ComputeSunrise(winter, tromso, ephemeris.NOAA)
	require.NoError(t, err)
	assert.False(t, rise.Occurs)
	assert.Equal(t, ephemeris.NeverReached, rise.Condition)
}

func TestDeterminism(t *testing.T) {
	first, err := ephemeris.ComputeSunset(regressionDate, hammond, ephemeris.LASKAR)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		got, err := ephemeris.ComputeSunset(regressionDate, hammond, ephemeris.LASKAR)
		require.NoError(t, err)
		require.Equal(t, first, got)
	}
}

func TestConcurrentUse(t *testing.T) {
	calc, err := ephemeris.New(ephemeris.DefaultConfig())
	require.NoError(t, err)

	want, err := calc.Sunset(regressionDate, hammond)
	require.NoError(t, err)

	results := make(chan ephemeris.EventResult, 16)
	for i := 0; i < cap(results); i++ {
		go func() {
			r, _ := calc.Sunset(regressionDate, hammond)
			results <- r
		}()
	}
	for i := 0; i < cap(results); i++ {
		assert.Equal(t, want, <-results)
	}
}

func TestEventCatalogOrder(t *testing.T) {
	calc, err := ephemeris.New(ephemeris.DefaultConfig())
	require.NoError(t, err)

	s, err := calc.Solar(regressionDate, hammond)
	require.NoError(t, err)

	prev := -1.0
	for _, spec := range ephemeris.Events {
		r := calc.EventFor(s, hammond, spec)
		require.True(t, r.Occurs, spec.Name)
		assert.Greater(t, r.Hours, prev, "%s should follow the previous event", spec.Name)
		prev = r.Hours
	}

	spec, ok := ephemeris.LookupEvent("Civil-Dusk")
	require.True(t, ok)
	assert.Equal(t, ephemeris.CivilDusk, spec)
	assert.Equal(t, 96.0, spec.Zenith())

	_, ok = ephemeris.LookupEvent("moonrise")
	assert.False(t, ok)
}

func TestGenericEventMatchesCatalog(t *testing.T) {
	calc, err := ephemeris.New(ephemeris.DefaultConfig())
	require.NoError(t, err)

	for _, spec := range []ephemeris.EventSpec{ephemeris.CivilDawn, ephemeris.GoldenEvening, ephemeris.AstronomicalDusk} {
		want, err := calc.Event(regressionDate, hammond, spec)
		require.NoError(t, err)

		got, err := ephemeris.ComputeGenericEvent(regressionDate, hammond, spec.SunAngle, spec.Morning)
		require.NoError(t, err)
		assert.Equal(t, want, got, spec.Name)
	}
}

func TestBisectionAgreesWithClosedForm(t *testing.T) {
	cfg := ephemeris.DefaultConfig()
	cfg.Method = ephemeris.Bisection
	bisect, err := ephemeris.New(cfg)
	require.NoError(t, err)

	closed, err := ephemeris.New(ephemeris.DefaultConfig())
	require.NoError(t, err)

	cases := []struct {
		name string
		date ephemeris.Date
		loc  ephemeris.Location
	}{
		{"hammond winter", regressionDate, hammond},
		{"60N equinox", ephemeris.Date{Year: 2026, Month: 3, Day: 20}, ephemeris.Location{Latitude: 60}},
		{"cape town winter", ephemeris.Date{Year: 2026, Month: 6, Day: 21}, ephemeris.Location{Latitude: -33.9}},
		{"london summer", ephemeris.Date{Year: 2026, Month: 6, Day: 21}, ephemeris.Location{Latitude: 51.5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, spec := range []ephemeris.EventSpec{ephemeris.Sunrise, ephemeris.Sunset, ephemeris.CivilDusk, ephemeris.SolarNoon} {
				want, err := closed.Event(tc.date, tc.loc, spec)
				require.NoError(t, err)
				got, err := bisect.Event(tc.date, tc.loc, spec)
				require.NoError(t, err)

				require.Equal(t, want.Occurs, got.Occurs, spec.Name)
				assert.InDelta(t, want.Hours, got.Hours, 2.0/60, spec.Name)
			}
		})
	}

	polar, err := bisect.Sunset(ephemeris.Date{Year: 2026, Month: 6, Day: 21}, ephemeris.Location{Latitude: 75})
	require.NoError(t, err)
	assert.False(t, polar.Occurs)
	assert.Equal(t, ephemeris.NeverLeaves, polar.Condition)

	night, err := bisect.Sunrise(ephemeris.Date{Year: 2026, Month: 12, Day: 21}, ephemeris.Location{Latitude: 75})
	require.NoError(t, err)
	assert.False(t, night.Occurs)
	assert.Equal(t, ephemeris.NeverReached, night.Condition)
}

func TestDistanceCorrectedRadius(t *testing.T) {
	cfg := ephemeris.DefaultConfig()
	cfg.Radius = ephemeris.DistanceCorrected
	calc, err := ephemeris.New(cfg)
	require.NoError(t, err)

	fixed, err := ephemeris.ComputeSunset(regressionDate, hammond, ephemeris.NOAA)
	require.NoError(t, err)
	corrected, err := calc.Sunset(regressionDate, hammond)
	require.NoError(t, err)

	// In January the Sun is near perihelion, so it looks larger and sets
	// a few seconds later.
	assert.Greater(t, corrected.Hours, fixed.Hours)
	assert.InDelta(t, fixed.Hours, corrected.Hours, 30.0/3600)
}

func TestConfig(t *testing.T) {
	cfg := ephemeris.DefaultConfig()
	assert.Equal(t, ephemeris.NOAA, cfg.Algorithm)
	assert.Equal(t, ephemeris.NodeCubic, cfg.NodeForm)
	assert.Equal(t, ephemeris.FixedDistance, cfg.Radius)
	assert.Equal(t, ephemeris.ClosedForm, cfg.Method)
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Method = ephemeris.Method(5)
	_, err := ephemeris.New(bad)
	assert.ErrorIs(t, err, ephemeris.ErrInvalidInput)

	m, err := ephemeris.ParseMethod("Bisection")
	require.NoError(t, err)
	assert.Equal(t, ephemeris.Bisection, m)
	assert.Equal(t, "bisection", m.String())

	_, err = ephemeris.ParseMethod("newton")
	assert.Error(t, err)

	algo, err := ephemeris.ParseAlgorithm("laskar")
	require.NoError(t, err)
	assert.Equal(t, ephemeris.LASKAR, algo)
}

func TestEventResultTime(t *testing.T) {
	set, err := ephemeris.ComputeSunset(regressionDate, hammond, ephemeris.NOAA)
	require.NoError(t, err)

	got, ok := set.Time(regressionDate, hammond)
	require.True(t, ok)

	_, offset := got.Zone()
	assert.Equal(t, -6*3600, offset)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 10, got.Day())
	assert.Equal(t, 17, got.Hour())
	assert.Equal(t, 17, got.Minute())
}

func TestDateHelpers(t *testing.T) {
	d, err := ephemeris.ParseDate("2024-02-28")
	require.NoError(t, err)
	assert.Equal(t, ephemeris.Date{Year: 2024, Month: 2, Day: 28}, d)
	assert.Equal(t, ephemeris.Date{Year: 2024, Month: 3, Day: 1}, d.AddDays(2))
	assert.Equal(t, "2024-02-28", d.String())

	_, err = ephemeris.ParseDate("28/02/2024")
	assert.Error(t, err)

	assert.Equal(t, 2451545.0, ephemeris.JulianDate(2000, 1, 1))
	assert.InDelta(t, 0.26026009582477755, ephemeris.CenturiesFor(regressionDate), 1e-15)
}

func TestVariantAccessorsInRange(t *testing.T) {
	for year := 1900; year <= 2100; year += 25 {
		tc := ephemeris.JulianCentury(ephemeris.J2000Offset(ephemeris.JulianDate(year, 6, 1)))
		for _, algo := range []ephemeris.Algorithm{ephemeris.NOAA, ephemeris.USNO, ephemeris.LASKAR} {
			l := ephemeris.MeanLongitude(tc, algo)
			assert.GreaterOrEqual(t, l, 0.0)
			assert.Less(t, l, 360.0)

			m := ephemeris.MeanAnomaly(tc, algo)
			c := ephemeris.EquationOfCenter(tc, m, algo)
			assert.Less(t, math.Abs(c), 2.0)

			assert.InDelta(t, 23.44, ephemeris.ObliquityOfEcliptic(tc, algo), 0.05)
		}
		assert.InDelta(t, 0.0167, ephemeris.Eccentricity(tc), 0.0001)

		node := ephemeris.LongitudeAscendingNode(tc, ephemeris.NodeCubic)
		nut := ephemeris.NutationInLongitude(node, tc, ephemeris.MeanLongitude(tc, ephemeris.NOAA))
		assert.Less(t, math.Abs(nut), 19.0/3600)
	}
}
