package orbit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/ephemeris/internal/timeutil"
)

// tRegression is 2026-01-10 at noon UT.
var tRegression = timeutil.CenturiesForDate(2026, 1, 10)

func TestElementsAtRegressionDate(t *testing.T) {
	type want struct {
		meanLongitude, meanAnomaly, center, obliquity float64
	}

	cases := map[Algorithm]want{
		NOAA:   {290.0302862589069, 6.645377672241011, 0.22610867850475033, 23.435906643225316},
		USNO:   {290.0241102258715, 6.644202600959034, 0.2261692283906088, 23.43590705752681},
		LASKAR: {290.0323156527684, 6.644000290181793, 0.22606203700422164, 23.435907064399867},
	}

	for algo, w := range cases {
		t.Run(algo.String(), func(t *testing.T) {
			m := MeanAnomaly(tRegression, algo)
			assert.InDelta(t, w.meanLongitude, MeanLongitude(tRegression, algo), 1e-9)
			assert.InDelta(t, w.meanAnomaly, m, 1e-9)
			assert.InDelta(t, w.center, EquationOfCenter(tRegression, m, algo), 1e-12)
			assert.InDelta(t, w.obliquity, ObliquityOfEcliptic(tRegression, algo), 1e-12)
		})
	}

	assert.InDelta(t, 0.01669768486428709, Eccentricity(tRegression), 1e-15)
	assert.InDelta(t, -6.603251127978215, LongitudeAscendingNode(tRegression, NodeLinear), 1e-12)
	assert.InDelta(t, -6.603170975868853, LongitudeAscendingNode(tRegression, NodeCubic), 1e-12)
}

// Meeus, Astronomical Algorithms, Example 25.a (1992 October 13.0 TD).
func TestMeeusExample25a(t *testing.T) {
	const T = -0.072183436

	m := MeanAnomaly(T, NOAA)
	assert.InDelta(t, 201.80720, MeanLongitude(T, NOAA), 1e-5)
	assert.InDelta(t, 278.99397, m, 1e-4)
	assert.InDelta(t, 0.016711668, Eccentricity(T), 1e-9)
	assert.InDelta(t, -1.89732, EquationOfCenter(T, m, NOAA), 1e-5)
	assert.InDelta(t, 23.44023, ObliquityOfEcliptic(T, NOAA), 1e-5)
	assert.InDelta(t, 23.44023, ObliquityOfEcliptic(T, LASKAR), 1e-5)
}

func TestVariantsAgree(t *testing.T) {
	for _, date := range []struct{ y, m, d int }{
		{1900, 1, 1}, {1950, 6, 21}, {2000, 1, 1}, {2026, 1, 10}, {2100, 12, 31},
	} {
		tc := timeutil.CenturiesForDate(date.y, date.m, date.d)

		ref := MeanLongitude(tc, NOAA)
		for _, algo := range Algorithms {
			got := MeanLongitude(tc, algo)
			require.GreaterOrEqual(t, got, 0.0)
			require.Less(t, got, 360.0)

			diff := math.Abs(got - ref)
			if diff > 180 {
				diff = 360 - diff
			}
			assert.Less(t, diff, 0.1, "%v mean longitude at %v", algo, date)

			assert.InDelta(t, ObliquityOfEcliptic(tc, NOAA), ObliquityOfEcliptic(tc, algo), 1e-3)
			assert.InDelta(t, MeanAnomaly(tc, NOAA), MeanAnomaly(tc, algo), 0.05)
		}

		lin := LongitudeAscendingNode(tc, NodeLinear)
		cub := LongitudeAscendingNode(tc, NodeCubic)
		assert.InDelta(t, lin, cub, timeutil.Deg2Rad(0.01))
	}
}

func TestNutationMagnitude(t *testing.T) {
	got := NutationInLongitude(LongitudeAscendingNode(tRegression, NodeCubic), tRegression, MeanLongitude(tRegression, NOAA))
	assert.InDelta(t, 0.0016757245324173292, got, 1e-12)

	// Bounded by the sum of the term amplitudes, ~19".
	for d := 0; d < 3650; d += 17 {
		tc := timeutil.JulianCentury(float64(d))
		n := NutationInLongitude(LongitudeAscendingNode(tc, NodeCubic), tc, MeanLongitude(tc, NOAA))
		assert.LessOrEqual(t, math.Abs(n), 18.96/3600.0)
	}
}

func TestRadiusVector(t *testing.T) {
	e := Compute(tRegression, NOAA, NodeCubic)
	assert.InDelta(t, 0.9834193296760074, e.RadiusVector(), 1e-12)

	// Perihelion and aphelion bounds.
	assert.InDelta(t, 1.000001018*(1-0.0167), RadiusVector(0.0167, 0), 1e-12)
	assert.InDelta(t, 1.000001018*(1+0.0167), RadiusVector(0.0167, 180), 1e-9)
}

func TestComputeDeterministic(t *testing.T) {
	a := Compute(tRegression, LASKAR, NodeLinear)
	b := Compute(tRegression, LASKAR, NodeLinear)
	assert.Equal(t, a, b)

	assert.InDelta(t, a.MeanLongitude+a.EquationOfCenter, a.TrueLongitude(), 1e-12)
	assert.InDelta(t, a.MeanAnomaly+a.EquationOfCenter, a.TrueAnomaly(), 1e-12)
}

func TestParse(t *testing.T) {
	a, err := ParseAlgorithm("laskar")
	require.NoError(t, err)
	assert.Equal(t, LASKAR, a)

	_, err = ParseAlgorithm("vsop87")
	assert.Error(t, err)

	f, err := ParseNodeForm("LINEAR")
	require.NoError(t, err)
	assert.Equal(t, NodeLinear, f)

	assert.False(t, Algorithm(7).Valid())
	assert.Equal(t, "Algorithm(7)", Algorithm(7).String())
	assert.False(t, NodeForm(-1).Valid())
}
