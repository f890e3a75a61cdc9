package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveHourAngle(t *testing.T) {
	tests := []struct {
		name      string
		zenith    float64
		lat       float64
		dec       float64
		wantOK    bool
		wantCond  Condition
		wantDeg   float64
		tolerance float64
	}{
		{
			name:   "regression sunset geometry",
			zenith: 90.88010482430082, lat: 30.4275784, dec: -21.908216829977224,
			wantOK: true, wantCond: Crosses, wantDeg: 77.46662132056697, tolerance: 1e-9,
		},
		{
			name:   "equator at equinox",
			zenith: 90, lat: 0, dec: 0,
			wantOK: true, wantCond: Crosses, wantDeg: 90, tolerance: 1e-9,
		},
		{
			name:   "mid latitude at equinox",
			zenith: 90, lat: 45, dec: 0,
			wantOK: true, wantCond: Crosses, wantDeg: 90, tolerance: 1e-9,
		},
		{
			name:   "civil dusk in arctic summer",
			zenith: 96, lat: 70, dec: 23.4,
			wantOK: false, wantCond: NeverLeaves,
		},
		{
			name:   "sunrise in arctic winter",
			zenith: 90.8333, lat: 70, dec: -23.4,
			wantOK: false, wantCond: NeverReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SolveHourAngle(tt.zenith, tt.lat, tt.dec)
			require.Equal(t, tt.wantOK, got.OK)
			assert.Equal(t, tt.wantCond, got.Condition)
			assert.False(t, math.IsNaN(got.Degrees))
			if tt.wantOK {
				assert.InDelta(t, tt.wantDeg, got.Degrees, tt.tolerance)
				assert.InDelta(t, tt.wantDeg/15, got.Hours(), tt.tolerance)
			}
		})
	}
}

func TestSolveHourAngleRange(t *testing.T) {
	for lat := -90.0; lat <= 90.0; lat += 7.5 {
		for dec := -23.4; dec <= 23.4; dec += 3.9 {
			for _, z := range []float64{84, 90, 90.8333, 96, 102, 108} {
				got := SolveHourAngle(z, lat, dec)
				require.False(t, math.IsNaN(got.Degrees), "z=%v lat=%v dec=%v", z, lat, dec)
				if got.OK {
					require.GreaterOrEqual(t, got.Degrees, 0.0)
					require.LessOrEqual(t, got.Degrees, 180.0)
				} else {
					require.NotEqual(t, Crosses, got.Condition)
				}
			}
		}
	}
}

func TestConditionString(t *testing.T) {
	assert.Equal(t, "crosses", Crosses.String())
	assert.Equal(t, "never-reached", NeverReached.String())
	assert.Equal(t, "never-leaves", NeverLeaves.String())
	assert.Equal(t, "unknown", Condition(42).String())
}

// sine altitude peaking at 60° at 12:00, crossing 0 at 06:00 and 18:00.
func sineAltitude(h float64) float64 {
	return 60 * math.Sin((h-6)*math.Pi/12)
}

func TestFindAltitudeEvent(t *testing.T) {
	rise := FindAltitudeEvent(sineAltitude, 0, 12, 0, CrossingUp, 48, DefaultTolerance)
	require.True(t, rise.OK)
	assert.InDelta(t, 6.0, rise.Hour, DefaultTolerance)

	set := FindAltitudeEvent(sineAltitude, 12, 24, 0, CrossingDown, 48, DefaultTolerance)
	require.True(t, set.OK)
	assert.InDelta(t, 18.0, set.Hour, DefaultTolerance)

	// 30° is reached at 08:00 and left at 16:00.
	up := FindAltitudeEvent(sineAltitude, 0, 12, 30, CrossingUp, 48, DefaultTolerance)
	require.True(t, up.OK)
	assert.InDelta(t, 8.0, up.Hour, DefaultTolerance)
}

func TestFindAltitudeEventNoCrossing(t *testing.T) {
	// The peak is 60°, so 70° never happens.
	got := FindAltitudeEvent(sineAltitude, 0, 12, 70, CrossingUp, 48, DefaultTolerance)
	assert.False(t, got.OK)

	// Wrong direction in the morning half.
	got = FindAltitudeEvent(sineAltitude, 0, 12, 0, CrossingDown, 48, DefaultTolerance)
	assert.False(t, got.OK)

	// Empty interval.
	got = FindAltitudeEvent(sineAltitude, 12, 12, 0, CrossingUp, 48, DefaultTolerance)
	assert.False(t, got.OK)
}

func TestFindAltitudeEventDefaults(t *testing.T) {
	// steps < 2 and tol <= 0 fall back to usable values.
	got := FindAltitudeEvent(sineAltitude, 3, 9, 0, CrossingUp, 0, 0)
	require.True(t, got.OK)
	assert.InDelta(t, 6.0, got.Hour, DefaultTolerance)
}
