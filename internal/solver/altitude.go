package solver

// AltitudeFunc returns the Sun's altitude in degrees at a local clock time
// expressed as fractional hours since midnight.
type AltitudeFunc func(hour float64) float64

// EventType describes whether we are looking for a rising or setting event.
type EventType int

const (
	// CrossingUp means altitude is increasing through the target value (rise).
	CrossingUp EventType = iota
	// CrossingDown means altitude is decreasing through the target value (set).
	CrossingDown
)

// DefaultTolerance is one second, in hours.
const DefaultTolerance = 1.0 / 3600.0

// Crossing holds the output of an altitude event search.
type Crossing struct {
	Hour float64 // approximate local clock time of the event
	OK   bool    // true if an event was found
}

// FindAltitudeEvent searches for an hour in [start, end] where the altitude
// function crosses targetDeg in the direction specified by eventType.
// It uses a simple bracket-then-bisect strategy: sample steps points, take
// the first sign change in the requested direction, bisect to tol hours.
func FindAltitudeEvent(f AltitudeFunc, start, end, targetDeg float64, eventType EventType, steps int, tol float64) Crossing {
	if !(start < end) {
		return Crossing{OK: false}
	}
	if steps < 2 {
		steps = 2
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}

	// Step 1: sample across [start, end] to find a sign change
	// in (altitude - target)
	interval := (end - start) / float64(steps-1)

	var (
		prevH   = start
		prevAlt = f(prevH) - targetDeg
	)

	for i := 1; i < steps; i++ {
		h := start + float64(i)*interval
		alt := f(h) - targetDeg

		if hasCrossing(prevAlt, alt, eventType) {
			// We have a bracket [prevH, h]
			return bisect(f, prevH, h, targetDeg, eventType, tol)
		}

		prevH, prevAlt = h, alt
	}

	// No crossing found.
	return Crossing{OK: false}
}

func hasCrossing(a1, a2 float64, eventType EventType) bool {
	switch eventType {
	case CrossingUp:
		return a1 < 0 && a2 >= 0
	case CrossingDown:
		return a1 > 0 && a2 <= 0
	default:
		// Generic sign change
		return a1*a2 <= 0
	}
}

func bisect(f AltitudeFunc, a, b, targetDeg float64, eventType EventType, tol float64) Crossing {
	var (
		altA = f(a) - targetDeg
		altB = f(b) - targetDeg
	)

	if !hasCrossing(altA, altB, eventType) {
		return Crossing{OK: false}
	}

	for b-a > tol {
		mid := a + (b-a)/2
		altM := f(mid) - targetDeg

		if hasCrossing(altA, altM, eventType) {
			b = mid
		} else {
			a = mid
			altA = altM
		}
	}

	return Crossing{
		Hour: a + (b-a)/2,
		OK:   true,
	}
}
