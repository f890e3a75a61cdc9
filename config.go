package ephemeris

import (
	"fmt"
	"strings"

	"github.com/thurmanmarka/ephemeris/internal/orbit"
	"github.com/thurmanmarka/ephemeris/internal/sun"
)

// Algorithm selects the family of orbital element fits.
type Algorithm = orbit.Algorithm

const (
	NOAA   = orbit.NOAA
	USNO   = orbit.USNO
	LASKAR = orbit.LASKAR
)

// NodeForm selects the polynomial used for the Moon's ascending node.
type NodeForm = orbit.NodeForm

const (
	NodeCubic  = orbit.NodeCubic
	NodeLinear = orbit.NodeLinear
)

// RadiusModel selects how the solar semi-diameter is derived for horizon
// events.
type RadiusModel = sun.RadiusModel

const (
	FixedDistance     = sun.FixedDistance
	DistanceCorrected = sun.DistanceCorrected
)

// Method selects how event times are solved.
type Method int

const (
	// ClosedForm solves the hour-angle equation once with the date's
	// noon declination.
	ClosedForm Method = iota

	// Bisection brackets and bisects the instantaneous altitude.
	Bisection
)

func (m Method) String() string {
	switch m {
	case ClosedForm:
		return "closed"
	case Bisection:
		return "bisection"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Valid reports whether m is a declared method.
func (m Method) Valid() bool {
	return m == ClosedForm || m == Bisection
}

// ParseMethod accepts "closed" or "bisection".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "closed", "closed-form":
		return ClosedForm, nil
	case "bisection", "bisect":
		return Bisection, nil
	default:
		return ClosedForm, fmt.Errorf("unknown method %q (use closed or bisection)", s)
	}
}

// ParseAlgorithm accepts "noaa", "usno" or "laskar" in any case.
func ParseAlgorithm(s string) (Algorithm, error) { return orbit.ParseAlgorithm(s) }

// ParseNodeForm accepts "cubic" or "linear".
func ParseNodeForm(s string) (NodeForm, error) { return orbit.ParseNodeForm(s) }

// ParseRadiusModel accepts "fixed" or "corrected".
func ParseRadiusModel(s string) (RadiusModel, error) { return sun.ParseRadiusModel(s) }

// Config is the immutable set of model choices passed into a Calculator.
type Config struct {
	Algorithm Algorithm
	NodeForm  NodeForm
	Radius    RadiusModel
	Method    Method
}

// DefaultConfig is the production configuration: NOAA elements, cubic
// node, 1 AU solar radius, closed-form hour angle.
func DefaultConfig() Config {
	return Config{
		Algorithm: NOAA,
		NodeForm:  NodeCubic,
		Radius:    FixedDistance,
		Method:    ClosedForm,
	}
}

// Validate rejects undeclared variant tags.
func (c Config) Validate() error {
	switch {
	case !c.Algorithm.Valid():
		return &ValidationError{Field: "algorithm", Value: c.Algorithm, Reason: "unknown variant"}
	case !c.NodeForm.Valid():
		return &ValidationError{Field: "node form", Value: c.NodeForm, Reason: "unknown variant"}
	case !c.Radius.Valid():
		return &ValidationError{Field: "radius model", Value: c.Radius, Reason: "unknown variant"}
	case !c.Method.Valid():
		return &ValidationError{Field: "method", Value: c.Method, Reason: "unknown variant"}
	}
	return nil
}

func (c Config) model() sun.Model {
	return sun.Model{Algorithm: c.Algorithm, NodeForm: c.NodeForm}
}
