package orbit

import (
	"fmt"
	"strings"
)

// Algorithm selects which published fit is used for an orbital element.
type Algorithm int

const (
	// NOAA uses the quadratic/cubic fits of the NOAA Solar Calculator.
	NOAA Algorithm = iota

	// USNO uses the linear approximations of the U.S. Naval Observatory.
	USNO

	// LASKAR uses the high-order polynomials of Laskar (1986) and the
	// cubic mean anomaly of Reda & Andreas (2008).
	LASKAR
)

// Algorithms lists every variant, in declaration order.
var Algorithms = []Algorithm{NOAA, USNO, LASKAR}

func (a Algorithm) String() string {
	switch a {
	case NOAA:
		return "NOAA"
	case USNO:
		return "USNO"
	case LASKAR:
		return "LASKAR"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Valid reports whether a is one of the declared variants.
func (a Algorithm) Valid() bool {
	return a >= NOAA && a <= LASKAR
}

// ParseAlgorithm accepts the case-insensitive variant name.
func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range Algorithms {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	return NOAA, fmt.Errorf("unknown algorithm %q (use noaa, usno or laskar)", s)
}

// NodeForm selects the formulation of the Moon's ascending node longitude.
type NodeForm int

const (
	// NodeCubic is Reda & Andreas (2008), NREL/TP-560-34302 Eq. 19 (X4).
	NodeCubic NodeForm = iota

	// NodeLinear is the NOAA linear form 125.04 - 1934.136 t.
	NodeLinear
)

// NodeForms lists every node formulation.
var NodeForms = []NodeForm{NodeCubic, NodeLinear}

func (f NodeForm) String() string {
	switch f {
	case NodeCubic:
		return "cubic"
	case NodeLinear:
		return "linear"
	default:
		return fmt.Sprintf("NodeForm(%d)", int(f))
	}
}

// Valid reports whether f is one of the declared formulations.
func (f NodeForm) Valid() bool {
	return f == NodeCubic || f == NodeLinear
}

// ParseNodeForm accepts "cubic" or "linear".
func ParseNodeForm(s string) (NodeForm, error) {
	for _, f := range NodeForms {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return NodeCubic, fmt.Errorf("unknown node formulation %q (use cubic or linear)", s)
}
