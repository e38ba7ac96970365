package cypher

import (
	"fmt"
	"strconv"
)

type lengthKind uint8

const (
	lengthSingle lengthKind = iota // implicit single hop
	lengthExact
	lengthAny
	lengthRange
)

// Length constrains the number of hops a relationship pattern spans.
// The zero value is the implicit single hop and renders as "".
type Length struct {
	kind   lengthKind
	exact  int
	min    int
	max    int
	hasMin bool
	hasMax bool
}

// Exact returns a fixed hop count.
func Exact(n int) (Length, error) {
	if n < 0 {
		return Length{}, fmt.Errorf("exact length %d: %w", n, ErrNegativeBound)
	}
	if n == 1 {
		return Length{}, nil
	}
	return Length{kind: lengthExact, exact: n}, nil
}

// AnyLength returns the unconstrained variable length "*".
func AnyLength() Length { return Length{kind: lengthAny} }

// NewRange returns a min..max range where either bound may be nil.
// With both bounds nil the range is explicitly unbounded and renders "*".
func NewRange(min, max *int) (Length, error) {
	if min == nil && max == nil {
		return AnyLength(), nil
	}
	l := Length{kind: lengthRange}
	if min != nil {
		if *min < 0 {
			return Length{}, fmt.Errorf("min length %d: %w", *min, ErrNegativeBound)
		}
		l.min, l.hasMin = *min, true
	}
	if max != nil {
		if *max < 0 {
			return Length{}, fmt.Errorf("max length %d: %w", *max, ErrNegativeBound)
		}
		if min != nil && *max < *min {
			return Length{}, fmt.Errorf("range %d..%d: %w", *min, *max, ErrBoundOrder)
		}
		l.max, l.hasMax = *max, true
	}
	return l, nil
}

// Between returns the closed range min..max.
func Between(min, max int) (Length, error) { return NewRange(&min, &max) }

// AtLeast returns the open range min..
func AtLeast(min int) (Length, error) { return NewRange(&min, nil) }

// AtMost returns the open range ..max
func AtMost(max int) (Length, error) { return NewRange(nil, &max) }

// Hops is a convenience for passing optional bounds.
func Hops(n int) *int { return &n }

// IsDefault reports whether l is the implicit single hop.
func (l Length) IsDefault() bool { return l.kind == lengthSingle }

// Min returns the lower bound of a range.
func (l Length) Min() (int, bool) { return l.min, l.hasMin }

// Max returns the upper bound of a range.
func (l Length) Max() (int, bool) { return l.max, l.hasMax }

// AsText renders the length in relationship pattern syntax.
func (l Length) AsText() string {
	switch l.kind {
	case lengthExact:
		return "*" + strconv.Itoa(l.exact)
	case lengthAny:
		return "*"
	case lengthRange:
		s := "*"
		if l.hasMin {
			s += strconv.Itoa(l.min)
		}
		s += ".."
		if l.hasMax {
			s += strconv.Itoa(l.max)
		}
		return s
	default:
		return ""
	}
}

func (l Length) String() string { return l.AsText() }
