// Package bucket maps yards-to-go onto the four distance bands used by every
// tendency report.
package bucket

import (
	"math"
	"strconv"
	"strings"
)

// Label is a distance band. The zero value is Unknown.
type Label string

const (
	Unknown Label = ""
	Short   Label = "1-3"
	Medium  Label = "4-6"
	Long    Label = "7-10"
	XLong   Label = "11+"
)

// UnknownText is how Unknown is rendered and grouped.
const UnknownText = "unknown"

// Of returns the band for yards. Upper edges are inclusive: 3, 6 and 10
// belong to the lower band. Anything at or below 3 (including 0 and negative
// values) is Short.
func Of(yards int) Label {
	switch {
	case yards <= 3:
		return Short
	case yards <= 6:
		return Medium
	case yards <= 10:
		return Long
	default:
		return XLong
	}
}

// Parse buckets a raw cell. Whole-number floats such as "5.0" are accepted;
// anything else that is not an integer yields Unknown.
func Parse(raw string) Label {
	yards, ok := Yards(raw)
	if !ok {
		return Unknown
	}
	return Of(yards)
}

// Yards converts a raw distance cell to an integer. Values outside the int
// range are rejected.
func Yards(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f >= math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

// IsKnown reports whether l is one of the four bands.
func (l Label) IsKnown() bool {
	return l.Order() < 4
}

// String returns the band text, or "unknown".
func (l Label) String() string {
	if l == Unknown {
		return UnknownText
	}
	return string(l)
}

// Order returns the ordinal rank of the band; Unknown sorts last.
func (l Label) Order() int {
	switch l {
	case Short:
		return 0
	case Medium:
		return 1
	case Long:
		return 2
	case XLong:
		return 3
	default:
		return 4
	}
}

// Labels lists the known bands in ascending order.
func Labels() []Label {
	return []Label{Short, Medium, Long, XLong}
}

// FromText maps rendered band text back to a Label.
func FromText(s string) (Label, bool) {
	for _, l := range Labels() {
		if string(l) == s {
			return l, true
		}
	}
	if s == UnknownText {
		return Unknown, true
	}
	return Unknown, false
}
