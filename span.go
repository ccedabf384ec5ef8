package scfg

import "fmt"

// Span is a half-open range [Start, End) over input positions.
type Span struct {
	Start, End int
}

// Contains is true if o is nested in s or equal to s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// Len returns the number of input positions covered by s.
func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}
