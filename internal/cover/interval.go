package cover

import "fmt"

// Interval is a half-open time range [Start, End) on a flat hour axis.
// Degenerate intervals (Start == End, or even Start > End) are legal and
// simply contribute nothing to coverage.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (iv Interval) Duration() float64 { return iv.End - iv.Start }

// Overlaps reports whether two intervals share any time. Touching
// endpoints do not count: [0,6) and [6,10) are disjoint.
func (iv Interval) Overlaps(other Interval) bool {
	return !(iv.End <= other.Start || iv.Start >= other.End)
}

// OverlapWith returns the length of the overlap between iv and other,
// clipped to zero when they are disjoint.
func (iv Interval) OverlapWith(other Interval) float64 {
	lo := iv.Start
	if other.Start > lo {
		lo = other.Start
	}
	hi := iv.End
	if other.End < hi {
		hi = other.End
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%.1f,%.1f)", iv.Start, iv.End)
}
