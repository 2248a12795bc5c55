package cover

import "sort"

// Satellite offers coverage over a fixed interval at a fixed cost,
// tagged with an opaque region label. Value type; never mutated after
// construction.
type Satellite struct {
	Name     string   `json:"name"`
	Interval Interval `json:"interval"`
	Cost     float64  `json:"cost"`
	Region   string   `json:"region"`
}

// sortByStart returns a copy of sats ordered by interval start.
// A stable sort keeps registration order among equal starts so repeated
// runs over the same registry pick the same satellites.
func sortByStart(sats []Satellite) []Satellite {
	out := append([]Satellite(nil), sats...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Interval.Start < out[j].Interval.Start
	})
	return out
}
