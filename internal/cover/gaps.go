package cover

// FindGaps returns every maximal sub-interval of the window left
// uncovered by the selection. The selection must be in non-decreasing
// start order; overlapping or contained satellites never reopen a gap.
// Zero-length gaps are never emitted.
func FindGaps(window Interval, selected []Satellite) []Interval {
	gaps := []Interval{}
	currentEnd := window.Start
	for _, sat := range selected {
		if sat.Interval.Start > currentEnd {
			gaps = append(gaps, Interval{Start: currentEnd, End: sat.Interval.Start})
		}
		if sat.Interval.End > currentEnd {
			currentEnd = sat.Interval.End
		}
	}
	if currentEnd < window.End {
		gaps = append(gaps, Interval{Start: currentEnd, End: window.End})
	}
	return gaps
}
