package cover

// Summary aggregates a selection, its gaps and the target window into
// coverage metrics. Derived on demand, never stored.
type Summary struct {
	TotalDuration      float64    `json:"totalDuration"`
	CoveredDuration    float64    `json:"coveredDuration"`
	CoveragePercentage float64    `json:"coveragePercentage"`
	Gaps               []Interval `json:"gaps"`
	SatellitesUsed     int        `json:"satellitesUsed"`
	TotalCost          float64    `json:"totalCost"`
}

// Summarize computes coverage metrics for a selection over the window.
// CoveredDuration sums each satellite's clipped overlap with the window
// individually: time covered by two overlapping satellites counts
// twice, which can push the percentage above 100. A window of zero (or
// negative) duration reports 0% rather than dividing by zero.
func Summarize(window Interval, selected []Satellite, gaps []Interval) Summary {
	s := Summary{
		TotalDuration:  window.Duration(),
		Gaps:           gaps,
		SatellitesUsed: len(selected),
	}
	covered := 0.0
	for _, sat := range selected {
		s.TotalCost += sat.Cost
		covered += sat.Interval.OverlapWith(window)
	}
	s.CoveredDuration = covered
	if s.TotalDuration > 0 {
		s.CoveragePercentage = covered / s.TotalDuration * 100
	}
	return s
}

// SummarizeDeduplicated is the union-based variant of Summarize:
// CoveredDuration is the merged length of the selected intervals
// clipped to the window, so overlapping satellites count once and the
// percentage never exceeds 100.
func SummarizeDeduplicated(window Interval, selected []Satellite, gaps []Interval) Summary {
	s := Summary{
		TotalDuration:  window.Duration(),
		Gaps:           gaps,
		SatellitesUsed: len(selected),
	}
	for _, sat := range selected {
		s.TotalCost += sat.Cost
	}
	s.CoveredDuration = unionDuration(window, selected)
	if s.TotalDuration > 0 {
		s.CoveragePercentage = s.CoveredDuration / s.TotalDuration * 100
	}
	return s
}

// unionDuration merges the clipped intervals with a sorted sweep and
// returns the total length covered at least once.
func unionDuration(window Interval, sats []Satellite) float64 {
	sorted := sortByStart(sats)
	total := 0.0
	curStart, curEnd := window.Start, window.Start
	for _, sat := range sorted {
		lo := sat.Interval.Start
		if lo < window.Start {
			lo = window.Start
		}
		hi := sat.Interval.End
		if hi > window.End {
			hi = window.End
		}
		if hi <= lo {
			continue
		}
		if lo > curEnd {
			total += curEnd - curStart
			curStart, curEnd = lo, hi
		} else if hi > curEnd {
			curEnd = hi
		}
	}
	return total + (curEnd - curStart)
}
