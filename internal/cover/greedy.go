package cover

// MinimumSatellites selects a small set of satellites covering the
// window using the classic greedy frontier scan: collect every
// satellite whose interval starts at or before the current frontier,
// pick the one reaching furthest, advance, repeat.
//
// The scan uses a single forward cursor; once a batch of candidates has
// been consumed, its non-selected members are gone for good, even if a
// later batch could have used one of them. When no satellite reaches
// the frontier the uncovered stretch is recorded as a gap and the next
// satellite is selected anyway to bridge past it.
//
// The input is not mutated; the selection is in selection order and the
// gaps in ascending time order.
func MinimumSatellites(window Interval, sats []Satellite) (selected []Satellite, gaps []Interval) {
	filtered := sortByStart(sats)
	selected = []Satellite{}
	gaps = []Interval{}

	currentEnd := window.Start
	i := 0
	for currentEnd < window.End && i < len(filtered) {
		// Batch of candidates reachable from the frontier.
		batch := i
		for batch < len(filtered) && filtered[batch].Interval.Start <= currentEnd {
			batch++
		}

		if batch == i {
			// Nothing reaches the frontier: gap until the next start.
			gapEnd := window.End
			if filtered[i].Interval.Start < gapEnd {
				gapEnd = filtered[i].Interval.Start
			}
			if currentEnd < gapEnd {
				gaps = append(gaps, Interval{Start: currentEnd, End: gapEnd})
			}
			// Bridge past the gap with the next satellite.
			selected = append(selected, filtered[i])
			currentEnd = filtered[i].Interval.End
			i++
			continue
		}

		// Pick the candidate reaching furthest; first one wins ties.
		best := i
		for j := i + 1; j < batch; j++ {
			if filtered[j].Interval.End > filtered[best].Interval.End {
				best = j
			}
		}
		selected = append(selected, filtered[best])
		currentEnd = filtered[best].Interval.End
		i = batch
	}

	if currentEnd < window.End {
		gaps = append(gaps, Interval{Start: currentEnd, End: window.End})
	}
	return selected, gaps
}
