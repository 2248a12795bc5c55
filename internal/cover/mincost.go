package cover

import "math"

// MinimumCostCoverage selects a chain of satellites minimizing total
// cost via dynamic programming over the start-sorted list.
//
// dp[k] is the cheapest cost of a chain consuming the first k sorted
// satellites with the k-th selected; each state relaxes forward from a
// frontier read off its own parent pointer, so the result is the
// cheapest parent-linked chain, not a full shortest path over all
// reachable frontiers. Reconstruction walks parents back from index n;
// when no chain reaches n the selection is empty and the cost is zero,
// so partial coverage is never reported as partial cost.
func MinimumCostCoverage(window Interval, sats []Satellite) (selected []Satellite, totalCost float64, gaps []Interval) {
	filtered := sortByStart(sats)
	n := len(filtered)

	dp := make([]float64, n+1)
	parent := make([]int, n+1)
	for k := 1; k <= n; k++ {
		dp[k] = math.Inf(1)
	}
	for k := range parent {
		parent[k] = -1
	}

	for i := 0; i < n; i++ {
		if math.IsInf(dp[i], 1) {
			continue
		}
		currentEnd := window.Start
		if i > 0 {
			currentEnd = filtered[parent[i]].Interval.End
		}
		for j := i; j < n; j++ {
			if filtered[j].Interval.Start > currentEnd {
				break // sorted, no later j qualifies
			}
			if c := dp[i] + filtered[j].Cost; c < dp[j+1] {
				dp[j+1] = c
				parent[j+1] = j
			}
		}
	}

	selected = []Satellite{}
	for idx := n; idx > 0 && parent[idx] != -1; idx = parent[idx] {
		selected = append(selected, filtered[parent[idx]])
		totalCost += filtered[parent[idx]].Cost
	}
	for l, r := 0, len(selected)-1; l < r; l, r = l+1, r-1 {
		selected[l], selected[r] = selected[r], selected[l]
	}

	// The chain is consumed in increasing index order, so the selection
	// is already sorted by start.
	gaps = FindGaps(window, selected)
	return selected, totalCost, gaps
}
