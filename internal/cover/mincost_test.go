package cover

import (
	"math"
	"reflect"
	"testing"
)

func TestMinimumCostChain(t *testing.T) {
	window := Interval{Start: 0, End: 24}
	sats := []Satellite{
		sat("Sat-Alpha", 0, 6, 1200, "Asia"),
		sat("Sat-Eta", 2, 8, 900, "Asia"),
		sat("Sat-Gamma", 8, 14, 1800, "Asia"),
	}
	selected, cost, gaps := MinimumCostCoverage(window, sats)
	if got := names(selected); !reflect.DeepEqual(got, []string{"Sat-Alpha", "Sat-Eta", "Sat-Gamma"}) {
		t.Fatalf("selected %v", got)
	}
	if cost != 3900 {
		t.Fatalf("cost %v, want 3900", cost)
	}
	if !reflect.DeepEqual(gaps, []Interval{{Start: 14, End: 24}}) {
		t.Fatalf("gaps %v, want [14,24)", gaps)
	}
}

func TestMinimumCostEmptyInput(t *testing.T) {
	selected, cost, gaps := MinimumCostCoverage(Interval{Start: 0, End: 24}, nil)
	if len(selected) != 0 || cost != 0 {
		t.Fatalf("selected %v cost %v, want empty and 0", names(selected), cost)
	}
	if !reflect.DeepEqual(gaps, []Interval{{Start: 0, End: 24}}) {
		t.Fatalf("gaps %v, want single full-window gap", gaps)
	}
}

// When no chain reaches the final index the walk stops immediately:
// empty selection, zero cost, not partial coverage at partial cost.
func TestMinimumCostUnreachableTailYieldsEmpty(t *testing.T) {
	window := Interval{Start: 0, End: 24}
	sats := []Satellite{sat("A", 0, 6, 10, ""), sat("B", 10, 14, 10, "")}
	selected, cost, gaps := MinimumCostCoverage(window, sats)
	if len(selected) != 0 || cost != 0 {
		t.Fatalf("selected %v cost %v, want empty and 0", names(selected), cost)
	}
	if !reflect.DeepEqual(gaps, []Interval{{Start: 0, End: 24}}) {
		t.Fatalf("gaps %v, want single full-window gap", gaps)
	}
}

// The reconstruction walks parent pointers from the fixed endpoint n,
// collecting every satellite whose state was relaxed along the way.
// Two satellites with identical intervals are therefore both selected:
// the walk follows the index chain, not the cheapest cover.
func TestMinimumCostWalksParentChain(t *testing.T) {
	window := Interval{Start: 0, End: 10}
	sats := []Satellite{sat("Dear", 0, 10, 500, ""), sat("Cheap", 0, 10, 100, "")}
	selected, cost, gaps := MinimumCostCoverage(window, sats)
	if got := names(selected); !reflect.DeepEqual(got, []string{"Dear", "Cheap"}) {
		t.Fatalf("selected %v, want [Dear Cheap]", got)
	}
	if cost != 600 {
		t.Fatalf("cost %v, want 600", cost)
	}
	if len(gaps) != 0 {
		t.Fatalf("gaps %v, want none", gaps)
	}
}

// bruteMinChainCost enumerates every strictly increasing index chain
// ending at the last sorted satellite whose links satisfy the DP
// frontier rule, and returns the cheapest total cost.
func bruteMinChainCost(window Interval, sats []Satellite) float64 {
	filtered := sortByStart(sats)
	n := len(filtered)
	best := math.Inf(1)
	var walk func(last int, frontier, cost float64)
	walk = func(last int, frontier, cost float64) {
		if last == n-1 {
			if cost < best {
				best = cost
			}
			return
		}
		for j := last + 1; j < n; j++ {
			if filtered[j].Interval.Start <= frontier {
				walk(j, filtered[j].Interval.End, cost+filtered[j].Cost)
			}
		}
	}
	for j := 0; j < n; j++ {
		if filtered[j].Interval.Start <= window.Start {
			walk(j, filtered[j].Interval.End, filtered[j].Cost)
		}
	}
	return best
}

func TestMinimumCostNotWorseThanAnyChain(t *testing.T) {
	window := Interval{Start: 0, End: 24}
	cases := [][]Satellite{
		{
			sat("A", 0, 6, 4, ""), sat("B", 4, 10, 7, ""), sat("C", 8, 14, 2, ""),
			sat("D", 12, 18, 9, ""), sat("E", 16, 22, 5, ""), sat("F", 20, 24, 3, ""),
		},
		{
			sat("Sat-Alpha", 0, 6, 1200, ""), sat("Sat-Eta", 2, 8, 900, ""), sat("Sat-Gamma", 8, 14, 1800, ""),
		},
	}
	for i, sats := range cases {
		_, cost, _ := MinimumCostCoverage(window, sats)
		brute := bruteMinChainCost(window, sats)
		if math.IsInf(brute, 1) {
			t.Fatalf("case %d: brute force found no chain", i)
		}
		if cost > brute {
			t.Fatalf("case %d: cost %v exceeds brute-force chain minimum %v", i, cost, brute)
		}
	}
}

func TestMinimumCostIdempotent(t *testing.T) {
	window := Interval{Start: 0, End: 24}
	sats := regionFixture()
	sel1, cost1, gaps1 := MinimumCostCoverage(window, sats)
	sel2, cost2, gaps2 := MinimumCostCoverage(window, sats)
	if !reflect.DeepEqual(sel1, sel2) || cost1 != cost2 || !reflect.DeepEqual(gaps1, gaps2) {
		t.Fatal("repeated runs over an unchanged registry differ")
	}
}
