package cover

import (
	"reflect"
	"testing"
)

func sat(name string, start, end, cost float64, region string) Satellite {
	return Satellite{Name: name, Interval: Interval{Start: start, End: end}, Cost: cost, Region: region}
}

func names(sats []Satellite) []string {
	out := make([]string, len(sats))
	for i, s := range sats {
		out[i] = s.Name
	}
	return out
}

func TestGreedySingleSpanningSatellite(t *testing.T) {
	window := Interval{Start: 0, End: 24}
	sats := []Satellite{
		sat("Wide", -1, 25, 100, "Global"),
		sat("Narrow", 3, 5, 10, "Global"),
	}
	selected, gaps := MinimumSatellites(window, sats)
	if len(selected) != 1 || selected[0].Name != "Wide" {
		t.Fatalf("selected %v, want [Wide]", names(selected))
	}
	if len(gaps) != 0 {
		t.Fatalf("gaps %v, want none", gaps)
	}
}

func TestGreedyChainSelectsAll(t *testing.T) {
	window := Interval{Start: 0, End: 24}
	sats := []Satellite{
		sat("A", 0, 6, 1, ""), sat("B", 4, 10, 1, ""), sat("C", 8, 14, 1, ""),
		sat("D", 12, 18, 1, ""), sat("E", 16, 22, 1, ""), sat("F", 20, 24, 1, ""),
	}
	selected, gaps := MinimumSatellites(window, sats)
	if got := names(selected); !reflect.DeepEqual(got, []string{"A", "B", "C", "D", "E", "F"}) {
		t.Fatalf("selected %v, want all six in order", got)
	}
	if len(gaps) != 0 {
		t.Fatalf("gaps %v, want none", gaps)
	}
}

func TestGreedyEmptyRegistry(t *testing.T) {
	window := Interval{Start: 0, End: 24}
	selected, gaps := MinimumSatellites(window, nil)
	if len(selected) != 0 {
		t.Fatalf("selected %v, want none", names(selected))
	}
	if !reflect.DeepEqual(gaps, []Interval{{Start: 0, End: 24}}) {
		t.Fatalf("gaps %v, want single [0,24)", gaps)
	}
}

func TestGreedyZeroWidthWindow(t *testing.T) {
	selected, gaps := MinimumSatellites(Interval{Start: 12, End: 12}, []Satellite{sat("A", 0, 24, 1, "")})
	if len(selected) != 0 || len(gaps) != 0 {
		t.Fatalf("zero-width window: selected %v gaps %v, want none", names(selected), gaps)
	}
}

func TestGreedyGapBridging(t *testing.T) {
	window := Interval{Start: 0, End: 24}
	sats := []Satellite{sat("A", 2, 6, 1, ""), sat("B", 10, 14, 1, "")}
	selected, gaps := MinimumSatellites(window, sats)
	if got := names(selected); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("selected %v, want [A B]", got)
	}
	want := []Interval{{Start: 0, End: 2}, {Start: 6, End: 10}, {Start: 14, End: 24}}
	if !reflect.DeepEqual(gaps, want) {
		t.Fatalf("gaps %v, want %v", gaps, want)
	}
}

func TestGreedyMaxEndTieBreaksOnFirst(t *testing.T) {
	window := Interval{Start: 0, End: 10}
	sats := []Satellite{sat("First", 0, 10, 1, ""), sat("Second", 2, 10, 1, "")}
	selected, gaps := MinimumSatellites(window, sats)
	if len(selected) != 1 || selected[0].Name != "First" {
		t.Fatalf("selected %v, want [First]", names(selected))
	}
	if len(gaps) != 0 {
		t.Fatalf("gaps %v, want none", gaps)
	}
}

// The frontier always moves to the selected satellite's end, even when
// a previously selected satellite already reached further. The batch
// cursor never backtracks, so candidates discarded from an earlier
// batch stay discarded.
func TestGreedyFrontierFollowsSelectedEnd(t *testing.T) {
	window := Interval{Start: 0, End: 12}
	sats := []Satellite{sat("A", 0, 4, 1, ""), sat("B", 0, 10, 1, ""), sat("C", 4, 6, 1, "")}
	selected, gaps := MinimumSatellites(window, sats)
	if got := names(selected); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Fatalf("selected %v, want [B C]", got)
	}
	want := []Interval{{Start: 6, End: 12}}
	if !reflect.DeepEqual(gaps, want) {
		t.Fatalf("gaps %v, want %v", gaps, want)
	}
}

func TestGreedyScenarioAsia(t *testing.T) {
	window := Interval{Start: 0, End: 24}
	sats := []Satellite{
		sat("Sat-Alpha", 0, 6, 1200, "Asia"),
		sat("Sat-Eta", 2, 8, 900, "Asia"),
		sat("Sat-Gamma", 8, 14, 1800, "Asia"),
	}
	selected, gaps := MinimumSatellites(window, FilterByRegion(sats, "Asia"))
	if got := names(selected); !reflect.DeepEqual(got, []string{"Sat-Alpha", "Sat-Eta", "Sat-Gamma"}) {
		t.Fatalf("selected %v", got)
	}
	if !reflect.DeepEqual(gaps, []Interval{{Start: 14, End: 24}}) {
		t.Fatalf("gaps %v, want single [14,24)", gaps)
	}
	if d := gaps[0].Duration(); d != 10 {
		t.Fatalf("gap duration %v, want 10", d)
	}
}

func TestGreedyIdempotent(t *testing.T) {
	window := Interval{Start: 0, End: 24}
	sats := regionFixture()
	sel1, gaps1 := MinimumSatellites(window, sats)
	sel2, gaps2 := MinimumSatellites(window, sats)
	if !reflect.DeepEqual(sel1, sel2) || !reflect.DeepEqual(gaps1, gaps2) {
		t.Fatal("repeated runs over an unchanged registry differ")
	}
}
