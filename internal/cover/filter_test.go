package cover

import "testing"

func regionFixture() []Satellite {
	return []Satellite{
		{Name: "Sat-Alpha", Interval: Interval{Start: 0, End: 6}, Cost: 1200, Region: "Asia"},
		{Name: "Sat-Beta", Interval: Interval{Start: 4, End: 10}, Cost: 1500, Region: "Europe"},
		{Name: "Sat-Delta", Interval: Interval{Start: 12, End: 18}, Cost: 1300, Region: "Americas"},
		{Name: "Sat-Eta", Interval: Interval{Start: 2, End: 8}, Cost: 900, Region: "Asia"},
		{Name: "Sat-Zeta", Interval: Interval{Start: 20, End: 24}, Cost: 1100, Region: "Global"},
	}
}

func TestFilterByRegionExact(t *testing.T) {
	got := FilterByRegion(regionFixture(), "Asia")
	if len(got) != 2 {
		t.Fatalf("Asia: got %d satellites, want 2", len(got))
	}
	for _, sat := range got {
		if sat.Region != "Asia" {
			t.Fatalf("Asia filter returned %s (%s)", sat.Name, sat.Region)
		}
	}
}

func TestFilterByRegionWildcard(t *testing.T) {
	sats := regionFixture()
	got := FilterByRegion(sats, RegionAll)
	if len(got) != len(sats) {
		t.Fatalf("wildcard: got %d, want %d", len(got), len(sats))
	}
	// Must be a copy, not an alias of the registry.
	got[0].Name = "mutated"
	if sats[0].Name == "mutated" {
		t.Fatal("wildcard filter aliases the input slice")
	}
}

func TestFilterByRegionUnmatched(t *testing.T) {
	got := FilterByRegion(regionFixture(), "Atlantis")
	if got == nil || len(got) != 0 {
		t.Fatalf("unmatched: got %v, want empty slice", got)
	}
}
