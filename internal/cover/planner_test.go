package cover

import (
	"reflect"
	"testing"
)

func demoPlanner() *Planner {
	p := NewPlanner(0, 24)
	p.AddSatellite("Sat-Alpha", 0, 6, 1200, "Asia")
	p.AddSatellite("Sat-Beta", 4, 10, 1500, "Europe")
	p.AddSatellite("Sat-Gamma", 8, 14, 1800, "Asia")
	p.AddSatellite("Sat-Delta", 12, 18, 1300, "Americas")
	p.AddSatellite("Sat-Epsilon", 16, 22, 1600, "Europe")
	p.AddSatellite("Sat-Zeta", 20, 24, 1100, "Global")
	p.AddSatellite("Sat-Eta", 2, 8, 900, "Asia")
	p.AddSatellite("Sat-Theta", 10, 16, 1400, "Europe")
	p.AddSatellite("Sat-Iota", 14, 20, 1700, "Americas")
	p.AddSatellite("Sat-Kappa", 18, 23, 1000, "Global")
	return p
}

func TestPlannerFullFleetCoversWindow(t *testing.T) {
	p := demoPlanner()
	selected, gaps := p.MinimumSatellites(RegionAll)
	if len(gaps) != 0 {
		t.Fatalf("full fleet left gaps %v", gaps)
	}
	if len(selected) == 0 {
		t.Fatal("no satellites selected")
	}
	s := p.CoverageSummary(RegionAll)
	if s.CoveragePercentage < 100 {
		t.Fatalf("full fleet coverage %v%%, want >= 100", s.CoveragePercentage)
	}
}

func TestPlannerAsiaSummary(t *testing.T) {
	s := demoPlanner().CoverageSummary("Asia")
	if s.SatellitesUsed != 3 {
		t.Fatalf("used %d, want 3", s.SatellitesUsed)
	}
	if len(s.Gaps) != 1 || s.Gaps[0] != (Interval{Start: 14, End: 24}) {
		t.Fatalf("gaps %v, want [14,24)", s.Gaps)
	}
	if s.TotalCost != 3900 {
		t.Fatalf("cost %v, want 3900", s.TotalCost)
	}
}

func TestPlannerQueriesIdempotent(t *testing.T) {
	p := demoPlanner()
	sel1, gaps1 := p.MinimumSatellites("Europe")
	sel2, gaps2 := p.MinimumSatellites("Europe")
	if !reflect.DeepEqual(sel1, sel2) || !reflect.DeepEqual(gaps1, gaps2) {
		t.Fatal("greedy query not idempotent")
	}
	c1 := p.CoverageSummary("Europe")
	c2 := p.CoverageSummary("Europe")
	if !reflect.DeepEqual(c1, c2) {
		t.Fatal("summary query not idempotent")
	}
	m1, cost1, g1 := p.MinimumCostCoverage(RegionAll)
	m2, cost2, g2 := p.MinimumCostCoverage(RegionAll)
	if !reflect.DeepEqual(m1, m2) || cost1 != cost2 || !reflect.DeepEqual(g1, g2) {
		t.Fatal("min-cost query not idempotent")
	}
}

func TestPlannerRegistryIsolation(t *testing.T) {
	p := demoPlanner()
	sats := p.Satellites()
	if len(sats) != 10 {
		t.Fatalf("registry size %d, want 10", len(sats))
	}
	sats[0].Name = "mutated"
	if p.Satellites()[0].Name != "Sat-Alpha" {
		t.Fatal("Satellites() aliases the registry")
	}
	filtered := p.FilterByRegion("Global")
	filtered[0].Cost = -1
	if p.FilterByRegion("Global")[0].Cost != 1100 {
		t.Fatal("FilterByRegion aliases the registry")
	}
}

func TestPlannerUnknownRegion(t *testing.T) {
	p := demoPlanner()
	selected, gaps := p.MinimumSatellites("Atlantis")
	if len(selected) != 0 {
		t.Fatalf("selected %v for unknown region", names(selected))
	}
	if !reflect.DeepEqual(gaps, []Interval{{Start: 0, End: 24}}) {
		t.Fatalf("gaps %v, want full window", gaps)
	}
	s := p.CoverageSummary("Atlantis")
	if s.CoveragePercentage != 0 || s.SatellitesUsed != 0 {
		t.Fatalf("summary for unknown region: %+v", s)
	}
}
