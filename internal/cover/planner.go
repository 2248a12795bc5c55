// Package cover implements interval coverage planning over a fixed
// target window: greedy minimum-satellite selection, minimum-cost
// selection via dynamic programming, gap detection and coverage
// summaries. The package is purely computational; callers own
// persistence and presentation.
package cover

// Planner owns a satellite registry and the target window the registry
// is planned against. Queries operate on value copies of the registry
// and never mutate it, so repeated calls on an unchanged planner return
// identical results.
type Planner struct {
	window Interval
	sats   []Satellite
}

// NewPlanner creates a planner for the half-open target window
// [start, end).
func NewPlanner(start, end float64) *Planner {
	return &Planner{window: Interval{Start: start, End: end}}
}

func (p *Planner) Window() Interval { return p.window }

// AddSatellite appends one satellite to the registry. No validation:
// degenerate intervals are accepted and yield degenerate but
// well-defined results.
func (p *Planner) AddSatellite(name string, start, end, cost float64, region string) {
	p.sats = append(p.sats, Satellite{
		Name:     name,
		Interval: Interval{Start: start, End: end},
		Cost:     cost,
		Region:   region,
	})
}

// Satellites returns a copy of the registry in registration order.
func (p *Planner) Satellites() []Satellite {
	return append([]Satellite(nil), p.sats...)
}

// FilterByRegion narrows the registry to one region label, or the full
// registry for RegionAll.
func (p *Planner) FilterByRegion(region string) []Satellite {
	return FilterByRegion(p.sats, region)
}

// MinimumSatellites runs the greedy minimum-count policy over the
// region-filtered registry.
func (p *Planner) MinimumSatellites(region string) ([]Satellite, []Interval) {
	return MinimumSatellites(p.window, p.FilterByRegion(region))
}

// MinimumCostCoverage runs the minimum-cost chain policy over the
// region-filtered registry.
func (p *Planner) MinimumCostCoverage(region string) ([]Satellite, float64, []Interval) {
	return MinimumCostCoverage(p.window, p.FilterByRegion(region))
}

// CoverageSummary summarizes the greedy minimum-satellite selection for
// the region.
func (p *Planner) CoverageSummary(region string) Summary {
	selected, gaps := p.MinimumSatellites(region)
	return Summarize(p.window, selected, gaps)
}
