package cover

// RegionAll is the wildcard region label matching every satellite.
const RegionAll = "All"

// FilterByRegion returns the satellites whose region label matches
// exactly, or a copy of the whole list for the RegionAll wildcard.
// An unmatched label yields an empty (non-nil) slice.
func FilterByRegion(sats []Satellite, region string) []Satellite {
	if region == RegionAll {
		return append([]Satellite(nil), sats...)
	}
	filtered := []Satellite{}
	for _, sat := range sats {
		if sat.Region == region {
			filtered = append(filtered, sat)
		}
	}
	return filtered
}
