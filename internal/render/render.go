// Package render produces plain-text coverage reports: a registry
// table, the selected satellites, detected gaps and a summary block.
package render

import (
    "fmt"
    "strings"
    "text/tabwriter"

    "satcover/internal/cover"
)

func satelliteTable(b *strings.Builder, title string, sats []cover.Satellite) {
    fmt.Fprintf(b, "%s\n", title)
    b.WriteString(strings.Repeat("-", 70) + "\n")
    tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
    fmt.Fprintln(tw, "Name\tStart\tEnd\tDuration\tCost\tRegion")
    for _, s := range sats {
        fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.1f\t%.2f\t%s\n",
            s.Name, s.Interval.Start, s.Interval.End, s.Interval.Duration(), s.Cost, s.Region)
    }
    _ = tw.Flush()
    b.WriteString(strings.Repeat("-", 70) + "\n")
}

// Gaps lists detected gaps, one per line.
func Gaps(gaps []cover.Interval) string {
    if len(gaps) == 0 {
        return "No coverage gaps. Full coverage achieved.\n"
    }
    var b strings.Builder
    b.WriteString("Coverage Gaps Detected:\n")
    for i, g := range gaps {
        fmt.Fprintf(&b, "  Gap %d: %.1fh to %.1fh (duration: %.1f hours)\n", i+1, g.Start, g.End, g.Duration())
    }
    return b.String()
}

// Summary renders the summary block.
func Summary(sum cover.Summary) string {
    var b strings.Builder
    b.WriteString("=== COVERAGE SUMMARY ===\n")
    fmt.Fprintf(&b, "Total Duration:      %.1f hours\n", sum.TotalDuration)
    fmt.Fprintf(&b, "Covered Duration:    %.1f hours\n", sum.CoveredDuration)
    fmt.Fprintf(&b, "Coverage Percentage: %.2f%%\n", sum.CoveragePercentage)
    fmt.Fprintf(&b, "Satellites Used:     %d\n", sum.SatellitesUsed)
    fmt.Fprintf(&b, "Total Cost:          $%.2f\n", sum.TotalCost)
    fmt.Fprintf(&b, "Coverage Gaps:       %d\n", len(sum.Gaps))
    return b.String()
}

// Report renders the full text report for one planning run.
func Report(window cover.Interval, registry, selected []cover.Satellite, gaps []cover.Interval, sum cover.Summary) string {
    var b strings.Builder
    fmt.Fprintf(&b, "Target window: %s\n\n", window)
    satelliteTable(&b, "=== ALL REGISTERED SATELLITES ===", registry)
    b.WriteString("\n")
    satelliteTable(&b, "Selected Satellites:", selected)
    b.WriteString("\n")
    b.WriteString(Gaps(gaps))
    b.WriteString("\n")
    b.WriteString(Summary(sum))
    return b.String()
}
