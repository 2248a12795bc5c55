package render

import (
    "strings"
    "testing"

    "satcover/internal/cover"
)

func TestReportSections(t *testing.T) {
    window := cover.Interval{Start: 0, End: 24}
    sats := []cover.Satellite{
        {Name: "Alpha", Interval: cover.Interval{Start: 0, End: 6}, Cost: 1000, Region: "Asia"},
        {Name: "Eta", Interval: cover.Interval{Start: 5, End: 11}, Cost: 1700, Region: "Asia"},
    }
    selected, gaps := cover.MinimumSatellites(window, sats)
    sum := cover.Summarize(window, selected, gaps)
    out := Report(window, sats, selected, gaps, sum)

    for _, want := range []string{
        "ALL REGISTERED SATELLITES",
        "Selected Satellites:",
        "Alpha",
        "Coverage Gaps Detected:",
        "=== COVERAGE SUMMARY ===",
        "Satellites Used:     2",
    } {
        if !strings.Contains(out, want) {
            t.Fatalf("report missing %q:\n%s", want, out)
        }
    }
}

func TestGapsEmpty(t *testing.T) {
    if got := Gaps(nil); !strings.Contains(got, "Full coverage") {
        t.Fatalf("unexpected: %q", got)
    }
}

func TestGapNumberingAndFormat(t *testing.T) {
    out := Gaps([]cover.Interval{{Start: 6, End: 10}, {Start: 14, End: 24}})
    if !strings.Contains(out, "Gap 1: 6.0h to 10.0h (duration: 4.0 hours)") {
        t.Fatalf("gap 1 format wrong:\n%s", out)
    }
    if !strings.Contains(out, "Gap 2:") {
        t.Fatalf("gap 2 missing:\n%s", out)
    }
}
