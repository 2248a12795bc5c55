package api

import (
    "net/http"

    "satcover/internal/cover"
    "satcover/internal/render"
)

// CoverageReportHandler handles GET /v1/coverage/report, returning the
// plain-text tables for the current registry and a greedy run.
func (s *Server) CoverageReportHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    _, tenant := s.withTenant(r)
    region := r.URL.Query().Get("region")
    if region == "" { region = cover.RegionAll }
    items, err := s.loadRegistry(r.Context(), tenant)
    if err != nil {
        writeProblem(w, http.StatusInternalServerError, "Load registry failed", err.Error(), r.URL.Path)
        return
    }
    window := s.planWindow(r.Context(), tenant, nil)
    registry := toCover(items)
    filtered := cover.FilterByRegion(registry, region)
    selected, gaps := cover.MinimumSatellites(window, filtered)
    sum := cover.Summarize(window, selected, gaps)

    w.Header().Set("Content-Type", "text/plain; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write([]byte(render.Report(window, filtered, selected, gaps, sum)))
}
