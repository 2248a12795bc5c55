package api

import (
    "encoding/json"
    "net/http"
    "strings"
)

// Minimal GraphQL-like HTTP handler for demo purposes.
// Supports queries:
// - satellites(region: $region): list the tenant registry
// - runs: list coverage run history
// Variables may contain {"region":"..."}
func (s *Server) GraphQLHTTPHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost { w.WriteHeader(405); return }
    var body struct {
        Query     string                 `json:"query"`
        Variables map[string]any         `json:"variables"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil { writeProblem(w, 400, "Invalid JSON", err.Error(), r.URL.Path); return }
    q := strings.ToLower(body.Query)
    _, tenant := s.withTenant(r)
    switch {
    case strings.Contains(q, "satellites"):
        region := ""
        if body.Variables != nil { if v, ok := body.Variables["region"].(string); ok { region = v } }
        items, _, err := s.Store.ListSatellites(r.Context(), tenant, region, "", 500)
        if err != nil { writeProblem(w, 500, "Query failed", err.Error(), r.URL.Path); return }
        writeJSON(w, 200, map[string]any{"data": map[string]any{"satellites": items}})
    case strings.Contains(q, "runs"):
        runs, err := s.Store.ListCoverageRuns(r.Context(), tenant, "", "", 100)
        if err != nil { writeProblem(w, 500, "Query failed", err.Error(), r.URL.Path); return }
        writeJSON(w, 200, map[string]any{"data": map[string]any{"runs": runs}})
    default:
        writeProblem(w, 400, "Unsupported query", "", r.URL.Path)
    }
}
