package api

import (
    "io"
    "net/http"

    "satcover/internal/integrations/csvfeed"
)

// SatellitesImportHandler handles POST /v1/satellites/import with a
// text/csv body of visibility windows.
func (s *Server) SatellitesImportHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    if s.Limits != nil && !s.Limits.allow(clientKey(r)) {
        writeProblem(w, http.StatusTooManyRequests, "Rate Limited", "too many import requests", r.URL.Path)
        return
    }
    _, tenant := s.withTenant(r)
    raw, err := io.ReadAll(io.LimitReader(r.Body, 4<<20))
    if err != nil {
        writeProblem(w, http.StatusBadRequest, "Read body failed", err.Error(), r.URL.Path)
        return
    }
    windows, err := csvfeed.Adapter{}.Parse(raw)
    if err != nil {
        writeProblem(w, http.StatusBadRequest, "Invalid CSV", err.Error(), r.URL.Path)
        return
    }
    imp, created, skipped, err := s.Store.CreateSatellites(r.Context(), tenant, windows)
    if err != nil {
        writeProblem(w, http.StatusInternalServerError, "Import failed", err.Error(), r.URL.Path)
        return
    }
    writeJSON(w, http.StatusAccepted, map[string]any{"importId": imp, "created": created, "skipped": skipped, "source": csvfeed.Adapter{}.Name()})
}
