package api

import (
    "context"
    "encoding/json"
    "net/http"
    "strings"
    "time"

    "github.com/google/uuid"

    "satcover/internal/buildinfo"
    "satcover/internal/cover"
    "satcover/internal/metrics"
    "satcover/internal/model"
    "satcover/internal/store"
)

// SatellitesHandler handles POST/GET/DELETE /v1/satellites
func (s *Server) SatellitesHandler(w http.ResponseWriter, r *http.Request) {
    switch r.Method {
    case http.MethodPost:
        if s.Limits != nil && !s.Limits.allow(clientKey(r)) {
            writeProblem(w, http.StatusTooManyRequests, "Rate Limited", "too many registration requests", r.URL.Path)
            return
        }
        var req struct {
            TenantID   string              `json:"tenantId"`
            Satellites []model.SatelliteIn `json:"satellites"`
        }
        if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
            writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
            return
        }
        if req.TenantID == "" { _, req.TenantID = s.withTenant(r) }
        imp, created, skipped, err := s.Store.CreateSatellites(r.Context(), req.TenantID, req.Satellites)
        if err != nil {
            writeProblem(w, http.StatusInternalServerError, "Create satellites failed", err.Error(), r.URL.Path)
            return
        }
        writeJSON(w, http.StatusAccepted, map[string]any{"importId": imp, "created": created, "skipped": skipped})
    case http.MethodGet:
        _, tenant := s.withTenant(r)
        region := r.URL.Query().Get("region")
        cursor := r.URL.Query().Get("cursor")
        limit := queryInt(r, "limit", 100)
        items, next, err := s.Store.ListSatellites(r.Context(), tenant, region, cursor, limit)
        if err != nil {
            writeProblem(w, http.StatusInternalServerError, "List satellites failed", err.Error(), r.URL.Path)
            return
        }
        writeJSON(w, http.StatusOK, map[string]any{"items": items, "nextCursor": next})
    case http.MethodDelete:
        p := s.getPrincipal(r)
        if !p.IsAdmin() { writeProblem(w, 403, "Forbidden", "admin required", r.URL.Path); return }
        removed, err := s.Store.DeleteSatellites(r.Context(), p.Tenant)
        if err != nil {
            writeProblem(w, http.StatusInternalServerError, "Delete satellites failed", err.Error(), r.URL.Path)
            return
        }
        writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
    default:
        w.WriteHeader(http.StatusMethodNotAllowed)
    }
}

// loadRegistry pages through the full tenant registry.
func (s *Server) loadRegistry(ctx context.Context, tenantID string) ([]model.SatelliteOut, error) {
    all := []model.SatelliteOut{}
    cursor := ""
    for {
        page, next, err := s.Store.ListSatellites(ctx, tenantID, "", cursor, 500)
        if err != nil { return nil, err }
        all = append(all, page...)
        if next == "" { break }
        cursor = next
    }
    return all, nil
}

func toCover(items []model.SatelliteOut) []cover.Satellite {
    out := make([]cover.Satellite, 0, len(items))
    for _, it := range items {
        out = append(out, cover.Satellite{
            Name:     it.Name,
            Interval: cover.Interval{Start: it.Start, End: it.End},
            Cost:     it.Cost,
            Region:   it.Region,
        })
    }
    return out
}

// matchSelected maps a selection back onto the registry records, first
// unused record wins when names and intervals collide.
func matchSelected(items []model.SatelliteOut, sel []cover.Satellite) []model.SatelliteOut {
    used := make([]bool, len(items))
    out := make([]model.SatelliteOut, 0, len(sel))
    for _, c := range sel {
        for i, it := range items {
            if used[i] { continue }
            if it.Name == c.Name && it.Start == c.Interval.Start && it.End == c.Interval.End {
                used[i] = true
                out = append(out, it)
                break
            }
        }
    }
    return out
}

func toGaps(gaps []cover.Interval) []model.GapOut {
    out := make([]model.GapOut, 0, len(gaps))
    for _, g := range gaps {
        out = append(out, model.GapOut{Start: g.Start, End: g.End, Duration: g.Duration()})
    }
    return out
}

// planWindow resolves the target window: request, then tenant planner
// config, then the service default.
func (s *Server) planWindow(ctx context.Context, tenantID string, req *model.Window) cover.Interval {
    if req != nil {
        return cover.Interval{Start: req.Start, End: req.End}
    }
    win := s.defaultWindow()
    cfg, _ := s.Store.GetPlannerConfig(ctx, tenantID)
    if cfg != nil {
        if v, ok := cfg["windowStart"].(float64); ok { win.Start = v }
        if v, ok := cfg["windowEnd"].(float64); ok { win.End = v }
    }
    return win
}

// CoveragePlanHandler handles POST /v1/coverage/plan
func (s *Server) CoveragePlanHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    p := s.getPrincipal(r)
    if !(p.IsAdmin() || p.Role == "operator") { writeProblem(w, 403, "Forbidden", "operator or admin required", r.URL.Path); return }
    var req model.PlanRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
        return
    }
    if err := validatePlanRequest(&req); err != nil {
        writeProblem(w, http.StatusBadRequest, "Invalid plan request", err.Error(), r.URL.Path)
        return
    }
    if req.TenantID == "" { req.TenantID = p.Tenant }
    if req.Region == "" { req.Region = cover.RegionAll }
    if req.Algorithm == "" { req.Algorithm = "greedy" }

    items, err := s.loadRegistry(r.Context(), req.TenantID)
    if err != nil {
        writeProblem(w, http.StatusInternalServerError, "Load registry failed", err.Error(), r.URL.Path)
        return
    }
    window := s.planWindow(r.Context(), req.TenantID, req.Window)
    filtered := cover.FilterByRegion(toCover(items), req.Region)

    var selected []cover.Satellite
    var gaps []cover.Interval
    var totalCost float64
    switch req.Algorithm {
    case "mincost":
        selected, totalCost, gaps = cover.MinimumCostCoverage(window, filtered)
    default:
        selected, gaps = cover.MinimumSatellites(window, filtered)
    }
    sum := cover.Summarize(window, selected, gaps)
    if req.Algorithm != "mincost" { totalCost = sum.TotalCost }

    run := model.CoverageRun{
        ID:        uuid.New().String(),
        TenantID:  req.TenantID,
        Region:    req.Region,
        Algorithm: req.Algorithm,
        Window:    model.Window{Start: window.Start, End: window.End},
        Selected:  matchSelected(items, selected),
        Gaps:      toGaps(gaps),
        TotalCost: totalCost,
        Summary: model.SummaryOut{
            TotalDuration:      sum.TotalDuration,
            CoveredDuration:    sum.CoveredDuration,
            CoveragePercentage: sum.CoveragePercentage,
            SatellitesUsed:     sum.SatellitesUsed,
            TotalCost:          totalCost,
            GapCount:           len(gaps),
        },
        CreatedAt: time.Now().UTC().Format(time.RFC3339),
    }
    if err := s.Store.SaveCoverageRun(r.Context(), run); err != nil {
        writeProblem(w, http.StatusInternalServerError, "Save run failed", err.Error(), r.URL.Path)
        return
    }

    metrics.CoverageRuns.WithLabelValues(run.Algorithm, run.Region).Inc()
    metrics.CoverageGaps.WithLabelValues(run.Algorithm, run.Region).Add(float64(len(run.Gaps)))

    runData := map[string]any{
        "runId":     run.ID,
        "algorithm": run.Algorithm,
        "region":    run.Region,
        "coverage":  run.Summary.CoveragePercentage,
        "gapCount":  len(run.Gaps),
        "totalCost": run.TotalCost,
    }
    s.Broker.Publish(run.TenantID, SSEEvent{Type: "coverage.run.completed", Data: runData})
    s.Pub.Emit(r.Context(), run.TenantID, "coverage.run.completed", runData)
    for _, g := range run.Gaps {
        gapData := map[string]any{"runId": run.ID, "region": run.Region, "start": g.Start, "end": g.End, "duration": g.Duration}
        s.Broker.Publish(run.TenantID, SSEEvent{Type: "coverage.gap.detected", Data: gapData})
        s.Pub.Emit(r.Context(), run.TenantID, "coverage.gap.detected", gapData)
    }

    writeJSON(w, http.StatusOK, run)
}

// CoverageSummaryHandler handles GET /v1/coverage/summary
func (s *Server) CoverageSummaryHandler(w http.ResponseWriter, r *http.Request) {
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
    filtered := cover.FilterByRegion(toCover(items), region)
    selected, gaps := cover.MinimumSatellites(window, filtered)
    sum := cover.Summarize(window, selected, gaps)
    writeJSON(w, http.StatusOK, map[string]any{"region": region, "summary": sum})
}

// PlannerConfigHandler returns planner defaults overlaid with tenant config
func (s *Server) PlannerConfigHandler(w http.ResponseWriter, r *http.Request) {
    if r.URL.Path != "/v1/planner/config" || r.Method != http.MethodGet { writeProblem(w, 404, "Not Found", "", r.URL.Path); return }
    win := s.defaultWindow()
    defaults := map[string]any{
        "windowStart": win.Start,
        "windowEnd":   win.End,
        "wildcard":    cover.RegionAll,
        "algorithm":   "greedy",
    }
    p := s.getPrincipal(r)
    cfg, _ := s.Store.GetPlannerConfig(r.Context(), p.Tenant)
    if cfg != nil {
        for k, v := range cfg { defaults[k] = v }
    }
    writeJSON(w, 200, map[string]any{"defaults": defaults})
}

// Admin get/set planner tenant config
func (s *Server) AdminPlannerConfigHandler(w http.ResponseWriter, r *http.Request) {
    if r.URL.Path != "/v1/admin/planner/config" { writeProblem(w, 404, "Not Found", "", r.URL.Path); return }
    p := s.getPrincipal(r)
    if !p.IsAdmin() { writeProblem(w, 403, "Forbidden", "admin required", r.URL.Path); return }
    switch r.Method {
    case http.MethodGet:
        cfg, _ := s.Store.GetPlannerConfig(r.Context(), p.Tenant)
        if cfg == nil { cfg = map[string]any{} }
        writeJSON(w, 200, map[string]any{"config": cfg})
    case http.MethodPut:
        var body struct{ Config map[string]any `json:"config"` }
        if err := json.NewDecoder(r.Body).Decode(&body); err != nil { writeProblem(w, 400, "Invalid JSON", err.Error(), r.URL.Path); return }
        if body.Config == nil { writeProblem(w, 400, "Missing config", "", r.URL.Path); return }
        if err := s.Store.SavePlannerConfig(r.Context(), p.Tenant, body.Config); err != nil { writeProblem(w, 500, "Save failed", err.Error(), r.URL.Path); return }
        writeJSON(w, 200, map[string]bool{"ok": true})
    default:
        w.WriteHeader(http.StatusMethodNotAllowed)
    }
}

// SubscriptionsHandler handles POST/GET /v1/subscriptions
func (s *Server) SubscriptionsHandler(w http.ResponseWriter, r *http.Request) {
    switch r.Method {
    case http.MethodPost:
        p := s.getPrincipal(r)
        if !p.IsAdmin() { writeProblem(w, 403, "Forbidden", "admin required", r.URL.Path); return }
        var req model.SubscriptionRequest
        if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
            writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
            return
        }
        if req.TenantID == "" { req.TenantID = p.Tenant }
        sub, err := s.Store.CreateSubscription(r.Context(), req)
        if err != nil {
            writeProblem(w, http.StatusInternalServerError, "Create subscription failed", err.Error(), r.URL.Path)
            return
        }
        writeJSON(w, http.StatusCreated, sub)
    case http.MethodGet:
        p := s.getPrincipal(r)
        if !p.IsAdmin() { writeProblem(w, 403, "Forbidden", "admin required", r.URL.Path); return }
        cursor := r.URL.Query().Get("cursor")
        limit := queryInt(r, "limit", 100)
        items, next, err := s.Store.ListSubscriptions(r.Context(), p.Tenant, cursor, limit)
        if err != nil { writeProblem(w, 500, "List subscriptions failed", err.Error(), r.URL.Path); return }
        writeJSON(w, 200, map[string]any{"items": items, "nextCursor": next})
    default:
        w.WriteHeader(http.StatusMethodNotAllowed)
    }
}

// Subscription delete (admin)
func (s *Server) SubscriptionByIDHandler(w http.ResponseWriter, r *http.Request) {
    if !strings.HasPrefix(r.URL.Path, "/v1/subscriptions/") { writeProblem(w, 404, "Not Found", "", r.URL.Path); return }
    if r.Method != http.MethodDelete { w.WriteHeader(405); return }
    p := s.getPrincipal(r)
    if !p.IsAdmin() { writeProblem(w, 403, "Forbidden", "admin required", r.URL.Path); return }
    id := strings.TrimPrefix(r.URL.Path, "/v1/subscriptions/")
    if err := s.Store.DeleteSubscription(r.Context(), p.Tenant, id); err != nil {
        if err == store.ErrNotFound { writeProblem(w, 404, "Subscription not found", "", r.URL.Path); return }
        writeProblem(w, 500, "Delete subscription failed", err.Error(), r.URL.Path)
        return
    }
    w.WriteHeader(204)
}

// Admin: webhook deliveries list and retry
func (s *Server) WebhookDeliveriesHandler(w http.ResponseWriter, r *http.Request) {
    if r.URL.Path != "/v1/admin/webhook-deliveries" { writeProblem(w, 404, "Not Found", "", r.URL.Path); return }
    p := s.getPrincipal(r)
    if !p.IsAdmin() { writeProblem(w, 403, "Forbidden", "admin required", r.URL.Path); return }
    if r.Method != http.MethodGet { w.WriteHeader(405); return }
    status := r.URL.Query().Get("status")
    cursor := r.URL.Query().Get("cursor")
    limit := queryInt(r, "limit", 100)
    items, next, err := s.Store.ListWebhookDeliveries(r.Context(), p.Tenant, status, cursor, limit)
    if err != nil { writeProblem(w, 500, "List deliveries failed", err.Error(), r.URL.Path); return }
    writeJSON(w, 200, map[string]any{"items": items, "nextCursor": next})
}

func (s *Server) WebhookDeliveryRetryHandler(w http.ResponseWriter, r *http.Request) {
    if !strings.HasPrefix(r.URL.Path, "/v1/admin/webhook-deliveries/") || !strings.HasSuffix(r.URL.Path, "/retry") { writeProblem(w, 404, "Not Found", "", r.URL.Path); return }
    if r.Method != http.MethodPost { w.WriteHeader(405); return }
    p := s.getPrincipal(r)
    if !p.IsAdmin() { writeProblem(w, 403, "Forbidden", "admin required", r.URL.Path); return }
    id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/admin/webhook-deliveries/"), "/retry")
    if err := s.Store.RetryWebhookDelivery(r.Context(), p.Tenant, id); err != nil { writeProblem(w, 500, "Retry delivery failed", err.Error(), r.URL.Path); return }
    writeJSON(w, 202, map[string]int{"accepted": 1})
}

// Admin: coverage run history
func (s *Server) CoverageRunsHandler(w http.ResponseWriter, r *http.Request) {
    if r.URL.Path != "/v1/admin/coverage-runs" || r.Method != http.MethodGet { writeProblem(w, 404, "Not Found", "", r.URL.Path); return }
    p := s.getPrincipal(r)
    if !p.IsAdmin() { writeProblem(w, 403, "Forbidden", "admin required", r.URL.Path); return }
    region := r.URL.Query().Get("region")
    algo := r.URL.Query().Get("algo")
    limit := queryInt(r, "limit", 100)
    runs, err := s.Store.ListCoverageRuns(r.Context(), p.Tenant, region, algo, limit)
    if err != nil { writeProblem(w, 500, "List runs failed", err.Error(), r.URL.Path); return }
    writeJSON(w, 200, map[string]any{"items": runs})
}

// Health
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, 200, map[string]string{"status": "ok"})
}

func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
    // Check DB connectivity when using Postgres store
    type pinger interface{ Ping(ctx context.Context) error }
    if pg, ok := s.Store.(pinger); ok {
        ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
        defer cancel()
        if err := pg.Ping(ctx); err != nil { writeProblem(w, 503, "Not Ready", err.Error(), r.URL.Path); return }
    }
    writeJSON(w, 200, map[string]string{"status": "ready"})
}

func (s *Server) VersionHandler(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, 200, buildinfo.Info())
}
