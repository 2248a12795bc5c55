package store

import (
    "context"
    "sync"
    "time"

    "github.com/google/uuid"
    "satcover/internal/model"
)

// Memory is a simple in-memory store used when no DATABASE_URL is set.
type Memory struct {
    mu        sync.Mutex
    sats      map[string][]model.SatelliteOut // tenant -> satellites in registration order
    plannerCfg map[string]map[string]any      // tenant -> planner config
    runs      map[string][]model.CoverageRun  // tenant -> coverage run history
    subs      map[string][]model.Subscription // tenant -> subscriptions
    // Webhooks queue state
    deliveries map[string]*memDelivery        // id -> delivery state
    deliveriesByTenant map[string][]string    // tenant -> delivery ids
}

func NewMemory() *Memory {
    return &Memory{
        sats: map[string][]model.SatelliteOut{},
        plannerCfg: map[string]map[string]any{},
        runs: map[string][]model.CoverageRun{},
        subs: map[string][]model.Subscription{},
        deliveries: map[string]*memDelivery{},
        deliveriesByTenant: map[string][]string{},
    }
}

// memDelivery augments WebhookDelivery with scheduling/metrics
type memDelivery struct {
    WebhookDelivery
    NextAttemptAt time.Time
    LastError     string
    ResponseCode  int
    LatencyMs     int
    DeliveredAt   *time.Time
}

func (m *Memory) CreateSatellites(ctx context.Context, tenantID string, sats []model.SatelliteIn) (string, int, int, error) {
    m.mu.Lock(); defer m.mu.Unlock()
    created, skipped := 0, 0
    for _, s := range sats {
        if s.Name == "" { skipped++; continue }
        region := s.Region
        if region == "" { region = "Global" }
        id := uuid.New().String()
        m.sats[tenantID] = append(m.sats[tenantID], model.SatelliteOut{
            ID: id, TenantID: tenantID, Name: s.Name,
            Start: s.Start, End: s.End, Duration: s.End - s.Start,
            Cost: s.Cost, Region: region,
        })
        created++
    }
    return "imp_mem", created, skipped, nil
}

func (m *Memory) ListSatellites(ctx context.Context, tenantID, region, cursor string, limit int) ([]model.SatelliteOut, string, error) {
    m.mu.Lock(); defer m.mu.Unlock()
    list := m.sats[tenantID]
    start := 0
    if cursor != "" {
        for i := range list {
            if list[i].ID == cursor { start = i + 1; break }
        }
    }
    if limit <= 0 { limit = 100 }
    out := []model.SatelliteOut{}
    var next string
    for i := start; i < len(list) && len(out) < limit; i++ {
        if region == "" || region == "All" || list[i].Region == region { out = append(out, list[i]) }
        next = list[i].ID
    }
    if len(out) < limit { next = "" }
    return out, next, nil
}

func (m *Memory) DeleteSatellites(ctx context.Context, tenantID string) (int, error) {
    m.mu.Lock(); defer m.mu.Unlock()
    n := len(m.sats[tenantID])
    delete(m.sats, tenantID)
    return n, nil
}

func (m *Memory) GetPlannerConfig(ctx context.Context, tenantID string) (map[string]any, error) {
    m.mu.Lock(); defer m.mu.Unlock()
    if cfg, ok := m.plannerCfg[tenantID]; ok { return cfg, nil }
    return nil, nil
}

func (m *Memory) SavePlannerConfig(ctx context.Context, tenantID string, cfg map[string]any) error {
    m.mu.Lock(); defer m.mu.Unlock()
    m.plannerCfg[tenantID] = cfg
    return nil
}

func (m *Memory) SaveCoverageRun(ctx context.Context, run model.CoverageRun) error {
    m.mu.Lock(); defer m.mu.Unlock()
    m.runs[run.TenantID] = append(m.runs[run.TenantID], run)
    return nil
}

func (m *Memory) ListCoverageRuns(ctx context.Context, tenantID, region, algo string, limit int) ([]model.CoverageRun, error) {
    m.mu.Lock(); defer m.mu.Unlock()
    if limit <= 0 { limit = 100 }
    list := m.runs[tenantID]
    out := []model.CoverageRun{}
    // newest first
    for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
        r := list[i]
        if region != "" && r.Region != region { continue }
        if algo != "" && r.Algorithm != algo { continue }
        out = append(out, r)
    }
    return out, nil
}

func (m *Memory) CreateSubscription(ctx context.Context, req model.SubscriptionRequest) (model.Subscription, error) {
    m.mu.Lock(); defer m.mu.Unlock()
    sub := model.Subscription{ID: uuid.New().String(), TenantID: req.TenantID, URL: req.URL, Events: req.Events, Secret: req.Secret}
    m.subs[req.TenantID] = append(m.subs[req.TenantID], sub)
    return sub, nil
}

func (m *Memory) GetSubscriptionsForEvent(ctx context.Context, tenantID, eventType string) ([]model.Subscription, error) {
    m.mu.Lock(); defer m.mu.Unlock()
    out := []model.Subscription{}
    for _, s := range m.subs[tenantID] {
        for _, ev := range s.Events {
            if ev == eventType || ev == "*" { out = append(out, s); break }
        }
    }
    return out, nil
}

func (m *Memory) ListSubscriptions(ctx context.Context, tenantID, cursor string, limit int) ([]model.Subscription, string, error) {
    m.mu.Lock(); defer m.mu.Unlock()
    list := m.subs[tenantID]
    start := 0
    if cursor != "" {
        for i := range list {
            if list[i].ID == cursor { start = i + 1; break }
        }
    }
    if limit <= 0 { limit = 100 }
    out := []model.Subscription{}
    var next string
    for i := start; i < len(list) && len(out) < limit; i++ {
        out = append(out, list[i])
        next = list[i].ID
    }
    if len(out) < limit { next = "" }
    return out, next, nil
}

func (m *Memory) DeleteSubscription(ctx context.Context, tenantID, id string) error {
    m.mu.Lock(); defer m.mu.Unlock()
    list := m.subs[tenantID]
    out := make([]model.Subscription, 0, len(list))
    found := false
    for _, s := range list {
        if s.ID == id { found = true; continue }
        out = append(out, s)
    }
    if !found { return ErrNotFound }
    m.subs[tenantID] = out
    return nil
}

// Webhook deliveries
func (m *Memory) EnqueueWebhook(ctx context.Context, tenantID, subscriptionID, eventType, url, secret string, payload []byte) (string, error) {
    m.mu.Lock(); defer m.mu.Unlock()
    id := uuid.New().String()
    d := &memDelivery{WebhookDelivery: WebhookDelivery{ID: id, TenantID: tenantID, SubscriptionID: subscriptionID, EventType: eventType, URL: url, Secret: secret, Payload: payload, Status: "pending", Attempts: 0}, NextAttemptAt: time.Now()}
    m.deliveries[id] = d
    m.deliveriesByTenant[tenantID] = append(m.deliveriesByTenant[tenantID], id)
    return id, nil
}

func (m *Memory) FetchDueWebhookDeliveries(ctx context.Context, limit int) ([]WebhookDelivery, error) {
    m.mu.Lock(); defer m.mu.Unlock()
    now := time.Now()
    out := []WebhookDelivery{}
    for _, id := range m.iterDeliveryIDs() {
        d := m.deliveries[id]
        if d == nil { continue }
        if (d.Status == "pending" || d.Status == "retry") && !d.NextAttemptAt.After(now) {
            out = append(out, d.WebhookDelivery)
            if limit > 0 && len(out) >= limit { break }
        }
    }
    return out, nil
}

func (m *Memory) MarkWebhookDelivery(ctx context.Context, id string, success bool, nextAttemptAt *time.Time, lastError string, responseCode int, latencyMs int) error {
    m.mu.Lock(); defer m.mu.Unlock()
    d := m.deliveries[id]
    if d == nil { return nil }
    d.Attempts++
    d.ResponseCode = responseCode
    d.LatencyMs = latencyMs
    if success {
        d.Status = "delivered"
        now := time.Now()
        d.DeliveredAt = &now
    } else {
        d.Status = "retry"
        d.LastError = lastError
        if nextAttemptAt != nil { d.NextAttemptAt = *nextAttemptAt } else { d.NextAttemptAt = time.Now().Add(1 * time.Minute) }
    }
    return nil
}

func (m *Memory) FailWebhookDelivery(ctx context.Context, id string, lastError string, responseCode int, latencyMs int) error {
    m.mu.Lock(); defer m.mu.Unlock()
    d := m.deliveries[id]
    if d != nil {
        d.Status = "failed"
        d.LastError = lastError
        d.ResponseCode = responseCode
        d.LatencyMs = latencyMs
    }
    return nil
}

func (m *Memory) ListWebhookDeliveries(ctx context.Context, tenantID, status, cursor string, limit int) ([]map[string]any, string, error) {
    m.mu.Lock(); defer m.mu.Unlock()
    out := []map[string]any{}
    ids := m.deliveriesByTenant[tenantID]
    for _, id := range ids {
        d := m.deliveries[id]
        if d == nil { continue }
        if status == "" || d.Status == status {
            item := map[string]any{"id": d.ID, "eventType": d.EventType, "status": d.Status, "attempts": d.Attempts, "url": d.URL}
            if !d.NextAttemptAt.IsZero() { item["nextAttemptAt"] = d.NextAttemptAt }
            if d.LastError != "" { item["lastError"] = d.LastError }
            out = append(out, item)
        }
    }
    return out, "", nil
}

func (m *Memory) RetryWebhookDelivery(ctx context.Context, tenantID, id string) error {
    m.mu.Lock(); defer m.mu.Unlock()
    d := m.deliveries[id]
    if d != nil && d.TenantID == tenantID {
        d.Status = "pending"
        d.NextAttemptAt = time.Now()
    }
    return nil
}

// helper: iterate delivery IDs by tenant order
func (m *Memory) iterDeliveryIDs() []string {
    ids := []string{}
    for _, lst := range m.deliveriesByTenant {
        ids = append(ids, lst...)
    }
    return ids
}
