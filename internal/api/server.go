package api

import (
    "context"
    "net/http"
    "strings"

    "satcover/internal/auth"
    "satcover/internal/config"
    "satcover/internal/cover"
    "satcover/internal/store"
    "satcover/internal/webhooks"
)

type Server struct {
    Store  store.Store
    Pub    *webhooks.Publisher
    Auth   *auth.Verifier
    Broker EventBroker
    Limits *clientLimiter
    Cfg    config.Config
}

// NewServer creates a Server from loaded config. With no database URL
// the in-memory store is used; with no Redis URL events fan out
// in-process only.
func NewServer(cfg config.Config) (*Server, error) {
    var s store.Store
    if strings.TrimSpace(cfg.DatabaseURL) == "" {
        s = store.NewMemory()
    } else {
        sp, err := store.NewPostgres(cfg.DatabaseURL)
        if err != nil {
            return nil, err
        }
        // Run migrations (dev helper)
        _ = sp.MigrateDir("db/migrations")
        s = sp
    }
    var broker EventBroker
    if cfg.RedisURL != "" {
        if rb, err := NewRedisBroker(cfg.RedisURL); err == nil { broker = rb } else { broker = NewBroker() }
    } else {
        broker = NewBroker()
    }
    return &Server{
        Store:  s,
        Pub:    webhooks.NewPublisher(s),
        Auth:   auth.NewVerifier(cfg.AuthMode),
        Broker: broker,
        Limits: newClientLimiter(cfg.RateRPS, cfg.RateBurst),
        Cfg:    cfg,
    }, nil
}

// defaultWindow is the target window when neither the request nor the
// tenant planner config names one. A zero-value Cfg falls back to the
// 24 hour horizon.
func (s *Server) defaultWindow() cover.Interval {
    win := cover.Interval{Start: s.Cfg.WindowStart, End: s.Cfg.WindowEnd}
    if win.End <= win.Start { win = cover.Interval{Start: 0, End: 24} }
    return win
}

func (s *Server) withTenant(r *http.Request) (context.Context, string) {
    // For now, get tenant from header; in production decode from JWT.
    tenant := r.Header.Get("X-Tenant-Id")
    if tenant == "" { tenant = "t_demo" }
    ctx := context.WithValue(r.Context(), ctxKeyTenant{}, tenant)
    return ctx, tenant
}

type ctxKeyTenant struct{}

// NewWebhookWorker creates a background worker for webhook deliveries.
func (s *Server) NewWebhookWorker() *webhooks.Worker {
    return webhooks.NewWorker(s.Store, s.Cfg.WebhookMaxAttempts)
}
