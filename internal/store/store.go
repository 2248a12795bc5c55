package store

import (
    "context"
    "errors"
    "time"

    "satcover/internal/model"
)

// Store is the persistence interface used by the API server: the
// satellite registry, planner configuration, coverage run history,
// webhook subscriptions and the delivery queue.
type Store interface {
    // Satellite registry
    CreateSatellites(ctx context.Context, tenantID string, sats []model.SatelliteIn) (importID string, created, skipped int, err error)
    ListSatellites(ctx context.Context, tenantID, region, cursor string, limit int) (items []model.SatelliteOut, nextCursor string, err error)
    DeleteSatellites(ctx context.Context, tenantID string) (removed int, err error)

    // Planner config per tenant
    GetPlannerConfig(ctx context.Context, tenantID string) (map[string]any, error)
    SavePlannerConfig(ctx context.Context, tenantID string, cfg map[string]any) error

    // Coverage run history
    SaveCoverageRun(ctx context.Context, run model.CoverageRun) error
    ListCoverageRuns(ctx context.Context, tenantID, region, algo string, limit int) ([]model.CoverageRun, error)

    // Subscriptions
    CreateSubscription(ctx context.Context, req model.SubscriptionRequest) (model.Subscription, error)
    GetSubscriptionsForEvent(ctx context.Context, tenantID, eventType string) ([]model.Subscription, error)
    ListSubscriptions(ctx context.Context, tenantID, cursor string, limit int) ([]model.Subscription, string, error)
    DeleteSubscription(ctx context.Context, tenantID, id string) error

    // Webhook deliveries
    EnqueueWebhook(ctx context.Context, tenantID, subscriptionID, eventType, url, secret string, payload []byte) (string, error)
    FetchDueWebhookDeliveries(ctx context.Context, limit int) ([]WebhookDelivery, error)
    MarkWebhookDelivery(ctx context.Context, id string, success bool, nextAttemptAt *time.Time, lastError string, responseCode int, latencyMs int) error
    FailWebhookDelivery(ctx context.Context, id string, lastError string, responseCode int, latencyMs int) error
    ListWebhookDeliveries(ctx context.Context, tenantID, status, cursor string, limit int) ([]map[string]any, string, error)
    RetryWebhookDelivery(ctx context.Context, tenantID, id string) error
}

var ErrNotFound = errors.New("not found")
