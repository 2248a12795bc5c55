package integrations

import "satcover/internal/model"

// FeedAdapter defines the minimal interface for external ephemeris or
// schedule feeds that produce satellite visibility windows.
type FeedAdapter interface {
    Name() string
    Authenticate(cfg map[string]any) (AuthState, error)
    FetchWindows(since string, cursor string) (WindowBatch, error)
    Parse(raw []byte) ([]model.SatelliteIn, error)
}

type AuthState struct {
    Method string
    Token  string
}

type WindowBatch struct {
    Windows []model.SatelliteIn
    Cursor  string
}
