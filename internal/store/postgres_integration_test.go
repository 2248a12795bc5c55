//go:build postgres_integration

package store

import (
    "os"
    "testing"

    "satcover/internal/model"
)

func TestPostgresConnectivityAndMigrate(t *testing.T) {
    dsn := os.Getenv("DATABASE_URL")
    if dsn == "" { t.Skip("DATABASE_URL not set; skipping integration test") }
    p, err := NewPostgres(dsn)
    if err != nil { t.Fatalf("NewPostgres: %v", err) }
    if err := p.Ping(t.Context()); err != nil { t.Fatalf("Ping: %v", err) }
    if err := p.MigrateDir("../../db/migrations"); err != nil { t.Fatalf("MigrateDir: %v", err) }
    // Try a simple round trip
    if _, _, _, err := p.CreateSatellites(t.Context(), "t_demo", []model.SatelliteIn{{Name: "Probe-IT", Start: 0, End: 1, Region: "Test"}}); err != nil {
        t.Fatalf("CreateSatellites: %v", err)
    }
    if _, _, err := p.ListSatellites(t.Context(), "t_demo", "Test", "", 1); err != nil { t.Fatalf("ListSatellites: %v", err) }
    if _, err := p.DeleteSatellites(t.Context(), "t_demo"); err != nil { t.Fatalf("DeleteSatellites: %v", err) }
}
