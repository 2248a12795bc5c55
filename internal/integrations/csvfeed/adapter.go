// Package csvfeed parses satellite visibility windows from CSV feeds.
// Row format: name,start,end[,cost[,region]] with an optional header row.
package csvfeed

import (
    "bytes"
    "encoding/csv"
    "fmt"
    "io"
    "strconv"
    "strings"

    "satcover/internal/integrations"
    "satcover/internal/model"
)

type Adapter struct{}

func (a Adapter) Name() string { return "csv-feed" }

func (a Adapter) Authenticate(cfg map[string]any) (integrations.AuthState, error) {
    return integrations.AuthState{Method: "none"}, nil
}

func (a Adapter) FetchWindows(since string, cursor string) (integrations.WindowBatch, error) {
    // Push-style feed: windows arrive as request bodies via Parse.
    return integrations.WindowBatch{}, nil
}

func (a Adapter) Parse(raw []byte) ([]model.SatelliteIn, error) {
    rd := csv.NewReader(bytes.NewReader(raw))
    rd.FieldsPerRecord = -1
    rd.TrimLeadingSpace = true
    var out []model.SatelliteIn
    line := 0
    for {
        rec, err := rd.Read()
        if err == io.EOF { break }
        if err != nil { return nil, fmt.Errorf("csv line %d: %w", line+1, err) }
        line++
        if len(rec) < 3 {
            return nil, fmt.Errorf("csv line %d: want name,start,end fields, got %d", line, len(rec))
        }
        if line == 1 && strings.EqualFold(rec[0], "name") {
            continue // header row
        }
        start, err := strconv.ParseFloat(rec[1], 64)
        if err != nil { return nil, fmt.Errorf("csv line %d: start: %w", line, err) }
        end, err := strconv.ParseFloat(rec[2], 64)
        if err != nil { return nil, fmt.Errorf("csv line %d: end: %w", line, err) }
        in := model.SatelliteIn{Name: rec[0], Start: start, End: end}
        if len(rec) > 3 && rec[3] != "" {
            cost, err := strconv.ParseFloat(rec[3], 64)
            if err != nil { return nil, fmt.Errorf("csv line %d: cost: %w", line, err) }
            in.Cost = cost
        }
        if len(rec) > 4 { in.Region = rec[4] }
        out = append(out, in)
    }
    return out, nil
}
