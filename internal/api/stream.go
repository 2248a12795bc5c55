package api

import (
    "encoding/json"
    "fmt"
    "net/http"
    "time"

    "github.com/gorilla/websocket"
)

// CoverageStreamHandler handles GET /v1/coverage/stream: an SSE feed of
// run events for the caller's tenant.
func (s *Server) CoverageStreamHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    if s.Limits != nil && !s.Limits.allow(clientKey(r)) {
        writeProblem(w, http.StatusTooManyRequests, "Rate Limited", "too many stream requests", r.URL.Path)
        return
    }
    _, tenant := s.withTenant(r)
    flusher, ok := w.(http.Flusher)
    if !ok { writeProblem(w, 500, "Streaming unsupported", "", r.URL.Path); return }
    w.Header().Set("Content-Type", "text/event-stream")
    w.Header().Set("Cache-Control", "no-cache")
    w.Header().Set("Connection", "keep-alive")
    ch := s.Broker.Subscribe(tenant)
    defer s.Broker.Unsubscribe(tenant, ch)
    // initial heartbeat
    fmt.Fprintf(w, "event: heartbeat\n")
    fmt.Fprintf(w, "data: {\"tenantId\":\"%s\",\"ts\":\"%s\"}\n\n", tenant, time.Now().Format(time.RFC3339))
    flusher.Flush()
    notify := r.Context().Done()
    for {
        select {
        case <-notify:
            return
        case evt := <-ch:
            b, _ := json.Marshal(evt.Data)
            fmt.Fprintf(w, "event: %s\n", evt.Type)
            fmt.Fprintf(w, "data: %s\n\n", string(b))
            flusher.Flush()
        case <-time.After(15 * time.Second):
            fmt.Fprintf(w, "event: heartbeat\n")
            fmt.Fprintf(w, "data: {\"tenantId\":\"%s\",\"ts\":\"%s\"}\n\n", tenant, time.Now().Format(time.RFC3339))
            flusher.Flush()
        }
    }
}

var upgrader = websocket.Upgrader{CheckOrigin: func(_ *http.Request) bool { return true }}

type wsMessage struct {
    Type    string          `json:"type"`
    Payload json.RawMessage `json:"payload,omitempty"`
}

// CoverageWSHandler handles GET /v1/coverage/ws: run events over a
// WebSocket, with ping/pong keepalive.
func (s *Server) CoverageWSHandler(w http.ResponseWriter, r *http.Request) {
    _, tenant := s.withTenant(r)
    conn, err := upgrader.Upgrade(w, r, nil)
    if err != nil {
        return
    }
    defer func() { _ = conn.Close() }()

    conn.SetReadLimit(1 << 20)
    _ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
    conn.SetPongHandler(func(string) error { _ = conn.SetReadDeadline(time.Now().Add(60 * time.Second)); return nil })

    ch := s.Broker.Subscribe(tenant)
    done := make(chan struct{})
    pongs := make(chan struct{}, 4)

    // Fanout goroutine: broker events, keepalive pings and pong
    // replies. The connection allows a single concurrent writer, so
    // every write happens here.
    go func() {
        ticker := time.NewTicker(20 * time.Second)
        defer ticker.Stop()
        for {
            select {
            case <-done:
                return
            case <-pongs:
                if err := conn.WriteJSON(wsMessage{Type: "pong"}); err != nil {
                    return
                }
            case evt, ok := <-ch:
                if !ok { return }
                payload, _ := json.Marshal(evt.Data)
                if err := conn.WriteJSON(wsMessage{Type: evt.Type, Payload: payload}); err != nil {
                    return
                }
            case <-ticker.C:
                if err := conn.WriteJSON(wsMessage{Type: "ping"}); err != nil {
                    return
                }
            }
        }
    }()

    // Read loop keeps the deadline fresh and forwards ping requests to
    // the writer.
    for {
        var msg wsMessage
        if err := conn.ReadJSON(&msg); err != nil {
            break
        }
        _ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
        if msg.Type == "ping" {
            select { case pongs <- struct{}{}: default: }
        }
    }
    close(done)
    s.Broker.Unsubscribe(tenant, ch)
}
