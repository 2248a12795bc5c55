package api

import (
    "net"
    "net/http"
    "sync"

    "golang.org/x/time/rate"
)

// clientLimiter hands out one token-bucket limiter per client address.
type clientLimiter struct {
    mu      sync.Mutex
    clients map[string]*rate.Limiter
    rps     rate.Limit
    burst   int
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
    if rps <= 0 { rps = 10 }
    if burst <= 0 { burst = 20 }
    return &clientLimiter{clients: map[string]*rate.Limiter{}, rps: rate.Limit(rps), burst: burst}
}

func (c *clientLimiter) allow(key string) bool {
    c.mu.Lock()
    l := c.clients[key]
    if l == nil {
        l = rate.NewLimiter(c.rps, c.burst)
        c.clients[key] = l
    }
    c.mu.Unlock()
    return l.Allow()
}

func clientKey(r *http.Request) string {
    host, _, err := net.SplitHostPort(r.RemoteAddr)
    if err != nil { return r.RemoteAddr }
    return host
}
