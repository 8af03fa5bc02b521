package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/templui/cuidador/internal/ui"
)

// RateLimiter allows limit requests per client within a sliding window.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// Allow records a request from client and reports whether it is within
// the limit. Clients whose requests all left the window are forgotten.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	for c, times := range rl.requests {
		kept := times[:0]
		for _, t := range times {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}
		if len(kept) == 0 {
			delete(rl.requests, c)
			continue
		}
		rl.requests[c] = kept
	}

	if len(rl.requests[client]) >= rl.limit {
		return false
	}
	rl.requests[client] = append(rl.requests[client], now)
	return true
}

// RateLimit guards endpoints that reach outside the app, like placing a
// call. Proxy headers only identify the client when the connection comes
// from one of trusted.
func RateLimit(limit int, window time.Duration, trusted []netip.Prefix) func(http.HandlerFunc) http.HandlerFunc {
	limiter := NewRateLimiter(limit, window)

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			client := clientIP(r, trusted)
			if !limiter.Allow(client) {
				slog.Warn("rate limit exceeded", "client", client, "path", r.URL.Path)
				ui.RenderAlert(w, r, http.StatusTooManyRequests, ui.Alert{
					Title:       "Slow down",
					Description: "Too many requests. Please try again later.",
					Variant:     ui.VariantWarning,
				})
				return
			}
			next(w, r)
		}
	}
}

// clientIP is the socket peer unless that peer is a trusted proxy. Then
// X-Forwarded-For is walked from the right, skipping further trusted hops,
// with X-Real-IP as the fallback.
func clientIP(r *http.Request, trusted []netip.Prefix) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !isTrusted(host, trusted) {
		return host
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if !isTrusted(hop, trusted) || i == 0 {
				return hop
			}
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return host
}

func isTrusted(ip string, trusted []netip.Prefix) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
