package http

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/veritas/log"
	"golang.org/x/time/rate"
)

// Default per-IP request rate. Detection and humanize calls are slow and
// metered upstream, so the server accepts far fewer than a typical API.
const (
	DefaultRateLimitPerSecond = 5
	DefaultRateLimitBurst     = 20
)

// visitorTTL is how long an idle visitor's limiter is kept.
const visitorTTL = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds per-IP token buckets.
type RateLimiter struct {
	perSecond float64
	burst     int

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewRateLimiter returns a limiter allowing perSecond requests per IP with
// the given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		perSecond: perSecond,
		burst:     burst,
		visitors:  make(map[string]*visitor),
	}
}

// getVisitor returns the limiter for identifier, creating it on first sight.
func (rl *RateLimiter) getVisitor(identifier string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[identifier]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(rl.perSecond), rl.burst)}
		rl.visitors[identifier] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// cleanup deletes visitors idle for longer than ttl.
func (rl *RateLimiter) cleanup(now time.Time, ttl time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for identifier, v := range rl.visitors {
		if now.Sub(v.lastSeen) > ttl {
			delete(rl.visitors, identifier)
		}
	}
}

// run prunes idle visitors every minute until done is closed.
func (rl *RateLimiter) run(done <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			rl.cleanup(now, visitorTTL)
		}
	}
}

// lookupIP returns the client address of the request, preferring proxy
// headers.
func lookupIP(r *http.Request) string {
	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		parts := strings.Split(forwardedFor, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Limit is a middleware that rejects requests over the per-IP rate.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identifier := lookupIP(r)
		if !rl.getVisitor(identifier).Allow() {
			log.Warnf("too many requests from %s\n", identifier)
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
