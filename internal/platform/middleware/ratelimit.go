package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitWindow is the fixed window spec.md §5 requires: 60 requests per
// 60 seconds, tracked per client IP.
const (
	RateLimitWindow = 60 * time.Second
	RateLimitMax    = 60
)

// ipWindow tracks one client's request count within the current window.
type ipWindow struct {
	windowStart time.Time
	count       int
}

// IPRateLimiter is a process-wide, mutex-guarded fixed-window limiter keyed
// by client IP. A single request past RateLimitWindow's end for a given IP
// resets that IP's window; a lazy sweep on the bucket map as a whole evicts
// entries that have been stale for longer than the window, so idle clients
// do not accumulate forever.
type IPRateLimiter struct {
	mu       sync.Mutex
	windows  map[string]*ipWindow
	lastScan time.Time
}

// NewIPRateLimiter creates an empty limiter.
func NewIPRateLimiter() *IPRateLimiter {
	return &IPRateLimiter{
		windows:  make(map[string]*ipWindow),
		lastScan: time.Now(),
	}
}

// Allow records one request from ip and reports whether it falls within the
// window's limit. When it does not, the returned retryAfter is always 60.
func (l *IPRateLimiter) Allow(ip string) (allowed bool, retryAfter int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sweep(now)

	w, ok := l.windows[ip]
	if !ok || now.Sub(w.windowStart) >= RateLimitWindow {
		l.windows[ip] = &ipWindow{windowStart: now, count: 1}
		return true, 0
	}

	w.count++
	if w.count > RateLimitMax {
		return false, 60
	}
	return true, 0
}

// sweep evicts windows that have already closed, i.e. that started at
// least RateLimitWindow ago. It is
// triggered lazily, at most once per window, from Allow — never by a
// background goroutine — keeping the limiter free of any lifecycle beyond
// the requests that drive it.
func (l *IPRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastScan) < RateLimitWindow {
		return
	}
	l.lastScan = now
	for ip, w := range l.windows {
		if now.Sub(w.windowStart) >= RateLimitWindow {
			delete(l.windows, ip)
		}
	}
}

// RateLimit returns Echo middleware enforcing the 60-request/60-second
// per-IP window. It is a contract-only component per spec.md §1: it exists
// to satisfy the §6 status-code contract (429 with Retry-After: 60), not as
// core engineering substance.
func RateLimit(limiter *IPRateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			allowed, retryAfter := limiter.Allow(ip)
			if !allowed {
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
