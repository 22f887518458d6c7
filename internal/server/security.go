package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/osse101/FerretBot_Go/internal/logger"
)

// RateLimits bounds per-address traffic within a fixed window
type RateLimits struct {
	Window          time.Duration
	MaxRequests     int
	FailedAuthAlert int
}

// DefaultRateLimits suits a single bot instance behind one proxy
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Window:          DefaultRateWindow,
		MaxRequests:     DefaultRateMaxRequests,
		FailedAuthAlert: DefaultFailedAuthAlert,
	}
}

// ActivityMonitor counts requests and failed logins per client address.
// Counters are dropped wholesale when the window elapses.
type ActivityMonitor struct {
	limits RateLimits
	now    func() time.Time

	mu          sync.Mutex
	windowStart time.Time
	requests    map[string]int
	failedAuth  map[string]int
}

// NewActivityMonitor creates a monitor enforcing limits
func NewActivityMonitor(limits RateLimits) *ActivityMonitor {
	m := &ActivityMonitor{limits: limits, now: time.Now}
	m.requests = make(map[string]int)
	m.failedAuth = make(map[string]int)
	return m
}

// Allow records a request from ip and reports whether it is within the limit
func (m *ActivityMonitor) Allow(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rollWindow()
	m.requests[ip]++
	count := m.requests[ip]
	if count <= m.limits.MaxRequests {
		return true
	}
	if (count-m.limits.MaxRequests)%rateLimitedLogEveryNth == 1 {
		slog.Warn(LogMsgRateLimited, "ip", ip, "count", count, "window", m.limits.Window)
	}
	return false
}

// FailedAuth records a rejected API key from ip
func (m *ActivityMonitor) FailedAuth(ip string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rollWindow()
	m.failedAuth[ip]++
	if count := m.failedAuth[ip]; count >= m.limits.FailedAuthAlert {
		slog.Warn(LogMsgRepeatedAuthFail, "ip", ip, "count", count)
	}
}

func (m *ActivityMonitor) requestCount(ip string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[ip]
}

// rollWindow must be called with mu held. The first call anchors the window.
func (m *ActivityMonitor) rollWindow() {
	now := m.now()
	if m.windowStart.IsZero() {
		m.windowStart = now
		return
	}
	if now.Sub(m.windowStart) <= m.limits.Window {
		return
	}
	m.windowStart = now
	clear(m.requests)
	clear(m.failedAuth)
}

// RequireAPIKey rejects requests outside PublicPaths that lack the API key
func RequireAPIKey(apiKey string, trustedProxies []string, monitor *ActivityMonitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hasPathPrefix(r.URL.Path, PublicPaths) {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				ip := clientIP(r, trustedProxies)
				monitor.FailedAuth(ip)
				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", provided != "",
					"ip", ip)
				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit answers 429 once an address exceeds the monitor's limit
func RateLimit(trustedProxies []string, monitor *ActivityMonitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !monitor.Allow(clientIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LimitBody caps request bodies at maxBytes
func LimitBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecureHeaders sets response headers for a JSON-only API
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set(HeaderContentType, HeaderValueNoSniff)
		h.Set(HeaderFrameOptions, HeaderValueDeny)
		h.Set(HeaderReferrerPolicy, HeaderValueNoReferrer)
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the connecting address. X-Forwarded-For is honoured only
// when the connection comes from a trusted proxy, and then only its last hop.
func clientIP(r *http.Request, trustedProxies []string) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}
	if !slices.Contains(trustedProxies, remote) {
		return remote
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remote
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

func hasPathPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
