package server

import (
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// statusWriter captures the response status for request logging.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// requestLogging logs one entry per request.
func requestLogging(log logrus.FieldLogger, clients clientResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			fields := logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   sw.status,
				"duration": time.Since(start).String(),
				"client":   clients.clientIP(r),
			}
			if c := sw.Header().Get("X-Cache"); c != "" {
				fields["cache"] = c
			}
			entry := log.WithFields(fields)
			switch {
			case sw.status >= 500:
				entry.Error("request")
			case sw.status == http.StatusTooManyRequests:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
		})
	}
}

// limiterIdle is how long a client's limiter survives without requests.
const limiterIdle = 10 * time.Minute

// rateLimiter keeps one token bucket per client.
type rateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *cache.Cache
	clients  clientResolver
}

func newRateLimiter(perSecond float64, burst int, clients clientResolver) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: cache.New(limiterIdle, limiterIdle),
		clients:  clients,
	}
}

func (rl *rateLimiter) get(client string) *rate.Limiter {
	if l, ok := rl.limiters.Get(client); ok {
		rl.limiters.SetDefault(client, l)
		return l.(*rate.Limiter)
	}
	l := rate.NewLimiter(rl.limit, rl.burst)
	if err := rl.limiters.Add(client, l, cache.DefaultExpiration); err != nil {
		// Another request created it first.
		if existing, ok := rl.limiters.Get(client); ok {
			return existing.(*rate.Limiter)
		}
	}
	return l
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", strconv.FormatFloat(float64(rl.limit), 'f', -1, 64))
		if !rl.get(rl.clients.clientIP(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientResolver identifies clients. Forwarding headers are honoured only
// when the connecting peer is a trusted proxy.
type clientResolver struct {
	trusted []netip.Prefix
}

func (c clientResolver) trusts(host string) bool {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range c.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// clientIP returns the peer address, or for a trusted peer the nearest
// X-Forwarded-For hop that is not itself a trusted proxy.
func (c clientResolver) clientIP(r *http.Request) string {
	peer := remoteHost(r)
	if !c.trusts(peer) {
		return peer
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop != "" && (!c.trusts(hop) || i == 0) {
				return hop
			}
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return peer
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
