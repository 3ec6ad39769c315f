package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/M-Abdullah-Q/e2ee-backend/internal/api/http/response"
	"github.com/M-Abdullah-Q/e2ee-backend/internal/logger"
)

// limiterIdleTTL is how long an idle client's bucket is kept.
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a token bucket per client IP.
type RateLimit struct {
	limit  rate.Limit
	burst  int
	logger *logger.Logger
	now    func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

// NewRateLimit allows rps requests per second per client with the given burst.
func NewRateLimit(rps float64, burst int, logger *logger.Logger) *RateLimit {
	if burst < 1 {
		burst = 1
	}
	return &RateLimit{
		limit:   rate.Limit(rps),
		burst:   burst,
		logger:  logger,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

// Handle rejects requests over the limit with 429.
func (m *RateLimit) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !m.allow(ip) {
			m.logger.Warn("Rate limit: request rejected", "ip", ip, "path", r.URL.Path)
			response.JSON(w, http.StatusTooManyRequests, response.ErrorBody{Error: "Too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *RateLimit) allow(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) > limiterIdleTTL {
		for key, c := range m.clients {
			if now.Sub(c.lastSeen) > limiterIdleTTL {
				delete(m.clients, key)
			}
		}
		m.lastSweep = now
	}

	c, ok := m.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.clients[ip] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
