// Package http provides the HTTP server, routing, and middleware.
package http

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/tribunatech/casevault/internal/httputil"
)

// CustomLoggerMiddleware logs HTTP requests with the request id attached.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("http request",
			slog.String("request_id", requestid.Get(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}

// StaffAuthMiddleware guards the staff routes. The caller sends the plain
// staff API key in X-Staff-Key; it is verified against the configured
// Argon2id hash. X-Staff-Actor identifies the person for record authorship.
// An empty configured hash disables staff routes entirely.
func StaffAuthMiddleware(staffKeyHash string, logger *slog.Logger) gin.HandlerFunc {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		panic(err)
	}

	return func(c *gin.Context) {
		if staffKeyHash == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.ErrorResponse{
				Error:   "unauthorized",
				Message: "Staff access is not configured",
			})
			return
		}

		key := c.GetHeader("X-Staff-Key")
		ok, err := hasher.Verify([]byte(key), staffKeyHash)
		if err != nil || !ok {
			logger.Warn("staff authentication failed", slog.String("client_ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.ErrorResponse{
				Error:   "unauthorized",
				Message: "Valid credentials are required",
			})
			return
		}

		if actor := c.GetHeader("X-Staff-Actor"); actor != "" {
			c.Set(httputil.StaffActorKey, actor)
		}

		c.Next()
	}
}

// ipRateLimiter keeps one token bucket per client IP.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func (l *ipRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.limiters[ip] = limiter
	}
	return limiter
}

// PortalRateLimitMiddleware rate limits the unauthenticated portal endpoints
// per client IP. Token validation is cheap to request and expensive to brute
// force; the limiter keeps guessing impractical.
func PortalRateLimitMiddleware(requestsPerSec float64, burst int) gin.HandlerFunc {
	limiter := &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(requestsPerSec),
		burst:    burst,
	}

	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.ErrorResponse{
				Error:   "rate_limited",
				Message: "Too many requests",
			})
			return
		}
		c.Next()
	}
}
