package middleware

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockr/internal/logger"
)

// RequestLogger is a Gin middleware that logs method, path, status code,
// request latency, request ID and session ID (when available).
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	{"level":"info","request_id":"123e...","method":"GET","path":"/api/v1/stock/AAPL","status":200,"latency_ms":15}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		rid, _ := c.Get(RequestIDKey)
		sid, _ := c.Get(SessionIDKey)

		ev := logger.L().Info()
		if status >= http.StatusInternalServerError {
			ev = logger.L().Warn()
		}
		ev.Str("request_id", toString(rid)).
			Str("session_id", toString(sid)).
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// ErrRateLimited is reported in the body of 429 responses.
var ErrRateLimited = errors.New("rate limit exceeded")

// client represents a rate-limited client with request count and last seen timestamp.
type client struct {
	lastSeen time.Time
	count    int
}

// In-memory store for rate limiting, keyed by client IP.
var (
	clients         = make(map[string]*client)
	window          = time.Minute
	limit           = 60
	rateLimiterLock sync.Mutex
)

// RateLimiter limits each client IP to `limit` requests per `window`
// (default: 60 per minute). Every upstream analysis costs one provider
// round trip, so the API routes sit behind it.
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	{"code":"rate_limited","message":"Too many requests","error":"rate limit exceeded",...}
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rateLimiterLock.Lock()
		cl, ok := clients[ip]
		if !ok || now.Sub(cl.lastSeen) > window {
			cl = &client{lastSeen: now, count: 1}
			clients[ip] = cl
		} else {
			cl.count++
			cl.lastSeen = now
		}
		exceeded := cl.count > limit
		rateLimiterLock.Unlock()

		if exceeded {
			AbortWithCode(c, http.StatusTooManyRequests, "rate_limited", "Too many requests", ErrRateLimited)
			return
		}

		c.Next()
	}
}
