package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"gymgate/internal/api"
)

// clientLimiters holds one token bucket per client IP. Front-desk kiosks
// hammer the check-in endpoint from a handful of addresses, so the map
// stays small; stale entries are swept out after idleTTL.
type clientLimiters struct {
	mu      sync.Mutex
	buckets map[string]*bucketEntry
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
}

type bucketEntry struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

func newClientLimiters(rps float64, burst int, idleTTL time.Duration) *clientLimiters {
	cl := &clientLimiters{
		buckets: make(map[string]*bucketEntry),
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
	}
	go cl.sweep()
	return cl
}

func (cl *clientLimiters) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-cl.idleTTL)
		cl.mu.Lock()
		for ip, e := range cl.buckets {
			if e.lastSeen.Before(cutoff) {
				delete(cl.buckets, ip)
			}
		}
		cl.mu.Unlock()
	}
}

func (cl *clientLimiters) allow(ip string) bool {
	cl.mu.Lock()
	e, ok := cl.buckets[ip]
	if !ok {
		e = &bucketEntry{bucket: rate.NewLimiter(cl.limit, cl.burst)}
		cl.buckets[ip] = e
	}
	e.lastSeen = time.Now()
	cl.mu.Unlock()
	return e.bucket.Allow()
}

// RateLimitMiddleware rejects clients exceeding rps sustained requests
// per second (with the given burst) per source IP.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	limiters := newClientLimiters(rps, burst, 3*time.Minute)

	return func(c *gin.Context) {
		if !limiters.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				api.ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
