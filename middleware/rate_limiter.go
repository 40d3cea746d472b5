package middleware

import (
	"net/http"
	"sync"
	"time"

	"roadcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	requestsPerMinute = 200
	limiterIdleAfter  = 10 * time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterRegistry tracks one token bucket per client address and evicts
// buckets for addresses that have gone quiet.
type limiterRegistry struct {
	mu      sync.Mutex
	entries map[string]*ipLimiter
}

func newLimiterRegistry() *limiterRegistry {
	r := &limiterRegistry{entries: make(map[string]*ipLimiter)}
	go r.evictIdle()
	return r
}

func (r *limiterRegistry) get(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[ip]
	if !ok {
		e = &ipLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/requestsPerMinute), requestsPerMinute),
		}
		r.entries[ip] = e
	}
	e.lastSeen = time.Now()
	return e.limiter
}

func (r *limiterRegistry) evictIdle() {
	for range time.Tick(limiterIdleAfter) {
		cutoff := time.Now().Add(-limiterIdleAfter)
		r.mu.Lock()
		for ip, e := range r.entries {
			if e.lastSeen.Before(cutoff) {
				delete(r.entries, ip)
			}
		}
		r.mu.Unlock()
	}
}

var registry = newLimiterRegistry()

// RateLimitMiddleware enforces a per-IP request budget across the whole API.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := clientIP(c)
		if !registry.get(ip).Allow() {
			utils.GetLogger().Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Slow down."})
			return
		}
		c.Next()
	}
}
