package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterTTL             = 30 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// RateLimiter limits requests per client IP. Idle limiters are dropped by a
// background sweep until Stop is called.
type RateLimiter struct {
	perMinute int
	clock     clockwork.Clock

	mu      sync.Mutex
	entries map[string]*limiterEntry

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewRateLimiter allows perMinute requests per IP with a burst of the same size
func NewRateLimiter(perMinute int, clock clockwork.Clock) *RateLimiter {
	rl := &RateLimiter{
		perMinute: perMinute,
		clock:     clock,
		entries:   make(map[string]*limiterEntry),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Stop ends the background sweep
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
	<-rl.done
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.entries[ip]
	if !ok {
		e = &limiterEntry{
			limiter: rate.NewLimiter(rate.Limit(float64(rl.perMinute)/60), rl.perMinute),
		}
		rl.entries[ip] = e
	}
	e.lastUse = rl.clock.Now()
	return e.limiter
}

func (rl *RateLimiter) cleanup() {
	defer close(rl.done)

	ticker := rl.clock.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.Chan():
			rl.sweep()
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	for ip, e := range rl.entries {
		if now.Sub(e.lastUse) > limiterTTL {
			delete(rl.entries, ip)
		}
	}
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.entries)
}

// Middleware answers 429 once a client IP exceeds its budget
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := rl.limiter(ClientIP(r))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.perMinute))

		if !limiter.AllowN(rl.clock.Now(), 1) {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", "60")
			if strings.HasPrefix(r.URL.Path, "/api/") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"success":false,"message":"Too many submissions. Please slow down."}`))
				return
			}
			http.Error(w, "Too many submissions. Please slow down.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
