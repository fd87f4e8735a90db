package ratelimit

import (
    "sync"

    "golang.org/x/time/rate"
)

// Limiter is a keyed token-bucket limiter. Buckets are created lazily
// with the capacity and refill rate of the first Allow call on the key.
type Limiter struct {
    mu sync.Mutex
    m  map[string]*rate.Limiter
}

func New() *Limiter { return &Limiter{m: make(map[string]*rate.Limiter)} }

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string, capacity, refillPerSec float64) bool {
    l.mu.Lock()
    b, ok := l.m[key]
    if !ok {
        b = rate.NewLimiter(rate.Limit(refillPerSec), int(capacity))
        l.m[key] = b
    }
    l.mu.Unlock()
    return b.Allow()
}
