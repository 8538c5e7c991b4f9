// Copyright (C) Pagoda Box, Inc - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential

package gateway

import (
	"sync"
	"time"
)

// limiter, when set, gates every request by client IP
var limiter *TokenBucket

// EnableRateLimit installs a token bucket in front of the handler.
// resetTime is how long a fully drained bucket takes to refill.
func EnableRateLimit(resetTime time.Duration, capacity int) {
	limiter = NewTokenBucket(resetTime, capacity)
}

// DisableRateLimit removes the bucket; requests pass unchecked.
func DisableRateLimit() {
	limiter = nil
}

// bucketState tracks state for a single client IP
type bucketState struct {
	current    int
	lastRefill time.Time
}

type TokenBucket struct {
	capacity     int
	buckets      map[string]*bucketState
	mu           sync.Mutex
	tokensPerSec float64
}

// NewTokenBucket creates a per-client-IP token bucket rate limiter.
func NewTokenBucket(resetTime time.Duration, capacity int) *TokenBucket {
	if resetTime == 0 {
		resetTime = 5 * time.Second
	}
	if capacity == 0 {
		capacity = 10
	}

	tb := &TokenBucket{
		capacity:     capacity,
		buckets:      make(map[string]*bucketState),
		tokensPerSec: float64(capacity) / resetTime.Seconds(),
	}

	go tb.cleanupTask()

	return tb
}

// Process takes one token from the client's bucket, reporting false when the
// bucket is empty and the request should be rejected.
func (tb *TokenBucket) Process(ip string) bool {
	if ip == "" {
		return false
	}
	tb.mu.Lock()
	defer tb.mu.Unlock()

	bucket, exists := tb.buckets[ip]
	if !exists {
		bucket = &bucketState{
			current:    tb.capacity,
			lastRefill: time.Now(),
		}
		tb.buckets[ip] = bucket
	}
	tb.refill(bucket)
	if bucket.current > 0 {
		bucket.current--
		return true
	}
	return false
}

func (tb *TokenBucket) refill(bucket *bucketState) {
	now := time.Now()
	elapsed := now.Sub(bucket.lastRefill).Seconds()

	tokensToAdd := int(elapsed * tb.tokensPerSec)
	if tokensToAdd > 0 {
		bucket.current += tokensToAdd
		if bucket.current > tb.capacity {
			bucket.current = tb.capacity
		}
		bucket.lastRefill = now
	}
}

// cleanupTask evicts buckets idle long enough to be full anyway
func (tb *TokenBucket) cleanupTask() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	inactivityTime := 10 * time.Minute
	for range ticker.C {
		tb.mu.Lock()
		now := time.Now()
		for ip, bucket := range tb.buckets {
			if now.Sub(bucket.lastRefill) > inactivityTime {
				delete(tb.buckets, ip)
			}
		}
		tb.mu.Unlock()
	}
}
