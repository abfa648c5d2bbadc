// ratelimit.go - rate limiting for relayer-submitted Spend requests
package main

import (
	"sync"
	"time"
)

// RateLimiter implements a token bucket whose consumption cost varies per
// call: a caller spends as many tokens as the request actually costs
// instead of always draining exactly one, so a handful of expensive
// requests and a flood of cheap ones are weighed differently against the
// same budget.
type RateLimiter struct {
	mu           sync.Mutex
	tokens       int
	maxTokens    int
	refillRate   int
	lastRefill   time.Time
	refillPeriod time.Duration
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(maxTokens int, refillRate int, refillPeriod time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:       maxTokens,
		maxTokens:    maxTokens,
		refillRate:   refillRate,
		lastRefill:   time.Now(),
		refillPeriod: refillPeriod,
	}
}

// Allow checks whether a request costing cost tokens is allowed, consuming
// them if so. cost must be at least 1; a caller that doesn't care about
// weighting should pass 1.
func (rl *RateLimiter) Allow(cost int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	timeElapsed := now.Sub(rl.lastRefill)
	refillCount := int(timeElapsed / rl.refillPeriod)

	if refillCount > 0 {
		rl.tokens += refillCount * rl.refillRate
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		rl.lastRefill = now
	}

	if rl.tokens >= cost {
		rl.tokens -= cost
		return true
	}
	return false
}

// GetTokens returns the current number of available tokens.
func (rl *RateLimiter) GetTokens() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.tokens
}

// Reset resets the rate limiter to its initial state.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.tokens = rl.maxTokens
	rl.lastRefill = time.Now()
}

// Request costs against a relayer's token bucket. Spend is weighted far
// above Append: Append is a cheap state update, while Spend runs a full
// bn254 pairing check before it can even be rejected for a bad proof, so
// a relayer flooding Spend burns through its budget faster than one
// flooding Append at the same request rate.
const (
	AppendRequestCost = 1
	SpendRequestCost  = 5
)

// invalidProofSuspensionThreshold is how many consecutive rejected proofs
// from one relayer trigger a suspension independent of its token bucket.
// A relayer pacing bad proofs just under the refill rate never exhausts
// its bucket but is still clearly not running a real prover.
const invalidProofSuspensionThreshold = 5

const invalidProofSuspension = 30 * time.Second

// RelayerRateLimiter manages one token bucket per relayer identity,
// gating Spend and Append submissions before they ever reach the
// dispatcher. The relayer request queue itself is out of the core's
// scope; this is the daemon's own defense against a hostile or
// malfunctioning relayer hammering the pairing check.
type RelayerRateLimiter struct {
	limiters       map[string]*RateLimiter
	invalidStreak  map[string]int
	suspendedUntil map[string]time.Time
	mu             sync.RWMutex
	maxTokens      int
	refillRate     int
	refillPeriod   time.Duration
}

// NewRelayerRateLimiter creates a new per-relayer rate limiter.
func NewRelayerRateLimiter(maxTokens int, refillRate int, refillPeriod time.Duration) *RelayerRateLimiter {
	return &RelayerRateLimiter{
		limiters:       make(map[string]*RateLimiter),
		invalidStreak:  make(map[string]int),
		suspendedUntil: make(map[string]time.Time),
		maxTokens:      maxTokens,
		refillRate:     refillRate,
		refillPeriod:   refillPeriod,
	}
}

// Allow checks whether a request of the given cost from a relayer identity
// is allowed, rejecting outright if that relayer is under an active
// invalid-proof suspension regardless of its remaining tokens.
func (rrl *RelayerRateLimiter) Allow(relayerID string, cost int) bool {
	rrl.mu.Lock()
	if until, suspended := rrl.suspendedUntil[relayerID]; suspended {
		if time.Now().Before(until) {
			rrl.mu.Unlock()
			return false
		}
		delete(rrl.suspendedUntil, relayerID)
	}
	limiter, exists := rrl.limiters[relayerID]
	if !exists {
		limiter = NewRateLimiter(rrl.maxTokens, rrl.refillRate, rrl.refillPeriod)
		rrl.limiters[relayerID] = limiter
	}
	rrl.mu.Unlock()

	return limiter.Allow(cost)
}

// RecordInvalidProof tracks a relayer's consecutive VerifyProof failures.
// Crossing the threshold suspends the relayer outright for a cooldown,
// resetting its streak; this is a stronger signal than the token bucket
// alone, which a relayer can stay under just by pacing its requests.
func (rrl *RelayerRateLimiter) RecordInvalidProof(relayerID string) {
	rrl.mu.Lock()
	defer rrl.mu.Unlock()

	rrl.invalidStreak[relayerID]++
	if rrl.invalidStreak[relayerID] >= invalidProofSuspensionThreshold {
		rrl.suspendedUntil[relayerID] = time.Now().Add(invalidProofSuspension)
		rrl.invalidStreak[relayerID] = 0
	}
}

// RecordValidProof clears a relayer's invalid-proof streak; only
// consecutive failures count toward suspension.
func (rrl *RelayerRateLimiter) RecordValidProof(relayerID string) {
	rrl.mu.Lock()
	defer rrl.mu.Unlock()
	delete(rrl.invalidStreak, relayerID)
}

// Suspended reports whether a relayer is currently under an invalid-proof
// suspension.
func (rrl *RelayerRateLimiter) Suspended(relayerID string) bool {
	rrl.mu.RLock()
	defer rrl.mu.RUnlock()
	until, ok := rrl.suspendedUntil[relayerID]
	return ok && time.Now().Before(until)
}

// GetTokens returns the current number of available tokens for a relayer.
func (rrl *RelayerRateLimiter) GetTokens(relayerID string) int {
	rrl.mu.RLock()
	limiter, exists := rrl.limiters[relayerID]
	rrl.mu.RUnlock()

	if !exists {
		return rrl.maxTokens
	}
	return limiter.GetTokens()
}

// Reset resets the rate limiter and invalid-proof streak for one relayer.
func (rrl *RelayerRateLimiter) Reset(relayerID string) {
	rrl.mu.Lock()
	if limiter, exists := rrl.limiters[relayerID]; exists {
		limiter.Reset()
	}
	delete(rrl.invalidStreak, relayerID)
	delete(rrl.suspendedUntil, relayerID)
	rrl.mu.Unlock()
}

// ResetAll resets every relayer's rate limiter and suspension state.
func (rrl *RelayerRateLimiter) ResetAll() {
	rrl.mu.Lock()
	for _, limiter := range rrl.limiters {
		limiter.Reset()
	}
	rrl.invalidStreak = make(map[string]int)
	rrl.suspendedUntil = make(map[string]time.Time)
	rrl.mu.Unlock()
}
