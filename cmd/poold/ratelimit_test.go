package main

import (
	"testing"
	"time"
)

func TestRateLimiterAllowWeighsCostAgainstBudget(t *testing.T) {
	rl := NewRateLimiter(10, 0, time.Hour)

	if !rl.Allow(SpendRequestCost) {
		t.Fatal("first spend-cost request should be allowed against a full bucket")
	}
	if !rl.Allow(SpendRequestCost) {
		t.Fatal("second spend-cost request should still fit in a 10-token bucket")
	}
	if rl.Allow(SpendRequestCost) {
		t.Fatal("third spend-cost request should exceed the remaining budget")
	}
	if rl.Allow(AppendRequestCost) {
		t.Fatal("even a cheap append-cost request should be rejected once tokens run out")
	}
}

func TestRelayerRateLimiterSuspendsOnRepeatedInvalidProofs(t *testing.T) {
	rrl := NewRelayerRateLimiter(1000, 1000, time.Hour)
	const relayer = "relayer-a"

	for i := 0; i < invalidProofSuspensionThreshold; i++ {
		rrl.RecordInvalidProof(relayer)
	}

	if !rrl.Suspended(relayer) {
		t.Fatal("relayer should be suspended after crossing the invalid-proof threshold")
	}
	if rrl.Allow(relayer, AppendRequestCost) {
		t.Fatal("a suspended relayer must be rejected even with tokens available")
	}
}

func TestRelayerRateLimiterValidProofClearsStreak(t *testing.T) {
	rrl := NewRelayerRateLimiter(1000, 1000, time.Hour)
	const relayer = "relayer-b"

	for i := 0; i < invalidProofSuspensionThreshold-1; i++ {
		rrl.RecordInvalidProof(relayer)
	}
	rrl.RecordValidProof(relayer)

	for i := 0; i < invalidProofSuspensionThreshold-1; i++ {
		rrl.RecordInvalidProof(relayer)
	}
	if rrl.Suspended(relayer) {
		t.Fatal("a valid proof should reset the streak so it takes a fresh run to suspend")
	}
}

func TestRelayerRateLimiterIsolatesBudgetsPerRelayer(t *testing.T) {
	rrl := NewRelayerRateLimiter(1, 0, time.Hour)

	if !rrl.Allow("relayer-a", AppendRequestCost) {
		t.Fatal("relayer-a should get its own fresh bucket")
	}
	if rrl.Allow("relayer-a", AppendRequestCost) {
		t.Fatal("relayer-a should be out of tokens on its second request")
	}
	if !rrl.Allow("relayer-b", AppendRequestCost) {
		t.Fatal("relayer-b must not be affected by relayer-a's exhausted bucket")
	}
}
