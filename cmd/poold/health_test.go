package main

import (
	"errors"
	"testing"
)

func TestCheckHealthDegradesBeforeUnhealthy(t *testing.T) {
	hc := NewHealthChecker("test")
	failing := errors.New("probe failed")
	hc.RegisterComponent("vault", func() error { return failing })

	report := hc.CheckHealth()
	if report.Components[0].Status != Degraded {
		t.Fatalf("got %s after one failure, want %s", report.Components[0].Status, Degraded)
	}
	if report.OverallStatus != Degraded {
		t.Fatalf("got overall %s, want %s", report.OverallStatus, Degraded)
	}
}

func TestCheckHealthFlipsUnhealthyAfterConsecutiveFailures(t *testing.T) {
	hc := NewHealthChecker("test")
	failing := errors.New("probe failed")
	hc.RegisterComponent("vault", func() error { return failing })

	var report *SystemHealth
	for i := 0; i < degradeAfter; i++ {
		report = hc.CheckHealth()
	}
	if report.Components[0].Status != Unhealthy {
		t.Fatalf("got %s after %d consecutive failures, want %s", report.Components[0].Status, degradeAfter, Unhealthy)
	}
}

func TestCheckHealthRecoveryResetsStreak(t *testing.T) {
	hc := NewHealthChecker("test")
	shouldFail := true
	hc.RegisterComponent("vault", func() error {
		if shouldFail {
			return errors.New("probe failed")
		}
		return nil
	})

	for i := 0; i < degradeAfter-1; i++ {
		hc.CheckHealth()
	}
	shouldFail = false
	report := hc.CheckHealth()
	if report.Components[0].Status != Healthy {
		t.Fatalf("got %s after recovery, want %s", report.Components[0].Status, Healthy)
	}

	shouldFail = true
	report = hc.CheckHealth()
	if report.Components[0].Status == Unhealthy {
		t.Fatal("a single failure right after recovery must not immediately flip to unhealthy")
	}
}
