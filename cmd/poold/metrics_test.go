package main

import "testing"

func TestGetMetricsSummaryComputesPercentiles(t *testing.T) {
	mc := NewMetricsCollector()
	for i := 1; i <= 100; i++ {
		mc.RecordHistogram(MetricProofVerifyLatency, float64(i), nil)
	}

	summary := mc.GetMetricsSummary()
	histograms := summary["histograms"].(map[string]map[string]float64)
	h, ok := histograms[MetricProofVerifyLatency]
	if !ok {
		t.Fatalf("missing histogram for %s", MetricProofVerifyLatency)
	}
	if h["p50"] < 49 || h["p50"] > 51 {
		t.Fatalf("got p50 %v, want roughly 50", h["p50"])
	}
	if h["p95"] < 94 || h["p95"] > 96 {
		t.Fatalf("got p95 %v, want roughly 95", h["p95"])
	}
}

func TestRecordProofVerificationFeedsLatencyHistogram(t *testing.T) {
	mc := NewMetricsCollector()
	mc.RecordProofVerification(0)
	m := mc.GetMetric(MetricProofVerifyLatency, nil)
	if m == nil {
		t.Fatal("expected a proof verify latency metric after one recording")
	}
	if m.Type != Histogram {
		t.Fatalf("got metric type %s, want %s", m.Type, Histogram)
	}
}
