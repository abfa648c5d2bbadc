// metrics.go - metrics collection for the pool daemon
package main

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// MetricType represents the type of metric.
type MetricType string

const (
	Counter   MetricType = "counter"
	Gauge     MetricType = "gauge"
	Histogram MetricType = "histogram"
)

// Metric represents a single metric observation.
type Metric struct {
	Name      string            `json:"name"`
	Type      MetricType        `json:"type"`
	Value     float64           `json:"value"`
	Labels    map[string]string `json:"labels,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// MetricsCollector manages metrics collection.
type MetricsCollector struct {
	mu         sync.RWMutex
	metrics    map[string]*Metric
	counters   map[string]*int64
	gauges     map[string]*float64
	histograms map[string][]float64
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics:    make(map[string]*Metric),
		counters:   make(map[string]*int64),
		gauges:     make(map[string]*float64),
		histograms: make(map[string][]float64),
	}
}

// IncrementCounter increments a counter metric.
func (mc *MetricsCollector) IncrementCounter(name string, labels map[string]string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	key := mc.makeKey(name, labels)
	if counter, exists := mc.counters[key]; exists {
		atomic.AddInt64(counter, 1)
	} else {
		var value int64 = 1
		mc.counters[key] = &value
	}

	mc.updateMetric(name, Counter, float64(*mc.counters[key]), labels)
}

// SetGauge sets a gauge metric value.
func (mc *MetricsCollector) SetGauge(name string, value float64, labels map[string]string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	key := mc.makeKey(name, labels)
	if gauge, exists := mc.gauges[key]; exists {
		*gauge = value
	} else {
		mc.gauges[key] = &value
	}

	mc.updateMetric(name, Gauge, value, labels)
}

// RecordHistogram records a value in a histogram.
func (mc *MetricsCollector) RecordHistogram(name string, value float64, labels map[string]string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	key := mc.makeKey(name, labels)
	if histogram, exists := mc.histograms[key]; exists {
		mc.histograms[key] = append(histogram, value)
	} else {
		mc.histograms[key] = []float64{value}
	}

	if len(mc.histograms[key]) > 1000 {
		mc.histograms[key] = mc.histograms[key][len(mc.histograms[key])-1000:]
	}

	mc.updateMetric(name, Histogram, value, labels)
}

// GetMetric retrieves a metric by name and labels.
func (mc *MetricsCollector) GetMetric(name string, labels map[string]string) *Metric {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	key := mc.makeKey(name, labels)
	return mc.metrics[key]
}

// GetAllMetrics returns all collected metrics.
func (mc *MetricsCollector) GetAllMetrics() []*Metric {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	metrics := make([]*Metric, 0, len(mc.metrics))
	for _, metric := range mc.metrics {
		metrics = append(metrics, metric)
	}
	return metrics
}

// GetMetricsSummary returns a summary of all metrics, grouped by kind.
func (mc *MetricsCollector) GetMetricsSummary() map[string]interface{} {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	summary := make(map[string]interface{})

	counters := make(map[string]int64)
	for key, counter := range mc.counters {
		counters[key] = atomic.LoadInt64(counter)
	}
	summary["counters"] = counters

	gauges := make(map[string]float64)
	for key, gauge := range mc.gauges {
		gauges[key] = *gauge
	}
	summary["gauges"] = gauges

	histograms := make(map[string]map[string]float64)
	for key, values := range mc.histograms {
		if len(values) == 0 {
			continue
		}
		histogram := make(map[string]float64)
		histogram["count"] = float64(len(values))
		histogram["min"] = values[0]
		histogram["max"] = values[0]
		histogram["sum"] = 0
		for _, value := range values {
			if value < histogram["min"] {
				histogram["min"] = value
			}
			if value > histogram["max"] {
				histogram["max"] = value
			}
			histogram["sum"] += value
		}
		histogram["avg"] = histogram["sum"] / histogram["count"]
		histogram["p50"] = percentile(values, 0.50)
		histogram["p95"] = percentile(values, 0.95)
		histograms[key] = histogram
	}
	summary["histograms"] = histograms

	return summary
}

// percentile returns the value at rank p (0 <= p <= 1) of values, sorting
// a copy so the caller's stored order is undisturbed. proof_verify_latency
// is the histogram this exists for: the pairing check's mean latency
// hides exactly the tail a relayer-facing rate limiter needs to size
// itself against.
func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

// Reset clears all metrics.
func (mc *MetricsCollector) Reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.metrics = make(map[string]*Metric)
	mc.counters = make(map[string]*int64)
	mc.gauges = make(map[string]*float64)
	mc.histograms = make(map[string][]float64)
}

func (mc *MetricsCollector) makeKey(name string, labels map[string]string) string {
	if len(labels) == 0 {
		return name
	}
	key := name
	for k, v := range labels {
		key += fmt.Sprintf("_%s_%s", k, v)
	}
	return key
}

func (mc *MetricsCollector) updateMetric(name string, metricType MetricType, value float64, labels map[string]string) {
	key := mc.makeKey(name, labels)
	mc.metrics[key] = &Metric{
		Name:      name,
		Type:      metricType,
		Value:     value,
		Labels:    labels,
		Timestamp: time.Now(),
	}
}

// Pool-specific metric names.
const (
	MetricDeposits           = "deposits_total"
	MetricRedemptions        = "redemptions_total"
	MetricDepositAmount      = "deposit_amount"
	MetricRedemptionAmount   = "redemption_amount"
	MetricProofVerifyLatency = "proof_verify_latency_seconds"
	MetricNullifierSetSize   = "nullifier_set_size"
	MetricAccumulatorNextLeaf = "accumulator_next_leaf_index"
	MetricRejectedSpends     = "spends_rejected_total"
	MetricRejectedDeposits   = "deposits_rejected_total"
)

// RecordDeposit records a successful Append.
func (mc *MetricsCollector) RecordDeposit(amount uint64) {
	mc.IncrementCounter(MetricDeposits, nil)
	mc.RecordHistogram(MetricDepositAmount, float64(amount), nil)
}

// RecordRedemption records a successful Spend.
func (mc *MetricsCollector) RecordRedemption(amount uint64) {
	mc.IncrementCounter(MetricRedemptions, nil)
	mc.RecordHistogram(MetricRedemptionAmount, float64(amount), nil)
}

// RecordRejectedSpend records a Spend that failed any gate, labeled by
// the sentinel error's stable identifier.
func (mc *MetricsCollector) RecordRejectedSpend(reason string) {
	mc.IncrementCounter(MetricRejectedSpends, map[string]string{"reason": reason})
}

// RecordRejectedDeposit records an Append that failed any gate.
func (mc *MetricsCollector) RecordRejectedDeposit(reason string) {
	mc.IncrementCounter(MetricRejectedDeposits, map[string]string{"reason": reason})
}

// RecordProofVerification records the wall-clock time spent in
// VerifyProof for one Spend, independent of whether it succeeded.
func (mc *MetricsCollector) RecordProofVerification(d time.Duration) {
	mc.RecordHistogram(MetricProofVerifyLatency, d.Seconds(), nil)
}

// RecordPoolState snapshots size-shaped gauges from a pool.Snapshot.
func (mc *MetricsCollector) RecordPoolState(nullifierSetSize int, nextLeafIndex uint64) {
	mc.SetGauge(MetricNullifierSetSize, float64(nullifierSetSize), nil)
	mc.SetGauge(MetricAccumulatorNextLeaf, float64(nextLeafIndex), nil)
}
