// sink.go - pool.Sink implementation that writes one audit line per
// event and feeds the metrics collector, bridging the core's in-process
// event emission to this daemon's ambient logging/metrics stack.
package main

import (
	"shieldedpool/internal/pool"
)

// DaemonSink adapts pool.Sink onto the daemon's Logger and
// MetricsCollector.
type DaemonSink struct {
	Logger  *Logger
	Metrics *MetricsCollector
}

// Emit implements pool.Sink.
func (s *DaemonSink) Emit(event any) {
	switch e := event.(type) {
	case pool.Deposited:
		s.Logger.Transition("Append", map[string]interface{}{
			"leaf_index": e.LeafIndex,
			"amount":     e.Amount,
		})
		s.Metrics.RecordDeposit(e.Amount)
	case pool.Redeemed:
		s.Logger.Transition("Spend", map[string]interface{}{
			"amount":      e.Amount,
			"relayer_fee": e.RelayerFee,
		})
		s.Metrics.RecordRedemption(e.Amount)
	case pool.PoolInitialized:
		s.Logger.Transition("Initialize", map[string]interface{}{
			"tree_depth":   e.TreeDepth,
			"history_size": e.HistorySize,
		})
	case pool.PausedStateChanged:
		s.Logger.Transition("Pause/Unpause", map[string]interface{}{"paused": e.Paused})
	case pool.OwnerTransferProposed:
		s.Logger.Transition("ProposeOwnerTransfer/CancelOwnerTransfer", map[string]interface{}{})
	case pool.OwnerTransferAccepted:
		s.Logger.Transition("AcceptOwnerTransfer", map[string]interface{}{})
	case pool.VerificationKeyChanged:
		s.Logger.Transition("SetVerificationKey/LockVerificationKey", map[string]interface{}{"locked": e.Locked})
	default:
		s.Logger.Warn("unrecognized event type emitted from pool core: %T", e)
	}
}
