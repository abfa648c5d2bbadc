// events.go - Events emitted on successful transitions (§6).
//
// Events exist only for success cases; a failed transition never emits
// one. No event carries proof or secret bytes, only what the caller
// already supplied or a value the core itself derived from it.

package pool

// Deposited is emitted at the end of a successful Append.
type Deposited struct {
	Pool       Address
	Commitment Bytes32
	LeafIndex  uint64
	Amount     uint64
	Timestamp  int64
}

// Redeemed is emitted at the end of a successful Spend.
type Redeemed struct {
	Pool        Address
	Tag         Bytes32
	Recipient   Address
	Amount      uint64
	Relayer     Address
	RelayerFee  uint64
	Timestamp   int64
}

// PoolInitialized is emitted at the end of a successful Initialize.
type PoolInitialized struct {
	Pool        Address
	Owner       Address
	Token       Address
	TreeDepth   int
	HistorySize int
	Timestamp   int64
}

// PausedStateChanged is emitted by Pause and Unpause.
type PausedStateChanged struct {
	Pool      Address
	Paused    bool
	Timestamp int64
}

// OwnerTransferProposed is emitted by ProposeOwnerTransfer and by
// CancelOwnerTransfer (with Pending the zero Address).
type OwnerTransferProposed struct {
	Pool      Address
	Current   Address
	Pending   Address
	Timestamp int64
}

// OwnerTransferAccepted is emitted by AcceptOwnerTransfer.
type OwnerTransferAccepted struct {
	Pool      Address
	Old       Address
	New       Address
	Timestamp int64
}

// VerificationKeyChanged is emitted by SetVerificationKey and
// LockVerificationKey. Locked distinguishes the two: false for a set,
// true for a lock.
type VerificationKeyChanged struct {
	Pool      Address
	Locked    bool
	Timestamp int64
}

// Sink receives events emitted by a pool's transitions. The dispatcher
// never blocks waiting on a Sink: it is expected to enqueue or log, not
// perform I/O that could fail a transition that has already committed.
type Sink interface {
	Emit(event any)
}

// DiscardSink drops every event. Useful for tests that only care about
// return values and accumulator/registry state.
type DiscardSink struct{}

// Emit implements Sink.
func (DiscardSink) Emit(any) {}

// SliceSink accumulates events in order, for assertions in tests.
type SliceSink struct {
	Events []any
}

// Emit implements Sink.
func (s *SliceSink) Emit(event any) {
	s.Events = append(s.Events, event)
}
