// pool.go - Pool descriptor and the operations dispatcher (§4.6, §4.7).
//
// Every exported method on Pool takes the per-pool mutex across its
// entire body: either every effect of a transition becomes visible
// together, or none does. This is the general-purpose-runtime analogue of
// the single-threaded transaction executor the design assumes.

package pool

import (
	"context"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// SchemaVersion is stamped onto every pool created by Initialize.
const SchemaVersion = 2

const (
	minTreeDepth    = 4
	maxTreeDepth    = 24
	minHistorySize  = 30
	maxHistorySize  = 1000
)

// Pool is one shielded-pool instance: exactly one per (protocol instance,
// token identity). The zero value is not usable; construct with
// Initialize.
type Pool struct {
	mu sync.Mutex

	schemaVersion int

	owner        Address
	pendingOwner Address
	hasPending   bool

	token Address
	vault Vault

	accumulator *Accumulator
	vk          VerificationKey
	nullifiers  *NullifierSet

	treeDepth   int
	historySize int
	maxDeposit  uint64

	paused bool

	depositCount         uint64
	redemptionCount      uint64
	cumulativeDeposit    uint64
	cumulativeRedemption uint64

	sink Sink
}

// InitializeParams carries the arguments to Initialize. MaxDeposit bounds
// a single Append; the core requires it to exist but does not fix a
// numeric value.
type InitializeParams struct {
	Owner       Address
	Token       Address
	TreeDepth   int
	HistorySize int
	MaxDeposit  uint64
	Vault       Vault
	Sink        Sink
	Now         int64
}

// Initialize creates a new pool descriptor, accumulator, empty VK store,
// and empty nullifier set. It validates only the parameters of the single
// pool being built; the "one-shot per token identity" guarantee
// (ErrAlreadyInitialized) lives one level up, in PoolRegistry.Open, which
// tracks which token identities already have a pool.
func Initialize(p InitializeParams) (*Pool, error) {
	if p.TreeDepth < minTreeDepth || p.TreeDepth > maxTreeDepth {
		return nil, ErrInvalidTreeDepth
	}
	if p.HistorySize < minHistorySize || p.HistorySize > maxHistorySize {
		return nil, ErrInvalidHistorySize
	}
	if p.Vault == nil {
		return nil, ErrVaultTransferFailed
	}
	sink := p.Sink
	if sink == nil {
		sink = DiscardSink{}
	}

	pool := &Pool{
		schemaVersion: SchemaVersion,
		owner:         p.Owner,
		token:         p.Token,
		vault:         p.Vault,
		accumulator:   NewAccumulator(p.TreeDepth, p.HistorySize),
		nullifiers:    NewNullifierSet(),
		treeDepth:     p.TreeDepth,
		historySize:   p.HistorySize,
		maxDeposit:    p.MaxDeposit,
		sink:          sink,
	}
	sink.Emit(PoolInitialized{
		Pool:        pool.selfAddress(),
		Owner:       p.Owner,
		Token:       p.Token,
		TreeDepth:   p.TreeDepth,
		HistorySize: p.HistorySize,
		Timestamp:   p.Now,
	})
	return pool, nil
}

// checkedAdd adds b to a, returning ErrArithmeticOverflow instead of
// wrapping.
func checkedAdd(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrArithmeticOverflow
	}
	return sum, nil
}

// Append is the public-deposit transition (§4.6). now is the caller-
// supplied event timestamp; the core has no clock of its own.
func (p *Pool) Append(ctx context.Context, caller Address, amount uint64, commitment Bytes32, now int64) (Deposited, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.paused {
		return Deposited{}, ErrPoolPaused
	}
	if amount == 0 || amount > p.maxDeposit {
		return Deposited{}, ErrInvalidAmount
	}
	cm, err := DecodeFieldElement(commitment)
	if err != nil {
		return Deposited{}, err
	}
	if cm.Sign() == 0 {
		return Deposited{}, ErrInvalidCommitment
	}

	// Check the counter updates before committing any irreversible effect:
	// an overflow discovered after the vault transfer and accumulator
	// append would leave no effect left to undo it against.
	newDeposits, err := checkedAdd(p.depositCount, 1)
	if err != nil {
		return Deposited{}, err
	}
	newCumulative, err := checkedAdd(p.cumulativeDeposit, amount)
	if err != nil {
		return Deposited{}, err
	}

	poolAddr := p.selfAddress()
	if err := p.vault.TransferIn(ctx, caller, amount); err != nil {
		return Deposited{}, ErrVaultTransferFailed
	}

	leafIndex, err := p.accumulator.Append(commitment)
	if err != nil {
		// Undo step 4: refund the inbound transfer.
		_ = p.vault.TransferOut(ctx, caller, amount)
		return Deposited{}, err
	}

	p.depositCount = newDeposits
	p.cumulativeDeposit = newCumulative

	event := Deposited{
		Pool:       poolAddr,
		Commitment: commitment,
		LeafIndex:  leafIndex,
		Amount:     amount,
		Timestamp:  now,
	}
	p.sink.Emit(event)
	return event, nil
}

// SpendParams carries the arguments to Spend: the proof and the six
// public inputs in their canonical wire order.
type SpendParams struct {
	Proof      Proof
	Root       Bytes32
	Tag        Bytes32
	Recipient  Address
	Amount     uint64
	Relayer    Address
	RelayerFee uint64
	Now        int64
}

// Spend is the private-redemption transition (§4.6).
func (p *Pool) Spend(ctx context.Context, sp SpendParams) (Redeemed, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.paused {
		return Redeemed{}, ErrPoolPaused
	}
	if !p.vk.Configured() {
		return Redeemed{}, ErrVKNotConfigured
	}

	root, err := DecodeFieldElement(sp.Root)
	if err != nil {
		return Redeemed{}, err
	}
	tag, err := DecodeFieldElement(sp.Tag)
	if err != nil {
		return Redeemed{}, err
	}
	recipientField, err := addressField(sp.Recipient)
	if err != nil {
		return Redeemed{}, err
	}
	relayerField, err := addressField(sp.Relayer)
	if err != nil {
		return Redeemed{}, err
	}

	if sp.RelayerFee > sp.Amount {
		return Redeemed{}, ErrFeeExceedsAmount
	}
	if sp.Amount == 0 {
		return Redeemed{}, ErrInvalidAmount
	}

	if !p.accumulator.IsFresh(sp.Root) {
		return Redeemed{}, ErrUnknownRoot
	}

	publicInputs := []*big.Int{
		root,
		tag,
		recipientField,
		new(big.Int).SetUint64(sp.Amount),
		relayerField,
		new(big.Int).SetUint64(sp.RelayerFee),
	}
	if err := VerifyProof(&p.vk, sp.Proof, publicInputs); err != nil {
		return Redeemed{}, err
	}

	// Check the counter updates before committing any irreversible effect
	// (nullifier insert, vault transfers): once those land there is no
	// way to report failure without leaving a partially-applied state.
	newRedemptions, err := checkedAdd(p.redemptionCount, 1)
	if err != nil {
		return Redeemed{}, err
	}
	newCumulative, err := checkedAdd(p.cumulativeRedemption, sp.Amount)
	if err != nil {
		return Redeemed{}, err
	}

	if err := p.nullifiers.TryInsert(sp.Tag); err != nil {
		return Redeemed{}, err
	}

	netRecipient := sp.Amount - sp.RelayerFee
	if err := p.vault.TransferOut(ctx, sp.Recipient, netRecipient); err != nil {
		p.undoNullifierInsert(sp.Tag)
		return Redeemed{}, ErrVaultTransferFailed
	}
	if sp.RelayerFee > 0 {
		if err := p.vault.TransferOut(ctx, sp.Relayer, sp.RelayerFee); err != nil {
			// Reclaim the recipient leg already paid out before undoing the
			// nullifier: both effects committed so far must unwind together,
			// or the note stays spendable while the vault is already short.
			_ = p.vault.TransferIn(ctx, sp.Recipient, netRecipient)
			p.undoNullifierInsert(sp.Tag)
			return Redeemed{}, ErrVaultTransferFailed
		}
	}

	p.redemptionCount = newRedemptions
	p.cumulativeRedemption = newCumulative

	event := Redeemed{
		Pool:       p.selfAddress(),
		Tag:        sp.Tag,
		Recipient:  sp.Recipient,
		Amount:     sp.Amount,
		Relayer:    sp.Relayer,
		RelayerFee: sp.RelayerFee,
		Timestamp:  sp.Now,
	}
	p.sink.Emit(event)
	return event, nil
}

// undoNullifierInsert is only ever called while p.mu is held by the
// caller transition, on the failure path after TryInsert already
// succeeded. There is no public "remove" on NullifierSet: this reaches
// into the map directly because the instant a vault transfer fails here,
// the tag must not read back as spent.
func (p *Pool) undoNullifierInsert(tag Bytes32) {
	delete(p.nullifiers.present, tag)
}

func addressField(a Address) (*big.Int, error) {
	x := new(big.Int).SetBytes(a[:])
	if !InField(x) {
		return nil, ErrFieldRangeViolation
	}
	return x, nil
}

// selfAddress is a placeholder stand-in for the pool's own derived
// address; a real deployment derives it once at Initialize time via an
// AddressDeriver and stores it, rather than recomputing it per event.
func (p *Pool) selfAddress() Address {
	var a Address
	copy(a[:], p.token[:])
	return a
}

// Pause and Unpause are owner-only boolean toggles. They do not affect
// administrative transitions.
func (p *Pool) Pause(caller Address, now int64) (PausedStateChanged, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if caller != p.owner {
		return PausedStateChanged{}, ErrNotAuthorized
	}
	p.paused = true
	event := PausedStateChanged{Pool: p.selfAddress(), Paused: true, Timestamp: now}
	p.sink.Emit(event)
	return event, nil
}

func (p *Pool) Unpause(caller Address, now int64) (PausedStateChanged, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if caller != p.owner {
		return PausedStateChanged{}, ErrNotAuthorized
	}
	p.paused = false
	event := PausedStateChanged{Pool: p.selfAddress(), Paused: false, Timestamp: now}
	p.sink.Emit(event)
	return event, nil
}

// ProposeOwnerTransfer writes a pending owner. Owner-only. A zero address
// is rejected: it can never satisfy AcceptOwnerTransfer's caller check, so
// proposing it would only be reachable back out through Cancel, never
// through Accept.
func (p *Pool) ProposeOwnerTransfer(caller, newOwner Address, now int64) (OwnerTransferProposed, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if caller != p.owner {
		return OwnerTransferProposed{}, ErrNotAuthorized
	}
	var zeroAddr Address
	if newOwner == zeroAddr {
		return OwnerTransferProposed{}, ErrInvalidOwnerAddress
	}
	p.pendingOwner = newOwner
	p.hasPending = true
	event := OwnerTransferProposed{Pool: p.selfAddress(), Current: p.owner, Pending: newOwner, Timestamp: now}
	p.sink.Emit(event)
	return event, nil
}

// CancelOwnerTransfer clears a pending proposal without completing it.
// Owner-only; promoted to its own named transition from the inline
// cancellation spec.md describes on ProposeOwnerTransfer, matching the
// original's explicit cancel_authority_transfer.
func (p *Pool) CancelOwnerTransfer(caller Address, now int64) (OwnerTransferProposed, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if caller != p.owner {
		return OwnerTransferProposed{}, ErrNotAuthorized
	}
	if !p.hasPending {
		return OwnerTransferProposed{}, ErrNoPendingTransfer
	}
	p.hasPending = false
	var zero Address
	p.pendingOwner = zero
	event := OwnerTransferProposed{Pool: p.selfAddress(), Current: p.owner, Pending: zero, Timestamp: now}
	p.sink.Emit(event)
	return event, nil
}

// AcceptOwnerTransfer completes a pending transfer. Callable only by the
// pending owner.
func (p *Pool) AcceptOwnerTransfer(caller Address, now int64) (OwnerTransferAccepted, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.hasPending || caller != p.pendingOwner {
		return OwnerTransferAccepted{}, ErrNotPendingOwner
	}
	old := p.owner
	p.owner = p.pendingOwner
	p.hasPending = false
	var zero Address
	p.pendingOwner = zero
	event := OwnerTransferAccepted{Pool: p.selfAddress(), Old: old, New: p.owner, Timestamp: now}
	p.sink.Emit(event)
	return event, nil
}

// SetVerificationKey installs a new key. Owner-only, on top of the
// lock-state checks already performed by VerificationKey.SetVK.
func (p *Pool) SetVerificationKey(caller Address, alpha bn254.G1Affine, beta, gamma, delta bn254.G2Affine, ic []bn254.G1Affine, now int64) (VerificationKeyChanged, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if caller != p.owner {
		return VerificationKeyChanged{}, ErrNotAuthorized
	}
	if err := p.vk.SetVK(alpha, beta, gamma, delta, ic); err != nil {
		return VerificationKeyChanged{}, err
	}
	event := VerificationKeyChanged{Pool: p.selfAddress(), Locked: false, Timestamp: now}
	p.sink.Emit(event)
	return event, nil
}

// LockVerificationKey freezes the current key permanently. Owner-only.
func (p *Pool) LockVerificationKey(caller Address, now int64) (VerificationKeyChanged, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if caller != p.owner {
		return VerificationKeyChanged{}, ErrNotAuthorized
	}
	if err := p.vk.LockVK(); err != nil {
		return VerificationKeyChanged{}, err
	}
	event := VerificationKeyChanged{Pool: p.selfAddress(), Locked: true, Timestamp: now}
	p.sink.Emit(event)
	return event, nil
}

// Snapshot is a read-only view of descriptor fields, for health checks
// and metrics; it never exposes a mutable handle to internal state.
type Snapshot struct {
	SchemaVersion        int
	Owner                Address
	PendingOwner         Address
	HasPendingOwner      bool
	Token                Address
	TreeDepth            int
	HistorySize          int
	Paused               bool
	VKConfigured         bool
	VKLocked             bool
	DepositCount         uint64
	RedemptionCount      uint64
	CumulativeDeposit    uint64
	CumulativeRedemption uint64
	CurrentRoot          Bytes32
	NextLeafIndex        uint64
	NullifierSetSize     int
}

// Snapshot returns a consistent read of the descriptor, taken under the
// same mutex every transition holds.
func (p *Pool) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		SchemaVersion:        p.schemaVersion,
		Owner:                p.owner,
		PendingOwner:         p.pendingOwner,
		HasPendingOwner:      p.hasPending,
		Token:                p.token,
		TreeDepth:            p.treeDepth,
		HistorySize:          p.historySize,
		Paused:               p.paused,
		VKConfigured:         p.vk.Configured(),
		VKLocked:             p.vk.Locked(),
		DepositCount:         p.depositCount,
		RedemptionCount:      p.redemptionCount,
		CumulativeDeposit:    p.cumulativeDeposit,
		CumulativeRedemption: p.cumulativeRedemption,
		CurrentRoot:          p.accumulator.CurrentRoot(),
		NextLeafIndex:        p.accumulator.NextLeafIndex(),
		NullifierSetSize:     p.nullifiers.Len(),
	}
}
