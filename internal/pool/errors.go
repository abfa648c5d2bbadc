// errors.go - Error taxonomy for the shielded pool core.
//
// Every error the dispatcher can return is a package-level sentinel so
// callers can compare with errors.Is. No error carries proof, tag, or
// secret bytes beyond what the caller already provided.

package pool

import "errors"

// Input shape errors.
var (
	ErrFieldRangeViolation = errors.New("pool: field element is not less than the scalar field modulus")
	ErrInvalidPointEncoding = errors.New("pool: curve point encoding has the wrong length or byte layout")
	ErrPointNotOnCurve      = errors.New("pool: curve point does not satisfy the curve equation")
	ErrPointAtInfinity      = errors.New("pool: curve point is the identity element")
	ErrVKArityMismatch      = errors.New("pool: verification key IC vector length does not match the public-input arity")
	ErrInvalidCommitment    = errors.New("pool: commitment is zero")
	ErrInvalidAmount        = errors.New("pool: amount is zero or exceeds the configured maximum")
	ErrFeeExceedsAmount     = errors.New("pool: relayer fee exceeds the spend amount")
)

// State gate errors.
var (
	ErrPoolPaused        = errors.New("pool: pool is paused")
	ErrVKNotConfigured   = errors.New("pool: verification key is not configured")
	ErrVKLocked          = errors.New("pool: verification key is locked")
	ErrAlreadyLocked     = errors.New("pool: verification key is already locked")
	ErrAlreadyInitialized = errors.New("pool: pool already initialized for this token identity")
	ErrNotAuthorized     = errors.New("pool: caller is not authorized for this operation")
	ErrNotPendingOwner   = errors.New("pool: caller is not the pending owner")
)

// Core rejection errors.
var (
	ErrUnknownRoot     = errors.New("pool: root is not the current root or in the recent history")
	ErrProofRejected   = errors.New("pool: groth16 proof failed the pairing check")
	ErrNullifierSpent  = errors.New("pool: nullifier tag has already been published")
	ErrAccumulatorFull = errors.New("pool: accumulator has no free leaf index")
)

// Collaborator failure errors.
var (
	ErrVaultTransferFailed = errors.New("pool: vault transfer failed")
	ErrArithmeticOverflow  = errors.New("pool: counter or cumulative amount would overflow")
)

// Administrative / bounds errors not named by the taxonomy directly but
// required to reject Initialize with bad parameters before any state is
// allocated.
var (
	ErrInvalidTreeDepth    = errors.New("pool: tree depth must be between 4 and 24")
	ErrInvalidHistorySize  = errors.New("pool: history size must be between 30 and 1000")
	ErrInvalidOwnerAddress = errors.New("pool: proposed owner address is invalid")
	ErrNoPendingTransfer   = errors.New("pool: no owner transfer is pending")
)
