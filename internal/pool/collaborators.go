// collaborators.go - External collaborator boundaries (§6).
//
// The dispatcher owns none of these implementations: it calls through
// small interfaces so the host runtime can supply a real token vault and
// address-derivation service without this package knowing how either is
// implemented. Modeled on the teacher's own boundary between wallet logic
// and transport in internal/zerocash/api.go's Participant shape.

package pool

import "context"

// Address is an opaque stable handle produced by an address-derivation
// service: a pool, an accumulator, a VK store, a vault, or a nullifier
// record.
type Address [32]byte

// AddressDeriver maps a seed tuple and a resource kind to a stable
// handle. The core consumes only the resolver; allocation and lifecycle
// of the underlying handle belong to the host.
type AddressDeriver interface {
	Derive(kind string, seeds ...[]byte) (Address, error)
}

// Vault moves tokens into and out of a pool's vault. Failures are
// reported synchronously so the dispatcher can surface
// ErrVaultTransferFailed and undo any state it already changed in the
// current transition.
type Vault interface {
	TransferIn(ctx context.Context, from Address, amount uint64) error
	TransferOut(ctx context.Context, to Address, amount uint64) error
}
