// registry.go - one-shot-per-token-identity enforcement (§4.7).
//
// Initialize itself only builds a single pool from validated parameters;
// it has no notion of what else has already been built. A PoolRegistry
// is the thing that actually owns the "one pool per token identity"
// guarantee, the way the teacher's internal/zerocash/ledger.go owns the
// serial-number list that AppendTx checks against rather than pushing
// that bookkeeping onto the transaction constructor.
package pool

import "sync"

// PoolRegistry tracks which token identities already have a live pool,
// so a second Open for the same identity fails with ErrAlreadyInitialized
// instead of silently creating a second, independent pool over the same
// token.
type PoolRegistry struct {
	mu    sync.Mutex
	pools map[Address]*Pool
}

// NewPoolRegistry returns an empty registry.
func NewPoolRegistry() *PoolRegistry {
	return &PoolRegistry{pools: make(map[Address]*Pool)}
}

// Open initializes a new pool for p.Token, or returns ErrAlreadyInitialized
// if one already exists in this registry. Parameter validation (tree
// depth, history size, vault presence) still happens inside Initialize;
// Open only adds the identity check around it.
func (r *PoolRegistry) Open(p InitializeParams) (*Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pools[p.Token]; exists {
		return nil, ErrAlreadyInitialized
	}
	pool, err := Initialize(p)
	if err != nil {
		return nil, err
	}
	r.pools[p.Token] = pool
	return pool, nil
}

// Get returns the pool registered for a token identity, if any.
func (r *PoolRegistry) Get(token Address) (*Pool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pools[token]
	return p, ok
}
