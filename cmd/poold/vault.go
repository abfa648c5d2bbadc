// vault.go - in-process token vault adapter (§6 item 2).
//
// This is a reference Vault implementation for running the daemon
// standalone: it tracks one uint64 balance per pool instance and never
// talks to a real token ledger. A production deployment replaces this
// with an adapter onto the host runtime's actual token-transfer
// primitive; the dispatcher only ever calls through the pool.Vault
// interface, so the replacement is a drop-in.
package main

import (
	"context"
	"fmt"
	"sync"

	"shieldedpool/internal/pool"
)

// InMemoryVault is a Vault backed by a single mutex-guarded balance.
type InMemoryVault struct {
	mu      sync.Mutex
	balance uint64
}

// NewInMemoryVault returns an empty vault.
func NewInMemoryVault() *InMemoryVault {
	return &InMemoryVault{}
}

// TransferIn credits the vault balance.
func (v *InMemoryVault) TransferIn(ctx context.Context, from pool.Address, amount uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balance += amount
	return nil
}

// TransferOut debits the vault balance, failing if it would go negative.
func (v *InMemoryVault) TransferOut(ctx context.Context, to pool.Address, amount uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if amount > v.balance {
		return fmt.Errorf("vault: insufficient balance: have %d, need %d", v.balance, amount)
	}
	v.balance -= amount
	return nil
}

// Balance returns the current balance, for health/metrics reporting.
func (v *InMemoryVault) Balance() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.balance
}

// Ping satisfies the health checker's probe signature: a vault that can
// report its own balance without error is considered reachable.
func (v *InMemoryVault) Ping() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return nil
}
