package pool

import "testing"

func TestRegistryOpenRejectsDuplicateTokenIdentity(t *testing.T) {
	reg := NewPoolRegistry()
	token := Address{0x02}
	params := InitializeParams{
		Owner: Address{0x01}, Token: token,
		TreeDepth: 20, HistorySize: 100, MaxDeposit: 1000, Vault: &fakeVault{},
	}
	if _, err := reg.Open(params); err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := reg.Open(params); err != ErrAlreadyInitialized {
		t.Fatalf("got %v, want ErrAlreadyInitialized", err)
	}
}

func TestRegistryOpenAllowsDistinctTokenIdentities(t *testing.T) {
	reg := NewPoolRegistry()
	base := InitializeParams{
		Owner: Address{0x01}, TreeDepth: 20, HistorySize: 100,
		MaxDeposit: 1000, Vault: &fakeVault{},
	}
	a := base
	a.Token = Address{0x02}
	b := base
	b.Token = Address{0x03}

	if _, err := reg.Open(a); err != nil {
		t.Fatalf("open a: %v", err)
	}
	if _, err := reg.Open(b); err != nil {
		t.Fatalf("open b: %v", err)
	}
	if _, ok := reg.Get(a.Token); !ok {
		t.Fatalf("expected token a registered")
	}
	if _, ok := reg.Get(b.Token); !ok {
		t.Fatalf("expected token b registered")
	}
}
