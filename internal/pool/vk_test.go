package pool

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

func TestSetVKRejectsWrongArity(t *testing.T) {
	var vk VerificationKey
	g1 := genG1()
	short := []bn254.G1Affine{g1, g1}
	if err := vk.SetVK(g1, bn254.G2Affine{}, bn254.G2Affine{}, bn254.G2Affine{}, short); err == nil {
		t.Fatal("expected rejection of short ic vector and/or invalid beta/gamma/delta")
	}
}

func TestLockVKRequiresConfigured(t *testing.T) {
	var vk VerificationKey
	if err := vk.LockVK(); err != ErrVKNotConfigured {
		t.Fatalf("got %v, want ErrVKNotConfigured", err)
	}
}

func TestLockVKIsTerminal(t *testing.T) {
	var vk VerificationKey
	vk.configured = true
	vk.ic = make([]bn254.G1Affine, ICLength)

	if err := vk.LockVK(); err != nil {
		t.Fatalf("first lock: %v", err)
	}
	if !vk.Locked() {
		t.Fatal("vk must report locked")
	}
	if err := vk.LockVK(); err != ErrAlreadyLocked {
		t.Fatalf("got %v, want ErrAlreadyLocked", err)
	}
	if err := vk.SetVK(genG1(), bn254.G2Affine{}, bn254.G2Affine{}, bn254.G2Affine{}, vk.ic); err != ErrVKLocked {
		t.Fatalf("got %v, want ErrVKLocked", err)
	}
}
