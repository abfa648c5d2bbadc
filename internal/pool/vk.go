// vk.go - Verification-key store and lock state machine (C3).

package pool

import "github.com/consensys/gnark-crypto/ecc/bn254"

// PublicInputArity is k, the fixed number of public inputs a Spend proof
// carries: (root, tag, recipient, amount, relayer, relayer_fee).
const PublicInputArity = 6

// ICLength is the required length of the IC vector: k+1.
const ICLength = PublicInputArity + 1

// VerificationKey holds the Groth16 verification key for one pool. The
// zero value is the Empty state: not configured, not locked.
type VerificationKey struct {
	alpha bn254.G1Affine
	beta  bn254.G2Affine
	gamma bn254.G2Affine
	delta bn254.G2Affine
	ic    []bn254.G1Affine

	configured bool
	locked     bool
}

// Configured reports whether a key has ever been successfully set.
func (vk *VerificationKey) Configured() bool { return vk.configured }

// Locked reports whether the key has been locked. Locked is terminal.
func (vk *VerificationKey) Locked() bool { return vk.locked }

// SetVK validates and installs a new verification key. Rejected once the
// key is locked, regardless of caller. IC arity must be exactly ICLength.
func (vk *VerificationKey) SetVK(alpha bn254.G1Affine, beta, gamma, delta bn254.G2Affine, ic []bn254.G1Affine) error {
	if vk.locked {
		return ErrVKLocked
	}
	if len(ic) != ICLength {
		return ErrVKArityMismatch
	}
	if err := ValidG1(alpha); err != nil {
		return err
	}
	if err := ValidG2(beta); err != nil {
		return err
	}
	if err := ValidG2(gamma); err != nil {
		return err
	}
	if err := ValidG2(delta); err != nil {
		return err
	}
	for _, p := range ic {
		if err := ValidG1(p); err != nil {
			return err
		}
	}

	newIC := make([]bn254.G1Affine, len(ic))
	copy(newIC, ic)

	vk.alpha = alpha
	vk.beta = beta
	vk.gamma = gamma
	vk.delta = delta
	vk.ic = newIC
	vk.configured = true
	return nil
}

// LockVK freezes the key permanently. Requires the key to be configured;
// a second call fails with ErrAlreadyLocked.
func (vk *VerificationKey) LockVK() error {
	if vk.locked {
		return ErrAlreadyLocked
	}
	if !vk.configured {
		return ErrVKNotConfigured
	}
	vk.locked = true
	return nil
}
