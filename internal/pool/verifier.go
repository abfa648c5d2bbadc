// verifier.go - Groth16 pairing verification over BN254 (C2).
//
// Verification is a single multi-pairing product check against the
// identity in the target group. No randomness, no time-dependent branch:
// every decision here is a function of the proof bytes, the verification
// key, and the public inputs.

package pool

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// Proof is a Groth16 proof over BN254: two G1 points and one G2 point.
type Proof struct {
	A bn254.G1Affine
	B bn254.G2Affine
	C bn254.G1Affine
}

// VerifyProof checks e(-A,B) * e(alpha,beta) * e(vk_x,gamma) * e(C,delta) == 1
// for the given proof, verification key, and public inputs, implementing
// steps 1-4 of the pairing-based verifier. Public inputs must already be
// validated as field elements by the caller's earlier gates; VerifyProof
// re-checks range here too since it is the boundary at which a wrong value
// would otherwise corrupt ic_eval silently.
func VerifyProof(vk *VerificationKey, proof Proof, publicInputs []*big.Int) error {
	if !vk.configured {
		return ErrVKNotConfigured
	}
	if len(vk.ic) != len(publicInputs)+1 {
		return ErrVKArityMismatch
	}
	for _, x := range publicInputs {
		if !InField(x) {
			return ErrFieldRangeViolation
		}
	}
	if err := ValidG1(proof.A); err != nil {
		return err
	}
	if err := ValidG2(proof.B); err != nil {
		return err
	}
	if err := ValidG1(proof.C); err != nil {
		return err
	}

	vkx, err := ICEval(vk.ic, publicInputs)
	if err != nil {
		return err
	}

	negA := NegG1(proof.A)

	p1, p2, p3, p4 := negA, vk.alpha, vkx, proof.C
	q1, q2, q3, q4 := proof.B, vk.beta, vk.gamma, vk.delta

	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{p1, p2, p3, p4},
		[]bn254.G2Affine{q1, q2, q3, q4},
	)
	if err != nil {
		return ErrProofRejected
	}
	if !ok {
		return ErrProofRejected
	}
	return nil
}
