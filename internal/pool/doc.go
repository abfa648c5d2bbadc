// Package pool implements a shielded token pool: a fixed-depth incremental
// Merkle accumulator, a nullifier registry, and a Groth16/BN254 proof
// verifier, wired together by a small dispatcher that exposes two
// user-facing transitions (Append, Spend) plus administrative transitions.
//
// Overview:
//   - Users deposit a public token amount and receive an off-chain note
//     whose commitment is appended to the accumulator (Append).
//   - Users later redeem a note by publishing a Groth16 proof that the
//     commitment is a member of the accumulator and that a derived
//     nullifier has never been published (Spend).
//   - The token vault and address-derivation service are external
//     collaborators consumed through small interfaces; this package owns
//     none of their implementations. The pairing check is computed in
//     process with gnark-crypto's bn254.PairingCheck.
//
// Security model:
//   - Every 32-byte value labeled a field element is range-checked against
//     the BN254 scalar field before use.
//   - Curve points are validated on-curve and non-identity before any
//     pairing or scalar multiplication touches them.
//   - Transitions against the same pool are serialized by a per-pool
//     mutex; callers on a general-purpose runtime get the same
//     atomicity a single-threaded transaction executor would give for
//     free.
//
// WARNING: this package verifies proofs; it does not produce them. The
// circuit, witness, and trusted setup that produce a valid (A, B, C) live
// outside this module.
package pool
