// accumulator.go - Fixed-depth incremental Merkle accumulator (C4).
//
// The tree is never materialized beyond its frontier: an append walks the
// authenticated path of the next free leaf, caching only the one sibling
// per level a future append will need (the "filled subtree" at that
// level), exactly as an on-chain implementation would to bound storage.

package pool

import (
	"math/big"

	"golang.org/x/crypto/sha3"
)

// ZeroLevel0 is the frozen domain-separation constant used as the level-0
// zero value. Every deployment of this accumulator and every circuit that
// proves membership against it must agree on this exact value.
var ZeroLevel0 = mustBigInt("21663839004416932945382355908790599225266501822907911457504978515578255421292")

// Accumulator is a fixed-depth incremental Merkle tree with a rolling
// history of recent roots. The zero value is not usable; construct with
// NewAccumulator.
type Accumulator struct {
	depth       int
	nextLeaf    uint64
	capacity    uint64
	currentRoot Bytes32

	filled [][32]byte // filled[l] = cached left sibling at level l
	zero   [][32]byte // zero[l] for l in [0, depth]

	history    [][32]byte
	historyLen int // number of meaningful slots so far, saturating at len(history)
	cursor     int // next slot to overwrite
}

// NewAccumulator builds an empty accumulator of the given depth and
// history size. Bounds are enforced by the caller (Initialize); depth and
// historySize are trusted here to already satisfy 4<=depth<=24 and
// 30<=historySize<=1000.
func NewAccumulator(depth, historySize int) *Accumulator {
	zero := make([][32]byte, depth+1)
	zero[0] = EncodeFieldElement(ZeroLevel0)
	for l := 1; l <= depth; l++ {
		zero[l] = hashPair(zero[l-1], zero[l-1])
	}

	a := &Accumulator{
		depth:       depth,
		capacity:    uint64(1) << uint(depth),
		currentRoot: zero[depth],
		filled:      make([][32]byte, depth),
		zero:        zero,
		history:     make([][32]byte, historySize),
	}
	return a
}

// hashPair returns Keccak-256(left || right) reduced modulo the scalar
// field modulus p, so every inner node and root is a valid field element.
func hashPair(left, right [32]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(left[:])
	h.Write(right[:])
	x := new(big.Int).SetBytes(h.Sum(nil))
	x.Mod(x, ScalarFieldModulus)
	return EncodeFieldElement(x)
}

// Depth returns the accumulator's fixed depth.
func (a *Accumulator) Depth() int { return a.depth }

// NextLeafIndex returns the index the next Append will occupy.
func (a *Accumulator) NextLeafIndex() uint64 { return a.nextLeaf }

// CurrentRoot returns the current root.
func (a *Accumulator) CurrentRoot() Bytes32 { return a.currentRoot }

// Append inserts commitment as the next leaf, updating the frontier,
// current root, and history buffer. Returns the leaf index the commitment
// was written to. No partial mutation is observable on failure: all
// preconditions are checked before any field is written.
func (a *Accumulator) Append(commitment Bytes32) (uint64, error) {
	if a.nextLeaf >= a.capacity {
		return 0, ErrAccumulatorFull
	}

	idx := a.nextLeaf
	h := commitment
	for l := 0; l < a.depth; l++ {
		if idx%2 == 0 {
			a.filled[l] = h
			h = hashPair(h, a.zero[l])
		} else {
			h = hashPair(a.filled[l], h)
		}
		idx >>= 1
	}

	leafIndex := a.nextLeaf
	a.currentRoot = h
	a.history[a.cursor] = h
	a.cursor = (a.cursor + 1) % len(a.history)
	if a.historyLen < len(a.history) {
		a.historyLen++
	}
	a.nextLeaf++
	return leafIndex, nil
}

// IsFresh reports whether r equals the current root or appears in the
// rolling history buffer. A root older than the last H appends may no
// longer be present even though it was once current.
func (a *Accumulator) IsFresh(r Bytes32) bool {
	if r == a.currentRoot {
		return true
	}
	for i := 0; i < a.historyLen; i++ {
		if a.history[i] == r {
			return true
		}
	}
	return false
}
