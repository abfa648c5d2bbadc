// field.go - BN254 scalar-field arithmetic and G1/G2 point validation (C1).
//
// Every 32-byte value the dispatcher labels a "field element" (roots,
// commitments, nullifier tags, public inputs) is interpreted big-endian
// and range-checked against the BN254 scalar field before use. Curve
// points are decoded from their uncompressed big-endian encodings and
// validated on-curve and non-identity before any arithmetic touches them.

package pool

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
)

// ScalarFieldModulus is p, the BN254 scalar field modulus: the order of
// the G1/G2 subgroup, and the modulus every field element labeled a root,
// commitment, nullifier tag, or public input must be strictly less than.
var ScalarFieldModulus = mustBigInt("21888242871839275222246405745257275088548364400416034343698204186575808495617")

// BaseFieldModulus is q, the BN254 base field modulus: the modulus G1/G2
// affine coordinates live in.
var BaseFieldModulus = mustBigInt("21888242871839275222246405745257275088696311157297823662689037894645226208583")

// g2TwistB is the curve coefficient of the BN254 G2 twist: y^2 = x^3 + b2,
// b2 = 3/(9+u) in Fp2 = Fp[u]/(u^2+1).
var (
	g2TwistB0 = mustBigInt("19485874751759354771024239261021720505790618469301721065564631296452457478373")
	g2TwistB1 = mustBigInt("266929791119991161246907387137283842545076965332900288569378510910307636690")
)

func mustBigInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("pool: invalid field constant " + s)
	}
	return v
}

// Bytes32 is a 32-byte value, big-endian, interpreted as a field element.
type Bytes32 = [32]byte

// InField reports whether x is a valid scalar-field element: 0 <= x < p.
func InField(x *big.Int) bool {
	return x.Sign() >= 0 && x.Cmp(ScalarFieldModulus) < 0
}

// DecodeFieldElement parses a 32-byte big-endian value as a scalar-field
// element, rejecting values that are not strictly less than p.
func DecodeFieldElement(b Bytes32) (*big.Int, error) {
	x := new(big.Int).SetBytes(b[:])
	if !InField(x) {
		return nil, ErrFieldRangeViolation
	}
	return x, nil
}

// EncodeFieldElement renders x as a 32-byte big-endian value. The caller
// is responsible for having already checked x is in range.
func EncodeFieldElement(x *big.Int) Bytes32 {
	var out Bytes32
	x.FillBytes(out[:])
	return out
}

// DecodeG1 parses a 64-byte uncompressed G1 point (x||y, big-endian) and
// validates it is on the curve and not the point at infinity.
func DecodeG1(b [64]byte) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	x := new(big.Int).SetBytes(b[0:32])
	y := new(big.Int).SetBytes(b[32:64])
	if x.Cmp(BaseFieldModulus) >= 0 || y.Cmp(BaseFieldModulus) >= 0 {
		return p, ErrInvalidPointEncoding
	}
	p.X.SetBigInt(x)
	p.Y.SetBigInt(y)
	if err := ValidG1(p); err != nil {
		return bn254.G1Affine{}, err
	}
	return p, nil
}

// EncodeG1 renders a validated G1 point as its 64-byte uncompressed
// big-endian encoding.
func EncodeG1(p bn254.G1Affine) [64]byte {
	var out [64]byte
	xb := p.X.Bytes()
	yb := p.Y.Bytes()
	copy(out[0:32], xb[:])
	copy(out[32:64], yb[:])
	return out
}

// ValidG1 checks that p satisfies y^2 = x^3 + 3 (mod q) and is not the
// identity. Coordinates are assumed already range-checked against q by
// the caller (DecodeG1 does this); ValidG1 itself only checks the curve
// equation and non-identity, so it can also be used on points built in
// memory (e.g. the result of ICEval).
func ValidG1(p bn254.G1Affine) error {
	if p.X.IsZero() && p.Y.IsZero() {
		return ErrPointAtInfinity
	}
	x := new(big.Int)
	y := new(big.Int)
	p.X.BigInt(x)
	p.Y.BigInt(y)

	lhs := new(big.Int).Mul(y, y)
	lhs.Mod(lhs, BaseFieldModulus)

	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, big.NewInt(3))
	rhs.Mod(rhs, BaseFieldModulus)

	if lhs.Cmp(rhs) != 0 {
		return ErrPointNotOnCurve
	}
	return nil
}

// DecodeG2 parses a 128-byte uncompressed G2 point
// ((x0||x1)||(y0||y1), big-endian) and validates it is on the twist and
// not the point at infinity.
func DecodeG2(b [128]byte) (bn254.G2Affine, error) {
	var p bn254.G2Affine
	x0 := new(big.Int).SetBytes(b[0:32])
	x1 := new(big.Int).SetBytes(b[32:64])
	y0 := new(big.Int).SetBytes(b[64:96])
	y1 := new(big.Int).SetBytes(b[96:128])
	for _, v := range []*big.Int{x0, x1, y0, y1} {
		if v.Cmp(BaseFieldModulus) >= 0 {
			return bn254.G2Affine{}, ErrInvalidPointEncoding
		}
	}
	p.X.A0.SetBigInt(x0)
	p.X.A1.SetBigInt(x1)
	p.Y.A0.SetBigInt(y0)
	p.Y.A1.SetBigInt(y1)
	if err := ValidG2(p); err != nil {
		return bn254.G2Affine{}, err
	}
	return p, nil
}

// EncodeG2 renders a validated G2 point as its 128-byte uncompressed
// big-endian encoding.
func EncodeG2(p bn254.G2Affine) [128]byte {
	var out [128]byte
	x0 := p.X.A0.Bytes()
	x1 := p.X.A1.Bytes()
	y0 := p.Y.A0.Bytes()
	y1 := p.Y.A1.Bytes()
	copy(out[0:32], x0[:])
	copy(out[32:64], x1[:])
	copy(out[64:96], y0[:])
	copy(out[96:128], y1[:])
	return out
}

// ValidG2 checks that p satisfies y^2 = x^3 + b2 over Fp2 and is not the
// identity.
func ValidG2(p bn254.G2Affine) error {
	if p.X.A0.IsZero() && p.X.A1.IsZero() && p.Y.A0.IsZero() && p.Y.A1.IsZero() {
		return ErrPointAtInfinity
	}
	x0, x1, y0, y1 := new(big.Int), new(big.Int), new(big.Int), new(big.Int)
	p.X.A0.BigInt(x0)
	p.X.A1.BigInt(x1)
	p.Y.A0.BigInt(y0)
	p.Y.A1.BigInt(y1)

	lhs0, lhs1 := fp2Square(y0, y1)
	x2_0, x2_1 := fp2Mul(x0, x1, x0, x1)
	x3_0, x3_1 := fp2Mul(x2_0, x2_1, x0, x1)
	rhs0 := new(big.Int).Add(x3_0, g2TwistB0)
	rhs0.Mod(rhs0, BaseFieldModulus)
	rhs1 := new(big.Int).Add(x3_1, g2TwistB1)
	rhs1.Mod(rhs1, BaseFieldModulus)

	if lhs0.Cmp(rhs0) != 0 || lhs1.Cmp(rhs1) != 0 {
		return ErrPointNotOnCurve
	}
	return nil
}

// fp2Mul multiplies (a0+a1*u)*(b0+b1*u) in Fp2 = Fp[u]/(u^2+1), i.e. with
// u^2 = -1.
func fp2Mul(a0, a1, b0, b1 *big.Int) (*big.Int, *big.Int) {
	t0 := new(big.Int).Mul(a0, b0)
	t1 := new(big.Int).Mul(a1, b1)
	re := new(big.Int).Sub(t0, t1)
	re.Mod(re, BaseFieldModulus)

	t2 := new(big.Int).Mul(a0, b1)
	t3 := new(big.Int).Mul(a1, b0)
	im := new(big.Int).Add(t2, t3)
	im.Mod(im, BaseFieldModulus)
	return re, im
}

func fp2Square(a0, a1 *big.Int) (*big.Int, *big.Int) {
	return fp2Mul(a0, a1, a0, a1)
}

// NegG1 returns -p: (x, q-y mod q).
func NegG1(p bn254.G1Affine) bn254.G1Affine {
	var out bn254.G1Affine
	out.X.Set(&p.X)
	var zero fp.Element
	out.Y.Sub(&zero, &p.Y)
	return out
}

// ICEval computes vk_x = ic[0] + sum_{j=1..k} inputs[j-1] * ic[j] in G1,
// rejecting as soon as any intermediate point fails validation.
func ICEval(ic []bn254.G1Affine, inputs []*big.Int) (bn254.G1Affine, error) {
	if len(ic) != len(inputs)+1 {
		return bn254.G1Affine{}, ErrVKArityMismatch
	}
	acc := ic[0]
	if err := ValidG1(acc); err != nil {
		return bn254.G1Affine{}, err
	}
	for j, x := range inputs {
		if !InField(x) {
			return bn254.G1Affine{}, ErrFieldRangeViolation
		}
		term := ic[j+1]
		if err := ValidG1(term); err != nil {
			return bn254.G1Affine{}, err
		}
		term.ScalarMultiplication(&term, x)
		acc.Add(&acc, &term)
	}
	return acc, nil
}
