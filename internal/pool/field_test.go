package pool

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// genG1 returns the standard BN254 G1 generator (1, 2): 2^2 = 1^3 + 3.
func genG1() bn254.G1Affine {
	var g bn254.G1Affine
	g.X.SetOne()
	g.Y.SetBigInt(big.NewInt(2))
	return g
}

// genG2 returns the standard BN254 G2 generator, the same point published
// in EIP-197 and used across the pairing-library ecosystem.
func genG2() bn254.G2Affine {
	var g bn254.G2Affine
	g.X.A0.SetBigInt(mustBigInt("10857046999023057135944570762232829481370756359578518086990519993285655852781"))
	g.X.A1.SetBigInt(mustBigInt("11559732032986387107991004021392285783925812861821192530917403151452391805634"))
	g.Y.A0.SetBigInt(mustBigInt("8495653923123431417604973247489272438418190587263600148770280649306958101930"))
	g.Y.A1.SetBigInt(mustBigInt("4082367875863433681332203403145435568316851327593401208105741076214120093531"))
	return g
}

func TestGenG2SatisfiesCurveEquation(t *testing.T) {
	if err := ValidG2(genG2()); err != nil {
		t.Fatalf("G2 generator must validate: %v", err)
	}
}

func TestInField(t *testing.T) {
	if !InField(big.NewInt(0)) {
		t.Fatal("0 must be in field")
	}
	if !InField(new(big.Int).Sub(ScalarFieldModulus, big.NewInt(1))) {
		t.Fatal("p-1 must be in field")
	}
	if InField(ScalarFieldModulus) {
		t.Fatal("p itself must not be in field")
	}
}

func TestDecodeFieldElementRejectsOutOfRange(t *testing.T) {
	var b Bytes32
	for i := range b {
		b[i] = 0xff
	}
	if _, err := DecodeFieldElement(b); err != ErrFieldRangeViolation {
		t.Fatalf("got %v, want ErrFieldRangeViolation", err)
	}
}

func TestG1RoundTrip(t *testing.T) {
	g := genG1()
	if err := ValidG1(g); err != nil {
		t.Fatalf("generator must validate: %v", err)
	}
	enc := EncodeG1(g)
	decoded, err := DecodeG1(enc)
	if err != nil {
		t.Fatalf("decode generator: %v", err)
	}
	if !decoded.X.Equal(&g.X) || !decoded.Y.Equal(&g.Y) {
		t.Fatal("round trip changed point")
	}
}

func TestValidG1RejectsIdentity(t *testing.T) {
	var zero [64]byte
	if _, err := DecodeG1(zero); err != ErrPointAtInfinity {
		t.Fatalf("got %v, want ErrPointAtInfinity", err)
	}
}

func TestValidG1RejectsOffCurve(t *testing.T) {
	g := genG1()
	enc := EncodeG1(g)
	enc[63] ^= 0x01 // perturb low byte of y
	if _, err := DecodeG1(enc); err == nil {
		t.Fatal("expected rejection of perturbed point")
	}
}

func TestNegG1SatisfiesCurveEquation(t *testing.T) {
	g := genG1()
	n := NegG1(g)
	if err := ValidG1(n); err != nil {
		t.Fatalf("negated generator must remain on curve: %v", err)
	}
}

func TestICEvalArityMismatch(t *testing.T) {
	g := genG1()
	_, err := ICEval([]bn254.G1Affine{g, g}, nil)
	if err != ErrVKArityMismatch {
		t.Fatalf("got %v, want ErrVKArityMismatch", err)
	}
}

func TestICEvalAccumulates(t *testing.T) {
	g := genG1()
	ic := []bn254.G1Affine{g, g}
	res, err := ICEval(ic, []*big.Int{big.NewInt(1)})
	if err != nil {
		t.Fatalf("ic_eval: %v", err)
	}
	if err := ValidG1(res); err != nil {
		t.Fatalf("accumulated point must be on curve: %v", err)
	}
}
