// Package gbls wraps github.com/supranational/blst's G1/G2/Gt arithmetic
// with the validation tlock needs at its parsing boundary: canonical point
// encodings, prime-order subgroup membership, and the two RFC 9380
// hash-to-curve domain separation tags drand's beacons use.
//
// The packages above this one are organized by "orientation" — which group
// carries the chain public key: internal/ibe holds one implementation per
// orientation, and the root tlock package's IBEEncrypt/IBEDecrypt choose
// between them by point byte length.
package gbls

import (
	"errors"

	blst "github.com/supranational/blst/bindings/go"
)

// Compressed point sizes for BLS12-381.
const (
	G1Size = 48
	G2Size = 96
)

// ScalarSize is the length of a big-endian scalar buffer.
const ScalarSize = 32

// Hash-to-curve domain separation tags, fixed to match drand's own beacon
// message hashing exactly; interoperability depends on these being
// byte-identical to the reference implementation.
const (
	g1DST = "BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_"
	g2DST = "BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_"
)

var (
	// ErrInvalidPoint is returned for a malformed or non-canonical compressed
	// point encoding.
	ErrInvalidPoint = errors.New("gbls: invalid point encoding")

	// ErrNotInSubgroup is returned when a point does not lie in the
	// prime-order subgroup.
	ErrNotInSubgroup = errors.New("gbls: point not in prime-order subgroup")

	// ErrPointAtInfinity is returned where the identity element is
	// specifically disallowed.
	ErrPointAtInfinity = errors.New("gbls: point at infinity")

	// ErrInvalidScalar is returned when a byte string does not reduce to a
	// valid scalar.
	ErrInvalidScalar = errors.New("gbls: invalid scalar")
)

// ParseG1 decodes and validates a compressed G1 point.
func ParseG1(b []byte) (*blst.P1Affine, error) {
	if len(b) != G1Size {
		return nil, ErrInvalidPoint
	}

	var p blst.P1Affine
	if p.Uncompress(b) == nil {
		return nil, ErrInvalidPoint
	}

	if !p.InG1() {
		return nil, ErrNotInSubgroup
	}

	if p.IsInf() {
		return nil, ErrPointAtInfinity
	}

	return &p, nil
}

// ParseG2 decodes and validates a compressed G2 point.
func ParseG2(b []byte) (*blst.P2Affine, error) {
	if len(b) != G2Size {
		return nil, ErrInvalidPoint
	}

	var p blst.P2Affine
	if p.Uncompress(b) == nil {
		return nil, ErrInvalidPoint
	}

	if !p.InG2() {
		return nil, ErrNotInSubgroup
	}

	if p.IsInf() {
		return nil, ErrPointAtInfinity
	}

	return &p, nil
}

// CompressG1 serializes a G1 point to its 48-byte compressed form.
func CompressG1(p *blst.P1Affine) []byte {
	return p.Compress()
}

// CompressG2 serializes a G2 point to its 96-byte compressed form.
func CompressG2(p *blst.P2Affine) []byte {
	return p.Compress()
}

// G1Generator returns the fixed generator of G1.
func G1Generator() *blst.P1Affine {
	return blst.P1Generator().ToAffine()
}

// G2Generator returns the fixed generator of G2.
func G2Generator() *blst.P2Affine {
	return blst.P2Generator().ToAffine()
}

// G1ScalarBaseMult returns r * G1Generator().
func G1ScalarBaseMult(r *blst.Scalar) *blst.P1Affine {
	var p blst.P1
	p.FromAffine(G1Generator())
	p.MultAssign(r)

	return p.ToAffine()
}

// G2ScalarBaseMult returns r * G2Generator().
func G2ScalarBaseMult(r *blst.Scalar) *blst.P2Affine {
	var p blst.P2
	p.FromAffine(G2Generator())
	p.MultAssign(r)

	return p.ToAffine()
}

// G1ScalarMult returns r * p.
func G1ScalarMult(p *blst.P1Affine, r *blst.Scalar) *blst.P1Affine {
	var q blst.P1
	q.FromAffine(p)
	q.MultAssign(r)

	return q.ToAffine()
}

// G2ScalarMult returns r * p.
func G2ScalarMult(p *blst.P2Affine, r *blst.Scalar) *blst.P2Affine {
	var q blst.P2
	q.FromAffine(p)
	q.MultAssign(r)

	return q.ToAffine()
}

// HashToG1 hashes msg to a point in G1 using drand's fixed DST.
func HashToG1(msg []byte) *blst.P1Affine {
	return blst.HashToG1(msg, []byte(g1DST), nil).ToAffine()
}

// HashToG2 hashes msg to a point in G2 using drand's fixed DST.
func HashToG2(msg []byte) *blst.P2Affine {
	return blst.HashToG2(msg, []byte(g2DST), nil).ToAffine()
}

// Pair computes the optimal ate pairing e(a, b) for a in G1 and b in G2,
// returning the Gt element's canonical big-endian serialization.
func Pair(a *blst.P1Affine, b *blst.P2Affine) []byte {
	gt := blst.Fp12MillerLoop(b, a)
	gt.FinalExp()

	return gt.ToBendian()
}

// ScalarFromCanonical deserializes a big-endian scalar, rejecting values at
// or above the curve's subgroup order (as opposed to silently reducing
// them), which callers use to implement rejection sampling.
func ScalarFromCanonical(b [ScalarSize]byte) (*blst.Scalar, bool) {
	var s blst.Scalar
	if s.Deserialize(b[:]) == nil {
		return nil, false
	}

	return &s, true
}
