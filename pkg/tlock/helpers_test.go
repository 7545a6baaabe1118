package tlock_test

import (
	blst "github.com/supranational/blst/bindings/go"

	"github.com/driftlock/tlock/pkg/tlock/internal/dstlock"
	"github.com/driftlock/tlock/pkg/tlock/internal/gbls"
)

func testG1PK(secret *blst.Scalar) []byte {
	return gbls.CompressG1(gbls.G1ScalarBaseMult(secret))
}

func testG2PK(secret *blst.Scalar) []byte {
	return gbls.CompressG2(gbls.G2ScalarBaseMult(secret))
}

func testG2Sig(secret *blst.Scalar, round uint64) []byte {
	return gbls.CompressG2(gbls.G2ScalarMult(dstlock.H1G2(round), secret))
}

func testG1Sig(secret *blst.Scalar, round uint64) []byte {
	return gbls.CompressG1(gbls.G1ScalarMult(dstlock.H1G1(round), secret))
}
