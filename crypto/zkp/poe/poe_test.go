// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package zkppoe_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnb-chain/rsa-accumulator/common"
	"github.com/bnb-chain/rsa-accumulator/crypto/rsagroup"
	. "github.com/bnb-chain/rsa-accumulator/crypto/zkp/poe"
)

const (
	testModulusBitLen = 256 // insecure, but faster tests
	testPrimeBitLen   = 256
)

func testStatement(t *testing.T) (x, u, w, n *big.Int) {
	seed := make([]byte, 32)
	rnd, err := common.NewDeterministicReader(seed)
	assert.NoError(t, err)

	grp, err := rsagroup.Generate(context.Background(), rnd, testModulusBitLen, 1)
	assert.NoError(t, err)

	// x is a product of primes, as the accumulator produces for batches
	x = big.NewInt(1)
	for i := 0; i < 5; i++ {
		x.Mul(x, common.GetRandomOddPrimeInt(rnd, testPrimeBitLen))
	}
	u = grp.G
	w = new(big.Int).Exp(u, x, grp.N)
	return x, u, w, grp.N
}

func TestProofRoundTrip(t *testing.T) {
	x, u, w, n := testStatement(t)

	proof, err := NewProof(x, u, w, n)
	assert.NoError(t, err)
	assert.True(t, proof.ValidateBasic())
	assert.True(t, proof.Verify(x, u, w, n), "proof must verify for a true statement")
}

func TestProofSmallExponent(t *testing.T) {
	// an exponent below the challenge prime makes Q == u^0
	_, u, _, n := testStatement(t)
	x := big.NewInt(3)
	w := new(big.Int).Exp(u, x, n)

	proof, err := NewProof(x, u, w, n)
	assert.NoError(t, err)
	assert.True(t, proof.Verify(x, u, w, n))
}

func TestProofBadStatement(t *testing.T) {
	x, u, w, n := testStatement(t)

	proof, err := NewProof(x, u, w, n)
	assert.NoError(t, err)

	badW := new(big.Int).Add(w, big.NewInt(1))
	assert.False(t, proof.Verify(x, u, badW, n), "proof must not verify a different result")

	badX := new(big.Int).Add(x, big.NewInt(2))
	assert.False(t, proof.Verify(badX, u, w, n), "proof must not verify a different exponent")
}

func TestProofTampered(t *testing.T) {
	x, u, w, n := testStatement(t)

	proof, err := NewProof(x, u, w, n)
	assert.NoError(t, err)

	proof.Q = new(big.Int).Add(proof.Q, big.NewInt(1))
	assert.False(t, proof.Verify(x, u, w, n))
}

func TestProofNilValues(t *testing.T) {
	x, u, w, n := testStatement(t)

	_, err := NewProof(nil, u, w, n)
	assert.Error(t, err)
	_, err = NewProof(new(big.Int).Neg(x), u, w, n)
	assert.Error(t, err, "negative exponents are not part of the PoE statement")

	var nilProof *Proof
	assert.False(t, nilProof.Verify(x, u, w, n))
}

func TestProofBytesRoundTrip(t *testing.T) {
	x, u, w, n := testStatement(t)

	proof, err := NewProof(x, u, w, n)
	assert.NoError(t, err)

	bzs := proof.Bytes()
	assert.Len(t, bzs, ProofBytesParts)

	restored, err := NewProofFromBytes(bzs)
	assert.NoError(t, err)
	assert.True(t, restored.Verify(x, u, w, n))

	_, err = NewProofFromBytes([][]byte{})
	assert.Error(t, err)
}
