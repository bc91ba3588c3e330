// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common_test

import (
	"crypto/rand"
	"io"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnb-chain/rsa-accumulator/common"
)

const (
	randomIntBitLen = 1024
)

func TestGetRandomInt(t *testing.T) {
	rnd := common.MustGetRandomInt(rand.Reader, randomIntBitLen)
	assert.NotZero(t, rnd, "rand int should not be zero")
}

func TestGetRandomPositiveInt(t *testing.T) {
	rnd := common.MustGetRandomInt(rand.Reader, randomIntBitLen)
	rndPos := common.GetRandomPositiveInt(rand.Reader, rnd)
	assert.NotZero(t, rndPos, "rand int should not be zero")
	assert.True(t, rndPos.Cmp(big.NewInt(0)) == 1, "rand int should be positive")
}

func TestGetRandomOddPrimeInt(t *testing.T) {
	p := common.GetRandomOddPrimeInt(rand.Reader, 128)
	assert.NotNil(t, p)
	assert.True(t, p.ProbablyPrime(30))
	assert.EqualValues(t, 1, p.Bit(0), "accumulated primes must be odd")
}

func TestDeterministicReaderReproducible(t *testing.T) {
	seed := make([]byte, 32)

	r1, err := common.NewDeterministicReader(seed)
	assert.NoError(t, err)
	r2, err := common.NewDeterministicReader(seed)
	assert.NoError(t, err)

	b1, b2 := make([]byte, 64), make([]byte, 64)
	_, err = io.ReadFull(r1, b1)
	assert.NoError(t, err)
	_, err = io.ReadFull(r2, b2)
	assert.NoError(t, err)
	assert.Equal(t, b1, b2)

	// both streams are at the same position, so the draws must agree
	p1 := common.GetRandomOddPrimeInt(r1, 128)
	p2 := common.GetRandomOddPrimeInt(r2, 128)
	assert.Zero(t, p1.Cmp(p2), "same seed must yield the same primes")
}

func TestDeterministicReaderSeedsDiffer(t *testing.T) {
	seedA := make([]byte, 32)
	seedB := make([]byte, 32)
	seedB[0] = 1

	rA, err := common.NewDeterministicReader(seedA)
	assert.NoError(t, err)
	rB, err := common.NewDeterministicReader(seedB)
	assert.NoError(t, err)

	bA, bB := make([]byte, 64), make([]byte, 64)
	_, _ = io.ReadFull(rA, bA)
	_, _ = io.ReadFull(rB, bB)
	assert.NotEqual(t, bA, bB)
}
