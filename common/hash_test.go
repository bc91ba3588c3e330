// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnb-chain/rsa-accumulator/common"
)

func TestHashToPrime(t *testing.T) {
	for i := 1; i < 10; i++ {
		in := common.MustGetRandomInt(rand.Reader, i*64)

		h := common.HashToPrime(in)
		assert.NotNil(t, h)
		assert.True(t, h.ProbablyPrime(30))
		assert.True(t, h.BitLen() <= common.HashToPrimeBytes*8)
	}
}

func TestHashToPrimeDeterministic(t *testing.T) {
	x, u, w := big.NewInt(65537), big.NewInt(1234567), big.NewInt(42)

	h1 := common.HashToPrime(x, u, w)
	h2 := common.HashToPrime(x, u, w)
	assert.Zero(t, h1.Cmp(h2))

	h3 := common.HashToPrime(x, u, big.NewInt(43))
	assert.NotZero(t, h1.Cmp(h3), "a different statement must yield a different challenge")
}

func TestHashToPrimeBindsOperandBoundaries(t *testing.T) {
	// (0x0102, 0x03) and (0x01, 0x0203) concatenate identically without framing
	h1 := common.HashToPrime(big.NewInt(0x0102), big.NewInt(0x03))
	h2 := common.HashToPrime(big.NewInt(0x01), big.NewInt(0x0203))
	assert.NotZero(t, h1.Cmp(h2))
}

func TestHashToGroup(t *testing.T) {
	for i := 1; i < 10; i++ {
		in := common.MustGetRandomInt(rand.Reader, i*64)
		n := common.MustGetRandomInt(rand.Reader, 1024)
		if n.Sign() == 0 {
			continue
		}

		h := common.HashToGroup(n, in)
		assert.NotNil(t, h)
		assert.True(t, h.Cmp(n) < 0)
		assert.True(t, h.Sign() >= 0)
	}
}

func TestHashToGroupDeterministic(t *testing.T) {
	n := new(big.Int).Mul(big.NewInt(43), big.NewInt(67))
	h1 := common.HashToGroup(n, big.NewInt(7), big.NewInt(11))
	h2 := common.HashToGroup(n, big.NewInt(7), big.NewInt(11))
	assert.Zero(t, h1.Cmp(h2))
}

func TestBlake2b512i(t *testing.T) {
	h := common.Blake2b512i(big.NewInt(1), big.NewInt(2))
	assert.NotNil(t, h)
	assert.True(t, h.BitLen() <= 512)
	assert.Nil(t, common.Blake2b512i())
}
