// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"encoding/binary"
	"io"
	"math/big"

	"github.com/otiai10/primes"
	"golang.org/x/crypto/blake2b"
)

const (
	hashInputDelimiter = byte('$')

	// HashToPrimeBytes is the byte width of primes returned by HashToPrime.
	HashToPrimeBytes = 16

	// Miller-Rabin rounds for the probable prime test in HashToPrime.
	primalityRounds = 20

	// candidates are first sieved by trial division with primes below this bound
	trialDivisionBound = 1000
)

var smallPrimeList []int64

func init() {
	// init primes cache
	smallPrimeList = primes.Until(trialDivisionBound).List()
}

// frameBigInts encodes a tuple of big.Ints into a single unambiguous
// byte string: an operand-count prefix, then each operand's unsigned
// big-endian bytes followed by a delimiter and the operand's length.
// The framing makes the encoding injective so that hash inputs cannot
// collide across operand boundaries.
func frameBigInts(in []*big.Int) []byte {
	inLen := len(in)
	// prevent hash collisions with this prefix containing the block count
	inLenBz := make([]byte, 64/8)
	binary.LittleEndian.PutUint64(inLenBz, uint64(inLen))
	ptrs := make([][]byte, inLen)
	bzSize := 0
	for i, n := range in {
		ptrs[i] = n.Bytes()
		bzSize += len(ptrs[i])
	}
	dataCap := len(inLenBz) + bzSize + inLen + (inLen * 8)
	data := make([]byte, 0, dataCap)
	data = append(data, inLenBz...)
	for i := range in {
		data = append(data, ptrs[i]...)
		data = append(data, hashInputDelimiter) // safety delimiter
		dataLen := make([]byte, 8)              // 64-bits
		binary.LittleEndian.PutUint64(dataLen, uint64(len(ptrs[i])))
		data = append(data, dataLen...) // Security audit: length of each byte buffer should be added after
		// each security delimiters in order to enforce proper domain separation
	}
	return data
}

// HashToPrime maps the given integers to a 128-bit probable prime.
// The first 16 digest bytes are taken as a big-endian integer and the
// digest is iterated on its own output until the value passes trial
// division and 20 rounds of Miller-Rabin.
func HashToPrime(in ...*big.Int) *big.Int {
	if len(in) == 0 {
		return nil
	}
	digest := blake2b.Sum512(frameBigInts(in))
	y := new(big.Int).SetBytes(digest[:HashToPrimeBytes])
	for !isHashPrime(y) {
		digest = blake2b.Sum512(y.Bytes())
		y = new(big.Int).SetBytes(digest[:HashToPrimeBytes])
	}
	return y
}

func isHashPrime(y *big.Int) bool {
	m := new(big.Int)
	for _, p := range smallPrimeList {
		pBig := big.NewInt(p)
		if m.Mod(y, pBig).Sign() == 0 {
			return y.Cmp(pBig) == 0
		}
	}
	return y.ProbablyPrime(primalityRounds)
}

// HashToGroup maps the given integers into Z/nZ. The digest is
// expanded with a Blake2b XOF to the byte width of n before the
// reduction, so the output is not skewed by a digest narrower than
// the modulus.
func HashToGroup(n *big.Int, in ...*big.Int) *big.Int {
	if len(in) == 0 || n == nil || n.Sign() <= 0 {
		return nil
	}
	outLen := (n.BitLen() + 7) / 8
	xof, err := blake2b.NewXOF(uint32(outLen), nil)
	if err != nil {
		Logger.Errorf("HashToGroup NewXOF failed: %v", err)
		return nil
	}
	if _, err = xof.Write(frameBigInts(in)); err != nil {
		Logger.Errorf("HashToGroup Write() failed: %v", err)
		return nil
	}
	out := make([]byte, outLen)
	if _, err = io.ReadFull(xof, out); err != nil {
		Logger.Errorf("HashToGroup Read() failed: %v", err)
		return nil
	}
	y := new(big.Int).SetBytes(out)
	return y.Mod(y, n)
}

// Blake2b512i hashes the given integers to a 512-bit integer.
func Blake2b512i(in ...*big.Int) *big.Int {
	if len(in) == 0 {
		return nil
	}
	digest := blake2b.Sum512(frameBigInts(in))
	return new(big.Int).SetBytes(digest[:])
}
