// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20"
)

const (
	mustGetRandomIntMaxBits = 5000
)

// MustGetRandomInt panics if it is unable to gather entropy from `rnd` or when `bits` is <= 0
func MustGetRandomInt(rnd io.Reader, bits int) *big.Int {
	if bits <= 0 || mustGetRandomIntMaxBits < bits {
		panic(fmt.Errorf("MustGetRandomInt: bits should be positive, non-zero and at most %d", mustGetRandomIntMaxBits))
	}
	// Max random value e.g. 2^256 - 1
	max := new(big.Int)
	max = max.Exp(two, big.NewInt(int64(bits)), nil).Sub(max, one)

	// Generate cryptographically strong pseudo-random int between 0 - max
	n, err := rand.Int(rnd, max)
	if err != nil {
		panic(errors.Wrap(err, "rand.Int failure in MustGetRandomInt!"))
	}
	return n
}

func GetRandomPositiveInt(rnd io.Reader, lessThan *big.Int) *big.Int {
	if lessThan == nil || zero.Cmp(lessThan) != -1 {
		return nil
	}
	var try *big.Int
	for {
		try = MustGetRandomInt(rnd, lessThan.BitLen())
		if try.Cmp(lessThan) < 0 && try.Cmp(zero) >= 0 {
			break
		}
	}
	return try
}

func GetRandomPrimeInt(rnd io.Reader, bits int) *big.Int {
	if bits <= 0 {
		return nil
	}
	try, err := rand.Prime(rnd, bits)
	if err != nil ||
		try.Cmp(zero) == 0 {
		// fallback to older method
		for {
			try = MustGetRandomInt(rnd, bits)
			if probablyPrime(try) {
				break
			}
		}
	}
	return try
}

// GetRandomOddPrimeInt returns a random prime from the odd primes
// domain, i.e. excluding 2. Accumulated elements must come from here.
func GetRandomOddPrimeInt(rnd io.Reader, bits int) *big.Int {
	var try *big.Int
	for {
		try = GetRandomPrimeInt(rnd, bits)
		if try == nil {
			return nil
		}
		if try.Bit(0) == 1 && try.Cmp(two) > 0 {
			return try
		}
	}
}

func GetRandomPositiveRelativelyPrimeInt(rnd io.Reader, n *big.Int) *big.Int {
	if n == nil || zero.Cmp(n) != -1 {
		return nil
	}
	var try *big.Int
	for {
		try = MustGetRandomInt(rnd, n.BitLen())
		if IsNumberInMultiplicativeGroup(n, try) {
			break
		}
	}
	return try
}

func IsNumberInMultiplicativeGroup(n, v *big.Int) bool {
	if n == nil || v == nil || zero.Cmp(n) != -1 {
		return false
	}
	gcd := big.NewInt(0)
	return v.Cmp(n) < 0 && v.Cmp(one) > 0 &&
		gcd.GCD(nil, nil, v, n).Cmp(one) == 0
}

// deterministicReader emits a ChaCha20 keystream. It exists for
// reproducible fixtures: the same seed always yields the same stream.
// Not safe for concurrent use; pass concurrency 1 to consumers that
// fan out.
type deterministicReader struct {
	cipher *chacha20.Cipher
}

// NewDeterministicReader returns an entropy source derived entirely
// from the given seed. Seeds longer than the ChaCha20 key size are
// truncated, shorter ones are zero-padded.
func NewDeterministicReader(seed []byte) (io.Reader, error) {
	key := make([]byte, chacha20.KeySize)
	copy(key, seed)
	nonce := make([]byte, chacha20.NonceSize)
	cipher, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init the ChaCha20 keystream")
	}
	return &deterministicReader{cipher: cipher}, nil
}

func (r *deterministicReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}
