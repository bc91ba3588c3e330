// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package rsagroup performs the trusted setup of a group of unknown
// order: an RSA modulus n = p*q built from two safe primes, together
// with a generator of the quadratic residue subgroup. The
// factorisation is dropped before the function returns; anyone holding
// it could forge witnesses, so deployments must run this setup in a
// trusted environment and discard the machine state.
package rsagroup

import (
	"context"
	"io"
	"math/big"
	"runtime"

	"github.com/pkg/errors"

	"github.com/bnb-chain/rsa-accumulator/common"
)

const (
	minModulusBitLen = 16

	// KS-BTL-F-03: check that p-q is also very large in order to avoid square-root attacks
	pQBitLenDifference = 3
)

var (
	one = big.NewInt(1)
)

type (
	// Group is the public output of the trusted setup.
	Group struct {
		N *big.Int // modulus of unknown factorisation
		G *big.Int // generator, a quadratic residue mod N
	}
)

// Generate draws two safe primes of modulusBitLen/2 bits from rnd and
// returns their product together with a quadratic residue generator.
// With a deterministic rnd the concurrency must be 1.
func Generate(ctx context.Context, rnd io.Reader, modulusBitLen int, optionalConcurrency ...int) (*Group, error) {
	var concurrency int
	if 0 < len(optionalConcurrency) {
		if 1 < len(optionalConcurrency) {
			panic(errors.New("Generate: expected 0 or 1 item in `optionalConcurrency`"))
		}
		concurrency = optionalConcurrency[0]
	} else {
		concurrency = runtime.NumCPU()
	}
	if modulusBitLen < minModulusBitLen {
		return nil, errors.Errorf("modulus bit length %d is too small", modulusBitLen)
	}

	var N *big.Int
	{
		tmp := new(big.Int)
		for {
			sgps, err := common.GetRandomSafePrimesConcurrent(ctx, rnd, modulusBitLen/2, 2, concurrency)
			if err != nil {
				return nil, errors.Wrap(err, "safe prime generation failed")
			}
			P, Q := sgps[0].SafePrime(), sgps[1].SafePrime()
			if tmp.Sub(P, Q).BitLen() >= (modulusBitLen/2)-pQBitLenDifference {
				N = tmp.Mul(P, Q)
				break
			}
		}
	}

	// G = r^2 for a random unit r, so G lands in the quadratic residue
	// subgroup; its order is hidden by the unknown factorisation.
	modN := common.ModInt(N)
	var G *big.Int
	for {
		r := common.GetRandomPositiveRelativelyPrimeInt(rnd, N)
		G = modN.Mul(r, r)
		if G.Cmp(one) > 0 {
			break
		}
	}

	return &Group{N: N, G: G}, nil
}
