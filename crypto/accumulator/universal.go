// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package accumulator

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/bnb-chain/rsa-accumulator/common"
	"github.com/bnb-chain/rsa-accumulator/crypto"
)

type (
	// NonMemWitness attests that a prime is outside the accumulated
	// set: D^x * root^B == g (mod n). B is a Bezout coefficient and
	// may be negative.
	NonMemWitness struct {
		D *big.Int
		B *big.Int
	}
)

// NonMemWitCreate builds a non-membership witness for x from the
// Bezout coefficients of (x, set). Well-defined exactly when x is
// coprime to the accumulated set, i.e. not a member.
func (acc *Accumulator) NonMemWitCreate(x *big.Int) (*NonMemWitness, error) {
	if err := checkElement(x); err != nil {
		return nil, err
	}
	gcd, a, b := crypto.Bezout(x, acc.set)
	if gcd.Cmp(one) != 0 {
		return nil, errors.Errorf("%s is a member of the accumulated set", x)
	}
	d, err := common.ModInt(acc.n).ExpSigned(acc.g, a)
	if err != nil {
		return nil, errors.Wrap(err, "generator is not invertible")
	}
	return &NonMemWitness{D: d, B: b}, nil
}

// VerNonMem accepts iff D^x * root^B == g (mod n).
func (acc *Accumulator) VerNonMem(w *NonMemWitness, x *big.Int) bool {
	if w == nil || w.D == nil || w.B == nil || x == nil || x.Sign() <= 0 {
		return false
	}
	modN := common.ModInt(acc.n)
	rootB, err := modN.ExpSigned(acc.root, w.B)
	if err != nil {
		return false
	}
	dx := modN.Exp(w.D, x)
	return modN.Mul(dx, rootB).Cmp(acc.g) == 0
}
