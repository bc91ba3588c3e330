// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"math/big"

	"github.com/pkg/errors"
)

// modInt is a *big.Int that performs all of its arithmetic with modular reduction.
type modInt big.Int

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

func ModInt(mod *big.Int) *modInt {
	return (*modInt)(mod)
}

func (mi *modInt) Add(x, y *big.Int) *big.Int {
	i := new(big.Int)
	i.Add(x, y)
	return i.Mod(i, mi.i())
}

func (mi *modInt) Sub(x, y *big.Int) *big.Int {
	i := new(big.Int)
	i.Sub(x, y)
	return i.Mod(i, mi.i())
}

func (mi *modInt) Mul(x, y *big.Int) *big.Int {
	i := new(big.Int)
	i.Mul(x, y)
	return i.Mod(i, mi.i())
}

func (mi *modInt) Exp(x, y *big.Int) *big.Int {
	return new(big.Int).Exp(x, y, mi.i())
}

// ExpSigned is Exp extended to signed exponents: a negative exponent
// exponentiates the modular inverse of the base. Fails when y < 0 and
// x is not invertible.
func (mi *modInt) ExpSigned(x, y *big.Int) (*big.Int, error) {
	if y.Sign() >= 0 {
		return mi.Exp(x, y), nil
	}
	xInv := mi.ModInverse(x)
	if xInv == nil {
		return nil, errors.Errorf("ExpSigned: base is not invertible modulo %s", mi.i())
	}
	return mi.Exp(xInv, new(big.Int).Neg(y)), nil
}

func (mi *modInt) ModInverse(g *big.Int) *big.Int {
	return new(big.Int).ModInverse(g, mi.i())
}

func (mi *modInt) i() *big.Int {
	return (*big.Int)(mi)
}

// ModExpSigned computes x^y mod n for a signed exponent y.
func ModExpSigned(x, y, n *big.Int) (*big.Int, error) {
	return ModInt(n).ExpSigned(x, y)
}

func IsInInterval(b *big.Int, bound *big.Int) bool {
	return b.Cmp(bound) == -1 && b.Cmp(zero) >= 0
}
