// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package crypto

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/bnb-chain/rsa-accumulator/common"
)

var (
	one = big.NewInt(1)
)

// Bezout runs the extended Euclidean algorithm on x and y, returning
// (gcd, a, b) such that a*x + b*y = gcd. The coefficients a and b may
// be negative. Both x and y must be > 0.
func Bezout(x, y *big.Int) (gcd, a, b *big.Int) {
	a, b = new(big.Int), new(big.Int)
	gcd = new(big.Int).GCD(a, b, x, y)
	return
}

// ShamirTrick combines an x-th root and a y-th root of a common group
// element into an xy-th root of it. Given wx^x == wy^y == A (mod n)
// and gcd(x, y) = 1, the returned w satisfies w^(x*y) == A (mod n).
// Fails when x and y are not coprime.
func ShamirTrick(wx, wy, x, y, n *big.Int) (*big.Int, error) {
	if wx == nil || wy == nil || x == nil || y == nil || n == nil {
		return nil, errors.New("ShamirTrick received nil value(s)")
	}
	gcd, a, b := Bezout(x, y)
	if gcd.Cmp(one) != 0 {
		return nil, errors.Errorf("exponents are not coprime; gcd was %s", gcd)
	}
	modN := common.ModInt(n)
	// w = wx^b * wy^a, so w^(x*y) = (wx^x)^(b*y) * (wy^y)^(a*x) = A^(a*x + b*y) = A
	wxb, err := modN.ExpSigned(wx, b)
	if err != nil {
		return nil, err
	}
	wya, err := modN.ExpSigned(wy, a)
	if err != nil {
		return nil, err
	}
	return modN.Mul(wxb, wya), nil
}

// RootFactor computes the membership witness of every prime in ps
// against the accumulator g^(ps[0]*...*ps[k-1]) mod n: the i-th output
// is g raised to the product of all primes except ps[i]. The
// divide-and-conquer recursion performs O(k log k) group operations
// where the naive per-element computation needs O(k^2). Output order
// matches the input order.
func RootFactor(g *big.Int, ps []*big.Int, n *big.Int) []*big.Int {
	if len(ps) == 0 {
		return nil
	}
	if len(ps) == 1 {
		return []*big.Int{new(big.Int).Set(g)}
	}
	half := len(ps) / 2
	left, right := ps[:half], ps[half:]

	// each half is witnessed against g raised to the other half's product
	gLeft := new(big.Int).Exp(g, product(right), n)
	gRight := new(big.Int).Exp(g, product(left), n)

	ws := RootFactor(gLeft, left, n)
	return append(ws, RootFactor(gRight, right, n)...)
}

func product(ps []*big.Int) *big.Int {
	acc := big.NewInt(1)
	for _, p := range ps {
		acc.Mul(acc, p)
	}
	return acc
}
