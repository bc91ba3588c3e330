// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package accumulator

import (
	"math/big"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/bnb-chain/rsa-accumulator/crypto"
	zkppoe "github.com/bnb-chain/rsa-accumulator/crypto/zkp/poe"
)

type (
	// MemberWitness pairs an accumulated prime with its membership
	// witness, as consumed by BatchDel.
	MemberWitness struct {
		X *big.Int
		W *big.Int
	}
)

// BatchAdd accumulates all of xs in one state update and returns a
// proof of exponentiation for it, so verifiers replay one proof
// instead of len(xs) exponentiations. The whole input is validated
// before any state is touched.
func (acc *Accumulator) BatchAdd(xs []*big.Int) (*zkppoe.Proof, error) {
	if len(xs) == 0 {
		return nil, errors.New("batch add requires at least one element")
	}
	var mErr error
	for i, x := range xs {
		if err := checkElement(x); err != nil {
			mErr = multierror.Append(mErr, errors.Wrapf(err, "element %d", i))
		}
	}
	if mErr != nil {
		return nil, mErr
	}

	xStar := big.NewInt(1)
	for _, x := range xs {
		xStar.Mul(xStar, x)
	}

	rootOld := new(big.Int).Set(acc.root)
	acc.set.Mul(acc.set, xStar)
	acc.root.Exp(rootOld, xStar, acc.n)

	return zkppoe.NewProof(xStar, rootOld, acc.root, acc.n)
}

// VerBatchAdd checks a BatchAdd proof against the state before the
// batch and the current state.
func (acc *Accumulator) VerBatchAdd(pf *zkppoe.Proof, rootOld *big.Int, xs []*big.Int) bool {
	if rootOld == nil || len(xs) == 0 {
		return false
	}
	xStar := big.NewInt(1)
	for _, x := range xs {
		if x == nil {
			return false
		}
		xStar.Mul(xStar, x)
	}
	return pf.Verify(xStar, rootOld, acc.root, acc.n)
}

// BatchDel removes every pair's element in one state update, folding
// the supplied membership witnesses into the new state with the
// Shamir trick. The update is all-or-nothing: state is committed only
// after every fold has succeeded, so a failure leaves the accumulator
// untouched. Each witness must be valid for the current state and the
// elements must be distinct primes.
func (acc *Accumulator) BatchDel(pairs []*MemberWitness) (*zkppoe.Proof, error) {
	if len(pairs) == 0 {
		return nil, errors.New("batch delete requires at least one pair")
	}
	var mErr error
	for i, pair := range pairs {
		if pair == nil || pair.X == nil || pair.W == nil {
			mErr = multierror.Append(mErr, errors.Errorf("pair %d is missing a value", i))
		}
	}
	if mErr != nil {
		return nil, mErr
	}

	rootOld := new(big.Int).Set(acc.root)
	newSet := new(big.Int).Set(acc.set)
	r := new(big.Int)

	xStar := new(big.Int).Set(pairs[0].X)
	newRoot := new(big.Int).Set(pairs[0].W)
	newSet.QuoRem(newSet, pairs[0].X, r)
	if r.Sign() != 0 {
		return nil, errors.Errorf("%s is not a member of the accumulated set", pairs[0].X)
	}

	for _, pair := range pairs[1:] {
		folded, err := crypto.ShamirTrick(newRoot, pair.W, xStar, pair.X, acc.n)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fold the witness for %s", pair.X)
		}
		newRoot = folded
		xStar.Mul(xStar, pair.X)
		newSet.QuoRem(newSet, pair.X, r)
		if r.Sign() != 0 {
			return nil, errors.Errorf("%s is not a member of the accumulated set", pair.X)
		}
	}

	pf, err := zkppoe.NewProof(xStar, newRoot, rootOld, acc.n)
	if err != nil {
		return nil, err
	}

	acc.set.Set(newSet)
	acc.root.Set(newRoot)
	return pf, nil
}

// VerBatchDel checks a BatchDel proof: the current state raised to
// the batch product must recreate the state before the deletion.
func (acc *Accumulator) VerBatchDel(pf *zkppoe.Proof, rootOld *big.Int, xs []*big.Int) bool {
	if rootOld == nil || len(xs) == 0 {
		return false
	}
	xStar := big.NewInt(1)
	for _, x := range xs {
		if x == nil {
			return false
		}
		xStar.Mul(xStar, x)
	}
	return pf.Verify(xStar, acc.root, rootOld, acc.n)
}

// DelWithWitness removes x using its membership witness, avoiding the
// full state recomputation Del performs: the witness is the state
// without x.
func (acc *Accumulator) DelWithWitness(w, x *big.Int) error {
	if !acc.VerMem(w, x) {
		return errors.Errorf("witness does not verify for %s", x)
	}
	rest, r := new(big.Int).QuoRem(acc.set, x, new(big.Int))
	if r.Sign() != 0 {
		return errors.Errorf("%s is not a member of the accumulated set", x)
	}
	acc.set.Set(rest)
	acc.root.Set(w)
	return nil
}

// CreateAllMemWit produces the membership witness of every member in
// one near-linear pass. members must be exactly the accumulated set,
// in any order; the output order matches the input.
func (acc *Accumulator) CreateAllMemWit(members []*big.Int) []*big.Int {
	return crypto.RootFactor(acc.g, members, acc.n)
}
