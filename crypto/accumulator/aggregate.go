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
	zkppoe "github.com/bnb-chain/rsa-accumulator/crypto/zkp/poe"
	zkppoke2 "github.com/bnb-chain/rsa-accumulator/crypto/zkp/poke2"
)

type (
	// NonMemStarWitness is a non-membership witness bundled with
	// proofs of its own well-formedness, so verifiers never
	// exponentiate by the accumulated set.
	NonMemStarWitness struct {
		D      *big.Int
		V      *big.Int
		ProofD *zkppoke2.Proof // knowledge of b with root^b == v
		ProofG *zkppoe.Proof   // d^x == g * v^-1
	}
)

// AggMemWit merges the membership witnesses of two distinct members
// into one witness for the product x*y, attached to a proof of
// exponentiation so the aggregate can be checked cheaply.
func (acc *Accumulator) AggMemWit(wx, wy, x, y *big.Int) (*big.Int, *zkppoe.Proof, error) {
	wxy, err := crypto.ShamirTrick(wx, wy, x, y, acc.n)
	if err != nil {
		return nil, nil, err
	}
	xy := new(big.Int).Mul(x, y)
	pf, err := zkppoe.NewProof(xy, wxy, acc.root, acc.n)
	if err != nil {
		return nil, nil, err
	}
	return wxy, pf, nil
}

// VerAggMemWit checks an aggregated witness via its proof of
// exponentiation.
func (acc *Accumulator) VerAggMemWit(wxy *big.Int, pf *zkppoe.Proof, x, y *big.Int) bool {
	if wxy == nil || x == nil || y == nil {
		return false
	}
	xy := new(big.Int).Mul(x, y)
	return pf.Verify(xy, wxy, acc.root, acc.n)
}

// MemWitCreateStar returns a membership witness together with a proof
// of exponentiation over it, so verification does not need the
// element's full witness equation.
func (acc *Accumulator) MemWitCreateStar(x *big.Int) (*big.Int, *zkppoe.Proof, error) {
	w, err := acc.MemWitCreate(x)
	if err != nil {
		return nil, nil, err
	}
	if acc.root.Cmp(w) == 0 {
		return nil, nil, errors.Errorf("%s is not a member of the accumulated set", x)
	}
	pf, err := zkppoe.NewProof(x, w, acc.root, acc.n)
	if err != nil {
		return nil, nil, err
	}
	return w, pf, nil
}

// VerMemStar checks a starred membership witness.
func (acc *Accumulator) VerMemStar(x, w *big.Int, pf *zkppoe.Proof) bool {
	if x == nil || w == nil {
		return false
	}
	return pf.Verify(x, w, acc.root, acc.n)
}

// MemWitX aggregates witnesses from two accumulators sharing the same
// group into a single cross-accumulator witness: the product of the
// two witnesses proves x in this accumulator and y in the other
// simultaneously.
func (acc *Accumulator) MemWitX(otherRoot, wx, wy, x, y *big.Int) *big.Int {
	return common.ModInt(acc.n).Mul(wx, wy)
}

// VerMemX accepts iff x and y are coprime and pi^(x*y) equals
// root^y * otherRoot^x (mod n).
func (acc *Accumulator) VerMemX(otherRoot, pi, x, y *big.Int) bool {
	if otherRoot == nil || pi == nil || x == nil || y == nil || x.Sign() <= 0 || y.Sign() <= 0 {
		return false
	}
	gcd := new(big.Int).GCD(nil, nil, x, y)
	if gcd.Cmp(one) != 0 {
		return false
	}
	modN := common.ModInt(acc.n)
	lhs := modN.Exp(pi, new(big.Int).Mul(x, y))
	rhs := modN.Mul(modN.Exp(acc.root, y), modN.Exp(otherRoot, x))
	return lhs.Cmp(rhs) == 0
}

// NonMemWitCreateStar builds a non-membership witness whose
// well-formedness is itself proven: a PoKE2 for the Bezout exponent
// of the state part and a PoE tying d to g * v^-1.
func (acc *Accumulator) NonMemWitCreateStar(x *big.Int) (*NonMemStarWitness, error) {
	if err := checkElement(x); err != nil {
		return nil, err
	}
	gcd, a, b := crypto.Bezout(x, acc.set)
	if gcd.Cmp(one) != 0 {
		return nil, errors.Errorf("%s is a member of the accumulated set", x)
	}
	modN := common.ModInt(acc.n)

	d, err := modN.ExpSigned(acc.g, a)
	if err != nil {
		return nil, errors.Wrap(err, "generator is not invertible")
	}
	v, err := modN.ExpSigned(acc.root, b)
	if err != nil {
		return nil, errors.Wrap(err, "state is not invertible")
	}

	pfD, err := zkppoke2.NewProof(b, acc.root, v, acc.n)
	if err != nil {
		return nil, err
	}

	vInv := modN.ModInverse(v)
	if vInv == nil {
		return nil, errors.Errorf("%s is not invertible in the group", v)
	}
	k := modN.Mul(acc.g, vInv)
	pfG, err := zkppoe.NewProof(x, d, k, acc.n)
	if err != nil {
		return nil, err
	}

	return &NonMemStarWitness{D: d, V: v, ProofD: pfD, ProofG: pfG}, nil
}

// VerNonMemStar checks both halves of a starred non-membership
// witness: the PoKE2 against (root, v) and the PoE against
// (x, d, g * v^-1).
func (acc *Accumulator) VerNonMemStar(x *big.Int, w *NonMemStarWitness) bool {
	if x == nil || w == nil || w.D == nil || w.V == nil {
		return false
	}
	if !w.ProofD.Verify(acc.root, w.V, acc.n) {
		return false
	}
	modN := common.ModInt(acc.n)
	vInv := modN.ModInverse(w.V)
	if vInv == nil {
		return false
	}
	k := modN.Mul(acc.g, vInv)
	return w.ProofG.Verify(x, w.D, k, acc.n)
}
