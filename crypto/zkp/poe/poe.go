// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package zkppoe implements the non-interactive proof of
// exponentiation from Wesolowski's "Efficient verifiable delay
// functions": a single group element convinces a verifier that
// u^x == w (mod n) without the verifier exponentiating by x. The
// Fiat-Shamir challenge prime is derived from the full statement
// (x, u, w), which is what soundness rests on.
package zkppoe

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/bnb-chain/rsa-accumulator/common"
)

const (
	ProofBytesParts = 1
)

type (
	Proof struct {
		Q *big.Int
	}
)

// NewProof proves that u^x == w (mod n). x must be non-negative; the
// statement is public, so there is no secret input.
func NewProof(x, u, w, n *big.Int) (*Proof, error) {
	if x == nil || u == nil || w == nil || n == nil || x.Sign() < 0 || n.Sign() <= 0 {
		return nil, errors.New("NewProof received nil or invalid value(s)")
	}
	l := common.HashToPrime(x, u, w)
	q := new(big.Int).Div(x, l)
	Q := new(big.Int).Exp(u, q, n)
	return &Proof{Q: Q}, nil
}

// Verify recomputes the challenge prime l and accepts iff
// Q^l * u^(x mod l) == w (mod n).
func (pf *Proof) Verify(x, u, w, n *big.Int) bool {
	if pf == nil || !pf.ValidateBasic() {
		return false
	}
	if x == nil || u == nil || w == nil || n == nil || x.Sign() < 0 || n.Sign() <= 0 {
		return false
	}
	l := common.HashToPrime(x, u, w)
	r := new(big.Int).Mod(x, l)
	modN := common.ModInt(n)
	lhs := modN.Mul(modN.Exp(pf.Q, l), modN.Exp(u, r))
	return lhs.Cmp(new(big.Int).Mod(w, n)) == 0
}

func (pf *Proof) ValidateBasic() bool {
	return pf != nil && pf.Q != nil
}

func (pf *Proof) Bytes() [][]byte {
	return common.BigIntsToBytes([]*big.Int{pf.Q})
}

func NewProofFromBytes(bzs [][]byte) (*Proof, error) {
	if !common.NonEmptyMultiBytes(bzs, ProofBytesParts) {
		return nil, errors.Errorf("expected %d byte parts to construct Proof", ProofBytesParts)
	}
	return &Proof{Q: new(big.Int).SetBytes(bzs[0])}, nil
}
