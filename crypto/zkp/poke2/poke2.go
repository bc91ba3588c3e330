// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package zkppoke2 implements the non-interactive proof of knowledge
// of exponent (PoKE2, BBF19): the prover convinces a verifier that it
// knows some integer x, possibly negative, with u^x == w (mod n). The
// protocol blinds the base with a hashed group element so the proof is
// sound for arbitrary u, and binds the challenge prime to the prover's
// commitment z.
package zkppoke2

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/bnb-chain/rsa-accumulator/common"
)

const (
	ProofBytesParts = 3
)

type (
	Proof struct {
		Z *big.Int // commitment g^x to the secret exponent
		Q *big.Int
		R *big.Int // secret exponent mod the challenge prime, in [0, l)
	}
)

// NewProof proves knowledge of x with u^x == w (mod n). x may be
// negative, in which case u and the hashed base must be invertible
// mod n.
func NewProof(x, u, w, n *big.Int) (*Proof, error) {
	if x == nil || u == nil || w == nil || n == nil || n.Sign() <= 0 {
		return nil, errors.New("NewProof received nil or invalid value(s)")
	}
	modN := common.ModInt(n)

	g := common.HashToGroup(n, u, w)
	z, err := modN.ExpSigned(g, x)
	if err != nil {
		return nil, errors.Wrap(err, "failed to commit to the exponent")
	}

	l := common.HashToPrime(u, w, z)
	alpha := common.Blake2b512i(u, w, z, l)

	// Euclidean division keeps r in [0, l) for negative x too
	q, r := new(big.Int).DivMod(x, l, new(big.Int))

	base := modN.Mul(u, modN.Exp(g, alpha))
	Q, err := modN.ExpSigned(base, q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to exponentiate the blinded base")
	}
	return &Proof{Z: z, Q: Q, R: r}, nil
}

// Verify recomputes the challenges and accepts iff r is in range and
// Q^l * (u*g^alpha)^r == w * z^alpha (mod n).
func (pf *Proof) Verify(u, w, n *big.Int) bool {
	if pf == nil || !pf.ValidateBasic() {
		return false
	}
	if u == nil || w == nil || n == nil || n.Sign() <= 0 {
		return false
	}
	modN := common.ModInt(n)

	g := common.HashToGroup(n, u, w)
	l := common.HashToPrime(u, w, pf.Z)
	if !common.IsInInterval(pf.R, l) {
		return false
	}
	alpha := common.Blake2b512i(u, w, pf.Z, l)

	base := modN.Mul(u, modN.Exp(g, alpha))
	lhs := modN.Mul(modN.Exp(pf.Q, l), modN.Exp(base, pf.R))
	rhs := modN.Mul(new(big.Int).Mod(w, n), modN.Exp(pf.Z, alpha))
	return lhs.Cmp(rhs) == 0
}

func (pf *Proof) ValidateBasic() bool {
	return pf != nil && pf.Z != nil && pf.Q != nil && pf.R != nil
}

func (pf *Proof) Bytes() [][]byte {
	return common.BigIntsToBytes([]*big.Int{pf.Z, pf.Q, pf.R})
}

func NewProofFromBytes(bzs [][]byte) (*Proof, error) {
	if !common.NonEmptyMultiBytes(bzs, ProofBytesParts) {
		return nil, errors.Errorf("expected %d byte parts to construct Proof", ProofBytesParts)
	}
	bis := common.MultiBytesToBigInts(bzs)
	return &Proof{Z: bis[0], Q: bis[1], R: bis[2]}, nil
}
