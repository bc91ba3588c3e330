// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package accumulator implements a dynamic universal accumulator over
// a group of unknown order, following Boneh, Bünz and Fisch,
// "Batching Techniques for Accumulators with Applications to IOPs and
// Stateless Blockchains".
//
// The accumulator commits to a set of odd primes as a single group
// element root = g^(product of the set) mod n. Membership of x is
// attested by an x-th root of the state; non-membership by a Bezout
// pair. Callers are expected to hash arbitrary data to primes before
// insertion and must never insert the same prime twice: duplicates are
// not detected and silently break soundness.
//
// Mutators require exclusive access. Witness creation and verification
// are read-only and may run in parallel on a Clone.
package accumulator

import (
	"context"
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/bnb-chain/rsa-accumulator/crypto/rsagroup"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

type (
	// Accumulator is the only stateful value; root == g^set mod n holds
	// after every mutation.
	Accumulator struct {
		bits int      // security parameter: bit length of the modulus
		g    *big.Int // generator, fixed at setup
		n    *big.Int // modulus of unknown factorisation
		root *big.Int // current state
		set  *big.Int // product of all accumulated primes
	}
)

// Setup runs the trusted setup and returns an empty accumulator whose
// state is the generator itself. The factorisation of the modulus is
// discarded inside the group generation.
func Setup(ctx context.Context, rnd io.Reader, bits int, optionalConcurrency ...int) (*Accumulator, error) {
	grp, err := rsagroup.Generate(ctx, rnd, bits, optionalConcurrency...)
	if err != nil {
		return nil, errors.Wrap(err, "trusted setup failed")
	}
	return New(grp, bits), nil
}

// New builds an empty accumulator over an existing group. Use this to
// run several accumulators against a shared trusted setup.
func New(grp *rsagroup.Group, bits int) *Accumulator {
	return &Accumulator{
		bits: bits,
		g:    new(big.Int).Set(grp.G),
		n:    new(big.Int).Set(grp.N),
		root: new(big.Int).Set(grp.G),
		set:  big.NewInt(1),
	}
}

// State returns the current public state.
func (acc *Accumulator) State() *big.Int {
	return new(big.Int).Set(acc.root)
}

// Group returns the public parameters the accumulator runs on.
func (acc *Accumulator) Group() *rsagroup.Group {
	return &rsagroup.Group{
		N: new(big.Int).Set(acc.n),
		G: new(big.Int).Set(acc.g),
	}
}

// Clone returns an independent snapshot. Read-only operations on a
// snapshot are safe to run concurrently with mutations of the
// original.
func (acc *Accumulator) Clone() *Accumulator {
	return &Accumulator{
		bits: acc.bits,
		g:    new(big.Int).Set(acc.g),
		n:    new(big.Int).Set(acc.n),
		root: new(big.Int).Set(acc.root),
		set:  new(big.Int).Set(acc.set),
	}
}

// ValidateBasic reports whether the state invariant g^set == root
// holds. A false result indicates a bug, not a data condition; the
// check is linear in the accumulated set and meant for tests and
// debugging.
func (acc *Accumulator) ValidateBasic() bool {
	if acc == nil || acc.g == nil || acc.n == nil || acc.root == nil || acc.set == nil {
		return false
	}
	return new(big.Int).Exp(acc.g, acc.set, acc.n).Cmp(acc.root) == 0
}

// checkElement rejects values that can never be accumulator elements.
// It cannot detect composites or duplicates; those remain the
// caller's contract.
func checkElement(x *big.Int) error {
	if x == nil {
		return errors.New("element is nil")
	}
	if x.Cmp(two) <= 0 || x.Bit(0) == 0 {
		return errors.Errorf("element %s is outside the odd primes domain", x)
	}
	return nil
}

// Add accumulates the odd prime x: set becomes set*x and the state is
// raised to x.
func (acc *Accumulator) Add(x *big.Int) error {
	if err := checkElement(x); err != nil {
		return err
	}
	acc.set.Mul(acc.set, x)
	acc.root.Exp(acc.root, x, acc.n)
	return nil
}

// MemWitCreate returns the membership witness for x: the accumulator
// state with x factored back out, i.e. g^(set/x). Fails when x does
// not divide the accumulated set.
func (acc *Accumulator) MemWitCreate(x *big.Int) (*big.Int, error) {
	if x == nil || x.Sign() <= 0 {
		return nil, errors.New("element is nil or not positive")
	}
	rest, r := new(big.Int).QuoRem(acc.set, x, new(big.Int))
	if r.Sign() != 0 {
		return nil, errors.Errorf("%s is not a member of the accumulated set", x)
	}
	return new(big.Int).Exp(acc.g, rest, acc.n), nil
}

// VerMem accepts iff w^x recreates the current state.
func (acc *Accumulator) VerMem(w, x *big.Int) bool {
	if w == nil || x == nil || x.Sign() <= 0 {
		return false
	}
	return new(big.Int).Exp(w, x, acc.n).Cmp(acc.root) == 0
}

// Del removes x by recomputing the state from the generator, which is
// linear in the size of the accumulated set. DelWithWitness is the
// constant-time-in-the-set path and should be preferred when a
// witness for x is at hand.
func (acc *Accumulator) Del(x *big.Int) error {
	if x == nil || x.Sign() <= 0 {
		return errors.New("element is nil or not positive")
	}
	rest, r := new(big.Int).QuoRem(acc.set, x, new(big.Int))
	if r.Sign() != 0 {
		return errors.Errorf("%s is not a member of the accumulated set", x)
	}
	acc.set.Set(rest)
	acc.root.Exp(acc.g, acc.set, acc.n)
	return nil
}
