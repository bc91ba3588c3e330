// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package accumulator_test

import (
	"context"
	"io"
	"math/big"
	"testing"

	"github.com/ipfs/go-log"
	"github.com/stretchr/testify/assert"

	"github.com/bnb-chain/rsa-accumulator/common"
	. "github.com/bnb-chain/rsa-accumulator/crypto/accumulator"
	"github.com/bnb-chain/rsa-accumulator/crypto/rsagroup"
)

const (
	testBitLen      = 256 // insecure, but faster tests
	testPrimeBitLen = 256
)

func setUp(t *testing.T, level string) {
	if err := log.SetLogLevel("rsa-accumulator", level); err != nil {
		t.Fatal(err)
	}
}

// newTestAccumulator returns an empty accumulator over a
// deterministically generated group, plus the reader used to seed it
// so tests can draw further reproducible primes from the same stream.
func newTestAccumulator(t *testing.T) (*Accumulator, io.Reader) {
	seed := make([]byte, 32)
	rnd, err := common.NewDeterministicReader(seed)
	assert.NoError(t, err)

	acc, err := Setup(context.Background(), rnd, testBitLen, 1)
	assert.NoError(t, err)
	assert.True(t, acc.ValidateBasic())
	return acc, rnd
}

func testPrimes(t *testing.T, rnd io.Reader, k, bits int) []*big.Int {
	xs := make([]*big.Int, k)
	for i := range xs {
		xs[i] = common.GetRandomOddPrimeInt(rnd, bits)
		assert.NotNil(t, xs[i])
	}
	return xs
}

func TestStatic(t *testing.T) {
	setUp(t, "info")
	acc, rnd := newTestAccumulator(t)

	xs := testPrimes(t, rnd, 5, testPrimeBitLen)
	for _, x := range xs {
		assert.NoError(t, acc.Add(x))
		assert.True(t, acc.ValidateBasic(), "state invariant must hold after every add")
	}

	for _, x := range xs {
		w, err := acc.MemWitCreate(x)
		assert.NoError(t, err)
		assert.True(t, acc.VerMem(w, x), "every generated witness must verify")
	}
}

func TestDynamic(t *testing.T) {
	setUp(t, "info")
	acc, rnd := newTestAccumulator(t)

	xs := testPrimes(t, rnd, 5, testPrimeBitLen)
	for _, x := range xs {
		assert.NoError(t, acc.Add(x))
	}

	ws := make([]*big.Int, len(xs))
	for i, x := range xs {
		w, err := acc.MemWitCreate(x)
		assert.NoError(t, err)
		assert.True(t, acc.VerMem(w, x))
		ws[i] = w
	}

	for i, x := range xs {
		assert.NoError(t, acc.Del(x))
		assert.True(t, acc.ValidateBasic(), "state invariant must hold after every delete")
		assert.False(t, acc.VerMem(ws[i], x), "stale witness must not verify after deletion")
	}
}

func TestUniversal(t *testing.T) {
	setUp(t, "info")
	acc, rnd := newTestAccumulator(t)

	xs := testPrimes(t, rnd, 5, testPrimeBitLen)
	for _, x := range xs {
		assert.NoError(t, acc.Add(x))
	}

	for i := 0; i < 5; i++ {
		y := common.GetRandomOddPrimeInt(rnd, testPrimeBitLen)

		w, err := acc.NonMemWitCreate(y)
		assert.NoError(t, err)
		assert.True(t, acc.VerNonMem(w, y))
	}
}

func TestNonMemWitCreateRejectsMember(t *testing.T) {
	acc, rnd := newTestAccumulator(t)

	x := common.GetRandomOddPrimeInt(rnd, testPrimeBitLen)
	assert.NoError(t, acc.Add(x))

	_, err := acc.NonMemWitCreate(x)
	assert.Error(t, err, "a member has no non-membership witness")
}

func TestVerNonMemRejectsMember(t *testing.T) {
	acc, rnd := newTestAccumulator(t)

	x := common.GetRandomOddPrimeInt(rnd, testPrimeBitLen)
	y := common.GetRandomOddPrimeInt(rnd, testPrimeBitLen)
	assert.NoError(t, acc.Add(x))

	w, err := acc.NonMemWitCreate(y)
	assert.NoError(t, err)
	assert.False(t, acc.VerNonMem(w, x), "witness for y must not attest non-membership of x")
}

func TestAddRejectsInvalidElements(t *testing.T) {
	acc, _ := newTestAccumulator(t)
	before := acc.State()

	assert.Error(t, acc.Add(nil))
	assert.Error(t, acc.Add(big.NewInt(1)))
	assert.Error(t, acc.Add(big.NewInt(2)), "2 is outside the odd primes domain")
	assert.Error(t, acc.Add(big.NewInt(10)))

	assert.Zero(t, acc.State().Cmp(before), "rejected adds must not change the state")
}

func TestDelNonMember(t *testing.T) {
	acc, rnd := newTestAccumulator(t)

	x := common.GetRandomOddPrimeInt(rnd, testPrimeBitLen)
	y := common.GetRandomOddPrimeInt(rnd, testPrimeBitLen)
	assert.NoError(t, acc.Add(x))
	before := acc.State()

	assert.Error(t, acc.Del(y))
	assert.Zero(t, acc.State().Cmp(before), "failed delete must not change the state")
	assert.True(t, acc.ValidateBasic())
}

func TestMemWitCreateNonMember(t *testing.T) {
	acc, rnd := newTestAccumulator(t)

	x := common.GetRandomOddPrimeInt(rnd, testPrimeBitLen)
	y := common.GetRandomOddPrimeInt(rnd, testPrimeBitLen)
	assert.NoError(t, acc.Add(x))

	_, err := acc.MemWitCreate(y)
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	acc, rnd := newTestAccumulator(t)

	x := common.GetRandomOddPrimeInt(rnd, testPrimeBitLen)
	assert.NoError(t, acc.Add(x))

	snapshot := acc.Clone()
	y := common.GetRandomOddPrimeInt(rnd, testPrimeBitLen)
	assert.NoError(t, acc.Add(y))

	assert.NotZero(t, acc.State().Cmp(snapshot.State()), "snapshot must not follow later mutations")
	assert.True(t, snapshot.ValidateBasic())

	// witnesses created on the snapshot verify against the snapshot
	w, err := snapshot.MemWitCreate(x)
	assert.NoError(t, err)
	assert.True(t, snapshot.VerMem(w, x))
	assert.False(t, acc.VerMem(w, x), "snapshot witness is stale for the mutated accumulator")
}

func TestSharedGroup(t *testing.T) {
	acc, rnd := newTestAccumulator(t)

	other := New(acc.Group(), testBitLen)
	assert.True(t, other.ValidateBasic())

	x := common.GetRandomOddPrimeInt(rnd, testPrimeBitLen)
	assert.NoError(t, other.Add(x))
	w, err := other.MemWitCreate(x)
	assert.NoError(t, err)
	assert.True(t, other.VerMem(w, x))
}

func TestSetupDeterministic(t *testing.T) {
	acc1, _ := newTestAccumulator(t)
	acc2, _ := newTestAccumulator(t)
	assert.Zero(t, acc1.State().Cmp(acc2.State()), "same seed must reproduce the same setup")
}

func TestSetupCancelled(t *testing.T) {
	seed := make([]byte, 32)
	rnd, err := common.NewDeterministicReader(seed)
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = rsagroup.Generate(ctx, rnd, testBitLen, 1)
	assert.Error(t, err)
}
