// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package unbonding

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/lvldb"
	"github.com/vechain/auction/state"
	"github.com/vechain/auction/types"
)

var (
	validator = types.BytesToAccountHash([]byte("validator"))
	alice     = types.BytesToAccountHash([]byte{0xa})
	bob       = types.BytesToAccountHash([]byte{0xb})
)

func newService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(state.New(db, types.Hash{}))
}

func entry(unbonder types.AccountHash, amount uint64, created, release types.EraID) *Entry {
	return &Entry{
		Unbonder:      unbonder,
		Validator:     validator,
		Amount:        uint256.NewInt(amount),
		EraOfCreation: created,
		ReleaseEra:    release,
	}
}

func TestEnqueue(t *testing.T) {
	svc := newService(t)

	assert.ErrorIs(t, svc.Enqueue(entry(alice, 0, 1, 8)), reverts.ErrZeroAmount)
	assert.True(t, reverts.IsInvariant(svc.Enqueue(entry(alice, 1, 8, 1))))

	require.NoError(t, svc.Enqueue(entry(bob, 5, 1, 8)))
	require.NoError(t, svc.Enqueue(entry(alice, 1, 1, 8)))
	require.NoError(t, svc.Enqueue(entry(alice, 2, 2, 9)))

	unbonders, err := svc.Unbonders()
	require.NoError(t, err)
	assert.Equal(t, []types.AccountHash{alice, bob}, unbonders)

	entries, err := svc.Get(alice)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(1), entries[0].Amount.Uint64())
	assert.Equal(t, uint64(2), entries[1].Amount.Uint64())

	total, err := svc.Total()
	require.NoError(t, err)
	assert.Equal(t, uint64(8), total.Uint64())
}

func TestRelease(t *testing.T) {
	svc := newService(t)

	require.NoError(t, svc.Enqueue(entry(bob, 5, 1, 8)))
	require.NoError(t, svc.Enqueue(entry(alice, 1, 1, 8)))
	require.NoError(t, svc.Enqueue(entry(alice, 2, 2, 9)))
	require.NoError(t, svc.Enqueue(entry(alice, 3, 3, 8)))

	credited := map[types.AccountHash]uint64{}
	credit := func(e *Entry) error {
		credited[e.Unbonder] += e.Amount.Uint64()
		return nil
	}

	// not matured yet
	released, err := svc.Release(7, credit)
	require.NoError(t, err)
	assert.Empty(t, released)

	released, err = svc.Release(8, credit)
	require.NoError(t, err)
	require.Len(t, released, 3)
	// alice first, creation order within alice
	assert.Equal(t, alice, released[0].Unbonder)
	assert.Equal(t, uint64(1), released[0].Amount.Uint64())
	assert.Equal(t, uint64(3), released[1].Amount.Uint64())
	assert.Equal(t, bob, released[2].Unbonder)
	assert.Equal(t, map[types.AccountHash]uint64{alice: 4, bob: 5}, credited)

	unbonders, err := svc.Unbonders()
	require.NoError(t, err)
	assert.Equal(t, []types.AccountHash{alice}, unbonders)

	// released exactly once
	released, err = svc.Release(9, credit)
	require.NoError(t, err)
	require.Len(t, released, 1)
	assert.Equal(t, map[types.AccountHash]uint64{alice: 6, bob: 5}, credited)

	unbonders, err = svc.Unbonders()
	require.NoError(t, err)
	assert.Empty(t, unbonders)
}

func TestReleaseCreditFailure(t *testing.T) {
	svc := newService(t)
	require.NoError(t, svc.Enqueue(entry(alice, 1, 1, 2)))

	errCredit := errors.New("credit failed")
	_, err := svc.Release(2, func(*Entry) error { return errCredit })
	assert.ErrorIs(t, err, errCredit)
}
