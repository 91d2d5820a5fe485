// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/auction/builtin/auction"
	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/builtin/purse"
	"github.com/vechain/auction/config"
	"github.com/vechain/auction/lvldb"
	"github.com/vechain/auction/state"
	"github.com/vechain/auction/types"
)

func testKey(b byte) types.PublicKey {
	pub, err := types.NewEd25519PublicKey(bytes.Repeat([]byte{b}, types.Ed25519KeyLength))
	if err != nil {
		panic(err)
	}
	return pub
}

func newState(t *testing.T) *state.State {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return state.New(db, types.Hash{})
}

func TestBuild(t *testing.T) {
	st := newState(t)
	cfg := config.MustDefault()

	v1, v2, plain := testKey(1), testKey(2), testKey(3)
	transition, err := new(Builder).
		Account(
			NewValidatorAccount(v1, uint256.NewInt(100), uint256.NewInt(1_000), 10),
			NewValidatorAccount(v2, uint256.NewInt(200), uint256.NewInt(2_000), 0),
			NewAccount(plain, uint256.NewInt(300)),
		).
		Build(st, cfg)
	require.NoError(t, err)
	assert.Equal(t, types.InitialEraID, transition.Era)
	assert.Len(t, transition.Validators, 2)

	stake, ok := transition.Validators.Stake(v2.AccountHash())
	require.True(t, ok)
	assert.Equal(t, uint64(2_000), stake.Uint64())

	balances := purse.New(st)
	balance, err := balances.Balance(plain.AccountHash())
	require.NoError(t, err)
	assert.Equal(t, uint64(300), balance.Uint64())

	supply, err := balances.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, uint64(600), supply.Uint64(), "bonded amounts are not spendable")

	a := auction.New(st, cfg, balances)
	b, err := a.GetBid(v1.AccountHash())
	require.NoError(t, err)
	assert.Equal(t, types.DelegationRate(10), b.DelegationRate)

	era, err := a.CurrentEra()
	require.NoError(t, err)
	assert.Equal(t, types.InitialEraID, era)
}

func TestBuildRejections(t *testing.T) {
	cfg := config.MustDefault()

	_, err := new(Builder).
		Account(NewAccount(testKey(1), uint256.NewInt(1)), NewAccount(testKey(1), uint256.NewInt(2))).
		Build(newState(t), cfg)
	assert.ErrorIs(t, err, reverts.ErrInvalidArgument)

	_, err = new(Builder).
		Account(NewValidatorAccount(testKey(1), nil, uint256.NewInt(1), 101)).
		Build(newState(t), cfg)
	assert.ErrorIs(t, err, reverts.ErrInvalidDelegationRate)

	_, err = new(Builder).
		Account(NewValidatorAccount(testKey(1), nil, uint256.NewInt(0), 1)).
		Build(newState(t), cfg)
	assert.ErrorIs(t, err, reverts.ErrBondTooSmall)
}

func TestBuildStateProc(t *testing.T) {
	st := newState(t)
	called := false
	_, err := new(Builder).
		State(func(s *state.State) error {
			called = true
			return nil
		}).
		Build(st, config.MustDefault())
	require.NoError(t, err)
	assert.True(t, called)
}
