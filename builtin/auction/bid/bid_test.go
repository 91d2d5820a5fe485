// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bid

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/types"
)

var (
	validator = types.BytesToAccountHash([]byte("validator"))
	d1        = types.BytesToAccountHash([]byte{1})
	d2        = types.BytesToAccountHash([]byte{2})
	d3        = types.BytesToAccountHash([]byte{3})
)

func TestBidDelegatorsStaySorted(t *testing.T) {
	b := New(validator, uint256.NewInt(100), 10)

	require.NoError(t, b.AddDelegatorStake(d3, uint256.NewInt(30)))
	require.NoError(t, b.AddDelegatorStake(d1, uint256.NewInt(10)))
	require.NoError(t, b.AddDelegatorStake(d2, uint256.NewInt(20)))
	require.NoError(t, b.AddDelegatorStake(d1, uint256.NewInt(5)))

	var order []types.AccountHash
	for _, d := range b.Delegators {
		order = append(order, d.Delegator)
	}
	assert.Equal(t, []types.AccountHash{d1, d2, d3}, order)
	assert.Equal(t, uint64(15), b.Delegation(d1).Stake.Uint64())

	total, err := b.TotalStake()
	require.NoError(t, err)
	assert.Equal(t, uint64(165), total.Uint64())
}

func TestBidSubDelegatorStake(t *testing.T) {
	b := New(validator, uint256.NewInt(0), 0)
	require.NoError(t, b.AddDelegatorStake(d1, uint256.NewInt(10)))

	err := b.SubDelegatorStake(d2, uint256.NewInt(1))
	assert.ErrorIs(t, err, reverts.ErrDelegatorNotFound)
	assert.ErrorIs(t, err, reverts.ErrUndelegateAmountExceedsStake)

	err = b.SubDelegatorStake(d1, uint256.NewInt(11))
	assert.ErrorIs(t, err, reverts.ErrUndelegateAmountExceedsStake)

	require.NoError(t, b.SubDelegatorStake(d1, uint256.NewInt(4)))
	assert.Equal(t, uint64(6), b.Delegation(d1).Stake.Uint64())
	assert.False(t, b.IsEmpty())

	require.NoError(t, b.SubDelegatorStake(d1, uint256.NewInt(6)))
	assert.Nil(t, b.Delegation(d1))
	assert.Empty(t, b.Delegators)
	assert.True(t, b.IsEmpty())
}

func TestBidTotalStakeOverflow(t *testing.T) {
	b := New(validator, new(uint256.Int).SetAllOne(), 0)
	require.NoError(t, b.AddDelegatorStake(d1, uint256.NewInt(1)))

	_, err := b.TotalStake()
	assert.ErrorIs(t, err, reverts.ErrArithmetic)
}
