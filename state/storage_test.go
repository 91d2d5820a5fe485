// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/auction/types"
)

type position struct {
	Owner  types.AccountHash
	Amount *uint256.Int
	Era    types.EraID
}

func TestMapping(t *testing.T) {
	st, _ := newTestState(t)
	m := NewMapping[types.AccountHash, position](st, "pos.")

	owner := types.BytesToAccountHash([]byte("owner"))

	got, err := m.Get(owner)
	require.NoError(t, err)
	assert.Nil(t, got)

	want := &position{Owner: owner, Amount: uint256.NewInt(1_234_567), Era: 3}
	require.NoError(t, m.Set(owner, want))

	got, err = m.Get(owner)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Owner, got.Owner)
	assert.Equal(t, want.Amount.Uint64(), got.Amount.Uint64())
	assert.Equal(t, want.Era, got.Era)

	m.Delete(owner)
	got, err = m.Get(owner)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRaw(t *testing.T) {
	st, _ := newTestState(t)
	r := NewRaw[[]types.AccountHash](st, "index")

	got, err := r.Get()
	require.NoError(t, err)
	assert.Nil(t, got)

	list := []types.AccountHash{types.BytesToAccountHash([]byte{1})}
	require.NoError(t, r.Set(&list))

	got, err = r.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, list, *got)

	empty := []types.AccountHash{}
	require.NoError(t, r.Set(&empty))
	got, err = r.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, *got)
}
