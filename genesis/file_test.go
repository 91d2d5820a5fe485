// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"testing"

	"github.com/blang/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/auction/config"
	"github.com/vechain/auction/types"
)

const testGenesis = `
protocol_version: "1.2.0"
accounts:
  - public_key: "0x010101010101010101010101010101010101010101010101010101010101010101"
    balance: "1_000_000"
    validator:
      bonded_amount: "1_000_000_000"
      delegation_rate: 5
  - public_key: "0x02020202020202020202020202020202020202020202020202020202020202020202"
    balance: "42"
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(testGenesis))
	require.NoError(t, err)

	v, err := f.Version()
	require.NoError(t, err)
	assert.Equal(t, semver.MustParse("1.2.0"), v)

	b, err := f.Builder()
	require.NoError(t, err)
	require.Len(t, b.accounts, 2)
	assert.Equal(t, testKey(1), b.accounts[0].PublicKey)
	assert.Equal(t, uint64(1_000_000), b.accounts[0].Balance.Uint64())
	assert.Equal(t, uint64(1_000_000_000), b.accounts[0].Validator.BondedAmount.Uint64())
	assert.Equal(t, types.DelegationRate(5), b.accounts[0].Validator.DelegationRate)
	assert.Equal(t, types.AlgorithmSecp256k1, b.accounts[1].PublicKey.Algorithm)
	assert.Len(t, b.accounts[1].PublicKey.Key, types.Secp256k1KeyLength)
	assert.Equal(t, uint64(42), b.accounts[1].Balance.Uint64())
	assert.Nil(t, b.accounts[1].Validator)

	transition, err := b.Build(newState(t), config.MustDefault())
	require.NoError(t, err)
	assert.Len(t, transition.Validators, 1)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("unknown: 1\n"))
	assert.Error(t, err)

	f, err := Parse([]byte("protocol_version: nope\n"))
	require.NoError(t, err)
	_, err = f.Version()
	assert.Error(t, err)

	f, err = Parse([]byte("accounts:\n  - public_key: \"0x00\"\n    balance: \"-1\"\n"))
	require.NoError(t, err)
	_, err = f.Builder()
	assert.Error(t, err)

	f, err = Parse([]byte("accounts: []\n"))
	require.NoError(t, err)
	v, err := f.Version()
	require.NoError(t, err)
	assert.Equal(t, DefaultProtocolVersion, v)
}
