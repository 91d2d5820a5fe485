// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/blang/semver"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/vechain/auction/builtin/auction/reward"
	"github.com/vechain/auction/config"
	"github.com/vechain/auction/genesis"
	"github.com/vechain/auction/kv"
	"github.com/vechain/auction/lvldb"
	"github.com/vechain/auction/types"
)

const (
	validatorStake  = 1_000_000_000
	initialBalance  = 100_000_000_000_000
	minimumDelegate = config.DefaultMinimumDelegationAmount
)

var (
	v1Key        = testKey(1)
	v2Key        = testKey(2)
	delegatorKey = testKey(3)
	userKey      = testKey(4)

	v1        = v1Key.AccountHash()
	v2        = v2Key.AccountHash()
	delegator = delegatorKey.AccountHash()
	user      = userKey.AccountHash()

	protocolV1 = semver.MustParse("1.0.0")
)

func testKey(b byte) types.PublicKey {
	pub, err := types.NewEd25519PublicKey(bytes.Repeat([]byte{b}, types.Ed25519KeyLength))
	if err != nil {
		panic(err)
	}
	return pub
}

func newStore(t *testing.T) kv.Store {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testGenesis() *genesis.Builder {
	return new(genesis.Builder).Account(
		genesis.NewValidatorAccount(v1Key, uint256.NewInt(initialBalance), uint256.NewInt(validatorStake), 0),
		genesis.NewValidatorAccount(v2Key, uint256.NewInt(initialBalance), uint256.NewInt(validatorStake), 0),
		genesis.NewAccount(delegatorKey, uint256.NewInt(initialBalance)),
		genesis.NewAccount(userKey, uint256.NewInt(initialBalance)),
	)
}

func newEngine(t *testing.T, cfg *config.EngineConfig) *Engine {
	e, err := New(newStore(t), cfg)
	require.NoError(t, err)
	_, err = e.Genesis(testGenesis(), protocolV1)
	require.NoError(t, err)
	return e
}

func delegateItem(delegatorKey, validatorKey types.PublicKey, amount uint64) DeployItem {
	return DeployItem{
		Caller:     delegatorKey.AccountHash(),
		EntryPoint: EntryPointDelegate,
		Args: map[string]string{
			ArgDelegator: delegatorKey.String(),
			ArgValidator: validatorKey.String(),
			ArgAmount:    strconv.FormatUint(amount, 10),
		},
	}
}

func undelegateItem(delegatorKey, validatorKey types.PublicKey, amount uint64) DeployItem {
	item := delegateItem(delegatorKey, validatorKey, amount)
	item.EntryPoint = EntryPointUndelegate
	return item
}

func addBidItem(validatorKey types.PublicKey, amount uint64, rate uint8) DeployItem {
	return DeployItem{
		Caller:     validatorKey.AccountHash(),
		EntryPoint: EntryPointAddBid,
		Args: map[string]string{
			ArgValidator:      validatorKey.String(),
			ArgAmount:         strconv.FormatUint(amount, 10),
			ArgDelegationRate: strconv.FormatUint(uint64(rate), 10),
		},
	}
}

func stepRequest(e *Engine, era types.EraID, items ...reward.Item) StepRequest {
	return StepRequest{
		ParentStateHash: e.StateRoot(),
		ProtocolVersion: e.ProtocolVersion(),
		NextEraID:       era,
		RewardItems:     items,
	}
}

// ledgerTotal sums spendable, bonded and unbonding funds.
func ledgerTotal(t *testing.T, e *Engine) uint64 {
	spendable, bonded, unbonding, err := e.Supply()
	require.NoError(t, err)
	total, err := types.Sum(spendable, bonded, unbonding)
	require.NoError(t, err)
	return total.Uint64()
}
