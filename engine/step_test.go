// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"testing"

	"github.com/blang/semver"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/builtin/auction/reward"
	"github.com/vechain/auction/config"
	"github.com/vechain/auction/types"
)

func TestStepRequestChecks(t *testing.T) {
	e := newEngine(t, config.MustDefault())

	req := stepRequest(e, 1)
	req.ParentStateHash = types.Blake2b([]byte("elsewhere"))
	_, err := e.Step(req)
	assert.ErrorIs(t, err, reverts.ErrParentStateMismatch)

	req = stepRequest(e, 1)
	req.ProtocolVersion = semver.MustParse("2.0.0")
	_, err = e.Step(req)
	assert.ErrorIs(t, err, reverts.ErrInvalidProtocolVersion)

	_, err = e.Step(stepRequest(e, types.InitialEraID))
	assert.ErrorIs(t, err, reverts.ErrEraRegression)

	committed := stepRequest(e, 1)
	result, err := e.Step(committed)
	require.NoError(t, err)
	assert.Equal(t, types.EraID(1), result.EraID)
	assert.Equal(t, e.StateRoot(), result.PostStateHash)
	assert.Equal(t, StatusIdle, e.Status())

	_, err = e.Step(stepRequest(e, 1))
	assert.ErrorIs(t, err, reverts.ErrEraRegression)

	// the exact committed request again, now with a stale parent hash
	_, err = e.Step(committed)
	assert.ErrorIs(t, err, reverts.ErrEraRegression)

	era, err := e.CurrentEra()
	require.NoError(t, err)
	assert.Equal(t, types.EraID(1), era)
}

func TestStepDeterministicRoot(t *testing.T) {
	run := func() types.Hash {
		e := newEngine(t, config.MustDefault())
		_, err := e.Execute(delegateItem(delegatorKey, v1Key, minimumDelegate))
		require.NoError(t, err)
		result, err := e.Step(stepRequest(e, 1, reward.Item{Validator: v1, Amount: uint256.NewInt(1_000)}))
		require.NoError(t, err)
		return result.PostStateHash
	}
	assert.Equal(t, run(), run())
}

func TestRunAuction(t *testing.T) {
	e := newEngine(t, config.MustDefault())
	_, err := e.Execute(DeployItem{
		Caller:     v1,
		EntryPoint: EntryPointWithdrawBid,
		Args:       map[string]string{ArgValidator: v1Key.String(), ArgAmount: "1000000000"},
	})
	require.NoError(t, err)

	set, _, err := e.RunAuction()
	require.NoError(t, err)
	assert.Equal(t, []types.AccountHash{v2}, set.Validators())

	b, err := e.GetBid(v1)
	require.NoError(t, err)
	assert.Nil(t, b)

	eras, err := e.CurrentEra()
	require.NoError(t, err)
	assert.Equal(t, types.InitialEraID, eras)
}

// Two genesis validators with equal stake and no commission. A delegator bonds 1,234,567 motes
// to the first and withdraws it all before the lock elapses. Steps before the lock boundary
// must not see the stake or release it; the step at the boundary releases it exactly once and
// still pays every reward.
func TestDelegateUndelegateScenario(t *testing.T) {
	const (
		delegateAmount = 1_234_567
		blockReward    = 1_000_000_000_000
	)
	e := newEngine(t, config.NewBuilder().WithMinimumDelegationAmount(delegateAmount).Build())
	total := ledgerTotal(t, e)

	rewards := func(era types.EraID) []reward.Item {
		set, found, err := e.GetEraValidators(era)
		require.NoError(t, err)
		require.True(t, found)
		items := make([]reward.Item, 0, len(set))
		for _, w := range set {
			items = append(items, reward.Item{Validator: w.Validator, Amount: uint256.NewInt(blockReward / uint64(len(set)))})
		}
		return items
	}

	_, err := e.Execute(delegateItem(delegatorKey, v1Key, delegateAmount))
	require.NoError(t, err)
	for range 4 {
		_, _, err := e.RunAuction()
		require.NoError(t, err)
	}

	result, err := e.Step(stepRequest(e, 1))
	require.NoError(t, err)
	stake, ok := result.Validators.Stake(v1)
	require.True(t, ok)
	assert.Equal(t, uint64(validatorStake+delegateAmount), stake.Uint64())

	undelegated, err := e.Execute(undelegateItem(delegatorKey, v1Key, delegateAmount))
	require.NoError(t, err)
	releaseEra := undelegated.Unbond.ReleaseEra
	assert.Equal(t, types.EraID(1+config.DefaultLockedFundsPeriodEras), releaseEra)
	assert.Equal(t, total, ledgerTotal(t, e))

	balanceBefore, err := e.Balance(delegator)
	require.NoError(t, err)

	minted := uint64(0)
	for era := types.EraID(2); era <= 4; era++ {
		result, err := e.Step(stepRequest(e, era, rewards(era-1)...))
		require.NoError(t, err)
		assert.Empty(t, result.RewardFailures)
		assert.Empty(t, result.Released)
		minted += blockReward

		b, err := e.GetBid(v1)
		require.NoError(t, err)
		assert.Empty(t, b.Delegators)
		stake, ok := result.Validators.Stake(v1)
		require.True(t, ok)
		assert.Equal(t, b.SelfStake, stake, "era %d carries no delegated stake", era)
	}

	result, err = e.Step(stepRequest(e, releaseEra, rewards(4)...))
	require.NoError(t, err)
	assert.Empty(t, result.RewardFailures)
	require.Len(t, result.Released, 1)
	assert.Equal(t, uint64(delegateAmount), result.Released[0].Amount.Uint64())
	minted += blockReward

	balanceAfter, err := e.Balance(delegator)
	require.NoError(t, err)
	assert.Equal(t, balanceBefore.Uint64()+delegateAmount, balanceAfter.Uint64())
	assert.Equal(t, total+minted, ledgerTotal(t, e))

	result, err = e.Step(stepRequest(e, releaseEra+1, rewards(releaseEra)...))
	require.NoError(t, err)
	assert.Empty(t, result.Released, "released once")

	_, _, err = e.RunAuction()
	require.NoError(t, err)
}
