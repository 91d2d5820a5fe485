// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/auction/builtin/auction/reward"
	"github.com/vechain/auction/config"
	"github.com/vechain/auction/lvldb"
	"github.com/vechain/auction/state"
	"github.com/vechain/auction/types"
)

type testBalances map[types.AccountHash]*uint256.Int

func (b testBalances) Credit(account types.AccountHash, amount *uint256.Int) error {
	sum, err := types.Add(types.CloneMotes(b[account]), amount)
	if err != nil {
		return err
	}
	b[account] = sum
	return nil
}

func (b testBalances) Of(account types.AccountHash) uint64 {
	return types.CloneMotes(b[account]).Uint64()
}

type AuctionTest struct {
	*Auction
	t        *testing.T
	balances testBalances
}

func newTest(t *testing.T, cfg *config.EngineConfig) *AuctionTest {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	balances := testBalances{}
	return &AuctionTest{
		Auction:  New(state.New(db, types.Hash{}), cfg, balances),
		t:        t,
		balances: balances,
	}
}

// WithConfig returns an auction over the same state with another policy.
func (at *AuctionTest) WithConfig(cfg *config.EngineConfig) *AuctionTest {
	return &AuctionTest{
		Auction:  New(at.state, cfg, at.balances),
		t:        at.t,
		balances: at.balances,
	}
}

// Stake returns the total stake of validator, zero if it has no bid.
func (at *AuctionTest) Stake(validator types.AccountHash) uint64 {
	b, err := at.GetBid(validator)
	require.NoError(at.t, err)
	if b == nil {
		return 0
	}
	total, err := b.TotalStake()
	require.NoError(at.t, err)
	return total.Uint64()
}

func account(name string) types.AccountHash {
	return types.BytesToAccountHash(types.Blake2b([]byte(name)).Bytes())
}

func motes(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	auction *AuctionTest
	funcs   []TestFunc
}

func NewSequence(at *AuctionTest) *TestSequence {
	return &TestSequence{auction: at}
}

func (s *TestSequence) AddFunc(f TestFunc) *TestSequence {
	s.funcs = append(s.funcs, f)
	return s
}

func (s *TestSequence) AddBid(validator types.AccountHash, stake uint64, rate types.DelegationRate) *TestSequence {
	return s.AddFunc(func(t *testing.T) {
		_, err := s.auction.AddBid(validator, motes(stake), rate)
		require.NoError(t, err, "add bid %v", validator)
	})
}

func (s *TestSequence) Delegate(delegator, validator types.AccountHash, amount uint64) *TestSequence {
	return s.AddFunc(func(t *testing.T) {
		require.NoError(t, s.auction.Delegate(delegator, validator, motes(amount)), "delegate %v", delegator)
	})
}

func (s *TestSequence) Undelegate(delegator, validator types.AccountHash, amount uint64) *TestSequence {
	return s.AddFunc(func(t *testing.T) {
		_, err := s.auction.Undelegate(delegator, validator, motes(amount))
		require.NoError(t, err, "undelegate %v", delegator)
	})
}

func (s *TestSequence) Step(era types.EraID, items ...reward.Item) *TestSequence {
	return s.AddFunc(func(t *testing.T) {
		transition, err := s.auction.Step(era, items)
		require.NoError(t, err, "step %d", era)
		assert.Empty(t, transition.RewardFailures, "step %d", era)
	})
}

func (s *TestSequence) RunAuction() *TestSequence {
	return s.AddFunc(func(t *testing.T) {
		_, err := s.auction.RunAuction()
		require.NoError(t, err)
	})
}

func (s *TestSequence) AssertStake(validator types.AccountHash, expected uint64) *TestSequence {
	return s.AddFunc(func(t *testing.T) {
		assert.Equal(t, expected, s.auction.Stake(validator), "stake of %v", validator)
	})
}

func (s *TestSequence) AssertBalance(acc types.AccountHash, expected uint64) *TestSequence {
	return s.AddFunc(func(t *testing.T) {
		assert.Equal(t, expected, s.auction.balances.Of(acc), "balance of %v", acc)
	})
}

func (s *TestSequence) Run(t *testing.T) {
	for _, f := range s.funcs {
		f(t)
	}
}
