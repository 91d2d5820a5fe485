// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"github.com/holiman/uint256"

	"github.com/vechain/auction/builtin/auction/bid"
	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/types"
)

// Item is the reward paid to a validator and its delegators for an era.
type Item struct {
	Validator types.AccountHash
	Amount    *uint256.Int
}

// Share is the part of an item allocated to one delegator.
type Share struct {
	Delegator types.AccountHash
	Amount    *uint256.Int
}

// Allocation is the full split of one item. ValidatorShare plus all delegator shares equals
// the item amount.
type Allocation struct {
	Validator      types.AccountHash
	ValidatorShare *uint256.Int
	Delegators     []Share
}

var hundred = uint256.NewInt(uint64(types.MaxDelegationRate))

// Distribute splits amount across the bid. Each delegator receives
//
//	amount * stake * (100 - rate) / (total * 100)
//
// truncated once, in ascending delegator order. The validator receives what remains, which
// includes every truncation remainder.
func Distribute(b *bid.Bid, amount *uint256.Int) (*Allocation, error) {
	if !b.DelegationRate.Valid() {
		return nil, reverts.Invariant("bid %v has delegation rate %d", b.Validator, b.DelegationRate)
	}
	alloc := &Allocation{
		Validator:      b.Validator,
		ValidatorShare: types.CloneMotes(amount),
	}
	total, err := b.TotalStake()
	if err != nil {
		return nil, err
	}
	if len(b.Delegators) == 0 || total.IsZero() {
		return alloc, nil
	}

	denom, err := types.Mul(total, hundred)
	if err != nil {
		return nil, reverts.Arithmetic(err)
	}
	passthrough := uint256.NewInt(uint64(types.MaxDelegationRate - b.DelegationRate))

	distributed := types.ZeroMotes()
	for _, d := range b.Delegators {
		weight, err := types.Mul(d.Stake, passthrough)
		if err != nil {
			return nil, reverts.Arithmetic(err)
		}
		share, err := types.MulDiv(amount, weight, denom)
		if err != nil {
			return nil, reverts.Arithmetic(err)
		}
		if distributed, err = types.Add(distributed, share); err != nil {
			return nil, reverts.Arithmetic(err)
		}
		alloc.Delegators = append(alloc.Delegators, Share{Delegator: d.Delegator, Amount: share})
	}

	if alloc.ValidatorShare, err = types.Sub(amount, distributed); err != nil {
		return nil, reverts.Invariant("delegator shares %v exceed reward %v", distributed.Dec(), amount.Dec())
	}
	return alloc, nil
}

// Total returns the sum of all shares.
func (a *Allocation) Total() (*uint256.Int, error) {
	total := types.CloneMotes(a.ValidatorShare)
	for _, s := range a.Delegators {
		var err error
		if total, err = types.Add(total, s.Amount); err != nil {
			return nil, reverts.Arithmetic(err)
		}
	}
	return total, nil
}

// Apply compounds the allocation into the bid: the validator share raises the self stake and
// each delegator share raises that delegator's position.
func Apply(b *bid.Bid, a *Allocation) error {
	if a.Validator != b.Validator {
		return reverts.Invariant("allocation for %v applied to %v", a.Validator, b.Validator)
	}
	selfStake, err := types.Add(types.CloneMotes(b.SelfStake), a.ValidatorShare)
	if err != nil {
		return reverts.Arithmetic(err)
	}
	b.SelfStake = selfStake
	for _, s := range a.Delegators {
		if s.Amount.IsZero() {
			continue
		}
		if b.Delegation(s.Delegator) == nil {
			return reverts.Invariant("reward for missing delegator %v", s.Delegator)
		}
		if err := b.AddDelegatorStake(s.Delegator, s.Amount); err != nil {
			return err
		}
	}
	return nil
}
