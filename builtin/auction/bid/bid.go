// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bid

import (
	"slices"

	"github.com/holiman/uint256"

	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/types"
)

// Delegator is one delegated position on a bid.
type Delegator struct {
	Delegator types.AccountHash
	Stake     *uint256.Int
}

// Bid is a validator's participation record. Delegators are kept sorted by account hash.
type Bid struct {
	Validator      types.AccountHash
	SelfStake      *uint256.Int
	DelegationRate types.DelegationRate
	Inactive       bool
	Delegators     []*Delegator
}

// New creates an active bid with no delegators.
func New(validator types.AccountHash, selfStake *uint256.Int, rate types.DelegationRate) *Bid {
	return &Bid{
		Validator:      validator,
		SelfStake:      types.CloneMotes(selfStake),
		DelegationRate: rate,
	}
}

// DelegatedStake returns the sum of all delegator positions.
func (b *Bid) DelegatedStake() (*uint256.Int, error) {
	total := types.ZeroMotes()
	for _, d := range b.Delegators {
		var err error
		if total, err = types.Add(total, d.Stake); err != nil {
			return nil, reverts.Arithmetic(err)
		}
	}
	return total, nil
}

// TotalStake returns self stake plus all delegator positions.
func (b *Bid) TotalStake() (*uint256.Int, error) {
	delegated, err := b.DelegatedStake()
	if err != nil {
		return nil, err
	}
	total, err := types.Add(types.CloneMotes(b.SelfStake), delegated)
	if err != nil {
		return nil, reverts.Arithmetic(err)
	}
	return total, nil
}

// IsEmpty returns whether the bid holds no stake at all.
func (b *Bid) IsEmpty() bool {
	if b.SelfStake != nil && !b.SelfStake.IsZero() {
		return false
	}
	for _, d := range b.Delegators {
		if !d.Stake.IsZero() {
			return false
		}
	}
	return true
}

func (b *Bid) search(delegator types.AccountHash) (int, bool) {
	return slices.BinarySearchFunc(b.Delegators, delegator, func(d *Delegator, target types.AccountHash) int {
		return d.Delegator.Compare(target)
	})
}

// Delegation returns the position of delegator, or nil if it has none.
func (b *Bid) Delegation(delegator types.AccountHash) *Delegator {
	if i, found := b.search(delegator); found {
		return b.Delegators[i]
	}
	return nil
}

// AddDelegatorStake increases the position of delegator, opening it if needed.
func (b *Bid) AddDelegatorStake(delegator types.AccountHash, amount *uint256.Int) error {
	i, found := b.search(delegator)
	if !found {
		b.Delegators = slices.Insert(b.Delegators, i, &Delegator{Delegator: delegator, Stake: amount.Clone()})
		return nil
	}
	sum, err := types.Add(b.Delegators[i].Stake, amount)
	if err != nil {
		return reverts.Arithmetic(err)
	}
	b.Delegators[i].Stake = sum
	return nil
}

// SubDelegatorStake decreases the position of delegator. A position reaching zero is closed.
// Without a position any amount exceeds the stake, so DelegatorNotFound also matches
// UndelegateAmountExceedsStake.
func (b *Bid) SubDelegatorStake(delegator types.AccountHash, amount *uint256.Int) error {
	i, found := b.search(delegator)
	if !found {
		return reverts.ErrDelegatorNotFound.
			Withf("delegator %v on validator %v", delegator, b.Validator).
			Wrap(reverts.ErrUndelegateAmountExceedsStake)
	}
	if b.Delegators[i].Stake.Lt(amount) {
		return reverts.ErrUndelegateAmountExceedsStake.Withf("staked %v, requested %v", b.Delegators[i].Stake.Dec(), amount.Dec())
	}
	rest, err := types.Sub(b.Delegators[i].Stake, amount)
	if err != nil {
		return reverts.Arithmetic(err)
	}
	if rest.IsZero() {
		b.Delegators = slices.Delete(b.Delegators, i, i+1)
		return nil
	}
	b.Delegators[i].Stake = rest
	return nil
}
