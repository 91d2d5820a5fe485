// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"slices"

	"github.com/holiman/uint256"

	"github.com/vechain/auction/builtin/auction/bid"
	"github.com/vechain/auction/builtin/auction/eravalidators"
	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/builtin/auction/reward"
	"github.com/vechain/auction/builtin/auction/unbonding"
	"github.com/vechain/auction/types"
)

//
// Era transition types
//

// RewardFailure is a reward item that could not be applied. Its writes were reverted.
type RewardFailure struct {
	Item reward.Item
	Err  error
}

// EraTransition is the outcome of a step into Era.
type EraTransition struct {
	Era            types.EraID
	Released       []*unbonding.Entry
	Allocations    []*reward.Allocation
	RewardFailures []RewardFailure
	Validators     eravalidators.Set
}

type candidate struct {
	validator types.AccountHash
	stake     *uint256.Int
}

// Step advances the ledger into next. Matured unbonds are released first, then the reward
// items are compounded one by one, and finally the validator set of next is ranked and recorded.
func (a *Auction) Step(next types.EraID, items []reward.Item) (*EraTransition, error) {
	logger.Info("stepping era", "era", next, "rewards", len(items))

	last, recorded, err := a.eraValidatorsService.LastEra()
	if err != nil {
		return nil, err
	}
	if recorded && next <= last {
		err := reverts.ErrEraRegression.Withf("next era %d, last era %d", next, last)
		logger.Info("step failed", "era", next, "error", err)
		return nil, err
	}

	transition := &EraTransition{Era: next}

	if transition.Released, err = a.releaseUnbonds(next); err != nil {
		return nil, err
	}

	for _, item := range items {
		alloc, err := a.applyReward(item)
		if err != nil {
			if !reverts.IsRevertErr(err) || reverts.IsInvariant(err) {
				return nil, err
			}
			logger.Info("reward failed", "validator", item.Validator, "error", err)
			transition.RewardFailures = append(transition.RewardFailures, RewardFailure{Item: item, Err: err})
			continue
		}
		transition.Allocations = append(transition.Allocations, alloc)
	}

	if err := a.dropEmptyBids(); err != nil {
		return nil, err
	}
	if transition.Validators, err = a.rankValidators(); err != nil {
		return nil, err
	}
	if err := a.eraValidatorsService.Record(next, transition.Validators); err != nil {
		return nil, err
	}

	logger.Info("stepped era", "era", next,
		"released", len(transition.Released),
		"failures", len(transition.RewardFailures),
		"validators", len(transition.Validators),
	)
	return transition, nil
}

// RunAuction drops empty bids and returns the validator set the current bids would produce.
// The set is advisory: nothing is recorded, the era does not advance and no unbond is released.
func (a *Auction) RunAuction() (eravalidators.Set, error) {
	logger.Debug("running auction")

	if err := a.dropEmptyBids(); err != nil {
		return nil, err
	}
	return a.rankValidators()
}

func (a *Auction) releaseUnbonds(era types.EraID) ([]*unbonding.Entry, error) {
	return a.unbondingService.Release(era, func(e *unbonding.Entry) error {
		logger.Debug("releasing unbond", "unbonder", e.Unbonder, "amount", e.Amount, "release", e.ReleaseEra)
		return a.balances.Credit(e.Unbonder, e.Amount)
	})
}

// applyReward applies one item inside its own checkpoint, so a failing item leaves no writes.
func (a *Auction) applyReward(item reward.Item) (*reward.Allocation, error) {
	checkpoint := a.state.NewCheckpoint()
	alloc, err := func() (*reward.Allocation, error) {
		if item.Amount == nil {
			return nil, reverts.ErrInvalidArgument.Withf("reward for %v has no amount", item.Validator)
		}
		b, err := a.bidService.GetExisting(item.Validator)
		if err != nil {
			return nil, err
		}
		alloc, err := reward.Distribute(b, item.Amount)
		if err != nil {
			return nil, err
		}
		if err := reward.Apply(b, alloc); err != nil {
			return nil, err
		}
		return alloc, a.bidService.Upsert(b)
	}()
	if err != nil {
		a.state.RevertTo(checkpoint)
		return nil, err
	}
	return alloc, nil
}

func (a *Auction) dropEmptyBids() error {
	var empty []types.AccountHash
	err := a.bidService.Iterate(func(b *bid.Bid) error {
		if b.IsEmpty() {
			empty = append(empty, b.Validator)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, validator := range empty {
		logger.Debug("dropping empty bid", "validator", validator)
		if err := a.bidService.Remove(validator); err != nil {
			return err
		}
	}
	return nil
}

// rankValidators ranks active bids by total stake descending, ties broken by ascending
// account hash, and keeps the top ValidatorSlots.
func (a *Auction) rankValidators() (eravalidators.Set, error) {
	var candidates []candidate
	err := a.bidService.Iterate(func(b *bid.Bid) error {
		if b.Inactive {
			return nil
		}
		stake, err := b.TotalStake()
		if err != nil {
			return err
		}
		if stake.IsZero() {
			return nil
		}
		candidates = append(candidates, candidate{validator: b.Validator, stake: stake})
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(candidates, func(x, y candidate) int {
		if c := y.stake.Cmp(x.stake); c != 0 {
			return c
		}
		return x.validator.Compare(y.validator)
	})
	if slots := int(a.cfg.ValidatorSlots()); len(candidates) > slots {
		candidates = candidates[:slots]
	}

	weights := make([]*eravalidators.Weight, 0, len(candidates))
	for _, c := range candidates {
		weights = append(weights, &eravalidators.Weight{Validator: c.validator, Stake: c.stake})
	}
	return eravalidators.NewSet(weights)
}
