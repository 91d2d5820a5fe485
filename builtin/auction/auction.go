// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/holiman/uint256"

	"github.com/vechain/auction/builtin/auction/bid"
	"github.com/vechain/auction/builtin/auction/eravalidators"
	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/builtin/auction/unbonding"
	"github.com/vechain/auction/config"
	"github.com/vechain/auction/log"
	"github.com/vechain/auction/state"
	"github.com/vechain/auction/types"
)

var logger = log.WithContext("pkg", "auction")

func SetLogger(l log.Logger) {
	logger = l
}

// BalanceKeeper credits released funds to spendable balances.
type BalanceKeeper interface {
	Credit(account types.AccountHash, amount *uint256.Int) error
}

// Auction implements the bidding, delegation and era stepping rules of the staking ledger.
// It never moves spendable balances itself, except to credit released unbonds through the
// BalanceKeeper.
type Auction struct {
	state    *state.State
	cfg      *config.EngineConfig
	balances BalanceKeeper

	bidService           *bid.Service
	unbondingService     *unbonding.Service
	eraValidatorsService *eravalidators.Service
}

// New create a new instance.
func New(st *state.State, cfg *config.EngineConfig, balances BalanceKeeper) *Auction {
	return &Auction{
		state:    st,
		cfg:      cfg,
		balances: balances,

		bidService:           bid.NewService(st),
		unbondingService:     unbonding.NewService(st),
		eraValidatorsService: eravalidators.NewService(st),
	}
}

// BidDelta is the effect of an add_bid on the validator's funds. Exactly one of Debit and
// Unbond is set when the self stake changed.
type BidDelta struct {
	Debit  *uint256.Int
	Unbond *unbonding.Entry
}

//
// Getters - no state change
//

// CurrentEra returns the last recorded era, or the initial era before any was recorded.
func (a *Auction) CurrentEra() (types.EraID, error) {
	era, _, err := a.eraValidatorsService.LastEra()
	return era, err
}

// GetBid returns the bid of validator, or nil if none.
func (a *Auction) GetBid(validator types.AccountHash) (*bid.Bid, error) {
	return a.bidService.Get(validator)
}

// Bids returns all bids in ascending validator order.
func (a *Auction) Bids() ([]*bid.Bid, error) {
	var bids []*bid.Bid
	err := a.bidService.Iterate(func(b *bid.Bid) error {
		bids = append(bids, b)
		return nil
	})
	return bids, err
}

// GetUnbonds returns the pending unbonding entries of unbonder.
func (a *Auction) GetUnbonds(unbonder types.AccountHash) ([]*unbonding.Entry, error) {
	return a.unbondingService.Get(unbonder)
}

// TotalUnbonding returns the sum of all pending unbonding entries.
func (a *Auction) TotalUnbonding() (*uint256.Int, error) {
	return a.unbondingService.Total()
}

// GetEraValidators returns the validator set recorded for era.
func (a *Auction) GetEraValidators(era types.EraID) (eravalidators.Set, bool, error) {
	return a.eraValidatorsService.Get(era)
}

// Eras returns all recorded eras, ascending.
func (a *Auction) Eras() ([]types.EraID, error) {
	return a.eraValidatorsService.Eras()
}

// TotalBonded returns the sum of every bid's total stake.
func (a *Auction) TotalBonded() (*uint256.Int, error) {
	total := types.ZeroMotes()
	err := a.bidService.Iterate(func(b *bid.Bid) error {
		stake, err := b.TotalStake()
		if err != nil {
			return err
		}
		if total, err = types.Add(total, stake); err != nil {
			return reverts.Arithmetic(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return total, nil
}

//
// Setters - state change
//

// AddBid creates the bid of validator or replaces its self stake and delegation rate, and
// re-activates it. An increase must be debited from the validator by the caller, a decrease
// is moved into the unbonding queue.
func (a *Auction) AddBid(validator types.AccountHash, selfStake *uint256.Int, rate types.DelegationRate) (*BidDelta, error) {
	logger.Debug("adding bid", "validator", validator, "stake", selfStake, "rate", rate)

	if !a.cfg.AllowAuctionBids() {
		logger.Info("add bid failed", "validator", validator, "error", reverts.ErrAuctionBidsDisabled)
		return nil, reverts.ErrAuctionBidsDisabled
	}
	if !rate.Valid() {
		return nil, reverts.ErrInvalidDelegationRate.Withf("rate %d", rate)
	}
	if selfStake == nil || selfStake.Lt(a.cfg.MinimumBidAmount()) {
		return nil, reverts.ErrBondTooSmall.Withf("minimum %v", a.cfg.MinimumBidAmount().Dec())
	}

	existing, err := a.bidService.Get(validator)
	if err != nil {
		return nil, err
	}

	delta := &BidDelta{}
	if existing == nil {
		existing = bid.New(validator, selfStake, rate)
		delta.Debit = types.CloneMotes(selfStake)
	} else {
		switch existing.SelfStake.Cmp(selfStake) {
		case -1:
			if delta.Debit, err = types.Sub(selfStake, existing.SelfStake); err != nil {
				return nil, reverts.Arithmetic(err)
			}
		case 1:
			amount, err := types.Sub(existing.SelfStake, selfStake)
			if err != nil {
				return nil, reverts.Arithmetic(err)
			}
			if delta.Unbond, err = a.unbond(validator, validator, amount); err != nil {
				logger.Info("add bid failed", "validator", validator, "error", err)
				return nil, err
			}
		}
		existing.SelfStake = types.CloneMotes(selfStake)
		existing.DelegationRate = rate
		existing.Inactive = false
	}

	if err := a.bidService.Upsert(existing); err != nil {
		return nil, err
	}

	logger.Info("added bid", "validator", validator)
	return delta, nil
}

// WithdrawBid moves amount of the validator's self stake into the unbonding queue. A bid left
// with self stake below the minimum bid becomes inactive.
func (a *Auction) WithdrawBid(validator types.AccountHash, amount *uint256.Int) (*unbonding.Entry, error) {
	logger.Debug("withdrawing bid", "validator", validator, "amount", amount)

	if amount == nil || amount.IsZero() {
		return nil, reverts.ErrZeroAmount
	}
	b, err := a.bidService.GetExisting(validator)
	if err != nil {
		logger.Info("withdraw bid failed", "validator", validator, "error", err)
		return nil, err
	}
	if b.SelfStake.Lt(amount) {
		return nil, reverts.ErrUnbondAmountExceedsStake.Withf("staked %v, requested %v", b.SelfStake.Dec(), amount.Dec())
	}
	if b.SelfStake, err = types.Sub(b.SelfStake, amount); err != nil {
		return nil, reverts.Arithmetic(err)
	}
	if b.SelfStake.IsZero() || b.SelfStake.Lt(a.cfg.MinimumBidAmount()) {
		b.Inactive = true
	}

	entry, err := a.unbond(validator, validator, amount)
	if err != nil {
		return nil, err
	}
	if err := a.bidService.Upsert(b); err != nil {
		return nil, err
	}

	logger.Info("withdrew bid", "validator", validator, "inactive", b.Inactive)
	return entry, nil
}

// ActivateBid re-activates an inactive bid.
func (a *Auction) ActivateBid(validator types.AccountHash) error {
	logger.Debug("activating bid", "validator", validator)

	b, err := a.bidService.GetExisting(validator)
	if err != nil {
		logger.Info("activate bid failed", "validator", validator, "error", err)
		return err
	}
	if b.SelfStake.Lt(a.cfg.MinimumBidAmount()) {
		return reverts.ErrBondTooSmall.Withf("minimum %v", a.cfg.MinimumBidAmount().Dec())
	}
	if !b.Inactive {
		return nil
	}
	b.Inactive = false
	if err := a.bidService.Upsert(b); err != nil {
		return err
	}

	logger.Info("activated bid", "validator", validator)
	return nil
}

// Delegate adds amount to the position of delegator on validator. Opening a position requires
// at least the minimum delegation amount, top-ups do not.
func (a *Auction) Delegate(delegator, validator types.AccountHash, amount *uint256.Int) error {
	logger.Debug("delegating", "delegator", delegator, "validator", validator, "amount", amount)

	if !a.cfg.AllowAuctionBids() {
		logger.Info("delegate failed", "delegator", delegator, "error", reverts.ErrAuctionBidsDisabled)
		return reverts.ErrAuctionBidsDisabled
	}
	if amount == nil || amount.IsZero() {
		return reverts.ErrZeroAmount
	}
	b, err := a.bidService.GetExisting(validator)
	if err != nil {
		logger.Info("delegate failed", "delegator", delegator, "error", err)
		return err
	}
	if b.Delegation(delegator) == nil && amount.Lt(a.cfg.MinimumDelegationAmount()) {
		err := reverts.ErrBelowMinimumDelegation.Withf("minimum %v, requested %v", a.cfg.MinimumDelegationAmount().Dec(), amount.Dec())
		logger.Info("delegate failed", "delegator", delegator, "error", err)
		return err
	}
	if err := b.AddDelegatorStake(delegator, amount); err != nil {
		return err
	}
	if err := a.bidService.Upsert(b); err != nil {
		return err
	}

	logger.Info("delegated", "delegator", delegator, "validator", validator)
	return nil
}

// Undelegate removes amount from the position of delegator on validator right away and queues
// the funds for release after the locked funds period.
func (a *Auction) Undelegate(delegator, validator types.AccountHash, amount *uint256.Int) (*unbonding.Entry, error) {
	logger.Debug("undelegating", "delegator", delegator, "validator", validator, "amount", amount)

	if amount == nil || amount.IsZero() {
		return nil, reverts.ErrZeroAmount
	}
	b, err := a.bidService.GetExisting(validator)
	if err != nil {
		logger.Info("undelegate failed", "delegator", delegator, "error", err)
		return nil, err
	}
	if err := b.SubDelegatorStake(delegator, amount); err != nil {
		logger.Info("undelegate failed", "delegator", delegator, "error", err)
		return nil, err
	}
	entry, err := a.unbond(delegator, validator, amount)
	if err != nil {
		return nil, err
	}
	if err := a.bidService.Upsert(b); err != nil {
		return nil, err
	}

	logger.Info("undelegated", "delegator", delegator, "validator", validator, "release", entry.ReleaseEra)
	return entry, nil
}

func (a *Auction) unbond(unbonder, validator types.AccountHash, amount *uint256.Int) (*unbonding.Entry, error) {
	era, err := a.CurrentEra()
	if err != nil {
		return nil, err
	}
	entry := &unbonding.Entry{
		Unbonder:      unbonder,
		Validator:     validator,
		Amount:        types.CloneMotes(amount),
		EraOfCreation: era,
		ReleaseEra:    era.AddEras(a.cfg.LockedFundsPeriodEras()),
	}
	if err := a.unbondingService.Enqueue(entry); err != nil {
		return nil, err
	}
	return entry, nil
}
