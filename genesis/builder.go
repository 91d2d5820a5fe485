// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/vechain/auction/builtin/auction"
	"github.com/vechain/auction/builtin/auction/bid"
	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/builtin/purse"
	"github.com/vechain/auction/config"
	"github.com/vechain/auction/state"
	"github.com/vechain/auction/types"
)

// Builder helper to build the genesis state.
type Builder struct {
	accounts   []Account
	stateProcs []func(state *state.State) error
}

// Account adds genesis accounts.
func (b *Builder) Account(accounts ...Account) *Builder {
	b.accounts = append(b.accounts, accounts...)
	return b
}

// State add a state process, run after the accounts are seeded.
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Build seeds balances and bids into st and records the validator set of the initial era.
func (b *Builder) Build(st *state.State, cfg *config.EngineConfig) (*auction.EraTransition, error) {
	if err := b.validate(cfg); err != nil {
		return nil, err
	}

	balances := purse.New(st)
	bids := bid.NewService(st)
	for _, acc := range b.accounts {
		if acc.Balance != nil && !acc.Balance.IsZero() {
			if err := balances.Credit(acc.AccountHash(), acc.Balance); err != nil {
				return nil, errors.Wrap(err, "fund account")
			}
		}
		if acc.Validator != nil {
			genesisBid := bid.New(acc.AccountHash(), acc.Validator.BondedAmount, acc.Validator.DelegationRate)
			if err := bids.Upsert(genesisBid); err != nil {
				return nil, errors.Wrap(err, "bond validator")
			}
		}
	}

	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return nil, errors.Wrap(err, "state process")
		}
	}

	return auction.New(st, cfg, balances).Step(types.InitialEraID, nil)
}

func (b *Builder) validate(cfg *config.EngineConfig) error {
	seen := make(map[types.AccountHash]struct{}, len(b.accounts))
	for _, acc := range b.accounts {
		hash := acc.AccountHash()
		if _, ok := seen[hash]; ok {
			return reverts.ErrInvalidArgument.Withf("duplicate genesis account %v", hash)
		}
		seen[hash] = struct{}{}

		if acc.Validator == nil {
			continue
		}
		if !acc.Validator.DelegationRate.Valid() {
			return reverts.ErrInvalidDelegationRate.Withf("genesis validator %v rate %d", hash, acc.Validator.DelegationRate)
		}
		if acc.Validator.BondedAmount == nil || acc.Validator.BondedAmount.Lt(cfg.MinimumBidAmount()) {
			return reverts.ErrBondTooSmall.Withf("genesis validator %v", hash)
		}
	}
	return nil
}
