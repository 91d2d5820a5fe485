// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"github.com/holiman/uint256"

	"github.com/vechain/auction/builtin/auction"
	"github.com/vechain/auction/builtin/purse"
	"github.com/vechain/auction/config"
	"github.com/vechain/auction/state"
	"github.com/vechain/auction/types"
)

// Balance returns the spendable balance of account.
func (e *Engine) Balance(account types.AccountHash) (balance *uint256.Int, err error) {
	err = e.view(func(_ *auction.Auction, balances *purse.Purse) error {
		balance, err = balances.Balance(account)
		return err
	})
	return balance, err
}

// Supply returns the spendable, bonded and unbonding totals of the ledger.
func (e *Engine) Supply() (spendable, bonded, unbonding *uint256.Int, err error) {
	err = e.view(func(a *auction.Auction, balances *purse.Purse) error {
		if spendable, err = balances.TotalSupply(); err != nil {
			return err
		}
		if bonded, err = a.TotalBonded(); err != nil {
			return err
		}
		unbonding, err = a.TotalUnbonding()
		return err
	})
	return spendable, bonded, unbonding, err
}

// CheckTransfer applies the transfer policy to a transfer between two accounts.
func (e *Engine) CheckTransfer(from, to types.AccountHash) error {
	return e.cfg.CheckTransfer(from, to)
}

// Transfer moves spendable funds between accounts, subject to the transfer policy.
func (e *Engine) Transfer(from, to types.AccountHash, amount *uint256.Int) (types.Hash, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.transact("transfer", func(st *state.State) error {
		if err := e.cfg.CheckTransfer(from, to); err != nil {
			return err
		}
		return purse.New(st).Transfer(from, to, amount)
	})
}

// SettleGas charges payer for spend and routes the fee by the configured fee handling:
// the refund returns to payer, the proposer share to proposer, the accumulated share to the
// system account, and burned motes leave the supply.
func (e *Engine) SettleGas(payer, proposer types.AccountHash, spend config.GasSpend) (settlement config.Settlement, root types.Hash, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	root, err = e.transact("settle_gas", func(st *state.State) error {
		s, err := e.cfg.Settle(spend)
		if err != nil {
			return err
		}
		settlement = s
		total, err := s.Total()
		if err != nil {
			return err
		}
		balances := purse.New(st)
		if err := balances.Debit(payer, total); err != nil {
			return err
		}
		for _, credit := range []struct {
			account types.AccountHash
			amount  *uint256.Int
		}{
			{payer, settlement.Refund},
			{proposer, settlement.ToProposer},
			{types.SystemAccount, settlement.Accumulated},
		} {
			if credit.amount == nil || credit.amount.IsZero() {
				continue
			}
			if err := balances.Credit(credit.account, credit.amount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return config.Settlement{}, types.Hash{}, err
	}
	return settlement, root, nil
}
