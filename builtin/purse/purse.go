// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package purse

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/state"
	"github.com/vechain/auction/types"
)

const (
	slotBalances = "purse.balances."
	slotTotalAdd = "purse.total-add"
	slotTotalSub = "purse.total-sub"
)

type amount struct {
	Value *uint256.Int
}

// Purse keeps the spendable balance of every account. Credits and debits are tallied so the
// total supply can be checked against the sum of all balances.
type Purse struct {
	balances *state.Mapping[types.AccountHash, amount]
	totalAdd *state.Raw[amount]
	totalSub *state.Raw[amount]
}

func New(st *state.State) *Purse {
	return &Purse{
		balances: state.NewMapping[types.AccountHash, amount](st, slotBalances),
		totalAdd: state.NewRaw[amount](st, slotTotalAdd),
		totalSub: state.NewRaw[amount](st, slotTotalSub),
	}
}

func valueOf(a *amount) *uint256.Int {
	if a == nil {
		return types.ZeroMotes()
	}
	return types.CloneMotes(a.Value)
}

// Balance returns the spendable balance of account.
func (p *Purse) Balance(account types.AccountHash) (*uint256.Int, error) {
	a, err := p.balances.Get(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	return valueOf(a), nil
}

// Credit mints amount into account.
func (p *Purse) Credit(account types.AccountHash, value *uint256.Int) error {
	balance, err := p.Balance(account)
	if err != nil {
		return err
	}
	if balance, err = types.Add(balance, value); err != nil {
		return reverts.Arithmetic(err)
	}
	if err := p.tally(p.totalAdd, value); err != nil {
		return err
	}
	return p.setBalance(account, balance)
}

// Debit removes amount from account.
func (p *Purse) Debit(account types.AccountHash, value *uint256.Int) error {
	balance, err := p.Balance(account)
	if err != nil {
		return err
	}
	if balance.Lt(value) {
		return reverts.ErrInsufficientBalance.Withf("account %v has %v, needs %v", account, balance.Dec(), value.Dec())
	}
	if balance, err = types.Sub(balance, value); err != nil {
		return reverts.Arithmetic(err)
	}
	if err := p.tally(p.totalSub, value); err != nil {
		return err
	}
	return p.setBalance(account, balance)
}

// Transfer moves amount between two accounts.
func (p *Purse) Transfer(from, to types.AccountHash, value *uint256.Int) error {
	if err := p.Debit(from, value); err != nil {
		return err
	}
	return p.Credit(to, value)
}

// TotalSupply returns all credits minus all debits.
func (p *Purse) TotalSupply() (*uint256.Int, error) {
	add, err := p.totalAdd.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total add")
	}
	sub, err := p.totalSub.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total sub")
	}
	supply, err := types.Sub(valueOf(add), valueOf(sub))
	if err != nil {
		return nil, reverts.Invariant("debits exceed credits")
	}
	return supply, nil
}

func (p *Purse) setBalance(account types.AccountHash, balance *uint256.Int) error {
	if balance.IsZero() {
		p.balances.Delete(account)
		return nil
	}
	if err := p.balances.Set(account, &amount{Value: balance}); err != nil {
		return errors.Wrap(err, "failed to set balance")
	}
	return nil
}

func (p *Purse) tally(total *state.Raw[amount], value *uint256.Int) error {
	current, err := total.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get total")
	}
	sum, err := types.Add(valueOf(current), value)
	if err != nil {
		return reverts.Arithmetic(err)
	}
	return total.Set(&amount{Value: sum})
}
