// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"fmt"
	"slices"

	"github.com/holiman/uint256"
	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/types"
)

// AdminStatus is the answer to "is this account an administrator".
// AdminDisabled means no administrators are configured at all, which callers must not read as
// "nobody is an administrator".
type AdminStatus uint8

const (
	AdminDisabled AdminStatus = iota
	AdminPresent
	AdminAbsent
)

func (s AdminStatus) String() string {
	switch s {
	case AdminDisabled:
		return "disabled"
	case AdminPresent:
		return "present"
	case AdminAbsent:
		return "absent"
	}
	return fmt.Sprintf("AdminStatus(%d)", uint8(s))
}

// IsAccountAdministrator resolves the administrator status of account.
// The system account is always present once the feature is enabled.
func (c *EngineConfig) IsAccountAdministrator(account types.AccountHash) AdminStatus {
	if len(c.administrators) == 0 {
		return AdminDisabled
	}
	if account == types.SystemAccount {
		return AdminPresent
	}
	if _, found := slices.BinarySearchFunc(c.administrators, account, types.AccountHash.Compare); found {
		return AdminPresent
	}
	return AdminAbsent
}

// CheckTransfer is the gate consulted before an ordinary account-to-account transfer.
// With transfers restricted, one side must be an administrator.
func (c *EngineConfig) CheckTransfer(from, to types.AccountHash) error {
	if c.allowUnrestrictedTransfers {
		return nil
	}
	if c.IsAccountAdministrator(from) == AdminPresent || c.IsAccountAdministrator(to) == AdminPresent {
		return nil
	}
	return reverts.ErrUnrestrictedTransfersDisabled.Withf("from %v to %v", from, to)
}

// GasSpend describes the gas bought and used by one deploy.
type GasSpend struct {
	Limit uint64
	Used  uint64
	Price *uint256.Int
}

// Settlement splits Limit*Price between the payer refund and the fee destinations.
// Refund + ToProposer + Burned + Accumulated always equals Limit*Price.
type Settlement struct {
	Refund      *uint256.Int
	ToProposer  *uint256.Int
	Burned      *uint256.Int
	Accumulated *uint256.Int
}

// Total returns the sum of all parts.
func (s Settlement) Total() (*uint256.Int, error) {
	return types.Sum(s.Refund, s.ToProposer, s.Burned, s.Accumulated)
}

// Settle applies the refund and fee handling to a gas spend.
func (c *EngineConfig) Settle(spend GasSpend) (Settlement, error) {
	if spend.Used > spend.Limit {
		return Settlement{}, reverts.ErrInvalidArgument.Withf("gas used %d exceeds limit %d", spend.Used, spend.Limit)
	}
	price := types.CloneMotes(spend.Price)

	cost, err := types.Mul(uint256.NewInt(spend.Limit), price)
	if err != nil {
		return Settlement{}, reverts.Arithmetic(err)
	}
	unspent, err := types.Mul(uint256.NewInt(spend.Limit-spend.Used), price)
	if err != nil {
		return Settlement{}, reverts.Arithmetic(err)
	}

	var refund *uint256.Int
	switch r := c.refundHandling.(type) {
	case Refund:
		if refund, err = types.MulDiv(unspent, uint256.NewInt(r.Numer), uint256.NewInt(r.Denom)); err != nil {
			return Settlement{}, reverts.Arithmetic(err)
		}
	default:
		panic(fmt.Sprintf("config: unknown refund handling %T", r))
	}

	fee, err := types.Sub(cost, refund)
	if err != nil {
		return Settlement{}, reverts.Arithmetic(err)
	}

	s := Settlement{
		Refund:      refund,
		ToProposer:  types.ZeroMotes(),
		Burned:      types.ZeroMotes(),
		Accumulated: types.ZeroMotes(),
	}
	switch c.feeHandling.(type) {
	case PayToProposer:
		s.ToProposer = fee
	case Burn:
		s.Burned = fee
	case Accumulate:
		s.Accumulated = fee
	default:
		panic(fmt.Sprintf("config: unknown fee handling %T", c.feeHandling))
	}
	return s, nil
}
