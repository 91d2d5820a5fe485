// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis seeds the initial ledger from pre-validated genesis accounts.
package genesis

import (
	"github.com/holiman/uint256"

	"github.com/vechain/auction/types"
)

// Validator is the bond a genesis account starts with.
type Validator struct {
	BondedAmount   *uint256.Int
	DelegationRate types.DelegationRate
}

// Account is an account funded at genesis, optionally bonded as a validator.
type Account struct {
	PublicKey types.PublicKey
	Balance   *uint256.Int
	Validator *Validator
}

// NewAccount creates a plain funded account.
func NewAccount(pub types.PublicKey, balance *uint256.Int) Account {
	return Account{PublicKey: pub, Balance: balance}
}

// NewValidatorAccount creates a funded account bonded as a genesis validator.
func NewValidatorAccount(pub types.PublicKey, balance, bonded *uint256.Int, rate types.DelegationRate) Account {
	return Account{
		PublicKey: pub,
		Balance:   balance,
		Validator: &Validator{BondedAmount: bonded, DelegationRate: rate},
	}
}

// AccountHash returns the ledger identity of the account.
func (a Account) AccountHash() types.AccountHash {
	return a.PublicKey.AccountHash()
}
