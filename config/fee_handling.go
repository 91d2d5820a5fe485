// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"fmt"
)

// FeeHandling routes the collected gas fee. It is closed to the variants in this file.
type FeeHandling interface {
	fmt.Stringer
	isFeeHandling()
}

// PayToProposer credits the fee to the block proposer.
type PayToProposer struct{}

// Burn removes the fee from the total supply.
type Burn struct{}

// Accumulate credits the fee to the system accumulation purse.
type Accumulate struct{}

func (PayToProposer) isFeeHandling() {}
func (Burn) isFeeHandling()          {}
func (Accumulate) isFeeHandling()    {}

func (PayToProposer) String() string { return "pay_to_proposer" }
func (Burn) String() string          { return "burn" }
func (Accumulate) String() string    { return "accumulate" }

// ParseFeeHandling parses the names returned by String.
func ParseFeeHandling(s string) (FeeHandling, error) {
	switch s {
	case PayToProposer{}.String():
		return PayToProposer{}, nil
	case Burn{}.String():
		return Burn{}, nil
	case Accumulate{}.String():
		return Accumulate{}, nil
	}
	return nil, fmt.Errorf("unknown fee handling %q", s)
}

// RefundHandling decides how much of the unspent gas cost returns to the payer.
// It is closed to the variants in this file.
type RefundHandling interface {
	isRefundHandling()
}

// Refund returns Numer/Denom of the unspent gas cost.
type Refund struct {
	Numer uint64
	Denom uint64
}

func (Refund) isRefundHandling() {}

func (r Refund) String() string {
	return fmt.Sprintf("refund %d/%d", r.Numer, r.Denom)
}
