// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"slices"

	"github.com/moznion/go-optional"
	"github.com/vechain/auction/types"
)

// Builder accumulates overrides for deployment tooling.
type Builder struct {
	o Overrides
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithMaxQueryDepth(v uint64) *Builder {
	b.o.MaxQueryDepth = optional.Some(v)
	return b
}

func (b *Builder) WithMaxAssociatedKeys(v uint32) *Builder {
	b.o.MaxAssociatedKeys = optional.Some(v)
	return b
}

func (b *Builder) WithMaxRuntimeCallStackHeight(v uint32) *Builder {
	b.o.MaxRuntimeCallStackHeight = optional.Some(v)
	return b
}

func (b *Builder) WithMinimumDelegationAmount(v uint64) *Builder {
	b.o.MinimumDelegationAmount = optional.Some(v)
	return b
}

func (b *Builder) WithStrictArgumentChecking(v bool) *Builder {
	b.o.StrictArgumentChecking = optional.Some(v)
	return b
}

func (b *Builder) WithAllowAuctionBids(v bool) *Builder {
	b.o.AllowAuctionBids = optional.Some(v)
	return b
}

func (b *Builder) WithAllowUnrestrictedTransfers(v bool) *Builder {
	b.o.AllowUnrestrictedTransfers = optional.Some(v)
	return b
}

func (b *Builder) WithRefundHandling(v RefundHandling) *Builder {
	b.o.RefundHandling = optional.Some(v)
	return b
}

func (b *Builder) WithFeeHandling(v FeeHandling) *Builder {
	b.o.FeeHandling = optional.Some(v)
	return b
}

func (b *Builder) WithLockedFundsPeriodEras(v uint64) *Builder {
	b.o.LockedFundsPeriodEras = optional.Some(v)
	return b
}

func (b *Builder) WithValidatorSlots(v uint32) *Builder {
	b.o.ValidatorSlots = optional.Some(v)
	return b
}

func (b *Builder) WithMinimumBidAmount(v uint64) *Builder {
	b.o.MinimumBidAmount = optional.Some(v)
	return b
}

func (b *Builder) WithAdministrativeAccounts(accounts ...types.AccountHash) *Builder {
	b.o.AdministrativeAccounts = optional.Some(slices.Clone(accounts))
	return b
}

// Build resolves the unset fields to their defaults. See New for the panics.
func (b *Builder) Build() *EngineConfig {
	return New(b.o)
}
