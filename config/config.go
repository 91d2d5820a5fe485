// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package config holds the economic policy of an engine instance.
package config

import (
	"fmt"
	"slices"

	"github.com/holiman/uint256"
	"github.com/moznion/go-optional"
	"github.com/vechain/auction/types"
)

const (
	DefaultMaxQueryDepth               uint64 = 5
	DefaultMaxAssociatedKeys           uint32 = 100
	DefaultMaxRuntimeCallStackHeight   uint32 = 12
	DefaultMinimumDelegationAmount     uint64 = 500 * 1_000_000_000
	DefaultStrictArgumentChecking             = false
	DefaultAllowAuctionBids                   = true
	DefaultAllowUnrestrictedTransfers         = true
	DefaultRefundRatioNumer            uint64 = 0
	DefaultRefundRatioDenom            uint64 = 100
	DefaultLockedFundsPeriodEras       uint64 = 7
	DefaultValidatorSlots              uint32 = 100
	DefaultMinimumBidAmount            uint64 = 1
)

var (
	DefaultFeeHandling    FeeHandling    = PayToProposer{}
	DefaultRefundHandling RefundHandling = Refund{Numer: DefaultRefundRatioNumer, Denom: DefaultRefundRatioDenom}
)

// EngineConfig is the immutable policy bundle shared by all components of one engine.
type EngineConfig struct {
	maxQueryDepth              uint64
	maxAssociatedKeys          uint32
	maxRuntimeCallStackHeight  uint32
	minimumDelegationAmount    uint64
	strictArgumentChecking     bool
	allowAuctionBids           bool
	allowUnrestrictedTransfers bool
	refundHandling             RefundHandling
	feeHandling                FeeHandling
	lockedFundsPeriodEras      uint64
	validatorSlots             uint32
	minimumBidAmount           uint64
	administrators             []types.AccountHash // sorted, deduplicated
}

// Overrides carries the fields to change from their defaults. Unset fields take the default.
type Overrides struct {
	MaxQueryDepth              optional.Option[uint64]
	MaxAssociatedKeys          optional.Option[uint32]
	MaxRuntimeCallStackHeight  optional.Option[uint32]
	MinimumDelegationAmount    optional.Option[uint64]
	StrictArgumentChecking     optional.Option[bool]
	AllowAuctionBids           optional.Option[bool]
	AllowUnrestrictedTransfers optional.Option[bool]
	RefundHandling             optional.Option[RefundHandling]
	FeeHandling                optional.Option[FeeHandling]
	LockedFundsPeriodEras      optional.Option[uint64]
	ValidatorSlots             optional.Option[uint32]
	MinimumBidAmount           optional.Option[uint64]
	AdministrativeAccounts     optional.Option[[]types.AccountHash]
}

// New merges the overrides against the defaults.
// It panics when the refund ratio is not a proper fraction, or the validator slot count is zero.
func New(o Overrides) *EngineConfig {
	admins := slices.Clone(o.AdministrativeAccounts.TakeOr(nil))
	slices.SortFunc(admins, types.AccountHash.Compare)
	admins = slices.Compact(admins)

	cfg := &EngineConfig{
		maxQueryDepth:              o.MaxQueryDepth.TakeOr(DefaultMaxQueryDepth),
		maxAssociatedKeys:          o.MaxAssociatedKeys.TakeOr(DefaultMaxAssociatedKeys),
		maxRuntimeCallStackHeight:  o.MaxRuntimeCallStackHeight.TakeOr(DefaultMaxRuntimeCallStackHeight),
		minimumDelegationAmount:    o.MinimumDelegationAmount.TakeOr(DefaultMinimumDelegationAmount),
		strictArgumentChecking:     o.StrictArgumentChecking.TakeOr(DefaultStrictArgumentChecking),
		allowAuctionBids:           o.AllowAuctionBids.TakeOr(DefaultAllowAuctionBids),
		allowUnrestrictedTransfers: o.AllowUnrestrictedTransfers.TakeOr(DefaultAllowUnrestrictedTransfers),
		refundHandling:             o.RefundHandling.TakeOr(DefaultRefundHandling),
		feeHandling:                o.FeeHandling.TakeOr(DefaultFeeHandling),
		lockedFundsPeriodEras:      o.LockedFundsPeriodEras.TakeOr(DefaultLockedFundsPeriodEras),
		validatorSlots:             o.ValidatorSlots.TakeOr(DefaultValidatorSlots),
		minimumBidAmount:           o.MinimumBidAmount.TakeOr(DefaultMinimumBidAmount),
		administrators:             admins,
	}

	switch r := cfg.refundHandling.(type) {
	case Refund:
		if r.Denom == 0 {
			panic("config: refund ratio has zero denominator")
		}
		if r.Numer > r.Denom {
			panic(fmt.Sprintf("config: refund ratio %d/%d is greater than 1", r.Numer, r.Denom))
		}
	default:
		panic(fmt.Sprintf("config: unknown refund handling %T", r))
	}
	switch cfg.feeHandling.(type) {
	case PayToProposer, Burn, Accumulate:
	default:
		panic(fmt.Sprintf("config: unknown fee handling %T", cfg.feeHandling))
	}
	if cfg.validatorSlots == 0 {
		panic("config: validator slots must be positive")
	}
	return cfg
}

// MustDefault returns the all-default configuration.
func MustDefault() *EngineConfig {
	return New(Overrides{})
}

func (c *EngineConfig) MaxQueryDepth() uint64             { return c.maxQueryDepth }
func (c *EngineConfig) MaxAssociatedKeys() uint32         { return c.maxAssociatedKeys }
func (c *EngineConfig) MaxRuntimeCallStackHeight() uint32 { return c.maxRuntimeCallStackHeight }
func (c *EngineConfig) StrictArgumentChecking() bool      { return c.strictArgumentChecking }
func (c *EngineConfig) AllowAuctionBids() bool            { return c.allowAuctionBids }
func (c *EngineConfig) AllowUnrestrictedTransfers() bool  { return c.allowUnrestrictedTransfers }
func (c *EngineConfig) RefundHandling() RefundHandling    { return c.refundHandling }
func (c *EngineConfig) FeeHandling() FeeHandling          { return c.feeHandling }
func (c *EngineConfig) LockedFundsPeriodEras() uint64     { return c.lockedFundsPeriodEras }
func (c *EngineConfig) ValidatorSlots() uint32            { return c.validatorSlots }

// MinimumDelegationAmount returns the smallest opening delegation, in motes.
func (c *EngineConfig) MinimumDelegationAmount() *uint256.Int {
	return uint256.NewInt(c.minimumDelegationAmount)
}

// MinimumBidAmount returns the smallest accepted self stake, in motes.
func (c *EngineConfig) MinimumBidAmount() *uint256.Int {
	return uint256.NewInt(c.minimumBidAmount)
}

// AdministrativeAccounts returns a copy of the sorted administrator set.
func (c *EngineConfig) AdministrativeAccounts() []types.AccountHash {
	return slices.Clone(c.administrators)
}

// Overrides returns the configuration as a fully populated override set, so a derived
// configuration can be built by changing some fields.
func (c *EngineConfig) Overrides() Overrides {
	return Overrides{
		MaxQueryDepth:              optional.Some(c.maxQueryDepth),
		MaxAssociatedKeys:          optional.Some(c.maxAssociatedKeys),
		MaxRuntimeCallStackHeight:  optional.Some(c.maxRuntimeCallStackHeight),
		MinimumDelegationAmount:    optional.Some(c.minimumDelegationAmount),
		StrictArgumentChecking:     optional.Some(c.strictArgumentChecking),
		AllowAuctionBids:           optional.Some(c.allowAuctionBids),
		AllowUnrestrictedTransfers: optional.Some(c.allowUnrestrictedTransfers),
		RefundHandling:             optional.Some(c.refundHandling),
		FeeHandling:                optional.Some(c.feeHandling),
		LockedFundsPeriodEras:      optional.Some(c.lockedFundsPeriodEras),
		ValidatorSlots:             optional.Some(c.validatorSlots),
		MinimumBidAmount:           optional.Some(c.minimumBidAmount),
		AdministrativeAccounts:     optional.Some(c.AdministrativeAccounts()),
	}
}
