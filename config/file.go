// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/moznion/go-optional"
	pkgerrors "github.com/pkg/errors"
	"github.com/vechain/auction/types"
	"gopkg.in/yaml.v3"
)

// File is the YAML form of Overrides. Absent keys keep their defaults.
type File struct {
	MaxQueryDepth              *uint64    `yaml:"max_query_depth"`
	MaxAssociatedKeys          *uint32    `yaml:"max_associated_keys"`
	MaxRuntimeCallStackHeight  *uint32    `yaml:"max_runtime_call_stack_height"`
	MinimumDelegationAmount    *uint64    `yaml:"minimum_delegation_amount"`
	StrictArgumentChecking     *bool      `yaml:"strict_argument_checking"`
	AllowAuctionBids           *bool      `yaml:"allow_auction_bids"`
	AllowUnrestrictedTransfers *bool      `yaml:"allow_unrestricted_transfers"`
	RefundRatio                *RatioFile `yaml:"refund_ratio"`
	FeeHandling                *string    `yaml:"fee_handling"`
	LockedFundsPeriodEras      *uint64    `yaml:"locked_funds_period_eras"`
	ValidatorSlots             *uint32    `yaml:"validator_slots"`
	MinimumBidAmount           *uint64    `yaml:"minimum_bid_amount"`
	AdministrativeAccounts     []string   `yaml:"administrative_accounts"`
}

// RatioFile is a fraction in YAML.
type RatioFile struct {
	Numer uint64 `yaml:"numer"`
	Denom uint64 `yaml:"denom"`
}

// Load reads a YAML config file into overrides.
func Load(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, pkgerrors.Wrap(err, "read config")
	}
	return Parse(data)
}

// Parse decodes YAML config into overrides. Unknown keys are rejected.
func Parse(data []byte) (Overrides, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Overrides{}, pkgerrors.Wrap(err, "decode config")
	}
	return f.Overrides()
}

// Overrides converts the file into overrides.
func (f *File) Overrides() (Overrides, error) {
	o := Overrides{
		MaxQueryDepth:              optional.FromNillable(f.MaxQueryDepth),
		MaxAssociatedKeys:          optional.FromNillable(f.MaxAssociatedKeys),
		MaxRuntimeCallStackHeight:  optional.FromNillable(f.MaxRuntimeCallStackHeight),
		MinimumDelegationAmount:    optional.FromNillable(f.MinimumDelegationAmount),
		StrictArgumentChecking:     optional.FromNillable(f.StrictArgumentChecking),
		AllowAuctionBids:           optional.FromNillable(f.AllowAuctionBids),
		AllowUnrestrictedTransfers: optional.FromNillable(f.AllowUnrestrictedTransfers),
		LockedFundsPeriodEras:      optional.FromNillable(f.LockedFundsPeriodEras),
		ValidatorSlots:             optional.FromNillable(f.ValidatorSlots),
		MinimumBidAmount:           optional.FromNillable(f.MinimumBidAmount),
	}
	if f.RefundRatio != nil {
		o.RefundHandling = optional.Some[RefundHandling](Refund{Numer: f.RefundRatio.Numer, Denom: f.RefundRatio.Denom})
	}
	if f.FeeHandling != nil {
		fh, err := ParseFeeHandling(*f.FeeHandling)
		if err != nil {
			return Overrides{}, err
		}
		o.FeeHandling = optional.Some(fh)
	}
	if f.AdministrativeAccounts != nil {
		admins := make([]types.AccountHash, 0, len(f.AdministrativeAccounts))
		for _, s := range f.AdministrativeAccounts {
			a, err := types.ParseAccountHash(s)
			if err != nil {
				return Overrides{}, pkgerrors.Wrap(err, "administrative_accounts")
			}
			admins = append(admins, a)
		}
		o.AdministrativeAccounts = optional.Some(admins)
	}
	return o, nil
}

// NewFile renders a configuration in its YAML form, every key present.
func NewFile(c *EngineConfig) *File {
	f := &File{
		MaxQueryDepth:              ptr(c.maxQueryDepth),
		MaxAssociatedKeys:          ptr(c.maxAssociatedKeys),
		MaxRuntimeCallStackHeight:  ptr(c.maxRuntimeCallStackHeight),
		MinimumDelegationAmount:    ptr(c.minimumDelegationAmount),
		StrictArgumentChecking:     ptr(c.strictArgumentChecking),
		AllowAuctionBids:           ptr(c.allowAuctionBids),
		AllowUnrestrictedTransfers: ptr(c.allowUnrestrictedTransfers),
		FeeHandling:                ptr(c.feeHandling.String()),
		LockedFundsPeriodEras:      ptr(c.lockedFundsPeriodEras),
		ValidatorSlots:             ptr(c.validatorSlots),
		MinimumBidAmount:           ptr(c.minimumBidAmount),
		AdministrativeAccounts:     make([]string, 0, len(c.administrators)),
	}
	if r, ok := c.refundHandling.(Refund); ok {
		f.RefundRatio = &RatioFile{Numer: r.Numer, Denom: r.Denom}
	}
	for _, a := range c.administrators {
		f.AdministrativeAccounts = append(f.AdministrativeAccounts, a.String())
	}
	return f
}

func ptr[T any](v T) *T { return &v }
