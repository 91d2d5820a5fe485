// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bid

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/state"
	"github.com/vechain/auction/types"
)

const (
	slotBids     = "auction.bids."
	slotBidIndex = "auction.bid-index"
)

// Service owns the bid records and the ordered index of validators holding one.
type Service struct {
	bids  *state.Mapping[types.AccountHash, Bid]
	index *state.Raw[[]types.AccountHash]
}

func NewService(st *state.State) *Service {
	return &Service{
		bids:  state.NewMapping[types.AccountHash, Bid](st, slotBids),
		index: state.NewRaw[[]types.AccountHash](st, slotBidIndex),
	}
}

// Get returns the bid of validator, or nil if none.
func (s *Service) Get(validator types.AccountHash) (*Bid, error) {
	b, err := s.bids.Get(validator)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bid")
	}
	return b, nil
}

// GetExisting returns the bid of validator, failing with ErrValidatorNotFound if none.
func (s *Service) GetExisting(validator types.AccountHash) (*Bid, error) {
	b, err := s.Get(validator)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, reverts.ErrValidatorNotFound.Withf("validator %v", validator)
	}
	return b, nil
}

// Upsert stores the bid and indexes it if new.
func (s *Service) Upsert(b *Bid) error {
	validators, err := s.Validators()
	if err != nil {
		return err
	}
	if i, found := slices.BinarySearchFunc(validators, b.Validator, types.AccountHash.Compare); !found {
		validators = slices.Insert(validators, i, b.Validator)
		if err := s.index.Set(&validators); err != nil {
			return errors.Wrap(err, "failed to index bid")
		}
	}
	if err := s.bids.Set(b.Validator, b); err != nil {
		return errors.Wrap(err, "failed to set bid")
	}
	return nil
}

// Remove deletes the bid of validator. Only empty bids may be removed.
func (s *Service) Remove(validator types.AccountHash) error {
	b, err := s.GetExisting(validator)
	if err != nil {
		return err
	}
	if !b.IsEmpty() {
		return reverts.Invariant("removing bid %v with stake", validator)
	}
	validators, err := s.Validators()
	if err != nil {
		return err
	}
	if i, found := slices.BinarySearchFunc(validators, validator, types.AccountHash.Compare); found {
		validators = slices.Delete(validators, i, i+1)
		if err := s.index.Set(&validators); err != nil {
			return errors.Wrap(err, "failed to unindex bid")
		}
	}
	s.bids.Delete(validator)
	return nil
}

// Validators returns the accounts holding a bid, ascending.
func (s *Service) Validators() ([]types.AccountHash, error) {
	validators, err := s.index.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bid index")
	}
	if validators == nil {
		return nil, nil
	}
	return *validators, nil
}

// Iterate calls cb on every bid in ascending validator order.
func (s *Service) Iterate(cb func(*Bid) error) error {
	validators, err := s.Validators()
	if err != nil {
		return err
	}
	for _, v := range validators {
		b, err := s.Get(v)
		if err != nil {
			return err
		}
		if b == nil {
			return reverts.Invariant("indexed bid %v is missing", v)
		}
		if err := cb(b); err != nil {
			return err
		}
	}
	return nil
}
