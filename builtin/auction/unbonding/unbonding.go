// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package unbonding

import (
	"slices"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/state"
	"github.com/vechain/auction/types"
)

const (
	slotQueues     = "auction.unbonds."
	slotQueueIndex = "auction.unbond-index"
)

// Entry is a pending withdrawal. Funds return to Unbonder once the current era reaches ReleaseEra.
type Entry struct {
	Unbonder      types.AccountHash
	Validator     types.AccountHash
	Amount        *uint256.Int
	EraOfCreation types.EraID
	ReleaseEra    types.EraID
}

// Matured returns whether the entry is releasable at era.
func (e *Entry) Matured(era types.EraID) bool {
	return era >= e.ReleaseEra
}

type queue struct {
	Entries []*Entry
}

// Service owns the unbonding queues, one FIFO queue per unbonder.
type Service struct {
	queues *state.Mapping[types.AccountHash, queue]
	index  *state.Raw[[]types.AccountHash]
}

func NewService(st *state.State) *Service {
	return &Service{
		queues: state.NewMapping[types.AccountHash, queue](st, slotQueues),
		index:  state.NewRaw[[]types.AccountHash](st, slotQueueIndex),
	}
}

// Enqueue appends the entry to the unbonder's queue.
func (s *Service) Enqueue(e *Entry) error {
	if e.Amount == nil || e.Amount.IsZero() {
		return reverts.ErrZeroAmount
	}
	if e.ReleaseEra < e.EraOfCreation {
		return reverts.Invariant("release era %d precedes creation era %d", e.ReleaseEra, e.EraOfCreation)
	}
	q, err := s.queues.Get(e.Unbonder)
	if err != nil {
		return errors.Wrap(err, "failed to get unbonding queue")
	}
	if q == nil {
		q = &queue{}
		unbonders, err := s.Unbonders()
		if err != nil {
			return err
		}
		i, _ := slices.BinarySearchFunc(unbonders, e.Unbonder, types.AccountHash.Compare)
		unbonders = slices.Insert(unbonders, i, e.Unbonder)
		if err := s.index.Set(&unbonders); err != nil {
			return errors.Wrap(err, "failed to index unbonder")
		}
	}
	q.Entries = append(q.Entries, e)
	return s.queues.Set(e.Unbonder, q)
}

// Get returns the pending entries of unbonder in creation order.
func (s *Service) Get(unbonder types.AccountHash) ([]*Entry, error) {
	q, err := s.queues.Get(unbonder)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get unbonding queue")
	}
	if q == nil {
		return nil, nil
	}
	return q.Entries, nil
}

// Unbonders returns the accounts with pending entries, ascending.
func (s *Service) Unbonders() ([]types.AccountHash, error) {
	unbonders, err := s.index.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get unbonding index")
	}
	if unbonders == nil {
		return nil, nil
	}
	return *unbonders, nil
}

// Total returns the sum of all pending entries.
func (s *Service) Total() (*uint256.Int, error) {
	total := types.ZeroMotes()
	err := s.Iterate(func(e *Entry) error {
		var err error
		if total, err = types.Add(total, e.Amount); err != nil {
			return reverts.Arithmetic(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return total, nil
}

// Iterate visits all entries, unbonders ascending and entries in creation order.
func (s *Service) Iterate(cb func(*Entry) error) error {
	unbonders, err := s.Unbonders()
	if err != nil {
		return err
	}
	for _, u := range unbonders {
		entries, err := s.Get(u)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := cb(e); err != nil {
				return err
			}
		}
	}
	return nil
}

// Release pays out every entry matured at era through credit and removes it.
// Unbonders are visited ascending and each queue in creation order. Entries not yet matured
// keep their relative order.
func (s *Service) Release(era types.EraID, credit func(*Entry) error) ([]*Entry, error) {
	unbonders, err := s.Unbonders()
	if err != nil {
		return nil, err
	}

	var (
		released  []*Entry
		remaining = make([]types.AccountHash, 0, len(unbonders))
	)
	for _, u := range unbonders {
		entries, err := s.Get(u)
		if err != nil {
			return nil, err
		}
		var kept []*Entry
		for _, e := range entries {
			if !e.Matured(era) {
				kept = append(kept, e)
				continue
			}
			if err := credit(e); err != nil {
				return nil, err
			}
			released = append(released, e)
		}

		switch {
		case len(kept) == 0:
			s.queues.Delete(u)
		case len(kept) != len(entries):
			if err := s.queues.Set(u, &queue{Entries: kept}); err != nil {
				return nil, err
			}
			remaining = append(remaining, u)
		default:
			remaining = append(remaining, u)
		}
	}
	if len(remaining) != len(unbonders) {
		if err := s.index.Set(&remaining); err != nil {
			return nil, errors.Wrap(err, "failed to update unbonding index")
		}
	}
	return released, nil
}
