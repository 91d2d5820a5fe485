// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eravalidators

import (
	"slices"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/state"
	"github.com/vechain/auction/types"
)

const (
	slotSets    = "auction.era-validators."
	slotEras    = "auction.era-index"
	slotLastEra = "auction.last-era"
)

// Weight is the total stake of one validator in an era.
type Weight struct {
	Validator types.AccountHash
	Stake     *uint256.Int
}

// Set is the validator set of an era, sorted by validator account hash.
type Set []*Weight

// NewSet sorts the weights by validator and rejects duplicates.
func NewSet(weights []*Weight) (Set, error) {
	set := slices.Clone(weights)
	slices.SortFunc(set, func(a, b *Weight) int { return a.Validator.Compare(b.Validator) })
	for i := 1; i < len(set); i++ {
		if set[i-1].Validator == set[i].Validator {
			return nil, reverts.Invariant("duplicate validator %v in era set", set[i].Validator)
		}
	}
	return set, nil
}

// Stake returns the weight of validator in the set.
func (s Set) Stake(validator types.AccountHash) (*uint256.Int, bool) {
	i, found := slices.BinarySearchFunc(s, validator, func(w *Weight, target types.AccountHash) int {
		return w.Validator.Compare(target)
	})
	if !found {
		return nil, false
	}
	return s[i].Stake, true
}

// Validators returns the validator accounts in ascending order.
func (s Set) Validators() []types.AccountHash {
	out := make([]types.AccountHash, 0, len(s))
	for _, w := range s {
		out = append(out, w.Validator)
	}
	return out
}

type record struct {
	Weights []*Weight
}

type lastEra struct {
	Era types.EraID
}

// Service owns the write-once era validators history.
type Service struct {
	sets    *state.Mapping[types.EraID, record]
	eras    *state.Raw[[]types.EraID]
	lastEra *state.Raw[lastEra]
}

func NewService(st *state.State) *Service {
	return &Service{
		sets:    state.NewMapping[types.EraID, record](st, slotSets),
		eras:    state.NewRaw[[]types.EraID](st, slotEras),
		lastEra: state.NewRaw[lastEra](st, slotLastEra),
	}
}

// Record writes the set of era. Eras are append only: an era can be written once, and only
// after every era already recorded.
func (s *Service) Record(era types.EraID, set Set) error {
	existing, err := s.sets.Get(era)
	if err != nil {
		return errors.Wrap(err, "failed to get era validators")
	}
	if existing != nil {
		return reverts.ErrEraAlreadyRecorded.Withf("era %d", era)
	}
	last, recorded, err := s.LastEra()
	if err != nil {
		return err
	}
	if recorded && era <= last {
		return reverts.ErrEraRegression.Withf("era %d, last recorded %d", era, last)
	}

	if err := s.sets.Set(era, &record{Weights: set}); err != nil {
		return errors.Wrap(err, "failed to set era validators")
	}
	eras, err := s.Eras()
	if err != nil {
		return err
	}
	eras = append(eras, era)
	if err := s.eras.Set(&eras); err != nil {
		return errors.Wrap(err, "failed to index era")
	}
	return s.lastEra.Set(&lastEra{Era: era})
}

// Get returns the set recorded for era.
func (s *Service) Get(era types.EraID) (Set, bool, error) {
	r, err := s.sets.Get(era)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to get era validators")
	}
	if r == nil {
		return nil, false, nil
	}
	return Set(r.Weights), true, nil
}

// LastEra returns the latest recorded era. The second value is false before genesis.
func (s *Service) LastEra() (types.EraID, bool, error) {
	last, err := s.lastEra.Get()
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to get last era")
	}
	if last == nil {
		return 0, false, nil
	}
	return last.Era, true, nil
}

// Eras returns all recorded eras, ascending.
func (s *Service) Eras() ([]types.EraID, error) {
	eras, err := s.eras.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get era index")
	}
	if eras == nil {
		return nil, nil
	}
	return *eras, nil
}
