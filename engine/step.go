// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"time"

	"github.com/blang/semver"

	"github.com/vechain/auction/builtin/auction"
	"github.com/vechain/auction/builtin/auction/eravalidators"
	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/builtin/auction/reward"
	"github.com/vechain/auction/builtin/auction/unbonding"
	"github.com/vechain/auction/builtin/purse"
	"github.com/vechain/auction/state"
	"github.com/vechain/auction/types"
)

// StepRequest advances the ledger by one era.
type StepRequest struct {
	ParentStateHash types.Hash
	ProtocolVersion semver.Version
	NextEraID       types.EraID
	RewardItems     []reward.Item
}

// StepResult is the outcome of a committed step.
type StepResult struct {
	PostStateHash  types.Hash
	EraID          types.EraID
	Validators     eravalidators.Set
	Released       []*unbonding.Entry
	RewardFailures []auction.RewardFailure
}

// Step applies a step request. The whole step commits or nothing does; individual reward
// items that fail are reported in the result instead.
func (e *Engine) Step(req StepRequest) (*StepResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.status.Store(int32(StatusStepping))
	defer e.status.Store(int32(StatusIdle))

	start := time.Now()
	result, err := e.step(req)
	metricStepDuration().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"outcome": outcome(err)})
	if err != nil {
		logger.Info("step failed", "era", req.NextEraID, "error", err)
		return nil, err
	}

	metricLastEra().Set(int64(result.EraID))
	metricRewardFailures().Add(int64(len(result.RewardFailures)))
	metricEraValidators().SetWithLabel(int64(len(result.Validators)), map[string]string{"kind": "era"})
	return result, nil
}

func (e *Engine) step(req StepRequest) (*StepResult, error) {
	if !e.initialized {
		return nil, ErrNotInitialized
	}
	if e.halted.Load() {
		return nil, ErrHalted
	}
	// a replayed request is an era regression whatever its parent hash
	st := state.New(e.stateStore, e.root)
	last, err := auction.New(st, e.cfg, purse.New(st)).CurrentEra()
	if err != nil {
		return nil, err
	}
	if req.NextEraID <= last {
		return nil, reverts.ErrEraRegression.Withf("next %d, last %d", req.NextEraID, last)
	}
	if req.ParentStateHash != e.root {
		return nil, reverts.ErrParentStateMismatch.Withf("parent %v, head %v", req.ParentStateHash, e.root)
	}
	if !req.ProtocolVersion.Equals(e.protocolVersion) {
		return nil, reverts.ErrInvalidProtocolVersion.Withf("requested %v, running %v", req.ProtocolVersion, e.protocolVersion)
	}

	var transition *auction.EraTransition
	root, err := e.transact("step", func(st *state.State) (err error) {
		transition, err = auction.New(st, e.cfg, purse.New(st)).Step(req.NextEraID, req.RewardItems)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &StepResult{
		PostStateHash:  root,
		EraID:          transition.Era,
		Validators:     transition.Validators,
		Released:       transition.Released,
		RewardFailures: transition.RewardFailures,
	}, nil
}

// RunAuction drops empty bids and returns the validator set the current bids would produce,
// without recording it or advancing the era.
func (e *Engine) RunAuction() (eravalidators.Set, types.Hash, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var set eravalidators.Set
	root, err := e.transact("run_auction", func(st *state.State) (err error) {
		set, err = auction.New(st, e.cfg, purse.New(st)).RunAuction()
		return err
	})
	if err != nil {
		return nil, types.Hash{}, err
	}
	metricEraValidators().SetWithLabel(int64(len(set)), map[string]string{"kind": "advisory"})
	return set, root, nil
}
