// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package engine applies contract calls and step requests to the ledger, one atomic
// transition at a time.
package engine

import (
	"sync"
	"sync/atomic"

	"github.com/blang/semver"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vechain/auction/builtin/auction"
	"github.com/vechain/auction/builtin/auction/bid"
	"github.com/vechain/auction/builtin/auction/eravalidators"
	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/builtin/auction/unbonding"
	"github.com/vechain/auction/builtin/purse"
	"github.com/vechain/auction/config"
	"github.com/vechain/auction/genesis"
	"github.com/vechain/auction/kv"
	"github.com/vechain/auction/log"
	"github.com/vechain/auction/state"
	"github.com/vechain/auction/types"
)

var logger = log.WithContext("pkg", "engine")

var (
	// ErrHalted is returned by every request once an invariant violation was detected.
	ErrHalted = errors.New("engine halted after an invariant violation")
	// ErrNotInitialized is returned by requests issued before genesis.
	ErrNotInitialized = errors.New("engine has no genesis")
	// ErrAlreadyInitialized is returned by a second genesis.
	ErrAlreadyInitialized = errors.New("engine already has a genesis")
)

const (
	metaBucket  = kv.Bucket("m.")
	stateBucket = kv.Bucket("s.")
)

var (
	headRootKey        = []byte("head-root")
	protocolVersionKey = []byte("protocol-version")
)

// Status is the era stepper state.
type Status int32

const (
	StatusIdle Status = iota
	StatusStepping
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusStepping:
		return "stepping"
	default:
		return "unknown"
	}
}

// Engine owns one ledger. Requests are serialised; a failed request leaves no writes behind.
type Engine struct {
	mu         sync.Mutex
	store      kv.Store
	meta       kv.Store
	stateStore kv.Store
	cfg        *config.EngineConfig
	validate   *validator.Validate

	root            types.Hash
	protocolVersion semver.Version
	initialized     bool

	status atomic.Int32
	halted atomic.Bool
}

// New opens the engine over store, loading the head state root if a genesis was committed.
func New(store kv.Store, cfg *config.EngineConfig) (*Engine, error) {
	e := &Engine{
		store:      store,
		meta:       metaBucket.NewStore(store),
		stateStore: stateBucket.NewStore(store),
		cfg:        cfg,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}

	root, found, err := kv.GetValue(e.meta, headRootKey)
	if err != nil {
		return nil, errors.Wrap(err, "load head root")
	}
	if !found {
		return e, nil
	}
	version, _, err := kv.GetValue(e.meta, protocolVersionKey)
	if err != nil {
		return nil, errors.Wrap(err, "load protocol version")
	}
	if e.protocolVersion, err = semver.Parse(string(version)); err != nil {
		return nil, errors.Wrap(err, "parse protocol version")
	}
	e.root = types.BytesToHash(root)
	e.initialized = true

	logger.Info("engine loaded", "root", e.root, "protocol", e.protocolVersion)
	return e, nil
}

// Config returns the engine policy.
func (e *Engine) Config() *config.EngineConfig {
	return e.cfg
}

// StateRoot returns the current state root.
func (e *Engine) StateRoot() types.Hash {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root
}

// ProtocolVersion returns the protocol version set at genesis.
func (e *Engine) ProtocolVersion() semver.Version {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.protocolVersion
}

// Status returns the era stepper state.
func (e *Engine) Status() Status {
	return Status(e.status.Load())
}

// Halted reports whether the engine refuses requests after ledger corruption.
func (e *Engine) Halted() bool {
	return e.halted.Load()
}

// Genesis seeds the ledger. It can run once per store.
func (e *Engine) Genesis(builder *genesis.Builder, version semver.Version) (*auction.EraTransition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil, ErrAlreadyInitialized
	}

	var transition *auction.EraTransition
	_, err := e.commit("genesis", func(st *state.State) (err error) {
		transition, err = builder.Build(st, e.cfg)
		return err
	}, func(bulk kv.Putter) error {
		return metaBucket.NewPutter(bulk).Put(protocolVersionKey, []byte(version.String()))
	})
	if err != nil {
		return nil, err
	}
	e.protocolVersion = version
	e.initialized = true

	logger.Info("genesis committed", "root", e.root, "validators", len(transition.Validators))
	return transition, nil
}

// transact applies fn as one transition and commits it. Callers hold mu.
func (e *Engine) transact(name string, fn func(st *state.State) error) (types.Hash, error) {
	if !e.initialized {
		return types.Hash{}, ErrNotInitialized
	}
	return e.commit(name, fn, nil)
}

func (e *Engine) commit(name string, fn func(st *state.State) error, extra func(bulk kv.Putter) error) (types.Hash, error) {
	if e.halted.Load() {
		return types.Hash{}, ErrHalted
	}

	st := state.New(e.stateStore, e.root)
	checkpoint := st.NewCheckpoint()
	if err := fn(st); err != nil {
		st.RevertTo(checkpoint)
		if reverts.IsInvariant(err) {
			e.halted.Store(true)
			logger.Error("ledger invariant violated, halting", "request", name, "error", err)
		}
		return types.Hash{}, err
	}

	// state changes and the new head go out in one batch
	bulk := e.store.Bulk()
	root, err := st.Stage().Commit(stateBucket.NewPutter(bulk))
	if err != nil {
		return types.Hash{}, err
	}
	if err := metaBucket.NewPutter(bulk).Put(headRootKey, root.Bytes()); err != nil {
		return types.Hash{}, err
	}
	if extra != nil {
		if err := extra(bulk); err != nil {
			return types.Hash{}, err
		}
	}
	if err := bulk.Write(); err != nil {
		return types.Hash{}, errors.Wrap(err, "write state")
	}

	e.root = root
	metricStateChanges().Add(int64(bulk.Len()))
	return root, nil
}

// view runs fn against the current state without committing anything.
func (e *Engine) view(fn func(a *auction.Auction, balances *purse.Purse) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return ErrNotInitialized
	}
	st := state.New(e.stateStore, e.root)
	balances := purse.New(st)
	return fn(auction.New(st, e.cfg, balances), balances)
}

//
// Read APIs
//

// GetBid returns the bid of validator, or nil if none.
func (e *Engine) GetBid(validator types.AccountHash) (b *bid.Bid, err error) {
	err = e.view(func(a *auction.Auction, _ *purse.Purse) error {
		b, err = a.GetBid(validator)
		return err
	})
	return b, err
}

// GetBids returns every bid in ascending validator order.
func (e *Engine) GetBids() (bids []*bid.Bid, err error) {
	err = e.view(func(a *auction.Auction, _ *purse.Purse) error {
		bids, err = a.Bids()
		return err
	})
	return bids, err
}

// GetEraValidators returns the validator set recorded for era.
func (e *Engine) GetEraValidators(era types.EraID) (set eravalidators.Set, found bool, err error) {
	err = e.view(func(a *auction.Auction, _ *purse.Purse) error {
		set, found, err = a.GetEraValidators(era)
		return err
	})
	return set, found, err
}

// CurrentEra returns the last recorded era.
func (e *Engine) CurrentEra() (era types.EraID, err error) {
	err = e.view(func(a *auction.Auction, _ *purse.Purse) error {
		era, err = a.CurrentEra()
		return err
	})
	return era, err
}

// GetUnbonds returns the pending unbonding entries of unbonder.
func (e *Engine) GetUnbonds(unbonder types.AccountHash) (entries []*unbonding.Entry, err error) {
	err = e.view(func(a *auction.Auction, _ *purse.Purse) error {
		entries, err = a.GetUnbonds(unbonder)
		return err
	})
	return entries, err
}
