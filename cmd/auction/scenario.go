// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/builtin/auction/reward"
	"github.com/vechain/auction/config"
	"github.com/vechain/auction/engine"
	"github.com/vechain/auction/genesis"
	"github.com/vechain/auction/kv"
	"github.com/vechain/auction/types"
)

// Scenario is a scripted run of one engine from genesis.
type Scenario struct {
	Name    string       `yaml:"name"`
	Config  config.File  `yaml:"config"`
	Genesis genesis.File `yaml:"genesis"`
	Ops     []Op         `yaml:"ops"`
}

// Op is one scenario operation. Exactly one field is set.
type Op struct {
	Execute    *ExecuteOp `yaml:"execute"`
	Step       *StepOp    `yaml:"step"`
	RunAuction *StepOp    `yaml:"run_auction"`
	Expect     *ExpectOp  `yaml:"expect"`
}

// ExecuteOp is a contract call signed by Caller. Error names the expected revert code.
type ExecuteOp struct {
	Caller     types.PublicKey   `yaml:"caller"`
	EntryPoint string            `yaml:"entry_point"`
	Args       map[string]string `yaml:"args"`
	Error      string            `yaml:"error"`
}

// StepOp advances the era. When Validators is set the resulting set must hold exactly those keys.
type StepOp struct {
	Era        types.EraID       `yaml:"era"`
	Rewards    []RewardOp        `yaml:"rewards"`
	Validators []types.PublicKey `yaml:"validators"`
}

type RewardOp struct {
	Validator types.PublicKey `yaml:"validator"`
	Amount    string          `yaml:"amount"`
}

// ExpectOp checks the ledger position of Account. Empty amounts are not checked.
type ExpectOp struct {
	Account   types.PublicKey `yaml:"account"`
	Balance   string          `yaml:"balance"`
	Stake     string          `yaml:"stake"`
	Unbonding string          `yaml:"unbonding"`
}

// Report summarises a replayed scenario.
type Report struct {
	Name      string
	Era       types.EraID
	StateRoot types.Hash
	Ops       int
}

// LoadScenario reads a YAML scenario file. Unknown keys are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "read scenario")
	}
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, pkgerrors.Wrapf(err, "decode scenario %s", path)
	}
	if s.Name == "" {
		s.Name = path
	}
	return &s, nil
}

// Replay runs the scenario against an empty store.
func (s *Scenario) Replay(store kv.Store) (*Report, error) {
	overrides, err := s.Config.Overrides()
	if err != nil {
		return nil, err
	}
	cfg, err := buildConfig(overrides)
	if err != nil {
		return nil, err
	}
	builder, err := s.Genesis.Builder()
	if err != nil {
		return nil, err
	}
	version, err := s.Genesis.Version()
	if err != nil {
		return nil, err
	}

	e, err := engine.New(store, cfg)
	if err != nil {
		return nil, err
	}
	if _, err := e.Genesis(builder, version); err != nil {
		return nil, pkgerrors.Wrap(err, "genesis")
	}

	for i, op := range s.Ops {
		if err := replayOp(e, op); err != nil {
			return nil, pkgerrors.Wrapf(err, "%s: ops[%d]", s.Name, i)
		}
	}

	era, err := e.CurrentEra()
	if err != nil {
		return nil, err
	}
	return &Report{Name: s.Name, Era: era, StateRoot: e.StateRoot(), Ops: len(s.Ops)}, nil
}

func replayOp(e *engine.Engine, op Op) error {
	switch {
	case op.Execute != nil:
		return replayExecute(e, op.Execute)
	case op.Step != nil:
		return replayStep(e, op.Step)
	case op.RunAuction != nil:
		set, _, err := e.RunAuction()
		if err != nil {
			return err
		}
		return expectValidators(op.RunAuction.Validators, set.Validators())
	case op.Expect != nil:
		return replayExpect(e, op.Expect)
	}
	return errors.New("empty op")
}

func replayExecute(e *engine.Engine, op *ExecuteOp) error {
	_, err := e.Execute(engine.DeployItem{
		Caller:     op.Caller.AccountHash(),
		EntryPoint: op.EntryPoint,
		Args:       op.Args,
	})
	if op.Error == "" {
		return err
	}
	var revert *reverts.ErrRevert
	if !errors.As(err, &revert) {
		return fmt.Errorf("%s: expected %s, got %v", op.EntryPoint, op.Error, err)
	}
	if revert.Code() != op.Error {
		return fmt.Errorf("%s: expected %s, got %s", op.EntryPoint, op.Error, revert.Code())
	}
	return nil
}

func replayStep(e *engine.Engine, op *StepOp) error {
	items := make([]reward.Item, 0, len(op.Rewards))
	for _, r := range op.Rewards {
		amount, err := types.ParseMotes(r.Amount)
		if err != nil {
			return pkgerrors.Wrap(err, "reward amount")
		}
		items = append(items, reward.Item{Validator: r.Validator.AccountHash(), Amount: amount})
	}
	result, err := e.Step(engine.StepRequest{
		ParentStateHash: e.StateRoot(),
		ProtocolVersion: e.ProtocolVersion(),
		NextEraID:       op.Era,
		RewardItems:     items,
	})
	if err != nil {
		return err
	}
	for _, f := range result.RewardFailures {
		logger.Warn("reward not applied", "era", result.EraID, "validator", f.Item.Validator, "error", f.Err)
	}
	return expectValidators(op.Validators, result.Validators.Validators())
}

func expectValidators(want []types.PublicKey, got []types.AccountHash) error {
	if want == nil {
		return nil
	}
	if len(want) != len(got) {
		return fmt.Errorf("expected %d validators, got %d", len(want), len(got))
	}
	for _, pub := range want {
		if !slices.Contains(got, pub.AccountHash()) {
			return fmt.Errorf("validator %v not in set", pub.AccountHash())
		}
	}
	return nil
}

func replayExpect(e *engine.Engine, op *ExpectOp) error {
	account := op.Account.AccountHash()

	if op.Balance != "" {
		balance, err := e.Balance(account)
		if err != nil {
			return err
		}
		if err := expectAmount("balance", op.Balance, balance.Dec()); err != nil {
			return err
		}
	}
	if op.Stake != "" {
		b, err := e.GetBid(account)
		if err != nil {
			return err
		}
		stake := "0"
		if b != nil {
			total, err := b.TotalStake()
			if err != nil {
				return err
			}
			stake = total.Dec()
		}
		if err := expectAmount("stake", op.Stake, stake); err != nil {
			return err
		}
	}
	if op.Unbonding != "" {
		entries, err := e.GetUnbonds(account)
		if err != nil {
			return err
		}
		total := types.ZeroMotes()
		for _, entry := range entries {
			if total, err = types.Add(total, entry.Amount); err != nil {
				return err
			}
		}
		if err := expectAmount("unbonding", op.Unbonding, total.Dec()); err != nil {
			return err
		}
	}
	return nil
}

func expectAmount(what, want, got string) error {
	amount, err := types.ParseMotes(want)
	if err != nil {
		return pkgerrors.Wrap(err, what)
	}
	if amount.Dec() != got {
		return fmt.Errorf("%s: expected %s, got %s", what, amount.Dec(), got)
	}
	return nil
}
