// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"slices"
	"strconv"
	"time"

	"github.com/holiman/uint256"

	"github.com/vechain/auction/builtin/auction"
	"github.com/vechain/auction/builtin/auction/reverts"
	"github.com/vechain/auction/builtin/auction/unbonding"
	"github.com/vechain/auction/builtin/purse"
	"github.com/vechain/auction/state"
	"github.com/vechain/auction/types"
)

// Entry points of the auction contract.
const (
	EntryPointAddBid      = "add_bid"
	EntryPointWithdrawBid = "withdraw_bid"
	EntryPointActivateBid = "activate_bid"
	EntryPointDelegate    = "delegate"
	EntryPointUndelegate  = "undelegate"
)

// Argument names.
const (
	ArgValidator      = "validator"
	ArgDelegator      = "delegator"
	ArgAmount         = "amount"
	ArgDelegationRate = "delegation_rate"
)

// DeployItem is one contract call. Public keys are passed in their hex form and amounts as
// decimal strings.
type DeployItem struct {
	Caller     types.AccountHash
	EntryPoint string
	Args       map[string]string
}

// ExecutionResult is the effect of a successful call.
type ExecutionResult struct {
	PostStateHash types.Hash
	Debited       *uint256.Int
	Unbond        *unbonding.Entry
}

type callArgs struct {
	Validator      string `validate:"omitempty,hexadecimal"`
	Delegator      string `validate:"omitempty,hexadecimal"`
	Amount         string `validate:"omitempty,number"`
	DelegationRate string `validate:"omitempty,number"`
}

type entryPoint struct {
	args []string
	call func(c *call) (*ExecutionResult, error)
}

type call struct {
	caller   types.AccountHash
	args     *callArgs
	auction  *auction.Auction
	balances *purse.Purse
}

var entryPoints = map[string]entryPoint{
	EntryPointAddBid:      {[]string{ArgValidator, ArgAmount, ArgDelegationRate}, (*call).addBid},
	EntryPointWithdrawBid: {[]string{ArgValidator, ArgAmount}, (*call).withdrawBid},
	EntryPointActivateBid: {[]string{ArgValidator}, (*call).activateBid},
	EntryPointDelegate:    {[]string{ArgDelegator, ArgValidator, ArgAmount}, (*call).delegate},
	EntryPointUndelegate:  {[]string{ArgDelegator, ArgValidator, ArgAmount}, (*call).undelegate},
}

// Execute applies one contract call atomically.
func (e *Engine) Execute(item DeployItem) (*ExecutionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	ep, ok := entryPoints[item.EntryPoint]
	if !ok {
		metricRequests().AddWithLabel(1, map[string]string{"entrypoint": "unknown", "outcome": "rejected"})
		return nil, reverts.ErrInvalidArgument.Withf("unknown entry point %q", item.EntryPoint)
	}

	args, err := e.bindArgs(ep.args, item.Args)
	if err != nil {
		metricRequests().AddWithLabel(1, map[string]string{"entrypoint": item.EntryPoint, "outcome": "rejected"})
		return nil, err
	}

	var result *ExecutionResult
	root, err := e.transact(item.EntryPoint, func(st *state.State) error {
		balances := purse.New(st)
		c := &call{
			caller:   item.Caller,
			args:     args,
			auction:  auction.New(st, e.cfg, balances),
			balances: balances,
		}
		var callErr error
		result, callErr = ep.call(c)
		return callErr
	})
	metricRequests().AddWithLabel(1, map[string]string{"entrypoint": item.EntryPoint, "outcome": outcome(err)})
	if err != nil {
		logger.Debug("call failed", "entrypoint", item.EntryPoint, "caller", item.Caller, "error", err)
		return nil, err
	}
	result.PostStateHash = root

	logger.Debug("call applied", "entrypoint", item.EntryPoint, "caller", item.Caller, "root", root, "elapsed", time.Since(start))
	return result, nil
}

// bindArgs maps named arguments onto callArgs. With strict checking enabled, unknown and
// missing arguments are rejected and values are checked against their struct tags.
func (e *Engine) bindArgs(names []string, raw map[string]string) (*callArgs, error) {
	args := &callArgs{}
	fields := map[string]*string{
		ArgValidator:      &args.Validator,
		ArgDelegator:      &args.Delegator,
		ArgAmount:         &args.Amount,
		ArgDelegationRate: &args.DelegationRate,
	}
	strict := e.cfg.StrictArgumentChecking()

	for name, value := range raw {
		if !slices.Contains(names, name) {
			if strict {
				return nil, reverts.ErrInvalidArgument.Withf("unexpected argument %q", name)
			}
			continue
		}
		*fields[name] = value
	}
	for _, name := range names {
		if *fields[name] == "" {
			return nil, reverts.ErrInvalidArgument.Withf("missing argument %q", name)
		}
	}
	if strict {
		if err := e.validate.Struct(args); err != nil {
			return nil, reverts.ErrInvalidArgument.Withf("%v", err)
		}
	}
	return args, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case reverts.IsInvariant(err):
		return "invariant"
	case reverts.IsRevertErr(err):
		return "rejected"
	default:
		return "error"
	}
}

func parseAccount(name, value string) (types.AccountHash, error) {
	pub, err := types.ParsePublicKey(value)
	if err != nil {
		return types.AccountHash{}, reverts.ErrInvalidArgument.Withf("%s: %v", name, err)
	}
	return pub.AccountHash(), nil
}

func parseAmount(value string) (*uint256.Int, error) {
	amount, err := types.ParseMotes(value)
	if err != nil {
		return nil, reverts.ErrInvalidArgument.Withf("%s: %v", ArgAmount, err)
	}
	return amount, nil
}

func parseRate(value string) (types.DelegationRate, error) {
	rate, err := strconv.ParseUint(value, 10, 8)
	if err != nil {
		return 0, reverts.ErrInvalidDelegationRate.Withf("%s: %v", ArgDelegationRate, err)
	}
	return types.DelegationRate(rate), nil
}

// authorize resolves the account named by arg and requires the caller to own it.
func (c *call) authorize(arg, value string) (types.AccountHash, error) {
	account, err := parseAccount(arg, value)
	if err != nil {
		return types.AccountHash{}, err
	}
	if account != c.caller {
		return types.AccountHash{}, reverts.ErrInvalidCaller.Withf("caller %v is not the %s %v", c.caller, arg, account)
	}
	return account, nil
}

func (c *call) addBid() (*ExecutionResult, error) {
	validator, err := c.authorize(ArgValidator, c.args.Validator)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(c.args.Amount)
	if err != nil {
		return nil, err
	}
	rate, err := parseRate(c.args.DelegationRate)
	if err != nil {
		return nil, err
	}

	delta, err := c.auction.AddBid(validator, amount, rate)
	if err != nil {
		return nil, err
	}
	if delta.Debit != nil {
		if err := c.balances.Debit(validator, delta.Debit); err != nil {
			return nil, err
		}
		metricBonded().AddWithLabel(1, map[string]string{"kind": "bid"})
	}
	return &ExecutionResult{Debited: delta.Debit, Unbond: delta.Unbond}, nil
}

func (c *call) withdrawBid() (*ExecutionResult, error) {
	validator, err := c.authorize(ArgValidator, c.args.Validator)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(c.args.Amount)
	if err != nil {
		return nil, err
	}
	entry, err := c.auction.WithdrawBid(validator, amount)
	if err != nil {
		return nil, err
	}
	return &ExecutionResult{Unbond: entry}, nil
}

func (c *call) activateBid() (*ExecutionResult, error) {
	validator, err := c.authorize(ArgValidator, c.args.Validator)
	if err != nil {
		return nil, err
	}
	if err := c.auction.ActivateBid(validator); err != nil {
		return nil, err
	}
	return &ExecutionResult{}, nil
}

func (c *call) delegate() (*ExecutionResult, error) {
	delegator, err := c.authorize(ArgDelegator, c.args.Delegator)
	if err != nil {
		return nil, err
	}
	validator, err := parseAccount(ArgValidator, c.args.Validator)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(c.args.Amount)
	if err != nil {
		return nil, err
	}

	if err := c.auction.Delegate(delegator, validator, amount); err != nil {
		return nil, err
	}
	if err := c.balances.Debit(delegator, amount); err != nil {
		return nil, err
	}
	metricBonded().AddWithLabel(1, map[string]string{"kind": "delegation"})
	return &ExecutionResult{Debited: amount}, nil
}

func (c *call) undelegate() (*ExecutionResult, error) {
	delegator, err := c.authorize(ArgDelegator, c.args.Delegator)
	if err != nil {
		return nil, err
	}
	validator, err := parseAccount(ArgValidator, c.args.Validator)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(c.args.Amount)
	if err != nil {
		return nil, err
	}

	entry, err := c.auction.Undelegate(delegator, validator, amount)
	if err != nil {
		return nil, err
	}
	return &ExecutionResult{Unbond: entry}, nil
}
