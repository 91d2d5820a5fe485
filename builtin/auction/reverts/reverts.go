// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies request rejections.
type Kind uint8

const (
	// KindPolicy rejects a request forbidden by the engine configuration.
	KindPolicy Kind = iota + 1
	// KindState rejects a request that does not match the current ledger.
	KindState
	// KindArithmetic rejects a request whose amounts overflow or underflow.
	KindArithmetic
	// KindInvariant reports ledger corruption. It halts the engine instance.
	KindInvariant
)

func (k Kind) String() string {
	switch k {
	case KindPolicy:
		return "PolicyViolation"
	case KindState:
		return "StateViolation"
	case KindArithmetic:
		return "ArithmeticViolation"
	case KindInvariant:
		return "InvariantViolation"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var (
	ErrAuctionBidsDisabled           = New(KindPolicy, "AuctionBidsDisabled", "auction bids are disabled")
	ErrUnrestrictedTransfersDisabled = New(KindPolicy, "UnrestrictedTransfersDisabled", "unrestricted transfers are disabled")
	ErrInvalidDelegationRate         = New(KindPolicy, "InvalidDelegationRate", "delegation rate exceeds 100")
	ErrBelowMinimumDelegation        = New(KindPolicy, "BelowMinimumDelegation", "delegation below minimum amount")
	ErrBondTooSmall                  = New(KindPolicy, "BondTooSmall", "bond below minimum bid amount")
	ErrInvalidArgument               = New(KindPolicy, "InvalidArgument", "invalid argument")
	ErrInvalidCaller                 = New(KindPolicy, "InvalidCaller", "caller does not own the position")
	ErrInvalidProtocolVersion        = New(KindPolicy, "InvalidProtocolVersion", "invalid protocol version")
	ErrZeroAmount                    = New(KindPolicy, "ZeroAmount", "amount must be positive")

	ErrValidatorNotFound            = New(KindState, "ValidatorNotFound", "validator not found")
	ErrDelegatorNotFound            = New(KindState, "DelegatorNotFound", "delegator not found")
	ErrUndelegateAmountExceedsStake = New(KindState, "UndelegateAmountExceedsStake", "amount exceeds staked amount")
	ErrUnbondAmountExceedsStake     = New(KindState, "UnbondAmountExceedsStake", "amount exceeds self stake")
	ErrEraRegression                = New(KindState, "EraRegression", "era id does not advance")
	ErrEraAlreadyRecorded           = New(KindState, "EraAlreadyRecorded", "era validators already recorded")
	ErrParentStateMismatch          = New(KindState, "ParentStateMismatch", "parent state hash mismatch")
	ErrInsufficientBalance          = New(KindState, "InsufficientBalance", "insufficient balance")

	ErrArithmetic = New(KindArithmetic, "Arithmetic", "arithmetic violation")
	ErrInvariant  = New(KindInvariant, "Invariant", "ledger invariant violated")
)

// ErrRevert is a request-level rejection. Errors match by code, so a detailed copy made by
// Withf still satisfies errors.Is against its sentinel.
type ErrRevert struct {
	kind    Kind
	code    string
	message string
	cause   error
}

func New(kind Kind, code, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		code:    code,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *ErrRevert) Kind() Kind    { return e.kind }
func (e *ErrRevert) Code() string  { return e.code }
func (e *ErrRevert) Unwrap() error { return e.cause }

func (e *ErrRevert) Is(target error) bool {
	t, ok := target.(*ErrRevert)
	return ok && t.code == e.code
}

// Withf returns a copy of e with details appended to the message.
func (e *ErrRevert) Withf(format string, args ...any) *ErrRevert {
	cpy := *e
	cpy.message = e.message + ": " + fmt.Sprintf(format, args...)
	return &cpy
}

// Wrap returns a copy of e caused by cause, so the result also matches cause's sentinel.
func (e *ErrRevert) Wrap(cause error) *ErrRevert {
	cpy := *e
	cpy.cause = cause
	return &cpy
}

// Arithmetic wraps an overflow or underflow.
func Arithmetic(err error) *ErrRevert {
	return ErrArithmetic.Wrap(err)
}

// Invariant reports ledger corruption.
func Invariant(format string, args ...any) *ErrRevert {
	return ErrInvariant.Withf(format, args...)
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// IsInvariant reports whether err signals ledger corruption.
func IsInvariant(err error) bool {
	var ve *ErrRevert
	return errors.As(err, &ve) && ve.kind == KindInvariant
}
