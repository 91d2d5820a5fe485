// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/vechain/auction/types"
)

func Test_Reverts(t *testing.T) {
	revert := New(KindPolicy, "Test", "test")
	assert.Equal(t, "test", revert.message)
	assert.Equal(t, revert.Error(), revert.message)

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func Test_RevertsMatchByCode(t *testing.T) {
	detailed := ErrValidatorNotFound.Withf("validator %v", types.AccountHash{1})
	assert.ErrorIs(t, detailed, ErrValidatorNotFound)
	assert.NotErrorIs(t, detailed, ErrDelegatorNotFound)
	assert.Contains(t, detailed.Error(), "validator not found: validator account-hash-01")
	assert.Equal(t, KindState, detailed.Kind())

	wrapped := errors.Wrap(detailed, "undelegate")
	assert.ErrorIs(t, wrapped, ErrValidatorNotFound)
	assert.True(t, IsRevertErr(wrapped))
}

func Test_RevertsWrapCause(t *testing.T) {
	err := ErrDelegatorNotFound.Withf("no position").Wrap(ErrUndelegateAmountExceedsStake)
	assert.ErrorIs(t, err, ErrDelegatorNotFound)
	assert.ErrorIs(t, err, ErrUndelegateAmountExceedsStake)
	assert.NotErrorIs(t, err, ErrValidatorNotFound)
	assert.Equal(t, "DelegatorNotFound", err.Code())
	assert.Equal(t, "delegator not found: no position: amount exceeds staked amount", err.Error())
}

func Test_ArithmeticAndInvariant(t *testing.T) {
	err := Arithmetic(types.ErrOverflow)
	assert.ErrorIs(t, err, ErrArithmetic)
	assert.ErrorIs(t, err, types.ErrOverflow)
	assert.Equal(t, KindArithmetic, err.Kind())
	assert.False(t, IsInvariant(err))

	inv := Invariant("negative stake for %s", "validator")
	assert.True(t, IsInvariant(inv))
	assert.True(t, IsInvariant(errors.Wrap(inv, "step")))
	assert.Equal(t, "InvariantViolation", inv.Kind().String())
}
