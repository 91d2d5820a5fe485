// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Motes amounts are *uint256.Int values. They are never negative and the helpers
// below never wrap: every overflow or underflow is returned as an error.

var (
	ErrOverflow       = errors.New("motes overflow")
	ErrUnderflow      = errors.New("motes underflow")
	ErrDivisionByZero = errors.New("motes division by zero")
)

// NewMotes returns an amount initialised from v.
func NewMotes(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

// ZeroMotes returns a fresh zero amount.
func ZeroMotes() *uint256.Int {
	return new(uint256.Int)
}

// ParseMotes parses a decimal amount. Underscores are accepted as digit separators.
func ParseMotes(s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(strings.ReplaceAll(s, "_", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid motes %q: %w", s, err)
	}
	return v, nil
}

// MustParseMotes parses s, panic on error.
func MustParseMotes(s string) *uint256.Int {
	v, err := ParseMotes(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Add returns a + b.
func Add(a, b *uint256.Int) (*uint256.Int, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}
	return sum, nil
}

// Sub returns a - b.
func Sub(a, b *uint256.Int) (*uint256.Int, error) {
	diff, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, ErrUnderflow
	}
	return diff, nil
}

// Mul returns a * b.
func Mul(a, b *uint256.Int) (*uint256.Int, error) {
	prod, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}
	return prod, nil
}

// MulDiv returns floor(a * b / d) with a 512 bit intermediate product.
func MulDiv(a, b, d *uint256.Int) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, ErrDivisionByZero
	}
	q, overflow := new(uint256.Int).MulDivOverflow(a, b, d)
	if overflow {
		return nil, ErrOverflow
	}
	return q, nil
}

// Sum adds all amounts.
func Sum(amounts ...*uint256.Int) (*uint256.Int, error) {
	total := new(uint256.Int)
	for _, a := range amounts {
		var err error
		if total, err = Add(total, a); err != nil {
			return nil, err
		}
	}
	return total, nil
}

// CloneMotes copies v, treating nil as zero.
func CloneMotes(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v.Clone()
}
