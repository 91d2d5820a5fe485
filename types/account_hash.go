// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// AccountHash identifies an account. It is derived from a public key and is the
// primary key of every ledger record. AccountHashes are totally ordered by their bytes.
type AccountHash [HashLength]byte

// SystemAccount is the all-zero account hash owned by the system public key.
var SystemAccount = AccountHash{}

// String implements stringer
func (a AccountHash) String() string {
	return "account-hash-" + hex.EncodeToString(a[:])
}

// AbbrevString returns abbrev string presentation.
func (a AccountHash) AbbrevString() string {
	return fmt.Sprintf("%x…%x", a[:4], a[28:])
}

// Bytes returns byte slice form of AccountHash.
func (a AccountHash) Bytes() []byte {
	return a[:]
}

// IsZero returns if AccountHash has all zero bytes.
func (a AccountHash) IsZero() bool {
	return a == AccountHash{}
}

// Compare returns -1, 0 or 1 when a is less than, equal to or greater than b.
func (a AccountHash) Compare(b AccountHash) int {
	return bytes.Compare(a[:], b[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a AccountHash) MarshalText() ([]byte, error) {
	return []byte("0x" + hex.EncodeToString(a[:])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AccountHash) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountHash(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAccountHash parses hex, with an optional 0x or account-hash- prefix.
func ParseAccountHash(s string) (AccountHash, error) {
	s = trimAccountHashPrefix(s)
	var a AccountHash
	if err := decodeFixedHex(s, a[:]); err != nil {
		return AccountHash{}, fmt.Errorf("account hash: %w", err)
	}
	return a, nil
}

// MustParseAccountHash parses s into AccountHash, panic on error.
func MustParseAccountHash(s string) AccountHash {
	a, err := ParseAccountHash(s)
	if err != nil {
		panic(err)
	}
	return a
}

// BytesToAccountHash converts bytes slice into AccountHash, cropping or extending from the left.
func BytesToAccountHash(b []byte) AccountHash {
	return AccountHash(BytesToHash(b))
}

func trimAccountHashPrefix(s string) string {
	const prefix = "account-hash-"
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return s
}
