// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Algorithm tags the scheme of a public key.
type Algorithm uint8

const (
	AlgorithmSystem Algorithm = iota
	AlgorithmEd25519
	AlgorithmSecp256k1
)

const (
	Ed25519KeyLength   = 32
	Secp256k1KeyLength = 33
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmSystem:
		return "system"
	case AlgorithmEd25519:
		return "ed25519"
	case AlgorithmSecp256k1:
		return "secp256k1"
	}
	return fmt.Sprintf("algorithm(%d)", uint8(a))
}

// PublicKey is a tagged public key, as passed to auction entry points.
type PublicKey struct {
	Algorithm Algorithm
	Key       []byte
}

// SystemPublicKey is the key of the system account; it carries no key bytes.
var SystemPublicKey = PublicKey{Algorithm: AlgorithmSystem}

// NewEd25519PublicKey wraps raw ed25519 key bytes.
func NewEd25519PublicKey(key []byte) (PublicKey, error) {
	if len(key) != Ed25519KeyLength {
		return PublicKey{}, fmt.Errorf("ed25519 key must be %d bytes, got %d", Ed25519KeyLength, len(key))
	}
	return PublicKey{Algorithm: AlgorithmEd25519, Key: common.CopyBytes(key)}, nil
}

// AccountHash derives the account hash as blake2b(algorithm-name || 0x00 || key).
// The system key maps to SystemAccount.
func (p PublicKey) AccountHash() AccountHash {
	if p.Algorithm == AlgorithmSystem {
		return SystemAccount
	}
	name := []byte(p.Algorithm.String())
	return AccountHash(Blake2b(name, []byte{0}, p.Key))
}

// String renders the key as tag byte followed by the key bytes, hex encoded.
func (p PublicKey) String() string {
	return hex.EncodeToString(append([]byte{byte(p.Algorithm)}, p.Key...))
}

// MarshalText implements encoding.TextMarshaler.
func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePublicKey parses the tag-prefixed hex form produced by String.
func ParsePublicKey(s string) (PublicKey, error) {
	b := common.FromHex(s)
	if len(b) == 0 {
		return PublicKey{}, errors.New("public key: empty input")
	}
	pk := PublicKey{Algorithm: Algorithm(b[0]), Key: b[1:]}
	switch pk.Algorithm {
	case AlgorithmSystem:
		if len(pk.Key) != 0 {
			return PublicKey{}, errors.New("public key: system key carries no bytes")
		}
	case AlgorithmEd25519:
		if len(pk.Key) != Ed25519KeyLength {
			return PublicKey{}, fmt.Errorf("public key: ed25519 key must be %d bytes", Ed25519KeyLength)
		}
	case AlgorithmSecp256k1:
		if len(pk.Key) != Secp256k1KeyLength {
			return PublicKey{}, fmt.Errorf("public key: secp256k1 key must be %d bytes", Secp256k1KeyLength)
		}
	default:
		return PublicKey{}, fmt.Errorf("public key: unknown algorithm tag %d", b[0])
	}
	return pk, nil
}

// MustParsePublicKey parses s, panic on error.
func MustParsePublicKey(s string) PublicKey {
	pk, err := ParsePublicKey(s)
	if err != nil {
		panic(err)
	}
	return pk
}
