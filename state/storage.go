// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a typed key/value storage abstraction for the ledger, values are rlp encoded
// under prefix || key.
type Mapping[K Key, V any] struct {
	state  *State
	prefix []byte
}

func NewMapping[K Key, V any](state *State, prefix string) *Mapping[K, V] {
	return &Mapping[K, V]{state: state, prefix: []byte(prefix)}
}

func (m *Mapping[K, V]) key(key K) []byte {
	return append(append([]byte{}, m.prefix...), key.Bytes()...)
}

// Get returns the decoded value, or nil if the key is absent.
func (m *Mapping[K, V]) Get(key K) (*V, error) {
	return decode[V](m.state, m.key(key))
}

// Set stores the value.
func (m *Mapping[K, V]) Set(key K, value *V) error {
	return encode(m.state, m.key(key), value)
}

// Delete removes the key.
func (m *Mapping[K, V]) Delete(key K) {
	m.state.Delete(m.key(key))
}

// Raw is a single typed value stored under a fixed key.
type Raw[V any] struct {
	state *State
	key   []byte
}

func NewRaw[V any](state *State, key string) *Raw[V] {
	return &Raw[V]{state: state, key: []byte(key)}
}

// Get returns the decoded value, or nil if unset.
func (r *Raw[V]) Get() (*V, error) {
	return decode[V](r.state, r.key)
}

// Set stores the value.
func (r *Raw[V]) Set(value *V) error {
	return encode(r.state, r.key, value)
}

func decode[V any](state *State, key []byte) (*V, error) {
	raw, err := state.Get(key)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	value := new(V)
	if err := rlp.DecodeBytes(raw, value); err != nil {
		return nil, errors.Wrapf(err, "decode %x", key)
	}
	return value, nil
}

func encode[V any](state *State, key []byte, value *V) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrapf(err, "encode %x", key)
	}
	state.Put(key, raw)
	return nil
}
