// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/vechain/auction/kv"
	"github.com/vechain/auction/stackedmap"
	"github.com/vechain/auction/types"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// State manages the ledger state on top of a read-only kv getter.
type State struct {
	src  kv.Getter
	root types.Hash
	sm   *stackedmap.StackedMap[string, []byte] // keeps revisions of values, nil means deleted
}

// New create state object.
func New(src kv.Getter, root types.Hash) *State {
	state := State{
		src:  src,
		root: root,
	}
	state.sm = stackedmap.New(func(key string) ([]byte, bool, error) {
		return state.srcGetter(key)
	})
	return &state
}

// srcGetter implements stackedmap.MapGetter.
func (s *State) srcGetter(key string) ([]byte, bool, error) {
	val, found, err := kv.GetValue(s.src, []byte(key))
	if err != nil {
		return nil, false, &Error{err}
	}
	return val, found, nil
}

// Root returns the root the state was created on.
func (s *State) Root() types.Hash {
	return s.root
}

// Get returns the value of key, nil if absent.
func (s *State) Get(key []byte) ([]byte, error) {
	val, _, err := s.sm.Get(string(key))
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Has returns whether key holds a non-empty value.
func (s *State) Has(key []byte) (bool, error) {
	val, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return len(val) > 0, nil
}

// Put sets the value of key. An empty value deletes the key.
func (s *State) Put(key, val []byte) {
	if len(val) == 0 {
		val = nil
	}
	s.sm.Put(string(key), val)
}

// Delete removes key.
func (s *State) Delete(key []byte) {
	s.sm.Put(string(key), nil)
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 0 {
		panic("invalid revision")
	}
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Stage makes a stage object to compute the post state hash or commit changes.
func (s *State) Stage() *Stage {
	changes := make(map[string][]byte)
	s.sm.Journal(func(key string, value []byte) bool {
		changes[key] = value
		return true
	})
	return newStage(s.root, changes)
}
