// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"encoding/binary"
	"io"
	"sort"

	"github.com/pkg/errors"
	"github.com/vechain/auction/kv"
	"github.com/vechain/auction/types"
)

// Stage abstracts changes on the ledger state.
type Stage struct {
	parent  types.Hash
	changes []change
}

type change struct {
	key   string
	value []byte // nil for deletion
}

func newStage(parent types.Hash, changes map[string][]byte) *Stage {
	sorted := make([]change, 0, len(changes))
	for k, v := range changes {
		sorted = append(sorted, change{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].key < sorted[j].key })
	return &Stage{parent: parent, changes: sorted}
}

// Len returns the count of changed keys.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash computes the post state hash.
// A stage without changes keeps the parent root.
func (s *Stage) Hash() types.Hash {
	if len(s.changes) == 0 {
		return s.parent
	}
	return types.Blake2bFn(func(w io.Writer) {
		var buf [binary.MaxVarintLen64]byte
		writeBytes := func(b []byte) {
			n := binary.PutUvarint(buf[:], uint64(len(b)))
			w.Write(buf[:n])
			w.Write(b)
		}
		w.Write(s.parent[:])
		for _, c := range s.changes {
			writeBytes([]byte(c.key))
			if c.value == nil {
				w.Write([]byte{0})
			} else {
				w.Write([]byte{1})
				writeBytes(c.value)
			}
		}
	})
}

// Commit writes all changes into the putter and returns the post state hash.
func (s *Stage) Commit(putter kv.Putter) (types.Hash, error) {
	for _, c := range s.changes {
		var err error
		if c.value == nil {
			err = putter.Delete([]byte(c.key))
		} else {
			err = putter.Put([]byte(c.key), c.value)
		}
		if err != nil {
			return types.Hash{}, errors.Wrap(err, "commit state")
		}
	}
	return s.Hash(), nil
}
