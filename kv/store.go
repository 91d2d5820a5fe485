// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv is the synchronous key-value contract the ledger persists through.
package kv

// Getter defines methods to read kv.
type Getter interface {
	Get(key []byte) ([]byte, error)
	IsNotFound(err error) bool
}

// Putter defines methods to write kv.
type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Bulk is the bulk putter. Writes are buffered until Write is called, and applied atomically.
type Bulk interface {
	Putter
	Len() int
	Write() error
}

// Store is a kv store able to commit a request in one atomic write.
type Store interface {
	Getter
	Putter
	Bulk() Bulk
}

// StoreCloser is a store that owns resources.
type StoreCloser interface {
	Store
	Close() error
}

// GetValue reads the value of key, reporting found=false instead of a not-found error.
func GetValue(g Getter, key []byte) (val []byte, found bool, err error) {
	val, err = g.Get(key)
	if err != nil {
		if g.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}
