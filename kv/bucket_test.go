// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("not found")

type mem map[string]string

func (m mem) Get(k []byte) ([]byte, error) {
	if v, ok := m[string(k)]; ok {
		return []byte(v), nil
	}
	return nil, errNotFound
}

func (m mem) Put(k, v []byte) error {
	m[string(k)] = string(v)
	return nil
}

func (m mem) Delete(k []byte) error {
	delete(m, string(k))
	return nil
}

func (m mem) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

func TestBucket_GetterGet(t *testing.T) {
	m := mem{"meta.head": "root", "state.bid": "v1"}

	tests := []struct {
		b     Bucket
		key   string
		want  string
		found bool
	}{
		{Bucket(""), "meta.head", "root", true},
		{Bucket("meta."), "head", "root", true},
		{Bucket("state."), "bid", "v1", true},
		{Bucket("state."), "head", "", false},
		{Bucket("meta"), ".head", "root", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.b)+tt.key, func(t *testing.T) {
			val, found, err := GetValue(tt.b.NewGetter(m), []byte(tt.key))
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, string(val))
			}
		})
	}
}

func TestBucket_Putter(t *testing.T) {
	m := mem{}
	p := Bucket("state.").NewPutter(m)

	require.NoError(t, p.Put([]byte("a"), []byte("1")))
	assert.Equal(t, mem{"state.a": "1"}, m)

	require.NoError(t, p.Delete([]byte("a")))
	assert.Empty(t, m)
}

type memBulk struct {
	m   mem
	ops []func()
}

func (b *memBulk) Put(k, v []byte) error {
	b.ops = append(b.ops, func() { b.m[string(k)] = string(v) })
	return nil
}

func (b *memBulk) Delete(k []byte) error {
	b.ops = append(b.ops, func() { delete(b.m, string(k)) })
	return nil
}

func (b *memBulk) Len() int { return len(b.ops) }

func (b *memBulk) Write() error {
	for _, op := range b.ops {
		op()
	}
	return nil
}

type memStore struct {
	mem
}

func (s memStore) Bulk() Bulk { return &memBulk{m: s.mem} }

func TestBucket_StoreBulk(t *testing.T) {
	m := mem{}
	store := Bucket("state.").NewStore(memStore{m})

	bulk := store.Bulk()
	require.NoError(t, bulk.Put([]byte("a"), []byte("1")))
	require.NoError(t, bulk.Put([]byte("b"), []byte("2")))
	assert.Equal(t, 2, bulk.Len())
	assert.Empty(t, m)

	require.NoError(t, bulk.Write())
	assert.Equal(t, mem{"state.a": "1", "state.b": "2"}, m)

	val, found, err := GetValue(store, []byte("b"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "2", string(val))
}
