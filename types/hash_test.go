// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashMarshalUnmarshal(t *testing.T) {
	original := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var h Hash
	err := json.Unmarshal([]byte(original), &h)
	assert.NoError(t, err)

	out, err := json.Marshal(h)
	assert.NoError(t, err)
	assert.Equal(t, original, string(out))

	out, err = json.Marshal(&h)
	assert.NoError(t, err)
	assert.Equal(t, original, string(out))
}

func TestParseHash(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"prefixed", "0x" + "11" + "00000000000000000000000000000000000000000000000000000000000022", false},
		{"bare", "1100000000000000000000000000000000000000000000000000000000000022", false},
		{"short", "0x1122", true},
		{"long", "0x" + "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHash(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, byte(0x11), h[0])
			assert.Equal(t, byte(0x22), h[31])
		})
	}
}

func TestBlake2b(t *testing.T) {
	data := []byte("auction")
	h1 := Blake2b(data)
	h2 := Blake2b([]byte("auc"), []byte("tion"))
	h3 := Blake2bFn(func(w io.Writer) {
		w.Write([]byte("a"))
		w.Write([]byte("uction"))
	})

	assert.Equal(t, h1, h2)
	assert.Equal(t, h1, h3)
	assert.False(t, h1.IsZero())
	assert.NotEqual(t, h1, Blake2b([]byte("auction!")))
}

func TestBytesToHash(t *testing.T) {
	h := BytesToHash([]byte{1, 2})
	assert.Equal(t, byte(1), h[30])
	assert.Equal(t, byte(2), h[31])
	assert.Equal(t, Hash{}, BytesToHash(nil))
}
