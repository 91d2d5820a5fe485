// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"encoding/binary"
	"strconv"
)

// EraID identifies a staking epoch.
type EraID uint64

// InitialEraID is the era recorded at genesis.
const InitialEraID EraID = 0

// Bytes returns the big-endian form, so byte order matches numeric order.
func (e EraID) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(e))
	return b[:]
}

// Successor returns the next era id.
func (e EraID) Successor() EraID {
	return e + 1
}

// AddEras returns e + n, saturating at the maximum era id.
func (e EraID) AddEras(n uint64) EraID {
	if uint64(e) > ^uint64(0)-n {
		return EraID(^uint64(0))
	}
	return e + EraID(n)
}

func (e EraID) String() string {
	return strconv.FormatUint(uint64(e), 10)
}
