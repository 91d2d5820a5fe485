// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

// DelegationRate is the percentage of delegator rewards kept by the validator.
type DelegationRate uint8

// MaxDelegationRate is 100 percent.
const MaxDelegationRate DelegationRate = 100

// Valid returns whether the rate is within [0, 100].
func (r DelegationRate) Valid() bool {
	return r <= MaxDelegationRate
}
