// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the ledger key-value state.
// It follows the flow as bellow:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ playback(staging) ] -> [ state hash + kv bulk ]
//	         |
//	 [ read-only kv ]
//
// Every request runs against a State; checkpoints are stackedmap levels, so reverting a failed
// request drops all of its writes. The state hash chains the parent root with the sorted set of
// changed keys, so identical request sequences yield identical roots on every node.
package state
