// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/storage"
)

// TransitionState - where a transition currently stands
type TransitionState int

// possible states
const (
	StateNotFound  TransitionState = iota
	StatePending   TransitionState = iota
	StateConfirmed TransitionState = iota
)

// String - convert the state value for printf
func (state TransitionState) String() string {
	switch state {
	case StateNotFound:
		return "NotFound"
	case StatePending:
		return "Pending"
	case StateConfirmed:
		return "Confirmed"
	default:
		return "*Unknown*"
	}
}

// MarshalText - convert the state value for JSON
func (state TransitionState) MarshalText() ([]byte, error) {
	return []byte(state.String()), nil
}

// UnmarshalText - convert the state value from JSON to enumeration
func (state *TransitionState) UnmarshalText(s []byte) error {
	switch string(s) {
	case "NotFound":
		*state = StateNotFound
	case "Pending":
		*state = StatePending
	case "Confirmed":
		*state = StateConfirmed
	default:
		*state = StateNotFound
	}
	return nil
}

// TransitionStatus - look up the state of a transition id
//
// pending in this node's reservoir, confirmed in the local store, or
// not seen at all
func TransitionStatus(txId digest.Digest) TransitionState {
	globalData.RLock()
	defer globalData.RUnlock()

	if _, ok := globalData.pendingTransitions[txId]; ok {
		return StatePending
	}
	if storage.Pool.Transitions.Has(txId[:]) {
		return StateConfirmed
	}
	return StateNotFound
}
