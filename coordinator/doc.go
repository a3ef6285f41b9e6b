// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coordinator - drive obligation transitions to finality
//
// a transition attempt moves through: local validation against the
// rules and the current record version; endorsement by this node's
// identity; concurrent endorsement collection from every counterparty
// named by the record; submission to the notary; a single database
// transaction applying the committed transition.
//
// every terminal failure before submission releases the version locks
// and notifies any counterparty that already signed, so no partial
// state survives anywhere; after submission the outcome is whatever
// the notary decided.
package coordinator
