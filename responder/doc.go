// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package responder - answer proposals from counterparty coordinators
//
// a proposal is verified from scratch against the local store and the
// same rules the proposer ran; nothing in the message is trusted. a
// valid proposal is endorsed with this node's identity and held
// pending, locking the record version it consumes, until the proposer
// distributes the notary confirmation, an abandon notice arrives or
// the pending entry expires.
package responder
