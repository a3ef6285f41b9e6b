// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package notary - client connection to the notarisation daemon
//
// the notary orders fully endorsed transitions and guarantees that a
// record version is consumed at most once; a submission ends in one
// of three ways: a confirmation signature over the transition id, the
// id of the transition that consumed the input first, or an error
//
// the confirmation is an Ed25519 signature by the notary account, so
// any party holding that account can check finality offline
package notary
