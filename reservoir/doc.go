// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reservoir - in-flight tracking for:
// 1. locks on consumed record versions so concurrent attempts cannot
//    reference the same version
// 2. co-signed transitions that are waiting for finality
//
// all state is process local; protection against double consumption
// across nodes is the notary's responsibility
package reservoir
