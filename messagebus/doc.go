// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - internal queues
//
// hands commands from event sources (file watcher, timers, RPC) to the
// background loop that owns the data, so all mutation is serialised
package messagebus
