// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package parameter

import "time"

const (
	// InitialiseInterval - startup delay before the first periodic pass
	InitialiseInterval = 1 * time.Minute

	// PollingInterval - regular expiry and backup time
	PollingInterval = 3 * time.Minute

	// ExpiryInterval - if an entry is not refreshed within this time, delete it
	ExpiryInterval = 5 * PollingInterval

	// ReFetchingInterval - re-fetching the parties domain when the zone gives no better value
	ReFetchingInterval = 1 * time.Hour
)
