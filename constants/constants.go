// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

import (
	"time"
)

// the time for an in-flight transition to expire
const (
	ReservoirTimeout = 24 * time.Hour
)

// the time limit for a counterparty to answer a proposal
const (
	ProposalTimeout = 2 * time.Minute
)

// the gap between successive retries of an unanswered request
const (
	RetryInterval = 1 * time.Minute
)
