// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package observer

import (
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/obligationd/directory/party"
)

const updatetimeCommand = "updatetime"

type updatetime struct {
	log     *logger.L
	parties party.Party
}

// NewUpdatetime - create a handler to refresh a party timestamp
//
// parameters: account bytes
//
// sent after a successful session with a counterparty so that an
// active party is not expired between directory announcements
func NewUpdatetime(log *logger.L, parties party.Party) Observer {
	return &updatetime{
		log:     log,
		parties: parties,
	}
}

func (u *updatetime) Update(command string, parameters [][]byte) {
	if updatetimeCommand != command {
		return
	}
	if 1 != len(parameters) {
		u.log.Errorf("updatetime with: %d parameters", len(parameters))
		return
	}

	u.log.Debugf("refresh party: %x", parameters[0])
	u.parties.UpdateTime(parameters[0], time.Now())
}
