// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package observer

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/obligationd/directory/party"
)

const addpartyCommand = "addparty"

type addparty struct {
	log     *logger.L
	parties party.Party
}

// NewAddparty - create a handler for party announcements
//
// parameters: account bytes, packed listeners, session public key,
// big endian timestamp
func NewAddparty(log *logger.L, parties party.Party) Observer {
	return &addparty{
		log:     log,
		parties: parties,
	}
}

func (a *addparty) Update(command string, parameters [][]byte) {
	if addpartyCommand != command {
		return
	}
	if 4 != len(parameters) {
		a.log.Errorf("addparty with: %d parameters", len(parameters))
		return
	}

	timestamp := binary.BigEndian.Uint64(parameters[3])
	if a.parties.Add(parameters[0], parameters[1], parameters[2], timestamp) {
		a.log.Infof("added party: %x  listeners: %x", parameters[0], parameters[1])
	}
}
