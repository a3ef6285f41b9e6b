// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package observer

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/obligationd/directory/rpc"
)

const addrpcCommand = "addrpc"

type addrpc struct {
	log  *logger.L
	rpcs rpc.RPC
}

// NewAddrpc - create a handler for rpc listener announcements
//
// parameters: certificate fingerprint, packed listeners, big endian
// timestamp
func NewAddrpc(log *logger.L, rpcs rpc.RPC) Observer {
	return &addrpc{
		log:  log,
		rpcs: rpcs,
	}
}

func (a *addrpc) Update(command string, parameters [][]byte) {
	if addrpcCommand != command {
		return
	}
	if 3 != len(parameters) {
		a.log.Errorf("addrpc with: %d parameters", len(parameters))
		return
	}

	timestamp := binary.BigEndian.Uint64(parameters[2])
	if a.rpcs.Add(parameters[0], parameters[1], timestamp) {
		a.log.Infof("added rpc: %x", parameters[0])
	}
}
