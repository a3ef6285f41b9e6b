// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/coordinator"
	"github.com/bitmark-inc/obligationd/counter"
	"github.com/bitmark-inc/obligationd/directory"
	"github.com/bitmark-inc/obligationd/mode"
	"github.com/bitmark-inc/obligationd/notary"
	"github.com/bitmark-inc/obligationd/ownership"
	"github.com/bitmark-inc/obligationd/reservoir"
	rpcDirectory "github.com/bitmark-inc/obligationd/rpc/directory"
	"github.com/bitmark-inc/obligationd/rpc/node"
	"github.com/bitmark-inc/obligationd/rpc/obligation"
	"github.com/bitmark-inc/obligationd/storage"
)

func Create(log *logger.L, version string, rpcCount *counter.Counter, identity *account.Account) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(obligation.New(
		log,
		mode.Is,
		mode.IsTesting,
		coordinator.Get(),
		reservoir.Get(),
		ownership.Get(),
		storage.Pool.Transitions,
		storage.Pool.States,
		storage.Pool.Heads,
	))
	_ = server.Register(node.New(log, start, version, rpcCount, directory.Get(), reservoir.Get(), identity, notary.Account()))
	_ = server.Register(rpcDirectory.New(log, directory.Get()))

	return server
}
