// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package directory

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/directory"
	"github.com/bitmark-inc/obligationd/directory/party"
	"github.com/bitmark-inc/obligationd/rpc/ratelimit"
)

const (
	rateLimitDirectory = 200
	rateBurstDirectory = 100
)

// Directory - type for RPC calls
type Directory struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Dir     directory.Directory
}

// limit for count
const maximumPartyList = 100

// PartiesArguments - arguments for RPC
type PartiesArguments struct {
	Start uint64 `json:"Start,string"`
	Count int    `json:"count"`
}

// PartiesReply - result from RPC
type PartiesReply struct {
	Parties   []party.Entry `json:"parties"`
	NextStart uint64        `json:"nextStart,string"`
}

func New(log *logger.L, dir directory.Directory) *Directory {
	return &Directory{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitDirectory, rateBurstDirectory),
		Dir:     dir,
	}
}

// Parties - list parties accepting session connections
func (d *Directory) Parties(arguments *PartiesArguments, reply *PartiesReply) error {

	if err := ratelimit.LimitN(d.Limiter, arguments.Count, maximumPartyList); nil != err {
		return err
	}

	parties, nextStart, err := d.Dir.FetchParties(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}
	reply.Parties = parties
	reply.NextStart = nextStart

	return nil
}
