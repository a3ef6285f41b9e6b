// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/counter"
	"github.com/bitmark-inc/obligationd/directory"
	"github.com/bitmark-inc/obligationd/directory/rpc"
	"github.com/bitmark-inc/obligationd/mode"
	"github.com/bitmark-inc/obligationd/reservoir"
	"github.com/bitmark-inc/obligationd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Dir     directory.Directory
	Rsvr    reservoir.Reservoir
	counter *counter.Counter
	account *account.Account
	notary  *account.Account
}

// limit for count
const maximumNodeList = 100

// ---

// NodeArguments - arguments for RPC
type NodeArguments struct {
	Start uint64 `json:"Start,string"`
	Count int    `json:"count"`
}

// NodeReply - result from RPC
type NodeReply struct {
	Nodes     []rpc.Entry `json:"nodes"`
	NextStart uint64      `json:"nextStart,string"`
}

func New(log *logger.L,
	start time.Time,
	version string,
	cntr *counter.Counter,
	dir directory.Directory,
	rsvr reservoir.Reservoir,
	identity *account.Account,
	notaryAccount *account.Account,
) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Dir:     dir,
		Rsvr:    rsvr,
		counter: cntr,
		account: identity,
		notary:  notaryAccount,
	}
}

// List - list all nodes offering RPC functionality
func (node *Node) List(arguments *NodeArguments, reply *NodeReply) error {

	if err := ratelimit.LimitN(node.Limiter, arguments.Count, maximumNodeList); nil != err {
		return err
	}

	nodes, nextStart, err := node.Dir.FetchRPCs(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}
	reply.Nodes = nodes
	reply.NextStart = nextStart

	return nil
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Network            string   `json:"network"`
	Mode               string   `json:"mode"`
	Account            string   `json:"account"`
	Notary             string   `json:"notary"`
	TransitionCounters Counters `json:"transitionCounters"`
	RPCs               uint64   `json:"rpcs"`
	Version            string   `json:"Version"`
	Uptime             string   `json:"uptime"`
}

// Counters - transition counters
type Counters struct {
	Pending int `json:"pending"`
	Locks   int `json:"locks"`
}

// Info - return some information about this node
// only enough for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Network = mode.NetworkName()
	reply.Mode = mode.String()
	if nil != node.account {
		reply.Account = node.account.String()
	}
	if nil != node.notary {
		reply.Notary = node.notary.String()
	}
	reply.TransitionCounters.Pending, reply.TransitionCounters.Locks = node.Rsvr.ReadCounters()
	reply.RPCs = node.counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
