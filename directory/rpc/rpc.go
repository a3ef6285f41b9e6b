// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"bytes"
	"sync"
	"time"

	"github.com/bitmark-inc/obligationd/directory/helper"
	"github.com/bitmark-inc/obligationd/directory/parameter"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/util"
)

const (
	addressLimit = 100
	maxNodeCount = 1000
)

// RPC - interface for RPC announcement operations
type RPC interface {
	Set(util.FingerprintBytes, []byte) error
	Add([]byte, []byte, uint64) bool
	Expire()
	IsInitialised() bool
	Fetch(start uint64, count int) ([]Entry, uint64, error)
	Self() []byte
	ID() util.FingerprintBytes
}

// Entry - type of returned data
type Entry struct {
	Fingerprint util.FingerprintBytes `json:"fingerprint"`
	Connections []*util.Connection    `json:"connections"`
}

type node struct {
	address   util.PackedConnection // packed addresses
	fin       util.FingerprintBytes // SHA3-256(certificate)
	timestamp time.Time             // creation time
	local     bool                  // true => never expires
}

type rpc struct {
	sync.RWMutex
	fin         util.FingerprintBytes
	initialised bool
	nodes       []*node
	index       map[util.FingerprintBytes]int
	self        []byte
}

// Set - initialise this node's rpc announcement data
func (r *rpc) Set(fin util.FingerprintBytes, rpcs []byte) error {
	r.Lock()
	defer r.Unlock()

	if r.initialised {
		return fault.AlreadyInitialised
	}

	r.fin = fin
	r.self = rpcs
	r.initialised = true

	// save node info
	r.add(fin, rpcs, uint64(time.Now().Unix()), true)

	return nil
}

// Add - add a remote RPC listener
// returns:
//
//	true  if this was a new or updated entry
//	false if the record was unusable or nothing changed
func (r *rpc) Add(f []byte, listeners []byte, timestamp uint64) bool {
	var fin util.FingerprintBytes
	// discard invalid records
	if len(fin) != len(f) || 0 == len(listeners) || len(listeners) > addressLimit {
		return false
	}
	copy(fin[:], f)

	r.Lock()
	rc := r.add(fin, listeners, timestamp, false)
	r.Unlock()
	return rc
}

// internal add a remote RPC listener, hold lock before calling
func (r *rpc) add(fin util.FingerprintBytes, listeners []byte, timestamp uint64, local bool) bool {
	i, ok := r.index[fin]

	// if new item
	if !ok {
		ts := helper.ResetFutureTimestampToNow(timestamp)
		if helper.IsExpiredAfterDuration(ts, parameter.ExpiryInterval) {
			return false
		}

		e := &node{
			address:   listeners,
			fin:       fin,
			timestamp: ts,
			local:     local,
		}

		n := len(r.nodes)
		r.nodes = append(r.nodes, e)
		r.index[fin] = n
		return true
	}

	e := r.nodes[i]

	changed := false
	if !bytes.Equal(e.address, listeners) {
		e.address = listeners
		changed = true
	}
	e.timestamp = time.Now()

	return changed
}

// Expire - called in background to expire outdated RPC entries
func (r *rpc) Expire() {
	r.Lock()
	defer r.Unlock()

	n := len(r.nodes)

expiration:
	for i := n - 1; i >= 0; i-- {

		e := r.nodes[i]
		if nil == e || e.local {
			continue expiration
		}

		if helper.IsExpiredAfterDuration(e.timestamp, parameter.ExpiryInterval) {

			delete(r.index, e.fin)
			n--
			if i != n {
				e := r.nodes[n]
				r.nodes[i] = e
				r.index[e.fin] = i
			}
			r.nodes[n] = nil
		}
	}
	r.nodes = r.nodes[:n] // shrink the list
}

// IsInitialised - return flag of initialised status
func (r *rpc) IsInitialised() bool {
	r.RLock()
	defer r.RUnlock()
	return r.initialised
}

// Fetch - fetch some records
func (r *rpc) Fetch(start uint64, count int) ([]Entry, uint64, error) {
	if count <= 0 {
		return nil, 0, fault.InvalidCount
	}

	r.RLock()
	defer r.RUnlock()

	n := uint64(len(r.nodes))
	if start >= n {
		return nil, 0, nil
	}

	remainder := n - start
	c := uint64(count)

	if c >= remainder {
		c = remainder
	}

	records := make([]Entry, c)
	for i := uint64(0); i < c; i += 1 {

		a := r.nodes[start].address

		conn := make([]*util.Connection, 0, 4)

	loop:
		for {
			c, n := a.Unpack()
			if 0 == n {
				break loop
			}
			conn = append(conn, c)
			a = a[n:]
		}
		records[i].Fingerprint = r.nodes[start].fin
		records[i].Connections = conn

		start++
	}

	return records, start, nil
}

// Self - this node's packed rpc listeners
func (r *rpc) Self() []byte {
	r.RLock()
	defer r.RUnlock()
	return r.self
}

// ID - SHA3 of this node's certificate
func (r *rpc) ID() util.FingerprintBytes {
	r.RLock()
	defer r.RUnlock()
	return r.fin
}

// New - return RPC interface
func New() RPC {
	return &rpc{
		index: make(map[util.FingerprintBytes]int, maxNodeCount),
		nodes: make([]*node, 0, maxNodeCount),
	}
}
