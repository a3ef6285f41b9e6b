// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package party

import (
	"bytes"
	"encoding/hex"
	"sync"
	"time"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/avl"
	"github.com/bitmark-inc/obligationd/directory/helper"
	"github.com/bitmark-inc/obligationd/directory/parameter"
	"github.com/bitmark-inc/obligationd/fault"
)

const (
	addressLimit   = 100 // maximum packed listener bytes
	sessionKeySize = 32
)

// Party - interface for directory party operations
type Party interface {
	Add(accountBytes []byte, listeners []byte, sessionKey []byte, timestamp uint64) bool
	AddStatic(accountBytes []byte, listeners []byte, sessionKey []byte) bool
	SetSelf(accountBytes []byte, listeners []byte, sessionKey []byte) error
	UpdateTime(accountBytes []byte, timestamp time.Time)
	Lookup(acc *account.Account) *Data
	Fetch(start uint64, count int) ([]Entry, uint64, error)
	Expire()
	IsInitialised() bool
	Self() *Data
	Count() int
	Tree() *avl.Tree
}

type party struct {
	sync.RWMutex
	tree    *avl.Tree
	self    *Data
	selfSet bool
}

// Add - add or refresh an expiring entry
// returns:
//
//	true  if this was a new entry or the entry data changed
//	false if the record was unusable or nothing changed
func (p *party) Add(accountBytes []byte, listeners []byte, sessionKey []byte, timestamp uint64) bool {
	acc, err := account.AccountFromBytes(accountBytes)
	if nil != err {
		return false
	}
	if len(sessionKey) != sessionKeySize || 0 == len(listeners) || len(listeners) > addressLimit {
		return false
	}

	p.Lock()
	defer p.Unlock()

	key := item(accountBytes)
	node, _ := p.tree.Search(key)

	if nil == node {
		ts := helper.ResetFutureTimestampToNow(timestamp)
		if helper.IsExpiredAfterDuration(ts, parameter.ExpiryInterval) {
			return false
		}
		p.tree.Insert(key, &Data{
			Account:    acc,
			Listeners:  listeners,
			SessionKey: sessionKey,
			Timestamp:  ts,
		})
		return true
	}

	e := node.Value().(*Data)

	// the operator's own entries are not overridden by announcements
	if e.Local {
		return false
	}

	changed := false
	if !bytes.Equal(e.Listeners, listeners) {
		e.Listeners = listeners
		changed = true
	}
	if !bytes.Equal(e.SessionKey, sessionKey) {
		e.SessionKey = sessionKey
		changed = true
	}
	e.Timestamp = time.Now()

	return changed
}

// AddStatic - add or replace a local entry, these never expire
func (p *party) AddStatic(accountBytes []byte, listeners []byte, sessionKey []byte) bool {
	acc, err := account.AccountFromBytes(accountBytes)
	if nil != err {
		return false
	}
	if len(sessionKey) != sessionKeySize || 0 == len(listeners) || len(listeners) > addressLimit {
		return false
	}

	p.Lock()
	defer p.Unlock()

	p.tree.Insert(item(accountBytes), &Data{
		Account:    acc,
		Listeners:  listeners,
		SessionKey: sessionKey,
		Timestamp:  time.Now(),
		Local:      true,
	})
	return true
}

// SetSelf - record this node's own announcement data
func (p *party) SetSelf(accountBytes []byte, listeners []byte, sessionKey []byte) error {
	acc, err := account.AccountFromBytes(accountBytes)
	if nil != err {
		return err
	}
	if len(sessionKey) != sessionKeySize {
		return fault.InvalidPublicKey
	}

	p.Lock()
	defer p.Unlock()

	self := &Data{
		Account:    acc,
		Listeners:  listeners,
		SessionKey: sessionKey,
		Timestamp:  time.Now(),
		Local:      true,
	}
	p.tree.Insert(item(accountBytes), self)
	p.self = self
	p.selfSet = true
	return nil
}

// UpdateTime - refresh the last seen time after a successful session
func (p *party) UpdateTime(accountBytes []byte, timestamp time.Time) {
	p.Lock()
	defer p.Unlock()

	node, _ := p.tree.Search(item(accountBytes))
	if nil == node {
		return
	}
	node.Value().(*Data).Timestamp = timestamp
}

// Lookup - resolve a party account to its entry
func (p *party) Lookup(acc *account.Account) *Data {
	if nil == acc {
		return nil
	}

	p.RLock()
	defer p.RUnlock()

	node, _ := p.tree.Search(item(acc.Bytes()))
	if nil == node {
		return nil
	}
	return node.Value().(*Data)
}

// Fetch - paginate entries for the RPC listing
func (p *party) Fetch(start uint64, count int) ([]Entry, uint64, error) {
	if count <= 0 {
		return nil, 0, fault.InvalidCount
	}

	p.RLock()
	defer p.RUnlock()

	n := uint64(p.tree.Count())
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
		e := p.tree.Get(int(start)).Value().(*Data)
		records[i].Account = e.Account
		records[i].Connections = e.Connections()
		records[i].SessionKey = hex.EncodeToString(e.SessionKey)
		records[i].Timestamp = e.Timestamp
		start++
	}

	return records, start, nil
}

// Expire - delete entries that were not refreshed in time
func (p *party) Expire() {
	p.Lock()
	defer p.Unlock()

	expired := make([]avl.Item, 0, 4)
	for node := p.tree.First(); nil != node; node = node.Next() {
		e := node.Value().(*Data)
		if e.Local {
			continue
		}
		if helper.IsExpiredAfterDuration(e.Timestamp, parameter.ExpiryInterval) {
			expired = append(expired, node.Key())
		}
	}

	for _, key := range expired {
		p.tree.Delete(key)
	}
}

// IsInitialised - true once this node's own data was set
func (p *party) IsInitialised() bool {
	p.RLock()
	defer p.RUnlock()
	return p.selfSet
}

// Self - this node's own entry
func (p *party) Self() *Data {
	p.RLock()
	defer p.RUnlock()
	return p.self
}

// Count - number of entries
func (p *party) Count() int {
	p.RLock()
	defer p.RUnlock()
	return p.tree.Count()
}

// Tree - underlying tree for backup iteration
func (p *party) Tree() *avl.Tree {
	return p.tree
}

// New - return Party interface
func New() Party {
	return &party{
		tree: avl.New(),
	}
}
