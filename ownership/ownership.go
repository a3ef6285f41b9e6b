// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/storage"
)

// Ownership - interface for ownership enquiries
type Ownership interface {
	ListRecordsFor(owner *account.Account, start uint64, count int) ([]Record, error)
}

type ownership struct {
	pool *storage.PoolHandle
}

var data ownership

// Initialise - initialise ownership enquiry system
func Initialise(ownerList *storage.PoolHandle) {
	data.pool = ownerList
}

// Get - return the ownership enquiry access
func Get() Ownership {
	return &data
}

// ListRecordsFor - list records owned by an account starting at a
// specific count value
func (o *ownership) ListRecordsFor(owner *account.Account, start uint64, count int) ([]Record, error) {
	return listRecordsFor(o.pool, owner, start, count)
}
