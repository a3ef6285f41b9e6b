// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package party

import (
	"bytes"
	"fmt"
	"time"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/util"
)

// Data - a single directory entry
type Data struct {
	Account    *account.Account
	Listeners  []byte    // packed connections
	SessionKey []byte    // 32 byte CURVE public key
	Timestamp  time.Time // last seen time
	Local      bool      // true => never expires
}

// Connections - unpack the listeners into connection records
func (d *Data) Connections() []*util.Connection {
	conn := make([]*util.Connection, 0, 2)
	listeners := d.Listeners
loop:
	for {
		c, n := util.PackedConnection(listeners).Unpack()
		if 0 == n {
			break loop
		}
		conn = append(conn, c)
		listeners = listeners[n:]
	}
	return conn
}

// Entry - fetch result for the RPC listing
type Entry struct {
	Account     *account.Account   `json:"account"`
	Connections []*util.Connection `json:"connections"`
	SessionKey  string             `json:"sessionKey"`
	Timestamp   time.Time          `json:"timestamp"`
}

// tree key: packed account bytes
type item []byte

// Compare - account ordering for AVL interface
func (i item) Compare(q interface{}) int {
	return bytes.Compare(i, q.(item))
}

// String - hex convert for AVL interface
func (i item) String() string {
	return fmt.Sprintf("%x", []byte(i))
}
