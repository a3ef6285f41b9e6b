// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package party

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/util"
)

// one record of the local parties file
//
// example file:
//   [
//     {
//       "account": "e5b4iExU3…",
//       "sessionKey": "55d0ba17…",
//       "listeners": ["127.0.0.1:2136", "[::1]:2136"]
//     }
//   ]
type fileEntry struct {
	Account    string   `json:"account"`
	SessionKey string   `json:"sessionKey"`
	Listeners  []string `json:"listeners"`
}

// LoadFile - merge static entries from the local parties file
//
// entries loaded this way never expire and always override any
// announced data for the same account, a missing file is not an
// error so a node can run from DNS records alone
func LoadFile(fileName string, p Party) (int, error) {

	data, err := ioutil.ReadFile(fileName)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if nil != err {
		return 0, err
	}

	entries := []fileEntry{}
	err = json.Unmarshal(data, &entries)
	if nil != err {
		return 0, fmt.Errorf("parties file: %q error: %s", fileName, err)
	}

	n := 0
	for i, entry := range entries {

		acc, err := account.AccountFromBase58(entry.Account)
		if nil != err {
			return n, fmt.Errorf("parties file entry: %d account: %q error: %s", i, entry.Account, err)
		}

		sessionKey, err := hex.DecodeString(entry.SessionKey)
		if nil != err || sessionKeySize != len(sessionKey) {
			return n, fmt.Errorf("parties file entry: %d invalid session key: %q", i, entry.SessionKey)
		}

		conns, err := util.NewConnections(entry.Listeners)
		if nil != err {
			return n, fmt.Errorf("parties file entry: %d listeners: %v error: %s", i, entry.Listeners, err)
		}

		listeners := []byte{}
		for _, conn := range conns {
			listeners = append(listeners, conn.Pack()...)
		}

		if p.AddStatic(acc.Bytes(), listeners, sessionKey) {
			n += 1
		}
	}

	return n, nil
}
