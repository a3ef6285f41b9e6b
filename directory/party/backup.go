// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package party

import (
	"io/ioutil"
	"os"

	proto "github.com/golang/protobuf/proto"

	"github.com/bitmark-inc/obligationd/avl"
)

func newPartyItem(entry *Data) *PartyItem {
	if nil == entry {
		return nil
	}
	return &PartyItem{
		Account:    entry.Account.Bytes(),
		Listeners:  entry.Listeners,
		SessionKey: entry.SessionKey,
		Timestamp:  uint64(entry.Timestamp.Unix()),
	}
}

// Backup - save all entries to the cache file
func Backup(fileName string, tree *avl.Tree) error {
	if 0 == tree.Count() {
		return nil
	}

	var parties PartyList
	lastNode := tree.Last()
	node := tree.First()

	for node != lastNode {
		entry, ok := node.Value().(*Data)
		if ok {
			parties.Parties = append(parties.Parties, newPartyItem(entry))
		}
		node = node.Next()
	}
	// backup the last node
	entry, ok := lastNode.Value().(*Data)
	if ok {
		parties.Parties = append(parties.Parties, newPartyItem(entry))
	}

	out, err := proto.Marshal(&parties)
	if nil != err {
		return err
	}
	return ioutil.WriteFile(fileName, out, 0600)
}

// Restore - load entries from the cache file
//
// restored entries are expiring ones, the parties file re-adds local
// entries on its own
func Restore(fileName string, p Party) error {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		// no cache file yet is normal on a first start
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var parties PartyList
	err = proto.Unmarshal(data, &parties)
	if nil != err {
		return err
	}

	for _, entry := range parties.Parties {
		_ = p.Add(entry.Account, entry.Listeners, entry.SessionKey, entry.Timestamp)
	}
	return nil
}
