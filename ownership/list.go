// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"bytes"
	"encoding/binary"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/storage"
	"github.com/bitmark-inc/logger"
)

// Record - one entry of a participant's record list
type Record struct {
	N            uint64        `json:"n,string"`
	TransitionId digest.Digest `json:"transitionId"`
	RecordId     digest.Digest `json:"recordId"`
}

func listRecordsFor(pool *storage.PoolHandle, owner *account.Account, start uint64, count int) ([]Record, error) {

	startBytes := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(startBytes, start)

	ownerBytes := owner.Bytes()
	prefix := append(ownerBytes, startBytes...)

	cursor := pool.NewFetchCursor().Seek(prefix)

	// owner ++ count → transition id ++ record id
	items, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	records := make([]Record, 0, len(items))

loop:
	for _, item := range items {
		n := len(item.Key)
		split := n - uint64ByteSize
		if split <= 0 {
			logger.Panicf("split cannot be <= 0: %d", split)
		}
		itemOwner := item.Key[:split]
		if !bytes.Equal(ownerBytes, itemOwner) {
			break loop
		}

		value, err := UnpackOwnedRecord(item.Value)
		if nil != err {
			return nil, err
		}

		records = append(records, Record{
			N:            binary.BigEndian.Uint64(item.Key[split:]),
			TransitionId: value.TransitionId,
			RecordId:     value.RecordId,
		})
	}

	return records, nil
}
