// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/fault"
)

const uint64ByteSize = 8

// OwnedRecord - the value of an owner list entry
//
// the transition id tracks the current version so a listing does not
// need a second lookup, the record id is the stable identifier
type OwnedRecord struct {
	TransitionId digest.Digest `json:"transitionId"`
	RecordId     digest.Digest `json:"recordId"`
}

// Pack - byte form: transition id ++ record id
func (record OwnedRecord) Pack() []byte {
	buffer := make([]byte, 0, 2*digest.Length)
	buffer = append(buffer, record.TransitionId[:]...)
	buffer = append(buffer, record.RecordId[:]...)
	return buffer
}

// UnpackOwnedRecord - decode an owner list value
func UnpackOwnedRecord(buffer []byte) (*OwnedRecord, error) {
	if 2*digest.Length != len(buffer) {
		return nil, fault.NotOwnedItemPack
	}

	record := &OwnedRecord{}

	err := digest.FromBytes(&record.TransitionId, buffer[:digest.Length])
	if nil != err {
		return nil, err
	}
	err = digest.FromBytes(&record.RecordId, buffer[digest.Length:])
	if nil != err {
		return nil, err
	}
	return record, nil
}
