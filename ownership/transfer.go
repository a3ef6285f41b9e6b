// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/obligationrecord"
	"github.com/bitmark-inc/obligationd/storage"
	"github.com/bitmark-inc/logger"
)

// to ensure synchronised ownership updates
var toLock sync.Mutex

// from storage/doc.go:
//
// Ownership:
//   OwnerNextCount  owner             - next count value to use for appending to owned records
//   OwnerList       owner ++ count    - current transition id ++ record id
//   OwnerTxIndex    owner ++ recordId - position in list of owned records, for delete after transfer

// CreateRecord - add both participants of a newly issued record to the indices
func CreateRecord(
	trx storage.Transaction,
	obligation *obligationrecord.Obligation,
) {
	// ensure single threaded
	toLock.Lock()
	defer toLock.Unlock()

	// the record id is the issue transition id
	for _, participant := range obligation.Participants() {
		create(trx, participant, obligation.Id, obligation.Id)
	}
}

// Settle - point both participants at the new version of the record
func Settle(
	trx storage.Transaction,
	transitionId digest.Digest,
	obligation *obligationrecord.Obligation,
) {
	// ensure single threaded
	toLock.Lock()
	defer toLock.Unlock()

	for _, participant := range obligation.Participants() {
		update(trx, participant, obligation.Id, transitionId)
	}
}

// Transfer - move the lender side of a record to a new owner
//
// the borrower entry is repointed at the new version
func Transfer(
	trx storage.Transaction,
	transitionId digest.Digest,
	previousLender *account.Account,
	obligation *obligationrecord.Obligation,
) {
	// ensure single threaded
	toLock.Lock()
	defer toLock.Unlock()

	remove(trx, previousLender, obligation.Id)
	create(trx, obligation.Lender, transitionId, obligation.Id)
	update(trx, obligation.Borrower, obligation.Id, transitionId)
}

// internal creation routine, must be called with lock held
// appends a record to the owner's list and stores its index position
func create(
	trx storage.Transaction,
	owner *account.Account,
	transitionId digest.Digest,
	recordId digest.Digest,
) {
	// increment the count for owner
	nKey := owner.Bytes()
	count, _, err := trx.GetN(storage.Pool.OwnerNextCount, nKey)
	logger.PanicIfError("ownership.create", err)
	err = trx.PutN(storage.Pool.OwnerNextCount, nKey, count+1)
	logger.PanicIfError("ownership.create", err)

	countBytes := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(countBytes, count)

	// write to the owner list
	oKey := append(owner.Bytes(), countBytes...)
	value := OwnedRecord{
		TransitionId: transitionId,
		RecordId:     recordId,
	}
	err = trx.Put(storage.Pool.OwnerList, oKey, value.Pack())
	logger.PanicIfError("ownership.create", err)

	// write new index record
	dKey := append(owner.Bytes(), recordId[:]...)
	err = trx.PutN(storage.Pool.OwnerTxIndex, dKey, count)
	logger.PanicIfError("ownership.create", err)
}

// internal removal routine, must be called with lock held
func remove(
	trx storage.Transaction,
	owner *account.Account,
	recordId digest.Digest,
) {
	// get count for current owner record
	dKey := append(owner.Bytes(), recordId[:]...)
	count, found, err := trx.GetN(storage.Pool.OwnerTxIndex, dKey)
	logger.PanicIfError("ownership.remove", err)
	if !found {
		logger.Criticalf("ownership.remove: dKey: %x", dKey)
		logger.Criticalf("ownership.remove: record id: %#v", recordId)
		logger.Criticalf("ownership.remove: owner: %x  %v", owner.Bytes(), owner)
		logger.Panic("ownership.remove: OwnerTxIndex database corrupt")
	}

	countBytes := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(countBytes, count)

	// delete the current owner records
	oKey := append(owner.Bytes(), countBytes...)
	err = trx.Delete(storage.Pool.OwnerList, oKey)
	logger.PanicIfError("ownership.remove", err)
	err = trx.Delete(storage.Pool.OwnerTxIndex, dKey)
	logger.PanicIfError("ownership.remove", err)
}

// internal update routine, must be called with lock held
// rewrites the owner's list entry to the new version
func update(
	trx storage.Transaction,
	owner *account.Account,
	recordId digest.Digest,
	transitionId digest.Digest,
) {
	dKey := append(owner.Bytes(), recordId[:]...)
	count, found, err := trx.GetN(storage.Pool.OwnerTxIndex, dKey)
	logger.PanicIfError("ownership.update", err)
	if !found {
		logger.Criticalf("ownership.update: dKey: %x", dKey)
		logger.Criticalf("ownership.update: record id: %#v", recordId)
		logger.Criticalf("ownership.update: owner: %x  %v", owner.Bytes(), owner)
		logger.Panic("ownership.update: OwnerTxIndex database corrupt")
	}

	countBytes := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(countBytes, count)

	oKey := append(owner.Bytes(), countBytes...)
	value := OwnedRecord{
		TransitionId: transitionId,
		RecordId:     recordId,
	}
	err = trx.Put(storage.Pool.OwnerList, oKey, value.Pack())
	logger.PanicIfError("ownership.update", err)
}

// CurrentlyOwns - check an account currently holds a side of a record
//
// reads through the write cache so uncommitted transaction data is seen
func CurrentlyOwns(owner *account.Account, recordId digest.Digest) bool {
	dKey := append(owner.Bytes(), recordId[:]...)
	return storage.Pool.OwnerTxIndex.Has(dKey)
}
