// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/obligationrecord"
	"github.com/bitmark-inc/obligationd/ownership"
	"github.com/bitmark-inc/obligationd/storage"
)

// Confirm - apply a finalised transition to the ledger
//
// the endorsement list is in canonical signer order and is checked
// against the pending entry's base form while packing, so a forged or
// mismatched endorsement can never reach the store; the caller has
// already checked the confirmation against the notary key
//
// the transition, its confirmation, the produced state, the head
// pointer and the ownership indices commit in one database
// transaction, then the pending entry and its locks are released
//
// a transition that is already stored confirms to nil so a repeated
// confirmation is harmless
func Confirm(txId digest.Digest, endorsements []account.Signature, confirmation []byte) error {

	globalData.Lock()
	defer globalData.Unlock()

	entry, ok := globalData.pendingTransitions[txId]
	if !ok {
		if storage.Pool.Transitions.Has(txId[:]) {
			return nil
		}
		return fault.TransitionNotFound
	}

	if 0 == len(confirmation) {
		return fault.NoConfirmation
	}

	switch tr := entry.transition.(type) {
	case *obligationrecord.ObligationIssue:
		tr.Endorsements = endorsements
	case *obligationrecord.ObligationSettle:
		tr.Endorsements = endorsements
	case *obligationrecord.ObligationTransfer:
		tr.Endorsements = endorsements
	default:
		return fault.IntentNotRecognised
	}

	// the stored form carries every endorsement
	packed, err := entry.transition.Pack(entry.signers)
	if nil != err {
		return err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	err = trx.Put(storage.Pool.Transitions, txId[:], packed)
	logger.PanicIfError("reservoir.Confirm", err)
	err = trx.Put(storage.Pool.Confirmations, txId[:], confirmation)
	logger.PanicIfError("reservoir.Confirm", err)
	err = trx.Put(storage.Pool.States, txId[:], entry.obligation.Pack())
	logger.PanicIfError("reservoir.Confirm", err)
	err = trx.Put(storage.Pool.Heads, entry.obligation.Id[:], txId[:])
	logger.PanicIfError("reservoir.Confirm", err)

	switch entry.transition.(type) {
	case *obligationrecord.ObligationIssue:
		ownership.CreateRecord(trx, entry.obligation)

	case *obligationrecord.ObligationSettle:
		ownership.Settle(trx, txId, entry.obligation)

	case *obligationrecord.ObligationTransfer:
		ownership.Transfer(trx, txId, entry.previousLender, entry.obligation)
	}

	err = trx.Commit()
	if nil != err {
		trx.Abort()
		return err
	}

	internalDelete(txId)

	globalData.log.Infof("confirmed transition: %v", txId)
	return nil
}
