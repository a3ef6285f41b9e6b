// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"bytes"
	"time"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/mode"
	"github.com/bitmark-inc/obligationd/obligationrecord"
	"github.com/bitmark-inc/obligationd/storage"
)

// TransitionInfo - result returned by store transition
type TransitionInfo struct {
	Id         digest.Digest
	Packed     obligationrecord.Packed      // base form, unendorsed
	Obligation *obligationrecord.Obligation // the version this transition produces
	Signers    []*account.Account           // canonical endorsement order
}

// StoreTransition - verify a transition against the local store and
// hold it as pending
//
// any consumed record version is locked; the lock is released by
// Confirm, Abandon or expiry
//
// the duplicate flag is true when exactly this transition is already
// pending, so a repeated submission is not treated as an error
func StoreTransition(transition obligationrecord.Transition) (*TransitionInfo, bool, error) {

	// critical code - the lock set must be checked and updated together
	globalData.Lock()
	defer globalData.Unlock()

	verifyResult, err := verifyTransition(transition)
	if nil != err {
		return nil, false, err
	}

	txId := verifyResult.txId

	result := &TransitionInfo{
		Id:         txId,
		Packed:     verifyResult.packedBase,
		Obligation: verifyResult.obligation,
		Signers:    verifyResult.signers,
	}

	// if already seen just return the same info
	if _, ok := globalData.pendingTransitions[txId]; ok {
		globalData.log.Debugf("duplicate transition: %v", txId)
		return result, true, nil
	}

	expiresAt := time.Now().Add(globalData.lifetime)

	entry := &transitionData{
		txId:           txId,
		transition:     transition,
		packedBase:     verifyResult.packedBase,
		obligation:     verifyResult.obligation,
		signers:        verifyResult.signers,
		previousLender: verifyResult.previousLender,
		links:          verifyResult.links,
		expiresAt:      expiresAt,
	}

	globalData.pendingTransitions[txId] = entry
	for _, link := range verifyResult.links {
		globalData.inProgressLinks[link] = txId
	}

	return result, false, nil
}

// returned data from verifyTransition
type verifiedInfo struct {
	txId           digest.Digest
	packedBase     obligationrecord.Packed
	obligation     *obligationrecord.Obligation
	signers        []*account.Account
	previousLender *account.Account
	links          []digest.Digest
}

// verify that a transition is ok
// ensure lock is held before calling
func verifyTransition(transition obligationrecord.Transition) (*verifiedInfo, error) {

	packedBase, err := transition.PackBase()
	if nil != err {
		return nil, err
	}
	txId := packedBase.MakeId()

	// already notarised and stored
	if storage.Pool.Transitions.Has(txId[:]) {
		return nil, fault.TransitionAlreadyExists
	}

	var input *obligationrecord.Obligation
	var previousLender *account.Account
	var links []digest.Digest

	if linked, ok := transition.(obligationrecord.LinkedTransition); ok {
		link := linked.GetLink()

		input, err = fetchCurrentVersion(link)
		if nil != err {
			return nil, err
		}
		previousLender = input.Lender

		// a version referenced by another in-flight attempt is locked
		if holder, ok := globalData.inProgressLinks[link]; ok && holder != txId {
			return nil, fault.RecordLocked
		}

		links = []digest.Digest{link}
	}

	// the pure rules produce the next version or the violated rule
	obligation, err := obligationrecord.Validate(transition, input)
	if nil != err {
		return nil, err
	}

	signers, err := obligationrecord.RequiredSigners(transition, input)
	if nil != err {
		return nil, err
	}

	result := &verifiedInfo{
		txId:           txId,
		packedBase:     packedBase,
		obligation:     obligation,
		signers:        signers,
		previousLender: previousLender,
		links:          links,
	}
	return result, nil
}

// resolve a link to the stored obligation version it names
//
// the version must exist and must still be the current head of its
// record
func fetchCurrentVersion(link digest.Digest) (*obligationrecord.Obligation, error) {

	packedState := storage.Pool.States.Get(link[:])
	if nil == packedState {
		return nil, fault.TransitionNotFound
	}

	obligation, err := obligationrecord.PackedObligation(packedState).Unpack(mode.IsTesting())
	if nil != err {
		return nil, err
	}

	current := storage.Pool.Heads.Get(obligation.Id[:])
	if nil == current || !bytes.Equal(current, link[:]) {
		return nil, fault.LinkNotCurrentVersion
	}

	return obligation, nil
}
