// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io/ioutil"
	"strings"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/mode"
	"github.com/bitmark-inc/obligationd/notary"
	"github.com/bitmark-inc/obligationd/obligationrecord"
	"github.com/bitmark-inc/obligationd/storage"
)

// notariser - the decision state for one notary
//
// process is only ever called from the listener poller goroutine, so
// the read-check-write sequence over the notary pools needs no lock
type notariser struct {
	log        *logger.L
	account    *account.Account
	privateKey []byte
	testnet    bool
}

// read the confirmation account seed file written by generate-identity
func readSigningKey(fileName string) (*account.PrivateKey, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	s := strings.TrimSpace(string(data))
	if !strings.HasPrefix(s, "SEED:") {
		return nil, fault.InvalidSeedHeader
	}
	return account.PrivateKeyFromBase58Seed(s[5:])
}

func newNotariser(log *logger.L, signingKey *account.PrivateKey) *notariser {
	return &notariser{
		log:        log,
		account:    signingKey.Account(),
		privateKey: signingKey.PrivateKeyBytes(),
		testnet:    mode.IsTesting(),
	}
}

// process - decide one submission
//
// the outcome is final once this returns: a committed transition is
// recorded with its confirmation before the reply leaves, so a lost
// reply is answered identically on resubmission
func (n *notariser) process(packed obligationrecord.Packed, signers [][]byte) *notary.SubmitReply {

	log := n.log

	transition, _, err := packed.Unpack(n.testnet)
	if nil != err {
		return errorReply(nil, err)
	}

	base, err := transition.PackBase()
	if nil != err {
		return errorReply(nil, err)
	}
	txId := base.MakeId()

	// a recorded transition commits again to the original confirmation
	confirmation := storage.Pool.NotaryIssued.Get(txId[:])
	if nil != confirmation {
		log.Infof("duplicate: %v", txId)
		return &notary.SubmitReply{
			Outcome:      notary.Outcome_COMMITTED,
			TxId:         txId[:],
			Confirmation: confirmation,
		}
	}

	// resolve the consumed record version, if any
	var input *obligationrecord.Obligation
	var link digest.Digest
	linked := false
	if lt, ok := transition.(obligationrecord.LinkedTransition); ok {
		linked = true
		link = lt.GetLink()

		// first seen wins: a consumed version stays consumed
		consumedBy := storage.Pool.NotaryConsumed.Get(link[:])
		if nil != consumedBy {
			log.Warnf("conflict: %v  link: %v  consumed by: %x", txId, link, consumedBy)
			return &notary.SubmitReply{
				Outcome:    notary.Outcome_CONFLICT,
				TxId:       txId[:],
				ConflictId: consumedBy,
			}
		}

		state := storage.Pool.NotaryStates.Get(link[:])
		if nil == state {
			return errorReply(txId[:], fault.TransitionNotFound)
		}
		input, err = obligationrecord.PackedObligation(state).Unpack(n.testnet)
		if nil != err {
			return errorReply(txId[:], err)
		}
	}

	// the produced state; this also applies the transition rules
	produced, err := obligationrecord.Validate(transition, input)
	if nil != err {
		return errorReply(txId[:], err)
	}

	// never trust the submitter: check every endorsement again
	err = obligationrecord.CheckEndorsements(transition, input)
	if nil != err {
		return errorReply(txId[:], err)
	}

	// the submitted signer list must be exactly the required one
	required, err := obligationrecord.RequiredSigners(transition, input)
	if nil != err {
		return errorReply(txId[:], err)
	}
	if len(required) != len(signers) {
		return errorReply(txId[:], fault.SignersMismatch)
	}
	for i, signer := range required {
		if !bytes.Equal(signer.Bytes(), signers[i]) {
			return errorReply(txId[:], fault.SignersMismatch)
		}
	}

	confirmation = ed25519.Sign(n.privateKey, txId[:])

	// one transaction records the commit, the consumed link and the
	// produced state, so a crash leaves either all or none
	trx, err := storage.NewDBTransaction()
	if nil != err {
		return errorReply(txId[:], err)
	}
	err = trx.Put(storage.Pool.NotaryIssued, txId[:], confirmation)
	if nil == err {
		err = trx.Put(storage.Pool.NotaryStates, txId[:], produced.Pack())
	}
	if nil == err && linked {
		err = trx.Put(storage.Pool.NotaryConsumed, link[:], txId[:])
	}
	if nil != err {
		trx.Abort()
		return errorReply(txId[:], err)
	}
	err = trx.Commit()
	if nil != err {
		return errorReply(txId[:], err)
	}

	log.Infof("committed: %v", txId)
	return &notary.SubmitReply{
		Outcome:      notary.Outcome_COMMITTED,
		TxId:         txId[:],
		Confirmation: confirmation,
	}
}

// an error outcome; the transition id is included when it is known
func errorReply(txId []byte, err error) *notary.SubmitReply {
	return &notary.SubmitReply{
		Outcome: notary.Outcome_ERROR,
		TxId:    txId,
		Error:   err.Error(),
	}
}
