// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package responder

import (
	"bytes"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/messagebus"
	"github.com/bitmark-inc/obligationd/mode"
	"github.com/bitmark-inc/obligationd/notary"
	"github.com/bitmark-inc/obligationd/obligationrecord"
	"github.com/bitmark-inc/obligationd/reservoir"
)

// decide on incoming proposals
//
// only ever called from the listener poller goroutine
type handler struct {
	log        *logger.L
	account    *account.Account
	privateKey []byte
	notary     *account.Account
	testnet    bool
}

func newHandler(log *logger.L, identity *account.PrivateKey, notaryAccount *account.Account) *handler {
	return &handler{
		log:        log,
		account:    identity.Account(),
		privateKey: identity.PrivateKeyBytes(),
		notary:     notaryAccount,
		testnet:    mode.IsTesting(),
	}
}

// validate a proposed transition and endorse it if this node agrees
//
// the rules run locally over the received data; the proposer's own
// verdict is never trusted
func (h *handler) propose(packedBase obligationrecord.Packed, proposerBytes []byte, proposerSig []byte) ([]byte, error) {

	transition, n, err := packedBase.UnpackBase(h.testnet)
	if nil != err {
		return nil, err
	}
	if n != len(packedBase) {
		return nil, fault.NotObligationPack
	}

	// rules, current head and version locks, identical to the
	// proposer's own pre-flight check
	info, duplicate, err := reservoir.StoreTransition(transition)
	if nil != err {
		return nil, err
	}

	// release only a lock this proposal created
	fail := func(err error) ([]byte, error) {
		if !duplicate {
			reservoir.Abandon(info.Id)
		}
		return nil, err
	}

	selfIndex := -1
	proposerIndex := -1
	for i, signer := range info.Signers {
		b := signer.Bytes()
		if bytes.Equal(b, h.account.Bytes()) {
			selfIndex = i
		}
		if bytes.Equal(b, proposerBytes) {
			proposerIndex = i
		}
	}

	// unrelated proposals are refused
	if selfIndex < 0 {
		return fail(fault.SignerNotParticipant)
	}
	if proposerIndex < 0 || proposerIndex == selfIndex {
		return fail(fault.InvalidParticipant)
	}

	// the proposer endorses what it asks others to endorse
	err = info.Signers[proposerIndex].CheckSignature(info.Packed, account.Signature(proposerSig))
	if nil != err {
		return fail(fault.EndorsementNotVerified)
	}

	signature := ed25519.Sign(h.privateKey, info.Packed)

	// a proposing party is live, refresh its directory entry
	messagebus.Bus.Directory.Send("updatetime", proposerBytes)

	h.log.Infof("accepted proposal: %v", info.Id)
	return signature, nil
}

// drop a pending proposal and release its version locks
//
// abandonment has no ledger effect so the notice is honoured from any
// authenticated session; the worst an impostor achieves is what lock
// expiry would do anyway
func (h *handler) abandon(txIdBytes []byte) error {

	var txId digest.Digest
	err := digest.FromBytes(&txId, txIdBytes)
	if nil != err {
		return err
	}

	reservoir.Abandon(txId)
	h.log.Infof("abandoned proposal: %v", txId)
	return nil
}

// apply a finalised transition after checking the notary really
// decided it
func (h *handler) confirm(txIdBytes []byte, packed obligationrecord.Packed, confirmation []byte) error {

	var txId digest.Digest
	err := digest.FromBytes(&txId, txIdBytes)
	if nil != err {
		return err
	}

	// only the notary's signature makes a transition final
	err = notary.VerifyConfirmation(h.notary, txId, confirmation)
	if nil != err {
		return err
	}

	transition, n, err := packed.Unpack(h.testnet)
	if nil != err {
		return err
	}
	if n != len(packed) {
		return fault.NotObligationPack
	}

	// the endorsements are re-verified over the held base while the
	// ledger update commits
	err = reservoir.Confirm(txId, transition.GetEndorsements(), confirmation)
	if nil != err {
		return err
	}

	h.log.Infof("confirmed transition: %v", txId)
	return nil
}
