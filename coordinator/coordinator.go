// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coordinator

import (
	"bytes"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/currency"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/messagebus"
	"github.com/bitmark-inc/obligationd/notary"
	"github.com/bitmark-inc/obligationd/obligationrecord"
	"github.com/bitmark-inc/obligationd/reservoir"
	"github.com/bitmark-inc/obligationd/storage"
)

// Outcome - the result of a committed transition
type Outcome struct {
	TxId         digest.Digest
	Confirmation []byte
	Obligation   *obligationrecord.Obligation
}

// Issue - create a new obligation record
//
// the caller is one of the participants; the other party must endorse
// before the notary will commit
func Issue(c currency.Currency, amount uint64, lender *account.Account, borrower *account.Account, nonce uint64) (*Outcome, error) {

	issue := &obligationrecord.ObligationIssue{
		Currency: c,
		Amount:   amount,
		Lender:   lender,
		Borrower: borrower,
		Nonce:    nonce,
	}
	return run(issue)
}

// Settle - record a payment against an obligation
//
// recordId names the obligation; the settlement consumes whatever its
// current version is, so a stale caller view of paid is evaluated
// against the version actually stored
func Settle(recordId digest.Digest, payment uint64) (*Outcome, error) {

	link, err := currentVersion(recordId)
	if nil != err {
		return nil, err
	}

	settle := &obligationrecord.ObligationSettle{
		Link:    link,
		Payment: payment,
	}
	return run(settle)
}

// Transfer - reassign the lender of an obligation
func Transfer(recordId digest.Digest, newLender *account.Account) (*Outcome, error) {

	link, err := currentVersion(recordId)
	if nil != err {
		return nil, err
	}

	transfer := &obligationrecord.ObligationTransfer{
		Link:      link,
		NewLender: newLender,
	}
	return run(transfer)
}

// resolve a record id to its current version
func currentVersion(recordId digest.Digest) (digest.Digest, error) {

	head := storage.Pool.Heads.Get(recordId[:])
	if nil == head {
		return digest.Digest{}, fault.ObligationNotFound
	}

	var link digest.Digest
	err := digest.FromBytes(&link, head)
	if nil != err {
		return digest.Digest{}, err
	}
	return link, nil
}

// drive one transition attempt to a terminal state
//
// the attempt runs entirely in the calling goroutine; concurrent
// attempts only meet in the reservoir's lock set
func run(transition obligationrecord.Transition) (*Outcome, error) {

	globalData.RLock()
	initialised := globalData.initialised
	identity := globalData.identity
	log := globalData.log
	globalData.RUnlock()

	if !initialised {
		return nil, fault.NotInitialised
	}

	// local validation: the rules, the current head and the version
	// locks are all checked before anything is sent
	info, duplicate, err := reservoir.StoreTransition(transition)
	if nil != err {
		return nil, err
	}
	txId := info.Id

	if duplicate {
		log.Warnf("transition already pending: %v", txId)
	}
	log.Infof("proposing transition: %v", txId)

	self := identity.Account()

	// this node must occupy one of the required signer slots
	selfIndex := -1
	for i, signer := range info.Signers {
		if bytes.Equal(self.Bytes(), signer.Bytes()) {
			selfIndex = i
			break
		}
	}
	if selfIndex < 0 {
		reservoir.Abandon(txId)
		return nil, fault.SignerNotParticipant
	}

	endorsements := make([]account.Signature, len(info.Signers))
	endorsements[selfIndex] = account.Signature(ed25519.Sign(identity.PrivateKeyBytes(), info.Packed))

	// one session per counterparty, all open before anything is sent
	sessions := make([]*session, len(info.Signers))
	defer closeSessions(sessions)

	for i, signer := range info.Signers {
		if i == selfIndex {
			continue
		}
		s, err := openSession(log, signer)
		if nil != err {
			log.Errorf("session to: %s  error: %s", signer, err)
			reservoir.Abandon(txId)
			return nil, err
		}
		sessions[i] = s
	}

	// collect endorsements concurrently, joining over every session
	type answer struct {
		index     int
		signature account.Signature
		err       error
	}

	answers := make(chan answer)
	outstanding := 0
	for i, s := range sessions {
		if nil == s {
			continue
		}
		outstanding += 1
		go func(i int, s *session) {
			signature, err := s.propose(info.Packed, self, endorsements[selfIndex])
			answers <- answer{index: i, signature: signature, err: err}
		}(i, s)
	}

	accepted := make([]int, 0, outstanding)
	var refusal error
	for ; outstanding > 0; outstanding -= 1 {
		a := <-answers
		if nil != a.err {
			log.Warnf("%s: proposal: %s", info.Signers[a.index], a.err)

			// an explicit refusal outranks a timeout in the report
			if nil == refusal || (fault.IsErrRejected(a.err) && !fault.IsErrRejected(refusal)) {
				refusal = a.err
			}
			continue
		}
		endorsements[a.index] = a.signature
		accepted = append(accepted, a.index)

		// a responsive party must not be expired from the directory
		messagebus.Bus.Directory.Send("updatetime", info.Signers[a.index].Bytes())
	}

	if nil != refusal {
		// parties that signed must release their version locks
		for _, i := range accepted {
			sessions[i].abandon(txId)
		}
		reservoir.Abandon(txId)
		return nil, refusal
	}

	// every slot now carries a verified endorsement
	packed, err := packEndorsed(transition, info.Signers, endorsements)
	if nil != err {
		abandonAll(sessions, txId)
		reservoir.Abandon(txId)
		return nil, err
	}

	log.Infof("submitting transition: %v", txId)

	result, err := notary.Submit(txId, packed, info.Signers)
	if nil != err {
		if fault.IsErrTimeout(err) {
			// the notary may have decided without answering: hold the
			// locks so a repeated attempt resubmits this transition and
			// collects the original confirmation
			log.Errorf("submit: %v  error: %s", txId, err)
			return nil, err
		}
		log.Warnf("submit: %v  refused: %s", txId, err)
		abandonAll(sessions, txId)
		reservoir.Abandon(txId)
		return nil, err
	}

	// committed: ledger, head and ownership update in one transaction
	err = reservoir.Confirm(txId, endorsements, result.Confirmation)
	if nil != err {
		log.Criticalf("confirm: %v  error: %s", txId, err)
		return nil, err
	}

	// hand the finalised form to every counterparty
	for _, s := range sessions {
		if nil == s {
			continue
		}
		err := s.confirm(txId, packed, result.Confirmation)
		if nil != err {
			log.Warnf("%s: confirm notice: %s", s.party, err)
		}
	}

	log.Infof("committed transition: %v", txId)

	return &Outcome{
		TxId:         txId,
		Confirmation: result.Confirmation,
		Obligation:   info.Obligation,
	}, nil
}

// place the collected endorsements on the record and pack the form
// the notary and the ledger record
func packEndorsed(transition obligationrecord.Transition, signers []*account.Account, endorsements []account.Signature) (obligationrecord.Packed, error) {

	switch tr := transition.(type) {
	case *obligationrecord.ObligationIssue:
		tr.Endorsements = endorsements
	case *obligationrecord.ObligationSettle:
		tr.Endorsements = endorsements
	case *obligationrecord.ObligationTransfer:
		tr.Endorsements = endorsements
	default:
		return nil, fault.IntentNotRecognised
	}
	return transition.Pack(signers)
}

func closeSessions(sessions []*session) {
	for _, s := range sessions {
		if nil != s {
			s.close()
		}
	}
}

func abandonAll(sessions []*session, txId digest.Digest) {
	for _, s := range sessions {
		if nil != s {
			s.abandon(txId)
		}
	}
}
