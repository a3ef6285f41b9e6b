// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notary

import (
	"bytes"
	"fmt"

	proto "github.com/golang/protobuf/proto"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/obligationrecord"
)

// Result - the notary's decision on one submission
//
// Confirmation is only present on success; ConflictId is only present
// when the error is fault.TransitionConflict and names the transition
// that consumed the input record version first
type Result struct {
	TxId         digest.Digest
	ConflictId   digest.Digest
	Confirmation []byte
}

// Submit - send a fully endorsed transition for notarisation
//
// blocks until the notary decides or the bounded retries are
// exhausted; a transition the notary has already recorded commits
// again to the same confirmation, so resubmission after a lost reply
// is safe
//
// after this call returns the outcome is fixed: there is no way to
// withdraw a submission
func Submit(txId digest.Digest, packed obligationrecord.Packed, signers []*account.Account) (*Result, error) {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	log := globalData.log

	signerBytes := make([][]byte, len(signers))
	for i, signer := range signers {
		if nil == signer {
			return nil, fault.InvalidParticipant
		}
		signerBytes[i] = signer.Bytes()
	}

	request, err := proto.Marshal(&SubmitRequest{
		Packed:  packed,
		Signers: signerBytes,
	})
	if nil != err {
		return nil, err
	}

	client := globalData.client

	var data [][]byte
	received := false

submit_retry:
	for attempt := 0; attempt <= globalData.retries; attempt += 1 {

		// a REQ socket that timed out must be reopened before reuse
		if 0 != attempt {
			log.Warnf("submit: %v  retry: %d", txId, attempt)
			err := client.Reconnect()
			if nil != err {
				return nil, err
			}
		}

		err := client.Send("S", request)
		if nil != err {
			log.Errorf("submit: %v  send error: %s", txId, err)
			continue submit_retry
		}

		data, err = client.Receive(0)
		if nil != err {
			log.Errorf("submit: %v  receive error: %s", txId, err)
			continue submit_retry
		}
		received = true
		break submit_retry
	}
	if !received {
		return nil, fault.NotaryTimeout
	}

	if 2 != len(data) {
		return nil, fault.InvalidNotaryReply
	}

	switch string(data[0]) {
	case "S":
	case "E":
		return nil, fmt.Errorf("notary error: %q", data[1])
	default:
		return nil, fault.InvalidNotaryReply
	}

	reply := &SubmitReply{}
	err = proto.Unmarshal(data[1], reply)
	if nil != err {
		return nil, err
	}

	switch reply.Outcome {

	case Outcome_COMMITTED:
		// the reply must refer to this submission
		if !bytes.Equal(reply.TxId, txId[:]) {
			return nil, fault.InvalidNotaryReply
		}
		// never trust the transport: check the signature locally
		err := VerifyConfirmation(globalData.account, txId, reply.Confirmation)
		if nil != err {
			return nil, err
		}
		log.Infof("committed: %v", txId)
		return &Result{
			TxId:         txId,
			Confirmation: reply.Confirmation,
		}, nil

	case Outcome_CONFLICT:
		if !bytes.Equal(reply.TxId, txId[:]) {
			return nil, fault.InvalidNotaryReply
		}
		var conflictId digest.Digest
		err := digest.FromBytes(&conflictId, reply.ConflictId)
		if nil != err {
			return nil, fault.InvalidNotaryReply
		}
		log.Warnf("conflict: %v  already consumed by: %v", txId, conflictId)
		return &Result{
			TxId:       txId,
			ConflictId: conflictId,
		}, fault.TransitionConflict

	case Outcome_ERROR:
		log.Warnf("refused: %v  error: %q", txId, reply.Error)
		return nil, fmt.Errorf("notary refused: %s", reply.Error)

	default:
		return nil, fault.InvalidNotaryReply
	}
}
