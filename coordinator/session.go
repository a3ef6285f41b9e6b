// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coordinator

import (
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/directory"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/mode"
	"github.com/bitmark-inc/obligationd/obligationrecord"
	"github.com/bitmark-inc/obligationd/zmqutil"
)

// a connection to one counterparty responder
//
// a session is only ever driven by the goroutine that opened it, first
// for the proposal and later for the abandon or confirm notice, so no
// locking is needed
type session struct {
	log    *logger.L
	party  *account.Account
	client *zmqutil.Client
}

// resolve a counterparty through the directory and connect
func openSession(log *logger.L, party *account.Account) (*session, error) {

	data, err := directory.Lookup(party)
	if nil != err {
		return nil, err
	}

	connections := data.Connections()
	if 0 == len(connections) {
		return nil, fault.PartyNotFound
	}

	client, err := zmqutil.NewClient(zmq.REQ, globalData.privateKey, globalData.publicKey, globalData.timeout)
	if nil != err {
		return nil, err
	}

	err = client.Connect(connections[0], data.SessionKey, mode.NetworkName())
	if nil != err {
		client.Close()
		return nil, err
	}

	log.Infof("session: %s → %s", party, client)

	return &session{
		log:    log,
		party:  party,
		client: client,
	}, nil
}

func (s *session) close() {
	s.client.Close()
}

// one request/reply cycle with bounded retries
//
// a REQ socket that timed out must be reopened before reuse; the far
// end answers [fn, result] or ["E", reason]
func (s *session) exchange(fn string, parameters [][]byte) ([]byte, error) {

	log := s.log

	received := false
	var data [][]byte

retry_loop:
	for attempt := 0; attempt <= globalData.retries; attempt += 1 {
		if 0 != attempt {
			log.Warnf("%s: %q retry: %d", s.party, fn, attempt)
			err := s.client.Reconnect()
			if nil != err {
				return nil, err
			}
			time.Sleep(globalData.retryInterval)
		}

		err := s.client.Send(fn, parameters)
		if nil != err {
			log.Warnf("%s: send error: %s", s.party, err)
			continue retry_loop
		}

		data, err = s.client.Receive(0)
		if nil != err {
			log.Warnf("%s: receive error: %s", s.party, err)
			continue retry_loop
		}
		received = true
		break retry_loop
	}

	if !received {
		return nil, fault.CounterpartyTimeout
	}

	if 2 != len(data) {
		return nil, fault.InvalidStructure
	}

	switch string(data[0]) {
	case fn:
		return data[1], nil
	case "E":
		return nil, fault.RejectedError(string(data[1]))
	default:
		return nil, fault.InvalidStructure
	}
}

// send the proposal and verify the endorsement that comes back
func (s *session) propose(packedBase obligationrecord.Packed, proposer *account.Account, endorsement account.Signature) (account.Signature, error) {

	reply, err := s.exchange("P", [][]byte{packedBase, proposer.Bytes(), endorsement})
	if nil != err {
		return nil, err
	}

	signature := account.Signature(reply)
	err = s.party.CheckSignature(packedBase, signature)
	if nil != err {
		s.log.Errorf("%s: returned endorsement does not verify", s.party)
		return nil, fault.EndorsementNotVerified
	}
	return signature, nil
}

// tell the counterparty the attempt is over, best effort
func (s *session) abandon(txId digest.Digest) {
	_, err := s.exchange("A", [][]byte{txId[:]})
	if nil != err {
		s.log.Warnf("%s: abandon notice: %s", s.party, err)
	}
}

// hand the counterparty the finalised form and its confirmation
func (s *session) confirm(txId digest.Digest, packed obligationrecord.Packed, confirmation []byte) error {
	_, err := s.exchange("C", [][]byte{txId[:], packed, confirmation})
	return err
}
