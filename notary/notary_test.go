// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notary_test

import (
	"encoding/hex"
	"os"
	"testing"

	zmq "github.com/pebbe/zmq4"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/currency"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/mode"
	"github.com/bitmark-inc/obligationd/network"
	"github.com/bitmark-inc/obligationd/notary"
	"github.com/bitmark-inc/obligationd/obligationrecord"
)

// test files
const testingDirName = "testing.notary"

// a notary that answers nothing lives here
const deadEndpoint = "127.0.0.1:19555"

// remove all files created by test
func removeFiles() {
	os.RemoveAll(testingDirName)
}

// configure for testing
func setup(t *testing.T) {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	_ = mode.Initialise(network.Testing)
}

// post test cleanup
func teardown(t *testing.T) {
	_ = notary.Finalise()
	removeFiles()
}

// to hold a keypair for testing
type keyPair struct {
	publicKey  []byte
	privateKey []byte
}

// public/private keys
//
// the first pair doubles as the notary identity, its account encodes
// to notaryAccountBase58

var notaryKey = keyPair{
	publicKey: []byte{
		0x9f, 0xc4, 0x86, 0xa2, 0x53, 0x4f, 0x17, 0xe3,
		0x67, 0x07, 0xfa, 0x4b, 0x95, 0x3e, 0x3b, 0x34,
		0x00, 0xe2, 0x72, 0x9f, 0x65, 0x61, 0x16, 0xdd,
		0x7b, 0x01, 0x8d, 0xf3, 0x46, 0x98, 0xbd, 0xc2,
	},
	privateKey: []byte{
		0xf3, 0xf7, 0xa1, 0xfc, 0x33, 0x10, 0x71, 0xc2,
		0xb1, 0xcb, 0xbe, 0x4f, 0x3a, 0xee, 0x23, 0x5a,
		0xae, 0xcc, 0xd8, 0x5d, 0x2a, 0x80, 0x4c, 0x44,
		0xb5, 0xc6, 0x03, 0xb4, 0xca, 0x4d, 0x9e, 0xc0,
		0x9f, 0xc4, 0x86, 0xa2, 0x53, 0x4f, 0x17, 0xe3,
		0x67, 0x07, 0xfa, 0x4b, 0x95, 0x3e, 0x3b, 0x34,
		0x00, 0xe2, 0x72, 0x9f, 0x65, 0x61, 0x16, 0xdd,
		0x7b, 0x01, 0x8d, 0xf3, 0x46, 0x98, 0xbd, 0xc2,
	},
}

var borrowerKey = keyPair{
	publicKey: []byte{
		0x27, 0x64, 0x0e, 0x4a, 0xab, 0x92, 0xd8, 0x7b,
		0x4a, 0x6a, 0x2f, 0x30, 0xb8, 0x81, 0xf4, 0x49,
		0x29, 0xf8, 0x66, 0x04, 0x3a, 0x84, 0x1c, 0x38,
		0x14, 0xb1, 0x66, 0xb8, 0x89, 0x44, 0xb0, 0x92,
	},
	privateKey: []byte{
		0xc7, 0xae, 0x9f, 0x22, 0x32, 0x0e, 0xda, 0x65,
		0x02, 0x89, 0xf2, 0x64, 0x7b, 0xc3, 0xa4, 0x4f,
		0xfa, 0xe0, 0x55, 0x79, 0xcb, 0x6a, 0x42, 0x20,
		0x90, 0xb4, 0x59, 0xb3, 0x17, 0xed, 0xf4, 0xa1,
		0x27, 0x64, 0x0e, 0x4a, 0xab, 0x92, 0xd8, 0x7b,
		0x4a, 0x6a, 0x2f, 0x30, 0xb8, 0x81, 0xf4, 0x49,
		0x29, 0xf8, 0x66, 0x04, 0x3a, 0x84, 0x1c, 0x38,
		0x14, 0xb1, 0x66, 0xb8, 0x89, 0x44, 0xb0, 0x92,
	},
}

const notaryAccountBase58 = "f9WQMtFnXeZKASkp8tGdZTWEFYmuV3yFaE44BYJ84jNxXfUaKi"

// helper to make an address
func makeAccount(test bool, publicKey []byte) *account.Account {
	return &account.Account{
		AccountInterface: &account.ED25519Account{
			Test:      test,
			PublicKey: publicKey,
		},
	}
}

// fresh CURVE keys for the client side of the test connection
func makeCurveKeys(t *testing.T) ([]byte, []byte) {
	public, private, err := zmq.NewCurveKeypair()
	if nil != err {
		t.Fatalf("curve keypair error: %s", err)
	}
	return []byte(zmq.Z85decode(public)), []byte(zmq.Z85decode(private))
}

// a fully endorsed issue and everything a submission needs
func makeSubmission(t *testing.T) (digest.Digest, obligationrecord.Packed, []*account.Account) {
	lender := makeAccount(true, notaryKey.publicKey)
	borrower := makeAccount(true, borrowerKey.publicKey)

	issue := &obligationrecord.ObligationIssue{
		Currency: currency.USD,
		Amount:   50000,
		Lender:   lender,
		Borrower: borrower,
		Nonce:    1,
	}
	base, err := issue.PackBase()
	if nil != err {
		t.Fatalf("pack base error: %s", err)
	}
	issue.Endorsements = []account.Signature{
		account.Signature(ed25519.Sign(notaryKey.privateKey, base)),
		account.Signature(ed25519.Sign(borrowerKey.privateKey, base)),
	}
	signers := []*account.Account{lender, borrower}
	packed, err := issue.Pack(signers)
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	return base.MakeId(), packed, signers
}

// submission before initialise must be refused
func TestSubmitBeforeInitialise(t *testing.T) {
	setup(t)
	defer teardown(t)

	_ = notary.Finalise()

	txId, packed, signers := makeSubmission(t)
	_, err := notary.Submit(txId, packed, signers)
	if fault.NotInitialised != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.NotInitialised)
	}
}

// each configuration fault is detected
func TestInitialiseErrors(t *testing.T) {
	setup(t)
	defer teardown(t)

	clientPublic, clientPrivate := makeCurveKeys(t)
	serverPublic, _ := makeCurveKeys(t)
	serverKey := "PUBLIC:" + hex.EncodeToString(serverPublic)

	valid := notary.Configuration{
		Connect:   deadEndpoint,
		PublicKey: serverKey,
		Account:   notaryAccountBase58,
		Retries:   1,
		Timeout:   "100ms",
	}

	items := []struct {
		modify func(c *notary.Configuration)
		expect error // nil => any error accepted
	}{
		{func(c *notary.Configuration) { c.Account = "not-an-account" }, nil},
		{func(c *notary.Configuration) { c.Account = makeAccount(false, notaryKey.publicKey).String() }, fault.WrongNetworkForPublicKey},
		{func(c *notary.Configuration) { c.PublicKey = "NOT-A-KEY" }, fault.InvalidPublicKeyFile},
		{func(c *notary.Configuration) { c.Connect = "no-port-here" }, nil},
		{func(c *notary.Configuration) { c.Timeout = "soon" }, nil},
	}

	for i, item := range items {
		configuration := valid
		item.modify(&configuration)

		err := notary.Initialise(&configuration, clientPrivate, clientPublic)
		if nil == err {
			_ = notary.Finalise()
			t.Fatalf("%d: initialise did not fail", i)
		}
		if nil != item.expect && item.expect != err {
			t.Fatalf("%d: unexpected error: %v  expected: %v", i, err, item.expect)
		}
	}

	// and a good configuration initialises exactly once
	err := notary.Initialise(&valid, clientPrivate, clientPublic)
	if nil != err {
		t.Fatalf("initialise error: %s", err)
	}
	err = notary.Initialise(&valid, clientPrivate, clientPublic)
	if fault.AlreadyInitialised != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.AlreadyInitialised)
	}
	if notaryAccountBase58 != notary.Account().String() {
		t.Errorf("account: actual: %s  expected: %s", notary.Account(), notaryAccountBase58)
	}
}

// bounded retries against a dead notary end in a timeout
func TestSubmitTimeout(t *testing.T) {
	setup(t)
	defer teardown(t)

	clientPublic, clientPrivate := makeCurveKeys(t)
	serverPublic, _ := makeCurveKeys(t)

	configuration := notary.Configuration{
		Connect:   deadEndpoint,
		PublicKey: "PUBLIC:" + hex.EncodeToString(serverPublic),
		Account:   notaryAccountBase58,
		Retries:   1,
		Timeout:   "100ms",
	}
	err := notary.Initialise(&configuration, clientPrivate, clientPublic)
	if nil != err {
		t.Fatalf("initialise error: %s", err)
	}

	txId, packed, signers := makeSubmission(t)

	// nil signers are rejected before any network traffic
	_, err = notary.Submit(txId, packed, []*account.Account{nil})
	if fault.InvalidParticipant != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.InvalidParticipant)
	}

	_, err = notary.Submit(txId, packed, signers)
	if fault.NotaryTimeout != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.NotaryTimeout)
	}
}

// a confirmation is checkable with just the notary account
func TestVerifyConfirmation(t *testing.T) {
	setup(t)
	defer teardown(t)

	notaryAccount, err := account.AccountFromBase58(notaryAccountBase58)
	if nil != err {
		t.Fatalf("account error: %s", err)
	}

	txId := digest.NewDigest([]byte("a committed transition"))
	confirmation := ed25519.Sign(notaryKey.privateKey, txId[:])

	err = notary.VerifyConfirmation(notaryAccount, txId, confirmation)
	if nil != err {
		t.Fatalf("verify error: %s", err)
	}

	otherId := digest.NewDigest([]byte("a different transition"))
	err = notary.VerifyConfirmation(notaryAccount, otherId, confirmation)
	if fault.ConfirmationNotVerified != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.ConfirmationNotVerified)
	}

	err = notary.VerifyConfirmation(notaryAccount, txId, confirmation[:10])
	if fault.ConfirmationNotVerified != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.ConfirmationNotVerified)
	}

	err = notary.VerifyConfirmation(nil, txId, confirmation)
	if fault.ConfirmationNotVerified != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.ConfirmationNotVerified)
	}
}
