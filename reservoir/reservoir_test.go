// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir_test

import (
	"bytes"
	"os"
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/currency"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/mode"
	"github.com/bitmark-inc/obligationd/network"
	"github.com/bitmark-inc/obligationd/obligationrecord"
	"github.com/bitmark-inc/obligationd/ownership"
	"github.com/bitmark-inc/obligationd/reservoir"
	"github.com/bitmark-inc/obligationd/storage"
)

// test files
const (
	testingDirName   = "testing.reservoir"
	databaseFileName = testingDirName + "/test"
	cacheFileName    = testingDirName + "/reservoir-local.cache"
)

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

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	ownership.Initialise(storage.Pool.OwnerList)

	err = reservoir.Initialise(cacheFileName, 0)
	if nil != err {
		t.Fatalf("reservoir initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	_ = reservoir.Finalise()
	storage.Finalise()
	removeFiles()
}

// to hold a keypair for testing
type keyPair struct {
	publicKey  []byte
	privateKey []byte
}

// public/private keys

var lenderOne = keyPair{
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

var borrowerOne = keyPair{
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

var lenderTwo = keyPair{
	publicKey: []byte{
		0xa1, 0x36, 0x32, 0xd5, 0x42, 0x5a, 0xed, 0x3a,
		0x6b, 0x62, 0xe2, 0xbb, 0x6d, 0xe4, 0xc9, 0x59,
		0x48, 0x41, 0xc1, 0x5b, 0x70, 0x15, 0x69, 0xec,
		0x99, 0x99, 0xdc, 0x20, 0x1c, 0x35, 0xf7, 0xb3,
	},
	privateKey: []byte{
		0x8f, 0x83, 0x3e, 0x58, 0x30, 0xde, 0x63, 0x77,
		0x89, 0x4a, 0x8d, 0xf2, 0xd4, 0x4b, 0x17, 0x88,
		0x39, 0x1d, 0xcd, 0xb8, 0xfa, 0x57, 0x22, 0x73,
		0xd6, 0x2e, 0x9f, 0xcb, 0x37, 0x20, 0x2a, 0xb9,
		0xa1, 0x36, 0x32, 0xd5, 0x42, 0x5a, 0xed, 0x3a,
		0x6b, 0x62, 0xe2, 0xbb, 0x6d, 0xe4, 0xc9, 0x59,
		0x48, 0x41, 0xc1, 0x5b, 0x70, 0x15, 0x69, 0xec,
		0x99, 0x99, 0xdc, 0x20, 0x1c, 0x35, 0xf7, 0xb3,
	},
}

// helper to make an address
func makeAccount(publicKey []byte) *account.Account {
	return &account.Account{
		AccountInterface: &account.ED25519Account{
			Test:      true,
			PublicKey: publicKey,
		},
	}
}

var (
	lenderOneAccount   = makeAccount(lenderOne.publicKey)
	borrowerOneAccount = makeAccount(borrowerOne.publicKey)
	lenderTwoAccount   = makeAccount(lenderTwo.publicKey)
)

// endorse the base form in canonical signer order
func endorse(t *testing.T, transition obligationrecord.Transition, keys ...keyPair) []account.Signature {
	base, err := transition.PackBase()
	if nil != err {
		t.Fatalf("pack base error: %s", err)
	}
	endorsements := make([]account.Signature, len(keys))
	for i, key := range keys {
		endorsements[i] = account.Signature(ed25519.Sign(key.privateKey, base))
	}
	return endorsements
}

// push one issue through store, endorsement and confirmation
// returns its info so tests can build on the confirmed record
func confirmIssue(t *testing.T, amount uint64, nonce uint64) *reservoir.TransitionInfo {
	issue := &obligationrecord.ObligationIssue{
		Currency: currency.USD,
		Amount:   amount,
		Lender:   lenderOneAccount,
		Borrower: borrowerOneAccount,
		Nonce:    nonce,
	}
	issue.Endorsements = endorse(t, issue, lenderOne, borrowerOne)

	info, duplicate, err := reservoir.StoreTransition(issue)
	if nil != err {
		t.Fatalf("store issue error: %s", err)
	}
	if duplicate {
		t.Fatal("issue is already pending")
	}

	err = reservoir.Confirm(info.Id, issue.Endorsements, []byte("notary: issue"))
	if nil != err {
		t.Fatalf("confirm issue error: %s", err)
	}
	return info
}

// follow one issue from submission to the ledger
func TestIssueLifecycle(t *testing.T) {
	setup(t)
	defer teardown(t)

	if reservoir.StateNotFound != reservoir.TransitionStatus(digest.NewDigest([]byte("nothing"))) {
		t.Error("unknown transition id is not StateNotFound")
	}

	issue := &obligationrecord.ObligationIssue{
		Currency: currency.USD,
		Amount:   50000,
		Lender:   lenderOneAccount,
		Borrower: borrowerOneAccount,
		Nonce:    1,
	}

	info, duplicate, err := reservoir.StoreTransition(issue)
	if nil != err {
		t.Fatalf("store error: %s", err)
	}
	if duplicate {
		t.Fatal("first store is flagged duplicate")
	}

	base, err := issue.PackBase()
	if nil != err {
		t.Fatalf("pack base error: %s", err)
	}
	if base.MakeId() != info.Id {
		t.Errorf("transition id: actual: %v  expected: %v", info.Id, base.MakeId())
	}
	if 2 != len(info.Signers) {
		t.Fatalf("signer count: actual: %d  expected: 2", len(info.Signers))
	}
	if info.Obligation.Id != info.Id {
		t.Errorf("record id: actual: %v  expected: %v", info.Obligation.Id, info.Id)
	}

	if reservoir.StatePending != reservoir.TransitionStatus(info.Id) {
		t.Errorf("state: actual: %s  expected: %s", reservoir.TransitionStatus(info.Id), reservoir.StatePending)
	}

	pending, locks := reservoir.ReadCounters()
	if 1 != pending || 0 != locks {
		t.Fatalf("counters: actual: %d %d  expected: 1 0", pending, locks)
	}

	// repeated submission returns the same info flagged as duplicate
	again, duplicate, err := reservoir.StoreTransition(issue)
	if nil != err {
		t.Fatalf("store error: %s", err)
	}
	if !duplicate {
		t.Error("repeated store is not flagged duplicate")
	}
	if again.Id != info.Id {
		t.Errorf("repeated store id: actual: %v  expected: %v", again.Id, info.Id)
	}

	// endorsements are still missing so there is nothing to commit
	err = reservoir.Confirm(info.Id, nil, []byte("notary: lifecycle"))
	if fault.IncorrectEndorsementCount != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.IncorrectEndorsementCount)
	}

	endorsements := endorse(t, issue, lenderOne, borrowerOne)

	err = reservoir.Confirm(info.Id, endorsements, []byte{})
	if fault.NoConfirmation != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.NoConfirmation)
	}

	confirmation := []byte("notary: lifecycle")
	err = reservoir.Confirm(info.Id, endorsements, confirmation)
	if nil != err {
		t.Fatalf("confirm error: %s", err)
	}

	if reservoir.StateConfirmed != reservoir.TransitionStatus(info.Id) {
		t.Errorf("state: actual: %s  expected: %s", reservoir.TransitionStatus(info.Id), reservoir.StateConfirmed)
	}

	pending, locks = reservoir.ReadCounters()
	if 0 != pending || 0 != locks {
		t.Fatalf("counters: actual: %d %d  expected: 0 0", pending, locks)
	}

	// the ledger carries the endorsed form and its confirmation
	stored := storage.Pool.Transitions.Get(info.Id[:])
	if nil == stored {
		t.Fatal("transition is not stored")
	}
	unpacked, _, err := obligationrecord.Packed(stored).Unpack(true)
	if nil != err {
		t.Fatalf("unpack stored transition error: %s", err)
	}
	restored, ok := unpacked.(*obligationrecord.ObligationIssue)
	if !ok {
		t.Fatalf("stored transition type: %T", unpacked)
	}
	if 2 != len(restored.Endorsements) {
		t.Errorf("stored endorsements: actual: %d  expected: 2", len(restored.Endorsements))
	}

	if !bytes.Equal(confirmation, storage.Pool.Confirmations.Get(info.Id[:])) {
		t.Error("stored confirmation differs")
	}
	if !bytes.Equal(info.Id[:], storage.Pool.Heads.Get(info.Obligation.Id[:])) {
		t.Error("head does not name the issue")
	}
	if !ownership.CurrentlyOwns(lenderOneAccount, info.Obligation.Id) {
		t.Error("lender does not hold the record")
	}
	if !ownership.CurrentlyOwns(borrowerOneAccount, info.Obligation.Id) {
		t.Error("borrower does not hold the record")
	}

	// repeating a confirmation of a stored transition is harmless
	err = reservoir.Confirm(info.Id, endorsements, confirmation)
	if nil != err {
		t.Fatalf("repeated confirm error: %s", err)
	}

	// but a stored transition cannot be submitted again
	_, _, err = reservoir.StoreTransition(issue)
	if fault.TransitionAlreadyExists != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.TransitionAlreadyExists)
	}

	// and an id that was never submitted cannot confirm
	err = reservoir.Confirm(digest.NewDigest([]byte("nothing")), endorsements, confirmation)
	if fault.TransitionNotFound != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.TransitionNotFound)
	}
}

// a pending settlement locks the version it consumes
func TestSettleLocking(t *testing.T) {
	setup(t)
	defer teardown(t)

	issue := confirmIssue(t, 50000, 1)
	recordId := issue.Obligation.Id

	settle := &obligationrecord.ObligationSettle{
		Link:    recordId,
		Payment: 20000,
	}

	info, duplicate, err := reservoir.StoreTransition(settle)
	if nil != err {
		t.Fatalf("store error: %s", err)
	}
	if duplicate {
		t.Fatal("first store is flagged duplicate")
	}

	pending, locks := reservoir.ReadCounters()
	if 1 != pending || 1 != locks {
		t.Fatalf("counters: actual: %d %d  expected: 1 1", pending, locks)
	}

	// the consumed version is locked against competing attempts
	conflicting := &obligationrecord.ObligationSettle{
		Link:    recordId,
		Payment: 30000,
	}
	_, _, err = reservoir.StoreTransition(conflicting)
	if fault.RecordLocked != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.RecordLocked)
	}

	// abandoning the attempt releases the lock
	reservoir.Abandon(info.Id)
	if reservoir.StateNotFound != reservoir.TransitionStatus(info.Id) {
		t.Error("abandoned transition is still tracked")
	}
	pending, locks = reservoir.ReadCounters()
	if 0 != pending || 0 != locks {
		t.Fatalf("counters: actual: %d %d  expected: 0 0", pending, locks)
	}

	held, _, err := reservoir.StoreTransition(conflicting)
	if nil != err {
		t.Fatalf("store error: %s", err)
	}
	reservoir.Abandon(held.Id)

	// the original settlement again, this time to completion
	info, _, err = reservoir.StoreTransition(settle)
	if nil != err {
		t.Fatalf("store error: %s", err)
	}
	settle.Endorsements = endorse(t, settle, lenderOne, borrowerOne)

	err = reservoir.Confirm(info.Id, settle.Endorsements, []byte("notary: settle"))
	if nil != err {
		t.Fatalf("confirm error: %s", err)
	}

	// produced version keeps the record id, head moves forward
	if recordId != info.Obligation.Id {
		t.Errorf("record id: actual: %v  expected: %v", info.Obligation.Id, recordId)
	}
	if 20000 != info.Obligation.Paid {
		t.Errorf("paid: actual: %d  expected: 20000", info.Obligation.Paid)
	}
	if issue.Obligation.Amount != info.Obligation.Amount {
		t.Errorf("amount: actual: %d  expected: %d", info.Obligation.Amount, issue.Obligation.Amount)
	}
	if !bytes.Equal(info.Id[:], storage.Pool.Heads.Get(recordId[:])) {
		t.Error("head does not name the settlement")
	}

	// the issue version is spent now
	stale := &obligationrecord.ObligationSettle{
		Link:    recordId,
		Payment: 1000,
	}
	_, _, err = reservoir.StoreTransition(stale)
	if fault.LinkNotCurrentVersion != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.LinkNotCurrentVersion)
	}

	// and a version that never existed cannot be consumed
	unknown := &obligationrecord.ObligationSettle{
		Link:    digest.NewDigest([]byte("no such version")),
		Payment: 1000,
	}
	_, _, err = reservoir.StoreTransition(unknown)
	if fault.TransitionNotFound != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.TransitionNotFound)
	}
}

// transfer needs the incoming lender as third signer and moves the
// lender side of the ownership index
func TestTransferLifecycle(t *testing.T) {
	setup(t)
	defer teardown(t)

	issue := confirmIssue(t, 75000, 7)
	recordId := issue.Obligation.Id

	transfer := &obligationrecord.ObligationTransfer{
		Link:      recordId,
		NewLender: lenderTwoAccount,
	}

	info, duplicate, err := reservoir.StoreTransition(transfer)
	if nil != err {
		t.Fatalf("store error: %s", err)
	}
	if duplicate {
		t.Fatal("first store is flagged duplicate")
	}

	// previous lender, borrower, then the incoming lender
	if 3 != len(info.Signers) {
		t.Fatalf("signer count: actual: %d  expected: 3", len(info.Signers))
	}
	if info.Signers[0].String() != lenderOneAccount.String() ||
		info.Signers[1].String() != borrowerOneAccount.String() ||
		info.Signers[2].String() != lenderTwoAccount.String() {
		t.Fatalf("signers: actual: %v", info.Signers)
	}

	transfer.Endorsements = endorse(t, transfer, lenderOne, borrowerOne, lenderTwo)

	err = reservoir.Confirm(info.Id, transfer.Endorsements, []byte("notary: transfer"))
	if nil != err {
		t.Fatalf("confirm error: %s", err)
	}

	if info.Obligation.Lender.String() != lenderTwoAccount.String() {
		t.Errorf("lender: actual: %s  expected: %s", info.Obligation.Lender, lenderTwoAccount)
	}
	if !bytes.Equal(info.Id[:], storage.Pool.Heads.Get(recordId[:])) {
		t.Error("head does not name the transfer")
	}

	if ownership.CurrentlyOwns(lenderOneAccount, recordId) {
		t.Error("previous lender still holds the record")
	}
	if !ownership.CurrentlyOwns(lenderTwoAccount, recordId) {
		t.Error("new lender does not hold the record")
	}
	if !ownership.CurrentlyOwns(borrowerOneAccount, recordId) {
		t.Error("borrower lost the record on transfer")
	}
}

// in-flight state survives a restart through the cache file
//
// only fully endorsed entries come back and they return with their
// version locks held
func TestCacheRoundTrip(t *testing.T) {
	setup(t)
	defer teardown(t)

	issue := confirmIssue(t, 50000, 1)
	recordId := issue.Obligation.Id

	// endorsed settlement holding the version lock
	settle := &obligationrecord.ObligationSettle{
		Link:    recordId,
		Payment: 20000,
	}
	settle.Endorsements = endorse(t, settle, lenderOne, borrowerOne)

	settleInfo, _, err := reservoir.StoreTransition(settle)
	if nil != err {
		t.Fatalf("store error: %s", err)
	}

	// endorsements still missing, a restart abandons this one
	bare := &obligationrecord.ObligationIssue{
		Currency: currency.EUR,
		Amount:   100,
		Lender:   lenderOneAccount,
		Borrower: borrowerOneAccount,
		Nonce:    2,
	}
	bareInfo, _, err := reservoir.StoreTransition(bare)
	if nil != err {
		t.Fatalf("store error: %s", err)
	}

	// simulated restart
	err = reservoir.Finalise()
	if nil != err {
		t.Fatalf("finalise error: %s", err)
	}
	err = reservoir.Initialise(cacheFileName, 0)
	if nil != err {
		t.Fatalf("initialise error: %s", err)
	}

	pending, locks := reservoir.ReadCounters()
	if 0 != pending || 0 != locks {
		t.Fatalf("counters after restart: actual: %d %d  expected: 0 0", pending, locks)
	}

	err = reservoir.LoadFromFile()
	if nil != err {
		t.Fatalf("load error: %s", err)
	}

	if reservoir.StatePending != reservoir.TransitionStatus(settleInfo.Id) {
		t.Errorf("settle state: actual: %s  expected: %s", reservoir.TransitionStatus(settleInfo.Id), reservoir.StatePending)
	}
	if reservoir.StateNotFound != reservoir.TransitionStatus(bareInfo.Id) {
		t.Errorf("bare issue state: actual: %s  expected: %s", reservoir.TransitionStatus(bareInfo.Id), reservoir.StateNotFound)
	}

	pending, locks = reservoir.ReadCounters()
	if 1 != pending || 1 != locks {
		t.Fatalf("counters after load: actual: %d %d  expected: 1 1", pending, locks)
	}

	// the restored settlement still holds its lock
	conflicting := &obligationrecord.ObligationSettle{
		Link:    recordId,
		Payment: 30000,
	}
	_, _, err = reservoir.StoreTransition(conflicting)
	if fault.RecordLocked != err {
		t.Fatalf("unexpected error: %v  expected: %v", err, fault.RecordLocked)
	}

	// and confirms normally
	err = reservoir.Confirm(settleInfo.Id, settle.Endorsements, []byte("notary: restored"))
	if nil != err {
		t.Fatalf("confirm restored error: %s", err)
	}
	if !bytes.Equal(settleInfo.Id[:], storage.Pool.Heads.Get(recordId[:])) {
		t.Error("head does not name the restored settlement")
	}
}

// state text round trip
func TestTransitionStateText(t *testing.T) {

	items := []struct {
		state reservoir.TransitionState
		text  string
	}{
		{reservoir.StateNotFound, "NotFound"},
		{reservoir.StatePending, "Pending"},
		{reservoir.StateConfirmed, "Confirmed"},
	}

	for i, item := range items {
		marshalled, err := item.state.MarshalText()
		if nil != err {
			t.Fatalf("%d: marshal error: %s", i, err)
		}
		if item.text != string(marshalled) {
			t.Errorf("%d: marshal: actual: %q  expected: %q", i, marshalled, item.text)
		}

		var state reservoir.TransitionState
		err = state.UnmarshalText([]byte(item.text))
		if nil != err {
			t.Fatalf("%d: unmarshal error: %s", i, err)
		}
		if item.state != state {
			t.Errorf("%d: unmarshal: actual: %d  expected: %d", i, state, item.state)
		}
	}

	// unrecognised text decodes as not found
	state := reservoir.StateConfirmed
	err := state.UnmarshalText([]byte("garbage"))
	if nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}
	if reservoir.StateNotFound != state {
		t.Errorf("unmarshal garbage: actual: %d  expected: %d", state, reservoir.StateNotFound)
	}
}
