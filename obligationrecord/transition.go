// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package obligationrecord

import (
	"encoding/hex"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/currency"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/util"
)

// TagType - type code for transitions
type TagType uint64

// enumerate the possible transition record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	ObligationIssueTag    = TagType(iota) // create a new obligation
	ObligationSettleTag   = TagType(iota) // record a payment against an obligation
	ObligationTransferTag = TagType(iota) // reassign the lender

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
//
// a packed transition exists in two forms: the base form (tag and
// fields only) that every required signer endorses and whose digest is
// the transition id, and the endorsed form (base followed by the
// endorsements in canonical signer order) that is notarised and stored
type Packed []byte

// Transition - generic obligation transition interface
type Transition interface {
	PackBase() (Packed, error)
	Pack(signers []*account.Account) (Packed, error)
	GetEndorsements() []account.Signature
}

// LinkedTransition - to access fields of the transitions that consume
// a previous record version
type LinkedTransition interface {
	Transition
	GetLink() digest.Digest
}

// byte sizes for various fields
const (
	maxEndorsementLength = 1024
)

// endorsement counts fixed by record type
const (
	issueEndorsements    = 2 // lender, borrower
	settleEndorsements   = 2 // lender, borrower
	transferEndorsements = 3 // lender, borrower, new lender
)

// ObligationIssue - create the first version of an obligation record
//
// consumes nothing and produces a record with paid set to zero; the
// nonce distinguishes otherwise identical obligations so each gets a
// unique record id
type ObligationIssue struct {
	Currency     currency.Currency   `json:"currency"`      // utf-8 → Enum
	Amount       uint64              `json:"amount,string"` // smallest currency unit, > 0
	Lender       *account.Account    `json:"lender"`        // base58
	Borrower     *account.Account    `json:"borrower"`      // base58
	Nonce        uint64              `json:"nonce,string"`  // unsigned 0..N
	Endorsements []account.Signature `json:"endorsements"`  // hex: lender, borrower
}

// ObligationSettle - record a payment against an obligation
//
// consumes the current version named by link and produces a new
// version with paid increased by payment
type ObligationSettle struct {
	Link         digest.Digest       `json:"link"`           // previous record version
	Payment      uint64              `json:"payment,string"` // smallest currency unit, > 0
	Endorsements []account.Signature `json:"endorsements"`   // hex: lender, borrower
}

// ObligationTransfer - reassign the lender of an obligation
//
// consumes the current version named by link and produces a new
// version with the new lender; amount, paid and borrower carry over
type ObligationTransfer struct {
	Link         digest.Digest       `json:"link"`         // previous record version
	NewLender    *account.Account    `json:"newLender"`    // base58
	Endorsements []account.Signature `json:"endorsements"` // hex: lender, borrower, new lender
}

// Type - returns the record type code
func (record Packed) Type() TagType {
	recordType, n := util.FromVarint64(record)
	if 0 == n {
		return NullTag
	}
	return TagType(recordType)
}

// RecordName - returns the name of a transition record as a string
func RecordName(record interface{}) (string, bool) {
	switch record.(type) {
	case *ObligationIssue, ObligationIssue:
		return "ObligationIssue", true

	case *ObligationSettle, ObligationSettle:
		return "ObligationSettle", true

	case *ObligationTransfer, ObligationTransfer:
		return "ObligationTransfer", true

	default:
		return "*unknown*", false
	}
}

// MakeId - compute the transition id for a packed record
//
// only valid when applied to the base form: the id covers the tag and
// fields but never the endorsements
func (record Packed) MakeId() digest.Digest {
	return digest.NewDigest(record)
}

// MarshalText - convert a packed to its hex JSON form
func (record Packed) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(record))
	b := make([]byte, size)
	hex.Encode(b, record)
	return b, nil
}

// UnmarshalText - convert a packed to its hex JSON form
func (record *Packed) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	*record = make([]byte, size)
	_, err := hex.Decode(*record, s)
	return err
}

// GetLink - link field of a settlement
func (settle *ObligationSettle) GetLink() digest.Digest {
	return settle.Link
}

// GetEndorsements - endorsement list of a settlement
func (settle *ObligationSettle) GetEndorsements() []account.Signature {
	return settle.Endorsements
}

// GetLink - link field of a transfer
func (transfer *ObligationTransfer) GetLink() digest.Digest {
	return transfer.Link
}

// GetEndorsements - endorsement list of a transfer
func (transfer *ObligationTransfer) GetEndorsements() []account.Signature {
	return transfer.Endorsements
}

// GetEndorsements - endorsement list of an issue
func (issue *ObligationIssue) GetEndorsements() []account.Signature {
	return issue.Endorsements
}
