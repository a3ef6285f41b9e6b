// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package obligationrecord

import (
	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/util"
)

// PackBase - pack ObligationIssue base form
//
// Varint64(tag) followed by fields in order as struct above,
// endorsements excluded
func (issue *ObligationIssue) PackBase() (Packed, error) {
	if nil == issue.Lender || nil == issue.Borrower {
		return nil, fault.InvalidParticipant
	}

	// concatenate bytes
	message := Packed(util.ToVarint64(uint64(ObligationIssueTag)))
	message = appendUint64(message, issue.Currency.Uint64())
	message = appendUint64(message, issue.Amount)
	message = appendAccount(message, issue.Lender)
	message = appendAccount(message, issue.Borrower)
	message = appendUint64(message, issue.Nonce)

	return message, nil
}

// Pack - pack ObligationIssue with its endorsements
//
// the base form from PackBase followed by each endorsement in signer
// order; every endorsement is checked against the base form
//
// NOTE: returns the unendorsed message on a check failure - for
//       debugging/testing
func (issue *ObligationIssue) Pack(signers []*account.Account) (Packed, error) {
	message, err := issue.PackBase()
	if nil != err {
		return nil, err
	}
	return appendEndorsements(message, issue.Endorsements, signers, issueEndorsements)
}

// PackBase - pack ObligationSettle base form
//
// Varint64(tag) followed by fields in order as struct above,
// endorsements excluded
func (settle *ObligationSettle) PackBase() (Packed, error) {

	// concatenate bytes
	message := Packed(util.ToVarint64(uint64(ObligationSettleTag)))
	message = appendBytes(message, settle.Link[:])
	message = appendUint64(message, settle.Payment)

	return message, nil
}

// Pack - pack ObligationSettle with its endorsements
//
// NOTE: returns the unendorsed message on a check failure - for
//       debugging/testing
func (settle *ObligationSettle) Pack(signers []*account.Account) (Packed, error) {
	message, err := settle.PackBase()
	if nil != err {
		return nil, err
	}
	return appendEndorsements(message, settle.Endorsements, signers, settleEndorsements)
}

// PackBase - pack ObligationTransfer base form
//
// Varint64(tag) followed by fields in order as struct above,
// endorsements excluded
func (transfer *ObligationTransfer) PackBase() (Packed, error) {
	if nil == transfer.NewLender {
		return nil, fault.InvalidParticipant
	}

	// concatenate bytes
	message := Packed(util.ToVarint64(uint64(ObligationTransferTag)))
	message = appendBytes(message, transfer.Link[:])
	message = appendAccount(message, transfer.NewLender)

	return message, nil
}

// Pack - pack ObligationTransfer with its endorsements
//
// NOTE: returns the unendorsed message on a check failure - for
//       debugging/testing
func (transfer *ObligationTransfer) Pack(signers []*account.Account) (Packed, error) {
	message, err := transfer.PackBase()
	if nil != err {
		return nil, err
	}
	return appendEndorsements(message, transfer.Endorsements, signers, transferEndorsements)
}

// check each endorsement over the base message and append it
//
// all endorsements sign the same base message; the order must match
// the signer order
func appendEndorsements(message Packed, endorsements []account.Signature, signers []*account.Account, count int) (Packed, error) {
	if count != len(endorsements) || count != len(signers) {
		return nil, fault.IncorrectEndorsementCount
	}
	for i, endorsement := range endorsements {
		if len(endorsement) > maxEndorsementLength {
			return nil, fault.EndorsementTooLong
		}
		if nil == signers[i] {
			return nil, fault.InvalidParticipant
		}
		err := signers[i].CheckSignature(message, endorsement)
		if nil != err {
			return message, err
		}
	}
	for _, endorsement := range endorsements {
		message = appendBytes(message, []byte(endorsement))
	}
	return message, nil
}

// append an account to a buffer
//
// the field is prefixed by Varint64(length)
func appendAccount(buffer Packed, address *account.Account) Packed {
	data := address.Bytes()
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

// append a bytes to a buffer
//
// the field is prefixed by Varint64(length)
func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	valueBytes := util.ToVarint64(value)
	buffer = append(buffer, valueBytes...)
	return buffer
}
