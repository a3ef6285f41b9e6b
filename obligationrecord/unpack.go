// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package obligationrecord

import (
	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/currency"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/util"
)

// Unpack - turn a byte slice into a transition record
//
// the count of endorsements is fixed by the tag so the endorsed form
// needs no separate count field; unpacking a base form will fail with
// NotObligationPack as the endorsements are missing
//
// must cast result to correct type
//
// e.g.
//   issue, ok := result.(*obligationrecord.ObligationIssue)
// or:
//   switch tr := result.(type) {
//   case *obligationrecord.ObligationIssue:
func (record Packed) Unpack(testnet bool) (t Transition, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			e = fault.NotObligationPack
		}
	}()

	t, n, count, err := record.unpackFields(testnet)
	if nil != err {
		return nil, 0, err
	}

	endorsements, n, err := unpackEndorsements(record, n, count)
	if nil != err {
		return nil, 0, err
	}

	switch r := t.(type) {
	case *ObligationIssue:
		r.Endorsements = endorsements
	case *ObligationSettle:
		r.Endorsements = endorsements
	case *ObligationTransfer:
		r.Endorsements = endorsements
	}
	return t, n, nil
}

// UnpackBase - turn an unendorsed base form into a transition record
//
// the endorsement list of the result is nil; n is the number of base
// form bytes consumed, so a strict caller can require n to equal the
// record length
func (record Packed) UnpackBase(testnet bool) (t Transition, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			e = fault.NotObligationPack
		}
	}()

	t, n, _, err := record.unpackFields(testnet)
	if nil != err {
		return nil, 0, err
	}
	return t, n, nil
}

// parse the tag and fields, returning the record with a nil
// endorsement list, the offset where endorsements begin and the
// endorsement count the tag requires
func (record Packed) unpackFields(testnet bool) (Transition, int, int, error) {

	recordType, n := util.ClippedVarint64(record, 1, 8192)
	if 0 == n {
		return nil, 0, 0, fault.NotObligationPack
	}

unpack_switch:
	switch TagType(recordType) {

	case ObligationIssueTag:

		// currency
		c, currencyLength := util.FromVarint64(record[n:])
		if 0 == currencyLength {
			break unpack_switch
		}
		n += currencyLength
		currency, err := currency.FromUint64(c)
		if nil != err {
			return nil, 0, 0, err
		}

		// amount
		amount, amountLength := util.FromVarint64(record[n:])
		if 0 == amountLength {
			break unpack_switch
		}
		n += amountLength

		// lender public key
		lenderLength, lenderOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == lenderOffset {
			break unpack_switch
		}
		n += lenderOffset
		lender, err := account.AccountFromBytes(record[n : n+lenderLength])
		if nil != err {
			return nil, 0, 0, err
		}
		if lender.IsTesting() != testnet {
			return nil, 0, 0, fault.WrongNetworkForPublicKey
		}
		n += lenderLength

		// borrower public key
		borrowerLength, borrowerOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == borrowerOffset {
			break unpack_switch
		}
		n += borrowerOffset
		borrower, err := account.AccountFromBytes(record[n : n+borrowerLength])
		if nil != err {
			return nil, 0, 0, err
		}
		if borrower.IsTesting() != testnet {
			return nil, 0, 0, fault.WrongNetworkForPublicKey
		}
		n += borrowerLength

		// nonce
		nonce, nonceLength := util.FromVarint64(record[n:])
		if 0 == nonceLength {
			break unpack_switch
		}
		n += nonceLength

		r := &ObligationIssue{
			Currency: currency,
			Amount:   amount,
			Lender:   lender,
			Borrower: borrower,
			Nonce:    nonce,
		}
		return r, n, issueEndorsements, nil

	case ObligationSettleTag:

		// link
		linkLength, linkOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == linkOffset {
			break unpack_switch
		}
		n += linkOffset
		var link digest.Digest
		err := digest.FromBytes(&link, record[n:n+linkLength])
		if nil != err {
			return nil, 0, 0, err
		}
		n += linkLength

		// payment
		payment, paymentLength := util.FromVarint64(record[n:])
		if 0 == paymentLength {
			break unpack_switch
		}
		n += paymentLength

		r := &ObligationSettle{
			Link:    link,
			Payment: payment,
		}
		return r, n, settleEndorsements, nil

	case ObligationTransferTag:

		// link
		linkLength, linkOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == linkOffset {
			break unpack_switch
		}
		n += linkOffset
		var link digest.Digest
		err := digest.FromBytes(&link, record[n:n+linkLength])
		if nil != err {
			return nil, 0, 0, err
		}
		n += linkLength

		// new lender public key
		newLenderLength, newLenderOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == newLenderOffset {
			break unpack_switch
		}
		n += newLenderOffset
		newLender, err := account.AccountFromBytes(record[n : n+newLenderLength])
		if nil != err {
			return nil, 0, 0, err
		}
		if newLender.IsTesting() != testnet {
			return nil, 0, 0, fault.WrongNetworkForPublicKey
		}
		n += newLenderLength

		r := &ObligationTransfer{
			Link:      link,
			NewLender: newLender,
		}
		return r, n, transferEndorsements, nil

	default: // also NullTag
	}
	return nil, 0, 0, fault.NotObligationPack
}

// unpack the fixed count of endorsements, each length prefixed
func unpackEndorsements(record []byte, n int, count int) ([]account.Signature, int, error) {

	endorsements := make([]account.Signature, count)

	for i := 0; i < count; i += 1 {
		endorsementLength, endorsementOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == endorsementOffset {
			return nil, 0, fault.NotObligationPack
		}
		endorsement := make(account.Signature, endorsementLength)
		n += endorsementOffset
		copy(endorsement, record[n:n+endorsementLength])
		n += endorsementLength
		endorsements[i] = endorsement
	}

	return endorsements, n, nil
}
