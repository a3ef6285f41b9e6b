// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package obligationrecord

import (
	"bytes"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/currency"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/util"
)

// Obligation - one version of a single obligation record
//
// records are immutable values: settlement and transfer produce a new
// version and never modify the old one; all versions share the id,
// which is the transition id of the issue that created the record
type Obligation struct {
	Id       digest.Digest     `json:"id"`            // stable across versions
	Currency currency.Currency `json:"currency"`      // utf-8 → Enum
	Amount   uint64            `json:"amount,string"` // smallest currency unit, fixed at creation
	Paid     uint64            `json:"paid,string"`   // 0 ≤ paid ≤ amount
	Lender   *account.Account  `json:"lender"`        // base58
	Borrower *account.Account  `json:"borrower"`      // base58
}

// Create - construct the first version of an obligation
//
// the id field is left zero; it is assigned from the issue transition
// that carries the record onto the ledger
func Create(c currency.Currency, amount uint64, lender *account.Account, borrower *account.Account) (*Obligation, error) {

	if !c.IsValid() {
		return nil, fault.InvalidCurrency
	}
	if 0 == amount {
		return nil, fault.InvalidAmount
	}
	if nil == lender || nil == borrower {
		return nil, fault.InvalidParticipant
	}
	if bytes.Equal(lender.Bytes(), borrower.Bytes()) {
		return nil, fault.SameParty
	}

	return &Obligation{
		Currency: c,
		Amount:   amount,
		Paid:     0,
		Lender:   lender,
		Borrower: borrower,
	}, nil
}

// ApplyPayment - produce the version that results from paying down an
// obligation
//
// id, amount, lender and borrower carry over unchanged; the payment
// must be positive and must not take paid beyond amount
func (obligation *Obligation) ApplyPayment(payment uint64) (*Obligation, error) {

	if 0 == payment {
		return nil, fault.InvalidAmount
	}

	paid := obligation.Paid + payment
	if paid < obligation.Paid || paid > obligation.Amount {
		return nil, fault.Overpayment
	}

	result := *obligation
	result.Paid = paid
	return &result, nil
}

// ReassignLender - produce the version that results from transferring
// an obligation to a new lender
//
// id, amount, paid and borrower carry over unchanged
func (obligation *Obligation) ReassignLender(newLender *account.Account) (*Obligation, error) {

	if nil == newLender {
		return nil, fault.InvalidParticipant
	}
	if bytes.Equal(newLender.Bytes(), obligation.Borrower.Bytes()) {
		return nil, fault.SameParty
	}
	if bytes.Equal(newLender.Bytes(), obligation.Lender.Bytes()) {
		return nil, fault.LenderMustChange
	}

	result := *obligation
	result.Lender = newLender
	return &result, nil
}

// Participants - the parties to an obligation
//
// always exactly lender and borrower, in that order
func (obligation *Obligation) Participants() []*account.Account {
	return []*account.Account{obligation.Lender, obligation.Borrower}
}

// IsSettled - true when the obligation is fully paid down
func (obligation *Obligation) IsSettled() bool {
	return obligation.Paid == obligation.Amount
}

// IsParticipant - check whether an account is a party to an obligation
func (obligation *Obligation) IsParticipant(party *account.Account) bool {
	if nil == party {
		return false
	}
	p := party.Bytes()
	return bytes.Equal(p, obligation.Lender.Bytes()) || bytes.Equal(p, obligation.Borrower.Bytes())
}

// PackedObligation - packed record state for the state pool
type PackedObligation []byte

// Pack - pack an obligation into its storage form
//
// fields in struct order, accounts length prefixed
func (obligation *Obligation) Pack() PackedObligation {
	buffer := appendBytes(nil, obligation.Id[:])
	buffer = appendUint64(buffer, obligation.Currency.Uint64())
	buffer = appendUint64(buffer, obligation.Amount)
	buffer = appendUint64(buffer, obligation.Paid)
	buffer = appendAccount(buffer, obligation.Lender)
	buffer = appendAccount(buffer, obligation.Borrower)
	return PackedObligation(buffer)
}

// Unpack - turn a stored byte slice back into an obligation
func (record PackedObligation) Unpack(testnet bool) (obligation *Obligation, e error) {

	defer func() {
		if r := recover(); nil != r {
			obligation = nil
			e = fault.NotObligationPack
		}
	}()

	// id
	idLength, idOffset := util.ClippedVarint64(record, 1, 8192)
	if 0 == idOffset {
		return nil, fault.NotObligationPack
	}
	n := idOffset
	var id digest.Digest
	err := digest.FromBytes(&id, record[n:n+idLength])
	if nil != err {
		return nil, err
	}
	n += idLength

	// currency
	c, currencyLength := util.FromVarint64(record[n:])
	if 0 == currencyLength {
		return nil, fault.NotObligationPack
	}
	n += currencyLength
	cur, err := currency.FromUint64(c)
	if nil != err {
		return nil, err
	}

	// amount
	amount, amountLength := util.FromVarint64(record[n:])
	if 0 == amountLength {
		return nil, fault.NotObligationPack
	}
	n += amountLength

	// paid
	paid, paidLength := util.FromVarint64(record[n:])
	if 0 == paidLength {
		return nil, fault.NotObligationPack
	}
	n += paidLength

	// lender public key
	lenderLength, lenderOffset := util.ClippedVarint64(record[n:], 1, 8192)
	if 0 == lenderOffset {
		return nil, fault.NotObligationPack
	}
	n += lenderOffset
	lender, err := account.AccountFromBytes(record[n : n+lenderLength])
	if nil != err {
		return nil, err
	}
	if lender.IsTesting() != testnet {
		return nil, fault.WrongNetworkForPublicKey
	}
	n += lenderLength

	// borrower public key
	borrowerLength, borrowerOffset := util.ClippedVarint64(record[n:], 1, 8192)
	if 0 == borrowerOffset {
		return nil, fault.NotObligationPack
	}
	n += borrowerOffset
	borrower, err := account.AccountFromBytes(record[n : n+borrowerLength])
	if nil != err {
		return nil, err
	}
	if borrower.IsTesting() != testnet {
		return nil, fault.WrongNetworkForPublicKey
	}
	n += borrowerLength

	if n != len(record) {
		return nil, fault.NotObligationPack
	}

	return &Obligation{
		Id:       id,
		Currency: cur,
		Amount:   amount,
		Paid:     paid,
		Lender:   lender,
		Borrower: borrower,
	}, nil
}
