// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package obligationrecord

import (
	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/fault"
)

// Validate - apply a transition to its input state
//
// pure function: the same transition and input always produce the
// same output or the same error; an issue takes no input and settles
// and transfers take exactly one
//
// the returned obligation is a new value, the input is never modified
func Validate(transition Transition, input *Obligation) (*Obligation, error) {

	switch tr := transition.(type) {

	case *ObligationIssue:
		if nil != input {
			return nil, fault.IssueMustHaveNoInputs
		}
		result, err := Create(tr.Currency, tr.Amount, tr.Lender, tr.Borrower)
		if nil != err {
			return nil, err
		}

		// record id is the transition id of the issue
		base, err := tr.PackBase()
		if nil != err {
			return nil, err
		}
		result.Id = base.MakeId()
		return result, nil

	case *ObligationSettle:
		if nil == input {
			return nil, fault.TransitionMustHaveOneInput
		}
		return input.ApplyPayment(tr.Payment)

	case *ObligationTransfer:
		if nil == input {
			return nil, fault.TransitionMustHaveOneInput
		}
		return input.ReassignLender(tr.NewLender)

	default:
		return nil, fault.IntentNotRecognised
	}
}

// RequiredSigners - the accounts whose endorsements a transition needs
//
// order is canonical: it fixes the order of the endorsements in the
// packed record
//
//   issue:    lender, borrower
//   settle:   input lender, input borrower
//   transfer: input lender, input borrower, new lender
func RequiredSigners(transition Transition, input *Obligation) ([]*account.Account, error) {

	switch tr := transition.(type) {

	case *ObligationIssue:
		if nil == tr.Lender || nil == tr.Borrower {
			return nil, fault.InvalidParticipant
		}
		return []*account.Account{tr.Lender, tr.Borrower}, nil

	case *ObligationSettle:
		if nil == input {
			return nil, fault.TransitionMustHaveOneInput
		}
		return []*account.Account{input.Lender, input.Borrower}, nil

	case *ObligationTransfer:
		if nil == input {
			return nil, fault.TransitionMustHaveOneInput
		}
		if nil == tr.NewLender {
			return nil, fault.InvalidParticipant
		}
		return []*account.Account{input.Lender, input.Borrower, tr.NewLender}, nil

	default:
		return nil, fault.IntentNotRecognised
	}
}

// CheckEndorsements - verify every endorsement on a transition
//
// each endorsement must verify over the base form under the matching
// required signer; all present or the transition is invalid, there is
// no partial acceptance
func CheckEndorsements(transition Transition, input *Obligation) error {

	signers, err := RequiredSigners(transition, input)
	if nil != err {
		return err
	}

	endorsements := transition.GetEndorsements()
	if len(signers) != len(endorsements) {
		return fault.IncorrectEndorsementCount
	}

	base, err := transition.PackBase()
	if nil != err {
		return err
	}

	for i, signer := range signers {
		if nil != signer.CheckSignature(base, endorsements[i]) {
			return fault.EndorsementNotVerified
		}
	}
	return nil
}
