// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notary

import (
	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/fault"
)

// VerifyConfirmation - check that a confirmation covers a transition id
//
// the confirmation is an Ed25519 signature by the notary account over
// the raw transition id, so any party holding that account can check a
// commit without contacting the notary
func VerifyConfirmation(notary *account.Account, txId digest.Digest, confirmation []byte) error {
	if nil == notary {
		return fault.ConfirmationNotVerified
	}
	err := notary.CheckSignature(txId[:], account.Signature(confirmation))
	if nil != err {
		return fault.ConfirmationNotVerified
	}
	return nil
}
