// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/currency"
	"github.com/bitmark-inc/obligationd/rpc/obligation"
)

// IssueData - data for an issue request
type IssueData struct {
	Currency currency.Currency
	Amount   uint64
	Lender   *account.Account
	Borrower *account.Account
	Nonce    uint64
}

// Issue - propose a new obligation and wait for its confirmation
func (client *Client) Issue(issueConfig *IssueData) (*obligation.TransitionReply, error) {

	issueArgs := obligation.IssueArguments{
		Currency: issueConfig.Currency,
		Amount:   issueConfig.Amount,
		Lender:   issueConfig.Lender,
		Borrower: issueConfig.Borrower,
		Nonce:    issueConfig.Nonce,
	}

	client.printJson("Issue Request", issueArgs)

	var reply obligation.TransitionReply
	err := client.client.Call("Obligation.Issue", issueArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Issue Reply", reply)

	return &reply, nil
}
