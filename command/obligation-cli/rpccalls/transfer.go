// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/rpc/obligation"
)

// TransferData - data for a transfer request
type TransferData struct {
	RecordId  string
	NewLender *account.Account
}

// Transfer - propose a lender change and wait for its confirmation
func (client *Client) Transfer(transferConfig *TransferData) (*obligation.TransitionReply, error) {

	var recordId digest.Digest
	err := recordId.UnmarshalText([]byte(transferConfig.RecordId))
	if nil != err {
		return nil, err
	}

	transferArgs := obligation.TransferArguments{
		RecordId:  recordId,
		NewLender: transferConfig.NewLender,
	}

	client.printJson("Transfer Request", transferArgs)

	var reply obligation.TransitionReply
	err = client.client.Call("Obligation.Transfer", transferArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Transfer Reply", reply)

	return &reply, nil
}
