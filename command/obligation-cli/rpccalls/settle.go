// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/rpc/obligation"
)

// SettleData - data for a settle request
type SettleData struct {
	RecordId string
	Payment  uint64
}

// Settle - propose a payment against an obligation and wait for its confirmation
func (client *Client) Settle(settleConfig *SettleData) (*obligation.TransitionReply, error) {

	var recordId digest.Digest
	err := recordId.UnmarshalText([]byte(settleConfig.RecordId))
	if nil != err {
		return nil, err
	}

	settleArgs := obligation.SettleArguments{
		RecordId: recordId,
		Payment:  settleConfig.Payment,
	}

	client.printJson("Settle Request", settleArgs)

	var reply obligation.TransitionReply
	err = client.client.Call("Obligation.Settle", settleArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Settle Reply", reply)

	return &reply, nil
}
