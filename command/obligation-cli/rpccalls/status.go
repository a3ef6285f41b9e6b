// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/rpc/obligation"
)

// StatusData - request data for transition status
type StatusData struct {
	TxId string
}

// GetStatus - perform a status request
func (client *Client) GetStatus(statusConfig *StatusData) (*obligation.StatusReply, error) {

	var txId digest.Digest
	err := txId.UnmarshalText([]byte(statusConfig.TxId))
	if nil != err {
		return nil, err
	}

	statusArgs := obligation.StatusArguments{
		TxId: txId,
	}

	client.printJson("Status Request", statusArgs)

	var reply obligation.StatusReply
	err = client.client.Call("Obligation.Status", statusArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Status Reply", reply)

	return &reply, nil
}
