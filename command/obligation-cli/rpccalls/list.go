// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/rpc/obligation"
)

// ListData - data for a list request
type ListData struct {
	Owner *account.Account
	Start uint64
	Count int
}

// GetList - obtain the obligations an account participates in
func (client *Client) GetList(listConfig *ListData) (*obligation.ListReply, error) {

	listArgs := obligation.ListArguments{
		Owner: listConfig.Owner,
		Start: listConfig.Start,
		Count: listConfig.Count,
	}

	client.printJson("List Request", listArgs)

	reply := &obligation.ListReply{}
	err := client.client.Call("Obligation.List", listArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("List Reply", reply)

	return reply, nil
}
