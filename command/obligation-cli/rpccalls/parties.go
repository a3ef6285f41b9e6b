// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/obligationd/rpc/directory"
)

// PartiesData - data for a directory listing request
type PartiesData struct {
	Start uint64
	Count int
}

// GetParties - obtain a page of the party directory
func (client *Client) GetParties(partiesConfig *PartiesData) (*directory.PartiesReply, error) {

	partiesArgs := directory.PartiesArguments{
		Start: partiesConfig.Start,
		Count: partiesConfig.Count,
	}

	client.printJson("Parties Request", partiesArgs)

	var reply directory.PartiesReply
	err := client.client.Call("Directory.Parties", partiesArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Parties Reply", reply)

	return &reply, nil
}
