// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/rpc/obligation"
)

// ProvenanceData - data for a provenance request
type ProvenanceData struct {
	TxId  string
	Count int
}

// GetProvenance - obtain the transition history of an obligation
func (client *Client) GetProvenance(provenanceConfig *ProvenanceData) (*obligation.ProvenanceReply, error) {

	var txId digest.Digest
	err := txId.UnmarshalText([]byte(provenanceConfig.TxId))
	if nil != err {
		return nil, err
	}

	provenanceArgs := obligation.ProvenanceArguments{
		TxId:  txId,
		Count: provenanceConfig.Count,
	}

	client.printJson("Provenance Request", provenanceArgs)

	var reply obligation.ProvenanceReply
	err = client.client.Call("Obligation.Provenance", provenanceArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Provenance Reply", reply)

	return &reply, nil
}
