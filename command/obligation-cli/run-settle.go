// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/obligationd/command/obligation-cli/rpccalls"
)

func runSettle(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	recordId, err := checkRecordId(c.String("record"))
	if err != nil {
		return err
	}

	payment, err := checkAmount(c.Uint64("payment"))
	if err != nil {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "record: %s\n", recordId)
		fmt.Fprintf(m.e, "payment: %d\n", payment)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connections[m.connectionOffset], m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	settleConfig := &rpccalls.SettleData{
		RecordId: recordId,
		Payment:  payment,
	}

	response, err := client.Settle(settleConfig)
	if err != nil {
		return err
	}

	printJson(m.w, response)

	return nil
}
