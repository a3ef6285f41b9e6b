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

func runIssue(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	cur, err := checkCurrency(c.String("currency"))
	if err != nil {
		return err
	}

	amount, err := checkAmount(c.Uint64("amount"))
	if err != nil {
		return err
	}

	to, borrower, err := checkRecipient(c, "borrower", m.config)
	if err != nil {
		return err
	}

	// the lender is the current identity
	from, lender, err := checkAccountWithDefault(c.GlobalString("identity"), m.config, c)
	if err != nil {
		return err
	}

	nonce := c.Uint64("nonce")
	if nonce == 0 {
		nonce, err = randomNonce()
		if err != nil {
			return err
		}
	}

	if m.verbose {
		fmt.Fprintf(m.e, "currency: %s\n", cur)
		fmt.Fprintf(m.e, "amount: %d\n", amount)
		fmt.Fprintf(m.e, "lender: %s\n", from)
		fmt.Fprintf(m.e, "borrower: %s\n", to)
		fmt.Fprintf(m.e, "nonce: %d\n", nonce)
	}

	client, err := rpccalls.NewClient(m.testnet, m.config.Connections[m.connectionOffset], m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	issueConfig := &rpccalls.IssueData{
		Currency: cur,
		Amount:   amount,
		Lender:   lender,
		Borrower: borrower,
		Nonce:    nonce,
	}

	response, err := client.Issue(issueConfig)
	if err != nil {
		return err
	}

	printJson(m.w, response)

	return nil
}
