// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/obligationd/account"
)

// create an identity with a freshly generated seed
//
// the seed is encrypted with the prompted password and stored in the
// configuration file; the account is printed so it can be passed to
// counterparties
func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkName(c.GlobalString("identity"))
	if nil != err {
		return err
	}

	description, err := checkDescription(c.String("description"))
	if nil != err {
		return err
	}

	seed, err := account.NewBase58EncodedSeedV2(m.testnet)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "identity: %s\n", name)
		fmt.Fprintf(m.e, "description: %s\n", description)
	}

	password := c.GlobalString("password")
	if "" == password {
		password, err = promptNewPassword()
		if nil != err {
			return err
		}
	}

	err = m.config.AddIdentity(name, description, seed, password)
	if nil != err {
		return err
	}

	// the first identity becomes the default
	if "" == m.config.DefaultIdentity {
		m.config.DefaultIdentity = name
	}

	// require configuration update
	m.save = true

	acc, err := m.config.Account(name)
	if nil != err {
		return err
	}

	out := struct {
		Identity string `json:"identity"`
		Account  string `json:"account"`
	}{
		Identity: name,
		Account:  acc.String(),
	}
	printJson(m.w, out)

	return nil
}
