// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runChangePassword(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	// the old password unlocks the stored seed
	name, owner, err := checkOwnerWithPasswordPrompt(c.GlobalString("identity"), m.config, c)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "identity: %s\n", name)
	}

	newPassword, err := promptNewPassword()
	if nil != err {
		return err
	}

	err = m.config.UpdateIdentity(name, owner.Seed, newPassword)
	if nil != err {
		return err
	}

	// require configuration update
	m.save = true
	return nil
}
