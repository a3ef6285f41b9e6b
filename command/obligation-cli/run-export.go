// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/obligationd/fault"
)

// write the decrypted seed to a file in the format the node daemon
// reads as its signing key
func runExportIdentity(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName, err := checkFileName(c.String("file"))
	if nil != err {
		return err
	}

	name, owner, err := checkOwnerWithPasswordPrompt(c.GlobalString("identity"), m.config, c)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "file: %s\n", fileName)
		fmt.Fprintf(m.e, "identity: %s\n", name)
	}

	if _, err := os.Stat(fileName); nil == err {
		return fault.KeyFileAlreadyExists
	}

	data := "SEED:" + owner.Seed + "\n"
	err = ioutil.WriteFile(fileName, []byte(data), 0600)
	if nil != err {
		return err
	}

	out := struct {
		Identity string `json:"identity"`
		Account  string `json:"account"`
		FileName string `json:"file_name"`
	}{
		Identity: name,
		Account:  owner.PrivateKey.Account().String(),
		FileName: fileName,
	}
	printJson(m.w, out)

	return nil
}
