// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/zmqutil"
)

const (
	publicKeyFilename  = "notaryd.public"
	privateKeyFilename = "notaryd.private"

	liveSigningKeyFilename = "notaryd.live"
	testSigningKeyFilename = "notaryd.test"
)

// setup command handler
//
// commands that run to create key files; these commands cannot access
// any internal database or states or the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "generate-identity", "id":
		publicKeyFile := getFilenameWithDirectory(arguments, publicKeyFilename)
		privateKeyFile := getFilenameWithDirectory(arguments, privateKeyFilename)
		err := zmqutil.MakeKeyPair(publicKeyFile, privateKeyFile)
		if nil != err {
			fmt.Printf("generate private key: %q and public key: %q error: %s\n", privateKeyFile, publicKeyFile, err)
			exitwithstatus.Exit(1)
		}

		liveSigningKeyFile := getFilenameWithDirectory(arguments, liveSigningKeyFilename)
		testSigningKeyFile := getFilenameWithDirectory(arguments, testSigningKeyFilename)

		if err := makeSigningKey(false, liveSigningKeyFile); nil != err {
			fmt.Printf("generate the signing key for livenet: %q error: %s\n", liveSigningKeyFile, err)
			goto signing_key_failed
		}
		if err := makeSigningKey(true, testSigningKeyFile); nil != err {
			fmt.Printf("generate the signing key for testnet: %q error: %s\n", testSigningKeyFile, err)
			goto signing_key_failed
		}

		fmt.Printf("generated private key: %q and public key: %q\n", privateKeyFile, publicKeyFile)
		fmt.Printf("generated signing keys: %q and %q\n", liveSigningKeyFile, testSigningKeyFile)
		return true

	signing_key_failed:
		_ = os.Remove(publicKeyFile)
		_ = os.Remove(privateKeyFile)
		_ = os.Remove(liveSigningKeyFile)
		_ = os.Remove(testSigningKeyFile)
		exitwithstatus.Exit(1)

	case "start", "run":
		return false // continue processing

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version string\n\n")

		fmt.Printf("  generate-identity [DIR]    (id)     - create private key in: %q\n", "DIR/"+privateKeyFilename)
		fmt.Printf("                                        the public key in:     %q\n", "DIR/"+publicKeyFilename)
		fmt.Printf("                                        and signing keys in:   %q and: %q\n", "DIR/"+liveSigningKeyFilename, "DIR/"+testSigningKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convenience when passing script arguments\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}

// create a file with a new seed for the confirmation account
func makeSigningKey(testnet bool, fileName string) error {
	seed, err := account.NewBase58EncodedSeedV2(testnet)
	if nil != err {
		return err
	}

	data := "SEED:" + seed + "\n"
	if err = ioutil.WriteFile(fileName, []byte(data), 0600); nil != err {
		return fmt.Errorf("error writing signing key file error: %s", err)
	}

	return nil
}
