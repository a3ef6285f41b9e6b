// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/obligationd/command/obligation-cli/configuration"
)

type metadata struct {
	file             string
	config           *configuration.Configuration
	save             bool
	testnet          bool
	verbose          bool
	connectionOffset int
	e                io.Writer
	w                io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "obligation-cli"
	// app.Usage = ""
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: "",
			Usage: " connect to obligation `NETWORK` [live|testing|local]",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
		cli.StringFlag{
			Name:  "password, p",
			Value: "",
			Usage: " identity `PASSWORD`",
		},
		cli.StringFlag{
			Name:  "use-agent, u",
			Value: "",
			Usage: " executable program that returns the password `EXE`",
		},
		cli.BoolFlag{
			Name:  "zero-agent-cache, z",
			Usage: " force re-entry of agent password",
		},
		cli.IntFlag{
			Name:  "connection",
			Value: 0,
			Usage: " connection offset into the connections list `N`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "setup",
			Usage:     "initialise obligation-cli configuration",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, c",
					Value: "",
					Usage: "*node host/IP and port, `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.BoolFlag{
					Name:  "new, n",
					Usage: "+generate a new seed",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: "+recover identity from existing `SEED`",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "generate",
			Usage:     "create a new password encrypted identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
			},
			Action: runGenerate,
		},
		{
			Name:      "add",
			Usage:     "add an identity to the config file",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: "+existing seed `SEED`",
				},
				cli.BoolFlag{
					Name:  "new, n",
					Usage: "+generate a new seed",
				},
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "+receive-only `ACCOUNT`",
				},
			},
			Action: runAdd,
		},
		{
			Name:      "export-identity",
			Usage:     "write the decrypted seed as a node signing key file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*signing key `FILE` to create",
				},
			},
			Action: runExportIdentity,
		},
		{
			Name:      "sign",
			Usage:     "sign a file with an identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*`FILE` of data to sign",
				},
			},
			Action: runSign,
		},
		{
			Name:      "verify",
			Usage:     "verify a file signature",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*`FILE` of signed data",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*identity name or `ACCOUNT` of the signer",
				},
				cli.StringFlag{
					Name:  "signature, s",
					Value: "",
					Usage: "*hex `SIGNATURE` to check",
				},
			},
			Action: runVerify,
		},
		{
			Name:      "issue",
			Usage:     "issue a new obligation record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "currency, c",
					Value: "",
					Usage: "*currency `SYMBOL` for the amount",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*amount owed in minor units `NUMBER`",
				},
				cli.StringFlag{
					Name:  "borrower, b",
					Value: "",
					Usage: "*identity name or `ACCOUNT` of the borrower",
				},
				cli.Uint64Flag{
					Name:  "nonce, o",
					Value: 0,
					Usage: " issue nonce `NUMBER` (random if omitted)",
				},
			},
			Action: runIssue,
		},
		{
			Name:      "settle",
			Usage:     "record a payment against an obligation",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "record, r",
					Value: "",
					Usage: "*record id of the obligation `RECORD`",
				},
				cli.Uint64Flag{
					Name:  "payment, p",
					Value: 0,
					Usage: "*payment in minor units `NUMBER`",
				},
			},
			Action: runSettle,
		},
		{
			Name:      "transfer",
			Usage:     "transfer an obligation to a new lender",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "record, r",
					Value: "",
					Usage: "*record id of the obligation `RECORD`",
				},
				cli.StringFlag{
					Name:  "receiver, t",
					Value: "",
					Usage: "*identity name or `ACCOUNT` of the new lender",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "status",
			Usage:     "display the status of a transition",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "txid, t",
					Value: "",
					Usage: "*transition id to check status `TXID`",
				},
			},
			Action: runStatus,
		},
		{
			Name:      "provenance",
			Usage:     "list provenance of an obligation",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "txid, t",
					Value: "",
					Usage: "*transition id to list provenance `TXID`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runProvenance,
		},
		{
			Name:      "list",
			Usage:     "list obligations an account participates in",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name or `ACCOUNT` default is global identity",
				},
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " start point `COUNT`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runList,
		},
		{
			Name:      "parties",
			Usage:     "list parties in the directory",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " start point `COUNT`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runParties,
		},
		{
			Name:   "info",
			Usage:  "display node status",
			Action: runInfo,
		},
		{
			Name:   "password",
			Usage:  "change an identity's password",
			Action: runChangePassword,
		},
		{
			Name:  "version",
			Usage: "display obligation-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command {
			return nil
		}

		// only want one of these
		network := c.GlobalString("network")
		switch network {
		case "live", "production":
			network = "live"
		case "testing", "test":
			network = "testing"
		case "local", "regression":
			network = "local"
		default:
			return fmt.Errorf("network: %q can only be live/testing/local", network)
		}

		p := os.Getenv("XDG_CONFIG_HOME")
		if "" == p {
			return fmt.Errorf("XDG_CONFIG_HOME environment is not set")
		}
		dir, err := checkFileExists(p)
		if nil != err {
			return err
		}
		if !dir {
			return fmt.Errorf("not a directory: %q", p)
		}
		file := path.Join(p, app.Name, network+"-"+app.Name+".json")

		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
		}

		if "setup" == command {
			// do not run setup if there is an existing configuration
			if _, err := checkFileExists(file); nil == err {
				return fmt.Errorf("not overwriting existing configuration: %q", file)
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				save:    false,
				testnet: network != "live",
				verbose: verbose,
				e:       e,
				w:       w,
			}

		} else {

			if verbose {
				fmt.Fprintf(e, "reading config file: %s\n", file)
			}

			configuration, err := configuration.Load(file)
			if nil != err {
				return err
			}

			offset := c.GlobalInt("connection")
			if offset < 0 || offset >= len(configuration.Connections) {
				return fmt.Errorf("connection: %d exceeds: %d entries", offset, len(configuration.Connections))
			}

			c.App.Metadata["config"] = &metadata{
				file:             file,
				config:           configuration,
				testnet:          configuration.TestNet,
				save:             false,
				verbose:          verbose,
				connectionOffset: offset,
				e:                e,
				w:                w,
			}
		}

		return nil
	}

	// update the configuration if required
	app.After = func(c *cli.Context) error {
		e := c.App.ErrWriter
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.save {
			if c.GlobalBool("verbose") {
				fmt.Fprintf(e, "updating config file: %s\n", m.file)
			}
			err := configuration.Save(m.file, m.config)
			if nil != err {
				return err
			}
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
