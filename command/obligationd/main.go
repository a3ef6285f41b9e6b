// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/coordinator"
	"github.com/bitmark-inc/obligationd/directory"
	"github.com/bitmark-inc/obligationd/mode"
	"github.com/bitmark-inc/obligationd/network"
	"github.com/bitmark-inc/obligationd/notary"
	"github.com/bitmark-inc/obligationd/ownership"
	"github.com/bitmark-inc/obligationd/reservoir"
	"github.com/bitmark-inc/obligationd/responder"
	"github.com/bitmark-inc/obligationd/rpc"
	"github.com/bitmark-inc/obligationd/storage"
	"github.com/bitmark-inc/obligationd/util"
	"github.com/bitmark-inc/obligationd/zmqutil"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// command processing - need lock so do not affect an already running process
	// these commands process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Network)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// general info
	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// holder indexes over the settled records
	ownership.Initialise(storage.Pool.OwnerList)

	// start the reservoir (in-flight transition cache)
	log.Info("initialise reservoir")
	err = reservoir.Initialise(theConfiguration.ReservoirFile, 0)
	if nil != err {
		log.Criticalf("reservoir initialise error: %s", err)
		exitwithstatus.Message("reservoir initialise error: %s", err)
	}
	defer reservoir.Finalise()

	err = reservoir.LoadFromFile()
	if nil != err && !os.IsNotExist(err) {
		log.Criticalf("reservoir reload error: %s", err)
		exitwithstatus.Message("reservoir reload error: %s", err)
	}

	// the party directory needs to be before responder and rpc initialisation
	log.Info("initialise directory")
	partiesDomain := "" // initially none
	switch theConfiguration.Parties {
	case "":
		log.Critical("parties cannot be blank choose from: none, network or sub.domain.tld")
		exitwithstatus.Message("parties cannot be blank choose from: none, network or sub.domain.tld")
	case "none":
		partiesDomain = "" // domain fetch disabled
	case "network":
		switch theConfiguration.Network {
		case network.Local:
			partiesDomain = "parties.localdomain"
		case network.Testing:
			partiesDomain = "parties.test.bitmark.com"
		case network.Live:
			partiesDomain = "parties.live.bitmark.com"
		default:
			log.Criticalf("unexpected network name: %q", theConfiguration.Network)
			exitwithstatus.Message("unexpected network name: %q", theConfiguration.Network)
		}
	default:
		// domain names are complex to validate so just rely on
		// trying to fetch the TXT records for validation
		partiesDomain = theConfiguration.Parties // just assume it is a domain name
	}
	err = directory.Initialise(partiesDomain, theConfiguration.CacheDirectory, theConfiguration.PartiesFile, net.LookupTXT)
	if nil != err {
		log.Criticalf("directory initialise error: %s", err)
		exitwithstatus.Message("directory initialise error: %s", err)
	}
	defer directory.Finalise()

	// server keys
	if "" == theConfiguration.PublicKey || "" == theConfiguration.PrivateKey {
		exitwithstatus.Message("%s: both the Public and Private keys must be specified", program)
	}
	publicKey, err := zmqutil.ReadPublicKey(theConfiguration.PublicKey)
	if nil != err {
		log.Criticalf("read error on: %s  error: %s", theConfiguration.PublicKey, err)
		exitwithstatus.Message("%s: failed reading Public Key: %q  error: %s", program, theConfiguration.PublicKey, err)
	}
	privateKey, err := zmqutil.ReadPrivateKey(theConfiguration.PrivateKey)
	if nil != err {
		log.Criticalf("read error on: %s  error: %s", theConfiguration.PrivateKey, err)
		exitwithstatus.Message("%s: failed reading Private Key: %q  error: %s", program, theConfiguration.PrivateKey, err)
	}
	log.Tracef("public key:  %x", publicKey)

	// the identity account endorsing every transition this node takes part in
	signingKey, err := readSigningKey(theConfiguration.SigningKey)
	if nil != err {
		log.Criticalf("read error on: %s  error: %s", theConfiguration.SigningKey, err)
		exitwithstatus.Message("%s: failed reading signing key: %q  error: %s", program, theConfiguration.SigningKey, err)
	}
	if signingKey.IsTesting() != mode.IsTesting() {
		exitwithstatus.Message("%s: signing key: %q is for the wrong network", program, theConfiguration.SigningKey)
	}
	log.Infof("identity account: %s", signingKey.Account())

	// initialise encryption
	err = zmqutil.StartAuthentication()
	if nil != err {
		log.Criticalf("zmq.AuthStart: error: %s", err)
		exitwithstatus.Message("zmq.AuthStart: error: %s", err)
	}

	// connection to the notary
	log.Info("initialise notary")
	err = notary.Initialise(&theConfiguration.Notary, privateKey, publicKey)
	if nil != err {
		log.Criticalf("notary initialise error: %s", err)
		exitwithstatus.Message("notary initialise error: %s", err)
	}
	defer notary.Finalise()

	// proposal sessions to counterparties
	log.Info("initialise coordinator")
	err = coordinator.Initialise(&theConfiguration.Coordinator, privateKey, publicKey, signingKey)
	if nil != err {
		log.Criticalf("coordinator initialise error: %s", err)
		exitwithstatus.Message("coordinator initialise error: %s", err)
	}
	defer coordinator.Finalise()

	// answer proposals from counterparties
	log.Info("initialise responder")
	err = responder.Initialise(&theConfiguration.Responder, privateKey, publicKey, version, signingKey)
	if nil != err {
		log.Criticalf("responder initialise error: %s", err)
		exitwithstatus.Message("responder initialise error: %s", err)
	}
	defer responder.Finalise()

	// record this node's own directory entry so counterparties can
	// find the responder

	responders := make([]byte, 0, 100)
	for _, address := range theConfiguration.Responder.Announce {
		if "" == address {
			continue
		}
		c, err := util.NewConnection(address)
		if nil != err {
			log.Criticalf("invalid responder announce: %q  error: %s", address, err)
			exitwithstatus.Message("invalid responder announce: %q  error: %s", address, err)
		}
		responders = append(responders, c.Pack()...)
	}
	err = directory.SetSelf(signingKey.Account().Bytes(), responders, publicKey)
	if nil != err {
		log.Criticalf("announce self error: %s", err)
		exitwithstatus.Message("announce self error: %s", err)
	}

	// start up the rpc background processes
	log.Info("initialise rpc")
	err = rpc.Initialise(&theConfiguration.ClientRPC, version, signingKey.Account())
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// now all the data is loaded and the services are up
	// so switch to normal operation
	mode.Set(mode.Normal)

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats()
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}
