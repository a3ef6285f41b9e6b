// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notary

import (
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/mode"
	"github.com/bitmark-inc/obligationd/util"
	"github.com/bitmark-inc/obligationd/zmqutil"
)

// Configuration - connection to the notary daemon
//
// public_key is the daemon's transport key, account is the identity
// whose signature makes a transition final; timeout is a duration
// string, zero values select the defaults
type Configuration struct {
	Connect   string `gluamapper:"connect" json:"connect"`
	PublicKey string `gluamapper:"public_key" json:"public_key"`
	Account   string `gluamapper:"account" json:"account"`
	Retries   int    `gluamapper:"retries" json:"retries"`
	Timeout   string `gluamapper:"timeout" json:"timeout"`
}

// defaults for optional configuration values
const (
	defaultRetries = 3
	defaultTimeout = 30 * time.Second
)

// globals for the client connection
//
// the REQ socket is not safe for concurrent use so the mutex also
// serialises submissions
type notaryData struct {
	sync.Mutex

	log     *logger.L
	client  *zmqutil.Client
	account *account.Account
	retries int

	// set once during initialise
	initialised bool
}

// global data
var globalData notaryData

// Initialise - connect to the notary daemon
//
// privateKey and publicKey are this node's own transport keys
func Initialise(configuration *Configuration, privateKey []byte, publicKey []byte) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("notary")
	globalData.log = log
	log.Info("initialising…")

	notaryAccount, err := account.AccountFromBase58(configuration.Account)
	if nil != err {
		log.Errorf("account: %q  error: %s", configuration.Account, err)
		return err
	}
	if notaryAccount.IsTesting() != mode.IsTesting() {
		log.Errorf("account: %q is for the wrong network", configuration.Account)
		return fault.WrongNetworkForPublicKey
	}

	serverPublicKey, err := zmqutil.ReadPublicKey(configuration.PublicKey)
	if nil != err {
		log.Errorf("public key: %q  error: %s", configuration.PublicKey, err)
		return err
	}

	conn, err := util.NewConnection(configuration.Connect)
	if nil != err {
		log.Errorf("connect: %q  error: %s", configuration.Connect, err)
		return err
	}

	timeout := defaultTimeout
	if "" != configuration.Timeout {
		timeout, err = time.ParseDuration(configuration.Timeout)
		if nil != err {
			log.Errorf("timeout: %q  error: %s", configuration.Timeout, err)
			return err
		}
	}

	retries := configuration.Retries
	if retries <= 0 {
		retries = defaultRetries
	}

	client, err := zmqutil.NewClient(zmq.REQ, privateKey, publicKey, timeout)
	if nil != err {
		return err
	}

	err = client.Connect(conn, serverPublicKey, mode.NetworkName())
	if nil != err {
		client.Close()
		log.Errorf("connect: %q  error: %s", configuration.Connect, err)
		return err
	}
	log.Infof("notary: %s", client)

	globalData.client = client
	globalData.account = notaryAccount
	globalData.retries = retries

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - drop the notary connection
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")

	globalData.client.Close()
	globalData.client = nil
	globalData.account = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Account - the identity whose signature finalises transitions
//
// nil before initialise
func Account() *account.Account {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return nil
	}
	return globalData.account
}
