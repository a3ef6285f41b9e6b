// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package responder

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/background"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/notary"
)

// Configuration - listener addresses for the responder
//
// announce is the externally visible form of listen and is what
// counterparties will dial
type Configuration struct {
	Listen   []string `gluamapper:"listen" json:"listen"`
	Announce []string `gluamapper:"announce" json:"announce"`
}

// globals for background processes
type responderData struct {
	sync.RWMutex

	log *logger.L

	lstn listener

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData responderData

// Initialise - start answering proposals
//
// privateKey and publicKey are this node's own transport keys;
// identity endorses the proposals this node accepts
func Initialise(configuration *Configuration, privateKey []byte, publicKey []byte, version string, identity *account.PrivateKey) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("responder")
	globalData.log.Info("starting…")

	if nil == identity {
		return fault.InvalidPrivateKey
	}

	h := newHandler(logger.New("proposal"), identity, notary.Account())

	err := globalData.lstn.initialise(privateKey, publicKey, configuration.Listen, version, h)
	if nil != err {
		return err
	}

	// all data initialised
	globalData.initialised = true

	// start background processes
	globalData.log.Info("start background…")

	processes := background.Processes{
		&globalData.lstn,
	}

	globalData.background = background.Start(processes, nil)

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// stop background
	globalData.background.Stop()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
