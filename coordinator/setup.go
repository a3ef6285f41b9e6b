// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coordinator

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/constants"
	"github.com/bitmark-inc/obligationd/currency"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/fault"
)

// Configuration - session parameters for proposing transitions
//
// timeout and retry_interval are duration strings; zero values select
// the defaults
type Configuration struct {
	Retries       int    `gluamapper:"retries" json:"retries"`
	Timeout       string `gluamapper:"timeout" json:"timeout"`
	RetryInterval string `gluamapper:"retry_interval" json:"retry_interval"`
}

// default session retry count
const defaultRetries = 2

// globals for the coordinator
type coordinatorData struct {
	sync.RWMutex

	log      *logger.L
	identity *account.PrivateKey

	// transport keys for outgoing sessions
	privateKey []byte
	publicKey  []byte

	timeout       time.Duration
	retryInterval time.Duration
	retries       int

	// set once during initialise
	initialised bool
}

// global data
var globalData coordinatorData

// Coordinator - interface for driving transition attempts
type Coordinator interface {
	Issue(c currency.Currency, amount uint64, lender *account.Account, borrower *account.Account, nonce uint64) (*Outcome, error)
	Settle(recordId digest.Digest, payment uint64) (*Outcome, error)
	Transfer(recordId digest.Digest, newLender *account.Account) (*Outcome, error)
}

// Get - return the coordinator access
func Get() Coordinator {
	return &globalData
}

// Issue - method form for interface callers
func (c *coordinatorData) Issue(cur currency.Currency, amount uint64, lender *account.Account, borrower *account.Account, nonce uint64) (*Outcome, error) {
	return Issue(cur, amount, lender, borrower, nonce)
}

// Settle - method form for interface callers
func (c *coordinatorData) Settle(recordId digest.Digest, payment uint64) (*Outcome, error) {
	return Settle(recordId, payment)
}

// Transfer - method form for interface callers
func (c *coordinatorData) Transfer(recordId digest.Digest, newLender *account.Account) (*Outcome, error) {
	return Transfer(recordId, newLender)
}

// Initialise - prepare for proposing transitions
//
// privateKey and publicKey are this node's own transport keys;
// identity endorses every proposal this node makes
func Initialise(configuration *Configuration, privateKey []byte, publicKey []byte, identity *account.PrivateKey) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("coordinator")
	globalData.log = log
	log.Info("initialising…")

	if nil == identity {
		return fault.InvalidPrivateKey
	}

	timeout := constants.ProposalTimeout
	if "" != configuration.Timeout {
		t, err := time.ParseDuration(configuration.Timeout)
		if nil != err {
			log.Errorf("timeout: %q  error: %s", configuration.Timeout, err)
			return err
		}
		timeout = t
	}

	retryInterval := constants.RetryInterval
	if "" != configuration.RetryInterval {
		t, err := time.ParseDuration(configuration.RetryInterval)
		if nil != err {
			log.Errorf("retry interval: %q  error: %s", configuration.RetryInterval, err)
			return err
		}
		retryInterval = t
	}

	retries := configuration.Retries
	if retries <= 0 {
		retries = defaultRetries
	}

	globalData.identity = identity
	globalData.privateKey = privateKey
	globalData.publicKey = publicKey
	globalData.timeout = timeout
	globalData.retryInterval = retryInterval
	globalData.retries = retries

	log.Infof("identity: %s", identity.Account())

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop proposing transitions
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")

	globalData.identity = nil
	globalData.privateKey = nil
	globalData.publicKey = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
