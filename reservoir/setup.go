// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/background"
	"github.com/bitmark-inc/obligationd/constants"
	"github.com/bitmark-inc/obligationd/digest"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/obligationrecord"
)

// one in-flight transition
type transitionData struct {
	txId           digest.Digest
	transition     obligationrecord.Transition
	packedBase     obligationrecord.Packed
	obligation     *obligationrecord.Obligation // the version this transition produces
	signers        []*account.Account           // canonical endorsement order
	previousLender *account.Account             // only for transfers
	links          []digest.Digest              // consumed versions
	expiresAt      time.Time
}

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	enabled     bool
	initialised bool
	filename    string
	lifetime    time.Duration

	// in-flight transitions indexed by transition id
	pendingTransitions map[digest.Digest]*transitionData

	// consumed record version → transition id holding the lock
	inProgressLinks map[digest.Digest]digest.Digest

	cleaner    cleaner
	background *background.T
}

// global storage
var globalData globalDataType

// Reservoir - enquiry interface for the rpc layer
type Reservoir interface {
	TransitionStatus(txId digest.Digest) TransitionState
	ReadCounters() (int, int)
}

// Get - return the reservoir enquiry access
func Get() Reservoir {
	return &globalData
}

// TransitionStatus - method form of the status enquiry
func (g *globalDataType) TransitionStatus(txId digest.Digest) TransitionState {
	return TransitionStatus(txId)
}

// ReadCounters - method form of the counter enquiry
func (g *globalDataType) ReadCounters() (int, int) {
	return ReadCounters()
}

// Initialise - create the pending transition pool
//
// the cache file is used by SaveToFile and LoadFromFile; a
// non-positive lifetime selects the default expiry
func Initialise(cacheFile string, lifetime time.Duration) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("reservoir")
	globalData.log.Info("starting…")

	if lifetime <= 0 {
		lifetime = constants.ReservoirTimeout
	}

	globalData.filename = cacheFile
	globalData.lifetime = lifetime
	globalData.pendingTransitions = make(map[digest.Digest]*transitionData)
	globalData.inProgressLinks = make(map[digest.Digest]digest.Digest)

	globalData.enabled = true
	globalData.initialised = true

	// start background processes
	globalData.log.Info("start background…")

	processes := background.Processes{
		&globalData.cleaner,
	}

	globalData.background = background.Start(processes, &globalData)

	return nil
}

// Finalise - save in-flight state and stop background processes
func Finalise() error {

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// attempts survive a restart through the cache file
	err := saveToFile()
	if nil != err {
		globalData.log.Errorf("save cache error: %s", err)
	}

	// stop background
	globalData.background.Stop()

	globalData.Lock()
	globalData.enabled = false
	globalData.initialised = false
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Enable - allow expiry to run
func Enable() {
	globalData.Lock()
	globalData.enabled = true
	globalData.Unlock()
}

// Disable - suspend expiry, used while restoring from the cache file
func Disable() {
	globalData.Lock()
	globalData.enabled = false
	globalData.Unlock()
}

// ReadCounters - pending transition count and held lock count
func ReadCounters() (int, int) {
	globalData.RLock()
	defer globalData.RUnlock()
	return len(globalData.pendingTransitions), len(globalData.inProgressLinks)
}

// Abandon - drop a pending transition and release its locks
//
// an abandoned attempt has no ledger effect; abandoning an unknown id
// does nothing
func Abandon(txId digest.Digest) {
	globalData.Lock()
	internalDelete(txId)
	globalData.Unlock()
}

// hold lock before calling
// remove a pending transition and free any version locks it holds
func internalDelete(txId digest.Digest) {
	entry, ok := globalData.pendingTransitions[txId]
	if !ok {
		return
	}
	for _, link := range entry.links {
		if holder, ok := globalData.inProgressLinks[link]; ok && holder == txId {
			delete(globalData.inProgressLinks, link)
		}
	}
	delete(globalData.pendingTransitions, txId)
}
