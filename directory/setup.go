// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package directory

import (
	"path"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/background"
	"github.com/bitmark-inc/obligationd/directory/domain"
	"github.com/bitmark-inc/obligationd/directory/observer"
	"github.com/bitmark-inc/obligationd/directory/party"
	"github.com/bitmark-inc/obligationd/directory/rpc"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/messagebus"
	"github.com/bitmark-inc/obligationd/util"
)

// file for the announcement cache
const cacheFile = "parties.cache"

// globals for background processes
type directoryData struct {
	sync.RWMutex // to allow locking

	log *logger.L

	parties party.Party
	rpcs    rpc.RPC

	cacheFile string

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData directoryData

// Directory - the subset of the directory the rpc layer uses
type Directory interface {
	SetRPC(fingerprint util.FingerprintBytes, rpcs []byte) error
	FetchParties(start uint64, count int) ([]party.Entry, uint64, error)
	FetchRPCs(start uint64, count int) ([]rpc.Entry, uint64, error)
}

// Get - return the directory access
func Get() Directory {
	return &globalData
}

// SetRPC - method form for interface callers
func (d *directoryData) SetRPC(fingerprint util.FingerprintBytes, rpcs []byte) error {
	return SetRPC(fingerprint, rpcs)
}

// FetchParties - method form for interface callers
func (d *directoryData) FetchParties(start uint64, count int) ([]party.Entry, uint64, error) {
	return FetchParties(start, count)
}

// FetchRPCs - method form for interface callers
func (d *directoryData) FetchRPCs(start uint64, count int) ([]rpc.Entry, uint64, error) {
	return FetchRPCs(start, count)
}

// Initialise - set up the party directory
//
// domainName is a fully qualified domain carrying party TXT records,
// or an empty string for none
//
// partiesFile is the operator maintained static entries, or an empty
// string for none, changes to the file are picked up while running
//
// f resolves TXT records and is net.LookupTXT outside of tests
func Initialise(domainName string, cacheDirectory string, partiesFile string, f func(string) ([]string, error)) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("directory")
	globalData.log.Info("starting…")

	globalData.parties = party.New()
	globalData.rpcs = rpc.New()
	globalData.cacheFile = path.Join(cacheDirectory, cacheFile)

	// previously announced parties, these expire unless refreshed
	globalData.log.Info("start restoring party data…")
	err := party.Restore(globalData.cacheFile, globalData.parties)
	if nil != err {
		globalData.log.Errorf("fail to restore party data: %s", err.Error())
	}

	// static entries override anything restored for the same account
	if "" != partiesFile {
		n, err := party.LoadFile(partiesFile, globalData.parties)
		if nil != err {
			return err
		}
		globalData.log.Infof("loaded: %d parties from: %q", n, partiesFile)
	}

	processes := background.Processes{}

	if "" != domainName {
		fetcher, err := domain.New(logger.New("directory-domain"), domainName, f)
		if nil != err {
			return err
		}
		processes = append(processes, fetcher)
	}

	if "" != partiesFile {
		w, err := newWatcher(logger.New("directory-watcher"), partiesFile)
		if nil != err {
			return err
		}
		processes = append(processes, w)
	}

	updaterLog := logger.New("directory-updater")
	observers := []observer.Observer{
		observer.NewAddparty(updaterLog, globalData.parties),
		observer.NewAddrpc(updaterLog, globalData.rpcs),
		observer.NewUpdatetime(updaterLog, globalData.parties),
	}
	if "" != partiesFile {
		observers = append(observers, observer.NewReload(updaterLog, partiesFile, globalData.parties))
	}

	processes = append(processes, newUpdater(updaterLog, globalData.parties, globalData.rpcs, globalData.cacheFile, observers))

	// all data initialised
	globalData.initialised = true

	// start background processes
	globalData.log.Info("start background…")
	globalData.background = background.Start(processes, messagebus.Bus.Directory.Chan())

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// release message bus
	messagebus.Bus.Directory.Release()

	// stop background
	globalData.background.Stop()

	globalData.log.Info("start backing up party data…")
	err := party.Backup(globalData.cacheFile, globalData.parties.Tree())
	if nil != err {
		globalData.log.Errorf("fail to backup party data: %s", err.Error())
	}

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// SetSelf - record this node's own party announcement
//
// static data, never expires
func SetSelf(accountBytes []byte, listeners []byte, sessionKey []byte) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	return globalData.parties.SetSelf(accountBytes, listeners, sessionKey)
}

// SetRPC - record this node's own rpc listeners
func SetRPC(fingerprint util.FingerprintBytes, rpcs []byte) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	return globalData.rpcs.Set(fingerprint, rpcs)
}

// Lookup - resolve a party account to its directory entry
func Lookup(acc *account.Account) (*party.Data, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	d := globalData.parties.Lookup(acc)
	if nil == d {
		return nil, fault.PartyNotFound
	}
	return d, nil
}

// FetchParties - paginated listing of known parties
func FetchParties(start uint64, count int) ([]party.Entry, uint64, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, 0, fault.NotInitialised
	}
	return globalData.parties.Fetch(start, count)
}

// FetchRPCs - paginated listing of rpc listeners
func FetchRPCs(start uint64, count int) ([]rpc.Entry, uint64, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, 0, fault.NotInitialised
	}
	return globalData.rpcs.Fetch(start, count)
}
