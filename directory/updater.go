// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package directory

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/background"
	"github.com/bitmark-inc/obligationd/directory/observer"
	"github.com/bitmark-inc/obligationd/directory/parameter"
	"github.com/bitmark-inc/obligationd/directory/party"
	"github.com/bitmark-inc/obligationd/directory/rpc"
	"github.com/bitmark-inc/obligationd/messagebus"
)

// consume the directory queue and run the periodic housekeeping
//
// all tree mutation happens on this loop so the observers never race
// each other
type updater struct {
	log       *logger.L
	parties   party.Party
	rpcs      rpc.RPC
	cacheFile string
	observers []observer.Observer
}

func newUpdater(log *logger.L, parties party.Party, rpcs rpc.RPC, cacheFile string, observers []observer.Observer) background.Process {
	log.Info("initialising…")
	return &updater{
		log:       log,
		parties:   parties,
		rpcs:      rpcs,
		cacheFile: cacheFile,
		observers: observers,
	}
}

func (u *updater) Run(args interface{}, shutdown <-chan struct{}) {
	log := u.log

	log.Info("starting…")

	queue := args.(<-chan messagebus.Message)

	delay := time.After(parameter.InitialiseInterval)
loop:
	for {
		log.Debug("waiting…")
		select {
		case <-shutdown:
			break loop

		case item := <-queue:
			log.Debugf("received control: %s  parameters: %x", item.Command, item.Parameters)
			for _, o := range u.observers {
				o.Update(item.Command, item.Parameters)
			}

		case <-delay:
			delay = time.After(parameter.PollingInterval)
			u.process()
		}
	}
}

// expire stale announcements and snapshot the cache
func (u *updater) process() {
	log := u.log

	log.Debug("process starting…")

	u.parties.Expire()
	u.rpcs.Expire()

	if "" != u.cacheFile {
		err := party.Backup(u.cacheFile, u.parties.Tree())
		if nil != err {
			log.Errorf("backup parties to: %q error: %s", u.cacheFile, err)
		}
	}
}
