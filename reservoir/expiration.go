// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"time"

	"github.com/bitmark-inc/logger"
)

const expirationCheckInterval = 5 * time.Minute

type cleaner struct {
	log *logger.L
}

func (c *cleaner) Run(args interface{}, shutdown <-chan struct{}) {

	c.log = logger.New("expiration")

	ticker := time.NewTicker(expirationCheckInterval)
	for {
		select {
		case <-ticker.C:
			c.deleteExpiredItems()
		case <-shutdown:
			ticker.Stop()
			return
		}
	}
}

func (c *cleaner) deleteExpiredItems() {

	globalData.Lock()
	defer globalData.Unlock()

	// suspended while a restore is running
	if !globalData.enabled {
		return
	}

	for txId, item := range globalData.pendingTransitions {
		if expired(item.expiresAt) {
			c.log.Infof("expired transition: %v", txId)
			internalDelete(txId)
		}
	}
}

func expired(exp time.Time) bool {
	return exp.IsZero() || time.Since(exp) > 0
}
