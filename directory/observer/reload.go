// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package observer

import (
	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/obligationd/directory/party"
)

const reloadCommand = "reload"

type reload struct {
	log      *logger.L
	fileName string
	parties  party.Party
}

// NewReload - create a handler to re-read the local parties file
//
// no parameters, triggered by the file watcher
//
// a reload only adds and updates static entries, removing a party
// from the file takes effect at the next restart
func NewReload(log *logger.L, fileName string, parties party.Party) Observer {
	return &reload{
		log:      log,
		fileName: fileName,
		parties:  parties,
	}
}

func (r *reload) Update(command string, parameters [][]byte) {
	if reloadCommand != command {
		return
	}

	n, err := party.LoadFile(r.fileName, r.parties)
	if nil != err {
		r.log.Errorf("reload: %q error: %s", r.fileName, err)
		return
	}
	r.log.Infof("reload: %q loaded: %d parties", r.fileName, n)
}
