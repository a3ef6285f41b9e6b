// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package observer - directory update commands
//
// each observer reacts to one command from the directory queue, the
// updater loop hands every received message to every observer
package observer

// Observer - handle one directory update command
type Observer interface {
	Update(command string, parameters [][]byte)
}
