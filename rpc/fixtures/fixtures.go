// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

var (
	generateOnce   sync.Once
	certificatePEM string
	privateKeyPEM  string
)

// Certificate - PEM encoded self-signed certificate for listener tests
func Certificate() string {
	generate()
	return certificatePEM
}

// Key - PEM encoded private key matching Certificate
func Key() string {
	generate()
	return privateKeyPEM
}

func generate() {
	generateOnce.Do(func() {
		org := "obligationd self signed cert for: testing"
		validUntil := time.Now().Add(24 * time.Hour)
		cert, key, err := certgen.NewTLSCertPair(org, validUntil, false, nil)
		if nil != err {
			panic(err)
		}
		certificatePEM = string(cert)
		privateKeyPEM = string(key)
	})
}

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
