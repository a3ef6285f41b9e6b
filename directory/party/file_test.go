// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package party_test

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/directory/party"
)

const (
	partiesFile    = "parties.json"
	testAccount    = "f9WQMtFnXeZKASkp8tGdZTWEFYmuV3yFaE44BYJ84jNxXfUaKi"
	testSessionKey = "97a95d3c8bbbb7e178f13bb6d4356348dd78ca60fd7a0872254cdd4be4e3b2d3"
)

func removePartiesFile() {
	if _, err := os.Stat(partiesFile); !os.IsNotExist(err) {
		_ = os.Remove(partiesFile)
	}
}

func TestLoadFile(t *testing.T) {
	removePartiesFile()
	defer removePartiesFile()

	data := `[
  {
    "account": "` + testAccount + `",
    "sessionKey": "` + testSessionKey + `",
    "listeners": ["127.0.0.1:2136", "[::1]:2136"]
  }
]`
	err := ioutil.WriteFile(partiesFile, []byte(data), 0600)
	assert.Nil(t, err, "wrong write")

	p := party.New()
	n, err := party.LoadFile(partiesFile, p)
	assert.Nil(t, err, "wrong load")
	assert.Equal(t, 1, n, "wrong load count")

	acc, _ := account.AccountFromBase58(testAccount)
	d := p.Lookup(acc)
	assert.NotNil(t, d, "wrong lookup")
	assert.True(t, d.Local, "wrong local flag")

	sessionKey, _ := hex.DecodeString(testSessionKey)
	assert.Equal(t, sessionKey, d.SessionKey, "wrong session key")

	conns := d.Connections()
	assert.Equal(t, 2, len(conns), "wrong connection count")

	s, v6 := conns[0].CanonicalIPandPort("")
	assert.False(t, v6, "wrong address family")
	assert.Equal(t, "127.0.0.1:2136", s, "wrong address")

	s, v6 = conns[1].CanonicalIPandPort("")
	assert.True(t, v6, "wrong address family")
	assert.Equal(t, "[::1]:2136", s, "wrong address")
}

func TestLoadFileWhenNotExist(t *testing.T) {
	p := party.New()

	n, err := party.LoadFile("not_exist_file", p)
	assert.Nil(t, err, "wrong load")
	assert.Equal(t, 0, n, "wrong load count")
}

func TestLoadFileWhenBrokenJSON(t *testing.T) {
	removePartiesFile()
	defer removePartiesFile()

	err := ioutil.WriteFile(partiesFile, []byte("not json at all"), 0600)
	assert.Nil(t, err, "wrong write")

	p := party.New()
	_, err = party.LoadFile(partiesFile, p)
	assert.NotNil(t, err, "wrong load")
}

func TestLoadFileWhenBadAccount(t *testing.T) {
	removePartiesFile()
	defer removePartiesFile()

	data := `[{"account": "0invalid0", "sessionKey": "` + testSessionKey + `", "listeners": ["127.0.0.1:2136"]}]`
	err := ioutil.WriteFile(partiesFile, []byte(data), 0600)
	assert.Nil(t, err, "wrong write")

	p := party.New()
	_, err = party.LoadFile(partiesFile, p)
	assert.NotNil(t, err, "wrong load")
}

func TestLoadFileWhenBadSessionKey(t *testing.T) {
	removePartiesFile()
	defer removePartiesFile()

	data := `[{"account": "` + testAccount + `", "sessionKey": "zz", "listeners": ["127.0.0.1:2136"]}]`
	err := ioutil.WriteFile(partiesFile, []byte(data), 0600)
	assert.Nil(t, err, "wrong write")

	p := party.New()
	_, err = party.LoadFile(partiesFile, p)
	assert.NotNil(t, err, "wrong load")
}

func TestLoadFileWhenBadListener(t *testing.T) {
	removePartiesFile()
	defer removePartiesFile()

	data := `[{"account": "` + testAccount + `", "sessionKey": "` + testSessionKey + `", "listeners": ["nowhere"]}]`
	err := ioutil.WriteFile(partiesFile, []byte(data), 0600)
	assert.Nil(t, err, "wrong write")

	p := party.New()
	_, err = party.LoadFile(partiesFile, p)
	assert.NotNil(t, err, "wrong load")
}
