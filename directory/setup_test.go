// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package directory

import (
	"encoding/binary"
	"io/ioutil"
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/obligationd/account"
	"github.com/bitmark-inc/obligationd/directory/fixtures"
	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/obligationd/messagebus"
	"github.com/bitmark-inc/obligationd/util"
)

const (
	testDir        = "testing"
	testAccount    = "f9WQMtFnXeZKASkp8tGdZTWEFYmuV3yFaE44BYJ84jNxXfUaKi"
	testSessionKey = "97a95d3c8bbbb7e178f13bb6d4356348dd78ca60fd7a0872254cdd4be4e3b2d3"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestInitialiseAndFinalise(t *testing.T) {
	partiesFile := path.Join(testDir, "parties.json")
	data := `[{"account":"` + testAccount + `","sessionKey":"` + testSessionKey + `","listeners":["127.0.0.1:2136"]}]`
	err := ioutil.WriteFile(partiesFile, []byte(data), 0600)
	assert.Nil(t, err, "wrong write")

	f := func(s string) ([]string, error) { return []string{}, nil }

	err = Initialise("", testDir, partiesFile, f)
	assert.Nil(t, err, "wrong initialise")

	err = Initialise("", testDir, partiesFile, f)
	assert.Equal(t, fault.AlreadyInitialised, err, "wrong second initialise")

	// the static entry is visible
	acc, _ := account.AccountFromBase58(testAccount)
	d, err := Lookup(acc)
	assert.Nil(t, err, "wrong lookup")
	assert.True(t, d.Local, "wrong local flag")

	// own announcement data
	err = SetSelf(fixtures.Account1.Bytes(), fixtures.Listener1, fixtures.SessionKey1)
	assert.Nil(t, err, "wrong set self")

	err = SetRPC(util.FingerprintBytes{1, 2, 3, 4}, fixtures.Listener1)
	assert.Nil(t, err, "wrong set rpc")

	parties, _, err := FetchParties(0, 10)
	assert.Nil(t, err, "wrong fetch parties")
	assert.Equal(t, 2, len(parties), "wrong party count")

	rpcs, _, err := FetchRPCs(0, 10)
	assert.Nil(t, err, "wrong fetch rpcs")
	assert.Equal(t, 1, len(rpcs), "wrong rpc count")

	// announcements flow through the queue to the updater
	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(time.Now().Unix()))
	messagebus.Bus.Directory.Send("addparty", fixtures.Account2.Bytes(), fixtures.Listener2, fixtures.SessionKey2, ts)

	found := false
	for i := 0; i < 100; i += 1 {
		a, _ := Lookup(fixtures.Account2)
		if nil != a {
			found = true
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	assert.True(t, found, "announcement not processed")

	err = Finalise()
	assert.Nil(t, err, "wrong finalise")

	// the cache was written on shutdown
	_, err = os.Stat(path.Join(testDir, cacheFile))
	assert.Nil(t, err, "missing cache file")

	_, err = Lookup(acc)
	assert.Equal(t, fault.NotInitialised, err, "wrong lookup after finalise")

	err = Finalise()
	assert.Equal(t, fault.NotInitialised, err, "wrong second finalise")
}
