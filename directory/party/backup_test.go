// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package party_test

import (
	"bytes"
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	proto "github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/obligationd/directory/fixtures"
	"github.com/bitmark-inc/obligationd/directory/mocks"
	"github.com/bitmark-inc/obligationd/directory/party"
)

const (
	backupFile = "parties.cache"
)

func removeBackupFile() {
	if _, err := os.Stat(backupFile); !os.IsNotExist(err) {
		_ = os.Remove(backupFile)
	}
}

func TestBackup(t *testing.T) {
	removeBackupFile()
	defer removeBackupFile()

	p := party.New()
	now := uint64(time.Now().Unix())

	added := p.Add(fixtures.Account1.Bytes(), fixtures.Listener1, fixtures.SessionKey1, now)
	assert.True(t, added, "wrong add")

	added = p.Add(fixtures.Account2.Bytes(), fixtures.Listener2, fixtures.SessionKey2, now)
	assert.True(t, added, "wrong add")

	err := party.Backup(backupFile, p.Tree())
	assert.Nil(t, err, "wrong backup")

	data, err := ioutil.ReadFile(backupFile)
	assert.Nil(t, err, "cache file read error")

	var list party.PartyList
	err = proto.Unmarshal(data, &list)
	assert.Nil(t, err, "wrong unmarshal")
	assert.Equal(t, 2, len(list.Parties), "wrong party count")

	for _, l := range list.Parties {
		if !bytes.Equal(l.Account, fixtures.Account1.Bytes()) && !bytes.Equal(l.Account, fixtures.Account2.Bytes()) {
			t.Errorf("unexpected account: %x", l.Account)
		}
	}
}

func TestBackupWhenEmpty(t *testing.T) {
	removeBackupFile()
	defer removeBackupFile()

	p := party.New()

	err := party.Backup(backupFile, p.Tree())
	assert.Nil(t, err, "wrong backup")

	_, err = os.Stat(backupFile)
	assert.NotNil(t, err, "cache file should not be stored")
}

func TestRestore(t *testing.T) {
	removeBackupFile()
	defer removeBackupFile()

	p := party.New()
	now := uint64(time.Now().Unix())

	_ = p.Add(fixtures.Account1.Bytes(), fixtures.Listener1, fixtures.SessionKey1, now)
	_ = p.Add(fixtures.Account2.Bytes(), fixtures.Listener2, fixtures.SessionKey2, now)

	err := party.Backup(backupFile, p.Tree())
	assert.Nil(t, err, "wrong backup")

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockParty(ctl)
	m.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true).Times(2)

	err = party.Restore(backupFile, m)
	assert.Nil(t, err, "wrong restore")
}

func TestRestoreWhenFileNotExist(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockParty(ctl)
	m.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true).Times(0)

	err := party.Restore("not_exist_file", m)
	assert.Nil(t, err, "wrong file not exist error")
}

func TestRestoreWhenFileBroken(t *testing.T) {
	removeBackupFile()
	defer removeBackupFile()

	err := ioutil.WriteFile(backupFile, []byte{0xff, 0xff, 0xff, 0xff}, 0600)
	assert.Nil(t, err, "wrong write")

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockParty(ctl)
	m.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true).Times(0)

	err = party.Restore(backupFile, m)
	assert.NotNil(t, err, "wrong broken file error")
}
