// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/obligationd/fault"
	"github.com/bitmark-inc/logger"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Transitions    *PoolHandle `prefix:"T" database:"ledger"`
	Confirmations  *PoolHandle `prefix:"C" database:"ledger"`
	States         *PoolHandle `prefix:"S" database:"ledger"`
	Heads          *PoolHandle `prefix:"H" database:"ledger"`
	OwnerNextCount *PoolHandle `prefix:"N" database:"ledger"`
	OwnerList      *PoolHandle `prefix:"L" database:"ledger"`
	OwnerTxIndex   *PoolHandle `prefix:"D" database:"ledger"`
	TestData       *PoolHandle `prefix:"Z" database:"ledger"`
	NotaryIssued   *PoolHandle `prefix:"I" database:"notary"`
	NotaryConsumed *PoolHandle `prefix:"K" database:"notary"`
	NotaryStates   *PoolHandle `prefix:"R" database:"notary"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentLedgerDBVersion = 0x100
	currentNotaryDBVersion = 0x100
)

// holds the database handle
var poolData struct {
	sync.RWMutex
	dbLedger  *leveldb.DB
	dbNotary  *leveldb.DB
	trx       Transaction
	ledgerTrx *leveldb.Batch
	notaryTrx *leveldb.Batch
	cache     Cache
}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string, readOnly bool) error {
	poolData.Lock()
	defer poolData.Unlock()

	ok := false

	if nil != poolData.dbLedger {
		return fault.AlreadyInitialised
	}

	defer func() {
		if !ok {
			dbClose()
		}
	}()

	ledgerDatabase := database + "-ledger.leveldb"
	notaryDatabase := database + "-notary.leveldb"

	db, ledgerVersion, err := getDB(ledgerDatabase, readOnly)
	if nil != err {
		return err
	}
	poolData.dbLedger = db

	// ensure no database downgrade
	if ledgerVersion > currentLedgerDBVersion {
		logger.Criticalf("ledger database version: %d > current version: %d", ledgerVersion, currentLedgerDBVersion)
		return fmt.Errorf("ledger database version: %d > current version: %d", ledgerVersion, currentLedgerDBVersion)
	}

	db, notaryVersion, err := getDB(notaryDatabase, readOnly)
	if nil != err {
		return err
	}
	poolData.dbNotary = db

	// ensure no database downgrade
	if notaryVersion > currentNotaryDBVersion {
		logger.Criticalf("notary database version: %d > current version: %d", notaryVersion, currentNotaryDBVersion)
		return fmt.Errorf("notary database version: %d > current version: %d", notaryVersion, currentNotaryDBVersion)
	}

	// prevent readOnly from modifying the database
	if readOnly && (ledgerVersion != currentLedgerDBVersion || notaryVersion != currentNotaryDBVersion) {
		logger.Criticalf("database is inconsistent: ledger: %d  notary: %d  current: %d & %d", ledgerVersion, notaryVersion, currentLedgerDBVersion, currentNotaryDBVersion)
		return fmt.Errorf("database is inconsistent: ledger: %d  notary: %d  current: %d & %d", ledgerVersion, notaryVersion, currentLedgerDBVersion, currentNotaryDBVersion)
	}

	if 0 == ledgerVersion {
		// database was empty so tag as current version
		err = putVersion(poolData.dbLedger, currentLedgerDBVersion)
		if nil != err {
			return err
		}
	}
	if 0 == notaryVersion {
		err = putVersion(poolData.dbNotary, currentNotaryDBVersion)
		if nil != err {
			return err
		}
	}

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// databases
	poolData.ledgerTrx = new(leveldb.Batch)
	poolData.notaryTrx = new(leveldb.Batch)
	poolData.cache = newCache()
	ledgerDBAccess := newDA(poolData.dbLedger, poolData.ledgerTrx, poolData.cache)
	notaryDBAccess := newDA(poolData.dbNotary, poolData.notaryTrx, poolData.cache)
	access := []DataAccess{ledgerDBAccess, notaryDBAccess}
	poolData.trx = newTransaction(access)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		var dataAccess DataAccess
		switch dbName := fieldInfo.Tag.Get("database"); dbName {
		case "ledger":
			dataAccess = ledgerDBAccess
		case "notary":
			dataAccess = notaryDBAccess
		default:
			return fmt.Errorf("pool: %v  has invalid database: %q", fieldInfo, dbName)
		}

		p := &PoolHandle{
			prefix:     prefix,
			limit:      limit,
			dataAccess: dataAccess,
		}

		newPool := reflect.ValueOf(p)
		poolValue.Field(i).Set(newPool)
	}

	ok = true // prevent db close
	return nil
}

func dbClose() {
	if nil != poolData.dbNotary {
		poolData.dbNotary.Close()
		poolData.dbNotary = nil
	}
	if nil != poolData.dbLedger {
		poolData.dbLedger.Close()
		poolData.dbLedger = nil
	}
	poolData.trx = nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	dbClose()
	poolData.Unlock()
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

// NewDBTransaction - begin a transaction over all databases
func NewDBTransaction() (Transaction, error) {
	poolData.RLock()
	trx := poolData.trx
	poolData.RUnlock()

	if nil == trx {
		return nil, fault.NotInitialised
	}

	err := trx.Begin()
	if nil != err {
		return nil, err
	}
	return trx, nil
}
