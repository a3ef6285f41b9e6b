package storage

import (
	"reflect"
	"sync"

	"github.com/bitmark-inc/obligationd/fault"
)

// Transaction - batched write access across all databases
//
// only one transaction can be in progress at a time, writes through
// the pool handles commit or abort together
type Transaction interface {
	Begin() error
	Put(Handle, []byte, []byte) error
	PutN(Handle, []byte, uint64) error
	Delete(Handle, []byte) error
	Get(Handle, []byte) ([]byte, error)
	GetN(Handle, []byte) (uint64, bool, error)
	GetNB(Handle, []byte) (uint64, []byte, error)
	Commit() error
	Abort()
	InUse() bool
}

type TransactionData struct {
	sync.Mutex
	inUse      bool
	dataAccess []DataAccess
}

func newTransaction(access []DataAccess) Transaction {
	return &TransactionData{
		inUse:      false,
		dataAccess: access,
	}
}

func isNilPtr(handle interface{}) error {
	if nil == handle {
		return fault.NilPointer
	}
	v := reflect.ValueOf(handle)
	if reflect.Ptr == v.Kind() && v.IsNil() {
		return fault.NilPointer
	}
	return nil
}

func (t *TransactionData) Begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fault.TransactionAlreadyInUse
	}

	for _, access := range t.dataAccess {
		err := access.Begin()
		if nil != err {
			return err
		}
	}

	t.inUse = true
	return nil
}

func (t *TransactionData) Put(handle Handle, key []byte, value []byte) error {
	err := isNilPtr(handle)
	if nil != err {
		return err
	}
	handle.put(key, value)
	return nil
}

func (t *TransactionData) PutN(handle Handle, key []byte, value uint64) error {
	err := isNilPtr(handle)
	if nil != err {
		return err
	}
	handle.putN(key, value)
	return nil
}

func (t *TransactionData) Delete(handle Handle, key []byte) error {
	err := isNilPtr(handle)
	if nil != err {
		return err
	}
	handle.remove(key)
	return nil
}

func (t *TransactionData) Get(handle Handle, key []byte) ([]byte, error) {
	err := isNilPtr(handle)
	if nil != err {
		return nil, err
	}
	return handle.Get(key), nil
}

func (t *TransactionData) GetN(handle Handle, key []byte) (uint64, bool, error) {
	err := isNilPtr(handle)
	if nil != err {
		return 0, false, err
	}
	n, found := handle.getN(key)
	return n, found, nil
}

func (t *TransactionData) GetNB(handle Handle, key []byte) (uint64, []byte, error) {
	err := isNilPtr(handle)
	if nil != err {
		return 0, nil, err
	}
	n, buffer := handle.getNB(key)
	return n, buffer, nil
}

// Commit - flush batched writes to the databases and release the transaction
func (t *TransactionData) Commit() error {
	t.Lock()
	defer t.Unlock()

	for _, access := range t.dataAccess {
		err := access.Commit()
		if nil != err {
			return err
		}
	}
	t.free()
	return nil
}

// Abort - discard batched writes and release the transaction
func (t *TransactionData) Abort() {
	t.Lock()
	defer t.Unlock()
	t.free()
}

// reset each data access, caller must hold the lock
func (t *TransactionData) free() {
	for _, access := range t.dataAccess {
		access.Abort()
	}
	t.inUse = false
}

func (t *TransactionData) InUse() bool {
	return t.inUse
}
