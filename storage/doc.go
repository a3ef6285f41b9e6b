// Copyright (c) 2014-2017 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk data store
//
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a pair of LevelDB databases each split into a series
// of tables.  Each table is defined by a prefix byte that is obtained
// from the prefix tag in the struct defining the available tables.
//
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++            = concatenation of byte data
// 3. transition id = transition digest as 32 byte SHA3-256(packed base)
// 4. record id     = transition id of the issue that created the record
// 5. count         = successive index value as big endian uint64 (8 bytes)
// 6. owner         = participant account (32 byte public key)
// 7. *others*      = byte values of various length
//
// ledger database
// ---------------
//
// Transitions:
//
//   T ++ transition id         - committed transitions
//                                data: packed transition data
//   C ++ transition id         - consensus confirmation for the transition
//                                data: packed confirmation data
//
// Records:
//
//   S ++ transition id         - obligation state produced by the transition
//                                data: packed obligation data
//   H ++ record id             - current version of a record
//                                data: transition id
//
// Ownership:
//
//   N ++ owner                 - next count value to use for appending to owned records
//                                data: count
//   L ++ owner ++ count        - list of owned records
//                                data: current transition id ++ record id
//   D ++ owner ++ record id    - position in list of owned records, for delete after transfer
//                                data: count
//
// Testing:
//
//   Z ++ key                   - testing data
//
// notary database
// ---------------
//
//   I ++ transition id         - notarised transitions
//                                data: packed confirmation data
//   K ++ transition id         - consumed record versions
//                                data: consuming transition id
//   R ++ transition id         - obligation state recorded at notarisation
//                                data: packed obligation data
package storage
