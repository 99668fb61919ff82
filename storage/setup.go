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
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/merkledb/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will fail
type pools struct {
	Leaves *PoolHandle `prefix:"L"`
	Index  *PoolHandle `prefix:"X"`
	Meta   *PoolHandle `prefix:"M"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Database - a LevelDB handle split into prefixed pools
type Database struct {
	sync.RWMutex
	db   *leveldb.DB
	trx  *transaction
	Pool pools
}

// Open - open or create a database file
func Open(name string, readOnly bool) (*Database, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, readOnly)
}

// OpenMemory - a database that only lives in memory
func OpenMemory() (*Database, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, ReadWrite)
}

func setup(db *leveldb.DB, readOnly bool) (*Database, error) {
	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		return nil, fault.ErrDatabaseVersion
	}

	// prevent readOnly from modifying the database
	if readOnly && version != currentDBVersion {
		return nil, fault.ErrDatabaseVersion
	}

	if 0 == version {
		// database was empty so tag as current version
		if err := putVersion(db, currentDBVersion); nil != err {
			return nil, err
		}
	}

	d := &Database{
		db: db,
	}
	d.trx = newTransaction(d)

	if err := d.initialisePools(); nil != err {
		return nil, err
	}

	ok = true // prevent db close
	return d, nil
}

// scan each field of the pool struct and create a handle from its tag
func (d *Database) initialisePools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(d.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&d.Pool).Elem()

	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fault.ErrInvalidPoolPrefix
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			name:     fieldInfo.Name,
			prefix:   prefix,
			limit:    limit,
			database: d,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// Close - close the database connection
func (d *Database) Close() {
	d.Lock()
	defer d.Unlock()

	if nil != d.db {
		d.db.Close()
		d.db = nil
	}
}

// Begin - start the single staged transaction of this database
func (d *Database) Begin() (Transaction, error) {
	if err := d.trx.Begin(); nil != err {
		return nil, err
	}
	return d.trx, nil
}

// Leaves - pool holding encoded leaf records
func (d *Database) Leaves() *PoolHandle {
	return d.Pool.Leaves
}

// Index - pool holding the committed leaf index
func (d *Database) Index() *PoolHandle {
	return d.Pool.Index
}

// Meta - pool holding ledger metadata
func (d *Database) Meta() *PoolHandle {
	return d.Pool.Meta
}

// Pools - all pools in declaration order
func (d *Database) Pools() []*PoolHandle {
	poolValue := reflect.ValueOf(d.Pool)
	handles := make([]*PoolHandle, 0, poolValue.NumField())
	for i := 0; i < poolValue.NumField(); i += 1 {
		handles = append(handles, poolValue.Field(i).Interface().(*PoolHandle))
	}
	return handles
}

// return the version number, 0 for an empty database
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
