// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/merkledb/fault"
)

// Transaction - staged writes across pools, applied atomically by Commit
//
// reads through a transaction see its own staged writes
type Transaction interface {
	Begin() error
	Put(*PoolHandle, []byte, []byte)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) ([]byte, error)
	Has(*PoolHandle, []byte) (bool, error)
	Commit() error
	Abort()
	InUse() bool
}

type transaction struct {
	sync.Mutex
	inUse    bool
	database *Database
	batch    *leveldb.Batch
	cache    Cache
}

func newTransaction(database *Database) *transaction {
	return &transaction{
		inUse:    false,
		database: database,
		batch:    new(leveldb.Batch),
		cache:    newCache(),
	}
}

func (t *transaction) Begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fault.ErrTransactionInUse
	}

	t.batch.Reset()
	t.cache.Clear()
	t.inUse = true
	return nil
}

func (t *transaction) Put(pool *PoolHandle, key []byte, value []byte) {
	prefixedKey := pool.prefixKey(key)

	staged := make([]byte, len(value))
	copy(staged, value)

	t.Lock()
	defer t.Unlock()

	t.cache.Set(dbPut, string(prefixedKey), staged)
	t.batch.Put(prefixedKey, staged)
}

func (t *transaction) Delete(pool *PoolHandle, key []byte) {
	prefixedKey := pool.prefixKey(key)

	t.Lock()
	defer t.Unlock()

	t.cache.Set(dbDelete, string(prefixedKey), nil)
	t.batch.Delete(prefixedKey)
}

// Get - staged value first, then the database
func (t *transaction) Get(pool *PoolHandle, key []byte) ([]byte, error) {
	t.Lock()
	value, deleted, found := t.cache.Get(string(pool.prefixKey(key)))
	t.Unlock()

	if deleted {
		return nil, fault.ErrRecordNotFound
	}
	if found {
		return value, nil
	}
	return pool.Get(key)
}

func (t *transaction) Has(pool *PoolHandle, key []byte) (bool, error) {
	t.Lock()
	_, deleted, found := t.cache.Get(string(pool.prefixKey(key)))
	t.Unlock()

	if found {
		return !deleted, nil
	}
	return pool.Has(key)
}

// Commit - write the batch and end the transaction
//
// on error nothing from the batch has been applied
func (t *transaction) Commit() error {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		return fault.ErrTransactionNotStarted
	}

	err := t.database.write(t.batch)
	t.reset()
	return err
}

// Abort - discard everything staged
func (t *transaction) Abort() {
	t.Lock()
	defer t.Unlock()

	t.reset()
}

func (t *transaction) InUse() bool {
	t.Lock()
	defer t.Unlock()

	return t.inUse
}

func (t *transaction) reset() {
	t.batch.Reset()
	t.cache.Clear()
	t.inUse = false
}

func (d *Database) write(batch *leveldb.Batch) error {
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return fault.ErrNotInitialised
	}
	return d.db.Write(batch, nil)
}

// StagedPool - a view of one pool inside a transaction
//
// satisfies the leaf store interface
type StagedPool struct {
	trx  Transaction
	pool *PoolHandle
}

// Staged - bind a pool to a transaction
func Staged(trx Transaction, pool *PoolHandle) *StagedPool {
	return &StagedPool{
		trx:  trx,
		pool: pool,
	}
}

func (s *StagedPool) Put(key []byte, value []byte) error {
	s.trx.Put(s.pool, key, value)
	return nil
}

func (s *StagedPool) Get(key []byte) ([]byte, error) {
	return s.trx.Get(s.pool, key)
}

func (s *StagedPool) Delete(key []byte) error {
	s.trx.Delete(s.pool, key)
	return nil
}
