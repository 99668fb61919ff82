// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/merkledb/merkle"
	"github.com/bitmark-inc/merkledb/storage"
)

// Persistence - the pools an engine commits into
//
// *storage.Database satisfies this
type Persistence interface {
	Begin() (storage.Transaction, error)
	Leaves() *storage.PoolHandle
	Index() *storage.PoolHandle
	Meta() *storage.PoolHandle
}

// keys in the Meta pool
var (
	metaDepthKey  = []byte("depth")
	metaHasherKey = []byte("hasher")
	metaEmptyKey  = []byte("empty")
	metaRootKey   = []byte("root")
)

func indexKey(itemID uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, itemID)
	return key
}

func depthValue(depth int) []byte {
	value := make([]byte, 4)
	binary.BigEndian.PutUint32(value, uint32(depth))
	return value
}

// stage the configuration and the root of the tree
func stageMeta(trx storage.Transaction, meta *storage.PoolHandle, tree *merkle.Tree) {
	empty := tree.Zero(0)
	root := tree.Root()

	trx.Put(meta, metaDepthKey, depthValue(tree.Depth()))
	trx.Put(meta, metaHasherKey, []byte(tree.Hasher().Name()))
	trx.Put(meta, metaEmptyKey, empty[:])
	trx.Put(meta, metaRootKey, root[:])
}
