// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk data store
//
// This maintains a LevelDB database split into a series of pools.
// Each pool is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available pools.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. item id      = big endian uint64 (8 bytes)
// 4. digest       = 32 byte tree node
// 5. namespace    = leaf namespace string followed by 0x00
//
// Leaves:
//
//   L ++ namespace ++ item id ++ digest  - encoded item
//
// Index:
//
//   X ++ item id               - committed leaf index
//                                data: digest
//
// Metadata:
//
//   M ++ "depth"               - tree depth as big endian uint64
//   M ++ "hasher"              - name of the node hasher
//   M ++ "empty"               - empty leaf digest
//   M ++ "root"                - last committed root digest
//
// Version:
//
//   0x00 ++ "VERSION"          - big endian uint32
package storage
