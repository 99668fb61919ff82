// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package leaf - persistence of committed items
//
// A leaf is an item bound to its position in the tree.  It is written
// to an external key/value store under a key derived from a namespace,
// the item id and the item digest:
//
//   namespace ++ 0x00 ++ item id (8 bytes big endian) ++ digest (32 bytes)
//
// The tree does not need this store to be correct; it is a sidecar that
// allows committed items to be recovered.
package leaf
