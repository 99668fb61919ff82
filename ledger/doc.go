// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - transactional item store over a sparse merkle tree
//
// writes are staged in a journal and only reach the tree on Commit:
//
//   Update/Create ──▶ journal + pending cache ──Commit──▶ items + tree
//                          ▲                │
//                          └── Revert(cp) ◀─┘ Checkpoint
//
// reads see pending writes first, then committed items; witnesses and
// the root always describe the committed tree
//
// when persistence is configured each commit writes, in one storage
// transaction:
//
//   Leaves   leaf.Key(namespace, id, digest) → encoded item
//   Index    BE64(id)                        → digest
//   Meta     depth, hasher, empty, root
//
// and Recover rebuilds a fresh engine from those pools
package ledger
