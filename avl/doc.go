// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package avl - an AVL balanced tree keyed by uint64 with the
// addition of parent pointers to allow in-order iteration through
// the nodes
//
// Note: an individual tree is not thread safe, so either access only
//       in a single go routine or use mutex/rwmutex to restrict
//       access.
//
// The base algorithm was described in an old book by Niklaus Wirth
// called Algorithms + Data Structures = Programs.
//
// Each key has one value, which is overwritten by an insert with the
// same key.  Every node also counts the nodes below it on each side
// so that Search can return the rank of a key and Get can index by
// rank.
package avl
