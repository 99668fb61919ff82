// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle - fixed depth sparse merkle tree
//
// The tree is a complete binary tree of a fixed depth whose leaves are
// numbered 0 .. 2^depth-1.  Level 0 holds the leaves and level depth
// holds the single root node.
//
// Every node that has never been written has the value of an empty
// subtree of its height.  These values are precomputed once per tree
// from the empty leaf value:
//
//   zeros[0] = empty leaf
//   zeros[n] = H(zeros[n-1], zeros[n-1])
//
// so only nodes that differ from the zero value at their level are
// stored, giving O(depth) time for an update or a witness regardless of
// how large the tree is.
//
// A witness for node (level, index) is the list of sibling digests
// from that level up to the level just below the root, ordered from the
// bottom up:
//
//   level 2           R
//                   /   \
//   level 1       a       b      witness(0, 0) = [L1, b]
//                / \     / \
//   level 0    L0  L1  L2  L3
package merkle
