// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Search - find a specific key
//
// returns the node and its rank, or nil and -1 if the key is absent
func (tree *Tree[V]) Search(key uint64) (*Node[V], int) {
	return search(key, tree.root, 0)
}

func search[V any](key uint64, tree *Node[V], index int) (*Node[V], int) {
	for nil != tree {
		switch compare(tree.key, key) {
		case +1: // tree.key > key
			tree = tree.left
		case -1: // tree.key < key
			index += tree.leftNodes + 1
			tree = tree.right
		default:
			return tree, index + tree.leftNodes
		}
	}
	return nil, -1
}

