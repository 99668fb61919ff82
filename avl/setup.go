// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Tree - type to hold the root node of a tree
type Tree[V any] struct {
	root  *Node[V]
	count int
}

// Node - a key and its value
type Node[V any] struct {
	left       *Node[V] // left sub-tree
	right      *Node[V] // right sub-tree
	up         *Node[V] // points to parent node
	key        uint64   // key part for ordering
	value      V        // value part for data storage
	balance    int      // -1, 0, +1
	leftNodes  int      // count of nodes in left sub-tree
	rightNodes int      // count of nodes in right sub-tree
}

// New - create an initially empty tree
func New[V any]() *Tree[V] {
	return &Tree[V]{
		root:  nil,
		count: 0,
	}
}

// IsEmpty - true if tree contains no data
func (tree *Tree[V]) IsEmpty() bool {
	return nil == tree.root
}

// Count - number of nodes currently in the tree
func (tree *Tree[V]) Count() int {
	return tree.count
}

// Key - read the key from a node item
func (p *Node[V]) Key() uint64 {
	return p.key
}

// Value - read the value from a node item
func (p *Node[V]) Value() V {
	return p.value
}

// three way key comparison: +1 if a > b, -1 if a < b, 0 if equal
func compare(a uint64, b uint64) int {
	switch {
	case a > b:
		return +1
	case a < b:
		return -1
	default:
		return 0
	}
}
