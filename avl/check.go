// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// CheckUp - verify parent pointers, sub-tree counts and balance
// factors of every node
func (tree *Tree[V]) CheckUp() bool {
	n, _, ok := checkup(tree.root, nil)
	return ok && n == tree.count
}

// internal: consistency checker, returns node count and height
func checkup[V any](p *Node[V], up *Node[V]) (int, int, bool) {
	if nil == p {
		return 0, 0, true
	}
	if p.up != up {
		return 0, 0, false
	}
	nl, hl, ok := checkup(p.left, p)
	if !ok || nl != p.leftNodes {
		return 0, 0, false
	}
	nr, hr, ok := checkup(p.right, p)
	if !ok || nr != p.rightNodes {
		return 0, 0, false
	}
	if hr-hl != p.balance {
		return 0, 0, false
	}
	h := hl
	if hr > h {
		h = hr
	}
	return nl + nr + 1, h + 1, true
}
