// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

// Witness - merkle proof for the node at (Level, Index)
//
// Nodes are the siblings ordered from Level up to the level below the root
type Witness struct {
	Level int      `json:"level"`
	Index uint64   `json:"index"`
	Nodes []Digest `json:"nodes"`
}

// Root - fold a node digest up through the witness
//
// at each level the low bit of the running index says which side the
// running digest is on
func (w Witness) Root(h Hasher, node Digest) Digest {
	d := node
	index := w.Index
	for _, sibling := range w.Nodes {
		if 0 == index&1 {
			d = h.Node(d, sibling)
		} else {
			d = h.Node(sibling, d)
		}
		index >>= 1
	}
	return d
}

// Verify - true if the node with this witness reproduces root
func (w Witness) Verify(h Hasher, node Digest, root Digest) bool {
	return w.Root(h, node) == root
}
