// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/bitmark-inc/merkledb/avl"
	"github.com/bitmark-inc/merkledb/fault"
)

// MaximumDepth - deepest tree whose leaf numbers all fit in a uint64
const MaximumDepth = 63

// Tree - fixed depth sparse merkle tree
//
// not safe for concurrent use; the owner must serialise writers
type Tree struct {
	depth  int
	hasher Hasher
	zeros  []Digest

	// nodes[level] only holds digests that differ from zeros[level],
	// ordered by index
	nodes []*avl.Tree[Digest]
}

// NewZeros - the digest of an all-empty subtree at every level 0..depth
func NewZeros(h Hasher, depth int, empty Digest) []Digest {
	zeros := make([]Digest, depth+1)
	zeros[0] = empty
	for level := 1; level <= depth; level += 1 {
		zeros[level] = h.Node(zeros[level-1], zeros[level-1])
	}
	return zeros
}

// NewTree - an empty tree where every leaf holds the empty value
func NewTree(h Hasher, depth int, empty Digest) (*Tree, error) {
	if nil == h {
		return nil, fault.ErrInvalidHasher
	}
	if depth < 0 || depth > MaximumDepth {
		return nil, fault.ErrInvalidDepth
	}

	nodes := make([]*avl.Tree[Digest], depth+1)
	for level := range nodes {
		nodes[level] = avl.New[Digest]()
	}

	return &Tree{
		depth:  depth,
		hasher: h,
		zeros:  NewZeros(h, depth, empty),
		nodes:  nodes,
	}, nil
}

// Depth - number of levels above the leaves
func (t *Tree) Depth() int {
	return t.depth
}

// SetSize - number of leaves
func (t *Tree) SetSize() uint64 {
	return uint64(1) << uint(t.depth)
}

// Hasher - the node hasher of this tree
func (t *Tree) Hasher() Hasher {
	return t.hasher
}

// Zero - empty subtree digest at a level
func (t *Tree) Zero(level int) Digest {
	return t.zeros[level]
}

// Zeros - copy of the empty subtree table
func (t *Tree) Zeros() []Digest {
	zeros := make([]Digest, len(t.zeros))
	copy(zeros, t.zeros)
	return zeros
}

// Root - digest of the root node
func (t *Tree) Root() Digest {
	return t.get(t.depth, 0)
}

// UpdateSingle - set one leaf and recompute every ancestor up to the root
func (t *Tree) UpdateSingle(itemID uint64, digest Digest) error {
	if itemID >= t.SetSize() {
		return fault.ErrItemIDOutOfRange
	}

	t.set(0, itemID, digest)
	index := itemID
	for level := 1; level <= t.depth; level += 1 {
		left := t.get(level-1, index&^1)
		right := t.get(level-1, index|1)
		index >>= 1
		t.set(level, index, t.hasher.Node(left, right))
	}
	return nil
}

// Node - digest at (level, index)
func (t *Tree) Node(level int, index uint64) (Digest, error) {
	if err := t.check(level, index); nil != err {
		return Digest{}, err
	}
	return t.get(level, index), nil
}

// Witness - sibling path from (level, index) to just below the root
func (t *Tree) Witness(index uint64, level int) (Witness, error) {
	if err := t.check(level, index); nil != err {
		return Witness{}, err
	}

	nodes := make([]Digest, 0, t.depth-level)
	i := index
	for l := level; l < t.depth; l += 1 {
		nodes = append(nodes, t.get(l, i^1))
		i >>= 1
	}

	return Witness{
		Level: level,
		Index: index,
		Nodes: nodes,
	}, nil
}

// Occupied - lowest node at a level whose digest differs from the
// empty subtree digest, nil if every node at the level is empty
//
// Next walks the rest in ascending index order; the nodes are only
// valid until the tree is next updated
func (t *Tree) Occupied(level int) (*avl.Node[Digest], error) {
	if level < 0 || level > t.depth {
		return nil, fault.ErrLevelOutOfRange
	}
	return t.nodes[level].First(), nil
}

func (t *Tree) check(level int, index uint64) error {
	if level < 0 || level > t.depth {
		return fault.ErrLevelOutOfRange
	}
	if index >= uint64(1)<<uint(t.depth-level) {
		return fault.ErrNodeIndexOutOfRange
	}
	return nil
}

func (t *Tree) get(level int, index uint64) Digest {
	if node, _ := t.nodes[level].Search(index); nil != node {
		return node.Value()
	}
	return t.zeros[level]
}

// keep the store sparse: a node equal to the zero digest is not stored
func (t *Tree) set(level int, index uint64, digest Digest) {
	if digest == t.zeros[level] {
		t.nodes[level].Delete(index)
		return
	}
	t.nodes[level].Insert(index, digest)
}
