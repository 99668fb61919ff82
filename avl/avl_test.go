// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/merkledb/avl"
)

func TestListShort(t *testing.T) {
	addList := []uint64{4201, 1254, 8608, 1639, 8950, 6740}
	doList(t, addList)
	doTraverse(t, addList)
	doGet(t, addList)
}

// to make sure that lots of duplicates do not increment the node
// count incorrectly
func TestListDuplicates(t *testing.T) {
	addList := []uint64{
		1720, 506, 8382, 6774, 1247, 1250, 1264, 1258, 1255, 2247,
		2004, 2194, 2644, 2169, 8133, 2136, 9651, 4079, 1042, 3579,
		1720, 506, 8382, 6774, 1042, 1042, 1042, 1042, 1042, 1042,
	}
	doList(t, addList)
	doTraverse(t, addList)
	doGet(t, addList)
}

func TestListAscending(t *testing.T) {
	addList := make([]uint64, 0, 100)
	for i := uint64(0); i < 100; i += 1 {
		addList = append(addList, i)
	}
	doList(t, addList)
	doTraverse(t, addList)
	doGet(t, addList)
}

func TestListRandom(t *testing.T) {
	r := rand.New(rand.NewSource(20200101))
	addList := make([]uint64, 0, 300)
	for i := 0; i < 300; i += 1 {
		addList = append(addList, r.Uint64()%1000)
	}
	doList(t, addList)
	doTraverse(t, addList)
	doGet(t, addList)
}

func TestOverwrite(t *testing.T) {
	tree := avl.New[string]()
	assert.True(t, tree.Insert(7, "first"))
	assert.False(t, tree.Insert(7, "second"), "same key is not added twice")
	assert.Equal(t, 1, tree.Count())

	node, index := tree.Search(7)
	assert.NotNil(t, node)
	assert.Equal(t, 0, index)
	assert.Equal(t, "second", node.Value())

	node, index = tree.Search(8)
	assert.Nil(t, node)
	assert.Equal(t, -1, index)

	value, removed := tree.Delete(8)
	assert.False(t, removed)
	assert.Equal(t, "", value)
	assert.Equal(t, 1, tree.Count())
}

// build the tree then delete a growing prefix of the list, checking
// structure after each phase
func doList(t *testing.T, addList []uint64) {

	for i := 0; i < len(addList)+1; i += 1 {

		alreadyDeleted := make(map[uint64]struct{})

		tree := avl.New[uint64]()
		for _, key := range addList {
			tree.Insert(key, key*10)
		}

		if !tree.CheckUp() {
			t.Fatalf("add: inconsistent tree")
		}

	delete_items:
		for _, key := range addList[:i] {
			if _, ok := alreadyDeleted[key]; ok {
				continue delete_items
			}
			alreadyDeleted[key] = struct{}{}
			dv, removed := tree.Delete(key)
			if !removed || dv != key*10 {
				t.Fatalf("delete returned: %d %v  expected: %d", dv, removed, key*10)
			}
		}

		if !tree.CheckUp() {
			t.Fatalf("delete: %d  inconsistent tree", i)
		}

	delete_remainder:
		for _, key := range addList[i:] {
			if _, ok := alreadyDeleted[key]; ok {
				continue delete_remainder
			}
			alreadyDeleted[key] = struct{}{}
			dv, removed := tree.Delete(key)
			if !removed || dv != key*10 {
				t.Fatalf("delete returned: %d %v  expected: %d", dv, removed, key*10)
			}
		}
		if !tree.IsEmpty() || 0 != tree.Count() {
			t.Fatalf("remainder: remaining nodes: %d", tree.Count())
		}
	}
}

func uniqueSorted(addList []uint64) []uint64 {
	unique := make(map[uint64]struct{})
	for _, key := range addList {
		unique[key] = struct{}{}
	}
	expected := make([]uint64, 0, len(unique))
	for key := range unique {
		expected = append(expected, key)
	}
	sort.Slice(expected, func(i, j int) bool { return expected[i] < expected[j] })
	return expected
}

// traverse the tree forwards and backwards to check iterators
func doTraverse(t *testing.T, addList []uint64) {

	tree := avl.New[uint64]()
	for _, key := range addList {
		tree.Insert(key, key*10)
	}
	expected := uniqueSorted(addList)

	p := tree.First()
	if nil == p {
		t.Fatalf("no first item")
	}

	n := 0
	for i := 0; nil != p; i += 1 {
		if p.Key() != expected[i] {
			t.Fatalf("next item: actual: %d  expected: %d", p.Key(), expected[i])
		}
		n += 1
		p = p.Next()
	}
	if n != len(expected) {
		t.Fatalf("item count: actual: %d  expected: %d", n, len(expected))
	}

	p = tree.Last()
	if nil == p {
		t.Fatalf("no last item")
	}

	n = 0
	for i := len(expected) - 1; nil != p; i -= 1 {
		if p.Key() != expected[i] {
			t.Fatalf("prev item: actual: %d  expected: %d", p.Key(), expected[i])
		}
		n += 1
		p = p.Prev()
	}
	if n != tree.Count() {
		t.Fatalf("tree count: actual: %d  expected: %d", tree.Count(), n)
	}
}

// use indexing to fetch each item
func doGet(t *testing.T, addList []uint64) {

	tree := avl.New[uint64]()
	for _, key := range addList {
		tree.Insert(key, key*10)
	}
	expected := uniqueSorted(addList)

	if len(expected) != tree.Count() {
		t.Fatalf("expected: %d items, but tree count: %d", len(expected), tree.Count())
	}

	for index, key := range expected {
		node := tree.Get(index)
		if nil == node {
			t.Fatalf("[%d] key: %d not in tree (nil result)", index, key)
		}
		if node.Key() != key {
			t.Fatalf("[%d]: expected: %d but found: %d", index, key, node.Key())
		}
		node1, index1 := tree.Search(key)
		if nil == node1 {
			t.Fatalf("[%d]: search: %d returned nil", index, key)
		}
		if index != index1 {
			t.Errorf("[%d]: search: %d index: %d expected: %d", index, key, index1, index)
		}
	}

	assert.Nil(t, tree.Get(-1))
	assert.Nil(t, tree.Get(len(expected)))
}
