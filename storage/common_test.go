// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/bitmark-inc/merkledb/storage"
)

// configure for testing
func setup(t *testing.T) *storage.Database {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	return db
}

// post test cleanup
func teardown(db *storage.Database) {
	db.Close()
}

// a string data item
type stringElement struct {
	key   string
	value string
}

// make an element array
func makeElements(input []stringElement) []storage.Element {
	output := make([]storage.Element, 0, len(input))
	for _, e := range input {
		output = append(output, storage.Element{
			Key:   []byte(e.key),
			Value: []byte(e.value),
		})
	}
	return output
}

// this is the expected order
var expectedElements = makeElements([]stringElement{
	{"key-five", "data-five"},
	{"key-four", "data-four"},
	{"key-one", "data-one(NEW)"},
	{"key-seven", "data-seven"},
	{"key-six", "data-six"},
	{"key-three", "data-three"},
	{"key-two", "data-two"},
})

// fill a pool, including overwrites and deletes
func fill(t *testing.T, p *storage.PoolHandle) {
	steps := []struct {
		del   bool
		key   string
		value string
	}{
		{false, "key-one", "data-one"},
		{false, "key-two", "data-two"},
		{false, "key-remove-me", "to be deleted"},
		{true, "key-remove-me", ""},
		{false, "key-three", "data-three"},
		{false, "key-one", "data-one"},
		{false, "key-three", "data-three"},
		{false, "key-four", "data-four"},
		{false, "key-delete-this", "to be deleted"},
		{false, "key-five", "data-five"},
		{false, "key-six", "data-six"},
		{true, "key-delete-this", ""},
		{false, "key-seven", "data-seven"},
		{false, "key-one", "data-one(NEW)"},
	}
	for i, s := range steps {
		var err error
		if s.del {
			err = p.Delete([]byte(s.key))
		} else {
			err = p.Put([]byte(s.key), []byte(s.value))
		}
		if nil != err {
			t.Fatalf("%d: %q  error: %s", i, s.key, err)
		}
	}
}
