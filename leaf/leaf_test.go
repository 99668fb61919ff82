// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package leaf_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/merkledb/fault"
	"github.com/bitmark-inc/merkledb/leaf"
	"github.com/bitmark-inc/merkledb/merkle"
)

type note string

func (n note) Hash() merkle.Digest { return merkle.NewDigest([]byte(n)) }
func (n note) Encode() []byte      { return []byte(n) }

func decodeNote(buffer []byte) (note, error) {
	return note(buffer), nil
}

// a store that keeps everything in a map
type mapStore map[string][]byte

func (m mapStore) Put(key []byte, value []byte) error {
	m[string(key)] = value
	return nil
}

func (m mapStore) Get(key []byte) ([]byte, error) {
	value, ok := m[string(key)]
	if !ok {
		return nil, fault.ErrRecordNotFound
	}
	return value, nil
}

func (m mapStore) Delete(key []byte) error {
	delete(m, string(key))
	return nil
}

func TestKey(t *testing.T) {
	d := merkle.NewDigest([]byte("x"))
	key := leaf.Key("acct", 258, d)

	expected := append([]byte("acct\x00\x00\x00\x00\x00\x00\x00\x01\x02"), d[:]...)
	if !bytes.Equal(key, expected) {
		t.Errorf("key: %x  expected: %x", key, expected)
	}

	other := leaf.Key("acct", 258, merkle.NewDigest([]byte("y")))
	assert.NotEqual(t, key, other, "different digests must give different keys")

	assert.NotEqual(t, leaf.Key("a", 1, d), leaf.Key("b", 1, d), "namespaces must not collide")
}

func TestToDBAndFactory(t *testing.T) {
	store := mapStore{}

	l := leaf.New[note]("notes", store, 7, note("first"))
	assert.Equal(t, uint64(7), l.ItemID())
	assert.Equal(t, note("first").Hash(), l.Digest())
	assert.Nil(t, l.ToDB())

	factory := leaf.NewFactory[note]("notes", store, decodeNote)

	r, err := factory(7, note("first").Hash())
	assert.Nil(t, err)
	assert.Equal(t, note("first"), r.Item())
	assert.Equal(t, l.Key(), r.Key())

	_, err = factory(8, note("first").Hash())
	assert.Equal(t, fault.ErrRecordNotFound, err, "wrong position must not be found")

	// two versions of the same leaf live side by side
	v2 := leaf.New[note]("notes", store, 7, note("second"))
	assert.Nil(t, v2.ToDB())
	assert.Len(t, store, 2)

	assert.Nil(t, l.Delete())
	_, err = factory(7, note("first").Hash())
	assert.Equal(t, fault.ErrRecordNotFound, err)
	_, err = factory(7, note("second").Hash())
	assert.Nil(t, err)
}

func TestFactoryDigestMismatch(t *testing.T) {
	store := mapStore{}
	d := note("expected").Hash()

	// corrupt record stored under the key of another digest
	assert.Nil(t, store.Put(leaf.Key("notes", 1, d), []byte("tampered")))

	factory := leaf.NewFactory[note]("notes", store, decodeNote)
	_, err := factory(1, d)
	assert.Equal(t, fault.ErrDigestMismatch, err)
}
