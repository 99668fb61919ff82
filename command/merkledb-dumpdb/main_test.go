// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/merkledb/fault"
	"github.com/bitmark-inc/merkledb/leaf"
	"github.com/bitmark-inc/merkledb/merkle"
	"github.com/bitmark-inc/merkledb/record"
	"github.com/bitmark-inc/merkledb/storage"
)

const testNamespace = "state"

// configure for testing: three packed states and one damaged record
func setup(t *testing.T) *storage.Database {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}

	for i := uint64(0); i < 3; i += 1 {
		s := &record.State{AccountID: i + 1, TokenID: 1, Balance: 10 * (i + 1)}
		if err := db.Leaves().Put(leaf.Key(testNamespace, i, s.Hash()), s.Encode()); nil != err {
			t.Fatalf("put error: %s", err)
		}
	}
	bad := merkle.NewDigest([]byte("bad"))
	if err := db.Leaves().Put(leaf.Key(testNamespace, 9, bad), []byte{0xff}); nil != err {
		t.Fatalf("put error: %s", err)
	}
	if err := db.Meta().Put([]byte("root"), bad[:]); nil != err {
		t.Fatalf("put error: %s", err)
	}
	return db
}

func TestPoolTags(t *testing.T) {
	assert.Equal(t, []string{"L → Leaves", "X → Index", "M → Meta"}, poolTags())
}

func TestFindPool(t *testing.T) {
	db := setup(t)
	defer db.Close()

	assert.Equal(t, db.Leaves(), findPool(db, "L"))
	assert.Equal(t, db.Meta(), findPool(db, "M"))
	assert.Nil(t, findPool(db, "Q"))
	assert.Nil(t, findPool(db, "LX"))
	assert.Nil(t, findPool(db, ""))
}

func TestFetchElements(t *testing.T) {
	db := setup(t)
	defer db.Close()

	data, err := fetchElements(db.Leaves(), nil, 2, false)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(data))

	data, err = fetchElements(db.Leaves(), nil, 10, false)
	assert.Nil(t, err)
	assert.Equal(t, 4, len(data))

	last, err := fetchElements(db.Leaves(), nil, 10, true)
	assert.Nil(t, err)
	if assert.Equal(t, 1, len(last)) {
		assert.Equal(t, data[3], last[0])
	}

	// seek to the record of leaf 2
	prefix := leaf.Key(testNamespace, 2, merkle.Digest{})[:len(testNamespace)+1+8]
	data, err = fetchElements(db.Leaves(), prefix, 10, false)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(data))
	assert.True(t, bytes.HasPrefix(data[0].Key, prefix))

	data, err = fetchElements(db.Index(), nil, 10, true)
	assert.Nil(t, err)
	assert.Empty(t, data, "empty pool")
}

func TestDumpDecode(t *testing.T) {
	db := setup(t)
	defer db.Close()

	data, err := fetchElements(db.Leaves(), nil, 10, false)
	assert.Nil(t, err)

	buffer := &bytes.Buffer{}
	dump(buffer, data, dumpOptions{decode: true})
	output := buffer.String()

	assert.Contains(t, output, `0: Record: {"accountId":1,"tokenId":1,"balance":10,"nonce":0}`)
	assert.Contains(t, output, `2: Record: {"accountId":3,"tokenId":1,"balance":30,"nonce":0}`)
	assert.Contains(t, output, "3: Record: error: "+fault.ErrNotStatePack.Error())
	assert.Contains(t, output, "3: Val: ff\n")
	assert.NotContains(t, output, "\033[", "no colour unless asked")

	buffer.Reset()
	dump(buffer, data, dumpOptions{})
	assert.NotContains(t, buffer.String(), "Record:")
}

func TestDumpEarlyStop(t *testing.T) {
	db := setup(t)
	defer db.Close()

	prefix := leaf.Key(testNamespace, 2, merkle.Digest{})[:len(testNamespace)+1+8]
	data, err := fetchElements(db.Leaves(), prefix, 10, false)
	assert.Nil(t, err)

	buffer := &bytes.Buffer{}
	dump(buffer, data, dumpOptions{prefix: prefix, earlyStop: true, colour: true})
	output := buffer.String()

	assert.Contains(t, output, "0: "+keyColour1+"Key: "+keyColour2)
	assert.Contains(t, output, "*** early stop\n")
	assert.NotContains(t, output, "1: ")
}

func TestHexDump(t *testing.T) {
	data := []byte("0123456789abcdefghijklmnopqrstuvwxyz\x00")

	buffer := &bytes.Buffer{}
	hexDump(buffer, "> ", " <", data)

	lines := strings.Split(strings.TrimSuffix(buffer.String(), "\n"), "\n")
	if !assert.Equal(t, 2, len(lines)) {
		return
	}
	assert.True(t, strings.HasPrefix(lines[0], "> 0000  30 31 32"))
	assert.True(t, strings.HasSuffix(lines[0], "|0123456789abcdefghijklmnopqrstuv| <"))
	assert.True(t, strings.HasPrefix(lines[1], "> 0020  77 78 79 7a 00 "))
	assert.True(t, strings.HasSuffix(lines[1], "|wxyz.| <"))
}
