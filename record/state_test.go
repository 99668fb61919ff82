// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/merkledb/fault"
	"github.com/bitmark-inc/merkledb/merkle"
	"github.com/bitmark-inc/merkledb/record"
)

func TestPack(t *testing.T) {
	s := &record.State{
		AccountID: 1,
		TokenID:   300,
		Balance:   0,
		Nonce:     127,
	}

	expected := []byte{
		0x01,       // tag
		0x01,       // account
		0xac, 0x02, // token 300
		0x00,       // balance
		0x7f,       // nonce
	}

	packed := s.Encode()
	if !bytes.Equal(expected, packed) {
		t.Fatalf("packed: %x  expected: %x", packed, expected)
	}

	assert.Equal(t, merkle.NewDigest(expected), s.Hash())

	unpacked, err := record.Unpack(packed)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	assert.Equal(t, s, unpacked)
}

func TestPackLimits(t *testing.T) {
	s := &record.State{
		AccountID: math.MaxUint64,
		TokenID:   1 << 56,
		Balance:   1<<56 - 1,
		Nonce:     0x80,
	}
	packed := s.Encode()

	// tag + 9 + 9 + 8 + 2
	assert.Equal(t, 29, len(packed))

	unpacked, err := record.Decode(packed)
	assert.Nil(t, err)
	assert.Equal(t, s, unpacked)
}

func TestUnpackErrors(t *testing.T) {
	good := (&record.State{AccountID: 5, TokenID: 6, Balance: 1000, Nonce: 1}).Encode()

	items := []struct {
		name   string
		buffer []byte
	}{
		{"empty", []byte{}},
		{"wrong tag", append([]byte{0x02}, good[1:]...)},
		{"truncated", good[:len(good)-1]},
		{"truncated varint", good[:len(good)-2]},
		{"trailing data", append(append([]byte{}, good...), 0x00)},
		{"unterminated", []byte{0x01, 0x80}},
	}

	for _, item := range items {
		_, err := record.Unpack(item.buffer)
		assert.Equal(t, fault.ErrNotStatePack, err, item.name)
	}
}

func TestDistinctHashes(t *testing.T) {
	a := &record.State{AccountID: 1, TokenID: 2}
	b := &record.State{AccountID: 2, TokenID: 1}
	assert.NotEqual(t, a.Hash(), b.Hash())
}
