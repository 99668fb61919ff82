// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/merkledb/fault"
	"github.com/bitmark-inc/merkledb/merkle"
)

var allHashers = []merkle.Hasher{
	merkle.SHA3{},
	merkle.Keccak256{},
	merkle.Blake3{},
	merkle.MiMC{},
}

func TestHasherByName(t *testing.T) {
	for _, h := range allHashers {
		found, err := merkle.HasherByName(h.Name())
		assert.Nil(t, err, "lookup of "+h.Name())
		assert.Equal(t, h, found, "wrong hasher for "+h.Name())
	}

	found, err := merkle.HasherByName("BLAKE3")
	assert.Nil(t, err, "names are case insensitive")
	assert.Equal(t, merkle.Blake3{}, found)

	_, err = merkle.HasherByName("md5")
	assert.Equal(t, fault.ErrUnknownHasher, err, "wrong error for unknown hasher")
}

// keccak256(bytes32(0) ++ bytes32(0))
func TestKeccakZeroPair(t *testing.T) {
	expected, err := merkle.DigestFromHex("ad3228b676f7d3cd4284a5443f17f1962b36e491b30a40b2405849e597ba5fb5")
	assert.Nil(t, err)
	assert.Equal(t, expected, merkle.Keccak256{}.Node(merkle.Digest{}, merkle.Digest{}))
}

func TestHashersAreOrdered(t *testing.T) {
	a := merkle.NewDigest([]byte("left"))
	b := merkle.NewDigest([]byte("right"))
	for _, h := range allHashers {
		assert.Equal(t, h.Node(a, b), h.Node(a, b), h.Name()+" is not deterministic")
		assert.NotEqual(t, h.Node(a, b), h.Node(b, a), h.Name()+" ignores child order")
	}
}

func TestMiMCAcceptsLargeDigests(t *testing.T) {
	var high merkle.Digest
	for i := range high {
		high[i] = 0xff
	}
	assert.NotPanics(t, func() {
		merkle.MiMC{}.Node(high, high)
	})
}
