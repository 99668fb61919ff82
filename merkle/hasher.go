// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/mimc"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/merkledb/fault"
)

// Hasher - combines two child digests into their parent
//
// implementations must be deterministic and safe for concurrent use
type Hasher interface {
	Name() string
	Node(left Digest, right Digest) Digest
}

// names accepted by HasherByName
const (
	SHA3Name      = "sha3"
	Keccak256Name = "keccak256"
	Blake3Name    = "blake3"
	MiMCName      = "mimc"
)

// SHA3 - SHA3-256(left ++ right)
type SHA3 struct{}

// Keccak256 - legacy Keccak-256(left ++ right), as abi.encodePacked on the EVM
type Keccak256 struct{}

// Blake3 - BLAKE3-256(left ++ right)
type Blake3 struct{}

// MiMC - MiMC over the BLS12-381 scalar field
//
// each child is reduced into the field before absorption so any
// 32 byte digest is accepted
type MiMC struct{}

// HasherByName - return the hasher for a configuration name
func HasherByName(name string) (Hasher, error) {
	switch strings.ToLower(name) {
	case SHA3Name:
		return SHA3{}, nil
	case Keccak256Name:
		return Keccak256{}, nil
	case Blake3Name:
		return Blake3{}, nil
	case MiMCName:
		return MiMC{}, nil
	default:
		return nil, fault.ErrUnknownHasher
	}
}

func concat(left Digest, right Digest) []byte {
	buffer := make([]byte, 0, 2*DigestLength)
	buffer = append(buffer, left[:]...)
	return append(buffer, right[:]...)
}

func (SHA3) Name() string { return SHA3Name }

func (SHA3) Node(left Digest, right Digest) Digest {
	return sha3.Sum256(concat(left, right))
}

func (Keccak256) Name() string { return Keccak256Name }

func (Keccak256) Node(left Digest, right Digest) Digest {
	h := sha3.NewLegacyKeccak256()
	h.Write(left[:])
	h.Write(right[:])

	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func (Blake3) Name() string { return Blake3Name }

func (Blake3) Node(left Digest, right Digest) Digest {
	return blake3.Sum256(concat(left, right))
}

func (MiMC) Name() string { return MiMCName }

func (MiMC) Node(left Digest, right Digest) Digest {
	h := mimc.NewMiMC()
	for _, child := range []Digest{left, right} {
		var e fr.Element
		e.SetBytes(child[:])
		b := e.Bytes()
		_, err := h.Write(b[:])
		fault.PanicIfError("mimc write", err)
	}

	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}
