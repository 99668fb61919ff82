// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/merkledb/fault"
	"github.com/bitmark-inc/merkledb/merkle"
)

// StateTag - tag code of a packed State
const StateTag = 1

// State - balance of one token held by one account
type State struct {
	AccountID uint64 `json:"accountId"`
	TokenID   uint64 `json:"tokenId"`
	Balance   uint64 `json:"balance"`
	Nonce     uint64 `json:"nonce"`
}

// Encode - pack the record as varint tag followed by varint fields
func (s *State) Encode() []byte {
	buffer := make([]byte, 0, 5*varint64MaximumBytes)
	buffer = appendVarint64(buffer, StateTag)
	buffer = appendVarint64(buffer, s.AccountID)
	buffer = appendVarint64(buffer, s.TokenID)
	buffer = appendVarint64(buffer, s.Balance)
	return appendVarint64(buffer, s.Nonce)
}

// Hash - the leaf digest of the record
func (s *State) Hash() merkle.Digest {
	return merkle.NewDigest(s.Encode())
}

// Unpack - turn a byte slice back into a record
func Unpack(buffer []byte) (*State, error) {
	tag, n := fromVarint64(buffer)
	if 0 == n || StateTag != tag {
		return nil, fault.ErrNotStatePack
	}

	fields := [4]uint64{}
	for i := range fields {
		buffer = buffer[n:]
		fields[i], n = fromVarint64(buffer)
		if 0 == n {
			return nil, fault.ErrNotStatePack
		}
	}
	if len(buffer) != n {
		return nil, fault.ErrNotStatePack
	}

	return &State{
		AccountID: fields[0],
		TokenID:   fields[1],
		Balance:   fields[2],
		Nonce:     fields[3],
	}, nil
}

// Decode - Unpack shaped as a leaf decoder
func Decode(buffer []byte) (*State, error) {
	return Unpack(buffer)
}
