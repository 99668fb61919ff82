// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package leaf

import (
	"encoding/binary"

	"github.com/bitmark-inc/merkledb/fault"
	"github.com/bitmark-inc/merkledb/merkle"
)

// Item - an application record that can occupy a leaf
type Item interface {
	Hash() merkle.Digest
	Encode() []byte
}

// Decoder - reverse of Item.Encode
type Decoder[T Item] func([]byte) (T, error)

// Store - byte oriented key/value store holding leaf records
//
// Get must return fault.ErrRecordNotFound for a missing key
type Store interface {
	Put(key []byte, value []byte) error
	Get(key []byte) ([]byte, error)
	Delete(key []byte) error
}

// Factory - rebuild a leaf from its position and digest
type Factory[T Item] func(itemID uint64, digest merkle.Digest) (*Leaf[T], error)

// Leaf - one item at a fixed position, bound to a store
type Leaf[T Item] struct {
	namespace string
	store     Store
	itemID    uint64
	item      T
}

// Key - namespace ++ 0x00 ++ itemID(big endian) ++ digest
//
// each digest of an item has its own key so old versions of a leaf are
// not overwritten
func Key(namespace string, itemID uint64, digest merkle.Digest) []byte {
	key := make([]byte, 0, len(namespace)+1+8+merkle.DigestLength)
	key = append(key, namespace...)
	key = append(key, 0x00)
	key = binary.BigEndian.AppendUint64(key, itemID)
	return append(key, digest[:]...)
}

// New - bind an item to a store position
func New[T Item](namespace string, store Store, itemID uint64, item T) *Leaf[T] {
	return &Leaf[T]{
		namespace: namespace,
		store:     store,
		itemID:    itemID,
		item:      item,
	}
}

// NewFactory - a factory that reads leaves back from a store
//
// the decoded item must hash to the requested digest
func NewFactory[T Item](namespace string, store Store, decode Decoder[T]) Factory[T] {
	return func(itemID uint64, digest merkle.Digest) (*Leaf[T], error) {
		buffer, err := store.Get(Key(namespace, itemID, digest))
		if nil != err {
			return nil, err
		}

		item, err := decode(buffer)
		if nil != err {
			return nil, err
		}
		if item.Hash() != digest {
			return nil, fault.ErrDigestMismatch
		}
		return New(namespace, store, itemID, item), nil
	}
}

func (l *Leaf[T]) ItemID() uint64 {
	return l.itemID
}

func (l *Leaf[T]) Item() T {
	return l.item
}

func (l *Leaf[T]) Digest() merkle.Digest {
	return l.item.Hash()
}

func (l *Leaf[T]) Key() []byte {
	return Key(l.namespace, l.itemID, l.item.Hash())
}

func (l *Leaf[T]) Serialise() []byte {
	return l.item.Encode()
}

// ToDB - write the encoded item under its key
func (l *Leaf[T]) ToDB() error {
	return l.store.Put(l.Key(), l.Serialise())
}

// Delete - remove this version of the leaf
func (l *Leaf[T]) Delete() error {
	return l.store.Delete(l.Key())
}
