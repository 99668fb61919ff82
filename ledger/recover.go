// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"encoding/binary"

	"github.com/bitmark-inc/merkledb/fault"
	"github.com/bitmark-inc/merkledb/leaf"
	"github.com/bitmark-inc/merkledb/merkle"
)

// Recover - load the committed items of a fresh engine from persistence
//
// returns the number of items loaded, zero for a database that has
// never been committed to
func (e *Engine[T]) Recover() (int, error) {
	e.Lock()
	defer e.Unlock()

	if nil == e.persistence {
		return 0, fault.ErrNotInitialised
	}
	if 0 != len(e.items) || 0 != len(e.journal) {
		return 0, fault.ErrAlreadyInitialised
	}

	meta := e.persistence.Meta()
	storedRoot, err := meta.Get(metaRootKey)
	if fault.ErrRecordNotFound == err {
		e.log.Info("recover: nothing committed")
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	var root merkle.Digest
	if err := merkle.DigestFromBytes(&root, storedRoot); nil != err {
		return 0, err
	}
	if err := e.checkMeta(); nil != err {
		return 0, err
	}

	tree, err := merkle.NewTree(e.tree.Hasher(), e.tree.Depth(), e.tree.Zero(0))
	if nil != err {
		return 0, err
	}
	items := make(map[uint64]T)
	factory := leaf.NewFactory(e.namespace, e.persistence.Leaves(), e.decode)

	err = e.persistence.Index().NewFetchCursor().Map(func(key []byte, value []byte) error {
		if 8 != len(key) {
			return fault.ErrInvalidIndexEntry
		}
		itemID := binary.BigEndian.Uint64(key)

		var digest merkle.Digest
		if err := merkle.DigestFromBytes(&digest, value); nil != err {
			return fault.ErrInvalidIndexEntry
		}

		l, err := factory(itemID, digest)
		if nil != err {
			e.log.Errorf("recover: item: %d  digest: %s  error: %s", itemID, digest, err)
			return err
		}
		if err := tree.UpdateSingle(itemID, digest); nil != err {
			return err
		}
		items[itemID] = l.Item()
		return nil
	})
	if nil != err {
		return 0, err
	}

	if tree.Root() != root {
		e.log.Errorf("recover: root: %s  expected: %s", tree.Root(), root)
		return 0, fault.ErrRootMismatch
	}

	e.tree = tree
	e.items = items

	e.log.Infof("recover: items: %d  root: %s", len(items), root)
	return len(items), nil
}

// the stored tree parameters must match this engine
func (e *Engine[T]) checkMeta() error {
	meta := e.persistence.Meta()
	empty := e.tree.Zero(0)

	expected := []struct {
		key   []byte
		value []byte
	}{
		{metaDepthKey, depthValue(e.tree.Depth())},
		{metaHasherKey, []byte(e.tree.Hasher().Name())},
		{metaEmptyKey, empty[:]},
	}

	for _, item := range expected {
		value, err := meta.Get(item.key)
		if fault.ErrRecordNotFound == err {
			return fault.ErrConfigMismatch
		} else if nil != err {
			return err
		}
		if !bytes.Equal(item.value, value) {
			e.log.Errorf("recover: %s: %x  expected: %x", item.key, value, item.value)
			return fault.ErrConfigMismatch
		}
	}
	return nil
}
