// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheGetSet(t *testing.T) {
	c := newCache()

	_, deleted, found := c.Get("missing")
	assert.False(t, found)
	assert.False(t, deleted)

	c.Set(dbPut, "key", []byte("value"))
	value, deleted, found := c.Get("key")
	assert.True(t, found)
	assert.False(t, deleted)
	assert.Equal(t, []byte("value"), value)

	c.Set(dbDelete, "key", nil)
	value, deleted, found = c.Get("key")
	assert.True(t, found, "delete must be remembered")
	assert.True(t, deleted)
	assert.Nil(t, value)

	c.Clear()
	_, _, found = c.Get("key")
	assert.False(t, found)
}
