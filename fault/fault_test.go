// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/merkledb/fault"
)

var (
	ErrExistsOne   = fault.ExistsError("exists one ")
	ErrExistsTwo   = fault.ExistsError("exists two")
	ErrFullOne     = fault.FullError("full one")
	ErrFullTwo     = fault.FullError("full two")
	ErrInvalidOne  = fault.InvalidError("invalid one")
	ErrInvalidTwo  = fault.InvalidError("invalid two")
	ErrNotFoundOne = fault.NotFoundError("not found one")
	ErrNotFoundTwo = fault.NotFoundError("not found two")
	ErrProcessOne  = fault.ProcessError("process one")
	ErrProcessTwo  = fault.ProcessError("process two")
	ErrRangeOne    = fault.RangeError("range one")
	ErrRangeTwo    = fault.RangeError("range two")
)

// test that the various errors can be classified
func TestClasses(t *testing.T) {
	errorList := []struct {
		err      error
		exists   bool
		full     bool
		invalid  bool
		notFound bool
		process  bool
		rng      bool
	}{
		{ErrExistsOne, true, false, false, false, false, false},
		{ErrExistsTwo, true, false, false, false, false, false},
		{ErrFullOne, false, true, false, false, false, false},
		{ErrFullTwo, false, true, false, false, false, false},
		{ErrInvalidOne, false, false, true, false, false, false},
		{ErrInvalidTwo, false, false, true, false, false, false},
		{ErrNotFoundOne, false, false, false, true, false, false},
		{ErrNotFoundTwo, false, false, false, true, false, false},
		{ErrProcessOne, false, false, false, false, true, false},
		{ErrProcessTwo, false, false, false, false, true, false},
		{ErrRangeOne, false, false, false, false, false, true},
		{ErrRangeTwo, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrFull(err) != e.full {
			t.Errorf("%d: expected 'full' == %v for err = %v", i, e.full, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrRange(err) != e.rng {
			t.Errorf("%d: expected 'range' == %v for err = %v", i, e.rng, err)
		}
	}
}

// the ledger error kinds must land in their documented classes
func TestLedgerKinds(t *testing.T) {
	if !fault.IsErrRange(fault.ErrItemIDOutOfRange) {
		t.Error("item id out of range is not a range error")
	}
	if !fault.IsErrRange(fault.ErrLevelOutOfRange) || !fault.IsErrRange(fault.ErrNodeIndexOutOfRange) {
		t.Error("tree coordinate errors are not range errors")
	}
	if !fault.IsErrNotFound(fault.ErrItemNotFound) {
		t.Error("item not found is not a not found error")
	}
	if !fault.IsErrExists(fault.ErrAlreadyExists) {
		t.Error("already exists is not an exists error")
	}
	if !fault.IsErrFull(fault.ErrTreeFull) {
		t.Error("tree full is not a full error")
	}
}
