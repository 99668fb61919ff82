// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/merkledb/ledger"
	"github.com/bitmark-inc/merkledb/merkle"
	"github.com/bitmark-inc/merkledb/record"
)

const (
	testLoggerName = "ledger-test"
)

var emptyLeaf = merkle.NewDigest([]byte("empty"))

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "ledger-test")
	if nil != err {
		panic(err)
	}

	logging := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	os.RemoveAll(dir)
	os.Exit(rc)
}

// an in-memory engine of account states
func newEngine(t *testing.T, depth int) *ledger.Engine[*record.State] {
	e, err := ledger.New(logger.New(testLoggerName), ledger.Config[*record.State]{
		Depth:     depth,
		Hasher:    merkle.SHA3{},
		EmptyLeaf: emptyLeaf,
	})
	if nil != err {
		t.Fatalf("new engine error: %s", err)
	}
	return e
}

func newState(account uint64, balance uint64) *record.State {
	return &record.State{
		AccountID: account,
		TokenID:   1,
		Balance:   balance,
	}
}

func newStates(n int) []*record.State {
	states := make([]*record.State, n)
	for i := range states {
		states[i] = newState(uint64(100+i), uint64(i))
	}
	return states
}

func digests(states []*record.State) []merkle.Digest {
	d := make([]merkle.Digest, len(states))
	for i, s := range states {
		d[i] = s.Hash()
	}
	return d
}
