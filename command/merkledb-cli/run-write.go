// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/merkledb/ledger"
	"github.com/bitmark-inc/merkledb/merkle"
	"github.com/bitmark-inc/merkledb/record"
)

type writeInfo struct {
	ID    uint64        `json:"id"`
	State *record.State `json:"state"`
	Root  merkle.Digest `json:"root"`
}

type insertInfo struct {
	Subtree     ledger.Subtree `json:"subtree"`
	SubtreeRoot merkle.Digest  `json:"subtreeRoot"`
	Count       int            `json:"count"`
	Root        merkle.Digest  `json:"root"`
}

func runCreate(c *cli.Context) error {
	return writeState(c, func(m *metadata, id uint64, s *record.State) error {
		return m.engine.Create(id, s)
	})
}

func runUpdate(c *cli.Context) error {
	return writeState(c, func(m *metadata, id uint64, s *record.State) error {
		return m.engine.Update(id, s)
	})
}

// stage one state with the given operation then commit
func writeState(c *cli.Context, stage func(*metadata, uint64, *record.State) error) error {

	m := c.App.Metadata["config"].(*metadata)

	id, s, err := stateFromFlags(c)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "id: %d\n", id)
		fmt.Fprintf(m.e, "state: %+v\n", *s)
	}

	if err := stage(m, id, s); nil != err {
		return err
	}
	if err := m.engine.Commit(); nil != err {
		return err
	}

	info := writeInfo{
		ID:    id,
		State: s,
		Root:  m.engine.Root(),
	}
	return printJson(m.w, info)
}

// leaf id and account state from the command flags
func stateFromFlags(c *cli.Context) (uint64, *record.State, error) {
	id, err := checkID(c.String("id"))
	if nil != err {
		return 0, nil, err
	}

	s := &record.State{
		AccountID: c.Uint64("account"),
		TokenID:   c.Uint64("token"),
		Balance:   c.Uint64("balance"),
		Nonce:     c.Uint64("nonce"),
	}
	return id, s, nil
}

func runInsert(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName, err := checkFileName(c.String("file"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "reading states from: %s\n", fileName)
	}

	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return err
	}

	states := []*record.State{}
	if err := json.Unmarshal(data, &states); nil != err {
		return err
	}
	for i, s := range states {
		if nil == s {
			return fmt.Errorf("state: %d is null", i)
		}
	}

	subtree, err := m.engine.InsertSubtree(states)
	if nil != err {
		return err
	}

	digests := make([]merkle.Digest, len(states))
	for i, s := range states {
		digests[i] = s.Hash()
	}

	if err := m.engine.Commit(); nil != err {
		return err
	}

	_, empty, err := m.config.Ledger.Resolve()
	if nil != err {
		return err
	}
	zeros := merkle.NewZeros(m.engine.Hasher(), m.engine.Depth(), empty)
	subtreeRoot, err := merkle.SubtreeRoot(m.engine.Hasher(), zeros, subtree.Depth, digests)
	if nil != err {
		return err
	}

	info := insertInfo{
		Subtree:     subtree,
		SubtreeRoot: subtreeRoot,
		Count:       len(states),
		Root:        m.engine.Root(),
	}
	return printJson(m.w, info)
}
