// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/merkledb/merkle"
)

type rootInfo struct {
	Depth   int           `json:"depth"`
	Hasher  string        `json:"hasher"`
	SetSize uint64        `json:"setSize"`
	Root    merkle.Digest `json:"root"`
}

type verifyInfo struct {
	ID    uint64        `json:"id"`
	Leaf  merkle.Digest `json:"leaf"`
	Root  merkle.Digest `json:"root"`
	Valid bool          `json:"valid"`
}

func runRoot(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	info := rootInfo{
		Depth:   m.engine.Depth(),
		Hasher:  m.engine.Hasher().Name(),
		SetSize: m.engine.SetSize(),
		Root:    m.engine.Root(),
	}
	return printJson(m.w, info)
}

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkID(c.String("id"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "id: %d\n", id)
	}

	item, err := m.engine.Get(id)
	if nil != err {
		return err
	}
	return printJson(m.w, item)
}

func runProof(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkID(c.String("id"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "id: %d\n", id)
	}

	ww, err := m.engine.GetWithWitness(id)
	if nil != err {
		return err
	}
	return printJson(m.w, ww)
}

func runVerify(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkID(c.String("id"))
	if nil != err {
		return err
	}

	ww, err := m.engine.GetWithWitness(id)
	if nil != err {
		return err
	}

	root := m.engine.Root()
	digest := ww.Item.Hash()
	info := verifyInfo{
		ID:    id,
		Leaf:  digest,
		Root:  root,
		Valid: ww.Witness.Verify(m.engine.Hasher(), digest, root),
	}
	return printJson(m.w, info)
}

func runVacant(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	depth, err := checkDepth(c.Int("depth"), c.IsSet("depth"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "subtree depth: %d\n", depth)
	}

	subtree, err := m.engine.FindVacantSubtree(depth)
	if nil != err {
		return err
	}
	return printJson(m.w, subtree)
}
