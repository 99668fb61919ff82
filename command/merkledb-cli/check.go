// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strconv"

	"github.com/bitmark-inc/merkledb/fault"
)

var (
	ErrRequiredConfigFile = fault.InvalidError("config file is required")
	ErrRequiredFileName   = fault.InvalidError("file name is required")
	ErrRequiredID         = fault.InvalidError("leaf id is required")
	ErrRequiredDepth      = fault.InvalidError("subtree depth is required")
)

// config is required
func checkConfigFile(file string) (string, error) {
	if "" == file {
		return "", ErrRequiredConfigFile
	}

	file = os.ExpandEnv(file)
	return file, nil
}

// check for non-blank file name
func checkFileName(fileName string) (string, error) {
	if "" == fileName {
		return "", ErrRequiredFileName
	}

	return fileName, nil
}

// leaf id is required, decimal or 0x-prefixed hex
func checkID(id string) (uint64, error) {
	if "" == id {
		return 0, ErrRequiredID
	}
	return strconv.ParseUint(id, 0, 64)
}

// depth must be set, range is checked by the ledger
func checkDepth(depth int, set bool) (int, error) {
	if !set {
		return 0, ErrRequiredDepth
	}
	return depth, nil
}
