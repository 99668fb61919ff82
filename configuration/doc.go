// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// most of base Lua is available such as reading files to set key data
// and getenv to extract environment supplied items.
//
// the file must return a table, e.g.:
//
//   local M = {}
//   M.data_directory = "."
//   M.ledger = { depth = 32, hasher = "sha3", namespace = "state" }
//   M.database = { directory = "data", name = "merkledb.leveldb" }
//   M.logging = { directory = "log", file = "merkledb.log", levels = { DEFAULT = "info" } }
//   return M
package configuration
