// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - the account state records stored in ledger leaves
//
// a record is packed as a varint tag code followed by its fields, each
// a varint, and its leaf digest is the SHA3-256 of the packed bytes
package record
