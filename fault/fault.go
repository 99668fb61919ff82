// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type FullError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RangeError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyExists         = ExistsError("item already exists")
	ErrAlreadyInitialised    = ExistsError("already initialised")
	ErrBatchTooLarge         = RangeError("batch does not fit in subtree")
	ErrConfigMismatch        = InvalidError("configuration does not match stored ledger")
	ErrDatabaseVersion       = InvalidError("database version is not supported")
	ErrDigestMismatch        = InvalidError("leaf digest mismatch")
	ErrEmptyBatch            = InvalidError("batch is empty")
	ErrInvalidConfiguration  = InvalidError("configuration must return a table")
	ErrInvalidCount          = InvalidError("invalid count")
	ErrInvalidCursor         = InvalidError("invalid cursor")
	ErrInvalidDecoder        = InvalidError("decoder is required for recovery")
	ErrInvalidDepth          = InvalidError("tree depth is invalid")
	ErrInvalidDigest         = InvalidError("digest is invalid")
	ErrInvalidHasher         = InvalidError("hasher is required")
	ErrInvalidIndexEntry     = InvalidError("leaf index entry is invalid")
	ErrInvalidLoggerChannel  = InvalidError("invalid logger channel")
	ErrInvalidNamespace      = InvalidError("leaf namespace is required")
	ErrInvalidPoolPrefix     = InvalidError("pool has invalid prefix")
	ErrInvalidStructPointer  = InvalidError("invalid struct pointer")
	ErrInvalidSubtreeDepth   = InvalidError("subtree depth is invalid")
	ErrItemIDOutOfRange      = RangeError("item id out of range")
	ErrItemNotFound          = NotFoundError("item not found")
	ErrLevelOutOfRange       = RangeError("tree level out of range")
	ErrNodeIndexOutOfRange   = RangeError("node index out of range")
	ErrNotInitialised        = NotFoundError("not initialised")
	ErrNotStatePack          = InvalidError("not a state pack")
	ErrRecordNotFound        = NotFoundError("record not found")
	ErrRootMismatch          = InvalidError("recovered root does not match stored root")
	ErrTransactionInUse      = ProcessError("transaction already in use")
	ErrTransactionNotStarted = ProcessError("transaction not started")
	ErrTreeFull              = FullError("tree at level is full, no room for subtree insert")
	ErrUnknownHasher         = NotFoundError("hasher is not known")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e FullError) Error() string     { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RangeError) Error() string    { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrFull(e error) bool     { _, ok := e.(FullError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRange(e error) bool    { _, ok := e.(RangeError); return ok }
