// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/merkledb/avl"
	"github.com/bitmark-inc/merkledb/fault"
	"github.com/bitmark-inc/merkledb/leaf"
	"github.com/bitmark-inc/merkledb/merkle"
	"github.com/bitmark-inc/merkledb/storage"
)

// Entry - one staged write
type Entry[T leaf.Item] struct {
	ItemID uint64 `json:"itemId"`
	Item   T      `json:"item"`
}

// Checkpoint - a journal length that Revert can return to
type Checkpoint int

// WithWitness - an item and the committed proof of its leaf
type WithWitness[T leaf.Item] struct {
	Item    T              `json:"item"`
	Witness merkle.Witness `json:"witness"`
}

// Subtree - an unoccupied aligned block of 2^Depth leaves
//
// the first leaf is Path·2^Depth and Witness proves the subtree root
type Subtree struct {
	Path    uint64         `json:"path"`
	Depth   int            `json:"depth"`
	Witness merkle.Witness `json:"witness"`
}

// Config - parameters of a new engine
//
// Persistence is optional, when set Namespace and Decode are required
type Config[T leaf.Item] struct {
	Depth       int
	Hasher      merkle.Hasher
	EmptyLeaf   merkle.Digest
	Namespace   string
	Persistence Persistence
	Decode      leaf.Decoder[T]
}

// Engine - journalled item store over a sparse merkle tree
type Engine[T leaf.Item] struct {
	sync.RWMutex

	log         *logger.L
	namespace   string
	persistence Persistence
	decode      leaf.Decoder[T]

	tree  *merkle.Tree
	items map[uint64]T

	// pending writes: cache is the latest item per id in journal
	cache   map[uint64]T
	journal []Entry[T]
}

// New - create an empty engine
func New[T leaf.Item](log *logger.L, cfg Config[T]) (*Engine[T], error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	if nil != cfg.Persistence {
		if "" == cfg.Namespace {
			return nil, fault.ErrInvalidNamespace
		}
		if nil == cfg.Decode {
			return nil, fault.ErrInvalidDecoder
		}
	}

	tree, err := merkle.NewTree(cfg.Hasher, cfg.Depth, cfg.EmptyLeaf)
	if nil != err {
		return nil, err
	}

	log.Infof("depth: %d  hasher: %s  empty: %s  root: %s", cfg.Depth, cfg.Hasher.Name(), cfg.EmptyLeaf, tree.Root())

	return &Engine[T]{
		log:         log,
		namespace:   cfg.Namespace,
		persistence: cfg.Persistence,
		decode:      cfg.Decode,
		tree:        tree,
		items:       make(map[uint64]T),
		cache:       make(map[uint64]T),
	}, nil
}

// Root - root digest of the committed tree
func (e *Engine[T]) Root() merkle.Digest {
	e.RLock()
	defer e.RUnlock()

	return e.tree.Root()
}

// Depth - levels of the tree
func (e *Engine[T]) Depth() int {
	e.RLock()
	defer e.RUnlock()

	return e.tree.Depth()
}

// SetSize - number of leaves
func (e *Engine[T]) SetSize() uint64 {
	e.RLock()
	defer e.RUnlock()

	return e.tree.SetSize()
}

// Hasher - node hasher of the tree
func (e *Engine[T]) Hasher() merkle.Hasher {
	e.RLock()
	defer e.RUnlock()

	return e.tree.Hasher()
}

// Get - the pending item if any, otherwise the committed one
func (e *Engine[T]) Get(itemID uint64) (T, error) {
	e.RLock()
	defer e.RUnlock()

	return e.get(itemID)
}

func (e *Engine[T]) get(itemID uint64) (T, error) {
	var nothing T
	if itemID >= e.tree.SetSize() {
		return nothing, fault.ErrItemIDOutOfRange
	}
	if item, ok := e.cache[itemID]; ok {
		return item, nil
	}
	if item, ok := e.items[itemID]; ok {
		return item, nil
	}
	return nothing, fault.ErrItemNotFound
}

// GetWithWitness - item as Get and the witness of its committed leaf
//
// a pending item will not verify against the witness until committed
func (e *Engine[T]) GetWithWitness(itemID uint64) (WithWitness[T], error) {
	e.RLock()
	defer e.RUnlock()

	item, err := e.get(itemID)
	if nil != err {
		return WithWitness[T]{}, err
	}
	w, err := e.tree.Witness(itemID, 0)
	if nil != err {
		return WithWitness[T]{}, err
	}
	return WithWitness[T]{
		Item:    item,
		Witness: w,
	}, nil
}

// Update - stage a write, the tree is unchanged until Commit
func (e *Engine[T]) Update(itemID uint64, item T) error {
	e.Lock()
	defer e.Unlock()

	return e.update(itemID, item)
}

func (e *Engine[T]) update(itemID uint64, item T) error {
	if itemID >= e.tree.SetSize() {
		return fault.ErrItemIDOutOfRange
	}

	e.cache[itemID] = item
	e.journal = append(e.journal, Entry[T]{
		ItemID: itemID,
		Item:   item,
	})

	e.log.Debugf("stage: %d  pending: %d", itemID, len(e.journal))
	return nil
}

// Create - Update an id that has neither a committed nor a pending item
func (e *Engine[T]) Create(itemID uint64, item T) error {
	e.Lock()
	defer e.Unlock()

	if itemID >= e.tree.SetSize() {
		return fault.ErrItemIDOutOfRange
	}
	if _, ok := e.items[itemID]; ok {
		return fault.ErrAlreadyExists
	}
	if _, ok := e.cache[itemID]; ok {
		return fault.ErrAlreadyExists
	}
	return e.update(itemID, item)
}

// Checkpoint - current journal position
func (e *Engine[T]) Checkpoint() Checkpoint {
	e.RLock()
	defer e.RUnlock()

	return Checkpoint(len(e.journal))
}

// Revert - drop every write staged after the checkpoint
//
// Revert(0) discards all pending writes
func (e *Engine[T]) Revert(cp Checkpoint) {
	e.Lock()
	defer e.Unlock()

	n := int(cp)
	if n < 0 || n > len(e.journal) {
		e.log.Warnf("revert: checkpoint: %d  clamped to journal: 0..%d", n, len(e.journal))
		if n < 0 {
			n = 0
		} else {
			n = len(e.journal)
		}
	}

	// clear the tail so dropped items can be collected
	for i := n; i < len(e.journal); i += 1 {
		e.journal[i] = Entry[T]{}
	}
	e.journal = e.journal[:n]

	e.cache = make(map[uint64]T, len(e.journal))
	for _, entry := range e.journal {
		e.cache[entry.ItemID] = entry.Item
	}

	e.log.Debugf("revert: checkpoint: %d  pending items: %d", n, len(e.cache))
}

// Pending - number of staged writes
func (e *Engine[T]) Pending() int {
	e.RLock()
	defer e.RUnlock()

	return len(e.journal)
}

// Entries - copy of the journal in staging order
func (e *Engine[T]) Entries() []Entry[T] {
	e.RLock()
	defer e.RUnlock()

	entries := make([]Entry[T], len(e.journal))
	copy(entries, e.journal)
	return entries
}

// Commit - apply the journal to the tree in staging order
//
// with persistence the leaves, index and new root are written in one
// storage transaction before any item is applied; if that fails the
// tree is restored and nothing changes
func (e *Engine[T]) Commit() error {
	e.Lock()
	defer e.Unlock()

	if 0 == len(e.journal) {
		return nil
	}

	// leaf digests before this commit, for undo
	previous := make(map[uint64]merkle.Digest, len(e.cache))
	for itemID := range e.cache {
		d, err := e.tree.Node(0, itemID)
		if nil != err {
			fault.Panicf("ledger: commit: pending item: %d  error: %s", itemID, err)
		}
		previous[itemID] = d
	}

	for _, entry := range e.journal {
		if err := e.tree.UpdateSingle(entry.ItemID, entry.Item.Hash()); nil != err {
			fault.Panicf("ledger: commit: item: %d  error: %s", entry.ItemID, err)
		}
	}

	if nil != e.persistence {
		if err := e.store(); nil != err {
			e.log.Errorf("commit: entries: %d  error: %s", len(e.journal), err)
			for itemID, d := range previous {
				if err := e.tree.UpdateSingle(itemID, d); nil != err {
					fault.Panicf("ledger: commit undo: item: %d  error: %s", itemID, err)
				}
			}
			return err
		}
	}

	for _, entry := range e.journal {
		e.items[entry.ItemID] = entry.Item
	}

	e.log.Infof("commit: entries: %d  items: %d  root: %s", len(e.journal), len(e.items), e.tree.Root())

	e.journal = nil
	e.cache = make(map[uint64]T)
	return nil
}

// write the journal and the current tree root in one transaction
func (e *Engine[T]) store() error {
	trx, err := e.persistence.Begin()
	if nil != err {
		return err
	}

	leaves := storage.Staged(trx, e.persistence.Leaves())
	index := e.persistence.Index()

	for _, entry := range e.journal {
		l := leaf.New(e.namespace, leaves, entry.ItemID, entry.Item)
		if err := l.ToDB(); nil != err {
			trx.Abort()
			return err
		}
		digest := l.Digest()
		trx.Put(index, indexKey(entry.ItemID), digest[:])
	}

	stageMeta(trx, e.persistence.Meta(), e.tree)

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}
	return nil
}

// FindVacantSubtree - leftmost block of 2^subtreeDepth leaves that is
// empty in the committed tree and has no pending writes
func (e *Engine[T]) FindVacantSubtree(subtreeDepth int) (Subtree, error) {
	e.RLock()
	defer e.RUnlock()

	return e.findVacantSubtree(subtreeDepth)
}

func (e *Engine[T]) findVacantSubtree(subtreeDepth int) (Subtree, error) {
	depth := e.tree.Depth()
	if subtreeDepth < 0 || subtreeDepth > depth {
		return Subtree{}, fault.ErrInvalidSubtreeDepth
	}

	// subtree roots sit subtreeDepth above the leaves
	committed, err := e.tree.Occupied(subtreeDepth)
	if nil != err {
		return Subtree{}, err
	}

	pending := avl.New[struct{}]()
	for itemID := range e.cache {
		pending.Insert(itemID>>uint(subtreeDepth), struct{}{})
	}

	// lowest path missing from both ascending walks
	path := uint64(0)
	p := pending.First()
search_loop:
	for {
		switch {
		case nil != committed && committed.Key() < path:
			committed = committed.Next()
		case nil != p && p.Key() < path:
			p = p.Next()
		case nil != committed && committed.Key() == path:
			path += 1
		case nil != p && p.Key() == path:
			path += 1
		default:
			break search_loop
		}
	}

	if path >= uint64(1)<<uint(depth-subtreeDepth) {
		e.log.Debugf("vacant: subtree depth: %d  full", subtreeDepth)
		return Subtree{}, fault.ErrTreeFull
	}

	w, err := e.tree.Witness(path, subtreeDepth)
	if nil != err {
		return Subtree{}, err
	}

	e.log.Debugf("vacant: subtree depth: %d  path: %d", subtreeDepth, path)

	return Subtree{
		Path:    path,
		Depth:   subtreeDepth,
		Witness: w,
	}, nil
}

// UpdateBatch - stage items into consecutive leaves from path·2^depth
//
// all ids are checked before anything is staged
func (e *Engine[T]) UpdateBatch(path uint64, depth int, items []T) error {
	e.Lock()
	defer e.Unlock()

	return e.updateBatch(path, depth, items)
}

func (e *Engine[T]) updateBatch(path uint64, depth int, items []T) error {
	if depth < 0 || depth > e.tree.Depth() {
		return fault.ErrInvalidSubtreeDepth
	}
	if uint64(len(items)) > uint64(1)<<uint(depth) {
		return fault.ErrBatchTooLarge
	}
	if path >= uint64(1)<<uint(e.tree.Depth()-depth) {
		return fault.ErrItemIDOutOfRange
	}

	first := path << uint(depth)
	for i, item := range items {
		if err := e.update(first+uint64(i), item); nil != err {
			fault.Panicf("ledger: batch: path: %d  item: %d  error: %s", path, i, err)
		}
	}
	return nil
}

// InsertSubtree - stage items into the smallest vacant subtree that
// holds them all
//
// the search and the staging happen under one lock so no other writer
// can claim the subtree in between
func (e *Engine[T]) InsertSubtree(items []T) (Subtree, error) {
	if 0 == len(items) {
		return Subtree{}, fault.ErrEmptyBatch
	}

	subtreeDepth := 0
	for uint64(1)<<uint(subtreeDepth) < uint64(len(items)) {
		subtreeDepth += 1
	}

	e.Lock()
	defer e.Unlock()

	if subtreeDepth > e.tree.Depth() {
		return Subtree{}, fault.ErrBatchTooLarge
	}

	s, err := e.findVacantSubtree(subtreeDepth)
	if nil != err {
		return Subtree{}, err
	}
	if err := e.updateBatch(s.Path, s.Depth, items); nil != err {
		return Subtree{}, err
	}
	return s, nil
}
