// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/bitmark-inc/merkledb/fault"
)

// SubtreeRoot - compute the root of a depth-deep subtree whose leftmost
// leaves are the given digests and whose remaining leaves are empty
//
// zeros is the empty subtree table of the enclosing tree (see NewZeros)
// so the result can be checked against a witness taken at that level:
//
//   w.Verify(h, SubtreeRoot(h, zeros, depth, leaves), root)
//
// structure is:
//   1. level 0: leaves padded on the right by zeros[0]
//   2. level n: pairs of level n-1, an odd tail is paired with zeros[n-1]
func SubtreeRoot(h Hasher, zeros []Digest, depth int, leaves []Digest) (Digest, error) {
	if nil == h {
		return Digest{}, fault.ErrInvalidHasher
	}
	if depth < 0 || depth >= len(zeros) {
		return Digest{}, fault.ErrInvalidSubtreeDepth
	}
	if uint64(len(leaves)) > uint64(1)<<uint(depth) {
		return Digest{}, fault.ErrBatchTooLarge
	}
	if 0 == len(leaves) {
		return zeros[depth], nil
	}

	work := make([]Digest, len(leaves))
	copy(work, leaves)

	for level := 0; level < depth; level += 1 {
		n := 0
		for i := 0; i < len(work); i += 2 {
			right := zeros[level] // compensate for odd number
			if i+1 < len(work) {
				right = work[i+1]
			}
			work[n] = h.Node(work[i], right)
			n += 1
		}
		work = work[:n]
	}
	return work[0], nil
}
