// Copyright ©2014 The bíogo.bam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interval implements a static, per-target interval index
// supporting overlap ("stabbing") queries over half-open ranges.
package interval

import (
	bstore "github.com/biogo/store/interval"
)

// Entry is one interval stored in an Index, carrying an arbitrary
// payload (a QueryMetadata record, in the core index).
type Entry struct {
	First, Last int32
	Payload     interface{}
}

// node adapts an Entry to the biogo/store/interval.IntInterface
// contract required by IntTree.
type node struct {
	id    uintptr
	r     bstore.IntRange
	entry Entry
}

func (n *node) Range() bstore.IntRange { return n.r }
func (n *node) ID() uintptr            { return n.id }

// Overlap reports whether n touches b under the half-open-but-touch-
// inclusive predicate Stab uses.
func (n *node) Overlap(b bstore.IntRange) bool {
	return n.r.Start <= b.End && b.Start <= n.r.End
}

// rangeQuery is the query value passed to DoMatching; like the query
// type in biogo-examples' brahma.go, it need only implement the
// Overlap half of IntInterface.
type rangeQuery struct {
	start, end int
}

func (q rangeQuery) Overlap(b bstore.IntRange) bool {
	return b.Start <= q.end && q.start <= b.End
}

// Index is a static interval tree over half-open [First, Last) ranges,
// built once from a batch of entries and read-only thereafter. A built
// Index is safe for concurrent Stab calls from multiple goroutines.
type Index struct {
	tree bstore.IntTree
	n    int
}

// Build constructs an Index from entries. Construction is one-shot and
// O(n log n); the resulting Index never changes.
func Build(entries []Entry) (*Index, error) {
	ix := &Index{n: len(entries)}
	for i := range entries {
		n := &node{
			id:    uintptr(i),
			r:     bstore.IntRange{Start: int(entries[i].First), End: int(entries[i].Last)},
			entry: entries[i],
		}
		if err := ix.tree.Insert(n, true); err != nil {
			return nil, err
		}
	}
	ix.tree.AdjustRanges()
	return ix, nil
}

// Stab invokes visit once for each entry I with I.First <= e && I.Last
// >= s, i.e. any overlap with [s, e), including a point touch at
// either endpoint. Visit order is unspecified.
func (ix *Index) Stab(s, e int32, visit func(Entry)) {
	if ix == nil {
		return
	}
	ix.tree.DoMatching(func(iv bstore.IntInterface) (done bool) {
		ent := iv.(*node).entry
		if ent.First <= e && ent.Last >= s {
			visit(ent)
		}
		return false
	}, rangeQuery{start: int(s), end: int(e)})
}

// Len returns the number of entries stored in ix.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return ix.n
}

// Entries returns every stored entry, in unspecified order. It is used
// to rebuild a serializable snapshot of the index.
func (ix *Index) Entries() []Entry {
	if ix == nil {
		return nil
	}
	out := make([]Entry, 0, ix.n)
	ix.tree.Do(func(iv bstore.IntInterface) (done bool) {
		out = append(out, iv.(*node).entry)
		return false
	})
	return out
}
