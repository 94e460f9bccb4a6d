// Copyright ©2012 The bíogo.bam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package impg indexes pairwise sequence alignments so that an
// interval on an indexed target sequence can be projected onto the
// corresponding interval(s) on aligned query sequences, directly or
// transitively across chains of alignments.
package impg

import (
	"io"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/impg/impg/internal/dump"
	"github.com/impg/impg/interval"
	"github.com/impg/impg/paf"
	"github.com/impg/impg/seqidx"
)

// QueryInterval is one result of a Query or QueryTransitive call: the
// half-open range [First, Last) on the sequence named by SequenceID.
type QueryInterval struct {
	First, Last int32
	SequenceID  uint32
}

// Impg is the top-level index: a per-target forest of interval trees
// plus the SequenceIndex that names the sequences the trees refer to.
// Once built it is immutable and safe for concurrent Query and
// QueryTransitive calls from any number of goroutines.
type Impg struct {
	trees  map[uint32]*interval.Index
	seqIdx *seqidx.SequenceIndex
}

// NewFromRecords builds an Impg from a batch of PAF records. Both
// query_name and target_name are interned into a fresh SequenceIndex
// before records are mapped in parallel across workers (GOMAXPROCS if
// workers <= 0); a record whose CIGAR fails to parse, or whose
// endpoints fail QueryMetadata's invariants, is silently dropped
// rather than failing the whole build.
func NewFromRecords(records []paf.Record, workers int) (*Impg, error) {
	seqIdx := seqidx.New()
	for _, rec := range records {
		seqIdx.GetOrInsertID(rec.QueryName)
		seqIdx.GetOrInsertID(rec.TargetName)
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	type mapped struct {
		targetID uint32
		entry    interval.Entry
	}
	out := make([]*mapped, len(records))

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range records {
		i := i
		g.Go(func() error {
			rec := records[i]

			var ops []CigarOp
			if rec.Cigar != "" {
				parsed, err := ParseCigar(rec.Cigar)
				if err != nil {
					return nil // malformed CIGAR: drop the record, not the build.
				}
				ops = parsed
			}

			queryID, _ := seqIdx.GetID(rec.QueryName)
			targetID, _ := seqIdx.GetID(rec.TargetName)

			md, err := NewQueryMetadata(
				queryID,
				int32(rec.TargetStart), int32(rec.TargetEnd),
				int32(rec.QueryStart), int32(rec.QueryEnd),
				rec.Strand, ops,
			)
			if err != nil {
				return nil // invariant violation: drop the record.
			}

			out[i] = &mapped{
				targetID: targetID,
				entry:    interval.Entry{First: md.TargetStart, Last: md.TargetEnd, Payload: md},
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return a non-nil error; bad records are dropped above.

	grouped := make(map[uint32][]interval.Entry)
	for _, m := range out {
		if m == nil {
			continue
		}
		grouped[m.targetID] = append(grouped[m.targetID], m.entry)
	}

	sortGroupsDeterministically(grouped)

	trees := make(map[uint32]*interval.Index, len(grouped))
	for targetID, entries := range grouped {
		ix, err := interval.Build(entries)
		if err != nil {
			return nil, err
		}
		trees[targetID] = ix
	}

	return &Impg{trees: trees, seqIdx: seqIdx}, nil
}

// Query returns the identity interval (range_start, range_end,
// target_id) followed by the projection of [start, end) through every
// alignment stored against target_id. If target_id is unindexed, the
// identity interval is the only result.
func (g *Impg) Query(targetID uint32, start, end int32) []QueryInterval {
	results := []QueryInterval{{First: start, Last: end, SequenceID: targetID}}

	tree, ok := g.trees[targetID]
	if !ok {
		return results
	}

	tree.Stab(start, end, func(e interval.Entry) {
		md := e.Payload.(*QueryMetadata)
		qs, qe := g.project(start, end, md)
		results = append(results, QueryInterval{First: qs, Last: qe, SequenceID: md.QueryID})
	})
	return results
}

// QueryTransitive is Query followed by a traversal that treats each
// projected hit as a new target, recursively projecting [start, end)
// across the alignment graph. A (sequence_id, first, last) triple is
// pushed onto the worklist only the first time it is observed, which
// bounds the traversal to the finite set of such triples reachable
// from the seed and guarantees termination.
func (g *Impg) QueryTransitive(targetID uint32, start, end int32) []QueryInterval {
	results := []QueryInterval{{First: start, Last: end, SequenceID: targetID}}

	type frontier struct {
		id        uint32
		low, high int32
	}
	stack := []frontier{{targetID, start, end}}
	visited := map[frontier]struct{}{}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tree, ok := g.trees[cur.id]
		if !ok {
			continue
		}

		tree.Stab(cur.low, cur.high, func(e interval.Entry) {
			md := e.Payload.(*QueryMetadata)
			qs, qe := g.project(cur.low, cur.high, md)
			results = append(results, QueryInterval{First: qs, Last: qe, SequenceID: md.QueryID})

			if md.QueryID == cur.id {
				return
			}
			todo := frontier{md.QueryID, qs, qe}
			if _, seen := visited[todo]; seen {
				return
			}
			visited[todo] = struct{}{}
			stack = append(stack, todo)
		})
	}
	return results
}

// project decompresses md's CIGAR and projects [start, end) through
// it. Decompression failure signals a corrupt index and is fatal, per
// the core's error-handling contract.
func (g *Impg) project(start, end int32, md *QueryMetadata) (int32, int32) {
	ops, err := md.CigarOps()
	if err != nil {
		panic(err)
	}
	return Project(start, end, md.TargetStart, md.QueryStart, md.QueryEnd, md.Strand, ops)
}

// Dump writes a structural summary of g to w: the number of indexed
// targets and the entry count of each target's tree, followed by a
// verbose Go-syntax dump of every stored QueryMetadata record.
func (g *Impg) Dump(w io.Writer) {
	sizes := make(map[uint32]int, len(g.trees))
	for id, ix := range g.trees {
		sizes[id] = ix.Len()
	}
	dump.TreeSizes(w, sizes)

	ids := make([]uint32, 0, len(g.trees))
	for id := range g.trees {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		for _, e := range g.trees[id].Entries() {
			dump.Struct(w, e.Payload.(*QueryMetadata))
		}
	}
}
