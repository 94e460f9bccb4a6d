// Copyright ©2012 The bíogo.bam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package impg

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/impg/impg/interval"
	"github.com/impg/impg/seqidx"
)

// SerializableInterval is the persisted form of one IntervalIndex
// entry: its half-open target range and the QueryMetadata it carries.
type SerializableInterval struct {
	First, Last int32
	Metadata    QueryMetadata
}

// Snapshot is the full persisted form of an Impg: the per-target
// interval lists and the SequenceIndex naming the sequences they
// refer to. Writing it to a particular on-disk framing is left to
// the caller.
type Snapshot struct {
	Trees    map[uint32][]SerializableInterval
	SeqIndex *seqidx.Snapshot
}

// ToSnapshot returns a serializable snapshot of g.
func (g *Impg) ToSnapshot() *Snapshot {
	trees := make(map[uint32][]SerializableInterval, len(g.trees))
	for targetID, ix := range g.trees {
		entries := ix.Entries()
		list := make([]SerializableInterval, len(entries))
		for i, e := range entries {
			list[i] = SerializableInterval{
				First:    e.First,
				Last:     e.Last,
				Metadata: *e.Payload.(*QueryMetadata),
			}
		}
		trees[targetID] = list
	}
	return &Snapshot{Trees: trees, SeqIndex: g.seqIdx.ToSnapshot()}
}

// FromSnapshot rebuilds an Impg from a Snapshot produced by
// ToSnapshot (or by DecodeSnapshot). It answers every query
// identically to the Impg the snapshot was taken from.
func FromSnapshot(snap *Snapshot) (*Impg, error) {
	trees := make(map[uint32]*interval.Index, len(snap.Trees))
	for targetID, list := range snap.Trees {
		entries := make([]interval.Entry, len(list))
		for i, si := range list {
			md := si.Metadata
			entries[i] = interval.Entry{First: si.First, Last: si.Last, Payload: &md}
		}
		ix, err := interval.Build(entries)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		trees[targetID] = ix
	}
	return &Impg{trees: trees, seqIdx: seqidx.FromSnapshot(snap.SeqIndex)}, nil
}

// EncodeSnapshot gob-encodes snap to w.
func EncodeSnapshot(snap *Snapshot, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("impg: encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot gob-decodes a Snapshot from r. A decode failure is a
// corruption signal and is reported as ErrCorruptSnapshot.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return &snap, nil
}
