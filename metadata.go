// Copyright ©2012 The bíogo.bam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package impg

import (
	"fmt"

	"github.com/impg/impg/paf"
)

// QueryMetadata is a single alignment's record: its endpoints on the
// target and query sequences, its strand, and its CIGAR, stored
// compressed.
type QueryMetadata struct {
	QueryID         uint32
	TargetStart     int32
	TargetEnd       int32
	QueryStart      int32
	QueryEnd        int32
	Strand          paf.Strand
	CompressedCigar []byte
}

// NewQueryMetadata validates and builds a QueryMetadata for the given
// alignment coordinates and CIGAR. It returns an error if the
// endpoints are inverted or if the CIGAR's consumed lengths disagree
// with the declared target/query spans.
func NewQueryMetadata(queryID uint32, targetStart, targetEnd, queryStart, queryEnd int32, strand paf.Strand, ops []CigarOp) (*QueryMetadata, error) {
	if targetStart > targetEnd {
		return nil, fmt.Errorf("impg: target_start %d > target_end %d", targetStart, targetEnd)
	}
	if queryStart > queryEnd {
		return nil, fmt.Errorf("impg: query_start %d > query_end %d", queryStart, queryEnd)
	}

	var targetSum, querySum int64
	for _, op := range ops {
		targetSum += int64(op.TargetDelta())
		querySum += int64(abs32(op.QueryDelta(strand)))
	}
	if len(ops) > 0 {
		if targetSum != int64(targetEnd-targetStart) {
			return nil, fmt.Errorf("impg: cigar target span %d != declared %d", targetSum, targetEnd-targetStart)
		}
		if querySum != int64(queryEnd-queryStart) {
			return nil, fmt.Errorf("impg: cigar query span %d != declared %d", querySum, queryEnd-queryStart)
		}
	}

	compressed, err := CompressCigar(ops)
	if err != nil {
		return nil, err
	}

	return &QueryMetadata{
		QueryID:         queryID,
		TargetStart:     targetStart,
		TargetEnd:       targetEnd,
		QueryStart:      queryStart,
		QueryEnd:        queryEnd,
		Strand:          strand,
		CompressedCigar: compressed,
	}, nil
}

// CigarOps decompresses and decodes the CIGAR stored in m.
func (m *QueryMetadata) CigarOps() ([]CigarOp, error) {
	return DecompressCigar(m.CompressedCigar)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
