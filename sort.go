// Copyright ©2012 The bíogo.bam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package impg

import (
	"sort"

	"github.com/impg/impg/interval"
)

// sortGroupsDeterministically orders each per-target group of entries
// by (target_start, target_end, query_id). Parallel construction is
// deterministic in content but not in per-target record order; this
// restores a fixed order for callers that need reproducible output.
func sortGroupsDeterministically(grouped map[uint32][]interval.Entry) {
	for id := range grouped {
		entries := grouped[id]
		sort.Slice(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			if a.First != b.First {
				return a.First < b.First
			}
			if a.Last != b.Last {
				return a.Last < b.Last
			}
			ma := a.Payload.(*QueryMetadata)
			mb := b.Payload.(*QueryMetadata)
			return ma.QueryID < mb.QueryID
		})
	}
}
