// Copyright ©2012 The bíogo.bam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package impg

import "github.com/impg/impg/paf"

// Project maps the target sub-range [rangeStart, rangeEnd] through ops
// — the CIGAR of an alignment whose target starts at targetStart and
// whose query spans [queryStart, queryEnd] on the given strand — to the
// corresponding query sub-range. It is a pure function: it allocates
// nothing but its two-value return and never mutates its arguments.
//
// When no CIGAR operation overlaps the requested range (for example a
// range lying wholly outside the alignment's target span), Project
// falls back to (queryStart, the query cursor's final
// position), a meaningful neighborhood of the request.
func Project(rangeStart, rangeEnd, targetStart, queryStart, queryEnd int32, strand paf.Strand, ops []CigarOp) (int32, int32) {
	targetPos := targetStart
	var queryPos int32
	if strand == paf.Forward {
		queryPos = queryStart
	} else {
		queryPos = queryEnd
	}

	var projectedStart, projectedEnd *int32

	setStart := func(v int32) {
		if projectedStart == nil {
			projectedStart = new(int32)
			*projectedStart = v
		}
	}
	setEnd := func(v int32) {
		if projectedEnd == nil {
			projectedEnd = new(int32)
		}
		*projectedEnd = v
	}

	for _, op := range ops {
		if targetPos > rangeEnd {
			break
		}

		targetDelta := op.TargetDelta()
		queryDelta := op.QueryDelta(strand)

		switch {
		case targetDelta == 0: // insertion in query
			if targetPos >= rangeStart && targetPos <= rangeEnd {
				setStart(queryPos)
				setEnd(queryPos)
			}
			queryPos += queryDelta

		case queryDelta == 0: // deletion in target
			overlapStart := max32(targetPos, rangeStart)
			overlapEnd := min32(targetPos+targetDelta, rangeEnd)
			if overlapStart < overlapEnd {
				setStart(queryPos)
				setEnd(queryPos)
			}
			targetPos += targetDelta

		default: // match or mismatch
			overlapStart := max32(targetPos, rangeStart)
			overlapEnd := min32(targetPos+targetDelta, rangeEnd)
			if overlapStart < overlapEnd {
				dir := int32(1)
				if strand == paf.Reverse {
					dir = -1
				}
				q0 := queryPos + (overlapStart-targetPos)*dir
				q1 := q0 + (overlapEnd-overlapStart)*dir
				setStart(q0)
				setEnd(q1)
			}
			targetPos += targetDelta
			queryPos += queryDelta
		}
	}

	if strand == paf.Reverse {
		projectedStart, projectedEnd = projectedEnd, projectedStart
	}

	start := queryStart
	if projectedStart != nil {
		start = *projectedStart
	}
	end := queryPos
	if projectedEnd != nil {
		end = *projectedEnd
	}
	return start, end
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
