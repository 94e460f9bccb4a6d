// Copyright ©2012 The bíogo.bam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dump provides a small structural debug-dump helper used by
// Impg.Dump.
package dump

import (
	"fmt"
	"io"
	"sort"

	"github.com/kortschak/utter"
)

// TreeSizes writes a sorted, human-readable summary of per-target tree
// sizes to w.
func TreeSizes(w io.Writer, sizes map[uint32]int) {
	ids := make([]uint32, 0, len(sizes))
	for id := range sizes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fmt.Fprintf(w, "target %d: %d entries\n", id, sizes[id])
	}
}

// Struct writes a fully expanded, Go-syntax dump of v to w.
func Struct(w io.Writer, v interface{}) {
	utter.Fdump(w, v)
}
