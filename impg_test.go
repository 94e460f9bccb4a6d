// Copyright ©2012 The bíogo.bam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package impg

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/kr/pretty"

	"github.com/impg/impg/paf"
)

func buildTestImpg(t *testing.T) (*Impg, map[string]uint32) {
	t.Helper()
	records := []paf.Record{
		{
			QueryName: "Q1", QueryLength: 100, QueryStart: 0, QueryEnd: 100,
			TargetName: "T", TargetLength: 100, TargetStart: 0, TargetEnd: 100,
			Strand: paf.Forward, Cigar: "100=",
		},
		{
			QueryName: "Q2", QueryLength: 100, QueryStart: 0, QueryEnd: 100,
			TargetName: "Q1", TargetLength: 100, TargetStart: 0, TargetEnd: 100,
			Strand: paf.Forward, Cigar: "100=",
		},
		{
			// A record with no CIGAR: a zero-op alignment.
			QueryName: "Q3", QueryLength: 10, QueryStart: 0, QueryEnd: 0,
			TargetName: "T", TargetLength: 100, TargetStart: 40, TargetEnd: 40,
			Strand: paf.Forward,
		},
	}
	g, err := NewFromRecords(records, 2)
	if err != nil {
		t.Fatalf("NewFromRecords: %v", err)
	}
	names := map[string]uint32{}
	for _, n := range []string{"T", "Q1", "Q2", "Q3"} {
		id, ok := g.seqIdx.GetID(n)
		if !ok {
			t.Fatalf("name %q was not interned", n)
		}
		names[n] = id
	}
	return g, names
}

func TestQueryIdentityIsFirst(t *testing.T) {
	g, names := buildTestImpg(t)
	results := g.Query(names["T"], 10, 20)
	if len(results) == 0 || results[0] != (QueryInterval{First: 10, Last: 20, SequenceID: names["T"]}) {
		t.Fatalf("first result = %+v, want identity interval", results[0])
	}
}

func TestQueryUnknownTargetReturnsOnlyIdentity(t *testing.T) {
	g, _ := buildTestImpg(t)
	results := g.Query(999, 0, 10)
	if len(results) != 1 || results[0] != (QueryInterval{First: 0, Last: 10, SequenceID: 999}) {
		t.Fatalf("got %+v, want only the identity interval", results)
	}
}

func TestQueryProjectsThroughAlignment(t *testing.T) {
	g, names := buildTestImpg(t)
	results := g.Query(names["T"], 10, 20)
	want := QueryInterval{First: 10, Last: 20, SequenceID: names["Q1"]}
	found := false
	for _, r := range results[1:] {
		if r == want {
			found = true
		}
	}
	if !found {
		t.Fatalf("results %+v do not contain %+v", results, want)
	}
}

func TestQueryTransitiveReachesSecondHop(t *testing.T) {
	g, names := buildTestImpg(t)
	results := g.QueryTransitive(names["T"], 10, 20)

	wantQ1 := QueryInterval{First: 10, Last: 20, SequenceID: names["Q1"]}
	wantQ2 := QueryInterval{First: 10, Last: 20, SequenceID: names["Q2"]}

	var sawQ1, sawQ2 bool
	for _, r := range results {
		if r == wantQ1 {
			sawQ1 = true
		}
		if r == wantQ2 {
			sawQ2 = true
		}
	}
	if !sawQ1 {
		t.Fatalf("query_transitive did not reach Q1: %+v", results)
	}
	if !sawQ2 {
		t.Fatalf("query_transitive did not reach Q2 through the second hop: %+v", results)
	}
}

func TestQueryTransitiveIdentityIsFirst(t *testing.T) {
	g, names := buildTestImpg(t)
	results := g.QueryTransitive(names["T"], 10, 20)
	if results[0] != (QueryInterval{First: 10, Last: 20, SequenceID: names["T"]}) {
		t.Fatalf("first result = %+v, want identity interval", results[0])
	}
}

func TestQueryTransitiveSupersetsQuery(t *testing.T) {
	g, names := buildTestImpg(t)
	direct := g.Query(names["T"], 10, 20)
	transitive := g.QueryTransitive(names["T"], 10, 20)

	directSet := map[QueryInterval]int{}
	for _, r := range direct {
		directSet[r]++
	}
	transSet := map[QueryInterval]int{}
	for _, r := range transitive {
		transSet[r]++
	}
	for r, n := range directSet {
		if transSet[r] < n {
			t.Fatalf("transitive result missing %+v seen in direct query", r)
		}
	}
}

func TestQueryTransitiveTerminates(t *testing.T) {
	// A direct cycle: T -> Q1 -> T. The visited set must stop the walk.
	records := []paf.Record{
		{QueryName: "Q1", QueryStart: 0, QueryEnd: 100, TargetName: "T", TargetStart: 0, TargetEnd: 100, Strand: paf.Forward, Cigar: "100="},
		{QueryName: "T", QueryStart: 0, QueryEnd: 100, TargetName: "Q1", TargetStart: 0, TargetEnd: 100, Strand: paf.Forward, Cigar: "100="},
	}
	g, err := NewFromRecords(records, 1)
	if err != nil {
		t.Fatalf("NewFromRecords: %v", err)
	}
	tID, _ := g.seqIdx.GetID("T")

	done := make(chan []QueryInterval, 1)
	go func() { done <- g.QueryTransitive(tID, 10, 20) }()
	select {
	case results := <-done:
		if len(results) == 0 {
			t.Fatal("expected at least the identity interval")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("query_transitive did not terminate on a cyclic alignment graph")
	}
}

func TestDroppedRecordDoesNotFailBuild(t *testing.T) {
	records := []paf.Record{
		{QueryName: "Q1", QueryStart: 0, QueryEnd: 10, TargetName: "T", TargetStart: 0, TargetEnd: 10, Strand: paf.Forward, Cigar: "5Q"},
		{QueryName: "Q2", QueryStart: 0, QueryEnd: 10, TargetName: "T", TargetStart: 0, TargetEnd: 10, Strand: paf.Forward, Cigar: "10="},
	}
	g, err := NewFromRecords(records, 1)
	if err != nil {
		t.Fatalf("NewFromRecords: %v", err)
	}
	tID, _ := g.seqIdx.GetID("T")
	results := g.Query(tID, 0, 10)
	if len(results) != 2 {
		t.Fatalf("got %d results, want identity + the one surviving record: %+v", len(results), results)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	g, names := buildTestImpg(t)

	var buf bytes.Buffer
	if err := EncodeSnapshot(g.ToSnapshot(), &buf); err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}
	snap, err := DecodeSnapshot(&buf)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	rebuilt, err := FromSnapshot(snap)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	for _, id := range names {
		want := normalize(g.Query(id, 5, 50))
		got := normalize(rebuilt.Query(id, 5, 50))
		if !equalIntervals(want, got) {
			t.Fatalf("target %d: rebuilt query mismatch:\n%s", id, strings.Join(pretty.Diff(want, got), "\n"))
		}
	}
}

func TestDumpWritesTreeSizesAndEntries(t *testing.T) {
	g, names := buildTestImpg(t)

	var buf bytes.Buffer
	g.Dump(&buf)
	out := buf.String()

	wantTarget := fmt.Sprintf("target %d:", names["T"])
	if !strings.Contains(out, wantTarget) {
		t.Fatalf("Dump output missing tree size line %q:\n%s", wantTarget, out)
	}
	if !strings.Contains(out, "QueryMetadata") {
		t.Fatalf("Dump output missing a structural dump of QueryMetadata:\n%s", out)
	}
}

func normalize(results []QueryInterval) []QueryInterval {
	out := append([]QueryInterval(nil), results...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].SequenceID != out[j].SequenceID {
			return out[i].SequenceID < out[j].SequenceID
		}
		if out[i].First != out[j].First {
			return out[i].First < out[j].First
		}
		return out[i].Last < out[j].Last
	})
	return out
}

func equalIntervals(a, b []QueryInterval) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
