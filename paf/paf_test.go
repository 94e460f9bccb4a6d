// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paf

import (
	"strings"
	"testing"

	"gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestParseValid(c *check.C) {
	data := "seq1\t100\t10\t20\t+\tt1\t200\t30\t40\t10\t20\t255\tcg:Z:10M\n"
	records, err := Parse(strings.NewReader(data))
	c.Assert(err, check.IsNil)
	c.Assert(records, check.HasLen, 1)
	c.Check(records[0], check.Equals, Record{
		QueryName:    "seq1",
		QueryLength:  100,
		QueryStart:   10,
		QueryEnd:     20,
		TargetName:   "t1",
		TargetLength: 200,
		TargetStart:  30,
		TargetEnd:    40,
		Strand:       Forward,
		Cigar:        "10M",
	})
}

func (s *S) TestParseReverseNoCigar(c *check.C) {
	data := "q\t50\t0\t50\t-\tt\t50\t0\t50\t50\t50\t60\n"
	records, err := Parse(strings.NewReader(data))
	c.Assert(err, check.IsNil)
	c.Assert(records, check.HasLen, 1)
	c.Check(records[0].Strand, check.Equals, Reverse)
	c.Check(records[0].Cigar, check.Equals, "")
}

func (s *S) TestParseTooFewFields(c *check.C) {
	_, err := Parse(strings.NewReader("seq1\t100\t10\t20\n"))
	c.Assert(err, check.NotNil)
}

func (s *S) TestParseBadStrand(c *check.C) {
	_, err := Parse(strings.NewReader("seq1\t100\t10\t20\t?\tt1\t200\t30\t40\t10\t20\t255\n"))
	c.Assert(err, check.NotNil)
}
