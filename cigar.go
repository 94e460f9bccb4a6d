// Copyright ©2012 The bíogo.bam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package impg

import (
	"fmt"

	"github.com/impg/impg/paf"
)

// CigarOp is a single CIGAR operation packed into 32 bits: the top 2
// bits hold the opcode, the low 30 bits hold a non-negative length.
type CigarOp uint32

const (
	lenBits = 30
	lenMask = 1<<lenBits - 1
)

// CigarOpType is the opcode of a CigarOp. Only the explicit extended
// CIGAR alphabet is represented; 'M' is never valid here.
type CigarOpType byte

const (
	CigarEqual    CigarOpType = iota // '=': sequence match.
	CigarMismatch                    // 'X': sequence mismatch.
	CigarInsert                      // 'I': insertion in the query.
	CigarDelete                      // 'D': deletion in the target.
	lastCigarOp
)

var cigarOpTypes = [...]byte{CigarEqual: '=', CigarMismatch: 'X', CigarInsert: 'I', CigarDelete: 'D'}

// String returns the single-character representation of t.
func (t CigarOpType) String() string {
	if t >= lastCigarOp {
		return "?"
	}
	return string(cigarOpTypes[t])
}

func opTypeFor(op byte) (CigarOpType, bool) {
	switch op {
	case '=':
		return CigarEqual, true
	case 'X':
		return CigarMismatch, true
	case 'I':
		return CigarInsert, true
	case 'D':
		return CigarDelete, true
	default:
		return 0, false
	}
}

// NewCigarOp returns the CigarOp for the given length and single
// character opcode ('=', 'X', 'I' or 'D'). It returns ErrInvalidCigarOp
// if op is not in that alphabet or length does not fit in 30 bits.
func NewCigarOp(length int32, op byte) (CigarOp, error) {
	t, ok := opTypeFor(op)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCigarOp, op)
	}
	if length < 0 || length > lenMask {
		return 0, fmt.Errorf("%w: length %d out of range", ErrInvalidCigarOp, length)
	}
	return CigarOp(uint32(t)<<lenBits | uint32(length)), nil
}

// Op returns the single-character opcode of c.
func (c CigarOp) Op() byte { return cigarOpTypes[CigarOpType(c>>lenBits)] }

// Type returns the opcode of c.
func (c CigarOp) Type() CigarOpType { return CigarOpType(c >> lenBits) }

// Len returns the length of c.
func (c CigarOp) Len() int32 { return int32(c & lenMask) }

// TargetDelta returns how far c advances the target coordinate.
func (c CigarOp) TargetDelta() int32 {
	switch c.Type() {
	case CigarEqual, CigarMismatch, CigarDelete:
		return c.Len()
	case CigarInsert:
		return 0
	default:
		panic(fmt.Sprintf("impg: invalid cigar opcode %d", c.Type()))
	}
}

// QueryDelta returns how far c advances the query coordinate under the
// given strand; the result is negative for reverse-strand alignments.
func (c CigarOp) QueryDelta(strand paf.Strand) int32 {
	switch c.Type() {
	case CigarEqual, CigarMismatch, CigarInsert:
		if strand == paf.Forward {
			return c.Len()
		}
		return -c.Len()
	case CigarDelete:
		return 0
	default:
		panic(fmt.Sprintf("impg: invalid cigar opcode %d", c.Type()))
	}
}

// String returns the CIGAR string representation of c, e.g. "35=".
func (c CigarOp) String() string { return fmt.Sprintf("%d%s", c.Len(), c.Type()) }

// ParseCigar parses a CIGAR string of the form (digits opcode)* using
// the extended alphabet {=,X,I,D}. 'M' and any other opcode are
// rejected. A zero-length op is accepted and is a no-op during
// projection.
func ParseCigar(s string) ([]CigarOp, error) {
	if s == "" {
		return nil, nil
	}
	var ops []CigarOp
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			continue
		}
		if i == start {
			return nil, fmt.Errorf("%w: missing length before %q in %q", ErrInvalidCigarFormat, s[i], s)
		}
		n, err := atoi(s[start:i])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCigarFormat, err)
		}
		op, err := NewCigarOp(n, s[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCigarFormat, err)
		}
		ops = append(ops, op)
		start = i + 1
	}
	if start != len(s) {
		return nil, fmt.Errorf("%w: unterminated length run in %q", ErrInvalidCigarFormat, s)
	}
	return ops, nil
}

func atoi(b string) (int32, error) {
	var n int64
	for i := 0; i < len(b); i++ {
		n = n*10 + int64(b[i]-'0')
		if n > lenMask {
			return 0, fmt.Errorf("cigar length overflow in %q", b)
		}
	}
	return int32(n), nil
}
