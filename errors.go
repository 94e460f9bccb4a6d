// Copyright ©2012 The bíogo.bam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package impg

import "errors"

// ErrInvalidCigarOp is returned by NewCigarOp when the opcode is
// outside {'=','X','I','D'} or the length does not fit in 30 bits.
var ErrInvalidCigarOp = errors.New("impg: invalid cigar operation")

// ErrInvalidCigarFormat is returned by ParseCigar when the string is
// not a well-formed (digits opcode)* run.
var ErrInvalidCigarFormat = errors.New("impg: invalid cigar format")

// ErrCorruptSnapshot signals that a decompression or binary decoding
// step failed while loading a persisted snapshot. It is fatal to the
// Impg being loaded.
var ErrCorruptSnapshot = errors.New("impg: corrupt snapshot")
