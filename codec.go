// Copyright ©2012 The bíogo.bam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package impg

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/impg/impg/internal/pool"
)

// xzDictCap is the dictionary capacity used for CIGAR blob compression.
// It is 64 MiB, the dictionary size of xz's highest preset (-9),
// trading the encoder's own memory use for compression ratio;
// CIGAR blobs are cold data, compressed once at build time and
// decompressed only for a selected stabbing hit, so the extra CPU time
// is not on any hot path.
const xzDictCap = 1 << 26

// encodeCigarOps serializes ops as a little-endian length-prefixed list
// of packed 32-bit values.
func encodeCigarOps(ops []CigarOp) []byte {
	buf := pool.GetBuffer(4 + 4*len(ops))
	binary.LittleEndian.PutUint32(buf, uint32(len(ops)))
	for i, op := range ops {
		binary.LittleEndian.PutUint32(buf[4+4*i:], uint32(op))
	}
	return buf
}

func decodeCigarOps(buf []byte) ([]CigarOp, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("%w: truncated cigar op count", ErrCorruptSnapshot)
	}
	n := binary.LittleEndian.Uint32(buf)
	buf = buf[4:]
	if uint64(len(buf)) < uint64(n)*4 {
		return nil, fmt.Errorf("%w: truncated cigar op list", ErrCorruptSnapshot)
	}
	ops := make([]CigarOp, n)
	for i := range ops {
		ops[i] = CigarOp(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return ops, nil
}

// CompressCigar serializes ops to its binary form and XZ-compresses it
// at maximum effort. The result is the raw XZ byte stream persisted in
// a QueryMetadata's compressed CIGAR blob.
func CompressCigar(ops []CigarOp) ([]byte, error) {
	raw := encodeCigarOps(ops)
	defer pool.PutBuffer(raw)

	var out bytes.Buffer
	cfg := xz.WriterConfig{DictCap: xzDictCap}
	if err := cfg.Verify(); err != nil {
		return nil, fmt.Errorf("impg: xz writer config: %w", err)
	}
	w, err := cfg.NewWriter(&out)
	if err != nil {
		return nil, fmt.Errorf("impg: xz writer: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return nil, fmt.Errorf("impg: xz compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("impg: xz compress: %w", err)
	}
	return out.Bytes(), nil
}

// DecompressCigar reverses CompressCigar. A failure here signals a
// corrupt snapshot or blob and is always fatal.
func DecompressCigar(blob []byte) ([]CigarOp, error) {
	r, err := xz.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	ops, err := decodeCigarOps(raw)
	if err != nil {
		return nil, err
	}
	return ops, nil
}
