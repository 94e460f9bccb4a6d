// Copyright ©2012 The bíogo.bam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package seqidx provides a thread-safe bidirectional mapping between
// sequence names and the opaque integer ids the core index uses to
// refer to them.
package seqidx

import "sync"

// SequenceIndex interns sequence names to ids. Ids are minted on first
// insertion of a name and never change afterward, the same way a SAM
// Header fixes a Reference's id the moment it is added.
type SequenceIndex struct {
	mu    sync.RWMutex
	ids   map[string]uint32
	names []string
}

// New returns an empty SequenceIndex.
func New() *SequenceIndex {
	return &SequenceIndex{ids: make(map[string]uint32)}
}

// GetOrInsertID returns the id for name, minting a new one if name has
// not been seen before.
func (s *SequenceIndex) GetOrInsertID(name string) uint32 {
	s.mu.RLock()
	id, ok := s.ids[name]
	s.mu.RUnlock()
	if ok {
		return id
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.ids[name]; ok {
		return id
	}
	id = uint32(len(s.names))
	s.ids[name] = id
	s.names = append(s.names, name)
	return id
}

// GetID returns the id for name and reports whether name has been
// interned.
func (s *SequenceIndex) GetID(name string) (uint32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.ids[name]
	return id, ok
}

// Name returns the name for id and reports whether id is known.
func (s *SequenceIndex) Name(id uint32) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(id) >= len(s.names) {
		return "", false
	}
	return s.names[id], true
}

// Len returns the number of distinct interned names.
func (s *SequenceIndex) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

// Snapshot is the serializable form of a SequenceIndex: the names in
// id order, id i holding the name minted for id i.
type Snapshot struct {
	Names []string
}

// ToSnapshot returns a serializable copy of s.
func (s *SequenceIndex) ToSnapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.names))
	copy(names, s.names)
	return &Snapshot{Names: names}
}

// FromSnapshot rebuilds a SequenceIndex from a Snapshot produced by
// ToSnapshot.
func FromSnapshot(snap *Snapshot) *SequenceIndex {
	s := New()
	s.names = make([]string, len(snap.Names))
	copy(s.names, snap.Names)
	for i, name := range s.names {
		s.ids[name] = uint32(i)
	}
	return s
}
