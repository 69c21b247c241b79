// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"encoding/binary"
	"sync"

	"github.com/autoviz/autoviz/tabular"
	"github.com/zeebo/xxh3"
)

// Fingerprint identifies a result's shape: its row count and ordered
// column names. Interactive choices key on it, so reshaping the data
// resets them to defaults.
func Fingerprint(res *tabular.Result) uint64 {
	h := xxh3.New()
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(res.NumRows()))
	h.Write(n[:])
	for _, name := range res.ColumnNames() {
		// NUL keeps name boundaries unambiguous.
		h.Write([]byte{0})
		h.WriteString(name)
	}
	return h.Sum64()
}

type stateKey struct {
	session string
	fp      uint64
	role    Role
}

// A StateStore keeps per-session interactive column choices, scoped
// to a dataset fingerprint and role. The zero value is ready to use
// and safe for concurrent sessions.
type StateStore struct {
	mu sync.Mutex
	m  map[stateKey]string
}

// Set records session's choice of col for role on the dataset
// identified by fp.
func (s *StateStore) Set(session string, fp uint64, role Role, col string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[stateKey]string)
	}
	s.m[stateKey{session, fp, role}] = col
}

// Resolve returns spec with session's stored choices applied. Only
// roles offering candidates can change, and only to one of their
// candidates; stale or unknown choices keep the default binding, so
// a new dataset shape starts from defaults. Swapped columns are also
// swapped in the tooltip list.
func (s *StateStore) Resolve(session string, fp uint64, spec Spec) Spec {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := spec
	var swapped map[string]string
	for role, cands := range spec.Candidates {
		col, ok := s.m[stateKey{session, fp, role}]
		if !ok || col == spec.Roles[role] || !contains(cands, col) {
			continue
		}
		if swapped == nil {
			swapped = make(map[string]string)
			roles := make(map[Role]string, len(spec.Roles))
			for r, c := range spec.Roles {
				roles[r] = c
			}
			out.Roles = roles
		}
		swapped[spec.Roles[role]] = col
		out.Roles[role] = col
	}
	if swapped != nil && len(spec.Tooltip) > 0 {
		tip := make([]string, 0, len(spec.Tooltip))
		seen := make(map[string]bool)
		for _, col := range spec.Tooltip {
			if repl, ok := swapped[col]; ok {
				col = repl
			}
			if !seen[col] {
				seen[col] = true
				tip = append(tip, col)
			}
		}
		out.Tooltip = tip
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
