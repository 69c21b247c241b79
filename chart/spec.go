// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

// A Role names a visual channel a column can bind to.
type Role string

const (
	RoleX     Role = "x"
	RoleY     Role = "y"
	RoleY2    Role = "y2"
	RoleDate  Role = "date"
	RoleColor Role = "color"
	RoleSize  Role = "size"
	RoleShape Role = "shape"
	RoleLat   Role = "lat"
	RoleLon   Role = "lon"
	RoleValue Role = "value"
)

// A Spec is a declarative, renderer-agnostic chart description.
//
// Roles holds the default column binding per role. For roles an
// interactive surface may rebind, Candidates lists the eligible
// columns; the default is always the first candidate. Tooltip is the
// ordered column list a renderer should surface on hover.
type Spec struct {
	Kind       Kind
	Roles      map[Role]string
	Candidates map[Role][]string
	Tooltip    []string
	Title      string
}

// Role returns the column bound to r, or "" if unbound.
func (s *Spec) Role(r Role) string {
	return s.Roles[r]
}
