// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/autoviz/autoviz/chart"
	"github.com/autoviz/autoviz/tabular"
)

type colClass int

const (
	colText colClass = iota
	colNumeric
	colTemporal
)

type colSpec struct {
	name  string
	class colClass
}

// tableColumns lists the bound columns a kind draws from, with the
// treatment each needs. Tooltip columns are always role-bound, so
// this is the full working set.
func tableColumns(spec chart.Spec) []colSpec {
	var cols []colSpec
	seen := make(map[string]bool)
	add := func(role chart.Role, class colClass) {
		name := spec.Role(role)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		cols = append(cols, colSpec{name, class})
	}
	add(chart.RoleDate, colTemporal)
	if spec.Kind == chart.Bars {
		add(chart.RoleX, colText)
	} else {
		add(chart.RoleX, colNumeric)
	}
	add(chart.RoleY, colNumeric)
	add(chart.RoleY2, colNumeric)
	add(chart.RoleSize, colNumeric)
	add(chart.RoleColor, colText)
	add(chart.RoleShape, colText)
	return cols
}

// plotTable converts the bound columns into a typed gg table,
// dropping rows whose required values are null or not finite.
func plotTable(spec chart.Spec, res *tabular.Result) (*table.Table, error) {
	cols := tableColumns(spec)
	if len(cols) == 0 {
		return nil, errors.New("spec binds no columns")
	}
	for _, tc := range cols {
		if res.Column(tc.name) == nil {
			return nil, fmt.Errorf("column %q is not in the result", tc.name)
		}
	}
	keep := usableRows(res, cols)
	if len(keep) == 0 {
		return nil, errors.New("no rows with usable values to plot")
	}

	b := new(table.Builder)
	for _, tc := range cols {
		col := res.Column(tc.name)
		switch tc.class {
		case colNumeric:
			out := make([]float64, len(keep))
			for i, r := range keep {
				out[i], _ = tabular.Float(col.Values[r])
			}
			b.Add(tc.name, out)
		case colTemporal:
			if ts, ok := timeColumn(col, keep); ok {
				b.Add(tc.name, ts)
			} else {
				b.Add(tc.name, stringColumn(col, keep))
			}
		default:
			b.Add(tc.name, stringColumn(col, keep))
		}
	}
	return b.Done(), nil
}

func usableRows(res *tabular.Result, cols []colSpec) []int {
	var keep []int
rows:
	for i := 0; i < res.NumRows(); i++ {
		for _, tc := range cols {
			v := res.Column(tc.name).Values[i]
			if v == nil {
				continue rows
			}
			if tc.class == colNumeric {
				f, ok := tabular.Float(v)
				if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
					continue rows
				}
			}
		}
		keep = append(keep, i)
	}
	return keep
}

// timeColumn extracts keep's rows as a sortable time slice. A
// temporal column that still carries strings (a name-token match
// whose values never parsed) reports false; the caller falls back to
// strings, which order lexically.
func timeColumn(col *tabular.Column, keep []int) (byTime, bool) {
	out := make(byTime, len(keep))
	for i, r := range keep {
		t, ok := col.Values[r].(time.Time)
		if !ok {
			return nil, false
		}
		out[i] = t
	}
	return out, true
}

func stringColumn(col *tabular.Column, keep []int) []string {
	out := make([]string, len(keep))
	for i, r := range keep {
		out[i] = tabular.FormatValue(col.Values[r])
	}
	return out
}

type byTime []time.Time

func (s byTime) Len() int {
	return len(s)
}

func (s byTime) Less(i, j int) bool {
	return s[i].Before(s[j])
}

func (s byTime) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
