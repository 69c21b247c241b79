// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/go-gg/table"
)

// sumBy collapses each table to one row per distinct key, summing the
// y column. The key is the x column plus any extra columns; other
// columns keep their first-row value. Output rows appear in first-key
// order.
type sumBy struct {
	x, y  string
	extra []string
}

func (s sumBy) F(g table.Grouping) table.Grouping {
	keyCols := append([]string{s.x}, s.extra...)
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		ys := t.MustColumn(s.y).([]float64)
		keyVals := make([]reflect.Value, len(keyCols))
		for i, col := range keyCols {
			keyVals[i] = reflect.ValueOf(t.MustColumn(col))
		}

		rows := make(map[string]int)
		var first []int
		var sums []float64
		for i := 0; i < t.Len(); i++ {
			var key strings.Builder
			for _, kv := range keyVals {
				// NUL keeps the column boundaries unambiguous.
				fmt.Fprintf(&key, "%v\x00", kv.Index(i))
			}
			j, ok := rows[key.String()]
			if !ok {
				j = len(first)
				rows[key.String()] = j
				first = append(first, i)
				sums = append(sums, 0)
			}
			sums[j] += ys[i]
		}

		b := new(table.Builder)
		for _, col := range t.Columns() {
			if col == s.y {
				b.Add(col, sums)
			} else {
				b.Add(col, subset(t.MustColumn(col), first))
			}
		}
		return b.Done()
	})
}

// subset returns the rows of col at the given indexes, preserving the
// slice's type.
func subset(col table.Slice, rows []int) table.Slice {
	cv := reflect.ValueOf(col)
	out := reflect.MakeSlice(cv.Type(), len(rows), len(rows))
	for i, r := range rows {
		out.Index(i).Set(cv.Index(r))
	}
	return out.Interface()
}

// tipText joins the named columns into one hover label per row, in a
// "tooltip" column.
type tipText struct {
	cols []string
}

func (s tipText) F(g table.Grouping) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		labels := make([]string, t.Len())
		for _, col := range s.cols {
			cv := reflect.ValueOf(t.MustColumn(col))
			for i := range labels {
				text := tipString(cv.Index(i).Interface())
				if labels[i] == "" {
					labels[i] = text
				} else {
					labels[i] += " " + text
				}
			}
		}
		return table.NewBuilder(t).Add("tooltip", labels).Done()
	})
}

func tipString(v any) string {
	switch v := v.(type) {
	case time.Time:
		return v.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(v, 'g', 4, 64)
	}
	return fmt.Sprint(v)
}
