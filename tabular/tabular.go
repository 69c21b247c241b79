// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tabular provides a column-oriented model for query results.
//
// A Result holds ordered, named columns of dynamically typed values.
// Readers produce Results whose cells are strings; ParseValues
// upgrades whole columns to structured types using best-effort
// pattern-based parsing.
package tabular

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Value is a single cell of a Result. Its dynamic type is one of nil,
// bool, int64, float64, string, time.Time, or decimal.Decimal. A nil
// Value is a null cell.
type Value any

// Column is a named column of values.
type Column struct {
	Name   string
	Values []Value
}

// Result records an ordered set of equal-length columns, as delivered
// by a query or read from a results file.
type Result struct {
	Columns []Column
}

// NumRows returns the number of rows in r.
func (r *Result) NumRows() int {
	if len(r.Columns) == 0 {
		return 0
	}
	return len(r.Columns[0].Values)
}

// NumCols returns the number of columns in r.
func (r *Result) NumCols() int {
	return len(r.Columns)
}

// ColumnNames returns the column names in result order.
func (r *Result) ColumnNames() []string {
	names := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the column named name, or nil if there is no such
// column.
func (r *Result) Column(name string) *Column {
	for i := range r.Columns {
		if r.Columns[i].Name == name {
			return &r.Columns[i]
		}
	}
	return nil
}

// MustColumn is like Column, but panics if there is no such column.
func (r *Result) MustColumn(name string) *Column {
	if col := r.Column(name); col != nil {
		return col
	}
	panic(fmt.Sprintf("unknown column %q", name))
}

// A Builder constructs a Result column by column:
//
//	res := new(tabular.Builder).Add("city", cities).Add("sales", sales).Done()
//
// A Builder may be reused after Done.
type Builder struct {
	cols []Column
}

// Add appends a column named name with the given values. data must be
// a []Value or a slice of one of the accepted dynamic value types. Add
// returns b to permit method chaining.
func (b *Builder) Add(name string, data any) *Builder {
	var values []Value
	switch data := data.(type) {
	case []Value:
		values = data
	case []bool:
		values = make([]Value, len(data))
		for i, v := range data {
			values[i] = v
		}
	case []int:
		values = make([]Value, len(data))
		for i, v := range data {
			values[i] = int64(v)
		}
	case []int64:
		values = make([]Value, len(data))
		for i, v := range data {
			values[i] = v
		}
	case []float64:
		values = make([]Value, len(data))
		for i, v := range data {
			values[i] = v
		}
	case []string:
		values = make([]Value, len(data))
		for i, v := range data {
			values[i] = v
		}
	case []time.Time:
		values = make([]Value, len(data))
		for i, v := range data {
			values[i] = v
		}
	case []decimal.Decimal:
		values = make([]Value, len(data))
		for i, v := range data {
			values[i] = v
		}
	default:
		panic(fmt.Sprintf("unsupported column type %T", data))
	}
	b.cols = append(b.cols, Column{Name: name, Values: values})
	return b
}

// Done returns the built Result and resets b. It panics if the added
// columns do not all have the same length.
func (b *Builder) Done() *Result {
	for _, col := range b.cols {
		if len(col.Values) != len(b.cols[0].Values) {
			panic(fmt.Sprintf("column %q has %d values; column %q has %d",
				col.Name, len(col.Values), b.cols[0].Name, len(b.cols[0].Values)))
		}
	}
	res := &Result{Columns: b.cols}
	b.cols = nil
	return res
}

// Float converts v to a float64 if its dynamic type is numeric or a
// numeric string. The second result reports whether the conversion
// applied.
func Float(v Value) (float64, bool) {
	switch v := v.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case decimal.Decimal:
		return v.InexactFloat64(), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
