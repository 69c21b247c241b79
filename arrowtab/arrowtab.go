// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arrowtab converts Apache Arrow record batches and tables
// into tabular Results.
//
// Arrow's type zoo collapses to the tabular value types: all integer
// widths become int64, all float widths become float64, dates and
// timestamps become time.Time, and DECIMAL128 becomes an exact
// decimal. Nulls become null cells. Anything else (lists, structs,
// unions) flattens to its string rendering.
package arrowtab

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/autoviz/autoviz/tabular"
	"github.com/shopspring/decimal"
)

// FromRecord converts one record batch into a Result.
func FromRecord(rec arrow.Record) (*tabular.Result, error) {
	if rec == nil {
		return nil, errors.New("nil record")
	}
	cols := make([]tabular.Column, int(rec.NumCols()))
	for i := range cols {
		col := rec.Column(i)
		values := make([]tabular.Value, int(rec.NumRows()))
		for pos := range values {
			values[pos] = value(col, pos)
		}
		cols[i] = tabular.Column{Name: rec.ColumnName(i), Values: values}
	}
	return &tabular.Result{Columns: cols}, nil
}

// FromTable converts a (possibly chunked) table into a Result by
// streaming its record batches.
func FromTable(tbl arrow.Table) (*tabular.Result, error) {
	if tbl == nil {
		return nil, errors.New("nil table")
	}
	schema := tbl.Schema()
	cols := make([]tabular.Column, schema.NumFields())
	for i, f := range schema.Fields() {
		cols[i] = tabular.Column{Name: f.Name, Values: []tabular.Value{}}
	}

	tr := array.NewTableReader(tbl, tbl.NumRows())
	defer tr.Release()
	for tr.Next() {
		rec := tr.Record()
		for i := range cols {
			col := rec.Column(i)
			for pos := 0; pos < int(rec.NumRows()); pos++ {
				cols[i].Values = append(cols[i].Values, value(col, pos))
			}
		}
	}
	if err := tr.Err(); err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	return &tabular.Result{Columns: cols}, nil
}

// value extracts the cell at pos from col as a tabular value.
func value(col arrow.Array, pos int) tabular.Value {
	if col.IsNull(pos) {
		return nil
	}
	switch col.DataType().ID() {
	case arrow.STRING:
		return col.(*array.String).Value(pos)
	case arrow.BINARY:
		return string(col.(*array.Binary).Value(pos))
	case arrow.BOOL:
		return col.(*array.Boolean).Value(pos)
	case arrow.INT8:
		return int64(col.(*array.Int8).Value(pos))
	case arrow.INT16:
		return int64(col.(*array.Int16).Value(pos))
	case arrow.INT32:
		return int64(col.(*array.Int32).Value(pos))
	case arrow.INT64:
		return col.(*array.Int64).Value(pos)
	case arrow.UINT8:
		return int64(col.(*array.Uint8).Value(pos))
	case arrow.UINT16:
		return int64(col.(*array.Uint16).Value(pos))
	case arrow.UINT32:
		return int64(col.(*array.Uint32).Value(pos))
	case arrow.UINT64:
		return int64(col.(*array.Uint64).Value(pos))
	case arrow.FLOAT16:
		return float64(col.(*array.Float16).Value(pos).Float32())
	case arrow.FLOAT32:
		return float64(col.(*array.Float32).Value(pos))
	case arrow.FLOAT64:
		return col.(*array.Float64).Value(pos)
	case arrow.DATE32:
		return col.(*array.Date32).Value(pos).ToTime()
	case arrow.DATE64:
		return col.(*array.Date64).Value(pos).ToTime()
	case arrow.TIMESTAMP:
		typ := col.DataType().(*arrow.TimestampType)
		return col.(*array.Timestamp).Value(pos).ToTime(typ.Unit)
	case arrow.DECIMAL128:
		typ := col.DataType().(*arrow.Decimal128Type)
		num := col.(*array.Decimal128).Value(pos)
		return decimal.NewFromBigInt(num.BigInt(), -typ.Scale)
	}
	one := array.NewSlice(col, int64(pos), int64(pos+1))
	defer one.Release()
	return fmt.Sprintf("%v", one)
}
