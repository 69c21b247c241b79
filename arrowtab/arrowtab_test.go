// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arrowtab

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/autoviz/autoviz/tabular"
	"github.com/shopspring/decimal"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sameValue(a, b tabular.Value) bool {
	switch a := a.(type) {
	case decimal.Decimal:
		b, ok := b.(decimal.Decimal)
		return ok && a.Equal(b)
	case time.Time:
		b, ok := b.(time.Time)
		return ok && a.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

func diffResults(t *testing.T, got, want *tabular.Result) {
	t.Helper()
	if g, w := got.NumCols(), want.NumCols(); g != w {
		t.Fatalf("got %d columns, want %d", g, w)
	}
	if g, w := got.NumRows(), want.NumRows(); g != w {
		t.Fatalf("got %d rows, want %d", g, w)
	}
	for i, wcol := range want.Columns {
		gcol := got.Columns[i]
		if gcol.Name != wcol.Name {
			t.Errorf("column %d is %q, want %q", i, gcol.Name, wcol.Name)
			continue
		}
		for row, wv := range wcol.Values {
			if gv := gcol.Values[row]; !sameValue(gv, wv) {
				t.Errorf("column %q row %d: got %#v, want %#v", wcol.Name, row, gv, wv)
			}
		}
	}
}

func TestFromRecord(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "city", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "sales", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		{Name: "qty", Type: arrow.PrimitiveTypes.Uint16, Nullable: true},
		{Name: "score", Type: arrow.PrimitiveTypes.Float32, Nullable: true},
		{Name: "ok", Type: arrow.FixedWidthTypes.Boolean, Nullable: true},
		{Name: "when", Type: &arrow.TimestampType{Unit: arrow.Millisecond}, Nullable: true},
		{Name: "day", Type: arrow.FixedWidthTypes.Date32, Nullable: true},
		{Name: "price", Type: &arrow.Decimal128Type{Precision: 9, Scale: 2}, Nullable: true},
	}, nil)

	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()
	b.Field(0).(*array.StringBuilder).AppendValues([]string{"sf", "nyc", ""}, []bool{true, true, false})
	b.Field(1).(*array.Int64Builder).AppendValues([]int64{5, -2, 7}, nil)
	b.Field(2).(*array.Uint16Builder).AppendValues([]uint16{1, 2, 3}, nil)
	b.Field(3).(*array.Float32Builder).AppendValues([]float32{0.5, 1.5, 2.5}, nil)
	b.Field(4).(*array.BooleanBuilder).AppendValues([]bool{true, false, true}, nil)
	stamps := make([]arrow.Timestamp, 3)
	dates := make([]arrow.Date32, 3)
	for i := range stamps {
		stamps[i] = arrow.Timestamp(day(i + 1).UnixMilli())
		dates[i] = arrow.Date32(day(i+1).Unix() / 86400)
	}
	b.Field(5).(*array.TimestampBuilder).AppendValues(stamps, nil)
	b.Field(6).(*array.Date32Builder).AppendValues(dates, nil)
	b.Field(7).(*array.Decimal128Builder).AppendValues([]decimal128.Num{
		decimal128.FromI64(1250), decimal128.FromI64(99), decimal128.FromI64(-10000),
	}, nil)
	rec := b.NewRecord()
	defer rec.Release()

	got, err := FromRecord(rec)
	if err != nil {
		t.Fatal(err)
	}
	want := new(tabular.Builder).
		Add("city", []tabular.Value{"sf", "nyc", nil}).
		Add("sales", []int64{5, -2, 7}).
		Add("qty", []int64{1, 2, 3}).
		Add("score", []float64{0.5, 1.5, 2.5}).
		Add("ok", []bool{true, false, true}).
		Add("when", []time.Time{day(1), day(2), day(3)}).
		Add("day", []time.Time{day(1), day(2), day(3)}).
		Add("price", []decimal.Decimal{dec("12.5"), dec("0.99"), dec("-100")}).
		Done()
	diffResults(t, got, want)
}

func TestFromRecordUnhandledType(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "tags", Type: arrow.ListOf(arrow.PrimitiveTypes.Int64), Nullable: true},
	}, nil)
	lb := array.NewListBuilder(memory.NewGoAllocator(), arrow.PrimitiveTypes.Int64)
	defer lb.Release()
	lb.Append(true)
	lb.ValueBuilder().(*array.Int64Builder).AppendValues([]int64{1, 2}, nil)
	arr := lb.NewArray()
	defer arr.Release()
	rec := array.NewRecord(schema, []arrow.Array{arr}, 1)
	defer rec.Release()

	got, err := FromRecord(rec)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := got.Columns[0].Values[0].(string)
	if !ok {
		t.Fatalf("list cell = %#v, want a string rendering", got.Columns[0].Values[0])
	}
	if !strings.Contains(s, "1") || !strings.Contains(s, "2") {
		t.Errorf("list cell %q does not render the elements", s)
	}
}

func TestFromTable(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "sales", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	}, nil)
	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()
	b.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2, 3}, nil)
	rec1 := b.NewRecord()
	defer rec1.Release()
	b.Field(0).(*array.Int64Builder).AppendValues([]int64{4, 5}, []bool{true, false})
	rec2 := b.NewRecord()
	defer rec2.Release()
	tbl := array.NewTableFromRecords(schema, []arrow.Record{rec1, rec2})
	defer tbl.Release()

	got, err := FromTable(tbl)
	if err != nil {
		t.Fatal(err)
	}
	want := new(tabular.Builder).
		Add("sales", []tabular.Value{int64(1), int64(2), int64(3), int64(4), nil}).
		Done()
	diffResults(t, got, want)
}

func TestNilInputs(t *testing.T) {
	if _, err := FromRecord(nil); err == nil {
		t.Error("FromRecord(nil) did not fail")
	}
	if _, err := FromTable(nil); err == nil {
		t.Error("FromTable(nil) did not fail")
	}
}
