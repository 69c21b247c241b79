// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pgtab runs PostgreSQL queries and captures the answers as
// tabular Results.
//
// Column names come from the row description, so callers do not
// declare a schema. Cell values normalize to the tabular value types:
// integer widths widen to int64, floats to float64, numerics become
// exact decimals, and dates and timestamps become time.Time.
package pgtab

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/autoviz/autoviz/tabular"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Querier is the subset of pgx used to run queries. Both single
// connections and pools satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var (
	_ Querier = (*pgx.Conn)(nil)
	_ Querier = (*pgxpool.Pool)(nil)
)

// Query runs sql on db and returns the full answer. The result has
// one column per field of the row description, in wire order, and may
// have zero rows.
func Query(ctx context.Context, db Querier, sql string, args ...any) (*tabular.Result, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	cols := make([]tabular.Column, len(fields))
	for i, fd := range fields {
		cols[i] = tabular.Column{Name: fd.Name, Values: []tabular.Value{}}
	}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		for i, v := range vals {
			cols[i].Values = append(cols[i].Values, normalize(v))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &tabular.Result{Columns: cols}, nil
}

// normalize converts one pgx-decoded value to a tabular value.
func normalize(v any) tabular.Value {
	switch v := v.(type) {
	case nil:
		return nil
	case bool, int64, float64, string:
		return v
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case uint:
		return int64(v)
	case float32:
		return float64(v)
	case time.Time:
		return v
	case pgtype.Numeric:
		return numeric(v)
	case [16]byte:
		// UUIDs decode as raw bytes unless a codec is registered.
		return fmt.Sprintf("%x-%x-%x-%x-%x", v[0:4], v[4:6], v[6:8], v[8:10], v[10:16])
	case []byte:
		return string(v)
	}
	return fmt.Sprint(v)
}

// numeric converts a Postgres numeric. NaN and the infinities have no
// decimal form and come back as their float64 counterparts, which
// downstream consumers treat as unusable cells.
func numeric(n pgtype.Numeric) tabular.Value {
	switch {
	case !n.Valid:
		return nil
	case n.NaN:
		return math.NaN()
	case n.InfinityModifier == pgtype.Infinity:
		return math.Inf(1)
	case n.InfinityModifier == pgtype.NegativeInfinity:
		return math.Inf(-1)
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
