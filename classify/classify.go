// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package classify infers the semantic type of result columns.
//
// Chart selection works from a three-way partition of a result's
// columns: numeric measures, temporal axes, and categorical
// dimensions. Columns returns that partition.
package classify

import (
	"strings"
	"time"

	"github.com/autoviz/autoviz/tabular"
	"github.com/shopspring/decimal"
)

// Classification partitions the columns of a result by semantic type.
// Every column of the result appears in exactly one of the three
// class lists, in result column order. All repeats every column in
// result order; chart selection needs it for first-match tie-breaks
// that cut across classes.
type Classification struct {
	Numeric     []string
	Temporal    []string
	Categorical []string

	All []string
}

// dateTokens are the name fragments that mark a column as a date
// candidate.
var dateTokens = []string{"date", "month", "year", "day", "time", "dt", "period"}

// temporalSample caps how many non-null values the parse-rate rule
// inspects per column.
const temporalSample = 100

// temporalParseRate is the fraction of sampled values that must parse
// as timestamps for a text column to classify as temporal.
const temporalParseRate = 0.9

// Columns classifies every column of res. It has no side effects and
// is idempotent.
//
// A column is numeric if its non-null values are uniformly
// machine-numeric (int64, float64, or decimal), and temporal if they
// are time.Time. A remaining column with at least one non-null value
// is temporal when its lowercase name contains a date token (date,
// month, year, day, time, dt, period) or when at least 90% of a
// sample of its non-null values parse as timestamps. Everything else,
// including all-null and zero-row columns, is categorical.
func Columns(res *tabular.Result) Classification {
	var c Classification
	for i := range res.Columns {
		col := &res.Columns[i]
		c.All = append(c.All, col.Name)
		switch {
		case isNumeric(col):
			c.Numeric = append(c.Numeric, col.Name)
		case isTemporalType(col):
			c.Temporal = append(c.Temporal, col.Name)
		case isDateCandidate(col):
			c.Temporal = append(c.Temporal, col.Name)
		default:
			c.Categorical = append(c.Categorical, col.Name)
		}
	}
	return c
}

// isNumeric reports whether col has at least one non-null value and
// every non-null value is machine-numeric.
func isNumeric(col *tabular.Column) bool {
	some := false
	for _, v := range col.Values {
		switch v.(type) {
		case nil:
		case int64, float64, decimal.Decimal:
			some = true
		default:
			return false
		}
	}
	return some
}

// isTemporalType reports whether col has at least one non-null value
// and every non-null value is a timestamp.
func isTemporalType(col *tabular.Column) bool {
	some := false
	for _, v := range col.Values {
		switch v.(type) {
		case nil:
		case time.Time:
			some = true
		default:
			return false
		}
	}
	return some
}

// isDateCandidate applies the name-token and parse-rate rules to a
// column that is neither numeric nor temporal by type. An all-null
// column is never a candidate.
func isDateCandidate(col *tabular.Column) bool {
	nonNull := 0
	for _, v := range col.Values {
		if v != nil {
			nonNull++
		}
	}
	if nonNull == 0 {
		return false
	}

	name := strings.ToLower(col.Name)
	for _, tok := range dateTokens {
		if strings.Contains(name, tok) {
			return true
		}
	}

	// General fallback: sample the column and count values that
	// parse as timestamps.
	tested, parsed := 0, 0
	for _, v := range col.Values {
		if v == nil {
			continue
		}
		tested++
		if s, ok := v.(string); ok {
			if _, err := tabular.ParseTemporal(s); err == nil {
				parsed++
			}
		}
		if tested == temporalSample {
			break
		}
	}
	return float64(parsed) >= temporalParseRate*float64(tested)
}
