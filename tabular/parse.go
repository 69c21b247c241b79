// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabular

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// ReadCSV reads a comma-separated result from r. The first record
// names the columns; records with a different number of fields are an
// error. Cells start out as strings and empty cells are null; the
// columns are then typed with ParseValues.
func ReadCSV(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return &Result{}, nil
	}
	if err != nil {
		return nil, err
	}

	cols := make([]Column, len(header))
	for i, name := range header {
		cols[i].Name = name
	}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for i, cell := range rec {
			if cell == "" {
				cols[i].Values = append(cols[i].Values, nil)
			} else {
				cols[i].Values = append(cols[i].Values, cell)
			}
		}
	}

	res := &Result{Columns: cols}
	ParseValues(res, nil)
	return res, nil
}

// ReadJSON reads a result in split orientation from r:
//
//	{"columns": ["region", "sales"], "rows": [["west", 10], ...]}
//
// JSON numbers become float64 cells and JSON nulls become null cells.
// String columns are then typed with ParseValues.
func ReadJSON(r io.Reader) (*Result, error) {
	var doc struct {
		Columns []string  `json:"columns"`
		Rows    [][]Value `json:"rows"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}

	cols := make([]Column, len(doc.Columns))
	for i, name := range doc.Columns {
		cols[i].Name = name
	}
	for ri, row := range doc.Rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("row %d has %d values; want %d", ri, len(row), len(cols))
		}
		for i, v := range row {
			cols[i].Values = append(cols[i].Values, v)
		}
	}

	res := &Result{Columns: cols}
	ParseValues(res, nil)
	return res, nil
}

// ParseTemporal parses s as a timestamp. It accepts the formats
// dateparse recognizes (RFC 3339, ISO dates, slash dates, month
// names, unix epochs, ...). Value parsing and column classification
// share this single definition of what counts as temporal.
func ParseTemporal(s string) (time.Time, error) {
	return dateparse.ParseAny(s)
}

// ValueParser is a function that parses a string cell into a
// structured type or returns an error if the string cannot be parsed.
type ValueParser func(string) (Value, error)

// DefaultValueParsers is the default sequence of value parsers used
// by ParseValues if no parsers are specified.
var DefaultValueParsers = []ValueParser{
	func(s string) (Value, error) { return strconv.ParseInt(s, 10, 64) },
	func(s string) (Value, error) { return strconv.ParseFloat(s, 64) },
	func(s string) (Value, error) { return ParseTemporal(s) },
	func(s string) (Value, error) { return strconv.ParseBool(s) },
}

// ParseValues upgrades the string columns of res to structured types
// using best-effort pattern-based parsing.
//
// If all of the non-null cells of a column can be parsed by one of
// the valueParsers, ParseValues replaces the column's values with the
// results of that ValueParser. If multiple ValueParsers can parse all
// of the cells, it uses the earliest such parser in the valueParsers
// list. Columns that already hold structured values and columns with
// any unparseable cell are left alone.
//
// If valueParsers is nil, it uses DefaultValueParsers.
func ParseValues(res *Result, valueParsers []ValueParser) {
	if valueParsers == nil {
		valueParsers = DefaultValueParsers
	}

	for ci := range res.Columns {
		col := &res.Columns[ci]
		if !isStringColumn(col) {
			continue
		}

		parsed := make([]Value, len(col.Values))
	tryParsers:
		for _, vp := range valueParsers {
			for i := range parsed {
				parsed[i] = nil
			}

			good := true
		tryValues:
			for i, v := range col.Values {
				if v == nil {
					continue
				}

				pv, err := vp(v.(string))
				if err != nil {
					// Parse error. Fail this parser.
					good = false
					break tryValues
				}
				parsed[i] = pv
			}

			if good {
				// This ValueParser converted all of
				// the cells.
				col.Values = parsed
				break tryParsers
			}
		}
	}
}

// isStringColumn reports whether col has at least one non-null value
// and every non-null value is a string.
func isStringColumn(col *Column) bool {
	some := false
	for _, v := range col.Values {
		if v == nil {
			continue
		}
		if _, ok := v.(string); !ok {
			return false
		}
		some = true
	}
	return some
}
