// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabular

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Print prints res to standard output.
func Print(res *Result) error {
	return Fprint(os.Stdout, res)
}

// Fprint prints res to w as an aligned text table. Numeric columns
// are right-aligned; all other columns are left-aligned.
func Fprint(w io.Writer, res *Result) error {
	if len(res.Columns) == 0 {
		return nil
	}

	// Format cells.
	lines := make([][]string, 1, res.NumRows()+1)
	lines[0] = res.ColumnNames()
	for ri := 0; ri < res.NumRows(); ri++ {
		line := make([]string, len(res.Columns))
		for ci := range res.Columns {
			line[ci] = FormatValue(res.Columns[ci].Values[ri])
		}
		lines = append(lines, line)
	}

	rightAlign := make([]bool, len(res.Columns))
	for ci := range res.Columns {
		rightAlign[ci] = isNumericColumn(&res.Columns[ci])
	}

	// Compute column widths.
	widths := make([]int, len(res.Columns))
	for _, line := range lines {
		for i, elt := range line {
			if len(elt) > widths[i] {
				widths[i] = len(elt)
			}
		}
	}

	// Print lines.
	for _, line := range lines {
		for i, elt := range line {
			var err error
			p := widths[i]
			if rightAlign[i] {
				_, err = fmt.Fprintf(w, "%*s", p, elt)
			} else if i < len(line)-1 {
				// Left align and pad.
				_, err = fmt.Fprintf(w, "%-*s", p, elt)
			} else {
				// Left align, no pad.
				_, err = fmt.Fprintf(w, "%s", elt)
			}
			if err != nil {
				return err
			}
			if i < len(line)-1 {
				if _, err := fmt.Fprint(w, "  "); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprint(w, "\n"); err != nil {
			return err
		}
	}

	return nil
}

// FormatValue formats a single cell for display. Null cells format as
// the empty string and timestamps with a zero clock format as a bare
// date.
func FormatValue(v Value) string {
	switch v := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case decimal.Decimal:
		return v.String()
	case string:
		return v
	case time.Time:
		if h, m, s := v.Clock(); h == 0 && m == 0 && s == 0 {
			return v.Format("2006-01-02")
		}
		return v.Format("2006-01-02 15:04:05")
	}
	return fmt.Sprint(v)
}

// isNumericColumn reports whether every non-null value in col is
// numeric and at least one value is non-null.
func isNumericColumn(col *Column) bool {
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
