// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"math"

	"github.com/autoviz/autoviz/tabular"
)

// A KPIValue is one formatted tile of a KPI chart.
type KPIValue struct {
	Label, Value string
}

// KPIValues formats one tile per value candidate of a KPI spec,
// reading the first row of each column. Magnitudes at or above a
// million render as "1.2M", at or above a thousand as "1.2K", and
// anything else with one decimal.
func KPIValues(spec Spec, res *tabular.Result) []KPIValue {
	var out []KPIValue
	for _, name := range spec.Candidates[RoleValue] {
		col := res.Column(name)
		if col == nil || len(col.Values) == 0 {
			continue
		}
		kv := KPIValue{Label: name}
		if f, ok := tabular.Float(col.Values[0]); ok {
			kv.Value = formatKPI(f)
		} else {
			kv.Value = tabular.FormatValue(col.Values[0])
		}
		out = append(out, kv)
	}
	return out
}

func formatKPI(v float64) string {
	switch {
	case math.Abs(v) >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case math.Abs(v) >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	}
	return fmt.Sprintf("%.1f", v)
}
