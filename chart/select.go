// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"strings"

	"github.com/autoviz/autoviz/classify"
)

// Select picks a chart for a classified result. The priority order
// is part of the contract: geospatial, then single-row KPI, then the
// exactly-one-temporal charts, then the zero-temporal charts from
// most specific to a universal bar fallback, then None. The same
// classification and row count always produce the same Spec, and
// ties inside a class go to the first column in result order.
func Select(c classify.Classification, rowCount int) Spec {
	if spec, ok := selectGeo(c); ok {
		return spec
	}
	if rowCount == 1 && len(c.Numeric) >= 1 && len(c.Numeric) <= 4 {
		return selectKPI(c)
	}
	if len(c.Temporal) == 1 {
		if spec, ok := selectTemporal(c); ok {
			return spec
		}
	}
	if len(c.Temporal) == 0 {
		if spec, ok := selectFlat(c); ok {
			return spec
		}
	}
	return Spec{Kind: None}
}

// Reselect reuses prior when every column it binds still exists, so
// an edit or reopen keeps the user's chart. Otherwise it selects
// afresh.
func Reselect(prior *Spec, c classify.Classification, rowCount int) Spec {
	if prior != nil && prior.Kind != None && bindingsExist(prior, c) {
		return *prior
	}
	return Select(c, rowCount)
}

func bindingsExist(spec *Spec, c classify.Classification) bool {
	if len(spec.Roles) == 0 {
		return false
	}
	have := make(map[string]bool, len(c.All))
	for _, name := range c.All {
		have[name] = true
	}
	for _, col := range spec.Roles {
		if !have[col] {
			return false
		}
	}
	return true
}

// selectGeo matches when some column name contains "lat" and some
// column name contains "lon", regardless of class. The value metric
// defaults to the first numeric column that is not coordinate-like;
// with no such column the map shows point density.
func selectGeo(c classify.Classification) (Spec, bool) {
	lat := firstContaining(c.All, "lat")
	lon := firstContaining(c.All, "lon")
	if lat == "" || lon == "" {
		return Spec{}, false
	}
	spec := Spec{
		Kind:  Map,
		Roles: map[Role]string{RoleLat: lat, RoleLon: lon},
		Title: "point density by location",
	}
	var metrics []string
	for _, name := range c.Numeric {
		l := strings.ToLower(name)
		if !strings.Contains(l, "lat") && !strings.Contains(l, "lon") {
			metrics = append(metrics, name)
		}
	}
	if len(metrics) > 0 {
		spec.Roles[RoleValue] = metrics[0]
		spec.Candidates = map[Role][]string{RoleValue: metrics}
		spec.Title = metrics[0] + " by location"
	}
	return spec, true
}

func firstContaining(names []string, substr string) string {
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), substr) {
			return name
		}
	}
	return ""
}

// selectKPI shows every numeric column as a tile, in column order.
func selectKPI(c classify.Classification) Spec {
	return Spec{
		Kind:       KPI,
		Roles:      map[Role]string{RoleValue: c.Numeric[0]},
		Candidates: map[Role][]string{RoleValue: c.Numeric},
	}
}

func selectTemporal(c classify.Classification) (Spec, bool) {
	date := c.Temporal[0]
	num, cat := c.Numeric, c.Categorical
	switch {
	case len(num) == 1 && len(cat) == 0:
		return Spec{
			Kind:    TimeSeries,
			Roles:   map[Role]string{RoleDate: date, RoleY: num[0]},
			Tooltip: []string{date, num[0]},
			Title:   fmt.Sprintf("%s over %s", num[0], date),
		}, true
	case len(num) >= 2 && len(cat) == 0:
		return Spec{
			Kind:    DualAxis,
			Roles:   map[Role]string{RoleDate: date, RoleY: num[0], RoleY2: num[1]},
			Tooltip: []string{date, num[0], num[1]},
			Title:   fmt.Sprintf("%s and %s over %s", num[0], num[1], date),
		}, true
	case len(num) >= 1 && len(cat) == 1:
		return Spec{
			Kind:    StackedBars,
			Roles:   map[Role]string{RoleDate: date, RoleY: num[0], RoleColor: cat[0]},
			Tooltip: []string{date, cat[0], num[0]},
			Title:   fmt.Sprintf("%s by %s, stacked by %s", num[0], date, cat[0]),
		}, true
	case len(num) >= 1 && len(cat) >= 2:
		return Spec{
			Kind:       MultiStackedBars,
			Roles:      map[Role]string{RoleDate: date, RoleY: num[0], RoleColor: cat[0]},
			Candidates: map[Role][]string{RoleColor: cat},
			Tooltip:    []string{date, cat[0], num[0]},
			Title:      fmt.Sprintf("%s by %s, stacked by %s", num[0], date, cat[0]),
		}, true
	}
	return Spec{}, false
}

func selectFlat(c classify.Classification) (Spec, bool) {
	num, cat := c.Numeric, c.Categorical
	switch {
	case len(cat) >= 2 && len(num) >= 3:
		return Spec{
			Kind: MultiBubble,
			Roles: map[Role]string{
				RoleX: num[0], RoleY: num[1], RoleSize: num[2],
				RoleColor: cat[0], RoleShape: cat[1],
			},
			Tooltip: []string{cat[0], cat[1], num[0], num[1], num[2]},
			Title:   fmt.Sprintf("%s vs %s, sized by %s", num[1], num[0], num[2]),
		}, true
	case len(cat) == 1 && len(num) >= 3:
		return Spec{
			Kind: Bubble,
			Roles: map[Role]string{
				RoleX: num[0], RoleY: num[1], RoleSize: num[2], RoleColor: cat[0],
			},
			Tooltip: []string{cat[0], num[0], num[1], num[2]},
			Title:   fmt.Sprintf("%s vs %s, sized by %s", num[1], num[0], num[2]),
		}, true
	case len(cat) >= 2 && len(num) == 2:
		return Spec{
			Kind: MultiScatter,
			Roles: map[Role]string{
				RoleX: num[0], RoleY: num[1], RoleColor: cat[0], RoleShape: cat[1],
			},
			Tooltip: []string{cat[0], cat[1], num[0], num[1]},
			Title:   fmt.Sprintf("%s vs %s", num[1], num[0]),
		}, true
	case len(cat) == 1 && len(num) >= 2:
		return Spec{
			Kind:    Scatter,
			Roles:   map[Role]string{RoleX: num[0], RoleY: num[1], RoleColor: cat[0]},
			Tooltip: []string{cat[0], num[0], num[1]},
			Title:   fmt.Sprintf("%s vs %s", num[1], num[0]),
		}, true
	case len(cat) >= 1 && len(num) >= 1:
		return Spec{
			Kind:  Bars,
			Roles: map[Role]string{RoleX: cat[0], RoleY: num[0], RoleColor: cat[0]},
			Candidates: map[Role][]string{
				RoleX:     cat,
				RoleY:     num,
				RoleColor: cat,
			},
			Tooltip: []string{cat[0], num[0]},
			Title:   fmt.Sprintf("%s by %s", num[0], cat[0]),
		}, true
	}
	return Spec{}, false
}
