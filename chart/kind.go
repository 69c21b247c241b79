// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart selects a chart archetype for a classified result.
//
// Select applies a fixed-priority decision tree over the column
// classes and row count and returns a declarative Spec: a Kind plus
// role bindings such as the x column or the color column. Specs for
// kinds with interchangeable columns also carry the candidate lists
// an interactive surface may swap in; StateStore keeps such choices
// per session and dataset shape.
package chart

// A Kind names a chart archetype. None means no archetype fits and
// the caller should show a neutral empty state rather than fail.
type Kind int

const (
	None Kind = iota
	Map
	KPI
	TimeSeries
	DualAxis
	StackedBars
	MultiStackedBars
	MultiBubble
	Bubble
	MultiScatter
	Scatter
	Bars
)

var kindNames = [...]string{
	"None", "Map", "KPI", "TimeSeries", "DualAxis", "StackedBars",
	"MultiStackedBars", "MultiBubble", "Bubble", "MultiScatter",
	"Scatter", "Bars",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "None"
	}
	return kindNames[k]
}

// ParseKind maps a Kind's name back to the Kind.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return None, false
}
