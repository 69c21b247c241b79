// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colormap

import (
	"image/color"
	"math"
	"sort"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// InterpMode identifies the interpolation stage a Scale settled on.
// The stages form a degradation chain: each is tried in order and the
// first whose preconditions hold wins.
type InterpMode int

const (
	// InterpQuantile positions a value piecewise-linearly along
	// the quantile anchors and reads the ramp at that position.
	InterpQuantile InterpMode = iota

	// InterpLinear spreads the ramp evenly over the anchor range.
	InterpLinear

	// InterpGradient maps the series range to [0,1] through the
	// palette library's gradient.
	InterpGradient

	// InterpEndpoints blends only the ramp's first and last
	// colors over the anchor range.
	InterpEndpoints

	// InterpConstant paints every value with the ramp's middle
	// color.
	InterpConstant
)

var interpNames = [...]string{"quantile", "linear", "gradient", "endpoints", "constant"}

func (m InterpMode) String() string {
	if int(m) < len(interpNames) {
		return interpNames[m]
	}
	return "unknown"
}

// DefaultQuantiles is the number of quantile intervals in an anchor
// set (DefaultQuantiles+1 anchor points).
const DefaultQuantiles = 20

// Quantiles returns monotonic anchor points covering values. n is the
// requested interval count; the normal result has n+1 points.
//
// Degenerate series degrade instead of failing: at most one distinct
// value becomes a symmetric 3-point range around it (±5%, or ±0.01
// around zero); fewer distinct values than requested points reduce to
// between 3 and 5 evenly spaced quantiles; no finite values at all
// becomes [0, 50, 100]. A quantile computation failure falls back to
// [min, median, max].
func Quantiles(values []float64, n int) []float64 {
	xs := finite(values)
	if len(xs) == 0 {
		return []float64{0, 50, 100}
	}
	sort.Float64s(xs)

	distinct := countDistinct(xs)
	if distinct <= 1 {
		v := xs[0]
		if v == 0 {
			return []float64{-0.01, 0, 0.01}
		}
		lo, hi := 0.95*v, 1.05*v
		if lo > hi {
			lo, hi = hi, lo
		}
		return []float64{lo, v, hi}
	}

	points := n + 1
	if distinct < points {
		points = max(3, min(distinct, 5))
	}

	sample := stats.Sample{Xs: xs, Sorted: true}
	anchors := make([]float64, 0, points)
	for _, q := range vec.Linspace(0, 1, points) {
		x := sample.Quantile(q)
		if math.IsNaN(x) {
			return fallbackAnchors(xs)
		}
		anchors = append(anchors, x)
	}
	return anchors
}

func fallbackAnchors(sorted []float64) []float64 {
	return []float64{sorted[0], sorted[len(sorted)/2], sorted[len(sorted)-1]}
}

// A Scale maps the values of one numeric series to colors.
type Scale struct {
	Ramp    Ramp
	Anchors []float64
	Opacity float64

	mode     InterpMode
	min, max float64
	gradient palette.Continuous
}

// NewScale builds a color scale for values over ramp. opacity sets
// the alpha of every mapped color and is clamped to [0,1].
func NewScale(values []float64, ramp Ramp, opacity float64) *Scale {
	s := &Scale{
		Ramp:    ramp,
		Anchors: Quantiles(values, DefaultQuantiles),
		Opacity: math.Max(0, math.Min(1, opacity)),
	}
	if xs := finite(values); len(xs) > 0 {
		s.min, s.max = stats.Bounds(xs)
	}
	s.Reset()
	return s
}

// Reset re-derives the scale's interpolation mode from its current
// Ramp and Anchors. Callers that set those fields directly (for
// example to supply precomputed anchors) must call Reset before Map.
func (s *Scale) Reset() {
	s.gradient = palette.RGBGradient{Colors: s.Ramp.Colors}
	// Stage eligibility does not depend on the value being
	// mapped, so probing with zero identifies the serving stage.
	if _, ok := s.mapQuantile(0); ok {
		s.mode = InterpQuantile
	} else if _, ok := s.mapLinear(0); ok {
		s.mode = InterpLinear
	} else if _, ok := s.mapGradient(0); ok {
		s.mode = InterpGradient
	} else if _, ok := s.mapEndpoints(0); ok {
		s.mode = InterpEndpoints
	} else {
		s.mode = InterpConstant
	}
}

// Mode reports which interpolation stage serves the scale's values.
func (s *Scale) Mode() InterpMode {
	return s.mode
}

// anchorsUsable reports whether the anchors support quantile
// positioning.
func (s *Scale) anchorsUsable() bool {
	return s.anchorSpan() && nondecreasing(s.Anchors)
}

// anchorSpan reports whether the anchors cover a nonempty range.
func (s *Scale) anchorSpan() bool {
	return len(s.Anchors) >= 2 && s.Anchors[len(s.Anchors)-1] > s.Anchors[0]
}

// Map returns the color for v. NaN and infinite values map to
// Transparent and values outside the anchor range clamp to the
// boundary colors. Each interpolation stage falls through to the next
// when it cannot place v, ending at the constant stage, so Map always
// produces a color.
func (s *Scale) Map(v float64) RGBA {
	if math.IsNaN(v) || math.IsInf(v, 0) || len(s.Ramp.Colors) == 0 {
		return Transparent
	}
	if c, ok := s.mapQuantile(v); ok {
		return c
	}
	if c, ok := s.mapLinear(v); ok {
		return c
	}
	if c, ok := s.mapGradient(v); ok {
		return c
	}
	if c, ok := s.mapEndpoints(v); ok {
		return c
	}
	return s.withAlpha(s.Ramp.Middle())
}

// mapQuantile positions v along the quantile anchors and reads the
// ramp there.
func (s *Scale) mapQuantile(v float64) (RGBA, bool) {
	if len(s.Ramp.Colors) < 2 || !s.anchorsUsable() {
		return RGBA{}, false
	}
	return s.withAlpha(s.rampAt(s.anchorPos(v))), true
}

// mapLinear spreads the ramp evenly over the anchor range.
func (s *Scale) mapLinear(v float64) (RGBA, bool) {
	if len(s.Ramp.Colors) < 2 || !s.anchorSpan() {
		return RGBA{}, false
	}
	a := s.Anchors
	t := (v - a[0]) / (a[len(a)-1] - a[0])
	return s.withAlpha(s.rampAt(t)), true
}

// mapGradient normalizes v against the series range and reads the
// palette gradient.
func (s *Scale) mapGradient(v float64) (RGBA, bool) {
	if len(s.Ramp.Colors) < 1 || s.max <= s.min {
		return RGBA{}, false
	}
	t := (v - s.min) / (s.max - s.min)
	c := color.RGBAModel.Convert(s.gradient.Map(clamp01(t))).(color.RGBA)
	return s.withAlpha(c), true
}

// mapEndpoints blends the ramp's first and last colors over the
// series range.
func (s *Scale) mapEndpoints(v float64) (RGBA, bool) {
	if len(s.Ramp.Colors) < 2 || s.max <= s.min {
		return RGBA{}, false
	}
	t := clamp01((v - s.min) / (s.max - s.min))
	first, last := s.Ramp.Colors[0], s.Ramp.Colors[len(s.Ramp.Colors)-1]
	return s.withAlpha(lerpRGBA(first, last, t)), true
}

// Colors maps a whole series through s.
func (s *Scale) Colors(values []float64) []RGBA {
	out := make([]RGBA, len(values))
	for i, v := range values {
		out[i] = s.Map(v)
	}
	return out
}

// anchorPos converts v to a ramp position in [0,1]: anchor i sits at
// i/(len-1) and values between anchors interpolate linearly.
func (s *Scale) anchorPos(v float64) float64 {
	a := s.Anchors
	last := len(a) - 1
	if v <= a[0] {
		return 0
	}
	if v >= a[last] {
		return 1
	}
	i := sort.SearchFloat64s(a, v)
	// a[i-1] < v <= a[i] here because v > a[0].
	frac := 1.0
	if a[i] > a[i-1] {
		frac = (v - a[i-1]) / (a[i] - a[i-1])
	}
	return (float64(i-1) + frac) / float64(last)
}

// rampAt reads the ramp at position t in [0,1] with the colors evenly
// spaced, clamping at the ends.
func (s *Scale) rampAt(t float64) color.RGBA {
	cs := s.Ramp.Colors
	n := clamp01(t) * float64(len(cs)-1)
	i := int(n)
	if i >= len(cs)-1 {
		return cs[len(cs)-1]
	}
	return lerpRGBA(cs[i], cs[i+1], n-float64(i))
}

func (s *Scale) withAlpha(c color.RGBA) RGBA {
	return RGBA{c.R, c.G, c.B, uint8(s.Opacity*255 + 0.5)}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(a.R) + t*(float64(b.R)-float64(a.R)) + 0.5),
		G: uint8(float64(a.G) + t*(float64(b.G)-float64(a.G)) + 0.5),
		B: uint8(float64(a.B) + t*(float64(b.B)-float64(a.B)) + 0.5),
		A: 255,
	}
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

func finite(values []float64) []float64 {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			xs = append(xs, v)
		}
	}
	return xs
}

// countDistinct reports the number of distinct values in sorted.
func countDistinct(sorted []float64) int {
	n := 0
	for i, x := range sorted {
		if i == 0 || x != sorted[i-1] {
			n++
		}
	}
	return n
}

func nondecreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			return false
		}
	}
	return true
}
