// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colormap maps numeric series to RGBA colors.
//
// A Ramp is a named, ordered list of colors. A Scale pairs a ramp
// with quantile anchors computed from a series and maps each value to
// a color, degrading through a chain of simpler interpolation modes
// when the value domain is degenerate. The mapping never fails: the
// final mode paints every value with the ramp's middle color.
package colormap

import (
	"fmt"
	"image/color"
	"sort"
)

// RGBA is a color as rendered: red, green, blue, alpha in [0,255].
// It marshals to JSON as a four-element array.
type RGBA [4]uint8

// Transparent is the color assigned to null and NaN values.
var Transparent = RGBA{0, 0, 0, 0}

// Ramp is a named, ordered color ramp. Colors holds the parsed form
// of Hex with full alpha.
type Ramp struct {
	Name   string
	Hex    []string
	Colors []color.RGBA
}

// Reversed returns a copy of r with the color order flipped. Its name
// gains a "-Reversed" suffix.
func (r Ramp) Reversed() Ramp {
	rev := Ramp{Name: r.Name + "-Reversed"}
	for i := len(r.Hex) - 1; i >= 0; i-- {
		rev.Hex = append(rev.Hex, r.Hex[i])
		rev.Colors = append(rev.Colors, r.Colors[i])
	}
	return rev
}

// Middle returns the ramp's middle color.
func (r Ramp) Middle() color.RGBA {
	return r.Colors[len(r.Colors)/2]
}

// registry is the named ramp set. It is written only by Register,
// which must not be called concurrently with Lookup.
var registry = map[string]Ramp{}

// DefaultScheme names the ramp Lookup falls back to.
const DefaultScheme = "White-Blue"

func init() {
	// The built-in schemes, from white/yellow/blue low ends to
	// saturated high ends.
	mustRegister("White-Blue", "#ffffff", "#ddddff", "#bbbbff", "#9999ff", "#7777ff", "#1F00FF")
	mustRegister("White-Red", "#ffffff", "#ffdddd", "#ffbbbb", "#ff9999", "#ff7777", "#FF1F00")
	mustRegister("White-Green", "#ffffff", "#ddffdd", "#bbffbb", "#99ff99", "#77ff77", "#00FF1F")
	mustRegister("Yellow-Blue",
		"#fafa6e", "#e1f46e", "#caee70", "#b3e773", "#9ddf77", "#89d77b", "#75cf7f", "#62c682",
		"#51bd86", "#40b488", "#31aa89", "#24a08a", "#199689", "#138c87", "#138284", "#17787f",
		"#1d6e79", "#226472", "#265b6b", "#285162", "#2a4858")
	mustRegister("Yellow-Red", "#ffff00", "#ffdd00", "#ffbb00", "#ff9900", "#ff5500", "#ff0000")
	mustRegister("Blue-Green", "#0000ff", "#0044ff", "#0088ff", "#00ccff", "#00ee99", "#00ff00")
}

// Register adds a named ramp built from hex colors ("#rrggbb").
// Registering an existing name replaces it.
func Register(name string, hex ...string) error {
	if len(hex) == 0 {
		return fmt.Errorf("ramp %q has no colors", name)
	}
	ramp := Ramp{Name: name, Hex: hex}
	for _, h := range hex {
		c, err := parseHex(h)
		if err != nil {
			return fmt.Errorf("ramp %q: %w", name, err)
		}
		ramp.Colors = append(ramp.Colors, c)
	}
	registry[name] = ramp
	return nil
}

func mustRegister(name string, hex ...string) {
	if err := Register(name, hex...); err != nil {
		panic(err)
	}
}

// Lookup returns the named ramp. Unknown names fall back to the
// default scheme; the second result reports whether name itself was
// found.
func Lookup(name string) (Ramp, bool) {
	if r, ok := registry[name]; ok {
		return r, true
	}
	return registry[DefaultScheme], false
}

// Names returns the registered scheme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parseHex(s string) (color.RGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("bad hex color %q", s)
	}
	var v [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(s[2*i])
		lo, ok2 := hexDigit(s[2*i+1])
		if !ok1 || !ok2 {
			return color.RGBA{}, fmt.Errorf("bad hex color %q", s)
		}
		v[i] = hi<<4 | lo
	}
	return color.RGBA{v[0], v[1], v[2], 255}, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
