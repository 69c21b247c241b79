// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/autoviz/autoviz/colormap"
	"github.com/autoviz/autoviz/hexbin"
	"golang.org/x/image/draw"
)

// writeLegend renders the metric's color ramp as a horizontal
// gradient strip, drawn one pixel tall and scaled up to a visible
// band.
func writeLegend(path string, sel hexbin.MetricSelection) error {
	cfg := sel.Config
	if err := cfg.Validate(); err != nil {
		return err
	}
	ramp, _ := colormap.Lookup(cfg.Scheme)
	if cfg.Reversed {
		ramp = ramp.Reversed()
	}

	vals := make([]float64, 256)
	for i := range vals {
		vals[i] = float64(i)
	}
	strip := image.NewRGBA(image.Rect(0, 0, len(vals), 1))
	for x, c := range colormap.NewScale(vals, ramp, 1).Colors(vals) {
		strip.SetRGBA(x, 0, color.RGBA{c[0], c[1], c[2], c[3]})
	}
	dst := image.NewRGBA(image.Rect(0, 0, 256, 32))
	draw.BiLinear.Scale(dst, dst.Bounds(), strip, strip.Bounds(), draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, dst)
}
