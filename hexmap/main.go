// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command hexmap builds a hexagon map layer from point data.
//
// hexmap reads a CSV file (or a JSON file in split orientation,
// chosen by extension) with latitude/longitude columns, bins each
// requested metric column into H3 hexagons, blends the layers, and
// writes the combined layer as JSON in the shape a deck.gl
// H3HexagonLayer consumes. A YAML file maps metric names to their
// resolution, opacity, color scheme, and height designation:
//
//	sales:
//	  resolution: 7
//	  scheme: White-Red
//	  height: true
//
// The -legend flag writes the first metric's color ramp as a PNG
// strip.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/autoviz/autoviz/chart"
	"github.com/autoviz/autoviz/classify"
	"github.com/autoviz/autoviz/hexbin"
	"github.com/autoviz/autoviz/tabular"
	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

func main() {
	var (
		flagLat     = flag.String("lat", "", "latitude `column` (default: first name containing \"lat\")")
		flagLon     = flag.String("lon", "", "longitude `column` (default: first name containing \"lon\")")
		flagMetrics = flag.String("metrics", "", "blend these comma-separated metric `columns` (default: first numeric column)")
		flagConfig  = flag.String("config", "", "read per-metric settings from YAML `file`")
		flagOut     = flag.String("o", "", "write layer JSON to `file` (default: stdout)")
		flagLegend  = flag.String("legend", "", "write a PNG ramp legend to `file`")
		flagVerbose = flag.Bool("v", false, "log debug detail")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [input.csv|input.json]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:   level,
		NoColor: !term.IsTerminal(int(os.Stderr.Fd())),
	}))

	path := "-"
	if flag.NArg() == 1 {
		path = flag.Arg(0)
	}
	res, err := readInput(path)
	if err != nil {
		fatal(logger, "reading input", "err", err)
	}

	cls := classify.Columns(res)
	latCol, lonCol := *flagLat, *flagLon
	if latCol == "" || lonCol == "" {
		spec := chart.Select(cls, res.NumRows())
		if spec.Kind != chart.Map {
			fatal(logger, "no latitude/longitude columns found; pass -lat and -lon")
		}
		if latCol == "" {
			latCol = spec.Role(chart.RoleLat)
		}
		if lonCol == "" {
			lonCol = spec.Role(chart.RoleLon)
		}
	}
	metrics := splitList(*flagMetrics)
	if len(metrics) == 0 {
		for _, name := range cls.Numeric {
			if name != latCol && name != lonCol {
				metrics = []string{name}
				break
			}
		}
	}
	if len(metrics) == 0 {
		fatal(logger, "no metric column found; pass -metrics")
	}
	logger.Debug("binding metrics", "lat", latCol, "lon", lonCol, "metrics", metrics)

	cfgs := map[string]hexbin.MetricConfig{}
	if *flagConfig != "" {
		data, err := os.ReadFile(*flagConfig)
		if err != nil {
			fatal(logger, "reading config", "err", err)
		}
		if cfgs, err = hexbin.ParseConfigs(data); err != nil {
			fatal(logger, "reading config", "err", err)
		}
	}
	sels := make([]hexbin.MetricSelection, len(metrics))
	for i, m := range metrics {
		sels[i] = hexbin.MetricSelection{Column: m, Config: cfgs[m]}
	}

	m, err := hexbin.BuildMap(res, latCol, lonCol, sels, hexbin.MapOptions{}, logger)
	if err != nil {
		fatal(logger, "building map", "err", err)
	}
	logger.Debug("blended layers", "metrics", len(sels), "cells", len(m.Cells), "extruded", m.Extruded)

	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		fatal(logger, "encoding layer", "err", err)
	}
	f := os.Stdout
	if *flagOut != "" {
		f, err = os.Create(*flagOut)
		if err != nil {
			fatal(logger, "writing layer", "err", err)
		}
		defer f.Close()
	}
	f.Write(out)
	fmt.Fprintln(f)

	if *flagLegend != "" {
		if err := writeLegend(*flagLegend, sels[0]); err != nil {
			fatal(logger, "writing legend", "err", err)
		}
	}
}

func fatal(logger *slog.Logger, msg string, args ...any) {
	logger.Error(msg, args...)
	os.Exit(1)
}

func readInput(path string) (*tabular.Result, error) {
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
	}
	if strings.HasSuffix(path, ".json") {
		return tabular.ReadJSON(f)
	}
	return tabular.ReadCSV(f)
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
