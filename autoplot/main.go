// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command autoplot infers a chart from a tabular data file and
// renders it.
//
// autoplot reads a CSV file (or a JSON file in split orientation,
// chosen by extension), types the columns, picks a chart archetype
// for the shape of the data, and writes an SVG rendering. The -vega
// flag emits the equivalent Vega-Lite document instead, -table prints
// the parsed table, and -kpi prints the formatted values of a KPI
// result. Datasets that carry latitude/longitude columns select the
// hexagon map, which has no SVG form; build those with hexmap.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/autoviz/autoviz/chart"
	"github.com/autoviz/autoviz/classify"
	"github.com/autoviz/autoviz/render"
	"github.com/autoviz/autoviz/tabular"
	"github.com/autoviz/autoviz/vega"
)

func main() {
	log.SetPrefix("autoplot: ")
	log.SetFlags(0)

	var (
		flagOut   = flag.String("o", "", "write output to `file` (default: stdout)")
		flagVega  = flag.Bool("vega", false, "output a Vega-Lite document instead of an SVG")
		flagTable = flag.Bool("table", false, "output the parsed table instead of a chart")
		flagKPI   = flag.Bool("kpi", false, "output KPI values instead of a chart")
		flagTitle = flag.String("title", "", "set the chart `title` (default: derived from the bindings)")
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
	path := "-"
	if flag.NArg() == 1 {
		path = flag.Arg(0)
	}

	res, err := readInput(path)
	if err != nil {
		log.Fatal(err)
	}

	spec := chart.Select(classify.Columns(res), res.NumRows())
	if *flagTitle != "" {
		spec.Title = *flagTitle
	}

	f := os.Stdout
	if *flagOut != "" {
		f, err = os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	switch {
	case *flagTable:
		if err := tabular.Fprint(f, res); err != nil {
			log.Fatal(err)
		}
	case *flagVega:
		doc, err := vega.Encode(spec, res)
		if err != nil {
			log.Fatal(err)
		}
		f.Write(doc)
		fmt.Fprintln(f)
	case *flagKPI:
		if spec.Kind != chart.KPI {
			log.Fatalf("selected a %s chart, not a KPI", spec.Kind)
		}
		printKPI(f, spec, res)
	default:
		switch spec.Kind {
		case chart.None:
			log.Fatal("no chart applies to this data")
		case chart.Map:
			log.Fatal("geographic data; use hexmap to build the hexagon layer")
		case chart.KPI:
			printKPI(f, spec, res)
		default:
			width := 500
			if spec.Kind == chart.DualAxis {
				// One facet per axis.
				width *= 2
			}
			if err := render.WriteSVG(f, spec, res, width, 350); err != nil {
				log.Fatal(err)
			}
		}
	}
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

func printKPI(w io.Writer, spec chart.Spec, res *tabular.Result) {
	for _, kv := range chart.KPIValues(spec, res) {
		fmt.Fprintf(w, "%s: %s\n", kv.Label, kv.Value)
	}
}
