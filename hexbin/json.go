// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hexbin

import (
	"encoding/json"

	"github.com/autoviz/autoviz/colormap"
)

// The JSON document mirrors what a deck.gl H3HexagonLayer consumes:
// a row per cell with the hexagon index, an RGBA color array, and an
// elevation, plus the initial view state.
type jsonMap struct {
	InitialViewState jsonViewState `json:"initialViewState"`
	Extruded         bool          `json:"extruded"`
	HeightMetric     string        `json:"heightMetric,omitempty"`
	ElevationScale   float64       `json:"elevationScale"`
	Cells            []jsonCell    `json:"cells"`
}

type jsonViewState struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
	Pitch     int     `json:"pitch"`
	Bearing   int     `json:"bearing"`
}

type jsonCell struct {
	Hex       string        `json:"hex"`
	Color     colormap.RGBA `json:"color"`
	Elevation float64       `json:"elevation"`
	Tooltip   string        `json:"tooltip"`
	Count     int           `json:"count"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
}

func (m MapLayer) MarshalJSON() ([]byte, error) {
	doc := jsonMap{
		InitialViewState: jsonViewState{
			Latitude:  m.Viewport.Lat,
			Longitude: m.Viewport.Lon,
			Zoom:      m.Viewport.Zoom,
			Pitch:     m.Viewport.Pitch,
		},
		Extruded:       m.Extruded,
		HeightMetric:   m.HeightMetric,
		ElevationScale: m.ElevationScale,
		Cells:          make([]jsonCell, len(m.Cells)),
	}
	for i, c := range m.Cells {
		doc.Cells[i] = jsonCell{
			Hex:       c.ID,
			Color:     c.Color,
			Elevation: c.Elevation,
			Tooltip:   c.Tooltip,
			Count:     c.Count,
			Latitude:  c.Lat,
			Longitude: c.Lon,
		}
	}
	return json.Marshal(doc)
}
