// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hexbin

import (
	"fmt"

	"github.com/autoviz/autoviz/colormap"
	"gopkg.in/yaml.v2"
)

// Defaults for unset MetricConfig fields.
const (
	DefaultResolution = 6
	DefaultOpacity    = 0.75
)

// A MetricConfig sets how one metric aggregates and colors. The zero
// value means resolution 6, opacity 0.75, and the default color
// scheme. Height marks the metric whose values extrude the combined
// map; when several metrics set it, the first wins.
type MetricConfig struct {
	Resolution int     `yaml:"resolution"`
	Opacity    float64 `yaml:"opacity"`
	Scheme     string  `yaml:"scheme"`
	Reversed   bool    `yaml:"reversed"`
	Height     bool    `yaml:"height"`
}

// Validate fills unset fields with defaults and rejects explicit
// values outside their domain.
func (c *MetricConfig) Validate() error {
	if c.Resolution == 0 {
		c.Resolution = DefaultResolution
	}
	if c.Opacity == 0 {
		c.Opacity = DefaultOpacity
	}
	if c.Scheme == "" {
		c.Scheme = colormap.DefaultScheme
	}
	if c.Resolution < MinResolution || c.Resolution > MaxResolution {
		return fmt.Errorf("resolution %d outside [%d, %d]", c.Resolution, MinResolution, MaxResolution)
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("opacity %v outside [0, 1]", c.Opacity)
	}
	if _, ok := colormap.Lookup(c.Scheme); !ok {
		return fmt.Errorf("unknown color scheme %q", c.Scheme)
	}
	return nil
}

// ParseConfigs reads a YAML document mapping metric names to their
// configs. Unknown fields are errors; missing fields take defaults
// when the config is validated.
func ParseConfigs(data []byte) (map[string]MetricConfig, error) {
	var cfgs map[string]MetricConfig
	if err := yaml.UnmarshalStrict(data, &cfgs); err != nil {
		return nil, fmt.Errorf("parse metric configs: %w", err)
	}
	return cfgs, nil
}
