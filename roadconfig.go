// Copyright (C) 2025, VigilantDoomer
//
// This file is part of RoadGen program.
//
// RoadGen is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// RoadGen is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with RoadGen.  If not, see <https://www.gnu.org/licenses/>.

// roadconfig.go
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"gopkg.in/yaml.v3"
)

// Texture ids. The order is the order of Map.Textures, "-" must stay first
const (
	TEX_NULL = iota
	TEX_SKY
	TEX_BACKGROUND
	TEX_FENCE
	TEX_FENCEFLOOR
	TEX_ROADSIDE
	TEX_ROADSIDEWALL
	TEX_ROADBODY
	TEX_ROADMARK
	TEXTURE_COUNT
)

const (
	CONFIG_FORMAT_TOML = "toml"
	CONFIG_FORMAT_YAML = "yaml"
)

const MAX_TEXTURE_NAME_LEN = 256

type RoadSizes struct {
	BackgroundDist int
	FenceHeight    int
	RoadWidth      int
	RoadSideWidth  int
	RoadSideHeight int
	RoadMarkWidth  int
	RoadMarkLength int
	RoadMarkGap    int
}

type RoadConfig struct {
	Sizes      RoadSizes
	Textures   [TEXTURE_COUNT]string
	LightLevel uint8
}

// Names of texture properties in config file, indexed by texture id
var textureProps = [TEXTURE_COUNT]string{
	TEX_NULL:         "",
	TEX_SKY:          "Sky",
	TEX_BACKGROUND:   "Background",
	TEX_FENCE:        "Fence",
	TEX_FENCEFLOOR:   "FenceFloor",
	TEX_ROADSIDE:     "RoadSide",
	TEX_ROADSIDEWALL: "RoadSideWall",
	TEX_ROADBODY:     "RoadBody",
	TEX_ROADMARK:     "RoadMark",
}

func DefaultRoadConfig() *RoadConfig {
	return &RoadConfig{
		Sizes: RoadSizes{
			BackgroundDist: 128,
			FenceHeight:    128,
			RoadWidth:      384,
			RoadSideWidth:  128,
			RoadSideHeight: 8,
			RoadMarkWidth:  16,
			RoadMarkLength: 256,
			RoadMarkGap:    512,
		},
		Textures: [TEXTURE_COUNT]string{
			TEX_NULL:         TEXTURE_NONE_NAME,
			TEX_SKY:          "F_SKY1",
			TEX_BACKGROUND:   "FWATER1",
			TEX_FENCE:        "BIGBRIK1",
			TEX_FENCEFLOOR:   "FLOOR7_1",
			TEX_ROADSIDE:     "SLIME14",
			TEX_ROADSIDEWALL: "STEP4",
			TEX_ROADBODY:     "CEIL5_1",
			TEX_ROADMARK:     "FLAT19",
		},
		LightLevel: 192,
	}
}

// Total width of a figure cross-section, background included
func (c *RoadConfig) TotalWidth() float64 {
	return 2.0*(BACKGROUND_THICKNESS+float64(c.Sizes.BackgroundDist)+
		float64(c.Sizes.RoadSideWidth)) + float64(c.Sizes.RoadWidth)
}

func inRange[T constraints.Ordered](v, lo, hi T) bool {
	return v >= lo && v <= hi
}

// ConfigFormatFromName picks decoder by file extension, TOML being default
func ConfigFormatFromName(fname string) string {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".yaml", ".yml":
		return CONFIG_FORMAT_YAML
	}
	return CONFIG_FORMAT_TOML
}

func LoadRoadConfig(fname string) (*RoadConfig, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read road config '%s'", fname)
	}
	cfg, err := ParseRoadConfig(data, ConfigFormatFromName(fname))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", fname)
	}
	return cfg, nil
}

// ParseRoadConfig decodes the document and applies defaults for everything
// not present. Unknown settings and properties are ignored
func ParseRoadConfig(data []byte, format string) (*RoadConfig, error) {
	raw := make(map[string]interface{})
	var err error
	switch format {
	case CONFIG_FORMAT_YAML:
		err = yaml.Unmarshal(data, &raw)
	case CONFIG_FORMAT_TOML:
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, errors.Errorf("unsupported road config format '%s'", format)
	}
	if err != nil {
		return nil, errors.Wrap(err, "bad road config - syntax error")
	}
	cfg := DefaultRoadConfig()
	if err := cfg.applySizes(raw); err != nil {
		return nil, err
	}
	if err := cfg.applyTextures(raw); err != nil {
		return nil, err
	}
	if err := cfg.applyLightLevel(raw); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func settingTable(raw map[string]interface{}, name string) (map[string]interface{}, bool, error) {
	v, ok := raw[name]
	if !ok {
		return nil, false, nil
	}
	tbl, ok := v.(map[string]interface{})
	if !ok {
		return nil, false, errors.Errorf("bad road config - bad value of '%s' setting", name)
	}
	return tbl, true, nil
}

// Integers come as int64 from toml and as int from yaml
func configInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > uint64(1<<62) {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func (c *RoadConfig) applySizes(raw map[string]interface{}) error {
	tbl, ok, err := settingTable(raw, "Sizes")
	if !ok || err != nil {
		return err
	}
	dests := map[string]*int{
		"BackgroundDist": &c.Sizes.BackgroundDist,
		"FenceHeight":    &c.Sizes.FenceHeight,
		"RoadWidth":      &c.Sizes.RoadWidth,
		"RoadSideWidth":  &c.Sizes.RoadSideWidth,
		"RoadSideHeight": &c.Sizes.RoadSideHeight,
		"RoadMarkWidth":  &c.Sizes.RoadMarkWidth,
		"RoadMarkLength": &c.Sizes.RoadMarkLength,
		"RoadMarkGap":    &c.Sizes.RoadMarkGap,
	}
	for name, v := range tbl {
		dest, known := dests[name]
		if !known {
			Log.Verbose(1, "Ignoring unknown size property '%s' in road config\n", name)
			continue
		}
		n, isInt := configInt(v)
		if !isInt || !inRange(n, 0, 1<<31-1) {
			return errors.Errorf("bad road config - bad value of size property '%s' in 'Sizes' setting value (must be non-negative number)", name)
		}
		*dest = int(n)
	}
	return nil
}

func (c *RoadConfig) applyTextures(raw map[string]interface{}) error {
	tbl, ok, err := settingTable(raw, "Textures")
	if !ok || err != nil {
		return err
	}
	for name, v := range tbl {
		idx := -1
		for i := TEX_NULL + 1; i < TEXTURE_COUNT; i++ {
			if textureProps[i] == name {
				idx = i
				break
			}
		}
		if idx == -1 {
			Log.Verbose(1, "Ignoring unknown texture property '%s' in road config\n", name)
			continue
		}
		s, isStr := v.(string)
		if !isStr || !ValidTextureName(s) {
			return errors.Errorf("bad road config - bad or empty value of texture property '%s' in 'Textures' setting value", name)
		}
		c.Textures[idx] = s
	}
	return nil
}

func (c *RoadConfig) applyLightLevel(raw map[string]interface{}) error {
	v, ok := raw["LightLevel"]
	if !ok {
		return nil
	}
	n, isInt := configInt(v)
	if !isInt || !inRange(n, 0, 255) {
		return errors.New("bad road config - bad or empty value of 'LightLevel' setting")
	}
	c.LightLevel = uint8(n)
	return nil
}

// Long names and names with quotes or backslashes would need escaping in
// TEXTMAP, so they are not accepted
func ValidTextureName(s string) bool {
	return len(s) > 0 && len(s) <= MAX_TEXTURE_NAME_LEN &&
		!strings.ContainsAny(s, "\"\\")
}

// Validate checks the relations between sizes that figure builder relies on
func (c *RoadConfig) Validate() error {
	s := &c.Sizes
	if !inRange(s.BackgroundDist, 33, 4096) {
		return errors.New("bad road config - bad value of size property 'BackgroundDist' in 'Sizes' setting value - must be between 33 and 4096")
	}
	if !inRange(s.RoadSideWidth, 1, 4096) {
		return errors.New("bad road config - bad value of size property 'RoadSideWidth' in 'Sizes' setting value - must be between 1 and 4096")
	}
	if s.RoadSideHeight > s.FenceHeight {
		return errors.New("bad road config - bad value of size properties 'RoadSideHeight' and/or 'FenceHeight' in 'Sizes' setting value - road side must not be higher than the fence")
	}
	if s.RoadWidth > 4096 {
		return errors.New("bad road config - bad value of size property 'RoadWidth' in 'Sizes' setting value - must be less than or equal to 4096")
	}
	if s.RoadMarkWidth < 4 {
		return errors.New("bad road config - bad value of size property 'RoadMarkWidth' in 'Sizes' setting value - must be greater than or equal to 4")
	}
	if s.RoadMarkWidth+2 > s.RoadWidth {
		return errors.New("bad road config - bad value of size properties 'RoadWidth' and/or 'RoadMarkWidth' in 'Sizes' setting value - road mark must be narrower than the road by 2 or more")
	}
	if !inRange(s.RoadMarkGap, 16, 65535) {
		return errors.New("bad road config - bad value of size property 'RoadMarkGap' in 'Sizes' setting value - must be between 16 and 65535")
	}
	if !inRange(s.RoadMarkLength, 16, 65535) {
		return errors.New("bad road config - bad value of size property 'RoadMarkLength' in 'Sizes' setting value - must be between 16 and 65535")
	}
	for i := TEX_NULL + 1; i < TEXTURE_COUNT; i++ {
		if !ValidTextureName(c.Textures[i]) {
			return errors.Errorf("bad road config - bad or empty value of texture property '%s' in 'Textures' setting value", textureProps[i])
		}
	}
	return nil
}
