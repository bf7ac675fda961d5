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

// roadconfig_test.go
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoadConfigIsValid(t *testing.T) {
	cfg := DefaultRoadConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, TEXTURE_NONE_NAME, cfg.Textures[TEX_NULL])
	assert.Equal(t, 928.0, cfg.TotalWidth())
}

func TestParseRoadConfigTOML(t *testing.T) {
	src := `
LightLevel = 255

[Sizes]
RoadWidth = 512
RoadMarkGap = 256
SomethingElse = 3

[Textures]
RoadBody = "FLAT5_4"
Sky = "F_SKY2"
`
	cfg, err := ParseRoadConfig([]byte(src), CONFIG_FORMAT_TOML)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), cfg.LightLevel)
	assert.Equal(t, 512, cfg.Sizes.RoadWidth)
	assert.Equal(t, 256, cfg.Sizes.RoadMarkGap)
	// not mentioned, stays default
	assert.Equal(t, 128, cfg.Sizes.FenceHeight)
	assert.Equal(t, "FLAT5_4", cfg.Textures[TEX_ROADBODY])
	assert.Equal(t, "F_SKY2", cfg.Textures[TEX_SKY])
	assert.Equal(t, "STEP4", cfg.Textures[TEX_ROADSIDEWALL])
}

func TestParseRoadConfigYAML(t *testing.T) {
	src := `
Sizes:
  BackgroundDist: 256
  RoadMarkLength: 128
Textures:
  Fence: BRICK7
LightLevel: 100
`
	cfg, err := ParseRoadConfig([]byte(src), CONFIG_FORMAT_YAML)
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Sizes.BackgroundDist)
	assert.Equal(t, 128, cfg.Sizes.RoadMarkLength)
	assert.Equal(t, "BRICK7", cfg.Textures[TEX_FENCE])
	assert.Equal(t, uint8(100), cfg.LightLevel)
}

func TestParseRoadConfigErrors(t *testing.T) {
	cases := []struct {
		name, format, src, msg string
	}{
		{"syntax", CONFIG_FORMAT_TOML, "Sizes = [", "syntax error"},
		{"sizes not a table", CONFIG_FORMAT_TOML, "Sizes = 5", "bad value of 'Sizes' setting"},
		{"negative size", CONFIG_FORMAT_TOML, "[Sizes]\nRoadWidth = -1", "'RoadWidth'"},
		{"size not a number", CONFIG_FORMAT_YAML, "Sizes:\n  FenceHeight: high", "'FenceHeight'"},
		{"empty texture", CONFIG_FORMAT_TOML, "[Textures]\nFence = \"\"", "'Fence'"},
		{"quoted texture", CONFIG_FORMAT_YAML, "Textures:\n  Sky: 'A\"B'", "'Sky'"},
		{"light too bright", CONFIG_FORMAT_TOML, "LightLevel = 256", "'LightLevel'"},
		{"side above fence", CONFIG_FORMAT_TOML, "[Sizes]\nRoadSideHeight = 200", "road side must not be higher than the fence"},
		{"mark too wide", CONFIG_FORMAT_TOML, "[Sizes]\nRoadWidth = 20\nRoadMarkWidth = 19", "road mark must be narrower"},
		{"background too close", CONFIG_FORMAT_YAML, "Sizes:\n  BackgroundDist: 32", "'BackgroundDist'"},
		{"gap too short", CONFIG_FORMAT_TOML, "[Sizes]\nRoadMarkGap = 15", "'RoadMarkGap'"},
		{"unknown format", "ini", "", "unsupported road config format"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseRoadConfig([]byte(c.src), c.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}

func TestConfigFormatFromName(t *testing.T) {
	assert.Equal(t, CONFIG_FORMAT_YAML, ConfigFormatFromName("road.yaml"))
	assert.Equal(t, CONFIG_FORMAT_YAML, ConfigFormatFromName("ROAD.YML"))
	assert.Equal(t, CONFIG_FORMAT_TOML, ConfigFormatFromName("road.toml"))
	assert.Equal(t, CONFIG_FORMAT_TOML, ConfigFormatFromName("road.cfg"))
}

func TestLoadRoadConfig(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "road.yml")
	require.NoError(t, os.WriteFile(fname, []byte("LightLevel: 50\n"), 0644))
	cfg, err := LoadRoadConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, uint8(50), cfg.LightLevel)

	_, err = LoadRoadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
