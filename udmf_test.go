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

// udmf_test.go
package main

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateTestRoad(t *testing.T) *Map {
	cmds := []Command{
		RestartCommand(StartParams{X: 64, Y: -32, Angle: math.Pi / 4, ZPos: 16,
			Height: 1024, MarkShift: 100}),
		LineCommand(700),
		SlopeCommand(0.15),
		ArcCommand(900, degreesToRadians(60), 6),
		SlopeCommand(0),
		LineCommand(400),
	}
	m, err := GenerateRoad(cmds, DefaultRoadConfig())
	require.NoError(t, err)
	return m
}

func TestTEXTMAPRoundTrip(t *testing.T) {
	m := generateTestRoad(t)
	var buf bytes.Buffer
	require.NoError(t, WriteTEXTMAP(&buf, m, 6))
	assert.True(t, strings.HasPrefix(buf.String(), "namespace = \"zdoom\";\n"))

	m2, err := ParseTEXTMAP(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, m.Stats(), m2.Stats())
	require.NotNil(t, m2.PlayerStart)
	assert.InDelta(t, m.PlayerStart.X, m2.PlayerStart.X, 1e-6)
	assert.InDelta(t, m.PlayerStart.Y, m2.PlayerStart.Y, 1e-6)
	assert.Equal(t, 45, m2.PlayerStart.Angle)

	for i := range m.Vertices {
		v, v2 := m.Vertices[i], m2.Vertices[i]
		assert.InDelta(t, v.X, v2.X, 1e-6, "vertex #%d", i)
		assert.InDelta(t, v.Y, v2.Y, 1e-6, "vertex #%d", i)
		assert.Equal(t, v.HaveZFloor, v2.HaveZFloor, "vertex #%d", i)
		if v.HaveZFloor {
			assert.InDelta(t, v.ZFloor, v2.ZFloor, 1e-6, "vertex #%d", i)
		}
	}
	for i := range m.Linedefs {
		assert.Equal(t, m.Linedefs[i], m2.Linedefs[i], "linedef #%d", i)
	}
	// texture ids depend on the order of use, names don't
	for i := range m.Sidedefs {
		sd, sd2 := m.Sidedefs[i], m2.Sidedefs[i]
		assert.Equal(t, sd.Sector, sd2.Sector, "sidedef #%d", i)
		assert.Equal(t, m.Textures[sd.TextureBottom], m2.Textures[sd2.TextureBottom], "sidedef #%d", i)
		assert.Equal(t, m.Textures[sd.TextureTop], m2.Textures[sd2.TextureTop], "sidedef #%d", i)
		assert.Equal(t, m.Textures[sd.TextureMiddle], m2.Textures[sd2.TextureMiddle], "sidedef #%d", i)
	}
	for i := range m.Sectors {
		s, s2 := m.Sectors[i], m2.Sectors[i]
		assert.Equal(t, s.HeightFloor, s2.HeightFloor, "sector #%d", i)
		assert.Equal(t, s.HeightCeiling, s2.HeightCeiling, "sector #%d", i)
		assert.Equal(t, s.LightLevel, s2.LightLevel, "sector #%d", i)
		assert.Equal(t, m.Textures[s.TextureFloor], m2.Textures[s2.TextureFloor], "sector #%d", i)
		assert.Equal(t, m.Textures[s.TextureCeiling], m2.Textures[s2.TextureCeiling], "sector #%d", i)
	}
}

func TestWriteTEXTMAPPrecision(t *testing.T) {
	m := NewMap()
	m.AddTexture(TEXTURE_NONE_NAME)
	m.AddVertex(Vertex{X: 1.23456789, Y: -2})
	var buf bytes.Buffer
	require.NoError(t, WriteTEXTMAP(&buf, m, 2))
	assert.Contains(t, buf.String(), "x = 1.23;\n")
	assert.Contains(t, buf.String(), "y = -2.00;\n")

	buf.Reset()
	require.NoError(t, WriteTEXTMAP(&buf, m, 0))
	assert.Contains(t, buf.String(), "x = 1;\n")

	assert.Error(t, WriteTEXTMAP(&buf, m, MAX_PRECISION+1))
	assert.Error(t, WriteTEXTMAP(&buf, m, -1))
}

func TestWriteTEXTMAPChecksReferences(t *testing.T) {
	m := NewMap()
	m.AddTexture(TEXTURE_NONE_NAME)
	m.AddVertex(Vertex{X: 0, Y: 0})
	m.AddVertex(Vertex{X: 64, Y: 0})
	m.AddLinedef(NewLinedef(0, 1, 0, ID_INVALID))
	var buf bytes.Buffer
	err := WriteTEXTMAP(&buf, m, DEFAULT_PRECISION)
	assertKind(t, ERR_RANGE, err)
	assert.Contains(t, err.Error(), "linedef #0 refers to non-existent sidedef 0")

	m.AddSector(NewSector(0, 128, 0, 0, 160))
	m.AddSidedef(PlainSidedef(0))
	require.NoError(t, WriteTEXTMAP(&buf, m, DEFAULT_PRECISION))

	m.AddSidedef(PlainSidedef(5))
	assertKind(t, ERR_RANGE, WriteTEXTMAP(&buf, m, DEFAULT_PRECISION))
}

func TestWriteTEXTMAPCoordinateRange(t *testing.T) {
	m := NewMap()
	m.AddTexture(TEXTURE_NONE_NAME)
	m.AddVertex(Vertex{X: 40000, Y: 0})
	var buf bytes.Buffer
	assertKind(t, ERR_RANGE, WriteTEXTMAP(&buf, m, DEFAULT_PRECISION))
}

func TestWriteTEXTMAPSectorHeightRange(t *testing.T) {
	m := NewMap()
	m.AddTexture(TEXTURE_NONE_NAME)
	m.AddSector(NewSector(-34000, -32000, 0, 0, 160))
	var buf bytes.Buffer
	err := WriteTEXTMAP(&buf, m, DEFAULT_PRECISION)
	assertKind(t, ERR_RANGE, err)
	assert.Contains(t, err.Error(), "sector #0")

	m.Sectors[0].HeightFloor = -32768
	require.NoError(t, WriteTEXTMAP(&buf, m, DEFAULT_PRECISION))
	m.Sectors[0].HeightCeiling = 32768
	assertKind(t, ERR_RANGE, WriteTEXTMAP(&buf, m, DEFAULT_PRECISION))
}

func TestParseTEXTMAP(t *testing.T) {
	src := `// comment
namespace = "zdoom";
thing { x = 10.5; y = -20; angle = 90; type = 3004; }
thing { x = 1; y = 2; angle = 180; type = 1; skill1 = true; }
vertex { x = 0; y = 0; zfloor = 8.25; }
vertex { x = 0x40; y = -0.5; }
linedef { v1 = 0; v2 = 1; sidefront = 0; blocking = true; special = 181; arg0 = 1; }
sidedef { sector = 0; texturebottom = "STEP4"; }
sector { heightfloor = -16; heightceiling = 128; texturefloor = "FLAT19"; textureceiling = "F_SKY1"; }
unknownblock { foo = "bar"; }
`
	m, err := ParseTEXTMAP([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, PlayerStart{X: 1, Y: 2, Angle: 180}, *m.PlayerStart)
	require.Len(t, m.Vertices, 2)
	assert.True(t, m.Vertices[0].HaveZFloor)
	assert.Equal(t, 8.25, m.Vertices[0].ZFloor)
	assert.Equal(t, 64.0, m.Vertices[1].X)
	assert.Equal(t, -0.5, m.Vertices[1].Y)
	require.Len(t, m.Linedefs, 1)
	l := m.Linedefs[0]
	assert.Equal(t, ID_INVALID, l.SideBack)
	assert.True(t, l.Blocking)
	assert.Equal(t, SPECIAL_PLANE_ALIGN, l.Action.Special)
	assert.Equal(t, 1, l.Action.Args[0])
	require.Len(t, m.Sectors, 1)
	s := m.Sectors[0]
	assert.Equal(t, -16, s.HeightFloor)
	assert.Equal(t, uint8(UDMF_DEFAULT_LIGHTLEVEL), s.LightLevel)
	assert.Equal(t, "FLAT19", m.Textures[s.TextureFloor])
	assert.Equal(t, "STEP4", m.Textures[m.Sidedefs[0].TextureBottom])
	assert.Equal(t, TEXTURE_NONE_NAME, m.Textures[m.Sidedefs[0].TextureTop])
}

func TestParseTEXTMAPErrors(t *testing.T) {
	cases := []struct {
		name, src, msg string
	}{
		{"no namespace", `vertex { x = 0; y = 0; }`, "missing namespace"},
		{"missing value", `namespace = "zdoom"; vertex { x = ; y = 0; }`, "bad value"},
		{"missing semicolon", `namespace = "zdoom"; vertex { x = 0 y = 0; }`, "expected ';'"},
		{"missing required key", `namespace = "zdoom"; sidedef { offsetx = 1; }`, "missing 'sector'"},
		{"wrong type", `namespace = "zdoom"; vertex { x = "a"; y = 0; }`, "'x' must be a number"},
		{"fraction in integer", `namespace = "zdoom"; linedef { v1 = 0.5; v2 = 1; sidefront = 0; }`, "'v1' must be an integer"},
		{"negative id", `namespace = "zdoom"; linedef { v1 = -1; v2 = 1; sidefront = 0; }`, "'v1' must not be negative"},
		{"bad light", `namespace = "zdoom"; sector { texturefloor = "A"; textureceiling = "B"; lightlevel = 300; }`, "'lightlevel' must be between 0 and 255"},
		{"unterminated block", `namespace = "zdoom"; vertex { x = 0;`, "expected key or '}'"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseTEXTMAP([]byte(c.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}
