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

// Wad and UDMF (zdoom namespace) specifications
package main

import (
	"regexp"
)

// Brought in accordance with Prboom-Plus 2.6.1um map name ranges. Lump names
// that don't match are still written, but user is warned that ports won't
// recognize them as maps
var MAP_SEQUEL *regexp.Regexp = regexp.MustCompile(`^MAP[0-9][0-9]$`)
var MAP_ExMx *regexp.Regexp = regexp.MustCompile(`^E[1-9]M[0-9][0-9]?$`)

// Characters allowed in lump names written by this program
var LUMP_NAME_VALID *regexp.Regexp = regexp.MustCompile(`^[A-Z0-9\[\]\-_\\]{1,8}$`)

const IWAD_MAGIC_SIG = uint32(0x44415749) // ASCII - 'IWAD'
const PWAD_MAGIC_SIG = uint32(0x44415750) // ASCII - 'PWAD'

// Wad header, 12 bytes.
type WadHeader struct {
	MagicSig       uint32
	LumpCount      uint32 // vanilla treats this as signed int32
	DirectoryStart uint32 // vanilla treats this as signed int32
}

// Lump entries listed one after another comprise the directory,
// the first such lump entry is found at WadHeader.DirectoryStart offset into
// the wad file.
// Each lump entry is 16 bytes long
type LumpEntry struct {
	FilePos uint32 // vanilla treats this as signed int32
	Size    uint32 // vanilla treats this as signed int32
	Name    [8]byte
}

const UDMF_NAMESPACE = "zdoom"

// Lump names of UDMF level, in the order they follow the map marker
const LUMP_TEXTMAP = "TEXTMAP"
const LUMP_ENDMAP = "ENDMAP"

// Ids are indices into Map arrays. ID_INVALID marks absence of back sidedef
const ID_NULL = uint32(0)
const ID_INVALID = ^uint32(0)
const ID_MAX = ID_INVALID - 1

// Texture id 0 is always "-" (no texture)
const TEXTURE_NONE_NAME = "-"

// Coordinates must fit in 16-bit signed integers
const MAP_COORD_MIN = -32768
const MAP_COORD_MAX = 32767

// Light level not written to TEXTMAP, since it is the UDMF default
const UDMF_DEFAULT_LIGHTLEVEL = 160

const THING_PLAYER1_START = 1

// Plane_Align(floor = 1 aligns to front sector, ...)
const SPECIAL_PLANE_ALIGN = 181

type Vertex struct {
	X, Y         float64
	HaveZFloor   bool
	ZFloor       float64
	HaveZCeiling bool
	ZCeiling     float64
}

type PlaneEquation struct {
	A, B, C, D float64
}

type Sector struct {
	HeightFloor    int
	HeightCeiling  int
	TextureFloor   uint32
	TextureCeiling uint32
	LightLevel     uint8
	Tag            uint32
	Special        uint32
	FloorPlane     PlaneEquation
	CeilingPlane   PlaneEquation
}

type Sidedef struct {
	Sector        uint32
	TextureTop    uint32
	TextureBottom uint32
	TextureMiddle uint32
	OffsetX       int
	OffsetY       int
}

type ActionSpecial struct {
	Special       int
	Args          [5]int
	RepeatSpecial bool
	PlayerUse     bool
	PlayerCross   bool
	MonsterCross  bool
	MonsterUse    bool
	Impact        bool
	PlayerPush    bool
	MonsterPush   bool
	MissileCross  bool
}

type Linedef struct {
	V1, V2        uint32
	SideFront     uint32
	SideBack      uint32 // ID_INVALID if one-sided
	Tag           uint32
	TwoSided      bool
	Blocking      bool
	BlockMonsters bool
	DontPegTop    bool
	DontPegBottom bool
	Secret        bool
	DontDraw      bool
	Mapped        bool
	Action        ActionSpecial
}

type PlayerStart struct {
	X, Y  float64
	Angle int // degrees
}

func (v Vertex) Point() FloatVertex {
	return FloatVertex{X: v.X, Y: v.Y}
}

func VertexAt(p FloatVertex) Vertex {
	return Vertex{X: p.X, Y: p.Y}
}

func (v Vertex) WithZFloor(z float64) Vertex {
	v.HaveZFloor = true
	v.ZFloor = z
	return v
}

func NewSector(floor, ceiling int, texFloor, texCeiling uint32, light uint8) Sector {
	return Sector{
		HeightFloor:    floor,
		HeightCeiling:  ceiling,
		TextureFloor:   texFloor,
		TextureCeiling: texCeiling,
		LightLevel:     light,
	}
}

// Sidedef facing sector with no textures
func PlainSidedef(sector uint32) Sidedef {
	return Sidedef{Sector: sector}
}

func (sd Sidedef) WithSector(sector uint32) Sidedef {
	sd.Sector = sector
	return sd
}

func (sd Sidedef) WithBottomTexture(tex uint32) Sidedef {
	sd.TextureBottom = tex
	return sd
}

// NewLinedef makes a wall. Walls without back side are impassable
func NewLinedef(v1, v2, front, back uint32) Linedef {
	return Linedef{
		V1:        v1,
		V2:        v2,
		SideFront: front,
		SideBack:  back,
		TwoSided:  back != ID_INVALID,
		Blocking:  back == ID_INVALID,
	}
}
