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

// udmf_write.go
package main

import (
	"bufio"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

const DEFAULT_PRECISION = 3
const MAX_PRECISION = 15

// Plane coefficients smaller than this are not written, and plane is not
// written at all when none of a, b, c is big enough
func planeEpsilon(precision int) float64 {
	if precision > 7 {
		precision = 7
	}
	return math.Pow(10, -float64(precision))
}

type textmapWriter struct {
	w    *bufio.Writer
	m    *Map
	prec int
	eps  float64
}

// WriteTEXTMAP serializes the map in UDMF zdoom namespace. Every reference
// is checked to point to an existing entity, and every vertex to fit map
// coordinate range, before it gets written
func WriteTEXTMAP(w io.Writer, m *Map, precision int) error {
	if !inRange(precision, 0, MAX_PRECISION) {
		return errors.Errorf("bad float precision %d, must be between 0 and %d",
			precision, MAX_PRECISION)
	}
	tw := &textmapWriter{
		w:    bufio.NewWriter(w),
		m:    m,
		prec: precision,
		eps:  planeEpsilon(precision),
	}
	tw.str("namespace = \"" + UDMF_NAMESPACE + "\";\n\n")
	if m.PlayerStart != nil {
		tw.writePlayerStart(m.PlayerStart)
	}
	for i := range m.Vertices {
		if err := tw.writeVertex(i, &m.Vertices[i]); err != nil {
			return err
		}
	}
	for i := range m.Linedefs {
		if err := tw.writeLinedef(i, &m.Linedefs[i]); err != nil {
			return err
		}
	}
	for i := range m.Sidedefs {
		if err := tw.writeSidedef(i, &m.Sidedefs[i]); err != nil {
			return err
		}
	}
	for i := range m.Sectors {
		if err := tw.writeSector(i, &m.Sectors[i]); err != nil {
			return err
		}
	}
	return errors.Wrap(tw.w.Flush(), "couldn't write TEXTMAP")
}

// bufio.Writer keeps the first error to itself, it is reported by Flush
func (tw *textmapWriter) str(s string) {
	tw.w.WriteString(s)
}

func (tw *textmapWriter) header(kind string, idx int) {
	tw.str(kind + " // " + strconv.Itoa(idx) + "\n{\n")
}

func (tw *textmapWriter) footer() {
	tw.str("}\n\n")
}

func (tw *textmapWriter) float(key string, v float64) {
	tw.str(key + " = " + strconv.FormatFloat(v, 'f', tw.prec, 64) + ";\n")
}

func (tw *textmapWriter) integer(key string, v int) {
	tw.str(key + " = " + strconv.Itoa(v) + ";\n")
}

func (tw *textmapWriter) flag(key string, v bool) {
	if v {
		tw.str(key + " = true;\n")
	}
}

func (tw *textmapWriter) texture(key string, id uint32) {
	tw.str(key + " = \"" + tw.m.Textures[id] + "\";\n")
}

func (tw *textmapWriter) checkRef(kind string, idx int, field string, ref uint32,
	count int) error {
	if uint64(ref) >= uint64(count) {
		return NewRoadError(ERR_RANGE, "%s #%d refers to non-existent %s %d",
			kind, idx, field, ref)
	}
	return nil
}

func (tw *textmapWriter) writePlayerStart(ps *PlayerStart) {
	tw.header("thing", 0)
	tw.float("x", ps.X)
	tw.float("y", ps.Y)
	tw.integer("angle", ps.Angle)
	tw.integer("type", THING_PLAYER1_START)
	for i := 1; i <= 8; i++ {
		tw.flag("skill"+strconv.Itoa(i), true)
	}
	tw.flag("single", true)
	tw.flag("coop", true)
	tw.flag("dm", true)
	for i := 1; i <= 8; i++ {
		tw.flag("class"+strconv.Itoa(i), true)
	}
	tw.footer()
}

func (tw *textmapWriter) writeVertex(idx int, v *Vertex) error {
	if !inRange(v.X, MAP_COORD_MIN, MAP_COORD_MAX) ||
		!inRange(v.Y, MAP_COORD_MIN, MAP_COORD_MAX) {
		return NewRoadError(ERR_RANGE, "vertex #%d has coordinates %s out of range",
			idx, v.Point().toString())
	}
	tw.header("vertex", idx)
	tw.float("x", v.X)
	tw.float("y", v.Y)
	if v.HaveZFloor {
		tw.float("zfloor", v.ZFloor)
	}
	if v.HaveZCeiling {
		tw.float("zceiling", v.ZCeiling)
	}
	tw.footer()
	return nil
}

func (tw *textmapWriter) writeLinedef(idx int, l *Linedef) error {
	nv := len(tw.m.Vertices)
	ns := len(tw.m.Sidedefs)
	if err := tw.checkRef("linedef", idx, "vertex", l.V1, nv); err != nil {
		return err
	}
	if err := tw.checkRef("linedef", idx, "vertex", l.V2, nv); err != nil {
		return err
	}
	if err := tw.checkRef("linedef", idx, "sidedef", l.SideFront, ns); err != nil {
		return err
	}
	if l.SideBack != ID_INVALID {
		if err := tw.checkRef("linedef", idx, "sidedef", l.SideBack, ns); err != nil {
			return err
		}
	}
	tw.header("linedef", idx)
	tw.integer("v1", int(l.V1))
	tw.integer("v2", int(l.V2))
	tw.integer("sidefront", int(l.SideFront))
	if l.SideBack != ID_INVALID {
		tw.integer("sideback", int(l.SideBack))
	}
	if l.Tag != 0 {
		tw.integer("id", int(l.Tag))
	}
	tw.flag("twosided", l.TwoSided)
	tw.flag("blocking", l.Blocking)
	tw.flag("blockmonsters", l.BlockMonsters)
	tw.flag("dontpegtop", l.DontPegTop)
	tw.flag("dontpegbottom", l.DontPegBottom)
	tw.flag("secret", l.Secret)
	tw.flag("dontdraw", l.DontDraw)
	tw.flag("mapped", l.Mapped)
	a := &l.Action
	if a.Special != 0 {
		tw.integer("special", a.Special)
		for i, arg := range a.Args {
			if arg != 0 {
				tw.integer("arg"+strconv.Itoa(i), arg)
			}
		}
		tw.flag("repeatspecial", a.RepeatSpecial)
		tw.flag("playeruse", a.PlayerUse)
		tw.flag("playercross", a.PlayerCross)
		tw.flag("monstercross", a.MonsterCross)
		tw.flag("monsteruse", a.MonsterUse)
		tw.flag("impact", a.Impact)
		tw.flag("playerpush", a.PlayerPush)
		tw.flag("monsterpush", a.MonsterPush)
		tw.flag("missilecross", a.MissileCross)
	}
	tw.footer()
	return nil
}

func (tw *textmapWriter) writeSidedef(idx int, sd *Sidedef) error {
	if err := tw.checkRef("sidedef", idx, "sector", sd.Sector, len(tw.m.Sectors)); err != nil {
		return err
	}
	nt := len(tw.m.Textures)
	for _, tex := range [3]uint32{sd.TextureTop, sd.TextureBottom, sd.TextureMiddle} {
		if tex == TEX_NULL {
			continue
		}
		if err := tw.checkRef("sidedef", idx, "texture", tex, nt); err != nil {
			return err
		}
	}
	tw.header("sidedef", idx)
	tw.integer("sector", int(sd.Sector))
	if sd.TextureTop != TEX_NULL {
		tw.texture("texturetop", sd.TextureTop)
	}
	if sd.TextureBottom != TEX_NULL {
		tw.texture("texturebottom", sd.TextureBottom)
	}
	if sd.TextureMiddle != TEX_NULL {
		tw.texture("texturemiddle", sd.TextureMiddle)
	}
	if sd.OffsetX != 0 {
		tw.integer("offsetx", sd.OffsetX)
	}
	if sd.OffsetY != 0 {
		tw.integer("offsety", sd.OffsetY)
	}
	tw.footer()
	return nil
}

func (tw *textmapWriter) writeSector(idx int, s *Sector) error {
	nt := len(tw.m.Textures)
	if err := tw.checkRef("sector", idx, "texture", s.TextureFloor, nt); err != nil {
		return err
	}
	if err := tw.checkRef("sector", idx, "texture", s.TextureCeiling, nt); err != nil {
		return err
	}
	if !inRange(s.HeightFloor, MAP_COORD_MIN, MAP_COORD_MAX) ||
		!inRange(s.HeightCeiling, MAP_COORD_MIN, MAP_COORD_MAX) {
		return NewRoadError(ERR_RANGE, "sector #%d has floor %d and ceiling %d, heights out of range",
			idx, s.HeightFloor, s.HeightCeiling)
	}
	tw.header("sector", idx)
	tw.integer("heightfloor", s.HeightFloor)
	tw.integer("heightceiling", s.HeightCeiling)
	tw.texture("texturefloor", s.TextureFloor)
	tw.texture("textureceiling", s.TextureCeiling)
	if s.LightLevel != UDMF_DEFAULT_LIGHTLEVEL {
		tw.integer("lightlevel", int(s.LightLevel))
	}
	if s.Special != 0 {
		tw.integer("special", int(s.Special))
	}
	if s.Tag != 0 {
		tw.integer("id", int(s.Tag))
	}
	tw.plane("floorplane", &s.FloorPlane)
	tw.plane("ceilingplane", &s.CeilingPlane)
	tw.footer()
	return nil
}

func (tw *textmapWriter) plane(prefix string, p *PlaneEquation) {
	if math.Abs(p.A) < tw.eps && math.Abs(p.B) < tw.eps && math.Abs(p.C) < tw.eps {
		return
	}
	tw.float(prefix+"_a", p.A)
	tw.float(prefix+"_b", p.B)
	tw.float(prefix+"_c", p.C)
	tw.float(prefix+"_d", p.D)
}
