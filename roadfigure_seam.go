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

// roadfigure_seam.go
package main

import (
	"math"
)

// extendMark walks the mark phase along the step. Dashes are drawn as mark
// sectors between the two mark rails, gaps leave road body in place. On a
// slope every piece of a dash gets its own sector, so that Plane_Align on
// the seam can tilt it
func (f *RoadFigure) extendMark(newWest, newEast FloatVertex) error {
	mw := &f.rails[RV_MARK_WEST]
	me := &f.rails[RV_MARK_EAST]
	westDir := FloatVertex{X: newWest.X - mw.pos.X, Y: newWest.Y - mw.pos.Y}
	eastDir := FloatVertex{X: newEast.X - me.pos.X, Y: newEast.Y - me.pos.Y}
	lengthMiddle := (me.pos.DistanceTo(newEast) + mw.pos.DistanceTo(newWest)) / 2.0
	if lengthMiddle < SMALLEST_MARK_LINE {
		return NewRoadError(ERR_GEOMETRY, "too small mark to draw")
	}
	length := lengthMiddle
	markLength := float64(f.cfg.Sizes.RoadMarkLength)
	period := markLength + float64(f.cfg.Sizes.RoadMarkGap)
	haveSlope := !IsZeroOrCloseTo(f.tangent)
	// dash start already emitted by closing the sectors at this place
	firstAdded := IsZeroOrCloseTo(f.markCoord) &&
		f.railEmittedHere(RV_MARK_WEST) && f.railEmittedHere(RV_MARK_EAST)
	moveBy := func(part float64) {
		k := part / lengthMiddle
		mw.pos = mw.pos.Moved(k*westDir.X, k*westDir.Y)
		me.pos = me.pos.Moved(k*eastDir.X, k*eastDir.Y)
	}

	e := f.emitter()
	body := f.strips[STRIP_BODY].id
	for length >= 1.0 && e.err == nil {
		if IsZeroOrCloseTo(f.markCoord) && !firstAdded {
			mw.id = e.vertex(VertexAt(mw.pos))
			me.id = e.vertex(VertexAt(me.pos))
			f.strips[STRIP_MARK].id = e.sector(f.strips[STRIP_MARK].tmpl)
			e.wall(mw.id, me.id, PlainSidedef(f.strips[STRIP_MARK].id),
				f.sdMarkSide.WithSector(body))
			f.markIdsPrev = append(f.markIdsPrev, markVertexPair{
				dist: lengthMiddle - length,
				west: mw.id,
				east: me.id,
			})
			f.mlog.Verbose(4, "Dash starts at %s\n", mw.pos.toString())
		}
		firstAdded = false

		if f.markCoord < markLength && !CloseTo(f.markCoord, markLength) {
			ml := math.Min(markLength-f.markCoord, length)
			prevWest, prevEast := mw.id, me.id
			moveBy(ml)
			mw.id = e.vertex(VertexAt(mw.pos))
			me.id = e.vertex(VertexAt(me.pos))
			idMark := f.strips[STRIP_MARK].id
			if haveSlope {
				f.strips[STRIP_MARK].id = e.sector(f.strips[STRIP_MARK].tmpl)
			}
			idNew := f.strips[STRIP_MARK].id
			e.wall(mw.id, prevWest, PlainSidedef(idNew), f.sdMarkSide.WithSector(body))
			e.wall(prevEast, me.id, PlainSidedef(idMark), f.sdMarkSide.WithSector(body))
			if haveSlope {
				// diagonal splits the piece into triangles, each gets a plane
				diag := NewLinedef(me.id, prevWest, e.sidedef(PlainSidedef(idMark)),
					e.sidedef(PlainSidedef(idNew)))
				diag.DontDraw = true
				e.line(diag)
			}
			f.markIdsPrev = append(f.markIdsPrev, markVertexPair{
				dist: lengthMiddle - (length - ml),
				west: mw.id,
				east: me.id,
			})
			f.markCoord += ml
			length -= ml
			f.markClosed = false
			continue
		}

		if CloseTo(f.markCoord, markLength) && !f.markClosed {
			if mw.id != ID_INVALID && me.id != ID_INVALID {
				e.wall(me.id, mw.id, PlainSidedef(f.strips[STRIP_MARK].id),
					f.sdMarkSide.WithSector(body))
			}
			f.markClosed = true
			f.mlog.Verbose(4, "Dash ends at %s\n", mw.pos.toString())
		}
		diff := period - f.markCoord
		space := math.Min(diff, length)
		moveBy(space)
		if IsZeroOrCloseTo(space - diff) {
			f.markCoord = 0
		} else {
			f.markCoord += space
		}
		length -= space
	}
	return e.err
}

// closeSectors ends every strip at the current rail positions with a seam of
// invisible lines, and starts new sectors for the strips beyond it. When a
// slope is active, heights of the sectors just ended are raised (or lowered)
// according to the length of the step
func (f *RoadFigure) closeSectors() error {
	if f.sectorsClosed {
		return nil
	}
	markLength := float64(f.cfg.Sizes.RoadMarkLength)
	haveSlope := !IsZeroOrCloseTo(f.tangent)
	atMarkStart := IsZeroOrCloseTo(f.markCoord)
	atMarkEnd := CloseTo(f.markCoord, markLength)
	haveMark := f.markCoord < markLength || atMarkStart || atMarkEnd
	floorPrev := f.floor

	if haveSlope {
		dist := f.null.DistanceTo(f.nullPrev)
		hd := int(f.tangent * dist)
		if f.floor+hd >= f.ceil-f.cfg.Sizes.FenceHeight {
			return NewRoadError(ERR_GEOMETRY, "slope goes up after the ceiling, change slope tangent and/or figure height")
		}
		if f.floor+hd < -MAX_HEIGHT {
			return NewRoadError(ERR_RANGE, "slope goes down below %d, change slope tangent and/or figure floor position; floor would be %d",
				-MAX_HEIGHT, f.floor+hd)
		}
		hadMark := !haveMark && (f.markCoord-dist) < markLength
		touchPrevMark := (haveMark && !atMarkStart) || hadMark
		f.strips = f.slopedStrips(f.strips, hd, touchPrevMark)
		f.floor += hd
	}

	e := f.emitter()
	mw := &f.rails[RV_MARK_WEST]
	me := &f.rails[RV_MARK_EAST]
	if atMarkStart {
		mw.id = e.vertex(VertexAt(mw.pos).WithZFloor(float64(f.floor)))
		me.id = e.vertex(VertexAt(me.pos).WithZFloor(float64(f.floor)))
	}
	if !haveSlope && haveMark && !atMarkStart &&
		f.railEmittedHere(RV_MARK_WEST) && f.railEmittedHere(RV_MARK_EAST) {
		f.markIdsPrev = append(f.markIdsPrev, markVertexPair{
			west: mw.id,
			east: me.id,
		})
	}
	if e.err != nil {
		return e.err
	}
	for _, p := range f.markIdsPrev {
		onSeam := haveMark && (mw.id == p.west || mw.id == p.east)
		z := float64(floorPrev+MARK_HEIGHT) + f.tangent*p.dist
		if onSeam {
			// seam vertices must agree with the integer heights of sectors
			// sharing them, those got a truncated height difference
			z = math.Trunc(z)
		}
		f.m.Vertices[p.west] = f.m.Vertices[p.west].WithZFloor(z)
		f.m.Vertices[p.east] = f.m.Vertices[p.east].WithZFloor(z)
	}

	verts := []int{
		RV_BG_WEST_LEFT, RV_BG_WEST_RIGHT, RV_FENCE_WEST_LEFT, RV_FENCE_WEST_RIGHT,
		RV_WEST_LEFT, RV_WEST_RIGHT,
	}
	strips := []int{
		STRIP_SKY, STRIP_BG_WEST, STRIP_FENCE_WEST, STRIP_BG_WEST, STRIP_WEST_SIDE,
		STRIP_BODY,
	}
	if haveMark {
		verts = append(verts, RV_MARK_WEST, RV_MARK_EAST)
		strips = append(strips, STRIP_MARK, STRIP_BODY)
	}
	verts = append(verts, RV_EAST_LEFT, RV_EAST_RIGHT, RV_FENCE_EAST_LEFT,
		RV_FENCE_EAST_RIGHT, RV_BG_EAST_LEFT, RV_BG_EAST_RIGHT)
	strips = append(strips, STRIP_EAST_SIDE, STRIP_BG_EAST, STRIP_FENCE_EAST,
		STRIP_BG_EAST, STRIP_SKY)

	var prevIds [STRIP_COUNT]uint32
	var renewed [STRIP_COUNT]bool
	for i := range prevIds {
		prevIds[i] = ID_INVALID
	}
	for _, s := range strips {
		if renewed[s] {
			continue
		}
		renewed[s] = true
		if !(atMarkStart && s == STRIP_MARK) {
			prevIds[s] = f.strips[s].id
		}
		if !(atMarkEnd && s == STRIP_MARK) {
			f.strips[s].id = e.sector(f.strips[s].tmpl)
		}
	}

	for i, s := range strips {
		var front, back Sidedef
		if atMarkEnd && s == STRIP_MARK {
			front = f.sdRoadSide.WithSector(f.strips[STRIP_BODY].id)
		} else {
			front = PlainSidedef(f.strips[s].id)
		}
		if atMarkStart && s == STRIP_MARK {
			back = f.sdRoadSide.WithSector(prevIds[STRIP_BODY])
		} else {
			back = PlainSidedef(prevIds[s])
		}
		l := NewLinedef(f.rails[verts[i]].id, f.rails[verts[i+1]].id,
			e.sidedef(front), e.sidedef(back))
		l.DontDraw = true
		switch verts[i] {
		case RV_MARK_WEST:
			f.markClosed = true
		case RV_BG_WEST_LEFT, RV_BG_EAST_LEFT:
			// sky strips stay flat
		default:
			l.Action.Special = SPECIAL_PLANE_ALIGN
			l.Action.Args[0] = 1
		}
		e.line(l)
	}
	if e.err != nil {
		return e.err
	}
	f.sectorsClosed = true
	f.mlog.Verbose(4, "Closed sectors at %s, floor %d\n", f.null.toString(), f.floor)
	return nil
}

// slopedStrips moves strip templates by the height difference of one slope
// step and applies the new heights to the sectors last emitted for them, so
// that the step ends at the new height. Templates of halves not split yet are
// left alone
func (f *RoadFigure) slopedStrips(strips [STRIP_COUNT]stripState, hd int,
	touchPrevMark bool) [STRIP_COUNT]stripState {
	for i := range strips {
		s := &strips[i]
		if i == STRIP_BG_WEST && s.id == strips[STRIP_BG_EAST].id {
			continue
		}
		if i == STRIP_FENCE_WEST && s.id == strips[STRIP_FENCE_EAST].id {
			continue
		}
		s.tmpl.HeightFloor += hd
		if i == STRIP_SKY {
			s.tmpl.HeightCeiling += hd
		}
		modifyPrev := true
		if i == STRIP_SKY && f.tangent > 0 {
			// keep the sky sector closed while going up
			modifyPrev = false
		} else if i == STRIP_MARK && !touchPrevMark {
			modifyPrev = false
		}
		if !modifyPrev || s.id == ID_INVALID {
			continue
		}
		prev := &f.m.Sectors[s.id]
		prev.HeightFloor = s.tmpl.HeightFloor
		if i == STRIP_SKY {
			prev.HeightCeiling = s.tmpl.HeightCeiling
		}
	}
	return strips
}
