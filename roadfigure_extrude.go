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

// roadfigure_extrude.go
package main

import (
	"math"
)

// Line extrudes the figure straight ahead
func (f *RoadFigure) Line(length float64) error {
	if f.phase != PHASE_DRAWING {
		return NewRoadError(ERR_STATE, "did not start drawing or already finished drawing before drawing a line")
	}
	if !inRange(length, 1.0, MAX_LINE_LENGTH) {
		return NewRoadError(ERR_RANGE, "bad line length '%f', must be between 1 and 32767",
			length)
	}
	sin, cos := math.Sincos(f.angle)
	dx := length * cos
	dy := length * sin
	var moved [RAIL_VERTEX_COUNT]FloatVertex
	for i := range f.rails {
		moved[i] = f.rails[i].pos.Moved(dx, dy)
	}
	if err := f.advance(moved, f.null.Moved(dx, dy)); err != nil {
		return err
	}
	f.haveShapes = true
	f.haveShapeWithCurrentSlope = true
	f.mlog.Verbose(3, "Line of length %.3f, now at %s\n", length, f.null.toString())
	return nil
}

// Arc extrudes the figure along a circle arc, approximated by divider
// straight segments. Positive angle turns left (counterclockwise)
func (f *RoadFigure) Arc(radius, angle float64, divider int) error {
	if f.phase != PHASE_DRAWING {
		return NewRoadError(ERR_STATE, "did not start drawing or already finished drawing before drawing an arc")
	}
	minRadius := f.cfg.TotalWidth()/2.0 + 1.0
	if radius < minRadius {
		return NewRoadError(ERR_GEOMETRY, "too small arc radius value '%f', must be at least %f",
			radius, minRadius)
	}
	if radius > MAX_ARC_RADIUS {
		return NewRoadError(ERR_GEOMETRY, "too big arc radius value '%f', must be 65535 or less",
			radius)
	}
	if divider < 2 {
		return NewRoadError(ERR_GEOMETRY, "bad arc divider value '%d', must be 2 or greater",
			divider)
	}
	sign := -1.0
	if angle > 0 {
		sign = 1.0
	}
	absAngle := sign * angle
	if absAngle > 2*math.Pi || IsZeroOrCloseTo(angle) {
		return NewRoadError(ERR_GEOMETRY, "bad arc angle value '%f' degrees, must not be zero and not exceed 360 by absolute value",
			RadiansToDegrees(angle))
	}

	sin, cos := math.Sincos(f.angle)
	center := FloatVertex{
		X: f.null.X - sign*radius*sin,
		Y: f.null.Y + sign*radius*cos,
	}
	step := absAngle / float64(divider)
	if IsZeroOrCloseTo(step) {
		return NewRoadError(ERR_GEOMETRY, "too big arc divider value '%d'", divider)
	}
	// innermost rail has the shortest chords
	inner := f.rails[RV_BG_WEST_LEFT].pos
	if sign > 0 {
		inner = f.rails[RV_BG_EAST_RIGHT].pos
	}
	if inner.Rotated(center, sign*step).DistanceTo(inner) < SMALLEST_ARC_LINE {
		return NewRoadError(ERR_GEOMETRY, "too small arc step, make divider smaller or radius bigger")
	}

	if f.checker != nil {
		f.checker.StartEncirclingQuad()
	}
	for i := 0; i < divider; i++ {
		da := step
		if i == divider-1 {
			da = absAngle - float64(divider-1)*step
		}
		curAngle := NormalizeAngle(f.angle + sign*da)
		newNull := f.null.Rotated(center, sign*da)
		moved := f.movedRails(newNull, curAngle)
		if err := f.advance(moved, newNull); err != nil {
			return err
		}
		f.angle = curAngle
	}
	if f.checker != nil {
		f.checker.EndEncirclingQuad()
	}
	f.haveShapes = true
	f.haveShapeWithCurrentSlope = true
	f.mlog.Verbose(3, "Arc of radius %.3f and angle %.2f deg in %d steps, now at %s heading %.2f deg\n",
		radius, RadiansToDegrees(angle), divider, f.null.toString(),
		RadiansToDegrees(f.angle))
	return nil
}

// Slope sets the tangent for the following lines and arcs. Zero makes them
// flat again
func (f *RoadFigure) Slope(tangent float64) error {
	if f.phase != PHASE_DRAWING {
		return NewRoadError(ERR_STATE, "did not start drawing or already finished drawing before adding a slope")
	}
	if !f.haveShapes {
		return NewRoadError(ERR_STATE, "slope in the beginning of a figure is not allowed, add a line/arc first")
	}
	if !inRange(tangent, -MAX_SLOPE_TANGENT, MAX_SLOPE_TANGENT) {
		return NewRoadError(ERR_GEOMETRY, "bad slope tangent '%f', absolute value must be 0.5 or less",
			tangent)
	}
	if IsZeroOrCloseTo(f.tangent) {
		// flat part ends here
		if err := f.closeSectors(); err != nil {
			return err
		}
	}
	f.tangent = tangent
	f.haveShapeWithCurrentSlope = false
	f.mlog.Verbose(3, "Slope %.3f at %s\n", tangent, f.null.toString())
	return nil
}

// advance extrudes all the strips to the moved rails, and makes newNull the
// current null vertex
func (f *RoadFigure) advance(moved [RAIL_VERTEX_COUNT]FloatVertex, newNull FloatVertex) error {
	err := f.extendBackground([4]FloatVertex(moved[RV_BG_WEST_LEFT : RV_BG_WEST_LEFT+4]))
	if err != nil {
		return err
	}
	err = f.extendFence([4]FloatVertex(moved[RV_FENCE_WEST_LEFT : RV_FENCE_WEST_LEFT+4]))
	if err != nil {
		return err
	}
	err = f.extendBody([4]FloatVertex(moved[RV_WEST_LEFT : RV_WEST_LEFT+4]))
	if err != nil {
		return err
	}
	err = f.extendMark(moved[RV_MARK_WEST], moved[RV_MARK_EAST])
	if err != nil {
		return err
	}
	f.nullPrev = f.null
	f.null = newNull
	f.sectorsClosed = false
	if !IsZeroOrCloseTo(f.tangent) {
		// every step of a slope gets own sectors
		if err := f.closeSectors(); err != nil {
			return err
		}
	}
	f.markIdsPrev = f.markIdsPrev[:0]
	return nil
}

// movedRails places every rail at the same distance from newNull as it has
// from the current null vertex, on the line through newNull perpendicular to
// the heading
func (f *RoadFigure) movedRails(newNull FloatVertex, heading float64) [RAIL_VERTEX_COUNT]FloatVertex {
	var res [RAIL_VERTEX_COUNT]FloatVertex
	sin, cos := math.Sincos(heading)
	perp := FloatVertex{X: -sin, Y: cos}
	ref := f.rails[RV_BG_WEST_LEFT].pos
	refDir := FloatVertex{X: ref.X - f.null.X, Y: ref.Y - f.null.Y}
	dir := perp
	if refDir.X*perp.X+refDir.Y*perp.Y <= 0 {
		dir = FloatVertex{X: -perp.X, Y: -perp.Y}
	}
	for i := range f.rails {
		v := f.rails[i].pos
		dist := v.DistanceTo(f.null)
		rel := FloatVertex{X: v.X - f.null.X, Y: v.Y - f.null.Y}
		sameSide := false
		if !IsZeroOrCloseTo(rel.X) && !IsZeroOrCloseTo(refDir.X) {
			sameSide = (rel.X > 0) == (refDir.X > 0)
		} else if !IsZeroOrCloseTo(rel.Y) && !IsZeroOrCloseTo(refDir.Y) {
			sameSide = (rel.Y > 0) == (refDir.Y > 0)
		}
		k := dist
		if !sameSide {
			k = -dist
		}
		res[i] = newNull.Moved(k*dir.X, k*dir.Y)
	}
	return res
}

// extendBackground also submits the outer quad of the step to intersection
// checking, before anything gets emitted
func (f *RoadFigure) extendBackground(nv [4]FloatVertex) error {
	if f.checker != nil {
		err := f.checker.AddQuad(f.rails[RV_BG_WEST_LEFT].pos, nv[0], nv[3],
			f.rails[RV_BG_EAST_RIGHT].pos)
		if err != nil {
			return err
		}
	}
	e := f.emitter()
	prev, cur := f.advanceRails(e, RV_BG_WEST_LEFT, nv)
	sky := f.strips[STRIP_SKY].id
	e.wall1(cur[0], prev[0], PlainSidedef(sky))
	e.wall1(prev[3], cur[3], PlainSidedef(sky))
	e.wall(cur[1], prev[1], PlainSidedef(f.strips[STRIP_BG_WEST].id), PlainSidedef(sky))
	e.wall(prev[2], cur[2], PlainSidedef(f.strips[STRIP_BG_EAST].id), PlainSidedef(sky))
	return e.err
}

func (f *RoadFigure) extendFence(nv [4]FloatVertex) error {
	e := f.emitter()
	prev, cur := f.advanceRails(e, RV_FENCE_WEST_LEFT, nv)
	fenceWest := PlainSidedef(f.strips[STRIP_FENCE_WEST].id)
	fenceEast := PlainSidedef(f.strips[STRIP_FENCE_EAST].id)
	outerWest := f.sdFenceSide.WithSector(f.strips[STRIP_BG_WEST].id)
	outerEast := f.sdFenceSide.WithSector(f.strips[STRIP_BG_EAST].id)
	e.wall(cur[0], prev[0], fenceWest, outerWest)
	e.wall(prev[1], cur[1], fenceWest, outerWest)
	e.wall(cur[2], prev[2], fenceEast, outerEast)
	e.wall(prev[3], cur[3], fenceEast, outerEast)
	return e.err
}

func (f *RoadFigure) extendBody(nv [4]FloatVertex) error {
	e := f.emitter()
	prev, cur := f.advanceRails(e, RV_WEST_LEFT, nv)
	westSide := PlainSidedef(f.strips[STRIP_WEST_SIDE].id)
	eastSide := PlainSidedef(f.strips[STRIP_EAST_SIDE].id)
	body := f.sdRoadSide.WithSector(f.strips[STRIP_BODY].id)
	e.wall(cur[0], prev[0], westSide, f.sdRoadSide.WithSector(f.strips[STRIP_BG_WEST].id))
	e.wall(cur[1], prev[1], body, westSide)
	e.wall(prev[2], cur[2], body, eastSide)
	e.wall(prev[3], cur[3], eastSide, f.sdRoadSide.WithSector(f.strips[STRIP_BG_EAST].id))
	return e.err
}
