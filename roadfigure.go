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

// roadfigure.go
package main

import (
	"math"
)

// A figure is a piece of road drawn from one start point. Cross-section of a
// figure, from west to east (west is on the right hand when looking along the
// heading):
//
//	sky | background | fence | background | side | body (mark) body | side | background | fence | background | sky
//
// Every boundary between these strips is a rail: a vertex that moves along
// with the null vertex as the figure is extruded.

const BACKGROUND_THICKNESS = 16.0
const FENCE_BACKGROUND_GAP = 32.0
const FENCE_THICKNESS = 16.0
const MARK_HEIGHT = 1
const SMALLEST_ARC_LINE = 4.0
const SMALLEST_MARK_LINE = 4.0

// Figure start position is limited so that the first cross-section still
// fits the map
const FIGURE_START_LIMIT = 30000.0
const MAX_HEIGHT = 32767
const MAX_LINE_LENGTH = 32767.0
const MAX_ARC_RADIUS = 65535.0
const MAX_SLOPE_TANGENT = 0.5

// Rail vertices. Each group of four goes west-left, west-right, east-left,
// east-right
const (
	RV_BG_WEST_LEFT = iota
	RV_BG_WEST_RIGHT
	RV_BG_EAST_LEFT
	RV_BG_EAST_RIGHT
	RV_FENCE_WEST_LEFT
	RV_FENCE_WEST_RIGHT
	RV_FENCE_EAST_LEFT
	RV_FENCE_EAST_RIGHT
	RV_WEST_LEFT
	RV_WEST_RIGHT
	RV_EAST_LEFT
	RV_EAST_RIGHT
	RV_MARK_WEST
	RV_MARK_EAST
	RAIL_VERTEX_COUNT
)

// Strips, each has a sector template and the id of its last emitted sector
const (
	STRIP_SKY = iota
	STRIP_BG_EAST
	STRIP_BG_WEST
	STRIP_FENCE_EAST
	STRIP_FENCE_WEST
	STRIP_WEST_SIDE
	STRIP_EAST_SIDE
	STRIP_BODY
	STRIP_MARK
	STRIP_COUNT
)

type figurePhase int

const (
	PHASE_NOT_STARTED figurePhase = iota
	PHASE_DRAWING
	PHASE_FINISHED
)

type railVertex struct {
	pos FloatVertex
	id  uint32 // last emitted vertex, ID_INVALID if none yet
}

type stripState struct {
	tmpl Sector
	id   uint32 // last emitted sector, ID_INVALID if none yet
}

// Mark vertices emitted during the current step, and the distance along the
// step at which they are. Their zfloor is set when sectors get closed
type markVertexPair struct {
	dist       float64
	west, east uint32
}

type StartParams struct {
	X, Y      float64
	Angle     float64 // radians
	ZPos      int
	Height    int
	MarkShift int
}

type RoadFigure struct {
	cfg     *RoadConfig
	m       *Map
	checker *IntersectionChecker
	mlog    *MiniLogger

	null     FloatVertex
	nullPrev FloatVertex
	angle    float64
	tangent  float64
	floor    int
	ceil     int
	// position within the mark period, [0, RoadMarkLength) is a dash
	markCoord float64

	rails       [RAIL_VERTEX_COUNT]railVertex
	strips      [STRIP_COUNT]stripState
	markIdsPrev []markVertexPair

	sdRoadSide  Sidedef
	sdMarkSide  Sidedef
	sdFenceSide Sidedef

	phase                     figurePhase
	sectorsClosed             bool
	markClosed                bool
	haveShapes                bool
	haveShapeWithCurrentSlope bool
}

func NewRoadFigure(cfg *RoadConfig, start StartParams, m *Map,
	checker *IntersectionChecker, mlog *MiniLogger) *RoadFigure {
	f := &RoadFigure{
		cfg:                       cfg,
		m:                         m,
		checker:                   checker,
		mlog:                      mlog,
		null:                      FloatVertex{X: start.X, Y: start.Y},
		angle:                     NormalizeAngle(start.Angle),
		floor:                     start.ZPos,
		ceil:                      start.ZPos + start.Height,
		sectorsClosed:             true,
		markClosed:                true,
		haveShapeWithCurrentSlope: true,
	}
	f.nullPrev = f.null
	period := float64(cfg.Sizes.RoadMarkLength + cfg.Sizes.RoadMarkGap)
	f.markCoord = math.Mod(float64(start.MarkShift), period)
	if f.markCoord < 0 {
		f.markCoord += period
	}
	for i := range f.rails {
		f.rails[i].id = ID_INVALID
	}
	for i := range f.strips {
		f.strips[i].id = ID_INVALID
	}
	return f
}

// mapEmitter appends entities to the map and remembers the first failure, so
// building code only needs to check once per operation
type mapEmitter struct {
	m   *Map
	err error
}

func (f *RoadFigure) emitter() *mapEmitter {
	return &mapEmitter{m: f.m}
}

func (e *mapEmitter) vertex(v Vertex) uint32 {
	if e.err != nil {
		return ID_INVALID
	}
	var id uint32
	id, e.err = e.m.AddVertex(v)
	return id
}

func (e *mapEmitter) sector(s Sector) uint32 {
	if e.err != nil {
		return ID_INVALID
	}
	var id uint32
	id, e.err = e.m.AddSector(s)
	return id
}

func (e *mapEmitter) sidedef(sd Sidedef) uint32 {
	if e.err != nil {
		return ID_INVALID
	}
	var id uint32
	id, e.err = e.m.AddSidedef(sd)
	return id
}

func (e *mapEmitter) line(l Linedef) uint32 {
	if e.err != nil {
		return ID_INVALID
	}
	var id uint32
	id, e.err = e.m.AddLinedef(l)
	return id
}

// wall adds a two-sided linedef together with its sidedefs
func (e *mapEmitter) wall(v1, v2 uint32, front, back Sidedef) uint32 {
	back_ := e.sidedef(back)
	front_ := e.sidedef(front)
	return e.line(NewLinedef(v1, v2, front_, back_))
}

func (e *mapEmitter) wall1(v1, v2 uint32, front Sidedef) uint32 {
	return e.line(NewLinedef(v1, v2, e.sidedef(front), ID_INVALID))
}

func (f *RoadFigure) initMapElements() {
	light := f.cfg.LightLevel
	sz := &f.cfg.Sizes
	f.sdRoadSide = Sidedef{}.WithBottomTexture(TEX_ROADSIDEWALL)
	f.sdMarkSide = Sidedef{}.WithBottomTexture(TEX_ROADMARK)
	f.sdFenceSide = Sidedef{}.WithBottomTexture(TEX_FENCE)

	f.strips[STRIP_BODY].tmpl = NewSector(f.floor, f.ceil, TEX_ROADBODY, TEX_SKY, light)
	f.strips[STRIP_WEST_SIDE].tmpl = NewSector(f.floor+sz.RoadSideHeight, f.ceil,
		TEX_ROADSIDE, TEX_SKY, light)
	f.strips[STRIP_EAST_SIDE].tmpl = f.strips[STRIP_WEST_SIDE].tmpl
	f.strips[STRIP_MARK].tmpl = NewSector(f.floor+MARK_HEIGHT, f.ceil, TEX_ROADMARK,
		TEX_SKY, light)
	f.strips[STRIP_BG_EAST].tmpl = NewSector(f.floor, f.ceil, TEX_BACKGROUND,
		TEX_SKY, light)
	f.strips[STRIP_BG_WEST].tmpl = f.strips[STRIP_BG_EAST].tmpl
	// sky strip is closed: floor and ceiling at the same height
	f.strips[STRIP_SKY].tmpl = NewSector(f.floor, f.floor, TEX_BACKGROUND, TEX_SKY,
		light)
	f.strips[STRIP_FENCE_EAST].tmpl = NewSector(f.floor+sz.FenceHeight, f.ceil,
		TEX_FENCEFLOOR, TEX_SKY, light)
	f.strips[STRIP_FENCE_WEST].tmpl = f.strips[STRIP_FENCE_EAST].tmpl
}

func (f *RoadFigure) setRail(e *mapEmitter, idx int, pos FloatVertex) {
	f.rails[idx].pos = pos
	f.rails[idx].id = e.vertex(VertexAt(pos))
}

// advanceRails moves four rails starting at first to the new positions,
// emitting vertices. Returns ids of the previous and the new vertices
func (f *RoadFigure) advanceRails(e *mapEmitter, first int,
	nv [4]FloatVertex) (prev [4]uint32, cur [4]uint32) {
	for i := 0; i < 4; i++ {
		prev[i] = f.rails[first+i].id
		f.setRail(e, first+i, nv[i])
		cur[i] = f.rails[first+i].id
	}
	return
}

// railEmittedHere tells whether the rail vertex was emitted at the place the
// rail currently is
func (f *RoadFigure) railEmittedHere(idx int) bool {
	r := &f.rails[idx]
	if r.id == ID_INVALID || int(r.id) >= len(f.m.Vertices) {
		return false
	}
	return f.m.Vertices[r.id].Point().equalToWithEpsilon(r.pos)
}

func (f *RoadFigure) Drawing() bool {
	return f.phase == PHASE_DRAWING
}

// Start validates the start data and emits the first cross-section: west cap
// of background and fence, the road frame and, when the mark phase is inside
// a dash, the mark
func (f *RoadFigure) Start() error {
	if f.phase == PHASE_DRAWING {
		return NewRoadError(ERR_STATE, "already started generating this figure")
	}
	if f.phase == PHASE_FINISHED {
		return NewRoadError(ERR_STATE, "already finished generating this figure, cannot restart")
	}
	if !inRange(f.null.X, -FIGURE_START_LIMIT, FIGURE_START_LIMIT) ||
		!inRange(f.null.Y, -FIGURE_START_LIMIT, FIGURE_START_LIMIT) {
		return NewRoadError(ERR_RANGE, "bad figure start position, coordinates must be between -30000 and 30000 but got %s",
			f.null.toString())
	}
	if !inRange(f.floor, -MAX_HEIGHT, MAX_HEIGHT) {
		return NewRoadError(ERR_RANGE, "bad figure floor position, must be between -32767 and 32767 but got '%d'",
			f.floor)
	}
	if f.ceil < f.floor {
		return NewRoadError(ERR_RANGE, "bad figure height, must be non-negative but got '%d'",
			f.ceil-f.floor)
	}
	if f.ceil > MAX_HEIGHT {
		return NewRoadError(ERR_RANGE, "bad figure floor position and/or height, ceiling position is greater than 32767; floor position = %d, height = %d",
			f.floor, f.ceil-f.floor)
	}
	if f.ceil-f.floor > MAX_HEIGHT {
		return NewRoadError(ERR_RANGE, "bad figure height, must be less than or equal to 32767 but got '%d'",
			f.ceil-f.floor)
	}
	if f.floor >= f.ceil-f.cfg.Sizes.FenceHeight {
		return NewRoadError(ERR_RANGE, "bad figure floor position and/or height, fence is higher than the ceiling; floor position = %d, height = %d, fence height = %d",
			f.floor, f.ceil-f.floor, f.cfg.Sizes.FenceHeight)
	}

	f.initMapElements()
	sz := &f.cfg.Sizes
	big := float64(sz.BackgroundDist) + BACKGROUND_THICKNESS
	small := float64(sz.BackgroundDist)
	half := float64(sz.RoadWidth)/2.0 + float64(sz.RoadSideWidth)
	at := func(dx, dy float64) FloatVertex {
		return f.null.Moved(dx, dy).Rotated(f.null, f.angle)
	}
	e := f.emitter()

	// background
	f.setRail(e, RV_BG_WEST_LEFT, at(-big, -big-half))
	f.setRail(e, RV_BG_WEST_RIGHT, at(-small, -small-half))
	f.setRail(e, RV_BG_EAST_LEFT, at(-small, small+half))
	f.setRail(e, RV_BG_EAST_RIGHT, at(-big, big+half))
	sky := e.sector(f.strips[STRIP_SKY].tmpl)
	f.strips[STRIP_SKY].id = sky
	// both halves start as one sector, they split on the first seam
	bgBody := e.sector(f.strips[STRIP_BG_EAST].tmpl)
	f.strips[STRIP_BG_EAST].id = bgBody
	f.strips[STRIP_BG_WEST].id = bgBody
	e.wall1(f.rails[RV_BG_WEST_LEFT].id, f.rails[RV_BG_EAST_RIGHT].id, PlainSidedef(sky))
	e.wall(f.rails[RV_BG_WEST_RIGHT].id, f.rails[RV_BG_EAST_LEFT].id,
		PlainSidedef(bgBody), PlainSidedef(sky))
	if e.err != nil {
		return e.err
	}
	err := f.extendBackground([4]FloatVertex{
		at(0, -big-half), at(0, -small-half), at(0, small+half), at(0, big+half),
	})
	if err != nil {
		return err
	}

	// fence
	f.setRail(e, RV_FENCE_WEST_LEFT, at(-big+FENCE_BACKGROUND_GAP, -big-half+FENCE_BACKGROUND_GAP))
	f.setRail(e, RV_FENCE_WEST_RIGHT, at(-small+FENCE_BACKGROUND_GAP, -small-half+FENCE_BACKGROUND_GAP))
	f.setRail(e, RV_FENCE_EAST_LEFT, at(-small+FENCE_BACKGROUND_GAP, small+half-FENCE_BACKGROUND_GAP))
	f.setRail(e, RV_FENCE_EAST_RIGHT, at(-big+FENCE_BACKGROUND_GAP, big+half-FENCE_BACKGROUND_GAP))
	fence := e.sector(f.strips[STRIP_FENCE_WEST].tmpl)
	f.strips[STRIP_FENCE_WEST].id = fence
	f.strips[STRIP_FENCE_EAST].id = fence
	e.wall(f.rails[RV_FENCE_WEST_LEFT].id, f.rails[RV_FENCE_EAST_RIGHT].id,
		PlainSidedef(fence), f.sdFenceSide.WithSector(bgBody))
	e.wall(f.rails[RV_FENCE_EAST_LEFT].id, f.rails[RV_FENCE_WEST_RIGHT].id,
		PlainSidedef(fence), f.sdFenceSide.WithSector(bgBody))
	if e.err != nil {
		return e.err
	}
	err = f.extendFence([4]FloatVertex{
		at(0, -big-half+FENCE_BACKGROUND_GAP),
		at(0, -small-half+FENCE_BACKGROUND_GAP),
		at(0, small+half-FENCE_BACKGROUND_GAP),
		at(0, big+half-FENCE_BACKGROUND_GAP),
	})
	if err != nil {
		return err
	}

	// road frame
	roadHalf := float64(sz.RoadWidth) / 2.0
	f.setRail(e, RV_WEST_LEFT, at(0, -half))
	f.setRail(e, RV_WEST_RIGHT, at(0, -roadHalf))
	f.setRail(e, RV_EAST_LEFT, at(0, roadHalf))
	f.setRail(e, RV_EAST_RIGHT, at(0, half))
	f.strips[STRIP_WEST_SIDE].id = e.sector(f.strips[STRIP_WEST_SIDE].tmpl)
	f.strips[STRIP_EAST_SIDE].id = e.sector(f.strips[STRIP_EAST_SIDE].tmpl)
	e.wall(f.rails[RV_WEST_LEFT].id, f.rails[RV_WEST_RIGHT].id,
		PlainSidedef(f.strips[STRIP_WEST_SIDE].id), f.sdRoadSide.WithSector(bgBody))
	e.wall(f.rails[RV_EAST_LEFT].id, f.rails[RV_EAST_RIGHT].id,
		PlainSidedef(f.strips[STRIP_EAST_SIDE].id), f.sdRoadSide.WithSector(bgBody))
	body := e.sector(f.strips[STRIP_BODY].tmpl)
	f.strips[STRIP_BODY].id = body

	// mark
	markHalf := float64(sz.RoadMarkWidth) / 2.0
	f.rails[RV_MARK_WEST].pos = at(0, -markHalf)
	f.rails[RV_MARK_EAST].pos = at(0, markHalf)
	if f.markCoord < float64(sz.RoadMarkLength) {
		f.setRail(e, RV_MARK_EAST, f.rails[RV_MARK_EAST].pos)
		f.setRail(e, RV_MARK_WEST, f.rails[RV_MARK_WEST].pos)
		mark := e.sector(f.strips[STRIP_MARK].tmpl)
		f.strips[STRIP_MARK].id = mark
		e.wall(f.rails[RV_WEST_RIGHT].id, f.rails[RV_MARK_WEST].id,
			PlainSidedef(body), PlainSidedef(bgBody))
		e.wall(f.rails[RV_MARK_WEST].id, f.rails[RV_MARK_EAST].id,
			PlainSidedef(mark), f.sdMarkSide.WithSector(bgBody))
		e.wall(f.rails[RV_MARK_EAST].id, f.rails[RV_EAST_LEFT].id,
			PlainSidedef(body), PlainSidedef(bgBody))
		f.markClosed = false
	} else {
		e.wall(f.rails[RV_WEST_RIGHT].id, f.rails[RV_EAST_LEFT].id,
			PlainSidedef(body), PlainSidedef(bgBody))
	}
	if e.err != nil {
		return e.err
	}

	f.sectorsClosed = false
	f.phase = PHASE_DRAWING
	f.mlog.Verbose(2, "Started figure at %s, heading %.2f deg, floor %d, ceiling %d\n",
		f.null.toString(), RadiansToDegrees(f.angle), f.floor, f.ceil)
	return nil
}

// Finish closes the east end of every strip. Halves that were split for
// independent sloping get a midpoint vertex and a seam line between them
func (f *RoadFigure) Finish() error {
	if f.phase == PHASE_NOT_STARTED {
		return NewRoadError(ERR_STATE, "did not start generating this figure, cannot finish")
	}
	if f.phase == PHASE_FINISHED {
		return NewRoadError(ERR_STATE, "already finished generating this figure, cannot finish again")
	}
	if !IsZeroOrCloseTo(f.tangent) || !f.haveShapeWithCurrentSlope {
		return NewRoadError(ERR_STATE, "slope in the end of a figure is not allowed, make a horizontal line/arc after")
	}

	sin, cos := math.Sincos(f.angle)
	fwd := func(idx int, d float64) FloatVertex {
		return f.rails[idx].pos.Moved(d*cos, d*sin)
	}
	pos := func(idx int) FloatVertex {
		return f.rails[idx].pos
	}
	id := func(idx int) uint32 {
		return f.rails[idx].id
	}
	sz := &f.cfg.Sizes
	big := float64(sz.BackgroundDist) + BACKGROUND_THICKNESS
	small := float64(sz.BackgroundDist)

	// background
	err := f.extendBackground([4]FloatVertex{
		fwd(RV_BG_WEST_LEFT, big), fwd(RV_BG_WEST_RIGHT, small),
		fwd(RV_BG_EAST_LEFT, small), fwd(RV_BG_EAST_RIGHT, big),
	})
	if err != nil {
		return err
	}
	e := f.emitter()
	sky := f.strips[STRIP_SKY].id
	bgEast := f.strips[STRIP_BG_EAST].id
	bgWest := f.strips[STRIP_BG_WEST].id
	e.wall1(id(RV_BG_EAST_RIGHT), id(RV_BG_WEST_LEFT), PlainSidedef(sky))
	bgMid := e.vertex(VertexAt(Midpoint(pos(RV_BG_EAST_LEFT), pos(RV_BG_WEST_RIGHT))))
	e.wall(id(RV_BG_EAST_LEFT), bgMid, PlainSidedef(bgEast), PlainSidedef(sky))
	e.wall(bgMid, id(RV_BG_WEST_RIGHT), PlainSidedef(bgWest), PlainSidedef(sky))
	if e.err != nil {
		return e.err
	}

	// fence
	larger := small - FENCE_BACKGROUND_GAP + BACKGROUND_THICKNESS
	smaller := larger - FENCE_THICKNESS
	err = f.extendFence([4]FloatVertex{
		fwd(RV_FENCE_WEST_LEFT, larger), fwd(RV_FENCE_WEST_RIGHT, smaller),
		fwd(RV_FENCE_EAST_LEFT, smaller), fwd(RV_FENCE_EAST_RIGHT, larger),
	})
	if err != nil {
		return err
	}
	fenceEast := f.strips[STRIP_FENCE_EAST].id
	fenceWest := f.strips[STRIP_FENCE_WEST].id
	farMid := e.vertex(VertexAt(Midpoint(pos(RV_FENCE_WEST_LEFT), pos(RV_FENCE_EAST_RIGHT))))
	e.wall(id(RV_FENCE_EAST_RIGHT), farMid, PlainSidedef(fenceEast),
		f.sdFenceSide.WithSector(bgEast))
	e.wall(farMid, id(RV_FENCE_WEST_LEFT), PlainSidedef(fenceWest),
		f.sdFenceSide.WithSector(bgWest))
	nearMid := e.vertex(VertexAt(Midpoint(pos(RV_FENCE_WEST_RIGHT), pos(RV_FENCE_EAST_LEFT))))
	e.wall(nearMid, id(RV_FENCE_EAST_LEFT), PlainSidedef(fenceEast),
		f.sdFenceSide.WithSector(bgEast))
	e.wall(id(RV_FENCE_WEST_RIGHT), nearMid, PlainSidedef(fenceWest),
		f.sdFenceSide.WithSector(bgWest))

	// road frame
	body := f.strips[STRIP_BODY].id
	e.wall(id(RV_WEST_RIGHT), id(RV_WEST_LEFT), PlainSidedef(f.strips[STRIP_WEST_SIDE].id),
		f.sdRoadSide.WithSector(bgWest))
	e.wall(id(RV_EAST_RIGHT), id(RV_EAST_LEFT), PlainSidedef(f.strips[STRIP_EAST_SIDE].id),
		f.sdRoadSide.WithSector(bgEast))
	bodyMid := e.vertex(VertexAt(Midpoint(pos(RV_EAST_LEFT), pos(RV_WEST_RIGHT))))

	markLength := float64(sz.RoadMarkLength)
	haveMark := (!IsZeroOrCloseTo(f.markCoord) && f.markCoord < markLength) ||
		CloseTo(f.markCoord, markLength)
	if haveMark && !f.markClosed {
		mark := f.strips[STRIP_MARK].id
		e.wall(id(RV_EAST_LEFT), id(RV_MARK_EAST), PlainSidedef(body), PlainSidedef(bgEast))
		e.wall(id(RV_MARK_EAST), bodyMid, PlainSidedef(mark), f.sdMarkSide.WithSector(bgEast))
		e.wall(bodyMid, id(RV_MARK_WEST), PlainSidedef(mark), f.sdMarkSide.WithSector(bgWest))
		e.wall(id(RV_MARK_WEST), id(RV_WEST_RIGHT), PlainSidedef(body), PlainSidedef(bgWest))
		f.markClosed = true
	} else {
		e.wall(id(RV_EAST_LEFT), bodyMid, PlainSidedef(body), PlainSidedef(bgEast))
		e.wall(bodyMid, id(RV_WEST_RIGHT), PlainSidedef(body), PlainSidedef(bgWest))
	}

	// seams between east and west halves
	seam := [4]uint32{bgMid, farMid, nearMid, bodyMid}
	halves := [3][2]uint32{
		{bgEast, bgWest},
		{fenceEast, fenceWest},
		{bgEast, bgWest},
	}
	for i, h := range halves {
		e.wall(seam[i], seam[i+1], PlainSidedef(h[0]), PlainSidedef(h[1]))
	}
	if e.err != nil {
		return e.err
	}

	f.sectorsClosed = true
	f.phase = PHASE_FINISHED
	f.mlog.Verbose(2, "Finished figure at %s, floor %d\n", f.null.toString(), f.floor)
	return nil
}
