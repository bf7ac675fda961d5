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

// quadcheck.go
package main

// Every outer background face of every figure is submitted here as a convex
// quad. Quads of the same figure follow each other and share an edge with
// the previous one, which is why the most recent quad (the "neighbour") is
// never tested against the new one.

type QuadSegment struct {
	Line LineEquation
	// side of the line on which the two remaining quad vertices are
	OtherPointsPos PointLinePos
	LengthSquared  float64
}

type Quad struct {
	V   [4]FloatVertex
	Seg [4]QuadSegment
}

// A slot holds either a single quad, or a list of quads produced by one arc
// together with the quad encircling all of them. While the arc is still being
// drawn, the list is open and the encircling quad is not computed yet
type quadSlot struct {
	quad       Quad
	encircling bool
	closed     bool
	sub        []Quad
}

func (s *quadSlot) open() bool {
	return s.encircling && !s.closed
}

type quadRef struct {
	slot int
	sub  int // -1 when slot holds a single quad
}

var noQuadRef = quadRef{slot: -1, sub: -1}

type IntersectionChecker struct {
	slots     []quadSlot
	newFigure bool
}

func NewIntersectionChecker() *IntersectionChecker {
	return &IntersectionChecker{
		newFigure: true,
	}
}

// NewQuad computes edge equations of a quad and rejects quads that are
// degenerate, concave or self-intersecting
func NewQuad(p1, p2, p3, p4 FloatVertex) (Quad, error) {
	var q Quad
	q.V = [4]FloatVertex{p1, p2, p3, p4}
	for i := 0; i < 4; i++ {
		a := q.V[i]
		b := q.V[(i+1)%4]
		l := LineThrough(a, b)
		nextPos := l.PointPos(q.V[(i+2)%4])
		postNextPos := l.PointPos(q.V[(i+3)%4])
		if nextPos == POS_BELONGS_TO || postNextPos == POS_BELONGS_TO ||
			nextPos != postNextPos {
			return q, NewRoadError(ERR_GEOMETRY, "bad quad with vertices %s, %s, %s, %s",
				q.V[0].toString(), q.V[1].toString(), q.V[2].toString(),
				q.V[3].toString())
		}
		q.Seg[i] = QuadSegment{
			Line:           l,
			OtherPointsPos: nextPos,
			LengthSquared:  a.DistanceSquaredTo(b),
		}
	}
	return q, nil
}

// AddQuad accepts the quad if it is valid and doesn't overlap anything
// accepted before, except the neighbour
func (c *IntersectionChecker) AddQuad(p1, p2, p3, p4 FloatVertex) error {
	q, err := NewQuad(p1, p2, p3, p4)
	if err != nil {
		return err
	}
	neighbour := c.neighbour()
	for i := range c.slots {
		s := &c.slots[i]
		if !s.encircling {
			if neighbour.slot == i {
				continue
			}
			if QuadsHaveCommonPoints(&s.quad, &q) {
				return NewRoadError(ERR_INTERSECTION, "some figures have an intersection")
			}
			continue
		}
		if len(s.sub) == 0 || s.open() {
			// quads of the arc being drawn are adjacent to each other
			continue
		}
		if !QuadsHaveCommonPoints(&s.quad, &q) {
			continue
		}
		for j := range s.sub {
			if neighbour.slot == i && neighbour.sub == j {
				continue
			}
			if QuadsHaveCommonPoints(&s.sub[j], &q) {
				return NewRoadError(ERR_INTERSECTION, "some figures have an intersection")
			}
		}
	}

	if last := c.lastSlot(); last != nil && last.open() {
		last.sub = append(last.sub, q)
	} else {
		c.slots = append(c.slots, quadSlot{quad: q})
	}
	c.newFigure = false
	return nil
}

func (c *IntersectionChecker) lastSlot() *quadSlot {
	if len(c.slots) == 0 {
		return nil
	}
	return &c.slots[len(c.slots)-1]
}

func (c *IntersectionChecker) neighbour() quadRef {
	if c.newFigure || len(c.slots) == 0 {
		return noQuadRef
	}
	last := len(c.slots) - 1
	ref := lastQuadOfSlot(&c.slots[last], last)
	if ref == noQuadRef && last > 0 {
		// arc has just begun, no quads in it yet
		ref = lastQuadOfSlot(&c.slots[last-1], last-1)
	}
	return ref
}

func lastQuadOfSlot(s *quadSlot, idx int) quadRef {
	if !s.encircling {
		return quadRef{slot: idx, sub: -1}
	}
	if len(s.sub) > 0 {
		return quadRef{slot: idx, sub: len(s.sub) - 1}
	}
	return noQuadRef
}

// StartEncirclingQuad opens a list for quads of one arc. Any list left open
// is closed first
func (c *IntersectionChecker) StartEncirclingQuad() {
	c.EndEncirclingQuad()
	c.slots = append(c.slots, quadSlot{encircling: true})
}

// EndEncirclingQuad computes the axis-aligned box around all quads collected
// since StartEncirclingQuad. An empty list, or one whose box is degenerate, is
// dropped silently
func (c *IntersectionChecker) EndEncirclingQuad() {
	last := c.lastSlot()
	if last == nil || !last.open() {
		return
	}
	if len(last.sub) == 0 {
		c.slots = c.slots[:len(c.slots)-1]
		return
	}
	xmin := last.sub[0].V[0].X
	xmax := xmin
	ymin := last.sub[0].V[0].Y
	ymax := ymin
	for _, q := range last.sub {
		for _, v := range q.V {
			if v.X < xmin {
				xmin = v.X
			}
			if v.X > xmax {
				xmax = v.X
			}
			if v.Y < ymin {
				ymin = v.Y
			}
			if v.Y > ymax {
				ymax = v.Y
			}
		}
	}
	if IsZeroOrCloseTo(xmax-xmin) || IsZeroOrCloseTo(ymax-ymin) {
		c.slots = c.slots[:len(c.slots)-1]
		return
	}
	box, err := NewQuad(FloatVertex{xmin, ymin}, FloatVertex{xmin, ymax},
		FloatVertex{xmax, ymax}, FloatVertex{xmax, ymin})
	if err != nil {
		// can't happen for a box with non-zero sides
		c.slots = c.slots[:len(c.slots)-1]
		return
	}
	last.quad = box
	last.closed = true
}

// CutFigure tells that next quad starts a new figure and has no neighbour
func (c *IntersectionChecker) CutFigure() {
	c.newFigure = true
}

// QuadCount returns the number of accepted quads, sub-quads of arcs included
func (c *IntersectionChecker) QuadCount() int {
	n := 0
	for i := range c.slots {
		if c.slots[i].encircling {
			n += len(c.slots[i].sub)
		} else {
			n++
		}
	}
	return n
}

// QuadsHaveCommonPoints reports whether contours of two convex quads touch or
// cross, or one of quads is inside the other
func QuadsHaveCommonPoints(q1, q2 *Quad) bool {
	// both are only meaningful when contours don't intersect
	firstInsideSecond := true
	secondInsideFirst := true

	for ix1 := 0; ix1 < 4; ix1++ {
		seg1 := &q1.Seg[ix1]
		l1 := seg1.Line

		if firstInsideSecond {
			seg2 := &q2.Seg[ix1]
			if seg2.Line.PointPos(q1.V[0]) != seg2.OtherPointsPos {
				firstInsideSecond = false
			}
		}
		if secondInsideFirst {
			if l1.PointPos(q2.V[0]) != seg1.OtherPointsPos {
				secondInsideFirst = false
			}
		}

		p11 := q1.V[ix1]
		p12 := q1.V[(ix1+1)%4]
		for ix2 := 0; ix2 < 4; ix2++ {
			seg2 := &q2.Seg[ix2]
			l2 := seg2.Line
			p21 := q2.V[ix2]
			p22 := q2.V[(ix2+1)%4]

			div := l1.A*l2.B - l2.A*l1.B
			if IsZeroOrCloseTo(div) {
				if l2.PointPos(p11) != POS_BELONGS_TO {
					// parallel
					continue
				}
				// same line
				d11_21 := p11.DistanceSquaredTo(p21)
				d11_22 := p11.DistanceSquaredTo(p22)
				d12_21 := p12.DistanceSquaredTo(p21)
				d12_22 := p12.DistanceSquaredTo(p22)
				if IsZeroOrCloseTo(d11_21) || IsZeroOrCloseTo(d11_22) ||
					IsZeroOrCloseTo(d12_21) || IsZeroOrCloseTo(d12_22) {
					return true
				}
				if seg1.LengthSquared > seg2.LengthSquared {
					if d11_21 <= seg1.LengthSquared && d12_21 <= seg1.LengthSquared {
						return true
					}
					if d11_22 <= seg1.LengthSquared && d12_22 <= seg1.LengthSquared {
						return true
					}
				} else {
					if d11_21 <= seg2.LengthSquared && d11_22 <= seg2.LengthSquared {
						return true
					}
					if d12_21 <= seg2.LengthSquared && d12_22 <= seg2.LengthSquared {
						return true
					}
				}
				continue
			}

			isec := FloatVertex{
				X: -(l1.C*l2.B - l2.C*l1.B) / div,
				Y: (l2.A*l1.C - l1.A*l2.C) / div,
			}
			if p11.DistanceSquaredTo(isec) > seg1.LengthSquared ||
				p12.DistanceSquaredTo(isec) > seg1.LengthSquared ||
				p21.DistanceSquaredTo(isec) > seg2.LengthSquared ||
				p22.DistanceSquaredTo(isec) > seg2.LengthSquared {
				continue
			}
			return true
		}
	}

	return firstInsideSecond || secondInsideFirst
}
