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

// quadcheck_test.go
package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(x1, y1, x2, y2 float64) [4]FloatVertex {
	return [4]FloatVertex{{x1, y1}, {x1, y2}, {x2, y2}, {x2, y1}}
}

func mustQuad(t *testing.T, v [4]FloatVertex) Quad {
	q, err := NewQuad(v[0], v[1], v[2], v[3])
	require.NoError(t, err)
	return q
}

func rotatedQuad(t *testing.T, v [4]FloatVertex, angle float64) Quad {
	pivot := FloatVertex{X: 3, Y: -7}
	for i := range v {
		v[i] = v[i].Rotated(pivot, angle)
	}
	return mustQuad(t, v)
}

func TestNewQuadRejectsBadShapes(t *testing.T) {
	_, err := NewQuad(FloatVertex{0, 0}, FloatVertex{0, 10}, FloatVertex{10, 10},
		FloatVertex{10, 0})
	assert.NoError(t, err)

	// three collinear vertices
	_, err = NewQuad(FloatVertex{0, 0}, FloatVertex{5, 0}, FloatVertex{10, 0},
		FloatVertex{5, 5})
	assert.True(t, IsKind(err, ERR_GEOMETRY), "got %v", err)

	// bow tie
	_, err = NewQuad(FloatVertex{0, 0}, FloatVertex{10, 10}, FloatVertex{0, 10},
		FloatVertex{10, 0})
	assert.True(t, IsKind(err, ERR_GEOMETRY), "got %v", err)

	// concave
	_, err = NewQuad(FloatVertex{0, 0}, FloatVertex{4, 2}, FloatVertex{10, 0},
		FloatVertex{4, 10})
	assert.True(t, IsKind(err, ERR_GEOMETRY), "got %v", err)
}

var quadPairCases = []struct {
	name string
	a, b [4]FloatVertex
	want bool
}{
	{"disjoint", rect(0, 0, 10, 10), rect(20, 0, 30, 10), false},
	{"crossing", rect(0, 0, 10, 10), rect(5, 5, 15, 15), true},
	{"second inside first", rect(0, 0, 10, 10), rect(2, 2, 8, 8), true},
	{"first inside second", rect(2, 2, 8, 8), rect(0, 0, 10, 10), true},
	{"shared edge", rect(0, 0, 10, 10), rect(10, 0, 20, 10), true},
	{"edge overlap on same line", rect(0, 0, 10, 10), rect(10, 3, 20, 7), true},
	{"corner touch", rect(0, 0, 10, 10), rect(10, 10, 20, 20), true},
	{"parallel apart", rect(0, 0, 10, 10), rect(0, 11, 10, 20), false},
	{"cross shape", rect(0, 4, 20, 6), rect(9, -5, 11, 15), true},
}

// reordered lists the same quad starting from another vertex, optionally
// walking it the other way round
func reordered(v [4]FloatVertex, shift int, reverse bool) [4]FloatVertex {
	var res [4]FloatVertex
	for i := range res {
		j := (i + shift) % 4
		if reverse {
			j = (4 + shift - i) % 4
		}
		res[i] = v[j]
	}
	return res
}

func TestQuadsHaveCommonPoints(t *testing.T) {
	for _, c := range quadPairCases {
		t.Run(c.name, func(t *testing.T) {
			qa := mustQuad(t, c.a)
			qb := mustQuad(t, c.b)
			assert.Equal(t, c.want, QuadsHaveCommonPoints(&qa, &qb))
			assert.Equal(t, c.want, QuadsHaveCommonPoints(&qb, &qa))
			// answer doesn't depend on orientation of the plane
			for _, angle := range []float64{math.Pi / 7, math.Pi / 2, 2.0, -1.0} {
				ra := rotatedQuad(t, c.a, angle)
				rb := rotatedQuad(t, c.b, angle)
				assert.Equal(t, c.want, QuadsHaveCommonPoints(&ra, &rb), "angle %f", angle)
			}
		})
	}
}

func TestQuadsHaveCommonPointsVertexOrder(t *testing.T) {
	for _, c := range quadPairCases {
		t.Run(c.name, func(t *testing.T) {
			for shift := 0; shift < 4; shift++ {
				for _, reverse := range []bool{false, true} {
					qa := mustQuad(t, reordered(c.a, shift, reverse))
					qb := mustQuad(t, reordered(c.b, (shift+1)%4, !reverse))
					assert.Equal(t, c.want, QuadsHaveCommonPoints(&qa, &qb),
						"shift %d, reverse %v", shift, reverse)
					assert.Equal(t, c.want, QuadsHaveCommonPoints(&qb, &qa),
						"shift %d, reverse %v", shift, reverse)
				}
			}
		})
	}
}

func TestAddQuadVertexOrder(t *testing.T) {
	for _, c := range quadPairCases {
		t.Run(c.name, func(t *testing.T) {
			for shift := 0; shift < 4; shift++ {
				for _, reverse := range []bool{false, true} {
					checker := NewIntersectionChecker()
					require.NoError(t, checker.AddQuad(c.a[0], c.a[1], c.a[2], c.a[3]))
					checker.CutFigure()
					v := reordered(c.b, shift, reverse)
					err := checker.AddQuad(v[0], v[1], v[2], v[3])
					if c.want {
						assert.True(t, IsKind(err, ERR_INTERSECTION),
							"shift %d, reverse %v: got %v", shift, reverse, err)
					} else {
						assert.NoError(t, err, "shift %d, reverse %v", shift, reverse)
					}
				}
			}
		})
	}

	badShapes := map[string][4]FloatVertex{
		"collinear": {{0, 0}, {5, 0}, {10, 0}, {5, 5}},
		"bow tie":   {{0, 0}, {10, 10}, {0, 10}, {10, 0}},
		"concave":   {{0, 0}, {4, 2}, {10, 0}, {4, 10}},
	}
	for name, shape := range badShapes {
		for shift := 0; shift < 4; shift++ {
			for _, reverse := range []bool{false, true} {
				v := reordered(shape, shift, reverse)
				err := NewIntersectionChecker().AddQuad(v[0], v[1], v[2], v[3])
				assert.True(t, IsKind(err, ERR_GEOMETRY), "%s, shift %d, reverse %v: got %v",
					name, shift, reverse, err)
			}
		}
	}
}

func addRect(c *IntersectionChecker, x1, y1, x2, y2 float64) error {
	v := rect(x1, y1, x2, y2)
	return c.AddQuad(v[0], v[1], v[2], v[3])
}

func TestCheckerSkipsNeighbour(t *testing.T) {
	c := NewIntersectionChecker()
	require.NoError(t, addRect(c, 0, 0, 10, 10))
	// shares an edge with the previous quad only
	require.NoError(t, addRect(c, 10, 0, 20, 10))
	require.NoError(t, addRect(c, 20, 0, 30, 10))
	// touches the first quad, which is not the neighbour anymore
	err := addRect(c, -10, 0, 0, 10)
	assert.True(t, IsKind(err, ERR_INTERSECTION), "got %v", err)
	assert.Equal(t, 3, c.QuadCount())
}

func TestCheckerCutFigure(t *testing.T) {
	c := NewIntersectionChecker()
	require.NoError(t, addRect(c, 0, 0, 10, 10))
	c.CutFigure()
	// new figure has no neighbour, so touching the last quad is an error
	err := addRect(c, 10, 0, 20, 10)
	assert.True(t, IsKind(err, ERR_INTERSECTION), "got %v", err)
	require.NoError(t, addRect(c, 100, 0, 110, 10))
	require.NoError(t, addRect(c, 110, 0, 120, 10))
	assert.Equal(t, 3, c.QuadCount())
}

func TestCheckerEncirclingQuad(t *testing.T) {
	c := NewIntersectionChecker()
	require.NoError(t, addRect(c, 0, 0, 10, 10))
	c.StartEncirclingQuad()
	require.NoError(t, addRect(c, 10, 0, 20, 10))
	require.NoError(t, addRect(c, 20, 0, 30, 10))
	require.NoError(t, addRect(c, 30, 0, 40, 10))
	c.EndEncirclingQuad()
	assert.Equal(t, 4, c.QuadCount())

	require.NoError(t, addRect(c, 40, 0, 50, 10))
	// far away from everything, box included
	require.NoError(t, addRect(c, 50, 0, 60, 10))
	// inside the box, crossing a quad of the list
	err := addRect(c, 15, 2, 25, 8)
	assert.True(t, IsKind(err, ERR_INTERSECTION), "got %v", err)
}

func TestCheckerEmptyEncirclingQuad(t *testing.T) {
	c := NewIntersectionChecker()
	require.NoError(t, addRect(c, 0, 0, 10, 10))
	c.StartEncirclingQuad()
	c.EndEncirclingQuad()
	assert.Equal(t, 1, c.QuadCount())
	// neighbour is still the quad before the empty list
	require.NoError(t, addRect(c, 10, 0, 20, 10))
}
