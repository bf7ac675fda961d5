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

// diffgeometry_test.go
package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotated(t *testing.T) {
	v := FloatVertex{X: 1, Y: 0}
	r := v.Rotated(FloatVertex{}, math.Pi/2)
	assert.InDelta(t, 0.0, r.X, 1e-9)
	assert.InDelta(t, 1.0, r.Y, 1e-9)

	// around a pivot other than origin
	r = FloatVertex{X: 12, Y: 10}.Rotated(FloatVertex{X: 10, Y: 10}, math.Pi)
	assert.InDelta(t, 8.0, r.X, 1e-9)
	assert.InDelta(t, 10.0, r.Y, 1e-9)
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{-math.Pi, -math.Pi},
		{math.Pi, -math.Pi},
		{3 * math.Pi, -math.Pi},
		{2.5 * math.Pi, math.Pi / 2},
		{-2.5 * math.Pi, -math.Pi / 2},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, NormalizeAngle(c.in), 1e-9, "NormalizeAngle(%f)", c.in)
	}
}

func TestLineThroughPointPos(t *testing.T) {
	l := LineThrough(FloatVertex{0, 0}, FloatVertex{10, 0})
	assert.Equal(t, PointLinePos(POS_POSITIVE), l.PointPos(FloatVertex{5, 5}))
	assert.Equal(t, PointLinePos(POS_NEGATIVE), l.PointPos(FloatVertex{5, -5}))
	assert.Equal(t, PointLinePos(POS_BELONGS_TO), l.PointPos(FloatVertex{-100, 0}))

	// slanted line, larger coefficient becomes 1
	l = LineThrough(FloatVertex{0, 0}, FloatVertex{2, 4})
	assert.InDelta(t, 1.0, math.Max(math.Abs(l.A), math.Abs(l.B)), 1e-9)
	assert.Equal(t, PointLinePos(POS_BELONGS_TO), l.PointPos(FloatVertex{1, 2}))
	assert.Equal(t, PointLinePos(POS_BELONGS_TO), l.PointPos(FloatVertex{-3, -6}))
	assert.NotEqual(t, l.PointPos(FloatVertex{0, 1}), l.PointPos(FloatVertex{1, 0}))
}

func TestDegreesRadians(t *testing.T) {
	assert.InDelta(t, math.Pi, degreesToRadians(180), 1e-12)
	assert.InDelta(t, -math.Pi/2, degreesToRadians(-90.0), 1e-12)
	assert.InDelta(t, 45.0, RadiansToDegrees(math.Pi/4), 1e-12)
}

func TestMidpointDistance(t *testing.T) {
	a := FloatVertex{0, 0}
	b := FloatVertex{6, 8}
	assert.Equal(t, FloatVertex{3, 4}, Midpoint(a, b))
	assert.InDelta(t, 10.0, a.DistanceTo(b), 1e-12)
	assert.InDelta(t, 100.0, a.DistanceSquaredTo(b), 1e-12)
	assert.True(t, a.equalToWithEpsilon(FloatVertex{DBL_EPSILON / 10, 0}))
	assert.False(t, a.equalToWithEpsilon(FloatVertex{0.1, 0}))
}

func TestVertexToString(t *testing.T) {
	assert.Equal(t, "(1.,-2.500000)", FloatVertex{1, -2.5}.toString())
}
