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

// diffgeometry.go
package main

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/constraints"
)

// All "is it zero" decisions in the generator use this absolute epsilon.
// Don't make it relative: quad checks are tuned against map units
const DBL_EPSILON = 0.00001

const (
	POS_NEGATIVE   = -1
	POS_BELONGS_TO = 0
	POS_POSITIVE   = 1
)

type PointLinePos int

type FloatVertex struct {
	X float64
	Y float64
}

// Line equation ax + by + c = 0
type LineEquation struct {
	A, B, C float64
}

func IsZeroOrCloseTo(v float64) bool {
	return v > -DBL_EPSILON && v < DBL_EPSILON
}

func CloseTo(a, b float64) bool {
	return IsZeroOrCloseTo(a - b)
}

func (v FloatVertex) Moved(dx, dy float64) FloatVertex {
	return FloatVertex{X: v.X + dx, Y: v.Y + dy}
}

// Rotated returns v rotated around pivot by radAngle (counterclockwise)
func (v FloatVertex) Rotated(pivot FloatVertex, radAngle float64) FloatVertex {
	sin, cos := math.Sincos(radAngle)
	dx := v.X - pivot.X
	dy := v.Y - pivot.Y
	return FloatVertex{
		X: pivot.X + cos*dx - sin*dy,
		Y: pivot.Y + sin*dx + cos*dy,
	}
}

func (v FloatVertex) DistanceTo(w FloatVertex) float64 {
	return math.Sqrt(v.DistanceSquaredTo(w))
}

func (v FloatVertex) DistanceSquaredTo(w FloatVertex) float64 {
	dx := w.X - v.X
	dy := w.Y - v.Y
	return dx*dx + dy*dy
}

func (v FloatVertex) equalToWithEpsilon(w FloatVertex) bool {
	return IsZeroOrCloseTo(v.DistanceTo(w))
}

func Midpoint(a, b FloatVertex) FloatVertex {
	return FloatVertex{X: (a.X + b.X) / 2.0, Y: (a.Y + b.Y) / 2.0}
}

// LineThrough builds the equation of the line passing p1 and p2. Coefficients
// a and b are divided by the one with larger magnitude (or by the only non-zero
// one) instead of being normalized to unit length, so that no square root is
// needed
func LineThrough(p1, p2 FloatVertex) LineEquation {
	a := p2.Y - p1.Y
	b := p1.X - p2.X
	var div float64
	if IsZeroOrCloseTo(a) {
		if IsZeroOrCloseTo(b) {
			div = 1.0
		} else {
			div = b
		}
	} else if IsZeroOrCloseTo(b) {
		div = a
	} else if math.Abs(a) > math.Abs(b) {
		div = a
	} else {
		div = b
	}
	return LineEquation{
		A: a / div,
		B: b / div,
		C: p2.X/div*p1.Y - p1.X/div*p2.Y,
	}
}

// PointPos tells on which side of the line the point is
func (l LineEquation) PointPos(v FloatVertex) PointLinePos {
	val := l.A*v.X + l.B*v.Y + l.C
	if IsZeroOrCloseTo(val) {
		return POS_BELONGS_TO
	}
	if val > 0 {
		return POS_POSITIVE
	}
	return POS_NEGATIVE
}

// NormalizeAngle wraps angle (in radians) to [-Pi, Pi) in full turns
func NormalizeAngle(a float64) float64 {
	if a >= -math.Pi && a < math.Pi {
		return a
	}
	_, frac := math.Modf(a / (2 * math.Pi))
	if frac < -0.5 {
		frac += 1.0
	} else if frac >= 0.5 {
		frac -= 1.0
	}
	return frac * 2 * math.Pi
}

func degreesToRadians[T constraints.Integer | constraints.Float](deg T) float64 {
	return float64(deg) * math.Pi / 180.0
}

func RadiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

func (x FloatVertex) toString() string {
	return replaceAfterDotZeros(fmt.Sprintf("(%f,%f)", x.X, x.Y))
}

func replaceAfterDotZeros(s string) string {
	return strings.ReplaceAll(s, ".000000", ".")
}
