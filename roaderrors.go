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

// roaderrors.go
package main

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies every failure the road generator can produce. None of
// them are recoverable for the current run
type ErrorKind int

const (
	ERR_STATE        ErrorKind = iota // operation called outside of its lifecycle phase
	ERR_GEOMETRY                      // malformed quad, bad arc, too small mark, slope too steep
	ERR_INTERSECTION                  // new geometry overlaps already accepted geometry
	ERR_RANGE                         // coordinate, height, length or id out of bounds
)

func (k ErrorKind) String() string {
	switch k {
	case ERR_STATE:
		return "state error"
	case ERR_GEOMETRY:
		return "geometry error"
	case ERR_INTERSECTION:
		return "intersection error"
	case ERR_RANGE:
		return "range error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

type RoadError struct {
	Kind ErrorKind
	msg  string
}

func (e *RoadError) Error() string {
	return "error generating a road - " + e.msg
}

// NewRoadError returns RoadError with the stack recorded at the call site
func NewRoadError(kind ErrorKind, format string, a ...interface{}) error {
	return errors.WithStack(&RoadError{
		Kind: kind,
		msg:  fmt.Sprintf(format, a...),
	})
}

// KindOf digs through wrapping done with github.com/pkg/errors and returns the
// kind of the RoadError at the bottom, if there is one
func KindOf(err error) (ErrorKind, bool) {
	if err == nil {
		return 0, false
	}
	re, ok := errors.Cause(err).(*RoadError)
	if !ok {
		return 0, false
	}
	return re.Kind, true
}

// IsKind is a shortcut for KindOf when only one kind is of interest
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
