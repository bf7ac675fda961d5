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

// generate.go
package main

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

type CommandKind int

const (
	CMD_RESTART CommandKind = iota
	CMD_LINE
	CMD_ARC
	CMD_SLOPE
)

func (k CommandKind) String() string {
	switch k {
	case CMD_RESTART:
		return "Figure"
	case CMD_LINE:
		return "Line"
	case CMD_ARC:
		return "Arc"
	case CMD_SLOPE:
		return "Slope"
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

type LineParams struct {
	Length float64
}

type ArcParams struct {
	Radius  float64
	Angle   float64 // radians, positive turns left
	Divider int
}

type SlopeParams struct {
	Tangent float64
}

// Command is one step of a road path. Only the payload matching Kind is
// meaningful
type Command struct {
	Kind  CommandKind
	Start StartParams
	Line  LineParams
	Arc   ArcParams
	Slope SlopeParams
	// 1-based line of the road script the command came from, 0 if none
	ScriptLine int
}

func RestartCommand(sp StartParams) Command {
	return Command{Kind: CMD_RESTART, Start: sp}
}

func LineCommand(length float64) Command {
	return Command{Kind: CMD_LINE, Line: LineParams{Length: length}}
}

func ArcCommand(radius, angle float64, divider int) Command {
	return Command{Kind: CMD_ARC, Arc: ArcParams{Radius: radius, Angle: angle,
		Divider: divider}}
}

func SlopeCommand(tangent float64) Command {
	return Command{Kind: CMD_SLOPE, Slope: SlopeParams{Tangent: tangent}}
}

// DefaultStart is used for commands that come before the first restart
func DefaultStart(cfg *RoadConfig) StartParams {
	return StartParams{
		Height:    1024,
		MarkShift: cfg.Sizes.RoadMarkLength + 3*cfg.Sizes.RoadMarkGap/4,
	}
}

// GenerateRoad builds the map out of the commands. Nothing of the map is to
// be used when an error is returned
func GenerateRoad(cmds []Command, cfg *RoadConfig) (*Map, error) {
	m := NewMap()
	for i := TEX_NULL; i < TEXTURE_COUNT; i++ {
		m.AddTexture(cfg.Textures[i])
	}
	checker := NewIntersectionChecker()
	var fig *RoadFigure
	figCount := 0

	newFigure := func(sp StartParams) {
		figCount++
		mlog := CreateMiniLogger()
		mlog.Verbose(1, "Figure #%d\n", figCount)
		fig = NewRoadFigure(cfg, sp, m, checker, mlog)
		checker.CutFigure()
		m.SetPlayerStart(PlayerStart{
			X:     sp.X,
			Y:     sp.Y,
			Angle: int(math.Round(RadiansToDegrees(NormalizeAngle(sp.Angle)))),
		})
	}
	finishFigure := func() error {
		if fig == nil {
			return nil
		}
		defer Log.Merge(fig.mlog, "")
		if !fig.Drawing() {
			return nil
		}
		return fig.Finish()
	}

	for i, cmd := range cmds {
		var err error
		if cmd.Kind == CMD_RESTART {
			err = finishFigure()
			if err == nil {
				newFigure(cmd.Start)
			}
		} else {
			if fig == nil {
				newFigure(DefaultStart(cfg))
			}
			if !fig.Drawing() {
				err = fig.Start()
			}
			if err == nil {
				err = fig.dispatch(cmd)
			}
		}
		if err != nil {
			return nil, wrapCommandError(err, i, cmd)
		}
	}
	if err := finishFigure(); err != nil {
		return nil, errors.Wrap(err, "end of input")
	}
	Log.Verbose(1, "Generated %d figure(s), %d quads checked for intersection\n",
		figCount, checker.QuadCount())
	return m, nil
}

func (f *RoadFigure) dispatch(cmd Command) error {
	switch cmd.Kind {
	case CMD_LINE:
		return f.Line(cmd.Line.Length)
	case CMD_ARC:
		return f.Arc(cmd.Arc.Radius, cmd.Arc.Angle, cmd.Arc.Divider)
	case CMD_SLOPE:
		return f.Slope(cmd.Slope.Tangent)
	}
	return errors.Errorf("unexpected command kind %v", cmd.Kind)
}

func wrapCommandError(err error, idx int, cmd Command) error {
	if cmd.ScriptLine > 0 {
		return errors.Wrapf(err, "command #%d (%s, line %d)", idx, cmd.Kind,
			cmd.ScriptLine)
	}
	return errors.Wrapf(err, "command #%d (%s)", idx, cmd.Kind)
}
