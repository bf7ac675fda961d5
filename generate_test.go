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

// generate_test.go
package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDefaultFigure(t *testing.T) {
	m, err := GenerateRoad([]Command{LineCommand(1000)}, DefaultRoadConfig())
	require.NoError(t, err)
	require.NotNil(t, m.PlayerStart)
	assert.Equal(t, PlayerStart{X: 0, Y: 0, Angle: 0}, *m.PlayerStart)
	assert.Len(t, m.Textures, TEXTURE_COUNT)
	assert.Equal(t, TEXTURE_NONE_NAME, m.Textures[TEX_NULL])
	assertMapConsistent(t, m)
	// default mark shift starts in the middle of a gap
	assert.Equal(t, 1, countSectors(m, TEX_ROADMARK))
}

func TestGeneratePlayerStartFromFirstFigure(t *testing.T) {
	cmds := []Command{
		RestartCommand(StartParams{X: 100, Y: 200, Angle: math.Pi / 2, Height: 512}),
		LineCommand(500),
		RestartCommand(StartParams{X: 5000, Y: 5000, Angle: math.Pi, Height: 512}),
		LineCommand(500),
	}
	m, err := GenerateRoad(cmds, DefaultRoadConfig())
	require.NoError(t, err)
	require.NotNil(t, m.PlayerStart)
	assert.Equal(t, PlayerStart{X: 100, Y: 200, Angle: 90}, *m.PlayerStart)
	assertMapConsistent(t, m)
}

func TestGeneratePlayerStartAngleRounding(t *testing.T) {
	cases := []struct {
		deg  float64
		want int
	}{
		{90, 90},
		{89.7, 90},
		{-45.4, -45},
		{270, -90},
	}
	for _, c := range cases {
		cmds := []Command{
			RestartCommand(StartParams{Angle: degreesToRadians(c.deg), Height: 512}),
			LineCommand(500),
		}
		m, err := GenerateRoad(cmds, DefaultRoadConfig())
		require.NoError(t, err)
		require.NotNil(t, m.PlayerStart)
		assert.Equal(t, c.want, m.PlayerStart.Angle, "heading %f", c.deg)
	}
}

func TestGenerateRestartWithoutDrawing(t *testing.T) {
	cmds := []Command{
		RestartCommand(StartParams{X: -1000, Y: 0, Angle: -math.Pi / 2, Height: 512}),
		RestartCommand(StartParams{X: 0, Y: 0, Height: 512}),
		LineCommand(500),
	}
	m, err := GenerateRoad(cmds, DefaultRoadConfig())
	require.NoError(t, err)
	// first figure owns the player start even though it never drew
	assert.Equal(t, PlayerStart{X: -1000, Y: 0, Angle: -90}, *m.PlayerStart)
	assertMapConsistent(t, m)
}

func TestGenerateSeparateFigures(t *testing.T) {
	cmds := []Command{
		RestartCommand(StartParams{Height: 1024}),
		LineCommand(1000),
		RestartCommand(StartParams{Y: 5000, Height: 1024}),
		LineCommand(1000),
	}
	m, err := GenerateRoad(cmds, DefaultRoadConfig())
	require.NoError(t, err)
	assertMapConsistent(t, m)
	assert.Equal(t, 2, countSectors(m, TEX_ROADBODY))
}

func TestGenerateSelfIntersection(t *testing.T) {
	cmds := []Command{
		LineCommand(2000),
		ArcCommand(1000, degreesToRadians(270), 16),
		// heads south across the first line
		LineCommand(2000),
	}
	_, err := GenerateRoad(cmds, DefaultRoadConfig())
	assertKind(t, ERR_INTERSECTION, err)
	assert.Contains(t, err.Error(), "command #2 (Line)")
	assert.Contains(t, err.Error(), "some figures have an intersection")
}

func TestGenerateIntersectionAcrossFigures(t *testing.T) {
	cmds := []Command{
		RestartCommand(StartParams{Height: 1024}),
		LineCommand(1000),
		RestartCommand(StartParams{X: 500, Y: -1000, Angle: math.Pi / 2, Height: 1024}),
		LineCommand(2000),
	}
	_, err := GenerateRoad(cmds, DefaultRoadConfig())
	assertKind(t, ERR_INTERSECTION, err)
	assert.Contains(t, err.Error(), "command #3 (Line)")
}

func TestGenerateErrorMentionsScriptLine(t *testing.T) {
	cmd := ArcCommand(10, math.Pi, 4)
	cmd.ScriptLine = 7
	_, err := GenerateRoad([]Command{LineCommand(100), cmd}, DefaultRoadConfig())
	assertKind(t, ERR_GEOMETRY, err)
	assert.Contains(t, err.Error(), "command #1 (Arc, line 7)")
	assert.Contains(t, err.Error(), "error generating a road - too small arc radius")
}

func TestGenerateSlopeAtEnd(t *testing.T) {
	cmds := []Command{LineCommand(500), SlopeCommand(0.1)}
	_, err := GenerateRoad(cmds, DefaultRoadConfig())
	assertKind(t, ERR_STATE, err)
	assert.Contains(t, err.Error(), "end of input")
}

func TestGenerateSlopeFirst(t *testing.T) {
	_, err := GenerateRoad([]Command{SlopeCommand(0.1)}, DefaultRoadConfig())
	assertKind(t, ERR_STATE, err)
	assert.Contains(t, err.Error(), "command #0 (Slope)")
}

func TestGenerateBadStart(t *testing.T) {
	cmds := []Command{
		RestartCommand(StartParams{X: 40000, Height: 1024}),
		LineCommand(100),
	}
	_, err := GenerateRoad(cmds, DefaultRoadConfig())
	assertKind(t, ERR_RANGE, err)
	assert.Contains(t, err.Error(), "command #1 (Line)")
}

func TestGenerateSlopeBelowHeightRange(t *testing.T) {
	cmds := []Command{
		RestartCommand(StartParams{ZPos: -32000, Height: 1024}),
		LineCommand(100),
		SlopeCommand(-0.5),
		LineCommand(4000),
		SlopeCommand(0),
		LineCommand(100),
	}
	_, err := GenerateRoad(cmds, DefaultRoadConfig())
	assertKind(t, ERR_RANGE, err)
	assert.Contains(t, err.Error(), "command #3 (Line)")
}

func TestDefaultStart(t *testing.T) {
	cfg := DefaultRoadConfig()
	sp := DefaultStart(cfg)
	assert.Equal(t, 1024, sp.Height)
	assert.Equal(t, 256+384, sp.MarkShift)
	assert.Zero(t, sp.X)
	assert.Zero(t, sp.Angle)
}

func TestCommandKindString(t *testing.T) {
	assert.Equal(t, "Figure", CMD_RESTART.String())
	assert.Equal(t, "Arc", CMD_ARC.String())
	assert.Equal(t, "CommandKind(9)", CommandKind(9).String())
}
