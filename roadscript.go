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

// roadscript.go
package main

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
)

// Road script is a text file, one command per line:
//
//	# comment
//	Figure x y angle zpos height markShift
//	Line length
//	Arc radius angle divider
//	Slope tangent
//
// Angles are in degrees, positive angle of an arc turns left.

const MAX_SCRIPT_ROWS = 1024
const SCRIPT_ERROR_THRESHOLD = 10

var SCRIPT_DOUBLE = regexp.MustCompile(`^-?[0-9]{1,8}(\.[0-9]{1,7})?$`)
var SCRIPT_INT = regexp.MustCompile(`^-?[0-9]{1,8}$`)

type scriptRowDef struct {
	name  string
	nargs int
	parse func(c *scriptContext, args []string) (Command, error)
}

var scriptRows = []scriptRowDef{
	{name: "Figure", nargs: 6, parse: parseFigureRow},
	{name: "Line", nargs: 1, parse: parseLineRow},
	{name: "Arc", nargs: 3, parse: parseArcRow},
	{name: "Slope", nargs: 1, parse: parseSlopeRow},
}

type scriptContext struct {
	fname  string
	liNum  int
	errNum int
	first  error
}

// LogError reports error on the current line, only the first one is
// returned to the caller
func (c *scriptContext) LogError(msg string, a ...interface{}) {
	nA := make([]interface{}, 0, 2+len(a))
	nA = append(nA, c.fname)
	nA = append(nA, c.liNum)
	nA = append(nA, a...)
	err := errors.Errorf("%s:%d: "+msg, nA...)
	Log.Error("%s\n", err.Error())
	if c.first == nil {
		c.first = err
	}
	c.errNum++
}

func ReadRoadScript(fname string) ([]Command, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open road script '%s'", fname)
	}
	defer f.Close()
	return ParseRoadScript(f, fname)
}

// ParseRoadScript goes on after errors to report more of them, but returns
// only the first one
func ParseRoadScript(r io.Reader, fname string) ([]Command, error) {
	sc := bufio.NewScanner(r)
	c := &scriptContext{fname: fname}
	var cmds []Command
	for sc.Scan() {
		c.liNum++ // lines start at 1
		args, ok := c.tokenize(sc.Text())
		if !ok || len(args) == 0 {
			if c.errNum >= SCRIPT_ERROR_THRESHOLD {
				break
			}
			continue
		}
		if len(cmds) == MAX_SCRIPT_ROWS {
			c.LogError("too many commands, at most %d are allowed", MAX_SCRIPT_ROWS)
			break
		}
		cmd, ok := c.parseRow(args)
		if ok {
			cmd.ScriptLine = c.liNum
			cmds = append(cmds, cmd)
		}
		if c.errNum >= SCRIPT_ERROR_THRESHOLD {
			Log.Error("%s: too many errors\n", fname)
			break
		}
	}
	if err := sc.Err(); err != nil {
		c.LogError("couldn't read line: %s", err.Error())
	}
	if c.first != nil {
		return nil, c.first
	}
	return cmds, nil
}

// tokenize drops the comment and splits the rest into words, honoring
// quotes. Shell operators are not allowed
func (c *scriptContext) tokenize(line string) ([]string, bool) {
	line = stripComment(line)
	if strings.TrimSpace(line) == "" {
		return nil, true
	}
	p := shellwords.NewParser()
	p.ParseEnv = false
	p.ParseBacktick = false
	args, err := p.Parse(line)
	if err != nil {
		c.LogError("syntax error: %s", err.Error())
		return nil, false
	}
	if p.Position != -1 {
		c.LogError("syntax error: unexpected '%c'", line[p.Position])
		return nil, false
	}
	return args, true
}

func stripComment(line string) string {
	var escaped, doubleQuoted, singleQuoted bool
	for i, r := range line {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && !singleQuoted:
			escaped = true
		case r == '"' && !singleQuoted:
			doubleQuoted = !doubleQuoted
		case r == '\'' && !doubleQuoted:
			singleQuoted = !singleQuoted
		case r == '#' && !doubleQuoted && !singleQuoted:
			return line[:i]
		}
	}
	return line
}

func (c *scriptContext) parseRow(args []string) (Command, bool) {
	for _, def := range scriptRows {
		// row names match regardless of case
		if !strings.EqualFold(def.name, args[0]) {
			continue
		}
		if len(args)-1 != def.nargs {
			c.LogError("%s needs %d arguments, got %d", def.name, def.nargs, len(args)-1)
			return Command{}, false
		}
		cmd, err := def.parse(c, args[1:])
		if err != nil {
			c.LogError("%s: %s", def.name, err.Error())
			return Command{}, false
		}
		return cmd, true
	}
	c.LogError("unknown command '%s'", args[0])
	return Command{}, false
}

func scriptDouble(s string, what string) (float64, error) {
	if !SCRIPT_DOUBLE.MatchString(s) {
		return 0, errors.Errorf("bad %s '%s', expected a number with at most 8 digits before and 7 after the point", what, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, errors.Wrapf(err, "bad %s", what)
}

func scriptInt(s string, what string) (int, error) {
	if !SCRIPT_INT.MatchString(s) {
		return 0, errors.Errorf("bad %s '%s', expected an integer with at most 8 digits", what, s)
	}
	v, err := strconv.Atoi(s)
	return v, errors.Wrapf(err, "bad %s", what)
}

func parseFigureRow(c *scriptContext, args []string) (Command, error) {
	var sp StartParams
	var err error
	var deg float64
	if sp.X, err = scriptDouble(args[0], "x"); err != nil {
		return Command{}, err
	}
	if sp.Y, err = scriptDouble(args[1], "y"); err != nil {
		return Command{}, err
	}
	if deg, err = scriptDouble(args[2], "angle"); err != nil {
		return Command{}, err
	}
	sp.Angle = degreesToRadians(deg)
	if sp.ZPos, err = scriptInt(args[3], "floor position"); err != nil {
		return Command{}, err
	}
	if sp.Height, err = scriptInt(args[4], "height"); err != nil {
		return Command{}, err
	}
	if sp.MarkShift, err = scriptInt(args[5], "mark shift"); err != nil {
		return Command{}, err
	}
	return RestartCommand(sp), nil
}

func parseLineRow(c *scriptContext, args []string) (Command, error) {
	length, err := scriptDouble(args[0], "length")
	if err != nil {
		return Command{}, err
	}
	return LineCommand(length), nil
}

func parseArcRow(c *scriptContext, args []string) (Command, error) {
	radius, err := scriptDouble(args[0], "radius")
	if err != nil {
		return Command{}, err
	}
	deg, err := scriptDouble(args[1], "angle")
	if err != nil {
		return Command{}, err
	}
	divider, err := scriptInt(args[2], "divider")
	if err != nil {
		return Command{}, err
	}
	return ArcCommand(radius, degreesToRadians(deg), divider), nil
}

func parseSlopeRow(c *scriptContext, args []string) (Command, error) {
	tangent, err := scriptDouble(args[0], "tangent")
	if err != nil {
		return Command{}, err
	}
	return SlopeCommand(tangent), nil
}
