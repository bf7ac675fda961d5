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
package main

import (
	"strconv"
	"strings"
)

// Options that take a value from the following argument
const (
	OPT_OUTPUT    = "-o"
	OPT_CONFIG    = "-config"
	OPT_MAPNAME   = "-mapname"
	OPT_PRECISION = "-precision"
)

// FromCommandLine fills config from arguments (program name excluded).
// Returns false if arguments are wrong, the error is already reported then
func (c *ProgramConfig) FromCommandLine(args []string) bool {
	files := make([]string, 0)
	outputModifierUsed := false
	pending := "" // option waiting for its value
	for _, arg := range args {
		if len(arg) < 1 {
			continue
		}
		if pending != "" {
			if !c.applyValueOption(pending, arg) {
				return false
			}
			pending = ""
			continue
		}

		if arg == "/?" {
			c.HelpRequested = true
			continue
		}
		if arg[0] != '-' {
			files = append(files, arg)
			if len(files) > 2 {
				Log.Error("This program doesn't support more than one road script and one output file - aborting.\n")
				return false
			}
			continue
		}

		switch arg {
		case OPT_OUTPUT:
			if outputModifierUsed {
				Log.Error("Can't specify output file twice, only one output file is supported - aborting.\n")
				return false
			}
			outputModifierUsed = true
			pending = arg
		case OPT_CONFIG, OPT_MAPNAME, OPT_PRECISION:
			pending = arg
		case "-verify":
			c.Verify = true
		case "-watch":
			c.Watch = true
		case "-h", "--help":
			c.HelpRequested = true
		default:
			if len(arg) > 1 && strings.Trim(arg[1:], "v") == "" {
				// "count" type: -v, -vv, -vvv, etc.
				c.VerbosityLevel += len(arg) - 1
				continue
			}
			Log.Error("Unrecognised argument '%s' - aborting.\n", arg)
			return false
		}
	}
	if pending != "" {
		Log.Error("Modifier '%s' was present without a value following it - aborting.\n",
			pending)
		return false
	}
	if len(files) > 0 {
		c.InputFileName = files[0]
	}
	if len(files) > 1 {
		if outputModifierUsed {
			Log.Error("Can't specify output file twice, only one output file is supported - aborting.\n")
			return false
		}
		c.OutputFileName = files[1]
	}
	return true
}

func (c *ProgramConfig) applyValueOption(opt string, value string) bool {
	switch opt {
	case OPT_OUTPUT:
		c.OutputFileName = value
	case OPT_CONFIG:
		c.RoadConfigFileName = value
	case OPT_MAPNAME:
		name := strings.ToUpper(value)
		if err := ValidateLumpName(name); err != nil {
			Log.Error("Bad map name: %s - aborting.\n", err.Error())
			return false
		}
		if !IsMapName(name) {
			Log.Printf("Warning: '%s' is not recognized as a map name by most ports (MAPxx or ExMy expected).\n",
				name)
		}
		c.MapName = name
	case OPT_PRECISION:
		v, err := strconv.Atoi(value)
		if err != nil || !inRange(v, 0, MAX_PRECISION) {
			Log.Error("Precision must be a number between 0 and %d, got '%s' - aborting.\n",
				MAX_PRECISION, value)
			return false
		}
		c.Precision = v
	}
	return true
}

// ExpandPaths resolves "~" in every file name of the config
func (c *ProgramConfig) ExpandPaths() error {
	for _, p := range []*string{&c.InputFileName, &c.OutputFileName, &c.RoadConfigFileName} {
		res, err := ExpandPath(*p)
		if err != nil {
			return err
		}
		*p = res
	}
	return nil
}
