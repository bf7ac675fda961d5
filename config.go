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

const VERSION = "0.1a"

const DEFAULT_OUTPUT_FILE = "roads.wad"
const DEFAULT_MAP_NAME = "MAP01"

/*
roadgen {-options} script.txt {output.wad}

-o <file> Output wad (default: roads.wad)
-config <file> Road config, TOML (default) or YAML by extension
-mapname <LUMP> Map marker lump name (default: MAP01)
-precision <n> Digits after the point for coordinates in TEXTMAP (default: 3)
-verify Read the written wad back and check the map
-watch Regenerate whenever script or road config changes
-v Add verbosity to text output. Use multiple times for increased verbosity.
*/

type ProgramConfig struct {
	InputFileName      string // road script
	OutputFileName     string
	RoadConfigFileName string
	MapName            string
	Precision          int
	Verify             bool
	Watch              bool
	VerbosityLevel     int
	HelpRequested      bool
}

var config *ProgramConfig // global variable that will be accessed from other threads too

func DefaultProgramConfig() *ProgramConfig {
	return &ProgramConfig{
		OutputFileName: DEFAULT_OUTPUT_FILE,
		MapName:        DEFAULT_MAP_NAME,
		Precision:      DEFAULT_PRECISION,
	}
}

func init() {
	// Initialize with defaults. Command line is parsed by main, so that tests
	// get a usable config too
	config = DefaultProgramConfig()
}

func PrintBanner() {
	Log.Printf("RoadGen ver %s\n", VERSION)
	Log.Printf("Copyright (c)   2025 VigilantDoomer\n")
	Log.Printf("Generates road levels in UDMF format, distributed under the terms of\n")
	Log.Printf(" GNU General Public License v2.\n")
	Log.Printf("\n")
}

func PrintHelp() {
	Log.Printf("Usage: roadgen {-options} script.txt {output.wad}\n")
	Log.Printf("\n")
	Log.Printf("-o <file> Output wad file (default: %s)\n", DEFAULT_OUTPUT_FILE)
	Log.Printf("-config <file> Road config file with sizes, textures and light level.\n")
	Log.Printf("	TOML by default, YAML if file extension is .yaml or .yml\n")
	Log.Printf("-mapname <LUMP> Map marker lump name (default: %s)\n", DEFAULT_MAP_NAME)
	Log.Printf("-precision <n> Digits after the point for floating point numbers in\n")
	Log.Printf("	TEXTMAP, 0 to %d (default: %d)\n", MAX_PRECISION, DEFAULT_PRECISION)
	Log.Printf("-verify Read the written wad back and check references of the map\n")
	Log.Printf("-watch Keep running and regenerate the wad whenever road script or\n")
	Log.Printf("	road config file changes\n")
	Log.Printf("-v Add verbosity to text output. Use multiple times for increased verbosity.\n")
	Log.Printf("-h, --help, /? Print this help\n")
	Log.Printf("\n")
	Log.Printf("Road script commands, one per line, '#' starts a comment:\n")
	Log.Printf("	Figure x y angle zpos height markShift\n")
	Log.Printf("	Line length\n")
	Log.Printf("	Arc radius angle divider\n")
	Log.Printf("	Slope tangent\n")
	Log.Printf("Angles are in degrees, positive arc angle turns left.\n")
}
