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

// -- This file is where the program entry is.
// RoadGen turns a script of path commands (lines, arcs, slopes) into a road
// level: road body with a dashed mark, raised sides, a fence and a background
// strip open to the sky on both sides, written as a UDMF map into a PWAD.
package main

import (
	"bytes"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

func main() {
	if !config.FromCommandLine(os.Args[1:]) {
		Log.Printf("\n")
		os.Exit(1)
	}
	PrintBanner()
	// If input file name was not passed, print help
	if config.HelpRequested || config.InputFileName == "" {
		PrintHelp()
		os.Exit(0)
	}
	if err := config.ExpandPaths(); err != nil {
		Log.Error("Error: %s\n", err.Error())
		os.Exit(1)
	}
	config.InputFileName, _ = filepath.Abs(config.InputFileName)
	config.OutputFileName, _ = filepath.Abs(config.OutputFileName)
	if config.RoadConfigFileName != "" {
		config.RoadConfigFileName, _ = filepath.Abs(config.RoadConfigFileName)
	}
	// Output replacing the script would destroy it even before it is read
	// again in watch mode
	if SameFile(config.InputFileName, config.OutputFileName) ||
		SameFile(config.RoadConfigFileName, config.OutputFileName) {
		Log.Error("You cannot specify output file that maps to the road script or road config (whether via same path and name, or hardlinks, or symlinks)\n")
		os.Exit(1)
	}

	if config.Watch {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		if err := WatchAndRegenerate(config, stop); err != nil {
			Log.Error("Error: %s\n", err.Error())
			os.Exit(1)
		}
		return
	}

	timeStart := time.Now()
	stats, err := RunOnce(config)
	if err != nil {
		Log.Error("Error: %s\n", err.Error())
		os.Exit(1)
	}
	PrintSummary(config, stats, time.Since(timeStart))
}

// RunOnce generates the wad according to program config: reads road config
// and script, builds the map and writes it out. Output file is only replaced
// when everything succeeded
func RunOnce(pc *ProgramConfig) (MapStats, error) {
	roadCfg := DefaultRoadConfig()
	if pc.RoadConfigFileName != "" {
		var err error
		roadCfg, err = LoadRoadConfig(pc.RoadConfigFileName)
		if err != nil {
			return MapStats{}, err
		}
		Log.Verbose(1, "Loaded road config %s\n", pc.RoadConfigFileName)
	}
	cmds, err := ReadRoadScript(pc.InputFileName)
	if err != nil {
		return MapStats{}, err
	}
	if len(cmds) == 0 {
		return MapStats{}, errors.Errorf("%s: road script has no commands", pc.InputFileName)
	}
	Log.Verbose(1, "Read %d commands from %s\n", len(cmds), pc.InputFileName)

	m, err := GenerateRoad(cmds, roadCfg)
	if err != nil {
		return MapStats{}, errors.Wrap(err, pc.InputFileName)
	}
	var textmap bytes.Buffer
	if err := WriteTEXTMAP(&textmap, m, pc.Precision); err != nil {
		return MapStats{}, err
	}

	fc := FileControl{}
	defer fc.Shutdown()
	fout, err := fc.OpenOutputFile(pc.OutputFileName)
	if err != nil {
		return MapStats{}, err
	}
	if err := WriteMapWad(fout, pc.MapName, textmap.Bytes()); err != nil {
		return MapStats{}, errors.Wrapf(err, "couldn't write wad '%s'", pc.OutputFileName)
	}
	if err := fc.Success(); err != nil {
		return MapStats{}, err
	}

	stats := m.Stats()
	if pc.Verify {
		readStats, err := VerifyWad(pc.OutputFileName, pc.MapName)
		if err != nil {
			return stats, errors.Wrap(err, "verification failed")
		}
		if readStats != stats {
			return stats, errors.Errorf("verification failed: wrote %+v but read back %+v",
				stats, readStats)
		}
		Log.Printf("Verified %s: map %s reads back intact\n", pc.OutputFileName, pc.MapName)
	}
	return stats, nil
}

func PrintSummary(pc *ProgramConfig, stats MapStats, elapsed time.Duration) {
	Log.Printf("Wrote map %s to %s\n", pc.MapName, pc.OutputFileName)
	Log.Printf("  vertices: %d, linedefs: %d, sidedefs: %d, sectors: %d\n",
		stats.Vertices, stats.Linedefs, stats.Sidedefs, stats.Sectors)
	Log.Printf("Total time: %s\n", elapsed)
	Log.Sync()
}
