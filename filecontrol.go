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
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// Controls lifetime of the output wad. The wad is written to a temporary file
// in the same directory as the destination, which replaces the destination
// only on success, and is deleted on failure. That way a failed run never
// leaves a half-written wad behind, nor damages the previous one
type FileControl struct {
	success        bool
	fout           *os.File
	tmpFileName    string
	outputFileName string
}

// ExpandPath resolves "~" the way shell would, since paths in config files
// and quoted arguments don't go through the shell
func ExpandPath(p string) (string, error) {
	if p == "" {
		return p, nil
	}
	res, err := homedir.Expand(p)
	if err != nil {
		return "", errors.Wrapf(err, "couldn't expand path '%s'", p)
	}
	return res, nil
}

func (fc *FileControl) OpenOutputFile(outputFileName string) (*os.File, error) {
	fc.outputFileName = outputFileName
	var err error
	fc.fout, err = os.CreateTemp(filepath.Dir(outputFileName), ".roadgen-*.tmp")
	if err != nil {
		fc.fout = nil
		return nil, errors.Wrapf(err, "couldn't create temporary file next to '%s'",
			outputFileName)
	}
	fc.tmpFileName = fc.fout.Name()
	return fc.fout, nil
}

// Success closes the temporary file and moves it over the destination
func (fc *FileControl) Success() error {
	if fc.fout == nil {
		Log.Panic("Sanity check failed: descriptor invalid.\n")
	}
	err := fc.fout.Close()
	fc.fout = nil
	if err != nil {
		return errors.Wrap(err, "closing output file (after wad was almost ready) returned error")
	}
	if err := os.Rename(fc.tmpFileName, fc.outputFileName); err != nil {
		return errors.Wrapf(err, "couldn't move temporary file to '%s'", fc.outputFileName)
	}
	fc.success = true
	return nil
}

// Ensures we close the output when program exits. Temporary file is getting
// deleted at this moment
func (fc *FileControl) Shutdown() {
	if fc.success || fc.tmpFileName == "" {
		return
	}
	if fc.fout != nil {
		if err := fc.fout.Close(); err != nil {
			Log.Error("Couldn't close output file '%s': %s\n", fc.tmpFileName, err.Error())
		}
		fc.fout = nil
	}
	if err := os.Remove(fc.tmpFileName); err != nil && !os.IsNotExist(err) {
		Log.Error("Got error when trying to delete a temporary file '%s': %s\n",
			fc.tmpFileName, err.Error())
	}
	fc.tmpFileName = ""
}

// SameFile tells whether both names refer to an existing file, the same one
func SameFile(name1, name2 string) bool {
	fi1, err := os.Stat(name1)
	if err != nil {
		return false
	}
	fi2, err := os.Stat(name2)
	if err != nil {
		return false
	}
	return os.SameFile(fi1, fi2)
}
