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

// lumpwrite
package main

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Write byte array without conversion, and fill directory entry for it
func WriteSliceLump(data []byte, curPos *uint32, fout io.Writer, le []LumpEntry,
	lumpIdx int, s string) error {
	if len(data) > 0 {
		if _, err := fout.Write(data); err != nil {
			return errors.Wrapf(err, "couldn't write lump %s", s)
		}
	}
	le[lumpIdx].FilePos = *curPos
	le[lumpIdx].Size = uint32(len(data))
	if len(s) > 0 {
		Log.Verbose(1, "Lump number %d (%s) has its size set to %d bytes.\n", lumpIdx, s, le[lumpIdx].Size)
	}
	*curPos = *curPos + uint32(len(data))
	return nil
}

// WriteDirectory writes lump entries as they are laid out in the wad
func WriteDirectory(fout io.Writer, le []LumpEntry) error {
	err := binary.Write(fout, binary.LittleEndian, le)
	return errors.Wrap(err, "couldn't write wad directory")
}
