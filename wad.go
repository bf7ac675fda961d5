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
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

const WAD_HEADER_SIZE = 12
const LUMP_ENTRY_SIZE = 16

// ByteSliceBeforeTerm returns a part of the original bytes
// excluding everything that starts with zero-byte character.
// This allows string operations (such as pattern matching) to be performed
// correctly on returned value
func ByteSliceBeforeTerm(b []byte) []byte {
	i := bytes.IndexByte(b, 0)
	if i == -1 {
		return b
	} else {
		return b[:i]
	}
}

func LumpNameBytes(name string) [8]byte {
	var res [8]byte
	copy(res[:], name)
	return res
}

func ValidateLumpName(name string) error {
	if !LUMP_NAME_VALID.MatchString(name) {
		return errors.Errorf("bad lump name '%s': must be 1 to 8 characters, upper case letters, digits or one of []-_\\",
			name)
	}
	return nil
}

// IsMapName tells whether source ports will recognize the lump name as a map
// marker
func IsMapName(name string) bool {
	return MAP_SEQUEL.MatchString(name) || MAP_ExMx.MatchString(name)
}

// WadWriter writes a wad with a known list of lumps. Lump data is written
// through the write bus in directory order, directory is written by Finish
type WadWriter struct {
	fout   io.WriteSeeker
	le     []LumpEntry
	wriBus *WriteBusControl
	next   int
}

// NewWadWriter reserves space for the header and starts the write bus
func NewWadWriter(fout io.WriteSeeker, lumpNames []string) (*WadWriter, error) {
	le := make([]LumpEntry, len(lumpNames))
	for i, name := range lumpNames {
		if err := ValidateLumpName(name); err != nil {
			return nil, err
		}
		le[i].Name = LumpNameBytes(name)
	}
	if err := WriteNZerosOrFail(fout, WAD_HEADER_SIZE); err != nil {
		return nil, err
	}
	return &WadWriter{
		fout:   fout,
		le:     le,
		wriBus: StartWriteBus(fout, le, WAD_HEADER_SIZE),
	}, nil
}

// WriteLump must be called for every lump once, in directory order. Empty or
// nil data is fine, marker lumps have no content
func (w *WadWriter) WriteLump(data []byte) error {
	if w.next >= len(w.le) {
		return errors.New("more lumps written than wad directory has")
	}
	name := string(ByteSliceBeforeTerm(w.le[w.next].Name[:]))
	w.wriBus.WriteSliceLump(data, w.next, name)
	w.next++
	return nil
}

// Finish waits for the lumps to be written, then writes the directory and
// the header
func (w *WadWriter) Finish() error {
	err := w.wriBus.Shutdown()
	if err != nil {
		return err
	}
	if w.next != len(w.le) {
		return errors.Errorf("only %d lumps out of %d were written", w.next, len(w.le))
	}
	dirStart := w.wriBus.CurPos()
	if err := WriteDirectory(w.fout, w.le); err != nil {
		return err
	}
	if _, err := w.fout.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "couldn't seek to wad header")
	}
	header := WadHeader{
		MagicSig:       PWAD_MAGIC_SIG,
		LumpCount:      uint32(len(w.le)),
		DirectoryStart: dirStart,
	}
	return errors.Wrap(binary.Write(w.fout, binary.LittleEndian, &header),
		"couldn't write wad header")
}

// WriteMapWad writes a PWAD containing a single UDMF map
func WriteMapWad(fout io.WriteSeeker, mapName string, textmap []byte) error {
	w, err := NewWadWriter(fout, []string{mapName, LUMP_TEXTMAP, LUMP_ENDMAP})
	if err != nil {
		return err
	}
	w.WriteLump(nil)
	w.WriteLump(textmap)
	w.WriteLump(nil)
	return w.Finish()
}

func WriteNZerosOrFail(a io.Writer, n uint32) error {
	if n == 0 {
		return nil
	}
	_, err := a.Write(make([]byte, n))
	return errors.Wrap(err, "couldn't write to output file")
}

// WadFile is a wad loaded into memory with its directory
type WadFile struct {
	Header WadHeader
	Dir    []LumpEntry
	data   []byte
}

func ReadWadFile(fname string) (*WadFile, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read wad '%s'", fname)
	}
	wad, err := ReadWad(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", fname)
	}
	return wad, nil
}

// ReadWad checks the header and the directory against the data size
func ReadWad(data []byte) (*WadFile, error) {
	wad := &WadFile{data: data}
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &wad.Header); err != nil {
		return nil, errors.New("wad is too short to contain a header")
	}
	if wad.Header.MagicSig != PWAD_MAGIC_SIG && wad.Header.MagicSig != IWAD_MAGIC_SIG {
		return nil, errors.New("not a wad: bad magic signature")
	}
	dirEnd := uint64(wad.Header.DirectoryStart) +
		uint64(wad.Header.LumpCount)*LUMP_ENTRY_SIZE
	if dirEnd > uint64(len(data)) {
		return nil, errors.Errorf("wad directory (%d entries at offset %d) is past the end of file",
			wad.Header.LumpCount, wad.Header.DirectoryStart)
	}
	wad.Dir = make([]LumpEntry, wad.Header.LumpCount)
	r.Reset(data[wad.Header.DirectoryStart:dirEnd])
	if err := binary.Read(r, binary.LittleEndian, wad.Dir); err != nil {
		return nil, errors.Wrap(err, "couldn't read wad directory")
	}
	for i, e := range wad.Dir {
		if uint64(e.FilePos)+uint64(e.Size) > uint64(len(data)) {
			return nil, errors.Errorf("lump #%d (%s) is past the end of file",
				i, wad.LumpName(i))
		}
	}
	return wad, nil
}

func (w *WadFile) LumpName(idx int) string {
	return string(ByteSliceBeforeTerm(w.Dir[idx].Name[:]))
}

// FindLump returns index of the first lump with that name at or after from,
// or -1
func (w *WadFile) FindLump(name string, from int) int {
	for i := from; i < len(w.Dir); i++ {
		if w.LumpName(i) == name {
			return i
		}
	}
	return -1
}

func (w *WadFile) LumpData(idx int) []byte {
	e := &w.Dir[idx]
	return w.data[e.FilePos : e.FilePos+e.Size]
}
