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

// Bus for organized writes to destination file
package main

import (
	"io"
)

type WriteBusRequest struct {
	bData    []byte
	lumpIdx  int
	lumpName string
}

type WriteBus struct {
	fout   io.Writer
	le     []LumpEntry
	curPos uint32
	// first failure, requests after it are drained without writing
	err error
}

type WriteBusControl struct {
	bus      *WriteBus
	ch       chan<- WriteBusRequest
	finisher <-chan bool
}

func StartWriteBus(fout io.Writer, le []LumpEntry, curPos uint32) *WriteBusControl {
	bus := &WriteBus{
		fout:   fout,
		le:     le,
		curPos: curPos,
	}
	ch := make(chan WriteBusRequest)
	finisher := make(chan bool)
	go bus.WriteBusLoop(ch, finisher)
	return &WriteBusControl{
		bus:      bus,
		ch:       ch,
		finisher: finisher,
	}
}

func (b *WriteBus) WriteBusLoop(ch <-chan WriteBusRequest, chFinish chan<- bool) {
	for req := range ch {
		if b.err != nil {
			continue
		}
		b.err = WriteSliceLump(req.bData, &(b.curPos), b.fout, b.le, req.lumpIdx,
			req.lumpName)
	}
	chFinish <- true
}

func (c *WriteBusControl) WriteSliceLump(data []byte, lumpIdx int, s string) {
	envl := WriteBusRequest{
		bData:    data,
		lumpIdx:  lumpIdx,
		lumpName: s,
	}
	c.ch <- envl
}

// Shutdown waits for all requests to be written and returns the first error
// that happened
func (c *WriteBusControl) Shutdown() error {
	close(c.ch)
	<-c.finisher
	return c.bus.err
}

// CurPos is the offset past the last written lump. Only valid after Shutdown
func (c *WriteBusControl) CurPos() uint32 {
	return c.bus.curPos
}
