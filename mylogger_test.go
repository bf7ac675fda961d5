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

// mylogger_test.go
package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	Log.Flush()
	var out, errOut bytes.Buffer
	Log.SetOutput(&out, &errOut)
	t.Cleanup(func() {
		Log.SetOutput(io.Discard, io.Discard)
	})
	return &out, &errOut
}

func TestLoggerSlots(t *testing.T) {
	out, _ := captureLog(t)
	Log.Push(1, "second %d\n", 1)
	Log.Push(0, "first\n")
	Log.Push(1, "second %d\n", 2)
	Log.Flush()
	assert.Equal(t, "first\nsecond 2\n", out.String())
	out.Reset()
	Log.Flush()
	assert.Empty(t, out.String())
}

func TestLoggerError(t *testing.T) {
	out, errOut := captureLog(t)
	Log.Error("bad %s\n", "thing")
	assert.Contains(t, errOut.String(), "bad thing")
	assert.Empty(t, out.String())
}

func TestLoggerVerbose(t *testing.T) {
	out, _ := captureLog(t)
	saved := config.VerbosityLevel
	defer func() { config.VerbosityLevel = saved }()

	config.VerbosityLevel = 0
	Log.Verbose(1, "hidden\n")
	assert.Empty(t, out.String())
	config.VerbosityLevel = 2
	Log.Verbose(1, "shown\n")
	assert.Equal(t, "shown\n", out.String())
}

func TestMiniLoggerMerge(t *testing.T) {
	out, _ := captureLog(t)
	mlog := CreateMiniLogger()
	Log.Merge(mlog, "Figure:\n")
	assert.Empty(t, out.String(), "preface goes only with content")

	mlog.Printf("line %d\n", 1)
	mlog.Push(0, "slot\n")
	assert.Equal(t, "line 1\n", mlog.String())
	Log.Merge(mlog, "Figure:\n")
	assert.Equal(t, "Figure:\nline 1\n", out.String())
	Log.Flush()
	assert.Equal(t, "Figure:\nline 1\nslot\n", out.String())

	// nil mini logger writes straight through
	var nilLog *MiniLogger
	nilLog.Printf("direct\n")
	assert.Contains(t, out.String(), "direct\n")
	assert.Empty(t, nilLog.String())
}
