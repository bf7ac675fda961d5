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

// Central log (stdout/stderr) of the program
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/muesli/termenv"
)

type MyLogger struct {
	// Writing to the same slot allows to clobber stuff so that we don't see the
	// same thing written over and over again
	slots []string
	// Mutex is used to order writes to stdin and stderr, as well as Sync call
	mu sync.Mutex
	// Error output, colored when stderr is a terminal
	errOut *termenv.Output
}

// Logs specific to one figure. Their output is not forwarded to the stdout,
// but is instead buffered until merged into main log of MyLogger type, so
// that trace of a figure is printed in one piece
type MiniLogger struct {
	buf   bytes.Buffer
	slots []string
}

func CreateLogger() *MyLogger {
	log := new(MyLogger)
	log.errOut = termenv.NewOutput(os.Stderr)
	return log
}

var Log = CreateLogger()

var syslog = log.New(os.Stdout, "", 0)
var errlog = log.New(os.Stderr, "", 0)

// SetOutput redirects both stdout and stderr logs, tests use it to silence
// the program. Colors are turned off for writers that aren't terminals
func (log *MyLogger) SetOutput(stdout, stderr io.Writer) {
	log.mu.Lock()
	defer log.mu.Unlock()
	syslog.SetOutput(stdout)
	errlog.SetOutput(stderr)
	log.errOut = termenv.NewOutput(stderr)
}

// Your generic printf to let user see things
func (log *MyLogger) Printf(s string, a ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	syslog.Printf(s, a...)
}

// As generic as printf, but writes to stderr instead of stdout
// Does NOT interrupt execution of the program
func (log *MyLogger) Error(s string, a ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	msg := fmt.Sprintf(s, a...)
	if log.errOut != nil && log.errOut.Profile != termenv.Ascii {
		msg = log.errOut.String(msg).Foreground(log.errOut.Color("1")).String()
	}
	errlog.Print(msg)
}

// For advanced users or users that are curious, or programmers, there is
// stuff they might want to see but only when they can really bother to spend
// time reading it
func (log *MyLogger) Verbose(verbosityLevel int, s string, a ...interface{}) {
	if verbosityLevel <= config.VerbosityLevel {
		log.mu.Lock()
		defer log.mu.Unlock()
		syslog.Printf(s, a...)
	}
}

// Panicking is not a good thing, but at least we can now use formatted printing
// for it
func (log *MyLogger) Panic(s string, a ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	panic(fmt.Sprintf(s, a...))
}

// Writes to the slot, clobbering whatever was there before us in that same slot
// Used for progress of watch mode, where only the latest state is worth
// showing
func (log *MyLogger) Push(slotNumber int, s string, a ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	for slotNumber >= len(log.slots) {
		log.slots = append(log.slots, "")
	}
	log.slots[slotNumber] = fmt.Sprintf(s, a...)
}

// Now that slots have been written over multiple times, time to see what was
// written to begin with
func (log *MyLogger) Flush() {
	log.mu.Lock()
	defer log.mu.Unlock()
	for _, slot := range log.slots {
		syslog.Print(slot)
	}
	log.slots = nil
}

// Sync is used to wait until all messages are written to the output
func (log *MyLogger) Sync() {
	log.mu.Lock()
	log.mu.Unlock()
}

func (log *MyLogger) Merge(mlog *MiniLogger, preface string) {
	if mlog == nil {
		return
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	content := mlog.buf.String()
	if len(preface) > 0 && len(content) > 0 {
		syslog.Print(preface)
	}
	if len(content) > 0 {
		syslog.Print(content)
	}
	if len(mlog.slots) > 0 {
		log.slots = append(log.slots, mlog.slots...)
	}
}

func (mlog *MiniLogger) Printf(s string, a ...interface{}) {
	if mlog == nil {
		Log.Printf(s, a...)
		return
	}
	mlog.buf.WriteString(fmt.Sprintf(s, a...))
}

func (mlog *MiniLogger) Verbose(verbosityLevel int, s string, a ...interface{}) {
	if mlog == nil {
		Log.Verbose(verbosityLevel, s, a...)
		return
	}
	if verbosityLevel <= config.VerbosityLevel {
		mlog.buf.WriteString(fmt.Sprintf(s, a...))
	}
}

func (mlog *MiniLogger) Push(slotNumber int, s string, a ...interface{}) {
	if mlog == nil {
		Log.Push(slotNumber, s, a...)
		return
	}
	for slotNumber >= len(mlog.slots) {
		mlog.slots = append(mlog.slots, "")
	}
	mlog.slots[slotNumber] = fmt.Sprintf(s, a...)
}

// String returns what was buffered so far
func (mlog *MiniLogger) String() string {
	if mlog == nil {
		return ""
	}
	return mlog.buf.String()
}

func CreateMiniLogger() *MiniLogger {
	return new(MiniLogger)
}
