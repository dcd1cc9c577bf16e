// SPDX-License-Identifier: GPL-2.0-or-later

// Package conlog is the single logging front end of the viewer.
// The sinks are pluggable so tests and the console can capture output.
package conlog

import (
	"log"
	"sync/atomic"
)

type PrintFunc func(string, ...any)

var (
	p     PrintFunc = log.Printf
	sp    PrintFunc = log.Printf
	debug atomic.Bool
)

func SetPrintf(f PrintFunc) {
	p = f
}

func SetSafePrintf(f PrintFunc) {
	sp = f
}

// SetDebug toggles Debugf output. It is driven by the developer cvar.
func SetDebug(on bool) {
	debug.Store(on)
}

func Printf(format string, v ...any) {
	p(format, v...)
}

// SafePrintf is used for listings that may be printed while the console is
// drawing.
func SafePrintf(format string, v ...any) {
	sp(format, v...)
}

func Debugf(format string, v ...any) {
	if !debug.Load() {
		return
	}
	p(format, v...)
}
