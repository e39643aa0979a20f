// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package main

import (
	"log"
	"os"
	"runtime"
	"runtime/goos"

	"github.com/usbarmory/GoTEE/applet"

	"github.com/usbarmory/GoTEE-compat/compat"
	"github.com/usbarmory/GoTEE-compat/console"
)

// fixed size records, as laid out by the ported trusted code
const (
	nameSize  = 16
	traceSize = 64
)

type transition struct {
	machine [nameSize]byte
	state   [nameSize]byte
	trace   [traceSize]byte
}

func init() {
	log.SetFlags(log.Ltime)
	log.SetOutput(os.Stdout)

	// yield to monitor (w/ err != nil) on runtime panic
	goos.Exit = applet.Crash
}

func record(rt compat.Runtime, machine string, state string, event int) (t *transition, err error) {
	t = &transition{}

	if err = rt.Copy(t.machine[:], machine); err != nil {
		return
	}

	if err = rt.Copy(t.state[:], state); err != nil {
		return
	}

	err = rt.Format(t.trace[:], "%s enters %s on event %d\n", compat.String(t.machine[:]), compat.String(t.state[:]), event)

	return
}

func run(rt compat.Runtime, tag string) {
	transitions := []struct {
		machine string
		state   string
		event   int
	}{
		{"Client", "Init", 1},
		{"Server", "WaitForRequest", 2},
		{"CoordinatorMachine", "Done", 1024},
	}

	for _, tr := range transitions {
		t, err := record(rt, tr.machine, tr.state, tr.event)

		if err != nil {
			log.Printf("applet %s record %s/%s failed: %v", tag, tr.machine, tr.state, err)
			continue
		}

		rt.Print(compat.String(t.trace[:]))
	}
}

func main() {
	log.Printf("%s/%s (%s) • TEE user applet", runtime.GOOS, runtime.GOARCH, runtime.Version())

	// silent truncation
	run(&compat.Shim{Printer: console.Default}, "relaxed")

	// fail-on-overflow
	run(&compat.Shim{Printer: console.Default, Strict: true}, "strict")

	console.Printf("applet says goodbye\n")

	// terminate applet
	applet.Exit()
}
