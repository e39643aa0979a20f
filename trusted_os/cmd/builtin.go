// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"io"
	"regexp"
	"runtime/debug"
	"runtime/pprof"

	"golang.org/x/term"

	"github.com/usbarmory/GoTEE-compat/util"
)

// Sink is the Secure Monitor console reached by the print command.
var Sink *util.Sink

func init() {
	for _, cmd := range []Cmd{
		{
			Name: "help",
			Help: "this help",
			Fn: func(term *term.Terminal, _ []string) (string, error) {
				return Help(term), nil
			},
		},
		{
			Name:    "exit, quit",
			Args:    1,
			Pattern: regexp.MustCompile(`^(exit|quit)$`),
			Help:    "close session",
			Fn: func(_ *term.Terminal, _ []string) (string, error) {
				return "logout", io.EOF
			},
		},
		{
			Name:    "stack",
			Args:    1,
			Pattern: regexp.MustCompile(`^stack(all)?$`),
			Syntax:  "(all)",
			Help:    "stack trace of current (or all) goroutine(s)",
			Fn:      stackCmd,
		},
		{
			Name:    "print",
			Args:    1,
			Pattern: regexp.MustCompile(`^print (.*)$`),
			Syntax:  "<text>",
			Help:    "emit text through the applet console entry point",
			Fn:      printCmd,
		},
	} {
		Add(cmd)
	}
}

func stackCmd(_ *term.Terminal, arg []string) (string, error) {
	if arg[0] == "" {
		return string(debug.Stack()), nil
	}

	buf := new(bytes.Buffer)
	pprof.Lookup("goroutine").WriteTo(buf, 1)

	return buf.String(), nil
}

// printCmd delivers text as the console bridge would, tagged as Non-secure
// to tell it apart from applet output.
func printCmd(_ *term.Terminal, arg []string) (string, error) {
	rpc := &util.RPC{Sink: Sink}

	if err := rpc.Print(arg[0]+"\n", nil); err != nil {
		return "", err
	}

	return "", nil
}
