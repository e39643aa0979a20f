// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package cmd

import (
	"golang.org/x/term"

	"github.com/usbarmory/GoTEE-compat/trusted_os/internal"
)

func init() {
	Add(Cmd{
		Name: "run",
		Help: "load and run the trusted applet",
		Fn:   runCmd,
	})
}

func runCmd(_ *term.Terminal, _ []string) (res string, err error) {
	return "", gotee.Run()
}
