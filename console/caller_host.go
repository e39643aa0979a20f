// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build !tamago

package console

import (
	"errors"
	"log"
	"os"

	"github.com/usbarmory/GoTEE-compat/util"
)

// Host is the monitor console serving the Default bridge on non-tamago
// builds, where applet code runs as an ordinary process.
var Host = util.NewSink(os.Stdout)

func defaultCaller() Caller {
	c, err := NewLocalCaller(&util.RPC{Sink: Host, Secure: true})

	if err != nil {
		log.Printf("console bridge unavailable, %v", err)

		return CallerFunc(func(string, interface{}, interface{}) error {
			return errors.New("console bridge unavailable")
		})
	}

	return c
}
