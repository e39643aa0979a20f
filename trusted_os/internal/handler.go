// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package gotee

import (
	"fmt"
	"log"
	"os"

	"github.com/usbarmory/tamago/arm"

	"github.com/usbarmory/GoTEE/monitor"
	"github.com/usbarmory/GoTEE/syscall"

	"github.com/usbarmory/GoTEE-compat/util"
)

// Sink is the Secure Monitor console, shared by the SYS_WRITE handler and
// the applet console bridge RPC receiver.
var Sink = util.NewSink(os.Stdout)

func goHandler(ctx *monitor.ExecCtx) (err error) {
	if ctx.ExceptionVector != arm.SUPERVISOR {
		return fmt.Errorf("exception %x", ctx.ExceptionVector)
	}

	switch ctx.A0() {
	case syscall.SYS_WRITE:
		// Override write syscall to avoid interleaved logs and to log
		// simultaneously to remote terminal and serial console.
		Sink.WriteByte(byte(ctx.A1()), !ctx.NonSecure())
	case syscall.SYS_EXIT:
		ctx.Stop()
	default:
		if ctx.NonSecure() {
			log.Print(ctx)
			return fmt.Errorf("unexpected monitor call %d", ctx.A0())
		}

		return monitor.SecureHandler(ctx)
	}

	return
}
