// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package gotee

import (
	"log"

	"github.com/usbarmory/tamago/arm"

	"github.com/usbarmory/GoTEE/monitor"

	"github.com/usbarmory/GoTEE-compat/util"
)

// Run loads and executes the trusted applet until it exits.
func Run() (err error) {
	var ta *monitor.ExecCtx

	if ta, err = loadApplet(); err != nil {
		return
	}

	// flush any partial line left by the applet
	defer Sink.Flush()

	return run(ta)
}

func run(ctx *monitor.ExecCtx) (err error) {
	mode := arm.ModeName(int(ctx.SPSR) & 0x1f)
	ns := ctx.NonSecure()

	log.Printf("SM starting mode:%s sp:%#.8x pc:%#.8x ns:%v", mode, ctx.R13, ctx.R15, ns)

	err = ctx.Run()

	log.Printf("SM stopped mode:%s sp:%#.8x lr:%#.8x pc:%#.8x ns:%v err:%v", mode, ctx.R13, ctx.R14, ctx.R15, ns, err)

	if err != nil {
		pcLine, _ := util.PCToLine(uint64(ctx.R15))
		lrLine, _ := util.PCToLine(uint64(ctx.R14))

		if pcLine != "" || lrLine != "" {
			log.Printf("stack trace:\n  %s\n  %s", pcLine, lrLine)
		}
	}

	return
}
