// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package gotee

import (
	"fmt"
	"log"

	"github.com/usbarmory/tamago/arm"
	"github.com/usbarmory/tamago/dma"
	"github.com/usbarmory/tamago/soc/nxp/imx6ul"

	"github.com/usbarmory/GoTEE/monitor"

	"github.com/usbarmory/GoTEE-compat/mem"
	"github.com/usbarmory/GoTEE-compat/util"

	"github.com/usbarmory/armory-boot/exec"
)

// TA is the trusted applet ELF image.
var TA []byte

func configureMMU(region *dma.Region) {
	start := uint32(region.Start())
	end := uint32(region.End())

	// grant user mode access to applet memory
	imx6ul.ARM.ConfigureMMU(start, end, 0, arm.MemoryRegion|arm.TTE_AP_011<<10)
}

// loadApplet loads a TamaGo unikernel as trusted applet.
func loadApplet() (ta *monitor.ExecCtx, err error) {
	image := &exec.ELFImage{
		Region: mem.AppletRegion,
		ELF:    TA,
	}

	configureMMU(image.Region)

	if err = image.Load(); err != nil {
		return
	}

	if ta, err = monitor.Load(image.Entry(), image.Region, true); err != nil {
		return nil, fmt.Errorf("SM could not load applet, %v", err)
	}

	log.Printf("SM loaded applet addr:%#x entry:%#x size:%d", ta.Memory.Start(), ta.R15, len(TA))

	// set applet as ELF debugging target
	util.SetDebugTarget(image.ELF)

	// register console bridge entry point (RPC.Print)
	if err = ta.Server.Register(&util.RPC{Sink: Sink, Secure: true}); err != nil {
		return nil, fmt.Errorf("SM could not register RPC receiver, %v", err)
	}

	// set stack pointer to the end of available memory
	ta.R13 = uint32(ta.Memory.End())

	// override default handler to improve logging
	ta.Handler = goHandler

	return
}
