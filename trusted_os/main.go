// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

package main

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"
	_ "unsafe"

	usbarmory "github.com/usbarmory/tamago/board/usbarmory/mk2"
	"github.com/usbarmory/tamago/dma"
	"github.com/usbarmory/tamago/soc/nxp/imx6ul"

	"github.com/usbarmory/imx-usbnet"

	"github.com/usbarmory/GoTEE-compat/mem"
	"github.com/usbarmory/GoTEE-compat/trusted_os/cmd"
	"github.com/usbarmory/GoTEE-compat/trusted_os/internal"
	"github.com/usbarmory/GoTEE-compat/util"
)

const (
	sshPort = 22
	IP      = "10.0.0.1"
	MAC     = "1a:55:89:a2:69:41"
	hostMAC = "1a:55:89:a2:69:42"
)

// This program embeds the Trusted Applet ELF binary within the Trusted OS
// executable, using Go embed package.

//go:embed assets/trusted_applet.elf
var taELF []byte

//go:linkname ramStart runtime.ramStart
var ramStart uint32 = mem.SecureStart

//go:linkname ramSize runtime.ramSize
var ramSize uint32 = mem.SecureSize

func init() {
	log.SetFlags(log.Ltime)
	log.SetOutput(os.Stdout)

	mem.Init()

	// Move DMA region to prevent applet access.
	dma.Init(mem.SecureDMAStart, mem.SecureDMASize)

	if imx6ul.Native {
		imx6ul.SetARMFreq(900)

		debugConsole, _ := usbarmory.DetectDebugAccessory(250 * time.Millisecond)
		<-debugConsole
	}

	cmd.Banner = fmt.Sprintf("%s/%s (%s) • TEE security monitor (Secure World system/monitor)", runtime.GOOS, runtime.GOARCH, runtime.Version())
	log.Print(cmd.Banner)

	gotee.TA = taELF
	cmd.Sink = gotee.Sink
}

func main() {
	defer log.Printf("SM says goodbye")

	if !imx6ul.Native {
		if err := gotee.Run(); err != nil {
			log.Fatal(err)
		}

		return
	}

	iface, err := usbnet.Init(IP, MAC, hostMAC, 1)

	if err != nil {
		log.Fatalf("SM could not initialize USB networking, %v", err)
	}

	iface.EnableICMP()

	listener, err := iface.ListenerTCP4(sshPort)

	if err != nil {
		log.Fatalf("SM could not initialize SSH listener, %v", err)
	}

	console := &util.Console{
		Banner:   cmd.Banner,
		Help:     cmd.Help,
		Handler:  cmd.Handler,
		Listener: listener,
		Sink:     gotee.Sink,
	}

	if err = console.Start(); err != nil {
		log.Fatalf("SM could not initialize SSH server, %v", err)
	}

	usbarmory.USB1.Init()
	usbarmory.USB1.DeviceMode()
	usbarmory.USB1.Reset()

	// never returns
	usbarmory.USB1.Start(iface.NIC.Device)
}
