// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm

// Package mem defines the memory layout shared by the Secure Monitor and
// the trusted applet.
package mem

import (
	"github.com/usbarmory/tamago/dma"
)

const (
	// Secure Monitor
	SecureStart = 0x90000000
	SecureSize  = 0x05f00000 // 95MB

	// Secure Monitor DMA (relocated to avoid conflicts with the applet)
	SecureDMAStart = 0x95f00000
	SecureDMASize  = 0x00100000 // 1MB

	// Secure Monitor Applet
	AppletStart = 0x96000000
	AppletSize  = 0x02000000 // 32MB
)

// AppletStackOffset is the distance of the applet initial stack pointer from
// the end of its memory.
const AppletStackOffset = 0x100

var AppletRegion *dma.Region

// Init reserves the applet memory, it must be called once by the Secure
// Monitor before loading the applet.
func Init() {
	AppletRegion, _ = dma.NewRegion(AppletStart, AppletSize, false)
	AppletRegion.Reserve(AppletSize, 0)
}
