// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago

package console

import (
	"github.com/usbarmory/GoTEE/syscall"
)

// defaultCaller issues RPC requests to the Secure Monitor through system
// calls.
func defaultCaller() Caller {
	return CallerFunc(syscall.Call)
}
