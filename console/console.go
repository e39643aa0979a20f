// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package console implements the console output bridge of trusted applets,
// forwarding print requests to the Secure Monitor with a single RPC over
// the GoTEE system call interface.
//
// Payloads become visible to code the applet does not control, secret
// material must never be printed.
package console

import (
	"fmt"
	"sync"
)

// PrintMethod is the RPC method name of the host-side print entry point.
const PrintMethod = "RPC.Print"

// Caller represents an RPC transport crossing the trust boundary.
type Caller interface {
	Call(serviceMethod string, args interface{}, reply interface{}) error
}

// CallerFunc adapts an ordinary function to the Caller interface.
type CallerFunc func(serviceMethod string, args interface{}, reply interface{}) error

// Call invokes f.
func (f CallerFunc) Call(serviceMethod string, args interface{}, reply interface{}) error {
	return f(serviceMethod, args, reply)
}

// Bridge forwards print requests over a Caller. A zero Bridge, with no
// Caller, discards its input.
type Bridge struct {
	sync.Mutex

	caller Caller
}

// New returns a Bridge over c.
func New(c Caller) *Bridge {
	return &Bridge{caller: c}
}

// Print emits s on the host console. The call is synchronous but its
// outcome is not reported, transport failures are owned by the runtime.
//
// Payloads exceeding a single monitor request are split in ordered
// PrintMethod requests, concurrent payloads are never interleaved.
func (b *Bridge) Print(s string) {
	if b.caller == nil {
		return
	}

	// the monitor holds a single pending response per context
	b.Lock()
	defer b.Unlock()

	for _, chunk := range chunks(s, MaxChunkSize) {
		_ = b.caller.Call(PrintMethod, chunk, nil)
	}
}

// Printf formats according to a format specifier and emits the result on
// the host console.
func (b *Bridge) Printf(format string, args ...interface{}) {
	b.Print(fmt.Sprintf(format, args...))
}

// Default is the Bridge over the build target transport.
var Default = New(defaultCaller())

// Print emits s on the host console through the Default bridge.
func Print(s string) {
	Default.Print(s)
}

// Printf emits a formatted string through the Default bridge.
func Printf(format string, args ...interface{}) {
	Default.Printf(format, args...)
}
