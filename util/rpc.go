// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package util

// RPC represents the receiver for applet <--> monitor RPC over system
// calls.
type RPC struct {
	// Sink receives console bridge payloads
	Sink *Sink
	// Secure tags payloads as originating from Secure World
	Secure bool
}

// Print emits the payload on the monitor console, it is the host-side
// entry point of the applet console bridge (RPC.Print).
func (r *RPC) Print(payload string, _ *bool) error {
	if r.Sink != nil {
		r.Sink.Print(payload, r.Secure)
	}

	return nil
}
