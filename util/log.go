// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package util

import (
	"bytes"
	"io"
	"sync"

	"golang.org/x/term"
)

const outputLimit = 1024
const flushChr = 0x0a // \n

// Sink collects console output from execution contexts, buffering it per
// security state to avoid interleaved lines, and writes it to the serial
// console or, when attached, to a remote terminal.
type Sink struct {
	sync.Mutex

	out  io.Writer
	term *term.Terminal

	secure    bytes.Buffer
	nonSecure bytes.Buffer
}

// NewSink returns a Sink writing to out.
func NewSink(out io.Writer) *Sink {
	return &Sink{out: out}
}

// Attach redirects output to t, a nil t restores the serial console.
func (s *Sink) Attach(t *term.Terminal) {
	s.Lock()
	defer s.Unlock()

	s.term = t
}

// Detach restores the serial console if output is still redirected to t.
func (s *Sink) Detach(t *term.Terminal) {
	s.Lock()
	defer s.Unlock()

	if s.term == t {
		s.term = nil
	}
}

func (s *Sink) buffer(secure bool) *bytes.Buffer {
	if secure {
		return &s.secure
	}

	return &s.nonSecure
}

func (s *Sink) flush(buf *bytes.Buffer, secure bool) {
	if buf.Len() == 0 {
		return
	}

	if s.term == nil {
		s.out.Write(buf.Bytes())
		buf.Reset()
		return
	}

	color := s.term.Escape.Red

	if secure {
		color = s.term.Escape.Green
	}

	s.term.Write(color)
	s.term.Write(buf.Bytes())
	s.term.Write(s.term.Escape.Reset)

	buf.Reset()
}

func (s *Sink) writeByte(c byte, secure bool) {
	buf := s.buffer(secure)
	buf.WriteByte(c)

	if c == flushChr || buf.Len() > outputLimit {
		s.flush(buf, secure)
	}
}

// WriteByte buffers a single character, as received from a SYS_WRITE
// system call.
func (s *Sink) WriteByte(c byte, secure bool) {
	s.Lock()
	defer s.Unlock()

	s.writeByte(c, secure)
}

// Print buffers a whole payload, as received from a console bridge RPC.
func (s *Sink) Print(payload string, secure bool) {
	s.Lock()
	defer s.Unlock()

	for i := 0; i < len(payload); i++ {
		s.writeByte(payload[i], secure)
	}
}

// Flush writes out any partial line held for either security state.
func (s *Sink) Flush() {
	s.Lock()
	defer s.Unlock()

	s.flush(&s.secure, true)
	s.flush(&s.nonSecure, false)
}
