// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package util

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

func TestSinkFlushesOnNewline(t *testing.T) {
	var out bytes.Buffer
	s := NewSink(&out)

	for _, c := range []byte("hello") {
		s.WriteByte(c, true)
	}

	assert.Empty(t, out.String())

	s.WriteByte('\n', true)
	assert.Equal(t, "hello\n", out.String())
}

func TestSinkFlushesOnLimit(t *testing.T) {
	var out bytes.Buffer
	s := NewSink(&out)

	s.Print(strings.Repeat("x", outputLimit), false)
	assert.Empty(t, out.String())

	s.Print("y", false)
	assert.Equal(t, outputLimit+1, out.Len())
}

func TestSinkSeparatesSecurityStates(t *testing.T) {
	var out bytes.Buffer
	s := NewSink(&out)

	s.Print("secure ", true)
	s.Print("normal ", false)
	s.Print("line\n", true)
	s.Print("line\n", false)

	assert.Equal(t, "secure line\nnormal line\n", out.String())
}

func TestSinkFlush(t *testing.T) {
	var out bytes.Buffer
	s := NewSink(&out)

	s.Print("partial", true)
	s.Flush()
	assert.Equal(t, "partial", out.String())

	s.Flush()
	assert.Equal(t, "partial", out.String())
}

func TestSinkConcurrentLines(t *testing.T) {
	var out bytes.Buffer
	var wg sync.WaitGroup

	s := NewSink(&out)

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				s.Print("abcdef\n", true)
			}
		}()
	}

	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 800)

	for _, l := range lines {
		require.Equal(t, "abcdef", l)
	}
}

func TestRPCPrint(t *testing.T) {
	var out bytes.Buffer

	r := &RPC{Sink: NewSink(&out), Secure: true}

	require.NoError(t, r.Print("hello\n", nil))
	assert.Equal(t, "hello\n", out.String())

	require.NoError(t, (&RPC{}).Print("discarded\n", nil))
}

func TestPCToLineWithoutTarget(t *testing.T) {
	SetDebugTarget(nil)

	_, err := PCToLine(0x1000)
	require.Error(t, err)

	SetDebugTarget([]byte("not an elf"))

	_, err = PCToLine(0x1000)
	require.Error(t, err)
}

func TestSinkDetachOnlyOwnTerminal(t *testing.T) {
	var serial, remote bytes.Buffer

	rw := struct {
		io.Reader
		io.Writer
	}{strings.NewReader(""), &remote}

	s := NewSink(&serial)
	current := term.NewTerminal(rw, "")
	stale := term.NewTerminal(rw, "")

	s.Attach(current)
	s.Detach(stale)

	s.Print("remote\n", false)
	assert.Contains(t, remote.String(), "remote")
	assert.Empty(t, serial.String())

	s.Detach(current)

	s.Print("serial\n", false)
	assert.Equal(t, "serial\n", serial.String())
}
