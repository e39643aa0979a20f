// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package console

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbarmory/GoTEE-compat/compat"
	"github.com/usbarmory/GoTEE-compat/util"
)

type call struct {
	method string
	args   interface{}
}

type fakeCaller struct {
	sync.Mutex
	calls []call
	err   error
}

func (f *fakeCaller) Call(method string, args interface{}, _ interface{}) error {
	f.Lock()
	defer f.Unlock()

	f.calls = append(f.calls, call{method, args})

	return f.err
}

func TestBridgePrintOneCallPerPayload(t *testing.T) {
	f := &fakeCaller{}
	b := New(f)

	b.Print("hello")
	b.Print("")
	b.Printf("%d-%d\n", 1, 2)

	require.Len(t, f.calls, 3)

	for _, c := range f.calls {
		assert.Equal(t, PrintMethod, c.method)
	}

	assert.Equal(t, "hello", f.calls[0].args)
	assert.Equal(t, "", f.calls[1].args)
	assert.Equal(t, "1-2\n", f.calls[2].args)
}

func TestBridgeSwallowsErrors(t *testing.T) {
	f := &fakeCaller{err: errors.New("monitor unavailable")}
	b := New(f)

	assert.NotPanics(t, func() { b.Print("lost") })
	assert.Len(t, f.calls, 1)
}

func TestBridgeSatisfiesPrinter(t *testing.T) {
	var _ compat.Printer = &Bridge{}
}

func localBridge(t *testing.T) (*Bridge, *util.Sink, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	sink := util.NewSink(out)

	c, err := NewLocalCaller(&util.RPC{Sink: sink, Secure: true})
	require.NoError(t, err)

	t.Cleanup(func() { c.Close() })

	return New(c), sink, out
}

func TestBridgeReachesHost(t *testing.T) {
	b, sink, out := localBridge(t)

	b.Print("hello from the applet\n")
	assert.Equal(t, "hello from the applet\n", out.String())

	b.Print("partial")
	sink.Flush()
	assert.Equal(t, "hello from the applet\npartial", out.String())
}

func TestBridgeConcurrentPrint(t *testing.T) {
	var wg sync.WaitGroup

	b, _, out := localBridge(t)

	for i := 0; i < 4; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 25; j++ {
				b.Print("line\n")
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 100, strings.Count(out.String(), "line\n"))
}

func TestShimOverBridge(t *testing.T) {
	b, _, out := localBridge(t)

	rt := &compat.Shim{Printer: b}
	buf := make([]byte, 16)

	require.NoError(t, rt.Format(buf, "state %s\n", "Init"))
	rt.Print(compat.String(buf))

	assert.Equal(t, "state Init\n", out.String())
}

func TestLocalCallerRejectsInvalidReceiver(t *testing.T) {
	_, err := NewLocalCaller(struct{}{})
	require.Error(t, err)
}

func TestDefaultBridge(t *testing.T) {
	assert.NotPanics(t, func() {
		Print("")
		Printf("%s", "")
	})
}
