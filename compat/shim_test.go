// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	lines []string
}

func (r *recorder) Print(s string) {
	r.lines = append(r.lines, s)
}

func TestShimRelaxed(t *testing.T) {
	var rt Runtime = &Shim{}

	dst := make([]byte, 5)

	require.NoError(t, rt.Copy(dst, "abcdefgh"))
	assert.Equal(t, "abcd", String(dst))

	dst = make([]byte, 3)

	require.NoError(t, rt.Format(dst, "%d-%d", 11, 22))
	assert.Equal(t, "11", String(dst))

	// no Printer
	rt.Print("dropped")
}

func TestShimStrict(t *testing.T) {
	var rt Runtime = &Shim{Strict: true}

	dst := make([]byte, 5)

	require.ErrorIs(t, rt.Copy(dst, "abcdefgh"), ErrTruncated)
	require.NoError(t, rt.Copy(dst, "abcd"))
	assert.Equal(t, "abcd", String(dst))

	dst = make([]byte, 10)

	require.NoError(t, rt.Format(dst, "%d-%d", 1, 2))
	assert.Equal(t, "1-2", String(dst))
	require.ErrorIs(t, rt.Format(dst[:3], "%d-%d", 11, 22), ErrTruncated)
}

func TestShimPrint(t *testing.T) {
	r := &recorder{}
	rt := &Shim{Printer: r}

	rt.Print("hello")
	rt.Print("")
	rt.Print("world\n")

	assert.Equal(t, []string{"hello", "", "world\n"}, r.lines)
}
