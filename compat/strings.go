// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package compat provides bounded, NUL terminated string primitives for
// code ported to GoTEE trusted applets from environments exposing the
// strcpy_s/sprintf_s family.
//
// The destination capacity is always len(dst), callers declaring a smaller
// capacity pass dst[:n]. No function in this package writes beyond it.
package compat

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTruncated is returned by the strict variants when the result does
	// not fit the destination including its terminator.
	ErrTruncated = errors.New("compat: destination too small")
	// ErrNoSpace is returned by the strict variants on a zero capacity
	// destination.
	ErrNoSpace = errors.New("compat: zero capacity destination")
)

// cstring returns s up to its first NUL byte.
func cstring(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}

	return s
}

// store writes s into dst truncating it to len(dst)-1 bytes, terminates it
// and zeroes the remainder of dst.
func store(dst []byte, s string) (n int) {
	if len(dst) == 0 {
		return
	}

	n = copy(dst[:len(dst)-1], s)

	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}

	return
}

// Copy copies src into dst. The result is silently truncated to
// len(dst)-1 bytes and always NUL terminated when len(dst) > 0.
func Copy(dst []byte, src string) {
	store(dst, cstring(src))
}

// Format renders format with args into dst, with the same truncation and
// termination rules of Copy.
func Format(dst []byte, format string, args ...interface{}) {
	store(dst, cstring(fmt.Sprintf(format, args...)))
}

// StrictCopy copies src into dst failing, rather than truncating, when src
// and its terminator do not fit. On error dst is left holding an empty
// string.
func StrictCopy(dst []byte, src string) (err error) {
	_, err = strictStore(dst, cstring(src))
	return
}

// StrictFormat renders format with args into dst and returns the number of
// bytes written, excluding the terminator. On error dst is left holding an
// empty string.
func StrictFormat(dst []byte, format string, args ...interface{}) (n int, err error) {
	return strictStore(dst, cstring(fmt.Sprintf(format, args...)))
}

func strictStore(dst []byte, s string) (int, error) {
	if len(dst) == 0 {
		return 0, ErrNoSpace
	}

	if len(s) >= len(dst) {
		dst[0] = 0
		return 0, ErrTruncated
	}

	return store(dst, s), nil
}

// String returns the string held in b, up to its first NUL byte or len(b).
func String(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}

	return string(b)
}
