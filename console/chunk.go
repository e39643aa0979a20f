// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package console

import (
	"unicode/utf8"
)

// MaxRequestSize is the largest JSON-RPC request the Secure Monitor can
// decode, it must be delivered within the first read of its JSON decoder.
const MaxRequestSize = 512

// requestOverhead bounds the encoding of a PrintMethod request around its
// string argument:
//
//	{"method":"RPC.Print","params":[<arg>],"id":<uint64>}\n
const requestOverhead = 64

// MaxChunkSize is the largest JSON encoded argument of a single PrintMethod
// request.
const MaxChunkSize = MaxRequestSize - requestOverhead

// encodedLen returns the size of r, decoded from size input bytes, within a
// JSON string as written by encoding/json with HTML escaping.
func encodedLen(r rune, size int) int {
	switch {
	case r == utf8.RuneError && size == 1:
		// invalid UTF-8, replaced with \ufffd
		return 6
	case r == '"' || r == '\\' || r == '\n' || r == '\r' || r == '\t':
		return 2
	case r < 0x20 || r == '<' || r == '>' || r == '&' || r == '\u2028' || r == '\u2029':
		return 6
	default:
		return size
	}
}

// chunks splits s, on rune boundaries, in parts whose JSON encoding does not
// exceed max bytes including quotes.
func chunks(s string, max int) (parts []string) {
	start := 0
	n := 2

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		l := encodedLen(r, size)

		if n+l > max && i > start {
			parts = append(parts, s[start:i])
			start = i
			n = 2
		}

		n += l
		i += size
	}

	return append(parts, s[start:])
}
