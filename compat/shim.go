// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package compat

// Printer represents a console reachable from the trusted applet, see
// console.Bridge.
type Printer interface {
	Print(s string)
}

// Runtime represents the string and console surface available to ported
// trusted code.
type Runtime interface {
	// Copy copies src into dst (strcpy_s).
	Copy(dst []byte, src string) error
	// Format renders format with args into dst (sprintf_s).
	Format(dst []byte, format string, args ...interface{}) error
	// Print emits s on the host console (prints).
	Print(s string)
}

// Shim implements Runtime over the functions of this package.
type Shim struct {
	// Printer is the console output bridge, a nil Printer discards output
	Printer Printer
	// Strict selects fail-on-overflow semantics, when false truncation is
	// silent and Copy and Format never return an error
	Strict bool
}

// Copy copies src into dst.
func (s *Shim) Copy(dst []byte, src string) error {
	if s.Strict {
		return StrictCopy(dst, src)
	}

	Copy(dst, src)

	return nil
}

// Format renders format with args into dst.
func (s *Shim) Format(dst []byte, format string, args ...interface{}) (err error) {
	if s.Strict {
		_, err = StrictFormat(dst, format, args...)
		return
	}

	Format(dst, format, args...)

	return
}

// Print forwards str to the Printer, if any.
func (s *Shim) Print(str string) {
	if s.Printer != nil {
		s.Printer.Print(str)
	}
}
