// Copyright 2022 The Armored Witness OS authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"bytes"
	"debug/elf"
	"debug/gosym"
	"errors"
	"fmt"
	"sync"
)

var debugTarget struct {
	sync.Mutex
	elf []byte
	tab *gosym.Table
}

// SetDebugTarget sets the ELF image used to symbolize applet faults.
func SetDebugTarget(buf []byte) {
	debugTarget.Lock()
	defer debugTarget.Unlock()

	debugTarget.elf = buf
	debugTarget.tab = nil
}

func goSymTable(buf []byte) (symTable *gosym.Table, err error) {
	exe, err := elf.NewFile(bytes.NewReader(buf))

	if err != nil {
		return
	}

	text := exe.Section(".text")
	pcln := exe.Section(".gopclntab")

	if text == nil || pcln == nil {
		return nil, errors.New("missing Go symbol sections")
	}

	lineTableData, err := pcln.Data()

	if err != nil {
		return
	}

	lineTable := gosym.NewLineTable(lineTableData, text.Addr)

	return gosym.NewTable(nil, lineTable)
}

// PCToLine resolves a program counter of the debug target to its source
// file and line.
func PCToLine(pc uint64) (s string, err error) {
	debugTarget.Lock()
	defer debugTarget.Unlock()

	if debugTarget.elf == nil {
		return "", errors.New("no debug target")
	}

	if debugTarget.tab == nil {
		if debugTarget.tab, err = goSymTable(debugTarget.elf); err != nil {
			return
		}
	}

	file, line, fn := debugTarget.tab.PCToLine(pc)

	if fn == nil {
		return "", fmt.Errorf("pc %#x not found", pc)
	}

	return fmt.Sprintf("%s:%d", file, line), nil
}
