// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package cmd implements the Secure Monitor console commands.
package cmd

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"text/tabwriter"

	"golang.org/x/term"
)

// Banner is the console welcome banner.
var Banner string

// CmdFn represents a command handler.
type CmdFn func(term *term.Terminal, arg []string) (res string, err error)

// Cmd represents a console command.
type Cmd struct {
	Name    string
	Args    int
	Pattern *regexp.Regexp
	Syntax  string
	Help    string
	Fn      CmdFn
}

var cmds = make(map[string]*Cmd)

// Add registers a command, commands without a Pattern match their Name.
func Add(cmd Cmd) {
	if cmd.Pattern == nil {
		cmd.Pattern = regexp.MustCompile(`^` + regexp.QuoteMeta(cmd.Name) + `$`)
	}

	cmds[cmd.Name] = &cmd
}

// Help returns the list of registered commands.
func Help(term *term.Terminal) string {
	var help bytes.Buffer
	var names []string

	for name := range cmds {
		names = append(names, name)
	}

	sort.Strings(names)

	t := tabwriter.NewWriter(&help, 16, 8, 0, '\t', tabwriter.TabIndent)

	for _, name := range names {
		cmd := cmds[name]
		_, _ = fmt.Fprintf(t, "%s\t%s\t # %s\n", cmd.Name, cmd.Syntax, cmd.Help)
	}

	_ = t.Flush()

	return help.String()
}

// Handle executes the command matching line.
func Handle(term *term.Terminal, line string) (res string, err error) {
	for _, cmd := range cmds {
		m := cmd.Pattern.FindStringSubmatch(line)

		if m == nil || len(m)-1 != cmd.Args {
			continue
		}

		return cmd.Fn(term, m[1:])
	}

	return "unknown command, type `help`", nil
}

// Handler is the console line handler, it writes command results to the
// terminal.
func Handler(term *term.Terminal, line string) (err error) {
	res, err := Handle(term, line)

	if len(res) > 0 {
		fmt.Fprintln(term, res)
	}

	return
}
