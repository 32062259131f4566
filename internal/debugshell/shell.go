/*
   debugshell - interactive line-editing front end for the debugger hook.

   Copyright (c) 2026

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.

*/

// Package debugshell is a liner-backed REPL driving one core through
// internal/debughook: step, continue, inspect and set registers, read
// memory.
package debugshell

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/peterh/liner"

	"github.com/sparcv8/simcore/internal/debughook"
	"github.com/sparcv8/simcore/internal/simcore"
)

type cmdLine struct {
	line string
	pos  int
}

func (c *cmdLine) isEOL() bool { return c.pos >= len(c.line) }

func (c *cmdLine) skipSpace() {
	for !c.isEOL() && c.line[c.pos] == ' ' {
		c.pos++
	}
}

func (c *cmdLine) getWord() string {
	c.skipSpace()
	start := c.pos
	for !c.isEOL() && c.line[c.pos] != ' ' {
		c.pos++
	}
	return c.line[start:c.pos]
}

type cmd struct {
	name    string
	min     int
	process func(*cmdLine, *simcore.Core, *debughook.Hook) (bool, error)
}

var cmdList = []cmd{
	{name: "step", min: 1, process: cmdStep},
	{name: "continue", min: 1, process: cmdContinue},
	{name: "registers", min: 3, process: cmdRegisters},
	{name: "setreg", min: 3, process: cmdSetReg},
	{name: "memory", min: 3, process: cmdMemory},
	{name: "quit", min: 1, process: cmdQuit},
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var out []cmd
	for _, c := range cmdList {
		if len(name) >= c.min && len(name) <= len(c.name) && strings.HasPrefix(c.name, name) {
			out = append(out, c)
		}
	}
	return out
}

// ProcessCommand parses and runs one command line against core.
func ProcessCommand(line string, core *simcore.Core, hook *debughook.Hook) (bool, error) {
	cl := &cmdLine{line: line}
	name := cl.getWord()
	if name == "" {
		return false, nil
	}
	match := matchList(name)
	switch len(match) {
	case 0:
		return false, fmt.Errorf("command not found: %s", name)
	case 1:
		return match[0].process(cl, core, hook)
	default:
		return false, fmt.Errorf("ambiguous command: %s", name)
	}
}

// Run drives an interactive session against core until the user quits
// or aborts the prompt.
func Run(core *simcore.Core, hook *debughook.Hook) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("sparcdbg> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			slog.Error("reading command", "err", err)
			return
		}
		line.AppendHistory(input)

		quit, err := ProcessCommand(input, core, hook)
		if err != nil {
			fmt.Println("error: " + err.Error())
		}
		if quit {
			return
		}
	}
}
