/*
   sparcdbg - interactive debugger front end.

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

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/sparcv8/simcore/internal/corelog"
	"github.com/sparcv8/simcore/internal/cpu"
	"github.com/sparcv8/simcore/internal/debughook"
	"github.com/sparcv8/simcore/internal/debugshell"
	"github.com/sparcv8/simcore/internal/memory"
	"github.com/sparcv8/simcore/internal/simconfig"
	"github.com/sparcv8/simcore/internal/simcore"
)

func main() {
	optImage := getopt.StringLong("image", 'i', "", "Flat guest memory image")
	optEntry := getopt.Uint32Long("entry", 'e', 0, "Guest entry point")
	optMemSize := getopt.Uint32Long("memsize", 'm', simconfig.Default().MemorySize, "Guest memory size in bytes")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	slog.SetDefault(corelog.New(os.Stderr, slog.LevelInfo, false))

	mem := memory.New(*optMemSize)
	if *optImage != "" {
		image, err := os.ReadFile(*optImage)
		if err != nil {
			slog.Error("reading guest image", "err", err)
			os.Exit(1)
		}
		if err := mem.LoadBytes(0, image); err != nil {
			slog.Error("loading guest image", "err", err)
			os.Exit(1)
		}
	}

	c := cpu.New(mem, 0)
	c.InitGuest(*optEntry)

	core := simcore.New(c)
	hook := debughook.New(c)
	debugshell.Run(core, hook)
}
