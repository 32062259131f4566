/*
   sparcrun - load a flat guest image and run it to completion.

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
	"github.com/sparcv8/simcore/internal/memory"
	"github.com/sparcv8/simcore/internal/simconfig"
	"github.com/sparcv8/simcore/internal/simcore"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file (TOML)")
	optImage := getopt.StringLong("image", 'i', "", "Flat guest memory image")
	optEntry := getopt.Uint32Long("entry", 'e', 0, "Guest entry point")
	optLog := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Verbose logging")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	cfg := simconfig.Default()
	if *optConfig != "" {
		var err error
		cfg, err = simconfig.Load(*optConfig)
		if err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
	}
	if *optImage != "" {
		cfg.Image = *optImage
	}
	if *optEntry != 0 {
		cfg.EntryPoint = *optEntry
	}
	if *optDebug {
		cfg.Debug = true
	}

	var logFile *os.File
	if *optLog != "" {
		cfg.LogFile = *optLog
	}
	if cfg.LogFile != "" {
		var err error
		logFile, err = os.Create(cfg.LogFile)
		if err != nil {
			slog.Error("opening log file", "err", err)
			os.Exit(1)
		}
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := corelog.New(logFile, level, cfg.Debug)
	slog.SetDefault(logger)

	if cfg.Image == "" {
		slog.Error("no guest image specified")
		os.Exit(1)
	}
	image, err := os.ReadFile(cfg.Image)
	if err != nil {
		slog.Error("reading guest image", "err", err)
		os.Exit(1)
	}

	mem := memory.New(cfg.MemorySize)
	if err := mem.LoadBytes(0, image); err != nil {
		slog.Error("loading guest image", "err", err)
		os.Exit(1)
	}

	cores := make([]*simcore.Core, cfg.NumCores)
	for i := range cores {
		c := cpu.New(mem, i)
		c.InitGuest(cfg.EntryPoint)
		if t := c.SetProgArgs(getopt.Args()); t != nil {
			slog.Error("marshalling argv", "err", t.Error())
			os.Exit(t.ExitCode())
		}
		if cfg.CoreOverride(i).SleepWake {
			c.EnableWake()
		}
		cores[i] = simcore.New(c)
	}

	for _, c := range cores {
		go c.Start()
	}
	for _, c := range cores {
		c.Join()
		if t := c.Result(); t != nil {
			slog.Error("guest trapped", "err", t.Error())
			os.Exit(t.ExitCode())
		}
	}
}
