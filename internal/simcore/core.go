/*
   simcore - the goroutine-driven run loop wrapping one simulated core.

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

// Package simcore drives one internal/cpu.CPU on its own goroutine, the
// way a hosted simulator needs to when several cores (and a debugger or
// telnet front end) share one process.
package simcore

import (
	"log/slog"
	"sync"
	"time"

	"github.com/sparcv8/simcore/internal/cpu"
	"github.com/sparcv8/simcore/internal/simevent"
)

// Core owns one CPU plus the bookkeeping needed to run it cooperatively
// alongside other goroutines: a done channel for shutdown, a wake
// channel external actors use to post interrupts, and an event
// scheduler for anything that needs to fire after N simulated steps
// (a timer device, a scripted interrupt injection).
type Core struct {
	CPU *cpu.CPU

	Events *simevent.Scheduler

	wg      sync.WaitGroup
	done    chan struct{}
	wake    chan struct{}
	running bool

	result *cpu.Trap
}

// New wraps c in a Core ready to Start.
func New(c *cpu.CPU) *Core {
	return &Core{
		CPU:    c,
		Events: simevent.New(),
		done:   make(chan struct{}),
		wake:   make(chan struct{}, 1),
	}
}

// Start runs the core until Stop is called or the CPU traps, blocking
// the calling goroutine. Intended to be invoked with `go core.Start()`.
func (core *Core) Start() {
	core.wg.Add(1)
	defer core.wg.Done()
	core.running = true

	for {
		select {
		case <-core.done:
			slog.Info("core shutdown", "pc", core.CPU.PC())
			return
		case <-core.wake:
			core.CPU.SignalInterrupt()
		default:
		}

		if !core.running {
			continue
		}

		if t := core.CPU.Step(); t != nil {
			core.result = t
			slog.Error("core trapped", "err", t.Error())
			return
		}
		core.Events.Advance(1)

		if stopped, trap := core.CPU.Stopped(); stopped {
			core.result = trap
			return
		}
	}
}

// Join blocks until the run loop exits on its own (a trap, or an
// explicit Stopped() request from guest code), without requesting
// shutdown itself. Use this to let a core run to completion; use Stop
// to cut it short from outside.
func (core *Core) Join() {
	core.wg.Wait()
}

// Stop requests shutdown and blocks until the run loop has exited, or
// one second has elapsed.
func (core *Core) Stop() {
	close(core.done)
	done := make(chan struct{})
	go func() {
		core.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		slog.Warn("timed out waiting for core to stop")
	}
}

// Wake posts an interrupt to the core, waking it if the optional
// sleep/wake discipline is enabled.
func (core *Core) Wake() {
	select {
	case core.wake <- struct{}{}:
	default:
	}
}

// Result returns the Trap that ended the run loop, if any.
func (core *Core) Result() *cpu.Trap { return core.result }
