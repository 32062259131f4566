package cpu

/* Trap - fatal-architectural-condition error type.

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

import "fmt"

// TrapCode enumerates the fatal conditions spec.md §7 assigns a process
// exit code to. Window overflow/underflow never produces a Trap: they
// are handled in-core by the spill/fill routines and never surface.
type TrapCode int

const (
	// TrapUnimplemented covers UNIMP and any opcode the dispatcher has
	// no routine for.
	TrapUnimplemented TrapCode = iota + 1
	// TrapInstruction covers explicit TRAP/Ticc encodings and integer
	// division by zero.
	TrapInstruction
	// TrapMemory covers a Port reporting out-of-bounds or unmapped
	// access; the Port contract leaves misaligned half/word access
	// undefined rather than requiring a dedicated trap code (see
	// internal/memio.Port), so unaligned accesses surface here too if a
	// Port implementation chooses to reject them.
	TrapMemory
)

// Trap is a fatal architectural condition. A Trap from inside the core
// always maps to a non-zero failure code; no guest exit syscall is
// handled in this repository.
type Trap struct {
	Code TrapCode
	PC   uint32
	Msg  string
}

func (t *Trap) Error() string {
	return fmt.Sprintf("trap %d at pc=%#x: %s", t.Code, t.PC, t.Msg)
}

// ExitCode maps a Trap to the process exit code spec.md §7 calls for:
// non-zero on any fatal condition.
func (t *Trap) ExitCode() int {
	if t == nil {
		return 0
	}
	return 1
}

func (cpu *CPU) trap(code TrapCode, msg string) *Trap {
	t := &Trap{Code: code, PC: cpu.pc, Msg: msg}
	cpu.stopped = true
	cpu.stopTrap = t
	return t
}
