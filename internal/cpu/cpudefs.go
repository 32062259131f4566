package cpu

/* CPU definitions for the SPARC-V8 integer unit simulator

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

import "github.com/sparcv8/simcore/internal/memio"

// decoded holds the fields the dispatcher contract names in spec.md §4.7:
// rd, rs1, rs2, simm13, imm22, disp22, disp30, a (annul), plus the raw
// opcode fields needed to pick the semantic routine. It is filled once
// per instruction by decode() and passed by pointer to every op* routine.
type decoded struct {
	raw uint32

	op  uint8 // bits 31:30, the top-level instruction format selector
	op2 uint8 // bits 24:22, format 2 discriminator (SETHI / Bicc)
	op3 uint8 // bits 24:19, format 3 discriminator (ALU/load/store/etc)

	rd  uint8 // bits 29:25
	rs1 uint8 // bits 18:14
	rs2 uint8 // bits 4:0
	cond uint8 // bits 28:25, branch condition code

	i      bool   // bit 13, immediate-operand select for format 3
	a      bool   // bit 29, annul bit for branches
	simm13 int32  // bits 12:0, sign-extended
	imm22  uint32 // bits 21:0
	disp22 int32  // bits 21:0, sign-extended, word-aligned target offset
	disp30 int32  // bits 29:0, sign-extended, word-aligned target offset
	asi    uint8  // bits 12:5, address space identifier (format 3, i=0)
}

// RB is the 256-entry physical register bank; REGS is the 32-register
// visible window, a sliding view into RB at rotation offset CWP. Keeping
// both side by side (rather than only ever indexing through RB) matches
// how every semantic routine in spec.md §4.2 is written: read/write the
// visible window, and let SAVE/RESTORE do the explicit copy in and out.
type CPU struct {
	regs [32]uint32  // visible window: g0..g7, o0..o7, l0..l7, i0..i7
	rb   [256]uint32 // physical register bank

	cwp uint8 // current window pointer, base index into rb
	wim uint8 // window invalid mask, same encoding as cwp

	y uint32 // auxiliary register: mul/div high half

	// PSR integer condition codes.
	n, z, v, c bool

	pc, npc uint32 // program counter, next program counter

	mem memio.Port

	coreIndex int // which simulated core this is, for guest-entry stack offsets

	// interruptPending gates the optional sleep/wake discipline of
	// spec.md §5: Step returns immediately without executing when this
	// is false and sleep/wake is enabled; the driver is responsible for
	// waking the core back up.
	interruptPending bool
	wakeEnabled      bool

	// stopped is the cooperative-cancellation flag any semantic routine
	// (trap, unimplemented opcode, external caller) can set; the driver
	// observes it once the in-flight instruction has completed.
	stopped  bool
	stopTrap *Trap

	// branched is set by any control-transfer routine (Bicc, CALL, JMPL)
	// once it has assigned cpu.pc/cpu.npc itself; Step only applies
	// the default pc,npc = npc,npc+4 advance when this is still false.
	branched bool

	// trace, when non-nil, runs before every instruction is dispatched;
	// it is the "generic pre-hook" named in spec.md §4.7, used for
	// instruction tracing.
	trace func(cpu *CPU, d *decoded)

	// Format 3 splits into two disjoint op3 code spaces depending on the
	// top-level op field (2 = arithmetic/logical/control, 3 = memory
	// reference); each gets its own 64-entry table indexed by op3.
	dispatchALU [64]func(cpu *CPU, d *decoded) *Trap
	dispatchMem [64]func(cpu *CPU, d *decoded) *Trap
}

// Register indices by SPARC convention, for readability at call sites.
const (
	RegG0 = 0
	RegO0 = 8
	RegO6 = 14 // %sp
	RegO7 = 15 // link register for CALL/JMPL
	RegL0 = 16
	RegI0 = 24
	RegI6 = 30 // %fp
)

// Window geometry, per spec.md §3/§4.2.
const (
	windowSize  = 16  // locals+ins per window, also outs-to-ins shift width
	rbSize      = 256 // physical register bank size
	topCWP      = 0xF0
)

// Debugger-hook register indices, per spec.md §6.
const (
	DebugNumRegs = 72
	dbgY         = 64
	dbgPSR       = 65
	dbgWIM       = 66
	dbgPC        = 68
	dbgNPC       = 69
)

// PSR icc field bit positions (spec_full.md §3 supplement): the packed
// PSR word carries N,Z,V,C in bits 23..20, matching the SPARC V8 manual.
const (
	psrNShift = 23
	psrZShift = 22
	psrVShift = 21
	psrCShift = 20
)
