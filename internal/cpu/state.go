package cpu

/* state - construction, register-file access, and guest-entry plumbing.

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

// AC_RAM_END is the top of guest RAM used for stack and argv/argc
// marshalling, per spec.md §4.8/§6. Named after the constant in the
// ArchC model this spec was distilled from.
const AC_RAM_END uint32 = 0x01000000 // 16 MiB guest address space

// coreStackSpan is the per-core stack offset granularity named in
// spec.md §4.8: stack_offset = core_index * coreStackSpan.
const coreStackSpan = 256 * 1024

// New constructs a CPU bound to the given memory port, for the given
// simulated core index (used only to disjoint-offset guest stacks when
// several cores share one Port). The CPU is left in its zero/reset
// state; call InitGuest to perform guest-entry plumbing before running.
func New(mem memio.Port, coreIndex int) *CPU {
	cpu := &CPU{mem: mem, coreIndex: coreIndex}
	cpu.buildDispatchTable()
	return cpu
}

// readReg implements spec.md §4.2's read rule: r==0 reads as 0, else the
// currently visible window value.
func (cpu *CPU) readReg(r uint8) uint32 {
	if r == 0 {
		return 0
	}
	return cpu.regs[r]
}

// writeReg implements spec.md §4.2's write rule: writes to r==0 are
// discarded (invariant 1 in spec.md §3).
func (cpu *CPU) writeReg(r uint8, v uint32) {
	if r == 0 {
		return
	}
	cpu.regs[r] = v
}

// PC returns the current program counter.
func (cpu *CPU) PC() uint32 { return cpu.pc }

// NPC returns the current next-program-counter.
func (cpu *CPU) NPC() uint32 { return cpu.npc }

// Y returns the auxiliary multiply/divide register.
func (cpu *CPU) Y() uint32 { return cpu.y }

// CWP returns the current window pointer (physical bank base index).
func (cpu *CPU) CWP() uint8 { return cpu.cwp }

// WIM returns the window invalid mask.
func (cpu *CPU) WIM() uint8 { return cpu.wim }

// ICC returns the four PSR integer condition-code bits (N, Z, V, C).
func (cpu *CPU) ICC() (n, z, v, c bool) {
	return cpu.n, cpu.z, cpu.v, cpu.c
}

// Reg reads visible register r (0..31) following the r==0-is-zero rule.
func (cpu *CPU) Reg(r uint8) uint32 { return cpu.readReg(r) }

// SetReg writes visible register r (0..31); writes to r0 are discarded.
func (cpu *CPU) SetReg(r uint8, v uint32) { cpu.writeReg(r, v) }

// PeekMemory reads one word through the CPU's memory port without
// affecting architectural state, for debugger and test use.
func (cpu *CPU) PeekMemory(addr uint32) (uint32, error) {
	return cpu.mem.ReadWord(addr)
}

// SetTrace installs the generic pre-instruction hook named in spec.md
// §4.7, used for tracing and any future wait-for-interrupt polling.
func (cpu *CPU) SetTrace(fn func(cpu *CPU, d *decoded)) {
	cpu.trace = fn
}

// EnableWake turns on the optional sleep/wake discipline of spec.md §5:
// Step becomes a no-op (returning immediately) whenever interruptPending
// is false, until SignalInterrupt is called.
func (cpu *CPU) EnableWake() { cpu.wakeEnabled = true }

// SignalInterrupt asserts the interrupt-pending line an external actor
// (timer, device, debugger) uses to wake a blocked core.
func (cpu *CPU) SignalInterrupt() { cpu.interruptPending = true }

// Stop requests cooperative cancellation; the driver observes it once
// the in-flight instruction completes.
func (cpu *CPU) Stop() { cpu.stopped = true }

// Stopped reports whether the core has been asked to stop, and the
// Trap that caused it, if any (nil for an externally requested stop).
func (cpu *CPU) Stopped() (bool, *Trap) { return cpu.stopped, cpu.stopTrap }

// Reset clears all architectural state to zero. InitGuest should be
// called afterward to perform the guest-entry sequence of spec.md §4.8.
func (cpu *CPU) Reset() {
	cpu.regs = [32]uint32{}
	cpu.rb = [256]uint32{}
	cpu.cwp = 0
	cpu.wim = 0
	cpu.y = 0
	cpu.n, cpu.z, cpu.v, cpu.c = false, false, false, false
	cpu.pc, cpu.npc = 0, 0
	cpu.stopped = false
	cpu.stopTrap = nil
	cpu.interruptPending = false
}

// InitGuest performs the guest-entry plumbing of spec.md §4.8: sets the
// initial PC/nPC pair, the "top" window (CWP=0xF0, the architectural
// window before any SAVE has ever executed), and the per-core stack
// pointer, disjoint from every other simulated core sharing this
// address space.
func (cpu *CPU) InitGuest(entryPC uint32) {
	cpu.regs[RegG0] = 0
	cpu.pc = entryPC
	cpu.npc = entryPC + 4
	cpu.cwp = topCWP
	stackOffset := uint32(cpu.coreIndex) * coreStackSpan
	cpu.regs[RegO6] = AC_RAM_END - 1024 - stackOffset
}

// argvStringSize and argvPtrSize are the sizes of the two fixed
// guest-memory windows spec.md §4.8/§6 reserve for argument marshalling.
const (
	argvStringSize = 512
	argvPtrSize    = 120
	argvTotalSize  = argvStringSize + argvPtrSize // 632
)

// SetProgArgs packs argv into guest memory and points %o0/%o1/%sp at it,
// per spec.md §4.8. Bytes of each argument string are stored in natural
// (big-endian) order; pointer values are stored as 32-bit words.
func (cpu *CPU) SetProgArgs(argv []string) *Trap {
	strBase := AC_RAM_END - argvStringSize
	ptrBase := AC_RAM_END - argvTotalSize

	strBuf := make([]byte, 0, argvStringSize)
	ptrs := make([]uint32, len(argv))
	for i, arg := range argv {
		ptrs[i] = strBase + uint32(len(strBuf))
		strBuf = append(strBuf, arg...)
		strBuf = append(strBuf, 0)
	}
	if len(strBuf) > argvStringSize {
		return cpu.trap(TrapMemory, "argv strings exceed guest argv region")
	}
	if len(ptrs)*4 > argvPtrSize {
		return cpu.trap(TrapMemory, "argv pointer array exceeds guest argv-pointer region")
	}

	for i, b := range strBuf {
		if err := cpu.mem.WriteByte(strBase+uint32(i), b); err != nil {
			return cpu.trap(TrapMemory, err.Error())
		}
	}
	for i, p := range ptrs {
		if err := cpu.mem.WriteWord(ptrBase+uint32(i*4), p); err != nil {
			return cpu.trap(TrapMemory, err.Error())
		}
	}

	cpu.writeReg(RegO0, uint32(len(argv)))
	cpu.writeReg(RegO0+1, ptrBase)
	cpu.writeReg(RegO6, ptrBase)
	return nil
}
