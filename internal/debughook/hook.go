/*
   debughook - the flat register-index debugger contract.

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

// Package debughook exposes a CPU's architectural state through the
// flat 0..71 register index a GDB-style remote stub addresses, mapping
// it onto internal/cpu's real accessors.
package debughook

import (
	"fmt"

	"github.com/sparcv8/simcore/internal/cpu"
)

// NumRegs is the size of the flat register index space.
const NumRegs = cpu.DebugNumRegs

const (
	idxY   = 64
	idxPSR = 65
	idxWIM = 66
	idxTBR = 67
	idxPC  = 68
	idxNPC = 69
)

// Hook adapts a *cpu.CPU to the debugger's flat register namespace.
type Hook struct {
	CPU *cpu.CPU
}

// New wraps c.
func New(c *cpu.CPU) *Hook { return &Hook{CPU: c} }

// packPSR assembles the packed condition-code word the debugger
// expects: N,Z,V,C in bits 23..20, matching the real PSR icc field
// layout, with every other bit (including CWP in the full PSR)
// hardwired to zero — this simulator never models supervisor state.
func packPSR(n, z, v, c bool) uint32 {
	var w uint32
	if n {
		w |= 1 << 23
	}
	if z {
		w |= 1 << 22
	}
	if v {
		w |= 1 << 21
	}
	if c {
		w |= 1 << 20
	}
	return w
}

// Read returns the value of flat register index i.
func (h *Hook) Read(i int) (uint32, error) {
	switch {
	case i >= 0 && i < 32:
		return h.CPU.Reg(uint8(i)), nil
	case i == idxY:
		return h.CPU.Y(), nil
	case i == idxPSR:
		n, z, v, c := h.CPU.ICC()
		return packPSR(n, z, v, c), nil
	case i == idxWIM:
		return uint32(h.CPU.WIM()), nil
	case i == idxTBR:
		return 0, nil // hardwired: no trap-vector table is modeled
	case i == idxPC:
		return h.CPU.PC(), nil
	case i == idxNPC:
		return h.CPU.NPC(), nil
	}
	return 0, fmt.Errorf("debughook: register index %d out of range", i)
}

// Write sets the value of flat register index i. Only the 32 visible
// integer registers (0..31) are writable; every other index, including
// Y, PSR, WIM, TBR, PC and nPC, is rejected with an error.
func (h *Hook) Write(i int, v uint32) error {
	switch {
	case i >= 0 && i < 32:
		h.CPU.SetReg(uint8(i), v)
		return nil
	case i == idxPC:
		// PC/nPC are not exposed as settable via CPU today; a debugger
		// wanting to relocate execution needs a CPU-level API for it.
		return fmt.Errorf("debughook: PC is read-only through this hook")
	}
	return fmt.Errorf("debughook: register index %d is not writable", i)
}
