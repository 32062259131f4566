package cpu

/* window - register-window rotation: SAVE/RESTORE and the WIM traps.

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

// Reject the temptation to model each window as a separate object: RB
// is one 256-slot circular buffer and the visible window is an
// index-based view into it at base CWP. The arithmetic (CWP+i) mod 256
// *is* the design (spec.md §9).

// spillLocalsIns copies the currently visible locals and ins (indices
// 16..31) into RB at the current window's base, per spec.md §4.2 step 2
// (SAVE) and its RESTORE mirror.
func (cpu *CPU) spillLocalsIns() {
	for i := 0; i < windowSize; i++ {
		cpu.rb[(uint16(cpu.cwp)+uint16(16+i))%rbSize] = cpu.regs[16+i]
	}
}

// spillLocalsOuts copies the currently visible locals and outs (indices
// 8..23) into RB at the current window's base, the RESTORE-side mirror
// of the SAVE spill.
func (cpu *CPU) spillLocalsOuts() {
	for i := 0; i < windowSize; i++ {
		cpu.rb[(uint16(cpu.cwp)+uint16(8+i))%rbSize] = cpu.regs[8+i]
	}
}

// reloadLocalsOuts reloads the visible locals and outs (indices 8..23)
// from RB at the new window's base, spec.md §4.2 step 5 (SAVE).
func (cpu *CPU) reloadLocalsOuts() {
	for i := 0; i < windowSize; i++ {
		cpu.regs[8+i] = cpu.rb[(uint16(cpu.cwp)+uint16(8+i))%rbSize]
	}
}

// reloadLocalsIns reloads the visible locals and ins (indices 16..31)
// from RB at the new window's base, the RESTORE-side mirror.
func (cpu *CPU) reloadLocalsIns() {
	for i := 0; i < windowSize; i++ {
		cpu.regs[16+i] = cpu.rb[(uint16(cpu.cwp)+uint16(16+i))%rbSize]
	}
}

// rotateOutsToIns simulates the outs-of-W-become-ins-of-W-1 overlap
// (spec.md §3 invariant 5, §4.2 step 3).
func (cpu *CPU) rotateOutsToIns() {
	for i := 0; i < 8; i++ {
		cpu.regs[24+i] = cpu.regs[8+i]
	}
}

// rotateInsToOuts is the RESTORE-side mirror: ins of W become outs of
// W+1.
func (cpu *CPU) rotateInsToOuts() {
	for i := 0; i < 8; i++ {
		cpu.regs[8+i] = cpu.regs[24+i]
	}
}

// overflowTrap implements spec.md §4.2's overflow procedure: advance
// WIM by -16 *first*, then spill the 16 words of the about-to-be-
// invalid window — RB positions (WIM+16..WIM+31), using the *new* WIM —
// to guest memory, based at the address held at RB slot (WIM+14), i.e.
// that window's %o6/%sp (not %i6: SPEC_FULL.md §4.2 and the original
// trap_reg_window_overflow both anchor the spill/fill address on the
// stack pointer, offset 14 from the window base, not the frame pointer
// at offset 30).
func (cpu *CPU) overflowTrap() *Trap {
	cpu.wim = uint8((uint16(cpu.wim) - windowSize) % rbSize)
	w := uint16(cpu.wim)
	base := cpu.rb[(w+14)%rbSize]
	for i := 0; i < windowSize; i++ {
		word := cpu.rb[(w+uint16(16+i))%rbSize]
		if err := cpu.mem.WriteWord(base+uint32(i*4), word); err != nil {
			return cpu.trap(TrapMemory, err.Error())
		}
	}
	return nil
}

// underflowTrap implements spec.md §4.2's underflow procedure, the
// mirror of overflowTrap: read 16 words from guest memory (based at the
// %sp held in RB slot (WIM+14), using WIM *before* it is adjusted) into
// RB positions (WIM+16..WIM+31), then advance WIM by +16.
func (cpu *CPU) underflowTrap() *Trap {
	w := uint16(cpu.wim)
	base := cpu.rb[(w+14)%rbSize]
	for i := 0; i < windowSize; i++ {
		word, err := cpu.mem.ReadWord(base + uint32(i*4))
		if err != nil {
			return cpu.trap(TrapMemory, err.Error())
		}
		cpu.rb[(w+uint16(16+i))%rbSize] = word
	}
	cpu.wim = uint8((w + windowSize) % rbSize)
	return nil
}

// opSave implements SAVE: rd <- rs1 + operand2 evaluated in the caller's
// window, then rotate the window down one, per spec.md §4.2.
func opSave(cpu *CPU, d *decoded) *Trap {
	src1 := cpu.readReg(d.rs1)
	op2 := cpu.operand2(d)
	tmp := src1 + op2

	cpu.spillLocalsIns()
	cpu.rotateOutsToIns()
	cpu.cwp = uint8((uint16(cpu.cwp) - windowSize) % rbSize)
	if cpu.cwp == cpu.wim {
		if t := cpu.overflowTrap(); t != nil {
			return t
		}
	}
	cpu.reloadLocalsOuts()
	cpu.writeReg(d.rd, tmp)
	return nil
}

// opRestore implements RESTORE: the symmetric mirror of SAVE.
func opRestore(cpu *CPU, d *decoded) *Trap {
	src1 := cpu.readReg(d.rs1)
	op2 := cpu.operand2(d)
	tmp := src1 + op2

	cpu.spillLocalsOuts()
	cpu.rotateInsToOuts()
	cpu.cwp = uint8((uint16(cpu.cwp) + windowSize) % rbSize)
	if cpu.cwp == cpu.wim {
		if t := cpu.underflowTrap(); t != nil {
			return t
		}
	}
	cpu.reloadLocalsIns()
	cpu.writeReg(d.rd, tmp)
	return nil
}
