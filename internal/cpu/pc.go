package cpu

/* pc - the PC/nPC sequencer: straight-line advance, delayed branches, annul.

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

// condBA and condBN are the two conditions that ignore the icc bits
// entirely (spec.md §4.4 edge case: BA/BN never consult N,Z,V,C).
const (
	condBN  = 0x0
	condBA  = 0x8
	condBNE = 0x9
	condBE  = 0x1
	condBG  = 0xA
	condBLE = 0x2
	condBGE = 0xB
	condBL  = 0x3
	condBGU = 0xC
	condBLEU = 0x4
	condBCC = 0xD
	condBCS = 0x5
	condBPOS = 0xE
	condBNEG = 0x6
	condBVC = 0xF
	condBVS = 0x7
)

// condTaken evaluates the 4-bit Bicc condition field against the icc
// bits, per spec.md §4.4's 14-entry predicate table (BA/BN are the two
// trivial cases outside the table).
func condTaken(cond uint8, n, z, v, c bool) bool {
	switch cond {
	case condBN:
		return false
	case condBE:
		return z
	case condBLE:
		return z || (n != v)
	case condBL:
		return n != v
	case condBLEU:
		return c || z
	case condBCS:
		return c
	case condBNEG:
		return n
	case condBVS:
		return v
	case condBA:
		return true
	case condBNE:
		return !z
	case condBG:
		return !(z || (n != v))
	case condBGE:
		return !(n != v)
	case condBGU:
		return !(c || z)
	case condBCC:
		return !c
	case condBPOS:
		return !n
	case condBVC:
		return !v
	}
	return false
}

// defaultAdvance implements the straight-line PC update any instruction
// that does not itself alter control flow receives: pc <- npc,
// npc <- npc+4.
func (cpu *CPU) defaultAdvance() {
	cpu.pc = cpu.npc
	cpu.npc = cpu.npc + 4
}

// sequenceBranch implements spec.md §4.4's delayed-branch/annul rule for
// Bicc. alwaysTaken marks BA, whose annul semantics differ from every
// conditional branch: BA with a=1 annuls its delay instruction
// unconditionally (since it is always taken), rather than only when not
// taken.
func (cpu *CPU) sequenceBranch(taken, annul, alwaysTaken bool, target uint32) {
	cpu.branched = true
	switch {
	case alwaysTaken && annul:
		cpu.pc = target
		cpu.npc = target + 4
	case taken:
		cpu.pc = cpu.npc
		cpu.npc = target
	case annul:
		cpu.pc = cpu.npc + 4
		cpu.npc = cpu.pc + 4
	default:
		cpu.pc = cpu.npc
		cpu.npc = cpu.npc + 4
	}
}

// sequenceCall implements the unconditional, non-annulling control
// transfer CALL and JMPL use: pc <- npc, npc <- target.
func (cpu *CPU) sequenceCall(target uint32) {
	cpu.branched = true
	cpu.pc = cpu.npc
	cpu.npc = target
}
