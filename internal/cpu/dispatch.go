package cpu

/* dispatch - the instruction dispatcher and single-step/run driver.

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

// op3 codes for the arithmetic/logical/control format (top op field 2),
// per spec.md §4.1/§4.3.
const (
	op3Add     = 0x00
	op3And     = 0x01
	op3Or      = 0x02
	op3Xor     = 0x03
	op3Sub     = 0x04
	op3Andn    = 0x05
	op3Orn     = 0x06
	op3Xnor    = 0x07
	op3Addx    = 0x08
	op3Umul    = 0x0A
	op3Smul    = 0x0B
	op3Subx    = 0x0C
	op3Udiv    = 0x0E
	op3Sdiv    = 0x0F
	op3Addcc   = 0x10
	op3Andcc   = 0x11
	op3Orcc    = 0x12
	op3Xorcc   = 0x13
	op3Subcc   = 0x14
	op3Andncc  = 0x15
	op3Orncc   = 0x16
	op3Xnorcc  = 0x17
	op3Addxcc  = 0x18
	op3Umulcc  = 0x1A
	op3Smulcc  = 0x1B
	op3Subxcc  = 0x1C
	op3Udivcc  = 0x1E
	op3Sdivcc  = 0x1F
	op3Mulscc  = 0x24
	op3Sll     = 0x25
	op3Srl     = 0x26
	op3Sra     = 0x27
	op3Rdy     = 0x28
	op3Wry     = 0x30
	op3Jmpl    = 0x38
	op3Ticc    = 0x3A
	op3Save    = 0x3C
	op3Restore = 0x3D
)

// op3 codes for the memory-reference format (top op field 3), per
// spec.md §4.5/§4.6.
const (
	op3Ld     = 0x00
	op3Ldub   = 0x01
	op3Lduh   = 0x02
	op3Ldd    = 0x03
	op3St     = 0x04
	op3Stb    = 0x05
	op3Sth    = 0x06
	op3Std    = 0x07
	op3Ldsb   = 0x09
	op3Ldsh   = 0x0A
	op3Ldstub = 0x0D
	op3Swap   = 0x0F
)

// buildDispatchTable wires every op* routine into the two op3-indexed
// tables. Anything left nil falls through to the unimplemented trap in
// execFmt3, per spec.md §4.7/§7.
func (cpu *CPU) buildDispatchTable() {
	cpu.dispatchALU[op3Add] = func(c *CPU, d *decoded) *Trap { opAdd(c, d, false, false); return nil }
	cpu.dispatchALU[op3Addcc] = func(c *CPU, d *decoded) *Trap { opAdd(c, d, false, true); return nil }
	cpu.dispatchALU[op3Addx] = func(c *CPU, d *decoded) *Trap { opAdd(c, d, true, false); return nil }
	cpu.dispatchALU[op3Addxcc] = func(c *CPU, d *decoded) *Trap { opAdd(c, d, true, true); return nil }
	cpu.dispatchALU[op3Sub] = func(c *CPU, d *decoded) *Trap { opSub(c, d, false, false); return nil }
	cpu.dispatchALU[op3Subcc] = func(c *CPU, d *decoded) *Trap { opSub(c, d, false, true); return nil }
	cpu.dispatchALU[op3Subx] = func(c *CPU, d *decoded) *Trap { opSub(c, d, true, false); return nil }
	cpu.dispatchALU[op3Subxcc] = func(c *CPU, d *decoded) *Trap { opSub(c, d, true, true); return nil }

	cpu.dispatchALU[op3And] = func(c *CPU, d *decoded) *Trap { opLogic(c, d, logicAnd, false); return nil }
	cpu.dispatchALU[op3Andcc] = func(c *CPU, d *decoded) *Trap { opLogic(c, d, logicAnd, true); return nil }
	cpu.dispatchALU[op3Or] = func(c *CPU, d *decoded) *Trap { opLogic(c, d, logicOr, false); return nil }
	cpu.dispatchALU[op3Orcc] = func(c *CPU, d *decoded) *Trap { opLogic(c, d, logicOr, true); return nil }
	cpu.dispatchALU[op3Xor] = func(c *CPU, d *decoded) *Trap { opLogic(c, d, logicXor, false); return nil }
	cpu.dispatchALU[op3Xorcc] = func(c *CPU, d *decoded) *Trap { opLogic(c, d, logicXor, true); return nil }
	cpu.dispatchALU[op3Andn] = func(c *CPU, d *decoded) *Trap { opLogic(c, d, logicAndn, false); return nil }
	cpu.dispatchALU[op3Andncc] = func(c *CPU, d *decoded) *Trap { opLogic(c, d, logicAndn, true); return nil }
	cpu.dispatchALU[op3Orn] = func(c *CPU, d *decoded) *Trap { opLogic(c, d, logicOrn, false); return nil }
	cpu.dispatchALU[op3Orncc] = func(c *CPU, d *decoded) *Trap { opLogic(c, d, logicOrn, true); return nil }
	cpu.dispatchALU[op3Xnor] = func(c *CPU, d *decoded) *Trap { opLogic(c, d, logicXnor, false); return nil }
	cpu.dispatchALU[op3Xnorcc] = func(c *CPU, d *decoded) *Trap { opLogic(c, d, logicXnor, true); return nil }

	cpu.dispatchALU[op3Sll] = func(c *CPU, d *decoded) *Trap { opShift(c, d, shiftLL); return nil }
	cpu.dispatchALU[op3Srl] = func(c *CPU, d *decoded) *Trap { opShift(c, d, shiftRL); return nil }
	cpu.dispatchALU[op3Sra] = func(c *CPU, d *decoded) *Trap { opShift(c, d, shiftRA); return nil }

	cpu.dispatchALU[op3Umul] = func(c *CPU, d *decoded) *Trap { opUMul(c, d, false); return nil }
	cpu.dispatchALU[op3Umulcc] = func(c *CPU, d *decoded) *Trap { opUMul(c, d, true); return nil }
	cpu.dispatchALU[op3Smul] = func(c *CPU, d *decoded) *Trap { opSMul(c, d, false); return nil }
	cpu.dispatchALU[op3Smulcc] = func(c *CPU, d *decoded) *Trap { opSMul(c, d, true); return nil }
	cpu.dispatchALU[op3Udiv] = func(c *CPU, d *decoded) *Trap { return opUDiv(c, d, false) }
	cpu.dispatchALU[op3Udivcc] = func(c *CPU, d *decoded) *Trap { return opUDiv(c, d, true) }
	cpu.dispatchALU[op3Sdiv] = func(c *CPU, d *decoded) *Trap { return opSDiv(c, d, false) }
	cpu.dispatchALU[op3Sdivcc] = func(c *CPU, d *decoded) *Trap { return opSDiv(c, d, true) }
	cpu.dispatchALU[op3Mulscc] = func(c *CPU, d *decoded) *Trap { opMulscc(c, d); return nil }

	cpu.dispatchALU[op3Save] = opSave
	cpu.dispatchALU[op3Restore] = opRestore
	cpu.dispatchALU[op3Jmpl] = opJmpl
	cpu.dispatchALU[op3Rdy] = opRdy
	cpu.dispatchALU[op3Wry] = opWry
	cpu.dispatchALU[op3Ticc] = opTicc

	cpu.dispatchMem[op3Ld] = opLoadWord
	cpu.dispatchMem[op3Ldd] = opLoadDouble
	cpu.dispatchMem[op3Ldub] = opLoadUByte
	cpu.dispatchMem[op3Ldsb] = opLoadSByte
	cpu.dispatchMem[op3Lduh] = opLoadUHalf
	cpu.dispatchMem[op3Ldsh] = opLoadSHalf
	cpu.dispatchMem[op3St] = opStoreWord
	cpu.dispatchMem[op3Std] = opStoreDouble
	cpu.dispatchMem[op3Stb] = opStoreByte
	cpu.dispatchMem[op3Sth] = opStoreHalf
	cpu.dispatchMem[op3Ldstub] = opLdstub
	cpu.dispatchMem[op3Swap] = opSwap
}

// opJmpl implements JMPL: rd <- pc, pc <- (rs1+operand2) with the usual
// delay slot but no annul option, per spec.md §4.4.
func opJmpl(cpu *CPU, d *decoded) *Trap {
	target := cpu.readReg(d.rs1) + cpu.operand2(d)
	cpu.writeReg(d.rd, cpu.pc)
	cpu.sequenceCall(target)
	return nil
}

// opRdy implements RDY: rd <- Y. rs1 selects among the other ancillary
// state registers in the full architecture; this simulator only models
// Y, per spec.md §4's scope (PSR/WIM are exposed solely through the
// debugger hook, not via RDPSR/RDWIM encodings).
func opRdy(cpu *CPU, d *decoded) *Trap {
	cpu.writeReg(d.rd, cpu.y)
	return nil
}

// opWry implements WRY: Y <- rs1 XOR operand2. The XOR (rather than a
// plain move) reproduces the reference model's literal semantics, per
// spec.md §9 Open Question (a).
func opWry(cpu *CPU, d *decoded) *Trap {
	cpu.y = cpu.readReg(d.rs1) ^ cpu.operand2(d)
	return nil
}

// opTicc implements Ticc (trap on condition): spec.md §9 Open Question
// (b) resolves this as unconditionally fatal, identically to UNIMP,
// rather than modeling the full trap-vector redirection machinery.
// decode() never populates d.cond for format-3 instructions (Ticc's
// condition field aliases into rd in the format-3 layout, which decode
// does not interpret), so gating on condTaken here would silently never
// fire; trapping unconditionally matches DESIGN.md and is the only
// sound behavior without a real condition field to decode.
func opTicc(cpu *CPU, d *decoded) *Trap {
	return cpu.trap(TrapInstruction, "Ticc")
}

// execSethi implements SETHI: rd <- imm22 << 10. SETHI to %g0 with a
// zero immediate is the canonical NOP encoding and needs no special
// case here; it simply writes a discarded value.
func execSethi(cpu *CPU, d *decoded) {
	cpu.writeReg(d.rd, d.imm22<<10)
}

// execBicc implements Bicc: evaluate the condition, then hand off to
// the PC sequencer for the delayed-branch/annul rule.
func execBicc(cpu *CPU, d *decoded) {
	taken := condTaken(d.cond, cpu.n, cpu.z, cpu.v, cpu.c)
	target := uint32(int32(cpu.pc) + d.disp22)
	cpu.sequenceBranch(taken, d.a, d.cond == condBA, target)
}

// execCall implements CALL: %o7 <- pc, pc <- pc + disp30.
func execCall(cpu *CPU, d *decoded) {
	cpu.writeReg(RegO7, cpu.pc)
	cpu.sequenceCall(uint32(int32(cpu.pc) + d.disp30))
}

// Step executes exactly one instruction, per the dispatcher contract of
// spec.md §4.7. It returns a non-nil Trap on any fatal condition,
// leaving the core Stopped. When the optional sleep/wake discipline is
// enabled and no interrupt is pending, Step returns immediately without
// fetching anything (spec.md §5).
func (cpu *CPU) Step() *Trap {
	if cpu.stopped {
		return cpu.stopTrap
	}
	if cpu.wakeEnabled && !cpu.interruptPending {
		return nil
	}
	cpu.interruptPending = false

	raw, err := cpu.mem.ReadWord(cpu.pc)
	if err != nil {
		return cpu.trap(TrapMemory, err.Error())
	}
	d := decode(raw)

	if cpu.trace != nil {
		cpu.trace(cpu, d)
	}

	cpu.branched = false
	var trap *Trap

	switch d.op {
	case fmt2SethiBcc:
		if d.op2 == 0x4 {
			execSethi(cpu, d)
		} else if d.op2 == 0x2 {
			execBicc(cpu, d)
		} else {
			trap = cpu.trap(TrapUnimplemented, "unknown format-2 op2")
		}
	case fmt1Call:
		execCall(cpu, d)
	case fmt3Other:
		trap = cpu.execFmt3(d, cpu.dispatchALU)
	case fmt3Mem:
		trap = cpu.execFmt3(d, cpu.dispatchMem)
	}

	if trap != nil {
		return trap
	}
	if !cpu.branched {
		cpu.defaultAdvance()
	}
	return nil
}

// execFmt3 looks up and runs the op3 routine from the given table,
// trapping as unimplemented when no routine was wired for this op3, per
// spec.md §7.
func (cpu *CPU) execFmt3(d *decoded, table [64]func(cpu *CPU, d *decoded) *Trap) *Trap {
	fn := table[d.op3]
	if fn == nil {
		return cpu.trap(TrapUnimplemented, "unimplemented op3")
	}
	return fn(cpu, d)
}

// Run repeatedly calls Step until a Trap occurs or the core is stopped
// externally, implementing the simplest form of the driver loop named
// in spec.md §5. Callers needing cooperative cancellation across
// goroutines should prefer the Core type, which wraps this in a
// select-driven loop.
func (cpu *CPU) Run() *Trap {
	for {
		if t := cpu.Step(); t != nil {
			return t
		}
		if cpu.stopped {
			return cpu.stopTrap
		}
	}
}
