package cpu

/* alu - the integer ALU: arithmetic, logical, shift, multiply, divide.

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

// setICC stores the four condition-code bits spec.md §4.3 defines for
// every *cc instruction. Callers compute each bit with the exact
// formula the spec gives; this just assigns them atomically.
func (cpu *CPU) setICC(n, z, v, c bool) {
	cpu.n, cpu.z, cpu.v, cpu.c = n, z, v, c
}

// addCC computes V and C for ADD/ADDcc/ADDX/ADDXcc. Both bits are
// derived from the original a, b (never b folded together with
// carryIn) plus the three-input 64-bit sum, matching the ArchC
// reference's addxcc_reg: folding carryIn into b before widening loses
// the carry whenever b+carryIn itself overflows 32 bits.
func addCC(a, b, carryIn, result uint32) (v, c bool) {
	v = (a>>31 == b>>31) && (result>>31 != a>>31)
	sum64 := uint64(a) + uint64(b) + uint64(carryIn)
	c = sum64>>32 != 0
	return
}

// subCC computes V and C for SUB/SUBcc/SUBX/SUBXcc, mirroring addCC.
func subCC(a, b, borrowIn, result uint32) (v, c bool) {
	v = (a>>31 != b>>31) && (result>>31 != a>>31)
	c = uint64(a) < uint64(b)+uint64(borrowIn)
	return
}

func nzFromResult(result uint32) (n, z bool) {
	return int32(result) < 0, result == 0
}

// opAdd implements ADD/ADDcc/ADDX/ADDXcc per spec.md §4.3. withCarry
// folds in the current C bit (ADDX); cc requests the condition-code
// update.
func opAdd(cpu *CPU, d *decoded, withCarry, cc bool) {
	a := cpu.readReg(d.rs1)
	b := cpu.operand2(d)
	carryIn := uint32(0)
	if withCarry && cpu.c {
		carryIn = 1
	}
	result := a + b + carryIn
	if cc {
		v, c := addCC(a, b, carryIn, result)
		n, z := nzFromResult(result)
		cpu.setICC(n, z, v, c)
	}
	cpu.writeReg(d.rd, result)
}

// opSub implements SUB/SUBcc/SUBX/SUBXcc per spec.md §4.3.
func opSub(cpu *CPU, d *decoded, withCarry, cc bool) {
	a := cpu.readReg(d.rs1)
	b := cpu.operand2(d)
	borrowIn := uint32(0)
	if withCarry && cpu.c {
		borrowIn = 1
	}
	result := a - b - borrowIn
	if cc {
		v, c := subCC(a, b, borrowIn, result)
		n, z := nzFromResult(result)
		cpu.setICC(n, z, v, c)
	}
	cpu.writeReg(d.rd, result)
}

// logicOp names the six logical combinations spec.md §4.3 groups
// together (each with a plain and cc variant, and an rd0 no-destination
// "test" use covered simply by writing to %g0).
type logicOp int

const (
	logicAnd logicOp = iota
	logicOr
	logicXor
	logicAndn
	logicOrn
	logicXnor
)

// opLogic implements AND/OR/XOR/ANDN/ORN/XNOR and their cc variants.
// The V and C bits are always cleared for logical ops, per spec.md §4.3.
func opLogic(cpu *CPU, d *decoded, op logicOp, cc bool) {
	a := cpu.readReg(d.rs1)
	b := cpu.operand2(d)
	var result uint32
	switch op {
	case logicAnd:
		result = a & b
	case logicOr:
		result = a | b
	case logicXor:
		result = a ^ b
	case logicAndn:
		result = a &^ b
	case logicOrn:
		result = a | ^b
	case logicXnor:
		result = ^(a ^ b)
	}
	if cc {
		n, z := nzFromResult(result)
		cpu.setICC(n, z, false, false)
	}
	cpu.writeReg(d.rd, result)
}

// shiftOp distinguishes SLL/SRL/SRA; all three use rs1 shifted by the
// low 5 bits of operand2, per spec.md §4.3.
type shiftOp int

const (
	shiftLL shiftOp = iota
	shiftRL
	shiftRA
)

func opShift(cpu *CPU, d *decoded, op shiftOp) {
	a := cpu.readReg(d.rs1)
	count := cpu.operand2(d) & 0x1F
	var result uint32
	switch op {
	case shiftLL:
		result = a << count
	case shiftRL:
		result = a >> count
	case shiftRA:
		result = uint32(int32(a) >> count)
	}
	cpu.writeReg(d.rd, result)
}

// opUMul implements UMUL/UMULcc: 32x32->64 unsigned multiply, low half
// to rd, high half to Y, per spec.md §4.3.
func opUMul(cpu *CPU, d *decoded, cc bool) {
	a := uint64(cpu.readReg(d.rs1))
	b := uint64(cpu.operand2(d))
	full := a * b
	cpu.y = uint32(full >> 32)
	result := uint32(full)
	if cc {
		n, z := nzFromResult(result)
		cpu.setICC(n, z, false, false)
	}
	cpu.writeReg(d.rd, result)
}

// opSMul implements SMUL/SMULcc: 32x32->64 signed multiply.
func opSMul(cpu *CPU, d *decoded, cc bool) {
	a := int64(int32(cpu.readReg(d.rs1)))
	b := int64(int32(cpu.operand2(d)))
	full := a * b
	cpu.y = uint32(uint64(full) >> 32)
	result := uint32(full)
	if cc {
		n, z := nzFromResult(result)
		cpu.setICC(n, z, false, false)
	}
	cpu.writeReg(d.rd, result)
}

// opUDiv implements UDIV/UDIVcc: the 64-bit dividend is {Y, rs1},
// divided by the unsigned operand2, saturating to 0xFFFFFFFF on
// overflow and raising V in the cc form, per spec.md §4.3 (grounded on
// original_source/sparc_isa.cpp's udiv handler).
func opUDiv(cpu *CPU, d *decoded, cc bool) *Trap {
	divisor := uint64(cpu.operand2(d))
	if divisor == 0 {
		return cpu.trap(TrapInstruction, "division by zero")
	}
	dividend := uint64(cpu.y)<<32 | uint64(cpu.readReg(d.rs1))
	q := dividend / divisor
	overflow := q > 0xFFFFFFFF
	if overflow {
		q = 0xFFFFFFFF
	}
	result := uint32(q)
	if cc {
		n, z := nzFromResult(result)
		cpu.setICC(n, z, overflow, false)
	}
	cpu.writeReg(d.rd, result)
	return nil
}

// opSDiv implements SDIV/SDIVcc: signed variant of opUDiv, saturating
// to math.MaxInt32/math.MinInt32 on overflow. The immediate-operand
// form reproduces the sign-handling quirk documented in spec.md §9 Open
// Question (c): operand2 drawn from simm13 is treated as already sign
// extended to 64 bits when forming the divisor, matching the reference
// model rather than the "corrected" alternative. Confirmed against
// original_source/sparc_isa.cpp: sdiv_imm divides by "(signed) simm13"
// and sdivcc_imm divides by simm13 directly — the field is signed in
// the reference ISA, so int64(d.simm13) here is the faithful reading,
// not an arbitrary choice.
func opSDiv(cpu *CPU, d *decoded, cc bool) *Trap {
	var divisor int64
	if d.i {
		divisor = int64(d.simm13)
	} else {
		divisor = int64(int32(cpu.readReg(d.rs2)))
	}
	if divisor == 0 {
		return cpu.trap(TrapInstruction, "division by zero")
	}
	dividend := int64(int32(cpu.y))<<32 | int64(cpu.readReg(d.rs1))
	q := dividend / divisor
	overflow := q > 0x7FFFFFFF || q < -0x80000000
	if overflow {
		if q > 0 {
			q = 0x7FFFFFFF
		} else {
			q = -0x80000000
		}
	}
	result := uint32(q)
	if cc {
		n, z := nzFromResult(result)
		cpu.setICC(n, z, overflow, false)
	}
	cpu.writeReg(d.rd, result)
	return nil
}

// opMulscc implements MULSCC, the single-step shift-and-add multiply
// primitive: it folds the current N^V bit into the top of rs1 before
// adding, then shifts Y right by one, per spec.md §4.3.
func opMulscc(cpu *CPU, d *decoded) {
	a := cpu.readReg(d.rs1)
	topBit := uint32(0)
	if cpu.n != cpu.v {
		topBit = 1 << 31
	}
	multiplicand := a>>1 | topBit

	var addend uint32
	if cpu.y&1 != 0 {
		addend = cpu.operand2(d)
	}
	result := multiplicand + addend

	v, c := addCC(multiplicand, addend, 0, result)
	n, z := nzFromResult(result)
	cpu.setICC(n, z, v, c)

	cpu.y = cpu.y>>1 | a<<31
	cpu.writeReg(d.rd, result)
}
