package cpu

/* decode - splits a raw 32-bit instruction word into the decoded struct.

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

// Instruction format selector, bits 31:30 (spec.md §4.1).
const (
	fmt1Call     = 0x1 // CALL
	fmt2SethiBcc = 0x0 // SETHI, Bicc
	fmt3Mem      = 0x3 // loads/stores/atomics
	fmt3Other    = 0x2 // everything else in format 3 (ALU, SAVE/RESTORE, JMPL, Ticc, RDY/WRY)
)

// sext sign-extends the low `bits` bits of v to a full int32.
func sext(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}

// decode splits raw into every field any op* routine might need. Fields
// that do not apply to the instruction's format are left zero; callers
// only consult the fields relevant to the op3/op2 they dispatched on.
func decode(raw uint32) *decoded {
	d := &decoded{raw: raw}
	d.op = uint8(raw >> 30 & 0x3)
	d.rd = uint8(raw >> 25 & 0x1F)

	switch d.op {
	case fmt1Call:
		d.disp30 = sext(raw&0x3FFFFFFF, 30) << 2
	case fmt2SethiBcc:
		d.op2 = uint8(raw >> 22 & 0x7)
		d.cond = uint8(raw >> 25 & 0xF)
		d.a = raw>>29&0x1 != 0
		d.imm22 = raw & 0x3FFFFF
		d.disp22 = sext(raw&0x3FFFFF, 22) << 2
	default: // fmt3Mem, fmt3Other
		d.op3 = uint8(raw >> 19 & 0x3F)
		d.rs1 = uint8(raw >> 14 & 0x1F)
		d.i = raw>>13&0x1 != 0
		if d.i {
			d.simm13 = sext(raw&0x1FFF, 13)
		} else {
			d.asi = uint8(raw >> 5 & 0xFF)
			d.rs2 = uint8(raw & 0x1F)
		}
	}
	return d
}

// operand2 evaluates the format-3 "operand 2" field per spec.md §4.1:
// either the sign-extended 13-bit immediate, or the rs2 register value.
func (cpu *CPU) operand2(d *decoded) uint32 {
	if d.i {
		return uint32(d.simm13)
	}
	return cpu.readReg(d.rs2)
}
