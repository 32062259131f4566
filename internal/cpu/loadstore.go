package cpu

/* loadstore - memory-referencing instructions: loads, stores, atomics.

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

// effAddr computes the format-3 effective address: rs1 + operand2,
// per spec.md §4.5. Both the register and immediate operand-2 forms
// share this one computation.
func (cpu *CPU) effAddr(d *decoded) uint32 {
	return cpu.readReg(d.rs1) + cpu.operand2(d)
}

// opLoadWord implements LD: a full 32-bit load, zero quirk-free.
func opLoadWord(cpu *CPU, d *decoded) *Trap {
	addr := cpu.effAddr(d)
	v, err := cpu.mem.ReadWord(addr)
	if err != nil {
		return cpu.trap(TrapMemory, err.Error())
	}
	cpu.writeReg(d.rd, v)
	return nil
}

// opLoadDouble implements LDD: rd and rd|1 receive the high and low
// words of an 8-byte-aligned doubleword, per spec.md §4.5.
func opLoadDouble(cpu *CPU, d *decoded) *Trap {
	addr := cpu.effAddr(d)
	hi, err := cpu.mem.ReadWord(addr)
	if err != nil {
		return cpu.trap(TrapMemory, err.Error())
	}
	lo, err := cpu.mem.ReadWord(addr + 4)
	if err != nil {
		return cpu.trap(TrapMemory, err.Error())
	}
	rd := d.rd &^ 1
	cpu.writeReg(rd, hi)
	cpu.writeReg(rd+1, lo)
	return nil
}

// opLoadUByte implements LDUB: zero-extended byte load.
func opLoadUByte(cpu *CPU, d *decoded) *Trap {
	addr := cpu.effAddr(d)
	b, err := cpu.mem.ReadByte(addr)
	if err != nil {
		return cpu.trap(TrapMemory, err.Error())
	}
	cpu.writeReg(d.rd, uint32(b))
	return nil
}

// opLoadSByte implements LDSB: sign-extended byte load.
func opLoadSByte(cpu *CPU, d *decoded) *Trap {
	addr := cpu.effAddr(d)
	b, err := cpu.mem.ReadByte(addr)
	if err != nil {
		return cpu.trap(TrapMemory, err.Error())
	}
	cpu.writeReg(d.rd, uint32(int32(int8(b))))
	return nil
}

// opLoadUHalf implements LDUH: zero-extended halfword load.
func opLoadUHalf(cpu *CPU, d *decoded) *Trap {
	addr := cpu.effAddr(d)
	h, err := cpu.mem.ReadHalf(addr)
	if err != nil {
		return cpu.trap(TrapMemory, err.Error())
	}
	cpu.writeReg(d.rd, uint32(h))
	return nil
}

// opLoadSHalf implements LDSH: sign-extended halfword load.
func opLoadSHalf(cpu *CPU, d *decoded) *Trap {
	addr := cpu.effAddr(d)
	h, err := cpu.mem.ReadHalf(addr)
	if err != nil {
		return cpu.trap(TrapMemory, err.Error())
	}
	cpu.writeReg(d.rd, uint32(int32(int16(h))))
	return nil
}

// opStoreWord implements ST.
func opStoreWord(cpu *CPU, d *decoded) *Trap {
	addr := cpu.effAddr(d)
	if err := cpu.mem.WriteWord(addr, cpu.readReg(d.rd)); err != nil {
		return cpu.trap(TrapMemory, err.Error())
	}
	return nil
}

// opStoreDouble implements STD: rd and rd|1 written as one doubleword.
func opStoreDouble(cpu *CPU, d *decoded) *Trap {
	addr := cpu.effAddr(d)
	rd := d.rd &^ 1
	if err := cpu.mem.WriteWord(addr, cpu.readReg(rd)); err != nil {
		return cpu.trap(TrapMemory, err.Error())
	}
	if err := cpu.mem.WriteWord(addr+4, cpu.readReg(rd+1)); err != nil {
		return cpu.trap(TrapMemory, err.Error())
	}
	return nil
}

// opStoreByte implements STB: low 8 bits of rd.
func opStoreByte(cpu *CPU, d *decoded) *Trap {
	addr := cpu.effAddr(d)
	if err := cpu.mem.WriteByte(addr, uint8(cpu.readReg(d.rd))); err != nil {
		return cpu.trap(TrapMemory, err.Error())
	}
	return nil
}

// opStoreHalf implements STH: low 16 bits of rd.
func opStoreHalf(cpu *CPU, d *decoded) *Trap {
	addr := cpu.effAddr(d)
	if err := cpu.mem.WriteHalf(addr, uint16(cpu.readReg(d.rd))); err != nil {
		return cpu.trap(TrapMemory, err.Error())
	}
	return nil
}

// opLdstub implements LDSTUB: the atomic read-then-set-0xFF primitive
// spec.md §4.6 names explicitly, delegated to the memory port so a
// single-lock Image can make it linearizable.
func opLdstub(cpu *CPU, d *decoded) *Trap {
	addr := cpu.effAddr(d)
	old, err := cpu.mem.LoadStoreUnsignedByte(addr)
	if err != nil {
		return cpu.trap(TrapMemory, err.Error())
	}
	cpu.writeReg(d.rd, uint32(old))
	return nil
}

// opSwap implements SWAP: atomic exchange of rd with the word at the
// effective address, per spec.md §4.6.
func opSwap(cpu *CPU, d *decoded) *Trap {
	addr := cpu.effAddr(d)
	old, err := cpu.mem.Swap(addr, cpu.readReg(d.rd))
	if err != nil {
		return cpu.trap(TrapMemory, err.Error())
	}
	cpu.writeReg(d.rd, old)
	return nil
}
