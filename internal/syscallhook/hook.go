/*
   syscallhook - the guest system-call argument/return contract.

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

// Package syscallhook lets a host implement guest system calls (the
// usual Ticc-based trap a cross compiler's libc uses) without the
// simulator core knowing anything about any particular ABI: arguments
// arrive in %o0-%o5, a byte buffer in guest memory can be read or
// written by address, and the routine posts a return value in %o0
// once it is done.
package syscallhook

import (
	"fmt"

	"github.com/sparcv8/simcore/internal/cpu"
	"github.com/sparcv8/simcore/internal/memio"
)

// Hook adapts a *cpu.CPU and its memio.Port to the host-side syscall
// emulation contract.
type Hook struct {
	CPU *cpu.CPU
	Mem memio.Port
}

// New wraps c/mem.
func New(c *cpu.CPU, mem memio.Port) *Hook { return &Hook{CPU: c, Mem: mem} }

// maxSyscallArgs mirrors the ABI's six-register argument-passing
// convention (%o0..%o5).
const maxSyscallArgs = 6

// Arg returns syscall argument n (0-indexed, n < 6), read from %o0+n.
func (h *Hook) Arg(n int) (uint32, error) {
	if n < 0 || n >= maxSyscallArgs {
		return 0, fmt.Errorf("syscallhook: argument index %d out of range", n)
	}
	return h.CPU.Reg(uint8(cpu.RegO0 + n)), nil
}

// SetArg overwrites syscall argument n, used by a host that needs to
// rewrite an argument before letting the guest see it (e.g. translating
// a path).
func (h *Hook) SetArg(n int, v uint32) error {
	if n < 0 || n >= maxSyscallArgs {
		return fmt.Errorf("syscallhook: argument index %d out of range", n)
	}
	h.CPU.SetReg(uint8(cpu.RegO0+n), v)
	return nil
}

// ReadBuf copies length bytes out of guest memory starting at addr,
// the way a host implementing e.g. write(2) needs to read the guest's
// buffer argument.
func (h *Hook) ReadBuf(addr uint32, length int) ([]byte, error) {
	buf := make([]byte, length)
	for i := range buf {
		b, err := h.Mem.ReadByte(addr + uint32(i))
		if err != nil {
			return nil, err
		}
		buf[i] = b
	}
	return buf, nil
}

// WriteBuf copies buf into guest memory at addr, the way a host
// implementing e.g. read(2) needs to fill the guest's buffer argument.
func (h *Hook) WriteBuf(addr uint32, buf []byte) error {
	for i, b := range buf {
		if err := h.Mem.WriteByte(addr+uint32(i), b); err != nil {
			return err
		}
	}
	return nil
}

// ReturnFromSyscall posts ret in %o0. It does not change PC or nPC:
// the guest is not moved past the trap instruction that invoked the
// syscall.
func (h *Hook) ReturnFromSyscall(ret uint32) {
	h.CPU.SetReg(cpu.RegO0, ret)
}
