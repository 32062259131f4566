/*
   memio - the memory-port contract consumed by the SPARC-V8 core.

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

// Package memio defines the byte-addressed, big-endian memory interface
// the CPU core consumes. The core never assumes a concrete backing store;
// it only ever talks to a Port. Out-of-bounds or unmapped access is
// reported through the bool/error return and treated as fatal by the core.
package memio

// Port is the memory object's contract with the CPU core. All accesses
// are big-endian. Half-word and word accesses require natural alignment;
// unaligned access is undefined behavior the Port is free to reject or
// to service however it likes (the core does not specify it).
type Port interface {
	ReadByte(addr uint32) (uint8, error)
	ReadHalf(addr uint32) (uint16, error)
	ReadWord(addr uint32) (uint32, error)

	WriteByte(addr uint32, v uint8) error
	WriteHalf(addr uint32, v uint16) error
	WriteWord(addr uint32, v uint32) error

	// LoadStoreUnsignedByte performs the atomic LDSTUB read-modify-write:
	// returns the byte at addr, then stores 0xFF there, as one indivisible
	// operation relative to any other core sharing this Port.
	LoadStoreUnsignedByte(addr uint32) (uint8, error)

	// Swap performs the atomic SWAP read-modify-write: exchanges v with
	// the word at addr, returning the word previously there.
	Swap(addr uint32, v uint32) (uint32, error)
}
