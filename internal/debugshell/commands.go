/*
   debugshell commands.

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

package debugshell

import (
	"fmt"
	"strconv"

	"github.com/sparcv8/simcore/internal/debughook"
	"github.com/sparcv8/simcore/internal/simcore"
)

func cmdStep(cl *cmdLine, core *simcore.Core, hook *debughook.Hook) (bool, error) {
	if t := core.CPU.Step(); t != nil {
		return false, t
	}
	fmt.Printf("pc=%#08x npc=%#08x\n", core.CPU.PC(), core.CPU.NPC())
	return false, nil
}

func cmdContinue(cl *cmdLine, core *simcore.Core, hook *debughook.Hook) (bool, error) {
	if t := core.CPU.Run(); t != nil {
		return false, t
	}
	return false, nil
}

func cmdRegisters(cl *cmdLine, core *simcore.Core, hook *debughook.Hook) (bool, error) {
	for i := 0; i < debughook.NumRegs; i += 4 {
		row := ""
		for j := 0; j < 4 && i+j < debughook.NumRegs; j++ {
			v, err := hook.Read(i + j)
			if err != nil {
				continue
			}
			row += fmt.Sprintf("r%-2d=%#08x  ", i+j, v)
		}
		if row != "" {
			fmt.Println(row)
		}
	}
	return false, nil
}

func cmdSetReg(cl *cmdLine, core *simcore.Core, hook *debughook.Hook) (bool, error) {
	idxWord := cl.getWord()
	valWord := cl.getWord()
	idx, err := strconv.Atoi(idxWord)
	if err != nil {
		return false, fmt.Errorf("bad register index %q", idxWord)
	}
	val, err := strconv.ParseUint(valWord, 0, 32)
	if err != nil {
		return false, fmt.Errorf("bad value %q", valWord)
	}
	return false, hook.Write(idx, uint32(val))
}

func cmdMemory(cl *cmdLine, core *simcore.Core, hook *debughook.Hook) (bool, error) {
	addrWord := cl.getWord()
	addr, err := strconv.ParseUint(addrWord, 0, 32)
	if err != nil {
		return false, fmt.Errorf("bad address %q", addrWord)
	}
	v, err := core.CPU.PeekMemory(uint32(addr))
	if err != nil {
		return false, err
	}
	fmt.Printf("%#08x: %#08x\n", addr, v)
	return false, nil
}

func cmdQuit(cl *cmdLine, core *simcore.Core, hook *debughook.Hook) (bool, error) {
	return true, nil
}
