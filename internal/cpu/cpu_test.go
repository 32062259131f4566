package cpu

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sparcv8/simcore/internal/memory"
)

func encodeFmt3(op, rd, op3, rs1 uint32, i bool, rs2OrSimm13 uint32) uint32 {
	raw := op<<30 | rd<<25 | op3<<19 | rs1<<14
	if i {
		raw |= 1 << 13
		raw |= rs2OrSimm13 & 0x1FFF
	} else {
		raw |= rs2OrSimm13 & 0x1F
	}
	return raw
}

func encodeSethi(rd, imm22 uint32) uint32 {
	return 0<<30 | rd<<25 | 0x4<<22 | (imm22 & 0x3FFFFF)
}

func encodeBicc(cond uint32, annul bool, wordDisp int32) uint32 {
	raw := uint32(0)<<30 | cond<<25 | 0x2<<22 | (uint32(wordDisp) & 0x3FFFFF)
	if annul {
		raw |= 1 << 29
	}
	return raw
}

func newTestCPU(t *testing.T) (*CPU, *memory.Image) {
	t.Helper()
	mem := memory.New(4096)
	c := New(mem, 0)
	c.InitGuest(0)
	return c, mem
}

func TestSethiSetsHighBits(t *testing.T) {
	c, mem := newTestCPU(t)
	mem.WriteWord(0, encodeSethi(1, 0x12345))
	if trap := c.Step(); trap != nil {
		t.Fatalf("Step: %v", trap)
	}
	want := uint32(0x12345) << 10
	if got := c.Reg(1); got != want {
		t.Errorf("reg1 = %#x want %#x", got, want)
	}
}

func TestAddccOverflow(t *testing.T) {
	c, mem := newTestCPU(t)
	c.SetReg(1, 0x7FFFFFFF)
	c.SetReg(2, 1)
	mem.WriteWord(0, encodeFmt3(2, 3, op3Addcc, 1, false, 2))
	if trap := c.Step(); trap != nil {
		t.Fatalf("Step: %v", trap)
	}
	if got := c.Reg(3); got != 0x80000000 {
		t.Errorf("reg3 = %#x want 0x80000000", got)
	}
	n, z, v, carry := c.ICC()
	if diff := cmp.Diff([4]bool{true, false, true, false}, [4]bool{n, z, v, carry}); diff != "" {
		t.Errorf("icc mismatch (-want +got):\n%s", diff)
	}
}

func TestSubccBorrow(t *testing.T) {
	c, mem := newTestCPU(t)
	c.SetReg(1, 0)
	c.SetReg(2, 1)
	mem.WriteWord(0, encodeFmt3(2, 3, op3Subcc, 1, false, 2))
	if trap := c.Step(); trap != nil {
		t.Fatalf("Step: %v", trap)
	}
	if got := c.Reg(3); got != 0xFFFFFFFF {
		t.Errorf("reg3 = %#x want 0xffffffff", got)
	}
	n, z, v, carry := c.ICC()
	if !n || z || v || !carry {
		t.Errorf("icc = n=%v z=%v v=%v c=%v, want n=true z=false v=false c=true", n, z, v, carry)
	}
}

func TestDelayedBranchTaken(t *testing.T) {
	c, mem := newTestCPU(t)
	c.setICC(false, true, false, false) // Z set, so BE taken
	mem.WriteWord(0, encodeBicc(condBE, false, 4))
	mem.WriteWord(4, encodeFmt3(2, 1, op3Add, 0, true, 1)) // delay slot: r1 = r0+1

	if trap := c.Step(); trap != nil { // executes branch, delay slot not yet run
		t.Fatalf("Step 1: %v", trap)
	}
	if c.PC() != 4 {
		t.Fatalf("after branch pc=%#x want 4 (delay slot)", c.PC())
	}
	if trap := c.Step(); trap != nil { // executes delay slot
		t.Fatalf("Step 2: %v", trap)
	}
	if got := c.Reg(1); got != 1 {
		t.Errorf("delay slot should have executed: r1=%d want 1", got)
	}
	if c.PC() != 16 {
		t.Errorf("pc = %#x want target 16", c.PC())
	}
}

func TestDelayedBranchNotTakenAnnulled(t *testing.T) {
	c, mem := newTestCPU(t)
	c.setICC(false, false, false, false) // Z clear, BE not taken
	mem.WriteWord(0, encodeBicc(condBE, true, 4))
	mem.WriteWord(4, encodeFmt3(2, 1, op3Add, 0, true, 1)) // delay slot, should be skipped
	mem.WriteWord(8, encodeSethi(0, 0))                    // nop after the delay slot

	if trap := c.Step(); trap != nil {
		t.Fatalf("Step: %v", trap)
	}
	if c.PC() != 8 {
		t.Fatalf("pc = %#x want 8 (delay slot skipped)", c.PC())
	}
	if trap := c.Step(); trap != nil {
		t.Fatalf("Step 2: %v", trap)
	}
	if got := c.Reg(1); got != 0 {
		t.Errorf("annulled delay slot must not execute: r1=%d want 0", got)
	}
}

func TestLdstubAtomic(t *testing.T) {
	c, mem := newTestCPU(t)
	mem.WriteByte(0x100, 0x42)
	c.SetReg(1, 0x100)
	mem.WriteWord(0, encodeFmt3(3, 2, op3Ldstub, 1, true, 0))

	if trap := c.Step(); trap != nil {
		t.Fatalf("Step: %v", trap)
	}
	if got := c.Reg(2); got != 0x42 {
		t.Errorf("reg2 = %#x want 0x42", got)
	}
	b, _ := mem.ReadByte(0x100)
	if b != 0xFF {
		t.Errorf("mem[0x100] = %#x want 0xff", b)
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	c, mem := newTestCPU(t)
	startCWP := c.CWP()
	c.SetReg(RegO0, 0xCAFE)
	c.SetReg(RegO6, 0x2000) // %sp

	mem.WriteWord(0, encodeFmt3(2, RegO6, op3Save, RegO6, true, uint32(int32(-64)&0x1FFF)))
	if trap := c.Step(); trap != nil {
		t.Fatalf("SAVE: %v", trap)
	}
	if c.CWP() == startCWP {
		t.Fatalf("CWP did not rotate on SAVE")
	}
	savedSP := c.Reg(RegO6)
	if savedSP != 0x2000-64 {
		t.Errorf("new sp = %#x want %#x", savedSP, 0x2000-64)
	}
	// The caller's %o0 must now be visible as this window's %i0.
	if got := c.Reg(RegI0); got != 0xCAFE {
		t.Errorf("i0 = %#x want 0xcafe (outs-to-ins overlap)", got)
	}

	c.SetReg(RegI6, savedSP)
	mem.WriteWord(4, encodeFmt3(2, RegO6, op3Restore, RegI6, true, 0))
	c.pc = 4
	if trap := c.Step(); trap != nil {
		t.Fatalf("RESTORE: %v", trap)
	}
	if c.CWP() != startCWP {
		t.Errorf("CWP after RESTORE = %#x want %#x (back to caller window)", c.CWP(), startCWP)
	}
	if got := c.Reg(RegO0); got != 0xCAFE {
		t.Errorf("o0 after RESTORE = %#x want 0xcafe", got)
	}
}

func TestWindowOverflowSpillsToMemory(t *testing.T) {
	c, mem := newTestCPU(t)
	c.wim = uint8((uint16(c.cwp) - windowSize) % rbSize) // next SAVE lands on the invalid window

	// The trap procedure advances WIM by -16 *before* using it: seed the
	// stack pointer and l0 of the window being pushed out at that
	// post-adjustment WIM, not at the current CWP.
	postWIM := uint16((uint16(c.wim) - windowSize) % rbSize)
	c.rb[(postWIM+14)%rbSize] = 0x800  // that window's %o6/%sp
	c.rb[(postWIM+16)%rbSize] = 0xABCD // that window's %l0, will be spilled

	mem.WriteWord(0, encodeFmt3(2, RegO6, op3Save, RegO6, true, uint32(int32(-64)&0x1FFF)))
	if trap := c.Step(); trap != nil {
		t.Fatalf("SAVE: %v", trap)
	}
	spilled, err := mem.ReadWord(0x800)
	if err != nil {
		t.Fatalf("reading spilled word: %v", err)
	}
	if spilled != 0xABCD {
		t.Errorf("spilled l0 = %#x want 0xabcd", spilled)
	}
	if uint16(c.wim) != postWIM {
		t.Errorf("wim after overflow = %#x want %#x", c.wim, postWIM)
	}
}

func TestUnimplementedOpcodeTraps(t *testing.T) {
	c, mem := newTestCPU(t)
	mem.WriteWord(0, 0<<30|0x0<<22) // op2=0 (UNIMP), never wired
	trap := c.Step()
	if trap == nil {
		t.Fatal("expected a trap for an unimplemented opcode")
	}
	if trap.Code != TrapUnimplemented {
		t.Errorf("trap code = %v want TrapUnimplemented", trap.Code)
	}
	if stopped, _ := c.Stopped(); !stopped {
		t.Error("core should be stopped after a fatal trap")
	}
}
