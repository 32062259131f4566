package memory

import (
	"testing"
)

func TestReadWriteWordRoundTrip(t *testing.T) {
	m := New(256)
	for _, v := range []uint32{0, 1, 0x7fffffff, 0x80000000, 0xffffffff, 0x12345678} {
		if err := m.WriteWord(0x10, v); err != nil {
			t.Fatalf("WriteWord: %v", err)
		}
		got, err := m.ReadWord(0x10)
		if err != nil {
			t.Fatalf("ReadWord: %v", err)
		}
		if got != v {
			t.Errorf("round trip: got %#x want %#x", got, v)
		}
	}
}

func TestReadWriteByteRoundTrip(t *testing.T) {
	m := New(16)
	if err := m.WriteByte(4, 0xAB); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	b, err := m.ReadByte(4)
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if b != 0xAB {
		t.Errorf("got %#x want %#x", b, 0xAB)
	}
}

func TestBigEndianWordLayout(t *testing.T) {
	m := New(8)
	if err := m.WriteWord(0, 0x01020304); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}
	want := []byte{0x01, 0x02, 0x03, 0x04}
	for i, w := range want {
		b, err := m.ReadByte(uint32(i))
		if err != nil {
			t.Fatalf("ReadByte(%d): %v", i, err)
		}
		if b != w {
			t.Errorf("byte %d: got %#x want %#x", i, b, w)
		}
	}
}

func TestBigEndianHalfLayout(t *testing.T) {
	m := New(4)
	if err := m.WriteHalf(0, 0xABCD); err != nil {
		t.Fatalf("WriteHalf: %v", err)
	}
	b0, _ := m.ReadByte(0)
	b1, _ := m.ReadByte(1)
	if b0 != 0xAB || b1 != 0xCD {
		t.Errorf("got %#x %#x want 0xAB 0xCD", b0, b1)
	}
}

func TestOutOfRange(t *testing.T) {
	m := New(4)
	if _, err := m.ReadWord(4); err == nil {
		t.Error("expected out-of-range error")
	}
	if err := m.WriteByte(4, 1); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestLoadStoreUnsignedByte(t *testing.T) {
	m := New(4096)
	if err := m.WriteByte(0x1000-1, 0); err != nil {
		t.Fatal("sanity check address in range expected")
	}
	addr := uint32(0x100)
	if err := m.WriteByte(addr, 0x42); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	old, err := m.LoadStoreUnsignedByte(addr)
	if err != nil {
		t.Fatalf("LoadStoreUnsignedByte: %v", err)
	}
	if old != 0x42 {
		t.Errorf("got %#x want %#x", old, 0x42)
	}
	after, _ := m.ReadByte(addr)
	if after != 0xFF {
		t.Errorf("after ldstub: got %#x want 0xff", after)
	}
}

func TestSwap(t *testing.T) {
	m := New(16)
	if err := m.WriteWord(0, 0x11111111); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}
	old, err := m.Swap(0, 0x22222222)
	if err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if old != 0x11111111 {
		t.Errorf("got %#x want %#x", old, 0x11111111)
	}
	cur, _ := m.ReadWord(0)
	if cur != 0x22222222 {
		t.Errorf("got %#x want %#x", cur, 0x22222222)
	}
}

func TestLoadBytes(t *testing.T) {
	m := New(16)
	if err := m.LoadBytes(4, []byte{0xDE, 0xAD, 0xBE, 0xEF}); err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	w, err := m.ReadWord(4)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}
	if w != 0xDEADBEEF {
		t.Errorf("got %#x want %#x", w, 0xDEADBEEF)
	}
}
