package hwio_test

import (
	"testing"

	"ntsctv/hw/hwio"
)

type testBank struct {
	t   testing.TB
	Bus *hwio.Table

	// bank 0: control registers
	CTRL   hwio.Reg32 `hwio:"bank=0,offset=0x0,reset=0x11,wcb"`
	STATUS hwio.Reg32 `hwio:"bank=0,offset=0x4,readonly,rcb"`
	TRIG   hwio.Reg32 `hwio:"bank=0,offset=0x8,writeonly,wcb"`
	MASKED hwio.Reg32 `hwio:"bank=0,offset=0xc,reset=0xff00ff00,romask=0xffff0000"`

	// bank 1: a memory area
	RAM hwio.Mem `hwio:"bank=1,offset=0x0,size=0x100"`

	wrote   uint32
	trigged uint32
}

func newTestBank(tb testing.TB) *testBank {
	bank := &testBank{t: tb}
	hwio.MustInitRegs(bank)

	bank.Bus = hwio.NewTable("test")
	bank.Bus.MapBank(0x4000_0000, bank, 0)
	bank.Bus.MapBank(0x2000_0000, bank, 1)
	return bank
}

func (b *testBank) WriteCTRL(old, val uint32) { b.wrote = val }
func (b *testBank) ReadSTATUS(val uint32) uint32 {
	return val | 0x80
}
func (b *testBank) WriteTRIG(old, val uint32) { b.trigged = val }

func (b *testBank) wantRead32(addr, want uint32) {
	b.t.Helper()
	if got := b.Bus.Read32(addr); got != want {
		b.t.Errorf("Read32(%08X) = %08X, want %08X", addr, got, want)
	}
}

func TestTableRegs(t *testing.T) {
	b := newTestBank(t)

	// Reset value and write callback.
	b.wantRead32(0x4000_0000, 0x11)
	b.Bus.Write32(0x4000_0000, 0xabcd)
	b.wantRead32(0x4000_0000, 0xabcd)
	if b.wrote != 0xabcd {
		t.Errorf("wrote = %08X, want 0000ABCD", b.wrote)
	}

	// Read-only register with read callback.
	b.STATUS.Value = 0x01
	b.wantRead32(0x4000_0004, 0x81)
	b.Bus.Write32(0x4000_0004, 0xffff_ffff)
	if b.STATUS.Value != 0x01 {
		t.Errorf("STATUS.Value = %08X, want 00000001", b.STATUS.Value)
	}

	// Write-only register: reads return 0, writes hit the callback.
	b.Bus.Write32(0x4000_0008, 0x3)
	if b.trigged != 0x3 {
		t.Errorf("trigged = %08X, want 00000003", b.trigged)
	}
	b.wantRead32(0x4000_0008, 0)

	// RoMask: upper half sticks.
	b.Bus.Write32(0x4000_000c, 0x1234_5678)
	b.wantRead32(0x4000_000c, 0xff00_5678)
}

func TestTableMem(t *testing.T) {
	b := newTestBank(t)

	b.Bus.Write32(0x2000_0000, 0xdead_beef)
	b.wantRead32(0x2000_0000, 0xdead_beef)
	if got := b.Bus.Read16(0x2000_0002); got != 0xdead {
		t.Errorf("Read16 = %04X, want DEAD", got)
	}
	b.Bus.Write16(0x2000_0010, 0x1234)
	if got := b.Bus.Read16(0x2000_0010); got != 0x1234 {
		t.Errorf("Read16 = %04X, want 1234", got)
	}
}

func TestTableHalfReg(t *testing.T) {
	b := newTestBank(t)

	// 16-bit write to the upper half of a register goes through the write
	// callback with the merged 32-bit value.
	b.Bus.Write32(0x4000_0000, 0x1111_2222)
	b.Bus.Write16(0x4000_0002, 0xaaaa)
	b.wantRead32(0x4000_0000, 0xaaaa_2222)
	if b.wrote != 0xaaaa_2222 {
		t.Errorf("wrote = %08X, want AAAA2222", b.wrote)
	}
	if got := b.Bus.Read16(0x4000_0002); got != 0xaaaa {
		t.Errorf("Read16 = %04X, want AAAA", got)
	}
}

func TestTableUnmapped(t *testing.T) {
	b := newTestBank(t)

	b.wantRead32(0x5000_0000, 0)
	b.Bus.Write32(0x5000_0000, 0x1) // logged, no effect
}

func TestTableOverlap(t *testing.T) {
	b := newTestBank(t)

	defer func() {
		if recover() == nil {
			t.Fatal("overlapping mapping: expected panic")
		}
	}()
	b.Bus.MapReg32(0x2000_0080, &b.CTRL)
}

func TestInitRegsBadBank(t *testing.T) {
	type badBank struct {
		REG hwio.Reg32 `hwio:"offset=0x0,wcb"` // no WriteREG method
	}
	defer func() {
		if recover() == nil {
			t.Fatal("missing callback: expected panic")
		}
	}()
	hwio.MustInitRegs(&badBank{})
}
