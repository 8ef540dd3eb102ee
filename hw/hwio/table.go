package hwio

import (
	"fmt"

	"ntsctv/emu/log"
)

// BankIO32 is the interface implemented by everything that can be mapped
// into a Table. The address passed to the methods is the offset from the
// start of the mapped range.
type BankIO32 interface {
	Read32(off uint32) uint32
	Write32(off uint32, val uint32)
}

type mapping struct {
	start, end uint32 // inclusive
	io         BankIO32
}

// Table is an address-decoded bus. Mapped ranges are searched linearly,
// which is plenty for the handful of devices a bus carries here.
type Table struct {
	Name string

	ranges []mapping
}

func NewTable(name string) *Table {
	return &Table{Name: name}
}

func (t *Table) mapRange(start, end uint32, io BankIO32) {
	for _, m := range t.ranges {
		if start <= m.end && m.start <= end {
			panic(fmt.Errorf("hwio: mapping %08x-%08x overlaps %08x-%08x on bus %s",
				start, end, m.start, m.end, t.Name))
		}
	}
	t.ranges = append(t.ranges, mapping{start: start, end: end, io: io})
}

func (t *Table) MapReg32(addr uint32, reg *Reg32) {
	t.mapRange(addr, addr+3, reg)
}

func (t *Table) MapMem(addr uint32, mem *Mem) {
	log.ModHwIo.DebugZ("mapping mem").
		Hex32("addr", addr).
		Int("size", len(mem.Data)).
		String("area", mem.Name).
		String("bus", t.Name).
		End()
	t.mapRange(addr, addr+uint32(len(mem.Data))-1, mem)
}

// MapBank maps a register bank (a struct with hwio-tagged fields, see
// MustInitRegs) at the given base address. Only fields belonging to bankNum
// are mapped.
func (t *Table) MapBank(addr uint32, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}

	for _, reg := range regs {
		switch r := reg.regPtr.(type) {
		case *Reg32:
			t.MapReg32(addr+reg.offset, r)
		case *Mem:
			t.MapMem(addr+reg.offset, r)
		default:
			panic(fmt.Errorf("invalid reg type: %T", r))
		}
	}
}

func (t *Table) search(addr uint32) *mapping {
	for i := range t.ranges {
		if addr >= t.ranges[i].start && addr <= t.ranges[i].end {
			return &t.ranges[i]
		}
	}
	return nil
}

func (t *Table) Read32(addr uint32) uint32 {
	m := t.search(addr)
	if m == nil {
		t.logUnmapped("Read32", addr)
		return 0
	}
	return m.io.Read32(addr - m.start)
}

func (t *Table) Write32(addr uint32, val uint32) {
	m := t.search(addr)
	if m == nil {
		t.logUnmapped("Write32", addr)
		return
	}
	m.io.Write32(addr-m.start, val)
}

// Read16 reads a 16-bit value. Memory is accessed directly; for registers
// the addressed half of the 32-bit value is extracted.
func (t *Table) Read16(addr uint32) uint16 {
	m := t.search(addr)
	if m == nil {
		t.logUnmapped("Read16", addr)
		return 0
	}
	off := addr - m.start
	if mem, ok := m.io.(*Mem); ok {
		return mem.Read16(off)
	}
	shift := (off & 2) * 8
	return uint16(m.io.Read32(off&^3) >> shift)
}

// Write16 writes a 16-bit value. Memory is accessed directly; for registers
// the addressed half is replaced and the full 32-bit write goes through the
// register (its write callback sees the merged value).
func (t *Table) Write16(addr uint32, val uint16) {
	m := t.search(addr)
	if m == nil {
		t.logUnmapped("Write16", addr)
		return
	}
	off := addr - m.start
	switch io := m.io.(type) {
	case *Mem:
		io.Write16(off, val)
	case *Reg32:
		shift := (off & 2) * 8
		mask := uint32(0xFFFF) << shift
		io.Write32(off&^3, (io.Value&^mask)|uint32(val)<<shift)
	default:
		shift := (off & 2) * 8
		mask := uint32(0xFFFF) << shift
		old := m.io.Read32(off &^ 3)
		m.io.Write32(off&^3, (old&^mask)|uint32(val)<<shift)
	}
}

func (t *Table) logUnmapped(op string, addr uint32) {
	log.ModHwIo.ErrorZ("unmapped access").
		String("op", op).
		String("bus", t.Name).
		Hex32("addr", addr).
		End()
}
