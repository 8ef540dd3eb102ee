package hwio

import (
	"encoding/binary"

	"ntsctv/emu/log"
)

// Mem is a linear memory area that can be mapped into a Table. Contrary to
// registers, memory is byte-addressed: 16 and 32-bit accesses assemble
// little-endian values from the backing buffer.
type Mem struct {
	Name  string // name of the memory area (for debugging)
	Data  []byte // actual memory buffer
	Flags RWFlags
}

func (m *Mem) Read8(off uint32) uint8 {
	return m.Data[off]
}

func (m *Mem) Read16(off uint32) uint16 {
	return binary.LittleEndian.Uint16(m.Data[off:])
}

func (m *Mem) Read32(off uint32) uint32 {
	return binary.LittleEndian.Uint32(m.Data[off:])
}

func (m *Mem) Write8(off uint32, val uint8) {
	if m.readonly("Write8") {
		return
	}
	m.Data[off] = val
}

func (m *Mem) Write16(off uint32, val uint16) {
	if m.readonly("Write16") {
		return
	}
	binary.LittleEndian.PutUint16(m.Data[off:], val)
}

func (m *Mem) Write32(off uint32, val uint32) {
	if m.readonly("Write32") {
		return
	}
	binary.LittleEndian.PutUint32(m.Data[off:], val)
}

func (m *Mem) readonly(op string) bool {
	if m.Flags&ReadOnlyFlag == 0 {
		return false
	}
	log.ModHwIo.ErrorZ("invalid write to readonly memory").
		String("op", op).
		String("name", m.Name).
		End()
	return true
}
