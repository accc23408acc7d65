// Package memory provides the 64k of RAM within which the emulated CP/M
// programs run, and into which formatted output can be rendered.
package memory

import (
	"fmt"
	"os"
)

// Memory provides 64K bytes array memory.
type Memory struct {
	buf [65536]uint8
}

// Set sets a byte at addr of memory.
func (m *Memory) Set(addr uint16, value uint8) {
	m.buf[addr] = value
}

// Get returns a byte at addr of memory.
func (m *Memory) Get(addr uint16) uint8 {
	return m.buf[addr]
}

// GetU16 returns a little-endian word from the given address.
func (m *Memory) GetU16(addr uint16) uint16 {
	l := m.Get(addr)
	h := m.Get(addr + 1)
	return (uint16(h) << 8) | uint16(l)
}

// SetU16 stores a little-endian word at the given address.
func (m *Memory) SetU16(addr uint16, value uint16) {
	m.Set(addr, uint8(value))
	m.Set(addr+1, uint8(value >> 8))
}

// SetRange copies bytes to RAM, starting at the given address.
// Anything which would run past the top of memory is dropped.
func (m *Memory) SetRange(addr uint16, data ...uint8) {
	copy(m.buf[addr:], data)
}

// FillRange fills an area of memory with the given byte, wrapping at the
// top of memory.
func (m *Memory) FillRange(addr uint16, size int, char uint8) {
	for ; size > 0; size-- {
		m.buf[addr] = char
		addr++
	}
}

// GetRange returns a copy of the contents of a given range.
func (m *Memory) GetRange(addr uint16, size int) []uint8 {
	ret := make([]uint8, 0, size)
	for ; size > 0; size-- {
		ret = append(ret, m.buf[addr])
		addr++
	}
	return ret
}

// GetString returns the text starting at addr, up to (but not including)
// the given terminator.  CP/M uses '$' for the console, C uses NUL.
func (m *Memory) GetString(addr uint16, terminator uint8) string {
	var ret []uint8
	for i := 0; i < len(m.buf); i++ {
		c := m.buf[addr]
		if c == terminator {
			break
		}
		ret = append(ret, c)
		addr++
	}
	return string(ret)
}

// LoadFile clears RAM, then loads the named file to the given address.
func (m *Memory) LoadFile(addr uint16, name string) error {

	for i := range m.buf {
		m.buf[i] = 0x00
	}

	prog, err := os.ReadFile(name)
	if err != nil {
		return err
	}

	if len(prog) > len(m.buf)-int(addr) {
		return fmt.Errorf("%s is %d bytes, too large to load at 0x%04X", name, len(prog), addr)
	}

	m.SetRange(addr, prog...)
	return nil
}

// Region is a fixed-size window onto RAM, addressed from zero.
//
// It is used as the storage of a printf.Buffer, so that formatted text
// can be written directly into the memory of the emulated machine.
type Region struct {
	mem   *Memory
	start uint16
	size  int
}

// Region returns a window of size bytes starting at addr.  The window is
// truncated at the top of memory.
func (m *Memory) Region(addr uint16, size int) *Region {
	if limit := len(m.buf) - int(addr); size > limit {
		size = limit
	}
	if size < 0 {
		size = 0
	}
	return &Region{mem: m, start: addr, size: size}
}

// Set stores a character at offset i of the window.
func (r *Region) Set(i int, c uint8) {
	r.mem.Set(r.start+uint16(i), c)
}

// Len returns the size of the window.
func (r *Region) Len() int {
	return r.size
}

// Start returns the address of the first byte of the window.
func (r *Region) Start() uint16 {
	return r.start
}
