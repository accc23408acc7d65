package memory

import (
	"os"
	"testing"
)

// TestMemoryTrivial just does basic get/set tests
func TestMemoryTrivial(t *testing.T) {

	mem := new(Memory)

	mem.Set(0x00, 0x01)
	mem.Set(0x01, 0x02)

	if mem.Get(0x00) != 0x01 {
		t.Fatalf("failed to get expected result")
	}
	if mem.Get(0x01) != 0x02 {
		t.Fatalf("failed to get expected result")
	}
	if mem.GetU16(0x00) != 0x0201 {
		t.Fatalf("failed to get expected result")
	}

	mem.SetU16(0x10, 0xD400)
	if mem.Get(0x10) != 0x00 || mem.Get(0x11) != 0xD4 {
		t.Fatalf("SetU16 stored the wrong bytes")
	}

	// Fill with 0xCD
	mem.FillRange(0x00, 0xFFFF, 0xCD)

	if mem.Get(0xFFFE) != 0xCD {
		t.Fatalf("failed to get expected result")
	}
	if mem.GetU16(0x0100) != 0xCDCD {
		t.Fatalf("failed to get expected result")
	}

	out := mem.GetRange(0x300, 0x00FF)
	if len(out) != 0xFF {
		t.Fatalf("GetRange returned the wrong size")
	}
	for _, d := range out {
		if d != 0xCD {
			t.Fatalf("wrong result in GetRange")
		}
	}

	mem.SetRange(0x0000, 0x01, 0x02, 0x03)
	if mem.GetU16(0x02) != 0xCD03 {
		t.Fatalf("failed to get expected result")
	}

	// Writing past the top of memory is truncated
	mem.SetRange(0xFFFF, 'x', 'y')
	if mem.Get(0xFFFF) != 'x' || mem.Get(0x0000) != 0x01 {
		t.Fatalf("SetRange wrapped around memory")
	}
}

// TestGetString reads terminated strings
func TestGetString(t *testing.T) {
	mem := new(Memory)

	mem.SetRange(0x200, []uint8("Hello$World\x00")...)
	if s := mem.GetString(0x200, '$'); s != "Hello" {
		t.Fatalf("unexpected string '%s'", s)
	}
	if s := mem.GetString(0x200, 0x00); s != "Hello$World" {
		t.Fatalf("unexpected string '%s'", s)
	}

	// No terminator at all reads the whole of RAM, once.
	mem.FillRange(0, 0x10000, 'a')
	if s := mem.GetString(0x10, '$'); len(s) != 0x10000 {
		t.Fatalf("unexpected length %d", len(s))
	}
}

// TestRegion checks the window onto RAM
func TestRegion(t *testing.T) {
	mem := new(Memory)

	r := mem.Region(0x0400, 4)
	if r.Len() != 4 || r.Start() != 0x0400 {
		t.Fatalf("region has the wrong shape")
	}
	r.Set(0, 'a')
	r.Set(3, 'd')
	if mem.Get(0x0400) != 'a' || mem.Get(0x0403) != 'd' {
		t.Fatalf("region wrote to the wrong place")
	}

	// Truncated at the top of memory
	if mem.Region(0xFFF0, 100).Len() != 16 {
		t.Fatalf("region wasn't truncated")
	}
	if mem.Region(0x0000, -5).Len() != 0 {
		t.Fatalf("negative region isn't empty")
	}
}

// TestLoadFile ensures we can load a file
func TestLoadFile(t *testing.T) {

	mem := new(Memory)

	err := mem.LoadFile(0, "/this/file-does/not/exist")
	if err == nil {
		t.Fatalf("expected error, got none")
	}

	var file *os.File
	file, err = os.CreateTemp("", "tst-*.mem")
	if err != nil {
		t.Fatalf("failed to create temporary file")
	}
	defer os.Remove(file.Name())

	_, err = file.WriteString("Steve Kemp")
	if err != nil {
		t.Fatalf("failed to write program to temporary file")
	}
	file.Close()

	err = mem.LoadFile(0x0100, file.Name())
	if err != nil {
		t.Fatalf("failed to load file")
	}

	x := "Steve Kemp"
	for i, c := range x {
		chr := mem.Get(0x0100 + uint16(i))
		if string(chr) != string(c) {
			t.Fatalf("RAM had wrong contents at %d: %c != %c", i, c, chr)
		}
	}

	// Too large to fit
	err = mem.LoadFile(0xFFF8, file.Name())
	if err == nil {
		t.Fatalf("expected an error loading past the top of RAM")
	}
}
