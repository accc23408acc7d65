package printf

import "fmt"

// Console is the single-character output primitive a Stream writes to.
//
// It is satisfied by the consoleout drivers, and by the CP/M host which
// routes each character through BDOS function 2.
type Console interface {
	// PutCharacter writes the character to the device. It always succeeds.
	PutCharacter(c uint8)
}

// Target is where the characters of a single formatting call go.
//
// There are exactly two implementations, Stream and *Buffer, and the
// choice is made once by the caller for the whole call.
type Target interface {
	put(c uint8) error
}

// Stream sends every character straight to a console.
type Stream struct {
	Console Console
}

// put hands the character to the console.
func (s Stream) put(c uint8) error {
	if s.Console == nil {
		return ErrNoConsole
	}
	s.Console.PutCharacter(c)
	return nil
}

// Storage is caller-owned memory a Buffer renders into.
type Storage interface {
	// Set stores the character at the given offset.
	Set(i int, c uint8)

	// Len returns the capacity of the storage.
	Len() int
}

// byteStorage adapts a plain slice to the Storage interface.
type byteStorage []byte

func (b byteStorage) Set(i int, c uint8) { b[i] = c }
func (b byteStorage) Len() int           { return len(b) }

// Buffer stores characters into caller-owned storage, advancing a
// write cursor after each one.
//
// A write past the end of the storage fails with ErrCapacity and nothing
// is stored.  No terminating NUL is ever written.
type Buffer struct {
	// store is the destination
	store Storage

	// pos is the write cursor
	pos int
}

// NewBuffer returns a Buffer writing into dst, starting at offset zero.
func NewBuffer(dst []byte) *Buffer {
	return &Buffer{store: byteStorage(dst)}
}

// NewStorageBuffer returns a Buffer writing into the given storage.
func NewStorageBuffer(s Storage) *Buffer {
	return &Buffer{store: s}
}

// put stores the character at the cursor.
func (b *Buffer) put(c uint8) error {
	if b.pos >= b.store.Len() {
		return fmt.Errorf("writing offset %d of %d: %w", b.pos, b.store.Len(), ErrCapacity)
	}
	b.store.Set(b.pos, c)
	b.pos++
	return nil
}

// Len returns the number of characters stored so far.
func (b *Buffer) Len() int {
	return b.pos
}

// Bytes returns the characters stored so far, when the buffer was
// created by NewBuffer.  For other storage it returns nil.
func (b *Buffer) Bytes() []byte {
	if bs, ok := b.store.(byteStorage); ok {
		return bs[:b.pos]
	}
	return nil
}
