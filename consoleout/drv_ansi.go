package consoleout

import (
	"io"
	"os"
)

// AnsiOutputDriver passes every character straight through, leaving the
// host terminal to interpret any escape sequences.
type AnsiOutputDriver struct {
	// writer is where we send our output
	writer io.Writer
}

// GetName returns the name of this driver.
func (ad *AnsiOutputDriver) GetName() string {
	return "ansi"
}

// PutCharacter writes the character, unchanged.
func (ad *AnsiOutputDriver) PutCharacter(c uint8) {
	_, _ = ad.writer.Write([]byte{c})
}

// SetWriter will update the writer.
func (ad *AnsiOutputDriver) SetWriter(w io.Writer) {
	ad.writer = w
}

func init() {
	Register("ansi", func() ConsoleOutput {
		return &AnsiOutputDriver{
			writer: os.Stdout,
		}
	})
}
