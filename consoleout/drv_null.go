package consoleout

import (
	"io"
	"os"
)

// NullOutputDriver discards everything.
type NullOutputDriver struct {
	writer io.Writer
}

// GetName returns the name of this driver.
func (no *NullOutputDriver) GetName() string {
	return "null"
}

// PutCharacter does nothing.
func (no *NullOutputDriver) PutCharacter(c uint8) {
}

// SetWriter will update the writer, which is never used.
func (no *NullOutputDriver) SetWriter(w io.Writer) {
	no.writer = w
}

func init() {
	Register("null", func() ConsoleOutput {
		return &NullOutputDriver{
			writer: os.Stdout,
		}
	})
}
