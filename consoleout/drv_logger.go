package consoleout

import (
	"io"
	"os"
	"strings"
)

// OutputLoggingDriver records the characters it is given instead of
// displaying them.
//
// It exists for tests, which can recover the output via the
// ConsoleRecorder interface.
type OutputLoggingDriver struct {

	// writer is where we would send our output
	writer io.Writer

	// history stores everything written so far
	history strings.Builder
}

// GetName returns the name of this driver.
func (ol *OutputLoggingDriver) GetName() string {
	return "logger"
}

// PutCharacter appends the character to our history.
func (ol *OutputLoggingDriver) PutCharacter(c uint8) {
	ol.history.WriteByte(c)
}

// SetWriter will update the writer.
func (ol *OutputLoggingDriver) SetWriter(w io.Writer) {
	ol.writer = w
}

// GetOutput returns our history.
func (ol *OutputLoggingDriver) GetOutput() string {
	return ol.history.String()
}

// Reset empties our history.
func (ol *OutputLoggingDriver) Reset() {
	ol.history.Reset()
}

func init() {
	Register("logger", func() ConsoleOutput {
		return &OutputLoggingDriver{
			writer: os.Stdout,
		}
	})
}
