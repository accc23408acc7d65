// drv_termbox.go draws console output into a termbox screen.
//
// Termbox takes over the whole terminal, so it is only started when the
// first character arrives.  If it cannot be started, because there is no
// terminal for example, output falls back to the writer unchanged.

package consoleout

import (
	"io"
	"os"

	"github.com/nsf/termbox-go"
)

// TermboxOutputDriver holds our state.
type TermboxOutputDriver struct {

	// started is true once termbox has been initialized.
	started bool

	// failed is true if termbox could not be initialized.
	failed bool

	// x and y hold the cursor position.
	x int
	y int

	// writer receives output if termbox is unavailable.
	writer io.Writer
}

// GetName returns the name of this driver.
func (tb *TermboxOutputDriver) GetName() string {
	return "termbox"
}

// PutCharacter places the character at the cursor, and moves it on.
func (tb *TermboxOutputDriver) PutCharacter(c uint8) {

	if !tb.start() {
		_, _ = tb.writer.Write([]byte{c})
		return
	}

	w, h := termbox.Size()

	switch c {
	case '\r':
		tb.x = 0
	case '\n':
		tb.y++
	case '\b':
		if tb.x > 0 {
			tb.x--
		}
	case 0x07:
		// no bell
	default:
		termbox.SetCell(tb.x, tb.y, rune(c), termbox.ColorDefault, termbox.ColorDefault)
		tb.x++
		if tb.x >= w {
			tb.x = 0
			tb.y++
		}
	}

	if tb.y >= h {
		tb.scroll(w, h)
		tb.y = h - 1
	}

	termbox.SetCursor(tb.x, tb.y)
	_ = termbox.Flush()
}

// scroll moves every row of the back buffer up by one.
func (tb *TermboxOutputDriver) scroll(w, h int) {
	cells := termbox.CellBuffer()
	if len(cells) < w*h {
		return
	}
	copy(cells, cells[w:w*h])
	for i := w * (h - 1); i < w*h; i++ {
		cells[i] = termbox.Cell{Ch: ' ', Fg: termbox.ColorDefault, Bg: termbox.ColorDefault}
	}
}

// start initializes termbox, the first time it is called.
func (tb *TermboxOutputDriver) start() bool {
	if tb.started {
		return true
	}
	if tb.failed {
		return false
	}

	if err := termbox.Init(); err != nil {
		tb.failed = true
		return false
	}
	tb.started = true
	return true
}

// SetWriter will update the fallback writer.
func (tb *TermboxOutputDriver) SetWriter(w io.Writer) {
	tb.writer = w
}

// Close restores the terminal, if we took it over.
func (tb *TermboxOutputDriver) Close() error {
	if tb.started {
		termbox.Close()
		tb.started = false
	}
	return nil
}

func init() {
	Register("termbox", func() ConsoleOutput {
		return &TermboxOutputDriver{
			writer: os.Stdout,
		}
	})
}
