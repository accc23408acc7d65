package consoleout

import (
	"fmt"
	"io"
	"os"
)

// state is the position within an escape sequence.
type state int

const (
	stNormal state = iota
	stEscape
	stCursorRow
	stCursorCol
	stAttrOn
	stAttrOff
	stSkip4
	stSkip3
	stSkip2
	stSkip1
)

// controls maps single control characters to their ANSI equivalents.
// An empty string means the character is swallowed.
var controls = map[uint8]string{
	// insert and delete line
	0x02: "\033[L",
	0x03: "\033[M",

	// clear to end of line
	0x05: "\033[K",
	0x18: "\033[K",

	// bell, shown as a flash
	0x07: "\033[?5h\033[?5l",

	// clear screen, both vt52 and adm-3a
	0x0C: "\033[H\033[2J",
	0x1A: "\033[H\033[2J",

	// home
	0x1E: "\033[H",

	// delete
	0x7F: "\b \b",

	0x12: "",
	0x13: "",
}

// attrOn handles ESC B n: reverse, half intensity, blink, underline,
// cursor on, (video mode), save cursor, (status line).
var attrOn = map[uint8]string{
	'0': "\033[7m",
	'1': "\033[1m",
	'2': "\033[5m",
	'3': "\033[4m",
	'4': "\033[?25h",
	'5': "",
	'6': "\033[s",
	'7': "",
}

// attrOff handles ESC C n, undoing attrOn.
var attrOff = map[uint8]string{
	'0': "\033[27m",
	'1': "\033[m",
	'2': "\033[25m",
	'3': "\033[24m",
	'4': "\033[?25l",
	'5': "",
	'6': "\033[u",
	'7': "",
}

// Adm3AOutputDriver translates ADM-3A (and Kaypro-style) terminal codes
// into ANSI escape sequences.
type Adm3AOutputDriver struct {

	// status is our place in the escape-sequence state machine
	status state

	// row is the pending cursor row, from ESC = row col
	row uint8

	// writer is where we send our output
	writer io.Writer
}

// GetName returns the name of this driver.
func (a3a *Adm3AOutputDriver) GetName() string {
	return "adm-3a"
}

// PutCharacter translates and writes the character.
func (a3a *Adm3AOutputDriver) PutCharacter(c uint8) {

	switch a3a.status {
	case stNormal:
		switch c {
		case 0x1B:
			a3a.status = stEscape
		case 0x01:
			a3a.status = stCursorRow
		default:
			if seq, ok := controls[c]; ok {
				a3a.emit(seq)
			} else {
				a3a.emit(string(rune(c)))
			}
		}

	case stEscape:
		a3a.status = stNormal
		switch c {
		case 0x1B:
			a3a.emit("\033")
		case '=', 'Y':
			a3a.status = stCursorRow
		case 'E':
			a3a.emit("\033[L")
		case 'R':
			a3a.emit("\033[M")
		case 'B':
			a3a.status = stAttrOn
		case 'C':
			a3a.status = stAttrOff
		case 'L', 'D':
			// set or clear a line, from r1 c1 to r2 c2
			a3a.status = stSkip4
		case '*', ' ':
			// set or clear the pixel at r c
			a3a.status = stSkip2
		default:
			// Presumably a real ANSI sequence.
			a3a.emit("\033" + string(rune(c)))
		}

	case stCursorRow:
		a3a.row = c - ' ' + 1
		a3a.status = stCursorCol

	case stCursorCol:
		a3a.status = stNormal
		a3a.emit(fmt.Sprintf("\033[%d;%dH", a3a.row, c-' '+1))

	case stAttrOn, stAttrOff:
		table, prefix := attrOn, "\033B"
		if a3a.status == stAttrOff {
			table, prefix = attrOff, "\033C"
		}
		a3a.status = stNormal
		if seq, ok := table[c]; ok {
			a3a.emit(seq)
		} else {
			a3a.emit(prefix + string(rune(c)))
		}

	case stSkip4, stSkip3, stSkip2:
		a3a.status++

	default:
		a3a.status = stNormal
	}
}

// emit writes raw bytes.  Characters above 0x7F are written as single
// bytes, not UTF-8.
func (a3a *Adm3AOutputDriver) emit(s string) {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		b = append(b, byte(r))
	}
	_, _ = a3a.writer.Write(b)
}

// SetWriter will update the writer.
func (a3a *Adm3AOutputDriver) SetWriter(w io.Writer) {
	a3a.writer = w
}

func init() {
	Register("adm-3a", func() ConsoleOutput {
		return &Adm3AOutputDriver{
			writer: os.Stdout,
		}
	})
}
