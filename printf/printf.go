// Package printf is a small formatted-output engine, in the style of the
// printf found in CP/M C libraries.
//
// Only a handful of conversions are understood:
//
//	%c   a single character
//	%s   a string, up to any NUL
//	%d   a signed 16-bit decimal
//	%u   an unsigned 16-bit decimal
//	%x   a 16-bit value in lower-case hexadecimal
//
// Each may be preceded by a '0' flag and a field width of at most
// MaxWidth, so "%04x" and "%5d" work.  The width only affects the numeric conversions, and the '0'
// flag is only honoured by %x; "%05d" pads with spaces.  Any other
// character following the '%' is silently skipped, without consuming an
// argument.  There is no "%%".
//
// Output goes to a Target, which is either a Stream writing to a console
// one character at a time, or a Buffer storing into caller memory.
package printf

import "fmt"

// Fprintf formats to the given target, and returns the number of
// characters written.
//
// If formatting fails -1 is returned, along with an error. Any characters
// written before the failure remain written.
func Fprintf(t Target, format string, args ...any) (int, error) {
	a := &arguments{values: args}

	l := 0
	i := 0
	for i < len(format) {

		if format[i] != '%' {
			if err := t.put(format[i]); err != nil {
				return -1, err
			}
			l++
			i++
			continue
		}

		d := scan(format, i)
		i = d.End

		if d.Width > MaxWidth {
			return -1, fmt.Errorf("directive %q at offset %d: %w", format[d.Start:d.End], d.Start, ErrWidth)
		}

		n, err := render(t, d, a)
		if err != nil {
			return -1, fmt.Errorf("directive %q at offset %d: %w", format[d.Start:d.End], d.Start, err)
		}
		l += n
	}
	return l, nil
}

// Printf formats directly to the console, which must not be nil.
func Printf(c Console, format string, args ...any) (int, error) {
	if c == nil {
		return -1, ErrNoConsole
	}
	return Fprintf(Stream{Console: c}, format, args...)
}

// Sprintf formats into dst, which must be large enough to hold the output.
//
// No terminating NUL is added.  If dst is too small ErrCapacity is
// returned, and dst holds as much as would fit.
func Sprintf(dst []byte, format string, args ...any) (int, error) {
	return Fprintf(NewBuffer(dst), format, args...)
}

// Puts writes the string to the console, stopping at any NUL, and returns
// the number of characters written.  A nil console writes nothing.
func Puts(c Console, s string) int {
	if c == nil {
		return 0
	}
	l := 0
	for l < len(s) && s[l] != 0x00 {
		c.PutCharacter(s[l])
		l++
	}
	return l
}

// render performs a single directive.
func render(t Target, d Directive, a *arguments) (int, error) {

	switch d.Kind {
	case Char:
		c, err := a.char(d)
		if err != nil {
			return -1, err
		}
		if err = t.put(c); err != nil {
			return -1, err
		}
		return 1, nil

	case String:
		s, err := a.str(d)
		if err != nil {
			return -1, err
		}
		for i := 0; i < len(s); i++ {
			if err = t.put(s[i]); err != nil {
				return -1, err
			}
		}
		return len(s), nil

	case Signed, Unsigned:
		v, err := a.integer(d)
		if err != nil {
			return -1, err
		}
		// The '0' flag is not honoured for decimals.
		return FormatInteger(t, v, 10, d.Kind == Signed, d.Width, false)

	case Hex:
		v, err := a.integer(d)
		if err != nil {
			return -1, err
		}
		return FormatInteger(t, v, 16, true, d.Width, d.ZeroPad)
	}

	// Unknown conversions are skipped.
	return 0, nil
}
