package printf

// Kind identifies the conversion a directive performs.
type Kind int

const (
	// Unknown is a directive whose conversion character isn't recognized.
	// It produces no output and consumes no argument.
	Unknown Kind = iota

	// Char is %c.
	Char

	// String is %s.
	String

	// Signed is %d.
	Signed

	// Unsigned is %u.
	Unsigned

	// Hex is %x.
	Hex
)

// MaxWidth is the largest field width a directive can request, the size
// of the 16-bit address space.  Wider directives fail with ErrWidth.
const MaxWidth = 0xFFFF

// Directive is a single "%[0][width]conversion" sequence.
type Directive struct {
	// Kind is the conversion to perform.
	Kind Kind

	// Verb is the conversion character, or 0 if the format string
	// ended before one was found.
	Verb byte

	// ZeroPad is set if a literal '0' immediately followed the '%'.
	ZeroPad bool

	// Width is the minimum field width, zero meaning no padding.  It is
	// MaxWidth+1 when the digits given exceed MaxWidth.
	Width int

	// Start is the offset of the '%' within the format string.
	Start int

	// End is the offset just past the directive.
	End int
}

// Consumes returns true if the directive pops an argument.
func (d Directive) Consumes() bool {
	return d.Kind != Unknown
}

// kinds maps conversion characters to their kind.
var kinds = map[byte]Kind{
	'c': Char,
	's': String,
	'd': Signed,
	'u': Unsigned,
	'x': Hex,
}

// isDigit reports whether c is a decimal digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// scan parses the directive introduced by the '%' at format[start].
func scan(format string, start int) Directive {
	d := Directive{Start: start}

	i := start + 1
	if i < len(format) && format[i] == '0' {
		d.ZeroPad = true
		i++
	}

	for i < len(format) && isDigit(format[i]) {
		// Stop accumulating once too wide, so long digit runs cannot
		// overflow.
		if d.Width <= MaxWidth {
			d.Width = d.Width*10 + int(format[i]-'0')
		}
		if d.Width > MaxWidth {
			d.Width = MaxWidth + 1
		}
		i++
	}

	// Ran off the end of the string, so there is no conversion.
	if i >= len(format) {
		d.End = len(format)
		return d
	}

	d.Verb = format[i]
	d.Kind = kinds[d.Verb]
	d.End = i + 1
	return d
}

// Parse returns the directives within format which consume an argument,
// in the order they will consume them.
func Parse(format string) []Directive {
	var out []Directive

	i := 0
	for i < len(format) {
		if format[i] != '%' {
			i++
			continue
		}
		d := scan(format, i)
		if d.Consumes() {
			out = append(out, d)
		}
		i = d.End
	}
	return out
}

// IsHexDigit reports whether c is a hexadecimal digit, of either case.
func IsHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
