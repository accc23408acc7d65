package printf

import "fmt"

// maxDigits is the number of digits a single conversion may produce, so
// sixteen significant bits in base 2 do not fit.
const maxDigits = 15

// scratchSize holds the digits plus a sign.
const scratchSize = maxDigits + 1

// digits maps a remainder to its (lower-case) ASCII digit.
const digits = "0123456789abcdef"

// FormatInteger writes val to the target in the given base, left-padded
// to width characters.
//
// When signed is true the value is treated as an int16, but a minus sign is
// only produced in base 10; other bases show the two's complement bits, so
// 0xD400 is "d400" whichever way it is formatted.  Padding uses '0' when
// zeroPad is set and ' ' otherwise, and always comes before any sign.
//
// The return value is the number of characters written, padding included.
// On failure -1 is returned along with the error.
func FormatInteger(t Target, val uint16, base int, signed bool, width int, zeroPad bool) (int, error) {

	if base < 2 || base > len(digits) {
		return -1, fmt.Errorf("formatting %d: base %d: %w", val, base, ErrBase)
	}

	var scratch [scratchSize]uint8
	text, err := convert(&scratch, val, uint16(base), signed)
	if err != nil {
		return -1, err
	}

	pad := uint8(' ')
	if zeroPad {
		pad = '0'
	}

	l := 0
	for i := len(text); i < width; i++ {
		if err = t.put(pad); err != nil {
			return -1, err
		}
		l++
	}

	for _, c := range text {
		if err = t.put(c); err != nil {
			return -1, err
		}
		l++
	}
	return l, nil
}

// convert renders the value into the end of the scratch area, and returns
// the part of it which was used.
func convert(scratch *[scratchSize]uint8, val uint16, base uint16, signed bool) ([]uint8, error) {

	negative := signed && base == 10 && int16(val) < 0

	// Two's complement negation also handles -32768, which becomes 32768.
	mag := val
	if negative {
		mag = -val
	}

	pos := len(scratch)
	for {
		if pos == len(scratch)-maxDigits {
			return nil, fmt.Errorf("formatting %d in base %d: %w", val, base, ErrOverflow)
		}
		pos--
		scratch[pos] = digits[mag%base]
		mag /= base
		if mag == 0 {
			break
		}
	}

	if negative {
		pos--
		scratch[pos] = '-'
	}

	return scratch[pos:], nil
}
