package printf

import "fmt"

// arguments is the cursor over the values passed to one formatting call.
//
// Each call creates its own, so nested or concurrent calls never disturb
// each other's position.
type arguments struct {
	values []any
	pos    int
}

// next pops the argument for the given directive.
func (a *arguments) next(d Directive) (any, error) {
	if a.pos >= len(a.values) {
		return nil, fmt.Errorf("%%%c needs argument %d, only %d given: %w", d.Verb, a.pos+1, len(a.values), ErrMissingArgument)
	}
	v := a.values[a.pos]
	a.pos++
	return v, nil
}

// char pops a single character.
//
// Integers contribute their low byte, and strings their first byte.
func (a *arguments) char(d Directive) (uint8, error) {
	v, err := a.next(d)
	if err != nil {
		return 0, err
	}

	switch s := v.(type) {
	case string:
		if len(s) == 0 {
			return 0x00, nil
		}
		return s[0], nil
	case []byte:
		if len(s) == 0 {
			return 0x00, nil
		}
		return s[0], nil
	}

	w, ok := word(v)
	if !ok {
		return 0, fmt.Errorf("%%%c given %T: %w", d.Verb, v, ErrArgumentType)
	}
	return uint8(w), nil
}

// str pops a string, truncated at the first NUL if it has one.
func (a *arguments) str(d Directive) (string, error) {
	v, err := a.next(d)
	if err != nil {
		return "", err
	}

	var s string
	switch t := v.(type) {
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return "", fmt.Errorf("%%%c given %T: %w", d.Verb, v, ErrArgumentType)
	}

	for i := 0; i < len(s); i++ {
		if s[i] == 0x00 {
			return s[:i], nil
		}
	}
	return s, nil
}

// integer pops a value for one of the numeric conversions.
func (a *arguments) integer(d Directive) (uint16, error) {
	v, err := a.next(d)
	if err != nil {
		return 0, err
	}

	w, ok := word(v)
	if !ok {
		return 0, fmt.Errorf("%%%c given %T: %w", d.Verb, v, ErrArgumentType)
	}
	return w, nil
}

// word truncates any integer to the 16-bit machine word.
func word(v any) (uint16, bool) {
	switch n := v.(type) {
	case int:
		return uint16(n), true
	case int8:
		return uint16(n), true
	case int16:
		return uint16(n), true
	case int32:
		return uint16(n), true
	case int64:
		return uint16(n), true
	case uint:
		return uint16(n), true
	case uint8:
		return uint16(n), true
	case uint16:
		return n, true
	case uint32:
		return uint16(n), true
	case uint64:
		return uint16(n), true
	case uintptr:
		return uint16(n), true
	}
	return 0, false
}
