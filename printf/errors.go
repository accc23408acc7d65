package printf

import "errors"

var (
	// ErrOverflow is returned when a value needs more digits than the
	// conversion scratch area can hold.
	ErrOverflow = errors.New("OVERFLOW")

	// ErrCapacity is returned when a Buffer has no room for the next
	// character.
	ErrCapacity = errors.New("CAPACITY EXCEEDED")

	// ErrBase is returned when an integer is formatted in a base outside
	// the range 2-16.
	ErrBase = errors.New("INVALID BASE")

	// ErrWidth is returned when a directive requests a field width
	// larger than MaxWidth.
	ErrWidth = errors.New("WIDTH TOO LARGE")

	// ErrNoConsole is returned when a Stream has no console to write to.
	ErrNoConsole = errors.New("NO CONSOLE")

	// ErrMissingArgument is returned when a directive has no argument
	// left to consume.
	ErrMissingArgument = errors.New("MISSING ARGUMENT")

	// ErrArgumentType is returned when the argument for a directive has a
	// type the directive cannot render.
	ErrArgumentType = errors.New("WRONG ARGUMENT TYPE")
)
