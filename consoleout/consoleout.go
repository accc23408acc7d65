// Package consoleout is an abstraction over console output.
//
// Everything the formatting engine prints to the console ends up in a
// single call, PutCharacter, so all a driver has to do is decide what a
// byte looks like on the host.  Drivers register themselves by name, and
// can be swapped at runtime.
package consoleout

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// ConsoleOutput is the interface that must be implemented by anything
// that wishes to be used as a console driver.
type ConsoleOutput interface {

	// PutCharacter outputs the specified character.  It cannot fail.
	PutCharacter(c uint8)

	// GetName returns the name of the driver.
	GetName() string

	// SetWriter changes the destination of the output, which
	// defaults to STDOUT.
	SetWriter(io.Writer)
}

// ConsoleRecorder is implemented by drivers which remember what they
// were asked to display, rather than displaying it.
type ConsoleRecorder interface {

	// GetOutput returns the contents which have been displayed.
	GetOutput() string

	// Reset removes any stored state.
	Reset()
}

// Constructor is the signature of a function which creates a driver.
type Constructor func() ConsoleOutput

// handlers holds the known drivers, by name.
var handlers = struct {
	m map[string]Constructor
}{m: make(map[string]Constructor)}

// hidden contains the drivers we don't advertise to users.
var hidden = map[string]bool{
	"null":   true,
	"logger": true,
}

// Register makes a console driver available, by name.
func Register(name string, obj Constructor) {
	handlers.m[strings.ToLower(name)] = obj
}

// ConsoleOut holds our state, which is the driver currently in use.
type ConsoleOut struct {
	driver ConsoleOutput
}

// New creates an output device which uses the named driver.
func New(name string) (*ConsoleOut, error) {
	driver, err := create(name)
	if err != nil {
		return nil, err
	}
	return &ConsoleOut{driver: driver}, nil
}

// create instantiates the named driver.
func create(name string) (ConsoleOutput, error) {
	ctor, ok := handlers.m[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("failed to lookup driver by name '%s'", name)
	}
	return ctor(), nil
}

// GetDriver returns the driver in use.
func (co *ConsoleOut) GetDriver() ConsoleOutput {
	return co.driver
}

// ChangeDriver replaces the driver in use.  On failure the existing
// driver is kept.
func (co *ConsoleOut) ChangeDriver(name string) error {
	driver, err := create(name)
	if err != nil {
		return err
	}

	co.Close()
	co.driver = driver
	return nil
}

// GetName returns the name of our selected driver.
func (co *ConsoleOut) GetName() string {
	return co.driver.GetName()
}

// GetDrivers returns the sorted names of the drivers a user may choose.
func (co *ConsoleOut) GetDrivers() []string {
	valid := []string{}

	for x := range handlers.m {
		if !hidden[x] {
			valid = append(valid, x)
		}
	}
	sort.Strings(valid)
	return valid
}

// PutCharacter outputs a character, using our selected driver.
func (co *ConsoleOut) PutCharacter(c uint8) {
	co.driver.PutCharacter(c)
}

// Close releases anything the driver holds, such as a full-screen
// terminal.  Drivers without such state ignore it.
func (co *ConsoleOut) Close() {
	if c, ok := co.driver.(io.Closer); ok {
		_ = c.Close()
	}
}
