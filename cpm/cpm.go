// Package cpm is a small CP/M host, built upon an emulated Z80.
//
// Only the console side of the BDOS is implemented: writing characters
// and strings to the console, or to the printer.  That is enough for
// programs which do nothing but print, and it gives the formatting engine
// a console which behaves exactly like the real thing - every character is
// delivered by a genuine "CALL 0x0005" with C=2, executed by the CPU.
package cpm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/koron-go/z80"
	"github.com/skx/cpmprintf/consoleout"
	"github.com/skx/cpmprintf/memory"
	"github.com/skx/cpmprintf/printf"
)

var (
	// ErrExit will be used to handle a CP/M binary calling Exit.
	//
	// It is handled internally, and never returned to callers.
	ErrExit = errors.New("EXIT")

	// ErrHalt will be used to note that the Z80 emulator executed a HALT
	// operation, and that terminated the execution of code.
	//
	// It should be handled and expected by callers.
	ErrHalt = errors.New("HALT")

	// ErrUnimplemented will be used to handle a CP/M binary calling an unimplemented syscall.
	ErrUnimplemented = errors.New("UNIMPLEMENTED")

	// ErrReserved is returned when Sprintf is asked to render into the
	// memory Call uses for its stub and return address.
	ErrReserved = errors.New("RESERVED MEMORY")
)

const (
	// DefaultDMAAddress is where the command tail lives.
	DefaultDMAAddress = 0x0080

	// TPA is where binaries are loaded, and executed from.
	TPA = 0x0100

	// bdosEntry is the address programs CALL to reach the BDOS.
	bdosEntry = 0x0005

	// stubAddress is where we assemble the code for a single BDOS call.
	// The stack starts there too, so the return address sits just below.
	stubAddress = 0xFE00

	// stubSize is the length of the assembled call.
	stubSize = 9

	// reservedStart and reservedEnd bound the memory each Call overwrites.
	reservedStart = stubAddress - 2
	reservedEnd   = stubAddress + stubSize

	// stackTop is the initial stack pointer for loaded programs.
	stackTop = 0xFFFE
)

// CPMHandlerType contains the signature of a CP/M BDOS function.
type CPMHandlerType func(cpm *CPM) error

// CPMHandler contains details of a specific call we implement.
//
// While we mostly need a "number to handler", mapping having a name
// is useful for the logs we produce.
type CPMHandler struct {
	// Desc contain the human-readable description of the given CP/M syscall.
	Desc string

	// Handler contains the function which should be involved for this syscall.
	Handler CPMHandlerType
}

// CPM is the object that holds our emulator state
type CPM struct {

	// Syscalls contains the syscalls we know how to emulate, indexed
	// by their ID.
	Syscalls map[uint8]CPMHandler

	// Memory contains the memory the system runs with.
	Memory *memory.Memory

	// CPU contains the virtual CPU we use to execute code.
	CPU z80.CPU

	// Logger holds a logger which we use for debugging and diagnostics.
	Logger *slog.Logger

	// output is the console driver characters are finally sent to.
	output *consoleout.ConsoleOut

	// prnPath contains the file to which printer output is appended.
	prnPath string

	// start is where execution begins.
	start uint16
}

// cpmoption is a function which configures a CPM object, within New.
type cpmoption func(c *CPM) error

// WithOutputDriver selects the console output driver, by name.
func WithOutputDriver(name string) cpmoption {
	return func(c *CPM) error {
		driver, err := consoleout.New(name)
		if err != nil {
			return err
		}
		c.output = driver
		return nil
	}
}

// WithPrinterPath sets the file to which printer output is written.
func WithPrinterPath(path string) cpmoption {
	return func(c *CPM) error {
		c.prnPath = path
		return nil
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) cpmoption {
	return func(c *CPM) error {
		c.Logger = logger
		return nil
	}
}

// New returns a new emulation object, with 64K of empty RAM.
func New(options ...cpmoption) (*CPM, error) {

	sys := make(map[uint8]CPMHandler)
	sys[0] = CPMHandler{
		Desc:    "P_TERMCPM",
		Handler: BdosSysCallExit,
	}
	sys[2] = CPMHandler{
		Desc:    "C_WRITE",
		Handler: BdosSysCallWriteChar,
	}
	sys[5] = CPMHandler{
		Desc:    "L_WRITE",
		Handler: BdosSysCallPrinterWrite,
	}
	sys[6] = CPMHandler{
		Desc:    "C_RAWIO",
		Handler: BdosSysCallRawIO,
	}
	sys[9] = CPMHandler{
		Desc:    "C_WRITESTRING",
		Handler: BdosSysCallWriteString,
	}
	sys[12] = CPMHandler{
		Desc:    "S_BDOSVER",
		Handler: BdosSysCallBDOSVersion,
	}

	tmp := &CPM{
		Syscalls: sys,
		Memory:   new(memory.Memory),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		prnPath:  "print.log",
		start:    TPA,
	}

	for _, option := range options {
		if err := option(tmp); err != nil {
			return nil, err
		}
	}

	if tmp.output == nil {
		driver, err := consoleout.New("adm-3a")
		if err != nil {
			return nil, err
		}
		tmp.output = driver
	}

	tmp.fixupRAM()
	return tmp, nil
}

// GetOutputDriver returns the console driver in use.
func (cpm *CPM) GetOutputDriver() consoleout.ConsoleOutput {
	return cpm.output.GetDriver()
}

// Close releases the console driver.
func (cpm *CPM) Close() {
	cpm.output.Close()
}

// fixupRAM prepares low memory.
//
// Address 0x0000 is where a program goes when it returns, or performs a
// warm boot.  We place a HALT there, so that terminates the emulation.
// The BDOS entry point at 0x0005 is caught by a breakpoint, but we place
// a RET there too.
func (cpm *CPM) fixupRAM() {
	cpm.Memory.Set(0x0000, 0x76)
	cpm.Memory.Set(bdosEntry, 0xC9)
}

// LoadBinary loads the given CP/M binary at the default address of 0x0100,
// where it can then be launched by Execute.
func (cpm *CPM) LoadBinary(filename string) error {

	err := cpm.Memory.LoadFile(TPA, filename)
	if err != nil {
		return fmt.Errorf("failed to load %s: %s", filename, err)
	}

	cpm.start = TPA
	cpm.fixupRAM()
	return nil
}

// Execute runs the loaded binary, with the specified arguments.
//
// The arguments are upper-cased, joined, and stored as the command tail
// at 0x0080, which is where CP/M programs find them.  The function returns
// nil when the program exits via BDOS function 0, and ErrHalt if the CPU
// executed a HALT - which includes returning to, or jumping to, 0x0000.
func (cpm *CPM) Execute(args []string) error {

	cli := strings.TrimSpace(strings.ToUpper(strings.Join(args, " ")))
	if len(cli) > 127 {
		cli = cli[:127]
	}

	cpm.Memory.FillRange(DefaultDMAAddress, 128, 0x00)
	cpm.Memory.Set(DefaultDMAAddress, uint8(len(cli)))
	cpm.Memory.SetRange(DefaultDMAAddress+1, []uint8(cli)...)

	// A return from the program pops 0x0000.
	cpm.Memory.SetU16(stackTop, 0x0000)

	err := cpm.run(cpm.start, stackTop)
	if err == ErrExit {
		return nil
	}
	return err
}

// Call invokes a single BDOS function, by running a tiny program which
// loads C and DE and then calls 0x0005.
func (cpm *CPM) Call(function uint8, de uint16) error {

	// LD C, function
	// LD DE, de
	// CALL 0x0005
	// HALT
	stub := [stubSize]uint8{
		0x0E, function,
		0x11, uint8(de & 0xFF), uint8(de >> 8),
		0xCD, 0x05, 0x00,
		0x76,
	}
	cpm.Memory.SetRange(stubAddress, stub[:]...)

	err := cpm.run(stubAddress, stubAddress)
	if err == ErrHalt || err == ErrExit {
		return nil
	}
	return err
}

// run executes code from the given address until it halts, exits, or
// fails.  BDOS calls are dispatched as they are hit.
func (cpm *CPM) run(pc uint16, sp uint16) error {

	cpm.CPU = z80.CPU{
		States: z80.States{
			SPR: z80.SPR{
				PC: pc,
				SP: sp,
			},
		},
		Memory: cpm.Memory,
		IO:     cpm,
	}

	// Setup a breakpoint on 0x0005 - the BDOS entrypoint.
	cpm.CPU.BreakPoints = map[uint16]struct{}{}
	cpm.CPU.BreakPoints[bdosEntry] = struct{}{}

	for {

		err := cpm.CPU.Run(context.Background())

		// No error?  Then end - the CPU hit a HALT.
		if err == nil {
			return ErrHalt
		}

		if err != z80.ErrBreakPoint {
			return fmt.Errorf("unexpected error running CPU %s", err)
		}

		// The syscall identifier is stored in the C-register.
		syscall := cpm.CPU.States.BC.Lo

		handler, exists := cpm.Syscalls[syscall]
		if !exists {
			cpm.Logger.Error("Unimplemented SysCall",
				slog.Int("syscall", int(syscall)),
				slog.String("syscallHex", fmt.Sprintf("0x%02X", syscall)),
			)
			return ErrUnimplemented
		}

		cpm.Logger.Debug("SysCall",
			slog.String("name", handler.Desc),
			slog.Int("syscall", int(syscall)),
			slog.String("syscallHex", fmt.Sprintf("0x%02X", syscall)),
		)

		err = handler.Handler(cpm)
		if err != nil {
			return err
		}

		// Return from call by getting the return address
		// from the stack, and updating the instruction pointer
		// to continue executing from there.
		cpm.CPU.PC = cpm.Memory.GetU16(cpm.CPU.SP)
		cpm.CPU.SP += 2
	}
}

// ConOut writes a character to the console via BDOS function 2.
func (cpm *CPM) ConOut(c uint8) error {
	return cpm.Call(2, uint16(c))
}

// DirectOut writes a character to the console via BDOS function 6.
//
// The values 0xFE and 0xFF request input, not output, so cannot be
// written this way.
func (cpm *CPM) DirectOut(c uint8) error {
	if c >= 0xFE {
		return fmt.Errorf("DirectOut: character 0x%02X is reserved", c)
	}
	return cpm.Call(6, uint16(c))
}

// ListOut writes a character to the printer via BDOS function 5.
func (cpm *CPM) ListOut(c uint8) error {
	return cpm.Call(5, uint16(c))
}

// printer is a printf.Console which writes to the list device.
type printer struct {
	cpm *CPM
}

// PutCharacter sends the character to the printer, logging failures.
func (p printer) PutCharacter(c uint8) {
	if err := p.cpm.ListOut(c); err != nil {
		p.cpm.Logger.Error("ListOut failed",
			slog.Int("char", int(c)),
			slog.String("error", err.Error()))
	}
}

// Printer returns a console which writes to the printer, rather than the
// screen.
func (cpm *CPM) Printer() printf.Console {
	return printer{cpm: cpm}
}

// PutCharacter makes the emulator usable as a printf.Console.
//
// Failures cannot be returned through that interface, so they are logged.
func (cpm *CPM) PutCharacter(c uint8) {
	if err := cpm.ConOut(c); err != nil {
		cpm.Logger.Error("ConOut failed",
			slog.Int("char", int(c)),
			slog.String("error", err.Error()))
	}
}

// Printf formats to the console, through the BDOS.
func (cpm *CPM) Printf(format string, args ...any) (int, error) {
	return printf.Printf(cpm, format, args...)
}

// Sprintf formats into RAM, at most size bytes from addr.
//
// Nothing is written past the window, instead printf.ErrCapacity is
// returned.  No terminator is added.  The window may not overlap
// 0xFDFE-0xFE08, which every Call overwrites, so ConOut and friends would
// destroy the text; ErrReserved is returned for such windows.
func (cpm *CPM) Sprintf(addr uint16, size int, format string, args ...any) (int, error) {
	region := cpm.Memory.Region(addr, size)

	start := int(region.Start())
	end := start + region.Len()
	if start < reservedEnd && end > reservedStart {
		return -1, fmt.Errorf("Sprintf: window 0x%04X-0x%04X overlaps 0x%04X-0x%04X: %w", start, end-1, reservedStart, reservedEnd-1, ErrReserved)
	}

	return printf.Fprintf(printf.NewStorageBuffer(region), format, args...)
}

// In is called to handle the I/O reading of a Z80 port.
//
// This is called by our embedded Z80 emulator.
func (cpm *CPM) In(addr uint8) uint8 {
	cpm.Logger.Debug("I/O IN",
		slog.Int("port", int(addr)))

	return 0
}

// Out is called to handle the I/O writing to a Z80 port.
//
// This is called by our embedded Z80 emulator.
func (cpm *CPM) Out(addr uint8, val uint8) {
	cpm.Logger.Debug("I/O OUT",
		slog.Int("port", int(addr)),
		slog.Int("value", int(val)))
}
