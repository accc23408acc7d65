// entry point

package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/skx/cpmprintf/consoleout"
	"github.com/skx/cpmprintf/cpm"
	"github.com/skx/cpmprintf/printf"
	"github.com/skx/cpmprintf/version"
	"golang.org/x/term"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the body of main, returning the exit code.
func run(args []string, stdout io.Writer, stderr io.Writer) int {

	fs := flag.NewFlagSet("cpmprintf", flag.ContinueOnError)
	fs.SetOutput(stderr)

	bufSize := fs.Int("buffer", 0, "Format into a buffer of this many bytes, then display it, rather than writing to the console as we go.")
	console := fs.String("console", "", "The name of the console output driver to use (default adm-3a on a terminal, ansi otherwise).")
	direct := fs.Bool("direct", false, "Write to the console driver directly, rather than via the emulated BDOS.")
	list := fs.Bool("list-output-drivers", false, "Show the available console output drivers, and exit.")
	logAll := fs.Bool("log-all", false, "Log all the things.")
	lst := fs.Bool("lst", false, "Send the output to the printer, rather than the console.")
	prnPath := fs.String("printer", "print.log", "The file to which printer output is appended.")
	showVersion := fs.Bool("version", false, "Report our version, and exit.")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: cpmprintf [flags] format [args...]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *showVersion {
		fmt.Fprint(stdout, version.GetVersionBanner())
		return 0
	}

	if *list {
		null, err := consoleout.New("null")
		if err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return 1
		}
		for _, name := range null.GetDrivers() {
			fmt.Fprintf(stdout, "%s\n", name)
		}
		return 0
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return 1
	}

	if *direct && *lst {
		fmt.Fprintf(stderr, "Error: -direct and -lst cannot be used together\n")
		return 1
	}

	// Setup our logging level - default to warnings or higher
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)

	// But show "everything" if $DEBUG is non-empty, or we've been asked
	if *logAll || os.Getenv("DEBUG") != "" {
		lvl.Set(slog.LevelDebug)
	}

	log := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{
		Level: lvl,
	}))

	format := fs.Arg(0)
	values, err := arguments(format, fs.Args()[1:])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}

	if *console == "" {
		*console = defaultDriver()
	}

	obj, err := cpm.New(
		cpm.WithOutputDriver(*console),
		cpm.WithPrinterPath(*prnPath),
		cpm.WithLogger(log),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating CP/M host: %s\n", err)
		return 1
	}
	defer obj.Close()

	obj.GetOutputDriver().SetWriter(stdout)

	var out printf.Console = obj
	if *direct {
		out = obj.GetOutputDriver()
	}
	if *lst {
		out = obj.Printer()
	}

	log.Debug("formatting",
		slog.String("format", format),
		slog.String("console", *console),
		slog.Int("arguments", len(values)),
		slog.Int("buffer", *bufSize))

	var n int
	if *bufSize > 0 {
		buf := make([]byte, *bufSize)
		n, err = printf.Sprintf(buf, format, values...)
		if err == nil {
			for _, c := range buf[:n] {
				out.PutCharacter(c)
			}
		}
	} else {
		n, err = printf.Printf(out, format, values...)
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}

	log.Debug("formatted", slog.Int("length", n))
	return 0
}

// defaultDriver picks the ADM-3A translation when we're writing to a
// terminal, and passes bytes through unchanged when we're not.
func defaultDriver() string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "adm-3a"
	}
	return "ansi"
}

// arguments converts the command-line arguments into values for the
// directives of the format string.
//
// Numeric directives get numbers, everything else gets the string as-is.
// Arguments beyond the last directive are passed along as strings.
func arguments(format string, raw []string) ([]any, error) {

	directives := printf.Parse(format)

	out := make([]any, len(raw))
	for i, s := range raw {
		out[i] = s

		if i >= len(directives) {
			continue
		}

		switch directives[i].Kind {
		case printf.Signed, printf.Unsigned, printf.Hex:
			v, err := parseNumber(s)
			if err != nil {
				return nil, fmt.Errorf("argument %d for %%%c: %w", i+1, directives[i].Verb, err)
			}
			out[i] = v
		}
	}
	return out, nil
}

// parseNumber parses a decimal number, or a hexadecimal one written as
// either 0xD400 or D400h.  The result must fit in 16 bits, signed or not.
func parseNumber(s string) (int, error) {

	txt := s
	neg := strings.HasPrefix(txt, "-")
	if neg {
		txt = txt[1:]
	}

	hex := false
	switch {
	case strings.HasPrefix(txt, "0x"), strings.HasPrefix(txt, "0X"):
		txt = txt[2:]
		hex = true
	case strings.HasSuffix(txt, "h"), strings.HasSuffix(txt, "H"):
		txt = txt[:len(txt)-1]
		hex = true
	}

	if txt == "" {
		return 0, fmt.Errorf("'%s' is not a number", s)
	}

	var v uint64
	if hex {
		for i := 0; i < len(txt); i++ {
			if !printf.IsHexDigit(txt[i]) {
				return 0, fmt.Errorf("'%s' is not a hexadecimal number", s)
			}
			v = v*16 + uint64(hexValue(txt[i]))
			if v > 0xFFFF {
				return 0, fmt.Errorf("'%s' is not a 16-bit number", s)
			}
		}
	} else {
		var err error
		v, err = strconv.ParseUint(txt, 10, 16)
		if err != nil {
			return 0, fmt.Errorf("'%s' is not a 16-bit number", s)
		}
	}

	if neg {
		if v > 32768 {
			return 0, fmt.Errorf("'%s' is too small for 16 bits", s)
		}
		return -int(v), nil
	}
	return int(v), nil
}

// hexValue returns the value of a single hexadecimal digit.
func hexValue(c byte) uint8 {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	}
	return c - '0'
}
