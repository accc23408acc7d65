// Integration tests :)

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skx/cpmprintf/version"
)

// invoke runs the command with the given arguments, returning the exit
// code along with everything written to stdout and stderr.
func invoke(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestFormatting(t *testing.T) {

	type TestCase struct {
		args []string
		out  string
	}

	tests := []TestCase{
		{[]string{"argc = %d\r\n", "3"}, "argc = 3\r\n"},
		{[]string{"%04x", "0xBEEF"}, "beef"},
		{[]string{"%04x", "12h"}, "0012"},
		{[]string{"%d %u", "-1", "-1"}, "-1 65535"},
		{[]string{"%5d|", "42"}, "   42|"},
		{[]string{"%s and %c", "cats", "dogs"}, "cats and d"},
		{[]string{"%x", "54272"}, "d400"},
		{[]string{"no directives"}, "no directives"},
		{[]string{"%y%d", "7"}, "7"},
	}

	for _, mode := range [][]string{
		{"-console", "ansi"},
		{"-console", "ansi", "-direct"},
		{"-console", "ansi", "-buffer", "64"},
	} {
		for _, test := range tests {
			args := append(append([]string{}, mode...), test.args...)

			code, out, errs := invoke(args...)
			if code != 0 {
				t.Fatalf("%v: exit code %d, stderr %s", args, code, errs)
			}
			if out != test.out {
				t.Fatalf("%v: got '%s', expected '%s'", args, out, test.out)
			}
		}
	}
}

func TestADMConsole(t *testing.T) {
	code, out, _ := invoke("-console", "adm-3a", "%c=[", "\x1b")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if out != "" {
		t.Fatalf("expected the escape to be buffered, got %q", out)
	}

	code, out, _ = invoke("-console", "adm-3a", "a\x1a")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.HasPrefix(out, "a\x1b[H\x1b[2J") {
		t.Fatalf("clear-screen not translated, got %q", out)
	}
}

func TestPrinter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lst.txt")

	code, out, errs := invoke("-console", "ansi", "-lst", "-printer", path, "page %d", "1")
	if code != 0 {
		t.Fatalf("exit code %d, stderr %s", code, errs)
	}
	if out != "" {
		t.Fatalf("printer output reached the console: %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read printer output: %s", err)
	}
	if string(data) != "page 1" {
		t.Fatalf("unexpected printer output '%s'", data)
	}
}

func TestFailures(t *testing.T) {

	type TestCase struct {
		args []string
		err  string
	}

	tests := []TestCase{
		{[]string{"-buffer", "4", "hello"}, "CAPACITY EXCEEDED"},
		{[]string{"%d %d", "1"}, "needs argument 2"},
		{[]string{"%d", "cake"}, "not a 16-bit number"},
		{[]string{"%x", "0xZZ"}, "not a hexadecimal number"},
		{[]string{"-console", "sparkly", "hi"}, "sparkly"},
		{[]string{"-direct", "-lst", "hi"}, "cannot be used together"},
		{[]string{"%8888888x", "1"}, "WIDTH TOO LARGE"},
	}

	for _, test := range tests {
		args := append([]string{"-console", "ansi"}, test.args...)

		code, _, errs := invoke(args...)
		if code != 1 {
			t.Fatalf("%v: expected failure, got exit code %d", args, code)
		}
		if !strings.Contains(errs, test.err) {
			t.Fatalf("%v: expected '%s' in '%s'", args, test.err, errs)
		}
	}

	// No format at all.
	code, _, errs := invoke()
	if code != 1 || !strings.Contains(errs, "Usage") {
		t.Fatalf("expected usage, got %d %s", code, errs)
	}

	// Unknown flag.
	code, _, _ = invoke("-sparkles")
	if code != 1 {
		t.Fatalf("expected failure on unknown flag")
	}
}

func TestVersionFlag(t *testing.T) {
	code, out, _ := invoke("-version")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if out != version.GetVersionBanner() {
		t.Fatalf("unexpected banner '%s'", out)
	}
}

func TestListDrivers(t *testing.T) {
	code, out, _ := invoke("-list-output-drivers")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if out != "adm-3a\nansi\ntermbox\n" {
		t.Fatalf("unexpected driver list '%s'", out)
	}
}

func TestParseNumber(t *testing.T) {

	type TestCase struct {
		in  string
		out int
		ok  bool
	}

	tests := []TestCase{
		{"0", 0, true},
		{"42", 42, true},
		{"-42", -42, true},
		{"65535", 65535, true},
		{"-32768", -32768, true},
		{"0xd400", 0xD400, true},
		{"0XFF", 255, true},
		{"D400h", 0xD400, true},
		{"-10h", -16, true},
		{"ffffh", 0xFFFF, true},
		{"0xaBcD", 0xABCD, true},
		{"0x0000ffff", 0xFFFF, true},
		{"1FFFFh", 0, false},
		{"0xG1", 0, false},
		{"12gh", 0, false},
		{"65536", 0, false},
		{"-32769", 0, false},
		{"0x10000", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"0x", 0, false},
		{"h", 0, false},
		{"0x+1", 0, false},
		{"12.5", 0, false},
		{"steve", 0, false},
	}

	for _, test := range tests {
		out, err := parseNumber(test.in)
		if test.ok {
			if err != nil {
				t.Fatalf("unexpected error parsing '%s': %s", test.in, err)
			}
			if out != test.out {
				t.Fatalf("parsing '%s' gave %d, expected %d", test.in, out, test.out)
			}
			continue
		}
		if err == nil {
			t.Fatalf("expected error parsing '%s', got %d", test.in, out)
		}
	}
}

func TestArguments(t *testing.T) {
	out, err := arguments("%s=%04x %c", []string{"addr", "0xD400", "Z", "extra"})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	want := []any{"addr", 0xD400, "Z", "extra"}
	if len(out) != len(want) {
		t.Fatalf("wrong number of arguments %v", out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("argument %d: got %v (%T), expected %v (%T)", i, out[i], out[i], want[i], want[i])
		}
	}
}
